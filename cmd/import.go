package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadscore/internal/importer"
	"github.com/sells-group/leadscore/internal/model"
)

var (
	importInput  inputFlags
	importOutput string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Normalize a prospect file into CSV or JSON",
	Long: `Reads prospects from any supported format (json, yaml, csv, xlsx) and writes
them in the canonical column layout. The output format follows the --output
extension.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		prospects, err := importInput.load()
		if err != nil {
			return err
		}

		list := make([]model.Prospect, len(prospects))
		for i, p := range prospects {
			list[i] = *p
		}

		if err := writeProspects(importOutput, list); err != nil {
			return err
		}

		zap.L().Info("import complete",
			zap.Int("prospects", len(list)),
			zap.String("input", importInput.file),
			zap.String("output", importOutput),
		)
		return nil
	},
}

func init() {
	importInput.register(importCmd)
	importCmd.Flags().StringVar(&importOutput, "output", "", "output file, .csv or .json (required)")
	_ = importCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(importCmd)
}

func writeProspects(path string, prospects []model.Prospect) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".json" {
		return eris.Errorf("import: unsupported output type %q", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "import: create output")
	}
	defer f.Close() //nolint:errcheck

	if ext == ".csv" {
		return importer.WriteCSV(f, prospects)
	}
	return writeJSON(f, prospects)
}
