package main

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/leadscore/internal/config"
	"github.com/sells-group/leadscore/internal/engine"
	"github.com/sells-group/leadscore/internal/icp"
	"github.com/sells-group/leadscore/internal/importer"
	"github.com/sells-group/leadscore/internal/metrics"
	"github.com/sells-group/leadscore/internal/model"
	"github.com/sells-group/leadscore/internal/waste"
)

// Output formats shared by several commands.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
	formatYAML  = "yaml"
)

var moneyPrinter = message.NewPrinter(language.English)

// formatMoney renders a dollar amount with thousands separators.
func formatMoney(v float64) string {
	return moneyPrinter.Sprintf("$%.2f", v)
}

// inputFlags are the prospect-file flags shared by every command that reads
// prospects.
type inputFlags struct {
	file     string
	charset  string
	sheet    string
	sheetIdx int
	limit    int
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "file", "", "prospect file: .json, .yaml, .csv or .xlsx (required)")
	cmd.Flags().StringVar(&f.charset, "charset", "", "text encoding of csv/json/yaml input (default utf-8)")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "xlsx sheet name")
	cmd.Flags().IntVar(&f.sheetIdx, "sheet-index", 0, "xlsx sheet index when --sheet is not set")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "max prospects to process (0 = all)")
	_ = cmd.MarkFlagRequired("file")
}

// load reads the prospect file and returns pointers into the loaded slice.
func (f *inputFlags) load() ([]*model.Prospect, error) {
	list, err := importer.LoadWith(f.file, importer.Options{
		Charset: f.charset,
		Sheet:   importer.XLSXOptions{SheetName: f.sheet, SheetIndex: f.sheetIdx},
	})
	if err != nil {
		return nil, eris.Wrap(err, "load prospects")
	}
	if f.limit > 0 && f.limit < len(list) {
		list = list[:f.limit]
	}

	out := make([]*model.Prospect, len(list))
	for i := range list {
		out[i] = &list[i]
	}
	return out, nil
}

// loadRegistry returns the configured profile registry.
func loadRegistry(c *config.Config) (*icp.Registry, error) {
	if c.Scoring.ICPFile == "" {
		return icp.DefaultRegistry(), nil
	}
	r, err := icp.LoadRegistry(c.Scoring.ICPFile)
	if err != nil {
		return nil, eris.Wrap(err, "load icp registry")
	}
	return r, nil
}

// newDetector builds a leak detector backed by the configured metrics source.
func newDetector(c *config.Config) (*waste.Detector, error) {
	provider, err := metrics.New(c.Metrics)
	if err != nil {
		return nil, eris.Wrap(err, "init metrics provider")
	}
	return waste.NewDetector(waste.DefaultRules(), provider), nil
}

// profileName returns the --icp override or the configured default.
func profileName(c *config.Config, override string) string {
	if override != "" {
		return override
	}
	return c.Scoring.DefaultICP
}

// newEngine wires registry, detector and options. icpOverride and bestMatch
// take precedence over configuration when set.
func newEngine(c *config.Config, icpOverride string, bestMatch *bool) (*engine.Engine, error) {
	registry, err := loadRegistry(c)
	if err != nil {
		return nil, err
	}
	detector, err := newDetector(c)
	if err != nil {
		return nil, err
	}

	opts := engine.OptionsFromConfig(c)
	opts.DefaultICP = profileName(c, icpOverride)
	if bestMatch != nil {
		opts.BestMatch = *bestMatch
	}

	e, err := engine.New(registry, detector, opts)
	if err != nil {
		return nil, eris.Wrap(err, "init engine")
	}
	return e, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "encode json")
	}
	return nil
}

// changedBool returns a pointer to v when the flag was set explicitly.
func changedBool(cmd *cobra.Command, name string, v bool) *bool {
	if cmd.Flags().Changed(name) {
		return &v
	}
	return nil
}
