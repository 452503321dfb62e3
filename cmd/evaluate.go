package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadscore/internal/engine"
)

var (
	evaluateInput     inputFlags
	evaluateICP       string
	evaluateBestMatch bool
	evaluateOutput    string
	evaluateSummary   bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run the full evaluation over a prospect file",
	Long: `Qualifies each prospect, then runs leak detection, savings projection and
industry benchmarking for the qualified ones. Prospects are evaluated
concurrently (batch.max_concurrent_prospects) and written as one JSON batch.

Examples:
  leadscore evaluate --file prospects.csv --output batch.json
  leadscore evaluate --file leads.xlsx --sheet Leads --best-match --summary`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		prospects, err := evaluateInput.load()
		if err != nil {
			return err
		}
		zap.L().Info("loaded prospects", zap.Int("prospects", len(prospects)))

		e, err := newEngine(cfg, evaluateICP, changedBool(cmd, "best-match", evaluateBestMatch))
		if err != nil {
			return err
		}

		batch, err := e.EvaluateAll(ctx, prospects)
		if err != nil {
			return eris.Wrap(err, "evaluate")
		}

		if evaluateSummary {
			formatBatchSummary(cmd.ErrOrStderr(), batch)
		}

		if evaluateOutput == "" {
			return writeJSON(cmd.OutOrStdout(), batch)
		}
		f, err := os.Create(evaluateOutput)
		if err != nil {
			return eris.Wrap(err, "evaluate: create output")
		}
		defer f.Close() //nolint:errcheck

		if err := writeJSON(f, batch); err != nil {
			return err
		}
		zap.L().Info("wrote batch", zap.String("path", evaluateOutput), zap.String("run_id", batch.RunID))
		return nil
	},
}

func init() {
	evaluateInput.register(evaluateCmd)
	evaluateCmd.Flags().StringVar(&evaluateICP, "icp", "", "default profile (default scoring.default_icp)")
	evaluateCmd.Flags().BoolVar(&evaluateBestMatch, "best-match", false, "pick the best passing profile per prospect")
	evaluateCmd.Flags().StringVar(&evaluateOutput, "output", "", "write the batch JSON to this file instead of stdout")
	evaluateCmd.Flags().BoolVar(&evaluateSummary, "summary", false, "print a per-prospect summary table to stderr")
	rootCmd.AddCommand(evaluateCmd)
}

// formatBatchSummary writes one row per result plus batch totals.
func formatBatchSummary(out io.Writer, b *engine.Batch) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PROSPECT\tICP\tSCORE\tSTATUS\tMONTHLY_WASTE\tYEAR1_SAVINGS\tPOSITION")
	_, _ = fmt.Fprintln(w, "--------\t---\t-----\t------\t-------------\t-------------\t--------")

	for _, r := range b.Results {
		status, waste, year1, position := "skipped", "-", "-", "-"
		if !r.Skipped {
			status = "evaluated"
		}
		if r.Leaks != nil {
			waste = formatMoney(r.Leaks.Summary.TotalMonthlyWaste)
		}
		if r.Projection != nil {
			year1 = formatMoney(r.Projection.Annual.Year1)
		}
		if r.Benchmark != nil {
			position = r.Benchmark.Position
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\t%s\t%s\n",
			r.Label, r.Qualification.ICP, r.Qualification.Score, status, waste, year1, position)
	}

	_, _ = fmt.Fprintf(w, "\nRun:\t%s\n", b.RunID)
	_, _ = fmt.Fprintf(w, "Prospects:\t%d\n", b.Total)
	_, _ = fmt.Fprintf(w, "Qualified:\t%d\n", b.Qualified)
	_, _ = fmt.Fprintf(w, "Skipped:\t%d\n", b.Skipped)
	_, _ = fmt.Fprintf(w, "Monthly waste:\t%s\n", formatMoney(b.TotalMonthlyWaste))
	_, _ = fmt.Fprintf(w, "Annual waste:\t%s\n", formatMoney(b.TotalAnnualWaste))
	_ = w.Flush()
}
