package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/leadscore/internal/model"
	"github.com/sells-group/leadscore/internal/roi"
)

var (
	projectBaseline  float64
	projectICP       string
	projectRevenue   float64
	projectEmployees int
	projectFormat    string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project savings for a monthly waste baseline",
	Long: `Builds the pilot, monthly, quarterly, annual and three-year savings
projection for a baseline. Without --baseline the profile's expected monthly
recovery is used. --revenue and --employees scale the baseline and enable ROI.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		baseline := projectBaseline
		if baseline <= 0 {
			registry, err := loadRegistry(cfg)
			if err != nil {
				return err
			}
			profile, err := registry.Get(profileName(cfg, projectICP))
			if err != nil {
				return err
			}
			baseline = profile.ExpectedMonthlyRecovery()
		}

		p := &model.Prospect{}
		if cmd.Flags().Changed("revenue") {
			p.Revenue = model.Float64(projectRevenue)
		}
		if cmd.Flags().Changed("employees") {
			p.EmployeeCount = model.Int(projectEmployees)
		}

		proj := roi.NewProjectedSavings(baseline, cfg.Projection.GrowthFactors, cfg.Projection.ConfidenceLevels).Calculate(p)

		out := cmd.OutOrStdout()
		switch projectFormat {
		case formatJSON:
			return writeJSON(out, proj)
		case formatTable:
			formatProjection(out, proj)
			return nil
		default:
			return eris.Errorf("project: unknown format %q", projectFormat)
		}
	},
}

func init() {
	projectCmd.Flags().Float64Var(&projectBaseline, "baseline", 0, "baseline monthly waste in dollars")
	projectCmd.Flags().StringVar(&projectICP, "icp", "", "profile supplying the baseline when --baseline is unset")
	projectCmd.Flags().Float64Var(&projectRevenue, "revenue", 0, "prospect annual revenue")
	projectCmd.Flags().IntVar(&projectEmployees, "employees", 0, "prospect employee count")
	projectCmd.Flags().StringVar(&projectFormat, "format", formatTable, "output format: table or json")
	rootCmd.AddCommand(projectCmd)
}

// formatProjection writes the projection horizons to out.
func formatProjection(out io.Writer, p roi.Projection) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Baseline:\t%s\n", formatMoney(p.BaselineMonthlyWaste))
	_, _ = fmt.Fprintf(w, "Scale factor:\t%.2f\n", p.ScaleFactor)
	_, _ = fmt.Fprintf(w, "Pilot:\t%s\n", formatMoney(p.Monthly.Pilot))
	for n := 1; n <= roi.Months; n++ {
		_, _ = fmt.Fprintf(w, "Month %d:\t%s\n", n, formatMoney(p.Monthly.Month(n)))
	}
	_, _ = fmt.Fprintf(w, "Q1:\t%s\n", formatMoney(p.Quarterly.Q1))
	_, _ = fmt.Fprintf(w, "Q2:\t%s\n", formatMoney(p.Quarterly.Q2))
	_, _ = fmt.Fprintf(w, "Q3:\t%s\n", formatMoney(p.Quarterly.Q3))
	_, _ = fmt.Fprintf(w, "Q4:\t%s\n", formatMoney(p.Quarterly.Q4))
	_, _ = fmt.Fprintf(w, "Year 1:\t%s\n", formatMoney(p.Annual.Year1))
	_, _ = fmt.Fprintf(w, "Year 2:\t%s\n", formatMoney(p.Annual.Year2))
	_, _ = fmt.Fprintf(w, "Year 3:\t%s\n", formatMoney(p.Annual.Year3))
	_, _ = fmt.Fprintf(w, "Three-year total:\t%s\n", formatMoney(p.ThreeYear.Total))
	if p.ROI.Year1ROI > 0 {
		_, _ = fmt.Fprintf(w, "Pilot ROI:\t%.2f%%\n", p.ROI.PilotROI)
		_, _ = fmt.Fprintf(w, "Year 1 ROI:\t%.2f%%\n", p.ROI.Year1ROI)
		_, _ = fmt.Fprintf(w, "Three-year ROI:\t%.2f%%\n", p.ROI.ThreeYearROI)
	}
	_ = w.Flush()
}
