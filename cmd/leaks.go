package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadscore/internal/icp"
	"github.com/sells-group/leadscore/internal/model"
	"github.com/sells-group/leadscore/internal/waste"
)

var (
	leaksInput inputFlags
	leaksICP   string
	leaksNoICP bool
)

var leaksCmd = &cobra.Command{
	Use:   "leaks",
	Short: "Detect redundant tooling and performance leaks",
	Long: `Runs the financial leak detectors over every prospect regardless of
qualification and prints the reports as JSON. The profile supplies its SaaS
waste patterns; --no-icp skips them.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		prospects, err := leaksInput.load()
		if err != nil {
			return err
		}
		detector, err := newDetector(cfg)
		if err != nil {
			return err
		}

		var profile *icp.ICP
		if !leaksNoICP {
			registry, err := loadRegistry(cfg)
			if err != nil {
				return err
			}
			profile, err = registry.Get(profileName(cfg, leaksICP))
			if err != nil {
				return err
			}
		}

		reports, err := detectLeaks(cmd.Context(), detector, profile, prospects)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), reports)
	},
}

func init() {
	leaksInput.register(leaksCmd)
	leaksCmd.Flags().StringVar(&leaksICP, "icp", "", "profile whose waste patterns apply (default scoring.default_icp)")
	leaksCmd.Flags().BoolVar(&leaksNoICP, "no-icp", false, "skip profile waste patterns")
	rootCmd.AddCommand(leaksCmd)
}

// detectLeaks runs the detector over each prospect in order. It stops early
// only when ctx is done.
func detectLeaks(ctx context.Context, d *waste.Detector, profile *icp.ICP, prospects []*model.Prospect) ([]waste.LeakReport, error) {
	reports := make([]waste.LeakReport, 0, len(prospects))
	var monthly float64
	for _, p := range prospects {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "leaks: detect")
		}
		r := d.DetectFinancialLeaks(ctx, p, profile)
		monthly += r.Summary.TotalMonthlyWaste
		reports = append(reports, r)
	}

	zap.L().Info("leak detection complete",
		zap.Int("prospects", len(reports)),
		zap.String("total_monthly_waste", formatMoney(monthly)),
	)
	return reports, nil
}
