package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/leadscore/internal/estimate"
	"github.com/sells-group/leadscore/internal/icp"
)

var icpsFormat string

var icpsCmd = &cobra.Command{
	Use:   "icps",
	Short: "List the configured Ideal Customer Profiles",
	Long: `Lists the profiles prospects can be qualified against.

The yaml format writes a profile file that can be edited and passed back via
scoring.icp_file.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		registry, err := loadRegistry(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch icpsFormat {
		case formatTable:
			formatProfileTable(out, registry.List())
			return nil
		case formatJSON:
			return writeJSON(out, registry.List())
		case formatYAML:
			return writeProfileYAML(out, registry.List())
		default:
			return eris.Errorf("icps: unknown format %q", icpsFormat)
		}
	},
}

func init() {
	icpsCmd.Flags().StringVar(&icpsFormat, "format", formatTable, "output format: table, json or yaml")
	rootCmd.AddCommand(icpsCmd)
}

// formatProfileTable writes one row per profile to out.
func formatProfileTable(out io.Writer, profiles []*icp.ICP) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tTYPE\tREVENUE\tEMPLOYEES\tTHRESHOLD\tEXP_WASTE\tEXP_RECOVERY")
	_, _ = fmt.Fprintln(w, "----\t----\t-------\t---------\t---------\t---------\t------------")

	for _, p := range profiles {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\t%s\t%s\n",
			p.Name,
			p.Type,
			revenueRange(p),
			employeeRange(p),
			p.QualificationThreshold,
			formatMoney(p.ExpectedMonthlyWaste()),
			formatMoney(p.ExpectedMonthlyRecovery()),
		)
	}
	_ = w.Flush()
}

func writeProfileYAML(out io.Writer, profiles []*icp.ICP) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]*icp.ICP{"profiles": profiles}); err != nil {
		return eris.Wrap(err, "icps: encode yaml")
	}
	return enc.Close()
}

func revenueRange(p *icp.ICP) string {
	switch {
	case p.MinRevenue <= 0 && p.MaxRevenue <= 0:
		return "any"
	case p.MaxRevenue <= 0:
		return estimate.FormatRevenue(p.MinRevenue) + "+"
	default:
		return estimate.FormatRevenue(p.MinRevenue) + "-" + estimate.FormatRevenue(p.MaxRevenue)
	}
}

func employeeRange(p *icp.ICP) string {
	switch {
	case p.MinEmployees == nil && p.MaxEmployees == nil:
		return "any"
	case p.MaxEmployees == nil:
		return strconv.Itoa(*p.MinEmployees) + "+"
	case p.MinEmployees == nil:
		return "<=" + strconv.Itoa(*p.MaxEmployees)
	default:
		return strconv.Itoa(*p.MinEmployees) + "-" + strconv.Itoa(*p.MaxEmployees)
	}
}
