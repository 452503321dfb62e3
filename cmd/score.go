package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadscore/internal/icp"
	"github.com/sells-group/leadscore/internal/importer"
	"github.com/sells-group/leadscore/internal/model"
)

var (
	scoreInput     inputFlags
	scoreICP       string
	scoreBestMatch bool
	scoreFormat    string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score prospects against an Ideal Customer Profile",
	Long: `Computes the hard gate, 0-100 match score and technical footprint of each
prospect. With --best-match every profile is tried and the best passing one is
reported.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		prospects, err := scoreInput.load()
		if err != nil {
			return err
		}
		registry, err := loadRegistry(cfg)
		if err != nil {
			return err
		}

		bestMatch := cfg.Scoring.BestMatch
		if cmd.Flags().Changed("best-match") {
			bestMatch = scoreBestMatch
		}

		rows, err := scoreProspects(registry, prospects, profileName(cfg, scoreICP), bestMatch)
		if err != nil {
			return err
		}

		qualified := 0
		for _, r := range rows {
			if r.Qualified {
				qualified++
			}
		}
		zap.L().Info("score complete",
			zap.Int("prospects", len(rows)),
			zap.Int("qualified", qualified),
		)

		return writeScores(cmd.OutOrStdout(), scoreFormat, rows)
	},
}

func init() {
	scoreInput.register(scoreCmd)
	scoreCmd.Flags().StringVar(&scoreICP, "icp", "", "profile name (default scoring.default_icp)")
	scoreCmd.Flags().BoolVar(&scoreBestMatch, "best-match", false, "pick the best passing profile per prospect")
	scoreCmd.Flags().StringVar(&scoreFormat, "format", formatTable, "output format: table, csv or json")
	rootCmd.AddCommand(scoreCmd)
}

// scoreRow is one line of score output.
type scoreRow struct {
	Domain       string  `csv:"domain" json:"domain"`
	CompanyName  string  `csv:"company_name" json:"company_name,omitempty"`
	ICP          string  `csv:"icp" json:"icp"`
	Score        float64 `csv:"score" json:"score"`
	Threshold    float64 `csv:"threshold" json:"threshold"`
	Matches      bool    `csv:"matches" json:"matches"`
	Qualified    bool    `csv:"qualified" json:"qualified"`
	FootprintPct float64 `csv:"footprint_percentage" json:"footprint_percentage"`
	Missing      string  `csv:"missing_critical" json:"missing_critical,omitempty"`
	Label        string  `csv:"-" json:"-"`
}

// scoreProspects qualifies every prospect. With bestMatch a prospect that
// passes no profile's gate is reported against the named profile.
func scoreProspects(registry *icp.Registry, prospects []*model.Prospect, name string, bestMatch bool) ([]scoreRow, error) {
	fallback, err := registry.Get(name)
	if err != nil {
		return nil, eris.Wrap(err, "score: profile")
	}

	m := icp.NewMatcher()
	rows := make([]scoreRow, 0, len(prospects))
	for _, p := range prospects {
		profile := fallback
		q := m.Qualify(p, profile)
		if bestMatch {
			if best, ok := registry.BestMatch(m, p); ok {
				q = best
				profile, _ = registry.Get(best.ICP)
			}
		}

		fp := m.TechnicalFootprint(p, profile)
		rows = append(rows, scoreRow{
			Domain:       p.Domain,
			CompanyName:  p.CompanyName,
			ICP:          q.ICP,
			Score:        q.Score,
			Threshold:    q.Threshold,
			Matches:      q.Matches,
			Qualified:    q.Qualified,
			FootprintPct: fp.Percentage,
			Missing:      strings.Join(fp.MissingCritical, ";"),
			Label:        p.Label(),
		})
	}
	return rows, nil
}

func writeScores(out io.Writer, format string, rows []scoreRow) error {
	switch format {
	case formatTable:
		formatScoreTable(out, rows)
		return nil
	case formatCSV:
		return importer.MarshalCSV(out, rows)
	case formatJSON:
		return writeJSON(out, rows)
	default:
		return eris.Errorf("score: unknown format %q", format)
	}
}

// formatScoreTable writes a tabular score list to out.
func formatScoreTable(out io.Writer, rows []scoreRow) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PROSPECT\tICP\tSCORE\tGATE\tQUALIFIED\tFOOTPRINT\tMISSING")
	_, _ = fmt.Fprintln(w, "--------\t---\t-----\t----\t---------\t---------\t-------")

	for _, r := range rows {
		label := r.Label
		if len(label) > 30 {
			label = label[:27] + "..."
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\t%.2f%%\t%s\n",
			label,
			r.ICP,
			r.Score,
			passFail(r.Matches),
			yesNo(r.Qualified),
			r.FootprintPct,
			r.Missing,
		)
	}
	_ = w.Flush()
}

func passFail(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}

func yesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
