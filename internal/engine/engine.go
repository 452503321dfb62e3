// Package engine evaluates prospects end to end: qualification, leak
// detection, savings projection and industry benchmarking.
package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/leadscore/internal/config"
	"github.com/sells-group/leadscore/internal/icp"
	"github.com/sells-group/leadscore/internal/model"
	"github.com/sells-group/leadscore/internal/roi"
	"github.com/sells-group/leadscore/internal/waste"
)

// Options controls evaluation.
type Options struct {
	DefaultICP          string
	BestMatch           bool
	EvaluateUnqualified bool
	MaxConcurrent       int
	GrowthFactors       map[string]float64
	ConfidenceLevels    map[string]float64
}

// OptionsFromConfig maps application configuration onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		DefaultICP:          cfg.Scoring.DefaultICP,
		BestMatch:           cfg.Scoring.BestMatch,
		EvaluateUnqualified: cfg.Scoring.EvaluateUnqualified,
		MaxConcurrent:       cfg.Batch.MaxConcurrentProspects,
		GrowthFactors:       cfg.Projection.GrowthFactors,
		ConfidenceLevels:    cfg.Projection.ConfidenceLevels,
	}
}

// Result is the evaluation of one prospect. Leaks, Projection and Benchmark
// are nil when the prospect was skipped for failing qualification.
type Result struct {
	Domain        string             `json:"domain"`
	CompanyName   string             `json:"company_name,omitempty"`
	Label         string             `json:"label"`
	Qualification icp.Qualification  `json:"qualification"`
	Breakdown     icp.ScoreBreakdown `json:"score_breakdown"`
	Footprint     icp.Footprint      `json:"technical_footprint"`
	Skipped       bool               `json:"skipped"`
	SkipReason    string             `json:"skip_reason,omitempty"`
	Leaks         *waste.LeakReport  `json:"financial_leaks,omitempty"`
	Projection    *roi.Projection    `json:"projection,omitempty"`
	Benchmark     *roi.Comparison    `json:"benchmark,omitempty"`
}

// Batch is the outcome of EvaluateAll. Results are in input order.
type Batch struct {
	RunID             string    `json:"run_id"`
	StartedAt         time.Time `json:"started_at"`
	DurationMs        int64     `json:"duration_ms"`
	Total             int       `json:"total"`
	Qualified         int       `json:"qualified"`
	Skipped           int       `json:"skipped"`
	TotalMonthlyWaste float64   `json:"total_monthly_waste"`
	TotalAnnualWaste  float64   `json:"total_annual_waste"`
	Results           []*Result `json:"results"`
}

// Engine evaluates prospects against a profile registry. It is safe for
// concurrent use; all configuration is read-only after New.
type Engine struct {
	registry *icp.Registry
	matcher  *icp.Matcher
	detector *waste.Detector
	fallback *icp.ICP
	opts     Options
}

// New creates an Engine. The default profile must exist in the registry.
func New(registry *icp.Registry, detector *waste.Detector, opts Options) (*Engine, error) {
	if registry == nil {
		registry = icp.DefaultRegistry()
	}
	if detector == nil {
		detector = waste.NewDetector(waste.DefaultRules(), nil)
	}
	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 1
	}

	fallback, err := registry.Get(opts.DefaultICP)
	if err != nil {
		return nil, eris.Wrap(err, "engine: default profile")
	}

	return &Engine{
		registry: registry,
		matcher:  icp.NewMatcher(),
		detector: detector,
		fallback: fallback,
		opts:     opts,
	}, nil
}

// Evaluate runs the full evaluation for one prospect. It only fails when ctx
// is done; missing prospect data degrades the result instead.
func (e *Engine) Evaluate(ctx context.Context, p *model.Prospect) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "engine: evaluate")
	}

	profile := e.selectProfile(p)
	res := &Result{
		Domain:        p.Domain,
		CompanyName:   p.CompanyName,
		Label:         p.Label(),
		Qualification: e.matcher.Qualify(p, profile),
		Breakdown:     e.matcher.Breakdown(p, profile),
		Footprint:     e.matcher.TechnicalFootprint(p, profile),
	}

	if !res.Qualification.Qualified && !e.opts.EvaluateUnqualified {
		res.Skipped = true
		res.SkipReason = skipReason(res.Qualification)
		zap.L().Debug("engine: prospect not qualified",
			zap.String("domain", p.Domain),
			zap.String("icp", profile.Name),
			zap.Float64("score", res.Qualification.Score),
		)
		return res, nil
	}

	leaks := e.detector.DetectFinancialLeaks(ctx, p, profile)
	proj := roi.NewProjectedSavings(leaks.Summary.TotalMonthlyWaste, e.opts.GrowthFactors, e.opts.ConfidenceLevels).Calculate(p)
	bench := roi.BenchmarkForProspect(p).Compare(leaks.Metrics)

	res.Leaks = &leaks
	res.Projection = &proj
	res.Benchmark = &bench

	zap.L().Debug("engine: prospect evaluated",
		zap.String("domain", p.Domain),
		zap.String("icp", profile.Name),
		zap.Float64("score", res.Qualification.Score),
		zap.Float64("monthly_waste", leaks.Summary.TotalMonthlyWaste),
		zap.Float64("year1_savings", proj.Annual.Year1),
	)
	return res, nil
}

// EvaluateAll evaluates prospects concurrently, bounded by MaxConcurrent.
// Cancelling ctx stops scheduling and returns the context error.
func (e *Engine) EvaluateAll(ctx context.Context, prospects []*model.Prospect) (*Batch, error) {
	batch := &Batch{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Total:     len(prospects),
		Results:   make([]*Result, len(prospects)),
	}
	log := zap.L().With(zap.String("run_id", batch.RunID))

	log.Info("engine: evaluating batch",
		zap.Int("prospects", len(prospects)),
		zap.Int("concurrency", e.opts.MaxConcurrent),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.MaxConcurrent)

	var qualified, skipped atomic.Int64

	for i, p := range prospects {
		if gctx.Err() != nil {
			break
		}
		if p == nil {
			p = &model.Prospect{}
		}
		g.Go(func() error {
			r, err := e.Evaluate(gctx, p)
			if err != nil {
				return err
			}
			batch.Results[i] = r
			if r.Qualification.Qualified {
				qualified.Add(1)
			}
			if r.Skipped {
				skipped.Add(1)
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		log.Warn("engine: batch cancelled", zap.Error(err))
		return nil, eris.Wrap(err, "engine: evaluate batch")
	}

	for _, r := range batch.Results {
		if r.Leaks != nil {
			batch.TotalMonthlyWaste += r.Leaks.Summary.TotalMonthlyWaste
		}
	}
	batch.TotalAnnualWaste = batch.TotalMonthlyWaste * 12
	batch.Qualified = int(qualified.Load())
	batch.Skipped = int(skipped.Load())
	batch.DurationMs = time.Since(batch.StartedAt).Milliseconds()

	log.Info("engine: batch complete",
		zap.Int("total", batch.Total),
		zap.Int("qualified", batch.Qualified),
		zap.Int("skipped", batch.Skipped),
		zap.Float64("total_monthly_waste", batch.TotalMonthlyWaste),
		zap.Int64("duration_ms", batch.DurationMs),
	)
	return batch, nil
}

// Profile returns the default profile.
func (e *Engine) Profile() *icp.ICP {
	return e.fallback
}

// selectProfile returns the best matching profile when best-match is enabled
// and some profile's gate passes, otherwise the default profile.
func (e *Engine) selectProfile(p *model.Prospect) *icp.ICP {
	if !e.opts.BestMatch {
		return e.fallback
	}
	q, ok := e.registry.BestMatch(e.matcher, p)
	if !ok {
		return e.fallback
	}
	profile, err := e.registry.Get(q.ICP)
	if err != nil {
		zap.L().Warn("engine: best match lookup failed", zap.String("icp", q.ICP), zap.Error(err))
		return e.fallback
	}
	return profile
}

func skipReason(q icp.Qualification) string {
	if !q.Matches {
		return "fails " + q.ICP + " hard gate"
	}
	return "score below " + q.ICP + " qualification threshold"
}
