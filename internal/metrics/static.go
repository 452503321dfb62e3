package metrics

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/leadscore/internal/model"
)

// Static serves metrics recorded ahead of time, keyed by prospect domain.
type Static struct {
	byDomain map[string]model.Metrics
}

// staticFile is the on-disk fixture layout.
type staticFile struct {
	Prospects map[string]model.Metrics `yaml:"prospects"`
}

// NewStatic creates a Static provider from a domain to metrics map.
func NewStatic(byDomain map[string]model.Metrics) *Static {
	s := &Static{byDomain: make(map[string]model.Metrics, len(byDomain))}
	for d, m := range byDomain {
		s.byDomain[model.NormalizeKey(d)] = m
	}
	return s
}

// LoadStatic reads a YAML fixture of the form
//
//	prospects:
//	  brand.example:
//	    performance: {load_time: 4.2}
//	    conversion: {conversion_rate: 1.1}
func LoadStatic(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "metrics: read fixture %s", path)
	}

	var f staticFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrap(err, "metrics: parse fixture")
	}
	return NewStatic(f.Prospects), nil
}

// Len returns the number of domains with recorded metrics.
func (s *Static) Len() int {
	return len(s.byDomain)
}

// FetchMetrics returns the recorded metrics for the prospect's domain, or
// empty metrics for an unknown domain.
func (s *Static) FetchMetrics(ctx context.Context, p *model.Prospect) (model.Metrics, error) {
	if err := ctx.Err(); err != nil {
		return model.Metrics{}, eris.Wrap(err, "metrics: static fetch")
	}
	return s.byDomain[model.NormalizeKey(p.Domain)], nil
}
