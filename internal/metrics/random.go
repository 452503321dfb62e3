package metrics

import (
	"context"
	"hash/fnv"
	"math/rand/v2"
	"sort"

	"github.com/sells-group/leadscore/internal/estimate"
	"github.com/sells-group/leadscore/internal/model"
)

type span struct{ lo, hi float64 }

var randomPerformance = map[string]span{
	"load_time":           {1.5, 6.0},
	"ttfb":                {0.2, 1.5},
	"fcp":                 {0.8, 3.5},
	"lcp":                 {1.5, 5.5},
	"cls":                 {0.0, 0.35},
	"fid":                 {20, 300},
	"performance_score":   {40, 98},
	"accessibility_score": {60, 100},
}

var randomConversion = map[string]span{
	"conversion_rate":     {0.5, 4.5},
	"add_to_cart_rate":    {3, 14},
	"checkout_completion": {25, 65},
	"bounce_rate":         {25, 75},
	"cart_abandonment":    {55, 85},
}

// Random generates plausible demonstration metrics. Output depends only on the
// seed and the prospect's domain, so repeated runs agree.
type Random struct {
	seed uint64
}

// NewRandom creates a Random provider.
func NewRandom(seed int64) *Random {
	return &Random{seed: uint64(seed)}
}

// FetchMetrics returns generated metrics for the prospect.
func (r *Random) FetchMetrics(_ context.Context, p *model.Prospect) (model.Metrics, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(model.NormalizeKey(p.Domain)))
	rng := rand.New(rand.NewPCG(r.seed, h.Sum64()))

	return model.Metrics{
		Performance: draw(rng, randomPerformance),
		Conversion:  draw(rng, randomConversion),
	}, nil
}

// draw fills every metric in sorted order so the sequence is stable.
func draw(rng *rand.Rand, spans map[string]span) map[string]float64 {
	out := make(map[string]float64, len(spans))
	for _, name := range sortedNames(spans) {
		s := spans[name]
		out[name] = estimate.Round2(s.lo + rng.Float64()*(s.hi-s.lo))
	}
	return out
}

func sortedNames(m map[string]span) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
