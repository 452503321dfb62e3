package icp

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/leadscore/internal/model"
)

// ErrUnknownProfile is returned when a lookup names no registered profile.
var ErrUnknownProfile = eris.New("icp: unknown profile")

// Registry holds the configured profiles. It is built once and read-only
// afterwards, so it is safe for concurrent use.
type Registry struct {
	byName map[string]*ICP
	order  []string
}

// NewRegistry builds a registry from validated profiles. Names must be unique.
func NewRegistry(profiles ...*ICP) (*Registry, error) {
	r := &Registry{byName: make(map[string]*ICP, len(profiles))}
	for _, p := range profiles {
		if p == nil {
			continue
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		key := model.NormalizeKey(p.Name)
		if _, dup := r.byName[key]; dup {
			return nil, eris.Errorf("icp: duplicate profile name %q", p.Name)
		}
		r.byName[key] = p
		r.order = append(r.order, key)
	}
	return r, nil
}

// DefaultRegistry returns a registry of the built-in profiles.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinProfiles()...)
	if err != nil {
		// Built-in profiles are covered by tests.
		panic(err)
	}
	return r
}

// registryFile is the on-disk layout of a profile file.
type registryFile struct {
	Profiles []*ICP `yaml:"profiles"`
}

// LoadRegistry reads profiles from a YAML file.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "icp: read profiles %s", path)
	}

	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrap(err, "icp: parse profiles")
	}
	if len(f.Profiles) == 0 {
		return nil, eris.Errorf("icp: no profiles in %s", path)
	}

	return NewRegistry(f.Profiles...)
}

// Get looks a profile up by name.
func (r *Registry) Get(name string) (*ICP, error) {
	if p, ok := r.byName[model.NormalizeKey(name)]; ok {
		return p, nil
	}
	return nil, eris.Wrapf(ErrUnknownProfile, "name %q", name)
}

// ByType returns the first registered profile with the given type tag.
func (r *Registry) ByType(typ string) (*ICP, error) {
	want := model.NormalizeKey(typ)
	for _, key := range r.order {
		if model.NormalizeKey(r.byName[key].Type) == want {
			return r.byName[key], nil
		}
	}
	return nil, eris.Wrapf(ErrUnknownProfile, "type %q", typ)
}

// List returns the profiles in registration order.
func (r *Registry) List() []*ICP {
	out := make([]*ICP, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.byName[key])
	}
	return out
}

// Len returns the number of registered profiles.
func (r *Registry) Len() int {
	return len(r.order)
}

// BestMatch qualifies the prospect against every profile and returns the
// highest-scoring one whose hard gate passes. Ties keep registration order.
// The second return value is false when no profile's gate passes.
func (r *Registry) BestMatch(m *Matcher, p *model.Prospect) (Qualification, bool) {
	var candidates []Qualification
	for _, profile := range r.List() {
		q := m.Qualify(p, profile)
		if q.Matches {
			candidates = append(candidates, q)
		}
	}
	if len(candidates) == 0 {
		return Qualification{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates[0], true
}
