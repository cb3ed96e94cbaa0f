package capability

import (
	"fmt"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// Registry is the static feature table. Construct one per process (or per
// test) and thread it explicitly into validation; there is no package-level
// instance.
type Registry struct {
	features map[FeatureID]Feature
}

// NewRegistry returns an empty registry, for tests that want full control
// over the table.
func NewRegistry() *Registry {
	return &Registry{features: make(map[FeatureID]Feature)}
}

// Default returns a registry populated with the full language feature table.
func Default() *Registry {
	r := NewRegistry()
	for _, f := range defaultFeatures {
		r.Register(f)
	}
	return r
}

// Register adds one feature. Registering the same ID twice is a programmer
// error and panics.
func (r *Registry) Register(f Feature) {
	if _, exists := r.features[f.ID]; exists {
		panic(fmt.Sprintf("feature %q already registered", f.ID))
	}
	if f.Dependencies == nil {
		f.Dependencies = mapset.NewThreadUnsafeSet[FeatureID]()
	}
	r.features[f.ID] = f
}

// Lookup returns the feature with the given ID.
func (r *Registry) Lookup(id FeatureID) (Feature, bool) {
	f, ok := r.features[id]
	return f, ok
}

// CapabilitiesFor computes the feature set a given engine tier supports:
// every feature whose minimum tier is at or below the requested one, closed
// over declared dependencies. The closure guarantees monotonicity across
// tiers even if the table were to declare a dependency on a higher-tier
// feature.
func (r *Registry) CapabilitiesFor(engine EngineType) mapset.Set[FeatureID] {
	out := mapset.NewThreadUnsafeSet[FeatureID]()
	rank, ok := engineRank[engine]
	if !ok {
		return out
	}

	for id, f := range r.features {
		if engineRank[f.MinEngine] <= rank {
			out.Add(id)
		}
	}

	// Forward-close dependencies until a fixed point.
	for {
		added := false
		for _, id := range out.ToSlice() {
			f := r.features[id]
			for _, dep := range f.Dependencies.ToSlice() {
				if out.Add(dep) {
					added = true
				}
			}
		}
		if !added {
			break
		}
	}
	return out
}

// DependenciesSatisfied reports whether every declared dependency of the
// feature is present in the available set.
func (r *Registry) DependenciesSatisfied(f Feature, available mapset.Set[FeatureID]) bool {
	return f.Dependencies.IsSubset(available)
}

// MissingDependencies returns the feature's dependencies absent from the
// available set, sorted for deterministic reporting.
func (r *Registry) MissingDependencies(f Feature, available mapset.Set[FeatureID]) []FeatureID {
	missing := f.Dependencies.Difference(available).ToSlice()
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}
