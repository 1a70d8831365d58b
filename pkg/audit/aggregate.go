package audit

import (
	"github.com/licaudit/licaudit/pkg/license"
)

// Key identifies a logical dependency: the same package discovered through
// different paths (manifest, lock file, installed metadata) shares a key.
type Key struct {
	Ecosystem Ecosystem
	Name      string
}

// Dependency is the merged view of every record seen for one key.
// Instances are owned by the aggregator during accumulation and by the
// report builder afterwards.
type Dependency struct {
	Ecosystem Ecosystem
	Name      string
	// Versions holds every distinct version string seen.
	Versions map[string]struct{}
	// Licenses holds every distinct recognized canonical id. The
	// Unrecognized sentinel is never a member; it is tracked via
	// HasUnrecognized instead.
	Licenses map[string]struct{}
	// UnrecognizedTexts holds the trimmed raw texts that failed to
	// normalize, for manual triage.
	UnrecognizedTexts map[string]struct{}
	// Sources holds the paths records were read from.
	Sources map[string]struct{}
	// HasConflict is true iff Licenses contains more than one id.
	HasConflict bool
	// HasUnrecognized is true iff any record normalized to the
	// Unrecognized sentinel or declared no license at all.
	HasUnrecognized bool
}

// Aggregator merges records into per-dependency state. The merge is
// commutative and idempotent: feeding the same records in any order, or
// feeding them twice, yields the same final state.
type Aggregator struct {
	deps map[Key]*Dependency
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{deps: make(map[Key]*Dependency)}
}

// Add merges one record. Records without a name are silently dropped;
// extractors never produce them, but a malformed manifest must not abort
// the pipeline.
func (a *Aggregator) Add(rec Record) {
	if rec.Name == "" {
		return
	}

	key := Key{Ecosystem: rec.Ecosystem, Name: rec.Name}
	dep, ok := a.deps[key]
	if !ok {
		dep = &Dependency{
			Ecosystem:         rec.Ecosystem,
			Name:              rec.Name,
			Versions:          make(map[string]struct{}),
			Licenses:          make(map[string]struct{}),
			UnrecognizedTexts: make(map[string]struct{}),
			Sources:           make(map[string]struct{}),
		}
		a.deps[key] = dep
	}

	if rec.Version != "" {
		dep.Versions[rec.Version] = struct{}{}
	}
	if rec.SourcePath != "" {
		dep.Sources[rec.SourcePath] = struct{}{}
	}

	claimed := false
	for _, raw := range rec.RawLicenses {
		for _, n := range license.NormalizeAll(raw) {
			if n.Recognized() {
				claimed = true
				dep.Licenses[n.ID] = struct{}{}
				continue
			}
			dep.HasUnrecognized = true
			if n.Original != "" {
				claimed = true
				dep.UnrecognizedTexts[n.Original] = struct{}{}
			}
		}
	}
	if !claimed {
		// No license declared at all.
		dep.HasUnrecognized = true
	}

	dep.HasConflict = len(dep.Licenses) > 1
}

// Result returns the aggregated dependencies keyed by (ecosystem, name).
// The map is the aggregator's own state; callers take ownership and must
// not call Add afterwards.
func (a *Aggregator) Result() map[Key]*Dependency {
	return a.deps
}

// Aggregate consumes a record stream in one pass and returns the merged
// per-dependency state.
func Aggregate(records []Record) map[Key]*Dependency {
	agg := NewAggregator()
	for _, rec := range records {
		agg.Add(rec)
	}
	return agg.Result()
}
