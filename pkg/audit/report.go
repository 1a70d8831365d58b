package audit

import (
	"sort"

	"github.com/licaudit/licaudit/pkg/license"
)

// Report is the final audit document. Its JSON encoding is deterministic:
// entries and their nested lists are sorted, and no volatile metadata
// (timestamps, run ids) is embedded, so two runs over unchanged input
// produce byte-identical files.
type Report struct {
	Summary      Summary `json:"summary"`
	Dependencies []Entry `json:"dependencies"`
}

// Summary carries the top-level counters.
type Summary struct {
	TotalDependencies int                         `json:"total_dependencies"`
	WithConflicts     int                         `json:"with_conflicts"`
	WithUnrecognized  int                         `json:"with_unrecognized"`
	Ecosystems        map[string]EcosystemSummary `json:"ecosystems"`
	// Licenses counts dependencies per canonical license id, the
	// audit's license histogram. Unrecognized claims share one bucket
	// under the sentinel id. A dependency with several license ids
	// counts once per id. Map keys encode sorted, keeping the document
	// deterministic.
	Licenses map[string]int `json:"licenses"`
	// Extractors reports per-source record counts and failures; filled in
	// by the caller after extraction, absent for reports built directly
	// from records.
	Extractors map[string]ExtractorStatus `json:"extractors,omitempty"`
}

// EcosystemSummary groups the counters per package ecosystem.
type EcosystemSummary struct {
	TotalDependencies int `json:"total_dependencies"`
	WithConflicts     int `json:"with_conflicts"`
	WithUnrecognized  int `json:"with_unrecognized"`
}

// ExtractorStatus describes how one extractor fared.
type ExtractorStatus struct {
	Records int  `json:"records"`
	Failed  bool `json:"failed,omitempty"`
}

// Entry is one aggregated dependency in the report.
type Entry struct {
	Ecosystem         string   `json:"ecosystem"`
	Name              string   `json:"name"`
	Versions          []string `json:"versions"`
	Licenses          []string `json:"licenses"`
	HasConflict       bool     `json:"has_conflict"`
	HasUnrecognized   bool     `json:"has_unrecognized"`
	UnrecognizedTexts []string `json:"unrecognized_texts,omitempty"`
	Sources           []string `json:"sources,omitempty"`
}

// BuildReport assembles the aggregated dependencies into a report.
// An empty aggregation yields a valid, empty-but-well-formed document.
func BuildReport(deps map[Key]*Dependency) *Report {
	report := &Report{
		Summary: Summary{
			Ecosystems: make(map[string]EcosystemSummary),
			Licenses:   make(map[string]int),
		},
		Dependencies: make([]Entry, 0, len(deps)),
	}

	for _, dep := range deps {
		entry := Entry{
			Ecosystem:         string(dep.Ecosystem),
			Name:              dep.Name,
			Versions:          sortedKeys(dep.Versions),
			Licenses:          sortedKeys(dep.Licenses),
			HasConflict:       dep.HasConflict,
			HasUnrecognized:   dep.HasUnrecognized,
			UnrecognizedTexts: sortedKeysOrNil(dep.UnrecognizedTexts),
			Sources:           sortedKeysOrNil(dep.Sources),
		}
		report.Dependencies = append(report.Dependencies, entry)

		eco := report.Summary.Ecosystems[entry.Ecosystem]
		eco.TotalDependencies++
		report.Summary.TotalDependencies++
		if dep.HasConflict {
			eco.WithConflicts++
			report.Summary.WithConflicts++
		}
		if dep.HasUnrecognized {
			eco.WithUnrecognized++
			report.Summary.WithUnrecognized++
			report.Summary.Licenses[license.Unrecognized]++
		}
		report.Summary.Ecosystems[entry.Ecosystem] = eco

		for id := range dep.Licenses {
			report.Summary.Licenses[id]++
		}
	}

	sort.Slice(report.Dependencies, func(i, j int) bool {
		a, b := report.Dependencies[i], report.Dependencies[j]
		if a.Ecosystem != b.Ecosystem {
			return a.Ecosystem < b.Ecosystem
		}
		return a.Name < b.Name
	})

	return report
}

// sortedKeys returns the set members sorted, never nil, so empty sets
// encode as [] rather than null.
func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// sortedKeysOrNil returns nil for empty sets so optional fields are
// omitted from the JSON encoding.
func sortedKeysOrNil(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	return sortedKeys(set)
}
