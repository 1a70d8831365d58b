// Package audit turns heterogeneous dependency records into a single,
// deduplicated, conflict-annotated license report.
//
// Records flow in from per-ecosystem extractors, are normalized against
// the license taxonomy, merged per logical dependency, and assembled into
// a deterministic report document suitable for diff-based CI checks.
package audit

import "context"

// Ecosystem identifies a package-management system.
type Ecosystem string

const (
	// EcosystemPip is the Python/pip ecosystem.
	EcosystemPip Ecosystem = "pip"
	// EcosystemNpm is the Node/npm ecosystem.
	EcosystemNpm Ecosystem = "npm"
)

// Record is a single raw license claim for a dependency, produced by an
// extractor. Records are transient: they are consumed once by the
// aggregator and never persisted.
//
// Ecosystem and Name are always set. RawLicenses holds the literal
// declared value(s) exactly as read upstream; an empty slice means the
// dependency declared no license.
// JSON tags exist for extraction snapshot caching only; records never
// appear in the report document.
type Record struct {
	Ecosystem   Ecosystem `json:"ecosystem"`
	Name        string    `json:"name"`
	Version     string    `json:"version,omitempty"`
	RawLicenses []string  `json:"raw_licenses,omitempty"`
	// SourcePath is where the claim was read from (manifest file or
	// metadata directory), kept for traceability.
	SourcePath string `json:"source_path,omitempty"`
}

// Source produces dependency records for one ecosystem.
//
// Implementations read manifest files and installed-package metadata under
// a project root. A source that finds nothing, or whose tooling is absent,
// returns zero records; that is a data condition, not an error. Errors are
// reserved for conditions the caller may want to log (unreadable root,
// malformed metadata that prevented any extraction).
type Source interface {
	// Ecosystem returns the ecosystem this source covers.
	Ecosystem() Ecosystem
	// Extract reads dependency metadata and returns the raw records.
	Extract(ctx context.Context) ([]Record, error)
}
