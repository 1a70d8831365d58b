// Package python extracts pip dependency records from a project tree.
//
// License claims come from installed package metadata (*.dist-info
// directories, the METADATA file pip writes), the same data
// importlib.metadata exposes. Manifest files (requirements*.txt,
// pyproject.toml) contribute declared dependency names; a declared
// dependency that is not installed yields a record with no license claim.
package python

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/licaudit/licaudit/pkg/audit"
)

// Source extracts pip records from one or more scan roots.
type Source struct {
	Roots []string
	// Logf receives non-fatal parse warnings. Optional.
	Logf func(format string, args ...any)
}

// New creates a pip source over the given roots.
func New(roots ...string) *Source {
	return &Source{Roots: roots}
}

// Ecosystem returns the pip ecosystem.
func (s *Source) Ecosystem() audit.Ecosystem {
	return audit.EcosystemPip
}

// Extract walks every root for installed distributions and manifest
// files. Installed packages yield one record each; declared dependencies
// yield a record per manifest mention, carrying the installed license when
// the package is present so that both discovery paths agree.
func (s *Source) Extract(ctx context.Context) ([]audit.Record, error) {
	var records []audit.Record

	for _, root := range s.Roots {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		if _, err := os.Stat(root); err != nil {
			return records, err
		}

		manifests, dists, err := s.discover(root)
		if err != nil {
			return records, err
		}

		installed := make(map[string]dist, len(dists))
		for _, d := range dists {
			installed[normalizeName(d.Name)] = d
			records = append(records, audit.Record{
				Ecosystem:   audit.EcosystemPip,
				Name:        normalizeName(d.Name),
				Version:     d.Version,
				RawLicenses: d.Licenses,
				SourcePath:  d.Path,
			})
		}

		for _, m := range manifests {
			declared, err := s.parseManifest(m)
			if err != nil {
				s.logf("skipping %s: %v", m, err)
				continue
			}
			for _, dep := range declared {
				rec := audit.Record{
					Ecosystem:  audit.EcosystemPip,
					Name:       dep.Name,
					Version:    dep.Pin,
					SourcePath: m,
				}
				if d, ok := installed[dep.Name]; ok {
					rec.RawLicenses = d.Licenses
					if rec.Version == "" {
						rec.Version = d.Version
					}
				}
				records = append(records, rec)
			}
		}
	}

	return records, nil
}

// declared is a dependency named by a manifest, optionally pinned.
type declared struct {
	Name string // PEP 503 normalized
	Pin  string // exact pinned version, if any
}

// discover walks root collecting manifest paths and installed
// distributions. Heavy unrelated trees are skipped.
func (s *Source) discover(root string) (manifests []string, dists []dist, err error) {
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			s.logf("walk %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			switch d.Name() {
			case ".git", "node_modules", "__pycache__":
				return filepath.SkipDir
			}
			if strings.HasSuffix(d.Name(), ".dist-info") {
				if di, ok := readDistInfo(path); ok {
					dists = append(dists, di)
				}
				return filepath.SkipDir
			}
			return nil
		}
		if isManifest(d.Name()) {
			manifests = append(manifests, path)
		}
		return nil
	})
	return manifests, dists, err
}

func (s *Source) parseManifest(path string) ([]declared, error) {
	if filepath.Base(path) == "pyproject.toml" {
		return parsePyproject(path)
	}
	return parseRequirements(path)
}

func isManifest(name string) bool {
	if name == "pyproject.toml" {
		return true
	}
	return strings.HasPrefix(name, "requirements") && strings.HasSuffix(name, ".txt")
}

func (s *Source) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
	}
}

// normalizeName applies PEP 503 normalization: lowercase with runs of
// "-", "_" and "." collapsed to a single hyphen.
func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	prevSep := false
	for _, r := range name {
		if r == '-' || r == '_' || r == '.' {
			prevSep = true
			continue
		}
		if prevSep && b.Len() > 0 {
			b.WriteByte('-')
		}
		prevSep = false
		b.WriteRune(r)
	}
	return b.String()
}

var _ audit.Source = (*Source)(nil)
