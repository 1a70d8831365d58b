// Package javascript extracts npm dependency records from a project tree.
//
// License claims come from the package.json manifests npm installs under
// node_modules. Project manifests contribute declared dependency names
// from every dependency section; a declared dependency that is not
// installed yields a record with no license claim.
package javascript

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/licaudit/licaudit/pkg/audit"
)

// Source extracts npm records from one or more scan roots.
type Source struct {
	Roots []string
	// Logf receives non-fatal parse warnings. Optional.
	Logf func(format string, args ...any)
}

// New creates an npm source over the given roots.
func New(roots ...string) *Source {
	return &Source{Roots: roots}
}

// Ecosystem returns the npm ecosystem.
func (s *Source) Ecosystem() audit.Ecosystem {
	return audit.EcosystemNpm
}

// Extract walks every root for project manifests and installed packages.
// Installed packages yield one record each; declared dependencies yield a
// record per manifest section mention, carrying the installed license when
// the package is present.
func (s *Source) Extract(ctx context.Context) ([]audit.Record, error) {
	var records []audit.Record

	for _, root := range s.Roots {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		if _, err := os.Stat(root); err != nil {
			return records, err
		}

		manifests, err := s.findManifests(root)
		if err != nil {
			return records, err
		}

		installed := make(map[string]*packageFile)
		for _, m := range manifests {
			nm := filepath.Join(filepath.Dir(m), "node_modules")
			s.readNodeModules(nm, func(path string, pkg *packageFile) {
				if pkg.Name == "" {
					return
				}
				if _, ok := installed[pkg.Name]; !ok {
					installed[pkg.Name] = pkg
				}
				records = append(records, audit.Record{
					Ecosystem:   audit.EcosystemNpm,
					Name:        pkg.Name,
					Version:     pkg.Version,
					RawLicenses: pkg.licenseClaims(),
					SourcePath:  path,
				})
			})
		}

		for _, m := range manifests {
			pkg, err := readPackageJSON(m)
			if err != nil {
				s.logf("skipping %s: %v", m, err)
				continue
			}

			// The project itself is part of the audit when named.
			// Private packages are unpublished internal code, not a
			// third-party license obligation.
			if pkg.Name != "" && !pkg.Private {
				records = append(records, audit.Record{
					Ecosystem:   audit.EcosystemNpm,
					Name:        pkg.Name,
					Version:     pkg.Version,
					RawLicenses: pkg.licenseClaims(),
					SourcePath:  m,
				})
			}

			seen := make(map[string]bool)
			for _, section := range pkg.declaredSections() {
				for name, rng := range section {
					if name == "" || seen[name] {
						continue
					}
					seen[name] = true
					rec := audit.Record{
						Ecosystem:  audit.EcosystemNpm,
						Name:       name,
						Version:    exactVersion(rng),
						SourcePath: m,
					}
					if inst, ok := installed[name]; ok {
						rec.RawLicenses = inst.licenseClaims()
						if rec.Version == "" {
							rec.Version = inst.Version
						}
					}
					records = append(records, rec)
				}
			}
			for _, name := range pkg.BundledDependencies.Names {
				if !seen[name] {
					s.logf("%s: bundled dependency %s not listed in dependencies", m, name)
				}
			}
		}
	}

	return records, nil
}

// findManifests walks root for project package.json files, leaving
// installed trees to the node_modules reader.
func (s *Source) findManifests(root string) ([]string, error) {
	var manifests []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			s.logf("walk %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			switch d.Name() {
			case ".git", "node_modules", "__pycache__":
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == "package.json" {
			manifests = append(manifests, path)
		}
		return nil
	})
	return manifests, err
}

// readNodeModules visits every installed package under a node_modules
// directory, including scoped packages and nested installs.
func (s *Source) readNodeModules(dir string, visit func(path string, pkg *packageFile)) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !e.IsDir() || e.Name() == ".bin" {
			continue
		}
		if strings.HasPrefix(e.Name(), "@") {
			scoped, err := os.ReadDir(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			for _, se := range scoped {
				if se.IsDir() {
					s.readPackage(filepath.Join(dir, e.Name(), se.Name()), visit)
				}
			}
			continue
		}
		s.readPackage(filepath.Join(dir, e.Name()), visit)
	}
}

func (s *Source) readPackage(dir string, visit func(path string, pkg *packageFile)) {
	manifest := filepath.Join(dir, "package.json")
	pkg, err := readPackageJSON(manifest)
	if err == nil {
		visit(manifest, pkg)
	} else if !os.IsNotExist(err) {
		s.logf("skipping %s: %v", manifest, err)
	}
	s.readNodeModules(filepath.Join(dir, "node_modules"), visit)
}

// exactVersion keeps a declared version only when it pins one release.
// Range specifiers and x-ranges name a dependency without fixing its
// version.
func exactVersion(rng string) string {
	rng = strings.TrimSpace(rng)
	if rng == "" || rng == "*" || rng == "latest" {
		return ""
	}
	switch rng[0] {
	case '^', '~', '>', '<', '=':
		return ""
	}
	if strings.ContainsAny(rng, " |") || strings.Contains(rng, "://") {
		return ""
	}
	// "1.x" or "1.2.X" are ranges. Wildcards only occur in the
	// release part, before any prerelease suffix.
	release, _, _ := strings.Cut(rng, "-")
	for _, part := range strings.Split(release, ".") {
		switch part {
		case "x", "X", "*":
			return ""
		}
	}
	return rng
}

func (s *Source) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
	}
}

var _ audit.Source = (*Source)(nil)
