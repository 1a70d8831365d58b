package python

import (
	"os"

	"github.com/BurntSushi/toml"
)

// pyprojectFile covers the dependency-bearing parts of pyproject.toml:
// PEP 621 [project] tables and the legacy [tool.poetry] layout.
type pyprojectFile struct {
	Project struct {
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies    map[string]any `toml:"dependencies"`
			DevDependencies map[string]any `toml:"dev-dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// parsePyproject reads declared dependencies from a pyproject.toml.
func parsePyproject(path string) ([]declared, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file pyprojectFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var result []declared

	add := func(dep declared) {
		if dep.Name == "" || dep.Name == "python" || seen[dep.Name] {
			return
		}
		seen[dep.Name] = true
		result = append(result, dep)
	}

	for _, spec := range file.Project.Dependencies {
		add(parsePEP508(spec))
	}
	for _, specs := range file.Project.OptionalDependencies {
		for _, spec := range specs {
			add(parsePEP508(spec))
		}
	}
	for name, val := range file.Tool.Poetry.Dependencies {
		add(declared{Name: normalizeName(name), Pin: poetryPin(val)})
	}
	for name, val := range file.Tool.Poetry.DevDependencies {
		add(declared{Name: normalizeName(name), Pin: poetryPin(val)})
	}

	return result, nil
}

// parsePEP508 extracts the name and optional exact pin from a PEP 508
// specification like "requests[security]>=2.28; python_version>='3.8'".
func parsePEP508(spec string) declared {
	m := depSpecRE.FindStringSubmatch(spec)
	if len(m) < 2 || m[1] == "" {
		return declared{}
	}
	return declared{Name: normalizeName(m[1]), Pin: m[2]}
}

// poetryPin extracts an exact version from a poetry dependency value.
// Caret/tilde ranges are constraints, not versions, and yield no pin.
func poetryPin(val any) string {
	var v string
	switch t := val.(type) {
	case string:
		v = t
	case map[string]any:
		if ver, ok := t["version"].(string); ok {
			v = ver
		}
	}
	if v == "" || v == "*" {
		return ""
	}
	if v[0] == '^' || v[0] == '~' || v[0] == '>' || v[0] == '<' {
		return ""
	}
	return v
}
