package javascript

import (
	"encoding/json"
	"os"
)

// packageFile covers the dependency- and license-bearing parts of a
// package.json manifest.
type packageFile struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Private bool   `json:"private"`

	License  licenseField   `json:"license"`
	Licenses []licenseField `json:"licenses"`

	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`

	// Both spellings occur in the wild; npm accepts either.
	BundledDependencies bundledField `json:"bundledDependencies"`
	BundleDependencies  bundledField `json:"bundleDependencies"`
}

// licenseField decodes the license value in any of its historical forms:
// a plain SPDX string, a {"type": ..., "url": ...} object, or null.
type licenseField struct {
	Value string
}

func (l *licenseField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		l.Value = s
		return nil
	}
	var obj struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		l.Value = obj.Type
		return nil
	}
	// Malformed license values should not sink the whole manifest.
	l.Value = ""
	return nil
}

// bundledField decodes bundledDependencies, which is either an array of
// names or the boolean true meaning "everything in dependencies".
type bundledField struct {
	Names []string
	All   bool
}

func (b *bundledField) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &b.Names); err == nil {
		return nil
	}
	var all bool
	if err := json.Unmarshal(data, &all); err == nil {
		b.All = all
		return nil
	}
	return nil
}

// licenseClaims returns the raw license strings a manifest makes for its
// own package.
func (p *packageFile) licenseClaims() []string {
	var claims []string
	if p.License.Value != "" {
		claims = append(claims, p.License.Value)
	}
	for _, l := range p.Licenses {
		if l.Value != "" {
			claims = append(claims, l.Value)
		}
	}
	return claims
}

// declaredSections lists every dependency section in manifest order.
func (p *packageFile) declaredSections() []map[string]string {
	return []map[string]string{
		p.Dependencies,
		p.DevDependencies,
		p.PeerDependencies,
		p.OptionalDependencies,
	}
}

func readPackageJSON(path string) (*packageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p packageFile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
