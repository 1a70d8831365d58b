package javascript

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/licaudit/licaudit/pkg/audit"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLicenseFieldForms(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []string
	}{
		{
			name: "spdx string",
			json: `{"name": "a", "license": "MIT"}`,
			want: []string{"MIT"},
		},
		{
			name: "legacy object",
			json: `{"name": "a", "license": {"type": "Apache-2.0", "url": "http://example.com"}}`,
			want: []string{"Apache-2.0"},
		},
		{
			name: "legacy licenses array",
			json: `{"name": "a", "licenses": [{"type": "MIT"}, {"type": "GPL-2.0"}]}`,
			want: []string{"MIT", "GPL-2.0"},
		},
		{
			name: "missing",
			json: `{"name": "a"}`,
			want: nil,
		},
		{
			name: "null",
			json: `{"name": "a", "license": null}`,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "package.json")
			writeFile(t, path, tt.json)

			pkg, err := readPackageJSON(path)
			if err != nil {
				t.Fatalf("readPackageJSON: %v", err)
			}
			if got := pkg.licenseClaims(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("licenseClaims = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExactVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.2.3", "1.2.3"},
		{"^1.2.3", ""},
		{"~1.2.3", ""},
		{">=2.0.0", ""},
		{"*", ""},
		{"latest", ""},
		{"1.x || 2.x", ""},
		{"1.x", ""},
		{"1.2.x", ""},
		{"1.2.X", ""},
		{"1.2.*", ""},
		{"1.2.3-x86", "1.2.3-x86"},
		{"git+https://github.com/org/pkg.git", ""},
	}
	for _, tt := range tests {
		if got := exactVersion(tt.in); got != tt.want {
			t.Errorf("exactVersion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSourceExtract(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "package.json"), `{
  "name": "myapp",
  "version": "0.1.0",
  "license": "MIT",
  "dependencies": {"chalk": "5.3.0", "left-pad": "^1.3.0"},
  "devDependencies": {"jest": "^29.0.0"}
}`)
	writeFile(t, filepath.Join(root, "node_modules", "chalk", "package.json"), `{
  "name": "chalk", "version": "5.3.0", "license": "MIT"
}`)
	writeFile(t, filepath.Join(root, "node_modules", "left-pad", "package.json"), `{
  "name": "left-pad", "version": "1.3.0", "license": "WTFPL"
}`)
	writeFile(t, filepath.Join(root, "node_modules", "@scope", "pkg", "package.json"), `{
  "name": "@scope/pkg", "version": "2.0.0", "license": "ISC"
}`)
	writeFile(t, filepath.Join(root, "node_modules", "chalk", "node_modules", "nested", "package.json"), `{
  "name": "nested", "version": "0.0.1", "license": "BSD-3-Clause"
}`)

	src := New(root)
	records, err := src.Extract(context.Background())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	byName := map[string][]audit.Record{}
	for _, r := range records {
		if r.Ecosystem != audit.EcosystemNpm {
			t.Errorf("record %s has ecosystem %s", r.Name, r.Ecosystem)
		}
		byName[r.Name] = append(byName[r.Name], r)
	}

	// The project itself appears with its own license claim.
	app := byName["myapp"]
	if len(app) != 1 || len(app[0].RawLicenses) != 1 || app[0].RawLicenses[0] != "MIT" {
		t.Errorf("myapp records = %+v", app)
	}

	// chalk: installed record plus the declared record joined with the
	// installed license.
	if len(byName["chalk"]) != 2 {
		t.Fatalf("chalk records = %d, want 2", len(byName["chalk"]))
	}
	for _, r := range byName["chalk"] {
		if len(r.RawLicenses) != 1 || r.RawLicenses[0] != "MIT" {
			t.Errorf("chalk record %+v missing license", r)
		}
		if r.Version != "5.3.0" {
			t.Errorf("chalk version = %q", r.Version)
		}
	}

	// left-pad is declared with a range; the installed version fills it.
	for _, r := range byName["left-pad"] {
		if r.Version != "1.3.0" {
			t.Errorf("left-pad version = %q, want 1.3.0", r.Version)
		}
	}

	// Scoped and nested installs are both visited.
	if len(byName["@scope/pkg"]) != 1 {
		t.Errorf("@scope/pkg records = %d, want 1", len(byName["@scope/pkg"]))
	}
	if len(byName["nested"]) != 1 {
		t.Errorf("nested records = %d, want 1", len(byName["nested"]))
	}

	// jest is declared but not installed: no license claim.
	jest := byName["jest"]
	if len(jest) != 1 {
		t.Fatalf("jest records = %d, want 1", len(jest))
	}
	if len(jest[0].RawLicenses) != 0 {
		t.Errorf("jest should have no license claim, got %v", jest[0].RawLicenses)
	}
	if jest[0].Version != "" {
		t.Errorf("jest version = %q, want empty", jest[0].Version)
	}
}

func TestSourceExtractPrivateRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{
  "name": "internal-app",
  "version": "0.0.1",
  "private": true,
  "license": "UNLICENSED",
  "dependencies": {"chalk": "5.3.0"}
}`)
	writeFile(t, filepath.Join(root, "node_modules", "chalk", "package.json"), `{
  "name": "chalk", "version": "5.3.0", "license": "MIT"
}`)

	src := New(root)
	records, err := src.Extract(context.Background())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	for _, r := range records {
		if r.Name == "internal-app" {
			t.Error("private root package should not be audited")
		}
	}
	found := false
	for _, r := range records {
		if r.Name == "chalk" {
			found = true
		}
	}
	if !found {
		t.Error("dependencies of a private root should still be extracted")
	}
}

func TestSourceExtractMalformedManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{not json`)
	writeFile(t, filepath.Join(root, "sub", "package.json"), `{
  "name": "sub", "version": "1.0.0", "license": "MIT"
}`)

	var warned bool
	src := New(root)
	src.Logf = func(string, ...any) { warned = true }

	records, err := src.Extract(context.Background())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !warned {
		t.Error("malformed manifest should warn")
	}
	found := false
	for _, r := range records {
		if r.Name == "sub" {
			found = true
		}
	}
	if !found {
		t.Error("valid manifest should still be extracted")
	}
}

func TestSourceExtractMissingRoot(t *testing.T) {
	src := New(filepath.Join(t.TempDir(), "nope"))
	if _, err := src.Extract(context.Background()); err == nil {
		t.Error("missing root should error")
	}
}
