package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/licaudit/licaudit/pkg/audit"
	licerrors "github.com/licaudit/licaudit/pkg/errors"
)

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldWD) })
}

func testCLI(t *testing.T) *CLI {
	t.Helper()
	return New(os.Stderr, LogInfo)
}

func TestRunScanWritesReport(t *testing.T) {
	root := t.TempDir()
	chdir(t, root)

	writeFixture(t, filepath.Join(root, "requirements.txt"), "requests==2.31.0\n")
	writeFixture(t, filepath.Join(root, "site-packages", "requests-2.31.0.dist-info", "METADATA"),
		"Name: requests\nVersion: 2.31.0\nLicense: Apache 2.0\n")
	writeFixture(t, filepath.Join(root, "web", "package.json"),
		`{"name": "web", "version": "1.0.0", "license": "MIT"}`)

	output := filepath.Join(root, "out", "report.json")
	opts := &scanOpts{output: output, noCache: true}

	if err := testCLI(t).runScan(context.Background(), opts, []string{root}); err != nil {
		t.Fatalf("runScan: %v", err)
	}

	report, err := audit.ReadReport(output)
	if err != nil {
		t.Fatalf("ReadReport: %v", err)
	}
	if report.Summary.TotalDependencies == 0 {
		t.Error("report has no dependencies")
	}
	if _, ok := report.Summary.Extractors["pip"]; !ok {
		t.Error("pip extractor status missing")
	}
	if _, ok := report.Summary.Extractors["npm"]; !ok {
		t.Error("npm extractor status missing")
	}
}

func TestRunScanConflictExit(t *testing.T) {
	root := t.TempDir()
	chdir(t, root)

	// Two contradictory claims for the same installed package.
	writeFixture(t, filepath.Join(root, "site-packages", "pkg-1.0.dist-info", "METADATA"),
		"Name: pkg\nVersion: 1.0\nLicense: MIT\nClassifier: License :: OSI Approved :: Apache Software License\n")

	opts := &scanOpts{output: filepath.Join(root, "report.json"), noCache: true}
	err := testCLI(t).runScan(context.Background(), opts, []string{root})
	if !errors.Is(err, ErrConflicts) {
		t.Fatalf("want ErrConflicts, got %v", err)
	}

	report, rerr := audit.ReadReport(opts.output)
	if rerr != nil {
		t.Fatalf("ReadReport: %v", rerr)
	}
	if report.Summary.WithConflicts != 1 {
		t.Errorf("WithConflicts = %d, want 1", report.Summary.WithConflicts)
	}
}

func TestRunScanUsesContextLogger(t *testing.T) {
	root := t.TempDir()
	chdir(t, root)

	writeFixture(t, filepath.Join(root, "package.json"), `{not json`)
	writeFixture(t, filepath.Join(root, "web", "package.json"),
		`{"name": "web", "version": "1.0.0", "license": "MIT"}`)

	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, LogInfo))

	opts := &scanOpts{output: filepath.Join(root, "report.json"), noCache: true}
	if err := testCLI(t).runScan(ctx, opts, []string{root}); err != nil {
		t.Fatalf("runScan: %v", err)
	}
	if !strings.Contains(buf.String(), "skipping") {
		t.Errorf("parse warning should reach the context logger, got:\n%s", buf.String())
	}
}

func TestRunScanNoRecords(t *testing.T) {
	root := t.TempDir()
	chdir(t, root)

	opts := &scanOpts{output: filepath.Join(root, "report.json"), noCache: true}
	err := testCLI(t).runScan(context.Background(), opts, []string{root})
	if !licerrors.Is(err, licerrors.ErrCodeNoRecords) {
		t.Fatalf("want NO_RECORDS, got %v", err)
	}
}

func TestRunScanDeterministic(t *testing.T) {
	root := t.TempDir()
	chdir(t, root)

	writeFixture(t, filepath.Join(root, "requirements.txt"), "requests==2.31.0\nflask\n")
	writeFixture(t, filepath.Join(root, "site-packages", "requests-2.31.0.dist-info", "METADATA"),
		"Name: requests\nVersion: 2.31.0\nLicense: Apache 2.0\n")

	first := filepath.Join(root, "a.json")
	second := filepath.Join(root, "b.json")
	c := testCLI(t)
	if err := c.runScan(context.Background(), &scanOpts{output: first, noCache: true}, []string{root}); err != nil {
		t.Fatalf("first scan: %v", err)
	}
	if err := c.runScan(context.Background(), &scanOpts{output: second, noCache: true}, []string{root}); err != nil {
		t.Fatalf("second scan: %v", err)
	}

	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if string(a) != string(b) {
		t.Error("two scans over unchanged input should be byte-identical")
	}
}
