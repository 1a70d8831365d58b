package audit

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReportWriteAndRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "output.json")

	report := BuildReport(sampleDeps())
	if err := report.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	loaded, err := ReadReport(path)
	if err != nil {
		t.Fatalf("ReadReport: %v", err)
	}
	if loaded.Summary.TotalDependencies != report.Summary.TotalDependencies {
		t.Errorf("round-trip total = %d, want %d",
			loaded.Summary.TotalDependencies, report.Summary.TotalDependencies)
	}
}

func TestReportWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output.json")

	if err := BuildReport(nil).Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("expected only output.json in dir, got %d entries", len(entries))
	}
}

func TestReportWriteReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output.json")

	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := BuildReport(nil).Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte("stale")) {
		t.Error("existing file should have been replaced")
	}
}

func TestReportWriteIsByteStable(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")

	deps := sampleDeps()
	if err := BuildReport(deps).Write(a); err != nil {
		t.Fatal(err)
	}
	if err := BuildReport(deps).Write(b); err != nil {
		t.Fatal(err)
	}

	da, _ := os.ReadFile(a)
	db, _ := os.ReadFile(b)
	if !bytes.Equal(da, db) {
		t.Error("two writes of the same aggregation should be byte-identical")
	}
}

func TestReadReportMissing(t *testing.T) {
	if _, err := ReadReport(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing report")
	}
}
