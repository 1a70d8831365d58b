package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/licaudit/licaudit/pkg/audit"
	"github.com/licaudit/licaudit/pkg/store"
)

func sampleReport() audit.Report {
	return audit.Report{
		Summary:      audit.Summary{TotalDependencies: 2},
		Dependencies: []audit.Entry{},
	}
}

func TestHealthz(t *testing.T) {
	s := New(Config{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestReportNotFound(t *testing.T) {
	s := New(Config{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/report", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestReportInMemory(t *testing.T) {
	s := New(Config{})
	s.SetLatest(sampleReport())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/report", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got audit.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Summary.TotalDependencies != 2 {
		t.Errorf("total = %d, want 2", got.Summary.TotalDependencies)
	}
}

func TestReportFromStore(t *testing.T) {
	st := store.NewMemoryStore()
	if _, err := st.Save(context.Background(), sampleReport()); err != nil {
		t.Fatal(err)
	}

	s := New(Config{Store: st})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/report", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestScan(t *testing.T) {
	st := store.NewMemoryStore()
	scans := 0
	s := New(Config{
		Store: st,
		Scanner: func(context.Context) (audit.Report, error) {
			scans++
			return sampleReport(), nil
		},
	})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/scan", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if scans != 1 {
		t.Errorf("scanner calls = %d, want 1", scans)
	}

	// The scan result is persisted and served afterwards.
	if _, ok, _ := st.Latest(context.Background()); !ok {
		t.Error("scan result not persisted")
	}
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/report", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("report after scan = %d, want 200", rec.Code)
	}
}

func TestScanNotConfigured(t *testing.T) {
	s := New(Config{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/scan", nil))

	if rec.Code != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", rec.Code)
	}
}
