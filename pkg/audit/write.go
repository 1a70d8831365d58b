package audit

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/licaudit/licaudit/pkg/errors"
)

// Encode writes the report as indented JSON to w.
func (r *Report) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Write stores the report at path atomically: the document is written to a
// temp file in the destination directory and renamed into place, so a
// crash mid-write never leaves a corrupt or partial file at path.
func (r *Report) Write(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeReportWrite, err, "create output directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeReportWrite, err, "create temp file in %s", dir)
	}
	tmpName := tmp.Name()

	if err := r.Encode(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeReportWrite, err, "encode report")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeReportWrite, err, "close temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeReportWrite, err, "rename into %s", path)
	}
	return nil
}

// ReadReport loads a previously written report document.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read report %s", path)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidReport, err, "decode report %s", path)
	}
	return &r, nil
}
