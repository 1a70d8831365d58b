// Package store persists audit reports.
//
// Reports themselves are deterministic documents; the store wraps each
// one in an envelope carrying the identity and timestamp of the scan run
// that produced it, so that history stays queryable without making the
// report bytes volatile.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/licaudit/licaudit/pkg/audit"
)

// Entry is one persisted report with its run metadata. The ID is a
// UUID string so every backend serializes it the same way.
type Entry struct {
	ID        string       `json:"id" bson:"_id"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	Report    audit.Report `json:"report" bson:"report"`
}

// Store persists report entries.
type Store interface {
	// Save wraps the report in a new entry and persists it.
	Save(ctx context.Context, report audit.Report) (Entry, error)
	// Latest returns the most recently saved entry. ok is false when
	// the store is empty.
	Latest(ctx context.Context) (Entry, bool, error)
	// Close releases backend resources.
	Close() error
}

func newEntry(report audit.Report) Entry {
	return Entry{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Report:    report,
	}
}
