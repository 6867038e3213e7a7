// Package store defines the ports the record store backends implement.
package store

import (
	"context"
	"time"

	"github.com/Furim/MoneyFlexerski/internal/core"
)

// RecordQuery is a conjunction of field-equality tests. Zero values mean
// "match any": an empty Kind matches every kind, a zero Year every year,
// and so on.
type RecordQuery struct {
	Kind    core.Kind
	Year    int
	Month   int
	Section string
}

// Matches reports whether the record satisfies every non-zero test.
func (q RecordQuery) Matches(r core.Record) bool {
	if q.Kind != "" && r.Kind != q.Kind {
		return false
	}
	if q.Year != 0 && r.Year != q.Year {
		return false
	}
	if q.Month != 0 && r.Month != q.Month {
		return false
	}
	if q.Section != "" && r.Section != q.Section {
		return false
	}
	return true
}

// Ports for the storage backends.
type (
	RecordStore interface {
		// InsertRecord appends a record and returns its assigned ID.
		InsertRecord(ctx context.Context, r core.Record) (int64, error)

		// UpsertIncome replaces the income record for (year, month), or
		// inserts it when absent. Income is unique per month.
		UpsertIncome(ctx context.Context, r core.Record) error

		// GetIncome returns the income record for (year, month), or nil
		// when none exists.
		GetIncome(ctx context.Context, year, month int) (*core.Record, error)

		// SearchRecords returns all records matching the query, in
		// insertion order.
		SearchRecords(ctx context.Context, q RecordQuery) ([]core.Record, error)

		// AllRecords returns the full record set in insertion order.
		AllRecords(ctx context.Context) ([]core.Record, error)

		// LastModified reports when the store was last written.
		LastModified() (time.Time, error)
	}

	SectionStore interface {
		// LoadSections returns the full section collection.
		LoadSections(ctx context.Context) ([]core.Section, error)

		// ReplaceSections truncates the section collection and rewrites it.
		ReplaceSections(ctx context.Context, sections []core.Section) error

		// RecordAdjustment rewrites the section collection and appends the
		// ledger entry as one atomic write.
		RecordAdjustment(ctx context.Context, sections []core.Section, entry core.Record) error
	}

	// Store is the full storage surface the application wires up.
	Store interface {
		RecordStore
		SectionStore
	}
)
