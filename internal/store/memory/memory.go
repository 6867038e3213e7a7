// Package memory provides an in-memory record store. It backs the "memory"
// backend and the test suites of every core component.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Furim/MoneyFlexerski/internal/core"
	"github.com/Furim/MoneyFlexerski/internal/store"
)

type Store struct {
	mu       sync.Mutex
	nextID   int64
	records  []core.Record
	sections []core.Section
	modified time.Time
}

func New() *Store {
	return &Store{nextID: 1, modified: time.Now()}
}

// InsertRecord appends the record and returns its synthetic ID.
func (s *Store) InsertRecord(_ context.Context, r core.Record) (int64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.nextID
	s.nextID++
	s.records = append(s.records, r)
	s.touch()
	return r.ID, nil
}

func (s *Store) UpsertIncome(_ context.Context, r core.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.records {
		if existing.Kind == core.KindIncome && existing.Year == r.Year && existing.Month == r.Month {
			r.ID = existing.ID
			s.records[i] = r
			s.touch()
			return nil
		}
	}
	r.ID = s.nextID
	s.nextID++
	s.records = append(s.records, r)
	s.touch()
	return nil
}

func (s *Store) GetIncome(_ context.Context, year, month int) (*core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.Kind == core.KindIncome && r.Year == year && r.Month == month {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Store) SearchRecords(_ context.Context, q store.RecordQuery) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Record
	for _, r := range s.records {
		if q.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) AllRecords(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Record(nil), s.records...), nil
}

func (s *Store) LastModified() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modified, nil
}

func (s *Store) LoadSections(_ context.Context) ([]core.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Section(nil), s.sections...), nil
}

func (s *Store) ReplaceSections(_ context.Context, sections []core.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections = append([]core.Section(nil), sections...)
	s.touch()
	return nil
}

// RecordAdjustment rewrites the sections and appends the ledger entry under
// a single lock acquisition, mirroring the transactional SQLite path.
func (s *Store) RecordAdjustment(_ context.Context, sections []core.Section, entry core.Record) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections = append([]core.Section(nil), sections...)
	entry.ID = s.nextID
	s.nextID++
	s.records = append(s.records, entry)
	s.touch()
	return nil
}

func (s *Store) touch() {
	s.modified = time.Now()
}
