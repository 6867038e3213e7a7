package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Furim/MoneyFlexerski/internal/core"
	"github.com/Furim/MoneyFlexerski/internal/history"
	"github.com/Furim/MoneyFlexerski/internal/store"
)

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
)

// Operation is the direction of a section adjustment.
type Operation string

// SectionLedger owns the in-memory section list and keeps it consistent
// with the persisted collection. Sections are loaded in full at startup and
// the whole collection is rewritten on every mutation.
type SectionLedger struct {
	store    store.Store
	sections []core.Section

	// now is swappable so tests can pin today's date.
	now func() time.Time
}

func NewSectionLedger(s store.Store) *SectionLedger {
	return &SectionLedger{store: s, now: time.Now}
}

// Load reads the section collection from the store. Call once at startup.
func (l *SectionLedger) Load(ctx context.Context) error {
	sections, err := l.store.LoadSections(ctx)
	if err != nil {
		return fmt.Errorf("load sections: %w", err)
	}
	l.sections = sections
	slog.InfoContext(ctx, "Sections loaded", "count", len(sections))
	return nil
}

// Sections returns a copy of the current section list.
func (l *SectionLedger) Sections() []core.Section {
	return append([]core.Section(nil), l.sections...)
}

// Add appends a new section with the given initial balance and persists the
// full collection. Empty and duplicate names are rejected without touching
// the store.
func (l *SectionLedger) Add(ctx context.Context, name string, initial core.Money) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.ErrEmptySection
	}
	for _, s := range l.sections {
		if s.Name == name {
			return core.ErrDuplicateSection
		}
	}

	next := append(l.Sections(), core.Section{Name: name, Balance: initial})
	if err := l.store.ReplaceSections(ctx, next); err != nil {
		return fmt.Errorf("persist sections: %w", err)
	}
	l.sections = next

	slog.InfoContext(ctx, "Section added", "section", name, "initial_cents", initial.Cents)
	return nil
}

// Adjust applies an add or subtract operation to a section's balance. The
// amount must parse as a positive decimal. On success the new balance and a
// signed ledger entry stamped with today's day and the selected year/month
// persist together in one write.
func (l *SectionLedger) Adjust(ctx context.Context, name string, op Operation, amountText string, year, month int) error {
	amount, err := core.ParseMoney(amountText)
	if err != nil {
		return err
	}
	if amount.Cents <= 0 {
		return core.ErrInvalidAmount
	}

	idx := -1
	for i, s := range l.sections {
		if s.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.ErrUnknownSection
	}

	signed := amount
	if op == OpSubtract {
		signed = amount.Neg()
	} else if op != OpAdd {
		return fmt.Errorf("unknown operation %q", op)
	}

	next := l.Sections()
	next[idx].Balance = next[idx].Balance.Add(signed)

	// Today's day can exceed the selected month's length (adjusting a past
	// February on the 31st); clamp so the entry stays a valid date.
	day := l.now().Day()
	if max := core.DaysInMonth(year, month); day > max {
		day = max
	}

	entry := core.NewSectionEntry(name, signed, day, year, month)
	if err := l.store.RecordAdjustment(ctx, next, entry); err != nil {
		return fmt.Errorf("persist adjustment: %w", err)
	}
	l.sections = next

	slog.InfoContext(ctx, "Section adjusted",
		"section", name,
		"operation", string(op),
		"amount_cents", signed.Cents,
		"balance_cents", next[idx].Balance.Cents)

	return nil
}

// History returns every record carrying the section's name, newest first.
func (l *SectionLedger) History(ctx context.Context, name string) ([]core.Record, error) {
	records, err := l.store.SearchRecords(ctx, store.RecordQuery{Section: name})
	if err != nil {
		return nil, fmt.Errorf("section history: %w", err)
	}
	history.Sort(records, history.NewestFirst)
	return records, nil
}
