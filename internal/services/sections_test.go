package services

import (
	"context"
	"testing"
	"time"

	"github.com/Furim/MoneyFlexerski/internal/core"
	"github.com/Furim/MoneyFlexerski/internal/store/memory"
)

func newLedger(t *testing.T) (*SectionLedger, *memory.Store) {
	t.Helper()
	st := memory.New()
	ledger := NewSectionLedger(st)
	ledger.now = func() time.Time { return time.Date(2024, 6, 21, 10, 0, 0, 0, time.UTC) }
	if err := ledger.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	return ledger, st
}

// Reference scenario: add "Rent" at zero, add 500, subtract 150.
func TestSectionLedgerAdjustScenario(t *testing.T) {
	ctx := context.Background()
	ledger, st := newLedger(t)

	if err := ledger.Add(ctx, "Rent", core.Money{}); err != nil {
		t.Fatal(err)
	}
	if err := ledger.Adjust(ctx, "Rent", OpAdd, "500", 2024, 6); err != nil {
		t.Fatal(err)
	}
	if err := ledger.Adjust(ctx, "Rent", OpSubtract, "150", 2024, 6); err != nil {
		t.Fatal(err)
	}

	sections := ledger.Sections()
	if len(sections) != 1 || sections[0].Balance.Cents != 35000 {
		t.Fatalf("balance = %+v, want 350.00", sections[0].Balance)
	}

	// Persisted collection agrees with the in-memory one.
	persisted, err := st.LoadSections(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(persisted) != 1 || persisted[0].Balance.Cents != 35000 {
		t.Fatalf("persisted balance = %+v, want 350.00", persisted)
	}

	entries, err := ledger.History(ctx, "Rent")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	// Both entries share a date, so the stable sort keeps insertion order.
	if entries[0].Amount.Cents != 50000 || entries[1].Amount.Cents != -15000 {
		t.Errorf("entries = [%d, %d], want [50000, -15000]", entries[0].Amount.Cents, entries[1].Amount.Cents)
	}
	for _, e := range entries {
		if e.Kind != core.KindSectionEntry || e.Section != "Rent" {
			t.Errorf("unexpected entry: %+v", e)
		}
		if e.Day != 21 || e.Year != 2024 || e.Month != 6 {
			t.Errorf("entry stamped %d/%d/%d, want 21/6/2024", e.Day, e.Month, e.Year)
		}
	}

	// Balance equals initial plus the signed sum of the entries.
	var signed int64
	for _, e := range entries {
		signed += e.Amount.Cents
	}
	if signed != sections[0].Balance.Cents {
		t.Errorf("signed entry sum %d != balance %d", signed, sections[0].Balance.Cents)
	}
}

func TestSectionLedgerAddRejectsBadNames(t *testing.T) {
	ctx := context.Background()
	ledger, st := newLedger(t)

	if err := ledger.Add(ctx, "Rent", core.Money{Cents: 1000}); err != nil {
		t.Fatal(err)
	}
	if err := ledger.Add(ctx, "Rent", core.Money{}); err != core.ErrDuplicateSection {
		t.Errorf("duplicate add = %v, want ErrDuplicateSection", err)
	}
	if err := ledger.Add(ctx, "   ", core.Money{}); err != core.ErrEmptySection {
		t.Errorf("empty add = %v, want ErrEmptySection", err)
	}

	persisted, err := st.LoadSections(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(persisted) != 1 {
		t.Fatalf("persisted %d sections, want 1", len(persisted))
	}
}

func TestSectionLedgerAdjustValidation(t *testing.T) {
	ctx := context.Background()
	ledger, st := newLedger(t)
	if err := ledger.Add(ctx, "Rent", core.Money{}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		call func() error
	}{
		{name: "not a number", call: func() error { return ledger.Adjust(ctx, "Rent", OpAdd, "abc", 2024, 6) }},
		{name: "zero amount", call: func() error { return ledger.Adjust(ctx, "Rent", OpAdd, "0", 2024, 6) }},
		{name: "negative amount", call: func() error { return ledger.Adjust(ctx, "Rent", OpAdd, "-5", 2024, 6) }},
		{name: "unknown section", call: func() error { return ledger.Adjust(ctx, "Food", OpAdd, "5", 2024, 6) }},
		{name: "unknown operation", call: func() error { return ledger.Adjust(ctx, "Rent", "multiply", "5", 2024, 6) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err == nil {
				t.Fatal("expected error")
			}
			// Store untouched: no ledger entries, balance still zero.
			records, err := st.AllRecords(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(records) != 0 {
				t.Fatalf("store has %d records, want 0", len(records))
			}
			if bal := ledger.Sections()[0].Balance.Cents; bal != 0 {
				t.Fatalf("balance = %d, want 0", bal)
			}
		})
	}
}

func TestSectionLedgerAdjustClampsDayToSelectedMonth(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(t)
	ledger.now = func() time.Time { return time.Date(2025, 1, 31, 10, 0, 0, 0, time.UTC) }
	if err := ledger.Add(ctx, "Rent", core.Money{}); err != nil {
		t.Fatal(err)
	}

	// Adjusting with February selected on the 31st must still persist.
	if err := ledger.Adjust(ctx, "Rent", OpAdd, "50", 2025, 2); err != nil {
		t.Fatal(err)
	}

	entries, err := ledger.History(ctx, "Rent")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Day != 28 || entries[0].Month != 2 || entries[0].Year != 2025 {
		t.Errorf("entry stamped %d/%d/%d, want 28/2/2025", entries[0].Day, entries[0].Month, entries[0].Year)
	}
}

func TestSectionLedgerHistoryIncludesTaggedRecords(t *testing.T) {
	ctx := context.Background()
	ledger, st := newLedger(t)
	if err := ledger.Add(ctx, "Rent", core.Money{}); err != nil {
		t.Fatal(err)
	}

	// Expenses and earnings tagged with the section show up next to the
	// ledger entries.
	if _, err := st.InsertRecord(ctx, core.NewExpense(core.Money{Cents: 100}, 2, 2024, 5, "Rent")); err != nil {
		t.Fatal(err)
	}
	if err := ledger.Adjust(ctx, "Rent", OpAdd, "10", 2024, 6); err != nil {
		t.Fatal(err)
	}

	entries, err := ledger.History(ctx, "Rent")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	// Newest first: the June adjustment precedes the May expense.
	if entries[0].Kind != core.KindSectionEntry || entries[1].Kind != core.KindExpense {
		t.Errorf("unexpected order: %v, %v", entries[0].Kind, entries[1].Kind)
	}
}

func TestSectionLedgerLoadPersistedSections(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	if err := st.ReplaceSections(ctx, []core.Section{{Name: "Rent", Balance: core.Money{Cents: 5000}}}); err != nil {
		t.Fatal(err)
	}

	ledger := NewSectionLedger(st)
	if err := ledger.Load(ctx); err != nil {
		t.Fatal(err)
	}
	sections := ledger.Sections()
	if len(sections) != 1 || sections[0].Name != "Rent" || sections[0].Balance.Cents != 5000 {
		t.Fatalf("unexpected sections: %+v", sections)
	}
}
