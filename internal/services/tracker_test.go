package services

import (
	"context"
	"testing"

	"github.com/Furim/MoneyFlexerski/internal/core"
	"github.com/Furim/MoneyFlexerski/internal/store/memory"
)

func TestTrackerSaveIncomeUpserts(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	tracker := NewTracker(st)

	if err := tracker.SaveIncome(ctx, "3000", 2024, 6); err != nil {
		t.Fatal(err)
	}
	if err := tracker.SaveIncome(ctx, "3500,50", 2024, 6); err != nil {
		t.Fatal(err)
	}

	records, err := st.AllRecords(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1 (re-saving income must replace)", len(records))
	}
	if records[0].Amount.Cents != 350050 {
		t.Errorf("income = %d cents, want 350050", records[0].Amount.Cents)
	}

	income, err := st.GetIncome(ctx, 2024, 6)
	if err != nil {
		t.Fatal(err)
	}
	if income == nil || income.Amount.Cents != 350050 {
		t.Errorf("GetIncome = %+v, want 350050 cents", income)
	}
}

func TestTrackerInvalidInputLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	tracker := NewTracker(st)

	tests := []struct {
		name string
		call func() error
	}{
		{name: "income not a number", call: func() error { return tracker.SaveIncome(ctx, "abc", 2024, 6) }},
		{name: "expense not a number", call: func() error { return tracker.SaveExpense(ctx, "abc", 5, 2024, 6, "") }},
		{name: "expense missing day", call: func() error { return tracker.SaveExpense(ctx, "10", 0, 2024, 6, "") }},
		{name: "expense day out of range", call: func() error { return tracker.SaveExpense(ctx, "10", 32, 2024, 6, "") }},
		{name: "earning negative", call: func() error { return tracker.SaveEarning(ctx, "-10", 5, 2024, 6, "") }},
		{name: "earning empty", call: func() error { return tracker.SaveEarning(ctx, "", 5, 2024, 6, "") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err == nil {
				t.Fatal("expected validation error")
			}
			records, err := st.AllRecords(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(records) != 0 {
				t.Fatalf("store has %d records, want 0", len(records))
			}
		})
	}
}

func TestTrackerSaveExpenseWithSection(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	tracker := NewTracker(st)

	if err := tracker.SaveExpense(ctx, "200", 5, 2024, 6, "Rent"); err != nil {
		t.Fatal(err)
	}
	if err := tracker.SaveEarning(ctx, "100", 10, 2024, 6, ""); err != nil {
		t.Fatal(err)
	}

	records, err := st.AllRecords(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Kind != core.KindExpense || records[0].Section != "Rent" {
		t.Errorf("unexpected expense record: %+v", records[0])
	}
	if records[1].Kind != core.KindAdditionalEarning || records[1].Section != "" {
		t.Errorf("unexpected earning record: %+v", records[1])
	}
}
