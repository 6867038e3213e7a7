package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Furim/MoneyFlexerski/internal/core"
	"github.com/Furim/MoneyFlexerski/internal/store"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestInsertAndSearchRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	id, err := repo.InsertRecord(ctx, core.NewExpense(core.Money{Cents: 20000}, 5, 2024, 6, "Rent"))
	if err != nil {
		t.Fatal(err)
	}
	if id == 0 {
		t.Error("expected non-zero id")
	}
	if _, err := repo.InsertRecord(ctx, core.NewAdditionalEarning(core.Money{Cents: 10000}, 10, 2024, 6, "")); err != nil {
		t.Fatal(err)
	}

	got, err := repo.SearchRecords(ctx, store.RecordQuery{Kind: core.KindExpense, Year: 2024, Month: 6})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	r := got[0]
	if r.Kind != core.KindExpense || r.Amount.Cents != 20000 || r.Day != 5 || r.Section != "Rent" {
		t.Errorf("unexpected record: %+v", r)
	}

	all, err := repo.AllRecords(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("AllRecords len = %d, want 2", len(all))
	}
}

func TestUpsertIncomeUniquePerMonth(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if err := repo.UpsertIncome(ctx, core.NewIncome(core.Money{Cents: 100000}, 2024, 6)); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpsertIncome(ctx, core.NewIncome(core.Money{Cents: 250000}, 2024, 6)); err != nil {
		t.Fatal(err)
	}

	income, err := repo.GetIncome(ctx, 2024, 6)
	if err != nil {
		t.Fatal(err)
	}
	if income == nil || income.Amount.Cents != 250000 {
		t.Fatalf("GetIncome = %+v, want 250000 cents", income)
	}

	all, err := repo.SearchRecords(ctx, store.RecordQuery{Kind: core.KindIncome})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("income records = %d, want 1", len(all))
	}

	missing, err := repo.GetIncome(ctx, 2020, 1)
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Errorf("GetIncome for empty month = %+v, want nil", missing)
	}
}

func TestReplaceSectionsTruncates(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	first := []core.Section{{Name: "Rent"}, {Name: "Food", Balance: core.Money{Cents: 300}}}
	if err := repo.ReplaceSections(ctx, first); err != nil {
		t.Fatal(err)
	}
	second := []core.Section{{Name: "Travel", Balance: core.Money{Cents: -500}}}
	if err := repo.ReplaceSections(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, err := repo.LoadSections(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Travel" || got[0].Balance.Cents != -500 {
		t.Fatalf("sections = %+v, want single Travel at -500", got)
	}
}

func TestRecordAdjustmentWritesBoth(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	sections := []core.Section{{Name: "Rent", Balance: core.Money{Cents: 35000}}}
	entry := core.NewSectionEntry("Rent", core.Money{Cents: -15000}, 21, 2024, 6)
	if err := repo.RecordAdjustment(ctx, sections, entry); err != nil {
		t.Fatal(err)
	}

	persisted, err := repo.LoadSections(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(persisted) != 1 || persisted[0].Balance.Cents != 35000 {
		t.Fatalf("sections = %+v", persisted)
	}

	entries, err := repo.SearchRecords(ctx, store.RecordQuery{Kind: core.KindSectionEntry, Section: "Rent"})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Amount.Cents != -15000 {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestRecordAdjustmentRejectsInvalidEntry(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	bad := core.NewSectionEntry("", core.Money{Cents: 100}, 1, 2024, 6)
	if err := repo.RecordAdjustment(ctx, nil, bad); err == nil {
		t.Fatal("expected validation error")
	}
	all, err := repo.AllRecords(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("records = %d, want 0", len(all))
	}
}

func TestLastModified(t *testing.T) {
	repo := newTestRepo(t)
	ts, err := repo.LastModified()
	if err != nil {
		t.Fatal(err)
	}
	if ts.IsZero() {
		t.Error("expected a non-zero modification time")
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	repo.Close()

	// Reopening runs migrations again; ErrNoChange must be swallowed.
	repo, err = NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	repo.Close()
}
