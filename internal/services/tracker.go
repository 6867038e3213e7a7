// Package services orchestrates form submissions and the section ledger
// over the record store.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Furim/MoneyFlexerski/internal/core"
	"github.com/Furim/MoneyFlexerski/internal/store"
)

// Tracker handles the income, expense and earning forms. Every method
// parses its text input first; invalid input never reaches the store.
type Tracker struct {
	store store.RecordStore
}

func NewTracker(rs store.RecordStore) *Tracker {
	return &Tracker{store: rs}
}

// SaveIncome upserts the unique income record for (year, month).
func (t *Tracker) SaveIncome(ctx context.Context, amountText string, year, month int) error {
	amount, err := core.ParseMoney(amountText)
	if err != nil {
		return err
	}
	if err := t.store.UpsertIncome(ctx, core.NewIncome(amount, year, month)); err != nil {
		return fmt.Errorf("save income: %w", err)
	}
	slog.InfoContext(ctx, "Income saved", "year", year, "month", month, "amount_cents", amount.Cents)
	return nil
}

// SaveExpense inserts a dated expense. The day is required; the section tag
// is optional.
func (t *Tracker) SaveExpense(ctx context.Context, amountText string, day, year, month int, section string) error {
	amount, err := core.ParseMoney(amountText)
	if err != nil {
		return err
	}
	if day == 0 {
		return core.ErrMissingDay
	}
	rec := core.NewExpense(amount, day, year, month, section)
	if err := rec.Validate(); err != nil {
		return err
	}
	if _, err := t.store.InsertRecord(ctx, rec); err != nil {
		return fmt.Errorf("save expense: %w", err)
	}
	return nil
}

// SaveEarning inserts a dated additional earning. The day is required; the
// section tag is optional.
func (t *Tracker) SaveEarning(ctx context.Context, amountText string, day, year, month int, section string) error {
	amount, err := core.ParseMoney(amountText)
	if err != nil {
		return err
	}
	if day == 0 {
		return core.ErrMissingDay
	}
	rec := core.NewAdditionalEarning(amount, day, year, month, section)
	if err := rec.Validate(); err != nil {
		return err
	}
	if _, err := t.store.InsertRecord(ctx, rec); err != nil {
		return fmt.Errorf("save earning: %w", err)
	}
	return nil
}
