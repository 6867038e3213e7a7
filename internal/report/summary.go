// Package report computes the monthly aggregates the dashboard and the
// charts are built from. Everything here is recomputed from scratch over
// the raw record set; nothing is cached between refreshes.
package report

import (
	"context"
	"fmt"

	"github.com/Furim/MoneyFlexerski/internal/core"
	"github.com/Furim/MoneyFlexerski/internal/store"
)

// MonthSummary is the full aggregate for one (year, month).
type MonthSummary struct {
	Year        int
	Month       int
	DaysInMonth int

	MonthlyIncome core.Money
	TotalExpenses core.Money
	TotalEarnings core.Money
	Balance       core.Money

	// DailyIncome is the implied even daily share of the monthly income,
	// in dollars. A charting convenience, not an accounting fact.
	DailyIncome float64

	// Per-day sums, 0-indexed by day-1. Days with no record are zero.
	DailyExpenses []core.Money
	DailyEarnings []core.Money

	// Balances is the cumulative balance curve: the flat daily income
	// share plus the running net of earnings minus expenses up to each day.
	Balances []float64
}

// SectionNet is a section's net flow (earnings minus expenses tagged with
// the section) for the summarized month.
type SectionNet struct {
	Name string
	Net  core.Money
}

// Summarize computes the aggregate for (year, month) from the given
// records. Records outside the month or of unrelated kinds are ignored, so
// callers may pass either a pre-filtered or the full record set.
func Summarize(records []core.Record, year, month int) MonthSummary {
	days := core.DaysInMonth(year, month)
	sum := MonthSummary{
		Year:          year,
		Month:         month,
		DaysInMonth:   days,
		DailyExpenses: make([]core.Money, days),
		DailyEarnings: make([]core.Money, days),
		Balances:      make([]float64, days),
	}

	for _, r := range records {
		if r.Year != year || r.Month != month {
			continue
		}
		day := r.Day
		if day < 1 {
			day = 1
		}
		if day > days {
			day = days
		}
		switch r.Kind {
		case core.KindIncome:
			sum.MonthlyIncome = r.Amount
		case core.KindExpense:
			sum.TotalExpenses = sum.TotalExpenses.Add(r.Amount)
			sum.DailyExpenses[day-1] = sum.DailyExpenses[day-1].Add(r.Amount)
		case core.KindAdditionalEarning:
			sum.TotalEarnings = sum.TotalEarnings.Add(r.Amount)
			sum.DailyEarnings[day-1] = sum.DailyEarnings[day-1].Add(r.Amount)
		}
	}

	sum.Balance = sum.MonthlyIncome.Add(sum.TotalEarnings).Sub(sum.TotalExpenses)
	if sum.MonthlyIncome.Cents != 0 {
		sum.DailyIncome = sum.MonthlyIncome.Dollars() / float64(days)
	}

	// Each point gets the flat daily income share once, plus the running
	// net flow up to that day. The income term does not compound.
	var cumulative core.Money
	for d := 0; d < days; d++ {
		cumulative = cumulative.Add(sum.DailyEarnings[d]).Sub(sum.DailyExpenses[d])
		sum.Balances[d] = sum.DailyIncome + cumulative.Dollars()
	}

	return sum
}

// SummarizeMonth loads the month's records from the store and aggregates
// them.
func SummarizeMonth(ctx context.Context, rs store.RecordStore, year, month int) (MonthSummary, error) {
	records, err := rs.SearchRecords(ctx, store.RecordQuery{Year: year, Month: month})
	if err != nil {
		return MonthSummary{}, fmt.Errorf("load month records: %w", err)
	}
	return Summarize(records, year, month), nil
}

// SectionNets computes each section's monthly net flow from expense and
// earning records tagged with its name.
func SectionNets(ctx context.Context, rs store.RecordStore, sections []core.Section, year, month int) ([]SectionNet, error) {
	nets := make([]SectionNet, 0, len(sections))
	for _, s := range sections {
		expenses, err := rs.SearchRecords(ctx, store.RecordQuery{
			Kind: core.KindExpense, Year: year, Month: month, Section: s.Name,
		})
		if err != nil {
			return nil, fmt.Errorf("section %q expenses: %w", s.Name, err)
		}
		earnings, err := rs.SearchRecords(ctx, store.RecordQuery{
			Kind: core.KindAdditionalEarning, Year: year, Month: month, Section: s.Name,
		})
		if err != nil {
			return nil, fmt.Errorf("section %q earnings: %w", s.Name, err)
		}
		var net core.Money
		for _, r := range earnings {
			net = net.Add(r.Amount)
		}
		for _, r := range expenses {
			net = net.Sub(r.Amount)
		}
		nets = append(nets, SectionNet{Name: s.Name, Net: net})
	}
	return nets, nil
}
