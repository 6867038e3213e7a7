package tui

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Furim/MoneyFlexerski/internal/chart"
	"github.com/Furim/MoneyFlexerski/internal/core"
	"github.com/Furim/MoneyFlexerski/internal/history"
	"github.com/Furim/MoneyFlexerski/internal/report"
)

func (a *App) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(a.out)
	t.SetStyle(table.StyleRounded)
	return t
}

func (a *App) renderSummary(sum report.MonthSummary, nets []report.SectionNet) {
	fmt.Fprintf(a.out, "\nMonthly Income: %s\n", sum.MonthlyIncome.Format(a.symbol))
	fmt.Fprintf(a.out, "Total Expenses: %s\n", sum.TotalExpenses.Format(a.symbol))
	fmt.Fprintf(a.out, "Total Additional Earnings: %s\n", sum.TotalEarnings.Format(a.symbol))
	fmt.Fprintf(a.out, "Current Balance: %s\n", sum.Balance.Format(a.symbol))

	if len(nets) > 0 {
		t := a.newTable()
		t.AppendHeader(table.Row{"Section", "Monthly Net"})
		for _, n := range nets {
			t.AppendRow(table.Row{n.Name, n.Net.Format(a.symbol)})
		}
		t.Render()
	}
}

func (a *App) renderHistory(rows []history.Row, modified time.Time) {
	t := a.newTable()
	t.AppendHeader(table.Row{"Type", "Amount", "Date"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Type, r.Amount, r.Date})
	}
	t.Render()
	fmt.Fprintf(a.out, "Last database update: %s\n", history.FormatTimestamp(modified))
}

func (a *App) renderBarSeries(s chart.BarSeries) {
	fmt.Fprintf(a.out, "\nDays %d-%d  (max y %.0f, bar width %.1f)\n", s.StartDay, s.EndDay, s.MaxY, s.BarWidth)
	t := a.newTable()
	t.AppendHeader(table.Row{"Day", "Income", "Expense", "Balance", "Earning"})
	for _, g := range s.Groups {
		t.AppendRow(table.Row{
			g.Day,
			fmt.Sprintf("%.2f", g.Income.Value),
			fmt.Sprintf("%.2f", g.Expense.Value),
			fmt.Sprintf("%.2f", g.Balance.Value),
			fmt.Sprintf("%.2f", g.Earning.Value),
		})
	}
	t.Render()
}

func (a *App) renderLineSeries(s chart.LineSeries) {
	t := a.newTable()
	t.AppendHeader(table.Row{"Day", "Cum. Income", "Cum. Expenses", "Cum. Earnings", "Balance"})
	for i := range s.Balances {
		t.AppendRow(table.Row{
			i + 1,
			fmt.Sprintf("%.2f", s.CumulativeIncome[i].Y),
			fmt.Sprintf("%.2f", s.CumulativeExpenses[i].Y),
			fmt.Sprintf("%.2f", s.CumulativeEarnings[i].Y),
			fmt.Sprintf("%.2f", s.Balances[i].Y),
		})
	}
	t.Render()
}

func (a *App) renderSections(sections []core.Section) {
	if len(sections) == 0 {
		fmt.Fprintln(a.out, "\nNo sections yet.")
		return
	}
	t := a.newTable()
	t.AppendHeader(table.Row{"Section", "Balance"})
	for _, s := range sections {
		t.AppendRow(table.Row{s.Name, s.Balance.Format(a.symbol)})
	}
	t.Render()
}

func (a *App) renderSectionHistory(name string, records []core.Record) {
	fmt.Fprintf(a.out, "\n%s history:\n", name)
	for _, r := range records {
		fmt.Fprintf(a.out, "%d/%d/%d: %s\n", r.Day, r.Month, r.Year, r.Amount.Format(a.symbol))
	}
}
