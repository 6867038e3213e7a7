// Package tui is the menu-driven terminal presentation. It is thin glue:
// every action re-reads the store, recomputes through the core packages and
// re-renders. Validation failures print as one-line messages and never
// change persisted state.
package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Furim/MoneyFlexerski/internal/chart"
	"github.com/Furim/MoneyFlexerski/internal/core"
	"github.com/Furim/MoneyFlexerski/internal/history"
	"github.com/Furim/MoneyFlexerski/internal/log"
	"github.com/Furim/MoneyFlexerski/internal/report"
	"github.com/Furim/MoneyFlexerski/internal/services"
	"github.com/Furim/MoneyFlexerski/internal/store"
)

// App owns the navigation state and wires user actions to the services.
type App struct {
	store    store.Store
	tracker  *services.Tracker
	sections *services.SectionLedger
	logger   *log.Logger

	in  *bufio.Reader
	out io.Writer

	symbol string

	year      int
	month     int
	chartView chart.State
	sortOrder history.SortOrder
}

func NewApp(s store.Store, tracker *services.Tracker, sections *services.SectionLedger, logger *log.Logger, symbol string, in io.Reader, out io.Writer) *App {
	now := time.Now()
	return &App{
		store:     s,
		tracker:   tracker,
		sections:  sections,
		logger:    logger.WithComponent(log.ComponentUI),
		in:        bufio.NewReader(in),
		out:       out,
		symbol:    symbol,
		year:      now.Year(),
		month:     int(now.Month()),
		chartView: chart.NewState(),
		sortOrder: history.NewestFirst,
	}
}

// Run drives the main menu until the user exits or the context is
// cancelled.
func (a *App) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprintf(a.out, "\n==== MoneyFlexerski %d/%d ====\n", a.month, a.year)
		fmt.Fprintln(a.out, "1) Dashboard")
		fmt.Fprintln(a.out, "2) History")
		fmt.Fprintln(a.out, "3) Charts")
		fmt.Fprintln(a.out, "4) Sections")
		fmt.Fprintln(a.out, "5) Select year/month")
		fmt.Fprintln(a.out, "6) Quit")

		choice, err := a.readIndex(6)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			fmt.Fprintln(a.out, "Invalid choice")
			continue
		}

		switch choice {
		case 1:
			err = a.dashboard(ctx)
		case 2:
			err = a.historyView(ctx)
		case 3:
			err = a.chartsView(ctx)
		case 4:
			err = a.sectionsView(ctx)
		case 5:
			a.selectMonth()
		case 6:
			return nil
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			a.logger.ErrorContext(ctx, "View failed", log.FieldError, err)
			fmt.Fprintln(a.out, "Error:", err)
		}
	}
}

func (a *App) dashboard(ctx context.Context) error {
	sum, err := report.SummarizeMonth(ctx, a.store, a.year, a.month)
	if err != nil {
		return err
	}
	nets, err := report.SectionNets(ctx, a.store, a.sections.Sections(), a.year, a.month)
	if err != nil {
		return err
	}
	a.renderSummary(sum, nets)

	fmt.Fprintln(a.out, "1) Save income  2) Save expense  3) Save earning  4) Back")
	choice, err := a.readIndex(4)
	if err != nil {
		return err
	}
	switch choice {
	case 1:
		amount := a.prompt("Monthly income amount: ")
		if err := a.tracker.SaveIncome(ctx, amount, a.year, a.month); err != nil {
			a.warn(err)
		}
	case 2:
		if err := a.submitDated(ctx, "Expense", a.tracker.SaveExpense); err != nil {
			return err
		}
	case 3:
		if err := a.submitDated(ctx, "Earning", a.tracker.SaveEarning); err != nil {
			return err
		}
	}
	return nil
}

// submitDated runs the shared expense/earning form: amount, day, optional
// section tag.
func (a *App) submitDated(ctx context.Context, label string, save func(context.Context, string, int, int, int, string) error) error {
	amount := a.prompt(label + " amount: ")
	dayText := a.prompt("Day of month: ")
	day, err := strconv.Atoi(strings.TrimSpace(dayText))
	if err != nil {
		a.warn(core.ErrMissingDay)
		return nil
	}
	section := strings.TrimSpace(a.prompt("Section (optional): "))
	if err := save(ctx, amount, day, a.year, a.month, section); err != nil {
		a.warn(err)
	}
	return nil
}

func (a *App) historyView(ctx context.Context) error {
	records, err := a.store.AllRecords(ctx)
	if err != nil {
		return err
	}
	history.Sort(records, a.sortOrder)

	modified, err := a.store.LastModified()
	if err != nil {
		return err
	}
	a.renderHistory(history.Rows(records, a.symbol), modified)

	fmt.Fprintln(a.out, "1) Newest first  2) Oldest first  3) Highest amount  4) Lowest amount  5) Back")
	choice, err := a.readIndex(5)
	if err != nil {
		return err
	}
	orders := []history.SortOrder{history.NewestFirst, history.OldestFirst, history.HighestAmount, history.LowestAmount}
	if choice >= 1 && choice <= 4 {
		a.sortOrder = orders[choice-1]
		return a.historyView(ctx)
	}
	return nil
}

func (a *App) chartsView(ctx context.Context) error {
	for {
		sum, err := report.SummarizeMonth(ctx, a.store, a.year, a.month)
		if err != nil {
			return err
		}

		if a.chartView.Type == chart.Bar {
			a.renderBarSeries(chart.ProjectBars(sum, a.chartView))
			fmt.Fprintln(a.out, "1) Prev week  2) Next week  3) Zoom out  4) Zoom in  5) Line chart  6) Back")
			choice, err := a.readIndex(6)
			if err != nil {
				return err
			}
			switch choice {
			case 1:
				a.chartView = a.chartView.PrevWeek()
			case 2:
				a.chartView = a.chartView.NextWeek(sum.DaysInMonth)
			case 3:
				a.chartView = a.chartView.ZoomOut()
			case 4:
				a.chartView = a.chartView.ZoomIn()
			case 5:
				a.chartView = a.chartView.WithType(chart.Line)
			case 6:
				return nil
			}
			continue
		}

		// Line mode: no week or zoom controls.
		a.renderLineSeries(chart.ProjectLines(sum))
		fmt.Fprintln(a.out, "1) Bar chart  2) Back")
		choice, err := a.readIndex(2)
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			a.chartView = a.chartView.WithType(chart.Bar)
		case 2:
			return nil
		}
	}
}

func (a *App) sectionsView(ctx context.Context) error {
	a.renderSections(a.sections.Sections())

	fmt.Fprintln(a.out, "1) Add section  2) Adjust section  3) Section history  4) Back")
	choice, err := a.readIndex(4)
	if err != nil {
		return err
	}
	switch choice {
	case 1:
		name := a.prompt("New section name: ")
		initial := core.Money{}
		if text := strings.TrimSpace(a.prompt("Initial balance (optional): ")); text != "" {
			initial, err = core.ParseMoney(text)
			if err != nil {
				a.warn(err)
				return nil
			}
		}
		if err := a.sections.Add(ctx, name, initial); err != nil {
			a.warn(err)
		}
	case 2:
		name := strings.TrimSpace(a.prompt("Section name: "))
		opText := strings.TrimSpace(a.prompt("Operation (add/subtract): "))
		amount := a.prompt("Amount: ")
		if err := a.sections.Adjust(ctx, name, services.Operation(opText), amount, a.year, a.month); err != nil {
			a.warn(err)
		}
	case 3:
		name := strings.TrimSpace(a.prompt("Section name: "))
		records, err := a.sections.History(ctx, name)
		if err != nil {
			return err
		}
		a.renderSectionHistory(name, records)
	}
	return nil
}

func (a *App) selectMonth() {
	yearText := strings.TrimSpace(a.prompt("Year: "))
	monthText := strings.TrimSpace(a.prompt("Month (1-12): "))
	year, err := strconv.Atoi(yearText)
	if err != nil || year < 1 {
		a.warn(core.ErrInvalidYear)
		return
	}
	month, err := strconv.Atoi(monthText)
	if err != nil || month < 1 || month > 12 {
		a.warn(core.ErrInvalidMonth)
		return
	}
	a.year, a.month = year, month
	// A new month gets a fresh chart window.
	a.chartView.Week = 1
}

func (a *App) prompt(label string) string {
	fmt.Fprint(a.out, label)
	line, _ := a.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

func (a *App) readIndex(count int) (int, error) {
	fmt.Fprintf(a.out, "Choice (1..%d): ", count)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return 0, err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil || n < 1 || n > count {
		return 0, fmt.Errorf("invalid input")
	}
	return n, nil
}

func (a *App) warn(err error) {
	fmt.Fprintln(a.out, "!", err)
}
