// Package chart projects the monthly aggregates into renderable bar and
// line series. It holds no data of its own: every series is rebuilt from a
// fresh MonthSummary, so switching chart types carries no cached state.
package chart

import (
	"math"

	"github.com/Furim/MoneyFlexerski/internal/report"
)

const (
	Bar  Type = "bar_chart"
	Line Type = "line_chart"
)

const (
	minZoom  = 0.5
	maxZoom  = 2.0
	zoomStep = 1.2
	weekDays = 7
)

type Type string

// State is the navigation snapshot the presentation layer owns: current
// week window, zoom factor and selected chart type. Methods return a new
// snapshot rather than mutating shared state.
type State struct {
	Week int
	Zoom float64
	Type Type
}

// NewState returns the initial navigation state: first week, no zoom,
// bar chart.
func NewState() State {
	return State{Week: 1, Zoom: 1.0, Type: Bar}
}

// ZoomIn multiplies the zoom factor by the step, clamped to the maximum.
func (s State) ZoomIn() State {
	s.Zoom = math.Min(s.Zoom*zoomStep, maxZoom)
	return s
}

// ZoomOut divides the zoom factor by the step, clamped to the minimum.
func (s State) ZoomOut() State {
	s.Zoom = math.Max(s.Zoom/zoomStep, minZoom)
	return s
}

// PrevWeek moves the window one week back while above the first week.
func (s State) PrevWeek() State {
	if s.Week > 1 {
		s.Week--
	}
	return s
}

// NextWeek moves the window one week forward while below the last week of
// the month.
func (s State) NextWeek(daysInMonth int) State {
	if s.Week < MaxWeeks(daysInMonth) {
		s.Week++
	}
	return s
}

// WithType switches the chart type. Bar mode shows week and zoom controls;
// line mode shows none.
func (s State) WithType(t Type) State {
	s.Type = t
	return s
}

// MaxWeeks is the number of 7-day windows covering the month.
func MaxWeeks(daysInMonth int) int {
	return (daysInMonth + weekDays - 1) / weekDays
}

// BarValue is one scaled bar within a day's group.
type BarValue struct {
	Label string
	Value float64
}

// BarGroup is the four bars drawn for one day of the window.
type BarGroup struct {
	Day     int
	Income  BarValue
	Expense BarValue
	Balance BarValue
	Earning BarValue
}

// BarSeries is the renderable bar-chart view of one week window.
type BarSeries struct {
	StartDay int
	EndDay   int
	MaxY     float64
	BarWidth float64
	Groups   []BarGroup
}

// Point is one line-chart sample: x is the 0-based day index.
type Point struct {
	X int
	Y float64
}

// LineSeries is the renderable line-chart view of the whole month.
type LineSeries struct {
	CumulativeIncome   []Point
	CumulativeExpenses []Point
	CumulativeEarnings []Point
	Balances           []Point
}

// ProjectBars builds the bar series for the state's week window. Every bar
// is scaled by the zoom factor; the vertical range keeps a floor of 1000
// plus headroom above the tallest observed value.
func ProjectBars(sum report.MonthSummary, s State) BarSeries {
	// Clamp the week so a stale window from a longer month still projects
	// a valid slice of this one.
	week := s.Week
	if week < 1 {
		week = 1
	}
	if max := MaxWeeks(sum.DaysInMonth); week > max {
		week = max
	}
	startDay := (week-1)*weekDays + 1
	endDay := week * weekDays
	if endDay > sum.DaysInMonth {
		endDay = sum.DaysInMonth
	}

	maxValue := sum.DailyIncome
	for d := 0; d < sum.DaysInMonth; d++ {
		maxValue = math.Max(maxValue, sum.DailyExpenses[d].Dollars())
		maxValue = math.Max(maxValue, sum.DailyEarnings[d].Dollars())
		maxValue = math.Max(maxValue, sum.Balances[d])
	}

	series := BarSeries{
		StartDay: startDay,
		EndDay:   endDay,
		MaxY:     math.Max(1000, maxValue*s.Zoom+250),
		BarWidth: 40 / float64(endDay-startDay+1) * s.Zoom,
	}

	for day := startDay; day <= endDay; day++ {
		series.Groups = append(series.Groups, BarGroup{
			Day:     day,
			Income:  BarValue{Label: "Income", Value: sum.DailyIncome * s.Zoom},
			Expense: BarValue{Label: "Expense", Value: sum.DailyExpenses[day-1].Dollars() * s.Zoom},
			Balance: BarValue{Label: "Balance", Value: sum.Balances[day-1] * s.Zoom},
			Earning: BarValue{Label: "Additional Earning", Value: sum.DailyEarnings[day-1].Dollars() * s.Zoom},
		})
	}

	return series
}

// ProjectLines builds the four cumulative series across the full month.
// Week window and zoom do not apply in line mode.
func ProjectLines(sum report.MonthSummary) LineSeries {
	days := sum.DaysInMonth
	series := LineSeries{
		CumulativeIncome:   make([]Point, days),
		CumulativeExpenses: make([]Point, days),
		CumulativeEarnings: make([]Point, days),
		Balances:           make([]Point, days),
	}

	var cumExpenses, cumEarnings float64
	for d := 0; d < days; d++ {
		cumExpenses += sum.DailyExpenses[d].Dollars()
		cumEarnings += sum.DailyEarnings[d].Dollars()
		series.CumulativeIncome[d] = Point{X: d, Y: sum.DailyIncome * float64(d+1)}
		series.CumulativeExpenses[d] = Point{X: d, Y: cumExpenses}
		series.CumulativeEarnings[d] = Point{X: d, Y: cumEarnings}
		series.Balances[d] = Point{X: d, Y: sum.Balances[d]}
	}

	return series
}
