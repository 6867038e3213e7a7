// Package history orders the full record set for the history table.
package history

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Furim/MoneyFlexerski/internal/core"
)

const (
	NewestFirst   SortOrder = "newest_first"
	OldestFirst   SortOrder = "oldest_first"
	HighestAmount SortOrder = "highest_amount"
	LowestAmount  SortOrder = "lowest_amount"
)

type SortOrder string

func (o SortOrder) Valid() bool {
	switch o {
	case NewestFirst, OldestFirst, HighestAmount, LowestAmount:
		return true
	}
	return false
}

// ParseSortOrder maps a display label like "Newest First" to its order.
func ParseSortOrder(label string) (SortOrder, error) {
	o := SortOrder(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_"))
	if !o.Valid() {
		return "", fmt.Errorf("unknown sort order %q", label)
	}
	return o, nil
}

// Row is one rendered history line.
type Row struct {
	Type   string
	Amount string
	Date   string
}

// Sort orders records in place. Date orders use the (year, month, day)
// tuple with 0 standing in for missing fields, so incomplete records float
// to the oldest end. Amount orders are stable: ties keep store order.
func Sort(records []core.Record, order SortOrder) {
	switch order {
	case NewestFirst:
		sort.SliceStable(records, func(i, j int) bool {
			return dateKeyLess(records[j], records[i])
		})
	case OldestFirst:
		sort.SliceStable(records, func(i, j int) bool {
			return dateKeyLess(records[i], records[j])
		})
	case HighestAmount:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Amount.Cents > records[j].Amount.Cents
		})
	case LowestAmount:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Amount.Cents < records[j].Amount.Cents
		})
	}
}

func dateKeyLess(a, b core.Record) bool {
	if a.Year != b.Year {
		return a.Year < b.Year
	}
	if a.Month != b.Month {
		return a.Month < b.Month
	}
	return a.Day < b.Day
}

// Rows renders records into table rows: capitalized kind, amount with two
// decimals and a currency prefix, and a "day/month/year" date with "N/A"
// standing in for missing fields.
func Rows(records []core.Record, symbol string) []Row {
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = Row{
			Type:   capitalize(string(r.Kind)),
			Amount: r.Amount.Format(symbol),
			Date:   fmt.Sprintf("%s/%s/%s", fieldOrNA(r.Day), fieldOrNA(r.Month), fieldOrNA(r.Year)),
		}
	}
	return rows
}

// FormatTimestamp renders the store's last-modified time for display under
// the table.
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

func fieldOrNA(v int) string {
	if v == 0 {
		return "N/A"
	}
	return strconv.Itoa(v)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
