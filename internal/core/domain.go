package core

import (
	"errors"
	"strings"
	"time"
)

const (
	KindIncome            Kind = "income"
	KindExpense           Kind = "expense"
	KindAdditionalEarning Kind = "additional_earning"
	KindSectionEntry      Kind = "section_entry"
)

type (
	// Kind tags a record with its variant. Every persisted record carries
	// exactly one kind; optional fields (day, section) depend on it.
	Kind string

	Money struct {
		Cents int64
	}

	// Record is a single persisted entry. Income records have no day and no
	// section. Expense and additional-earning records may carry a section
	// tag. Section entries always carry one and their amount is signed.
	Record struct {
		ID      int64
		Kind    Kind
		Amount  Money
		Day     int
		Year    int
		Month   int
		Section string
	}

	// Section is a named sub-budget with its own running balance.
	Section struct {
		Name    string
		Balance Money
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDay       = errors.New("invalid day")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidYear      = errors.New("invalid year")
	ErrMissingDay       = errors.New("day must be selected")
	ErrUnknownKind      = errors.New("unknown record kind")
	ErrEmptySection     = errors.New("empty section name")
	ErrDuplicateSection = errors.New("section already exists")
	ErrUnknownSection   = errors.New("unknown section")
)

// NewIncome builds the singleton income record for a month.
func NewIncome(amount Money, year, month int) Record {
	return Record{Kind: KindIncome, Amount: amount, Year: year, Month: month}
}

// NewExpense builds a dated expense, optionally tagged with a section.
func NewExpense(amount Money, day, year, month int, section string) Record {
	return Record{Kind: KindExpense, Amount: amount, Day: day, Year: year, Month: month, Section: section}
}

// NewAdditionalEarning builds a dated earning, optionally tagged with a section.
func NewAdditionalEarning(amount Money, day, year, month int, section string) Record {
	return Record{Kind: KindAdditionalEarning, Amount: amount, Day: day, Year: year, Month: month, Section: section}
}

// NewSectionEntry builds a ledger entry for a section. The amount is signed:
// positive for additions, negative for subtractions.
func NewSectionEntry(section string, amount Money, day, year, month int) Record {
	return Record{Kind: KindSectionEntry, Amount: amount, Day: day, Year: year, Month: month, Section: section}
}

func (k Kind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindAdditionalEarning, KindSectionEntry:
		return true
	}
	return false
}

func (r Record) Validate() error {
	if !r.Kind.Valid() {
		return ErrUnknownKind
	}
	if r.Year < 1 {
		return ErrInvalidYear
	}
	if r.Month < 1 || r.Month > 12 {
		return ErrInvalidMonth
	}
	switch r.Kind {
	case KindIncome:
		if r.Amount.Cents < 0 {
			return ErrInvalidAmount
		}
	case KindExpense, KindAdditionalEarning:
		if r.Amount.Cents <= 0 {
			return ErrInvalidAmount
		}
		if r.Day < 1 || r.Day > DaysInMonth(r.Year, r.Month) {
			return ErrInvalidDay
		}
	case KindSectionEntry:
		if r.Amount.Cents == 0 {
			return ErrInvalidAmount
		}
		if strings.TrimSpace(r.Section) == "" {
			return ErrEmptySection
		}
		if r.Day < 1 || r.Day > DaysInMonth(r.Year, r.Month) {
			return ErrInvalidDay
		}
	}
	return nil
}

func (s Section) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptySection
	}
	return nil
}

// DaysInMonth returns the number of days in the given Gregorian month,
// including leap Februaries. December rolls over to January of year+1.
func DaysInMonth(year, month int) int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return int(first.AddDate(0, 1, 0).Sub(first).Hours() / 24)
}
