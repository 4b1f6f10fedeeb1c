package api

import (
	"fmt"
	"strings"
)

// Sort selects which subreddit listing is requested.
type Sort uint8

const (
	SortHot Sort = iota
	SortNew
	SortRising
	SortTopAll
	SortTopYear
	SortTopMonth
	SortTopWeek
	SortTopDay
	SortTopHour
)

var sortNames = [...]string{
	SortHot:      "hot",
	SortNew:      "new",
	SortRising:   "rising",
	SortTopAll:   "top-all",
	SortTopYear:  "top-year",
	SortTopMonth: "top-month",
	SortTopWeek:  "top-week",
	SortTopDay:   "top-day",
	SortTopHour:  "top-hour",
}

// Sorts returns every supported sort mode.
func Sorts() []Sort {
	return []Sort{SortHot, SortNew, SortRising, SortTopAll, SortTopYear, SortTopMonth, SortTopWeek, SortTopDay, SortTopHour}
}

// ParseSort converts a sort mode name such as "top-week" into a Sort.
func ParseSort(s string) (Sort, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range sortNames {
		if name == s {
			return Sort(i), nil
		}
	}
	return SortHot, fmt.Errorf("%w: %q (want one of %s)", ErrInvalidSort, s, strings.Join(sortNames[:], ", "))
}

func (s Sort) String() string {
	if int(s) < len(sortNames) {
		return sortNames[s]
	}
	return fmt.Sprintf("Sort(%d)", s)
}

// Listing returns the listing path and the "t" time window for the sort mode.
// Only the top listings use a time window.
func (s Sort) Listing() (path, timeframe string) {
	switch s {
	case SortHot:
		return "hot", ""
	case SortNew:
		return "new", ""
	case SortRising:
		return "rising", ""
	case SortTopAll:
		return "top", "all"
	case SortTopYear:
		return "top", "year"
	case SortTopMonth:
		return "top", "month"
	case SortTopWeek:
		return "top", "week"
	case SortTopDay:
		return "top", "day"
	case SortTopHour:
		return "top", "hour"
	default:
		return "hot", ""
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Sort) UnmarshalText(b []byte) error {
	parsed, err := ParseSort(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Sort) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
