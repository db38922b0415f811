package date

import (
	"fmt"
	"strings"
)

// Period is a calendar period used to select and group bets: the -p flag of
// list, stats and export picks the period ending at a given date.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

// Periods lists the periods from the shortest to the longest.
var Periods = []Period{Daily, Weekly, Monthly, Quarterly, Yearly}

// periodNames holds the adjective used in reports and the unit accepted on
// the command line.
var periodNames = [...]struct{ adjective, unit string }{
	Daily:     {"daily", "day"},
	Weekly:    {"weekly", "week"},
	Monthly:   {"monthly", "month"},
	Quarterly: {"quarterly", "quarter"},
	Yearly:    {"yearly", "year"},
}

func (p Period) valid() bool { return p >= Daily && p <= Yearly }

// String returns the report name of p, e.g. "monthly".
func (p Period) String() string {
	if !p.valid() {
		return fmt.Sprintf("period(%d)", int(p))
	}
	return periodNames[p].adjective
}

// Unit returns the command line name of p, e.g. "month".
func (p Period) Unit() string {
	if !p.valid() {
		return p.String()
	}
	return periodNames[p].unit
}

// PeriodUnits returns the command line names of all periods, comma separated.
func PeriodUnits() string {
	units := make([]string, len(Periods))
	for i, p := range Periods {
		units[i] = p.Unit()
	}
	return strings.Join(units, ", ")
}

// ParsePeriod parses a period given either as a unit ("month") or as its
// report name ("monthly"), ignoring case.
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range Periods {
		if s == p.Unit() || s == p.String() {
			return p, nil
		}
	}
	return Daily, fmt.Errorf("unknown period %q, want one of %s", s, PeriodUnits())
}
