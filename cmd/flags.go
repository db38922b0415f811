package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/betlog"
	"github.com/etnz/betlog/date"
)

// eventsFlag collects the legs of a combined bet from repeated
// -e "description@odds" flags.
type eventsFlag []betlog.Event

func (e *eventsFlag) String() string {
	parts := make([]string, 0, len(*e))
	for _, ev := range *e {
		parts = append(parts, ev.Description+"@"+ev.Odds.String())
	}
	return strings.Join(parts, ", ")
}

func (e *eventsFlag) Set(value string) error {
	i := strings.LastIndex(value, "@")
	if i < 0 {
		return fmt.Errorf("event %q must be of the form description@odds", value)
	}
	odds, err := parseDecimal("odds", value[i+1:])
	if err != nil {
		return err
	}
	*e = append(*e, betlog.Event{Description: strings.TrimSpace(value[:i]), Odds: odds})
	return nil
}

// rangeFlags selects bets by date, either with a predefined period or with an
// explicit start date.
type rangeFlags struct {
	period string
	start  string
	end    string
}

func (r *rangeFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.period, "p", "", "Predefined period ("+date.PeriodUnits()+") ending at -d.")
	f.StringVar(&r.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&r.end, "d", "", "The end date for the range. Defaults to today.")
}

// filter returns a filter for the selected range, or nil when no range flag
// is set.
func (r *rangeFlags) filter() (func(betlog.Bet) bool, date.Range, error) {
	if r.period == "" && r.start == "" && r.end == "" {
		return nil, date.Range{}, nil
	}
	end := date.Today()
	if r.end != "" {
		var err error
		if end, err = date.Parse(r.end); err != nil {
			return nil, date.Range{}, fmt.Errorf("error parsing end date: %w", err)
		}
	}

	var rg date.Range
	switch {
	case r.start != "":
		start, err := date.Parse(r.start)
		if err != nil {
			return nil, date.Range{}, fmt.Errorf("error parsing start date: %w", err)
		}
		rg = date.Range{From: start, To: end}
	case r.period != "":
		period, err := date.ParsePeriod(r.period)
		if err != nil {
			return nil, date.Range{}, fmt.Errorf("error parsing period: %w", err)
		}
		rg = date.NewRange(end, period)
	default:
		rg = date.Range{To: end}
	}
	return betlog.InRange(rg), rg, nil
}

// filters returns the bet filters selected by the range flags and a comma
// separated list of statuses.
func (r *rangeFlags) filters(statuses string) ([]func(betlog.Bet) bool, error) {
	var filters []func(betlog.Bet) bool
	inRange, _, err := r.filter()
	if err != nil {
		return nil, err
	}
	if inRange != nil {
		filters = append(filters, inRange)
	}
	if statuses != "" {
		var accepted []betlog.Status
		for _, s := range strings.Split(statuses, ",") {
			status, err := betlog.ParseStatus(strings.TrimSpace(s))
			if err != nil {
				return nil, err
			}
			accepted = append(accepted, status)
		}
		filters = append(filters, betlog.ByStatus(accepted...))
	}
	return filters, nil
}
