package domain

import (
	"strings"
	"time"
)

// DateLayout is the compact YYYYMMDD form used on the command line and in product names.
const DateLayout = "20060102"

// DefaultStart is the beginning of the Sentinel-2 era.
const DefaultStart = "20150101"

// DateRange is an inclusive range of sensing dates (day granularity).
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDate parses a YYYYMMDD string in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, invalidInput("domain.parse_date",
			"date %q must be in format YYYYMMDD", s)
	}
	return t, nil
}

// NewDateRange parses start and end. An empty start means DefaultStart and an
// empty end means the day of now.
func NewDateRange(start, end string, now time.Time) (DateRange, error) {
	if strings.TrimSpace(start) == "" {
		start = DefaultStart
	}
	if strings.TrimSpace(end) == "" {
		end = now.Format(DateLayout)
	}

	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	if s.After(e) {
		return DateRange{}, invalidInput("domain.date_range",
			"start date %s is after end date %s", start, end)
	}
	return DateRange{Start: s, End: e}, nil
}

// Contains reports whether the calendar day of t lies within the range.
func (r DateRange) Contains(t time.Time) bool {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r DateRange) StartString() string { return r.Start.Format(DateLayout) }
func (r DateRange) EndString() string   { return r.End.Format(DateLayout) }

// MinTime is the GIPP L3_Synthesis/Min_Time value.
func (r DateRange) MinTime() string { return r.Start.Format("2006-01-02") + "T00:00:00Z" }

// MaxTime is the GIPP L3_Synthesis/Max_Time value.
func (r DateRange) MaxTime() string { return r.End.Format("2006-01-02") + "T23:59:59Z" }
