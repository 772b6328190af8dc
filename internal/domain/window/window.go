// Package window decides whether a record date falls inside a user-selected
// date range.
//
// Ranges are evaluated against an explicit "now" so a single recomputation
// sees one consistent clock reading.
package window

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/okian/setterboard/internal/domain/model"
)

// Range identifies a preset date range.
type Range string

// Supported ranges.
const (
	AllTime    Range = "ALL_TIME"
	Today      Range = "TODAY"
	Yesterday  Range = "YESTERDAY"
	ThisWeek   Range = "THIS_WEEK"
	ThisMonth  Range = "THIS_MONTH"
	Last30Days Range = "LAST_30_DAYS"
	Custom     Range = "CUSTOM"
)

// lookbackDays is the span of Last30Days.
const lookbackDays = 30

// ErrUnknownRange is returned by ParseRange for unrecognized input.
var ErrUnknownRange = errors.New("unknown date range")

// Ranges lists every range in menu order.
var Ranges = []Range{AllTime, Today, Yesterday, ThisWeek, ThisMonth, Last30Days, Custom}

var labels = map[Range]string{
	AllTime:    "All Time",
	Today:      "Today",
	Yesterday:  "Yesterday",
	ThisWeek:   "This Week",
	ThisMonth:  "This Month",
	Last30Days: "Last 30 Days",
	Custom:     "Custom Range",
}

// Label returns the human readable name of r.
func (r Range) Label() string {
	if l, ok := labels[r]; ok {
		return l
	}
	return string(r)
}

// ParseRange accepts either the constant ("THIS_WEEK") or its label
// ("This Week"), case-insensitively. An empty string means AllTime.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return AllTime, nil
	}
	for _, r := range Ranges {
		if strings.EqualFold(s, string(r)) || strings.EqualFold(s, labels[r]) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRange, s)
}

// Window is a range selection. Start and End are only read for Custom.
type Window struct {
	Range Range      `json:"range"`
	Start model.Date `json:"start"`
	End   model.Date `json:"end"`
}

// Contains reports whether a record dated d belongs to w at time now.
// Undated records only belong to AllTime. A Custom window missing either
// bound lets every dated record through.
func (w Window) Contains(d model.Date, now time.Time) bool {
	if d.IsZero() {
		return w.Range == AllTime
	}
	today := model.DateOf(now)
	switch w.Range {
	case Today:
		return d == today
	case Yesterday:
		return d == today.AddDays(-1)
	case ThisWeek:
		// Weeks start on Sunday and have no upper bound.
		sunday := today.AddDays(-int(today.Weekday()))
		return !d.Before(sunday)
	case ThisMonth:
		return d.Year == today.Year && d.Month == today.Month
	case Last30Days:
		return !d.Before(today.AddDays(-lookbackDays))
	case Custom:
		if w.Start.IsZero() || w.End.IsZero() {
			return true
		}
		return !d.Before(w.Start) && !d.After(w.End)
	default:
		return true
	}
}

// Filter returns the records of recs that w contains, in order.
func (w Window) Filter(recs []model.NormalizedRecord, now time.Time) []model.NormalizedRecord {
	out := make([]model.NormalizedRecord, 0, len(recs))
	for _, r := range recs {
		if w.Contains(r.Date, now) {
			out = append(out, r)
		}
	}
	return out
}
