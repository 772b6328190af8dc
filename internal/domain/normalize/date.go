package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/okian/setterboard/internal/domain/model"
	"github.com/spf13/cast"
)

var (
	// YYYY-MM-DD at the start of the value; anything after it (a time part)
	// is ignored so the calendar day is never shifted by a zone offset.
	isoDatePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	// M/D/YYYY as exported by US spreadsheets.
	usDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})`)
)

// textDateLayouts are the friendly forms sheets export that the generic
// fallback does not know. Month and weekday names match case-insensitively.
var textDateLayouts = []string{
	"2006/1/2",
	"2006-1-2",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"Monday, January 2, 2006",
	"Mon, January 2, 2006",
	"Monday, Jan 2, 2006",
	"Mon, Jan 2, 2006",
	"Monday, 2 January 2006",
	"Mon, 2 Jan 2006",
}

// ParseDate reads a cell as a calendar date. Unparseable input yields the
// zero Date.
func ParseDate(v any) model.Date {
	switch x := v.(type) {
	case nil, bool:
		return model.Date{}
	case model.Date:
		return x
	case time.Time:
		if x.IsZero() {
			return model.Date{}
		}
		return model.DateOf(x)
	case string:
		return parseDateText(x)
	}
	// Numeric cells are epoch milliseconds.
	ms, err := cast.ToInt64E(v)
	if err != nil || ms == 0 {
		return model.Date{}
	}
	return model.DateOf(time.UnixMilli(ms).UTC())
}

func parseDateText(s string) model.Date {
	if s == "" {
		return model.Date{}
	}
	if m := isoDatePattern.FindStringSubmatch(s); m != nil {
		return dateFromParts(m[1], m[2], m[3])
	}
	if m := usDatePattern.FindStringSubmatch(s); m != nil {
		return dateFromParts(m[3], m[1], m[2])
	}
	s = strings.TrimSpace(s)
	for _, layout := range textDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.DateOf(t)
		}
	}
	t, err := cast.StringToDate(s)
	if err != nil {
		return model.Date{}
	}
	return model.DateOf(t)
}

// dateFromParts builds a date from regexp captures, which are all digits.
func dateFromParts(year, month, day string) model.Date {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	return model.NewDate(y, time.Month(m), d)
}
