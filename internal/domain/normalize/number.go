package normalize

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// numberPattern finds the first signed, optionally comma-grouped decimal in
// free text such as "$1,234.50 collected".
var numberPattern = regexp.MustCompile(`-?[\d,]+(?:\.\d+)?`)

// SmartNumber coerces a loosely typed cell into a float. Numbers pass
// through, text is scanned for its first number, anything else is 0.
func SmartNumber(v any) float64 {
	switch x := v.(type) {
	case nil, bool:
		return 0
	case string:
		return parseNumberText(x)
	case []byte:
		return parseNumberText(string(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return finite(f)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return finite(f)
}

func parseNumberText(s string) float64 {
	m := numberPattern.FindString(s)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

// finite maps NaN and infinities to 0 so aggregates stay encodable.
func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
