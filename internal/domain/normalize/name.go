package normalize

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/okian/setterboard/internal/domain/model"
	"github.com/spf13/cast"
)

// UnknownName is used for rows that carry no usable name at all.
const UnknownName = "Unknown"

// ResolveName returns "first last" when either part is mapped and present,
// then the generic name column, then UnknownName.
func ResolveName(fields map[string]any, fm model.FieldMap) string {
	first := cellText(fields, fm.FirstName)
	last := cellText(fields, fm.LastName)
	if full := strings.TrimSpace(first + " " + last); full != "" {
		return full
	}
	if name := strings.TrimSpace(cellText(fields, fm.Name)); name != "" {
		return name
	}
	return UnknownName
}

// Key lower-cases name and collapses every whitespace run to one space.
func Key(name string) string {
	key := strings.ToLower(strings.Join(strings.Fields(name), " "))
	if key == "" {
		return strings.ToLower(UnknownName)
	}
	return key
}

// TitleCase upper-cases the first letter of every whitespace-delimited token
// and lower-cases the rest.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

func cellText(fields map[string]any, column string) string {
	column = strings.TrimSpace(column)
	if column == "" {
		return ""
	}
	v, ok := fields[column]
	if !ok || v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}
