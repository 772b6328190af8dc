package model

import "strings"

// FieldMap maps logical fields to the column names of the source table.
// An empty or whitespace-only entry means the field is not present.
type FieldMap struct {
	Date          string `json:"date" koanf:"date"`
	FirstName     string `json:"firstName" koanf:"first_name"`
	LastName      string `json:"lastName" koanf:"last_name"`
	Name          string `json:"name,omitempty" koanf:"name"`
	Dials         string `json:"dials" koanf:"dials"`
	Pickups       string `json:"pickups" koanf:"pickups"`
	Conversations string `json:"conversations" koanf:"conversations"`
	Hours         string `json:"hours" koanf:"hours"`
	Sets          string `json:"sets" koanf:"sets"`
	SetsShowed    string `json:"setsShowed" koanf:"sets_showed"`
	SetCloses     string `json:"setCloses" koanf:"set_closes"`
	CashCollected string `json:"cashCollected" koanf:"cash_collected"`
	Revenue       string `json:"revenue" koanf:"revenue"`
}

// DefaultFieldMap returns the column names of the stock daily-stats form.
func DefaultFieldMap() FieldMap {
	return FieldMap{
		Date:          "Date",
		FirstName:     "First Name (Dialer)",
		LastName:      "Last Name (Dialer)",
		Dials:         "# of Outbound Dials",
		Pickups:       "# of Pick Ups",
		Conversations: "How many conversations did you have today? (Over 2 mins)",
		Hours:         "How many hours did you work?",
		Sets:          "# of Calls Booked",
		SetsShowed:    "# of Calls Showed",
		CashCollected: "How much cash did you collect today?",
	}
}

// IsZero reports whether no column is mapped at all.
func (f FieldMap) IsZero() bool {
	return f == FieldMap{}
}

// Column returns the trimmed source column for a numeric metric.
func (f FieldMap) Column(m Metric) string {
	var col string
	switch m {
	case MetricDials:
		col = f.Dials
	case MetricPickups:
		col = f.Pickups
	case MetricConversations:
		col = f.Conversations
	case MetricHours:
		col = f.Hours
	case MetricSets:
		col = f.Sets
	case MetricSetsShowed:
		col = f.SetsShowed
	case MetricSetCloses:
		col = f.SetCloses
	case MetricCashCollected:
		col = f.CashCollected
	case MetricRevenue:
		col = f.Revenue
	}
	return strings.TrimSpace(col)
}

// RawRow is one row as delivered by the record source.
type RawRow struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// NormalizedRecord is a RawRow after coercion. It is never mutated once
// built.
type NormalizedRecord struct {
	ID   string `json:"id"`
	Date Date   `json:"date"`
	// Name is the resolved person name as written in the source.
	Name string `json:"name"`
	// Key is Name lower-cased with whitespace collapsed; clusters key on it.
	Key string `json:"key"`
	Metrics
}

// HasDate reports whether the record carries a parseable date.
func (r NormalizedRecord) HasDate() bool {
	return !r.Date.IsZero()
}
