package model

// Metric names one of the numeric fields carried by a record.
type Metric string

// Numeric fields, in table order.
const (
	MetricDials         Metric = "dials"
	MetricPickups       Metric = "pickups"
	MetricConversations Metric = "conversations"
	MetricHours         Metric = "hours"
	MetricSets          Metric = "sets"
	MetricSetsShowed    Metric = "setsShowed"
	MetricSetCloses     Metric = "setCloses"
	MetricCashCollected Metric = "cashCollected"
	MetricRevenue       Metric = "revenue"
)

// AllMetrics lists every numeric field.
var AllMetrics = []Metric{
	MetricDials,
	MetricPickups,
	MetricConversations,
	MetricHours,
	MetricSets,
	MetricSetsShowed,
	MetricSetCloses,
	MetricCashCollected,
	MetricRevenue,
}

// TrendMetrics are the fields a report builds daily series for.
var TrendMetrics = []Metric{MetricDials, MetricCashCollected, MetricSets, MetricSetsShowed}

// HeatMetrics are the columns a report publishes maxima and intensities for.
var HeatMetrics = []Metric{MetricDials, MetricPickups, MetricSets, MetricCashCollected}

// Metrics holds the numeric fields of a record or an aggregate.
type Metrics struct {
	Dials         float64 `json:"dials"`
	Pickups       float64 `json:"pickups"`
	Conversations float64 `json:"conversations"`
	Hours         float64 `json:"hours"`
	Sets          float64 `json:"sets"`
	SetsShowed    float64 `json:"setsShowed"`
	SetCloses     float64 `json:"setCloses"`
	CashCollected float64 `json:"cashCollected"`
	Revenue       float64 `json:"revenue"`
}

// Add adds o into m field by field.
func (m *Metrics) Add(o Metrics) {
	m.Dials += o.Dials
	m.Pickups += o.Pickups
	m.Conversations += o.Conversations
	m.Hours += o.Hours
	m.Sets += o.Sets
	m.SetsShowed += o.SetsShowed
	m.SetCloses += o.SetCloses
	m.CashCollected += o.CashCollected
	m.Revenue += o.Revenue
}

// Value returns the field named by metric, or 0 for an unknown name.
func (m Metrics) Value(metric Metric) float64 {
	if p := m.field(metric); p != nil {
		return *p
	}
	return 0
}

// Set assigns the field named by metric. Unknown names are ignored.
func (m *Metrics) Set(metric Metric, v float64) {
	if p := m.field(metric); p != nil {
		*p = v
	}
}

func (m *Metrics) field(metric Metric) *float64 {
	switch metric {
	case MetricDials:
		return &m.Dials
	case MetricPickups:
		return &m.Pickups
	case MetricConversations:
		return &m.Conversations
	case MetricHours:
		return &m.Hours
	case MetricSets:
		return &m.Sets
	case MetricSetsShowed:
		return &m.SetsShowed
	case MetricSetCloses:
		return &m.SetCloses
	case MetricCashCollected:
		return &m.CashCollected
	case MetricRevenue:
		return &m.Revenue
	}
	return nil
}
