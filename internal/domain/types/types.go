// Package types contains common types used across the application
package types

import (
	"time"

	"github.com/okian/setterboard/internal/domain/model"
	"github.com/okian/setterboard/internal/domain/scoring"
	"github.com/okian/setterboard/internal/domain/trend"
	"github.com/okian/setterboard/internal/domain/window"
)

// Entry represents a leaderboard row
type Entry struct {
	Rank int `json:"rank"`
	scoring.RankedSetter
	// Heat holds the [0,1] intensity of each heat column.
	Heat map[model.Metric]float64 `json:"heat"`
}

// TrendSeries is the daily series of one metric
type TrendSeries struct {
	Metric    model.Metric    `json:"metric"`
	Direction trend.Direction `json:"direction"`
	Points    []trend.Point   `json:"points"`
}

// Report is the render-agnostic result of one recomputation
type Report struct {
	Window      window.Window            `json:"window"`
	GeneratedAt time.Time                `json:"generatedAt"`
	Entries     []Entry                  `json:"entries"`
	Trends      []TrendSeries            `json:"trends"`
	Maxima      map[model.Metric]float64 `json:"maxima"`
	Totals      scoring.Totals           `json:"totals"`

	Records        int  `json:"records"`
	InWindow       int  `json:"inWindow"`
	UndatedRecords int  `json:"undatedRecords"`
	NoDatesFound   bool `json:"noDatesFound"`
	ExactMerges    int  `json:"exactMerges"`
	FuzzyMerges    int  `json:"fuzzyMerges"`
}

// Series returns the trend series for metric, if present.
func (r Report) Series(metric model.Metric) (TrendSeries, bool) {
	for _, s := range r.Trends {
		if s.Metric == metric {
			return s, true
		}
	}
	return TrendSeries{}, false
}

// RangeOption describes one selectable date range
type RangeOption struct {
	Value window.Range `json:"value"`
	Label string       `json:"label"`
}

// RangeOptions lists every date range in menu order.
func RangeOptions() []RangeOption {
	out := make([]RangeOption, len(window.Ranges))
	for i, r := range window.Ranges {
		out[i] = RangeOption{Value: r, Label: r.Label()}
	}
	return out
}
