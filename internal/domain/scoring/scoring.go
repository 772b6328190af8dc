// Package scoring derives rate metrics for identity clusters and ranks them.
package scoring

import (
	"math"
	"sort"

	"github.com/okian/setterboard/internal/domain/dedupe"
)

// percent is the scale factor applied to rates.
const percent = 100

// RankedSetter is a cluster with its derived rates.
type RankedSetter struct {
	dedupe.Cluster
	ShowRate  float64 `json:"showRate"`
	CloseRate float64 `json:"closeRate"`
}

// Totals summarizes a ranked set.
type Totals struct {
	Dials           float64 `json:"dials"`
	CashCollected   float64 `json:"cashCollected"`
	Sets            float64 `json:"sets"`
	SetsShowed      float64 `json:"setsShowed"`
	AverageShowRate float64 `json:"averageShowRate"`
}

// Rate returns num/den as a percentage with one decimal. A zero or negative
// denominator yields 0.
func Rate(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	r := num / den * percent
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return round1(r)
}

// Rank computes rates for each cluster and orders the result by cash
// collected, highest first. Ties keep their input order.
func Rank(clusters []dedupe.Cluster) []RankedSetter {
	out := make([]RankedSetter, len(clusters))
	for i, c := range clusters {
		out[i] = RankedSetter{
			Cluster:   c,
			ShowRate:  Rate(c.SetsShowed, c.Sets),
			CloseRate: Rate(c.SetCloses, c.Sets),
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CashCollected > out[j].CashCollected
	})

	return out
}

// Summarize adds up the dashboard totals over a ranked set.
func Summarize(setters []RankedSetter) Totals {
	var t Totals
	for _, s := range setters {
		t.Dials += s.Dials
		t.CashCollected += s.CashCollected
		t.Sets += s.Sets
		t.SetsShowed += s.SetsShowed
	}
	t.AverageShowRate = Rate(t.SetsShowed, t.Sets)
	return t
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
