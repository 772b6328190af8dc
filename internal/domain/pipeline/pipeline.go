// Package pipeline runs the full recomputation: normalize, filter by date
// window, cluster identities, rank, then build trends and heat maxima.
//
// Run is a pure function of its Input. Callers capture Now once per
// recomputation so every stage sees the same clock reading.
package pipeline

import (
	"time"

	"github.com/okian/setterboard/internal/domain/dedupe"
	"github.com/okian/setterboard/internal/domain/intensity"
	"github.com/okian/setterboard/internal/domain/model"
	"github.com/okian/setterboard/internal/domain/normalize"
	"github.com/okian/setterboard/internal/domain/scoring"
	"github.com/okian/setterboard/internal/domain/trend"
	"github.com/okian/setterboard/internal/domain/types"
	"github.com/okian/setterboard/internal/domain/window"
)

// Input is everything one recomputation depends on.
type Input struct {
	Rows   []model.RawRow
	Fields model.FieldMap
	Window window.Window
	Now    time.Time
	// Clusterer defaults to dedupe.New() when nil.
	Clusterer *dedupe.Clusterer
}

// Run rebuilds the report from scratch.
func Run(in Input) types.Report {
	recs := normalize.Records(in.Rows, in.Fields)
	return FromRecords(recs, in)
}

// FromRecords runs every stage after normalization. Only in.Window, in.Now
// and in.Clusterer are read.
func FromRecords(recs []model.NormalizedRecord, in Input) types.Report {
	clusterer := in.Clusterer
	if clusterer == nil {
		clusterer = dedupe.New()
	}

	undated := 0
	for _, rec := range recs {
		if !rec.HasDate() {
			undated++
		}
	}

	filtered := in.Window.Filter(recs, in.Now)
	clusters := clusterer.Cluster(filtered)
	ranked := scoring.Rank(clusters.Clusters)

	report := types.Report{
		Window:         in.Window,
		GeneratedAt:    in.Now,
		Entries:        make([]types.Entry, len(ranked)),
		Trends:         make([]types.TrendSeries, 0, len(model.TrendMetrics)),
		Maxima:         Maxima(ranked),
		Totals:         scoring.Summarize(ranked),
		Records:        len(recs),
		InWindow:       len(filtered),
		UndatedRecords: undated,
		NoDatesFound:   len(recs) > 0 && undated == len(recs),
		ExactMerges:    clusters.ExactMerges,
		FuzzyMerges:    clusters.FuzzyMerges,
	}

	for i, setter := range ranked {
		heat := make(map[model.Metric]float64, len(model.HeatMetrics))
		for _, m := range model.HeatMetrics {
			heat[m] = intensity.Of(setter.Value(m), report.Maxima[m])
		}
		report.Entries[i] = types.Entry{Rank: i + 1, RankedSetter: setter, Heat: heat}
	}

	for _, m := range model.TrendMetrics {
		points := trend.Build(filtered, m)
		report.Trends = append(report.Trends, types.TrendSeries{
			Metric:    m,
			Direction: trend.DirectionOf(points),
			Points:    points,
		})
	}

	return report
}

// Maxima returns the floored column maximum of each heat column.
func Maxima(ranked []scoring.RankedSetter) map[model.Metric]float64 {
	out := make(map[model.Metric]float64, len(model.HeatMetrics))
	values := make([]float64, len(ranked))
	for _, m := range model.HeatMetrics {
		for i, s := range ranked {
			values[i] = s.Value(m)
		}
		out[m] = intensity.ColumnMax(values)
	}
	return out
}
