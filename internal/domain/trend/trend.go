// Package trend builds per-day sums of a metric across all people.
package trend

import (
	"slices"

	"github.com/okian/setterboard/internal/domain/model"
)

// Point is one day of a series.
type Point struct {
	Day   model.Date `json:"day"`
	Value float64    `json:"value"`
}

// Direction summarizes how a series moved over its span.
type Direction string

// Directions.
const (
	Up   Direction = "up"
	Flat Direction = "flat"
)

// Build groups recs by calendar date and sums metric per day, oldest first.
// Undated records are skipped; if none are dated the series is empty.
func Build(recs []model.NormalizedRecord, metric model.Metric) []Point {
	sums := make(map[model.Date]float64)
	for _, rec := range recs {
		if !rec.HasDate() {
			continue
		}
		sums[rec.Date] += rec.Value(metric)
	}

	points := make([]Point, 0, len(sums))
	for day, v := range sums {
		points = append(points, Point{Day: day, Value: v})
	}
	slices.SortFunc(points, func(a, b Point) int {
		return a.Day.Compare(b.Day)
	})

	return points
}

// DirectionOf returns Up when the series has at least two points and ends at
// or above where it started.
func DirectionOf(points []Point) Direction {
	if len(points) < 2 {
		return Flat
	}
	if points[len(points)-1].Value >= points[0].Value {
		return Up
	}
	return Flat
}
