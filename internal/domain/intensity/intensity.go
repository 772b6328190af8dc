// Package intensity scales values against their column maximum for
// heatmap-style emphasis.
package intensity

import "math"

// minColumnMax keeps an all-zero column from dividing by zero.
const minColumnMax = 1

// ColumnMax returns the largest value, never less than 1.
func ColumnMax(values []float64) float64 {
	m := float64(minColumnMax)
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

// Of returns value/colMax clamped to [0,1]. A colMax below 1 is raised to 1.
func Of(value, colMax float64) float64 {
	if colMax < minColumnMax || math.IsNaN(colMax) {
		colMax = minColumnMax
	}
	r := value / colMax
	switch {
	case math.IsNaN(r) || r <= 0:
		return 0
	case r >= 1:
		return 1
	}
	return r
}
