// Package dedupe merges records that name the same person under different
// spellings into identity clusters.
package dedupe

// Option applies a configuration option to the Clusterer.
type Option func(*Clusterer)

// WithShortNameLength sets the rune count at or below which a name counts
// as short.
func WithShortNameLength(n int) Option {
	return func(c *Clusterer) {
		if n >= 0 {
			c.shortNameLength = n
		}
	}
}

// WithMaxDistance sets the edit budget for short and long names.
// Negative values are ignored.
func WithMaxDistance(short, long int) Option {
	return func(c *Clusterer) {
		if short >= 0 {
			c.shortMaxDistance = short
		}
		if long >= 0 {
			c.longMaxDistance = long
		}
	}
}
