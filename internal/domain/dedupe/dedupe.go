// Package dedupe merges records that name the same person under different
// spellings into identity clusters.
//
// Matching is greedy: a name joins the first existing cluster, in creation
// order, whose key starts with the same letter and is within the allowed
// edit distance. Results therefore depend on input order. The heuristic can
// over- or under-merge; it never fails.
package dedupe

import (
	"unicode/utf8"

	"github.com/okian/setterboard/internal/domain/model"
	"github.com/okian/setterboard/internal/domain/normalize"
)

// Default matching thresholds.
const (
	defaultShortNameLength  = 4
	defaultShortMaxDistance = 0
	defaultLongMaxDistance  = 2
)

// Cluster is the running sum of every record judged to be one person.
// Key and DisplayName are fixed by the record that created the cluster.
type Cluster struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Records     int    `json:"records"`
	model.Metrics
}

// Result lists clusters in creation order with merge counters.
type Result struct {
	Clusters    []Cluster
	ExactMerges int
	FuzzyMerges int
}

// Clusterer groups records by approximate name match.
type Clusterer struct {
	shortNameLength  int
	shortMaxDistance int
	longMaxDistance  int
}

// New creates a Clusterer with configuration options.
func New(opts ...Option) *Clusterer {
	c := &Clusterer{
		shortNameLength:  defaultShortNameLength,
		shortMaxDistance: defaultShortMaxDistance,
		longMaxDistance:  defaultLongMaxDistance,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Cluster assigns recs, in order, to clusters.
func (c *Clusterer) Cluster(recs []model.NormalizedRecord) Result {
	var res Result

	// key -> position in res.Clusters
	index := make(map[string]int, len(recs))
	// first rune -> positions in creation order. A fuzzy match needs equal
	// first letters, so scanning one bucket in order is the same as scanning
	// every cluster in order.
	buckets := make(map[rune][]int)

	for _, rec := range recs {
		key := rec.Key
		if key == "" {
			key = normalize.Key(rec.Name)
		}

		if pos, ok := index[key]; ok {
			res.Clusters[pos].merge(rec)
			res.ExactMerges++
			continue
		}

		first, _ := utf8.DecodeRuneInString(key)
		if pos, ok := c.match(key, buckets[first], res.Clusters); ok {
			res.Clusters[pos].merge(rec)
			res.FuzzyMerges++
			continue
		}

		pos := len(res.Clusters)
		res.Clusters = append(res.Clusters, Cluster{
			Key:         key,
			DisplayName: normalize.TitleCase(key),
			Records:     1,
			Metrics:     rec.Metrics,
		})
		index[key] = pos
		buckets[first] = append(buckets[first], pos)
	}

	return res
}

// match returns the first candidate whose key is close enough to key.
func (c *Clusterer) match(key string, candidates []int, clusters []Cluster) (int, bool) {
	limit := c.maxDistance(key)
	for _, pos := range candidates {
		if Levenshtein(clusters[pos].Key, key) <= limit {
			return pos, true
		}
	}
	return 0, false
}

// maxDistance is the edit budget for a new name; short names must match
// exactly.
func (c *Clusterer) maxDistance(key string) int {
	if utf8.RuneCountInString(key) <= c.shortNameLength {
		return c.shortMaxDistance
	}
	return c.longMaxDistance
}

func (cl *Cluster) merge(rec model.NormalizedRecord) {
	cl.Add(rec.Metrics)
	cl.Records++
}
