// Package coverage computes coverage statistics between a sequence
// universe and per-source hit identifier sets.
package coverage

import "sort"

// SourceStats describes one hit source's overlap with the universe.
type SourceStats struct {
	Name       string
	Total      int
	Found      int
	NotFound   int
	FoundRatio float64 // percent of the source's ids present in the universe
}

// Stats is the aggregated coverage result.
type Stats struct {
	TotalInUniverse int
	TotalInHitSets  int // distinct ids across all sources
	FoundCount      int // universe ids covered by any source
	CoverageRatio   float64
	PerSource       []SourceStats // sorted by source name
}

// Aggregate computes found/not-found partitions per source and the global
// coverage ratio. Empty sources and an empty universe yield zero ratios,
// never an error.
func Aggregate(universe map[string]struct{}, perSource map[string]map[string]struct{}) Stats {
	stats := Stats{TotalInUniverse: len(universe)}

	names := make([]string, 0, len(perSource))
	for name := range perSource {
		names = append(names, name)
	}
	sort.Strings(names)

	allHitIDs := make(map[string]struct{})

	for _, name := range names {
		ids := perSource[name]

		found := 0
		for id := range ids {
			if _, ok := universe[id]; ok {
				found++
			}
			allHitIDs[id] = struct{}{}
		}

		src := SourceStats{
			Name:     name,
			Total:    len(ids),
			Found:    found,
			NotFound: len(ids) - found,
		}
		if len(ids) > 0 {
			src.FoundRatio = float64(found) / float64(len(ids)) * 100.0
		}
		stats.PerSource = append(stats.PerSource, src)
	}

	stats.TotalInHitSets = len(allHitIDs)
	for id := range allHitIDs {
		if _, ok := universe[id]; ok {
			stats.FoundCount++
		}
	}
	if len(universe) > 0 {
		stats.CoverageRatio = float64(stats.FoundCount) / float64(len(universe)) * 100.0
	}

	return stats
}
