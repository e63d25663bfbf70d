package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func set(ids ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func TestAggregate(t *testing.T) {
	universe := set("p1", "p2", "p3", "p4")
	perSource := map[string]map[string]struct{}{
		"b73.txt":  set("p1", "p2", "px"),
		"mo17.txt": set("p2", "p3"),
	}

	stats := Aggregate(universe, perSource)

	assert.Equal(t, 4, stats.TotalInUniverse)
	assert.Equal(t, 4, stats.TotalInHitSets) // p1 p2 p3 px
	assert.Equal(t, 3, stats.FoundCount)     // p1 p2 p3
	assert.Equal(t, 75.0, stats.CoverageRatio)

	require.Len(t, stats.PerSource, 2)
	// Sources are sorted by name.
	b73 := stats.PerSource[0]
	assert.Equal(t, "b73.txt", b73.Name)
	assert.Equal(t, 3, b73.Total)
	assert.Equal(t, 2, b73.Found)
	assert.Equal(t, 1, b73.NotFound)
	assert.InDelta(t, 66.666, b73.FoundRatio, 0.001)

	mo17 := stats.PerSource[1]
	assert.Equal(t, 2, mo17.Found)
	assert.Equal(t, 100.0, mo17.FoundRatio)
}

func TestAggregate_EmptyUniverse(t *testing.T) {
	stats := Aggregate(nil, map[string]map[string]struct{}{
		"a.txt": set("p1"),
	})

	assert.Equal(t, 0.0, stats.CoverageRatio)
	assert.Equal(t, 1, stats.TotalInHitSets)
	assert.Equal(t, 0, stats.FoundCount)
}

func TestAggregate_EmptySource(t *testing.T) {
	stats := Aggregate(set("p1"), map[string]map[string]struct{}{
		"empty.txt": {},
	})

	require.Len(t, stats.PerSource, 1)
	assert.Equal(t, 0.0, stats.PerSource[0].FoundRatio)
	assert.Equal(t, 0, stats.PerSource[0].Total)
}

func TestAggregate_ExactCoverage(t *testing.T) {
	universe := set("p1", "p2")
	stats := Aggregate(universe, map[string]map[string]struct{}{
		"a.txt": set("p1", "p2"),
	})

	assert.Equal(t, 100.0, stats.CoverageRatio)
	assert.Equal(t, 2, stats.FoundCount)
}

func TestAggregate_NoSources(t *testing.T) {
	stats := Aggregate(set("p1"), nil)

	assert.Equal(t, 0, stats.TotalInHitSets)
	assert.Equal(t, 0.0, stats.CoverageRatio)
	assert.Empty(t, stats.PerSource)
}
