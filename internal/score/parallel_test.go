package score

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxy-Ma/core-probe-analysis/internal/blast"
	"github.com/Maxy-Ma/core-probe-analysis/internal/fasta"
)

// buildStore creates n probes where probe i has i+1 hits, so higher
// indices score lower.
func buildStore(n int) (*blast.Store, fasta.Universe) {
	st := blast.NewStore()
	u := make(fasta.Universe, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("probe_%04d", i)
		u[id] = seq(20)
		for j := 0; j <= i; j++ {
			st.Add(blast.Hit{
				ProbeID:  id,
				TargetID: fmt.Sprintf("chr%d", j%5),
				PIdent:   100.0,
				Length:   20,
			})
		}
	}
	return st, u
}

func TestScoreAll_RankedDescending(t *testing.T) {
	st, u := buildStore(250)
	s := NewScorer(u)

	records := s.ScoreAll(st, 16, 8)

	require.Len(t, records, 250)
	assert.True(t, sort.SliceIsSorted(records, func(i, j int) bool {
		if records[i].Score != records[j].Score {
			return records[i].Score > records[j].Score
		}
		return records[i].ProbeID < records[j].ProbeID
	}))

	// probe_0000 has the single perfect hit and must rank first.
	assert.Equal(t, "probe_0000", records[0].ProbeID)
	assert.Equal(t, 50.0, records[0].Score)
}

func TestScoreAll_CountMatchesInput(t *testing.T) {
	st, u := buildStore(103)
	s := NewScorer(u)

	// Last chunk shorter than chunkSize.
	records := s.ScoreAll(st, 10, 4)
	assert.Len(t, records, 103)

	seen := make(map[string]bool)
	for _, r := range records {
		assert.False(t, seen[r.ProbeID], "duplicate record for %s", r.ProbeID)
		seen[r.ProbeID] = true
	}
}

func TestScoreAll_SingleWorker(t *testing.T) {
	st, u := buildStore(30)
	s := NewScorer(u)

	records := s.ScoreAll(st, 7, 1)
	assert.Len(t, records, 30)
}

func TestScoreAll_EmptyStore(t *testing.T) {
	s := NewScorer(fasta.Universe{})

	records := s.ScoreAll(blast.NewStore(), 10, 4)
	assert.Empty(t, records)
}

func TestScoreAll_DefaultsApplied(t *testing.T) {
	st, u := buildStore(5)
	s := NewScorer(u)

	// Zero chunk size and worker count fall back to defaults.
	records := s.ScoreAll(st, 0, 0)
	assert.Len(t, records, 5)
}

func TestScoreAll_ChunkFailureSkipsOnlyThatChunk(t *testing.T) {
	st, u := buildStore(40)
	s := NewScorer(u)

	// Chunks are 10 probes; poison a probe in the second chunk.
	s.scoreFn = func(probeID string, hits []blast.Hit) Record {
		if probeID == "probe_0015" {
			panic("poisoned probe")
		}
		return s.Score(probeID, hits)
	}

	records := s.ScoreAll(st, 10, 4)

	// The failing chunk's 10 probes are omitted; the rest survive.
	assert.Len(t, records, 30)
	for _, r := range records {
		assert.NotEqual(t, "probe_0015", r.ProbeID)
	}
}

func TestScoreAll_DeterministicTieBreak(t *testing.T) {
	// All probes identical: every score ties, so output must be sorted by
	// probe id regardless of worker completion order.
	st := blast.NewStore()
	u := make(fasta.Universe)
	for i := 0; i < 60; i++ {
		id := fmt.Sprintf("p%02d", i)
		u[id] = seq(20)
		st.Add(blast.Hit{ProbeID: id, TargetID: "chr1", PIdent: 100, Length: 20})
	}
	s := NewScorer(u)

	first := s.ScoreAll(st, 5, 8)
	second := s.ScoreAll(st, 5, 8)

	require.Equal(t, first, second)
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].ProbeID, first[i].ProbeID)
	}
}
