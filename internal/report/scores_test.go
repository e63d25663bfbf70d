package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxy-Ma/core-probe-analysis/internal/fasta"
	"github.com/Maxy-Ma/core-probe-analysis/internal/score"
)

func TestScoreWriter(t *testing.T) {
	var buf bytes.Buffer
	sw := NewScoreWriter(&buf)

	records := []score.Record{
		{
			ProbeID:           "p1",
			Score:             50.0,
			RawNonSpecificity: 1.0,
			PerfectMatches:    1,
			TotalHits:         1,
			MatchedTargets:    "chr1",
			ProbeLength:       20,
			InUniverse:        true,
		},
		{ProbeID: "p2", Score: 30.0, InUniverse: false},
	}
	require.NoError(t, sw.WriteAll(records))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Probe_ID\tScore\tRaw_Non_Specificity\tPerfect_Matches\tTotal_Hits\tMatched_Targets\tProbe_Length\tIn_FASTA", lines[0])
	assert.Equal(t, "p1\t50.00\t1.0000\t1\t1\tchr1\t20\tyes", lines[1])
	assert.Equal(t, "p2\t30.00\t0.0000\t0\t0\t\t0\tno", lines[2])
}

func TestWriteHighQualityFASTA(t *testing.T) {
	u := fasta.Universe{"p1": "ACGT", "p2": "TTTT"}
	selected := []score.Record{
		{ProbeID: "p1", Score: 95.0, InUniverse: true},
		{ProbeID: "p2", Score: 85.0, InUniverse: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHighQualityFASTA(&buf, selected, u, 80.0, false))

	out := buf.String()
	assert.Contains(t, out, "# High quality probes (score >= 80.0)")
	assert.Contains(t, out, "# Total: 2 probes")
	assert.Contains(t, out, ">p1\nACGT\n")
	assert.Contains(t, out, ">p2\nTTTT\n")
	assert.NotContains(t, out, "LOW_QUALITY_FALLBACK")
}

func TestWriteHighQualityFASTA_Fallback(t *testing.T) {
	u := fasta.Universe{"p1": "ACGT"}
	selected := []score.Record{{ProbeID: "p1", Score: 55.0, InUniverse: true}}

	var buf bytes.Buffer
	require.NoError(t, WriteHighQualityFASTA(&buf, selected, u, 80.0, true))

	out := buf.String()
	assert.Contains(t, out, "# WARNING: no probes scored at or above 80.0")
	assert.Contains(t, out, ">p1 [LOW_QUALITY_FALLBACK]\nACGT\n")
}

func TestWriteSummary(t *testing.T) {
	sum := score.Summary{Count: 4, AvgScore: 72.5, High: 1, Medium: 2, Low: 1, InUniverse: 3}

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, sum))

	out := buf.String()
	assert.Contains(t, out, "Probes scored: 4")
	assert.Contains(t, out, "Average score: 72.50")
	assert.Contains(t, out, "High specificity (>=80): 1 (25.00%)")
	assert.Contains(t, out, "Found in FASTA: 3 (75.00%)")
}
