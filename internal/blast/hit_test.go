package blast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validLine = "probe_1\tchr3\t98.5\t120\t2\t0\t1\t120\t500\t620\t1e-50\t220.1"

func TestParseHit(t *testing.T) {
	h, ok := ParseHit(validLine)
	require.True(t, ok)

	assert.Equal(t, "probe_1", h.ProbeID)
	assert.Equal(t, "chr3", h.TargetID)
	assert.Equal(t, 98.5, h.PIdent)
	assert.Equal(t, 120, h.Length)
	assert.Equal(t, 2, h.Mismatch)
	assert.Equal(t, 0, h.GapOpen)
	assert.Equal(t, 1e-50, h.EValue)
	assert.Equal(t, 220.1, h.BitScore)
}

func TestParseHit_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few columns", "probe_1\tchr3\t98.5\t120\t2"},
		{"bad pident", "probe_1\tchr3\tabc\t120\t2\t0\t1\t120\t500\t620\t1e-50\t220.1"},
		{"bad length", "probe_1\tchr3\t98.5\tx\t2\t0\t1\t120\t500\t620\t1e-50\t220.1"},
		{"bad mismatch", "probe_1\tchr3\t98.5\t120\tx\t0\t1\t120\t500\t620\t1e-50\t220.1"},
		{"bad evalue", "probe_1\tchr3\t98.5\t120\t2\t0\t1\t120\t500\t620\tx\t220.1"},
		{"bad bitscore", "probe_1\tchr3\t98.5\t120\t2\t0\t1\t120\t500\t620\t1e-50\tx"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseHit(tt.line)
			assert.False(t, ok)
		})
	}
}

func TestParseHit_TrailingCRLF(t *testing.T) {
	h, ok := ParseHit(validLine + "\r\n")
	require.True(t, ok)
	assert.Equal(t, 220.1, h.BitScore)
}

func TestHit_PerfectMatch(t *testing.T) {
	assert.True(t, Hit{PIdent: 100.0, Mismatch: 0}.PerfectMatch())
	assert.False(t, Hit{PIdent: 100.0, Mismatch: 1}.PerfectMatch())
	assert.False(t, Hit{PIdent: 99.9, Mismatch: 0}.PerfectMatch())
}
