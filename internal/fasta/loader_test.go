package fasta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := `>probe_1 sliding window upstream
acgtACGT
acgt
>probe_2
TTTT

>probe_3	tab-described
GGGG
`
	u, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Len(t, u, 3)
	assert.Equal(t, "ACGTACGTACGT", u["probe_1"])
	assert.Equal(t, "TTTT", u["probe_2"])
	assert.Equal(t, "GGGG", u["probe_3"])
}

func TestParse_HeaderWithoutDescription(t *testing.T) {
	u, err := Parse(strings.NewReader(">1_qLA2-1\nACGT\n"))
	require.NoError(t, err)

	assert.Equal(t, "ACGT", u["1_qLA2-1"])
}

func TestParse_LastRecordFlushed(t *testing.T) {
	// No trailing newline after the final sequence line.
	u, err := Parse(strings.NewReader(">a\nAC\n>b\nGT"))
	require.NoError(t, err)

	assert.Equal(t, "AC", u["a"])
	assert.Equal(t, "GT", u["b"])
}

func TestParse_Empty(t *testing.T) {
	u, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, u)
}

func TestUniverse_Lookups(t *testing.T) {
	u := Universe{"p1": "ACGTACGT"}

	assert.True(t, u.Contains("p1"))
	assert.False(t, u.Contains("p2"))
	assert.Equal(t, 8, u.Length("p1"))
	assert.Equal(t, 0, u.Length("p2"))

	ids := u.IDs()
	_, ok := ids["p1"]
	assert.True(t, ok)
	assert.Len(t, ids, 1)
}
