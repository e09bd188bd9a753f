package tension

import (
	"math"
	"testing"

	"github.com/schollz/jasstension/internal/theory"
	"github.com/schollz/jasstension/internal/tisindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureChords() map[string][]int {
	return map[string][]int{
		"C":   {1, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0},
		"F":   {1, 0, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0},
		"G":   {0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 1},
		"Am":  {1, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0},
		"Dm":  {0, 0, 1, 0, 0, 1, 0, 0, 0, 1, 0, 0},
		"G7":  {0, 0, 1, 0, 0, 1, 0, 1, 0, 0, 0, 1},
		"Em":  {0, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 1},
		"E7":  {0, 0, 1, 0, 1, 0, 0, 0, 1, 0, 0, 1},
	}
}

func buildIndex(t *testing.T) *tisindex.Index {
	t.Helper()
	idx, err := tisindex.Build(fixtureChords(), [6]float64{2, 11, 17, 16, 19, 7}, "fixture")
	require.NoError(t, err)
	return idx
}

func TestComputeIndicatorLengthsMatchRows(t *testing.T) {
	idx := buildIndex(t)
	key, err := theory.ParseKey("C")
	require.NoError(t, err)

	nameToRow := idx.NameToRow()
	feats, err := Compute(idx, nameToRow["G7"], key, Options{VoiceLeadingAdditionPenalty: 4})
	require.NoError(t, err)

	assert.Len(t, feats.D1, idx.Rows())
	assert.Len(t, feats.D2, idx.Rows())
	assert.Len(t, feats.D3, idx.Rows())
	assert.Len(t, feats.C, idx.Rows())
	assert.Len(t, feats.M, idx.Rows())
	assert.Len(t, feats.H, idx.Rows())
}

func TestD2InRange(t *testing.T) {
	idx := buildIndex(t)
	key, err := theory.ParseKey("C")
	require.NoError(t, err)
	nameToRow := idx.NameToRow()
	feats, err := Compute(idx, nameToRow["C"], key, Options{})
	require.NoError(t, err)

	for _, d := range feats.D2 {
		if math.IsNaN(d) {
			continue
		}
		assert.GreaterOrEqual(t, d, 0.0)
		assert.LessOrEqual(t, d, math.Pi/2+1e-9)
	}
}

func TestMIsZeroForPrevRow(t *testing.T) {
	idx := buildIndex(t)
	key, err := theory.ParseKey("C")
	require.NoError(t, err)
	nameToRow := idx.NameToRow()
	prevRow := nameToRow["C"]
	feats, err := Compute(idx, prevRow, key, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, feats.M[prevRow])
}

func TestHIsZeroWithoutProgression(t *testing.T) {
	idx := buildIndex(t)
	key, err := theory.ParseKey("C")
	require.NoError(t, err)
	nameToRow := idx.NameToRow()
	feats, err := Compute(idx, nameToRow["G7"], key, Options{})
	require.NoError(t, err)
	for _, h := range feats.H {
		assert.Equal(t, 0.0, h)
	}
}

func TestCIsNegativeNorm(t *testing.T) {
	idx := buildIndex(t)
	key, err := theory.ParseKey("C")
	require.NoError(t, err)
	nameToRow := idx.NameToRow()
	feats, err := Compute(idx, nameToRow["C"], key, Options{})
	require.NoError(t, err)
	for i, c := range feats.C {
		assert.InDelta(t, -idx.TISNorm[i], c, 1e-9)
	}
}
