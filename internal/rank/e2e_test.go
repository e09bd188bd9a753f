package rank

import (
	"os"
	"testing"

	"github.com/schollz/jasstension/internal/corpus"
	"github.com/schollz/jasstension/internal/tis"
	"github.com/schollz/jasstension/internal/tisindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixtureIndex(t *testing.T) *tisindex.Index {
	t.Helper()
	f, err := os.Open("../../testdata/chords_chroma.json")
	require.NoError(t, err)
	defer f.Close()

	chordsToBits, err := corpus.LoadChordsChroma(f)
	require.NoError(t, err)

	idx, err := tisindex.Build(chordsToBits, tis.DefaultWeights, "testdata/chords_chroma.json")
	require.NoError(t, err)
	return idx
}

// Scenario 1: G7 -> C major resolves to a tonic.
func TestScenarioG7ResolvesToTonic(t *testing.T) {
	idx := loadFixtureIndex(t)
	res, err := Suggest(idx, Query{
		Chord:       "G7",
		Progression: []string{"C", "F", "G7"},
		Key:         "C",
		Goal:        "resolve",
		Normalize:   true,
		Top:         3,
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Results)
	assert.Equal(t, "C", res.Results[0].Name)
}

// Scenario 2: C -> C major "build" never suggests C itself, and moves
// away from the key center.
func TestScenarioBuildExcludesSelfAndIncreasesD2(t *testing.T) {
	idx := loadFixtureIndex(t)
	res, err := Suggest(idx, Query{Chord: "C", Key: "C", Goal: "build", Top: len(idx.ChromaMask)})
	require.NoError(t, err)
	require.NotEmpty(t, res.Results)

	for _, c := range res.Results {
		assert.NotEqual(t, idx.NameToRow()["C"], c.Row, "C must not appear in its own suggestion list")
	}
	assert.NotEqual(t, "C", res.Results[0].Name)
	assert.Greater(t, res.Results[0].D2, 0.0, "a chord built away from C major should have non-zero angle to the key")
}

// Scenario 3: a ii-V progression resolving toward C places C in the top 2.
func TestScenarioProgressionPlacesTonicNearTop(t *testing.T) {
	idx := loadFixtureIndex(t)
	res, err := Suggest(idx, Query{
		Progression: []string{"Am", "Dm", "G7"},
		Key:         "C",
		Goal:        "resolve",
		Top:         5,
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(res.Results), 2)

	found := false
	for _, c := range res.Results[:2] {
		if c.Name == "C" {
			found = true
		}
	}
	assert.True(t, found, "expected C within the top 2 resolutions of Am-Dm-G7")
}

// Scenario 4: a numeric goal sorts candidates by ascending distance to the
// target tension.
func TestScenarioNumericGoalSortsByAbsoluteDeviation(t *testing.T) {
	idx := loadFixtureIndex(t)
	res, err := Suggest(idx, Query{
		Chord:       "Dm",
		Progression: []string{"Dm"},
		Key:         "C",
		Goal:        "0.5",
		Top:         len(idx.ChromaMask),
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(res.Results), 2)

	for i := 1; i < len(res.Results); i++ {
		dPrev := absDiff(res.Results[i-1].Tension, 0.5)
		dCur := absDiff(res.Results[i].Tension, 0.5)
		assert.LessOrEqual(t, dPrev, dCur+1e-9)
	}
}

// Scenario 6: minor-key resolution after a dominant prefers the tonic.
func TestScenarioMinorKeyResolvesToTonic(t *testing.T) {
	idx := loadFixtureIndex(t)
	res, err := Suggest(idx, Query{Chord: "G7", Key: "Am", Goal: "resolve", Top: 1})
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "Am", res.Results[0].Name)
}

func absDiff(a, b float64) float64 {
	if a < b {
		return b - a
	}
	return a - b
}
