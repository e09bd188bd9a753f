package corpus

import (
	"strings"
	"testing"

	"github.com/schollz/jasstension/internal/chroma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChordRoot(t *testing.T) {
	cases := map[string]string{
		"C":      "C",
		"C#maj7": "C#",
		"A#7#9":  "A#",
		"C/E":    "C",
		"Bbmaj7": "Bb",
		"":       "",
		"Hmaj":   "",
	}
	for name, want := range cases {
		assert.Equal(t, want, ChordRoot(name), "name=%q", name)
	}
}

func TestChooseShortestNoSlash(t *testing.T) {
	got, err := ChooseShortestNoSlash([]string{"Cmaj7", "C", "C/E"})
	require.NoError(t, err)
	assert.Equal(t, "C", got)

	got, err = ChooseShortestNoSlash([]string{"C/E", "C/G"})
	require.NoError(t, err)
	assert.Equal(t, "C/E", got)
}

func TestFilterSlashSuggestions(t *testing.T) {
	assert.Equal(t, []string{"C", "Cmaj7"}, sortedCopy(FilterSlashSuggestions([]string{"C", "C/E", "Cmaj7"})))
	assert.Equal(t, []string{"C/E"}, FilterSlashSuggestions([]string{"C/E", "C/Eb"}))
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j] < out[i] {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}

func TestChooseRepresentativesByRootIsDeterministic(t *testing.T) {
	names := []string{"C/E", "C", "Cmaj7", "D"}
	r1 := ChooseRepresentativesByRoot(names)
	r2 := ChooseRepresentativesByRoot(names)
	assert.Equal(t, r1, r2)
	assert.Contains(t, r1, "C")
	assert.Contains(t, r1, "D")
}

func TestValidateChromaRejectsEmpty(t *testing.T) {
	err := ValidateChroma(make([]int, chroma.Len))
	require.Error(t, err)
}

func TestLoadChordsChroma(t *testing.T) {
	src := `{"C": [{"chroma_binary": [1,0,0,0,1,0,0,1,0,0,0,0]}]}`
	out, err := LoadChordsChroma(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0}, out["C"])
}

func TestLoadChordsChromaRejectsMultiEntryList(t *testing.T) {
	src := `{"C": [{"chroma_binary": [1,0,0,0,1,0,0,1,0,0,0,0]}, {"chroma_binary": [1,0,0,0,1,0,0,1,0,0,0,0]}]}`
	_, err := LoadChordsChroma(strings.NewReader(src))
	require.Error(t, err)
}

func TestIndexFileJSONRoundTrip(t *testing.T) {
	chords := map[string][]int{
		"C":    {1, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0},
		"Cmaj": {1, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0},
		"G":    {0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 1},
	}
	f, err := MakeIndexFile("test.json", chords)
	require.NoError(t, err)

	data, err := f.ToJSON()
	require.NoError(t, err)

	parsed, err := IndexFileFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, len(f.Reps), len(parsed.Reps))
}

func TestIndexFileFromJSONLegacyIndexShape(t *testing.T) {
	src := `{"_meta": {"source": "x", "chroma_len": 12}, "index": {"145": ["C", "Cmaj"]}}`
	f, err := IndexFileFromJSON([]byte(src))
	require.NoError(t, err)
	require.Len(t, f.Reps, 1)
}
