package theory

import (
	"testing"

	"github.com/schollz/jasstension/internal/tis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyForms(t *testing.T) {
	cases := []struct {
		in   string
		root string
		mode Mode
	}{
		{"C", "C", Major},
		{"Am", "A", Minor},
		{"F# minor", "F#", Minor},
		{"Cmaj", "C", Major},
		{"Dmin", "D", Minor},
		{"Bb major", "Bb", Major},
	}
	for _, c := range cases {
		k, err := ParseKey(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.root, k.Root, c.in)
		assert.Equal(t, c.mode, k.Mode, c.in)
	}
}

func TestParseKeyRejectsGarbage(t *testing.T) {
	_, err := ParseKey("not a key")
	require.Error(t, err)
}

func TestKeyChromaMajor(t *testing.T) {
	bits, err := KeyChroma("C", Major)
	require.NoError(t, err)
	want := [12]uint8{1, 0, 1, 0, 1, 1, 0, 1, 0, 1, 0, 1}
	assert.Equal(t, want, [12]uint8(bits))
}

func TestFunctionPrototypesDistinct(t *testing.T) {
	protos, err := FunctionPrototypes("C", Major)
	require.NoError(t, err)
	require.Len(t, protos, 3)
	assert.Greater(t, tis.Distance(protos[Tonic], protos[Dominant]), 0.0)
}
