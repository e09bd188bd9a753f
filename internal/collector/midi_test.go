package collector

import (
	"testing"

	"github.com/schollz/jasstension/internal/chroma"
	"github.com/stretchr/testify/assert"
)

func TestNoteName(t *testing.T) {
	cases := map[int]string{
		60:  "c-4",
		61:  "c#4",
		21:  "a-0",
		0:   "c-1",
		127: "g-9",
		-1:  "---",
		128: "---",
	}
	for note, want := range cases {
		assert.Equal(t, want, NoteName(note))
	}
}

func TestNoteNameAlwaysThreeChars(t *testing.T) {
	for i := 0; i <= 127; i++ {
		assert.Len(t, NoteName(i), 3)
	}
}

func TestChordMIDINotesPlacesPitchClassesInOctave(t *testing.T) {
	a := assert.New(t)
	bits, err := chroma.ParseChroma("100010010000") // C major triad
	a.NoError(err)
	notes := ChordMIDINotes(bits, 4)
	a.ElementsMatch([]uint8{60, 64, 67}, notes)
}
