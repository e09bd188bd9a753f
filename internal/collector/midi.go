package collector

import (
	"fmt"
	"strings"

	"github.com/schollz/jasstension/internal/chroma"
)

var noteNames = [chroma.Len]string{"c", "c#", "d", "d#", "e", "f", "f#", "g", "g#", "a", "a#", "b"}

// NoteName renders a MIDI note number (0-127) as a fixed-width name like
// "c-1" or "f#4"; out-of-range notes render as "---".
func NoteName(midiNote int) string {
	if midiNote < 0 || midiNote > 127 {
		return "---"
	}
	octave := (midiNote / chroma.Len) - 1
	name := noteNames[midiNote%chroma.Len]
	if octave < 0 {
		octave = -octave
	}
	if strings.Contains(name, "#") {
		return fmt.Sprintf("%s%d", name, octave)
	}
	sep := "-"
	return fmt.Sprintf("%s%s%d", name, sep, octave)
}

// ChordMIDINotes places bits' active pitch classes into a single octave
// starting at baseOctave (MIDI octave numbering, -1..9), for previewing a
// suggested chord over a MIDI output.
func ChordMIDINotes(bits chroma.Bits, baseOctave int) []uint8 {
	base := (baseOctave + 1) * chroma.Len
	out := make([]uint8, 0, chroma.Len)
	for pc, active := range bits {
		if active == 0 {
			continue
		}
		note := base + pc
		if note < 0 || note > 127 {
			continue
		}
		out = append(out, uint8(note))
	}
	return out
}
