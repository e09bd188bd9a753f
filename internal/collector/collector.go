// Package collector holds the capture-side collaborators that turn a live
// MIDI note set or a WAV file into a chroma vector. It is not part of the
// tension engine's contract: the engine only ever consumes chroma, never
// cares how it was captured.
package collector

import (
	"sort"
	"sync"

	"github.com/schollz/jasstension/internal/chroma"
)

// ChromaEvent is the line-protocol record emitted by the capture
// collaborators: one JSON line per chroma change.
type ChromaEvent struct {
	Chord  *string  `json:"chord"`
	Notes  []string `json:"notes"`
	Chroma []int    `json:"chroma"`
}

// NewChromaEvent builds a ChromaEvent from bits, with an unresolved (nil)
// chord name; resolving a name against a corpus is the caller's job.
func NewChromaEvent(bits chroma.Bits) ChromaEvent {
	pcs := bits.PitchClasses()
	chromaOut := make([]int, chroma.Len)
	for _, pc := range pcs {
		chromaOut[pc] = 1
	}
	return ChromaEvent{Notes: chroma.ToNotes(bits, false), Chroma: chromaOut}
}

// NoteTracker tracks the set of currently-held MIDI notes and derives the
// chroma mask they imply. Safe for concurrent NoteOn/NoteOff/Bits calls
// from a MIDI callback goroutine.
type NoteTracker struct {
	mu   sync.Mutex
	held map[uint8]int // MIDI note number -> hold count, for overlapping duplicate note-ons
}

// NewNoteTracker returns an empty tracker.
func NewNoteTracker() *NoteTracker {
	return &NoteTracker{held: make(map[uint8]int)}
}

// NoteOn registers note as held and reports whether the chroma mask
// changed.
func (t *NoteTracker) NoteOn(note uint8) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	before := t.bitsLocked()
	t.held[note]++
	return before != t.bitsLocked()
}

// NoteOff releases note and reports whether the chroma mask changed.
func (t *NoteTracker) NoteOff(note uint8) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	before := t.bitsLocked()
	if t.held[note] > 1 {
		t.held[note]--
	} else {
		delete(t.held, note)
	}
	return before != t.bitsLocked()
}

// Bits returns the chroma implied by every currently-held note, folded
// into a single octave.
func (t *NoteTracker) Bits() chroma.Bits {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bitsLocked()
}

func (t *NoteTracker) bitsLocked() chroma.Bits {
	var bits chroma.Bits
	for note := range t.held {
		bits[int(note)%chroma.Len] = 1
	}
	return bits
}

// Notes returns the currently-held MIDI note numbers, ascending.
func (t *NoteTracker) Notes() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]int, 0, len(t.held))
	for note := range t.held {
		out = append(out, int(note))
	}
	sort.Ints(out)
	return out
}
