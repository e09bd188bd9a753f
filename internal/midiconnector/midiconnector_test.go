package midiconnector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewChordTracksHeldNotes(t *testing.T) {
	d := &Device{out: &fakeOut{}, notesOn: make(map[uint8]bool)}

	require.NoError(t, d.PreviewChord(0, []uint8{60, 64, 67}, 100))
	assert.Equal(t, map[uint8]bool{60: true, 64: true, 67: true}, d.notesOn)

	require.NoError(t, d.PreviewChord(0, []uint8{62, 65, 69}, 100))
	assert.Equal(t, map[uint8]bool{62: true, 65: true, 69: true}, d.notesOn)
}

func TestCloseReleasesHeldNotes(t *testing.T) {
	out := &fakeOut{}
	d := &Device{out: out, notesOn: make(map[uint8]bool)}
	require.NoError(t, d.PreviewChord(0, []uint8{60}, 100))
	require.NoError(t, d.Close())
	assert.Contains(t, out.sent, []byte{0x80, 60, 0})
	assert.True(t, out.closed)
}

// fakeOut is a midiOut stand-in for tests that never touch real hardware.
type fakeOut struct {
	sent   [][]byte
	closed bool
}

func (f *fakeOut) Close() error { f.closed = true; return nil }
func (f *fakeOut) Send(b []byte) error {
	f.sent = append(f.sent, append([]byte(nil), b...))
	return nil
}
