package chroma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitsMaskRoundTrip(t *testing.T) {
	for mask := Mask(0); mask < (1 << Len); mask++ {
		bits, err := MaskToBits(mask)
		require.NoError(t, err)
		got := BitsArrayToMask(bits)
		assert.Equal(t, mask, got)
	}
}

func TestBitsToMaskRejectsBadInput(t *testing.T) {
	_, err := BitsToMask([]int{1, 0, 0})
	require.Error(t, err)

	_, err = BitsToMask([]int{2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	require.Error(t, err)
}

func TestMaskToBitsRejectsOutOfRange(t *testing.T) {
	_, err := MaskToBits(1 << Len)
	require.Error(t, err)
}

func TestToNotesBitOrder(t *testing.T) {
	var c Bits
	c[0] = 1
	assert.Equal(t, []string{"c"}, ToNotes(c, false))

	var b Bits
	b[11] = 1
	assert.Equal(t, []string{"b"}, ToNotes(b, false))
}

func TestToNotesFlatsOnlyAffectAccidentals(t *testing.T) {
	natural := []int{0, 2, 4, 5, 7, 9, 11}
	for _, pc := range natural {
		var bits Bits
		bits[pc] = 1
		sharp := ToNotes(bits, false)
		flat := ToNotes(bits, true)
		assert.Equal(t, sharp, flat, "pitch class %d should not change spelling", pc)
	}

	accidentals := []int{1, 3, 6, 8, 10}
	for _, pc := range accidentals {
		var bits Bits
		bits[pc] = 1
		sharp := ToNotes(bits, false)
		flat := ToNotes(bits, true)
		assert.NotEqual(t, sharp, flat, "pitch class %d should change spelling with flats", pc)
	}
}

func TestParseChromaSurfaceForms(t *testing.T) {
	expect := Bits{1, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0}

	got, err := ParseChroma("100010010000")
	require.NoError(t, err)
	assert.Equal(t, expect, got)

	got, err = ParseChroma("1,0,0,0,1,0,0,1,0,0,0,0")
	require.NoError(t, err)
	assert.Equal(t, expect, got)

	got, err = ParseChroma("[1,0,0,0,1,0,0,1,0,0,0,0]")
	require.NoError(t, err)
	assert.Equal(t, expect, got)
}

func TestParseChromaRejectsGarbage(t *testing.T) {
	_, err := ParseChroma("not a chroma")
	require.Error(t, err)
}

func TestPitchClassesAndCount(t *testing.T) {
	bits := Bits{1, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0}
	assert.Equal(t, 3, bits.Count())
	assert.Equal(t, []int{0, 4, 7}, bits.PitchClasses())
}
