// Package chroma holds the bit/mask/note-name primitives that every other
// package in the engine builds on. Bit order is fixed: index i is the
// pitch class i semitones above C, i.e. [C, C#, D, D#, E, F, F#, G, G#, A,
// A#, B].
package chroma

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/schollz/jasstension/internal/jasserr"
)

// Len is the number of pitch classes in an octave.
const Len = 12

// Bits is a 12-length 0/1 vector; bit i marks pitch class i present.
type Bits [Len]uint8

// Mask is the 12-bit integer equivalent of Bits; bit i = (mask>>i)&1.
type Mask uint16

var notesSharp = [Len]string{"c", "c#", "d", "d#", "e", "f", "f#", "g", "g#", "a", "a#", "b"}
var notesFlat = [Len]string{"c", "db", "d", "eb", "e", "f", "gb", "g", "ab", "a", "bb", "b"}

// BitsToMask packs a 0/1 vector into its mask form. Every element must be
// 0 or 1.
func BitsToMask(bits []int) (Mask, error) {
	if len(bits) != Len {
		return 0, jasserr.Newf(jasserr.InvalidChroma, "expected %d bits, got %d", Len, len(bits))
	}
	var m Mask
	for i, b := range bits {
		if b != 0 && b != 1 {
			return 0, jasserr.Newf(jasserr.InvalidChroma, "bits must be 0/1; got %d at index %d", b, i)
		}
		if b != 0 {
			m |= 1 << uint(i)
		}
	}
	return m, nil
}

// BitsArrayToMask is BitsToMask for an already-typed Bits array. It has no
// error return: Bits always has length 12, and any non-zero element is
// taken as a set bit.
func BitsArrayToMask(bits Bits) Mask {
	var m Mask
	for i, b := range bits {
		if b != 0 {
			m |= 1 << uint(i)
		}
	}
	return m
}

// MaskToBits unpacks a mask into its 0/1 array form. mask must be in
// [0, 4096).
func MaskToBits(mask Mask) (Bits, error) {
	if mask >= (1 << Len) {
		return Bits{}, jasserr.Newf(jasserr.InvalidChroma, "mask must be in [0, %d); got %d", 1<<Len, mask)
	}
	var b Bits
	for i := 0; i < Len; i++ {
		b[i] = uint8((mask >> uint(i)) & 1)
	}
	return b, nil
}

// Count returns the number of active pitch classes.
func (b Bits) Count() int {
	n := 0
	for _, v := range b {
		if v != 0 {
			n++
		}
	}
	return n
}

// PitchClasses returns the ascending list of active pitch-class indices.
func (b Bits) PitchClasses() []int {
	out := make([]int, 0, Len)
	for i, v := range b {
		if v != 0 {
			out = append(out, i)
		}
	}
	return out
}

// ToNotes converts a chroma vector into lowercase note names in bit order.
// flats selects db/eb/gb/ab/bb spellings over the sharp defaults.
func ToNotes(bits Bits, flats bool) []string {
	table := &notesSharp
	if flats {
		table = &notesFlat
	}
	out := make([]string, 0, Len)
	for i, b := range bits {
		if b != 0 {
			out = append(out, table[i])
		}
	}
	return out
}

// ParseChroma accepts three surface forms: a 12-char 0/1 string, a
// comma-separated 0/1 list of length 12, or a JSON array of 12 integers.
func ParseChroma(text string) (Bits, error) {
	s := strings.TrimSpace(text)

	if len(s) == Len && isAllBinary(s) {
		return bitstringToBits(s)
	}

	if strings.Contains(s, ",") && onlyContains(s, "01, \t") {
		parts := strings.Split(s, ",")
		if len(parts) != Len {
			return Bits{}, jasserr.Newf(jasserr.InvalidChroma, "expected %d comma-separated bits, got %d", Len, len(parts))
		}
		ints := make([]int, Len)
		for i, p := range parts {
			p = strings.TrimSpace(p)
			v, err := strconv.Atoi(p)
			if err != nil {
				return Bits{}, jasserr.Wrap(jasserr.InvalidChroma, "comma-separated chroma must contain only 0/1", err)
			}
			ints[i] = v
		}
		return intsToBits(ints)
	}

	if strings.HasPrefix(s, "[") {
		var raw []json.Number
		dec := json.NewDecoder(strings.NewReader(s))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return Bits{}, jasserr.Wrap(jasserr.InvalidChroma, "invalid JSON array for chroma input", err)
		}
		ints := make([]int, len(raw))
		for i, n := range raw {
			v, err := strconv.Atoi(n.String())
			if err != nil {
				return Bits{}, jasserr.Newf(jasserr.InvalidChroma, "bit %d must be an int 0/1; got %v", i, n)
			}
			ints[i] = v
		}
		return intsToBits(ints)
	}

	return Bits{}, jasserr.New(jasserr.InvalidChroma,
		"unrecognized chroma format; provide 12 bits like '100010010000' or "+
			"'1,0,0,0,1,0,0,1,0,0,0,0' or a JSON array")
}

func intsToBits(ints []int) (Bits, error) {
	if len(ints) != Len {
		return Bits{}, jasserr.Newf(jasserr.InvalidChroma, "expected %d bits, got %d", Len, len(ints))
	}
	var b Bits
	for i, v := range ints {
		if v != 0 && v != 1 {
			return Bits{}, jasserr.Newf(jasserr.InvalidChroma, "bits must be 0/1; got %d at index %d", v, i)
		}
		b[i] = uint8(v)
	}
	return b, nil
}

func bitstringToBits(s string) (Bits, error) {
	var b Bits
	for i := 0; i < Len; i++ {
		b[i] = uint8(s[i] - '0')
	}
	return b, nil
}

func isAllBinary(s string) bool {
	for _, c := range s {
		if c != '0' && c != '1' {
			return false
		}
	}
	return true
}

func onlyContains(s, allowed string) bool {
	for _, c := range s {
		if !strings.ContainsRune(allowed, c) {
			return false
		}
	}
	return true
}
