// Package theory parses key strings and builds the diatonic scale chroma
// and tonic/subdominant/dominant triad prototypes a key implies.
package theory

import (
	"strings"

	"github.com/schollz/jasstension/internal/chroma"
	"github.com/schollz/jasstension/internal/jasserr"
	"github.com/schollz/jasstension/internal/tis"
)

// Mode is the key's scale quality.
type Mode int

const (
	Major Mode = iota
	Minor
)

func (m Mode) String() string {
	if m == Minor {
		return "minor"
	}
	return "major"
}

// Key is a parsed (root pitch class, mode) pair.
type Key struct {
	Root PitchClassName
	Mode Mode
}

// PitchClassName is a root spelling as written by the caller (e.g. "C#",
// "Eb"), preserved for display.
type PitchClassName = string

var pcToIdx = map[string]int{
	"C": 0, "C#": 1, "Db": 1,
	"D": 2, "D#": 3, "Eb": 3,
	"E": 4, "Fb": 4, "E#": 5,
	"F": 5, "F#": 6, "Gb": 6,
	"G": 7, "G#": 8, "Ab": 8,
	"A": 9, "A#": 10, "Bb": 10,
	"B": 11, "Cb": 11, "B#": 0,
}

var majorIntervals = [7]int{0, 2, 4, 5, 7, 9, 11}
var minorIntervals = [7]int{0, 2, 3, 5, 7, 8, 10}

// TriadQuality names the quality of a diatonic triad built on a scale
// degree.
type TriadQuality int

const (
	QMajor TriadQuality = iota
	QMinor
	QDiminished
	QAugmented
)

var majorTriadMap = map[int]TriadQuality{
	0: QMajor, 2: QMinor, 4: QMinor, 5: QMajor, 7: QMajor, 9: QMinor, 11: QDiminished,
}
var minorTriadMap = map[int]TriadQuality{
	0: QMinor, 2: QDiminished, 3: QMajor, 5: QMinor, 7: QMinor, 8: QMajor, 10: QMajor,
}

// ParseKey parses a human-friendly key string: "<root> (major|maj|minor|min)",
// a root with a "maj"/"min" suffix, a trailing lowercase "m" for minor, or a
// bare root for major.
func ParseKey(s string) (Key, error) {
	trimmed := strings.TrimSpace(s)

	parts := strings.Fields(trimmed)
	if len(parts) == 2 {
		root, modeStr := parts[0], strings.ToLower(parts[1])
		if modeStr == "major" || modeStr == "maj" {
			if k, err := newKey(root, Major); err == nil {
				return k, nil
			}
		}
		if modeStr == "minor" || modeStr == "min" {
			if k, err := newKey(root, Minor); err == nil {
				return k, nil
			}
		}
	}

	lower := strings.ToLower(trimmed)
	for _, suffix := range []struct {
		text string
		mode Mode
	}{{"min", Minor}, {"maj", Major}} {
		if strings.HasSuffix(lower, suffix.text) {
			root := trimmed[:len(trimmed)-len(suffix.text)]
			if _, ok := pcToIdx[root]; ok {
				return Key{Root: root, Mode: suffix.mode}, nil
			}
		}
	}

	if strings.HasSuffix(trimmed, "m") && len(trimmed) >= 2 {
		root := trimmed[:len(trimmed)-1]
		if _, ok := pcToIdx[root]; ok {
			return Key{Root: root, Mode: Minor}, nil
		}
	}

	if _, ok := pcToIdx[trimmed]; ok {
		return Key{Root: trimmed, Mode: Major}, nil
	}

	return Key{}, jasserr.Newf(jasserr.InvalidKey, "cannot parse key %q", s)
}

func newKey(root string, mode Mode) (Key, error) {
	if _, ok := pcToIdx[root]; !ok {
		return Key{}, jasserr.Newf(jasserr.InvalidKey, "unknown root %q", root)
	}
	return Key{Root: root, Mode: mode}, nil
}

func pitchClassIndex(root string) (int, error) {
	idx, ok := pcToIdx[root]
	if !ok {
		return 0, jasserr.Newf(jasserr.InvalidKey, "unknown root %q", root)
	}
	return idx, nil
}

// KeyChroma returns the diatonic scale chroma for (root, mode).
func KeyChroma(root string, mode Mode) (chroma.Bits, error) {
	rootIdx, err := pitchClassIndex(root)
	if err != nil {
		return chroma.Bits{}, err
	}
	intervals := majorIntervals
	if mode == Minor {
		intervals = minorIntervals
	}
	var bits chroma.Bits
	for _, iv := range intervals {
		bits[(rootIdx+iv)%chroma.Len] = 1
	}
	return bits, nil
}

// KeyTIS returns the TIS vector of the key's diatonic scale chroma.
func KeyTIS(root string, mode Mode) (tis.Vector, error) {
	bits, err := KeyChroma(root, mode)
	if err != nil {
		return tis.Vector{}, err
	}
	return tis.FromBits(bits), nil
}

func triadChroma(rootPC int, quality TriadQuality) chroma.Bits {
	var intervals [3]int
	switch quality {
	case QMajor:
		intervals = [3]int{0, 4, 7}
	case QMinor:
		intervals = [3]int{0, 3, 7}
	case QDiminished:
		intervals = [3]int{0, 3, 6}
	case QAugmented:
		intervals = [3]int{0, 4, 8}
	}
	var bits chroma.Bits
	for _, iv := range intervals {
		bits[(rootPC+iv)%chroma.Len] = 1
	}
	return bits
}

// Function names the three harmonic-function prototypes.
type Function int

const (
	Tonic Function = iota
	Subdominant
	Dominant
)

func (f Function) String() string {
	switch f {
	case Tonic:
		return "tonic"
	case Subdominant:
		return "subdominant"
	case Dominant:
		return "dominant"
	default:
		return "unknown"
	}
}

// FunctionPrototypes returns the TIS vectors of the I/IV/V (or i/iv/v)
// diatonic triads for the given key, used as tonic/subdominant/dominant
// references.
func FunctionPrototypes(root string, mode Mode) (map[Function]tis.Vector, error) {
	rootIdx, err := pitchClassIndex(root)
	if err != nil {
		return nil, err
	}
	triadMap := majorTriadMap
	if mode == Minor {
		triadMap = minorTriadMap
	}

	degrees := map[Function]int{Tonic: 0, Subdominant: 5, Dominant: 7}
	out := make(map[Function]tis.Vector, 3)
	for fn, deg := range degrees {
		pc := (rootIdx + deg) % chroma.Len
		quality := triadMap[deg]
		out[fn] = tis.FromBits(triadChroma(pc, quality))
	}
	return out, nil
}
