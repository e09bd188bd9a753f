// Package voiceleading implements the assignment-cost voice-leading
// distance used as tension indicator m: chords are pitch-class sets (no
// voicings), and the cost of moving from one to the other is the minimum
// over all pairings of per-voice semitone distance weighted by TIS
// distance between singleton pitch classes.
package voiceleading

import (
	"math"

	"github.com/schollz/jasstension/internal/chroma"
	"github.com/schollz/jasstension/internal/tis"
)

// pcDist is the circular pitch-class distance table.
var pcDist [chroma.Len][chroma.Len]int

// noteTIS[p] is the TIS vector of the singleton chroma {p}.
var noteTIS [chroma.Len]tis.Vector

// noteTISNorm is the shared TIS norm of every singleton chroma; equal by
// rotational symmetry of the DFT basis.
var noteTISNorm float64

func init() {
	for i := 0; i < chroma.Len; i++ {
		for j := 0; j < chroma.Len; j++ {
			d := i - j
			if d < 0 {
				d = -d
			}
			if other := chroma.Len - d; other < d {
				d = other
			}
			pcDist[i][j] = d
		}
	}
	for pc := 0; pc < chroma.Len; pc++ {
		var bits chroma.Bits
		bits[pc] = 1
		noteTIS[pc] = tis.FromBits(bits)
	}
	noteTISNorm = tis.Norm(noteTIS[0])
}

// Tension returns the paper-aligned voice-leading tension between chords
// a and b (Eq. 8, adapted to pitch-class sets): the minimum-cost
// assignment is converted into a stability sum and negated so larger
// values mean more tension. Returns 0 if either chord is empty.
func Tension(a, b chroma.Bits, additionPenalty int) float64 {
	pcsA := a.PitchClasses()
	pcsB := b.PitchClasses()
	if len(pcsA) == 0 || len(pcsB) == 0 {
		return 0
	}

	na, nb := len(pcsA), len(pcsB)
	n := na
	if nb > n {
		n = nb
	}

	padCost := float64(additionPenalty) * noteTISNorm
	cost := make([][]float64, n)
	for i := range cost {
		cost[i] = make([]float64, n)
		for j := range cost[i] {
			cost[i][j] = padCost
		}
	}
	for i := 0; i < na; i++ {
		for j := 0; j < nb; j++ {
			s := float64(pcDist[pcsA[i]][pcsB[j]])
			mu := tis.Distance(noteTIS[pcsA[i]], noteTIS[pcsB[j]])
			cost[i][j] = s * mu
		}
	}

	chosen := solveAssignment(cost)

	stability := 0.0
	for _, c := range chosen {
		stability += math.Exp(-0.05 * c)
	}
	return -stability
}
