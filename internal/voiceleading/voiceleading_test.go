package voiceleading

import (
	"math"
	"testing"

	"github.com/schollz/jasstension/internal/chroma"
	"github.com/stretchr/testify/assert"
)

func triad(pcs ...int) chroma.Bits {
	var b chroma.Bits
	for _, pc := range pcs {
		b[pc] = 1
	}
	return b
}

func TestTensionSelfIsMinusThree(t *testing.T) {
	c := triad(0, 4, 7) // C E G
	got := Tension(c, c, 4)
	assert.InDelta(t, -3.0, got, 1e-9)
}

func TestTensionPrefersStepwiseMotion(t *testing.T) {
	cMaj := triad(0, 4, 7)   // C E G
	dMin := triad(2, 5, 9)   // D F A (stepwise up from each voice)
	farAway := triad(1, 5, 8) // C# F G# (larger leaps)

	stepwise := Tension(cMaj, dMin, 4)
	leap := Tension(cMaj, farAway, 4)
	assert.Less(t, stepwise, leap)
}

func TestTensionSymmetricWhenSameSize(t *testing.T) {
	a := triad(0, 4, 7)
	b := triad(2, 5, 9)
	assert.InDelta(t, Tension(a, b, 4), Tension(b, a, 4), 1e-9)
}

func TestTensionFiniteWhenSizesDiffer(t *testing.T) {
	a := triad(0, 4, 7)
	b := triad(0, 4, 7, 10) // seventh chord
	got := Tension(a, b, 4)
	assert.False(t, math.IsNaN(got))
	assert.LessOrEqual(t, got, 0.0)
}

func TestTensionZeroForEmptyChord(t *testing.T) {
	var empty chroma.Bits
	c := triad(0, 4, 7)
	assert.Equal(t, 0.0, Tension(empty, c, 4))
	assert.Equal(t, 0.0, Tension(c, empty, 4))
}
