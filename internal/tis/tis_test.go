package tis

import (
	"math"
	"testing"

	"github.com/schollz/jasstension/internal/chroma"
	"github.com/stretchr/testify/assert"
)

func cMajorTriad() chroma.Bits {
	var b chroma.Bits
	b[0], b[4], b[7] = 1, 1, 1
	return b
}

func TestFromBitsDeterministic(t *testing.T) {
	bits := cMajorTriad()
	v1 := FromBits(bits)
	v2 := FromBits(bits)
	assert.Equal(t, v1, v2)
}

func TestUnitNorm(t *testing.T) {
	bits := cMajorTriad()
	v := FromBits(bits)
	u := Unit(v)
	assert.InDelta(t, 1.0, Norm(u), 1e-12)
}

func TestDistanceSelfIsZero(t *testing.T) {
	v := FromBits(cMajorTriad())
	assert.InDelta(t, 0.0, Distance(v, v), 1e-12)
}

func TestAngleRange(t *testing.T) {
	a := FromBits(cMajorTriad())
	var gBits chroma.Bits
	gBits[7], gBits[11], gBits[2] = 1, 1, 1
	b := FromBits(gBits)
	ang := Angle(a, b)
	assert.GreaterOrEqual(t, ang, 0.0)
	assert.LessOrEqual(t, ang, math.Pi/2+1e-9)
}

func TestAnglesToMatchesAngle(t *testing.T) {
	a := FromBits(cMajorTriad())
	var gBits chroma.Bits
	gBits[7], gBits[11], gBits[2] = 1, 1, 1
	b := FromBits(gBits)

	got := AnglesTo([]Vector{a, b}, a)
	assert.InDelta(t, 0.0, got[0], 1e-9)
	assert.InDelta(t, Angle(b, a), got[1], 1e-9)
}
