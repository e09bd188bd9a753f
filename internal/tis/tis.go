// Package tis implements the Tonal Interval Space transform: a vectorized
// map from 12-bit pitch-class chroma into a 6-dimensional complex vector,
// plus the complex-vector metrics (inner product, norm, distance, angle)
// the rest of the engine builds on.
package tis

import (
	"math"
	"math/cmplx"

	"github.com/schollz/jasstension/internal/chroma"
)

// Dim is the dimensionality of a TIS vector (half the chroma length).
const Dim = chroma.Len / 2

// Vector is a 6-D complex tonal interval vector.
type Vector [Dim]complex128

// DefaultWeights are the paper's per-dimension TIS weights.
var DefaultWeights = [Dim]float64{2, 11, 17, 16, 19, 7}

// basis[k][n] = exp(-2*pi*i*(k+1)*n/12), the precomputed (6,12) DFT basis.
var basis [Dim][chroma.Len]complex128

func init() {
	for k := 0; k < Dim; k++ {
		for n := 0; n < chroma.Len; n++ {
			theta := -2 * math.Pi * float64(k+1) * float64(n) / float64(chroma.Len)
			basis[k][n] = cmplx.Rect(1, theta)
		}
	}
}

// FromBits computes the TIS vector for a single chroma vector using the
// default weights. bits must have at least one active pitch class.
func FromBits(bits chroma.Bits) Vector {
	return FromBitsWeighted(bits, DefaultWeights)
}

// FromBitsWeighted computes the TIS vector for a single chroma vector with
// explicit per-dimension weights.
func FromBitsWeighted(bits chroma.Bits, weights [Dim]float64) Vector {
	sum := 0.0
	for _, b := range bits {
		sum += float64(b)
	}
	// Every stored chroma is guaranteed non-zero by corpus ingestion
	// validation; an all-zero chroma from any other source (including an
	// all-zero chroma.ParseChroma input) gets a zero vector rather than a
	// divide-by-zero panic.
	if sum == 0 {
		return Vector{}
	}

	var out Vector
	for k := 0; k < Dim; k++ {
		var acc complex128
		for n, b := range bits {
			if b == 0 {
				continue
			}
			acc += complex(float64(b)/sum, 0) * basis[k][n]
		}
		out[k] = acc * complex(weights[k], 0)
	}
	return out
}

// Matrix computes the TIS vectors for many chroma rows in one pass.
func Matrix(rows []chroma.Bits) []Vector {
	out := make([]Vector, len(rows))
	for i, r := range rows {
		out[i] = FromBits(r)
	}
	return out
}

// Dot returns the complex inner product sum(v1[k] * conj(v2[k])).
func Dot(v1, v2 Vector) complex128 {
	var acc complex128
	for k := 0; k < Dim; k++ {
		acc += v1[k] * cmplx.Conj(v2[k])
	}
	return acc
}

// Norm returns the Euclidean norm of v.
func Norm(v Vector) float64 {
	var sumSq float64
	for _, x := range v {
		sumSq += real(x)*real(x) + imag(x)*imag(x)
	}
	return math.Sqrt(sumSq)
}

// Unit returns v / Norm(v). Callers must guard Norm(v) > 0 themselves.
func Unit(v Vector) Vector {
	n := Norm(v)
	var out Vector
	if n == 0 {
		return out
	}
	for k := range v {
		out[k] = v[k] / complex(n, 0)
	}
	return out
}

// Sub returns the element-wise difference v1 - v2.
func Sub(v1, v2 Vector) Vector {
	var out Vector
	for k := range v1 {
		out[k] = v1[k] - v2[k]
	}
	return out
}

// Distance returns the Euclidean distance between v1 and v2.
func Distance(v1, v2 Vector) float64 {
	return Norm(Sub(v1, v2))
}

// CosineSimilarity returns |<v1,v2>| / (||v1|| ||v2||), clipped to [0,1].
// Returns NaN if either vector has zero norm.
func CosineSimilarity(v1, v2 Vector) float64 {
	denom := Norm(v1) * Norm(v2)
	if denom == 0 {
		return math.NaN()
	}
	c := cmplx.Abs(Dot(v1, v2)) / denom
	return clip01(c)
}

// Angle returns the angle (radians) derived from CosineSimilarity, or NaN
// if either vector has zero norm.
func Angle(v1, v2 Vector) float64 {
	c := CosineSimilarity(v1, v2)
	if math.IsNaN(c) {
		return math.NaN()
	}
	return math.Acos(clip01(c))
}

func clip01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
