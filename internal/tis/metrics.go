package tis

import "math"

// AnglesTo computes the angle (radians) between each vector in vectors and
// a fixed reference vector, using the same complex inner-product-magnitude
// convention as Angle. Entries where the corresponding vector has zero norm
// (or ref has zero norm) are NaN rather than causing a panic.
func AnglesTo(vectors []Vector, ref Vector) []float64 {
	refNorm := Norm(ref)
	out := make([]float64, len(vectors))
	for i, v := range vectors {
		denom := Norm(v) * refNorm
		if denom <= 0 {
			out[i] = math.NaN()
			continue
		}
		c := absComplex(Dot(v, ref)) / denom
		out[i] = math.Acos(clip01(c))
	}
	return out
}

func absComplex(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
