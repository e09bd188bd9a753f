// Package tension computes the six paper-aligned tonal tension indicators
// (d1, d2, d3, c, m, h) for every row of a TIS index relative to a
// previous chord, a key, and an optional progression context.
package tension

import (
	"math"

	"github.com/schollz/jasstension/internal/hierarchy"
	"github.com/schollz/jasstension/internal/theory"
	"github.com/schollz/jasstension/internal/tis"
	"github.com/schollz/jasstension/internal/tisindex"
	"github.com/schollz/jasstension/internal/voiceleading"
)

// Indicators is the fixed six-field schema replacing a "dict of indicator
// arrays": one equally-sized field per indicator, computed for every row.
type Indicators struct {
	D1 []float64
	D2 []float64
	D3 []float64
	C  []float64
	M  []float64
	H  []float64
}

// Options configures Compute beyond the required (index, prevRow, key)
// inputs.
type Options struct {
	ProgressionRows             []int
	VoiceLeadingAdditionPenalty int
}

// Compute returns the six indicators for every row of idx relative to
// prevRow and the given key.
func Compute(idx *tisindex.Index, prevRow int, key theory.Key, opts Options) (Indicators, error) {
	n := idx.Rows()
	prevTIS := idx.TIS[prevRow]

	d1 := make([]float64, n)
	for i, v := range idx.TIS {
		d1[i] = tis.Distance(v, prevTIS)
	}

	keyTIS, err := theory.KeyTIS(key.Root, key.Mode)
	if err != nil {
		return Indicators{}, err
	}
	d2 := tis.AnglesTo(idx.TISUnit, keyTIS)

	protos, err := theory.FunctionPrototypes(key.Root, key.Mode)
	if err != nil {
		return Indicators{}, err
	}

	d3 := computeD3(idx.TIS, keyTIS, protos)

	c := make([]float64, n)
	for i, norm := range idx.TISNorm {
		c[i] = -norm
	}

	penalty := opts.VoiceLeadingAdditionPenalty
	if penalty == 0 {
		penalty = 4
	}
	prevBits := idx.ChromaBits[prevRow]
	m := make([]float64, n)
	for i, bits := range idx.ChromaBits {
		if i == prevRow {
			continue
		}
		m[i] = voiceleading.Tension(prevBits, bits, penalty)
	}

	h := make([]float64, n)
	if len(opts.ProgressionRows) > 0 {
		progTIS := make([]tis.Vector, len(opts.ProgressionRows))
		progLabels := make([]hierarchy.Label, len(opts.ProgressionRows))
		progD2 := make([]float64, len(opts.ProgressionRows))
		for k, row := range opts.ProgressionRows {
			progTIS[k] = idx.TIS[row]
			progLabels[k] = hierarchy.FunctionLabel(idx.TIS[row], protos)
			progD2[k] = d2[row]
		}

		for i, v := range idx.TIS {
			if i == prevRow {
				continue
			}
			candLabel := hierarchy.FunctionLabel(v, protos)
			tisList := append(append([]tis.Vector(nil), progTIS...), v)
			labels := append(append([]hierarchy.Label(nil), progLabels...), candLabel)
			dists := append(append([]float64(nil), progD2...), d2[i])
			val, err := hierarchy.TensionLast(tisList, labels, dists)
			if err != nil {
				return Indicators{}, err
			}
			h[i] = val
		}
	}

	return Indicators{D1: d1, D2: d2, D3: d3, C: c, M: m, H: h}, nil
}

func computeD3(rows []tis.Vector, keyTIS tis.Vector, protos map[theory.Function]tis.Vector) []float64 {
	n := len(rows)
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Inf(1)
	}

	offsetUnits := make([]tis.Vector, n)
	for i, v := range rows {
		offset := tis.Sub(v, keyTIS)
		if tis.Norm(offset) > 0 {
			offsetUnits[i] = tis.Unit(offset)
		}
	}

	for _, proto := range protos {
		protoOffset := tis.Sub(proto, keyTIS)
		angles := tis.AnglesTo(offsetUnits, protoOffset)
		for i, a := range angles {
			if !math.IsNaN(a) && a < out[i] {
				out[i] = a
			}
		}
	}

	// T_i == T_K (zero offset) leaves the direction undefined; spec.md
	// §4.4 fixes this at 0 rather than NaN for ranking-order stability.
	for i, v := range rows {
		if tis.Norm(tis.Sub(v, keyTIS)) == 0 || math.IsInf(out[i], 1) {
			out[i] = 0
		}
	}
	return out
}
