package rank

import "github.com/schollz/jasstension/internal/jasserr"

// Weights holds a non-negative weight per tension indicator, replacing a
// dynamic "dict of weights" with a fixed six-field schema.
type Weights struct {
	D1 float64
	D2 float64
	D3 float64
	C  float64
	M  float64
	H  float64
}

// rawPaperWeights are the paper's Table 1 (Experiment 1) values before
// normalization.
var rawPaperWeights = Weights{D1: 0, D2: 0.158, D3: 0, C: 0.303, M: 0.271, H: 0.318}

// DefaultWeights returns the paper's Table-1 weights normalized to sum to
// 1, matching the reference implementation's DEFAULT_WEIGHTS.
func DefaultWeights() Weights {
	return normalize(rawPaperWeights)
}

func normalize(w Weights) Weights {
	total := w.D1 + w.D2 + w.D3 + w.C + w.M + w.H
	if total <= 0 {
		return w
	}
	return Weights{
		D1: w.D1 / total,
		D2: w.D2 / total,
		D3: w.D3 / total,
		C:  w.C / total,
		M:  w.M / total,
		H:  w.H / total,
	}
}

// validate rejects negative weights.
func (w Weights) validate() error {
	for name, v := range map[string]float64{"d1": w.D1, "d2": w.D2, "d3": w.D3, "c": w.C, "m": w.M, "h": w.H} {
		if v < 0 {
			return jasserr.Newf(jasserr.InvalidWeights, "weight %q must be non-negative, got %v", name, v)
		}
	}
	return nil
}

// entries returns the (name, weight, values) triples used by the ranker,
// in a fixed, deterministic order.
func (w Weights) entries(f indicatorValues) []weightedIndicator {
	return []weightedIndicator{
		{"d1", w.D1, f.D1},
		{"d2", w.D2, f.D2},
		{"d3", w.D3, f.D3},
		{"c", w.C, f.C},
		{"m", w.M, f.M},
		{"h", w.H, f.H},
	}
}

type weightedIndicator struct {
	name   string
	weight float64
	values []float64
}

// ParseWeights builds a Weights from an external map, rejecting unknown
// indicator keys and negative values.
func ParseWeights(m map[string]float64) (Weights, error) {
	w := Weights{}
	fields := map[string]*float64{"d1": &w.D1, "d2": &w.D2, "d3": &w.D3, "c": &w.C, "m": &w.M, "h": &w.H}
	for k, v := range m {
		ptr, ok := fields[k]
		if !ok {
			return Weights{}, jasserr.Newf(jasserr.InvalidWeights, "unknown indicator key %q", k)
		}
		*ptr = v
	}
	if err := w.validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}
