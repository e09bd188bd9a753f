// Package rank turns the six tension indicators into a ranked list of
// suggested next chords for a query.
package rank

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/schollz/jasstension/internal/chroma"
	"github.com/schollz/jasstension/internal/corpus"
	"github.com/schollz/jasstension/internal/jasserr"
	"github.com/schollz/jasstension/internal/tension"
	"github.com/schollz/jasstension/internal/theory"
	"github.com/schollz/jasstension/internal/tisindex"
)

type indicatorValues = tension.Indicators

const defaultTop = 10
const defaultVoiceLeadingAdditionPenalty = 4

// Query describes a suggest_chords request.
type Query struct {
	Chord                       string
	Progression                 []string
	Key                         string
	Top                         int
	Goal                        string
	Weights                     *Weights
	Normalize                   bool
	VoiceLeadingAdditionPenalty int
	Flats                       bool
	IncludeAliases              bool
}

// QueryEcho reports back the resolved request shape.
type QueryEcho struct {
	Chord       string
	Progression []string
	Key         string
}

// Candidate is one ranked suggestion.
type Candidate struct {
	Row     int
	Rank    int
	Name    string
	Names   []string
	Aliases []string
	Notes   []string
	D1      float64
	D2      float64
	D3      float64
	C       float64
	M       float64
	H       float64
	Tension float64
}

// Result is the full response to a suggest_chords query.
type Result struct {
	Query   QueryEcho
	Goal    string
	Weights Weights
	Results []Candidate
	Meta    tisindex.Meta
}

// Suggest ranks every row of idx as a candidate next chord after q.Chord
// (or the last chord of q.Progression), returning the top q.Top by the
// weighted, goal-oriented tension score.
func Suggest(idx *tisindex.Index, q Query) (Result, error) {
	nameToRow := idx.NameToRow()

	chordName, progression, err := resolveChordAndProgression(q)
	if err != nil {
		return Result{}, err
	}

	prevRow, ok := nameToRow[chordName]
	if !ok {
		return Result{}, jasserr.Newf(jasserr.InvalidChord, "unknown chord %q", chordName)
	}

	progressionRows := make([]int, 0, len(progression))
	for _, name := range progression {
		row, ok := nameToRow[name]
		if !ok {
			return Result{}, jasserr.Newf(jasserr.InvalidProgression, "unknown chord %q in progression", name)
		}
		progressionRows = append(progressionRows, row)
	}

	weights := DefaultWeights()
	if q.Weights != nil {
		weights = *q.Weights
	}
	if err := weights.validate(); err != nil {
		return Result{}, err
	}

	key, err := theory.ParseKey(q.Key)
	if err != nil {
		return Result{}, err
	}

	penalty := q.VoiceLeadingAdditionPenalty
	if penalty == 0 {
		penalty = defaultVoiceLeadingAdditionPenalty
	}

	feats, err := tension.Compute(idx, prevRow, key, tension.Options{
		ProgressionRows:             progressionRows,
		VoiceLeadingAdditionPenalty: penalty,
	})
	if err != nil {
		return Result{}, err
	}
	maskPrevRow(&feats, prevRow)

	tensionScore := combineTension(feats, weights, q.Normalize)
	sortKeys := goalSortKeys(tensionScore, q.Goal)

	top := q.Top
	if top <= 0 {
		top = defaultTop
	}

	order := rankOrder(sortKeys, prevRow)
	if top < len(order) {
		order = order[:top]
	}

	results := make([]Candidate, 0, len(order))
	for rank, row := range order {
		results = append(results, buildCandidate(idx, row, rank+1, feats, tensionScore[row], q.Flats, q.IncludeAliases))
	}

	return Result{
		Query: QueryEcho{
			Chord:       chordName,
			Progression: progression,
			Key:         q.Key,
		},
		Goal:    q.Goal,
		Weights: weights,
		Results: results,
		Meta:    idx.Meta,
	}, nil
}

func resolveChordAndProgression(q Query) (string, []string, error) {
	if len(q.Progression) == 0 {
		if q.Chord == "" {
			return "", nil, jasserr.New(jasserr.InvalidChord, "either chord or progression must be provided")
		}
		return q.Chord, nil, nil
	}
	last := q.Progression[len(q.Progression)-1]
	if q.Chord != "" && q.Chord != last {
		return "", nil, jasserr.Newf(jasserr.InvalidProgression, "chord %q must match the last chord of progression %q", q.Chord, last)
	}
	return last, q.Progression, nil
}

// maskPrevRow sets every indicator to NaN at prevRow, excluding the
// current chord from its own suggestion list.
func maskPrevRow(feats *indicatorValues, prevRow int) {
	feats.D1[prevRow] = math.NaN()
	feats.D2[prevRow] = math.NaN()
	feats.D3[prevRow] = math.NaN()
	feats.C[prevRow] = math.NaN()
	feats.M[prevRow] = math.NaN()
	feats.H[prevRow] = math.NaN()
}

// combineTension accumulates weight * (optionally min-max normalized)
// indicator value across every enabled (weight > 0) indicator.
func combineTension(feats indicatorValues, w Weights, normalize bool) []float64 {
	n := len(feats.D1)
	out := make([]float64, n)

	for _, ind := range w.entries(feats) {
		if ind.weight <= 0 {
			continue
		}
		values := ind.values
		if normalize {
			values = minMaxNormalize(ind.values)
		}
		for i, v := range values {
			out[i] += ind.weight * v
		}
	}
	return out
}

// minMaxNormalize scales finite values into [0,1]; an all-NaN input (or a
// zero-span input) contributes zero everywhere without erroring.
func minMaxNormalize(values []float64) []float64 {
	out := make([]float64, len(values))
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	span := max - min
	if math.IsInf(min, 0) || math.IsInf(max, 0) || span <= 0 {
		return out
	}
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		out[i] = (v - min) / span
	}
	return out
}

// goalSortKeys derives the ascending sort key per row for the requested
// goal without mutating tensionScore: "build" sorts by descending
// tension, a numeric goal sorts by absolute distance to the target, and
// anything else (including "resolve") sorts by ascending tension.
func goalSortKeys(tensionScore []float64, goal string) []float64 {
	keys := make([]float64, len(tensionScore))
	if target, err := strconv.ParseFloat(strings.TrimSpace(goal), 64); err == nil {
		for i, v := range tensionScore {
			keys[i] = math.Abs(v - target)
		}
		return keys
	}
	if goal == "build" {
		for i, v := range tensionScore {
			keys[i] = -v
		}
		return keys
	}
	copy(keys, tensionScore)
	return keys
}

// rankOrder sorts row indices by ascending sort key, NaN keys pushed to
// the end, excluding prevRow, ties broken by ascending row index.
func rankOrder(sortKeys []float64, prevRow int) []int {
	rows := make([]int, 0, len(sortKeys))
	for i := range sortKeys {
		if i == prevRow {
			continue
		}
		rows = append(rows, i)
	}
	key := func(row int) float64 {
		v := sortKeys[row]
		if math.IsNaN(v) {
			return math.Inf(1)
		}
		return v
	}
	sort.SliceStable(rows, func(i, j int) bool {
		ki, kj := key(rows[i]), key(rows[j])
		if ki != kj {
			return ki < kj
		}
		return rows[i] < rows[j]
	})
	return rows
}

func buildCandidate(idx *tisindex.Index, row, rank int, feats indicatorValues, tensionScore float64, flats, includeAliases bool) Candidate {
	reps := idx.RepsForRow(row)
	names := corpus.FilterSlashSuggestions(reps)
	name := idx.RepNames[row]
	if len(names) > 0 {
		name = names[0]
	}

	var aliases []string
	if includeAliases {
		aliases = idx.AliasesForRow(row)
	}

	return Candidate{
		Row:     row,
		Rank:    rank,
		Name:    name,
		Names:   names,
		Aliases: aliases,
		Notes:   chroma.ToNotes(idx.ChromaBits[row], flats),
		D1:      feats.D1[row],
		D2:      feats.D2[row],
		D3:      feats.D3[row],
		C:       feats.C[row],
		M:       feats.M[row],
		H:       feats.H[row],
		Tension: tensionScore,
	}
}
