// Package tisindex builds and serves the frozen, random-access TIS index:
// one row per unique chroma mask, carrying representatives, aliases, and
// precomputed TIS vectors/norms/units.
package tisindex

import (
	"sort"
	"time"

	"github.com/schollz/jasstension/internal/chroma"
	"github.com/schollz/jasstension/internal/corpus"
	"github.com/schollz/jasstension/internal/jasserr"
	"github.com/schollz/jasstension/internal/tis"
)

// Meta carries provenance and build parameters for an Index.
type Meta struct {
	Source     string
	CreatedUTC string
	ChromaLen  int
	TISDim     int
	BitOrder   []string
	Weights    []float64
	NumChords  int
	NumVectors int
}

// Index is the frozen, persistable chord chroma index. Every field is
// read-only after Build/Load returns.
type Index struct {
	RepNames       []string
	ChromaBits     []chroma.Bits
	ChromaMask     []chroma.Mask // strictly increasing
	TIS            []tis.Vector
	TISNorm        []float64
	TISUnit        []tis.Vector
	RepOffsets     []int32
	RepNamesByRoot []string
	AliasOffsets   []int32
	AliasNames     []string
	Meta           Meta
}

// Rows returns the number of unique chroma masks in the index.
func (idx *Index) Rows() int { return len(idx.ChromaMask) }

// RepsForRow returns the per-root canonical display names for row.
func (idx *Index) RepsForRow(row int) []string {
	start, end := idx.RepOffsets[row], idx.RepOffsets[row+1]
	return append([]string(nil), idx.RepNamesByRoot[start:end]...)
}

// AliasesForRow returns every chord name sharing row's chroma mask.
func (idx *Index) AliasesForRow(row int) []string {
	start, end := idx.AliasOffsets[row], idx.AliasOffsets[row+1]
	return append([]string(nil), idx.AliasNames[start:end]...)
}

// NameToRow builds a lookup from every alias name to its row index.
func (idx *Index) NameToRow() map[string]int {
	out := make(map[string]int, len(idx.AliasNames))
	for i := range idx.ChromaMask {
		for _, name := range idx.AliasesForRow(i) {
			out[name] = i
		}
	}
	return out
}

// MaskToRow builds a lookup from chroma mask to row index.
func (idx *Index) MaskToRow() map[chroma.Mask]int {
	out := make(map[chroma.Mask]int, len(idx.ChromaMask))
	for i, m := range idx.ChromaMask {
		out[m] = i
	}
	return out
}

// Build ingests a validated chord dictionary and constructs a frozen
// Index, one row per unique chroma mask, in ascending mask order.
func Build(chordsToBits map[string][]int, weights [tis.Dim]float64, sourceName string) (*Index, error) {
	groups, err := corpus.GroupByMask(chordsToBits)
	if err != nil {
		return nil, err
	}

	masks := make([]chroma.Mask, 0, len(groups))
	for m := range groups {
		masks = append(masks, m)
	}
	sort.Slice(masks, func(i, j int) bool { return masks[i] < masks[j] })

	n := len(masks)
	idx := &Index{
		RepNames:   make([]string, n),
		ChromaBits: make([]chroma.Bits, n),
		ChromaMask: masks,
		RepOffsets: make([]int32, n+1),
		AliasOffsets: make([]int32, n+1),
	}

	for i, mask := range masks {
		aliases := groups[mask]
		repsByRoot := corpus.ChooseRepresentativesByRoot(aliases)
		var rep string
		if len(repsByRoot) > 0 {
			rep, err = corpus.ChooseRepresentative(repsByRoot)
		} else {
			rep, err = corpus.ChooseRepresentative(aliases)
		}
		if err != nil {
			return nil, err
		}
		idx.RepNames[i] = rep

		bits, err := chroma.MaskToBits(mask)
		if err != nil {
			return nil, err
		}
		idx.ChromaBits[i] = bits

		flatReps := repsByRoot
		if len(flatReps) == 0 {
			flatReps = []string{rep}
		}
		idx.RepNamesByRoot = append(idx.RepNamesByRoot, flatReps...)
		idx.RepOffsets[i+1] = int32(len(idx.RepNamesByRoot))

		idx.AliasNames = append(idx.AliasNames, aliases...)
		idx.AliasOffsets[i+1] = int32(len(idx.AliasNames))
	}

	idx.TIS = make([]tis.Vector, n)
	idx.TISNorm = make([]float64, n)
	idx.TISUnit = make([]tis.Vector, n)
	for i, bits := range idx.ChromaBits {
		v := tis.FromBitsWeighted(bits, weights)
		idx.TIS[i] = v
		norm := tis.Norm(v)
		idx.TISNorm[i] = norm
		if norm > 0 {
			idx.TISUnit[i] = tis.Unit(v)
		}
	}

	idx.Meta = Meta{
		Source:     sourceName,
		CreatedUTC: time.Now().UTC().Format(time.RFC3339),
		ChromaLen:  chroma.Len,
		TISDim:     tis.Dim,
		BitOrder:   []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"},
		Weights:    append([]float64(nil), weights[:]...),
		NumChords:  len(chordsToBits),
		NumVectors: n,
	}

	if err := idx.validate(); err != nil {
		return nil, err
	}
	return idx, nil
}

// validate checks the invariants spec.md §3 requires of a built index.
func (idx *Index) validate() error {
	for i := 1; i < len(idx.ChromaMask); i++ {
		if idx.ChromaMask[i] <= idx.ChromaMask[i-1] {
			return jasserr.New(jasserr.InvalidIndex, "chroma_mask must be strictly increasing")
		}
	}
	if idx.RepOffsets[0] != 0 || idx.AliasOffsets[0] != 0 {
		return jasserr.New(jasserr.InvalidIndex, "offsets must start at 0")
	}
	for i := 1; i < len(idx.RepOffsets); i++ {
		if idx.RepOffsets[i] < idx.RepOffsets[i-1] {
			return jasserr.New(jasserr.InvalidIndex, "rep_offsets must be non-decreasing")
		}
	}
	for i := 1; i < len(idx.AliasOffsets); i++ {
		if idx.AliasOffsets[i] < idx.AliasOffsets[i-1] {
			return jasserr.New(jasserr.InvalidIndex, "alias_offsets must be non-decreasing")
		}
	}
	for i, norm := range idx.TISNorm {
		if norm <= 0 {
			return jasserr.Newf(jasserr.InvalidIndex, "row %d has non-positive tis_norm", i)
		}
	}
	// Every alias's mask-agreement is guaranteed by construction: Build
	// groups names by bits_to_mask before any row exists.
	return nil
}
