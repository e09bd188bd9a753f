// Package hierarchy builds the Rohrmeier-style reduction tree over a chord
// progression's function labels and computes the hierarchical tension
// indicator h for the progression's last chord.
package hierarchy

import (
	"github.com/schollz/jasstension/internal/jasserr"
	"github.com/schollz/jasstension/internal/theory"
	"github.com/schollz/jasstension/internal/tis"
)

// Label is a chord's harmonic-function label, derived from the
// minimum-angle prototype.
type Label int

const (
	LabelTonic Label = iota
	LabelSubdominant
	LabelDominant
)

func (l Label) String() string {
	switch l {
	case LabelTonic:
		return "t"
	case LabelSubdominant:
		return "s"
	case LabelDominant:
		return "d"
	default:
		return "?"
	}
}

// kind of a reduction-tree node.
type kind int

const (
	kindTR kind = iota
	kindSR
	kindDR
	kindROOT
)

func regionKind(l Label) kind {
	switch l {
	case LabelTonic:
		return kindTR
	case LabelSubdominant:
		return kindSR
	default:
		return kindDR
	}
}

// FunctionLabel maps a chord's TIS vector to t/s/d via the minimum angle
// to the key's tonic/subdominant/dominant prototypes.
func FunctionLabel(v tis.Vector, protos map[theory.Function]tis.Vector) Label {
	var best float64
	var bestFn theory.Function
	first := true
	for fn, proto := range protos {
		a := tis.Angle(v, proto)
		if first || a < best {
			best = a
			bestFn = fn
			first = false
		}
	}
	switch bestFn {
	case theory.Tonic:
		return LabelTonic
	case theory.Subdominant:
		return LabelSubdominant
	default:
		return LabelDominant
	}
}

// node is an arena entry: children and parent are indices into the same
// arena, -1 meaning "none".
type node struct {
	kind             kind
	start, end       int
	headPos          int
	left, right      int
	parent           int
}

// TensionLast computes the hierarchical tension h for the last chord in
// the progression described by tisList/funcLabels/keyDistances, all of
// equal length n >= 2.
func TensionLast(tisList []tis.Vector, funcLabels []Label, keyDistances []float64) (float64, error) {
	n := len(tisList)
	if n <= 1 {
		return 0, nil
	}
	if len(funcLabels) != n || len(keyDistances) != n {
		return 0, jasserr.New(jasserr.InvalidProgression, "tisList, funcLabels, and keyDistances must have equal length")
	}

	arena := make([]node, 0, 2*n)
	newLeaf := func(i int) int {
		arena = append(arena, node{kind: regionKind(funcLabels[i]), start: i, end: i + 1, headPos: i, left: -1, right: -1, parent: -1})
		return len(arena) - 1
	}

	active := make([]int, n)
	for i := 0; i < n; i++ {
		active[i] = newLeaf(i)
	}

	priority := func(l Label) int {
		switch l {
		case LabelTonic:
			return 0
		case LabelSubdominant:
			return 1
		default:
			return 2
		}
	}

	stableHead := func(a, b int) int {
		pa := priority(funcLabels[a])
		pb := priority(funcLabels[b])
		if pa != pb {
			if pa < pb {
				return a
			}
			return b
		}
		if keyDistances[a] <= keyDistances[b] {
			return a
		}
		return b
	}

	merge := func(i int, k kind, headPos int) {
		left := active[i]
		right := active[i+1]
		arena = append(arena, node{
			kind: k, start: arena[left].start, end: arena[right].end,
			headPos: headPos, left: left, right: right, parent: -1,
		})
		idx := len(arena) - 1
		arena[left].parent = idx
		arena[right].parent = idx
		active = append(active[:i], append([]int{idx}, active[i+2:]...)...)
	}

	changed := true
	for changed && len(active) > 1 {
		changed = false
		for i := 0; i < len(active)-1; i++ {
			a, b := arena[active[i]], arena[active[i+1]]
			if a.kind == kindSR && b.kind == kindDR {
				merge(i, kindDR, b.headPos)
				changed = true
				break
			}
		}
		if changed {
			continue
		}
		for i := 0; i < len(active)-1; i++ {
			a, b := arena[active[i]], arena[active[i+1]]
			if a.kind == kindDR && b.kind == kindTR {
				merge(i, kindTR, b.headPos)
				changed = true
				break
			}
		}
		if changed {
			continue
		}
		for i := 0; i < len(active)-1; i++ {
			a, b := arena[active[i]], arena[active[i+1]]
			if a.kind == kindTR && b.kind == kindDR {
				merge(i, kindTR, a.headPos)
				changed = true
				break
			}
		}
	}

	for len(active) > 1 {
		a, b := arena[active[0]], arena[active[1]]
		head := stableHead(a.headPos, b.headPos)
		merge(0, kindROOT, head)
	}

	leaf := n - 1
	current := arena[leaf].parent
	var parentHeads []int
	for current != -1 {
		hp := arena[current].headPos
		if hp != n-1 {
			if len(parentHeads) == 0 || parentHeads[len(parentHeads)-1] != hp {
				parentHeads = append(parentHeads, hp)
			}
		}
		current = arena[current].parent
	}

	if len(parentHeads) == 0 {
		return 0, nil
	}

	last := tisList[n-1]
	total := 0.0
	for _, hp := range parentHeads {
		total += tis.Distance(last, tisList[hp])
	}
	return total / float64(len(parentHeads)), nil
}
