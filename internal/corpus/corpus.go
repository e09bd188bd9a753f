// Package corpus ingests a chord-name-to-chroma dictionary, groups names by
// chroma mask, and picks the canonical representative name(s) used to
// display each unique chord.
package corpus

import (
	"sort"
	"strings"

	"github.com/schollz/jasstension/internal/chroma"
	"github.com/schollz/jasstension/internal/jasserr"
)

// ChordRoot extracts the root pitch class spelling from a chord name: an
// initial [A-G] letter followed by an optional '#' or 'b'. Returns "" if
// name does not start with a valid root letter.
func ChordRoot(name string) string {
	if name == "" {
		return ""
	}
	c0 := strings.ToUpper(name[:1])
	if c0 < "A" || c0 > "G" {
		return ""
	}
	if len(name) >= 2 && (name[1] == '#' || name[1] == 'b') {
		return c0 + string(name[1])
	}
	return c0
}

// namePrefKey orders names: non-slash before slash, then shorter, then
// lexicographic.
func namePrefKey(n string) (int, int, string) {
	slashRank := 0
	if strings.Contains(n, "/") {
		slashRank = 1
	}
	return slashRank, len(n), n
}

func lessByPref(a, b string) bool {
	sa, la, na := namePrefKey(a)
	sb, lb, nb := namePrefKey(b)
	if sa != sb {
		return sa < sb
	}
	if la != lb {
		return la < lb
	}
	return na < nb
}

// ChooseShortestNoSlash prefers a name without '/'; if all names have '/',
// returns the shortest (then lexicographically first).
func ChooseShortestNoSlash(names []string) (string, error) {
	if len(names) == 0 {
		return "", jasserr.New(jasserr.InvalidChord, "ChooseShortestNoSlash requires a non-empty list")
	}
	pool := make([]string, 0, len(names))
	for _, n := range names {
		if !strings.Contains(n, "/") {
			pool = append(pool, n)
		}
	}
	if len(pool) == 0 {
		pool = append(pool, names...)
	}
	best := pool[0]
	for _, n := range pool[1:] {
		if len(n) < len(best) || (len(n) == len(best) && n < best) {
			best = n
		}
	}
	return best, nil
}

// FilterSlashSuggestions keeps only non-slash names for display; if that
// would remove everything, returns the single shortest name.
func FilterSlashSuggestions(names []string) []string {
	noSlash := make([]string, 0, len(names))
	for _, n := range names {
		if !strings.Contains(n, "/") {
			noSlash = append(noSlash, n)
		}
	}
	if len(noSlash) > 0 {
		return noSlash
	}
	if len(names) == 0 {
		return []string{}
	}
	shortest := names[0]
	for _, n := range names[1:] {
		if len(n) < len(shortest) || (len(n) == len(shortest) && n < shortest) {
			shortest = n
		}
	}
	return []string{shortest}
}

// ChooseRepresentative picks a single canonical name for a group of
// aliases: non-slash preferred, then shorter, then lexicographic.
func ChooseRepresentative(names []string) (string, error) {
	if len(names) == 0 {
		return "", jasserr.New(jasserr.InvalidChord, "ChooseRepresentative requires a non-empty list")
	}
	best := names[0]
	for _, n := range names[1:] {
		if lessByPref(n, best) {
			best = n
		}
	}
	return best, nil
}

// ChooseRepresentativesByRoot picks one canonical name per root pitch
// class present among chordNames, sorted by the representative
// preference order.
func ChooseRepresentativesByRoot(chordNames []string) []string {
	if len(chordNames) == 0 {
		return nil
	}
	byRoot := map[string][]string{}
	order := []string{}
	for _, name := range chordNames {
		r := ChordRoot(name)
		if r == "" {
			continue
		}
		if _, ok := byRoot[r]; !ok {
			order = append(order, r)
		}
		byRoot[r] = append(byRoot[r], name)
	}

	reps := make([]string, 0, len(order))
	for _, r := range order {
		rep, err := ChooseShortestNoSlash(byRoot[r])
		if err == nil {
			reps = append(reps, rep)
		}
	}
	sort.Slice(reps, func(i, j int) bool { return lessByPref(reps[i], reps[j]) })
	return reps
}

// ValidateChroma checks a raw bit slice is the right length, 0/1-valued,
// and non-zero.
func ValidateChroma(bits []int) error {
	if len(bits) != chroma.Len {
		return jasserr.Newf(jasserr.InvalidChroma, "expected %d bits, got %d", chroma.Len, len(bits))
	}
	sum := 0
	for i, b := range bits {
		if b != 0 && b != 1 {
			return jasserr.Newf(jasserr.InvalidChroma, "bits must be 0/1; got %d at index %d", b, i)
		}
		sum += b
	}
	if sum == 0 {
		return jasserr.New(jasserr.InvalidChroma, "chroma vector must have at least one active pitch class")
	}
	return nil
}

// GroupByMask validates every chroma and groups chord names by their
// chroma mask, sorting names within each group.
func GroupByMask(chordsToBits map[string][]int) (map[chroma.Mask][]string, error) {
	groups := map[chroma.Mask][]string{}
	for name, bits := range chordsToBits {
		if err := ValidateChroma(bits); err != nil {
			return nil, jasserr.Wrap(jasserr.InvalidChroma, "chord "+name, err)
		}
		mask, err := chroma.BitsToMask(bits)
		if err != nil {
			return nil, err
		}
		groups[mask] = append(groups[mask], name)
	}
	for _, names := range groups {
		sort.Strings(names)
	}
	return groups, nil
}
