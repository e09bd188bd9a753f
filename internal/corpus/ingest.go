package corpus

import (
	"io"
	"sort"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/schollz/jasstension/internal/chroma"
	"github.com/schollz/jasstension/internal/jasserr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// corpusEntry is the one-element-list wrapper the source corpus format
// uses per chord name: {"chroma_binary": [12 x 0/1]}.
type corpusEntry struct {
	ChromaBinary []int `json:"chroma_binary"`
}

// LoadChordsChroma reads the corpus JSON format:
//
//	{ "C": [ { "chroma_binary": [0/1 x12] } ], ... }
//
// and returns { "C": [0/1 x12], ... }.
func LoadChordsChroma(r io.Reader) (map[string][]int, error) {
	var raw map[string][]corpusEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, jasserr.Wrap(jasserr.InvalidChroma, "expected top-level JSON object of one-element lists", err)
	}

	out := make(map[string][]int, len(raw))
	for chordName, entries := range raw {
		if len(entries) != 1 {
			return nil, jasserr.Newf(jasserr.InvalidChroma, "chord %q must map to a 1-item list", chordName)
		}
		if err := ValidateChroma(entries[0].ChromaBinary); err != nil {
			return nil, jasserr.Wrap(jasserr.InvalidChroma, "chord "+chordName, err)
		}
		out[chordName] = entries[0].ChromaBinary
	}
	return out, nil
}

// Meta describes provenance for a human-editable index file.
type Meta struct {
	Source      string   `json:"source"`
	CreatedUTC  string   `json:"created_utc"`
	ChromaLen   int      `json:"chroma_len"`
	Key         string   `json:"key"`
	BitOrder    []string `json:"bit_order"`
	UniqueKeys  int      `json:"unique_keys"`
	NumChords   int      `json:"num_chords"`
}

// IndexFile is the human-editable JSON mapping of chroma mask to its
// representative names and full alias list (distinct from the binary
// tisindex archive).
type IndexFile struct {
	Meta    Meta
	Reps    map[chroma.Mask][]string
	Aliases map[chroma.Mask][]string // nil when not populated
}

// MakeIndexFile builds the human-editable index file from a validated
// chord dictionary.
func MakeIndexFile(sourceName string, chordsToBits map[string][]int) (IndexFile, error) {
	groups, err := GroupByMask(chordsToBits)
	if err != nil {
		return IndexFile{}, err
	}

	reps := make(map[chroma.Mask][]string, len(groups))
	for mask, names := range groups {
		byRoot := ChooseRepresentativesByRoot(names)
		if len(byRoot) == 0 {
			single, err := ChooseRepresentative(names)
			if err != nil {
				return IndexFile{}, err
			}
			byRoot = []string{single}
		}
		reps[mask] = FilterSlashSuggestions(byRoot)
	}

	meta := Meta{
		Source:     sourceName,
		CreatedUTC: time.Now().UTC().Format(time.RFC3339),
		ChromaLen:  chroma.Len,
		Key:        "mask12",
		BitOrder:   []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"},
		UniqueKeys: len(groups),
		NumChords:  len(chordsToBits),
	}

	return IndexFile{Meta: meta, Reps: reps, Aliases: groups}, nil
}

type indexFileJSON struct {
	Meta    Meta                `json:"_meta"`
	Reps    map[string][]string `json:"reps"`
	Aliases map[string][]string `json:"aliases,omitempty"`
}

// legacyIndexFileJSON covers the older on-disk shapes this format must
// still read: a single "rep_index" string per mask, or the original
// "index" mapping of mask -> all alias names (reps derived on load).
type legacyIndexFileJSON struct {
	Meta     Meta              `json:"_meta"`
	RepIndex map[string]string `json:"rep_index"`
	Index    map[string][]string `json:"index"`
}

func encodeMaskKey(key string, m chroma.Mask) (string, error) {
	if key == "bits12" {
		bits, err := chroma.MaskToBits(m)
		if err != nil {
			return "", err
		}
		s := make([]byte, chroma.Len)
		for i, b := range bits {
			s[i] = '0' + b
		}
		return string(s), nil
	}
	return strconv.Itoa(int(m)), nil
}

func decodeMaskKey(k string) (chroma.Mask, error) {
	if len(k) == chroma.Len && isBitstring(k) {
		bits := make([]int, chroma.Len)
		for i := 0; i < chroma.Len; i++ {
			bits[i] = int(k[i] - '0')
		}
		m, err := chroma.BitsToMask(bits)
		if err != nil {
			return 0, err
		}
		return m, nil
	}
	n, err := strconv.Atoi(k)
	if err != nil {
		return 0, jasserr.Wrap(jasserr.InvalidIndex, "invalid mask key "+k, err)
	}
	return chroma.Mask(n), nil
}

func isBitstring(s string) bool {
	for _, c := range s {
		if c != '0' && c != '1' {
			return false
		}
	}
	return true
}

// ToJSON serializes the index file, keying masks by the format named in
// Meta.Key ("mask12" or "bits12"); any other value falls back to "mask12".
func (f IndexFile) ToJSON() ([]byte, error) {
	keyFormat := f.Meta.Key
	if keyFormat != "mask12" && keyFormat != "bits12" {
		keyFormat = "mask12"
	}

	reps := make(map[string][]string, len(f.Reps))
	for mask, names := range f.Reps {
		k, err := encodeMaskKey(keyFormat, mask)
		if err != nil {
			return nil, err
		}
		reps[k] = names
	}

	obj := indexFileJSON{Meta: f.Meta, Reps: reps}
	if f.Aliases != nil {
		aliases := make(map[string][]string, len(f.Aliases))
		for mask, names := range f.Aliases {
			k, err := encodeMaskKey(keyFormat, mask)
			if err != nil {
				return nil, err
			}
			aliases[k] = names
		}
		obj.Aliases = aliases
	}
	return json.MarshalIndent(obj, "", "  ")
}

// IndexFileFromJSON parses an index file, accepting the current "reps"
// format as well as the legacy "rep_index" (one name per mask) and
// "index" (full alias lists, reps synthesized) shapes.
func IndexFileFromJSON(data []byte) (IndexFile, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return IndexFile{}, jasserr.Wrap(jasserr.InvalidIndex, "expected JSON object", err)
	}

	var meta Meta
	if raw, ok := probe["_meta"]; ok {
		if err := json.Unmarshal(raw, &meta); err != nil {
			return IndexFile{}, jasserr.Wrap(jasserr.InvalidIndex, "invalid _meta", err)
		}
	} else {
		return IndexFile{}, jasserr.New(jasserr.InvalidIndex, "expected '_meta' object")
	}

	if raw, ok := probe["reps"]; ok {
		var repsRaw map[string][]string
		if err := json.Unmarshal(raw, &repsRaw); err != nil {
			return IndexFile{}, jasserr.Wrap(jasserr.InvalidIndex, "invalid 'reps'", err)
		}
		reps, err := decodeMaskMap(repsRaw)
		if err != nil {
			return IndexFile{}, err
		}

		var aliases map[chroma.Mask][]string
		if raw, ok := probe["aliases"]; ok {
			var aliasesRaw map[string][]string
			if err := json.Unmarshal(raw, &aliasesRaw); err != nil {
				return IndexFile{}, jasserr.Wrap(jasserr.InvalidIndex, "invalid 'aliases'", err)
			}
			aliases, err = decodeMaskMap(aliasesRaw)
			if err != nil {
				return IndexFile{}, err
			}
		}
		return IndexFile{Meta: meta, Reps: reps, Aliases: aliases}, nil
	}

	if raw, ok := probe["rep_index"]; ok {
		var repIndexRaw map[string]string
		if err := json.Unmarshal(raw, &repIndexRaw); err != nil {
			return IndexFile{}, jasserr.Wrap(jasserr.InvalidIndex, "invalid 'rep_index'", err)
		}
		reps := make(map[chroma.Mask][]string, len(repIndexRaw))
		for k, v := range repIndexRaw {
			mask, err := decodeMaskKey(k)
			if err != nil {
				return IndexFile{}, err
			}
			reps[mask] = []string{v}
		}
		return IndexFile{Meta: meta, Reps: reps}, nil
	}

	if raw, ok := probe["index"]; ok {
		var indexRaw map[string][]string
		if err := json.Unmarshal(raw, &indexRaw); err != nil {
			return IndexFile{}, jasserr.Wrap(jasserr.InvalidIndex, "invalid 'index'", err)
		}
		aliases, err := decodeMaskMap(indexRaw)
		if err != nil {
			return IndexFile{}, err
		}
		reps := make(map[chroma.Mask][]string, len(aliases))
		for mask, names := range aliases {
			sorted := append([]string(nil), names...)
			sort.Strings(sorted)
			aliases[mask] = sorted
			byRoot := ChooseRepresentativesByRoot(sorted)
			if len(byRoot) == 0 {
				single, err := ChooseRepresentative(sorted)
				if err != nil {
					return IndexFile{}, err
				}
				byRoot = []string{single}
			}
			reps[mask] = byRoot
		}
		return IndexFile{Meta: meta, Reps: reps, Aliases: aliases}, nil
	}

	return IndexFile{}, jasserr.New(jasserr.InvalidIndex, "expected 'reps' object (or legacy 'rep_index' / 'index')")
}

func decodeMaskMap(raw map[string][]string) (map[chroma.Mask][]string, error) {
	out := make(map[chroma.Mask][]string, len(raw))
	for k, v := range raw {
		mask, err := decodeMaskKey(k)
		if err != nil {
			return nil, err
		}
		out[mask] = v
	}
	return out, nil
}
