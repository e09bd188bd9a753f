package tisindex

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/schollz/jasstension/internal/chroma"
	"github.com/schollz/jasstension/internal/jasserr"
	"github.com/schollz/jasstension/internal/tis"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// magic identifies a jasstension index archive; version selects which of
// the three schemas below was used to encode the payload.
var magic = [4]byte{'J', 'T', 'I', 'S'}

const (
	schemaCurrent     uint8 = 2 // rep_offsets/rep_names_by_root present
	schemaEarlyDeduped uint8 = 1 // rows per mask, no per-root rep table
	schemaLegacyFlat   uint8 = 0 // one row per chord name
)

// header is written uncompressed so a reader can sniff the schema before
// paying for gzip decode.
type header struct {
	Magic  [4]byte
	Schema uint8
}

// payloadCurrent is the gob-encoded body for schemaCurrent.
type payloadCurrent struct {
	RepNames       []string
	ChromaBits     [][chroma.Len]uint8
	ChromaMask     []uint16
	TIS            [][tis.Dim]complex128
	TISNorm        []float64
	TISUnit        [][tis.Dim]complex128
	RepOffsets     []int32
	RepNamesByRoot []string
	AliasOffsets   []int32
	AliasNames     []string
	MetaJSON       []byte
}

// payloadEarlyDeduped mirrors an older archive shape: rows per mask, but
// no per-root representative table (RepsForRow falls back to [RepNames[i]]).
type payloadEarlyDeduped struct {
	RepNames   []string
	ChromaBits [][chroma.Len]uint8
	ChromaMask []uint16
	TIS        [][tis.Dim]complex128
	TISNorm    []float64
	TISUnit    [][tis.Dim]complex128
	AliasOffsets []int32
	AliasNames   []string
	MetaJSON     []byte
}

// payloadLegacyFlat mirrors the oldest archive shape: one row per chord
// name rather than per mask; alias/rep offsets are synthesized as
// [0, 1, 2, ..., n] on load.
type payloadLegacyFlat struct {
	Names      []string
	ChromaBits [][chroma.Len]uint8
	ChromaMask []uint16
	TIS        [][tis.Dim]complex128
	TISNorm    []float64
	TISUnit    [][tis.Dim]complex128
	MetaJSON   []byte
}

func metaToJSON(m Meta) ([]byte, error) {
	return json.Marshal(m)
}

func metaFromJSON(b []byte) (Meta, error) {
	var m Meta
	if err := json.Unmarshal(b, &m); err != nil {
		return Meta{}, jasserr.Wrap(jasserr.InvalidIndex, "invalid meta_json", err)
	}
	return m, nil
}

// Save writes idx as a gzip-compressed gob archive using the current
// schema.
func (idx *Index) Save(w io.Writer) error {
	metaJSON, err := metaToJSON(idx.Meta)
	if err != nil {
		return err
	}

	payload := payloadCurrent{
		RepNames:       idx.RepNames,
		ChromaBits:     bitsToArrays(idx.ChromaBits),
		ChromaMask:     masksToUint16(idx.ChromaMask),
		TIS:            vectorsToArrays(idx.TIS),
		TISNorm:        idx.TISNorm,
		TISUnit:        vectorsToArrays(idx.TISUnit),
		RepOffsets:     idx.RepOffsets,
		RepNamesByRoot: idx.RepNamesByRoot,
		AliasOffsets:   idx.AliasOffsets,
		AliasNames:     idx.AliasNames,
		MetaJSON:       metaJSON,
	}

	if _, err := w.Write(append(magic[:], schemaCurrent)); err != nil {
		return jasserr.Wrap(jasserr.InvalidIndex, "writing archive header", err)
	}

	gz := gzip.NewWriter(w)
	if err := gob.NewEncoder(gz).Encode(payload); err != nil {
		return jasserr.Wrap(jasserr.InvalidIndex, "encoding archive payload", err)
	}
	return gz.Close()
}

// SaveFile is a convenience wrapper around Save for a filesystem path.
func (idx *Index) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return jasserr.Wrap(jasserr.InvalidIndex, "creating index file", err)
	}
	defer f.Close()
	return idx.Save(f)
}

// Load reads an index archive, transparently upgrading either legacy
// schema into the canonical in-memory Index shape.
func Load(r io.Reader) (*Index, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, jasserr.Wrap(jasserr.InvalidIndex, "reading archive", err)
	}
	if len(raw) < 5 || [4]byte(raw[:4]) != magic {
		return nil, jasserr.New(jasserr.InvalidIndex, "not a jasstension index archive")
	}
	schema := raw[4]
	gz, err := gzip.NewReader(bytes.NewReader(raw[5:]))
	if err != nil {
		return nil, jasserr.Wrap(jasserr.InvalidIndex, "decompressing archive", err)
	}
	defer gz.Close()

	switch schema {
	case schemaCurrent:
		var p payloadCurrent
		if err := gob.NewDecoder(gz).Decode(&p); err != nil {
			return nil, jasserr.Wrap(jasserr.InvalidIndex, "decoding archive payload", err)
		}
		return fromCurrent(p)
	case schemaEarlyDeduped:
		var p payloadEarlyDeduped
		if err := gob.NewDecoder(gz).Decode(&p); err != nil {
			return nil, jasserr.Wrap(jasserr.InvalidIndex, "decoding archive payload", err)
		}
		return fromEarlyDeduped(p)
	case schemaLegacyFlat:
		var p payloadLegacyFlat
		if err := gob.NewDecoder(gz).Decode(&p); err != nil {
			return nil, jasserr.Wrap(jasserr.InvalidIndex, "decoding archive payload", err)
		}
		return fromLegacyFlat(p)
	default:
		return nil, jasserr.Newf(jasserr.InvalidIndex, "unknown archive schema %d", schema)
	}
}

// LoadFile is a convenience wrapper around Load for a filesystem path.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, jasserr.Wrap(jasserr.InvalidIndex, "opening index file", err)
	}
	defer f.Close()
	return Load(f)
}

func fromCurrent(p payloadCurrent) (*Index, error) {
	meta, err := metaFromJSON(p.MetaJSON)
	if err != nil {
		return nil, err
	}
	idx := &Index{
		RepNames:       p.RepNames,
		ChromaBits:     arraysToBits(p.ChromaBits),
		ChromaMask:     uint16ToMasks(p.ChromaMask),
		TIS:            arraysToVectors(p.TIS),
		TISNorm:        p.TISNorm,
		TISUnit:        arraysToVectors(p.TISUnit),
		RepOffsets:     p.RepOffsets,
		RepNamesByRoot: p.RepNamesByRoot,
		AliasOffsets:   p.AliasOffsets,
		AliasNames:     p.AliasNames,
		Meta:           meta,
	}
	return idx, idx.validate()
}

// fromEarlyDeduped upgrades an archive with rows per mask but no per-root
// rep table: per-root reps default to [primary_rep].
func fromEarlyDeduped(p payloadEarlyDeduped) (*Index, error) {
	meta, err := metaFromJSON(p.MetaJSON)
	if err != nil {
		return nil, err
	}
	n := len(p.RepNames)
	repOffsets := make([]int32, n+1)
	for i := 0; i <= n; i++ {
		repOffsets[i] = int32(i)
	}
	idx := &Index{
		RepNames:       p.RepNames,
		ChromaBits:     arraysToBits(p.ChromaBits),
		ChromaMask:     uint16ToMasks(p.ChromaMask),
		TIS:            arraysToVectors(p.TIS),
		TISNorm:        p.TISNorm,
		TISUnit:        arraysToVectors(p.TISUnit),
		RepOffsets:     repOffsets,
		RepNamesByRoot: append([]string(nil), p.RepNames...),
		AliasOffsets:   p.AliasOffsets,
		AliasNames:     p.AliasNames,
		Meta:           meta,
	}
	return idx, idx.validate()
}

// fromLegacyFlat upgrades the oldest archive shape (one row per chord
// name) into the canonical per-mask layout: alias/rep offsets are
// synthesized as [0, 1, 2, ..., n].
func fromLegacyFlat(p payloadLegacyFlat) (*Index, error) {
	meta, err := metaFromJSON(p.MetaJSON)
	if err != nil {
		return nil, err
	}
	n := len(p.Names)
	offsets := make([]int32, n+1)
	for i := 0; i <= n; i++ {
		offsets[i] = int32(i)
	}
	idx := &Index{
		RepNames:       p.Names,
		ChromaBits:     arraysToBits(p.ChromaBits),
		ChromaMask:     uint16ToMasks(p.ChromaMask),
		TIS:            arraysToVectors(p.TIS),
		TISNorm:        p.TISNorm,
		TISUnit:        arraysToVectors(p.TISUnit),
		RepOffsets:     offsets,
		RepNamesByRoot: p.Names,
		AliasOffsets:   offsets,
		AliasNames:     p.Names,
		Meta:           meta,
	}
	return idx, idx.validate()
}

func bitsToArrays(bits []chroma.Bits) [][chroma.Len]uint8 {
	out := make([][chroma.Len]uint8, len(bits))
	for i, b := range bits {
		out[i] = [chroma.Len]uint8(b)
	}
	return out
}

func arraysToBits(arrs [][chroma.Len]uint8) []chroma.Bits {
	out := make([]chroma.Bits, len(arrs))
	for i, a := range arrs {
		out[i] = chroma.Bits(a)
	}
	return out
}

func masksToUint16(masks []chroma.Mask) []uint16 {
	out := make([]uint16, len(masks))
	for i, m := range masks {
		out[i] = uint16(m)
	}
	return out
}

func uint16ToMasks(raw []uint16) []chroma.Mask {
	out := make([]chroma.Mask, len(raw))
	for i, m := range raw {
		out[i] = chroma.Mask(m)
	}
	return out
}

func vectorsToArrays(vs []tis.Vector) [][tis.Dim]complex128 {
	out := make([][tis.Dim]complex128, len(vs))
	for i, v := range vs {
		out[i] = [tis.Dim]complex128(v)
	}
	return out
}

func arraysToVectors(arrs [][tis.Dim]complex128) []tis.Vector {
	out := make([]tis.Vector, len(arrs))
	for i, a := range arrs {
		out[i] = tis.Vector(a)
	}
	return out
}
