// Package jasserr defines the typed error kinds surfaced by the tonal
// tension engine and its supporting packages.
package jasserr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can branch on it without parsing
// error strings.
type Kind int

const (
	// InvalidChroma covers wrong-length, non-0/1, or empty chroma vectors.
	InvalidChroma Kind = iota
	// InvalidChord covers chord names absent from an index.
	InvalidChord
	// InvalidKey covers unparseable key strings.
	InvalidKey
	// InvalidProgression covers unknown progression chords, or a
	// progression that does not end with the query chord.
	InvalidProgression
	// InvalidWeights covers unknown indicator keys or negative weights.
	InvalidWeights
	// InvalidIndex covers corrupt or schema-incompatible index archives.
	InvalidIndex
)

func (k Kind) String() string {
	switch k {
	case InvalidChroma:
		return "InvalidChroma"
	case InvalidChord:
		return "InvalidChord"
	case InvalidKey:
		return "InvalidKey"
	case InvalidProgression:
		return "InvalidProgression"
	case InvalidWeights:
		return "InvalidWeights"
	case InvalidIndex:
		return "InvalidIndex"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by this module's fallible
// entry points.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with no wrapped cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf builds an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error around an underlying cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Is reports whether err is (or wraps) a jasserr.Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
