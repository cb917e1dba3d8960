// Package tkerrors defines the error kinds shared across tilekit's packages.
package tkerrors

import (
	"errors"
	"fmt"
)

// Kind distinguishes the broad categories of failure a caller may want to
// branch on, per the error handling design.
type Kind int

const (
	// KindOther is used for failures that don't fit one of the named kinds.
	KindOther Kind = iota
	// KindUnsupportedProjection is returned when an SRID outside {3857, 4326} is requested.
	KindUnsupportedProjection
	// KindInvalidCoordinates is returned for out-of-range bounds or min > max.
	KindInvalidCoordinates
	// KindInvalidCacheDir is returned when a cache directory cannot be created.
	KindInvalidCacheDir
	// KindWKTParse is returned when a WKT string cannot be parsed.
	KindWKTParse
	// KindIO is returned when an underlying filesystem write/rename/delete fails.
	KindIO
	// KindProducerFailed is returned when a tile cache producer fails fatally.
	KindProducerFailed
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedProjection:
		return "UnsupportedProjection"
	case KindInvalidCoordinates:
		return "InvalidCoordinates"
	case KindInvalidCacheDir:
		return "InvalidCacheDir"
	case KindWKTParse:
		return "WKTParseError"
	case KindIO:
		return "IoError"
	case KindProducerFailed:
		return "ProducerFailed"
	default:
		return "Other"
	}
}

// Error is the concrete error type returned by tilekit packages. It carries
// the operation that failed and a Kind a caller can branch on with Is/As,
// in the manner of os.PathError.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error for op/kind wrapping err (which may be nil).
func New(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Is reports whether err is a tilekit *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
