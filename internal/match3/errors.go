package match3

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSwap         = errors.New("invalid swap")
	ErrInternalConsistency = errors.New("internal consistency violation")
	ErrUnshuffleable       = errors.New("board unshuffleable")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrNotInitialized      = errors.New("board not initialized")
)

// ErrCascadeLimit is returned when one transition needs more cascade cycles
// than the configured limit. The board is rolled back and stays usable, so
// it does not wrap ErrInternalConsistency.
var ErrCascadeLimit = errors.New("cascade limit exceeded")

// RejectReason explains why a swap request was refused.
type RejectReason uint8

const (
	ReasonNone RejectReason = iota
	ReasonNotAdjacent
	ReasonOutOfRange
	ReasonBoardBusy
)

// String returns the reason name.
func (r RejectReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNotAdjacent:
		return "not adjacent"
	case ReasonOutOfRange:
		return "out of range"
	case ReasonBoardBusy:
		return "board busy"
	default:
		return "unknown"
	}
}

// SwapError reports a rejected swap request. No state changed.
type SwapError struct {
	Reason RejectReason
	A, B   Coord
}

func (e *SwapError) Error() string {
	return fmt.Sprintf("invalid swap %v<->%v: %s", e.A, e.B, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidSwap.
func (e *SwapError) Unwrap() error {
	return ErrInvalidSwap
}

// ConsistencyError signals an engine contract violation, such as taking a
// piece from an empty cell.
type ConsistencyError struct {
	Op   string
	Cell Coord
	Msg  string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s at %v: %s", e.Op, e.Cell, e.Msg)
}

// Unwrap lets errors.Is match ErrInternalConsistency.
func (e *ConsistencyError) Unwrap() error {
	return ErrInternalConsistency
}

func consistencyErr(op string, c Coord, format string, args ...any) error {
	return &ConsistencyError{Op: op, Cell: c, Msg: fmt.Sprintf(format, args...)}
}
