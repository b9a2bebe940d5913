package bf

import (
	"fmt"

	"github.com/containerd/errdefs"
)

// Size of the tape the execution engine runs against.
const MemoryLength = 30_000

// Error is the closed set of failures. Only NonClosedBrackets and
// InfiniteLoop are raised while parsing; the rest belong to the execution
// engine.
type Error uint8

const (
	PtrBelowZero Error = iota + 1
	PtrAboveLimit
	NonClosedBrackets
	NonClosedEnvs
	NestedEnv
	InfiniteLoop
)

func (e Error) Error() string {
	switch e {
	case PtrBelowZero:
		return "error: mem pointer went below zero."
	case PtrAboveLimit:
		return fmt.Sprintf("error: mem pointer went above limit %d", MemoryLength)
	case NonClosedBrackets:
		return "error: some brackets are unclosed on source code"
	case NonClosedEnvs:
		return "error: some environments (parentheses) are unclosed in your source code"
	case NestedEnv:
		return "error: environment nesting is not allowed"
	case InfiniteLoop:
		return "error: potential infinite loop in source code"
	default:
		return fmt.Sprintf("error: unknown error %d", uint8(e))
	}
}

func (e Error) Name() string {
	switch e {
	case PtrBelowZero:
		return "PtrBelowZero"
	case PtrAboveLimit:
		return "PtrAboveLimit"
	case NonClosedBrackets:
		return "NonClosedBrackets"
	case NonClosedEnvs:
		return "NonClosedEnvs"
	case NestedEnv:
		return "NestedEnv"
	case InfiniteLoop:
		return "InfiniteLoop"
	default:
		return "Unknown"
	}
}

// Unwrap to the matching errdefs class, so callers can use errdefs.IsXxx.
func (e Error) Unwrap() error {
	switch e {
	case PtrBelowZero, PtrAboveLimit:
		return errdefs.ErrOutOfRange
	case NonClosedBrackets, NonClosedEnvs, NestedEnv, InfiniteLoop:
		return errdefs.ErrInvalidArgument
	default:
		return errdefs.ErrUnknown
	}
}

// ParseError locates a failure in the source.
type ParseError struct {
	Kind Error
	// Offset of the offending command in the filtered source
	Offset int
	// Index of the instruction the offending command belongs to
	Instruction int
	// Unexpected is set for a ']' with nothing open, unset for a '[' that is
	// never closed. Only meaningful for NonClosedBrackets.
	Unexpected bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (instruction %d)", e.Kind.Error(), e.Instruction)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// Reason is a human readable hint on how to fix the source.
func (e *ParseError) Reason() string {
	switch e.Kind {
	case NonClosedBrackets:
		if e.Unexpected {
			return "A ']' was found in code, remove it or add an opening bracket before it. ('[')"
		}
		return "One or more loops was caught without closed pair. Try adding a ']' somewhere."
	case InfiniteLoop:
		return "A loop with an empty body never changes the current cell. Remove it or put something inside."
	default:
		return e.Kind.Error()
	}
}

var (
	_ error = Error(0)
	_ error = (*ParseError)(nil)
)
