package rex

import (
	"fmt"

	"github.com/coregx/rex/syntax"
)

// ErrorKind classifies compilation failures. Matching never fails: "no
// match" is a value, not an error.
type ErrorKind uint8

const (
	// UnexpectedEnd indicates the pattern ended mid-construct, such as a
	// trailing backslash.
	UnexpectedEnd ErrorKind = iota

	// UnexpectedChar indicates a metacharacter in a context that forbids
	// it, such as a stray ')'.
	UnexpectedChar

	// NothingToRepeat indicates a quantifier with no preceding atom.
	NothingToRepeat

	// InvalidRange indicates a character-class range whose start byte
	// exceeds its end byte.
	InvalidRange

	// UnclosedGroup indicates a '(' without a matching ')'.
	UnclosedGroup

	// UnclosedClass indicates a '[' without a matching ']'.
	UnclosedClass

	// InternalLimit indicates DFA construction exceeded the configured
	// state ceiling. Compile with EngineNFA to match such patterns.
	InternalLimit
)

// String returns a human-readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case UnexpectedEnd:
		return "UnexpectedEnd"
	case UnexpectedChar:
		return "UnexpectedChar"
	case NothingToRepeat:
		return "NothingToRepeat"
	case InvalidRange:
		return "InvalidRange"
	case UnclosedGroup:
		return "UnclosedGroup"
	case UnclosedClass:
		return "UnclosedClass"
	case InternalLimit:
		return "InternalLimit"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// CompileError is the single error type Compile returns.
type CompileError struct {
	kind ErrorKind
	pos  int
	msg  string
}

// Kind returns the error classification.
func (e *CompileError) Kind() ErrorKind { return e.kind }

// Message returns the human-readable description.
func (e *CompileError) Message() string { return e.msg }

// Position returns the zero-based byte offset into the pattern at which
// compilation gave up, in [0, len(pattern)].
func (e *CompileError) Position() int { return e.pos }

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("rex: %s at position %d", e.msg, e.pos)
}

// parseErrorKind maps parser error kinds onto the public taxonomy.
func parseErrorKind(k syntax.ErrorKind) ErrorKind {
	switch k {
	case syntax.ErrUnexpectedEnd:
		return UnexpectedEnd
	case syntax.ErrUnexpectedChar:
		return UnexpectedChar
	case syntax.ErrNothingToRepeat:
		return NothingToRepeat
	case syntax.ErrInvalidRange:
		return InvalidRange
	case syntax.ErrUnclosedGroup:
		return UnclosedGroup
	case syntax.ErrUnclosedClass:
		return UnclosedClass
	default:
		return UnexpectedChar
	}
}
