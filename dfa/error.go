package dfa

import "fmt"

// ErrStateLimit indicates that subset construction exceeded the configured
// state ceiling. The pattern is still matchable with the NFA engine.
var ErrStateLimit = &Error{
	Kind:    StateLimitExceeded,
	Message: "DFA state limit exceeded",
}

// ErrorKind classifies DFA errors.
type ErrorKind uint8

const (
	// StateLimitExceeded indicates too many states were created.
	StateLimitExceeded ErrorKind = iota

	// InvalidConfig indicates configuration validation failed.
	InvalidConfig
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case StateLimitExceeded:
		return "StateLimitExceeded"
	case InvalidConfig:
		return "InvalidConfig"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error represents an error during DFA construction.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is implements error comparison for errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Kind == t.Kind
}
