package path

import "errors"

var (
	// ErrKeyNotFound indicates a key accessor had no matching object member.
	ErrKeyNotFound = errors.New("path: key not found")

	// ErrIndexOutOfRange indicates a numeric accessor exceeded array bounds.
	ErrIndexOutOfRange = errors.New("path: index out of range")

	// ErrInvalidIndex indicates a token could not be used as an array index.
	ErrInvalidIndex = errors.New("path: invalid array index")

	// ErrTypeMismatch indicates an accessor was applied to a scalar or null.
	ErrTypeMismatch = errors.New("path: type mismatch")
)

// Error describes where and why a resolution stopped.
// Trace holds the labels of the accessors applied before the failing one.
type Error struct {
	Reason string
	Trace  []string

	kind error
}

func (e *Error) Error() string {
	return e.Reason
}

func (e *Error) Unwrap() error {
	return e.kind
}

func newError(kind error, trace []string, reason string) *Error {
	return &Error{Reason: reason, Trace: trace, kind: kind}
}
