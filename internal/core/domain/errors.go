package domain

import "fmt"

// InvariantError reports that a value object was built from malformed data
// or that a mutation would violate a model invariant. It is the only error
// kind produced by this package.
type InvariantError struct {
	msg      string
	conflict bool
}

func (e *InvariantError) Error() string {
	return e.msg
}

// Conflict reports whether the violation is a conflicting re-attribution
// of an already recorded outcome, as opposed to malformed input.
func (e *InvariantError) Conflict() bool {
	return e.conflict
}

func invariantf(format string, args ...any) *InvariantError {
	return &InvariantError{msg: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...any) *InvariantError {
	return &InvariantError{msg: fmt.Sprintf(format, args...), conflict: true}
}
