package indicators

import (
	"errors"
	"fmt"
)

// ErrDomain is matched by every *DomainError through errors.Is.
var ErrDomain = errors.New("domain error")

// DomainError reports invalid input to an indicator function. Structural
// problems (mismatched lengths) and value problems (signs, ranges) share
// this type and differ only by message.
type DomainError struct {
	Op    string // function that rejected the input
	Field string // offending parameter, empty for whole-call problems
	Value any    // offending value, if any
	Msg   string
}

func (e *DomainError) Error() string {
	switch {
	case e.Field == "":
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	case e.Value == nil:
		return fmt.Sprintf("%s: %s %s", e.Op, e.Field, e.Msg)
	default:
		return fmt.Sprintf("%s: %s %s, got %v", e.Op, e.Field, e.Msg, e.Value)
	}
}

// Is reports whether target is ErrDomain.
func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

func domainError(op, field string, value any, msg string) error {
	return &DomainError{Op: op, Field: field, Value: value, Msg: msg}
}
