package core

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned (possibly wrapped) by Store implementations.
var (
	ErrNodeNotFound     = errors.New("node not found")
	ErrAlreadyAttached  = errors.New("node is already attached to a parent")
	ErrCycle            = errors.New("child would become its own ancestor")
	ErrTypeMismatch     = errors.New("node type mismatch")
	ErrUnsupportedValue = errors.New("unsupported property value")
)

// NotFoundError reports a node id unknown to the store.
type NotFoundError struct {
	ID NodeID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("node %s not found", e.ID)
}

// Is makes errors.Is(err, ErrNodeNotFound) match.
func (e *NotFoundError) Is(target error) bool { return target == ErrNodeNotFound }

// TypeMismatchError reports a node whose stored kind does not satisfy what
// the caller expected. It is surfaced unchanged through the AST layer.
type TypeMismatchError struct {
	ID   NodeID
	Got  Kind
	Want string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: node %s is %s, expected %s", e.ID, e.Got, e.Want)
}

// Is makes errors.Is(err, ErrTypeMismatch) match.
func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// CheckValue reports whether v is a property value a Store must accept.
// Floats must be finite: NaN is not equal to itself, and neither NaN nor
// the infinities survive the stores' encodings.
func CheckValue(v any) error {
	switch v := v.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite float %v", ErrUnsupportedValue, v)
		}
		return nil
	case nil, string, bool, int64, []string:
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}
