package ast

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/sqltree/pkg/core"
)

// Sentinel errors for errors.Is; the typed errors below match them.
var (
	ErrInvalidChildType = errors.New("invalid child type")
	ErrUnknownSlot      = errors.New("unknown slot")
	ErrUnknownKind      = errors.New("unknown node kind")
	ErrInvalidProperty  = errors.New("invalid property value")
	ErrForeignNode      = errors.New("node belongs to another store")
	ErrUnresolvedLabel  = errors.New("unresolved branch target")
)

// InvalidChildTypeError is returned when a slot assignment's value does not
// have the capability the slot declares. The store is left untouched.
type InvalidChildTypeError struct {
	Kind core.Kind
	Slot string
	Want Capability
	Got  core.Kind
}

func (e *InvalidChildTypeError) Error() string {
	return fmt.Sprintf("invalid child type for %s.%s: %s does not satisfy %s", e.Kind, e.Slot, e.Got, e.Want)
}

// Is makes errors.Is(err, ErrInvalidChildType) match.
func (e *InvalidChildTypeError) Is(target error) bool { return target == ErrInvalidChildType }

// UnknownSlotError is returned for a property or slot name that is not part
// of a kind's schema, or that is used as the wrong sort of field.
type UnknownSlotError struct {
	Kind core.Kind
	Name string
}

func (e *UnknownSlotError) Error() string {
	return fmt.Sprintf("unknown slot %q for %s", e.Name, e.Kind)
}

// Is makes errors.Is(err, ErrUnknownSlot) match.
func (e *UnknownSlotError) Is(target error) bool { return target == ErrUnknownSlot }

// UnknownKindError is returned when a stored node has a kind outside the
// variant catalogue.
type UnknownKindError struct {
	ID   core.NodeID
	Kind core.Kind
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("node %s has unknown kind %q", e.ID, e.Kind)
}

// Is makes errors.Is(err, ErrUnknownKind) match.
func (e *UnknownKindError) Is(target error) bool { return target == ErrUnknownKind }

// InvalidPropertyError is returned when a property value does not match the
// value type its schema declares.
type InvalidPropertyError struct {
	Kind  core.Kind
	Name  string
	Want  ValueType
	Value any
}

func (e *InvalidPropertyError) Error() string {
	return fmt.Sprintf("invalid value %T for %s.%s, expected %s", e.Value, e.Kind, e.Name, e.Want)
}

// Is makes errors.Is(err, ErrInvalidProperty) match.
func (e *InvalidPropertyError) Is(target error) bool { return target == ErrInvalidProperty }
