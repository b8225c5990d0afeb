package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing record.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery signals a rejected list query parameter.
	ErrInvalidQuery = errors.New("invalid query")
)

// NotFoundError wraps ErrNotFound with the entity that was looked up.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Entity, e.ID, ErrNotFound.Error())
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound creates a not-found error for the given entity and id.
func NewNotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// InvalidQueryError wraps ErrInvalidQuery with the offending parameter.
type InvalidQueryError struct {
	Param  string
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidQuery.Error(), e.Param, e.Reason)
}

func (e *InvalidQueryError) Unwrap() error { return ErrInvalidQuery }

// NewInvalidQuery creates an invalid-query error for a parameter.
func NewInvalidQuery(param, reason string) error {
	return &InvalidQueryError{Param: param, Reason: reason}
}
