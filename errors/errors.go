/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotStruct is returned when metadata is requested for a type that is not a struct
	ErrNotStruct = errors.New("entity type is not a struct")

	// ErrNotPointer is returned when a value must be written through a non-pointer entity
	ErrNotPointer = errors.New("entity must be a non-nil pointer")

	// ErrAccessorFault is returned when a resolved accessor cannot be invoked
	ErrAccessorFault = errors.New("accessor fault")

	// ErrUnknownColumnType is returned when a column type name is not recognised
	ErrUnknownColumnType = errors.New("unknown column type")

	// ErrUnknownHostType is returned when a host type name cannot be resolved
	ErrUnknownHostType = errors.New("unknown host type")

	// ErrCodec is returned when a value cannot be converted between host and wire form
	ErrCodec = errors.New("codec conversion failed")

	// ErrNoPrimaryKey is returned when an operation needs a primary key the entity does not declare
	ErrNoPrimaryKey = errors.New("entity has no primary key")
)

// AccessorError represents a failure invoking a field getter or setter
type AccessorError struct {
	Entity string
	Field  string
	Op     string
	Err    error
}

func (e *AccessorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s.%s: %v", e.Op, e.Entity, e.Field, e.Err)
	}
	return fmt.Sprintf("%s %s.%s failed", e.Op, e.Entity, e.Field)
}

func (e *AccessorError) Is(target error) bool {
	return target == ErrAccessorFault
}

func (e *AccessorError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid entry in a type mapping configuration
type ConfigError struct {
	Key    string
	Value  string
	Reason error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid mapping %q: %q: %v", e.Key, e.Value, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == e.Reason
}

func (e *ConfigError) Unwrap() error {
	return e.Reason
}

// Helper functions for creating errors

// NewAccessorError creates a new AccessorError
func NewAccessorError(entity, field, op string, err error) error {
	return &AccessorError{Entity: entity, Field: field, Op: op, Err: err}
}

// NewConfigError creates a new ConfigError wrapping one of the mapping sentinels
func NewConfigError(key, value string, reason error) error {
	return &ConfigError{Key: key, Value: value, Reason: reason}
}

// IsAccessorFault checks if an error is an accessor fault
func IsAccessorFault(err error) bool {
	return errors.Is(err, ErrAccessorFault)
}

// IsConfigError checks if an error came from an invalid mapping entry
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsNotStruct checks if an error reports a non-struct entity type
func IsNotStruct(err error) bool {
	return errors.Is(err, ErrNotStruct)
}
