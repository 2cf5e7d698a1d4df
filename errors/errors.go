/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors
var (
	// ErrInvalidName is returned when a dataset, domain or attribute name is not recognized
	ErrInvalidName = errors.New("invalid name")

	// ErrMissingMetadata is returned when a well-formed record lacks a required key
	ErrMissingMetadata = errors.New("missing metadata")

	// ErrMalformedMetadata is returned when a metadata value has an unexpected shape
	ErrMalformedMetadata = errors.New("malformed metadata")

	// ErrUnknownField is returned when assigning to a field outside a sealed schema
	ErrUnknownField = errors.New("unknown field")

	// ErrTypeMismatch is returned when an assigned value disagrees with the declared field type
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoIndexMap is returned when no index map is found for a type
	ErrNoIndexMap = errors.New("no index map found for type")
)

// InvalidNameError is returned when a requested name cannot be resolved, even
// after normalization. Suggestions holds the closest known names, best first.
type InvalidNameError struct {
	Kind        string
	Name        string
	Suggestions []string
	Valid       []string
}

func (e *InvalidNameError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "received invalid %s: '%s'", e.Kind, e.Name)
	switch {
	case len(e.Suggestions) == 1:
		fmt.Fprintf(&b, ", did you mean '%s'?", e.Suggestions[0])
	case len(e.Suggestions) > 1:
		fmt.Fprintf(&b, ", did you mean one of: '%s'?", strings.Join(e.Suggestions, "', '"))
	}
	if len(e.Valid) > 0 {
		fmt.Fprintf(&b, " (expected one of: %s)", strings.Join(e.Valid, ", "))
	}
	return b.String()
}

func (e *InvalidNameError) Is(target error) bool {
	return target == ErrInvalidName
}

// MissingMetadataError signals a record without a key every record should carry.
// This points at the source data, not at the caller.
type MissingMetadataError struct {
	Dataset string
	Key     string
}

func (e *MissingMetadataError) Error() string {
	return fmt.Sprintf("the dataset '%s' is missing metadata '%s'; please report this issue to the AgML maintainers", e.Dataset, e.Key)
}

func (e *MissingMetadataError) Is(target error) bool {
	return target == ErrMissingMetadata
}

// MalformedMetadataError represents a metadata value whose shape cannot be interpreted
type MalformedMetadataError struct {
	Dataset string
	Key     string
	Reason  string
}

func (e *MalformedMetadataError) Error() string {
	return fmt.Sprintf("the dataset '%s' has malformed metadata '%s': %s", e.Dataset, e.Key, e.Reason)
}

func (e *MalformedMetadataError) Is(target error) bool {
	return target == ErrMalformedMetadata
}

// UnknownFieldError represents an assignment to a name outside a sealed schema
type UnknownFieldError struct {
	Schema string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("cannot assign new attribute '%s' to %s", e.Field, e.Schema)
}

func (e *UnknownFieldError) Is(target error) bool {
	return target == ErrUnknownField
}

// TypeMismatchError represents an assignment whose value has the wrong type
type TypeMismatchError struct {
	Field    string
	Expected string
	Value    any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected a value of type (%s) for attribute '%s', instead got '%v' of type (%T)",
		e.Expected, e.Field, e.Value, e.Value)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewInvalidNameError creates a new InvalidNameError
func NewInvalidNameError(kind, name string, suggestions []string) error {
	return &InvalidNameError{Kind: kind, Name: name, Suggestions: suggestions}
}

// NewInvalidChoiceError creates an InvalidNameError that lists every valid choice
func NewInvalidChoiceError(kind, name string, suggestions, valid []string) error {
	return &InvalidNameError{Kind: kind, Name: name, Suggestions: suggestions, Valid: valid}
}

// NewMissingMetadataError creates a new MissingMetadataError
func NewMissingMetadataError(dataset, key string) error {
	return &MissingMetadataError{Dataset: dataset, Key: key}
}

// NewMalformedMetadataError creates a new MalformedMetadataError
func NewMalformedMetadataError(dataset, key, reason string) error {
	return &MalformedMetadataError{Dataset: dataset, Key: key, Reason: reason}
}

// NewUnknownFieldError creates a new UnknownFieldError
func NewUnknownFieldError(schema, field string) error {
	return &UnknownFieldError{Schema: schema, Field: field}
}

// NewTypeMismatchError creates a new TypeMismatchError
func NewTypeMismatchError(field, expected string, value any) error {
	return &TypeMismatchError{Field: field, Expected: expected, Value: value}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsInvalidName checks if an error is an invalid name error
func IsInvalidName(err error) bool {
	return errors.Is(err, ErrInvalidName)
}

// IsMissingMetadata checks if an error is a missing metadata error
func IsMissingMetadata(err error) bool {
	return errors.Is(err, ErrMissingMetadata)
}

// IsMalformedMetadata checks if an error is a malformed metadata error
func IsMalformedMetadata(err error) bool {
	return errors.Is(err, ErrMalformedMetadata)
}

// IsUnknownField checks if an error is an unknown field error
func IsUnknownField(err error) bool {
	return errors.Is(err, ErrUnknownField)
}

// IsTypeMismatch checks if an error is a type mismatch error
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
