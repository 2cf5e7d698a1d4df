/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package synthetic

import (
	"fmt"
	"sync"

	"github.com/suparena/agml/errors"
	"github.com/suparena/agml/sources"
)

// Store is a fixed-schema parameter set for one domain. Every field of the
// schema exists from construction onwards; assignments are checked against
// the field's declared kind. A Store is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	schema   *Schema
	domain   string
	defaults *sources.Table
	values   map[string]any
	sealed   bool
}

// NewStore copies defaults into a fresh store and seals it. Defaults are
// trusted and not type checked, but a default naming a field outside the
// schema fails construction.
func NewStore(schema *Schema, domain string, defaults *sources.Table) (*Store, error) {
	s := &Store{schema: schema, domain: domain, defaults: defaults}
	if err := s.load(); err != nil {
		return nil, err
	}
	s.sealed = true
	return s, nil
}

// load replaces every value with the domain default. Callers hold mu or own s.
func (s *Store) load() error {
	values := make(map[string]any, len(s.schema.fields))
	for _, f := range s.schema.fields {
		values[f.Name] = nil
	}
	for _, key := range s.defaults.Keys() {
		if _, ok := s.schema.Field(key); !ok {
			return errors.NewUnknownFieldError(s.schema.name, key)
		}
		v, _ := s.defaults.Get(key)
		values[key] = cloneValue(v)
	}
	s.values = values
	return nil
}

// Schema returns the store's schema.
func (s *Store) Schema() *Schema { return s.schema }

// Domain returns the domain the defaults were selected by.
func (s *Store) Domain() string { return s.domain }

// Sealed reports whether construction has completed. It is always true for a
// store returned by NewStore.
func (s *Store) Sealed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sealed
}

// Set assigns value to field.
func (s *Store) Set(field string, value any) error {
	f, ok := s.schema.Field(field)
	if !ok {
		return errors.NewUnknownFieldError(s.schema.name, field)
	}
	if !f.Kind.Accepts(value) {
		return errors.NewTypeMismatchError(field, f.Kind.String(), value)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[field] = cloneValue(value)
	return nil
}

// Get returns the value of field. Fields without a default and never
// assigned hold nil. List values are returned as a copy.
func (s *Store) Get(field string) (any, error) {
	if _, ok := s.schema.Field(field); !ok {
		return nil, errors.NewUnknownFieldError(s.schema.name, field)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneValue(s.values[field]), nil
}

// Number returns a number-valued field as float64.
func (s *Store) Number(field string) (float64, error) {
	v, err := s.required(field)
	if err != nil {
		return 0, err
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, errors.NewTypeMismatchError(field, KindNumber.String(), v)
	}
	return f, nil
}

// Numbers returns a list-valued field as []float64.
func (s *Store) Numbers(field string) ([]float64, error) {
	v, err := s.required(field)
	if err != nil {
		return nil, err
	}
	if !isNumberList(v) {
		return nil, errors.NewTypeMismatchError(field, KindNumberList.String(), v)
	}
	return toFloats(v), nil
}

// Text returns a string or path valued field.
func (s *Store) Text(field string) (string, error) {
	v, err := s.required(field)
	if err != nil {
		return "", err
	}
	str, ok := v.(string)
	if !ok {
		return "", errors.NewTypeMismatchError(field, KindString.String(), v)
	}
	return str, nil
}

func (s *Store) required(field string) (any, error) {
	v, err := s.Get(field)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.NewValidationError(field, "has no value")
	}
	return v, nil
}

// Reset restores every field to the domain default.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Defaults were validated against the schema at construction.
	_ = s.load()
}

// Values returns a copy of the current values keyed by field name.
func (s *Store) Values() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = cloneValue(v)
	}
	return out
}

// Table returns the fields that hold a value, in schema order.
func (s *Store) Table() *sources.Table {
	values := s.Values()
	for k, v := range values {
		if v == nil {
			delete(values, k)
		}
	}
	return sources.TableFromMap(values, s.schema.Names())
}

// MarshalYAML encodes the fields that hold a value in schema order.
func (s *Store) MarshalYAML() (any, error) {
	return s.Table().MarshalYAML()
}

func (s *Store) String() string {
	return fmt.Sprintf("%s(%s)", s.schema.name, s.domain)
}

// cloneValue copies slices and arrays into a fresh []any so stored lists are
// never shared with callers.
func cloneValue(v any) any {
	if list, ok := anySlice(v); ok {
		return list
	}
	return v
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// toFloats converts a value already accepted by isNumberList.
func toFloats(v any) []float64 {
	items, _ := anySlice(v)
	out := make([]float64, len(items))
	for i, item := range items {
		out[i], _ = toFloat(item)
	}
	return out
}
