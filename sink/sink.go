// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package sink defines the Sink capability the parser writes converted
// values through. How a Sink maps a spec identity onto a host program's
// configuration object (reflection, a generated struct, a map) is
// deliberately left to the host program — this package only defines the
// contract plus one reference implementation, MapSink, used by this
// module's own tests and by cmd/argcli.
package sink

import "github.com/AleutianAI/argflag/paramspec"

// Sink receives converted values during a parse. Implementations must
// treat SetScalar as last-write-wins and AppendElement as order-preserving.
type Sink interface {
	// SetScalar stores a single converted value for spec. Called once per
	// match for a scalar spec; a second call overwrites the first.
	SetScalar(spec paramspec.ParameterSpec, value any) error

	// AppendElement appends one converted value to spec's aggregate,
	// lazily creating the underlying container on first call.
	AppendElement(spec paramspec.ParameterSpec, value any) error

	// HasBeenSet reports whether spec has received at least one value
	// (scalar or aggregate) during the current parse. The parser's
	// end-of-parse required-option check and its help-flag latch both
	// read this, so a Sink must be fresh for each parse.
	HasBeenSet(spec paramspec.ParameterSpec) bool

	// FieldName returns the host field name backing spec, used as the
	// fallback display label ("<fieldName>") when spec.Label is empty.
	FieldName(spec paramspec.ParameterSpec) string
}

// key identifies a spec independent of its ParameterSpec value copy:
// DeclarationOrder is assigned uniquely by command.New, so it is a
// stable map key even though ParameterSpec itself is a value type passed
// around by copy.
type key = int

// MapSink is a reference Sink backed by plain Go maps, suitable for tests
// and the cmd/argcli demonstration program. Field names default to the
// spec's primary name (or "positional") unless overridden via WithFieldName.
type MapSink struct {
	scalars    map[key]any
	aggregates map[key][]any
	set        map[key]bool
	fieldNames map[key]string
}

// NewMapSink returns an empty MapSink.
func NewMapSink() *MapSink {
	return &MapSink{
		scalars:    make(map[key]any),
		aggregates: make(map[key][]any),
		set:        make(map[key]bool),
		fieldNames: make(map[key]string),
	}
}

// WithFieldName registers the display field name used for spec when its
// Label is empty. Returns the receiver for chaining.
func (m *MapSink) WithFieldName(spec paramspec.ParameterSpec, name string) *MapSink {
	m.fieldNames[spec.DeclarationOrder] = name
	return m
}

func (m *MapSink) SetScalar(spec paramspec.ParameterSpec, value any) error {
	m.scalars[spec.DeclarationOrder] = value
	m.set[spec.DeclarationOrder] = true
	return nil
}

func (m *MapSink) AppendElement(spec paramspec.ParameterSpec, value any) error {
	m.aggregates[spec.DeclarationOrder] = append(m.aggregates[spec.DeclarationOrder], value)
	m.set[spec.DeclarationOrder] = true
	return nil
}

func (m *MapSink) HasBeenSet(spec paramspec.ParameterSpec) bool {
	return m.set[spec.DeclarationOrder]
}

func (m *MapSink) FieldName(spec paramspec.ParameterSpec) string {
	if name, ok := m.fieldNames[spec.DeclarationOrder]; ok {
		return name
	}
	if spec.Kind == paramspec.Positional {
		return "positional"
	}
	if n := spec.PrimaryName(); n != "" {
		return n
	}
	return "value"
}

// Scalar returns the last scalar value written for spec, if any.
func (m *MapSink) Scalar(spec paramspec.ParameterSpec) (any, bool) {
	v, ok := m.scalars[spec.DeclarationOrder]
	return v, ok
}

// Elements returns the accumulated aggregate values for spec, in the
// order they were appended.
func (m *MapSink) Elements(spec paramspec.ParameterSpec) []any {
	return m.aggregates[spec.DeclarationOrder]
}
