// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package paramspec defines the neutral data model a host program uses to
// describe the parameters of one command-line program: ParameterSpec and
// ArityRange. Nothing in this package depends on reflection, a particular
// declaration mechanism, or a particular Sink implementation — those are
// external collaborators (see the sibling sink package).
//
// Thread Safety: ParameterSpec and ArityRange are immutable value types and
// are always safe for concurrent read.
package paramspec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind distinguishes a named option from a positional parameter.
type Kind int

const (
	// NamedOption is a parameter matched by one or more literal names.
	NamedOption Kind = iota + 1
	// Positional is the (at most one) parameter that absorbs tokens not
	// matched to any named option.
	Positional
)

func (k Kind) String() string {
	switch k {
	case NamedOption:
		return "NamedOption"
	case Positional:
		return "Positional"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ValueType identifies a scalar target type a TypeConverter can produce.
// Aggregate specs (Array/List) hold one of these in ElementType; the
// ParameterSpec's own ValueType is Array or List in that case.
type ValueType string

// Built-in scalar value types. These are the identifiers the convert
// registry's fixed converters are keyed on.
const (
	Bool        ValueType = "bool"
	Int         ValueType = "int"
	Int64       ValueType = "int64"
	BigInt      ValueType = "bigint"
	Float64     ValueType = "float64"
	BigDecimal  ValueType = "bigdecimal"
	String      ValueType = "string"
	Char        ValueType = "char"
	URL         ValueType = "url"
	URI         ValueType = "uri"
	Path        ValueType = "path"
	Date        ValueType = "date"
	Time        ValueType = "time"
	Charset     ValueType = "charset"
	InetAddress ValueType = "inetaddress"
	Pattern     ValueType = "pattern"
	UUID        ValueType = "uuid"
	Enum        ValueType = "enum"
	// Secret is an additive value type (not part of the original closed set):
	// a value that is wrapped in a memguard-locked buffer instead of a
	// plain Go string.
	Secret ValueType = "secret"

	// Array and List are the two aggregate wrapper kinds. A spec whose
	// ValueType is one of these must set ElementType to a scalar type
	// above.
	Array ValueType = "array"
	List  ValueType = "list"
)

// IsAggregate reports whether vt is Array or List.
func (vt ValueType) IsAggregate() bool {
	return vt == Array || vt == List
}

// IsBooleanLike reports whether vt behaves as a presence/absence flag for
// the purposes of default-arity computation.
func (vt ValueType) IsBooleanLike() bool {
	return vt == Bool
}

// Unbounded is the sentinel ArityRange.Max value meaning "no upper bound".
// It is the max value a "1..*" or "*" declaration produces.
const Unbounded = math.MaxInt32

// ArityRange is the [min..max] number of value tokens an option or
// positional spec consumes.
type ArityRange struct {
	Min int `validate:"gte=0"`
	Max int
	// Variable records whether the declaration wrote an unbounded
	// sentinel ("1..*") rather than an explicit upper bound ("1..3").
	// It is always equivalent to Max == Unbounded; kept as an explicit
	// field so callers don't need to infer intent by comparing against a
	// magic number.
	Variable bool
}

// FixedArity returns an ArityRange with Min == Max == n.
func FixedArity(n int) ArityRange {
	return ArityRange{Min: n, Max: n}
}

// UnboundedArity returns an ArityRange of [min..*].
func UnboundedArity(min int) ArityRange {
	return ArityRange{Min: min, Max: Unbounded, Variable: true}
}

// RangeArity returns an ArityRange of [min..max], max inclusive and finite.
func RangeArity(min, max int) ArityRange {
	return ArityRange{Min: min, Max: max}
}

// ParseArity parses the compact arity spellings used by declaration
// adapters: "N", "N..M", "N..*", and the standalone "*" spelling, resolved
// here to mean "0..*".
func ParseArity(s string) (ArityRange, error) {
	s = strings.TrimSpace(s)
	if s == "*" {
		return UnboundedArity(0), nil
	}
	if idx := strings.Index(s, ".."); idx >= 0 {
		minPart, maxPart := s[:idx], s[idx+2:]
		min, err := strconv.Atoi(minPart)
		if err != nil {
			return ArityRange{}, fmt.Errorf("paramspec: invalid arity %q: bad min: %w", s, err)
		}
		if maxPart == "*" {
			return UnboundedArity(min), nil
		}
		max, err := strconv.Atoi(maxPart)
		if err != nil {
			return ArityRange{}, fmt.Errorf("paramspec: invalid arity %q: bad max: %w", s, err)
		}
		if max < min {
			return ArityRange{}, fmt.Errorf("paramspec: invalid arity %q: max < min", s)
		}
		return RangeArity(min, max), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return ArityRange{}, fmt.Errorf("paramspec: invalid arity %q: %w", s, err)
	}
	return FixedArity(n), nil
}

// String renders the arity back to its compact spelling, used in
// command's validation error messages.
func (a ArityRange) String() string {
	if a.Min == a.Max && !a.Variable {
		return strconv.Itoa(a.Min)
	}
	if a.Variable || a.Max == Unbounded {
		return fmt.Sprintf("%d..*", a.Min)
	}
	return fmt.Sprintf("%d..%d", a.Min, a.Max)
}

// DefaultArity computes the default ArityRange for a value type:
// boolean-like ⇒ 0, single scalar ⇒ 1, aggregate ⇒ 0..*.
func DefaultArity(vt ValueType) ArityRange {
	switch {
	case vt.IsBooleanLike():
		return FixedArity(0)
	case vt.IsAggregate():
		return UnboundedArity(0)
	default:
		return FixedArity(1)
	}
}

// ParameterSpec is the neutral description of one option or positional
// parameter. It carries go-playground/validator struct tags; command.New
// runs those checks (plus the struct-level invariants that tags alone
// cannot express — see command.validateSpec) before indexing a candidate
// list of ParameterSpecs into a command.Model.
type ParameterSpec struct {
	Kind Kind

	// Names is the ordered list of literal name strings identifying a
	// NamedOption. Empty for Positional specs. A name of length 2 (one
	// prefix rune + one alphanumeric rune) is a "short" name; anything
	// else is "long".
	Names []string

	Arity ArityRange

	ValueType   ValueType
	ElementType ValueType

	// EnumValues holds the exact-case defined names for ValueType/
	// ElementType == Enum.
	EnumValues []string

	Required bool `validate:"-"`

	// Label is the display label for the value ("FILE"); if empty, the
	// help renderer and the Sink jointly fall back to
	// "<" + sink field name + ">".
	Label string

	// Description is the help text shown in the options table's
	// description column. Empty renders as an empty cell.
	Description string

	// Hidden specs are omitted from help output but still parsed.
	Hidden bool

	// HelpFlag specs suppress the end-of-parse MissingRequiredOption
	// check when matched. A help-flag spec must have Arity == 0 and
	// ValueType == Bool (command.New enforces this).
	HelpFlag bool

	// Sensitive marks a spec as carrying sensitive values. The parser does
	// not read it: values flow through the secret package when the spec's
	// ValueType (or ElementType, for aggregates) is Secret.
	Sensitive bool

	// DeclarationOrder is assigned by command.New in input-slice order;
	// specs constructed by hand may leave it zero, it is not meaningful
	// until a command.Model has been built.
	DeclarationOrder int
}

// ShortNames returns the subset of Names with length 2 (one prefix rune,
// one alphanumeric rune), in declaration order.
func (p ParameterSpec) ShortNames() []string {
	var out []string
	for _, n := range p.Names {
		if IsShortName(n) {
			out = append(out, n)
		}
	}
	return out
}

// LongNames returns the subset of Names that are not short names.
func (p ParameterSpec) LongNames() []string {
	var out []string
	for _, n := range p.Names {
		if !IsShortName(n) {
			out = append(out, n)
		}
	}
	return out
}

// IsShortName reports whether n qualifies as a short name: exactly two
// runes, the first being any prefix character and the second being
// alphanumeric.
func IsShortName(n string) bool {
	r := []rune(n)
	if len(r) != 2 {
		return false
	}
	c := r[1]
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// PrimaryName returns the first declared name, or "" for a Positional spec.
func (p ParameterSpec) PrimaryName() string {
	if len(p.Names) == 0 {
		return ""
	}
	return p.Names[0]
}
