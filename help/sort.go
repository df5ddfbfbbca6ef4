// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package help

import (
	"github.com/AleutianAI/argflag/paramspec"
)

// sortKeyName returns the name a comparator compares by length: a spec's
// shortest declared name (see shortestName). A positional spec has none;
// the comparators order it after every named option before comparing keys.
func sortKeyName(spec paramspec.ParameterSpec) string {
	return shortestName(spec)
}

// ShortestFirst orders options by their shortest declared name's length,
// then by declaration order (not alphabetically). Positional specs (no
// Names) sort after every named option.
func ShortestFirst(a, b paramspec.ParameterSpec) bool {
	return SortByShortestOptionName(a, b)
}

// SortByShortestOptionName is the default Usage sort order: named options
// ordered by shortest-name length, ties broken by declaration order (never
// alphabetically), positionals last.
func SortByShortestOptionName(a, b paramspec.ParameterSpec) bool {
	if a.Kind != b.Kind {
		return a.Kind == paramspec.NamedOption
	}
	na, nb := sortKeyName(a), sortKeyName(b)
	if len(na) != len(nb) {
		return len(na) < len(nb)
	}
	return a.DeclarationOrder < b.DeclarationOrder
}

// SortByOptionArityAndName orders options by arity.max ascending, then
// arity.min ascending, breaking ties the same way SortByShortestOptionName
// does.
func SortByOptionArityAndName(a, b paramspec.ParameterSpec) bool {
	if a.Kind != b.Kind {
		return a.Kind == paramspec.NamedOption
	}
	if a.Arity.Max != b.Arity.Max {
		return a.Arity.Max < b.Arity.Max
	}
	if a.Arity.Min != b.Arity.Min {
		return a.Arity.Min < b.Arity.Min
	}
	na, nb := sortKeyName(a), sortKeyName(b)
	if len(na) != len(nb) {
		return len(na) < len(nb)
	}
	return a.DeclarationOrder < b.DeclarationOrder
}
