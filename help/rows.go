// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package help

import (
	"strings"

	"github.com/AleutianAI/argflag/paramspec"
)

// defaultOptionColumns lays a row out as the four logical fields the
// default renderer produces: shortestShortName, a comma cell, the
// remaining names joined with the value label, then a wrapped description.
// Widths sum to 80, the same total as the literal option-details column
// table; they are a practical renderer-sized layout rather than a
// transcription of that 7-column table, which groups a required-marker
// gutter and the names cell more finely than any single renderer needs.
func defaultOptionColumns() []Column {
	return []Column{
		{Width: 5, Indent: 2, Overflow: SPAN},
		{Width: 2, Indent: 0, Overflow: SPAN},
		{Width: 24, Indent: 1, Overflow: SPAN},
		{Width: 49, Indent: 0, Overflow: WRAP},
	}
}

// DefaultRenderer is Usage's default options-table layout: shortest short
// name, a comma when the option has both a short and a long name, the
// remaining names plus the value label, and a word-wrapped description.
var DefaultRenderer = Renderer{
	Columns: defaultOptionColumns(),
	Render:  renderDefaultRow,
}

func renderDefaultRow(t *TextTable, spec paramspec.ParameterSpec, label string) error {
	if spec.Kind == paramspec.Positional {
		return t.AddRow("", "", label, description(spec))
	}

	shorts := spec.ShortNames()
	longs := spec.LongNames()

	shortest := ""
	var rest []string
	if len(shorts) > 0 {
		shortest = shorts[0]
		rest = append(rest, shorts[1:]...)
	} else if len(longs) > 0 {
		shortest = longs[0]
		longs = longs[1:]
	}
	rest = append(rest, longs...)

	// A comma cell appears only when the row carries both a short and a
	// long name; extra names of the same kind as the shortest one (e.g.
	// a second short name) are joined without one.
	comma := ""
	if len(shorts) > 0 && len(longs) > 0 {
		comma = ","
	}

	names := strings.Join(rest, ", ") + label
	return t.AddRow(shortest, comma, names, description(spec))
}

// minimalOptionColumns is a terser two-column layout: names then
// description, for callers rendering to a narrower terminal.
func minimalOptionColumns() []Column {
	return []Column{
		{Width: 30, Indent: 2, Overflow: SPAN},
		{Width: 50, Indent: 1, Overflow: WRAP},
	}
}

// MinimalRenderer renders one combined names column (all declared names
// plus the value label) and a description column, with no gutter.
var MinimalRenderer = Renderer{
	Columns: minimalOptionColumns(),
	Render:  renderMinimalRow,
}

func renderMinimalRow(t *TextTable, spec paramspec.ParameterSpec, label string) error {
	var names string
	if spec.Kind == paramspec.Positional {
		names = label
	} else {
		names = strings.Join(spec.Names, ", ") + label
	}
	return t.AddRow(names, description(spec))
}

// description returns a spec's help text, appending the enum choice list
// for Enum-typed specs since the value label alone ("<level>") doesn't
// surface the valid choices.
func description(spec paramspec.ParameterSpec) string {
	desc := spec.Description
	if len(spec.EnumValues) > 0 {
		choices := "One of: " + strings.Join(spec.EnumValues, ", ")
		if desc != "" {
			desc += " " + choices
		} else {
			desc = choices
		}
	}
	if spec.Required {
		if desc != "" {
			desc = "Required. " + desc
		} else {
			desc = "Required."
		}
	}
	return desc
}
