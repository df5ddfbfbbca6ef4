// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package help

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AleutianAI/argflag/paramspec"
)

func TestDescriptionPlain(t *testing.T) {
	spec := paramspec.ParameterSpec{Description: "set the output file"}
	assert.Equal(t, "set the output file", description(spec))
}

func TestDescriptionEmpty(t *testing.T) {
	spec := paramspec.ParameterSpec{}
	assert.Equal(t, "", description(spec))
}

func TestDescriptionWithEnumChoices(t *testing.T) {
	spec := paramspec.ParameterSpec{
		Description: "logging level",
		EnumValues:  []string{"LOW", "MEDIUM", "HIGH"},
	}
	assert.Equal(t, "logging level One of: LOW, MEDIUM, HIGH", description(spec))
}

func TestDescriptionEnumChoicesWithoutOwnText(t *testing.T) {
	spec := paramspec.ParameterSpec{EnumValues: []string{"A", "B"}}
	assert.Equal(t, "One of: A, B", description(spec))
}

func TestDescriptionRequiredPrefix(t *testing.T) {
	spec := paramspec.ParameterSpec{Description: "the input file", Required: true}
	assert.Equal(t, "Required. the input file", description(spec))
}

func TestDescriptionRequiredAlone(t *testing.T) {
	spec := paramspec.ParameterSpec{Required: true}
	assert.Equal(t, "Required.", description(spec))
}

func TestRenderDefaultRowNamedOption(t *testing.T) {
	spec := paramspec.ParameterSpec{
		Kind:  paramspec.NamedOption,
		Names: []string{"-o", "--output", "-x"},
	}
	tbl := NewTextTable(defaultOptionColumns())
	require := assert.New(t)
	err := renderDefaultRow(tbl, spec, "=<value>")
	require.NoError(err)

	lines := tbl.Lines()
	require.Len(lines, 1)
	// shortest short name "-o" in column 0, comma since the option has
	// both short and long names, then "-x, --output=<value>" in the names
	// column.
	assert.Contains(lines[0], "-o")
	assert.Contains(lines[0], "-x, --output=<value>")
}

func TestRenderDefaultRowMultipleShortNamesNoLongName(t *testing.T) {
	spec := paramspec.ParameterSpec{
		Kind:  paramspec.NamedOption,
		Names: []string{"-o", "-x"},
	}
	tbl := NewTextTable(defaultOptionColumns())
	err := renderDefaultRow(tbl, spec, "=<value>")
	require := assert.New(t)
	require.NoError(err)

	lines := tbl.Lines()
	require.Len(lines, 1)
	// no long name is present, so the comma cell must stay empty even
	// though a second short name ("-x") remains to be listed.
	assert.Contains(lines[0], "-o")
	assert.NotContains(lines[0], ",")
	assert.Contains(lines[0], "-x=<value>")
}

func TestRenderDefaultRowPositional(t *testing.T) {
	spec := paramspec.ParameterSpec{Kind: paramspec.Positional, Description: "input files"}
	tbl := NewTextTable(defaultOptionColumns())
	err := renderDefaultRow(tbl, spec, "<files>...")
	assert.NoError(t, err)
	lines := tbl.Lines()
	assert.Contains(t, lines[0], "<files>...")
	assert.Contains(t, lines[0], "input files")
}

func TestRenderMinimalRow(t *testing.T) {
	spec := paramspec.ParameterSpec{
		Kind:        paramspec.NamedOption,
		Names:       []string{"-v", "--verbose"},
		Description: "be noisy",
	}
	tbl := NewTextTable(minimalOptionColumns())
	err := renderMinimalRow(tbl, spec, "")
	assert.NoError(t, err)
	lines := tbl.Lines()
	assert.Contains(t, lines[0], "-v, --verbose")
	assert.Contains(t, lines[0], "be noisy")
}
