// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package help

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/argflag/argerr"
)

func TestAddRowRejectsWrongColumnCount(t *testing.T) {
	tbl := NewTextTable([]Column{{Width: 4, Overflow: TRUNCATE}})
	err := tbl.AddRow("a", "b")
	require.Error(t, err)
	assert.ErrorIs(t, err, argerr.ErrIllegalArgumentUsage)
}

func TestAddRowTruncateRejectsOverWidth(t *testing.T) {
	tbl := NewTextTable([]Column{{Width: 4, Indent: 0, Overflow: TRUNCATE}})
	err := tbl.AddRow("toolong")
	require.Error(t, err)
	assert.ErrorIs(t, err, argerr.ErrIllegalArgumentUsage)
}

func TestTextTableSpanFlowsIntoNextColumn(t *testing.T) {
	tbl := NewTextTable([]Column{
		{Width: 2, Indent: 0, Overflow: SPAN},
		{Width: 3, Indent: 0, Overflow: SPAN},
	})
	// "abc" overflows column 0 (width 2) into column 1's cell, so the
	// second AddRow argument ("" here) lands on a fresh second physical
	// row instead of sharing column 1 with the overflow.
	require.NoError(t, tbl.AddRow("abc", ""))
	lines := tbl.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "abc  ", lines[0])
}

func TestTextTableSpanOverflowsOntoFurtherPhysicalRows(t *testing.T) {
	tbl := NewTextTable([]Column{
		{Width: 2, Indent: 0, Overflow: SPAN},
		{Width: 2, Indent: 0, Overflow: SPAN},
	})
	// "abcde" fills both columns of the first physical row (2+2) and
	// spills its last character onto a second physical row.
	require.NoError(t, tbl.AddRow("abcde", ""))

	lines := tbl.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "abcd", lines[0])
	assert.Equal(t, "e   ", lines[1])
}

func TestTextTableSeparateRowsDoNotShareState(t *testing.T) {
	tbl := NewTextTable([]Column{
		{Width: 2, Indent: 0, Overflow: SPAN},
		{Width: 2, Indent: 0, Overflow: SPAN},
	})
	require.NoError(t, tbl.AddRow("abcde", ""))
	require.NoError(t, tbl.AddRow("xy", "zz"))

	lines := tbl.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "xyzz", lines[2])
}

func TestTextTableWrapBreaksAtWordBoundaries(t *testing.T) {
	tbl := NewTextTable([]Column{
		{Width: 10, Indent: 0, Overflow: WRAP},
	})
	require.NoError(t, tbl.AddRow("one two three"))
	lines := tbl.Lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "one two"))
	assert.True(t, strings.Contains(lines[1], "three"))
}

func TestTextTableWrapIndentsContinuationLines(t *testing.T) {
	tbl := NewTextTable([]Column{
		{Width: 20, Indent: 2, Overflow: WRAP},
	}).WithWrapIndentExtra(4)
	require.NoError(t, tbl.AddRow("alpha beta gamma delta epsilon"))
	lines := tbl.Lines()
	require.True(t, len(lines) > 1)
	assert.True(t, strings.HasPrefix(lines[1], strings.Repeat(" ", 4)))
}

func TestTextTableLinesPadsToTotalWidth(t *testing.T) {
	tbl := NewTextTable([]Column{
		{Width: 5, Indent: 0, Overflow: TRUNCATE},
		{Width: 5, Indent: 0, Overflow: TRUNCATE},
	})
	require.NoError(t, tbl.AddRow("ab", "cd"))
	lines := tbl.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 10, len([]rune(lines[0])))
}
