// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/argflag/argerr"
)

// Overflow names what a TextTable column does with a value wider than its
// available content width.
type Overflow int

const (
	// TRUNCATE makes an over-wide value a declaration error, detected by
	// AddRow before any row is written.
	TRUNCATE Overflow = iota
	// SPAN flows the overflow into the following column(s), pushing a new
	// physical row only when the flow would otherwise overwrite a column
	// that this same logical row already assigned real content to.
	SPAN
	// WRAP breaks the value at word boundaries onto further physical
	// rows within the same column, indenting continuation lines.
	WRAP
)

// Column describes one fixed-width slot in a TextTable's layout. Width is
// the column's total printed span; Indent is the number of leading spaces
// within that span before content starts, so a value's available content
// width is Width-Indent.
type Column struct {
	Width    int
	Indent   int
	Overflow Overflow
}

func (c Column) contentWidth() int {
	w := c.Width - c.Indent
	if w < 0 {
		return 0
	}
	return w
}

// DefaultColumns is the option-details column layout: seven columns
// totaling 80 printed characters, matching the fixed widths this library's
// usage screens lay out by.
func DefaultColumns() []Column {
	return []Column{
		{Width: 2, Indent: 2, Overflow: SPAN},
		{Width: 2, Indent: 1, Overflow: SPAN},
		{Width: 1, Indent: 2, Overflow: SPAN},
		{Width: 3, Indent: 2, Overflow: SPAN},
		{Width: 1, Indent: 2, Overflow: SPAN},
		{Width: 20, Indent: 1, Overflow: SPAN},
		{Width: 51, Indent: 1, Overflow: WRAP},
	}
}

// TextTable lays fixed-width rows of text out across physical lines,
// applying each column's overflow policy independently. Zero value is not
// usable; construct with NewTextTable.
type TextTable struct {
	columns         []Column
	wrapIndentExtra int
	rows            [][]string
}

// NewTextTable builds an empty table with the given column layout. The
// default wrap-continuation indent is a column's own Indent plus 4; use
// WithWrapIndentExtra to override it.
func NewTextTable(columns []Column) *TextTable {
	return &TextTable{columns: columns, wrapIndentExtra: 4}
}

// WithWrapIndentExtra overrides the extra indent applied to WRAP
// continuation lines (added on top of the column's own Indent). Returns
// the receiver for chaining.
func (t *TextTable) WithWrapIndentExtra(extra int) *TextTable {
	t.wrapIndentExtra = extra
	return t
}

type cellPos struct{ row, col int }

func (t *TextTable) advance(p cellPos) cellPos {
	if p.col+1 < len(t.columns) {
		return cellPos{p.row, p.col + 1}
	}
	return cellPos{p.row + 1, 0}
}

func (t *TextTable) ensureRow(row int) {
	for row >= len(t.rows) {
		t.rows = append(t.rows, make([]string, len(t.columns)))
	}
}

// AddRow writes one logical row of values, one per column. It returns
// argerr.ErrIllegalArgumentUsage if len(values) != number of columns, or if
// a TRUNCATE column's value is wider than its content width.
func (t *TextTable) AddRow(values ...string) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("argflag: %w: AddRow got %d values for %d columns", argerr.ErrIllegalArgumentUsage, len(values), len(t.columns))
	}
	for i, col := range t.columns {
		if col.Overflow == TRUNCATE && lipgloss.Width(values[i]) > col.contentWidth() {
			return fmt.Errorf("argflag: %w: value %q exceeds column %d's width %d", argerr.ErrIllegalArgumentUsage, values[i], i, col.contentWidth())
		}
	}

	baseRow := len(t.rows)
	t.ensureRow(baseRow)
	cursor := cellPos{baseRow, 0}

	for c, col := range t.columns {
		val := values[c]
		switch col.Overflow {
		case TRUNCATE:
			t.rows[baseRow][c] = val
		case WRAP:
			for li, line := range wrapWords(val, col.contentWidth()) {
				row := baseRow + li
				t.ensureRow(row)
				if li > 0 {
					line = strings.Repeat(" ", t.wrapIndentExtra) + line
				}
				t.rows[row][c] = line
			}
		case SPAN:
			cursor = t.writeSpan(cursor, baseRow, c, val)
		}
	}
	return nil
}

// writeSpan flows val into the table starting at cursor, which must be at
// or before column c on the logical row's base row. It returns the cursor
// position immediately after the last character written, ready for the
// next column's own SPAN write.
func (t *TextTable) writeSpan(cursor cellPos, baseRow, c int, val string) cellPos {
	if cursor.row == baseRow && cursor.col < c {
		cursor = cellPos{baseRow, c}
	}
	remaining := val
	for {
		t.ensureRow(cursor.row)
		if t.rows[cursor.row][cursor.col] != "" {
			newRow := cursor.row + 1
			t.rows = append(t.rows[:newRow:newRow], append([][]string{make([]string, len(t.columns))}, t.rows[newRow:]...)...)
			cursor = cellPos{newRow, 0}
			t.ensureRow(cursor.row)
		}
		col := t.columns[cursor.col]
		avail := col.contentWidth()
		if lipgloss.Width(remaining) <= avail {
			t.rows[cursor.row][cursor.col] = remaining
			return t.advance(cursor)
		}
		chunk, rest := splitByWidth(remaining, avail)
		t.rows[cursor.row][cursor.col] = chunk
		remaining = rest
		cursor = t.advance(cursor)
	}
}

// splitByWidth splits s into a prefix of at most width printed columns and
// the remainder, breaking on a rune boundary.
func splitByWidth(s string, width int) (prefix, rest string) {
	if width <= 0 {
		return "", s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s, ""
	}
	return string(runes[:width]), string(runes[width:])
}

// wrapWords breaks s into lines of at most width printed columns, breaking
// only at whitespace. A single word longer than width is placed on its own
// line unbroken, matching the "break at word boundaries" rule literally
// (WRAP never hyphenates mid-word).
func wrapWords(s string, width int) []string {
	if s == "" {
		return []string{""}
	}
	if width <= 0 {
		return []string{s}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	var cur strings.Builder
	curWidth := 0
	for _, w := range words {
		wWidth := lipgloss.Width(w)
		if curWidth == 0 {
			cur.WriteString(w)
			curWidth = wWidth
			continue
		}
		if curWidth+1+wWidth <= width {
			cur.WriteByte(' ')
			cur.WriteString(w)
			curWidth += 1 + wWidth
			continue
		}
		lines = append(lines, cur.String())
		cur.Reset()
		cur.WriteString(w)
		curWidth = wWidth
	}
	lines = append(lines, cur.String())
	return lines
}

// Lines renders the table to its final text form, right-padding every
// column to its configured width so piped output stays aligned.
func (t *TextTable) Lines() []string {
	totalWidth := 0
	for _, c := range t.columns {
		totalWidth += c.Width
	}

	lines := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		var b strings.Builder
		for c, col := range t.columns {
			cell := row[c]
			pad := col.Width - col.Indent - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(strings.Repeat(" ", col.Indent))
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", pad))
		}
		line := b.String()
		if w := lipgloss.Width(line); w < totalWidth {
			line += strings.Repeat(" ", totalWidth-w)
		}
		lines = append(lines, line)
	}
	return lines
}
