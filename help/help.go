// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package help synthesizes a usage summary line and an aligned options
// table from a command.Model, using the TextTable layout engine in this
// package. Rendering is a pure function of the Model plus the caller's
// chosen sort order and row renderer: there is no package-level renderer
// state.
package help

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/argflag/command"
	"github.com/AleutianAI/argflag/paramspec"
	"github.com/AleutianAI/argflag/sink"
)

// Settings controls one Usage call's rendering.
type Settings struct {
	sortLess func(a, b paramspec.ParameterSpec) bool
	renderer Renderer
	styled   bool
	sink     sink.Sink
}

// Option configures Usage.
type Option func(*Settings)

// WithSort overrides the comparator used to order the options table.
// Default is SortByShortestOptionName.
func WithSort(less func(a, b paramspec.ParameterSpec) bool) Option {
	return func(s *Settings) { s.sortLess = less }
}

// WithRenderer overrides the options table's column layout and per-option
// row rendering. Default is DefaultRenderer.
func WithRenderer(r Renderer) Option {
	return func(s *Settings) { s.renderer = r }
}

// WithStyled enables bold styling of the program name in the usage line
// via lipgloss; the options table is not styled. Callers decide when this
// is appropriate
// (e.g. by checking go-isatty against their output stream) — Usage itself
// never inspects the destination writer.
func WithStyled(enabled bool) Option {
	return func(s *Settings) { s.styled = enabled }
}

// WithFieldSink supplies the sink.Sink used to resolve a spec's default
// field-name label ("<fieldName>") when ParameterSpec.Label is empty. If
// omitted, a named option's default label is its primary name with the
// leading prefix characters trimmed ("--output" renders "<output>"), and a
// spec with no names renders "<value>".
func WithFieldSink(sk sink.Sink) Option {
	return func(s *Settings) { s.sink = sk }
}

// Renderer pairs a TextTable column layout with the function that turns one
// ParameterSpec into a row of that many values. Columns and Render must
// agree on column count; DefaultRenderer and MinimalRenderer are the two
// built-ins.
type Renderer struct {
	Columns []Column
	Render  func(t *TextTable, spec paramspec.ParameterSpec, label string) error
}

// Usage renders m's summary, options table, and footer to w.
func Usage(m *command.Model, w io.Writer, opts ...Option) error {
	settings := Settings{
		sortLess: SortByShortestOptionName,
		renderer: DefaultRenderer,
	}
	for _, opt := range opts {
		opt(&settings)
	}

	var b strings.Builder
	for _, line := range m.Settings.SummaryLines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(summaryLine(m, settings.styled))
	b.WriteByte('\n')

	specs := m.SortedSpecs(settings.sortLess)
	if len(specs) > 0 {
		b.WriteByte('\n')
		table := NewTextTable(settings.renderer.Columns)
		for _, spec := range specs {
			label := resolveLabel(spec, settings.sink, " ")
			if err := settings.renderer.Render(table, spec, label); err != nil {
				return err
			}
		}
		for _, line := range table.Lines() {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	if m.Settings.Footer != "" {
		b.WriteByte('\n')
		b.WriteString(m.Settings.Footer)
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// summaryLine synthesizes the "Usage: ..." line, compact or detailed per
// Settings.DetailedUsageHeader.
func summaryLine(m *command.Model, styled bool) string {
	programName := m.Settings.ProgramName
	if styled {
		programName = lipgloss.NewStyle().Bold(true).Render(programName)
	}

	if !m.Settings.DetailedUsageHeader {
		line := fmt.Sprintf("Usage: %s [OPTIONS]", programName)
		if pos, ok := m.Positional(); ok {
			line += " " + positionalTemplate(pos)
		}
		return line
	}

	var parts []string
	var optionalFlags, requiredFlags []paramspec.ParameterSpec
	var others []paramspec.ParameterSpec

	for _, spec := range m.SortedSpecs(ShortestFirst) {
		if spec.Kind != paramspec.NamedOption {
			continue
		}
		if spec.ValueType == paramspec.Bool && spec.Arity.Max == 0 {
			if spec.Required {
				requiredFlags = append(requiredFlags, spec)
			} else {
				optionalFlags = append(optionalFlags, spec)
			}
			continue
		}
		others = append(others, spec)
	}

	if len(requiredFlags) > 0 {
		parts = append(parts, clusterFlags(requiredFlags, false))
	}
	if len(optionalFlags) > 0 {
		parts = append(parts, clusterFlags(optionalFlags, true))
	}
	for _, spec := range others {
		parts = append(parts, arityTemplate(m, spec))
	}

	if pos, ok := m.Positional(); ok {
		parts = append(parts, positionalTemplate(pos))
	}

	return fmt.Sprintf("Usage: %s %s", programName, strings.Join(parts, " "))
}

// clusterFlags groups boolean arity-0 flags into one "[-abc]" (or
// un-bracketed "-abc" for required flags) group by shortest short names in
// ascending code-point order.
func clusterFlags(specs []paramspec.ParameterSpec, optional bool) string {
	var letters []string
	for _, s := range specs {
		if short := shortestShortName(s); short != "" {
			letters = append(letters, string([]rune(short)[1]))
		}
	}
	sort.Strings(letters)
	prefix := ""
	if len(specs) > 0 {
		if short := shortestShortName(specs[0]); short != "" {
			prefix = string([]rune(short)[0])
		}
	}
	body := prefix + strings.Join(letters, "")
	if optional {
		return "[" + body + "]"
	}
	return body
}

// arityTemplate renders a value-taking option's bracketed usage template
// per the arity-shape table.
func arityTemplate(m *command.Model, spec paramspec.ParameterSpec) string {
	name := shortestName(spec)
	label := resolveLabel(spec, nil, m.Settings.Separator)
	a := spec.Arity

	var body string
	switch {
	case a.Min == 0 && a.Max == 1:
		body = fmt.Sprintf("%s[%s]", name, label)
	case a.Min == 0 && (a.Variable || a.Max == paramspec.Unbounded):
		body = fmt.Sprintf("%s[%s...]", name, label)
	case a.Min == 1 && a.Max == 1:
		body = fmt.Sprintf("%s%s", name, label)
	case a.Min == 1 && (a.Variable || a.Max == paramspec.Unbounded):
		body = fmt.Sprintf("%s%s [%s...]", name, label, resolveLabel(spec, nil, ""))
	default:
		body = fmt.Sprintf("%s%s", name, label)
	}

	if spec.Required {
		return body
	}
	return "[" + body + "]"
}

// valueLabelOnly is the bare "<label>" text without a leading separator,
// used by positionalTemplate.
func valueLabelOnly(spec paramspec.ParameterSpec) string {
	if spec.Label != "" {
		return spec.Label
	}
	return "<value>"
}

// positionalTemplate renders a command's single positional spec's usage
// template based on its arity: "[<label>...]" for zero-or-more,
// "<label> [<label>...]" for one-or-more, and "<label>" otherwise.
func positionalTemplate(spec paramspec.ParameterSpec) string {
	label := valueLabelOnly(spec)
	switch {
	case spec.Arity.Min == 0 && (spec.Arity.Variable || spec.Arity.Max == paramspec.Unbounded):
		return fmt.Sprintf("[%s...]", label)
	case spec.Arity.Min >= 1 && (spec.Arity.Variable || spec.Arity.Max == paramspec.Unbounded):
		return fmt.Sprintf("%s [%s...]", label, label)
	default:
		return label
	}
}

// shortestShortName returns spec's short name (length 2) with the smallest
// declaration-order tiebreak, or "" if it has none.
func shortestShortName(spec paramspec.ParameterSpec) string {
	shorts := spec.ShortNames()
	if len(shorts) == 0 {
		return ""
	}
	return shorts[0]
}

// shortestName returns spec's shortest declared name overall (by rune
// length, then declaration order), or "" if it has no names.
func shortestName(spec paramspec.ParameterSpec) string {
	shortest := ""
	for _, n := range spec.Names {
		if shortest == "" || len([]rune(n)) < len([]rune(shortest)) {
			shortest = n
		}
	}
	return shortest
}

// resolveLabel renders a spec's display label: separator + explicit Label,
// or separator + "<" + field name + ">" when Label is empty. Positional
// labels ignore sep and render bare.
func resolveLabel(spec paramspec.ParameterSpec, sk sink.Sink, sep string) string {
	text := spec.Label
	if text == "" {
		field := "value"
		if sk != nil {
			field = sk.FieldName(spec)
		} else if spec.PrimaryName() != "" {
			field = strings.TrimLeft(spec.PrimaryName(), "-/:[(")
		}
		text = "<" + field + ">"
	}
	if spec.Kind == paramspec.Positional {
		return text
	}
	return sep + text
}
