// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package command builds and owns a Model: the indexed, validated set of
// ParameterSpecs for one program, plus the program-level Settings (name
// separator, program name, summary/footer text, converter registry). A
// Model is built once and parsing never modifies it; the only method in
// this package that changes it afterwards is CommandLine.SetSeparator. It
// may be shared across goroutines for concurrent parsing as long as each
// parse uses its own sink.Sink.
package command

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/argflag/argerr"
	"github.com/AleutianAI/argflag/convert"
	"github.com/AleutianAI/argflag/paramspec"
)

var structValidator = validator.New()

// Settings holds the program-level knobs that are not themselves
// ParameterSpecs.
type Settings struct {
	// Separator joins an option name to an inline value ("-c=5"). Must be
	// a single non-empty string; defaults to "=".
	Separator string

	// ProgramName is the name rendered in the usage summary line.
	// Defaults to "<main class>" to match the original's unconfigured
	// default.
	ProgramName string

	// SummaryLines are emitted verbatim, one per line, before the
	// synthesized usage line.
	SummaryLines []string

	// Footer is emitted verbatim after the options table.
	Footer string

	// DetailedUsageHeader selects the detailed (per-option) usage summary
	// instead of the compact "[OPTIONS]" form.
	DetailedUsageHeader bool

	// CaseInsensitiveEnums resolves the "case-insensitive enum matching"
	// open question: when true, enum conversion folds case.
	CaseInsensitiveEnums bool

	// StrictUnknownOptions makes an option-shaped token that matches no
	// spec a parse error (argerr.ErrUnknownOption) instead of being
	// treated as positional.
	StrictUnknownOptions bool

	// RejectUnknownPositionals makes a positional token fail with
	// argerr.ErrUnknownOption when the command declares no positional
	// spec, instead of silently discarding it.
	RejectUnknownPositionals bool
}

// defaultSettings returns Settings with every documented default applied.
func defaultSettings() Settings {
	return Settings{
		Separator:   "=",
		ProgramName: "<main class>",
	}
}

// Option configures a Model during New/MustNew, in the style of a
// functional-options constructor.
type Option func(*Settings)

// WithSeparator overrides the inline-value separator.
func WithSeparator(sep string) Option {
	return func(s *Settings) { s.Separator = sep }
}

// WithProgramName overrides the program name rendered in usage text.
func WithProgramName(name string) Option {
	return func(s *Settings) { s.ProgramName = name }
}

// WithSummaryLines sets the verbatim summary lines preceding the usage line.
func WithSummaryLines(lines ...string) Option {
	return func(s *Settings) { s.SummaryLines = lines }
}

// WithFooter sets the verbatim footer text.
func WithFooter(footer string) Option {
	return func(s *Settings) { s.Footer = footer }
}

// WithDetailedUsageHeader selects the detailed usage summary form.
func WithDetailedUsageHeader(detailed bool) Option {
	return func(s *Settings) { s.DetailedUsageHeader = detailed }
}

// WithCaseInsensitiveEnums enables fold-case enum matching.
func WithCaseInsensitiveEnums(enabled bool) Option {
	return func(s *Settings) { s.CaseInsensitiveEnums = enabled }
}

// WithStrictUnknownOptions makes unrecognized option-shaped tokens a parse
// error instead of silently falling through to positional handling.
func WithStrictUnknownOptions(enabled bool) Option {
	return func(s *Settings) { s.StrictUnknownOptions = enabled }
}

// WithRejectUnknownPositionals makes positional tokens an error when the
// command declares no positional spec.
func WithRejectUnknownPositionals(enabled bool) Option {
	return func(s *Settings) { s.RejectUnknownPositionals = enabled }
}

// Model is the indexed, validated, immutable description of one program's
// command line: every declared ParameterSpec plus the Settings and
// converter Registry used to parse against it.
//
// Thread Safety: a *Model is safe for concurrent use once New/MustNew
// returns. Concurrent Parse calls against the same Model are safe provided
// each uses its own sink.Sink — see parser.Parse.
type Model struct {
	Settings Settings

	specs      []paramspec.ParameterSpec
	byName     map[string]int // name -> index into specs
	positional int            // index into specs, or -1 if none
	helpFlags  []int          // indices of HelpFlag specs

	Converters *convert.Registry
}

// New indexes candidates into a Model, applying opts over defaultSettings.
// It returns argerr.ErrDuplicateParameterName if two specs share a name, or
// argerr.ErrInvalidParameterSpec if a spec fails struct validation or one of
// the cross-field invariants (arity min<=max, help-flag shape, at most one
// positional).
func New(candidates []paramspec.ParameterSpec, opts ...Option) (*Model, error) {
	settings := defaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}
	if settings.Separator == "" {
		return nil, fmt.Errorf("command: %w: separator must not be empty", argerr.ErrInvalidParameterSpec)
	}

	m := &Model{
		Settings:   settings,
		byName:     make(map[string]int),
		positional: -1,
		Converters: convert.NewRegistry(settings.CaseInsensitiveEnums),
	}

	for i, spec := range candidates {
		spec.DeclarationOrder = i
		if err := validateSpec(spec); err != nil {
			return nil, err
		}

		if spec.Kind == paramspec.Positional {
			if m.positional >= 0 {
				return nil, fmt.Errorf("command: %w: at most one positional spec is supported, got a second at declaration %d", argerr.ErrInvalidParameterSpec, i)
			}
			m.positional = len(m.specs)
		} else {
			for _, name := range spec.Names {
				if _, exists := m.byName[name]; exists {
					return nil, fmt.Errorf("command: %w: %q", argerr.ErrDuplicateParameterName, name)
				}
			}
		}

		if spec.HelpFlag {
			m.helpFlags = append(m.helpFlags, len(m.specs))
		}

		m.specs = append(m.specs, spec)
		if spec.Kind == paramspec.NamedOption {
			idx := len(m.specs) - 1
			for _, name := range spec.Names {
				m.byName[name] = idx
			}
		}
	}

	return m, nil
}

// MustNew is New, panicking on error. Intended for package-level variable
// initialization in host programs that treat a malformed spec list as a
// programming error, not a runtime condition.
func MustNew(candidates []paramspec.ParameterSpec, opts ...Option) *Model {
	m, err := New(candidates, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// validateSpec runs go-playground/validator struct tags plus the
// cross-field invariants a tag alone cannot express.
func validateSpec(spec paramspec.ParameterSpec) error {
	if err := structValidator.Struct(spec.Arity); err != nil {
		return fmt.Errorf("command: %w: %v", argerr.ErrInvalidParameterSpec, err)
	}
	if spec.Arity.Min > spec.Arity.Max {
		return fmt.Errorf("command: %w: arity min %d exceeds max %d", argerr.ErrInvalidParameterSpec, spec.Arity.Min, spec.Arity.Max)
	}
	if spec.Kind == paramspec.NamedOption && len(spec.Names) == 0 {
		return fmt.Errorf("command: %w: named option has no names", argerr.ErrInvalidParameterSpec)
	}
	if spec.HelpFlag {
		if spec.Arity.Min != 0 || spec.Arity.Max != 0 {
			return fmt.Errorf("command: %w: help-flag spec must have arity 0, got %s", argerr.ErrInvalidParameterSpec, spec.Arity)
		}
		if spec.ValueType != paramspec.Bool {
			return fmt.Errorf("command: %w: help-flag spec must be boolean, got %s", argerr.ErrInvalidParameterSpec, spec.ValueType)
		}
	}
	return nil
}

// Specs returns every declared ParameterSpec in declaration order,
// including hidden ones. Callers that need help-visible specs only should
// filter on Hidden themselves (see help.VisibleSpecs).
func (m *Model) Specs() []paramspec.ParameterSpec {
	out := make([]paramspec.ParameterSpec, len(m.specs))
	copy(out, m.specs)
	return out
}

// Lookup finds the NamedOption spec registered under name, if any.
func (m *Model) Lookup(name string) (paramspec.ParameterSpec, bool) {
	idx, ok := m.byName[name]
	if !ok {
		return paramspec.ParameterSpec{}, false
	}
	return m.specs[idx], true
}

// LookupShort is Lookup under another name: it finds the NamedOption spec
// registered under name, without checking that name is a short name.
func (m *Model) LookupShort(name string) (paramspec.ParameterSpec, bool) {
	return m.Lookup(name)
}

// Positional returns the command's single positional spec, if declared.
func (m *Model) Positional() (paramspec.ParameterSpec, bool) {
	if m.positional < 0 {
		return paramspec.ParameterSpec{}, false
	}
	return m.specs[m.positional], true
}

// isHelpFlagIndex reports whether idx (an index into Specs()) names a
// help-flag spec.
func (m *Model) isHelpFlagIndex(idx int) bool {
	for _, h := range m.helpFlags {
		if h == idx {
			return true
		}
	}
	return false
}

// RequiredSpecs returns every spec with Required == true, in declaration
// order. Used by the parser's end-of-parse check.
func (m *Model) RequiredSpecs() []paramspec.ParameterSpec {
	var out []paramspec.ParameterSpec
	for _, s := range m.specs {
		if s.Required {
			out = append(out, s)
		}
	}
	return out
}

// SortedSpecs returns the non-hidden specs ordered by less, a stable sort
// matching the comparator contract help.SortByX functions implement.
func (m *Model) SortedSpecs(less func(a, b paramspec.ParameterSpec) bool) []paramspec.ParameterSpec {
	var visible []paramspec.ParameterSpec
	for _, s := range m.specs {
		if !s.Hidden {
			visible = append(visible, s)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool { return less(visible[i], visible[j]) })
	return visible
}

// CommandLine is a thin wrapper holding one Model: it exposes the
// separator accessors and the Model itself. It has no Parse method;
// parsing goes through parser.Parse or parser.ParseContext on Model(),
// and each parse tracks help flags through its own sink.Sink.
type CommandLine struct {
	model *Model
}

// NewCommandLine wraps an already-built Model for repeated parsing.
func NewCommandLine(m *Model) *CommandLine {
	return &CommandLine{model: m}
}

// SetSeparator overrides the command's inline-value separator. Rejects an
// empty string, mirroring the constructor's own validation. It writes the
// wrapped Model's Settings in place, so it must not run concurrently with
// a parse or help render of that Model.
func (c *CommandLine) SetSeparator(sep string) error {
	if sep == "" {
		return fmt.Errorf("command: %w: separator must not be empty", argerr.ErrInvalidParameterSpec)
	}
	c.model.Settings.Separator = sep
	return nil
}

// Separator returns the command's current inline-value separator.
func (c *CommandLine) Separator() string {
	return c.model.Settings.Separator
}

// Model returns the underlying Model, e.g. for help rendering.
func (c *CommandLine) Model() *Model {
	return c.model
}
