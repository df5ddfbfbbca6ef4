// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package yamlspec is a reference declaration adapter: it loads a
// command.Settings and a []paramspec.ParameterSpec from a YAML document,
// for programs that would rather ship a data file than construct specs in
// Go. It is not part of the core contract — the core consumes
// []paramspec.ParameterSpec however a host program produces it — this is
// one such producer, used by cmd/argcli.
package yamlspec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/argflag/command"
	"github.com/AleutianAI/argflag/paramspec"
)

// Document is the top-level shape of a YAML parameter declaration file.
type Document struct {
	Program  ProgramSettings   `yaml:"program"`
	Options  []OptionDoc       `yaml:"options"`
	Position *PositionalDoc    `yaml:"positional"`
}

// ProgramSettings mirrors the subset of command.Settings a YAML file can
// set; fields left zero keep command.New's own defaults.
type ProgramSettings struct {
	Separator            string   `yaml:"separator"`
	Name                 string   `yaml:"name"`
	Summary              []string `yaml:"summary"`
	Footer               string   `yaml:"footer"`
	DetailedUsageHeader  bool     `yaml:"detailed_usage_header"`
	CaseInsensitiveEnums bool     `yaml:"case_insensitive_enums"`
	StrictUnknownOptions bool     `yaml:"strict_unknown_options"`
}

// OptionDoc is one NamedOption declaration.
type OptionDoc struct {
	Names       []string `yaml:"names"`
	Arity       string   `yaml:"arity"`
	Type        string   `yaml:"type"`
	ElementType string   `yaml:"element_type"`
	Enum        []string `yaml:"enum"`
	Required    bool     `yaml:"required"`
	Label       string   `yaml:"label"`
	Description string   `yaml:"description"`
	Hidden      bool     `yaml:"hidden"`
	HelpFlag    bool     `yaml:"help_flag"`
	Sensitive   bool     `yaml:"sensitive"`
}

// PositionalDoc is the at-most-one positional declaration.
type PositionalDoc struct {
	Arity       string   `yaml:"arity"`
	Type        string   `yaml:"type"`
	ElementType string   `yaml:"element_type"`
	Label       string   `yaml:"label"`
	Description string   `yaml:"description"`
	Required    bool     `yaml:"required"`
}

// Load parses data into a Document, then a ready-to-use []paramspec.
// ParameterSpec plus the command.Option set describing its program
// settings. Arity strings use paramspec.ParseArity's compact spellings
// ("1", "0..1", "1..*", "*"); an empty arity leaves paramspec.DefaultArity
// to compute it from the option's type.
func Load(data []byte) ([]paramspec.ParameterSpec, []command.Option, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("yamlspec: parsing YAML: %w", err)
	}

	var specs []paramspec.ParameterSpec
	for i, opt := range doc.Options {
		spec, err := opt.toSpec()
		if err != nil {
			return nil, nil, fmt.Errorf("yamlspec: option[%d]: %w", i, err)
		}
		specs = append(specs, spec)
	}
	if doc.Position != nil {
		spec, err := doc.Position.toSpec()
		if err != nil {
			return nil, nil, fmt.Errorf("yamlspec: positional: %w", err)
		}
		specs = append(specs, spec)
	}

	return specs, doc.Program.options(), nil
}

func (o OptionDoc) toSpec() (paramspec.ParameterSpec, error) {
	vt := paramspec.ValueType(o.Type)
	if vt == "" {
		vt = paramspec.String
	}
	arity, err := resolveArity(o.Arity, vt)
	if err != nil {
		return paramspec.ParameterSpec{}, err
	}
	return paramspec.ParameterSpec{
		Kind:        paramspec.NamedOption,
		Names:       o.Names,
		Arity:       arity,
		ValueType:   vt,
		ElementType: paramspec.ValueType(o.ElementType),
		EnumValues:  o.Enum,
		Required:    o.Required,
		Label:       o.Label,
		Description: o.Description,
		Hidden:      o.Hidden,
		HelpFlag:    o.HelpFlag,
		Sensitive:   o.Sensitive,
	}, nil
}

func (p PositionalDoc) toSpec() (paramspec.ParameterSpec, error) {
	vt := paramspec.ValueType(p.Type)
	if vt == "" {
		vt = paramspec.String
	}
	arity, err := resolveArity(p.Arity, vt)
	if err != nil {
		return paramspec.ParameterSpec{}, err
	}
	return paramspec.ParameterSpec{
		Kind:        paramspec.Positional,
		Arity:       arity,
		ValueType:   vt,
		ElementType: paramspec.ValueType(p.ElementType),
		Required:    p.Required,
		Label:       p.Label,
		Description: p.Description,
	}, nil
}

func resolveArity(s string, vt paramspec.ValueType) (paramspec.ArityRange, error) {
	if s == "" {
		return paramspec.DefaultArity(vt), nil
	}
	return paramspec.ParseArity(s)
}

// options turns the parsed program settings into the command.Option list
// command.New expects, one Option per non-zero field so an unset YAML
// field keeps command.New's own default rather than overwriting it with a
// Go zero value.
func (p ProgramSettings) options() []command.Option {
	var opts []command.Option
	if p.Separator != "" {
		opts = append(opts, command.WithSeparator(p.Separator))
	}
	if p.Name != "" {
		opts = append(opts, command.WithProgramName(p.Name))
	}
	if len(p.Summary) > 0 {
		opts = append(opts, command.WithSummaryLines(p.Summary...))
	}
	if p.Footer != "" {
		opts = append(opts, command.WithFooter(p.Footer))
	}
	if p.DetailedUsageHeader {
		opts = append(opts, command.WithDetailedUsageHeader(true))
	}
	if p.CaseInsensitiveEnums {
		opts = append(opts, command.WithCaseInsensitiveEnums(true))
	}
	if p.StrictUnknownOptions {
		opts = append(opts, command.WithStrictUnknownOptions(true))
	}
	return opts
}
