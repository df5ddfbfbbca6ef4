// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/argflag/argerr"
	"github.com/AleutianAI/argflag/command"
	"github.com/AleutianAI/argflag/paramspec"
	"github.com/AleutianAI/argflag/sink"
)

func buildModel(t *testing.T, opts ...command.Option) *command.Model {
	t.Helper()
	specs := []paramspec.ParameterSpec{
		{Kind: paramspec.NamedOption, Names: []string{"-o", "--output"}, ValueType: paramspec.String, Arity: paramspec.FixedArity(1)},
		{Kind: paramspec.NamedOption, Names: []string{"-v", "--verbose"}, ValueType: paramspec.Bool, Arity: paramspec.FixedArity(0)},
		{Kind: paramspec.NamedOption, Names: []string{"-r"}, ValueType: paramspec.Bool, Arity: paramspec.FixedArity(0)},
		{Kind: paramspec.NamedOption, Names: []string{"-x", "--count"}, ValueType: paramspec.Int, Arity: paramspec.FixedArity(1), Required: true},
		{Kind: paramspec.NamedOption, Names: []string{"-t", "--tag"}, ValueType: paramspec.Array, ElementType: paramspec.String, Arity: paramspec.UnboundedArity(0)},
		{Kind: paramspec.NamedOption, Names: []string{"-h", "--help"}, ValueType: paramspec.Bool, Arity: paramspec.FixedArity(0), HelpFlag: true},
		{Kind: paramspec.Positional, ValueType: paramspec.Array, ElementType: paramspec.String, Arity: paramspec.UnboundedArity(0)},
	}
	m, err := command.New(specs, opts...)
	require.NoError(t, err)
	return m
}

func TestParseLongOptionSeparatedValue(t *testing.T) {
	m := buildModel(t)
	s := sink.NewMapSink()
	err := Parse(m, s, []string{"--output", "out.txt", "-x", "3"})
	require.NoError(t, err)

	spec, _ := m.Lookup("--output")
	v, ok := s.Scalar(spec)
	require.True(t, ok)
	assert.Equal(t, "out.txt", v)
}

func TestParseInlineSeparatorValue(t *testing.T) {
	m := buildModel(t)
	s := sink.NewMapSink()
	err := Parse(m, s, []string{"--output=out.txt", "-x=3"})
	require.NoError(t, err)

	outSpec, _ := m.Lookup("--output")
	v, ok := s.Scalar(outSpec)
	require.True(t, ok)
	assert.Equal(t, "out.txt", v)
}

func TestParseShortClusterOfFlags(t *testing.T) {
	m := buildModel(t)
	s := sink.NewMapSink()
	err := Parse(m, s, []string{"-vr", "-x", "1"})
	require.NoError(t, err)

	vSpec, _ := m.Lookup("-v")
	rSpec, _ := m.Lookup("-r")
	vv, _ := s.Scalar(vSpec)
	rv, _ := s.Scalar(rSpec)
	assert.Equal(t, true, vv)
	assert.Equal(t, true, rv)
}

func TestParseShortClusterWithTrailingValue(t *testing.T) {
	m := buildModel(t)
	s := sink.NewMapSink()
	err := Parse(m, s, []string{"-vxout.txt", "-x", "1"})
	require.Error(t, err)
}

func TestParseDoubleDashTerminator(t *testing.T) {
	m := buildModel(t)
	s := sink.NewMapSink()
	err := Parse(m, s, []string{"-x", "1", "--", "--output", "literal"})
	require.NoError(t, err)

	posSpec, _ := m.Positional()
	elems := s.Elements(posSpec)
	require.Len(t, elems, 2)
	assert.Equal(t, "--output", elems[0])
	assert.Equal(t, "literal", elems[1])
}

func TestParseAggregateAppendsInOrder(t *testing.T) {
	m := buildModel(t)
	s := sink.NewMapSink()
	err := Parse(m, s, []string{"-x", "1", "--tag", "a", "b", "c"})
	require.NoError(t, err)

	tagSpec, _ := m.Lookup("--tag")
	elems := s.Elements(tagSpec)
	require.Len(t, elems, 3)
	assert.Equal(t, []any{"a", "b", "c"}, elems)
}

func TestParseMissingRequiredOption(t *testing.T) {
	m := buildModel(t)
	s := sink.NewMapSink()
	err := Parse(m, s, []string{"--output", "out.txt"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, argerr.ErrMissingRequiredOption))
}

func TestParseHelpFlagSuppressesRequiredCheck(t *testing.T) {
	m := buildModel(t)
	s := sink.NewMapSink()
	err := Parse(m, s, []string{"--help"})
	require.NoError(t, err)
}

func TestParseUnknownOptionStrict(t *testing.T) {
	m := buildModel(t, command.WithStrictUnknownOptions(true))
	s := sink.NewMapSink()
	err := Parse(m, s, []string{"-x", "1", "--bogus"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, argerr.ErrUnknownOption))
}

func TestParseUnknownOptionLenientFallsToPositional(t *testing.T) {
	m := buildModel(t)
	s := sink.NewMapSink()
	err := Parse(m, s, []string{"-x", "1", "somefile"})
	require.NoError(t, err)
	posSpec, _ := m.Positional()
	assert.Equal(t, []any{"somefile"}, s.Elements(posSpec))
}

func TestParseTypeConversionFailure(t *testing.T) {
	m := buildModel(t)
	s := sink.NewMapSink()
	err := Parse(m, s, []string{"-x", "not-an-int"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, argerr.ErrTypeConversionFailure))
}

func TestParseMissingParameterValue(t *testing.T) {
	m := buildModel(t)
	s := sink.NewMapSink()
	err := Parse(m, s, []string{"-x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, argerr.ErrMissingParameter))
}

// TestParseConcurrentAgainstSharedModel exercises command.Model's
// documented thread-safety contract: many goroutines parsing different
// token sets against one shared *command.Model, each with its own Sink.
func TestParseConcurrentAgainstSharedModel(t *testing.T) {
	m := buildModel(t)

	var g errgroup.Group
	results := make([]*sink.MapSink, 50)
	for i := 0; i < 50; i++ {
		i := i
		g.Go(func() error {
			s := sink.NewMapSink()
			results[i] = s
			return Parse(m, s, []string{"-x", "1", "-v"})
		})
	}
	require.NoError(t, g.Wait())

	for _, s := range results {
		xSpec, _ := m.Lookup("-x")
		v, ok := s.Scalar(xSpec)
		require.True(t, ok)
		assert.Equal(t, 1, v)
	}
}
