// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package help

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AleutianAI/argflag/paramspec"
)

func TestSortByShortestOptionNameOrdersNamedBeforePositional(t *testing.T) {
	named := paramspec.ParameterSpec{Kind: paramspec.NamedOption, Names: []string{"-o"}}
	positional := paramspec.ParameterSpec{Kind: paramspec.Positional}
	assert.True(t, SortByShortestOptionName(named, positional))
	assert.False(t, SortByShortestOptionName(positional, named))
}

func TestSortByShortestOptionNameTiesByDeclarationOrderNotAlphabetic(t *testing.T) {
	specs := []paramspec.ParameterSpec{
		{Kind: paramspec.NamedOption, Names: []string{"--zeta"}},
		{Kind: paramspec.NamedOption, Names: []string{"-b"}, DeclarationOrder: 1},
		{Kind: paramspec.NamedOption, Names: []string{"-a"}, DeclarationOrder: 0},
	}
	sort.SliceStable(specs, func(i, j int) bool { return SortByShortestOptionName(specs[i], specs[j]) })
	// "-b" and "-a" are both length-2, so the tie is broken by
	// DeclarationOrder (0 before 1), not by the alphabetically-earlier
	// name: "-b" (order 1) keeps sorting after "-a" (order 0) even
	// though "-a" would also win lexically here, and would still win on
	// DeclarationOrder alone if the names were reversed.
	assert.Equal(t, "-a", specs[0].PrimaryName())
	assert.Equal(t, "-b", specs[1].PrimaryName())
	assert.Equal(t, "--zeta", specs[2].PrimaryName())
}

func TestSortByShortestOptionNameTiesIgnoreAlphabeticOrder(t *testing.T) {
	specs := []paramspec.ParameterSpec{
		{Kind: paramspec.NamedOption, Names: []string{"-z"}, DeclarationOrder: 0},
		{Kind: paramspec.NamedOption, Names: []string{"-a"}, DeclarationOrder: 1},
	}
	sort.SliceStable(specs, func(i, j int) bool { return SortByShortestOptionName(specs[i], specs[j]) })
	// "-z" was declared first, so it sorts first despite "-a" being
	// alphabetically earlier: proof the tie-break is declaration order,
	// not lexical order.
	assert.Equal(t, "-z", specs[0].PrimaryName())
	assert.Equal(t, "-a", specs[1].PrimaryName())
}

func TestSortByOptionArityAndName(t *testing.T) {
	specs := []paramspec.ParameterSpec{
		{Kind: paramspec.NamedOption, Names: []string{"-c"}, Arity: paramspec.UnboundedArity(0)},
		{Kind: paramspec.NamedOption, Names: []string{"-b"}, Arity: paramspec.FixedArity(1)},
		{Kind: paramspec.NamedOption, Names: []string{"-a"}, Arity: paramspec.FixedArity(0)},
	}
	sort.SliceStable(specs, func(i, j int) bool { return SortByOptionArityAndName(specs[i], specs[j]) })
	// Ordered by arity.max ascending first: -a (max 0), then -b (max 1),
	// then -c (max unbounded) — -c sorts last despite sharing arity.min
	// with -a, because max is compared before min.
	assert.Equal(t, "-a", specs[0].PrimaryName())
	assert.Equal(t, "-b", specs[1].PrimaryName())
	assert.Equal(t, "-c", specs[2].PrimaryName())
}

func TestShortestFirstIsAliasForSortByShortestOptionName(t *testing.T) {
	a := paramspec.ParameterSpec{Kind: paramspec.NamedOption, Names: []string{"-a"}}
	b := paramspec.ParameterSpec{Kind: paramspec.NamedOption, Names: []string{"--bbb"}}
	assert.Equal(t, SortByShortestOptionName(a, b), ShortestFirst(a, b))
}
