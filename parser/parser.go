// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package parser implements the token-classification state machine: it
// walks a flat token sequence left to right, matches tokens against a
// command.Model's NamedOption specs (exact match, separator-attached
// value, short-option clustering), draws value tokens per each matched
// spec's arity, converts them, and writes results through a sink.Sink.
// Unmatched tokens are collected by the command's positional spec, if any.
//
// Thread Safety: Parse and ParseContext are safe to call concurrently
// against the same *command.Model as long as each call is given its own
// sink.Sink — see command.Model's doc comment.
package parser

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AleutianAI/argflag/argerr"
	"github.com/AleutianAI/argflag/command"
	"github.com/AleutianAI/argflag/diag"
	"github.com/AleutianAI/argflag/paramspec"
	"github.com/AleutianAI/argflag/secret"
	"github.com/AleutianAI/argflag/sink"
)

// Parse runs one parse of tokens against model, writing converted values
// through s. It is equivalent to ParseContext(context.Background(), ...).
func Parse(model *command.Model, s sink.Sink, tokens []string) error {
	return ParseContext(context.Background(), model, s, tokens)
}

// ParseContext is Parse with an explicit context, used only to carry a
// diag logger (and any caller-defined values) through to the converter
// call sites. The parser never blocks, suspends, or checks ctx.Done — §5's
// "no cancellation model" is intentional: the only way to abort a parse is
// to return an error from a registered converter.
func ParseContext(ctx context.Context, model *command.Model, s sink.Sink, tokens []string) error {
	logger := diag.Logger(ctx)
	logger.Debug("parse starting", slog.Int("tokens", len(tokens)))

	st := &state{
		model:  model,
		sink:   s,
		logger: logger,
	}
	if positional, ok := model.Positional(); ok {
		st.positionalSpec = &positional
	}

	i := 0
	afterDoubleDash := false
	for i < len(tokens) {
		token := tokens[i]

		if afterDoubleDash {
			if err := st.consumePositional(token); err != nil {
				return err
			}
			i++
			continue
		}

		if token == "--" {
			afterDoubleDash = true
			i++
			continue
		}

		newI, matched, err := st.tryMatchAndConsume(tokens, i)
		if err != nil {
			return err
		}
		if matched {
			i = newI
			continue
		}

		if st.looksOptionLike(token) && model.Settings.StrictUnknownOptions {
			return fmt.Errorf("argflag: %w: %q", argerr.ErrUnknownOption, token)
		}
		if err := st.consumePositional(token); err != nil {
			return err
		}
		i++
	}

	if st.positionalSpec != nil && st.positionalCount < st.positionalSpec.Arity.Min {
		return fmt.Errorf("argflag: %w: positional parameter needs at least %d value(s), got %d",
			argerr.ErrMissingParameter, st.positionalSpec.Arity.Min, st.positionalCount)
	}

	if !st.helpTriggered() {
		for _, spec := range model.RequiredSpecs() {
			if !s.HasBeenSet(spec) {
				return fmt.Errorf("argflag: %w: %q", argerr.ErrMissingRequiredOption, spec.PrimaryName())
			}
		}
	}

	logger.Debug("parse complete")
	return nil
}

// state holds the per-parse bookkeeping that must not leak into the
// immutable command.Model: the positional spec's running count (arity
// enforcement needs the count even though the Sink itself does not track
// it), and cached references used throughout one call to Parse.
type state struct {
	model  *command.Model
	sink   sink.Sink
	logger *slog.Logger

	positionalSpec  *paramspec.ParameterSpec
	positionalCount int
}

// consumePositional converts and writes one token classified as
// positional. When the command declares no positional spec, the token is
// silently discarded unless command.Settings.RejectUnknownPositionals is
// set, per the resolved "extra positionals" open question.
func (st *state) consumePositional(token string) error {
	if st.positionalSpec == nil {
		if st.model.Settings.RejectUnknownPositionals {
			return fmt.Errorf("argflag: %w: unexpected positional argument %q", argerr.ErrUnknownOption, token)
		}
		return nil
	}
	spec := *st.positionalSpec
	isAggregate := spec.ValueType.IsAggregate()
	if err := st.writeValue(spec, token, st.positionalCount, isAggregate); err != nil {
		return err
	}
	st.positionalCount++
	return nil
}

func (st *state) helpTriggered() bool {
	for _, spec := range st.model.Specs() {
		if spec.HelpFlag && st.sink.HasBeenSet(spec) {
			return true
		}
	}
	return false
}

// looksOptionLike reports whether token shares a leading rune with any
// declared NamedOption name, used only to decide whether
// StrictUnknownOptions should treat an unmatched token as an error rather
// than silently falling through to positional handling. Prefix characters
// are not fixed by this library (§6), so "option-like" is judged against
// the specific command.Model being parsed, not a hardcoded set like "-"/"--".
func (st *state) looksOptionLike(token string) bool {
	if token == "" {
		return false
	}
	first := []rune(token)[0]
	for _, spec := range st.model.Specs() {
		if spec.Kind != paramspec.NamedOption {
			continue
		}
		for _, name := range spec.Names {
			if len(name) > 0 && []rune(name)[0] == first {
				return true
			}
		}
	}
	return false
}

// tryMatchAndConsume attempts to match tokens[i] as a NamedOption (exact
// name, separator-attached value, or short-option cluster) and, on match,
// draws and converts its values. It returns the new cursor position and
// matched == true on success; matched == false means the caller should
// treat tokens[i] as positional instead.
func (st *state) tryMatchAndConsume(tokens []string, i int) (newI int, matched bool, err error) {
	token := tokens[i]

	if spec, ok := st.model.Lookup(token); ok {
		return st.consumeNamedMatch(spec, tokens, i+1, false, "")
	}

	if spec, inline, ok := matchPrefixSeparator(st.model, token); ok {
		return st.consumeNamedMatch(spec, tokens, i+1, true, inline)
	}

	if newI2, ok, err2 := st.tryCluster(tokens, i); ok || err2 != nil {
		return newI2, ok, err2
	}

	return i, false, nil
}

// matchPrefixSeparator looks for a declared name n such that token starts
// with n followed immediately by the command's separator string, and
// returns the text after the separator as the inline value. The longest
// matching name wins, so a model declaring both "--out" and "--output"
// resolves "--output=x" against "--output", not "--out".
func matchPrefixSeparator(model *command.Model, token string) (paramspec.ParameterSpec, string, bool) {
	sep := model.Settings.Separator
	var best paramspec.ParameterSpec
	bestLen := -1
	found := false
	for _, spec := range model.Specs() {
		if spec.Kind != paramspec.NamedOption {
			continue
		}
		for _, name := range spec.Names {
			prefix := name + sep
			if strings.HasPrefix(token, prefix) && len(name) > bestLen {
				best = spec
				bestLen = len(name)
				found = true
			}
		}
	}
	if !found {
		return paramspec.ParameterSpec{}, "", false
	}
	return best, token[bestLen+len(sep):], true
}

// tryCluster attempts to interpret tokens[i] as a clustered short-option
// token ("-rvoout"): a two-rune short name followed by one or more further
// characters, each itself re-examined as a short name. Flags (arity-0)
// extend the cluster; the first value-taking short name (arity.Max > 0)
// takes the entire remainder as its inline value and ends the cluster. The
// whole token is validated before any Sink write is committed, so an
// invalid trailing character leaves no partial state: ok is false and the
// caller falls back to treating the full token as positional.
func (st *state) tryCluster(tokens []string, i int) (newI int, ok bool, err error) {
	token := tokens[i]
	runes := []rune(token)
	if len(runes) < 3 {
		return i, false, nil
	}
	prefixRune := runes[0]
	first2 := string(runes[:2])
	if _, exists := st.model.Lookup(first2); !exists || !paramspec.IsShortName(first2) {
		return i, false, nil
	}

	spec, _ := st.model.Lookup(first2)
	remainder := runes[2:]
	var flagSpecs []paramspec.ParameterSpec
	var valueSpec *paramspec.ParameterSpec
	var inlineValue string

	for {
		if spec.Arity.Max != 0 {
			valueSpec = &spec
			inlineValue = string(remainder)
			break
		}
		flagSpecs = append(flagSpecs, spec)
		if len(remainder) == 0 {
			break
		}
		candidate := string(prefixRune) + string(remainder[0])
		next, exists := st.model.Lookup(candidate)
		if !exists {
			return i, false, nil
		}
		remainder = remainder[1:]
		spec = next
	}

	for _, f := range flagSpecs {
		if err := st.setFlagPresence(f); err != nil {
			return i, false, err
		}
	}

	if valueSpec == nil {
		return i + 1, true, nil
	}
	return st.consumeNamedMatch(*valueSpec, tokens, i+1, true, inlineValue)
}

// setFlagPresence records a matched arity-0 option. Boolean-typed flags
// record "true"; any other valueType at arity 0 is accepted with no Sink
// write, since there is no token to convert, so HasBeenSet stays false
// for it.
func (st *state) setFlagPresence(spec paramspec.ParameterSpec) error {
	if spec.ValueType == paramspec.Bool {
		return st.sink.SetScalar(spec, true)
	}
	return nil
}

// consumeNamedMatch draws spec's values starting at cursor i (the token
// after the matched name), given any inline value already attached to the
// name itself, then converts and writes them through the Sink.
func (st *state) consumeNamedMatch(spec paramspec.ParameterSpec, tokens []string, i int, hasInline bool, inline string) (newI int, matched bool, err error) {
	if hasInline && spec.Arity.Max == 0 {
		b, convErr := st.model.Converters.Convert(paramspec.Bool, inline, nil)
		if convErr != nil {
			return i, false, fmt.Errorf("argflag: %w: %q is not true or false for option %q", argerr.ErrTypeConversionFailure, inline, spec.PrimaryName())
		}
		if err := st.sink.SetScalar(spec, b); err != nil {
			return i, false, err
		}
		return i, true, nil
	}

	var values []string
	if hasInline {
		values = append(values, inline)
	}

	for len(values) < spec.Arity.Min {
		if i >= len(tokens) {
			return i, false, fmt.Errorf("argflag: %w: option %q requires at least %d value(s), got %d",
				argerr.ErrMissingParameter, spec.PrimaryName(), spec.Arity.Min, len(values))
		}
		values = append(values, tokens[i])
		i++
	}

	if spec.ValueType == paramspec.Bool && spec.Arity.Min == 0 && spec.Arity.Max != 0 && len(values) == 0 {
		if i < len(tokens) {
			if _, boolErr := st.model.Converters.Convert(paramspec.Bool, tokens[i], nil); boolErr == nil {
				values = append(values, tokens[i])
				i++
			}
		}
	} else {
		for len(values) < spec.Arity.Max {
			if i >= len(tokens) {
				break
			}
			next := tokens[i]
			if next == "--" || looksLikeOption(st.model, next) {
				break
			}
			values = append(values, next)
			i++
		}
	}

	if len(values) == 0 && spec.ValueType == paramspec.Bool {
		if err := st.sink.SetScalar(spec, true); err != nil {
			return i, false, err
		}
		return i, true, nil
	}

	isAggregate := spec.ValueType.IsAggregate()
	for idx, raw := range values {
		if err := st.writeValue(spec, raw, idx, isAggregate); err != nil {
			return i, false, err
		}
	}

	return i, true, nil
}

// looksLikeOption reports whether token would be classified as a
// NamedOption by the name-matching rules, used by the variable-upper value
// consumption loop to stop early. It does not attempt cluster validation —
// an exact or prefix-separator match, or a bare recognized short name, is
// enough to call a token "option-shaped" for this purpose.
func looksLikeOption(model *command.Model, token string) bool {
	if _, ok := model.Lookup(token); ok {
		return true
	}
	if _, _, ok := matchPrefixSeparator(model, token); ok {
		return true
	}
	runes := []rune(token)
	if len(runes) >= 2 {
		first2 := string(runes[:2])
		if _, ok := model.Lookup(first2); ok && paramspec.IsShortName(first2) {
			return true
		}
	}
	return false
}

// stripQuotes removes one layer of surrounding double quotes, matching the
// single-layer unquoting §4.3 requires of every consumed value token.
func stripQuotes(token string) string {
	if len(token) >= 2 && strings.HasPrefix(token, `"`) && strings.HasSuffix(token, `"`) {
		return token[1 : len(token)-1]
	}
	return token
}

// writeValue converts raw per spec's elementType (or valueType for a
// scalar spec) and writes it through the Sink, at position idx within this
// match's value list (used only to build the "parameter[idx]"
// aggregate-element error variant).
func (st *state) writeValue(spec paramspec.ParameterSpec, raw string, idx int, isAggregate bool) error {
	token := stripQuotes(raw)
	vt := spec.ValueType
	if isAggregate {
		vt = spec.ElementType
	}

	if vt == paramspec.Secret {
		val := secret.New(token)
		return st.writeConverted(spec, val, idx, isAggregate)
	}

	converted, err := st.model.Converters.Convert(vt, token, spec.EnumValues)
	if err != nil {
		return st.wrapConversionError(spec, vt, token, idx, isAggregate, err)
	}
	return st.writeConverted(spec, converted, idx, isAggregate)
}

func (st *state) writeConverted(spec paramspec.ParameterSpec, value any, idx int, isAggregate bool) error {
	if isAggregate {
		return st.sink.AppendElement(spec, value)
	}
	return st.sink.SetScalar(spec, value)
}

// wrapConversionError builds the final TypeConversionFailure message. Time
// values get a literal passthrough of the converter's own "is not a
// HH:mm[:ss[.SSS]] time" message immediately followed by "for option
// '<name>'" — the Time converter's error already names the rejected shape,
// so the generic "could not convert ... to <type>" template would be
// redundant and would split the shape description from the option name.
func (st *state) wrapConversionError(spec paramspec.ParameterSpec, vt paramspec.ValueType, token string, idx int, isAggregate bool, cause error) error {
	target := fmt.Sprintf("option '%s'", spec.PrimaryName())
	if isAggregate && spec.Kind == paramspec.Positional {
		target = fmt.Sprintf("parameter[%d]", idx)
	}

	if errLooksLikeMissingConverter(cause) {
		return fmt.Errorf("argflag: %w: %s", argerr.ErrMissingTypeConverter, cause.Error())
	}

	if vt == paramspec.Time {
		return fmt.Errorf("argflag: %w: %s for %s", argerr.ErrTypeConversionFailure, cause.Error(), target)
	}

	return fmt.Errorf("argflag: %w: Could not convert '%s' to %s for %s: %v",
		argerr.ErrTypeConversionFailure, token, vt, target, cause)
}

// errLooksLikeMissingConverter distinguishes convert.Registry's
// "no converter registered" sentinel error from an ordinary conversion
// rejection, without convert exporting a type parser would need to import
// solely for a type assertion.
func errLooksLikeMissingConverter(err error) bool {
	return strings.HasPrefix(err.Error(), "no converter registered for type")
}
