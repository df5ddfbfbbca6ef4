// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package argerr holds the closed error taxonomy produced by command,
// parser, and help. Every exported sentinel is
// wrapped with contextual detail via fmt.Errorf's %w, so callers should use
// errors.Is(err, argerr.ErrXxx) rather than string matching.
package argerr

import "errors"

// Sentinels. Each is returned (wrapped) from exactly the site its doc
// comment names.
var (
	// ErrMissingParameter: arity-min not satisfied for a matched option,
	// or for a positional spec with min > 0 and fewer than min values.
	ErrMissingParameter = errors.New("argflag: missing parameter value")

	// ErrMissingRequiredOption: a required=true spec was never matched
	// and no help-flag spec triggered during the same parse.
	ErrMissingRequiredOption = errors.New("argflag: missing required option")

	// ErrTypeConversionFailure: a TypeConverter rejected a value.
	ErrTypeConversionFailure = errors.New("argflag: type conversion failure")

	// ErrUnknownOption: an option-shaped token matched no spec. Only
	// raised when command.Settings.StrictUnknownOptions (or
	// RejectUnknownPositionals, for the positional-less case) is enabled;
	// default behavior here is intentionally left optional.
	ErrUnknownOption = errors.New("argflag: unknown option")

	// ErrMissingTypeConverter: a spec's ElementType has no registered
	// converter. Detected the first time that spec is matched.
	ErrMissingTypeConverter = errors.New("argflag: no type converter registered")

	// ErrDuplicateParameterName: a declaration registered the same name
	// twice within one command.Model.
	ErrDuplicateParameterName = errors.New("argflag: duplicate parameter name")

	// ErrIllegalArgumentUsage: help.TextTable.AddRow was called with the
	// wrong number of column values, or a TRUNCATE column received a
	// value wider than its configured width.
	ErrIllegalArgumentUsage = errors.New("argflag: illegal argument usage")

	// ErrInvalidParameterSpec is an additive taxonomy member: a
	// ParameterSpec failed go-playground/validator struct validation, or
	// one of the struct-level invariants command.validateSpec checks
	// (arity min<=max, help-flag implies arity-0 boolean, at most one
	// positional spec).
	ErrInvalidParameterSpec = errors.New("argflag: invalid parameter spec")
)
