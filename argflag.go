// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package argflag is the convenience entry point gluing command, parser,
// and sink together for callers who don't need a standalone command.Model
// they can reuse across multiple parses. Host programs that parse more than
// once, or that need the model for help rendering, should build a
// command.Model with command.New directly instead.
package argflag

import (
	"context"

	"github.com/AleutianAI/argflag/command"
	"github.com/AleutianAI/argflag/paramspec"
	"github.com/AleutianAI/argflag/parser"
	"github.com/AleutianAI/argflag/sink"
)

// Parse indexes specs into a command.Model and runs one parse of args
// against it, writing converted values through s. It returns whatever
// command.New or parser.ParseContext returns on failure.
func Parse(ctx context.Context, specs []paramspec.ParameterSpec, s sink.Sink, args []string, opts ...command.Option) error {
	model, err := command.New(specs, opts...)
	if err != nil {
		return err
	}
	return parser.ParseContext(ctx, model, s, args)
}
