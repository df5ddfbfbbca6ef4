// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/argflag/command"
	"github.com/AleutianAI/argflag/decl/yamlspec"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load --spec and report whether its declarations build a valid command.Model",
		RunE:  runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	if err := requireSpecPath(); err != nil {
		return err
	}

	data, err := os.ReadFile(specPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", specPath, err)
	}
	specs, opts, err := yamlspec.Load(data)
	if err != nil {
		return fmt.Errorf("%s: %w", specPath, err)
	}
	model, err := command.New(specs, opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", specPath, err)
	}

	options := len(model.Specs())
	_, hasPositional := model.Positional()
	if hasPositional {
		options--
	}
	fmt.Printf("%s: ok, %d option(s)", specPath, options)
	if hasPositional {
		fmt.Print(", 1 positional")
	}
	fmt.Println()
	return nil
}
