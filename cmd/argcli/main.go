// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Command argcli is a reference CLI exercising the argflag stack end to
// end: it loads a YAML parameter declaration (decl/yamlspec), builds a
// command.Model, and either parses a trailing argument list against it
// (demo), checks a declaration file for errors (validate), or renders its
// usage screen (help-preview). cobra is used only for argcli's own outer
// shell — demo's inner argument list is parsed by this module's own
// parser, never by cobra's flag set.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var specPath string

func main() {
	root := &cobra.Command{
		Use:   "argcli",
		Short: "Reference CLI for the argflag argument-parsing library",
	}
	root.PersistentFlags().StringVar(&specPath, "spec", "", "path to a YAML parameter declaration file (required)")

	root.AddCommand(newDemoCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newHelpPreviewCmd())

	if err := root.Execute(); err != nil {
		slog.Error("argcli failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func requireSpecPath() error {
	if specPath == "" {
		return fmt.Errorf("--spec is required")
	}
	return nil
}
