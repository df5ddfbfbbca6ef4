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

	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/argflag/command"
	"github.com/AleutianAI/argflag/decl/yamlspec"
	"github.com/AleutianAI/argflag/help"
)

var watchSpec bool

func newHelpPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "help-preview",
		Short: "Render --spec's usage screen to stdout",
		RunE:  runHelpPreview,
	}
	cmd.Flags().BoolVar(&watchSpec, "watch", false, "re-render whenever --spec changes on disk")
	return cmd
}

func runHelpPreview(cmd *cobra.Command, args []string) error {
	if err := requireSpecPath(); err != nil {
		return err
	}

	if err := renderHelpPreview(); err != nil {
		return err
	}
	if !watchSpec {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(specPath); err != nil {
		return fmt.Errorf("watching %s: %w", specPath, err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := renderHelpPreview(); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, werr)
		}
	}
}

func renderHelpPreview() error {
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

	styled := isatty.IsTerminal(os.Stdout.Fd())
	return help.Usage(model, os.Stdout, help.WithStyled(styled))
}
