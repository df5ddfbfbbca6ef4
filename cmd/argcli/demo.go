// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/argflag/argerr"
	"github.com/AleutianAI/argflag/command"
	"github.com/AleutianAI/argflag/decl/yamlspec"
	"github.com/AleutianAI/argflag/diag"
	"github.com/AleutianAI/argflag/parser"
	"github.com/AleutianAI/argflag/sink"
)

var (
	parseAttemptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "argcli_parse_attempts_total",
		Help: "Total number of demo parse invocations.",
	})
	parseFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "argcli_parse_failures_total",
		Help: "Total number of demo parse invocations that failed, by error kind.",
	}, []string{"kind"})
)

var metricsAddr string

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo -- [args...]",
		Short: "Parse a trailing argument list against --spec and print the resolved values",
		RunE:  runDemo,
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090) before parsing")
	return cmd
}

func runDemo(cmd *cobra.Command, args []string) error {
	if err := requireSpecPath(); err != nil {
		return err
	}

	if metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			_ = http.ListenAndServe(metricsAddr, mux)
		}()
	}

	data, err := os.ReadFile(specPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", specPath, err)
	}
	specs, opts, err := yamlspec.Load(data)
	if err != nil {
		return err
	}
	model, err := command.New(specs, opts...)
	if err != nil {
		return err
	}

	parseAttemptsTotal.Inc()
	ctx := diag.NewContext(context.Background())
	s := sink.NewMapSink()
	if err := parser.ParseContext(ctx, model, s, args); err != nil {
		parseFailuresTotal.WithLabelValues(errorKind(err)).Inc()
		return err
	}

	for _, spec := range model.Specs() {
		if spec.ValueType.IsAggregate() {
			if elems := s.Elements(spec); len(elems) > 0 {
				fmt.Printf("%s: %v\n", fieldLabel(spec), elems)
			}
			continue
		}
		if v, ok := s.Scalar(spec); ok {
			fmt.Printf("%s: %v\n", fieldLabel(spec), v)
		}
	}
	return nil
}

func fieldLabel(spec interface{ PrimaryName() string }) string {
	if name := spec.PrimaryName(); name != "" {
		return name
	}
	return "positional"
}

// errorKind classifies err against the closed taxonomy for the
// argcli_parse_failures_total metric's label, falling back to "other" for
// anything outside it (a declaration-time error from command.New, say).
func errorKind(err error) string {
	switch {
	case errors.Is(err, argerr.ErrMissingParameter):
		return "missing_parameter"
	case errors.Is(err, argerr.ErrMissingRequiredOption):
		return "missing_required_option"
	case errors.Is(err, argerr.ErrTypeConversionFailure):
		return "type_conversion_failure"
	case errors.Is(err, argerr.ErrUnknownOption):
		return "unknown_option"
	case errors.Is(err, argerr.ErrMissingTypeConverter):
		return "missing_type_converter"
	default:
		return "other"
	}
}
