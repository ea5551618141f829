/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/botobag/schemadiff/diff"

	"github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	errParsingFailed    = errors.New("schemas could not be parsed")
	errBreakingDetected = errors.New("breaking changes detected")
)

type compareOptions struct {
	oldPath          string
	newPath          string
	diffTechnique    string
	summaryTechnique string
	failOnBreaking   bool
}

func newCompareCmd(global *globalOptions) *cobra.Command {
	options := &compareOptions{}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two schema files and print the report as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, global, options)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&options.oldPath, "old", "", "path to the old version of the schema")
	flags.StringVar(&options.newPath, "new", "", "path to the new version of the schema")
	flags.StringVar(&options.diffTechnique, "diff-technique", "",
		`technique that finds the changes: "algorithmic" or "llm"`)
	flags.StringVar(&options.summaryTechnique, "summary-technique", "",
		`technique that writes the summary: "algorithmic" or "llm"`)
	flags.BoolVar(&options.failOnBreaking, "fail-on-breaking", false,
		"exit with a non-zero status when a breaking change is found")
	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("new")

	return cmd
}

func runCompare(cmd *cobra.Command, global *globalOptions, options *compareOptions) error {
	app, err := newApp(global, cmd.ErrOrStderr(), prometheus.NewRegistry())
	if err != nil {
		return err
	}

	diffTechnique, err := diff.ParseTechnique(options.diffTechnique, app.config.Defaults.DiffTechnique)
	if err != nil {
		return err
	}
	summaryTechnique, err := diff.ParseTechnique(options.summaryTechnique, app.config.Defaults.SummaryTechnique)
	if err != nil {
		return err
	}

	v1, err := os.ReadFile(options.oldPath)
	if err != nil {
		return err
	}
	v2, err := os.ReadFile(options.newPath)
	if err != nil {
		return err
	}

	outcome, err := app.orchestrator.Run(cmd.Context(), string(v1), string(v2), diffTechnique, summaryTechnique)
	if err != nil {
		return err
	}

	output, err := jsoniter.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(output))

	switch {
	case outcome.ParsingFailure != nil:
		return errParsingFailed
	case options.failOnBreaking && outcome.Report != nil:
		breaking, _ := diff.Partition(outcome.Report.Changes.Changes())
		if len(breaking) > 0 {
			return errBreakingDetected
		}
	}
	return nil
}
