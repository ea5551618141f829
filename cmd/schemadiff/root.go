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
	"io"
	"log/slog"

	"github.com/botobag/schemadiff/config"
	"github.com/botobag/schemadiff/llm"
	"github.com/botobag/schemadiff/observability"
	"github.com/botobag/schemadiff/report"
	"github.com/botobag/schemadiff/summary"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// globalOptions are the flags shared by all commands.
type globalOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	options := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "schemadiff",
		Short: "Compare versions of a GraphQL schema and summarize the changes",
		Long: `schemadiff finds the changes between two versions of a GraphQL schema, tells breaking
changes from non-breaking ones and writes a summary suitable for release notes.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&options.configPath, "config", "",
		"path to a YAML configuration file")

	rootCmd.AddCommand(
		newCompareCmd(options),
		newServeCmd(options),
		newFormatCmd(),
	)
	return rootCmd
}

// app holds the collaborators wired from the configuration.
type app struct {
	config       config.Config
	logger       *slog.Logger
	metrics      *observability.Metrics
	orchestrator *report.Orchestrator
}

// newApp loads the configuration and wires the comparison pipeline. The language-model
// collaborators are only created when an API key is available; requests for the "llm" technique
// fail otherwise.
func newApp(options *globalOptions, logOutput io.Writer, registerer prometheus.Registerer) (*app, error) {
	cfg, err := config.Load(options.configPath)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logging.NewLogger(logOutput)
	metrics := observability.NewMetrics(registerer)

	var (
		detector   report.ChangeDetector
		summarizer summary.Summarizer
	)
	if cfg.LLM.Enabled() {
		client, err := llm.NewClient(cfg.LLM, metrics, logger)
		if err != nil {
			return nil, err
		}
		detector = llm.NewDetector(client)
		summarizer = llm.NewSummarizer(client)
	} else {
		logger.Debug("language-model techniques are disabled without an API key")
	}

	orchestrator, err := report.NewOrchestrator(report.Config{
		Generator: summary.NewGenerator(summarizer, logger),
		Detector:  detector,
		Metrics:   metrics,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		config:       cfg,
		logger:       logger,
		metrics:      metrics,
		orchestrator: orchestrator,
	}, nil
}
