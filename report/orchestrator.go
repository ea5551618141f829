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

// Package report runs a schema comparison from the two schema texts to the final report.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/botobag/schemadiff/diff"
	"github.com/botobag/schemadiff/graphql"
	"github.com/botobag/schemadiff/graphql/token"
	"github.com/botobag/schemadiff/graphql/typegraph"
	"github.com/botobag/schemadiff/observability"
	"github.com/botobag/schemadiff/summary"
)

// ChangeDetector finds the changes between two schema texts without the rule-based comparators.
type ChangeDetector interface {
	Detect(ctx context.Context, v1 string, v2 string) ([]diff.Change, error)
}

// Config specifies the collaborators of an Orchestrator.
type Config struct {
	// Generator writes release summaries; required.
	Generator *summary.Generator

	// Detector serves diff.LanguageModel. Runs requesting it fail when nil.
	Detector ChangeDetector

	// Metrics is optional.
	Metrics *observability.Metrics

	// Logger is used when the context of a run carries none. Default to slog.Default().
	Logger *slog.Logger
}

// Orchestrator runs comparisons. It is safe for concurrent use.
type Orchestrator struct {
	generator *summary.Generator
	detector  ChangeDetector
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewOrchestrator creates an Orchestrator from config.
func NewOrchestrator(config Config) (*Orchestrator, error) {
	if config.Generator == nil {
		return nil, graphql.NewError("release summary generator is required", graphql.Op("report.NewOrchestrator"))
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		generator: config.Generator,
		detector:  config.Detector,
		metrics:   config.Metrics,
		logger:    logger,
	}, nil
}

// Run compares two versions of a schema.
//
// Texts that differ only in whitespace and texts that describe the same type graph produce a report
// without changes. When either text cannot be parsed, the outcome is a ParsingFailure and neither
// change detection nor summarization runs. Otherwise changes are found with diffTechnique and
// summarized with summaryTechnique.
//
// Errors are returned only when a language-model collaborator failed (ErrKindExternal) or a
// technique is not available.
func (o *Orchestrator) Run(
	ctx context.Context,
	v1 string,
	v2 string,
	diffTechnique diff.Technique,
	summaryTechnique diff.Technique) (Outcome, error) {

	logger := observability.LoggerFrom(ctx, o.logger).With(
		"diff_technique", diffTechnique.String(),
		"summary_technique", summaryTechnique.String())

	if collapseWhitespace(v1) == collapseWhitespace(v2) {
		logger.Info("schema texts are identical")
		o.metrics.ObserveComparison(diffTechnique.String(), observability.OutcomeIdentical)
		return o.summarize(ctx, diff.Succeeded(nil), summaryTechnique)
	}

	graphV1, errV1 := parseSchema("schema_v1", v1)
	graphV2, errV2 := parseSchema("schema_v2", v2)
	if failure := parsingFailure(v1, v2, errV1, errV2); failure != nil {
		logger.Error(failure.Message, "errors", failure.Errors)
		o.metrics.ObserveComparison(diffTechnique.String(), observability.OutcomeParsingFailed)
		return Outcome{ParsingFailure: failure}, nil
	}

	if typegraph.Equal(graphV1, graphV2) {
		logger.Info("schemas are structurally equal")
		o.metrics.ObserveComparison(diffTechnique.String(), observability.OutcomeIdentical)
		return o.summarize(ctx, diff.Succeeded(nil), summaryTechnique)
	}

	var result diff.Result
	switch diffTechnique {
	case diff.Algorithmic:
		result = diff.Compare(graphV1, graphV2)
		if fault := result.Fault(); fault != nil {
			logger.Error("schema differences could not be identified", "error", fault.Err)
		} else {
			logger.Info("schema differences identified", "changes", len(result.Changes()))
		}

	case diff.LanguageModel:
		if o.detector == nil {
			o.metrics.ObserveComparison(diffTechnique.String(), observability.OutcomeError)
			return Outcome{}, graphql.NewError("language-model change detection is not configured",
				graphql.Op("report.Run"), graphql.ErrKindExternal)
		}
		changes, err := o.detector.Detect(ctx, v1, v2)
		if err != nil {
			logger.Error("language-model change detection failed", "error", err)
			o.metrics.ObserveComparison(diffTechnique.String(), observability.OutcomeError)
			return Outcome{}, graphql.NewError("unable to detect schema changes", err,
				graphql.Op("report.Run"), graphql.ErrKindExternal)
		}
		result = diff.Succeeded(changes)

	default:
		o.metrics.ObserveComparison(diffTechnique.String(), observability.OutcomeError)
		return Outcome{}, graphql.NewError(fmt.Sprintf(`unknown diff technique "%s"`, diffTechnique),
			graphql.Op("report.Run"))
	}

	outcome, err := o.summarize(ctx, result, summaryTechnique)
	switch {
	case err != nil:
		o.metrics.ObserveComparison(diffTechnique.String(), observability.OutcomeError)
	case result.IsFault():
		o.metrics.ObserveComparison(diffTechnique.String(), observability.OutcomeFault)
	default:
		o.metrics.ObserveComparison(diffTechnique.String(), observability.OutcomeChanges)
		breaking, nonBreaking := diff.Partition(result.Changes())
		o.metrics.ObserveChanges(len(breaking), len(nonBreaking))
	}
	return outcome, err
}

func (o *Orchestrator) summarize(ctx context.Context, result diff.Result, technique diff.Technique) (Outcome, error) {
	notes, err := o.generator.Generate(ctx, result, technique)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Report: &Report{
			Changes:      result,
			ReleaseNotes: notes,
		},
	}, nil
}

// collapseWhitespace replaces every run of whitespace with one space and trims the ends.
func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func parseSchema(name string, text string) (*typegraph.TypeGraph, error) {
	return typegraph.ParseSource(token.NewSource(name, strings.ReplaceAll(text, "\r\n", "\n")))
}

func parsingFailure(v1, v2 string, errV1, errV2 error) *ParsingFailure {
	switch {
	case errV1 != nil && errV2 != nil:
		return &ParsingFailure{
			Message: "Neither of the 2 GraphQL schema versions could be parsed",
			Schemas: []string{v1, v2},
			Errors:  []error{errV1, errV2},
		}
	case errV1 != nil:
		return &ParsingFailure{
			Message: "Version 1 of the GraphQL schema could not be parsed",
			Schemas: []string{v1},
			Errors:  []error{errV1},
		}
	case errV2 != nil:
		return &ParsingFailure{
			Message: "Version 2 of the GraphQL schema could not be parsed",
			Schemas: []string{v2},
			Errors:  []error{errV2},
		}
	}
	return nil
}
