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

// Package summary turns the changes found between two schema versions into a release summary.
package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/botobag/schemadiff/diff"
	"github.com/botobag/schemadiff/graphql"

	"golang.org/x/sync/errgroup"
)

const (
	// NoDifferences is the summary of a comparison without changes.
	NoDifferences = "No differences between the schemas."

	// Unsuccessful is the summary of a comparison that failed.
	Unsuccessful = "Unsuccessful identification of schema differences."
)

// ReleaseNotes carries the release summary.
type ReleaseNotes struct {
	Summary string `json:"summary"`
}

// Summarizer writes prose for a batch of change phrases separated by newlines.
type Summarizer interface {
	Summarize(ctx context.Context, phrases string) (string, error)
}

// Generator writes release summaries.
type Generator struct {
	summarizer Summarizer
	logger     *slog.Logger
}

// NewGenerator creates a Generator. summarizer may be nil in which case only the algorithmic
// technique is available. A nil logger selects slog.Default().
func NewGenerator(summarizer Summarizer, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		summarizer: summarizer,
		logger:     logger,
	}
}

// Generate writes the release summary of result. With diff.LanguageModel the breaking and the
// non-breaking phrases are sent to the Summarizer in two concurrent requests.
func (generator *Generator) Generate(ctx context.Context, result diff.Result, technique diff.Technique) (ReleaseNotes, error) {
	if result.IsFault() {
		return ReleaseNotes{Summary: Unsuccessful}, nil
	}

	changes := result.Changes()
	if len(changes) == 0 {
		return ReleaseNotes{Summary: NoDifferences}, nil
	}

	breaking, nonBreaking := diff.Partition(changes)
	breakingPhrases := phrases(breaking)
	nonBreakingPhrases := phrases(nonBreaking)

	var breakingText, nonBreakingText string
	switch technique {
	case diff.Algorithmic:
		breakingText = strings.Join(breakingPhrases, ", ")
		nonBreakingText = strings.Join(nonBreakingPhrases, ", ")

	case diff.LanguageModel:
		var err error
		breakingText, nonBreakingText, err = generator.summarize(ctx, breakingPhrases, nonBreakingPhrases)
		if err != nil {
			return ReleaseNotes{}, err
		}

	default:
		return ReleaseNotes{}, graphql.NewError(fmt.Sprintf(`unknown summarization technique "%s"`, technique),
			graphql.Op("summary.Generate"))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "This release introduces %d breaking change(s) and %d non-breaking change(s): ",
		len(breaking), len(nonBreaking))
	if len(breaking) > 0 {
		b.WriteString("Breaking changes: ")
		b.WriteString(breakingText)
		b.WriteString(". ")
	}
	if len(nonBreaking) > 0 {
		b.WriteString("Non-breaking changes: ")
		b.WriteString(nonBreakingText)
		b.WriteString(".")
	}

	return ReleaseNotes{Summary: b.String()}, nil
}

func phrases(changes []diff.Change) []string {
	result := make([]string, len(changes))
	for i, change := range changes {
		result[i] = change.Phrase()
	}
	return result
}

// summarize asks the Summarizer for the prose of both batches of phrases. An empty batch is not
// sent.
func (generator *Generator) summarize(
	ctx context.Context,
	breakingPhrases []string,
	nonBreakingPhrases []string) (breakingText string, nonBreakingText string, err error) {

	if generator.summarizer == nil {
		return "", "", graphql.NewError("language-model summarization is not configured",
			graphql.Op("summary.Generate"), graphql.ErrKindExternal)
	}

	g, gCtx := errgroup.WithContext(ctx)
	request := func(batch []string, text *string) {
		if len(batch) == 0 {
			return
		}
		g.Go(func() error {
			prose, err := generator.summarizer.Summarize(gCtx, strings.Join(batch, "\n"))
			if err != nil {
				return err
			}
			*text = strings.TrimSpace(prose)
			return nil
		})
	}
	request(breakingPhrases, &breakingText)
	request(nonBreakingPhrases, &nonBreakingText)

	if err := g.Wait(); err != nil {
		generator.logger.Error("release summary could not be written", "error", err)
		return "", "", graphql.NewError("unable to summarize changes", err,
			graphql.Op("summary.Generate"), graphql.ErrKindExternal)
	}
	return breakingText, nonBreakingText, nil
}
