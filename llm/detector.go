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

package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/botobag/schemadiff/diff"
	"github.com/botobag/schemadiff/graphql"

	"github.com/go-playground/validator/v10"
	"github.com/json-iterator/go"
	"github.com/sashabaranov/go-openai"
)

const detectorSystemPrompt = "You are a helpful assistant that identifies breaking and non-breaking changes in GraphQL schemas."

const detectorPromptTemplate = `Given two versions of a GraphQL schema, identify ALL breaking and non-breaking
changes between them and format them as a JSON array of changes.

Schema Version 1:
%s

Schema Version 2:
%s

Ensure each change has a 'type', 'field', 'change', 'breaking' (true/false), and 'release_note'.

Type should always have the name of the type that the change was located in: example: type Name1.
For type level changes field is none.
For field-level or argument level changes, field should have the name of the field the change
was located in, and the Type should have the type name the feature belongs to.

The change message should refer the type and feature values if applicable.

The 'release_note' for each change should:
1. Describe the change in a short phrase.
2. Explicitly mention if it is breaking or non-breaking change, appending
the description sentence with 'this is a breaking (or non-breaking) change.'.
3. If possible, for breaking the changes, mention how it will affect future
queries, in a second sentence.
`

// detectedChange is a change as returned by the model.
type detectedChange struct {
	Type        string  `json:"type" validate:"required"`
	Field       *string `json:"field"`
	Change      string  `json:"change" validate:"required"`
	Breaking    *bool   `json:"breaking" validate:"required"`
	ReleaseNote string  `json:"release_note"`
}

var detectedChangeValidate = validator.New()

// Detector asks a language model for the changes between two schema texts.
type Detector struct {
	client *Client
}

// NewDetector creates a Detector.
func NewDetector(client *Client) *Detector {
	return &Detector{client}
}

// Detect implements report.ChangeDetector. A response that is not a JSON array of changes is
// reported as an Error of ErrKindExternal.
func (detector *Detector) Detect(ctx context.Context, v1 string, v2 string) ([]diff.Change, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: detectorSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(detectorPromptTemplate, v1, v2)},
	}

	content, err := detector.client.complete(ctx, "detect", messages, detector.client.config.DetectorTemperature)
	if err != nil {
		return nil, err
	}

	changes, err := decodeChanges(content)
	if err != nil {
		detector.client.logger.Error("unparseable change list from the language model", "error", err)
		return nil, graphql.NewError("language model returned malformed changes", err,
			graphql.Op("llm.detect"), graphql.ErrKindExternal)
	}
	return changes, nil
}

// decodeChanges extracts the JSON array of changes from the model's reply, which may come wrapped
// in a Markdown code fence tagged as json.
func decodeChanges(content string) ([]diff.Change, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimPrefix(strings.TrimSpace(content), "json")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	content = strings.TrimSpace(content)

	var detected []detectedChange
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(content, &detected); err != nil {
		return nil, err
	}

	changes := make([]diff.Change, len(detected))
	for i := range detected {
		change := &detected[i]
		if err := detectedChangeValidate.Struct(change); err != nil {
			return nil, fmt.Errorf("change %d: %w", i, err)
		}

		changes[i] = diff.Change{
			Type:        change.Type,
			Description: change.Change,
			Breaking:    *change.Breaking,
			ReleaseNote: change.ReleaseNote,
		}
		if field := change.Field; field != nil && !strings.EqualFold(*field, "none") {
			changes[i].Field = *field
		}
	}
	return changes, nil
}
