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
	"strings"

	"github.com/sashabaranov/go-openai"
)

const summarizerPromptTemplate = "Here are some sentences describing changes in a GraphQL schema:\n" +
	"{schema_changes}\n" +
	"Combine these changes into one or two coherent descriptions of the overall schema updates."

// Summarizer asks a language model to combine change phrases into prose.
type Summarizer struct {
	client *Client
}

// NewSummarizer creates a Summarizer.
func NewSummarizer(client *Client) *Summarizer {
	return &Summarizer{client}
}

// Summarize implements summary.Summarizer.
func (summarizer *Summarizer) Summarize(ctx context.Context, phrases string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleUser,
			Content: strings.Replace(summarizerPromptTemplate, "{schema_changes}", phrases, 1),
		},
	}

	content, err := summarizer.client.complete(ctx, "summarize", messages,
		summarizer.client.config.SummarizerTemperature)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}
