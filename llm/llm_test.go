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

package llm_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/botobag/schemadiff/config"
	"github.com/botobag/schemadiff/diff"
	"github.com/botobag/schemadiff/graphql"
	"github.com/botobag/schemadiff/internal/testutil"
	"github.com/botobag/schemadiff/llm"
	"github.com/botobag/schemadiff/observability"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sashabaranov/go-openai"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// fakeCompleter replays canned replies and records requests.
type fakeCompleter struct {
	mutex    sync.Mutex
	replies  []string
	errs     []error
	requests []openai.ChatCompletionRequest
}

func (c *fakeCompleter) CreateChatCompletion(
	ctx context.Context,
	request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.requests = append(c.requests, request)
	if len(c.errs) > 0 {
		err := c.errs[0]
		c.errs = c.errs[1:]
		if err != nil {
			return openai.ChatCompletionResponse{}, err
		}
	}

	reply := ""
	if len(c.replies) > 0 {
		reply = c.replies[0]
		c.replies = c.replies[1:]
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply},
				FinishReason: openai.FinishReasonStop,
			},
		},
	}, nil
}

func testConfig() config.LLM {
	cfg := config.Default().LLM
	cfg.APIKey = "sk-test"
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = 2 * time.Millisecond
	cfg.RequestsPerSecond = 1000
	cfg.Burst = 10
	cfg.MaxRetries = 2
	return cfg
}

var _ = Describe("Client", func() {
	It("requires an API key", func() {
		_, err := llm.NewClient(config.Default().LLM, nil, nil)
		Expect(graphql.IsKind(err, graphql.ErrKindExternal)).Should(BeTrue())
	})

	It("creates an OpenAI client", func() {
		cfg := testConfig()
		cfg.BaseURL = "http://localhost:1/v1"
		client, err := llm.NewClient(cfg, nil, nil)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(client).ShouldNot(BeNil())
	})
})

var _ = Describe("Detector", func() {
	var (
		completer *fakeCompleter
		metrics   *observability.Metrics
		detector  *llm.Detector
	)

	BeforeEach(func() {
		completer = &fakeCompleter{}
		metrics = observability.NewMetrics(prometheus.NewRegistry())
		logger := slog.New(slog.NewTextHandler(GinkgoWriter, nil))
		client := llm.NewClientWithCompleter(completer, testConfig(), metrics, logger)
		detector = llm.NewDetector(client)
	})

	It("sends both schemas and decodes the changes", func() {
		completer.replies = []string{"```json\n" + `[
			{"type": "Query", "field": "goodbye", "change": "Added field goodbye", "breaking": false,
			 "release_note": "A new field. This is a non-breaking change."},
			{"type": "Weather", "field": "none", "change": "Removed type Weather", "breaking": true,
			 "release_note": "Removed. This is a breaking change."},
			{"type": "Role", "field": null, "change": "Removed value ACTIVE", "breaking": true}
		]` + "\n```"}

		changes, err := detector.Detect(context.Background(), "type Query { a: Int }", "type Query { b: Int }")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(changes).Should(Equal([]diff.Change{
			{
				Type:        "Query",
				Field:       "goodbye",
				Description: "Added field goodbye",
				ReleaseNote: "A new field. This is a non-breaking change.",
			},
			{
				Type:        "Weather",
				Description: "Removed type Weather",
				Breaking:    true,
				ReleaseNote: "Removed. This is a breaking change.",
			},
			{
				Type:        "Role",
				Description: "Removed value ACTIVE",
				Breaking:    true,
			},
		}))

		Expect(completer.requests).Should(HaveLen(1))
		request := completer.requests[0]
		Expect(request.Model).Should(Equal("gpt-3.5-turbo"))
		Expect(request.MaxTokens).Should(Equal(4096))
		Expect(request.Temperature).Should(BeNumerically("<", 1e-30))
		Expect(request.Messages).Should(HaveLen(2))
		Expect(request.Messages[0].Role).Should(Equal(openai.ChatMessageRoleSystem))
		Expect(request.Messages[1].Content).Should(ContainSubstring("Schema Version 1:\ntype Query { a: Int }"))
		Expect(request.Messages[1].Content).Should(ContainSubstring("Schema Version 2:\ntype Query { b: Int }"))
	})

	It("accepts a reply prefixed by json", func() {
		completer.replies = []string{`json [{"type": "Query", "change": "Changed", "breaking": true}]`}
		changes, err := detector.Detect(context.Background(), "a", "b")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(changes).Should(HaveLen(1))
	})

	It("rejects a reply that is not a list of changes", func() {
		for _, reply := range []string{
			"I could not find any change.",
			`{"error": "oops"}`,
			`[{"type": "Query", "breaking": true}]`,
			`[{"type": "Query", "change": "Changed"}]`,
		} {
			completer.replies = []string{reply}
			_, err := detector.Detect(context.Background(), "a", "b")
			Expect(err).Should(testutil.MatchError(
				testutil.MessageEqual("language model returned malformed changes"),
				testutil.KindIs(graphql.ErrKindExternal),
			), reply)
		}
	})

	It("retries transient failures", func() {
		completer.errs = []error{
			&openai.APIError{HTTPStatusCode: http.StatusTooManyRequests, Message: "slow down"},
			&openai.RequestError{HTTPStatusCode: http.StatusBadGateway, Err: errors.New("bad gateway")},
		}
		completer.replies = []string{`[]`}

		changes, err := detector.Detect(context.Background(), "a", "b")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(changes).Should(BeEmpty())
		Expect(completer.requests).Should(HaveLen(3))

		// One series for the failed attempts and one for the successful attempt
		Expect(promtestutil.CollectAndCount(metrics.LLMRequestDurationSeconds)).Should(Equal(2))
	})

	It("gives up after the configured retries", func() {
		completer.errs = []error{
			errors.New("connection reset"),
			errors.New("connection reset"),
			errors.New("connection reset"),
			errors.New("connection reset"),
		}

		_, err := detector.Detect(context.Background(), "a", "b")
		Expect(err).Should(testutil.MatchError(
			testutil.MessageEqual("language-model request failed"),
			testutil.KindIs(graphql.ErrKindExternal),
			testutil.OpIs("llm.detect"),
		))
		Expect(completer.requests).Should(HaveLen(3))
	})

	It("does not retry client errors", func() {
		completer.errs = []error{
			&openai.APIError{HTTPStatusCode: http.StatusUnauthorized, Message: "invalid key"},
		}
		_, err := detector.Detect(context.Background(), "a", "b")
		Expect(graphql.IsKind(err, graphql.ErrKindExternal)).Should(BeTrue())
		Expect(err.Error()).Should(ContainSubstring("invalid key"))
		Expect(completer.requests).Should(HaveLen(1))
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := detector.Detect(ctx, "a", "b")
		Expect(graphql.IsKind(err, graphql.ErrKindExternal)).Should(BeTrue())
	})
})

var _ = Describe("Summarizer", func() {
	var (
		completer  *fakeCompleter
		summarizer *llm.Summarizer
	)

	BeforeEach(func() {
		completer = &fakeCompleter{}
		client := llm.NewClientWithCompleter(completer, testConfig(), nil, nil)
		summarizer = llm.NewSummarizer(client)
	})

	It("asks for one or two descriptions of the phrases", func() {
		completer.replies = []string{"  The Query type gained a goodbye field.\n"}

		prose, err := summarizer.Summarize(context.Background(), "Added new field 'goodbye' in Query\nAdded new type 'Weather'")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(prose).Should(Equal("The Query type gained a goodbye field."))

		Expect(completer.requests).Should(HaveLen(1))
		request := completer.requests[0]
		Expect(request.Temperature).Should(BeNumerically("~", 0.3, 1e-6))
		Expect(request.Messages).Should(Equal([]openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				Content: "Here are some sentences describing changes in a GraphQL schema:\n" +
					"Added new field 'goodbye' in Query\nAdded new type 'Weather'\n" +
					"Combine these changes into one or two coherent descriptions of the overall schema updates.",
			},
		}))
	})

	It("reports failures as external errors", func() {
		completer.errs = []error{
			&openai.APIError{HTTPStatusCode: http.StatusBadRequest, Message: "bad request"},
		}
		_, err := summarizer.Summarize(context.Background(), "Added new type 'Weather'")
		Expect(err).Should(testutil.MatchError(
			testutil.KindIs(graphql.ErrKindExternal),
			testutil.OpIs("llm.summarize"),
		))
	})
})
