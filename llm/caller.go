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

// Package llm implements the language-model collaborators on the OpenAI chat completion API: a
// ChangeDetector that asks the model for the changes between two schemas and a Summarizer that
// asks it to turn change phrases into prose.
package llm

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/botobag/schemadiff/config"
	"github.com/botobag/schemadiff/graphql"
	"github.com/botobag/schemadiff/observability"

	"github.com/cenkalti/backoff/v5"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// ChatCompleter is the subset of *openai.Client used by the collaborators.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client issues chat completion requests with rate limiting, a timeout per attempt and retries with
// exponential backoff. It is shared by the Detector and the Summarizer.
type Client struct {
	completer ChatCompleter
	config    config.LLM
	limiter   *rate.Limiter
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewClient creates a Client that talks to the OpenAI API (or the compatible service at
// config.BaseURL).
func NewClient(config config.LLM, metrics *observability.Metrics, logger *slog.Logger) (*Client, error) {
	if !config.Enabled() {
		return nil, graphql.NewError("API key of the language-model service is not set",
			graphql.Op("llm.NewClient"), graphql.ErrKindExternal)
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	return NewClientWithCompleter(openai.NewClientWithConfig(clientConfig), config, metrics, logger), nil
}

// NewClientWithCompleter creates a Client on top of the given ChatCompleter.
func NewClientWithCompleter(
	completer ChatCompleter,
	config config.LLM,
	metrics *observability.Metrics,
	logger *slog.Logger) *Client {

	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		completer: completer,
		config:    config,
		limiter:   rate.NewLimiter(rate.Limit(config.RequestsPerSecond), max(config.Burst, 1)),
		metrics:   metrics,
		logger:    logger.With("model", config.Model),
	}
}

// complete sends messages and returns the content of the first choice. Failures are reported as
// an Error of ErrKindExternal.
func (client *Client) complete(
	ctx context.Context,
	operation string,
	messages []openai.ChatCompletionMessage,
	temperature float32) (string, error) {

	op := graphql.Op("llm." + operation)

	// A zero temperature is dropped from the request by omitempty.
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}
	logger := observability.LoggerFrom(ctx, client.logger).With("operation", operation)

	request := openai.ChatCompletionRequest{
		Model:       client.config.Model,
		Messages:    messages,
		MaxTokens:   client.config.MaxTokens,
		Temperature: temperature,
	}

	attempt := 0
	attemptFunc := func() (string, error) {
		attempt++
		if err := client.limiter.Wait(ctx); err != nil {
			return "", backoff.Permanent(err)
		}

		attemptCtx, cancel := context.WithTimeout(ctx, client.config.RequestTimeout)
		defer cancel()

		start := time.Now()
		response, err := client.completer.CreateChatCompletion(attemptCtx, request)
		if err == nil && len(response.Choices) == 0 {
			err = errors.New("no choice in the response")
		}
		client.metrics.ObserveLLMRequest(operation, err, time.Since(start))

		if err != nil {
			if !isRetryable(err) {
				return "", backoff.Permanent(err)
			}
			logger.Warn("language-model request failed", "attempt", attempt, "error", err)
			return "", err
		}

		logger.Debug("language-model request completed", "attempt", attempt,
			"finish_reason", response.Choices[0].FinishReason)
		return response.Choices[0].Message.Content, nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = client.config.InitialBackoff
	policy.MaxInterval = client.config.MaxBackoff

	content, err := backoff.Retry(ctx, attemptFunc,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(client.config.MaxRetries+1))
	if err != nil {
		logger.Error("language-model request failed", "attempts", attempt, "error", err)
		return "", graphql.NewError("language-model request failed", err, op, graphql.ErrKindExternal)
	}
	return content, nil
}

// isRetryable returns false for errors that another attempt cannot fix: client errors other than
// rate limiting and a cancelled context.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.HTTPStatusCode)
	}
	var requestErr *openai.RequestError
	if errors.As(err, &requestErr) {
		return retryableStatus(requestErr.HTTPStatusCode)
	}
	return true
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError || status == 0
}
