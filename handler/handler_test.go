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

package handler_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/botobag/schemadiff/config"
	"github.com/botobag/schemadiff/diff"
	"github.com/botobag/schemadiff/graphql"
	"github.com/botobag/schemadiff/handler"
	"github.com/botobag/schemadiff/observability"
	"github.com/botobag/schemadiff/report"
	"github.com/botobag/schemadiff/summary"

	"github.com/google/uuid"
	"github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type failingComparer struct {
	err error
}

func (c failingComparer) Run(
	ctx context.Context,
	v1 string,
	v2 string,
	diffTechnique diff.Technique,
	summaryTechnique diff.Technique) (report.Outcome, error) {
	return report.Outcome{}, c.err
}

type recordingComparer struct {
	diffTechnique    diff.Technique
	summaryTechnique diff.Technique
	hasLogger        bool
}

func (c *recordingComparer) Run(
	ctx context.Context,
	v1 string,
	v2 string,
	diffTechnique diff.Technique,
	summaryTechnique diff.Technique) (report.Outcome, error) {
	c.diffTechnique = diffTechnique
	c.summaryTechnique = summaryTechnique
	c.hasLogger = observability.LoggerFrom(ctx, nil) != nil
	return report.Outcome{
		Report: &report.Report{
			Changes:      diff.Succeeded(nil),
			ReleaseNotes: summary.ReleaseNotes{Summary: summary.NoDifferences},
		},
	}, nil
}

var _ = Describe("Handler", func() {
	var (
		registry *prometheus.Registry
		logger   *slog.Logger
		defaults config.Defaults
	)

	BeforeEach(func() {
		registry = prometheus.NewRegistry()
		logger = slog.New(slog.NewTextHandler(GinkgoWriter, nil))
		defaults = config.Default().Defaults
	})

	newHandler := func(comparer handler.Comparer) http.Handler {
		return handler.New(handler.Config{
			Comparer:     comparer,
			Defaults:     defaults,
			MaxBodyBytes: 1024,
			Gatherer:     registry,
			Logger:       logger,
		})
	}

	newOrchestratorHandler := func() http.Handler {
		orchestrator, err := report.NewOrchestrator(report.Config{
			Generator: summary.NewGenerator(nil, logger),
			Metrics:   observability.NewMetrics(registry),
			Logger:    logger,
		})
		Expect(err).ShouldNot(HaveOccurred())
		return newHandler(orchestrator)
	}

	serve := func(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		h.ServeHTTP(recorder, req)
		return recorder
	}

	compareQuery := func(values url.Values) *http.Request {
		return httptest.NewRequest(http.MethodGet, "/compare-schemas/?"+values.Encode(), nil)
	}

	decode := func(recorder *httptest.ResponseRecorder) map[string]interface{} {
		var body map[string]interface{}
		Expect(jsoniter.Unmarshal(recorder.Body.Bytes(), &body)).Should(Succeed())
		return body
	}

	Describe("GET /compare-schemas/", func() {
		It("reports identical schemas", func() {
			recorder := serve(newOrchestratorHandler(), compareQuery(url.Values{
				"schema1": {"type Query { a: Int }"},
				"schema2": {"type Query {\n  a: Int\n}"},
			}))

			Expect(recorder.Code).Should(Equal(http.StatusOK))
			Expect(recorder.Header().Get("Content-Type")).Should(HavePrefix("application/json"))
			Expect(recorder.Body.String()).Should(MatchJSON(`{
				"changes": [],
				"release_notes": {"summary": "No differences between the schemas."}
			}`))
		})

		It("reports changes with a release summary", func() {
			recorder := serve(newOrchestratorHandler(), compareQuery(url.Values{
				"schema1": {"type Query { a: Int }"},
				"schema2": {"type Query { a: Int b: String }"},
			}))

			Expect(recorder.Code).Should(Equal(http.StatusOK))
			body := decode(recorder)
			Expect(body["changes"]).Should(ConsistOf(
				HaveKeyWithValue("change", "Added new field 'b'"),
			))
			Expect(body["release_notes"]).Should(HaveKeyWithValue("summary",
				ContainSubstring("0 breaking change(s) and 1 non-breaking change(s)")))
		})

		It("responds parsing failures with 200", func() {
			recorder := serve(newOrchestratorHandler(), compareQuery(url.Values{
				"schema1": {"type Query { a: Int }"},
				"schema2": {"type Query {"},
			}))

			Expect(recorder.Code).Should(Equal(http.StatusOK))
			Expect(recorder.Body.String()).Should(MatchJSON(`{
				"parsing_failed": ["Version 2 of the GraphQL schema could not be parsed", "type Query {"]
			}`))
		})

		It("rejects missing schemas", func() {
			recorder := serve(newOrchestratorHandler(), compareQuery(url.Values{
				"schema1": {"type Query { a: Int }"},
			}))

			Expect(recorder.Code).Should(Equal(http.StatusBadRequest))
			Expect(decode(recorder)).Should(HaveKeyWithValue("detail", ContainSubstring(`"schema2" is required`)))
		})

		It("rejects multiple values of a parameter", func() {
			recorder := serve(newOrchestratorHandler(), compareQuery(url.Values{
				"schema1": {"type Query { a: Int }", "type Query { b: Int }"},
				"schema2": {"type Query { a: Int }"},
			}))

			Expect(recorder.Code).Should(Equal(http.StatusBadRequest))
			Expect(decode(recorder)).Should(HaveKeyWithValue("detail", ContainSubstring(`multiple values are provided to "schema1"`)))
		})

		It("rejects unknown techniques", func() {
			recorder := serve(newOrchestratorHandler(), compareQuery(url.Values{
				"schema1":        {"type Query { a: Int }"},
				"schema2":        {"type Query { b: Int }"},
				"diff_technique": {"magic"},
			}))

			Expect(recorder.Code).Should(Equal(http.StatusBadRequest))
			Expect(decode(recorder)).Should(HaveKeyWithValue("detail", ContainSubstring(`unknown technique "magic"`)))
		})

		It("applies default techniques and accepts the legacy name", func() {
			comparer := &recordingComparer{}
			recorder := serve(newHandler(comparer), compareQuery(url.Values{
				"schema1":                 {"type Query { a: Int }"},
				"schema2":                 {"type Query { b: Int }"},
				"summarization_technique": {"GPT3.5"},
			}))

			Expect(recorder.Code).Should(Equal(http.StatusOK))
			Expect(comparer.diffTechnique).Should(Equal(defaults.DiffTechnique))
			Expect(comparer.summaryTechnique).Should(Equal(diff.LanguageModel))
			Expect(comparer.hasLogger).Should(BeTrue())
		})
	})

	Describe("POST /v1/compare", func() {
		post := func(body string) *http.Request {
			req := httptest.NewRequest(http.MethodPost, "/v1/compare", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			return req
		}

		It("compares schemas given in the body", func() {
			recorder := serve(newOrchestratorHandler(), post(`{
				"schema_v1": "type Query { a: Int } type User { id: ID }",
				"schema_v2": "type Query { a: Int }",
				"diff_technique": "algorithmic",
				"summarization_technique": "algorithmic"
			}`))

			Expect(recorder.Code).Should(Equal(http.StatusOK))
			body := decode(recorder)
			Expect(body["changes"]).Should(ConsistOf(And(
				HaveKeyWithValue("type", "User"),
				HaveKeyWithValue("change", "Type 'User' was removed"),
				HaveKeyWithValue("breaking", true),
			)))
		})

		It("rejects a body without schemas", func() {
			recorder := serve(newOrchestratorHandler(), post(`{"schema_v1": "type Query { a: Int }"}`))
			Expect(recorder.Code).Should(Equal(http.StatusBadRequest))
			Expect(decode(recorder)).Should(HaveKey("detail"))
		})

		It("rejects malformed JSON", func() {
			recorder := serve(newOrchestratorHandler(), post(`{"schema_v1": `))
			Expect(recorder.Code).Should(Equal(http.StatusBadRequest))
		})

		It("rejects bodies over the limit", func() {
			large := strings.Repeat("x", 2048)
			recorder := serve(newOrchestratorHandler(), post(`{"schema_v1": "`+large+`", "schema_v2": "type Query { a: Int }"}`))
			Expect(recorder.Code).Should(Equal(http.StatusBadRequest))
		})
	})

	Describe("errors", func() {
		It("responds 502 when the language model fails", func() {
			err := graphql.NewError("language-model request failed", graphql.ErrKindExternal, graphql.Op("llm.detect"))
			recorder := serve(newHandler(failingComparer{err}), compareQuery(url.Values{
				"schema1": {"type Query { a: Int }"},
				"schema2": {"type Query { b: Int }"},
			}))

			Expect(recorder.Code).Should(Equal(http.StatusBadGateway))
			Expect(decode(recorder)).Should(HaveKeyWithValue("detail",
				HavePrefix("Error processing schemas: llm.detect: language-model request failed")))
		})

		It("responds 500 for other failures", func() {
			recorder := serve(newHandler(failingComparer{errors.New("boom")}), compareQuery(url.Values{
				"schema1": {"type Query { a: Int }"},
				"schema2": {"type Query { b: Int }"},
			}))

			Expect(recorder.Code).Should(Equal(http.StatusInternalServerError))
			Expect(decode(recorder)).Should(HaveKeyWithValue("detail", "Error processing schemas: boom"))
		})
	})

	Describe("request id", func() {
		It("assigns an id to every request", func() {
			recorder := serve(newOrchestratorHandler(), httptest.NewRequest(http.MethodGet, "/health", nil))
			Expect(recorder.Code).Should(Equal(http.StatusOK))
			_, err := uuid.Parse(recorder.Header().Get(handler.RequestIDHeader))
			Expect(err).ShouldNot(HaveOccurred())
		})

		It("keeps the id given by the client", func() {
			id := uuid.NewString()
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set(handler.RequestIDHeader, id)
			recorder := serve(newOrchestratorHandler(), req)
			Expect(recorder.Header().Get(handler.RequestIDHeader)).Should(Equal(id))
		})
	})

	Describe("GET /metrics", func() {
		It("exposes comparison counters", func() {
			h := newOrchestratorHandler()
			serve(h, compareQuery(url.Values{
				"schema1": {"type Query { a: Int }"},
				"schema2": {"type Query { b: Int }"},
			}))

			recorder := serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			Expect(recorder.Code).Should(Equal(http.StatusOK))
			Expect(recorder.Body.String()).Should(ContainSubstring("schemadiff_comparisons_total"))
		})
	})
})
