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

package observability_test

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/botobag/schemadiff/observability"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Metrics", func() {
	var (
		registry *prometheus.Registry
		metrics  *observability.Metrics
	)

	BeforeEach(func() {
		registry = prometheus.NewRegistry()
		metrics = observability.NewMetrics(registry)
	})

	It("counts comparisons by technique and outcome", func() {
		metrics.ObserveComparison("algorithmic", observability.OutcomeChanges)
		metrics.ObserveComparison("algorithmic", observability.OutcomeChanges)
		metrics.ObserveComparison("llm", observability.OutcomeParsingFailed)

		Expect(testutil.ToFloat64(metrics.ComparisonsTotal.WithLabelValues("algorithmic", "changes"))).Should(Equal(2.0))
		Expect(testutil.ToFloat64(metrics.ComparisonsTotal.WithLabelValues("llm", "parsing_failed"))).Should(Equal(1.0))
	})

	It("counts changes by polarity", func() {
		metrics.ObserveChanges(3, 1)
		metrics.ObserveChanges(1, 0)

		Expect(testutil.ToFloat64(metrics.ChangesTotal.WithLabelValues("true"))).Should(Equal(4.0))
		Expect(testutil.ToFloat64(metrics.ChangesTotal.WithLabelValues("false"))).Should(Equal(1.0))
	})

	It("observes language-model requests", func() {
		metrics.ObserveLLMRequest("detect", nil, time.Second)
		metrics.ObserveLLMRequest("summarize", errors.New("boom"), time.Second)

		Expect(testutil.CollectAndCount(metrics.LLMRequestDurationSeconds)).Should(Equal(2))
		count, err := testutil.GatherAndCount(registry, "schemadiff_llm_request_duration_seconds")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(count).Should(Equal(2))
	})

	It("ignores observations on nil", func() {
		var nilMetrics *observability.Metrics
		Expect(func() {
			nilMetrics.ObserveComparison("algorithmic", observability.OutcomeIdentical)
			nilMetrics.ObserveChanges(1, 1)
			nilMetrics.ObserveLLMRequest("detect", nil, time.Second)
		}).ShouldNot(Panic())
	})
})

var _ = Describe("LoggerFrom", func() {
	It("returns the logger in the context", func() {
		logger := slog.New(slog.NewTextHandler(GinkgoWriter, nil))
		ctx := observability.ContextWithLogger(context.Background(), logger)
		Expect(observability.LoggerFrom(ctx, nil)).Should(BeIdenticalTo(logger))
	})

	It("falls back", func() {
		fallback := slog.New(slog.NewTextHandler(GinkgoWriter, nil))
		Expect(observability.LoggerFrom(context.Background(), fallback)).Should(BeIdenticalTo(fallback))
		Expect(observability.LoggerFrom(context.Background(), nil)).Should(BeIdenticalTo(slog.Default()))
	})
})
