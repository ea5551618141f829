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

// Package observability provides the Prometheus metrics and the request-scoped logger of the
// schemadiff service.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "schemadiff"

// Outcome labels a finished comparison.
type Outcome string

// Enumeration of Outcome
const (
	OutcomeIdentical     Outcome = "identical"
	OutcomeParsingFailed Outcome = "parsing_failed"
	OutcomeChanges       Outcome = "changes"
	OutcomeFault         Outcome = "fault"
	OutcomeError         Outcome = "error"
)

// Metrics holds the collectors of the service. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// ComparisonsTotal counts comparisons by diff technique and outcome.
	ComparisonsTotal *prometheus.CounterVec

	// ChangesTotal counts reported changes by polarity.
	ChangesTotal *prometheus.CounterVec

	// LLMRequestDurationSeconds measures calls to the language-model service by operation
	// (detect, summarize) and status (success, error).
	LLMRequestDurationSeconds *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with registerer. A nil registerer creates
// collectors that are not registered anywhere.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		ComparisonsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "comparisons_total",
				Help:      "Total number of schema comparisons by diff technique and outcome",
			},
			[]string{"diff_technique", "outcome"},
		),

		ChangesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "changes_total",
				Help:      "Total number of reported schema changes by polarity",
			},
			[]string{"breaking"},
		),

		LLMRequestDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "llm_request_duration_seconds",
				Help:      "Duration of language-model requests in seconds",
				Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"operation", "status"},
		),
	}
}

// ObserveComparison records a finished comparison.
func (metrics *Metrics) ObserveComparison(diffTechnique string, outcome Outcome) {
	if metrics == nil {
		return
	}
	metrics.ComparisonsTotal.WithLabelValues(diffTechnique, string(outcome)).Inc()
}

// ObserveChanges records the number of breaking and non-breaking changes in a report.
func (metrics *Metrics) ObserveChanges(breaking int, nonBreaking int) {
	if metrics == nil {
		return
	}
	metrics.ChangesTotal.WithLabelValues(strconv.FormatBool(true)).Add(float64(breaking))
	metrics.ChangesTotal.WithLabelValues(strconv.FormatBool(false)).Add(float64(nonBreaking))
}

// ObserveLLMRequest records one request to the language-model service.
func (metrics *Metrics) ObserveLLMRequest(operation string, err error, elapsed time.Duration) {
	if metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.LLMRequestDurationSeconds.WithLabelValues(operation, status).Observe(elapsed.Seconds())
}
