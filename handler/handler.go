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

// Package handler exposes schema comparisons over HTTP.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/botobag/schemadiff/config"
	"github.com/botobag/schemadiff/diff"
	"github.com/botobag/schemadiff/graphql"
	"github.com/botobag/schemadiff/report"

	"github.com/gin-gonic/gin"
	"github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Comparer runs a comparison. It is implemented by *report.Orchestrator.
type Comparer interface {
	Run(ctx context.Context, v1 string, v2 string, diffTechnique diff.Technique, summaryTechnique diff.Technique) (report.Outcome, error)
}

// Config specifies the dependencies of the HTTP handler.
type Config struct {
	// Comparer runs comparisons; required.
	Comparer Comparer

	// Defaults selects techniques for requests that name none.
	Defaults config.Defaults

	// MaxBodyBytes limits the size of request bodies. Zero means no limit.
	MaxBodyBytes int64

	// Gatherer provides the metrics served at /metrics. Default to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// Logger is the base logger of requests. Default to slog.Default().
	Logger *slog.Logger
}

// CompareRequest is the body of POST /v1/compare.
type CompareRequest struct {
	SchemaV1               string `json:"schema_v1" binding:"required"`
	SchemaV2               string `json:"schema_v2" binding:"required"`
	DiffTechnique          string `json:"diff_technique"`
	SummarizationTechnique string `json:"summarization_technique"`
}

// errorResponse is the body of error responses.
type errorResponse struct {
	Detail string `json:"detail"`
}

// ErrBadRequest describes a request that cannot be served as given.
type ErrBadRequest struct {
	Err error
}

// Error implements Go's error interface.
func (err *ErrBadRequest) Error() string {
	return err.Err.Error()
}

// Unwrap returns the underlying error.
func (err *ErrBadRequest) Unwrap() error {
	return err.Err
}

type handler struct {
	comparer Comparer
	defaults config.Defaults
}

// New creates the HTTP handler of the service.
func New(config Config) http.Handler {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	gatherer := config.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	h := &handler{
		comparer: config.Comparer,
		defaults: config.Defaults,
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), limitBody(config.MaxBodyBytes))

	router.GET("/compare-schemas/", h.compareFromQuery)
	router.POST("/v1/compare", h.compareFromBody)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return router
}

// getOneValue returns the value for the given key in the query string. Return an empty string if
// there's none and an error if there're multiple.
func getOneValue(values url.Values, key string) (string, error) {
	v := values[key]
	switch len(v) {
	case 0:
		return "", nil
	case 1:
		return v[0], nil
	default:
		return "", &ErrBadRequest{
			Err: fmt.Errorf(`multiple values are provided to "%s", but only one expected`, key),
		}
	}
}

// GET /compare-schemas/?schema1=...&schema2=...&diff_technique=...&summarization_technique=...
func (h *handler) compareFromQuery(c *gin.Context) {
	values := c.Request.URL.Query()

	var request CompareRequest
	for _, param := range []struct {
		key      string
		target   *string
		required bool
	}{
		{"schema1", &request.SchemaV1, true},
		{"schema2", &request.SchemaV2, true},
		{"diff_technique", &request.DiffTechnique, false},
		{"summarization_technique", &request.SummarizationTechnique, false},
	} {
		value, err := getOneValue(values, param.key)
		if err != nil {
			h.writeError(c, err)
			return
		}
		if param.required && value == "" {
			h.writeError(c, &ErrBadRequest{Err: fmt.Errorf(`query parameter "%s" is required`, param.key)})
			return
		}
		*param.target = value
	}

	h.compare(c, &request)
}

// POST /v1/compare
func (h *handler) compareFromBody(c *gin.Context) {
	var request CompareRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.writeError(c, &ErrBadRequest{Err: fmt.Errorf("invalid request body: %w", err)})
		return
	}
	h.compare(c, &request)
}

func (h *handler) compare(c *gin.Context, request *CompareRequest) {
	diffTechnique, err := diff.ParseTechnique(request.DiffTechnique, h.defaults.DiffTechnique)
	if err != nil {
		h.writeError(c, &ErrBadRequest{Err: err})
		return
	}
	summaryTechnique, err := diff.ParseTechnique(request.SummarizationTechnique, h.defaults.SummaryTechnique)
	if err != nil {
		h.writeError(c, &ErrBadRequest{Err: err})
		return
	}

	outcome, err := h.comparer.Run(c.Request.Context(), request.SchemaV1, request.SchemaV2, diffTechnique, summaryTechnique)
	if err != nil {
		h.writeError(c, err)
		return
	}

	body, err := jsoniter.Marshal(outcome)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// writeError maps err to a status code: 400 for bad requests, 502 for failures of the
// language-model service and 500 for anything else.
func (h *handler) writeError(c *gin.Context, err error) {
	var (
		status     int
		badRequest *ErrBadRequest
	)
	switch {
	case errors.As(err, &badRequest):
		status = http.StatusBadRequest
	case graphql.IsKind(err, graphql.ErrKindExternal):
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorResponse{
		Detail: fmt.Sprintf("Error processing schemas: %s", err),
	})
}
