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

package report

import (
	"github.com/botobag/schemadiff/diff"
	"github.com/botobag/schemadiff/summary"

	"github.com/json-iterator/go"
)

// Report lists the changes between two schema versions with their release summary.
type Report struct {
	Changes      diff.Result          `json:"changes"`
	ReleaseNotes summary.ReleaseNotes `json:"release_notes"`
}

// ParsingFailure reports schema versions that could not be parsed.
type ParsingFailure struct {
	// Message names the versions that failed.
	Message string

	// Schemas contains the texts of the versions that failed as given by the caller.
	Schemas []string

	// Errors contains the parser errors of the versions that failed.
	Errors []error
}

// Outcome is the result of a run: exactly one of Report and ParsingFailure is set.
type Outcome struct {
	Report         *Report
	ParsingFailure *ParsingFailure
}

// MarshalJSON implements json.Marshaler. A report is encoded as
//
//	{"changes": [...], "release_notes": {"summary": "..."}}
//
// and a parsing failure as
//
//	{"parsing_failed": ["<message>", "<schema>", ...]}
func (outcome Outcome) MarshalJSON() ([]byte, error) {
	if outcome.ParsingFailure != nil {
		failure := outcome.ParsingFailure
		parsingFailed := make([]string, 0, len(failure.Schemas)+1)
		parsingFailed = append(parsingFailed, failure.Message)
		parsingFailed = append(parsingFailed, failure.Schemas...)
		return jsoniter.Marshal(map[string][]string{
			"parsing_failed": parsingFailed,
		})
	}
	return jsoniter.Marshal(outcome.Report)
}
