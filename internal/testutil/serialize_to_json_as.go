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

package testutil

import (
	"fmt"
	"reflect"

	"github.com/json-iterator/go"
	"github.com/onsi/gomega/types"
)

type serializeToJSONAsMatcher struct {
	expected string
}

// SerializeToJSONAs returns a Gomega matcher that serializes actual value into JSON with
// json-iterator (honoring any custom encoders registered by the package under test) and compares
// the decoded result against the decoded expected JSON text. Unlike gomega.MatchJSON it accepts a
// Go value as actual.
func SerializeToJSONAs(expected string) types.GomegaMatcher {
	return serializeToJSONAsMatcher{
		expected: expected,
	}
}

// Match implements types.GomegaMatcher.
func (matcher serializeToJSONAsMatcher) Match(actual interface{}) (success bool, err error) {
	encodedActual, err := jsoniter.Marshal(actual)
	if err != nil {
		return false, fmt.Errorf("SerializeToJSONAs matcher cannot encode actual into JSON: %s", err)
	}

	var decodedActual, decodedExpected interface{}
	if err := jsoniter.Unmarshal(encodedActual, &decodedActual); err != nil {
		return false, fmt.Errorf("SerializeToJSONAs matcher cannot decode actual JSON %s: %s", encodedActual, err)
	}
	if err := jsoniter.UnmarshalFromString(matcher.expected, &decodedExpected); err != nil {
		return false, fmt.Errorf("SerializeToJSONAs matcher cannot decode expected JSON: %s", err)
	}

	return reflect.DeepEqual(decodedActual, decodedExpected), nil
}

// FailureMessage implements types.GomegaMatcher.
func (matcher serializeToJSONAsMatcher) FailureMessage(actual interface{}) (message string) {
	encoded, _ := jsoniter.MarshalToString(actual)
	return fmt.Sprintf("Expected\n\t%s\nto serialize to JSON value as\n\t%s", encoded, matcher.expected)
}

// NegatedFailureMessage implements types.GomegaMatcher.
func (matcher serializeToJSONAsMatcher) NegatedFailureMessage(actual interface{}) (message string) {
	encoded, _ := jsoniter.MarshalToString(actual)
	return fmt.Sprintf("Expected\n\t%s\nnot to serialize to JSON value as\n\t%s", encoded, matcher.expected)
}
