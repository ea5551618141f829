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

package diff

import (
	"fmt"

	"github.com/botobag/schemadiff/graphql"
)

// Technique selects how changes are detected or how a release summary is written.
type Technique string

// Enumeration of Technique
const (
	// Algorithmic uses the rule-based comparators and the phrase template.
	Algorithmic Technique = "algorithmic"

	// LanguageModel delegates the work to a language-model service.
	LanguageModel Technique = "llm"
)

// legacyLanguageModel is accepted as an alias of LanguageModel.
const legacyLanguageModel = "GPT3.5"

// ParseTechnique maps a technique name to a Technique. An empty name selects the given fallback.
func ParseTechnique(name string, fallback Technique) (Technique, error) {
	switch name {
	case "":
		return fallback, nil
	case string(Algorithmic):
		return Algorithmic, nil
	case string(LanguageModel), legacyLanguageModel:
		return LanguageModel, nil
	}
	return "", graphql.NewError(
		fmt.Sprintf(`unknown technique "%s"; expected "%s" or "%s"`, name, Algorithmic, LanguageModel),
		graphql.Op("diff.ParseTechnique"))
}

// String implements fmt.Stringer.
func (technique Technique) String() string {
	return string(technique)
}
