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

package summary_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/botobag/schemadiff/diff"
	"github.com/botobag/schemadiff/graphql"
	"github.com/botobag/schemadiff/summary"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// fakeSummarizer records the phrases it receives and answers with a canned reply.
type fakeSummarizer struct {
	mutex    sync.Mutex
	requests []string
	err      error
}

func (s *fakeSummarizer) Summarize(ctx context.Context, phrases string) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.requests = append(s.requests, phrases)
	if s.err != nil {
		return "", s.err
	}
	return fmt.Sprintf(" <%d phrase(s)> ", strings.Count(phrases, "\n")+1), nil
}

var _ = Describe("Generator", func() {
	var (
		ctx        context.Context
		summarizer *fakeSummarizer
		generator  *summary.Generator
	)

	changes := []diff.Change{
		{Type: "Status", Description: "Type changed from 'ScalarType' to 'EnumType'", Breaking: true},
		{Type: "Role", Description: "Value 'ACTIVE' was removed", Breaking: true},
		{Type: "Role", Description: "Added new value 'USER'"},
		{Type: "Query", Field: "goodbye", Description: "Added new field 'goodbye'"},
		{Type: "Book", Field: "id", Description: "Field type changed from 'ID!' to 'Int'", Breaking: true},
		{Type: "Query", Field: "getAllBooks", Description: "Field 'getAllBooks' was removed", Breaking: true},
	}

	BeforeEach(func() {
		ctx = context.Background()
		summarizer = &fakeSummarizer{}
		generator = summary.NewGenerator(summarizer, nil)
	})

	generate := func(result diff.Result, technique diff.Technique) string {
		notes, err := generator.Generate(ctx, result, technique)
		Expect(err).ShouldNot(HaveOccurred())
		return notes.Summary
	}

	It("reports no differences", func() {
		for _, technique := range []diff.Technique{diff.Algorithmic, diff.LanguageModel} {
			Expect(generate(diff.Succeeded(nil), technique)).Should(Equal(summary.NoDifferences))
		}
		Expect(summarizer.requests).Should(BeEmpty())
	})

	It("reports a failed comparison", func() {
		result := diff.Failed(errors.New("boom"))
		Expect(generate(result, diff.Algorithmic)).Should(Equal(summary.Unsuccessful))
		Expect(generate(result, diff.LanguageModel)).Should(Equal(summary.Unsuccessful))
	})

	Describe("algorithmic", func() {
		It("lists breaking and non-breaking changes", func() {
			Expect(generate(diff.Succeeded(changes), diff.Algorithmic)).Should(Equal(
				"This release introduces 4 breaking change(s) and 2 non-breaking change(s): " +
					"Breaking changes: Type changed from 'ScalarType' to 'EnumType', Value 'ACTIVE' was removed, " +
					"Field type changed from 'ID!' to 'Int' in Book 'id', Field 'getAllBooks' was removed in Query 'getAllBooks'. " +
					"Non-breaking changes: Added new value 'USER', Added new field 'goodbye' in Query."))
		})

		It("omits the breaking section when there is none", func() {
			result := diff.Succeeded([]diff.Change{
				{Type: "Query", Field: "goodbye", Description: "Added new field 'goodbye'"},
			})
			Expect(generate(result, diff.Algorithmic)).Should(Equal(
				"This release introduces 0 breaking change(s) and 1 non-breaking change(s): " +
					"Non-breaking changes: Added new field 'goodbye' in Query."))
		})

		It("omits the non-breaking section when there is none", func() {
			result := diff.Succeeded([]diff.Change{
				{Type: "Weather", Description: "Type 'Weather' was removed", Breaking: true},
			})
			Expect(generate(result, diff.Algorithmic)).Should(Equal(
				"This release introduces 1 breaking change(s) and 0 non-breaking change(s): " +
					"Breaking changes: Type 'Weather' was removed. "))
		})

		It("states counts that match the changes", func() {
			text := generate(diff.Succeeded(changes), diff.Algorithmic)
			matches := regexp.MustCompile(`(\d+) breaking change\(s\) and (\d+) non-breaking`).FindStringSubmatch(text)
			Expect(matches).Should(HaveLen(3))

			breaking, nonBreaking := diff.Partition(changes)
			Expect(strconv.Atoi(matches[1])).Should(Equal(len(breaking)))
			Expect(strconv.Atoi(matches[2])).Should(Equal(len(nonBreaking)))
		})
	})

	Describe("language model", func() {
		It("summarizes both batches into the template", func() {
			Expect(generate(diff.Succeeded(changes), diff.LanguageModel)).Should(Equal(
				"This release introduces 4 breaking change(s) and 2 non-breaking change(s): " +
					"Breaking changes: <4 phrase(s)>. Non-breaking changes: <2 phrase(s)>."))

			Expect(summarizer.requests).Should(ConsistOf(
				"Type changed from 'ScalarType' to 'EnumType'\n"+
					"Value 'ACTIVE' was removed\n"+
					"Field type changed from 'ID!' to 'Int' in Book 'id'\n"+
					"Field 'getAllBooks' was removed in Query 'getAllBooks'",
				"Added new value 'USER'\nAdded new field 'goodbye' in Query",
			))
		})

		It("sends no request for an empty batch", func() {
			result := diff.Succeeded([]diff.Change{
				{Type: "Weather", Description: "Added new type 'Weather'"},
			})
			Expect(generate(result, diff.LanguageModel)).Should(Equal(
				"This release introduces 0 breaking change(s) and 1 non-breaking change(s): " +
					"Non-breaking changes: <1 phrase(s)>."))
			Expect(summarizer.requests).Should(Equal([]string{"Added new type 'Weather'"}))
		})

		It("fails with an external error", func() {
			summarizer.err = errors.New("service unavailable")
			_, err := generator.Generate(ctx, diff.Succeeded(changes), diff.LanguageModel)
			Expect(err).Should(HaveOccurred())
			Expect(graphql.IsKind(err, graphql.ErrKindExternal)).Should(BeTrue())
			Expect(err.Error()).Should(ContainSubstring("service unavailable"))
		})

		It("fails without a summarizer", func() {
			generator = summary.NewGenerator(nil, nil)
			_, err := generator.Generate(ctx, diff.Succeeded(changes), diff.LanguageModel)
			Expect(graphql.IsKind(err, graphql.ErrKindExternal)).Should(BeTrue())
		})
	})

	It("rejects an unknown technique", func() {
		_, err := generator.Generate(ctx, diff.Succeeded(changes), diff.Technique("magic"))
		Expect(err).Should(MatchError(ContainSubstring(`unknown summarization technique "magic"`)))
	})
})
