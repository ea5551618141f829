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

package util

import (
	"io"
	"strings"
)

// StringWriter is the sink that OrList writes to. *strings.Builder satisfies it.
type StringWriter = io.StringWriter

// MaxListItems is the number of items printed by OrList and QuotedOrList.
const MaxListItems = 5

// OrList transforms a string array like ["A", "B", "C"] into `A, B, or C` and writes it to out. If
// quoted is true, writes `"A", "B", or "C"`. If a positive integer is provided in limit, only the
// first limit items are written.
func OrList(out StringWriter, items []string, limit int, quoted bool) {
	if len(items) == 0 {
		return
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	writeItem := func(item string) {
		if quoted {
			out.WriteString(`"`)
			out.WriteString(item)
			out.WriteString(`"`)
		} else {
			out.WriteString(item)
		}
	}

	writeItem(items[0])
	for i := 1; i < len(items); i++ {
		if len(items) > 2 {
			out.WriteString(", ")
		} else {
			out.WriteString(" ")
		}
		if i == len(items)-1 {
			out.WriteString("or ")
		}
		writeItem(items[i])
	}
}

// QuotedOrList is a convenient wrapper of OrList that returns the quoted list as a string.
func QuotedOrList(items []string) string {
	var b strings.Builder
	OrList(&b, items, MaxListItems, true)
	return b.String()
}

// DidYouMean returns ` Did you mean "A" or "B"?` for the given suggestions, or an empty string when
// there is none. The result is meant to be appended to an error message.
func DidYouMean(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	return " Did you mean " + QuotedOrList(suggestions) + "?"
}
