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
	"math"
	"slices"
	"strings"
)

// SuggestionList given an invalid input string and a list of valid options, returns a filtered
// list of valid options sorted based on their similarity with the input. Options at the same
// distance are sorted by name.
func SuggestionList(input string, options []string) []string {
	type candidate struct {
		option   string
		distance int
	}

	var candidates []candidate
	inputThreshold := float64(len(input)) / 2.0
	for _, option := range options {
		distance := lexicalDistance(input, option)
		threshold := math.Max(math.Max(inputThreshold, float64(len(option))/2.0), 1)
		if float64(distance) <= threshold {
			candidates = append(candidates, candidate{option, distance})
		}
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		if a.distance != b.distance {
			return a.distance - b.distance
		}
		return strings.Compare(a.option, b.option)
	})

	suggestions := make([]string, len(candidates))
	for i, c := range candidates {
		suggestions[i] = c.option
	}
	return suggestions
}

// Computes the lexical distance between strings A and B.
//
// The "distance" between two strings is given by counting the minimum number of edits needed to
// transform string A into string B. An edit can be an insertion, deletion, or substitution of a
// single character, or a swap of two adjacent characters.
//
// Case changes count as a single edit so mis-cased names are found with a distance of 1.
func lexicalDistance(aStr string, bStr string) int {
	if aStr == bStr {
		return 0
	}

	a := strings.ToLower(aStr)
	b := strings.ToLower(bStr)
	if a == b {
		return 1
	}

	aLength := len(a)
	bLength := len(b)
	d := make([][]int, aLength+1)
	for i := range d {
		d[i] = make([]int, bLength+1)
		d[i][0] = i
	}
	for j := 1; j <= bLength; j++ {
		d[0][j] = j
	}

	for i := 1; i <= aLength; i++ {
		for j := 1; j <= bLength; j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			d[i][j] = min(d[i-1][j]+1, d[i][j-1]+1, d[i-1][j-1]+cost)

			// Adjacent swap.
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				d[i][j] = min(d[i][j], d[i-2][j-2]+cost)
			}
		}
	}

	return d[aLength][bLength]
}
