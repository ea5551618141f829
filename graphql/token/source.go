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

package token

import (
	"unicode/utf8"
)

// SourceLocation encodes a position in a Source. Its value is an 1-indexed offset relative to the
// beginning of source measured in bytes. Use Source.LocationInfoOf to get line and column.
type SourceLocation uint

// NoSourceLocation is a special SourceLocation that doesn't exist in any source (e.g., the location
// of <SOF>).
const NoSourceLocation SourceLocation = 0

// IsValid return true if the SourceLocation is valid.
func (location SourceLocation) IsValid() bool {
	return location != NoSourceLocation
}

// SourceBody contains contents of a schema document in a byte sequence.
type SourceBody []byte

// RuneAt decodes a rune at given pos. It also returns the number of bytes occupied by the rune.
func (body SourceBody) RuneAt(pos uint) (rune, uint) {
	if uint(len(body)) <= pos {
		// Return -1 to indicate an <EOF>.
		return -1, 0
	}

	// Fast path: characters below Runeself are represented as themselves in a single byte.
	c := body[pos]
	if c < utf8.RuneSelf {
		return rune(c), 1
	}

	r, n := utf8.DecodeRune(body[pos:])
	return r, uint(n)
}

// At returns the byte in the source at given position. Return 0 if the given position is out of
// body's range.
func (body SourceBody) At(pos uint) byte {
	if body.Size() <= pos {
		return 0
	}
	return body[pos]
}

// Size returns the body size in bytes.
func (body SourceBody) Size() uint {
	return uint(len(body))
}

// SourceLocationInfo describes a source location with source name, line and column number.
type SourceLocationInfo struct {
	Name   string
	Line   uint
	Column uint
}

// Source represents a schema document being parsed. The name identifies the document in error
// messages (e.g., "schema v1").
type Source struct {
	name string
	body SourceBody
}

// NewSource creates a Source from a name and the document text.
func NewSource(name string, body string) *Source {
	if len(name) == 0 {
		name = "GraphQL schema"
	}
	return &Source{
		name: name,
		body: SourceBody(body),
	}
}

// Body returns the document text.
func (source *Source) Body() SourceBody {
	return source.body
}

// Name returns the name given to NewSource.
func (source *Source) Name() string {
	return source.name
}

// LocationFromPos returns a SourceLocation for given 0-based byte position in the body.
func (source *Source) LocationFromPos(bytePos uint) SourceLocation {
	if bytePos > source.body.Size() {
		panic("illegal byte position value")
	}
	return SourceLocation(bytePos + 1)
}

// LocationInfoOf computes line and column for a SourceLocation. Both "\n", "\r" and "\r\n" count as
// a single line terminator.
func (source *Source) LocationInfoOf(loc SourceLocation) SourceLocationInfo {
	if !loc.IsValid() {
		return SourceLocationInfo{
			Name: source.name,
		}
	}

	var (
		line     uint = 1
		column   uint = 1
		position      = uint(loc) - 1
	)

	body := source.body
	bodySize := body.Size()
	if position >= bodySize {
		position = bodySize
	}

	var i uint
	for i < position {
		switch body[i] {
		case '\r':
			if (i+1) < bodySize && body[i+1] == '\n' {
				i++
				if i == position {
					// Asking for the "\n" of a "\r\n".
					line++
					column = 0
				}
			} else {
				line++
				column = 1
				i++
			}

		case '\n':
			line++
			column = 1
			i++

		default:
			column++
			i++
		}
	}

	return SourceLocationInfo{
		Name:   source.name,
		Line:   line,
		Column: column,
	}
}
