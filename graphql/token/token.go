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
	"fmt"
)

// Kind describes the different kinds of tokens that the lexer emits while reading a schema document
// written in the GraphQL Schema Definition Language.
type Kind int

// Enumeration of Kind
//
// Reference: https://spec.graphql.org/June2018/#sec-Appendix-Grammar-Summary.Lexical-Tokens
const (
	// <SOF>
	KindSOF Kind = iota + 1
	// <EOF>
	KindEOF
	// !
	KindBang
	// &
	KindAmp
	// (
	KindLeftParen
	// )
	KindRightParen
	// :
	KindColon
	// =
	KindEquals
	// @
	KindAt
	// [
	KindLeftBracket
	// ]
	KindRightBracket
	// {
	KindLeftBrace
	// |
	KindPipe
	// }
	KindRightBrace
	// Ref: https://spec.graphql.org/June2018/#Name
	KindName
	// Ref: https://spec.graphql.org/June2018/#IntValue
	KindInt
	// Ref: https://spec.graphql.org/June2018/#FloatValue
	KindFloat
	// Ref: https://spec.graphql.org/June2018/#StringValue
	KindString
	// Ref: https://spec.graphql.org/June2018/#StringValue
	KindBlockString
	// Ref: https://spec.graphql.org/June2018/#sec-Comments
	KindComment
)

var kindNames = [...]string{
	KindSOF:          "<SOF>",
	KindEOF:          "<EOF>",
	KindBang:         "!",
	KindAmp:          "&",
	KindLeftParen:    "(",
	KindRightParen:   ")",
	KindColon:        ":",
	KindEquals:       "=",
	KindAt:           "@",
	KindLeftBracket:  "[",
	KindRightBracket: "]",
	KindLeftBrace:    "{",
	KindPipe:         "|",
	KindRightBrace:   "}",
	KindName:         "Name",
	KindInt:          "Int",
	KindFloat:        "Float",
	KindString:       "String",
	KindBlockString:  "BlockString",
	KindComment:      "Comment",
}

var _ fmt.Stringer = Kind(0)

func (kind Kind) String() string {
	if kind <= 0 || int(kind) >= len(kindNames) {
		panic("unsupported token kind")
	}
	return kindNames[kind]
}

// Token represents a range of characters represented by a lexical token within a Source.
type Token struct {
	// The kind of Token.
	Kind Kind

	// The position at which this Token begins in the source
	Location SourceLocation

	// The length of the token in the source
	Length uint

	// For punctuation and comment tokens, this is empty. For other kinds of token, this represents
	// the interpreted value of the token.
	Value string

	// Tokens are singly linked in the order they were lexed, including comments. The lexer uses the
	// link to serve lookahead without lexing a token twice.
	Next *Token
}

// Description describes a token as a string for error messages.
func (token *Token) Description() string {
	if len(token.Value) > 0 {
		return fmt.Sprintf(`%s "%s"`, token.Kind.String(), token.Value)
	}
	return token.Kind.String()
}

// IsKeyword returns true if the token is a Name with the given value.
func (token *Token) IsKeyword(keyword string) bool {
	return token.Kind == KindName && token.Value == keyword
}
