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

package lexer

import (
	"fmt"
	"strings"

	"github.com/botobag/schemadiff/graphql"
	"github.com/botobag/schemadiff/graphql/token"
)

// Lexer is a stateful stream generator of tokens for a schema document. Every time it is advanced,
// it returns the next non-ignored token in the Source. Assuming the source lexes, the final Token
// emitted by the lexer will be of kind EOF, after which the lexer will repeatedly return the same
// EOF token.
type Lexer struct {
	source *token.Source

	// The currently focused non-ignored token
	token *token.Token

	// Current offset into the source body; Moved by only consume() and consumeWhitespace().
	bytePos uint

	// This caches the value of source.Body().Size().
	bodySize uint
}

// New initializes a Lexer for given Source. The current token is <SOF>.
func New(source *token.Source) *Lexer {
	return &Lexer{
		source: source,
		token: &token.Token{
			Kind: token.KindSOF,
		},
		bodySize: source.Body().Size(),
	}
}

// Source returns the source being lexed.
func (lexer *Lexer) Source() *token.Source {
	return lexer.source
}

// Token returns current token.
func (lexer *Lexer) Token() *token.Token {
	return lexer.token
}

// Advance the token stream to the next non-ignored token.
func (lexer *Lexer) Advance() (*token.Token, error) {
	nextToken, err := lexer.Lookahead()
	if err != nil {
		return nil, err
	}
	lexer.token = nextToken
	return nextToken, nil
}

// Lookahead returns the next non-ignored token without switching the current token.
func (lexer *Lexer) Lookahead() (*token.Token, error) {
	tok := lexer.token
	if tok.Kind == token.KindEOF {
		return tok, nil
	}

	for {
		// Lex the next token and link it if we haven't done yet.
		if tok.Next == nil {
			nextToken, err := lexer.lexToken()
			if err != nil {
				return nil, err
			}
			tok.Next = nextToken
		}
		tok = tok.Next

		if tok.Kind != token.KindComment {
			return tok, nil
		}
	}
}

// Location returns SourceLocation for the current position in the source.
func (lexer *Lexer) Location() token.SourceLocation {
	return lexer.LocationWithPos(lexer.bytePos)
}

// LocationWithPos returns SourceLocation for the specified position in the source.
func (lexer *Lexer) LocationWithPos(bytePos uint) token.SourceLocation {
	return lexer.source.LocationFromPos(bytePos)
}

// peek peeks the next byte at bytePos without consume it.
func (lexer *Lexer) peek() byte {
	return lexer.source.Body().At(lexer.bytePos)
}

// consume reads a byte at current bytePos and then advances the bytePos.
func (lexer *Lexer) consume() byte {
	b := lexer.source.Body().At(lexer.bytePos)
	if lexer.bytePos < lexer.bodySize {
		lexer.bytePos++
	}
	return b
}

// consumeWhitespace consumes whitespace, line terminators, commas and a leading BOM.
func (lexer *Lexer) consumeWhitespace() {
	body := lexer.source.Body()
	bodySize := lexer.bodySize
	bytePos := lexer.bytePos

	if bytePos == 0 && bodySize >= 3 &&
		body[0] == '\xEF' && body[1] == '\xBB' && body[2] == '\xBF' {
		bytePos += 3
	}

	for bytePos < bodySize {
		switch body[bytePos] {
		case '\t', ' ', ',', '\n', '\r':
			bytePos++
		default:
			lexer.bytePos = bytePos
			return
		}
	}

	lexer.bytePos = bytePos
}

// consumeDigits consumes bytes from "0" to "9". Return the first non-digit byte.
func (lexer *Lexer) consumeDigits() byte {
	for {
		char := lexer.peek()
		if char < '0' || char > '9' {
			return char
		}
		lexer.consume()
	}
}

func (lexer *Lexer) charAtPosToStr(bytePos uint) string {
	if bytePos >= lexer.bodySize {
		return "<EOF>"
	}

	r, _ := lexer.source.Body().RuneAt(bytePos)

	// Print as ASCII for printable range.
	if r >= 0x20 && r < 0x7F {
		return fmt.Sprintf(`"%c"`, r)
	}

	// Print the escaped form. e.g. `"\\u0007"`
	return fmt.Sprintf(`"\u%04X"`, r)
}

func (lexer *Lexer) syntaxError(bytePos uint, format string, args ...interface{}) error {
	return graphql.NewSyntaxError(lexer.source, lexer.LocationWithPos(bytePos), fmt.Sprintf(format, args...))
}

// newUnexpectedCharacterError creates a syntax error to indicate an unexpected character at the
// given offset was encountered.
func (lexer *Lexer) newUnexpectedCharacterError(bytePos uint) error {
	char := lexer.source.Body().At(bytePos)
	switch {
	case char < 0x0020 && char != '\t' && char != '\n' && char != '\r':
		return lexer.syntaxError(bytePos, "Cannot contain the invalid character %s.", lexer.charAtPosToStr(bytePos))
	case char == '\'':
		return lexer.syntaxError(bytePos, "Unexpected single quote character ('), did you mean to use a double quote (\")?")
	}
	return lexer.syntaxError(bytePos, "Cannot parse the unexpected character %s.", lexer.charAtPosToStr(bytePos))
}

// makeToken creates a token that ends at current bytePos.
func (lexer *Lexer) makeToken(kind token.Kind, length uint, value string) *token.Token {
	return &token.Token{
		Kind:     kind,
		Location: lexer.LocationWithPos(lexer.bytePos - length),
		Length:   length,
		Value:    value,
	}
}

// lexToken gets the next token from the source starting at bytePos. This skips over whitespaces
// until it finds the next lexable token, then lexes punctuators immediately or calls the
// appropriate helper function for more complicated tokens.
func (lexer *Lexer) lexToken() (*token.Token, error) {
	lexer.consumeWhitespace()

	if lexer.bytePos >= lexer.bodySize {
		return &token.Token{
			Kind:     token.KindEOF,
			Location: lexer.Location(),
		}, nil
	}

	char := lexer.peek()

	// punctuator lexes one byte into a token of the given kind.
	punctuator := func(kind token.Kind) (*token.Token, error) {
		lexer.consume()
		return lexer.makeToken(kind, 1, ""), nil
	}

	switch char {
	case '!':
		return punctuator(token.KindBang)
	case '#':
		return lexer.lexComment(), nil
	case '&':
		return punctuator(token.KindAmp)
	case '(':
		return punctuator(token.KindLeftParen)
	case ')':
		return punctuator(token.KindRightParen)
	case ':':
		return punctuator(token.KindColon)
	case '=':
		return punctuator(token.KindEquals)
	case '@':
		return punctuator(token.KindAt)
	case '[':
		return punctuator(token.KindLeftBracket)
	case ']':
		return punctuator(token.KindRightBracket)
	case '{':
		return punctuator(token.KindLeftBrace)
	case '|':
		return punctuator(token.KindPipe)
	case '}':
		return punctuator(token.KindRightBrace)
	case '"':
		lexer.consume()
		if lexer.peek() == '"' {
			lexer.consume()
			if lexer.peek() == '"' {
				lexer.consume()
				return lexer.lexBlockString()
			}
			// Two quotes without the third one is an empty string.
			return lexer.makeToken(token.KindString, 2, ""), nil
		}
		return lexer.lexString()
	}

	switch {
	case isNameStart(char):
		return lexer.lexName(), nil
	case char == '-' || (char >= '0' && char <= '9'):
		return lexer.lexNumber()
	}

	return nil, lexer.newUnexpectedCharacterError(lexer.bytePos)
}

func isNameStart(char byte) bool {
	return char == '_' || (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}

func isNameContinue(char byte) bool {
	return isNameStart(char) || (char >= '0' && char <= '9')
}

// lexComment reads a comment token from the source file.
//
//	Comment ::
//		# CommentChar*
//
// Reference: https://spec.graphql.org/June2018/#sec-Comments
func (lexer *Lexer) lexComment() *token.Token {
	startPos := lexer.bytePos

	// Consume #.
	lexer.consume()
	for {
		char := lexer.peek()
		// SourceCharacter but not LineTerminator
		if char > 0x1F || char == '\t' {
			lexer.consume()
			continue
		}
		break
	}

	return lexer.makeToken(token.KindComment, lexer.bytePos-startPos, "")
}

// lexNumber reads a number token from the source file, either a float or an int depending on
// whether a decimal point or an exponent appears. Numbers only occur in default values and
// directive arguments of a schema document.
//
// Reference: https://spec.graphql.org/June2018/#sec-Int-Value
func (lexer *Lexer) lexNumber() (*token.Token, error) {
	startPos := lexer.bytePos
	tokenKind := token.KindInt

	char := lexer.consume()
	if char == '-' {
		char = lexer.peek()
		if char < '0' || char > '9' {
			return nil, lexer.syntaxError(lexer.bytePos,
				"Invalid number, expected digit after '-' but got: %s.", lexer.charAtPosToStr(lexer.bytePos))
		}
		lexer.consume()
	}

	if char == '0' {
		if char = lexer.peek(); char >= '0' && char <= '9' {
			return nil, lexer.syntaxError(lexer.bytePos,
				"Invalid number, unexpected digit after 0: %s.", lexer.charAtPosToStr(lexer.bytePos))
		}
	} else {
		char = lexer.consumeDigits()
	}

	if char == '.' {
		tokenKind = token.KindFloat
		lexer.consume()
		if char = lexer.peek(); char < '0' || char > '9' {
			return nil, lexer.syntaxError(lexer.bytePos,
				"Invalid number, expected digit after decimal point ('.') but got: %s.",
				lexer.charAtPosToStr(lexer.bytePos))
		}
		char = lexer.consumeDigits()
	}

	if char == 'E' || char == 'e' {
		tokenKind = token.KindFloat
		lexer.consume()
		if char = lexer.peek(); char == '+' || char == '-' {
			lexer.consume()
		}
		if char = lexer.peek(); char < '0' || char > '9' {
			return nil, lexer.syntaxError(lexer.bytePos,
				"Invalid number, expected digit but got: %s.", lexer.charAtPosToStr(lexer.bytePos))
		}
		char = lexer.consumeDigits()
	}

	// Numbers must not be directly followed by a name start or a dot.
	if char == '.' || isNameStart(char) {
		return nil, lexer.syntaxError(lexer.bytePos,
			"Invalid number, expected digit but got: %s.", lexer.charAtPosToStr(lexer.bytePos))
	}

	return lexer.makeToken(
		tokenKind,
		lexer.bytePos-startPos,
		string(lexer.source.Body()[startPos:lexer.bytePos])), nil
}

// lexString reads a string token from the source file. The opening quote was consumed by
// lexToken.
//
//	StringCharacter ::
//		SourceCharacter but not " or \ or LineTerminator
//		\u EscapedUnicode
//		\ EscapedCharacter
//
// Reference: https://spec.graphql.org/June2018/#sec-String-Value
func (lexer *Lexer) lexString() (*token.Token, error) {
	startPos := lexer.bytePos - 1

	var value strings.Builder
	for lexer.bytePos < lexer.bodySize {
		char := lexer.peek()

		if char == '\n' || char == '\r' {
			break
		}

		if char == '"' {
			lexer.consume()
			return lexer.makeToken(token.KindString, lexer.bytePos-startPos, value.String()), nil
		}

		if char < 0x0020 && char != '\t' {
			return nil, lexer.syntaxError(lexer.bytePos,
				"Invalid character within String: %s.", lexer.charAtPosToStr(lexer.bytePos))
		}

		lexer.consume()
		if char != '\\' {
			value.WriteByte(char)
			continue
		}

		escapePos := lexer.bytePos - 1
		switch char = lexer.consume(); char {
		case '"', '\\', '/':
			value.WriteByte(char)
		case 'b':
			value.WriteByte('\b')
		case 'f':
			value.WriteByte('\f')
		case 'n':
			value.WriteByte('\n')
		case 'r':
			value.WriteByte('\r')
		case 't':
			value.WriteByte('\t')

		case 'u':
			if lexer.bodySize-lexer.bytePos >= 4 {
				charCode := uniCharCode(lexer.consume(), lexer.consume(), lexer.consume(), lexer.consume())
				if charCode >= 0 {
					value.WriteRune(charCode)
					break
				}
			}
			end := escapePos + 6
			if end > lexer.bodySize {
				end = lexer.bodySize
			}
			return nil, lexer.syntaxError(escapePos,
				"Invalid character escape sequence: %s.", string(lexer.source.Body()[escapePos:end]))

		default:
			return nil, lexer.syntaxError(escapePos, "Invalid character escape sequence: \\%c.", char)
		}
	}

	return nil, lexer.syntaxError(lexer.bytePos, "Unterminated string.")
}

// uniCharCode converts four hexadecimal chars to the rune they represent. Returns a negative number
// if any char is not a hex digit.
func uniCharCode(a byte, b byte, c byte, d byte) rune {
	return (char2hex(a) << 12) | (char2hex(b) << 8) | (char2hex(c) << 4) | char2hex(d)
}

// char2hex converts a hex character to its integer value. Returns -1 on error.
func char2hex(a byte) rune {
	switch {
	case a >= '0' && a <= '9':
		return rune(a - '0')
	case a >= 'A' && a <= 'F':
		return rune(a - 'A' + 10)
	case a >= 'a' && a <= 'f':
		return rune(a - 'a' + 10)
	}
	return -1
}

// lexBlockString reads a block string token (typically a description) from the source file. The
// opening triple-quote was consumed by lexToken.
func (lexer *Lexer) lexBlockString() (*token.Token, error) {
	startPos := lexer.bytePos - 3
	body := lexer.source.Body()

	var raw strings.Builder
	for lexer.bytePos < lexer.bodySize {
		char := lexer.peek()

		switch {
		case char == '"' && body.At(lexer.bytePos+1) == '"' && body.At(lexer.bytePos+2) == '"':
			lexer.bytePos += 3
			return lexer.makeToken(
				token.KindBlockString,
				lexer.bytePos-startPos,
				blockStringValue(raw.String())), nil

		case char == '\\' && body.At(lexer.bytePos+1) == '"' &&
			body.At(lexer.bytePos+2) == '"' && body.At(lexer.bytePos+3) == '"':
			// Escaped triple-quote (\""").
			lexer.bytePos += 4
			raw.WriteString(`"""`)

		case char < 0x0020 && char != '\t' && char != '\r' && char != '\n':
			return nil, lexer.syntaxError(lexer.bytePos,
				"Invalid character within String: %s.", lexer.charAtPosToStr(lexer.bytePos))

		default:
			lexer.consume()
			raw.WriteByte(char)
		}
	}

	return nil, lexer.syntaxError(lexer.bytePos, "Unterminated string.")
}

// lexName lexes a Name token from source.
//
//	Name ::
//		/[_A-Za-z][_0-9A-Za-z]*/
//
// Reference: https://spec.graphql.org/June2018/#sec-Names
func (lexer *Lexer) lexName() *token.Token {
	startPos := lexer.bytePos

	lexer.consume()
	for isNameContinue(lexer.peek()) {
		lexer.consume()
	}

	return lexer.makeToken(
		token.KindName,
		lexer.bytePos-startPos,
		string(lexer.source.Body()[startPos:lexer.bytePos]),
	)
}
