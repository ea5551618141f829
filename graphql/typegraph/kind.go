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

package typegraph

// Kind classifies a named type in a TypeGraph. The set is closed; it is assigned by the builder
// from the definition that introduced the type.
type Kind uint8

// Enumeration of Kind
const (
	KindObject Kind = iota
	KindInterface
	KindScalar
	KindEnum
	KindInputObject
	KindUnion
)

// String returns the label of the kind as it appears in change records (e.g., "ObjectType").
func (kind Kind) String() string {
	switch kind {
	case KindObject:
		return "ObjectType"
	case KindInterface:
		return "InterfaceType"
	case KindScalar:
		return "ScalarType"
	case KindEnum:
		return "EnumType"
	case KindInputObject:
		return "InputObjectType"
	case KindUnion:
		return "UnionType"
	}
	return "UnknownType"
}

// keyword returns the SDL keyword that defines a type of the kind.
func (kind Kind) keyword() string {
	switch kind {
	case KindObject:
		return "object"
	case KindInterface:
		return "interface"
	case KindScalar:
		return "scalar"
	case KindEnum:
		return "enum"
	case KindInputObject:
		return "input object"
	case KindUnion:
		return "union"
	}
	return "unknown"
}

// HasFields returns true for kinds whose fields are compared: objects and interfaces.
func (kind Kind) HasFields() bool {
	return kind == KindObject || kind == KindInterface
}
