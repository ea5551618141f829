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

package ast

import (
	"strconv"

	"github.com/botobag/schemadiff/graphql/token"
)

//===----------------------------------------------------------------------------------------====//
// Input Values
//===----------------------------------------------------------------------------------------====//
// Default values and directive arguments in a schema document are constant input values: scalars,
// enumeration values, lists, or input objects. Variables cannot appear in them.
//
// Reference: https://spec.graphql.org/June2018/#sec-Input-Values

// Value represents a node containing a constant value.
//
// Reference: https://spec.graphql.org/June2018/#Value
type Value interface {
	Node

	// Interface returns the value as an interface{}.
	Interface() interface{}

	// valueNode is a special mark to indicate a Value node. It makes sure that only value node can
	// be assigned to Value.
	valueNode()
}

// The following implement Value interface.
var (
	_ Value = IntValue{}
	_ Value = FloatValue{}
	_ Value = StringValue{}
	_ Value = BooleanValue{}
	_ Value = NullValue{}
	_ Value = EnumValue{}
	_ Value = ListValue{}
	_ Value = ObjectValue{}
)

// IntValue represents a value node containing an integer.
//
// Reference: https://spec.graphql.org/June2018/#IntValue
type IntValue struct {
	// Token is the lexical token that contains the value; Its kind must be an token.KindInt.
	Token *token.Token
}

// Location implements Node.
func (value IntValue) Location() token.SourceLocation {
	return value.Token.Location
}

// Interface implements Value. Integers that don't fit in 64 bits are returned as their literal.
func (value IntValue) Interface() interface{} {
	v, err := strconv.ParseInt(value.Token.Value, 10, 64)
	if err != nil {
		return value.Token.Value
	}
	return v
}

// valueNode implements Value.
func (IntValue) valueNode() {}

// String return the literal in string that specifies the integer value.
func (value IntValue) String() string {
	return value.Token.Value
}

// FloatValue represents a value node containing a float.
//
// Reference: https://spec.graphql.org/June2018/#FloatValue
type FloatValue struct {
	// Token is the lexical token that contains the value; Its kind must be an token.KindFloat.
	Token *token.Token
}

// Location implements Node.
func (value FloatValue) Location() token.SourceLocation {
	return value.Token.Location
}

// Interface implements Value.
func (value FloatValue) Interface() interface{} {
	v, err := strconv.ParseFloat(value.Token.Value, 64)
	if err != nil {
		return value.Token.Value
	}
	return v
}

// valueNode implements Value.
func (FloatValue) valueNode() {}

// String return the literal in string that specifies the float value.
func (value FloatValue) String() string {
	return value.Token.Value
}

// StringValue represents a value node containing a string or a block string.
//
// Reference: https://spec.graphql.org/June2018/#StringValue
type StringValue struct {
	Token *token.Token
}

// Location implements Node.
func (value StringValue) Location() token.SourceLocation {
	return value.Token.Location
}

// Interface implements Value.
func (value StringValue) Interface() interface{} {
	return value.Token.Value
}

// valueNode implements Value.
func (StringValue) valueNode() {}

// Value returns the string value.
func (value StringValue) Value() string {
	return value.Token.Value
}

// IsBlockString returns true if the value was written as a block string.
func (value StringValue) IsBlockString() bool {
	return value.Token.Kind == token.KindBlockString
}

// BooleanValue represents a value node containing either true or false.
//
// Reference: https://spec.graphql.org/June2018/#BooleanValue
type BooleanValue struct {
	Token *token.Token
}

// Location implements Node.
func (value BooleanValue) Location() token.SourceLocation {
	return value.Token.Location
}

// Interface implements Value.
func (value BooleanValue) Interface() interface{} {
	return value.Value()
}

// Value returns the boolean value.
func (value BooleanValue) Value() bool {
	return value.Token.Value == "true"
}

// valueNode implements Value.
func (BooleanValue) valueNode() {}

// NullValue represents the keyword "null".
//
// Reference: https://spec.graphql.org/June2018/#NullValue
type NullValue struct {
	Token *token.Token
}

// Location implements Node.
func (value NullValue) Location() token.SourceLocation {
	return value.Token.Location
}

// Interface implements Value.
func (value NullValue) Interface() interface{} {
	return nil
}

// valueNode implements Value.
func (NullValue) valueNode() {}

// EnumValue represents a value node containing an enum value.
//
// Reference: https://spec.graphql.org/June2018/#EnumValue
type EnumValue struct {
	Token *token.Token
}

// Location implements Node.
func (value EnumValue) Location() token.SourceLocation {
	return value.Token.Location
}

// Interface implements Value.
func (value EnumValue) Interface() interface{} {
	return value.Token.Value
}

// valueNode implements Value.
func (EnumValue) valueNode() {}

// Value returns the name of the enum value.
func (value EnumValue) Value() string {
	return value.Token.Value
}

// ListValue represents a value node containing list of values.
//
// Reference: https://spec.graphql.org/June2018/#ListValue
type ListValue struct {
	// LeftBracket is the token that starts the list.
	LeftBracket *token.Token

	// Values in the list
	Values []Value
}

// Location implements Node.
func (value ListValue) Location() token.SourceLocation {
	return value.LeftBracket.Location
}

// Interface implements Value.
func (value ListValue) Interface() interface{} {
	result := make([]interface{}, len(value.Values))
	for i, v := range value.Values {
		result[i] = v.Interface()
	}
	return result
}

// valueNode implements Value.
func (ListValue) valueNode() {}

// ObjectValue represents a value node containing an input object.
//
// Reference: https://spec.graphql.org/June2018/#ObjectValue
type ObjectValue struct {
	// LeftBrace is the token that starts the object.
	LeftBrace *token.Token

	// Fields in the object in declaration order
	Fields []*ObjectField
}

// Location implements Node.
func (value ObjectValue) Location() token.SourceLocation {
	return value.LeftBrace.Location
}

// Interface implements Value.
func (value ObjectValue) Interface() interface{} {
	result := make(map[string]interface{}, len(value.Fields))
	for _, field := range value.Fields {
		result[field.Name.Value()] = field.Value.Interface()
	}
	return result
}

// valueNode implements Value.
func (ObjectValue) valueNode() {}

// ObjectField is a name-value pair in an ObjectValue.
//
// Reference: https://spec.graphql.org/June2018/#ObjectField
type ObjectField struct {
	Name  Name
	Value Value
}

var _ Node = (*ObjectField)(nil)

// Location implements Node.
func (node *ObjectField) Location() token.SourceLocation {
	return node.Name.Location()
}
