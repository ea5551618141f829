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
	"github.com/botobag/schemadiff/graphql/token"
)

// Node represents a node in an AST tree from parsing a schema document.
type Node interface {
	// Location indicates where the Node begins in the source.
	Location() token.SourceLocation
}

// Name represents a name.
//
// Reference: https://spec.graphql.org/June2018/#sec-Names
type Name struct {
	// Token is the lexical token that contains the name (usually scanned by lexer) and also
	// indicates the location in the source; Its kind must be an token.KindName.
	Token *token.Token
}

var _ Node = Name{}

// Value returns the name in string.
func (node Name) Value() string {
	if node.Token == nil {
		return ""
	}
	return node.Token.Value
}

// Location implements Node.
func (node Name) Location() token.SourceLocation {
	if node.Token == nil {
		return token.NoSourceLocation
	}
	return node.Token.Location
}

//===----------------------------------------------------------------------------------------====//
// Document
//===----------------------------------------------------------------------------------------====//
// A schema document describes the type system of a GraphQL service. Executable definitions
// (operations and fragments) are not accepted in it.
//
// Reference: https://spec.graphql.org/June2018/#sec-Language.Document

// Document represents a schema document.
type Document struct {
	// Source that the document was parsed from
	Source *token.Source

	// Definitions defined in the document.
	Definitions Definitions
}

var _ Node = Document{}

// Location implements Node.
func (node Document) Location() token.SourceLocation {
	if len(node.Definitions) == 0 {
		return token.NoSourceLocation
	}
	return node.Definitions[0].Location()
}

// Definitions is a list of Definition.
type Definitions []Definition

// Location implements Node.
func (nodes Definitions) Location() token.SourceLocation {
	if len(nodes) == 0 {
		return token.NoSourceLocation
	}
	return nodes[0].Location()
}

// Definition represents a type system definition or extension.
//
// Reference: https://spec.graphql.org/June2018/#TypeSystemDefinition
type Definition interface {
	Node

	// Directives applied to the definition. (Prepend "Get" to avoid name collision with the fields
	// in derived class.)
	GetDirectives() Directives

	// IsExtension returns true if the definition was introduced by the "extend" keyword.
	IsExtension() bool

	// definitionNode is a special mark to indicate a Definition node. It makes sure that only
	// definition node can be assigned to Definition.
	definitionNode()
}

// DefinitionBase is a common base that is embedded in Definition implementation.
type DefinitionBase struct {
	// StartToken is the first token of the definition: the description, the "extend" keyword or
	// the keyword that introduces the definition.
	StartToken *token.Token

	// ExtendToken is the "extend" keyword for an extension; nil for a definition.
	ExtendToken *token.Token

	// Directives that are applied to the definition
	Directives Directives
}

// Location implements Node.
func (base DefinitionBase) Location() token.SourceLocation {
	if base.StartToken == nil {
		return token.NoSourceLocation
	}
	return base.StartToken.Location
}

// GetDirectives provides implementation for Definition.GetDirectives.
func (base DefinitionBase) GetDirectives() Directives {
	return base.Directives
}

// IsExtension provides implementation for Definition.IsExtension.
func (base DefinitionBase) IsExtension() bool {
	return base.ExtendToken != nil
}

// definitionNode marks the embedding node as a Definition.
func (DefinitionBase) definitionNode() {}

//===----------------------------------------------------------------------------------------====//
// Schema
//===----------------------------------------------------------------------------------------====//

// OperationType specifies the type of operation model.
//
// Reference: https://spec.graphql.org/June2018/#OperationType
type OperationType string

// Enumeration of OperationType
const (
	OperationTypeQuery        OperationType = "query"
	OperationTypeMutation     OperationType = "mutation"
	OperationTypeSubscription OperationType = "subscription"
)

// SchemaDefinition defines (or extends with "extend schema") the root operation types.
//
// Reference: https://spec.graphql.org/June2018/#SchemaDefinition
type SchemaDefinition struct {
	DefinitionBase

	// OperationTypes maps operations to their root types in declaration order.
	OperationTypes []*OperationTypeDefinition
}

var _ Definition = (*SchemaDefinition)(nil)

// OperationTypeDefinition binds an operation to its root type.
//
// Reference: https://spec.graphql.org/June2018/#RootOperationTypeDefinition
type OperationTypeDefinition struct {
	// Operation is a Name token that contains the operation type.
	Operation *token.Token

	// Type is the root type
	Type NamedType
}

var _ Node = (*OperationTypeDefinition)(nil)

// Location implements Node.
func (node *OperationTypeDefinition) Location() token.SourceLocation {
	return node.Operation.Location
}

// OperationType returns the operation bound by the node.
func (node *OperationTypeDefinition) OperationType() OperationType {
	return OperationType(node.Operation.Value)
}

//===----------------------------------------------------------------------------------------====//
// Descriptions
//===----------------------------------------------------------------------------------------====//

// Description is a string or a block string that documents the element following it. The zero
// value means no description.
//
// Reference: https://spec.graphql.org/June2018/#sec-Descriptions
type Description struct {
	// Token contains the string; nil when the element has no description.
	Token *token.Token
}

// IsEmpty returns true if there is no description.
func (description Description) IsEmpty() bool {
	return description.Token == nil
}

// Value returns the content of the description.
func (description Description) Value() string {
	if description.Token == nil {
		return ""
	}
	return description.Token.Value
}

// IsBlockString returns true if the description was written as a block string.
func (description Description) IsBlockString() bool {
	return description.Token != nil && description.Token.Kind == token.KindBlockString
}

//===----------------------------------------------------------------------------------------====//
// Types
//===----------------------------------------------------------------------------------------====//

// TypeDefinition is implemented by definitions and extensions of named types.
//
// Reference: https://spec.graphql.org/June2018/#TypeDefinition
type TypeDefinition interface {
	Definition

	// TypeName returns the name of the defined type.
	TypeName() Name

	// GetDescription returns the description of the type.
	GetDescription() Description

	// typeDefinitionNode is a special mark to indicate a TypeDefinition node.
	typeDefinitionNode()
}

var (
	_ TypeDefinition = (*ScalarTypeDefinition)(nil)
	_ TypeDefinition = (*ObjectTypeDefinition)(nil)
	_ TypeDefinition = (*InterfaceTypeDefinition)(nil)
	_ TypeDefinition = (*UnionTypeDefinition)(nil)
	_ TypeDefinition = (*EnumTypeDefinition)(nil)
	_ TypeDefinition = (*InputObjectTypeDefinition)(nil)
)

// TypeDefinitionBase is embedded in every TypeDefinition implementation.
type TypeDefinitionBase struct {
	DefinitionBase

	// Description of the type
	Description Description

	// Name of the type
	Name Name
}

// TypeName implements TypeDefinition.
func (base TypeDefinitionBase) TypeName() Name {
	return base.Name
}

// GetDescription implements TypeDefinition.
func (base TypeDefinitionBase) GetDescription() Description {
	return base.Description
}

// typeDefinitionNode implements TypeDefinition.
func (TypeDefinitionBase) typeDefinitionNode() {}

// ScalarTypeDefinition defines a custom scalar.
//
// Reference: https://spec.graphql.org/June2018/#ScalarTypeDefinition
type ScalarTypeDefinition struct {
	TypeDefinitionBase
}

// ObjectTypeDefinition defines an object type.
//
// Reference: https://spec.graphql.org/June2018/#ObjectTypeDefinition
type ObjectTypeDefinition struct {
	TypeDefinitionBase

	// Interfaces implemented by the object
	Interfaces []NamedType

	// Fields in declaration order
	Fields []*FieldDefinition
}

// InterfaceTypeDefinition defines an interface type.
//
// Reference: https://spec.graphql.org/June2018/#InterfaceTypeDefinition
type InterfaceTypeDefinition struct {
	TypeDefinitionBase

	// Interfaces implemented by the interface
	Interfaces []NamedType

	// Fields in declaration order
	Fields []*FieldDefinition
}

// UnionTypeDefinition defines a union type.
//
// Reference: https://spec.graphql.org/June2018/#UnionTypeDefinition
type UnionTypeDefinition struct {
	TypeDefinitionBase

	// Types are the member types of the union.
	Types []NamedType
}

// EnumTypeDefinition defines an enum type.
//
// Reference: https://spec.graphql.org/June2018/#EnumTypeDefinition
type EnumTypeDefinition struct {
	TypeDefinitionBase

	// Values in declaration order
	Values []*EnumValueDefinition
}

// InputObjectTypeDefinition defines an input object type.
//
// Reference: https://spec.graphql.org/June2018/#InputObjectTypeDefinition
type InputObjectTypeDefinition struct {
	TypeDefinitionBase

	// Fields in declaration order
	Fields []*InputValueDefinition
}

// FieldDefinition defines a field of an object or an interface.
//
// Reference: https://spec.graphql.org/June2018/#FieldDefinition
type FieldDefinition struct {
	Description Description
	Name        Name
	Arguments   []*InputValueDefinition
	Type        Type
	Directives  Directives
}

var _ Node = (*FieldDefinition)(nil)

// Location implements Node.
func (node *FieldDefinition) Location() token.SourceLocation {
	return node.Name.Location()
}

// InputValueDefinition defines an argument or an input object field.
//
// Reference: https://spec.graphql.org/June2018/#InputValueDefinition
type InputValueDefinition struct {
	Description Description
	Name        Name
	Type        Type

	// DefaultValue is nil when the input value has no default.
	DefaultValue Value

	Directives Directives
}

var _ Node = (*InputValueDefinition)(nil)

// Location implements Node.
func (node *InputValueDefinition) Location() token.SourceLocation {
	return node.Name.Location()
}

// EnumValueDefinition defines one value of an enum type.
//
// Reference: https://spec.graphql.org/June2018/#EnumValueDefinition
type EnumValueDefinition struct {
	Description Description
	Name        Name
	Directives  Directives
}

var _ Node = (*EnumValueDefinition)(nil)

// Location implements Node.
func (node *EnumValueDefinition) Location() token.SourceLocation {
	return node.Name.Location()
}

//===----------------------------------------------------------------------------------------====//
// Directive definitions
//===----------------------------------------------------------------------------------------====//

// DirectiveDefinition defines a directive.
//
// Reference: https://spec.graphql.org/June2018/#DirectiveDefinition
type DirectiveDefinition struct {
	DefinitionBase

	Description Description
	Name        Name
	Arguments   []*InputValueDefinition

	// Repeatable is set when the "repeatable" keyword is present.
	Repeatable bool

	// Locations where the directive may be applied in declaration order
	Locations []Name
}

var _ Definition = (*DirectiveDefinition)(nil)

//===----------------------------------------------------------------------------------------====//
// Type references
//===----------------------------------------------------------------------------------------====//

// Type describes a type of data.
//
//	Type
//		NamedType
//		ListType
//		NonNullType
//
// Reference: https://spec.graphql.org/June2018/#Type
type Type interface {
	Node

	// String renders the type reference the way it is written in SDL (e.g., "[Int!]!").
	String() string

	// typeNode is a special mark to indicate a Type node. It makes sure that only type node can be
	// assigned to Type.
	typeNode()
}

var (
	_ Type = NamedType{}
	_ Type = ListType{}
	_ Type = NonNullType{}
)

// NullableType is a Type that can be wrapped in NonNullType. More specifically, NamedType and
// ListType.
type NullableType interface {
	Type
	nullableTypeNode()
}

var (
	_ NullableType = NamedType{}
	_ NullableType = ListType{}
)

// NamedType refers to a named type.
type NamedType struct {
	// Name of the type referred by this node
	Name Name
}

// Location implements Node.
func (t NamedType) Location() token.SourceLocation {
	return t.Name.Location()
}

// String implements Type.
func (t NamedType) String() string {
	return t.Name.Value()
}

// typeNode implements Type.
func (NamedType) typeNode() {}

// nullableTypeNode implements NullableType.
func (NamedType) nullableTypeNode() {}

// ListType referes to a list type of an item type.
type ListType struct {
	// LeftBracket is the token that starts the list type.
	LeftBracket *token.Token

	// ItemType specifies the type of item in the list.
	ItemType Type
}

// Location implements Node.
func (t ListType) Location() token.SourceLocation {
	if t.LeftBracket == nil {
		return t.ItemType.Location()
	}
	return t.LeftBracket.Location
}

// String implements Type.
func (t ListType) String() string {
	return "[" + t.ItemType.String() + "]"
}

// typeNode implements Type
func (ListType) typeNode() {}

// nullableTypeNode implements NullableType.
func (ListType) nullableTypeNode() {}

// NonNullType refers to a type that doesn't accept null value.
type NonNullType struct {
	// Type wrapped in this non-null type; Can only be an NamedType or an ListType.
	Type NullableType
}

// Location implements Node.
func (t NonNullType) Location() token.SourceLocation {
	return t.Type.Location()
}

// String implements Type.
func (t NonNullType) String() string {
	return t.Type.String() + "!"
}

// typeNode implements Type.
func (NonNullType) typeNode() {}

// NamedTypeOf unwraps list and non-null wrappers and returns the innermost named type.
func NamedTypeOf(t Type) NamedType {
	for {
		switch x := t.(type) {
		case NamedType:
			return x
		case ListType:
			t = x.ItemType
		case NonNullType:
			t = x.Type
		default:
			return NamedType{}
		}
	}
}

//===----------------------------------------------------------------------------------------====//
// Directives
//===----------------------------------------------------------------------------------------====//

// Directives specifies a list of directives
type Directives []*Directive

// Directive applies a directive.
type Directive struct {
	// At is the "@" token that begins the directive.
	At *token.Token

	// Name of the directive
	Name Name

	// Arguments given to the directive
	Arguments Arguments
}

var _ Node = (*Directive)(nil)

// Location implements Node.
func (node *Directive) Location() token.SourceLocation {
	if node.At == nil {
		return node.Name.Location()
	}
	return node.At.Location
}

// Arguments is a list of Argument.
type Arguments []*Argument

// Argument is a name-value pair given to a directive.
type Argument struct {
	Name  Name
	Value Value
}

var _ Node = (*Argument)(nil)

// Location implements Node.
func (node *Argument) Location() token.SourceLocation {
	return node.Name.Location()
}
