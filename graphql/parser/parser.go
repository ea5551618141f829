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

package parser

import (
	"fmt"

	"github.com/botobag/schemadiff/graphql"
	"github.com/botobag/schemadiff/graphql/ast"
	"github.com/botobag/schemadiff/graphql/lexer"
	"github.com/botobag/schemadiff/graphql/token"
)

// parser holds internal state during parsing.
type parser struct {
	// The lexer for tokenization
	lexer *lexer.Lexer
}

func newParser(source *token.Source) (*parser, error) {
	if source == nil {
		return nil, graphql.NewError("Must provide Source. Received: nil", graphql.Op("parser.Parse"))
	}
	return &parser{
		lexer: lexer.New(source),
	}, nil
}

// If the next token is of the given kind, return true after advancing the lexer. Otherwise, do not
// change the parser state and return false.
func (p *parser) skip(tokenKind token.Kind) (bool, error) {
	if p.lexer.Token().Kind == tokenKind {
		if _, err := p.lexer.Advance(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// If the next token is of the given kind, return that token after advancing the lexer. Otherwise,
// do not change the parser state and throw an error.
func (p *parser) expect(tokenKind token.Kind) (*token.Token, error) {
	tok := p.lexer.Token()
	if tok.Kind == tokenKind {
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}
		return tok, nil
	}
	return nil, graphql.NewSyntaxError(
		p.lexer.Source(),
		tok.Location,
		fmt.Sprintf("Expected %v, found %s", tokenKind, tok.Description()))
}

// If the next token is a keyword with the given value, return true after advancing the lexer.
// Otherwise, do not change the parser state and return false.
func (p *parser) skipKeyword(keyword string) (bool, error) {
	if p.peek().IsKeyword(keyword) {
		if _, err := p.lexer.Advance(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// If the next token is a keyword with the given value, return that token after advancing the
// lexer. Otherwise, do not change the parser state and throw an error.
func (p *parser) expectKeyword(keyword string) (*token.Token, error) {
	tok := p.peek()
	hasKeyword, err := p.skipKeyword(keyword)
	if err != nil {
		return nil, err
	} else if !hasKeyword {
		return nil, graphql.NewSyntaxError(p.lexer.Source(), tok.Location,
			fmt.Sprintf(`Expected "%s", found %s`, keyword, tok.Description()))
	}
	return tok, nil
}

// Peek return current token without consume it.
func (p *parser) peek() *token.Token {
	return p.lexer.Token()
}

// Helper function for creating an error when an unexpected lexed token is encountered.
func (p *parser) unexpected() error {
	return p.unexpectedToken(p.lexer.Token())
}

func (p *parser) unexpectedToken(tok *token.Token) error {
	return graphql.NewSyntaxError(
		p.lexer.Source(), tok.Location, fmt.Sprintf("Unexpected %s", tok.Description()))
}

// Converts a name lex token into a name parse node.
func (p *parser) parseName() (ast.Name, error) {
	tok, err := p.expect(token.KindName)
	if err != nil {
		return ast.Name{}, err
	}
	return ast.Name{
		Token: tok,
	}, nil
}

// Implements the parsing rules in the Document section.

//	Document ::
//		Definition+
func (p *parser) parseDocument() (ast.Document, error) {
	// Expect SOF.
	if _, err := p.expect(token.KindSOF); err != nil {
		return ast.Document{}, err
	}

	definitions := make(ast.Definitions, 0, 1)
	for {
		definition, err := p.parseDefinition()
		if err != nil {
			return ast.Document{}, err
		}

		definitions = append(definitions, definition)

		// Stop on encountering an EOF token.
		stop, err := p.skip(token.KindEOF)
		if err != nil {
			return ast.Document{}, err
		}

		if stop {
			break
		}
	}

	return ast.Document{
		Source:      p.lexer.Source(),
		Definitions: definitions,
	}, nil
}

func isDescription(tok *token.Token) bool {
	return tok.Kind == token.KindString || tok.Kind == token.KindBlockString
}

//	Definition ::
//		TypeSystemDefinition
//		TypeSystemExtension
//
// ExecutableDefinition is rejected: a schema document only describes a type system.
func (p *parser) parseDefinition() (ast.Definition, error) {
	keywordToken := p.peek()
	if isDescription(keywordToken) {
		var err error
		if keywordToken, err = p.lexer.Lookahead(); err != nil {
			return nil, err
		}
	}

	switch keywordToken.Kind {
	case token.KindName:
		switch keywordToken.Value {
		case "schema":
			return p.parseSchemaDefinition()
		case "scalar":
			return p.parseScalarTypeDefinition()
		case "type":
			return p.parseObjectTypeDefinition()
		case "interface":
			return p.parseInterfaceTypeDefinition()
		case "union":
			return p.parseUnionTypeDefinition()
		case "enum":
			return p.parseEnumTypeDefinition()
		case "input":
			return p.parseInputObjectTypeDefinition()
		case "directive":
			return p.parseDirectiveDefinition()
		case "extend":
			if isDescription(p.peek()) {
				// Extensions cannot be described.
				return nil, p.unexpectedToken(keywordToken)
			}
			return p.parseTypeSystemExtension()
		case "query", "mutation", "subscription", "fragment":
			return nil, graphql.NewSyntaxError(p.lexer.Source(), keywordToken.Location, fmt.Sprintf(
				"Unexpected %s; executable definitions are not allowed in a schema document",
				keywordToken.Description()))
		}

	case token.KindLeftBrace:
		return nil, graphql.NewSyntaxError(p.lexer.Source(), keywordToken.Location,
			`Unexpected "{"; executable definitions are not allowed in a schema document`)
	}

	return nil, p.unexpectedToken(keywordToken)
}

//	Description ::
//		StringValue
func (p *parser) parseDescription() (ast.Description, error) {
	tok := p.peek()
	if !isDescription(tok) {
		return ast.Description{}, nil
	}
	if _, err := p.lexer.Advance(); err != nil {
		return ast.Description{}, err
	}
	return ast.Description{Token: tok}, nil
}

//	SchemaDefinition ::
//		schema Directives? { OperationTypeDefinition+ }
func (p *parser) parseSchemaDefinition() (*ast.SchemaDefinition, error) {
	startToken := p.peek()

	// Descriptions on schema definitions are accepted and dropped.
	if _, err := p.parseDescription(); err != nil {
		return nil, err
	}

	if _, err := p.expectKeyword("schema"); err != nil {
		return nil, err
	}

	directives, err := p.parseDirectives()
	if err != nil {
		return nil, err
	}

	operationTypes, err := p.parseOperationTypeDefinitions()
	if err != nil {
		return nil, err
	}

	return &ast.SchemaDefinition{
		DefinitionBase: ast.DefinitionBase{
			StartToken: startToken,
			Directives: directives,
		},
		OperationTypes: operationTypes,
	}, nil
}

// parseOperationTypeDefinitions parses `{ OperationTypeDefinition+ }`.
func (p *parser) parseOperationTypeDefinitions() ([]*ast.OperationTypeDefinition, error) {
	if _, err := p.expect(token.KindLeftBrace); err != nil {
		return nil, err
	}

	var operationTypes []*ast.OperationTypeDefinition
	for {
		operationType, err := p.parseOperationTypeDefinition()
		if err != nil {
			return nil, err
		}
		operationTypes = append(operationTypes, operationType)

		stop, err := p.skip(token.KindRightBrace)
		if err != nil {
			return nil, err
		} else if stop {
			return operationTypes, nil
		}
	}
}

//	OperationTypeDefinition ::
//		OperationType : NamedType
func (p *parser) parseOperationTypeDefinition() (*ast.OperationTypeDefinition, error) {
	operation := p.peek()
	switch {
	case operation.IsKeyword(string(ast.OperationTypeQuery)),
		operation.IsKeyword(string(ast.OperationTypeMutation)),
		operation.IsKeyword(string(ast.OperationTypeSubscription)):
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}
	default:
		return nil, p.unexpected()
	}

	if _, err := p.expect(token.KindColon); err != nil {
		return nil, err
	}

	namedType, err := p.parseNamedType()
	if err != nil {
		return nil, err
	}

	return &ast.OperationTypeDefinition{
		Operation: operation,
		Type:      namedType,
	}, nil
}

// parseTypeDefinitionBase parses `Description? keyword Name`.
func (p *parser) parseTypeDefinitionBase(keyword string) (ast.TypeDefinitionBase, error) {
	var base ast.TypeDefinitionBase
	base.StartToken = p.peek()

	description, err := p.parseDescription()
	if err != nil {
		return base, err
	}
	base.Description = description

	if _, err := p.expectKeyword(keyword); err != nil {
		return base, err
	}

	if base.Name, err = p.parseName(); err != nil {
		return base, err
	}

	return base, nil
}

//	ScalarTypeDefinition ::
//		Description? scalar Name Directives?
func (p *parser) parseScalarTypeDefinition() (*ast.ScalarTypeDefinition, error) {
	base, err := p.parseTypeDefinitionBase("scalar")
	if err != nil {
		return nil, err
	}

	if base.Directives, err = p.parseDirectives(); err != nil {
		return nil, err
	}

	return &ast.ScalarTypeDefinition{
		TypeDefinitionBase: base,
	}, nil
}

//	ObjectTypeDefinition ::
//		Description? type Name ImplementsInterfaces? Directives? FieldsDefinition?
func (p *parser) parseObjectTypeDefinition() (*ast.ObjectTypeDefinition, error) {
	base, err := p.parseTypeDefinitionBase("type")
	if err != nil {
		return nil, err
	}

	definition := &ast.ObjectTypeDefinition{}
	if definition.Interfaces, err = p.parseImplementsInterfaces(); err != nil {
		return nil, err
	}
	if base.Directives, err = p.parseDirectives(); err != nil {
		return nil, err
	}
	if definition.Fields, err = p.parseFieldsDefinition(); err != nil {
		return nil, err
	}
	definition.TypeDefinitionBase = base

	return definition, nil
}

//	InterfaceTypeDefinition ::
//		Description? interface Name ImplementsInterfaces? Directives? FieldsDefinition?
func (p *parser) parseInterfaceTypeDefinition() (*ast.InterfaceTypeDefinition, error) {
	base, err := p.parseTypeDefinitionBase("interface")
	if err != nil {
		return nil, err
	}

	definition := &ast.InterfaceTypeDefinition{}
	if definition.Interfaces, err = p.parseImplementsInterfaces(); err != nil {
		return nil, err
	}
	if base.Directives, err = p.parseDirectives(); err != nil {
		return nil, err
	}
	if definition.Fields, err = p.parseFieldsDefinition(); err != nil {
		return nil, err
	}
	definition.TypeDefinitionBase = base

	return definition, nil
}

//	ImplementsInterfaces ::
//		implements &? NamedType
//		ImplementsInterfaces & NamedType
func (p *parser) parseImplementsInterfaces() ([]ast.NamedType, error) {
	hasImplements, err := p.skipKeyword("implements")
	if err != nil || !hasImplements {
		return nil, err
	}

	// Optional leading ampersand
	if _, err := p.skip(token.KindAmp); err != nil {
		return nil, err
	}

	var interfaces []ast.NamedType
	for {
		namedType, err := p.parseNamedType()
		if err != nil {
			return nil, err
		}
		interfaces = append(interfaces, namedType)

		more, err := p.skip(token.KindAmp)
		if err != nil {
			return nil, err
		} else if !more {
			return interfaces, nil
		}
	}
}

//	FieldsDefinition ::
//		{ FieldDefinition+ }
func (p *parser) parseFieldsDefinition() ([]*ast.FieldDefinition, error) {
	hasFields, err := p.skip(token.KindLeftBrace)
	if err != nil || !hasFields {
		return nil, err
	}

	var fields []*ast.FieldDefinition
	for {
		field, err := p.parseFieldDefinition()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)

		stop, err := p.skip(token.KindRightBrace)
		if err != nil {
			return nil, err
		} else if stop {
			return fields, nil
		}
	}
}

//	FieldDefinition ::
//		Description? Name ArgumentsDefinition? : Type Directives?
func (p *parser) parseFieldDefinition() (*ast.FieldDefinition, error) {
	var (
		field = &ast.FieldDefinition{}
		err   error
	)

	if field.Description, err = p.parseDescription(); err != nil {
		return nil, err
	}
	if field.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if field.Arguments, err = p.parseArgumentDefinitions(); err != nil {
		return nil, err
	}
	if _, err = p.expect(token.KindColon); err != nil {
		return nil, err
	}
	if field.Type, err = p.parseType(); err != nil {
		return nil, err
	}
	if field.Directives, err = p.parseDirectives(); err != nil {
		return nil, err
	}

	return field, nil
}

//	ArgumentsDefinition ::
//		( InputValueDefinition+ )
func (p *parser) parseArgumentDefinitions() ([]*ast.InputValueDefinition, error) {
	hasArgs, err := p.skip(token.KindLeftParen)
	if err != nil || !hasArgs {
		return nil, err
	}
	return p.parseInputValueDefinitions(token.KindRightParen)
}

// parseInputValueDefinitions parses InputValueDefinition+ up to and including the closing token.
func (p *parser) parseInputValueDefinitions(closeKind token.Kind) ([]*ast.InputValueDefinition, error) {
	var values []*ast.InputValueDefinition
	for {
		value, err := p.parseInputValueDefinition()
		if err != nil {
			return nil, err
		}
		values = append(values, value)

		stop, err := p.skip(closeKind)
		if err != nil {
			return nil, err
		} else if stop {
			return values, nil
		}
	}
}

//	InputValueDefinition ::
//		Description? Name : Type DefaultValue? Directives?
func (p *parser) parseInputValueDefinition() (*ast.InputValueDefinition, error) {
	var (
		value = &ast.InputValueDefinition{}
		err   error
	)

	if value.Description, err = p.parseDescription(); err != nil {
		return nil, err
	}
	if value.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if _, err = p.expect(token.KindColon); err != nil {
		return nil, err
	}
	if value.Type, err = p.parseType(); err != nil {
		return nil, err
	}

	hasDefault, err := p.skip(token.KindEquals)
	if err != nil {
		return nil, err
	} else if hasDefault {
		if value.DefaultValue, err = p.parseValue(); err != nil {
			return nil, err
		}
	}

	if value.Directives, err = p.parseDirectives(); err != nil {
		return nil, err
	}

	return value, nil
}

//	UnionTypeDefinition ::
//		Description? union Name Directives? UnionMemberTypes?
func (p *parser) parseUnionTypeDefinition() (*ast.UnionTypeDefinition, error) {
	base, err := p.parseTypeDefinitionBase("union")
	if err != nil {
		return nil, err
	}

	definition := &ast.UnionTypeDefinition{}
	if base.Directives, err = p.parseDirectives(); err != nil {
		return nil, err
	}
	if definition.Types, err = p.parseUnionMemberTypes(); err != nil {
		return nil, err
	}
	definition.TypeDefinitionBase = base

	return definition, nil
}

//	UnionMemberTypes ::
//		= |? NamedType
//		UnionMemberTypes | NamedType
func (p *parser) parseUnionMemberTypes() ([]ast.NamedType, error) {
	hasMembers, err := p.skip(token.KindEquals)
	if err != nil || !hasMembers {
		return nil, err
	}

	// Optional leading pipe
	if _, err := p.skip(token.KindPipe); err != nil {
		return nil, err
	}

	var types []ast.NamedType
	for {
		namedType, err := p.parseNamedType()
		if err != nil {
			return nil, err
		}
		types = append(types, namedType)

		more, err := p.skip(token.KindPipe)
		if err != nil {
			return nil, err
		} else if !more {
			return types, nil
		}
	}
}

//	EnumTypeDefinition ::
//		Description? enum Name Directives? EnumValuesDefinition?
func (p *parser) parseEnumTypeDefinition() (*ast.EnumTypeDefinition, error) {
	base, err := p.parseTypeDefinitionBase("enum")
	if err != nil {
		return nil, err
	}

	definition := &ast.EnumTypeDefinition{}
	if base.Directives, err = p.parseDirectives(); err != nil {
		return nil, err
	}
	if definition.Values, err = p.parseEnumValueDefinitions(); err != nil {
		return nil, err
	}
	definition.TypeDefinitionBase = base

	return definition, nil
}

//	EnumValuesDefinition ::
//		{ EnumValueDefinition+ }
func (p *parser) parseEnumValueDefinitions() ([]*ast.EnumValueDefinition, error) {
	hasValues, err := p.skip(token.KindLeftBrace)
	if err != nil || !hasValues {
		return nil, err
	}

	var values []*ast.EnumValueDefinition
	for {
		value, err := p.parseEnumValueDefinition()
		if err != nil {
			return nil, err
		}
		values = append(values, value)

		stop, err := p.skip(token.KindRightBrace)
		if err != nil {
			return nil, err
		} else if stop {
			return values, nil
		}
	}
}

//	EnumValueDefinition ::
//		Description? EnumValue Directives?
//
//	EnumValue ::
//		Name but not true or false or null
func (p *parser) parseEnumValueDefinition() (*ast.EnumValueDefinition, error) {
	var (
		value = &ast.EnumValueDefinition{}
		err   error
	)

	if value.Description, err = p.parseDescription(); err != nil {
		return nil, err
	}

	tok := p.peek()
	if tok.IsKeyword("true") || tok.IsKeyword("false") || tok.IsKeyword("null") {
		return nil, graphql.NewSyntaxError(p.lexer.Source(), tok.Location,
			fmt.Sprintf("%s is reserved and cannot be used for an enum value", tok.Description()))
	}

	if value.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if value.Directives, err = p.parseDirectives(); err != nil {
		return nil, err
	}

	return value, nil
}

//	InputObjectTypeDefinition ::
//		Description? input Name Directives? InputFieldsDefinition?
func (p *parser) parseInputObjectTypeDefinition() (*ast.InputObjectTypeDefinition, error) {
	base, err := p.parseTypeDefinitionBase("input")
	if err != nil {
		return nil, err
	}

	definition := &ast.InputObjectTypeDefinition{}
	if base.Directives, err = p.parseDirectives(); err != nil {
		return nil, err
	}
	if definition.Fields, err = p.parseInputFieldsDefinition(); err != nil {
		return nil, err
	}
	definition.TypeDefinitionBase = base

	return definition, nil
}

//	InputFieldsDefinition ::
//		{ InputValueDefinition+ }
func (p *parser) parseInputFieldsDefinition() ([]*ast.InputValueDefinition, error) {
	hasFields, err := p.skip(token.KindLeftBrace)
	if err != nil || !hasFields {
		return nil, err
	}
	return p.parseInputValueDefinitions(token.KindRightBrace)
}

// directiveLocations lists the valid values of DirectiveLocation.
//
// Reference: https://spec.graphql.org/June2018/#DirectiveLocation
var directiveLocations = map[string]bool{
	// ExecutableDirectiveLocation
	"QUERY":               true,
	"MUTATION":            true,
	"SUBSCRIPTION":        true,
	"FIELD":               true,
	"FRAGMENT_DEFINITION": true,
	"FRAGMENT_SPREAD":     true,
	"INLINE_FRAGMENT":     true,
	"VARIABLE_DEFINITION": true,

	// TypeSystemDirectiveLocation
	"SCHEMA":                 true,
	"SCALAR":                 true,
	"OBJECT":                 true,
	"FIELD_DEFINITION":       true,
	"ARGUMENT_DEFINITION":    true,
	"INTERFACE":              true,
	"UNION":                  true,
	"ENUM":                   true,
	"ENUM_VALUE":             true,
	"INPUT_OBJECT":           true,
	"INPUT_FIELD_DEFINITION": true,
}

//	DirectiveDefinition ::
//		Description? directive @ Name ArgumentsDefinition? repeatable? on DirectiveLocations
func (p *parser) parseDirectiveDefinition() (*ast.DirectiveDefinition, error) {
	var (
		definition = &ast.DirectiveDefinition{}
		err        error
	)
	definition.StartToken = p.peek()

	if definition.Description, err = p.parseDescription(); err != nil {
		return nil, err
	}
	if _, err = p.expectKeyword("directive"); err != nil {
		return nil, err
	}
	if _, err = p.expect(token.KindAt); err != nil {
		return nil, err
	}
	if definition.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if definition.Arguments, err = p.parseArgumentDefinitions(); err != nil {
		return nil, err
	}
	if definition.Repeatable, err = p.skipKeyword("repeatable"); err != nil {
		return nil, err
	}
	if _, err = p.expectKeyword("on"); err != nil {
		return nil, err
	}

	//	DirectiveLocations ::
	//		|? DirectiveLocation
	//		DirectiveLocations | DirectiveLocation
	if _, err = p.skip(token.KindPipe); err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.Kind != token.KindName || !directiveLocations[tok.Value] {
			return nil, p.unexpected()
		}

		location, err := p.parseName()
		if err != nil {
			return nil, err
		}
		definition.Locations = append(definition.Locations, location)

		more, err := p.skip(token.KindPipe)
		if err != nil {
			return nil, err
		} else if !more {
			return definition, nil
		}
	}
}

//	TypeSystemExtension ::
//		SchemaExtension
//		TypeExtension
func (p *parser) parseTypeSystemExtension() (ast.Definition, error) {
	extendToken, err := p.expectKeyword("extend")
	if err != nil {
		return nil, err
	}

	keywordToken := p.peek()
	if keywordToken.Kind == token.KindName {
		var definition ast.Definition
		switch keywordToken.Value {
		case "schema":
			definition, err = p.parseSchemaExtension(extendToken)
		case "scalar":
			definition, err = p.parseScalarTypeExtension(extendToken)
		case "type":
			definition, err = p.parseObjectTypeExtension(extendToken)
		case "interface":
			definition, err = p.parseInterfaceTypeExtension(extendToken)
		case "union":
			definition, err = p.parseUnionTypeExtension(extendToken)
		case "enum":
			definition, err = p.parseEnumTypeExtension(extendToken)
		case "input":
			definition, err = p.parseInputObjectTypeExtension(extendToken)
		default:
			return nil, p.unexpected()
		}
		if err != nil {
			return nil, err
		}
		return definition, nil
	}

	return nil, p.unexpected()
}

// parseTypeExtensionBase parses `keyword Name` after the "extend" keyword.
func (p *parser) parseTypeExtensionBase(extendToken *token.Token, keyword string) (ast.TypeDefinitionBase, error) {
	var base ast.TypeDefinitionBase
	base.StartToken = extendToken
	base.ExtendToken = extendToken

	if _, err := p.expectKeyword(keyword); err != nil {
		return base, err
	}

	name, err := p.parseName()
	if err != nil {
		return base, err
	}
	base.Name = name

	return base, nil
}

//	SchemaExtension ::
//		extend schema Directives? { OperationTypeDefinition+ }
//		extend schema Directives
func (p *parser) parseSchemaExtension(extendToken *token.Token) (*ast.SchemaDefinition, error) {
	if _, err := p.expectKeyword("schema"); err != nil {
		return nil, err
	}

	directives, err := p.parseDirectives()
	if err != nil {
		return nil, err
	}

	var operationTypes []*ast.OperationTypeDefinition
	if p.peek().Kind == token.KindLeftBrace {
		if operationTypes, err = p.parseOperationTypeDefinitions(); err != nil {
			return nil, err
		}
	}

	if len(directives) == 0 && len(operationTypes) == 0 {
		return nil, p.unexpected()
	}

	return &ast.SchemaDefinition{
		DefinitionBase: ast.DefinitionBase{
			StartToken:  extendToken,
			ExtendToken: extendToken,
			Directives:  directives,
		},
		OperationTypes: operationTypes,
	}, nil
}

//	ScalarTypeExtension ::
//		extend scalar Name Directives
func (p *parser) parseScalarTypeExtension(extendToken *token.Token) (*ast.ScalarTypeDefinition, error) {
	base, err := p.parseTypeExtensionBase(extendToken, "scalar")
	if err != nil {
		return nil, err
	}

	if base.Directives, err = p.parseDirectives(); err != nil {
		return nil, err
	}
	if len(base.Directives) == 0 {
		return nil, p.unexpected()
	}

	return &ast.ScalarTypeDefinition{
		TypeDefinitionBase: base,
	}, nil
}

//	ObjectTypeExtension ::
//		extend type Name ImplementsInterfaces? Directives? FieldsDefinition
//		extend type Name ImplementsInterfaces? Directives
//		extend type Name ImplementsInterfaces
func (p *parser) parseObjectTypeExtension(extendToken *token.Token) (*ast.ObjectTypeDefinition, error) {
	base, err := p.parseTypeExtensionBase(extendToken, "type")
	if err != nil {
		return nil, err
	}

	definition := &ast.ObjectTypeDefinition{}
	if definition.Interfaces, err = p.parseImplementsInterfaces(); err != nil {
		return nil, err
	}
	if base.Directives, err = p.parseDirectives(); err != nil {
		return nil, err
	}
	if definition.Fields, err = p.parseFieldsDefinition(); err != nil {
		return nil, err
	}
	if len(definition.Interfaces) == 0 && len(base.Directives) == 0 && len(definition.Fields) == 0 {
		return nil, p.unexpected()
	}
	definition.TypeDefinitionBase = base

	return definition, nil
}

//	InterfaceTypeExtension ::
//		extend interface Name ImplementsInterfaces? Directives? FieldsDefinition
//		extend interface Name ImplementsInterfaces? Directives
//		extend interface Name ImplementsInterfaces
func (p *parser) parseInterfaceTypeExtension(extendToken *token.Token) (*ast.InterfaceTypeDefinition, error) {
	base, err := p.parseTypeExtensionBase(extendToken, "interface")
	if err != nil {
		return nil, err
	}

	definition := &ast.InterfaceTypeDefinition{}
	if definition.Interfaces, err = p.parseImplementsInterfaces(); err != nil {
		return nil, err
	}
	if base.Directives, err = p.parseDirectives(); err != nil {
		return nil, err
	}
	if definition.Fields, err = p.parseFieldsDefinition(); err != nil {
		return nil, err
	}
	if len(definition.Interfaces) == 0 && len(base.Directives) == 0 && len(definition.Fields) == 0 {
		return nil, p.unexpected()
	}
	definition.TypeDefinitionBase = base

	return definition, nil
}

//	UnionTypeExtension ::
//		extend union Name Directives? UnionMemberTypes
//		extend union Name Directives
func (p *parser) parseUnionTypeExtension(extendToken *token.Token) (*ast.UnionTypeDefinition, error) {
	base, err := p.parseTypeExtensionBase(extendToken, "union")
	if err != nil {
		return nil, err
	}

	definition := &ast.UnionTypeDefinition{}
	if base.Directives, err = p.parseDirectives(); err != nil {
		return nil, err
	}
	if definition.Types, err = p.parseUnionMemberTypes(); err != nil {
		return nil, err
	}
	if len(base.Directives) == 0 && len(definition.Types) == 0 {
		return nil, p.unexpected()
	}
	definition.TypeDefinitionBase = base

	return definition, nil
}

//	EnumTypeExtension ::
//		extend enum Name Directives? EnumValuesDefinition
//		extend enum Name Directives
func (p *parser) parseEnumTypeExtension(extendToken *token.Token) (*ast.EnumTypeDefinition, error) {
	base, err := p.parseTypeExtensionBase(extendToken, "enum")
	if err != nil {
		return nil, err
	}

	definition := &ast.EnumTypeDefinition{}
	if base.Directives, err = p.parseDirectives(); err != nil {
		return nil, err
	}
	if definition.Values, err = p.parseEnumValueDefinitions(); err != nil {
		return nil, err
	}
	if len(base.Directives) == 0 && len(definition.Values) == 0 {
		return nil, p.unexpected()
	}
	definition.TypeDefinitionBase = base

	return definition, nil
}

//	InputObjectTypeExtension ::
//		extend input Name Directives? InputFieldsDefinition
//		extend input Name Directives
func (p *parser) parseInputObjectTypeExtension(extendToken *token.Token) (*ast.InputObjectTypeDefinition, error) {
	base, err := p.parseTypeExtensionBase(extendToken, "input")
	if err != nil {
		return nil, err
	}

	definition := &ast.InputObjectTypeDefinition{}
	if base.Directives, err = p.parseDirectives(); err != nil {
		return nil, err
	}
	if definition.Fields, err = p.parseInputFieldsDefinition(); err != nil {
		return nil, err
	}
	if len(base.Directives) == 0 && len(definition.Fields) == 0 {
		return nil, p.unexpected()
	}
	definition.TypeDefinitionBase = base

	return definition, nil
}

// Implements the parsing rules in the Directives section.

//	Directives[Const] ::
//		Directive[?Const]+
func (p *parser) parseDirectives() (ast.Directives, error) {
	var directives ast.Directives
	for p.peek().Kind == token.KindAt {
		directive, err := p.parseDirective()
		if err != nil {
			return nil, err
		}
		directives = append(directives, directive)
	}
	return directives, nil
}

//	Directive[Const] ::
//		@ Name Arguments[?Const]?
func (p *parser) parseDirective() (*ast.Directive, error) {
	at, err := p.expect(token.KindAt)
	if err != nil {
		return nil, err
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	arguments, err := p.parseArguments()
	if err != nil {
		return nil, err
	}

	return &ast.Directive{
		At:        at,
		Name:      name,
		Arguments: arguments,
	}, nil
}

//	Arguments[Const] ::
//		( Argument[?Const]+ )
func (p *parser) parseArguments() (ast.Arguments, error) {
	hasArgs, err := p.skip(token.KindLeftParen)
	if err != nil || !hasArgs {
		return nil, err
	}

	var arguments ast.Arguments
	for {
		argument, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, argument)

		stop, err := p.skip(token.KindRightParen)
		if err != nil {
			return nil, err
		} else if stop {
			return arguments, nil
		}
	}
}

//	Argument[Const] ::
//		Name : Value[?Const]
func (p *parser) parseArgument() (*ast.Argument, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindColon); err != nil {
		return nil, err
	}

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	return &ast.Argument{
		Name:  name,
		Value: value,
	}, nil
}

// Implements the parsing rules in the Values section.

//	Value[Const] ::
//		IntValue
//		FloatValue
//		StringValue
//		BooleanValue
//		NullValue
//		EnumValue
//		ListValue[?Const]
//		ObjectValue[?Const]
//
//	BooleanValue : one of `true` `false`
//
//	NullValue : `null`
//
//	EnumValue : Name but not `true`, `false` or `null`
//
// Only constant values occur in a schema document.
func (p *parser) parseValue() (ast.Value, error) {
	tok := p.peek()

	switch tok.Kind {
	case token.KindLeftBracket:
		return p.parseList()

	case token.KindLeftBrace:
		return p.parseObject()

	case token.KindInt, token.KindFloat, token.KindString, token.KindBlockString, token.KindName:
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}

		switch tok.Kind {
		case token.KindInt:
			return ast.IntValue{Token: tok}, nil
		case token.KindFloat:
			return ast.FloatValue{Token: tok}, nil
		case token.KindString, token.KindBlockString:
			return ast.StringValue{Token: tok}, nil
		}

		switch tok.Value {
		case "true", "false":
			return ast.BooleanValue{Token: tok}, nil
		case "null":
			return ast.NullValue{Token: tok}, nil
		}
		return ast.EnumValue{Token: tok}, nil
	}

	return nil, p.unexpected()
}

//	ListValue[Const] ::
//		[ ]
//		[ Value[?Const]+ ]
func (p *parser) parseList() (ast.ListValue, error) {
	leftBracket, err := p.expect(token.KindLeftBracket)
	if err != nil {
		return ast.ListValue{}, err
	}

	list := ast.ListValue{LeftBracket: leftBracket}
	for {
		stop, err := p.skip(token.KindRightBracket)
		if err != nil {
			return ast.ListValue{}, err
		} else if stop {
			return list, nil
		}

		value, err := p.parseValue()
		if err != nil {
			return ast.ListValue{}, err
		}
		list.Values = append(list.Values, value)
	}
}

//	ObjectValue[Const] ::
//		{ }
//		{ ObjectField[?Const]+ }
func (p *parser) parseObject() (ast.ObjectValue, error) {
	leftBrace, err := p.expect(token.KindLeftBrace)
	if err != nil {
		return ast.ObjectValue{}, err
	}

	object := ast.ObjectValue{LeftBrace: leftBrace}
	for {
		stop, err := p.skip(token.KindRightBrace)
		if err != nil {
			return ast.ObjectValue{}, err
		} else if stop {
			return object, nil
		}

		field, err := p.parseObjectField()
		if err != nil {
			return ast.ObjectValue{}, err
		}
		object.Fields = append(object.Fields, field)
	}
}

//	ObjectField[Const] ::
//		Name : Value[?Const]
func (p *parser) parseObjectField() (*ast.ObjectField, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindColon); err != nil {
		return nil, err
	}

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	return &ast.ObjectField{
		Name:  name,
		Value: value,
	}, nil
}

// Implements the parsing rules in the Types section.

//	Type ::
//		NamedType
//		ListType
//		NonNullType
func (p *parser) parseType() (ast.Type, error) {
	var (
		t   ast.NullableType
		err error
	)

	if tok := p.peek(); tok.Kind == token.KindLeftBracket {
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}

		itemType, err := p.parseType()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.KindRightBracket); err != nil {
			return nil, err
		}

		t = ast.ListType{
			LeftBracket: tok,
			ItemType:    itemType,
		}
	} else if t, err = p.parseNamedType(); err != nil {
		return nil, err
	}

	nonNull, err := p.skip(token.KindBang)
	if err != nil {
		return nil, err
	} else if nonNull {
		return ast.NonNullType{Type: t}, nil
	}

	return t, nil
}

//	NamedType ::
//		Name
func (p *parser) parseNamedType() (ast.NamedType, error) {
	name, err := p.parseName()
	if err != nil {
		return ast.NamedType{}, err
	}
	return ast.NamedType{
		Name: name,
	}, nil
}
