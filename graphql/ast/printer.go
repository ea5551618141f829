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
	"fmt"
	"strings"

	"github.com/botobag/schemadiff/internal/util"

	"github.com/json-iterator/go"
)

// stringEncoder quotes string values. GraphQL string escapes are a subset of JSON's so a JSON
// encoder that leaves HTML characters alone produces a valid GraphQL string.
var stringEncoder = jsoniter.Config{EscapeHTML: false}.Froze()

// Print uses a set of formatting rules (compatible with graphql-js) to convert an AST into a
// string in the schema definition language.
func Print(node Node) string {
	var buf strings.Builder
	FPrint(&buf, node)
	return buf.String()
}

// FPrint "pretty-prints" an AST node to out.
func FPrint(out util.StringWriter, node Node) {
	(&printer{
		StringWriter: out,
	}).printNode(node)
}

type printer struct {
	util.StringWriter
	indentLevel int
}

func (p *printer) beginBlock() {
	p.WriteString(" {")
	p.indentLevel++
}

func (p *printer) endBlock() {
	p.indentLevel--
	p.writeNewLineWithIndent()
	p.WriteString("}")
}

func (p *printer) writeNewLineWithIndent() {
	p.WriteString("\n")
	p.WriteString(p.indentation())
}

func (p *printer) indentation() string {
	return strings.Repeat(" ", 2*p.indentLevel)
}

func (p *printer) printNode(node Node) {
	switch node := node.(type) {
	case Document:
		p.printDocument(node)
	case *Document:
		p.printDocument(*node)
	case Definitions:
		p.printDefinitions(node)
	case Name:
		p.WriteString(node.Value())
	case *FieldDefinition:
		p.printFieldDefinition(node)
	case *InputValueDefinition:
		p.printInputValueDefinition(node)
	case *EnumValueDefinition:
		p.printEnumValueDefinition(node)
	case *OperationTypeDefinition:
		p.printOperationTypeDefinition(node)
	case *Directive:
		p.printDirective(node)
	case *Argument:
		p.printArgument(node)
	case *ObjectField:
		p.printObjectField(node)
	case Type:
		p.WriteString(node.String())
	case Value:
		p.printValue(node)
	case Definition:
		p.printDefinition(node)
	default:
		panic(fmt.Sprintf("unsupported node type %T to print", node))
	}
}

//===----------------------------------------------------------------------------------------====//
// Document
//===----------------------------------------------------------------------------------------====//

func (p *printer) printDocument(doc Document) {
	if len(doc.Definitions) == 0 {
		return
	}
	p.printDefinitions(doc.Definitions)
	p.WriteString("\n")
}

func (p *printer) printDefinitions(definitions Definitions) {
	for i, definition := range definitions {
		if i > 0 {
			p.WriteString("\n\n")
		}
		p.printDefinition(definition)
	}
}

func (p *printer) printDefinition(node Definition) {
	if node.IsExtension() {
		p.WriteString("extend ")
	}

	switch node := node.(type) {
	case *SchemaDefinition:
		p.printSchemaDefinition(node)
	case *ScalarTypeDefinition:
		p.printTypeHead("scalar", node.TypeDefinitionBase)
	case *ObjectTypeDefinition:
		p.printTypeHead("type", node.TypeDefinitionBase, node.Interfaces...)
		p.printFieldDefinitions(node.Fields)
	case *InterfaceTypeDefinition:
		p.printTypeHead("interface", node.TypeDefinitionBase, node.Interfaces...)
		p.printFieldDefinitions(node.Fields)
	case *UnionTypeDefinition:
		p.printTypeHead("union", node.TypeDefinitionBase)
		p.printUnionMembers(node.Types)
	case *EnumTypeDefinition:
		p.printTypeHead("enum", node.TypeDefinitionBase)
		p.printEnumValueDefinitions(node.Values)
	case *InputObjectTypeDefinition:
		p.printTypeHead("input", node.TypeDefinitionBase)
		p.printInputFieldDefinitions(node.Fields)
	case *DirectiveDefinition:
		p.printDirectiveDefinition(node)
	default:
		panic(fmt.Sprintf("unexpected node type %T when printing Definition", node))
	}
}

func (p *printer) printSchemaDefinition(node *SchemaDefinition) {
	p.WriteString("schema")
	p.printDirectivesWithLeadingSpace(node.Directives)
	if len(node.OperationTypes) == 0 {
		return
	}
	p.beginBlock()
	for _, operationType := range node.OperationTypes {
		p.writeNewLineWithIndent()
		p.printOperationTypeDefinition(operationType)
	}
	p.endBlock()
}

func (p *printer) printOperationTypeDefinition(node *OperationTypeDefinition) {
	p.WriteString(node.Operation.Value)
	p.WriteString(": ")
	p.WriteString(node.Type.String())
}

// printTypeHead prints description, keyword, name, interfaces and directives of a type definition.
func (p *printer) printTypeHead(keyword string, base TypeDefinitionBase, interfaces ...NamedType) {
	// Description of an extension cannot be expressed.
	if !base.IsExtension() {
		p.printDescription(base.Description)
	}
	p.WriteString(keyword)
	p.WriteString(" ")
	p.WriteString(base.Name.Value())

	if len(interfaces) > 0 {
		p.WriteString(" implements ")
		for i, iface := range interfaces {
			if i > 0 {
				p.WriteString(" & ")
			}
			p.WriteString(iface.String())
		}
	}

	p.printDirectivesWithLeadingSpace(base.Directives)
}

func (p *printer) printFieldDefinitions(fields []*FieldDefinition) {
	if len(fields) == 0 {
		return
	}
	p.beginBlock()
	for _, field := range fields {
		p.writeNewLineWithIndent()
		p.printFieldDefinition(field)
	}
	p.endBlock()
}

func (p *printer) printFieldDefinition(field *FieldDefinition) {
	p.printDescription(field.Description)
	p.WriteString(field.Name.Value())
	p.printArgumentDefinitions(field.Arguments)
	p.WriteString(": ")
	p.WriteString(field.Type.String())
	p.printDirectivesWithLeadingSpace(field.Directives)
}

// printArgumentDefinitions prints arguments on one line unless one of them has a description.
func (p *printer) printArgumentDefinitions(args []*InputValueDefinition) {
	if len(args) == 0 {
		return
	}

	multiline := false
	for _, arg := range args {
		if !arg.Description.IsEmpty() {
			multiline = true
			break
		}
	}

	p.WriteString("(")
	if multiline {
		p.indentLevel++
		for _, arg := range args {
			p.writeNewLineWithIndent()
			p.printInputValueDefinition(arg)
		}
		p.indentLevel--
		p.writeNewLineWithIndent()
	} else {
		for i, arg := range args {
			if i > 0 {
				p.WriteString(", ")
			}
			p.printInputValueDefinition(arg)
		}
	}
	p.WriteString(")")
}

func (p *printer) printInputValueDefinition(node *InputValueDefinition) {
	p.printDescription(node.Description)
	p.WriteString(node.Name.Value())
	p.WriteString(": ")
	p.WriteString(node.Type.String())
	if node.DefaultValue != nil {
		p.WriteString(" = ")
		p.printValue(node.DefaultValue)
	}
	p.printDirectivesWithLeadingSpace(node.Directives)
}

func (p *printer) printInputFieldDefinitions(fields []*InputValueDefinition) {
	if len(fields) == 0 {
		return
	}
	p.beginBlock()
	for _, field := range fields {
		p.writeNewLineWithIndent()
		p.printInputValueDefinition(field)
	}
	p.endBlock()
}

func (p *printer) printUnionMembers(types []NamedType) {
	if len(types) == 0 {
		return
	}
	p.WriteString(" = ")
	for i, t := range types {
		if i > 0 {
			p.WriteString(" | ")
		}
		p.WriteString(t.String())
	}
}

func (p *printer) printEnumValueDefinitions(values []*EnumValueDefinition) {
	if len(values) == 0 {
		return
	}
	p.beginBlock()
	for _, value := range values {
		p.writeNewLineWithIndent()
		p.printEnumValueDefinition(value)
	}
	p.endBlock()
}

func (p *printer) printEnumValueDefinition(node *EnumValueDefinition) {
	p.printDescription(node.Description)
	p.WriteString(node.Name.Value())
	p.printDirectivesWithLeadingSpace(node.Directives)
}

func (p *printer) printDirectiveDefinition(node *DirectiveDefinition) {
	p.printDescription(node.Description)
	p.WriteString("directive @")
	p.WriteString(node.Name.Value())
	p.printArgumentDefinitions(node.Arguments)
	if node.Repeatable {
		p.WriteString(" repeatable")
	}
	p.WriteString(" on ")
	for i, location := range node.Locations {
		if i > 0 {
			p.WriteString(" | ")
		}
		p.WriteString(location.Value())
	}
}

// printDescription prints the description followed by a line break at the current indentation.
func (p *printer) printDescription(description Description) {
	if description.IsEmpty() {
		return
	}

	value := description.Value()
	if description.IsBlockString() || strings.ContainsRune(value, '\n') {
		p.printBlockString(value)
	} else {
		p.printString(value)
	}
	p.writeNewLineWithIndent()
}

//===----------------------------------------------------------------------------------------====//
// Value
//===----------------------------------------------------------------------------------------====//

func (p *printer) printValue(node Value) {
	switch node := node.(type) {
	case BooleanValue:
		if node.Value() {
			p.WriteString("true")
		} else {
			p.WriteString("false")
		}
	case EnumValue:
		p.WriteString(node.Value())
	case FloatValue:
		p.WriteString(node.String())
	case IntValue:
		p.WriteString(node.String())
	case ListValue:
		p.WriteString("[")
		for i, value := range node.Values {
			if i > 0 {
				p.WriteString(", ")
			}
			p.printValue(value)
		}
		p.WriteString("]")
	case NullValue:
		p.WriteString("null")
	case ObjectValue:
		p.WriteString("{")
		for i, field := range node.Fields {
			if i > 0 {
				p.WriteString(", ")
			}
			p.printObjectField(field)
		}
		p.WriteString("}")
	case StringValue:
		if node.IsBlockString() {
			p.printBlockString(node.Value())
		} else {
			p.printString(node.Value())
		}
	default:
		panic(fmt.Sprintf("unexpected node type %T when printing Value", node))
	}
}

func (p *printer) printObjectField(field *ObjectField) {
	p.WriteString(field.Name.Value())
	p.WriteString(": ")
	p.printValue(field.Value)
}

func (p *printer) printString(value string) {
	quoted, err := stringEncoder.MarshalToString(value)
	if err != nil {
		// Encoding a Go string never fails.
		panic(err)
	}
	p.WriteString(quoted)
}

// printBlockString prints a block string. A single-line value that doesn't end with a quote stays
// on one line; otherwise the value is printed between a leading and a trailing line break at the
// current indentation.
func (p *printer) printBlockString(value string) {
	value = strings.ReplaceAll(value, `"""`, `\"""`)

	isSingleLine := !strings.ContainsRune(value, '\n')
	if isSingleLine && !strings.HasSuffix(value, `"`) && !strings.HasSuffix(value, `\`) {
		p.WriteString(`"""`)
		p.WriteString(value)
		p.WriteString(`"""`)
		return
	}

	p.WriteString(`"""`)
	for _, line := range strings.Split(value, "\n") {
		p.WriteString("\n")
		if len(line) > 0 {
			p.WriteString(p.indentation())
			p.WriteString(line)
		}
	}
	p.writeNewLineWithIndent()
	p.WriteString(`"""`)
}

//===----------------------------------------------------------------------------------------====//
// Directive
//===----------------------------------------------------------------------------------------====//

func (p *printer) printDirectivesWithLeadingSpace(directives Directives) {
	for _, directive := range directives {
		p.WriteString(" ")
		p.printDirective(directive)
	}
}

func (p *printer) printDirective(directive *Directive) {
	p.WriteString("@")
	p.WriteString(directive.Name.Value())
	if len(directive.Arguments) > 0 {
		p.WriteString("(")
		for i, arg := range directive.Arguments {
			if i > 0 {
				p.WriteString(", ")
			}
			p.printArgument(arg)
		}
		p.WriteString(")")
	}
}

func (p *printer) printArgument(arg *Argument) {
	p.WriteString(arg.Name.Value())
	p.WriteString(": ")
	p.printValue(arg.Value)
}
