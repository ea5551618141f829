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

import (
	"fmt"

	"github.com/botobag/schemadiff/graphql"
	"github.com/botobag/schemadiff/graphql/ast"
	"github.com/botobag/schemadiff/graphql/parser"
	"github.com/botobag/schemadiff/graphql/token"
	"github.com/botobag/schemadiff/internal/util"
)

// typeReference records a use of a type name to be checked once all definitions were seen.
type typeReference struct {
	name     string
	location token.SourceLocation
}

// directiveUsage records a directive applied to a schema element.
type directiveUsage struct {
	directive *ast.Directive
	location  string
}

// builder holds internal state while building a TypeGraph.
type builder struct {
	source *token.Source
	graph  *TypeGraph
	errs   graphql.Errors

	// The AST node that introduced each type in the graph
	definitionNodes map[string]ast.TypeDefinition

	schemaDefinition *ast.SchemaDefinition
	operationTypes   map[ast.OperationType]*ast.OperationTypeDefinition

	directiveNodes map[string]*ast.DirectiveDefinition

	references []typeReference
	usages     [][]directiveUsage
}

// Build creates a TypeGraph from a parsed schema document. The document is validated on the way:
// type, field, argument, enum value and directive names must be unique; extended types must be
// defined with the same kind; referenced types and applied directives must be known; root
// operation types must be object types. All violations are reported together in an error of kind
// ErrKindValidation.
func Build(doc ast.Document) (*TypeGraph, error) {
	b := &builder{
		source: doc.Source,
		graph: &TypeGraph{
			byName: map[string]*Type{},
		},
		definitionNodes: map[string]ast.TypeDefinition{},
		operationTypes:  map[ast.OperationType]*ast.OperationTypeDefinition{},
		directiveNodes:  map[string]*ast.DirectiveDefinition{},
	}

	var extensions []ast.Definition
	for _, definition := range doc.Definitions {
		if definition.IsExtension() {
			extensions = append(extensions, definition)
			continue
		}

		switch definition := definition.(type) {
		case *ast.SchemaDefinition:
			b.addSchemaDefinition(definition)
		case *ast.DirectiveDefinition:
			b.addDirectiveDefinition(definition)
		case ast.TypeDefinition:
			b.addTypeDefinition(definition)
		}
	}

	// Extensions may appear before the definition they extend.
	for _, extension := range extensions {
		switch extension := extension.(type) {
		case *ast.SchemaDefinition:
			b.addOperationTypes(extension.OperationTypes)
			b.recordDirectives(extension.Directives, "SCHEMA")
		case ast.TypeDefinition:
			b.addTypeExtension(extension)
		}
	}

	b.checkTypeReferences()
	b.checkDirectiveUsages()
	b.resolveRootTypes()

	if err := b.errs.Err(); err != nil {
		return nil, err
	}
	return b.graph, nil
}

// Parse parses a schema document and builds a TypeGraph from it. Syntax errors are reported with
// ErrKindSyntax and the other errors with ErrKindValidation.
func Parse(text string) (*TypeGraph, error) {
	return ParseSource(token.NewSource("", text))
}

// ParseSource is similar to Parse but takes a Source which names the document in error messages.
func ParseSource(source *token.Source) (*TypeGraph, error) {
	doc, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

func (b *builder) locationsOf(nodes ...ast.Node) []graphql.ErrorLocation {
	if b.source == nil {
		return nil
	}
	var locations []graphql.ErrorLocation
	for _, node := range nodes {
		if location := node.Location(); location.IsValid() {
			locations = append(locations, graphql.ErrorLocationOf(b.source, location))
		}
	}
	return locations
}

func (b *builder) reportError(message string, nodes ...ast.Node) {
	b.errs.Emplace(message, b.locationsOf(nodes...), graphql.Op("typegraph.Build"), graphql.ErrKindValidation)
}

func (b *builder) addSchemaDefinition(definition *ast.SchemaDefinition) {
	if b.schemaDefinition != nil {
		b.reportError("Must provide only one schema definition.", definition)
		return
	}
	b.schemaDefinition = definition
	b.addOperationTypes(definition.OperationTypes)
	b.recordDirectives(definition.Directives, "SCHEMA")
}

func (b *builder) addOperationTypes(operationTypes []*ast.OperationTypeDefinition) {
	for _, operationType := range operationTypes {
		operation := operationType.OperationType()
		if _, exists := b.operationTypes[operation]; exists {
			b.reportError(fmt.Sprintf("There can be only one %s type in schema.", operation), operationType)
			continue
		}
		b.operationTypes[operation] = operationType
		b.addReference(operationType.Type)
	}
}

func (b *builder) addDirectiveDefinition(definition *ast.DirectiveDefinition) {
	name := definition.Name.Value()
	if prev, exists := b.directiveNodes[name]; exists {
		b.reportError(fmt.Sprintf(`There can be only one directive named "@%s".`, name), prev.Name, definition.Name)
		return
	}
	b.directiveNodes[name] = definition

	directive := &Directive{
		name:       name,
		repeatable: definition.Repeatable,
	}
	directive.args, _ = b.buildArguments(definition.Arguments, func(arg string) string {
		return fmt.Sprintf(`Argument "@%s(%s:)" can only be defined once.`, name, arg)
	})
	for _, location := range definition.Locations {
		directive.locations = append(directive.locations, location.Value())
	}
	b.graph.directives = append(b.graph.directives, directive)
}

func kindOf(definition ast.TypeDefinition) Kind {
	switch definition.(type) {
	case *ast.ObjectTypeDefinition:
		return KindObject
	case *ast.InterfaceTypeDefinition:
		return KindInterface
	case *ast.EnumTypeDefinition:
		return KindEnum
	case *ast.InputObjectTypeDefinition:
		return KindInputObject
	case *ast.UnionTypeDefinition:
		return KindUnion
	}
	return KindScalar
}

func (b *builder) addTypeDefinition(definition ast.TypeDefinition) {
	nameNode := definition.TypeName()
	name := nameNode.Value()
	kind := kindOf(definition)

	if IsBuiltinScalar(name) {
		if kind != KindScalar {
			b.reportError(fmt.Sprintf(`Built-in scalar "%s" cannot be redefined as %s.`, name, kind), nameNode)
		}
		// Declaring a built-in scalar has no effect.
		return
	}

	if prev, exists := b.definitionNodes[name]; exists {
		b.reportError(fmt.Sprintf(`There can be only one type named "%s".`, name), prev.TypeName(), nameNode)
		return
	}
	b.definitionNodes[name] = definition

	t := &Type{
		name:        name,
		kind:        kind,
		description: definition.GetDescription().Value(),
	}
	b.graph.types = append(b.graph.types, t)
	b.graph.byName[name] = t

	b.addMembers(t, definition)
}

func (b *builder) addTypeExtension(extension ast.TypeDefinition) {
	nameNode := extension.TypeName()
	name := nameNode.Value()
	kind := kindOf(extension)

	if IsBuiltinScalar(name) && kind == KindScalar {
		b.recordDirectives(extension.GetDirectives(), "SCALAR")
		return
	}

	t := b.graph.Lookup(name)
	if t == nil {
		b.reportError(fmt.Sprintf(`Cannot extend type "%s" because it is not defined.%s`,
			name, util.DidYouMean(util.SuggestionList(name, b.typeNames()))), nameNode)
		return
	}

	if t.kind != kind {
		b.reportError(fmt.Sprintf(`Cannot extend non-%s type "%s".`, kind.keyword(), name),
			b.definitionNodes[name], extension)
		return
	}

	b.addMembers(t, extension)
}

// addMembers adds fields, values, interfaces and member types given in a definition or an
// extension to t.
func (b *builder) addMembers(t *Type, definition ast.TypeDefinition) {
	switch definition := definition.(type) {
	case *ast.ScalarTypeDefinition:
		b.recordDirectives(definition.Directives, "SCALAR")

	case *ast.ObjectTypeDefinition:
		b.recordDirectives(definition.Directives, "OBJECT")
		b.addInterfaces(t, definition.Interfaces)
		b.addFields(t, definition.Fields)

	case *ast.InterfaceTypeDefinition:
		b.recordDirectives(definition.Directives, "INTERFACE")
		b.addInterfaces(t, definition.Interfaces)
		b.addFields(t, definition.Fields)

	case *ast.UnionTypeDefinition:
		b.recordDirectives(definition.Directives, "UNION")
		for _, member := range definition.Types {
			t.possibleTypes = append(t.possibleTypes, member.String())
			b.addReference(member)
		}

	case *ast.EnumTypeDefinition:
		b.recordDirectives(definition.Directives, "ENUM")
		if t.valueIndex == nil {
			t.valueIndex = map[string]bool{}
		}
		for _, value := range definition.Values {
			name := value.Name.Value()
			if t.valueIndex[name] {
				b.reportError(fmt.Sprintf(`Enum value "%s.%s" can only be defined once.`, t.name, name), value.Name)
				continue
			}
			t.valueIndex[name] = true
			t.values = append(t.values, name)
			b.recordDirectives(value.Directives, "ENUM_VALUE")
		}

	case *ast.InputObjectTypeDefinition:
		b.recordDirectives(definition.Directives, "INPUT_OBJECT")
		if t.inputFieldIndex == nil {
			t.inputFieldIndex = map[string]*Argument{}
		}
		for _, field := range definition.Fields {
			name := field.Name.Value()
			if _, exists := t.inputFieldIndex[name]; exists {
				b.reportError(fmt.Sprintf(`Field "%s.%s" can only be defined once.`, t.name, name), field.Name)
				continue
			}
			inputField := b.buildArgument(field, "INPUT_FIELD_DEFINITION")
			t.inputFieldIndex[name] = inputField
			t.inputFields = append(t.inputFields, inputField)
		}
	}
}

func (b *builder) addInterfaces(t *Type, interfaces []ast.NamedType) {
	for _, iface := range interfaces {
		t.interfaces = append(t.interfaces, iface.String())
		b.addReference(iface)
	}
}

func (b *builder) addFields(t *Type, fields []*ast.FieldDefinition) {
	if t.fieldIndex == nil {
		t.fieldIndex = map[string]*Field{}
	}

	for _, node := range fields {
		name := node.Name.Value()
		if _, exists := t.fieldIndex[name]; exists {
			b.reportError(fmt.Sprintf(`Field "%s.%s" can only be defined once.`, t.name, name), node.Name)
			continue
		}

		field := &Field{
			name:        name,
			signature:   node.Type.String(),
			description: node.Description.Value(),
		}
		for _, directive := range node.Directives {
			if directive.Name.Value() == "deprecated" {
				field.deprecated = true
			}
		}
		field.args, field.argIndex = b.buildArguments(node.Arguments, func(arg string) string {
			return fmt.Sprintf(`Argument "%s.%s(%s:)" can only be defined once.`, t.name, name, arg)
		})

		b.addReference(node.Type)
		b.recordDirectives(node.Directives, "FIELD_DEFINITION")

		t.fieldIndex[name] = field
		t.fields = append(t.fields, field)
	}
}

// buildArguments builds arguments in declaration order. duplicateMessage formats the error for an
// argument defined twice.
func (b *builder) buildArguments(
	nodes []*ast.InputValueDefinition,
	duplicateMessage func(arg string) string) ([]*Argument, map[string]*Argument) {

	if len(nodes) == 0 {
		return nil, nil
	}

	args := make([]*Argument, 0, len(nodes))
	argIndex := make(map[string]*Argument, len(nodes))
	for _, node := range nodes {
		name := node.Name.Value()
		if _, exists := argIndex[name]; exists {
			b.reportError(duplicateMessage(name), node.Name)
			continue
		}
		arg := b.buildArgument(node, "ARGUMENT_DEFINITION")
		argIndex[name] = arg
		args = append(args, arg)
	}
	return args, argIndex
}

func (b *builder) buildArgument(node *ast.InputValueDefinition, directiveLocation string) *Argument {
	arg := &Argument{
		name:      node.Name.Value(),
		signature: node.Type.String(),
	}
	if node.DefaultValue != nil {
		arg.defaultValue = ast.Print(node.DefaultValue)
		arg.hasDefault = true
	}
	b.addReference(node.Type)
	b.recordDirectives(node.Directives, directiveLocation)
	return arg
}

func (b *builder) addReference(t ast.Type) {
	namedType := ast.NamedTypeOf(t)
	b.references = append(b.references, typeReference{
		name:     namedType.String(),
		location: namedType.Location(),
	})
}

func (b *builder) recordDirectives(directives ast.Directives, location string) {
	if len(directives) == 0 {
		return
	}
	usages := make([]directiveUsage, len(directives))
	for i, directive := range directives {
		usages[i] = directiveUsage{
			directive: directive,
			location:  location,
		}
	}
	b.usages = append(b.usages, usages)
}

// typeNames returns names of all known types including the built-in scalars.
func (b *builder) typeNames() []string {
	names := make([]string, 0, len(b.graph.types)+len(builtinScalars))
	for _, t := range b.graph.types {
		names = append(names, t.name)
	}
	return append(names, "Int", "Float", "String", "Boolean", "ID")
}

func (b *builder) checkTypeReferences() {
	var names []string
	for _, reference := range b.references {
		if b.graph.Has(reference.name) || IsBuiltinScalar(reference.name) {
			continue
		}

		if names == nil {
			names = b.typeNames()
		}

		var locations []graphql.ErrorLocation
		if b.source != nil && reference.location.IsValid() {
			locations = []graphql.ErrorLocation{graphql.ErrorLocationOf(b.source, reference.location)}
		}
		b.errs.Emplace(
			fmt.Sprintf(`Unknown type "%s".%s`, reference.name,
				util.DidYouMean(util.SuggestionList(reference.name, names))),
			locations,
			graphql.Op("typegraph.Build"),
			graphql.ErrKindValidation)
	}
}

// directiveLocations returns the locations where the named directive may be applied and whether
// the directive is known. Custom definitions take precedence over standard directives.
func (b *builder) directiveLocations(name string) (locations []string, repeatable bool, known bool) {
	if definition, exists := b.directiveNodes[name]; exists {
		for _, location := range definition.Locations {
			locations = append(locations, location.Value())
		}
		return locations, definition.Repeatable, true
	}
	locations, known = standardDirectives[name]
	return locations, false, known
}

func (b *builder) checkDirectiveUsages() {
	for _, usages := range b.usages {
		seen := map[string]bool{}
		for _, usage := range usages {
			name := usage.directive.Name.Value()
			locations, repeatable, known := b.directiveLocations(name)
			if !known {
				b.reportError(fmt.Sprintf(`Unknown directive "@%s".`, name), usage.directive)
				continue
			}

			allowed := false
			for _, location := range locations {
				if location == usage.location {
					allowed = true
					break
				}
			}
			if !allowed {
				b.reportError(fmt.Sprintf(`Directive "@%s" may not be used on %s.`, name, usage.location),
					usage.directive)
				continue
			}

			if !repeatable {
				if seen[name] {
					b.reportError(fmt.Sprintf(`The directive "@%s" can only be used once at this location.`, name),
						usage.directive)
				}
				seen[name] = true
			}
		}
	}
}

func (b *builder) resolveRootTypes() {
	rootType := func(operation ast.OperationType, conventionalName string) string {
		operationType, exists := b.operationTypes[operation]
		if !exists {
			if b.schemaDefinition != nil {
				return ""
			}
			// Without a schema definition the root types are found by their conventional names.
			if t := b.graph.Lookup(conventionalName); t != nil && t.kind == KindObject {
				return conventionalName
			}
			return ""
		}

		name := operationType.Type.String()
		t := b.graph.Lookup(name)
		if t == nil {
			// Reported as an unknown type.
			return ""
		}
		if t.kind != KindObject {
			b.reportError(fmt.Sprintf("%s root type must be Object type, it cannot be %s.",
				conventionalName, name), operationType.Type)
			return ""
		}
		return name
	}

	b.graph.query = rootType(ast.OperationTypeQuery, "Query")
	b.graph.mutation = rootType(ast.OperationTypeMutation, "Mutation")
	b.graph.subscription = rootType(ast.OperationTypeSubscription, "Subscription")
}
