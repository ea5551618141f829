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

// TypeGraph is an immutable snapshot of one schema version: the named types defined by a schema
// document in declaration order. Built-in scalars are not part of the graph unless the document
// declares them.
type TypeGraph struct {
	types  []*Type
	byName map[string]*Type

	// Names of the root operation types; empty when the schema has no such operation.
	query        string
	mutation     string
	subscription string

	directives []*Directive
}

// Types returns the named types in declaration order. The returned slice must not be modified.
func (graph *TypeGraph) Types() []*Type {
	return graph.types
}

// Len returns the number of named types in the graph.
func (graph *TypeGraph) Len() int {
	return len(graph.types)
}

// Lookup finds a type with given name. Return nil if not found.
func (graph *TypeGraph) Lookup(name string) *Type {
	return graph.byName[name]
}

// Has returns true if the graph contains a type with the given name.
func (graph *TypeGraph) Has(name string) bool {
	_, exists := graph.byName[name]
	return exists
}

// QueryType returns the name of the query root type or an empty string.
func (graph *TypeGraph) QueryType() string {
	return graph.query
}

// MutationType returns the name of the mutation root type or an empty string.
func (graph *TypeGraph) MutationType() string {
	return graph.mutation
}

// SubscriptionType returns the name of the subscription root type or an empty string.
func (graph *TypeGraph) SubscriptionType() string {
	return graph.subscription
}

// Directives returns the custom directives defined in the schema in declaration order.
func (graph *TypeGraph) Directives() []*Directive {
	return graph.directives
}

// Type describes a named type.
type Type struct {
	name        string
	kind        Kind
	description string

	// Objects and interfaces
	fields     []*Field
	fieldIndex map[string]*Field
	interfaces []string

	// Enums
	values     []string
	valueIndex map[string]bool

	// Input objects
	inputFields     []*Argument
	inputFieldIndex map[string]*Argument

	// Unions
	possibleTypes []string
}

// Name of the type
func (t *Type) Name() string {
	return t.name
}

// Kind of the type
func (t *Type) Kind() Kind {
	return t.kind
}

// Description of the type
func (t *Type) Description() string {
	return t.description
}

// Fields returns the fields of an object or an interface in declaration order. Return nil for the
// other kinds.
func (t *Type) Fields() []*Field {
	return t.fields
}

// Field finds a field with the given name. Return nil if not found.
func (t *Type) Field(name string) *Field {
	return t.fieldIndex[name]
}

// Interfaces returns the names of the interfaces implemented by an object or an interface.
func (t *Type) Interfaces() []string {
	return t.interfaces
}

// Values returns the names of the values of an enum in declaration order.
func (t *Type) Values() []string {
	return t.values
}

// HasValue returns true if the enum has a value with the given name.
func (t *Type) HasValue(name string) bool {
	return t.valueIndex[name]
}

// InputFields returns the fields of an input object in declaration order.
func (t *Type) InputFields() []*Argument {
	return t.inputFields
}

// InputField finds an input field with the given name. Return nil if not found.
func (t *Type) InputField(name string) *Argument {
	return t.inputFieldIndex[name]
}

// PossibleTypes returns the names of the member types of a union.
func (t *Type) PossibleTypes() []string {
	return t.possibleTypes
}

// Field describes a field of an object or an interface.
type Field struct {
	name        string
	signature   string
	description string
	deprecated  bool
	args        []*Argument
	argIndex    map[string]*Argument
}

// Name of the field
func (field *Field) Name() string {
	return field.name
}

// Type returns the type signature of the field, the canonical SDL rendering of its result type
// including list and non-null wrapping (e.g., "[Int!]!").
func (field *Field) Type() string {
	return field.signature
}

// Description of the field
func (field *Field) Description() string {
	return field.description
}

// IsDeprecated returns true if the field carries @deprecated.
func (field *Field) IsDeprecated() bool {
	return field.deprecated
}

// Args returns the arguments of the field in declaration order.
func (field *Field) Args() []*Argument {
	return field.args
}

// Arg finds an argument with the given name. Return nil if not found.
func (field *Field) Arg(name string) *Argument {
	return field.argIndex[name]
}

// Argument describes an argument of a field or a directive, or a field of an input object.
type Argument struct {
	name         string
	signature    string
	defaultValue string
	hasDefault   bool
}

// Name of the argument
func (arg *Argument) Name() string {
	return arg.name
}

// Type returns the type signature of the argument.
func (arg *Argument) Type() string {
	return arg.signature
}

// DefaultValue returns the default value printed in SDL and whether one is given.
func (arg *Argument) DefaultValue() (string, bool) {
	return arg.defaultValue, arg.hasDefault
}

// Directive describes a custom directive definition.
type Directive struct {
	name       string
	args       []*Argument
	repeatable bool
	locations  []string
}

// Name of the directive without "@"
func (directive *Directive) Name() string {
	return directive.name
}

// Args returns the arguments of the directive in declaration order.
func (directive *Directive) Args() []*Argument {
	return directive.args
}

// IsRepeatable returns true if the directive is declared repeatable.
func (directive *Directive) IsRepeatable() bool {
	return directive.repeatable
}

// Locations returns where the directive may be applied.
func (directive *Directive) Locations() []string {
	return directive.locations
}
