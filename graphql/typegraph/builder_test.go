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

package typegraph_test

import (
	"github.com/botobag/schemadiff/graphql"
	"github.com/botobag/schemadiff/graphql/typegraph"
	"github.com/botobag/schemadiff/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

func mustBuild(text string) *typegraph.TypeGraph {
	graph, err := typegraph.Parse(text)
	Expect(err).ShouldNot(HaveOccurred())
	return graph
}

func typeNames(graph *typegraph.TypeGraph) []string {
	names := make([]string, 0, graph.Len())
	for _, t := range graph.Types() {
		names = append(names, t.Name())
	}
	return names
}

func fieldNames(t *typegraph.Type) []string {
	names := make([]string, 0, len(t.Fields()))
	for _, field := range t.Fields() {
		names = append(names, field.Name())
	}
	return names
}

var _ = Describe("Build", func() {
	It("keeps types in declaration order", func() {
		graph := mustBuild(`
			type Query { user(id: ID!): User }
			enum Role { ADMIN USER }
			type User implements Node { id: ID! role: Role }
			interface Node { id: ID! }
			scalar Date
			input Filter { name: String = "x" }
			union Result = User | Query
		`)

		Expect(typeNames(graph)).Should(Equal([]string{
			"Query", "Role", "User", "Node", "Date", "Filter", "Result",
		}))

		kinds := map[string]typegraph.Kind{}
		for _, t := range graph.Types() {
			kinds[t.Name()] = t.Kind()
		}
		Expect(kinds).Should(Equal(map[string]typegraph.Kind{
			"Query":  typegraph.KindObject,
			"Role":   typegraph.KindEnum,
			"User":   typegraph.KindObject,
			"Node":   typegraph.KindInterface,
			"Date":   typegraph.KindScalar,
			"Filter": typegraph.KindInputObject,
			"Result": typegraph.KindUnion,
		}))
	})

	It("records fields, signatures and arguments", func() {
		graph := mustBuild(`
			type Query {
				"Find users"
				users(first: Int = 10, "the filter" filter: Filter, tags: [String!]! = ["a", "b"]): [User!]!
				legacy: String @deprecated(reason: "gone")
			}
			type User { id: ID! }
			input Filter { name: String }
		`)

		query := graph.Lookup("Query")
		Expect(query).ShouldNot(BeNil())
		Expect(fieldNames(query)).Should(Equal([]string{"users", "legacy"}))

		users := query.Field("users")
		Expect(users.Type()).Should(Equal("[User!]!"))
		Expect(users.Description()).Should(Equal("Find users"))
		Expect(users.IsDeprecated()).Should(BeFalse())
		Expect(users.Args()).Should(HaveLen(3))

		first := users.Arg("first")
		Expect(first.Type()).Should(Equal("Int"))
		value, ok := first.DefaultValue()
		Expect(ok).Should(BeTrue())
		Expect(value).Should(Equal("10"))

		filter := users.Arg("filter")
		Expect(filter.Type()).Should(Equal("Filter"))
		_, ok = filter.DefaultValue()
		Expect(ok).Should(BeFalse())

		value, _ = users.Arg("tags").DefaultValue()
		Expect(value).Should(Equal(`["a", "b"]`))

		Expect(query.Field("legacy").IsDeprecated()).Should(BeTrue())
		Expect(query.Field("missing")).Should(BeNil())
	})

	It("records enum values, input fields, interfaces and union members", func() {
		graph := mustBuild(`
			interface Node { id: ID! }
			interface Named implements Node { id: ID! name: String }
			type Cat implements Node & Named { id: ID! name: String }
			type Dog implements Node { id: ID! }
			union Pet = Cat | Dog
			enum Color { RED GREEN BLUE }
			input Point { x: Float! y: Float! = 0 }
		`)

		Expect(graph.Lookup("Cat").Interfaces()).Should(Equal([]string{"Node", "Named"}))
		Expect(graph.Lookup("Named").Interfaces()).Should(Equal([]string{"Node"}))
		Expect(graph.Lookup("Pet").PossibleTypes()).Should(Equal([]string{"Cat", "Dog"}))

		color := graph.Lookup("Color")
		Expect(color.Values()).Should(Equal([]string{"RED", "GREEN", "BLUE"}))
		Expect(color.HasValue("GREEN")).Should(BeTrue())
		Expect(color.HasValue("green")).Should(BeFalse())

		point := graph.Lookup("Point")
		Expect(point.InputFields()).Should(HaveLen(2))
		Expect(point.InputField("x").Type()).Should(Equal("Float!"))
		value, ok := point.InputField("y").DefaultValue()
		Expect(ok).Should(BeTrue())
		Expect(value).Should(Equal("0"))
	})

	It("merges extensions into the extended types", func() {
		graph := mustBuild(`
			extend type Query { b: Int }
			type Query { a: Int }
			enum E { X }
			extend enum E { Y }
			union U = Query
			extend union U = Other
			type Other { c: Int }
			input I { a: Int }
			extend input I { b: Int }
			interface Node { id: ID }
			extend type Other implements Node { id: ID }
			extend scalar String @specifiedBy(url: "https://example.com")
		`)

		Expect(typeNames(graph)).Should(Equal([]string{"Query", "E", "U", "Other", "I", "Node"}))
		Expect(fieldNames(graph.Lookup("Query"))).Should(Equal([]string{"a", "b"}))
		Expect(graph.Lookup("E").Values()).Should(Equal([]string{"X", "Y"}))
		Expect(graph.Lookup("U").PossibleTypes()).Should(Equal([]string{"Query", "Other"}))
		Expect(graph.Lookup("I").InputFields()).Should(HaveLen(2))
		Expect(graph.Lookup("Other").Interfaces()).Should(Equal([]string{"Node"}))
		Expect(fieldNames(graph.Lookup("Other"))).Should(Equal([]string{"c", "id"}))
	})

	It("ignores declarations of built-in scalars", func() {
		graph := mustBuild(`
			scalar String
			scalar ID
			type Query { id: ID name: String }
		`)
		Expect(typeNames(graph)).Should(Equal([]string{"Query"}))
		Expect(graph.Has("String")).Should(BeFalse())
	})

	Describe("root operation types", func() {
		It("finds root types by their conventional names", func() {
			graph := mustBuild(`
				type Query { a: Int }
				type Mutation { b: Int }
				scalar Subscription
			`)
			Expect(graph.QueryType()).Should(Equal("Query"))
			Expect(graph.MutationType()).Should(Equal("Mutation"))
			Expect(graph.SubscriptionType()).Should(BeEmpty())
		})

		It("uses the schema definition", func() {
			graph := mustBuild(`
				schema { query: Root }
				extend schema { subscription: Events }
				type Root { a: Int }
				type Mutation { b: Int }
				type Events { c: Int }
			`)
			Expect(graph.QueryType()).Should(Equal("Root"))
			Expect(graph.MutationType()).Should(BeEmpty())
			Expect(graph.SubscriptionType()).Should(Equal("Events"))
		})
	})

	It("records custom directive definitions", func() {
		graph := mustBuild(`
			directive @auth(role: String = "admin") repeatable on OBJECT | FIELD_DEFINITION
			type Query @auth @auth(role: "user") { a: Int @auth }
		`)

		Expect(graph.Directives()).Should(HaveLen(1))
		directive := graph.Directives()[0]
		Expect(directive.Name()).Should(Equal("auth"))
		Expect(directive.IsRepeatable()).Should(BeTrue())
		Expect(directive.Locations()).Should(Equal([]string{"OBJECT", "FIELD_DEFINITION"}))
		Expect(directive.Args()).Should(HaveLen(1))
		value, _ := directive.Args()[0].DefaultValue()
		Expect(value).Should(Equal(`"admin"`))
	})

	It("reports syntax errors from the parser", func() {
		_, err := typegraph.Parse(`type Query { a: }`)
		Expect(err).Should(testutil.MatchError(
			testutil.MessageContainSubstring("Syntax Error: Expected Name, found }"),
			testutil.KindIs(graphql.ErrKindSyntax),
		))
	})

	It("reports an unknown type with its location and suggestions", func() {
		_, err := typegraph.Parse(`type Query { a: Strin }`)
		Expect(err).Should(testutil.MatchError(
			testutil.MessageEqual(`Unknown type "Strin". Did you mean "String"?`),
			testutil.LocationEqual(graphql.ErrorLocation{Line: 1, Column: 17}),
			testutil.KindIs(graphql.ErrKindValidation),
			testutil.OpIs("typegraph.Build"),
		))
	})

	It("reports a duplicate type at both definitions", func() {
		_, err := typegraph.Parse("type A { a: Int }\ntype A { b: Int }")
		Expect(err).Should(testutil.MatchError(
			testutil.MessageEqual(`There can be only one type named "A".`),
			testutil.LocationsConsistOf([]graphql.ErrorLocation{
				{Line: 1, Column: 6},
				{Line: 2, Column: 6},
			}),
			testutil.KindIs(graphql.ErrKindValidation),
		))
	})

	It("reports every violation in one error", func() {
		_, err := typegraph.Parse(`
			type Query { a: Int a: Int }
			enum E { X X }
			type Query { b: Int }
		`)
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(ContainSubstring(`Field "Query.a" can only be defined once.`))
		Expect(err.Error()).Should(ContainSubstring(`Enum value "E.X" can only be defined once.`))
		Expect(err.Error()).Should(ContainSubstring(`There can be only one type named "Query".`))
	})

	DescribeTable("validation errors",
		func(text string, message string) {
			_, err := typegraph.Parse(text)
			Expect(err).Should(testutil.MatchError(
				testutil.MessageContainSubstring(message),
				testutil.KindIs(graphql.ErrKindValidation),
			))
		},

		Entry("two schema definitions",
			`schema { query: Q } schema { query: Q } type Q { a: Int }`,
			"Must provide only one schema definition."),

		Entry("repeated operation type",
			`schema { query: Q query: Q } type Q { a: Int }`,
			"There can be only one query type in schema."),

		Entry("duplicate directive",
			`directive @a on OBJECT directive @a on FIELD_DEFINITION`,
			`There can be only one directive named "@a".`),

		Entry("duplicate directive argument",
			`directive @a(x: Int, x: Int) on OBJECT`,
			`Argument "@a(x:)" can only be defined once.`),

		Entry("duplicate field argument",
			`type Query { f(x: Int, x: String): Int }`,
			`Argument "Query.f(x:)" can only be defined once.`),

		Entry("duplicate input field",
			`input I { a: Int a: Int }`,
			`Field "I.a" can only be defined once.`),

		Entry("redefined built-in scalar",
			`type String { a: Int }`,
			`Built-in scalar "String" cannot be redefined as ObjectType.`),

		Entry("extension of an undefined type",
			`type Query { a: Int } extend type Querry { b: Int }`,
			`Cannot extend type "Querry" because it is not defined. Did you mean "Query"?`),

		Entry("extension of another kind",
			`enum E { X } extend type E { a: Int }`,
			`Cannot extend non-object type "E".`),

		Entry("extension of an input object as union",
			`input I { a: Int } extend union I = I`,
			`Cannot extend non-union type "I".`),

		Entry("unknown directive",
			`type Query @cached { a: Int }`,
			`Unknown directive "@cached".`),

		Entry("misplaced directive",
			`type Query @deprecated { a: Int }`,
			`Directive "@deprecated" may not be used on OBJECT.`),

		Entry("repeated directive",
			`type Query { a: Int @deprecated @deprecated }`,
			`The directive "@deprecated" can only be used once at this location.`),

		Entry("root type of a wrong kind",
			`schema { query: Q } enum Q { A }`,
			"Query root type must be Object type, it cannot be Q."),

		Entry("unknown root type",
			`schema { query: Q }`,
			`Unknown type "Q".`),
	)
})
