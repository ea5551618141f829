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

package ast_test

import (
	"github.com/botobag/schemadiff/graphql/ast"
	"github.com/botobag/schemadiff/graphql/parser"
	"github.com/botobag/schemadiff/graphql/token"
	"github.com/botobag/schemadiff/internal/util"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func parse(s string) ast.Document {
	doc, err := parser.Parse(token.NewSource("", s))
	Expect(err).ShouldNot(HaveOccurred())
	return doc
}

func nameOf(value string) ast.Name {
	return ast.Name{
		Token: &token.Token{
			Kind:  token.KindName,
			Value: value,
		},
	}
}

var _ = Describe("Printer", func() {
	It("prints minimal ast", func() {
		node := &ast.FieldDefinition{
			Name: nameOf("foo"),
			Type: ast.NonNullType{
				Type: ast.ListType{
					ItemType: ast.NamedType{Name: nameOf("String")},
				},
			},
		}
		Expect(ast.Print(node)).Should(Equal("foo: [String]!"))
	})

	It("prints an empty document", func() {
		Expect(ast.Print(ast.Document{})).Should(BeEmpty())
	})

	It("prints type system definitions", func() {
		doc := parse(`
"""
The greeting.
"""
type Hello implements Node @key(fields: "id") {
  "the world"
  world(limit: Int = 10, tags: [String] = ["a"]): [String!]!
  """
  multi
  line
  """
  other: Int @deprecated
}
union U = | A | B
extend enum E { X }
input Filter { "the name" name: String = "a \"quoted\" <b>" }
directive @cached(ttl: Int = 60) repeatable on FIELD_DEFINITION | OBJECT
schema { query: Hello }`)

		Expect(ast.Print(doc)).Should(Equal(util.Dedent(`
			"""The greeting."""
			type Hello implements Node @key(fields: "id") {
			  "the world"
			  world(limit: Int = 10, tags: [String] = ["a"]): [String!]!
			  """
			  multi
			  line
			  """
			  other: Int @deprecated
			}

			union U = A | B

			extend enum E {
			  X
			}

			input Filter {
			  "the name"
			  name: String = "a \"quoted\" <b>"
			}

			directive @cached(ttl: Int = 60) repeatable on FIELD_DEFINITION | OBJECT

			schema {
			  query: Hello
			}
		`)))
	})

	It("prints described arguments on separate lines", func() {
		doc := parse(`type Query { search("the term" term: String!, limit: Int): [ID] }`)
		Expect(ast.Print(doc)).Should(Equal(util.Dedent(`
			type Query {
			  search(
			    "the term"
			    term: String!
			    limit: Int
			  ): [ID]
			}
		`)))
	})

	It("prints output that parses to the same document", func() {
		source := `
schema { query: Query mutation: Mutation }
scalar Date @specifiedBy(url: "https://example.com")
interface Node { id: ID! }
type Query implements Node { id: ID! node(id: ID!, opts: Opts = {deep: true, depth: 1.5}): Node }
extend type Query @tag
enum Color { RED GREEN @deprecated(reason: """use "RED" instead""") }
input Opts { deep: Boolean depth: Float }
union Result = Query
`
		printed := ast.Print(parse(source))
		Expect(ast.Print(parse(printed))).Should(Equal(printed))
	})

	It("does not alter ast", func() {
		source := `type Query { a(b: [Int] = [1, 2]): String }`
		doc := parse(source)
		_ = ast.Print(doc)
		Expect(doc).Should(Equal(parse(source)))
	})
})
