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

package util_test

import (
	"github.com/botobag/schemadiff/internal/util"

	. "github.com/onsi/ginkgo"
	"github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("Dedent", func() {
	It("removes the indentation of a schema literal", func() {
		output := util.Dedent(`
      type Query {
        me: User
      }

      type User {
        id: ID
      }
    `)

		Expect(output).Should(Equal("type Query {\n  me: User\n}\n\ntype User {\n  id: ID\n}\n"))
	})

	table.DescribeTable("dedents",
		func(input string, expected string) {
			Expect(util.Dedent(input)).Should(Equal(expected))
		},
		table.Entry("only the first level", "\n    a\n      b\n    ", "a\n  b\n"),
		table.Entry("nothing without indentation", "a\n  b", "a\n  b"),
		table.Entry("tabs", "\n\t\ttype Query {\n\t\t  a: Int\n\t\t}\n\t", "type Query {\n  a: Int\n}\n"),
		table.Entry("around blank lines", "\n  a\n\n  b\n  ", "a\n\nb\n"),
		table.Entry("after several leading newlines", "\n\n\n  a", "a"),
	)
})
