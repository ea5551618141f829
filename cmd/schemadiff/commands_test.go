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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/json-iterator/go"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Commands", func() {
	var (
		dir    string
		stdout *bytes.Buffer
		stderr *bytes.Buffer
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "schemadiff")
		Expect(err).ShouldNot(HaveOccurred())
		stdout = &bytes.Buffer{}
		stderr = &bytes.Buffer{}
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	writeFile := func(name string, content string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(content), 0o600)).Should(Succeed())
		return path
	}

	execute := func(args ...string) error {
		cmd := newRootCmd()
		cmd.SetArgs(args)
		cmd.SetOut(stdout)
		cmd.SetErr(stderr)
		return cmd.ExecuteContext(context.Background())
	}

	Describe("compare", func() {
		It("prints the report", func() {
			oldPath := writeFile("v1.graphql", "type Query { a: Int }\ntype User { id: ID }")
			newPath := writeFile("v2.graphql", "type Query { a: Int b: String }\ntype User { id: ID }")

			Expect(execute("compare", "--old", oldPath, "--new", newPath)).Should(Succeed())

			var output map[string]interface{}
			Expect(jsoniter.Unmarshal(stdout.Bytes(), &output)).Should(Succeed())
			Expect(output["changes"]).Should(ConsistOf(And(
				HaveKeyWithValue("type", "Query"),
				HaveKeyWithValue("field", "b"),
				HaveKeyWithValue("breaking", false),
			)))
			Expect(output).Should(HaveKey("release_notes"))
		})

		It("fails on breaking changes when asked to", func() {
			oldPath := writeFile("v1.graphql", "type Query { a: Int b: String }")
			newPath := writeFile("v2.graphql", "type Query { a: Int }")

			Expect(execute("compare", "--old", oldPath, "--new", newPath)).Should(Succeed())

			stdout.Reset()
			err := execute("compare", "--old", oldPath, "--new", newPath, "--fail-on-breaking")
			Expect(err).Should(MatchError(errBreakingDetected))
			Expect(stdout.String()).Should(ContainSubstring("Field 'b' was removed"))
		})

		It("reports schemas that cannot be parsed", func() {
			oldPath := writeFile("v1.graphql", "type Query {")
			newPath := writeFile("v2.graphql", "type Query { a: Int }")

			err := execute("compare", "--old", oldPath, "--new", newPath)
			Expect(err).Should(MatchError(errParsingFailed))
			Expect(stdout.String()).Should(MatchJSON(`{
				"parsing_failed": ["Version 1 of the GraphQL schema could not be parsed", "type Query {"]
			}`))
		})

		It("rejects unknown techniques", func() {
			oldPath := writeFile("v1.graphql", "type Query { a: Int }")
			newPath := writeFile("v2.graphql", "type Query { a: Int }")

			err := execute("compare", "--old", oldPath, "--new", newPath, "--diff-technique", "magic")
			Expect(err).Should(MatchError(ContainSubstring(`unknown technique "magic"`)))
		})

		It("requires both schema files", func() {
			oldPath := writeFile("v1.graphql", "type Query { a: Int }")
			Expect(execute("compare", "--old", oldPath)).ShouldNot(Succeed())
		})

		It("rejects an invalid configuration", func() {
			configPath := writeFile("schemadiff.yaml", "logging:\n  level: loud\n")
			oldPath := writeFile("v1.graphql", "type Query { a: Int }")
			newPath := writeFile("v2.graphql", "type Query { a: Int }")

			err := execute("--config", configPath, "compare", "--old", oldPath, "--new", newPath)
			Expect(err).Should(MatchError(ContainSubstring("invalid configuration")))
		})
	})

	Describe("format", func() {
		It("prints the schema in canonical SDL", func() {
			path := writeFile("schema.graphql", "type Query{a:Int b(x:String=\"y\"):[ID!]}")

			Expect(execute("format", path)).Should(Succeed())
			Expect(stdout.String()).Should(Equal("type Query {\n  a: Int\n  b(x: String = \"y\"): [ID!]\n}\n"))
		})

		It("validates the schema when asked to", func() {
			path := writeFile("schema.graphql", "type Query { a: Strin }")

			Expect(execute("format", path)).Should(Succeed())
			Expect(execute("format", "--check", path)).Should(MatchError(ContainSubstring(`Unknown type "Strin"`)))
		})
	})
})
