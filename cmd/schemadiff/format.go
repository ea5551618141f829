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
	"fmt"
	"os"
	"strings"

	"github.com/botobag/schemadiff/graphql/ast"
	"github.com/botobag/schemadiff/graphql/parser"
	"github.com/botobag/schemadiff/graphql/token"
	"github.com/botobag/schemadiff/graphql/typegraph"

	"github.com/spf13/cobra"
)

func newFormatCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "format <schema file>",
		Short: "Print a schema file in canonical SDL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			text, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			source := token.NewSource(path, strings.ReplaceAll(string(text), "\r\n", "\n"))
			doc, err := parser.Parse(source)
			if err != nil {
				return err
			}
			if check {
				if _, err := typegraph.Build(doc); err != nil {
					return err
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), ast.Print(doc))
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "also validate the schema")

	return cmd
}
