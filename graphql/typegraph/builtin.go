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
	"strings"
)

// builtinScalars are the scalars every schema has without defining them.
var builtinScalars = map[string]bool{
	"Int":     true,
	"Float":   true,
	"String":  true,
	"Boolean": true,
	"ID":      true,
}

// IsBuiltinScalar returns true for Int, Float, String, Boolean and ID.
func IsBuiltinScalar(name string) bool {
	return builtinScalars[name]
}

// IsIntrospectionName returns true for names reserved by the introspection system ("__Type",
// "__schema", ...).
func IsIntrospectionName(name string) bool {
	return strings.HasPrefix(name, "__")
}

// IsExcluded returns true if a type with the given name never takes part in a comparison.
func IsExcluded(name string) bool {
	return IsBuiltinScalar(name) || IsIntrospectionName(name)
}

// standardDirectives lists directives that are available without a definition with the locations
// where they may be applied.
var standardDirectives = map[string][]string{
	"skip":        {"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
	"include":     {"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
	"deprecated":  {"FIELD_DEFINITION", "ARGUMENT_DEFINITION", "INPUT_FIELD_DEFINITION", "ENUM_VALUE"},
	"specifiedBy": {"SCALAR"},
}
