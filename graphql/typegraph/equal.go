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
	"slices"
)

// Equal reports whether two TypeGraphs describe the same schema. Declaration order, descriptions
// and applied directives are ignored; types excluded from comparisons (built-in scalars and
// introspection names) don't count. Everything else is compared: kinds, field and argument type
// signatures, default values, enum values, input fields, union members, implemented interfaces,
// root operation types and custom directive definitions.
func Equal(a, b *TypeGraph) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	if a.query != b.query || a.mutation != b.mutation || a.subscription != b.subscription {
		return false
	}

	if countComparable(a) != countComparable(b) {
		return false
	}
	for _, ta := range a.types {
		if IsExcluded(ta.name) {
			continue
		}
		tb := b.Lookup(ta.name)
		if tb == nil || !typeEqual(ta, tb) {
			return false
		}
	}

	return directivesEqual(a.directives, b.directives)
}

func countComparable(graph *TypeGraph) int {
	count := 0
	for _, t := range graph.types {
		if !IsExcluded(t.name) {
			count++
		}
	}
	return count
}

func typeEqual(a, b *Type) bool {
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindObject, KindInterface:
		if !sameSet(a.interfaces, b.interfaces) || len(a.fields) != len(b.fields) {
			return false
		}
		for _, fa := range a.fields {
			fb := b.Field(fa.name)
			if fb == nil || fa.signature != fb.signature || !argumentsEqual(fa.args, fb.argIndex) {
				return false
			}
		}
		return true

	case KindEnum:
		return sameSet(a.values, b.values)

	case KindInputObject:
		return argumentsEqual(a.inputFields, b.inputFieldIndex)

	case KindUnion:
		return sameSet(a.possibleTypes, b.possibleTypes)
	}

	return true
}

func argumentsEqual(a []*Argument, b map[string]*Argument) bool {
	if len(a) != len(b) {
		return false
	}
	for _, argA := range a {
		argB, exists := b[argA.name]
		if !exists || !argumentEqual(argA, argB) {
			return false
		}
	}
	return true
}

func argumentEqual(a, b *Argument) bool {
	return a.name == b.name &&
		a.signature == b.signature &&
		a.hasDefault == b.hasDefault &&
		a.defaultValue == b.defaultValue
}

func directivesEqual(a, b []*Directive) bool {
	if len(a) != len(b) {
		return false
	}

	index := make(map[string]*Directive, len(b))
	for _, directive := range b {
		index[directive.name] = directive
	}

	for _, da := range a {
		db, exists := index[da.name]
		if !exists || da.repeatable != db.repeatable || !sameSet(da.locations, db.locations) {
			return false
		}

		argIndex := make(map[string]*Argument, len(db.args))
		for _, arg := range db.args {
			argIndex[arg.name] = arg
		}
		if !argumentsEqual(da.args, argIndex) {
			return false
		}
	}
	return true
}

// sameSet returns true if a and b contain the same strings regardless of order.
func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sortedA := slices.Clone(a)
	sortedB := slices.Clone(b)
	slices.Sort(sortedA)
	slices.Sort(sortedB)
	return slices.Equal(sortedA, sortedB)
}
