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

package diff

import (
	"fmt"

	"github.com/botobag/schemadiff/graphql"
	"github.com/botobag/schemadiff/graphql/typegraph"
)

// Compare diffs two versions of a schema. Unexpected failures while walking the graphs don't
// escape: they are returned as a Fault in the Result.
func Compare(v1, v2 *typegraph.TypeGraph) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			result = Failed(graphql.NewError("panic while comparing schemas", err,
				graphql.Op("diff.Compare"), graphql.ErrKindComparison))
		}
	}()

	if v1 == nil || v2 == nil {
		return Failed(graphql.NewError("both schema versions are required",
			graphql.Op("diff.Compare"), graphql.ErrKindComparison))
	}

	return Succeeded(CompareTypes(v1, v2))
}

// CompareTypes walks the types of v1 in declaration order and reports types that were removed or
// changed their kind. Fields of objects and interfaces and values of enums are compared for types
// of the same kind in both versions. Types only in v2 are reported last, in v2's order.
func CompareTypes(v1, v2 *typegraph.TypeGraph) []Change {
	var changes []Change

	for _, typeV1 := range v1.Types() {
		name := typeV1.Name()
		if typegraph.IsExcluded(name) {
			continue
		}

		typeV2 := v2.Lookup(name)
		if typeV2 == nil {
			changes = append(changes, typeRemoved(name))
			continue
		}

		if typeV1.Kind() != typeV2.Kind() {
			// No further comparison between types of different kinds.
			changes = append(changes, typeKindChanged(name, typeV1.Kind().String(), typeV2.Kind().String()))
			continue
		}

		switch {
		case typeV1.Kind().HasFields():
			changes = append(changes, CompareFields(name, typeV1, typeV2)...)
		case typeV1.Kind() == typegraph.KindEnum:
			changes = append(changes, CompareEnumValues(name, typeV1, typeV2)...)
		}
	}

	for _, typeV2 := range v2.Types() {
		name := typeV2.Name()
		if typegraph.IsExcluded(name) || v1.Has(name) {
			continue
		}
		changes = append(changes, typeAdded(name))
	}

	return changes
}

// CompareFields diffs the fields of an object or an interface. Removed fields and fields whose
// type signature changed are reported in v1's order together with the changes to their arguments,
// followed by the new fields in v2's order.
func CompareFields(typeName string, v1, v2 *typegraph.Type) []Change {
	var changes []Change

	for _, fieldV1 := range v1.Fields() {
		fieldV2 := v2.Field(fieldV1.Name())
		if fieldV2 == nil {
			changes = append(changes, fieldRemoved(typeName, fieldV1.Name()))
			continue
		}

		if fieldV1.Type() != fieldV2.Type() {
			changes = append(changes, fieldTypeChanged(typeName, fieldV1.Name(), fieldV1.Type(), fieldV2.Type()))
		}
		changes = append(changes, CompareArguments(typeName, fieldV1, fieldV2)...)
	}

	for _, fieldV2 := range v2.Fields() {
		if v1.Field(fieldV2.Name()) == nil {
			changes = append(changes, fieldAdded(typeName, fieldV2.Name()))
		}
	}

	return changes
}

// CompareArguments diffs the argument names of a field present in both versions. When exactly one
// argument disappeared and exactly one appeared, the pair is reported as a rename. Otherwise every
// missing argument is reported as removed (or renamed) followed by every new argument. Changes to
// the types of arguments are not reported.
func CompareArguments(typeName string, v1, v2 *typegraph.Field) []Change {
	var removed, added []string
	for _, arg := range v1.Args() {
		if v2.Arg(arg.Name()) == nil {
			removed = append(removed, arg.Name())
		}
	}
	for _, arg := range v2.Args() {
		if v1.Arg(arg.Name()) == nil {
			added = append(added, arg.Name())
		}
	}

	fieldName := v1.Name()
	switch {
	case len(removed) == 0 && len(added) == 0:
		return nil

	case len(removed) == 1 && len(added) == 1:
		return []Change{argumentRenamed(typeName, fieldName, removed[0], added[0])}
	}

	changes := make([]Change, 0, len(removed)+len(added))
	for _, name := range removed {
		changes = append(changes, argumentRemoved(typeName, fieldName, name))
	}
	for _, name := range added {
		changes = append(changes, argumentAdded(typeName, fieldName, name))
	}
	return changes
}

// CompareEnumValues reports the values removed from an enum in v1's order followed by the values
// added in v2's order.
func CompareEnumValues(typeName string, v1, v2 *typegraph.Type) []Change {
	var changes []Change
	for _, value := range v1.Values() {
		if !v2.HasValue(value) {
			changes = append(changes, enumValueRemoved(typeName, value))
		}
	}
	for _, value := range v2.Values() {
		if !v1.HasValue(value) {
			changes = append(changes, enumValueAdded(typeName, value))
		}
	}
	return changes
}
