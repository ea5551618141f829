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
	"strings"
)

// Change is one classified difference between two versions of a schema. Changes are built by the
// comparators and never modified afterwards.
type Change struct {
	// Name of the type the change is scoped to
	Type string `json:"type"`

	// Name of the field the change is scoped to; empty for type-level and enum value changes
	Field string `json:"field,omitempty"`

	// Short description of the change (e.g., "Added new field 'goodbye'")
	Description string `json:"change"`

	// Breaking is true if the change can invalidate previously valid consumers.
	Breaking bool `json:"breaking"`

	// ReleaseNote is the human-readable note for the change.
	ReleaseNote string `json:"release_note"`
}

// HasField returns true if the change is scoped to a field.
func (change Change) HasField() bool {
	return len(change.Field) > 0
}

// Phrase renders the change as a phrase in a release summary.
func (change Change) Phrase() string {
	if !change.HasField() {
		return change.Description
	}
	if strings.HasPrefix(change.Description, "Added") || strings.HasPrefix(change.Description, "Removed") {
		return fmt.Sprintf("%s in %s", change.Description, change.Type)
	}
	return fmt.Sprintf("%s in %s '%s'", change.Description, change.Type, change.Field)
}

// Partition splits changes into breaking and non-breaking ones. The relative order of changes is
// preserved in both.
func Partition(changes []Change) (breaking []Change, nonBreaking []Change) {
	for _, change := range changes {
		if change.Breaking {
			breaking = append(breaking, change)
		} else {
			nonBreaking = append(nonBreaking, change)
		}
	}
	return
}

func typeRemoved(typeName string) Change {
	return Change{
		Type:        typeName,
		Description: fmt.Sprintf("Type '%s' was removed", typeName),
		Breaking:    true,
		ReleaseNote: fmt.Sprintf("The type '%s' has been removed. This is a breaking change and will affect any queries relying on this type.", typeName),
	}
}

func typeKindChanged(typeName string, oldKind string, newKind string) Change {
	return Change{
		Type:        typeName,
		Description: fmt.Sprintf("Type changed from '%s' to '%s'", oldKind, newKind),
		Breaking:    true,
		ReleaseNote: fmt.Sprintf("The type '%s' has changed from '%s' to '%s'. This is a breaking change.", typeName, oldKind, newKind),
	}
}

func typeAdded(typeName string) Change {
	return Change{
		Type:        typeName,
		Description: fmt.Sprintf("Added new type '%s'", typeName),
		ReleaseNote: fmt.Sprintf("A new type '%s' has been added. This is a non-breaking change.", typeName),
	}
}

func fieldRemoved(typeName string, fieldName string) Change {
	return Change{
		Type:        typeName,
		Field:       fieldName,
		Description: fmt.Sprintf("Field '%s' was removed", fieldName),
		Breaking:    true,
		ReleaseNote: fmt.Sprintf("The field '%s' on type '%s' has been removed. Update any queries or mutations using this field.", fieldName, typeName),
	}
}

func fieldTypeChanged(typeName string, fieldName string, oldType string, newType string) Change {
	return Change{
		Type:        typeName,
		Field:       fieldName,
		Description: fmt.Sprintf("Field type changed from '%s' to '%s'", oldType, newType),
		Breaking:    true,
		ReleaseNote: fmt.Sprintf("The type of field '%s' on type '%s' has changed from '%s' to '%s'. This is a breaking change.", fieldName, typeName, oldType, newType),
	}
}

func fieldAdded(typeName string, fieldName string) Change {
	return Change{
		Type:        typeName,
		Field:       fieldName,
		Description: fmt.Sprintf("Added new field '%s'", fieldName),
		ReleaseNote: fmt.Sprintf("A new field '%s' has been added to '%s'. This is a non-breaking change.", fieldName, typeName),
	}
}

func argumentRenamed(typeName string, fieldName string, oldName string, newName string) Change {
	return Change{
		Type:        typeName,
		Field:       fieldName,
		Description: fmt.Sprintf("Renamed input parameter '%s' to '%s'", oldName, newName),
		Breaking:    true,
		ReleaseNote: fmt.Sprintf("The input parameter for `%s` has been renamed from `%s` to `%s`. This is a breaking change, so make sure to update any queries that use `%s` to `%s`.", fieldName, oldName, newName, oldName, newName),
	}
}

func argumentRemoved(typeName string, fieldName string, argName string) Change {
	return Change{
		Type:        typeName,
		Field:       fieldName,
		Description: fmt.Sprintf("Renamed or removed argument '%s' in '%s'", argName, fieldName),
		Breaking:    true,
		ReleaseNote: fmt.Sprintf("The argument '%s' has been removed or renamed in '%s' on '%s'. Update queries accordingly.", argName, fieldName, typeName),
	}
}

func argumentAdded(typeName string, fieldName string, argName string) Change {
	return Change{
		Type:        typeName,
		Field:       fieldName,
		Description: fmt.Sprintf("Added new input parameter '%s'", argName),
		ReleaseNote: fmt.Sprintf("The input parameter `%s` has been added.", argName),
	}
}

func enumValueRemoved(typeName string, value string) Change {
	return Change{
		Type:        typeName,
		Description: fmt.Sprintf("Value '%s' was removed", value),
		Breaking:    true,
		ReleaseNote: fmt.Sprintf("Value '%s' on enum type '%s' has been removed. Update any queries or mutations using this field.", value, typeName),
	}
}

func enumValueAdded(typeName string, value string) Change {
	return Change{
		Type:        typeName,
		Description: fmt.Sprintf("Added new value '%s'", value),
		ReleaseNote: fmt.Sprintf("A new value '%s' has been added to enum type '%s'. This is a non-breaking change.", value, typeName),
	}
}
