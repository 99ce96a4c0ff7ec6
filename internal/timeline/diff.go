// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package timeline provides diff minimization for ordered, identity-keyed
// item lists.
package timeline

// =============================================================================
// DIFF KIND
// =============================================================================

// DiffKind identifies the variant of a sequence mutation.
type DiffKind int

const (
	// DiffAppend adds Values to the end of the sequence, in order.
	DiffAppend DiffKind = iota
	// DiffPushFront adds Value at the start of the sequence.
	DiffPushFront
	// DiffPushBack adds Value at the end of the sequence.
	DiffPushBack
	// DiffPopFront removes the first element.
	DiffPopFront
	// DiffPopBack removes the last element.
	DiffPopBack
	// DiffInsert inserts Value at Index.
	DiffInsert
	// DiffRemove removes the element at Index.
	DiffRemove
	// DiffSet replaces the element at Index with Value. If the new value has
	// the same identity this is an in-place update, otherwise a replacement.
	DiffSet
	// DiffClear removes all elements. Not minimizable.
	DiffClear
	// DiffTruncate shortens the sequence to Length elements. Not minimizable.
	DiffTruncate
	// DiffReset replaces the whole sequence with Values. Not minimizable.
	DiffReset
)

// String returns the string representation of the diff kind.
func (k DiffKind) String() string {
	switch k {
	case DiffAppend:
		return "append"
	case DiffPushFront:
		return "push-front"
	case DiffPushBack:
		return "push-back"
	case DiffPopFront:
		return "pop-front"
	case DiffPopBack:
		return "pop-back"
	case DiffInsert:
		return "insert"
	case DiffRemove:
		return "remove"
	case DiffSet:
		return "set"
	case DiffClear:
		return "clear"
	case DiffTruncate:
		return "truncate"
	case DiffReset:
		return "reset"
	default:
		return "unknown"
	}
}

// =============================================================================
// DIFF
// =============================================================================

// Diff is one incoming mutation of an ordered sequence of D values.
// Only the fields relevant to Kind are set; use the constructors below.
type Diff[D Data] struct {
	Kind   DiffKind
	Index  int // Insert, Remove, Set
	Length int // Truncate
	Value  D   // PushFront, PushBack, Insert, Set
	Values []D // Append, Reset
}

// Append returns a diff that adds values to the end of the sequence.
func Append[D Data](values ...D) Diff[D] {
	return Diff[D]{Kind: DiffAppend, Values: values}
}

// PushFront returns a diff that adds value at the start of the sequence.
func PushFront[D Data](value D) Diff[D] {
	return Diff[D]{Kind: DiffPushFront, Value: value}
}

// PushBack returns a diff that adds value at the end of the sequence.
func PushBack[D Data](value D) Diff[D] {
	return Diff[D]{Kind: DiffPushBack, Value: value}
}

// PopFront returns a diff that removes the first element.
func PopFront[D Data]() Diff[D] {
	return Diff[D]{Kind: DiffPopFront}
}

// PopBack returns a diff that removes the last element.
func PopBack[D Data]() Diff[D] {
	return Diff[D]{Kind: DiffPopBack}
}

// Insert returns a diff that inserts value at index.
func Insert[D Data](index int, value D) Diff[D] {
	return Diff[D]{Kind: DiffInsert, Index: index, Value: value}
}

// Remove returns a diff that removes the element at index.
func Remove[D Data](index int) Diff[D] {
	return Diff[D]{Kind: DiffRemove, Index: index}
}

// Set returns a diff that replaces the element at index with value.
func Set[D Data](index int, value D) Diff[D] {
	return Diff[D]{Kind: DiffSet, Index: index, Value: value}
}

// Clear returns a diff that removes all elements.
func Clear[D Data]() Diff[D] {
	return Diff[D]{Kind: DiffClear}
}

// Truncate returns a diff that shortens the sequence to length elements.
func Truncate[D Data](length int) Diff[D] {
	return Diff[D]{Kind: DiffTruncate, Length: length}
}

// Reset returns a diff that replaces the whole sequence with values.
func Reset[D Data](values ...D) Diff[D] {
	return Diff[D]{Kind: DiffReset, Values: values}
}

// =============================================================================
// ELIGIBILITY
// =============================================================================

// CanMinimize reports whether the given diff list can be minimized with a
// Minimizer.
//
// It can be minimized if there is more than one diff in the list and the
// list only includes supported kinds. Clear, Truncate and Reset imply a full
// materialization the caller must handle itself.
func CanMinimize[D Data](diffs []Diff[D]) bool {
	if len(diffs) <= 1 {
		return false
	}
	for _, d := range diffs {
		switch d.Kind {
		case DiffClear, DiffTruncate, DiffReset:
			return false
		}
	}
	return true
}
