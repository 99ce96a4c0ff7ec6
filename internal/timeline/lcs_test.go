// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package timeline provides diff minimization for ordered, identity-keyed
// item lists.
package timeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// collect splits diff results back into removed, kept and added sequences.
func collect(results []diffResult) (left, both, right []string) {
	for _, r := range results {
		switch r.kind {
		case diffLeft:
			left = append(left, r.id)
		case diffBoth:
			both = append(both, r.id)
		case diffRight:
			right = append(right, r.id)
		}
	}
	return left, both, right
}

func TestDiffSlicesEqual(t *testing.T) {
	ids := []string{"a", "b", "c"}
	left, both, right := collect(diffSlices(ids, ids))
	require.Empty(t, left)
	require.Equal(t, ids, both)
	require.Empty(t, right)
}

func TestDiffSlicesEmpty(t *testing.T) {
	require.Empty(t, diffSlices(nil, nil))

	_, _, right := collect(diffSlices(nil, []string{"a", "b"}))
	require.Equal(t, []string{"a", "b"}, right)

	left, _, _ := collect(diffSlices([]string{"a", "b"}, nil))
	require.Equal(t, []string{"a", "b"}, left)
}

func TestDiffSlicesKeepsOrder(t *testing.T) {
	old := []string{"a", "b", "c", "d"}
	new := []string{"a", "x", "c", "y"}

	results := diffSlices(old, new)
	require.Equal(t, []diffResult{
		{diffBoth, "a"},
		{diffLeft, "b"},
		{diffRight, "x"},
		{diffBoth, "c"},
		{diffLeft, "d"},
		{diffRight, "y"},
	}, results)
}

// TestDiffSlicesGroupsRemovalsFirst checks that within one misaligned run
// all removals come before all additions, which the minimizer relies on to
// fold the run into a single splice.
func TestDiffSlicesGroupsRemovalsFirst(t *testing.T) {
	old := []string{"a", "b", "c", "z"}
	new := []string{"x", "y", "z"}

	results := diffSlices(old, new)
	require.Equal(t, []diffResult{
		{diffLeft, "a"},
		{diffLeft, "b"},
		{diffLeft, "c"},
		{diffRight, "x"},
		{diffRight, "y"},
		{diffBoth, "z"},
	}, results)
}

// TestDiffSlicesTrimmedEnds checks that elements in the common prefix and
// suffix still appear as kept results; the minimizer needs them to advance
// positions and close update runs.
func TestDiffSlicesTrimmedEnds(t *testing.T) {
	old := []string{"p1", "p2", "m", "s1", "s2"}
	new := []string{"p1", "p2", "n", "s1", "s2"}

	results := diffSlices(old, new)
	require.Equal(t, []diffResult{
		{diffBoth, "p1"},
		{diffBoth, "p2"},
		{diffLeft, "m"},
		{diffRight, "n"},
		{diffBoth, "s1"},
		{diffBoth, "s2"},
	}, results)
}
