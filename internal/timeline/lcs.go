// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package timeline provides diff minimization for ordered, identity-keyed
// item lists.
package timeline

// =============================================================================
// SEQUENCE DIFF
// =============================================================================

// diffResultKind classifies one element of a sequence diff.
type diffResultKind int

const (
	// diffLeft is an element present only in the old sequence (removed).
	diffLeft diffResultKind = iota
	// diffBoth is an element present in both sequences (unchanged position).
	diffBoth
	// diffRight is an element present only in the new sequence (added).
	diffRight
)

// diffResult is one element of a sequence diff, tagged with its origin.
type diffResult struct {
	kind diffResultKind
	id   string
}

// diffSlices compares two identity sequences and returns, in order, which
// elements were removed (left), kept (both) or added (right).
//
// Identical prefixes and suffixes are matched with a two-pointer scan so the
// LCS table only covers the changed region, keeping the common case (a
// handful of edits in a long sequence) close to linear.
func diffSlices(old, new []string) []diffResult {
	// Common prefix.
	prefix := 0
	for prefix < len(old) && prefix < len(new) && old[prefix] == new[prefix] {
		prefix++
	}

	// Common suffix, not overlapping the prefix.
	suffix := 0
	for suffix < len(old)-prefix && suffix < len(new)-prefix &&
		old[len(old)-1-suffix] == new[len(new)-1-suffix] {
		suffix++
	}

	a := old[prefix : len(old)-suffix]
	b := new[prefix : len(new)-suffix]

	results := make([]diffResult, 0, len(old)+len(new)-prefix-suffix)
	for _, id := range old[:prefix] {
		results = append(results, diffResult{kind: diffBoth, id: id})
	}
	results = append(results, diffMiddle(a, b)...)
	for _, id := range old[len(old)-suffix:] {
		results = append(results, diffResult{kind: diffBoth, id: id})
	}
	return results
}

// diffMiddle runs an LCS reconciliation over the changed region. Removals
// are emitted before additions within one misaligned run, so the caller can
// fold a run into a single splice.
func diffMiddle(a, b []string) []diffResult {
	m, n := len(a), len(b)
	if m == 0 && n == 0 {
		return nil
	}

	// dp[i][j] is the LCS length of a[i:] and b[j:].
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if a[i] == b[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else if dp[i+1][j] >= dp[i][j+1] {
				dp[i][j] = dp[i+1][j]
			} else {
				dp[i][j] = dp[i][j+1]
			}
		}
	}

	results := make([]diffResult, 0, m+n)
	i, j := 0, 0
	for i < m || j < n {
		switch {
		case i < m && j < n && a[i] == b[j]:
			results = append(results, diffResult{kind: diffBoth, id: a[i]})
			i++
			j++
		case i < m && (j >= n || dp[i+1][j] >= dp[i][j+1]):
			results = append(results, diffResult{kind: diffLeft, id: a[i]})
			i++
		default:
			results = append(results, diffResult{kind: diffRight, id: b[j]})
			j++
		}
	}
	return results
}
