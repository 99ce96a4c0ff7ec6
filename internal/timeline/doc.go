// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package timeline provides diff minimization for ordered, identity-keyed
// item lists.
//
// A data source describes changes to an ordered sequence as a batch of
// incremental operations (append, insert, remove, set, ...). Applying such
// a batch naively to an observable list produces one notification per
// operation, which is wasteful when a batch touches many positions. This
// package collapses a batch into the smallest list of contiguous splice and
// update operations that produces the same final sequence, so observers see
// a handful of atomic changes instead.
//
// # Key Types
//
//   - Diff: A single incoming sequence mutation (see DiffKind)
//   - ItemStore: Contract a backing collection implements to be minimized
//   - Minimizer: Runs one load -> simulate -> diff -> apply pass
//   - SpliceDiff, UpdateDiff: The minimized output operations
//
// # Usage
//
// Check eligibility, then minimize against a store:
//
//	if timeline.CanMinimize(diffs) {
//		timeline.NewMinimizer(store).Minimize(diffs)
//	} else {
//		// fall back to applying the batch naively or rebuilding
//	}
//
// Clear, Truncate and Reset batches cannot be minimized and must be handled
// by the caller's full-rebuild path.
package timeline
