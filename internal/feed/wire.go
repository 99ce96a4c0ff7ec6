// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package feed delivers timeline diff batches to a room timeline.
package feed

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jeranaias/timeline-tui/internal/model"
	"github.com/jeranaias/timeline-tui/internal/timeline"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrUnknownOp    = errors.New("unknown feed op")
	ErrMissingValue = errors.New("feed op is missing its value")
)

// =============================================================================
// WIRE FORMAT
// =============================================================================

// wireOp is one JSON line of a feed file. Only the fields relevant to Op
// are set. Op "batch" groups Ops into one batch applied together.
type wireOp struct {
	Op     string        `json:"op"`
	Index  int           `json:"index,omitempty"`
	Length int           `json:"length,omitempty"`
	Value  *model.Event  `json:"value,omitempty"`
	Values []model.Event `json:"values,omitempty"`
	Ops    []wireOp      `json:"ops,omitempty"`
}

// DecodeBatch decodes one feed line into a diff batch. A plain op decodes
// into a single-diff batch; a "batch" op decodes into one diff per grouped
// op.
func DecodeBatch(line []byte) ([]timeline.Diff[model.Event], error) {
	var w wireOp
	if err := json.Unmarshal(line, &w); err != nil {
		return nil, fmt.Errorf("failed to decode feed line: %w", err)
	}

	if w.Op == "batch" {
		diffs := make([]timeline.Diff[model.Event], 0, len(w.Ops))
		for _, op := range w.Ops {
			d, err := op.toDiff()
			if err != nil {
				return nil, err
			}
			diffs = append(diffs, d)
		}
		return diffs, nil
	}

	d, err := w.toDiff()
	if err != nil {
		return nil, err
	}
	return []timeline.Diff[model.Event]{d}, nil
}

// toDiff converts one wire op into a timeline diff.
func (w wireOp) toDiff() (timeline.Diff[model.Event], error) {
	var zero timeline.Diff[model.Event]

	switch w.Op {
	case "append":
		return timeline.Append(w.Values...), nil
	case "push-front":
		if w.Value == nil {
			return zero, fmt.Errorf("%w: %s", ErrMissingValue, w.Op)
		}
		return timeline.PushFront(*w.Value), nil
	case "push-back":
		if w.Value == nil {
			return zero, fmt.Errorf("%w: %s", ErrMissingValue, w.Op)
		}
		return timeline.PushBack(*w.Value), nil
	case "pop-front":
		return timeline.PopFront[model.Event](), nil
	case "pop-back":
		return timeline.PopBack[model.Event](), nil
	case "insert":
		if w.Value == nil {
			return zero, fmt.Errorf("%w: %s", ErrMissingValue, w.Op)
		}
		return timeline.Insert(w.Index, *w.Value), nil
	case "remove":
		return timeline.Remove[model.Event](w.Index), nil
	case "set":
		if w.Value == nil {
			return zero, fmt.Errorf("%w: %s", ErrMissingValue, w.Op)
		}
		return timeline.Set(w.Index, *w.Value), nil
	case "clear":
		return timeline.Clear[model.Event](), nil
	case "truncate":
		return timeline.Truncate[model.Event](w.Length), nil
	case "reset":
		return timeline.Reset(w.Values...), nil
	default:
		return zero, fmt.Errorf("%w: %q", ErrUnknownOp, w.Op)
	}
}
