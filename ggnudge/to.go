// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggnudge

import (
	"sort"

	"github.com/aclements/go-gg-extra/ggerr"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// Action selects what NudgeTo does to the target positions of one
// axis.
type Action int

const (
	// ActionNone uses the target positions as given.
	ActionNone Action = iota

	// ActionSpread replaces the targets with evenly spaced
	// positions across the target range (or the data range when
	// fewer than two targets are given).
	ActionSpread
)

// NudgeTo displaces observations to externally chosen target
// positions.
//
// Targets shorter than the table are recycled and then assigned by
// rank: the k-th smallest target goes to the row with the k-th
// smallest coordinate on that axis. A target vector whose length
// already equals the row count is applied positionally, with no
// reordering. Either way the output rows stay in their original
// order.
//
// The result replaces the targeted coordinate columns and, unless
// KeptOrigin is OriginNone, appends OrigX and OrigY columns with the
// pre-nudge coordinates.
type NudgeTo struct {
	// X and Y are the target positions for each axis. nil leaves
	// the axis alone (unless the axis has a spread action).
	X, Y []float64

	// XAction and YAction optionally redistribute the targets at
	// equal spacing.
	XAction, YAction Action

	// XDistance and YDistance, when non-zero, fix the spacing of
	// spread positions instead of dividing the range evenly. The
	// positions then step from the low end of the range.
	XDistance, YDistance float64

	// XExpansion and YExpansion expand (or, negative, contract)
	// the spread range by that signed fraction of its span,
	// applied symmetrically to both ends.
	XExpansion, YExpansion float64

	// KeptOrigin selects whether the pre-nudge coordinates are
	// retained. OriginJittered is not meaningful here.
	KeptOrigin KeptOrigin
}

func (p NudgeTo) F(g table.Grouping) table.Grouping {
	checkKeptOrigin(p.KeptOrigin, false)
	p.XAction = checkAction("XAction", p.XAction)
	p.YAction = checkAction("YAction", p.YAction)

	doX := p.X != nil || p.XAction == ActionSpread
	doY := p.Y != nil || p.YAction == ActionSpread

	return table.MapTables(g, func(gid table.GroupID, t *table.Table) *table.Table {
		if t.Len() == 0 || !(doX || doY) {
			return t
		}
		nb := table.NewBuilder(t)
		if doX {
			xs := colFloats(t, colX)
			nb.Add(colX, retarget(xs, p.X, p.XAction, p.XDistance, p.XExpansion))
		}
		if doY {
			ys := colFloats(t, colY)
			nb.Add(colY, retarget(ys, p.Y, p.YAction, p.YDistance, p.YExpansion))
		}
		if p.KeptOrigin != OriginNone {
			nb.Add(OrigX, t.MustColumn(colX))
			nb.Add(OrigY, t.MustColumn(colY))
		}
		return nb.Done()
	})
}

// retarget computes the new coordinates for one axis from the old
// coordinates and the target specification.
func retarget(vals, targets []float64, action Action, distance, expansion float64) []float64 {
	n := len(vals)

	if action == ActionSpread {
		lo, hi := stats.Bounds(vals)
		if len(targets) >= 2 {
			lo, hi = stats.Bounds(targets)
		}
		span := hi - lo
		lo -= span * expansion / 2
		hi += span * expansion / 2

		var ts []float64
		switch {
		case distance != 0:
			ts = make([]float64, n)
			for i := range ts {
				ts[i] = lo + float64(i)*distance
			}
		case n == 1:
			ts = []float64{lo}
		default:
			ts = vec.Linspace(lo, hi, n)
		}
		return rankAssign(vals, ts)
	}

	if len(targets) == 0 {
		return append([]float64(nil), vals...)
	}
	if len(targets) == n {
		return append([]float64(nil), targets...)
	}

	// Recycle the targets to the row count, then assign by rank.
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = targets[i%len(targets)]
	}
	return rankAssign(vals, ts)
}

// rankAssign gives the k-th smallest target to the row holding the
// k-th smallest value. Ties in vals break by row order, so the
// assignment is stable.
func rankAssign(vals, targets []float64) []float64 {
	order := make([]int, len(vals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return vals[order[a]] < vals[order[b]]
	})

	st := append([]float64(nil), targets...)
	sort.Float64s(st)

	out := make([]float64, len(vals))
	for r, i := range order {
		out[i] = st[r]
	}
	return out
}

func checkAction(name string, a Action) Action {
	if a != ActionNone && a != ActionSpread {
		ggerr.Warnf("ggnudge: unrecognized %s %d; leaving targets as given", name, int(a))
		return ActionNone
	}
	return a
}
