// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggnudge

import (
	"math"

	"github.com/aclements/go-gg-extra/ggerr"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
)

// CenterDirection selects how NudgeCenter orients each observation's
// displacement relative to the center.
type CenterDirection int

const (
	// CenterAuto infers the direction from which centers are set:
	// neither center gives CenterNone, exactly one gives
	// CenterSplit, and both give CenterRadial. The inference
	// happens once per F call, not per row.
	CenterAuto CenterDirection = iota

	// CenterNone adds the fixed (X, Y) offsets to every row.
	CenterNone

	// CenterRadial displaces each row along the ray from the
	// center through the row, away from the center for positive
	// nudges and toward it for negative ones.
	CenterRadial

	// CenterSplit displaces each row away from the center axes,
	// signing each nudge by the side of the center the row lies
	// on.
	CenterSplit
)

// Fixed returns a center function that ignores the data and always
// returns v, for use as NudgeCenter.CenterX or CenterY.
func Fixed(v float64) func([]float64) float64 {
	return func([]float64) float64 { return v }
}

// NudgeCenter displaces observations relative to a central point.
//
// The center of each coordinate is either a fixed value (see Fixed) or
// a reducer applied to the group's coordinates; stats.Mean is the
// default reducer and any function with its signature can be used.
//
// The result replaces the "x" and "y" columns and, unless KeptOrigin is
// OriginNone, appends OrigX and OrigY columns with the pre-nudge
// coordinates. An axis whose nudge distance is zero is left completely
// untouched, so discrete (non-numeric) coordinate columns survive as
// long as they are not nudged. CenterRadial is the one exception: its
// orientation angle reads both coordinate columns, so both must be
// numeric even when only one is nudged.
type NudgeCenter struct {
	// X and Y are the nudge distances. Negative values displace
	// toward the center instead of away from it.
	X, Y float64

	// CenterX and CenterY compute the center coordinate from a
	// group's values. nil means unset, which drives the CenterAuto
	// inference; when a center is needed but unset, stats.Mean is
	// used.
	CenterX, CenterY func([]float64) float64

	// Direction orients the displacement. The default CenterAuto
	// infers it from CenterX/CenterY.
	Direction CenterDirection

	// ObeyGrouping selects whether centers are computed per group
	// (each table of the Grouping) or once from all groups pooled.
	// nil infers: pooled for CenterNone or when a nudged axis has
	// a non-numeric column, per group otherwise.
	ObeyGrouping *bool

	// KeptOrigin selects whether the pre-nudge coordinates are
	// retained. OriginJittered is not meaningful here.
	KeptOrigin KeptOrigin
}

func (p NudgeCenter) F(g table.Grouping) table.Grouping {
	checkKeptOrigin(p.KeptOrigin, false)

	dir := p.Direction
	if dir == CenterAuto {
		switch {
		case p.CenterX == nil && p.CenterY == nil:
			dir = CenterNone
		case p.CenterX != nil && p.CenterY != nil:
			dir = CenterRadial
		default:
			dir = CenterSplit
		}
	}
	if dir < CenterNone || dir > CenterSplit {
		ggerr.Warnf("ggnudge: unrecognized center direction %d; applying nudge as-is", int(dir))
		dir = CenterNone
	}

	if dir == CenterNone {
		return table.MapTables(g, p.nudgeFixed)
	}

	// An axis with a zero nudge is never converted, so discrete
	// coordinate columns survive as long as they are not nudged.
	// Radial orientation is the exception: the angle to the center
	// needs both coordinates, so both columns must be numeric.
	doX, doY := p.X != 0, p.Y != 0
	needX := doX || dir == CenterRadial
	needY := doY || dir == CenterRadial

	obey := true
	if p.ObeyGrouping != nil {
		obey = *p.ObeyGrouping
	} else if (doX && !numericCol(g, colX)) || (doY && !numericCol(g, colY)) {
		obey = false
	}

	// With grouping disobeyed, the whole dataset is one group:
	// compute shared centers up front.
	var cx, cy float64
	if !obey {
		var axs, ays []float64
		for _, gid := range g.Tables() {
			t := g.Table(gid)
			if needX {
				axs = append(axs, colFloats(t, colX)...)
			}
			if needY {
				ays = append(ays, colFloats(t, colY)...)
			}
		}
		if needX {
			cx = centerOf(axs, p.CenterX)
		}
		if needY {
			cy = centerOf(ays, p.CenterY)
		}
	}

	return table.MapTables(g, func(gid table.GroupID, t *table.Table) *table.Table {
		if t.Len() == 0 {
			return t
		}
		var xs, ys []float64
		if needX {
			xs = colFloats(t, colX)
		}
		if needY {
			ys = colFloats(t, colY)
		}
		gcx, gcy := cx, cy
		if obey {
			if needX {
				gcx = centerOf(xs, p.CenterX)
			}
			if needY {
				gcy = centerOf(ys, p.CenterY)
			}
		}

		var nx, ny []float64
		if doX {
			nx = make([]float64, t.Len())
		}
		if doY {
			ny = make([]float64, t.Len())
		}
		for i := 0; i < t.Len(); i++ {
			var dx, dy float64
			if needX {
				dx = xs[i] - gcx
			}
			if needY {
				dy = ys[i] - gcy
			}
			var ox, oy float64
			switch {
			case dir == CenterRadial:
				ox, oy = p.radial(dx, dy)
			case doX && doY:
				ox, oy = p.split(dx, dy)
			case doX:
				ox = sign(dx) * p.X
			case doY:
				oy = sign(dy) * p.Y
			}
			if doX {
				nx[i] = xs[i] + ox
			}
			if doY {
				ny[i] = ys[i] + oy
			}
		}

		nb := table.NewBuilder(t)
		if doX {
			nb.Add(colX, nx)
		}
		if doY {
			nb.Add(colY, ny)
		}
		if p.KeptOrigin != OriginNone {
			nb.Add(OrigX, t.MustColumn(colX))
			nb.Add(OrigY, t.MustColumn(colY))
		}
		return nb.Done()
	})
}

// nudgeFixed is the direction-none policy: add the offsets
// unconditionally, touching only nudged axes.
func (p NudgeCenter) nudgeFixed(gid table.GroupID, t *table.Table) *table.Table {
	if t.Len() == 0 {
		return t
	}
	nb := table.NewBuilder(t)
	if p.X != 0 {
		xs := colFloats(t, colX)
		nx := make([]float64, len(xs))
		for i, x := range xs {
			nx[i] = x + p.X
		}
		nb.Add(colX, nx)
	}
	if p.Y != 0 {
		ys := colFloats(t, colY)
		ny := make([]float64, len(ys))
		for i, y := range ys {
			ny[i] = y + p.Y
		}
		nb.Add(colY, ny)
	}
	if p.KeptOrigin != OriginNone {
		nb.Add(OrigX, t.MustColumn(colX))
		nb.Add(OrigY, t.MustColumn(colY))
	}
	return nb.Done()
}

// radial decomposes the nudge distances along the center-to-row angle
// rotated by 90 degrees, so positive distances point away from the
// center. A row exactly at the center falls back to the raw distances
// to avoid a NaN from the zero-length radius.
func (p NudgeCenter) radial(dx, dy float64) (ox, oy float64) {
	if dx == 0 && dy == 0 {
		return p.X, p.Y
	}
	a := math.Atan2(dy, dx) + math.Pi/2
	return p.X * math.Sin(a), -p.Y * math.Cos(a)
}

// split signs each nudge by the side of the center the row lies on. A
// row exactly on one center axis gets the full Euclidean norm of the
// nudge on the other axis, so its straight connector has the same
// length as the diagonal ones.
func (p NudgeCenter) split(dx, dy float64) (ox, oy float64) {
	sx, sy := sign(dx), sign(dy)
	switch {
	case sx == 0 && sy != 0:
		return 0, sy * math.Hypot(p.X, p.Y)
	case sy == 0 && sx != 0:
		return sx * math.Hypot(p.X, p.Y), 0
	}
	return sx * p.X, sy * p.Y
}

func centerOf(vals []float64, c func([]float64) float64) float64 {
	if c == nil {
		return stats.Mean(vals)
	}
	return c(vals)
}
