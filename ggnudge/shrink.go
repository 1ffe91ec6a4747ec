// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggnudge

import (
	"math"

	"github.com/aclements/go-gg-extra/ggerr"
	"github.com/aclements/go-gg/table"
)

// Shrink trims the connector segments between original and displaced
// coordinates so they stop short of the marks at either end, and
// suppresses connectors too short to be worth drawing.
//
// It reads the OrigX/OrigY and "x"/"y" columns produced by the nudge
// adjustments and appends five columns:
//
// - Columns "x0", "y0" are the clipped origin endpoint.
//
// - Columns "x1", "y1" are the clipped destination endpoint.
//
// - Column "too short" is true for rows whose connector should not be
// drawn at all: coincident endpoints, or a clipped length below
// MinLength. The clipped endpoints of such rows are not meaningful.
type Shrink struct {
	// PointPadding is the distance to trim at the destination
	// (displaced) end, keeping the connector clear of the plotted
	// point.
	PointPadding float64

	// BoxPadding is the distance to trim at the origin end. Zero
	// treats the origin as a dimensionless point; a text box or
	// similar inset at the origin supplies its padding here.
	BoxPadding float64

	// MinLength suppresses connectors whose length after trimming
	// falls below it.
	MinLength float64
}

func (s Shrink) F(g table.Grouping) table.Grouping {
	checkPadding("PointPadding", s.PointPadding)
	checkPadding("BoxPadding", s.BoxPadding)
	checkPadding("MinLength", s.MinLength)

	return table.MapTables(g, func(gid table.GroupID, t *table.Table) *table.Table {
		if t.Len() == 0 {
			return t
		}
		x0s, y0s := colFloats(t, OrigX), colFloats(t, OrigY)
		x1s, y1s := colFloats(t, colX), colFloats(t, colY)

		cx0 := make([]float64, len(x0s))
		cy0 := make([]float64, len(x0s))
		cx1 := make([]float64, len(x0s))
		cy1 := make([]float64, len(x0s))
		short := make([]bool, len(x0s))
		for i := range x0s {
			cx0[i], cy0[i], cx1[i], cy1[i], short[i] =
				s.clip(x0s[i], y0s[i], x1s[i], y1s[i])
		}

		return table.NewBuilder(t).
			Add("x0", cx0).Add("y0", cy0).
			Add("x1", cx1).Add("y1", cy1).
			Add("too short", short).
			Done()
	})
}

// clip pulls the destination end of the segment in by PointPadding and
// the origin end in by BoxPadding. Coincident endpoints, and segments
// whose remaining length is below MinLength, are marked too short.
func (s Shrink) clip(x0, y0, x1, y1 float64) (nx0, ny0, nx1, ny1 float64, short bool) {
	l := math.Hypot(x1-x0, y1-y0)
	if l == 0 {
		return x0, y0, x1, y1, true
	}
	ux, uy := (x1-x0)/l, (y1-y0)/l
	nx0 = x0 + ux*s.BoxPadding
	ny0 = y0 + uy*s.BoxPadding
	nx1 = x1 - ux*s.PointPadding
	ny1 = y1 - uy*s.PointPadding
	rem := l - s.BoxPadding - s.PointPadding
	short = rem <= 0 || rem < s.MinLength
	return
}

func checkPadding(name string, v float64) {
	if v < 0 || math.IsNaN(v) {
		panic(&ggerr.InvalidParameterError{Param: name, Value: v, Detail: "must be >= 0"})
	}
}
