// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggnudge

import (
	"math/rand"
	"time"

	"github.com/aclements/go-gg-extra/ggerr"
	"github.com/aclements/go-gg/table"
)

// JitterDirection selects how JitterNudge signs the nudge of each row.
type JitterDirection int

const (
	// JitterAsIs applies the nudge distances unmodified.
	JitterAsIs JitterDirection = iota

	// JitterSplit signs each axis's nudge by the jitter actually
	// applied to that row on that axis, so the nudge continues the
	// jitter's direction. A row whose jitter is exactly zero gives
	// no directional information; its sign is an independent coin
	// flip from the same random source.
	JitterSplit

	// JitterSplitX and JitterSplitY restrict the split to one
	// axis, leaving the other axis's nudge as-is.
	JitterSplitX
	JitterSplitY

	// JitterAlternate signs the nudge +1/-1 by row index,
	// independent of the jitter.
	JitterAlternate

	// JitterAlternateX and JitterAlternateY restrict the
	// alternation to one axis.
	JitterAlternateX
	JitterAlternateY
)

// NudgeFrom selects, per axis, which coordinate the directed nudge is
// added to.
type NudgeFrom int

const (
	// FromJittered nudges from the post-jitter coordinates. This
	// is the default.
	FromJittered NudgeFrom = iota

	// FromOriginal nudges from the pre-jitter coordinates on both
	// axes, so the jitter only contributes direction.
	FromOriginal

	// FromOriginalX and FromOriginalY mix: one axis nudges from
	// the pre-jitter coordinate, the other from the post-jitter
	// one.
	FromOriginalX
	FromOriginalY
)

// JitterNudge jitters observations and then nudges them, combining the
// random spread of a jitter with the deliberate displacement of a
// nudge.
//
// The jitter is drawn from a private random source seeded with Seed,
// so a call never touches the process-global generator: two calls with
// the same Seed and data produce identical output, and unrelated
// random draws elsewhere are unaffected.
//
// The result replaces the "x" and "y" columns and, unless KeptOrigin
// is OriginNone, appends OrigX and OrigY columns holding either the
// pre-jitter (OriginOriginal) or post-jitter (OriginJittered)
// coordinates.
type JitterNudge struct {
	// Width and Height are the jitter half-ranges: each row is
	// jittered uniformly within +-Width and +-Height. Zero
	// disables jitter on that axis.
	Width, Height float64

	// X and Y are the nudge distances.
	X, Y float64

	// Direction modulates the per-row sign of the nudge.
	Direction JitterDirection

	// NudgeFrom selects the base coordinate the nudge is added to.
	NudgeFrom NudgeFrom

	// Seed seeds the private random source. If it is 0, a
	// time-derived seed is used, giving jitter that is random but
	// still isolated from the global generator.
	Seed int64

	// KeptOrigin selects which coordinates the OrigX/OrigY columns
	// record.
	KeptOrigin KeptOrigin
}

func (p JitterNudge) F(g table.Grouping) table.Grouping {
	checkKeptOrigin(p.KeptOrigin, true)
	if p.Width < 0 {
		panic(&ggerr.InvalidParameterError{Param: "Width", Value: p.Width, Detail: "must be >= 0"})
	}
	if p.Height < 0 {
		panic(&ggerr.InvalidParameterError{Param: "Height", Value: p.Height, Detail: "must be >= 0"})
	}
	if p.NudgeFrom < FromJittered || p.NudgeFrom > FromOriginalY {
		panic(&ggerr.InvalidParameterError{Param: "NudgeFrom", Value: p.NudgeFrom, Detail: "not a recognized nudge base"})
	}
	dir := p.Direction
	if dir < JitterAsIs || dir > JitterAlternateY {
		ggerr.Warnf("ggnudge: unrecognized jitter direction %d; applying nudge as-is", int(dir))
		dir = JitterAsIs
	}

	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	return table.MapTables(g, func(gid table.GroupID, t *table.Table) *table.Table {
		if t.Len() == 0 {
			return t
		}
		xs, ys := colFloats(t, colX), colFloats(t, colY)

		// Jittered positions.
		jx := make([]float64, len(xs))
		jy := make([]float64, len(ys))
		for i := range xs {
			var dx, dy float64
			if p.Width != 0 {
				dx = (rng.Float64()*2 - 1) * p.Width
			}
			if p.Height != 0 {
				dy = (rng.Float64()*2 - 1) * p.Height
			}
			jx[i] = xs[i] + dx
			jy[i] = ys[i] + dy
		}

		// Directed nudge from the chosen base.
		nx := make([]float64, len(xs))
		ny := make([]float64, len(ys))
		for i := range xs {
			sx, sy := 1.0, 1.0
			switch dir {
			case JitterSplit:
				sx = signOrCoin(jx[i]-xs[i], rng)
				sy = signOrCoin(jy[i]-ys[i], rng)
			case JitterSplitX:
				sx = signOrCoin(jx[i]-xs[i], rng)
			case JitterSplitY:
				sy = signOrCoin(jy[i]-ys[i], rng)
			case JitterAlternate, JitterAlternateX, JitterAlternateY:
				a := 1.0
				if i%2 == 1 {
					a = -1
				}
				if dir != JitterAlternateY {
					sx = a
				}
				if dir != JitterAlternateX {
					sy = a
				}
			}

			bx, by := jx[i], jy[i]
			switch p.NudgeFrom {
			case FromOriginal:
				bx, by = xs[i], ys[i]
			case FromOriginalX:
				bx = xs[i]
			case FromOriginalY:
				by = ys[i]
			}
			nx[i] = bx + sx*p.X
			ny[i] = by + sy*p.Y
		}

		nb := table.NewBuilder(t)
		if p.Width != 0 || p.X != 0 {
			nb.Add(colX, nx)
		}
		if p.Height != 0 || p.Y != 0 {
			nb.Add(colY, ny)
		}
		switch p.KeptOrigin {
		case OriginOriginal:
			nb.Add(OrigX, t.MustColumn(colX))
			nb.Add(OrigY, t.MustColumn(colY))
		case OriginJittered:
			nb.Add(OrigX, jx)
			nb.Add(OrigY, jy)
		}
		return nb.Done()
	})
}

// signOrCoin is the sign of the jitter j, with zero broken by a coin
// flip from rng.
func signOrCoin(j float64, rng *rand.Rand) float64 {
	if j > 0 {
		return 1
	}
	if j < 0 {
		return -1
	}
	if rng.Intn(2) == 0 {
		return 1
	}
	return -1
}
