// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggnudge

import (
	"math"

	"github.com/aclements/go-gg-extra/ggerr"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
)

// LineMethod selects the reference curve NudgeLine fits to each group.
type LineMethod int

const (
	// LinePolynomial fits a least squares polynomial (degree 1 by
	// default, so a straight line).
	LinePolynomial LineMethod = iota

	// LineLOESS fits a locally weighted regression.
	LineLOESS
)

// LineDirection selects which side of the reference curve a row is
// displaced toward.
type LineDirection int

const (
	// LineNone displaces every row to the side given by the sign
	// of the Y nudge (or of X when Y is zero).
	LineNone LineDirection = iota

	// LineAutomatic displaces each row to its own side of the
	// curve, by the sign of its residual.
	LineAutomatic
)

// NudgeLine displaces observations perpendicular to a reference curve
// fitted to them on the fly, instead of relative to a point. It is
// the curve-relative member of the center-nudge family: the center is
// replaced by the point of the curve nearest each row.
//
// The displacement magnitude is the Euclidean norm of (X, Y). The
// result replaces the "x" and "y" columns and, unless KeptOrigin is
// OriginNone, appends OrigX and OrigY columns with the pre-nudge
// coordinates.
type NudgeLine struct {
	// X and Y are the nudge distances. Only their combined norm
	// and the sign of Y (see LineNone) matter.
	X, Y float64

	// Method selects the curve fit.
	Method LineMethod

	// Degree is the degree of the fit. If it is 0, it is treated
	// as 1 for LinePolynomial and 2 for LineLOESS.
	Degree int

	// Span controls LOESS smoothness. If it is 0, it is treated
	// as 0.75.
	Span float64

	// Direction selects the side of the curve to displace toward.
	Direction LineDirection

	// KeptOrigin selects whether the pre-nudge coordinates are
	// retained. OriginJittered is not meaningful here.
	KeptOrigin KeptOrigin
}

func (p NudgeLine) F(g table.Grouping) table.Grouping {
	checkKeptOrigin(p.KeptOrigin, false)

	method := p.Method
	if method != LinePolynomial && method != LineLOESS {
		ggerr.Warnf("ggnudge: unrecognized line method %d; fitting a polynomial", int(method))
		method = LinePolynomial
	}
	degree := p.Degree
	if degree == 0 {
		degree = 1
		if method == LineLOESS {
			degree = 2
		}
	}
	span := p.Span
	if span == 0 {
		span = 0.75
	}

	mag := math.Hypot(p.X, p.Y)

	return table.MapTables(g, func(gid table.GroupID, t *table.Table) *table.Table {
		if t.Len() == 0 || mag == 0 {
			return t
		}
		xs, ys := colFloats(t, colX), colFloats(t, colY)

		xmin, xmax := stats.Bounds(xs)
		if len(xs) < degree+1 || xmin == xmax {
			panic(&ggerr.DegenerateInputError{
				Op:     "NudgeLine",
				Detail: "too few distinct x values to fit the reference curve",
			})
		}

		var fn func(float64) float64
		if method == LineLOESS {
			fn = fit.LOESS(xs, ys, degree, span)
		} else {
			fn = fit.PolynomialRegression(xs, ys, nil, degree).F
		}

		// Fixed side for direction none.
		side := sign(p.Y)
		if side == 0 {
			side = sign(p.X)
		}
		if side == 0 {
			side = 1
		}

		h := (xmax - xmin) * 1e-4
		nx := make([]float64, len(xs))
		ny := make([]float64, len(ys))
		for i := range xs {
			// Slope of the fit at this row, by central
			// difference; go-moremath fits only expose
			// evaluation.
			m := (fn(xs[i]+h) - fn(xs[i]-h)) / (2 * h)
			th := math.Atan(m)

			s := side
			if p.Direction == LineAutomatic {
				if r := ys[i] - fn(xs[i]); r < 0 {
					s = -1
				} else {
					s = 1
				}
			}

			nx[i] = xs[i] - math.Sin(th)*mag*s
			ny[i] = ys[i] + math.Cos(th)*mag*s
		}

		nb := table.NewBuilder(t).Add(colX, nx).Add(colY, ny)
		if p.KeptOrigin != OriginNone {
			nb.Add(OrigX, t.MustColumn(colX))
			nb.Add(OrigY, t.MustColumn(colY))
		}
		return nb.Done()
	})
}
