// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ggdense provides density-based observation filters for go-gg.
//
// The filters estimate a kernel density for each observation in a table
// and retain a quota of observations from the sparse (or dense) tail of
// the density distribution. They are meant for labeling and annotation
// layers, where only the observations that stand apart from the mass of
// the data should receive a label.
//
// Like the stats in go-gg's ggstat package, each filter is a struct of
// options with an F method from table.Grouping to table.Grouping. All
// columns of the input are preserved; rows are only dropped, never
// reordered.
package ggdense

import (
	"math"
	"sort"

	"github.com/aclements/go-gg-extra/ggerr"
	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// Dens1DFilter retains a quota of observations from the sparsest (or
// densest) regions of a one-dimensional kernel density estimate.
//
// X is the only required field. All other fields have reasonable
// default zero values.
//
// The result of Dens1DFilter has the same columns as the input, with
// only the retained rows, in their original order.
type Dens1DFilter struct {
	// X is the name of the column to estimate the density along.
	// If it is "", it defaults to "x". Set it to "y" to filter
	// along the other axis.
	X string

	// KeepFraction is the fraction of observations to retain. It
	// must be in [0, 1]. Note that the zero value retains nothing;
	// a typical value is 0.1.
	KeepFraction float64

	// KeepNumber caps the number of retained observations. When
	// KeepFraction of the rows would exceed KeepNumber, the
	// effective fraction becomes KeepNumber divided by the row
	// count. If KeepNumber is 0, there is no cap.
	KeepNumber int

	// KeepDense selects the tail to retain. If it is false (the
	// default), the observations with the lowest density are
	// retained; otherwise the observations with the highest.
	KeepDense bool

	// Invert complements the selection: the rows that would have
	// been retained are dropped and vice versa.
	Invert bool

	// Kernel is the kernel to use for the KDE.
	Kernel stats.KDEKernel

	// Bandwidth is the bandwidth to use for the KDE. If it is
	// zero, the bandwidth is computed from the data using
	// stats.BandwidthScott.
	Bandwidth float64

	// N is the number of points the density is evaluated at. The
	// density at an observation is linearly interpolated between
	// the two nearest evaluation points. If N is 0, it is treated
	// as 512.
	N int

	// [Min, Max] is the displayed range of the axis, as supplied
	// by the panel's scale. The density is evaluated over this
	// range rather than the data's own extent, which matters when
	// the axis is wider than the data. If both are 0, the data
	// bounds are used.
	Min, Max float64

	// PoolGroups indicates that one density estimate and one
	// selection threshold should be computed from all groups
	// combined, with the quota applied to the combined row count.
	// The default, false, filters each group independently.
	PoolGroups bool
}

func (f Dens1DFilter) F(g table.Grouping) table.Grouping {
	checkFraction("KeepFraction", f.KeepFraction)
	checkNumber("KeepNumber", f.KeepNumber)
	checkNumber("N", f.N)
	checkBandwidth("Bandwidth", f.Bandwidth)
	if f.X == "" {
		f.X = "x"
	}
	if f.N == 0 {
		f.N = 512
	}

	xs := map[table.GroupID][]float64{}
	for _, gid := range g.Tables() {
		var v []float64
		slice.Convert(&v, g.Table(gid).MustColumn(f.X))
		xs[gid] = v
	}

	keep := splitMasks(g, xs, nil, f.PoolGroups, func(v, _ []float64) []bool {
		return f.mask(v)
	})
	return table.MapTables(g, func(gid table.GroupID, t *table.Table) *table.Table {
		return filterRows(t, keep[gid])
	})
}

func (f Dens1DFilter) mask(xs []float64) []bool {
	eff := effectiveFraction(f.KeepFraction, f.KeepNumber, len(xs))
	if m, ok := trivialMask(eff, f.Invert, len(xs)); ok {
		return m
	}
	return selectByDensity(f.densities(xs), eff, f.KeepDense, f.Invert)
}

// densities evaluates the KDE of xs at each element of xs, by linear
// interpolation over an N-point evaluation grid spanning the axis
// range.
func (f Dens1DFilter) densities(xs []float64) []float64 {
	sample := stats.Sample{Xs: xs}
	bw := f.Bandwidth
	if bw == 0 {
		bw = stats.BandwidthScott(sample)
	}
	if bw <= 0 || math.IsNaN(bw) {
		panic(&ggerr.DegenerateInputError{
			Op:     "Dens1DFilter",
			Detail: "bandwidth rule produced a non-positive bandwidth; is the sample zero-variance?",
		})
	}

	kde := stats.KDE{Sample: sample, Kernel: f.Kernel, Bandwidth: bw}
	min, max := f.Min, f.Max
	if min == 0 && max == 0 {
		min, max = sample.Bounds()
	}
	grid := vec.Linspace(min, max, f.N)
	dens := vec.Map(kde.PDF, grid)

	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = interp(grid, dens, x)
	}
	return out
}

// Dens2DFilter retains a quota of observations from the sparsest (or
// densest) cells of a two-dimensional kernel density estimate.
//
// The estimate is a Gaussian product-kernel surface evaluated on an
// N by N grid spanning the panel's x and y ranges; each observation
// reads its density from the nearest grid cell. Quota and selection
// semantics are identical to Dens1DFilter.
type Dens2DFilter struct {
	// X and Y are the names of the coordinate columns. If they are
	// "", they default to "x" and "y".
	X, Y string

	// KeepFraction, KeepNumber, KeepDense, and Invert control the
	// selection quota exactly as in Dens1DFilter.
	KeepFraction float64
	KeepNumber   int
	KeepDense    bool
	Invert       bool

	// BandwidthX and BandwidthY are the per-dimension bandwidths.
	// A zero bandwidth is computed from the data by the normal
	// reference rule, 4 * 1.06 * min(sd, IQR/1.34) * n^(-1/5).
	BandwidthX, BandwidthY float64

	// N is the number of grid points per axis. If N is 0, it is
	// treated as 8*floor(sqrt(n)) for n observations, but no less
	// than 25.
	N int

	// [XMin, XMax] and [YMin, YMax] are the displayed axis ranges
	// from the panel's scales. A pair that is both 0 falls back to
	// the data bounds of that axis.
	XMin, XMax float64
	YMin, YMax float64

	// PoolGroups indicates that one density surface and one
	// threshold should be computed from all groups combined, as in
	// Dens1DFilter.
	PoolGroups bool
}

func (f Dens2DFilter) F(g table.Grouping) table.Grouping {
	checkFraction("KeepFraction", f.KeepFraction)
	checkNumber("KeepNumber", f.KeepNumber)
	checkNumber("N", f.N)
	checkBandwidth("BandwidthX", f.BandwidthX)
	checkBandwidth("BandwidthY", f.BandwidthY)
	if f.X == "" {
		f.X = "x"
	}
	if f.Y == "" {
		f.Y = "y"
	}

	xs := map[table.GroupID][]float64{}
	ys := map[table.GroupID][]float64{}
	for _, gid := range g.Tables() {
		t := g.Table(gid)
		var vx, vy []float64
		slice.Convert(&vx, t.MustColumn(f.X))
		slice.Convert(&vy, t.MustColumn(f.Y))
		xs[gid], ys[gid] = vx, vy
	}

	keep := splitMasks(g, xs, ys, f.PoolGroups, f.mask)
	return table.MapTables(g, func(gid table.GroupID, t *table.Table) *table.Table {
		return filterRows(t, keep[gid])
	})
}

func (f Dens2DFilter) mask(xs, ys []float64) []bool {
	eff := effectiveFraction(f.KeepFraction, f.KeepNumber, len(xs))
	if m, ok := trivialMask(eff, f.Invert, len(xs)); ok {
		return m
	}

	hx, hy := f.BandwidthX, f.BandwidthY
	if hx == 0 {
		hx = bandwidthNRD(xs)
	}
	if hy == 0 {
		hy = bandwidthNRD(ys)
	}
	if hx <= 0 || hy <= 0 || math.IsNaN(hx) || math.IsNaN(hy) {
		panic(&ggerr.DegenerateInputError{
			Op:     "Dens2DFilter",
			Detail: "bandwidth rule produced a non-positive bandwidth; is the sample zero-variance?",
		})
	}

	n := f.N
	if n == 0 {
		n = 8 * int(math.Floor(math.Sqrt(float64(len(xs)))))
		if n < 25 {
			n = 25
		}
	}

	xmin, xmax := f.XMin, f.XMax
	if xmin == 0 && xmax == 0 {
		xmin, xmax = stats.Bounds(xs)
	}
	ymin, ymax := f.YMin, f.YMax
	if ymin == 0 && ymax == 0 {
		ymin, ymax = stats.Bounds(ys)
	}

	grid := kde2d(xs, ys, hx, hy, n, xmin, xmax, ymin, ymax)
	dens := make([]float64, len(xs))
	for i := range xs {
		dens[i] = grid.at(xs[i], ys[i])
	}
	return selectByDensity(dens, eff, f.KeepDense, f.Invert)
}

// effectiveFraction returns the retention quota implied by fraction,
// capped by number when number is non-zero.
func effectiveFraction(fraction float64, number, n int) float64 {
	if n == 0 {
		return 1
	}
	if number > 0 && float64(n)*fraction > float64(number) {
		return float64(number) / float64(n)
	}
	return fraction
}

// trivialMask handles the quota extremes that require no density
// computation: a full quota retains every row and an empty quota
// retains none, subject to inversion.
func trivialMask(eff float64, invert bool, n int) ([]bool, bool) {
	if eff > 0 && eff < 1 {
		return nil, false
	}
	keep := make([]bool, n)
	for i := range keep {
		keep[i] = (eff >= 1) != invert
	}
	return keep, true
}

// selectByDensity classifies each observation against the quantile
// threshold of its density. The sparse branch keeps densities strictly
// below the eff-quantile; the dense branch keeps densities at or above
// the (1-eff)-quantile.
func selectByDensity(dens []float64, eff float64, keepDense, invert bool) []bool {
	s := (&stats.Sample{Xs: dens}).Copy().Sort()
	keep := make([]bool, len(dens))
	if keepDense {
		thr := s.Quantile(1 - eff)
		for i, d := range dens {
			keep[i] = d >= thr
		}
	} else {
		thr := s.Quantile(eff)
		for i, d := range dens {
			keep[i] = d < thr
		}
	}
	if invert {
		for i := range keep {
			keep[i] = !keep[i]
		}
	}
	return keep
}

// splitMasks computes per-group keep masks, either independently per
// group or from the concatenation of all groups. ys is nil for
// one-dimensional masks.
func splitMasks(g table.Grouping, xs, ys map[table.GroupID][]float64, pool bool, mask func(xs, ys []float64) []bool) map[table.GroupID][]bool {
	keep := map[table.GroupID][]bool{}
	if !pool {
		for _, gid := range g.Tables() {
			keep[gid] = mask(xs[gid], ys[gid])
		}
		return keep
	}

	var ax, ay []float64
	for _, gid := range g.Tables() {
		ax = append(ax, xs[gid]...)
		if ys != nil {
			ay = append(ay, ys[gid]...)
		}
	}
	m := mask(ax, ay)
	off := 0
	for _, gid := range g.Tables() {
		keep[gid] = m[off : off+len(xs[gid])]
		off += len(xs[gid])
	}
	return keep
}

// filterRows materializes the rows of t selected by keep, preserving
// column order, column constness, and row order.
func filterRows(t *table.Table, keep []bool) *table.Table {
	idxs := make([]int, 0, len(keep))
	for i, k := range keep {
		if k {
			idxs = append(idxs, i)
		}
	}
	var nt table.Builder
	for _, col := range t.Columns() {
		if cv, ok := t.Const(col); ok {
			nt.AddConst(col, cv)
			continue
		}
		nt.Add(col, slice.Select(t.Column(col), idxs))
	}
	return nt.Done()
}

// interp evaluates the piecewise-linear function through (xs[i], ys[i])
// at x, clamping to the end values outside the grid. xs must be
// ascending.
func interp(xs, ys []float64, x float64) float64 {
	i := sort.SearchFloat64s(xs, x)
	if i == 0 {
		return ys[0]
	}
	if i == len(xs) {
		return ys[len(ys)-1]
	}
	x0, x1 := xs[i-1], xs[i]
	if x0 == x1 {
		return ys[i]
	}
	return ys[i-1] + (ys[i]-ys[i-1])*(x-x0)/(x1-x0)
}

func checkFraction(name string, v float64) {
	if math.IsNaN(v) || v < 0 || v > 1 {
		panic(&ggerr.InvalidParameterError{Param: name, Value: v, Detail: "must be in [0, 1]"})
	}
}

func checkNumber(name string, v int) {
	if v < 0 {
		panic(&ggerr.InvalidParameterError{Param: name, Value: v, Detail: "must be >= 0"})
	}
}

func checkBandwidth(name string, v float64) {
	if v < 0 || math.IsNaN(v) {
		panic(&ggerr.InvalidParameterError{Param: name, Value: v, Detail: "must be >= 0 (0 selects the bandwidth rule)"})
	}
}
