// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggdense

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// densGrid is a two-dimensional density estimate evaluated on a
// rectangular grid. xs and ys are the grid coordinates, ascending;
// z[i][j] is the density at (xs[i], ys[j]).
type densGrid struct {
	xs, ys []float64
	z      [][]float64
}

// kde2d evaluates a Gaussian product-kernel density estimate of the
// sample (x, y) on an n by n grid spanning [xmin, xmax] x [ymin, ymax].
// hx and hy are the per-dimension bandwidths on the normal-reference
// scale; the Gaussian standard deviations are hx/4 and hy/4.
func kde2d(x, y []float64, hx, hy float64, n int, xmin, xmax, ymin, ymax float64) *densGrid {
	gx := vec.Linspace(xmin, xmax, n)
	gy := vec.Linspace(ymin, ymax, n)
	hx, hy = hx/4, hy/4

	// Per-axis kernel weights: ax[i][k] is the x kernel of sample k
	// at grid point i, and likewise ay for y. The density at grid
	// cell (i, j) is then the sum over samples of ax[i][k]*ay[j][k].
	ax := kernel1d(gx, x, hx)
	ay := kernel1d(gy, y, hy)

	norm := 2 * math.Pi * hx * hy * float64(len(x))
	z := make([][]float64, n)
	for i := range z {
		row := make([]float64, n)
		for j := range row {
			var sum float64
			for k := range x {
				sum += ax[i][k] * ay[j][k]
			}
			row[j] = sum / norm
		}
		z[i] = row
	}
	return &densGrid{xs: gx, ys: gy, z: z}
}

func kernel1d(grid, sample []float64, h float64) [][]float64 {
	w := make([][]float64, len(grid))
	for i, g := range grid {
		row := make([]float64, len(sample))
		for k, s := range sample {
			d := (g - s) / h
			row[k] = math.Exp(-0.5 * d * d)
		}
		w[i] = row
	}
	return w
}

// at reads the density of the grid cell nearest to (x, y). There is no
// interpolation between cells; points outside the grid clamp to the
// edge cells.
func (d *densGrid) at(x, y float64) float64 {
	return d.z[nearest(d.xs, x)][nearest(d.ys, y)]
}

func nearest(grid []float64, v float64) int {
	if len(grid) < 2 || grid[len(grid)-1] == grid[0] {
		return 0
	}
	step := (grid[len(grid)-1] - grid[0]) / float64(len(grid)-1)
	i := int(math.Round((v - grid[0]) / step))
	if i < 0 {
		i = 0
	}
	if i > len(grid)-1 {
		i = len(grid) - 1
	}
	return i
}

// bandwidthNRD is the normal reference bandwidth rule used by the 2D
// estimate: 4 * 1.06 * min(sd, IQR/1.34) * n^(-1/5).
func bandwidthNRD(xs []float64) float64 {
	s := (&stats.Sample{Xs: xs}).Copy().Sort()
	iqr := s.Quantile(0.75) - s.Quantile(0.25)
	w := math.Min(s.StdDev(), iqr/1.34)
	return 4 * 1.06 * w * math.Pow(float64(len(xs)), -1.0/5)
}
