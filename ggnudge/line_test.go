// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggnudge

import (
	"math"
	"testing"
)

// nearLoose compares with the tolerance of a numerical fit rather than
// exact arithmetic.
func nearLoose(t *testing.T, what string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %v; want %v", what, got, want)
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-6 {
			t.Fatalf("%s: got %v; want %v", what, got, want)
		}
	}
}

func TestLinePerpendicular(t *testing.T) {
	// Points exactly on y = 2x+1. The least squares line recovers
	// it, so a unit nudge moves every row by the perpendicular unit
	// vector (-2, 1)/sqrt(5).
	xs := []float64{0, 1, 2, 3}
	ys := []float64{1, 3, 5, 7}
	res := root(NudgeLine{Y: 1}.F(xy(xs, ys)))

	dx := -2 / math.Sqrt(5)
	dy := 1 / math.Sqrt(5)
	nearLoose(t, "x", floats(t, res, "x"),
		[]float64{0 + dx, 1 + dx, 2 + dx, 3 + dx})
	nearLoose(t, "y", floats(t, res, "y"),
		[]float64{1 + dy, 3 + dy, 5 + dy, 7 + dy})
	if !de(res.MustColumn(OrigX), xs) || !de(res.MustColumn(OrigY), ys) {
		t.Errorf("origin columns should equal the pre-nudge coordinates exactly")
	}
}

func TestLineAutomaticSides(t *testing.T) {
	// The fit of this symmetric data is y = 0, so automatic
	// direction pushes each row away from zero by its residual
	// sign.
	xs := []float64{1, 2, 3, 4}
	ys := []float64{1, -1, -1, 1}
	res := root(NudgeLine{Y: 1, Direction: LineAutomatic}.F(xy(xs, ys)))

	nearLoose(t, "x", floats(t, res, "x"), xs)
	nearLoose(t, "y", floats(t, res, "y"), []float64{2, -2, -2, 2})
}

func TestLineLOESSFlat(t *testing.T) {
	// LOESS on a constant series fits the constant, so the nudge is
	// a pure vertical offset.
	xs := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	ys := make([]float64, len(xs))
	for i := range ys {
		ys[i] = 3
	}
	res := root(NudgeLine{Y: 2, Method: LineLOESS}.F(xy(xs, ys)))

	nearLoose(t, "x", floats(t, res, "x"), xs)
	want := make([]float64, len(xs))
	for i := range want {
		want[i] = 5
	}
	nearLoose(t, "y", floats(t, res, "y"), want)
}

func TestLineZeroMagnitude(t *testing.T) {
	xs := []float64{1, 2, 3}
	ys := []float64{4, 5, 6}
	res := root(NudgeLine{}.F(xy(xs, ys)))
	if !de(res.MustColumn("x"), xs) || !de(res.MustColumn("y"), ys) {
		t.Errorf("zero nudge should leave the table untouched")
	}
}

func TestLineDegenerate(t *testing.T) {
	shouldPanic(t, "degenerate input", func() {
		NudgeLine{Y: 1}.F(xy([]float64{2, 2, 2}, []float64{1, 2, 3}))
	})
	shouldPanic(t, "degenerate input", func() {
		NudgeLine{Y: 1}.F(xy([]float64{2}, []float64{1}))
	})
}
