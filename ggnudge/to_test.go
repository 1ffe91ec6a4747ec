// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggnudge

import (
	"sort"
	"testing"
)

func TestNudgeToConstant(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	ys := []float64{7, 5, 6, 8}
	res := root(NudgeTo{Y: []float64{3}}.F(xy(xs, ys)))

	nearSlice(t, "y", floats(t, res, "y"), []float64{3, 3, 3, 3})
	if !de(res.MustColumn("x"), xs) {
		t.Errorf("x should be untouched; got %v", res.MustColumn("x"))
	}
	if !de(res.MustColumn(OrigY), ys) {
		t.Errorf("orig y should equal the input y")
	}
}

func TestNudgeToPositional(t *testing.T) {
	// A target vector as long as the table applies positionally,
	// with no rank reordering.
	ys := []float64{9, 1, 4}
	res := root(NudgeTo{Y: []float64{5, 6, 7}}.F(xy(
		[]float64{0, 0, 0}, ys)))
	nearSlice(t, "y", floats(t, res, "y"), []float64{5, 6, 7})
}

func TestNudgeToRecycleRank(t *testing.T) {
	// Short targets recycle and then go to rows by coordinate
	// rank: the smallest targets to the rows with the smallest
	// values.
	ys := []float64{4, 3, 2, 1}
	res := root(NudgeTo{Y: []float64{10, 20}}.F(xy(
		[]float64{0, 0, 0, 0}, ys)))
	nearSlice(t, "y", floats(t, res, "y"), []float64{20, 20, 10, 10})
}

func TestSpread(t *testing.T) {
	xs := []float64{3, 1, 4, 1.5, 9, 2.6}
	res := root(NudgeTo{Y: []float64{3}, XAction: ActionSpread}.F(xy(
		xs, []float64{0, 0, 0, 0, 0, 0})))
	got := floats(t, res, "x")

	// Six equally spaced values spanning [1, 9] in the rank order
	// of the original xs.
	nearSlice(t, "x", got, []float64{5.8, 1, 7.4, 2.6, 9, 4.2})

	// Monotone in the same rank order as the input.
	order := make([]int, len(xs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return xs[order[a]] < xs[order[b]] })
	for i := 1; i < len(order); i++ {
		if got[order[i-1]] >= got[order[i]] {
			t.Fatalf("spread not strictly monotone in rank order: %v", got)
		}
	}
}

func TestSpreadExplicitRange(t *testing.T) {
	// Two or more targets define the spread range explicitly.
	res := root(NudgeTo{
		X:       []float64{10, 20},
		XAction: ActionSpread,
	}.F(xy([]float64{1, 2, 3}, []float64{0, 0, 0})))
	nearSlice(t, "x", floats(t, res, "x"), []float64{10, 15, 20})
}

func TestSpreadExpansion(t *testing.T) {
	// A 0.5 expansion widens the [0, 2] range by a quarter span at
	// each end.
	res := root(NudgeTo{
		XAction:    ActionSpread,
		XExpansion: 0.5,
	}.F(xy([]float64{0, 1, 2}, []float64{0, 0, 0})))
	nearSlice(t, "x", floats(t, res, "x"), []float64{-0.5, 1, 2.5})
}

func TestSpreadDistance(t *testing.T) {
	// An explicit distance steps from the low end of the range.
	res := root(NudgeTo{
		XAction:   ActionSpread,
		XDistance: 3,
	}.F(xy([]float64{5, 7, 6}, []float64{0, 0, 0})))
	nearSlice(t, "x", floats(t, res, "x"), []float64{5, 11, 8})
}

func TestNudgeToKeptOriginNone(t *testing.T) {
	res := root(NudgeTo{Y: []float64{3}, KeptOrigin: OriginNone}.F(xy(
		[]float64{1}, []float64{2})))
	for _, col := range res.Columns() {
		if col == OrigX || col == OrigY {
			t.Errorf("origin column %q should be omitted", col)
		}
	}
}

func TestNudgeToRowOrder(t *testing.T) {
	// Internal reordering must not leak into the output row order.
	xs := []float64{3, 1, 2}
	tab := xy(xs, []float64{0, 0, 0})
	res := root(NudgeTo{X: []float64{100, 200}, XAction: ActionNone}.F(tab))
	if !de(res.MustColumn(OrigX), xs) {
		t.Errorf("row order changed: orig x = %v", res.MustColumn(OrigX))
	}
}
