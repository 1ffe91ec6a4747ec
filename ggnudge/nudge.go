// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ggnudge provides position adjustments for go-gg that displace
// observations for display while retaining their original coordinates.
//
// Every adjustment replaces the "x" and "y" columns with displaced
// coordinates and, unless told otherwise, appends "orig x" and "orig y"
// columns holding the coordinates the observations were displaced from,
// so a later layer can draw a connector between the two. The Shrink
// stat trims those connectors for drawing.
//
// Like the stats in go-gg's ggstat package, each adjustment is a struct
// of options with an F method from table.Grouping to table.Grouping.
// Row order and all other columns are preserved.
package ggnudge

import (
	"reflect"

	"github.com/aclements/go-gg-extra/ggerr"
	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// Column names for the displaced coordinates and the retained
// originals.
const (
	colX = "x"
	colY = "y"

	// OrigX and OrigY are the names of the columns that record the
	// coordinates an observation was displaced from.
	OrigX = "orig x"
	OrigY = "orig y"
)

// KeptOrigin selects which coordinates the OrigX/OrigY columns record.
type KeptOrigin int

const (
	// OriginOriginal records the coordinates before any
	// displacement. This is the default.
	OriginOriginal KeptOrigin = iota

	// OriginJittered records the post-jitter, pre-nudge
	// coordinates. It is only meaningful for JitterNudge.
	OriginJittered

	// OriginNone omits the OrigX/OrigY columns entirely.
	OriginNone
)

func checkKeptOrigin(k KeptOrigin, allowJittered bool) {
	switch k {
	case OriginOriginal, OriginNone:
	case OriginJittered:
		if allowJittered {
			break
		}
		fallthrough
	default:
		panic(&ggerr.InvalidParameterError{Param: "KeptOrigin", Value: k, Detail: "not a recognized origin choice for this adjustment"})
	}
}

func colFloats(t *table.Table, col string) []float64 {
	var xs []float64
	slice.Convert(&xs, t.MustColumn(col))
	return xs
}

// numericCol reports whether col holds a numeric (continuous) value in
// g. Non-numeric coordinate columns arise from discrete scales.
func numericCol(g table.Grouping, col string) bool {
	ct := table.ColType(g, col)
	if ct == nil {
		return false
	}
	switch ct.Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func sign(x float64) float64 {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
