// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggnudge

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"testing"

	"github.com/aclements/go-gg/table"
)

func de(x, y interface{}) bool {
	return reflect.DeepEqual(x, y)
}

func shouldPanic(t *testing.T, re string, f func()) {
	t.Helper()
	r := regexp.MustCompile(re)
	defer func() {
		err := recover()
		if err == nil {
			t.Fatalf("want panic matching %q; got no panic", re)
		} else if !r.MatchString(fmt.Sprintf("%s", err)) {
			t.Fatalf("panic %q does not match %q", err, re)
		}
	}()
	f()
}

// root unwraps a Grouping known to hold only the root group.
func root(g table.Grouping) *table.Table {
	return g.Table(table.RootGroupID)
}

func xy(xs, ys []float64) *table.Table {
	return new(table.Builder).Add("x", xs).Add("y", ys).Done()
}

func floats(t *testing.T, tab *table.Table, col string) []float64 {
	t.Helper()
	v, ok := tab.MustColumn(col).([]float64)
	if !ok {
		t.Fatalf("column %q is not []float64", col)
	}
	return v
}

func near(x, y float64) bool {
	return math.Abs(x-y) <= 1e-9
}

func nearSlice(t *testing.T, what string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %v; want %v", what, got, want)
	}
	for i := range got {
		if !near(got[i], want[i]) {
			t.Fatalf("%s: got %v; want %v", what, got, want)
		}
	}
}
