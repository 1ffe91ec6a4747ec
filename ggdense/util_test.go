// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggdense

import (
	"fmt"
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

func tabEqual(t1, t2 *table.Table) bool {
	if !de(t1.Columns(), t2.Columns()) {
		return false
	}
	for _, col := range t1.Columns() {
		if !de(t1.Column(col), t2.Column(col)) {
			return false
		}
	}
	return true
}

// root unwraps a Grouping known to hold only the root group.
func root(g table.Grouping) *table.Table {
	return g.Table(table.RootGroupID)
}

// ids returns the "id" column of a result, identifying which input
// rows were retained.
func ids(g table.Grouping) []int {
	var out []int
	for _, gid := range g.Tables() {
		out = append(out, g.Table(gid).MustColumn("id").([]int)...)
	}
	return out
}

func idSet(g table.Grouping) map[int]bool {
	s := map[int]bool{}
	for _, id := range ids(g) {
		s[id] = true
	}
	return s
}
