// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ggerr provides the error values shared by the go-gg-extra
// stats and positions.
//
// Like the go-gg table package, the stats in this module report misuse
// by panicking; unlike it, they panic with the typed errors below so
// that a host driving many layers can recover the failure of one layer,
// label it, and keep going.
package ggerr

import (
	"fmt"
	"log"
)

// InvalidParameterError reports a configuration value that is out of
// range or otherwise unusable. It is raised by panicking before any
// data has been touched.
type InvalidParameterError struct {
	// Param is the name of the offending option field.
	Param string

	// Value is the rejected value.
	Value interface{}

	// Detail explains the constraint that was violated.
	Detail string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %v (%s)", e.Param, e.Value, e.Detail)
}

// DegenerateInputError reports input data that an estimator cannot
// handle, such as a zero-variance sample under a data-driven bandwidth
// rule. It is raised by panicking and is not recovered internally; the
// caller decides whether the layer can be skipped.
type DegenerateInputError struct {
	// Op names the operation that failed.
	Op string

	// Detail explains what was wrong with the input.
	Detail string
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("%s: degenerate input: %s", e.Op, e.Detail)
}

// Warnf is called to report recoverable misconfiguration, such as an
// out-of-range direction constant, before the operation falls back to
// its neutral behavior. A host may replace it to route warnings into
// its own diagnostics.
var Warnf = func(format string, v ...interface{}) {
	log.Printf(format, v...)
}
