// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "fmt"

// A Diagnostic is one error raised while processing a file. Stage records
// which pipeline stage raised it; it never appears in the plain-text
// message, which always takes the form required by the interface: "Error:
// <filename> at line <N>: <message>".
type Diagnostic struct {
	File    string
	Line    int
	Stage   string
	Message string
}

// Error makes Diagnostic satisfy the error interface, formatted exactly as
// the external diagnostic contract requires.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("Error: %s at line %d: %s", d.File, d.Line, d.Message)
}

// collector accumulates diagnostics for a single pipeline stage of a single
// file: errors are appended as encountered so that the whole stage can be
// scanned for problems before the pipeline decides whether to continue.
type collector struct {
	file  string
	stage string
	diags []Diagnostic
}

func newCollector(file, stage string) *collector {
	return &collector{file: file, stage: stage}
}

func (c *collector) addf(line int, format string, args ...interface{}) {
	c.diags = append(c.diags, Diagnostic{
		File:    c.file,
		Line:    line,
		Stage:   c.stage,
		Message: fmt.Sprintf(format, args...),
	})
}

func (c *collector) failed() bool {
	return len(c.diags) > 0
}
