// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver implements the batch CLI loop described in §6: given a
// list of file base names, assemble each one independently and report the
// outcome, never sharing state across files and never aborting the batch
// because one file failed.
package driver

import (
	"fmt"
	"io"

	"masm10/asm"
)

// Run assembles every base name in bases, found in dir, writing progress and
// diagnostics to out. It returns true if every base name assembled
// successfully. settings supplies the row-table cap, base address, and
// line-length cap for every file (a nil settings uses asm.DefaultSettings());
// when log is non-nil, each stage of each file's assembly is traced to it
// (the CLI's -v flag).
//
// Each base name gets a fresh Preprocess/Parse/Encode/Emit run with no
// tables shared with any other base name (§5: "no state is shared across
// files"), and a failure on one base name never aborts the batch (§6: "the
// command-line invocation always returns normally after attempting every
// argument").
func Run(out io.Writer, dir string, bases []string, settings *asm.Settings, log io.Writer, quiet bool) bool {
	allOK := true
	for _, base := range bases {
		report := asm.AssembleFile(dir, base, settings, log)
		if !report.Success {
			allOK = false
			for _, d := range report.Diagnostics {
				fmt.Fprintln(out, d.Error())
			}
			continue
		}
		if !quiet {
			fmt.Fprintf(out, "%s: assembled successfully\n", base)
		}
	}
	return allOK
}
