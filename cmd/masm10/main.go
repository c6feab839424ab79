// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command masm10 assembles one or more base-name source files (§6):
//
//	masm10 [-v] [-q] [-rows N] [-base N] base1 [base2 ...]
//
// For each base name, base.as is read and base.am, base.ob, base.ent, and
// base.ext are written on success (base.ent and base.ext only when they
// would not be empty). Exit code is 0 once every argument has
// been attempted, regardless of how many files failed; per-file failures
// are reported as diagnostics on standard output.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/beevik/term"

	"masm10/asm"
	"masm10/driver"
)

func main() {
	defaults := asm.DefaultSettings()
	verbose := flag.Bool("v", defaults.Verbose, "trace each assembly stage to stderr")
	quiet := flag.Bool("q", defaults.Quiet, "suppress the per-file OK/FAILED summary line")
	rows := flag.Int("rows", defaults.MaxRows, "maximum row table size")
	base := flag.Int("base", defaults.BaseAddress, "decimal address assigned to the first row")
	flag.Usage = usage
	flag.Parse()

	bases := flag.Args()
	if len(bases) == 0 {
		usage()
		os.Exit(1)
	}

	settings := asm.DefaultSettings()
	for key, value := range map[string]any{
		"verbose":     *verbose,
		"quiet":       *quiet,
		"maxrows":     *rows,
		"baseaddress": *base,
	} {
		if err := settings.Set(key, value); err != nil {
			fmt.Fprintf(os.Stderr, "internal error setting %s: %v\n", key, err)
			os.Exit(1)
		}
	}

	var log io.Writer
	if settings.Verbose {
		log = os.Stderr
	}

	ok := driver.Run(os.Stdout, ".", bases, settings, log, settings.Quiet)

	printSummary(ok)

	os.Exit(0)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-v] [-q] [-rows N] [-base N] base1 [base2 ...]\n", os.Args[0])
	flag.PrintDefaults()
}

// printSummary writes a one-line pass/fail footer. The footer is plain text
// when standard output isn't a terminal, since color escapes would just
// pollute a redirected log.
func printSummary(ok bool) {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	switch {
	case ok && isTTY:
		fmt.Println("\033[32mall files assembled successfully\033[0m")
	case ok:
		fmt.Println("all files assembled successfully")
	case isTTY:
		fmt.Println("\033[31mone or more files failed to assemble\033[0m")
	default:
		fmt.Println("one or more files failed to assemble")
	}
}
