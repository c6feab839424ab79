// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Report is the outcome of assembling a single base name: whether it
// succeeded, and every diagnostic collected along the way, in stage order.
type Report struct {
	Base        string
	Success     bool
	Diagnostics []Diagnostic
}

// AssembleFile runs the full four-stage pipeline — pre-processor, parser,
// encoder, emitter — against dir/base.as: a fixed list of steps executed in
// order, with the whole run aborted at the first stage that reports any
// diagnostic ("if any error was reported in a stage, subsequent stages ...
// are skipped and no output files ... are kept"). settings supplies the
// line-length cap, row-table cap, and base address for the run; a nil
// settings falls back to DefaultSettings(). When log is non-nil, one line
// is written to it as each stage begins.
func AssembleFile(dir, base string, settings *Settings, log io.Writer) *Report {
	if settings == nil {
		settings = DefaultSettings()
	}
	report := &Report{Base: base}
	logSection(log, base, "preprocess")

	asPath := filepath.Join(dir, base+".as")
	f, err := os.Open(asPath)
	if err != nil {
		report.Diagnostics = []Diagnostic{{File: base + ".as", Line: 0, Stage: "open", Message: err.Error()}}
		return report
	}
	defer f.Close()

	lines, diags := Preprocess(base+".as", f, settings.MaxLineLen)
	if diags != nil {
		report.Diagnostics = diags
		return report
	}

	amPath := filepath.Join(dir, base+".am")
	if err := writeFile(amPath, strings.Join(lines, "\n")+"\n"); err != nil {
		report.Diagnostics = []Diagnostic{{File: base + ".am", Line: 0, Stage: "write", Message: err.Error()}}
		return report
	}

	amName := base + ".am"
	logSection(log, base, "parse")
	rows, symtab, diags := Parse(amName, lines, settings)
	if diags != nil {
		os.Remove(amPath)
		report.Diagnostics = diags
		return report
	}

	logSection(log, base, "encode")
	if diags := Encode(amName, rows, symtab); diags != nil {
		os.Remove(amPath)
		report.Diagnostics = diags
		return report
	}

	logSection(log, base, "emit")
	obPath := filepath.Join(dir, base+".ob")
	if err := writeFile(obPath, EmitObject(rows)); err != nil {
		report.Diagnostics = []Diagnostic{{File: base + ".ob", Line: 0, Stage: "write", Message: err.Error()}}
		return report
	}

	entPath := filepath.Join(dir, base+".ent")
	if body, ok := EmitEntries(symtab); ok {
		if err := writeFile(entPath, body); err != nil {
			report.Diagnostics = []Diagnostic{{File: base + ".ent", Line: 0, Stage: "write", Message: err.Error()}}
			return report
		}
	}

	extPath := filepath.Join(dir, base+".ext")
	if body, ok := EmitExternals(rows, symtab); ok {
		if err := writeFile(extPath, body); err != nil {
			report.Diagnostics = []Diagnostic{{File: base + ".ext", Line: 0, Stage: "write", Message: err.Error()}}
			return report
		}
	}

	report.Success = true
	return report
}

// logSection writes a verbose progress line for one pipeline stage. A nil
// writer disables logging entirely.
func logSection(w io.Writer, base, stage string) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, "%s: %s\n", base, stage)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
