// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, dir, base, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, base+".as"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestAssembleFileProducesObjectFile(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "prog", "START: mov r3, r4\nstop\n")

	report := AssembleFile(dir, "prog", nil, nil)
	if !report.Success {
		t.Fatalf("AssembleFile failed: %v", report.Diagnostics)
	}
	for _, ext := range []string{".am", ".ob"} {
		if _, err := os.Stat(filepath.Join(dir, "prog"+ext)); err != nil {
			t.Errorf("expected %s to be written: %v", ext, err)
		}
	}
	// No .entry or .extern declarations, so neither output file should exist.
	for _, ext := range []string{".ent", ".ext"} {
		if _, err := os.Stat(filepath.Join(dir, "prog"+ext)); err == nil {
			t.Errorf("%s should not have been written", ext)
		}
	}
}

func TestAssembleFileSkipsLaterStagesOnParseError(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "bad", "L: rts\nL: rts\n")

	report := AssembleFile(dir, "bad", nil, nil)
	if report.Success {
		t.Fatal("AssembleFile succeeded on a file with a label redefinition")
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.ob")); err == nil {
		t.Error("bad.ob should not have been written after a parse failure")
	}
}

func TestAssembleFileMissingSourceIsReported(t *testing.T) {
	dir := t.TempDir()
	report := AssembleFile(dir, "missing", nil, nil)
	if report.Success {
		t.Fatal("AssembleFile succeeded with no source file present")
	}
	if len(report.Diagnostics) == 0 {
		t.Error("expected at least one diagnostic for a missing source file")
	}
}

func TestAssembleFileWritesEntriesAndExternals(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "prog", "L: rts\n.entry L\n.extern K\njmp K\n")

	report := AssembleFile(dir, "prog", nil, nil)
	if !report.Success {
		t.Fatalf("AssembleFile failed: %v", report.Diagnostics)
	}
	for _, ext := range []string{".ent", ".ext"} {
		if _, err := os.Stat(filepath.Join(dir, "prog"+ext)); err != nil {
			t.Errorf("expected %s to be written: %v", ext, err)
		}
	}
}

// TestAssembleFileHonorsCustomSettings checks that a non-default Settings
// (here, a base address other than 100) actually reaches address assignment
// and shows up in the emitted object file.
func TestAssembleFileHonorsCustomSettings(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "prog", "rts\n")

	settings := DefaultSettings()
	settings.BaseAddress = 200

	report := AssembleFile(dir, "prog", settings, nil)
	if !report.Success {
		t.Fatalf("AssembleFile failed: %v", report.Diagnostics)
	}
	ob, err := os.ReadFile(filepath.Join(dir, "prog.ob"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(ob), formatAddr(200)+"\t") {
		t.Errorf("prog.ob = %q, want it to start at address 200", ob)
	}
}

func TestAssembleFileVerboseLogsEachStage(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "prog", "rts\n")

	var log bytes.Buffer
	report := AssembleFile(dir, "prog", nil, &log)
	if !report.Success {
		t.Fatalf("AssembleFile failed: %v", report.Diagnostics)
	}
	for _, stage := range []string{"preprocess", "parse", "encode", "emit"} {
		if !strings.Contains(log.String(), stage) {
			t.Errorf("expected log to mention stage %q, got %q", stage, log.String())
		}
	}
}
