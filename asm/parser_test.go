// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strings"
	"testing"

	"masm10/machine"
)

func parseOK(t *testing.T, src string) (*RowTable, *SymbolTable) {
	t.Helper()
	rows, symtab, diags := Parse("test.am", strings.Split(strings.TrimRight(src, "\n"), "\n"), DefaultSettings())
	if diags != nil {
		t.Fatalf("Parse(%q) unexpectedly failed: %v", src, diags)
	}
	return rows, symtab
}

func parseFails(t *testing.T, src string) []Diagnostic {
	t.Helper()
	_, _, diags := Parse("test.am", strings.Split(strings.TrimRight(src, "\n"), "\n"), DefaultSettings())
	if diags == nil {
		t.Fatalf("Parse(%q) unexpectedly succeeded", src)
	}
	return diags
}

// TestScenario1 checks the worked example "START: mov r3, r4", which
// produces a header row at address 100 and a register-pair row at
// address 101.
func TestScenario1(t *testing.T) {
	rows, symtab := parseOK(t, "START: mov r3, r4\n")
	if rows.Len() != 2 {
		t.Fatalf("got %d rows, want 2", rows.Len())
	}
	header := rows.At(0)
	if header.Address != machine.BaseAddress || header.Kind != KindInstrHeader {
		t.Errorf("header row = %+v", header)
	}
	pair := rows.At(1)
	if pair.Address != machine.BaseAddress+1 || pair.Kind != KindRegisterPair {
		t.Errorf("register-pair row = %+v", pair)
	}
	if pair.SrcReg != 3 || pair.DstReg != 4 {
		t.Errorf("register-pair row regs = (%d, %d), want (3, 4)", pair.SrcReg, pair.DstReg)
	}
	sym, ok := symtab.Find("START")
	if !ok || sym.Kind != CODE || sym.Address != machine.BaseAddress {
		t.Errorf("symbol START = %+v, ok=%v", sym, ok)
	}
}

func TestScenario4ExternUseSite(t *testing.T) {
	rows, symtab := parseOK(t, ".extern K\njmp K\n")
	sym, ok := symtab.Find("K")
	if !ok || sym.Kind != EXT {
		t.Fatalf("symbol K = %+v, ok=%v", sym, ok)
	}
	if rows.Len() != 2 {
		t.Fatalf("got %d rows, want 2", rows.Len())
	}
	header := rows.At(0)
	if header.Opcode != machine.JMP || header.DstMode != machine.Direct || header.SrcMode != machine.Mode(0) {
		t.Errorf("header row = %+v", header)
	}
	operand := rows.At(1)
	if operand.Kind != KindDirect || operand.Operand != "K" {
		t.Errorf("operand row = %+v", operand)
	}
}

func TestScenario5LabelRedefinitionIsAnError(t *testing.T) {
	parseFails(t, "L: rts\nL: rts\n")
}

func TestScenario6RowTableOverflow(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 256; i++ {
		b.WriteString("1\n")
	}
	diags := parseFails(t, ".data "+strings.Join(strings.Split(strings.TrimRight(b.String(), "\n"), "\n"), ", "))
	found := false
	for _, d := range diags {
		if strings.Contains(d.Message, "overflow") {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics %v do not mention overflow", diags)
	}
}

func TestMatrixOperandEmitsTwoRows(t *testing.T) {
	rows, _ := parseOK(t, "M: .mat [2][2] 1, 2, 3, 4\nmov r1, M[r2][r3]\n")
	// 4 data rows + header + source register + direct + matrix-regs.
	if rows.Len() != 8 {
		t.Fatalf("got %d rows, want 8", rows.Len())
	}
	direct := rows.At(6)
	matRegs := rows.At(7)
	if direct.Kind != KindDirect || direct.Operand != "M" {
		t.Errorf("direct row = %+v", direct)
	}
	if matRegs.Kind != KindMatrixRegs || matRegs.RowReg != 2 || matRegs.ColReg != 3 {
		t.Errorf("matrix-regs row = %+v", matRegs)
	}
}

func TestDataDirectiveLabelsFirstRow(t *testing.T) {
	rows, symtab := parseOK(t, "D: .data 7, 8, 9\n")
	if rows.Len() != 3 {
		t.Fatalf("got %d rows, want 3", rows.Len())
	}
	sym, ok := symtab.Find("D")
	if !ok || sym.Kind != DATA || sym.RowIndex != 0 {
		t.Errorf("symbol D = %+v, ok=%v", sym, ok)
	}
}

func TestStringDirectiveAppendsNullTerminator(t *testing.T) {
	rows, _ := parseOK(t, `S: .string "hi"` + "\n")
	if rows.Len() != 3 {
		t.Fatalf("got %d rows, want 3 (2 chars + terminator)", rows.Len())
	}
	if rows.At(2).DataValue != 0 {
		t.Errorf("last row value = %d, want 0 (null terminator)", rows.At(2).DataValue)
	}
}

func TestStringDirectiveRejectsEmptyString(t *testing.T) {
	parseFails(t, `S: .string ""`+"\n")
}

func TestMatDirectiveRejectsTooManyValues(t *testing.T) {
	parseFails(t, "M: .mat [2][2] 1, 2, 3, 4, 5\n")
}

func TestAddressingModeValidityLaw(t *testing.T) {
	// MOV's destination does not allow Immediate mode.
	parseFails(t, "mov r1, #5\n")
}

func TestUnknownMnemonicIsAnError(t *testing.T) {
	parseFails(t, "bogus r1, r2\n")
}

func TestWrongOperandCountIsAnError(t *testing.T) {
	parseFails(t, "rts r1\n")
}

func TestCommentLinesAreIgnored(t *testing.T) {
	rows, _ := parseOK(t, "; a comment\nrts\n")
	if rows.Len() != 1 {
		t.Fatalf("got %d rows, want 1", rows.Len())
	}
}
