// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"testing"

	"masm10/machine"
)

func encodeOK(t *testing.T, src string) (*RowTable, *SymbolTable) {
	t.Helper()
	rows, symtab := parseOK(t, src)
	if diags := Encode("test.am", rows, symtab); diags != nil {
		t.Fatalf("Encode(%q) unexpectedly failed: %v", src, diags)
	}
	return rows, symtab
}

func TestEncodeScenario1(t *testing.T) {
	rows, _ := encodeOK(t, "START: mov r3, r4\n")
	if rows.At(0).Word != machine.Word(0b0000111100) {
		t.Errorf("header word = %010b, want 0000111100", rows.At(0).Word)
	}
	if rows.At(1).Word != machine.Word(0b0011010000) {
		t.Errorf("register-pair word = %010b, want 0011010000", rows.At(1).Word)
	}
}

// TestExternOperandWordLaw checks that an operand row referencing an EXT
// symbol always has ARE bits 01 and address bits all zero.
func TestExternOperandWordLaw(t *testing.T) {
	rows, _ := encodeOK(t, ".extern K\njmp K\n")
	word := rows.At(1).Word
	if word&0x3 != machine.Word(machine.External) {
		t.Errorf("ARE bits = %02b, want %02b", word&0x3, machine.External)
	}
	if word>>2 != 0 {
		t.Errorf("address bits = %d, want 0", word>>2)
	}
}

func TestEncodeDirectWordUsesRelocatableForLocalLabel(t *testing.T) {
	rows, _ := encodeOK(t, "L: rts\njmp L\n")
	word := rows.At(1).Word
	if word&0x3 != machine.Word(machine.Relocatable) {
		t.Errorf("ARE bits = %02b, want %02b", word&0x3, machine.Relocatable)
	}
}

func TestEncodeFailsOnUnresolvedLabel(t *testing.T) {
	rows, symtab := parseOK(t, "jmp NOWHERE\n")
	diags := Encode("test.am", rows, symtab)
	if diags == nil {
		t.Fatal("Encode succeeded on an unresolved label")
	}
}

func TestEncodeDataWordsMatchValues(t *testing.T) {
	rows, _ := encodeOK(t, ".data 5, -1, 0\n")
	if int16(rows.At(0).Word) != 5 {
		t.Errorf("data[0] = %d, want 5", rows.At(0).Word)
	}
}

// TestMatDirectiveEncodesFourDataWords checks that a 2x2 matrix with a
// partial value list zero-fills the remaining cells, and that every cell
// becomes its own data-word row.
func TestMatDirectiveEncodesFourDataWords(t *testing.T) {
	rows, _ := encodeOK(t, "M: .mat [2][2] 1,2,3\n")
	if rows.Len() != 4 {
		t.Fatalf("row count = %d, want 4", rows.Len())
	}
	want := []int16{1, 2, 3, 0}
	for i, w := range want {
		if got := int16(rows.At(i).Word); got != w {
			t.Errorf("mat[%d] = %d, want %d", i, got, w)
		}
	}
}
