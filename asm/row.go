// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "masm10/machine"

// OperandRole tags what an operand row is standing in for.
type OperandRole byte

const (
	RoleNone OperandRole = iota
	RoleSource
	RoleDest
	RoleData
)

// RowKind is the tagged-variant discriminator for a Row, per the design
// note on "polymorphism over row kinds": a closed set of eight shapes, each
// using a different subset of Row's fields. The encoder dispatches on Kind.
type RowKind byte

const (
	KindInstrHeader RowKind = iota
	KindImmediate
	KindDirect
	KindMatrixRegs
	KindSingleRegister
	KindRegisterPair
	KindData
	KindStringChar
)

// A Row is one entry in the row table: exactly one machine word of the
// final image. Row is a closed tagged union rather than an interface with
// one implementation per Kind — the encoder needs to switch on Kind to pack
// bits, not dispatch virtually, and the variant set is fixed by the ISA.
type Row struct {
	Line     int         // source line number, for diagnostics
	Label    string      // optional declared label (only ever set on a row's first word)
	Tag      machine.Op  // opcode or directive tag: one of the 16 instructions, TagSTR, TagDAT, TagMAT
	IsHeader bool        // true for the first word of an instruction
	Operand  string      // raw operand text, for rows still awaiting resolution
	Role     OperandRole // unused / source / destination / data

	Address int          // decimal address, assigned after parsing
	Word    machine.Word // machine word, assigned by the encoder

	Kind RowKind

	// KindInstrHeader
	Opcode           machine.Op
	SrcMode, DstMode machine.Mode
	Unary            bool // true when the opcode takes exactly one operand
	Nullary          bool // true when the opcode takes no operands

	// KindImmediate
	ImmValue int

	// KindDirect — Operand holds the referenced label name

	// KindMatrixRegs
	RowReg, ColReg int

	// KindSingleRegister
	Reg int

	// KindRegisterPair
	SrcReg, DstReg int

	// KindData, KindStringChar
	DataValue int
}

// RowTable is the ordered sequence of rows produced by the parser. Its size
// is capped at maxRows, and addresses are assigned starting at baseAddress —
// both supplied by the run's Settings rather than hardcoded.
type RowTable struct {
	rows        []Row
	maxRows     int
	baseAddress int
}

// NewRowTable returns an empty table capped at maxRows entries, whose first
// row will be assigned baseAddress.
func NewRowTable(maxRows, baseAddress int) *RowTable {
	return &RowTable{maxRows: maxRows, baseAddress: baseAddress}
}

// Len returns the number of rows currently in the table.
func (t *RowTable) Len() int {
	return len(t.rows)
}

// Full reports whether the table has reached its row cap.
func (t *RowTable) Full() bool {
	return len(t.rows) >= t.maxRows
}

// Append adds row to the end of the table and returns its index.
func (t *RowTable) Append(row Row) int {
	t.rows = append(t.rows, row)
	return len(t.rows) - 1
}

// At returns a pointer to the row at index i, for in-place mutation by the
// address-assignment step and the encoder.
func (t *RowTable) At(i int) *Row {
	return &t.rows[i]
}

// Rows returns the full row slice in table order.
func (t *RowTable) Rows() []Row {
	return t.rows
}

// AssignAddresses walks the table in order, giving each row the next
// address starting at the table's baseAddress.
func (t *RowTable) AssignAddresses() {
	addr := t.baseAddress
	for i := range t.rows {
		t.rows[i].Address = addr
		addr++
	}
}
