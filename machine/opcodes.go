// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package machine describes the 10-bit instruction set assembled by masm10:
// its 16 opcodes, its four addressing modes, its A/R/E linkage bits, and the
// bit layout of a machine word.
package machine

// Op identifies one of the 16 instruction mnemonics.
type Op byte

// The 16 instruction opcodes, numbered as in the reference implementation's
// CommandType enum.
const (
	MOV Op = iota
	CMP
	ADD
	SUB
	NOT
	CLR
	LEA
	INC
	DEC
	JMP
	BNE
	RED
	PRN
	JSR
	RTS
	STOP
)

// Data-directive tags share the same numbering space as Op, immediately
// following the 16 instruction opcodes, mirroring the reference
// implementation's DataType enum (STR=16, DAT=17, MAT=18) sitting alongside
// its CommandType enum.
const (
	TagSTR Op = 16 + iota
	TagDAT
	TagMAT
)

// String also covers the three data-directive tags.
var directiveNames = map[Op]string{
	TagSTR: ".string",
	TagDAT: ".data",
	TagMAT: ".mat",
}

var opNames = [...]string{
	MOV: "mov", CMP: "cmp", ADD: "add", SUB: "sub",
	NOT: "not", CLR: "clr", LEA: "lea", INC: "inc",
	DEC: "dec", JMP: "jmp", BNE: "bne", RED: "red",
	PRN: "prn", JSR: "jsr", RTS: "rts", STOP: "stop",
}

// String returns the lower-case mnemonic or directive name for op.
func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	if name, ok := directiveNames[op]; ok {
		return name
	}
	return "?"
}

// Mode identifies one of the four addressing modes an operand may use.
type Mode byte

const (
	Immediate Mode = iota // #n
	Direct                // label
	Matrix                // label[rX][rY]
	Register              // rN
)

// modeSet is a bitmask of allowed Modes, bit i set means Mode(i) is allowed.
type modeSet byte

func modes(ms ...Mode) modeSet {
	var s modeSet
	for _, m := range ms {
		s |= 1 << uint(m)
	}
	return s
}

func (s modeSet) allows(m Mode) bool {
	return s&(1<<uint(m)) != 0
}

var allModes = modes(Immediate, Direct, Matrix, Register)

// Info describes the operand arity and per-position addressing-mode
// compatibility of one opcode.
type Info struct {
	Operands int // 0, 1 or 2
	Source   modeSet
	Dest     modeSet
}

var opInfo = [...]Info{
	MOV:  {2, allModes, modes(Direct, Matrix, Register)},
	ADD:  {2, allModes, modes(Direct, Matrix, Register)},
	SUB:  {2, allModes, modes(Direct, Matrix, Register)},
	CMP:  {2, allModes, allModes},
	LEA:  {2, modes(Direct, Matrix), modes(Direct, Matrix, Register)},
	NOT:  {1, 0, modes(Direct, Matrix, Register)},
	CLR:  {1, 0, modes(Direct, Matrix, Register)},
	INC:  {1, 0, modes(Direct, Matrix, Register)},
	DEC:  {1, 0, modes(Direct, Matrix, Register)},
	JMP:  {1, 0, modes(Direct, Matrix, Register)},
	BNE:  {1, 0, modes(Direct, Matrix, Register)},
	RED:  {1, 0, modes(Direct, Matrix, Register)},
	JSR:  {1, 0, modes(Direct, Matrix, Register)},
	PRN:  {1, 0, allModes},
	RTS:  {0, 0, 0},
	STOP: {0, 0, 0},
}

// Lookup returns the Op whose mnemonic is name (case-insensitive) and
// reports whether it was found.
func Lookup(name string) (Op, bool) {
	name = lower(name)
	for op, n := range opNames {
		if n == name {
			return Op(op), true
		}
	}
	return 0, false
}

// OperandCount returns the number of operands op expects.
func (op Op) OperandCount() int {
	return opInfo[op].Operands
}

// SourceAllowed reports whether m is a legal source-operand addressing mode
// for op.
func (op Op) SourceAllowed(m Mode) bool {
	return opInfo[op].Source.allows(m)
}

// DestAllowed reports whether m is a legal destination-operand addressing
// mode for op.
func (op Op) DestAllowed(m Mode) bool {
	return opInfo[op].Dest.allows(m)
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
