// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strconv"
	"strings"

	"masm10/machine"
)

// maxLabelLength is the longest a label, macro, or symbol name may be.
const maxLabelLength = 30

// validName reports whether name is a syntactically legal label/symbol
// name: at most maxLabelLength characters, starting with a letter,
// remaining characters alphanumeric.
func validName(name string) bool {
	if name == "" || len(name) > maxLabelLength {
		return false
	}
	if !alpha(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !alnum(name[i]) {
			return false
		}
	}
	return true
}

// validLabelDecl reports whether name is legal for a newly declared
// label/macro name: syntactically valid and not a reserved word.
func validLabelDecl(name string) bool {
	return validName(name) && !isReserved(name)
}

// operand is the classified shape of one parsed operand.
type operand struct {
	mode machine.Mode

	immediate int    // mode == Immediate
	label     string // mode == Direct, or the matrix name when mode == Matrix
	reg       int    // mode == Register
	rowReg    int    // mode == Matrix
	colReg    int    // mode == Matrix
}

// classifyOperand classifies tok by syntactic shape, trying matrix,
// immediate, register, then direct, in that priority order (§4.2).
func classifyOperand(tok string) (operand, bool) {
	if op, ok := classifyMatrix(tok); ok {
		return op, true
	}
	if op, ok := classifyImmediate(tok); ok {
		return op, true
	}
	if reg, ok := machine.ParseRegister(tok); ok {
		return operand{mode: machine.Register, reg: reg}, true
	}
	if validName(tok) {
		return operand{mode: machine.Direct, label: tok}, true
	}
	return operand{}, false
}

// classifyImmediate recognizes "#n" where n is a decimal integer, optionally
// signed.
func classifyImmediate(tok string) (operand, bool) {
	if len(tok) < 2 || tok[0] != '#' {
		return operand{}, false
	}
	n, err := strconv.Atoi(tok[1:])
	if err != nil {
		return operand{}, false
	}
	return operand{mode: machine.Immediate, immediate: n}, true
}

// classifyMatrix recognizes "NAME[rX][rY]".
func classifyMatrix(tok string) (operand, bool) {
	open := strings.IndexByte(tok, '[')
	if open <= 0 {
		return operand{}, false
	}
	name := tok[:open]
	if !validName(name) {
		return operand{}, false
	}
	rest := tok[open:]
	row, col, ok := parseMatrixIndices(rest)
	if !ok {
		return operand{}, false
	}
	return operand{mode: machine.Matrix, label: name, rowReg: row, colReg: col}, true
}

// parseMatrixIndices parses "[rX][rY]" and returns the two register indices.
func parseMatrixIndices(s string) (row, col int, ok bool) {
	n := len(s)
	if n < 6 || s[0] != '[' || s[n-1] != ']' {
		return 0, 0, false
	}
	mid := strings.Index(s, "][")
	if mid < 0 {
		return 0, 0, false
	}
	first := s[1:mid]
	second := s[mid+2 : n-1]
	row, ok = machine.ParseRegister(first)
	if !ok {
		return 0, 0, false
	}
	col, ok = machine.ParseRegister(second)
	if !ok {
		return 0, 0, false
	}
	return row, col, true
}

// parseMatDims parses a ".mat" dimension prefix of the form "[R][C]",
// where R and C are positive decimal integers.
func parseMatDims(s string) (rows, cols int, ok bool) {
	n := len(s)
	if n < 5 || s[0] != '[' || s[n-1] != ']' {
		return 0, 0, false
	}
	mid := strings.Index(s, "][")
	if mid < 0 {
		return 0, 0, false
	}
	r, err1 := strconv.Atoi(s[1:mid])
	c, err2 := strconv.Atoi(s[mid+2 : n-1])
	if err1 != nil || err2 != nil || r <= 0 || c <= 0 {
		return 0, 0, false
	}
	return r, c, true
}

// splitFirstToken splits the leading whitespace-delimited token (a ".mat"
// dimension prefix such as "[2][2]") off the remainder of the operand text,
// trimming surrounding whitespace from both pieces.
func splitFirstToken(s string) (first, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i+1:], " \t")
}

// splitOperands splits a comma-separated operand list, trimming whitespace
// around each piece so that "r1,r2" and "r1 , r2" parse identically (§9).
// It reports an error string describing the first malformed separator it
// finds, if any.
func splitOperands(text string) (fields []string, errMsg string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ""
	}
	parts := strings.Split(text, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			if i == 0 || i == len(parts)-1 {
				return nil, "missing operand around ','"
			}
			return nil, "empty operand between commas"
		}
		if len(strings.Fields(p)) > 1 {
			return nil, "missing comma between operands"
		}
		fields = append(fields, p)
	}
	return fields, ""
}
