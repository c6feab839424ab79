// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strconv"
	"strings"

	"masm10/machine"
)

// parser builds a RowTable and SymbolTable from a pre-processed source file,
// one line at a time, collecting diagnostics as it goes (§4.2). It never
// resolves a label to an address during parsing — forward references are
// resolved strictly between passes by the encoder (§9).
type parser struct {
	c      *collector
	rows   *RowTable
	symtab *SymbolTable
}

// Parse runs pass 1 over the given lines (already macro-expanded), using
// settings for the row-table cap and base address. On success it returns a
// populated RowTable (with addresses assigned) and SymbolTable (with
// CODE/DATA addresses resolved). On failure it returns the diagnostics
// collected and nil tables; per §4.2, "if any error occurred, pass 2 is
// skipped".
func Parse(file string, lines []string, settings *Settings) (*RowTable, *SymbolTable, []Diagnostic) {
	p := &parser{
		c:      newCollector(file, "parse"),
		rows:   NewRowTable(settings.MaxRows, settings.BaseAddress),
		symtab: NewSymbolTable(),
	}
	for i, text := range lines {
		p.parseLine(i+1, text)
	}
	if p.c.failed() {
		return nil, nil, p.c.diags
	}
	p.rows.AssignAddresses()
	p.symtab.ResolveAddresses(p.rows)
	return p.rows, p.symtab, nil
}

func (p *parser) parseLine(lineNum int, text string) {
	l := newFstring(lineNum, text).consumeWhitespace()
	if l.isEmpty() || l.startsWithChar(';') {
		return
	}

	label, rest := p.splitLabel(l)
	if rest.isEmpty() {
		if label != "" {
			p.c.addf(lineNum, "expected a directive or instruction after label %q", label)
		}
		return
	}

	nameFS, remain := rest.consumeUntil(whitespace)
	name := nameFS.String()
	operandText := remain.consumeWhitespace().String()
	lname := strings.ToLower(name)

	if strings.HasPrefix(lname, ".") {
		p.parseDirective(lineNum, label, lname, operandText)
		return
	}

	op, ok := machine.Lookup(name)
	if !ok {
		p.c.addf(lineNum, "unknown mnemonic %q", name)
		return
	}
	p.parseInstruction(lineNum, label, op, operandText)
}

// labelEnd reports whether c ends a label token: whitespace or the ':' that
// terminates a label declaration.
func labelEnd(c byte) bool {
	return whitespace(c) || c == ':'
}

// splitLabel splits a leading "name:" off l, validating the name. It
// returns the remaining fstring whether or not a label was present.
func (p *parser) splitLabel(l fstring) (label string, rest fstring) {
	tok, remain := l.consumeUntil(labelEnd)
	if !remain.startsWithChar(':') {
		return "", l
	}
	name := tok.String()
	if !validLabelDecl(name) {
		p.c.addf(l.line, "invalid label name %q", name)
		return "", remain.consume(1).consumeWhitespace()
	}
	return name, remain.consume(1).consumeWhitespace()
}

func (p *parser) parseDirective(line int, label, lname, operandText string) {
	switch lname {
	case machine.DirEntry:
		p.parseEntry(line, operandText)
	case machine.DirExtern:
		p.parseExtern(line, operandText)
	case machine.DirData:
		p.parseData(line, label, operandText)
	case machine.DirString:
		p.parseString(line, label, operandText)
	case machine.DirMat:
		p.parseMat(line, label, operandText)
	default:
		p.c.addf(line, "unknown directive %q", lname)
	}
}

func (p *parser) parseEntry(line int, operandText string) {
	fields := strings.Fields(operandText)
	if len(fields) != 1 {
		p.c.addf(line, ".entry expects exactly one symbol name")
		return
	}
	name := fields[0]
	if !validName(name) {
		p.c.addf(line, "invalid symbol name %q", name)
		return
	}
	if err := p.symtab.DeclareEntry(name); err != nil {
		p.c.addf(line, "%v", err)
	}
}

func (p *parser) parseExtern(line int, operandText string) {
	fields := strings.Fields(operandText)
	if len(fields) != 1 {
		p.c.addf(line, ".extern expects exactly one symbol name")
		return
	}
	name := fields[0]
	if !validName(name) {
		p.c.addf(line, "invalid symbol name %q", name)
		return
	}
	if err := p.symtab.DeclareExtern(name); err != nil {
		p.c.addf(line, "%v", err)
	}
}

func (p *parser) parseData(line int, label, operandText string) {
	fields, errMsg := splitOperands(operandText)
	if errMsg != "" {
		p.c.addf(line, "%s", errMsg)
		return
	}
	if len(fields) == 0 {
		p.c.addf(line, "expected at least one value for .data")
		return
	}
	firstRow := -1
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			p.c.addf(line, "invalid .data value %q", f)
			continue
		}
		if p.rows.Full() {
			p.c.addf(line, "row table overflow")
			return
		}
		idx := p.rows.Append(Row{Line: line, Tag: machine.TagDAT, Kind: KindData, DataValue: n})
		if i == 0 {
			firstRow = idx
		}
	}
	p.attachDataLabel(line, label, firstRow)
}

func (p *parser) parseString(line int, label, operandText string) {
	text := strings.TrimSpace(operandText)
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		p.c.addf(line, "unclosed string literal")
		return
	}
	inner := text[1 : len(text)-1]
	if strings.IndexByte(inner, '"') >= 0 {
		p.c.addf(line, "malformed string literal")
		return
	}
	if inner == "" {
		p.c.addf(line, "empty string literal is not allowed")
		return
	}

	firstRow := -1
	for i := 0; i < len(inner); i++ {
		if p.rows.Full() {
			p.c.addf(line, "row table overflow")
			return
		}
		idx := p.rows.Append(Row{Line: line, Tag: machine.TagSTR, Kind: KindStringChar, DataValue: int(inner[i])})
		if i == 0 {
			firstRow = idx
		}
	}
	if p.rows.Full() {
		p.c.addf(line, "row table overflow")
		return
	}
	termIdx := p.rows.Append(Row{Line: line, Tag: machine.TagSTR, Kind: KindStringChar, DataValue: 0})
	if firstRow < 0 {
		firstRow = termIdx
	}
	p.attachDataLabel(line, label, firstRow)
}

func (p *parser) parseMat(line int, label, operandText string) {
	text := strings.TrimSpace(operandText)
	dimsTok, valuesTok := splitFirstToken(text)
	rows, cols, ok := parseMatDims(dimsTok)
	if !ok {
		p.c.addf(line, "malformed matrix dimensions %q", dimsTok)
		return
	}
	total := rows * cols

	var values []int
	if valuesTok != "" {
		fields, errMsg := splitOperands(valuesTok)
		if errMsg != "" {
			p.c.addf(line, "%s", errMsg)
			return
		}
		for _, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				p.c.addf(line, "invalid .mat value %q", f)
				continue
			}
			values = append(values, n)
		}
	}
	if len(values) > total {
		p.c.addf(line, "too many values for .mat: expected at most %d", total)
		return
	}

	firstRow := -1
	for i := 0; i < total; i++ {
		v := 0
		if i < len(values) {
			v = values[i]
		}
		if p.rows.Full() {
			p.c.addf(line, "row table overflow")
			return
		}
		idx := p.rows.Append(Row{Line: line, Tag: machine.TagMAT, Kind: KindData, DataValue: v})
		if i == 0 {
			firstRow = idx
		}
	}
	p.attachDataLabel(line, label, firstRow)
}

func (p *parser) attachDataLabel(line int, label string, firstRow int) {
	if label == "" || firstRow < 0 {
		return
	}
	if err := p.symtab.DefineLabel(label, DATA, firstRow); err != nil {
		p.c.addf(line, "%v", err)
	}
}

func (p *parser) parseInstruction(line int, label string, op machine.Op, operandText string) {
	expected := op.OperandCount()
	fields, errMsg := splitOperands(operandText)
	if errMsg != "" {
		p.c.addf(line, "%s", errMsg)
		return
	}
	if len(fields) != expected {
		p.c.addf(line, "%s expects %d operand(s), got %d", op, expected, len(fields))
		return
	}

	ops := make([]operand, len(fields))
	for i, f := range fields {
		o, ok := classifyOperand(f)
		if !ok {
			p.c.addf(line, "malformed operand %q", f)
			return
		}
		ops[i] = o
	}

	var src, dst operand
	hasSrc, hasDst := false, false
	switch expected {
	case 2:
		src, dst = ops[0], ops[1]
		hasSrc, hasDst = true, true
		if !op.SourceAllowed(src.mode) {
			p.c.addf(line, "addressing mode not allowed for source operand of %s", op)
			return
		}
		if !op.DestAllowed(dst.mode) {
			p.c.addf(line, "addressing mode not allowed for destination operand of %s", op)
			return
		}
	case 1:
		dst = ops[0]
		hasDst = true
		if !op.DestAllowed(dst.mode) {
			p.c.addf(line, "addressing mode not allowed for operand of %s", op)
			return
		}
	}

	if p.rows.Full() {
		p.c.addf(line, "row table overflow")
		return
	}

	srcMode, dstMode := machine.Mode(0), machine.Mode(0)
	if hasSrc {
		srcMode = src.mode
	}
	if hasDst {
		dstMode = dst.mode
	}

	headerIdx := p.rows.Append(Row{
		Line: line, Label: label, Tag: op, Kind: KindInstrHeader, IsHeader: true,
		Opcode: op, SrcMode: srcMode, DstMode: dstMode,
		Unary: expected == 1, Nullary: expected == 0,
	})
	if label != "" {
		if err := p.symtab.DefineLabel(label, CODE, headerIdx); err != nil {
			p.c.addf(line, "%v", err)
		}
	}

	if hasSrc && hasDst && src.mode == machine.Register && dst.mode == machine.Register {
		if p.rows.Full() {
			p.c.addf(line, "row table overflow")
			return
		}
		p.rows.Append(Row{Line: line, Tag: op, Kind: KindRegisterPair, SrcReg: src.reg, DstReg: dst.reg})
		return
	}

	if hasSrc {
		if !p.emitOperandRow(line, op, src, RoleSource) {
			return
		}
	}
	if hasDst {
		p.emitOperandRow(line, op, dst, RoleDest)
	}
}

// emitOperandRow appends the row(s) for a single classified operand. It
// returns false if the row table overflowed mid-emission.
func (p *parser) emitOperandRow(line int, op machine.Op, o operand, role OperandRole) bool {
	switch o.mode {
	case machine.Immediate:
		if p.rows.Full() {
			p.c.addf(line, "row table overflow")
			return false
		}
		p.rows.Append(Row{Line: line, Tag: op, Kind: KindImmediate, ImmValue: o.immediate, Role: role})

	case machine.Direct:
		if p.rows.Full() {
			p.c.addf(line, "row table overflow")
			return false
		}
		p.rows.Append(Row{Line: line, Tag: op, Kind: KindDirect, Operand: o.label, Role: role})

	case machine.Matrix:
		if p.rows.Full() {
			p.c.addf(line, "row table overflow")
			return false
		}
		p.rows.Append(Row{Line: line, Tag: op, Kind: KindDirect, Operand: o.label, Role: role})
		if p.rows.Full() {
			p.c.addf(line, "row table overflow")
			return false
		}
		p.rows.Append(Row{Line: line, Tag: op, Kind: KindMatrixRegs, RowReg: o.rowReg, ColReg: o.colReg, Role: role})

	case machine.Register:
		if p.rows.Full() {
			p.c.addf(line, "row table overflow")
			return false
		}
		p.rows.Append(Row{Line: line, Tag: op, Kind: KindSingleRegister, Reg: o.reg, Role: role})
	}
	return true
}
