// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "masm10/machine"

// Encode runs pass 2: it walks rows in order, resolving every label
// reference against symtab and packing each row into its final machine
// word. It is only ever called after Parse has succeeded, per §4.2 ("if any
// error occurred in pass 1, pass 2 is skipped").
func Encode(file string, rows *RowTable, symtab *SymbolTable) []Diagnostic {
	c := newCollector(file, "encode")
	for i := range rows.rows {
		encodeRow(c, rows.At(i), symtab)
	}
	if c.failed() {
		return c.diags
	}
	return nil
}

func encodeRow(c *collector, row *Row, symtab *SymbolTable) {
	switch row.Kind {
	case KindInstrHeader:
		switch {
		case row.Nullary:
			row.Word = machine.HeaderWordNullary(row.Opcode)
		case row.Unary:
			row.Word = machine.HeaderWordUnary(row.Opcode, row.DstMode)
		default:
			row.Word = machine.HeaderWord(row.Opcode, row.SrcMode, row.DstMode)
		}

	case KindImmediate:
		row.Word = machine.ImmediateWord(row.ImmValue)

	case KindDirect:
		addr, are, ok := resolveLabel(symtab, row.Operand)
		if !ok {
			c.addf(row.Line, "undefined symbol %q", row.Operand)
			return
		}
		row.Word = machine.DirectWord(addr, are)

	case KindMatrixRegs:
		row.Word = machine.RegisterPairWord(row.RowReg, row.ColReg)

	case KindSingleRegister:
		row.Word = machine.SingleRegisterWord(row.Reg, row.Role == RoleSource)

	case KindRegisterPair:
		row.Word = machine.RegisterPairWord(row.SrcReg, row.DstReg)

	case KindData, KindStringChar:
		row.Word = machine.DataWord(row.DataValue)
	}
}

// resolveLabel looks up name and reports the address/linkage pair to encode
// for a direct or matrix-name reference. External symbols always encode
// address 0 with ARE=External; CODE/DATA symbols encode their resolved
// address with ARE=Relocatable (§9).
func resolveLabel(symtab *SymbolTable, name string) (addr int, are machine.ARE, ok bool) {
	sym, found := symtab.Find(name)
	if !found || sym.Kind == UNKNOWN {
		return 0, 0, false
	}
	if sym.Kind == EXT {
		return 0, machine.External, true
	}
	return sym.Address, machine.Relocatable, true
}
