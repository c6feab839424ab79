// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strings"

	"masm10/machine"
)

// base4Digits is the custom alphabet used to render addresses and machine
// words: digit 0 maps to 'a', 1 to 'b', 2 to 'c', 3 to 'd'.
const base4Digits = "abcd"

// toBase4 renders v as exactly width base-4 digits, most significant first.
func toBase4(v, width int) string {
	b := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		b[i] = base4Digits[v&0x3]
		v >>= 2
	}
	return string(b)
}

// fromBase4 decodes a base-4 digit string back to an integer, the inverse of
// toBase4. It is used only by tests exercising the round-trip law (§8).
func fromBase4(s string) (int, bool) {
	v := 0
	for i := 0; i < len(s); i++ {
		d := strings.IndexByte(base4Digits, s[i])
		if d < 0 {
			return 0, false
		}
		v = v<<2 | d
	}
	return v, true
}

// addrDigits and wordDigits are the fixed rendering widths from §6.
const (
	addrDigits = 4
	wordDigits = 5
)

func formatAddr(addr int) string { return toBase4(addr, addrDigits) }
func formatWord(w machine.Word) string { return toBase4(int(w), wordDigits) }

// EmitObject renders the object file body: one "<addr4>\t<word5>\n" line per
// row, in row order.
func EmitObject(rows *RowTable) string {
	var b strings.Builder
	for _, row := range rows.rows {
		b.WriteString(formatAddr(row.Address))
		b.WriteByte('\t')
		b.WriteString(formatWord(row.Word))
		b.WriteByte('\n')
	}
	return b.String()
}

// EmitEntries renders the entries file body. A symbol contributes a line
// only when it is marked .entry and has a resolved CODE/DATA definition; an
// .entry with no matching definition silently produces no line (§3). It
// returns ok=false when no line was produced, so the caller can skip
// writing an empty file (§4.4).
func EmitEntries(symtab *SymbolTable) (body string, ok bool) {
	var b strings.Builder
	for _, sym := range symtab.Symbols() {
		if !sym.IsEntry || (sym.Kind != CODE && sym.Kind != DATA) {
			continue
		}
		b.WriteString(sym.Name)
		b.WriteByte('\t')
		b.WriteString(formatAddr(sym.Address))
		b.WriteByte('\n')
		ok = true
	}
	return b.String(), ok
}

// EmitExternals renders the externals file body: one line per use-site of an
// EXT symbol, in row order.
func EmitExternals(rows *RowTable, symtab *SymbolTable) (body string, ok bool) {
	var b strings.Builder
	for _, row := range rows.rows {
		if row.Kind != KindDirect {
			continue
		}
		sym, found := symtab.Find(row.Operand)
		if !found || sym.Kind != EXT {
			continue
		}
		b.WriteString(sym.Name)
		b.WriteByte('\t')
		b.WriteString(formatAddr(row.Address))
		b.WriteByte('\n')
		ok = true
	}
	return b.String(), ok
}
