// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"

	"github.com/beevik/prefixtree/v2"
)

// SymbolKind classifies a Symbol.
type SymbolKind byte

const (
	UNKNOWN SymbolKind = iota
	CODE
	DATA
	EXT
)

// A Symbol is an entry in the symbol table: a label, an .entry declaration,
// or an .extern declaration.
type Symbol struct {
	Name     string
	RowIndex int // row at which the symbol was defined (CODE/DATA); 0 otherwise
	Kind     SymbolKind
	IsEntry  bool
	Address  int // resolved decimal address, filled in after address assignment
}

// SymbolTable holds every symbol declared in a file. It pairs an
// insertion-ordered slice — needed so entries/externals output is
// deterministic — with a prefixtree index for O(name) lookup, the same dual
// structure used for settings fields (ordered slice + prefixtree index) and
// macro definitions elsewhere in this package.
type SymbolTable struct {
	symbols []*Symbol
	index   *prefixtree.Tree[*Symbol]
}

// NewSymbolTable returns an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{index: prefixtree.New[*Symbol]()}
}

// Find returns the symbol named name, if any.
func (t *SymbolTable) Find(name string) (*Symbol, bool) {
	sym, err := t.index.FindValue(name)
	if err != nil || sym.Name != name {
		return nil, false
	}
	return sym, true
}

// Symbols returns every symbol in declaration order.
func (t *SymbolTable) Symbols() []*Symbol {
	return t.symbols
}

func (t *SymbolTable) insert(sym *Symbol) {
	t.symbols = append(t.symbols, sym)
	t.index.Add(sym.Name, sym)
}

// DefineLabel records a CODE or DATA label defined at rowIndex. It returns
// an error if the name is already defined (anything other than a bare
// pending .entry record is a redefinition).
func (t *SymbolTable) DefineLabel(name string, kind SymbolKind, rowIndex int) error {
	if existing, ok := t.Find(name); ok {
		if existing.Kind != UNKNOWN {
			return fmt.Errorf("label %q already defined", name)
		}
		// existing is a pending .entry declaration; augment it.
		existing.Kind = kind
		existing.RowIndex = rowIndex
		return nil
	}
	t.insert(&Symbol{Name: name, Kind: kind, RowIndex: rowIndex})
	return nil
}

// DeclareExtern records name as an external symbol. It is an error if name
// is already declared in any form.
func (t *SymbolTable) DeclareExtern(name string) error {
	if _, ok := t.Find(name); ok {
		return fmt.Errorf("symbol %q already declared", name)
	}
	t.insert(&Symbol{Name: name, Kind: EXT})
	return nil
}

// DeclareEntry marks name as exported. If name is already defined as
// CODE/DATA, the existing record is augmented. If name does not yet exist,
// a pending UNKNOWN record is inserted to be resolved by a later
// definition. It is an error if name is already an .entry or an .extern.
func (t *SymbolTable) DeclareEntry(name string) error {
	if existing, ok := t.Find(name); ok {
		if existing.IsEntry {
			return fmt.Errorf(".entry %q already declared", name)
		}
		if existing.Kind == EXT {
			return fmt.Errorf("%q is declared .extern and cannot also be .entry", name)
		}
		existing.IsEntry = true
		return nil
	}
	t.insert(&Symbol{Name: name, Kind: UNKNOWN, IsEntry: true})
	return nil
}

// ResolveAddresses assigns each CODE/DATA symbol its resolved address,
// base + defining row index. Called after RowTable.AssignAddresses.
func (t *SymbolTable) ResolveAddresses(rows *RowTable) {
	for _, sym := range t.symbols {
		if sym.Kind == CODE || sym.Kind == DATA {
			sym.Address = rows.At(sym.RowIndex).Address
		}
	}
}
