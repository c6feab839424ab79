// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bufio"
	"io"
	"strings"

	"github.com/beevik/prefixtree/v2"
	"masm10/machine"
)

// maxLineLength is the longest a source line may be, excluding the newline.
const maxLineLength = 80

// macro is a single mcro/mcroend definition: a name and its captured body.
type macro struct {
	name string
	body []string
}

// macroTable holds every macro defined so far in a file. Like SymbolTable,
// it pairs an insertion-ordered slice with a prefixtree index, mirroring
// the settingsFields/settingsTree pairing in settings.go.
type macroTable struct {
	macros []*macro
	index  *prefixtree.Tree[*macro]
}

func newMacroTable() *macroTable {
	return &macroTable{index: prefixtree.New[*macro]()}
}

func (t *macroTable) find(name string) (*macro, bool) {
	m, err := t.index.FindValue(name)
	if err != nil || m.name != name {
		return nil, false
	}
	return m, true
}

func (t *macroTable) add(m *macro) {
	t.macros = append(t.macros, m)
	t.index.Add(m.name, m)
}

var reservedWords = buildReservedWords()

func buildReservedWords() *prefixtree.Tree[string] {
	tree := prefixtree.New[string]()
	for _, w := range machine.ReservedWords() {
		tree.Add(w, w)
	}
	return tree
}

func isReserved(name string) bool {
	if machine.IsRegisterName(name) {
		return true
	}
	lname := strings.ToLower(name)
	w, err := reservedWords.FindValue(lname)
	return err == nil && w == lname
}

// Preprocess expands every mcro/mcroend block in src and returns the
// expanded lines. Lines longer than maxLineLen are rejected. It also returns
// the diagnostics collected along the way; if any were reported, no lines
// are returned, so the caller has no .am output to write (§4.1: "if any
// error was reported, the output file is discarded").
func Preprocess(file string, src io.Reader, maxLineLen int) (output []string, diags []Diagnostic) {
	c := newCollector(file, "preprocess")
	table := newMacroTable()

	var out []string
	var current *macro // non-nil while capturing a macro body

	scanner := bufio.NewScanner(src)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		text = strings.TrimSuffix(text, "\r")

		if len(text) > maxLineLen {
			c.addf(line, "line exceeds %d characters", maxLineLen)
			continue
		}

		fields := strings.Fields(text)

		if current != nil {
			if len(fields) > 0 && fields[0] == machine.KeywordMcroEnd {
				rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), machine.KeywordMcroEnd))
				if rest != "" {
					c.addf(line, "text after '%s'", machine.KeywordMcroEnd)
				}
				table.add(current)
				current = nil
				continue
			}
			if len(fields) > 0 && fields[0] == machine.KeywordMcro {
				c.addf(line, "'%s' cannot appear inside a macro body", machine.KeywordMcro)
				continue
			}
			current.body = append(current.body, text)
			continue
		}

		if len(fields) > 0 && fields[0] == machine.KeywordMcro {
			rest := fields[1:]
			switch {
			case len(rest) == 0:
				c.addf(line, "'%s' requires a macro name", machine.KeywordMcro)
			case len(rest) > 1:
				c.addf(line, "unexpected text after macro name %q", rest[0])
			case isReserved(rest[0]):
				c.addf(line, "macro name %q is a reserved word", rest[0])
			default:
				if _, exists := table.find(rest[0]); exists {
					c.addf(line, "macro %q already defined", rest[0])
				} else {
					current = &macro{name: rest[0]}
				}
			}
			continue
		}

		if len(fields) > 0 && fields[0] == machine.KeywordMcroEnd {
			c.addf(line, "'%s' without a matching '%s'", machine.KeywordMcroEnd, machine.KeywordMcro)
			continue
		}

		if len(fields) > 0 {
			if m, ok := table.find(fields[0]); ok {
				rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), fields[0]))
				if rest != "" {
					c.addf(line, "unexpected text after macro invocation %q", fields[0])
					continue
				}
				out = append(out, m.body...)
				continue
			}
		}

		out = append(out, text)
	}

	if current != nil {
		c.addf(line, "'%s' %q has no matching '%s'", machine.KeywordMcro, current.name, machine.KeywordMcroEnd)
	}

	if c.failed() {
		return nil, c.diags
	}
	return out, nil
}
