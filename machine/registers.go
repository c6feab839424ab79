// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package machine

// ParseRegister parses a register token of the form "rN", N in 0..7, and
// reports whether it was a well-formed register name.
func ParseRegister(tok string) (int, bool) {
	if len(tok) != 2 || (tok[0] != 'r' && tok[0] != 'R') {
		return 0, false
	}
	n := tok[1]
	if n < '0' || n > '7' {
		return 0, false
	}
	return int(n - '0'), true
}

// IsRegisterName reports whether tok names a register, case-insensitively.
func IsRegisterName(tok string) bool {
	_, ok := ParseRegister(tok)
	return ok
}

// Directives reserved by the directive grammar.
const (
	DirData   = ".data"
	DirString = ".string"
	DirMat    = ".mat"
	DirEntry  = ".entry"
	DirExtern = ".extern"
)

// Macro keywords reserved by the pre-processor grammar (§4.1).
const (
	KeywordMcro    = "mcro"
	KeywordMcroEnd = "mcroend"
)

// ReservedWords lists every reserved mnemonic, directive and macro keyword
// (lower-case). A label or macro name may not equal any of these.
func ReservedWords() []string {
	words := make([]string, 0, 16+5+2)
	for op := MOV; op <= STOP; op++ {
		words = append(words, op.String())
	}
	words = append(words,
		DirData, DirString, DirMat, DirEntry, DirExtern,
		KeywordMcro, KeywordMcroEnd,
	)
	return words
}
