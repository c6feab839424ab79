// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package machine

import "testing"

func TestParseRegister(t *testing.T) {
	cases := []struct {
		tok  string
		want int
		ok   bool
	}{
		{"r0", 0, true},
		{"R7", 7, true},
		{"r8", 0, false},
		{"reg", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseRegister(c.tok)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("ParseRegister(%q) = (%d, %v), want (%d, %v)", c.tok, got, ok, c.want, c.ok)
		}
	}
}

func TestReservedWordsCoverage(t *testing.T) {
	words := ReservedWords()
	if len(words) != 16+5+2 {
		t.Fatalf("ReservedWords() returned %d entries, want %d", len(words), 16+5+2)
	}
	seen := make(map[string]bool)
	for _, w := range words {
		if seen[w] {
			t.Errorf("duplicate reserved word %q", w)
		}
		seen[w] = true
	}
	for _, want := range []string{"mov", "stop", ".data", ".entry", "mcro", "mcroend"} {
		if !seen[want] {
			t.Errorf("ReservedWords() missing %q", want)
		}
	}
}
