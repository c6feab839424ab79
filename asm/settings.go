// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// Settings holds the tunable knobs of an assembler run: a plain struct of
// exported fields, each with a "doc" tag, indexed by a prefixtree so a CLI
// driver can set fields by name without a hand-written switch statement per
// field.
type Settings struct {
	Verbose     bool `doc:"trace each assembly stage to stderr"`
	Quiet       bool `doc:"suppress per-file success output"`
	MaxLineLen  int  `doc:"maximum source line length in characters"`
	MaxRows     int  `doc:"maximum row table size"`
	BaseAddress int  `doc:"decimal address assigned to the first row"`
}

// DefaultSettings returns the settings a fresh assembler run starts with.
func DefaultSettings() *Settings {
	return &Settings{
		Verbose:     false,
		Quiet:       false,
		MaxLineLen:  maxLineLength,
		MaxRows:     255,
		BaseAddress: 100,
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	t := reflect.TypeOf(Settings{})
	settingsFields = make([]settingsField, t.NumField())
	for i := 0; i < len(settingsFields); i++ {
		f := t.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

// Display writes every setting, its current value, and its doc string to w.
func (s *Settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		v := value.Field(i)
		var rendered string
		switch f.kind {
		case reflect.Bool:
			rendered = fmt.Sprintf("    %-16s %v", f.name, v.Bool())
		case reflect.Int:
			rendered = fmt.Sprintf("    %-16s %d", f.name, v.Int())
		default:
			rendered = fmt.Sprintf("    %-16s %v", f.name, v)
		}
		fmt.Fprintf(w, "%-28s (%s)\n", rendered, f.doc)
	}
}

// Set assigns value to the setting named key (case-insensitive).
func (s *Settings) Set(key string, value any) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return err
	}

	vIn := reflect.ValueOf(value)
	if !vIn.Type().ConvertibleTo(f.typ) {
		return errors.New("invalid type")
	}

	vOut := reflect.ValueOf(s).Elem().Field(f.index).Addr().Elem()
	vOut.Set(vIn.Convert(f.typ))
	return nil
}
