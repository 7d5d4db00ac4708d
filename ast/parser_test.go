// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"errors"
	"testing"

	"github.com/creachadair/mds/mtest"
	"github.com/creachadair/srl"
	"github.com/creachadair/srl/ast"
	"github.com/google/go-cmp/cmp"
)

// A serialized value of the form
//
//	['key1' => 'This is my first value', 'key3' => 20, 'key4' => true, 'key5' => null]
const testInput = `a:4:{s:4:"key1";s:22:"This is my first value";s:4:"key3";i:20;` +
	`s:4:"key4";b:1;s:4:"key5";N;}`

func TestParse(t *testing.T) {
	v, err := ast.Parse([]byte(testInput))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := ast.Array{
		ast.Field("key1", ast.String("This is my first value")),
		ast.Field("key3", ast.Int(20)),
		ast.Field("key4", ast.Bool(true)),
		ast.Field("key5", ast.Null{}),
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("Parse result (-want, +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []string{
		"N;",
		"b:0;",
		"i:-42;",
		"d:0.5;",
		"d:-3.0;",
		"d:1.0e+300;",
		`s:0:"";`,
		`s:5:"a;}{"";`,
		`s:2:"a\b";`,
		`s:5:"C:\dir";`,
		`s:2:"\\x";`,
		`s:2:"a\"";`,
		`O:2:"A\B":1:{s:2:"\"k";b:1;}`,
		"R:1;",
		"r:2;",
		testInput,
		`a:2:{i:0;a:1:{i:0;a:0:{}}i:1;r:1;}`,
		`O:8:"stdClass":2:{s:1:"a";i:1;s:1:"b";O:1:"Y":0:{}}`,
		`a:1:{s:1:"c";C:11:"ArrayObject":6:{x:i:0;}}`,
		`C:1:"Z":0:{}`,
		`C:1:"Z":3:{a\}b}`,
	}
	for _, input := range tests {
		v, err := ast.Parse([]byte(input))
		if err != nil {
			t.Errorf("Parse %#q failed: %v", input, err)
			continue
		}
		if got := v.SRL(); got != input {
			t.Errorf("Round trip:\n got: %#q\nwant: %#q", got, input)
		}
	}
}

func TestParseErrors(t *testing.T) {
	t.Run("Syntax", func(t *testing.T) {
		_, err := ast.Parse([]byte(`a:1:{i:0;`))
		var serr *srl.SyntaxError
		if !errors.As(err, &serr) {
			t.Fatalf("Parse: got %v, want *srl.SyntaxError", err)
		}
		if serr.Offset != 9 {
			t.Errorf("Error offset: got %d, want 9", serr.Offset)
		}
	})
	t.Run("Empty", func(t *testing.T) {
		if v, err := ast.Parse(nil); err == nil {
			t.Errorf("Parse: got %v, want error", v)
		}
	})
	t.Run("OddEntries", func(t *testing.T) {
		if v, err := ast.Parse([]byte(`a:1:{i:0;}`)); err == nil {
			t.Errorf("Parse: got %v, want error", v.SRL())
		}
	})
	t.Run("IntegerDecimal", func(t *testing.T) {
		if v, err := ast.Parse([]byte(`d:1;`)); err == nil {
			t.Errorf("Parse: got %v, want error", v.SRL())
		}
	})
	t.Run("BadInteger", func(t *testing.T) {
		if v, err := ast.Parse([]byte(`i:1e3;`)); err == nil {
			t.Errorf("Parse: got %v, want error", v.SRL())
		}
	})
	t.Run("MustParse", func(t *testing.T) {
		mtest.MustPanic(t, func() { ast.MustParse("X;") })
		if got := ast.MustParse("i:1;"); got != ast.Int(1) {
			t.Errorf("MustParse: got %v, want 1", got)
		}
	})
}

func TestParseWith(t *testing.T) {
	p := srl.New(nil, []byte(`a:1:{i:0;a:1:{i:0;N;}}`))
	p.SetMaxDepth(1)
	if v, err := ast.ParseWith(p); err == nil {
		t.Errorf("ParseWith: got %v, want error", v.SRL())
	}
	p.SetMaxDepth(2)
	v, err := ast.ParseWith(p)
	if err != nil {
		t.Fatalf("ParseWith failed: %v", err)
	}
	if got, want := v.JSON(), `[[null]]`; got != want {
		t.Errorf("ParseWith: got %s, want %s", got, want)
	}
}
