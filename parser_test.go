// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package srl_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/srl"
	"github.com/creachadair/srl/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"N;", "NullValue"},
		{"b:1;", "BooleanValue <1> 2"},
		{"b:0;", "BooleanValue <0> 2"},
		{"i:42;", "IntegerValue <42> 2"},
		{"i:-7;", "IntegerValue <-7> 2"},
		{"d:42.5;", "DecimalValue <42.5> 2"},
		{"d:-0.5E-3;", "DecimalValue <-0.5E-3> 2"},
		{"R:2;", "ArrayReference <2> 2"},
		{"r:13;", "ObjectReference <13> 2"},

		{`s:6:"foobar";`, `
StringLength <6> 2
StringValue <foobar> 5`},
		{`s:0:"";`, `
StringLength <0> 2
StringValue <> 5`},
		{`s:5:"a;b}{";`, `
StringLength <5> 2
StringValue <a;b}{> 5`},

		{`a:0:{}`, `
ArrayItemsNum <0> 2
EndArray`},
		{`a:2:{i:0;s:1:"x";i:1;b:1;}`, `
ArrayItemsNum <2> 2
IntegerValue <0> 7
StringLength <1> 11
StringValue <x> 14
IntegerValue <1> 19
BooleanValue <1> 23
EndArray`},

		// Declared counts are not checked.
		{`a:5:{i:0;N;}`, `
ArrayItemsNum <5> 2
IntegerValue <0> 7
NullValue
EndArray`},

		{`a:1:{i:0;a:1:{s:1:"k";R:1;}}`, `
ArrayItemsNum <1> 2
IntegerValue <0> 7
ArrayItemsNum <1> 11
StringLength <1> 16
StringValue <k> 19
ArrayReference <1> 24
EndArray
EndArray`},

		{`O:4:"Test":1:{s:1:"a";N;}`, `
ObjectNameLength <4> 2
ObjectName <Test> 5
ObjectPropsNum <1> 11
StringLength <1> 16
StringValue <a> 19
NullValue
EndObject`},

		{`C:3:"Foo":5:{a}b;c}`, `
CustomObjectNameLength <3> 2
CustomObjectName <Foo> 5
CustomObjectPropsNum <5> 10
CustomObjectPayload <a}b;c> 13
EndCustomObject`},
		{`C:1:"X":0:{}`, `
CustomObjectNameLength <1> 2
CustomObjectName <X> 5
CustomObjectPropsNum <0> 8
CustomObjectPayload <> 11
EndCustomObject`},

		// Only a single value is parsed.
		{"N;i:1;", "NullValue"},
	}

	for _, test := range tests {
		rec := new(testutil.Recorder)
		if err := srl.New(rec, []byte(test.input)).Parse(); err != nil {
			t.Errorf("Parse %#q failed: %v", test.input, err)
		}
		want := "BeginParsing 0\n" + strings.TrimSpace(test.want) + "\nEndParsing true"
		if diff := diffStrings(want, rec.Output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
		estr  string
	}{
		// Truncated input.
		{"N", ``, `at offset 1: expected ";", got end of input`},
		{"i:42", `IntegerValue <42> 2`, `at offset 4: expected ";", got end of input`},
		{"i:", ``, `at offset 2: expected integer, got end of input`},
		{`s:6:"foo";`, `StringLength <6> 2`, `at offset 5: expected string, got end of input`},
		{`a:1:{i:0;`, `
ArrayItemsNum <1> 2
IntegerValue <0> 7`, `at offset 9: expected "}" or a value, got end of input`},
		{`C:1:"X":3:{ab`, `
CustomObjectNameLength <1> 2
CustomObjectName <X> 5
CustomObjectPropsNum <3> 8`, `at offset 11: expected string or "}", got end of input`},

		// Wrong tokens.
		{"X;", ``, `at offset 1: invalid value marker ";"`},
		{"}", ``, `at offset 0: invalid value marker "}"`},
		{"xyz", ``, `at offset 0: expected a value, got end of input`},
		{"N:", ``, `at offset 1: expected ";", got ":"`},
		{"b:2;", ``, `at offset 2: expected "0" or "1", got integer 2`},
		{"b:;", ``, `at offset 2: expected "0" or "1", got ";"`},
		{"b:1:", `BooleanValue <1> 2`, `at offset 3: expected ";", got ":"`},
		{"i:4.5;", ``, `at offset 2: expected integer, got decimal 4.5`},
		{"d:x;", ``, `at offset 3: expected decimal, got ";"`},
		{"d:1;", ``, `at offset 2: expected decimal, got integer 1`},
		{"d:1e3;", ``, `at offset 2: expected decimal, got integer 1e3`},
		{`s:1:"a"`, `
StringLength <1> 2
StringValue <a> 5`, `at offset 7: expected ";", got end of input`},
		{`a:1:i:0;`, `ArrayItemsNum <1> 2`, `at offset 4: expected "{", got "i"`},

		// An error inside a nested value ends the whole parse.
		{`a:1:{i:x;}`, `ArrayItemsNum <1> 2`, `at offset 8: expected integer, got ";"`},
		{`O:1:"X":1:{s:1:"k";a:1:{N}}`, `
ObjectNameLength <1> 2
ObjectName <X> 5
ObjectPropsNum <1> 8
StringLength <1> 13
StringValue <k> 16
ArrayItemsNum <1> 21`, `at offset 25: expected ";", got "}"`},
	}

	for _, test := range tests {
		rec := new(testutil.Recorder)
		err := srl.New(rec, []byte(test.input)).Parse()
		if err == nil {
			t.Errorf("Parse %#q did not report an error", test.input)
			continue
		}
		var serr *srl.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %#q: got error %T, want *SyntaxError", test.input, err)
		}

		want := "BeginParsing 0\n"
		if w := strings.TrimSpace(test.want); w != "" {
			want += w + "\n"
		}
		want += "SetError " + test.estr + "\nEndParsing false"
		if diff := diffStrings(want, rec.Output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
		if diff := diffStrings(test.estr, err.Error()); diff != "" {
			t.Errorf("Input: %#q\nError: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestParseErrorCause(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"i:42", srl.ErrTruncated},
		{"b:", srl.ErrTruncated},
		{`a:1:{i:0;`, srl.ErrTruncated},
		{`a:1:{i:0;a:0:{}}`, srl.ErrTooDeep},
		{"i:4.5;", nil},
		{"X;", nil},
	}
	for _, test := range tests {
		p := srl.New(srl.NopListener{}, []byte(test.input))
		p.SetMaxDepth(1)
		err := p.Parse()
		if err == nil {
			t.Errorf("Parse %#q did not report an error", test.input)
			continue
		}
		var serr *srl.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %#q: got error %T, want *SyntaxError", test.input, err)
		}
		if got := errors.Unwrap(err); got != test.want {
			t.Errorf("Parse %#q: got cause %v, want %v", test.input, got, test.want)
		}
	}
}

func TestParseNoListener(t *testing.T) {
	p := srl.New(nil, []byte("N;"))
	if err := p.Parse(); !errors.Is(err, srl.ErrNoListener) {
		t.Errorf("Parse: got %v, want %v", err, srl.ErrNoListener)
	}

	rec := new(testutil.Recorder)
	p.SetListener(rec)
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if diff := diffStrings("BeginParsing 0\nNullValue\nEndParsing true", rec.Output()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
}

func TestParseEmpty(t *testing.T) {
	rec := new(testutil.Recorder)
	if err := srl.New(rec, nil).Parse(); err != nil {
		t.Errorf("Parse: unexpected error: %v", err)
	}
	if got := rec.Output(); got != "" {
		t.Errorf("Parse: got events %q, want none", got)
	}
}

func TestParseOffset(t *testing.T) {
	rec := new(testutil.Recorder)
	p := srl.New(rec, []byte(`a:1:{i:0;s:1:"x";}`))
	p.SetOffset(100)
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	const want = `
BeginParsing 100
ArrayItemsNum <1> 102
IntegerValue <0> 107
StringLength <1> 111
StringValue <x> 114
EndArray
EndParsing true`
	if diff := diffStrings(want, rec.Output()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}

	rec.Reset()
	p.SetInput([]byte("i:4"))
	if err := p.Parse(); err == nil {
		t.Fatal("Parse did not report an error")
	} else if got, want := err.Error(), `at offset 103: expected ";", got end of input`; got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
}

func TestParseRepeat(t *testing.T) {
	const input = `O:3:"Foo":2:{s:1:"a";i:1;s:1:"b";C:3:"Bar":2:{;;}}`
	rec := new(testutil.Recorder)
	p := srl.New(rec, []byte(input))

	var outputs []string
	for range 3 {
		rec.Reset()
		err := p.Parse()
		outputs = append(outputs, rec.Output())
		t.Logf("Parse: err=%v", err)
	}
	for i, out := range outputs[1:] {
		if diff := diffStrings(outputs[0], out); diff != "" {
			t.Errorf("Parse %d: (-first, +got)\n%s", i+2, diff)
		}
	}
}

func TestMaxDepth(t *testing.T) {
	const input = `a:1:{i:0;a:1:{i:0;a:0:{}}}`

	t.Run("Default", func(t *testing.T) {
		if err := srl.New(srl.NopListener{}, []byte(input)).Parse(); err != nil {
			t.Errorf("Parse failed: %v", err)
		}
	})
	t.Run("Limited", func(t *testing.T) {
		rec := new(testutil.Recorder)
		p := srl.New(rec, []byte(input))
		p.SetMaxDepth(2)
		err := p.Parse()
		if err == nil {
			t.Fatal("Parse did not report an error")
		}
		const want = `
BeginParsing 0
ArrayItemsNum <1> 2
IntegerValue <0> 7
ArrayItemsNum <1> 11
IntegerValue <0> 16
ArrayItemsNum <0> 20
SetError at offset 22: nesting too deep (limit 2)
EndParsing false`
		if diff := diffStrings(want, rec.Output()); diff != "" {
			t.Errorf("Output: (-want, +got)\n%s", diff)
		}
	})
	t.Run("Deep", func(t *testing.T) {
		input := strings.Repeat("a:1:{i:0;", 2*srl.DefaultMaxDepth) + "N;" +
			strings.Repeat("}", 2*srl.DefaultMaxDepth)
		err := srl.New(srl.NopListener{}, []byte(input)).Parse()
		var serr *srl.SyntaxError
		if !errors.As(err, &serr) {
			t.Fatalf("Parse: got %v, want *SyntaxError", err)
		}
		if !strings.Contains(serr.Message, "nesting too deep") {
			t.Errorf("Parse: got %q, want nesting error", serr.Message)
		}
	})
}

// intCounter handles only the events it needs.
type intCounter struct {
	srl.NopListener
	sum int64
	ok  bool
}

func (c *intCounter) IntegerValue(text string, _ int) {
	v, err := srl.ParseInt(text)
	if err != nil {
		panic(err)
	}
	c.sum += v
}

func (c *intCounter) EndParsing(ok bool) { c.ok = ok }

func TestNopListener(t *testing.T) {
	var c intCounter
	if err := srl.New(&c, []byte(`a:3:{i:0;i:5;i:1;i:-2;i:2;O:1:"X":1:{s:1:"q";i:7;}}`)).Parse(); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !c.ok {
		t.Error("EndParsing did not report success")
	}
	if c.sum != 13 {
		t.Errorf("Sum of integers: got %d, want 13", c.sum)
	}
}

func TestDecode(t *testing.T) {
	if v, err := srl.ParseInt("-15"); err != nil || v != -15 {
		t.Errorf(`ParseInt("-15"): got %v, %v; want -15, nil`, v, err)
	}
	if v, err := srl.ParseDecimal("0.25"); err != nil || v != 0.25 {
		t.Errorf(`ParseDecimal("0.25"): got %v, %v; want 0.25, nil`, v, err)
	}
	for text, want := range map[string]bool{"0": false, "1": true} {
		if v, err := srl.ParseBool(text); err != nil || v != want {
			t.Errorf("ParseBool(%q): got %v, %v; want %v, nil", text, v, err, want)
		}
	}
	if _, err := srl.ParseBool("2"); err == nil {
		t.Error(`ParseBool("2"): got nil, want error`)
	}
}

func diffStrings(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}
