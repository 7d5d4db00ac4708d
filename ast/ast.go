// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an abstract syntax tree for SRL values, and a parser
// that constructs syntax trees from SRL source.
//
// The tree records what the source says, without interpretation: declared
// counts are not checked, references are not resolved, and custom object
// payloads are kept as opaque text.
package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/srl/internal/escape"
	"go4.org/mem"
)

// A Value is an arbitrary SRL value.
type Value interface {
	// SRL renders the value in SRL notation.
	SRL() string

	// JSON renders the value as JSON text.
	JSON() string
}

// Null represents the null value.
type Null struct{}

func (Null) SRL() string  { return "N;" }
func (Null) JSON() string { return "null" }

// A Bool is a Boolean value.
type Bool bool

func (b Bool) SRL() string {
	if b {
		return "b:1;"
	}
	return "b:0;"
}

func (b Bool) JSON() string { return strconv.FormatBool(bool(b)) }

// An Int is an integer value.
type Int int64

func (z Int) SRL() string  { return "i:" + z.text() + ";" }
func (z Int) JSON() string { return z.text() }

func (z Int) text() string { return strconv.FormatInt(int64(z), 10) }

// A Float is a decimal value.
type Float float64

// SRL renders f with a decimal point, so that whole numbers such as 1 are
// written "d:1.0;" rather than as an integer literal.
func (f Float) SRL() string {
	text := f.JSON()
	if strings.IndexByte(text, '.') < 0 {
		if i := strings.IndexByte(text, 'e'); i >= 0 {
			text = text[:i] + ".0" + text[i:]
		} else {
			text += ".0"
		}
	}
	return "d:" + text + ";"
}

func (f Float) JSON() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

// A String is a string value. Its contents are arbitrary bytes.
type String string

func (s String) SRL() string  { return fmt.Sprintf(`s:%d:"%s";`, rawLen(string(s)), string(s)) }
func (s String) JSON() string { return escape.Quote(mem.S(string(s))) }

// A Ref is a back-reference to a previously-defined array (R) or object (r).
type Ref struct {
	Object bool  // true for an object reference, false for an array reference
	Index  int64 // the index of the referenced value
}

func (r Ref) SRL() string {
	if r.Object {
		return fmt.Sprintf("r:%d;", r.Index)
	}
	return fmt.Sprintf("R:%d;", r.Index)
}

// JSON renders a reference as {"$ref": index}.
func (r Ref) JSON() string { return fmt.Sprintf(`{"$ref":%d}`, r.Index) }

// An Entry is a single key/value pair belonging to an Array or an Object.
type Entry struct {
	Key   Value
	Value Value
}

// KeyText returns the text of the entry key: the contents of a string key, or
// the decimal representation of an integer key.
func (e *Entry) KeyText() string { return keyText(e.Key) }

func keyText(v Value) string {
	switch t := v.(type) {
	case String:
		return string(t)
	case Int:
		return t.text()
	case nil:
		return ""
	}
	return v.SRL()
}

// An Array is an ordered sequence of key/value entries.
type Array []*Entry

// Find returns the first entry of a with the given key text, or nil.
func (a Array) Find(key string) *Entry { return findEntry(a, key) }

func (a Array) SRL() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "a:%d:{", len(a))
	writeEntries(&sb, a)
	sb.WriteByte('}')
	return sb.String()
}

// JSON renders a as a JSON array if its keys are the integers 0, 1, ... in
// order, otherwise as a JSON object.
func (a Array) JSON() string {
	if !a.isList() {
		return entriesJSON(a)
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(e.Value.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a Array) isList() bool {
	for i, e := range a {
		if z, ok := e.Key.(Int); !ok || int(z) != i {
			return false
		}
	}
	return true
}

// An Object is an instance of a named class with a sequence of properties.
type Object struct {
	Class string
	Props []*Entry
}

// Find returns the first property of o with the given name, or nil.
func (o *Object) Find(name string) *Entry { return findEntry(o.Props, name) }

func (o *Object) SRL() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `O:%d:"%s":%d:{`, rawLen(o.Class), o.Class, len(o.Props))
	writeEntries(&sb, o.Props)
	sb.WriteByte('}')
	return sb.String()
}

// JSON renders the properties of o as a JSON object. The class name is not
// included.
func (o *Object) JSON() string { return entriesJSON(o.Props) }

// A Custom is an instance of a named class whose contents are an opaque
// payload in a class-specific format.
type Custom struct {
	Class   string
	Payload string
}

func (c *Custom) SRL() string {
	return fmt.Sprintf(`C:%d:"%s":%d:{%s}`, rawLen(c.Class), c.Class, rawLen(c.Payload), c.Payload)
}

// rawLen reports the declared length of s as a string or custom payload. A
// backslash and the byte after it count together as one. A trailing lone
// backslash counts as one, but the result does not parse back, since the
// backslash pairs with the closing delimiter.
func rawLen(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
		}
		n++
	}
	return n
}

// JSON renders c as {"$class": name, "$payload": payload}.
func (c *Custom) JSON() string {
	return fmt.Sprintf(`{"$class":%s,"$payload":%s}`,
		escape.Quote(mem.S(c.Class)), escape.Quote(mem.S(c.Payload)))
}

func findEntry(es []*Entry, key string) *Entry {
	for _, e := range es {
		if e.KeyText() == key {
			return e
		}
	}
	return nil
}

func writeEntries(sb *strings.Builder, es []*Entry) {
	for _, e := range es {
		sb.WriteString(e.Key.SRL())
		sb.WriteString(e.Value.SRL())
	}
}

func entriesJSON(es []*Entry) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range es {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(escape.Quote(mem.S(e.KeyText())))
		sb.WriteByte(':')
		sb.WriteString(e.Value.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Field constructs an entry with a string key.
func Field(key string, value Value) *Entry { return &Entry{Key: String(key), Value: value} }

// ListOf constructs an array whose keys are the integers 0, 1, ... in order.
func ListOf(vs ...Value) Array {
	a := make(Array, len(vs))
	for i, v := range vs {
		a[i] = &Entry{Key: Int(i), Value: v}
	}
	return a
}
