// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package srl

import "fmt"

// Kind is the type of a lexical token in the SRL grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid Kind = iota // invalid token

	Null      // marker: N
	Bool      // marker: b
	Integer   // marker: i
	Decimal   // marker: d
	String    // marker: s
	Array     // marker: a
	Object    // marker: O
	Custom    // marker: C
	RefArray  // marker: R
	RefObject // marker: r

	OpenBrace  // open brace "{"
	CloseBrace // close brace "}"
	Colon      // colon ":"
	Semicolon  // semicolon ";"
	Quote      // double quote '"'

	IntegerLiteral // numeral without a decimal point
	DecimalLiteral // numeral with a decimal point
	StringLiteral  // raw payload captured by length
)

var kindStr = [...]string{
	Invalid: "invalid token",

	Null:      `"N"`,
	Bool:      `"b"`,
	Integer:   `"i"`,
	Decimal:   `"d"`,
	String:    `"s"`,
	Array:     `"a"`,
	Object:    `"O"`,
	Custom:    `"C"`,
	RefArray:  `"R"`,
	RefObject: `"r"`,

	OpenBrace:  `"{"`,
	CloseBrace: `"}"`,
	Colon:      `":"`,
	Semicolon:  `";"`,
	Quote:      `'"'`,

	IntegerLiteral: "integer",
	DecimalLiteral: "decimal",
	StringLiteral:  "string",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// IsMarker reports whether k is one of the value markers that begin a
// production (N, b, i, d, s, a, O, C, R, r).
func (k Kind) IsMarker() bool { return k >= Null && k <= RefObject }

// markers maps the single-byte grammar letters to their kinds.
var markers = [...]Kind{
	'N': Null,
	'b': Bool,
	'i': Integer,
	'd': Decimal,
	's': String,
	'a': Array,
	'O': Object,
	'C': Custom,
	'R': RefArray,
	'r': RefObject,
}

func markerKind(ch byte) (Kind, bool) {
	if int(ch) < len(markers) && markers[ch] != Invalid {
		return markers[ch], true
	}
	return Invalid, false
}

// A Token is a single classified unit of the input.
type Token struct {
	Kind Kind   // the kind of the token
	Text string // the exact source text of the token
	Pos  int    // offset of the first byte, including the base offset
}

// Span returns the location span of the token text.
func (t Token) Span() Span { return Span{Pos: t.Pos, End: t.Pos + len(t.Text)} }

func (t Token) String() string { return fmt.Sprintf("%v %q @%d", t.Kind, t.Text, t.Pos) }
