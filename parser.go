// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package srl

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DefaultMaxDepth is the default limit on the nesting depth of arrays and
// objects accepted by a Parser.
const DefaultMaxDepth = 512

// A Parser is an event-driven parser for SRL input. It tokenizes its input
// and delivers events to a Listener corresponding with the structure of the
// input.
//
// A Parser may be reused sequentially; each call to Parse starts afresh. It
// is not safe to call Parse concurrently on the same Parser.
type Parser struct {
	l        Listener
	input    []byte
	offset   int
	maxDepth int
}

// New constructs a new Parser that delivers events for input to l.
func New(l Listener, input []byte) *Parser {
	return &Parser{l: l, input: input, maxDepth: DefaultMaxDepth}
}

// SetListener replaces the listener of p.
func (p *Parser) SetListener(l Listener) { p.l = l }

// SetInput replaces the input of p.
func (p *Parser) SetInput(input []byte) { p.input = input }

// Input returns the input of p.
func (p *Parser) Input() []byte { return p.input }

// SetOffset sets the initial offset of p, which is added to every offset
// reported to the listener. It does not skip any of the input.
func (p *Parser) SetOffset(offset int) { p.offset = offset }

// Offset returns the initial offset of p.
func (p *Parser) Offset() int { return p.offset }

// SetMaxDepth sets the maximum nesting depth of arrays and objects. If n <= 0
// the limit is reset to DefaultMaxDepth.
func (p *Parser) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	p.maxDepth = n
}

// Parse parses a single value from the input and delivers events to the
// listener. If the input is empty, Parse returns nil without calling the
// listener. Otherwise the events are bracketed by BeginParsing and
// EndParsing. In case of a syntax error, the error is reported to the
// listener and returned; it has concrete type [*SyntaxError].
//
// Tokens following a complete value are ignored. Parse reports ErrNoListener
// without reading the input if p has no listener.
func (p *Parser) Parse() error {
	if len(p.input) == 0 {
		return nil
	} else if p.l == nil {
		return ErrNoListener
	}
	st := &parseState{
		l:        p.l,
		toks:     Tokenize(p.input, p.offset),
		base:     p.offset,
		maxDepth: p.maxDepth,
	}
	p.l.BeginParsing(p.input, p.offset)
	err := st.run()
	p.l.EndParsing(err == nil)
	return err
}

// parseState is the state of a single call to Parse.
type parseState struct {
	l        Listener
	toks     []Token
	pos      int // index of the next unconsumed token
	base     int
	depth    int
	maxDepth int
}

func (s *parseState) run() (err error) {
	defer s.recoverParseError(&err)
	s.parseValue()
	return nil
}

func (s *parseState) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		err, ok := serr.(*SyntaxError)
		if !ok {
			panic(serr)
		}
		s.l.SetError(err.Error())
		*errp = err
	}
}

// parseValue consumes a single value of any type.
func (s *parseState) parseValue() {
	if s.pos >= len(s.toks) {
		s.fail(ErrTruncated, s.endPos(), "expected a value, got end of input")
	}
	tok := s.toks[s.pos]
	s.pos++

	switch tok.Kind {
	case Null:
		s.require(Semicolon)
		s.l.NullValue()

	case Bool:
		s.require(Colon)
		if v := s.peekNext(); v.Kind != IntegerLiteral || (v.Text != "0" && v.Text != "1") {
			var err error
			if v.Kind == Invalid {
				err = ErrTruncated
			}
			s.fail(err, v.Pos, `expected "0" or "1", got %s`, describe(v))
		}
		v := s.require(IntegerLiteral)
		s.l.BooleanValue(v.Text, v.Pos)
		s.require(Semicolon)

	case Integer:
		s.parseScalar(s.l.IntegerValue, IntegerLiteral)
	case Decimal:
		s.parseScalar(s.l.DecimalValue, DecimalLiteral)
	case RefArray:
		s.parseScalar(s.l.ArrayReference, IntegerLiteral)
	case RefObject:
		s.parseScalar(s.l.ObjectReference, IntegerLiteral)

	case String:
		s.require(Colon)
		n := s.require(IntegerLiteral)
		s.l.StringLength(n.Text, n.Pos)
		s.require(Colon)
		s.require(Quote)
		v := s.require(StringLiteral)
		s.l.StringValue(v.Text, v.Pos)
		s.require(Quote)
		s.require(Semicolon)

	case Array:
		s.require(Colon)
		n := s.require(IntegerLiteral)
		s.l.ArrayItemsNum(n.Text, n.Pos)
		s.require(Colon)
		s.require(OpenBrace)
		s.parseBody()
		s.l.EndArray()

	case Object:
		s.parseClass(s.l.ObjectNameLength, s.l.ObjectName, s.l.ObjectPropsNum)
		s.parseBody()
		s.l.EndObject()

	case Custom:
		s.parseClass(s.l.CustomObjectNameLength, s.l.CustomObjectName, s.l.CustomObjectPropsNum)
		if v := s.require(StringLiteral, CloseBrace); v.Kind == StringLiteral {
			if pl, ok := s.l.(PayloadListener); ok {
				pl.CustomObjectPayload(v.Text, v.Pos)
			}
			s.require(CloseBrace)
		}
		s.l.EndCustomObject()

	default:
		s.syntaxError(tok.Pos, "invalid value marker %s", describe(tok))
	}
}

// parseScalar consumes the remainder of a scalar value ":" <value> ";" whose
// marker has been consumed, and reports the value to emit.
func (s *parseState) parseScalar(emit func(string, int), kinds ...Kind) {
	s.require(Colon)
	v := s.require(kinds...)
	emit(v.Text, v.Pos)
	s.require(Semicolon)
}

// parseClass consumes the header of an object or custom object whose marker
// has been consumed, through the open brace of its body:
//
//	: <int> : " <name> " : <int> : {
func (s *parseState) parseClass(nameLen, name, num func(string, int)) {
	s.require(Colon)
	n := s.require(IntegerLiteral)
	nameLen(n.Text, n.Pos)
	s.require(Colon)
	s.require(Quote)
	v := s.require(StringLiteral)
	name(v.Text, v.Pos)
	s.require(Quote)
	s.require(Colon)
	c := s.require(IntegerLiteral)
	num(c.Text, c.Pos)
	s.require(Colon)
	s.require(OpenBrace)
}

// parseBody consumes zero or more values up to and including a close brace.
// The declared number of values is not checked.
// Precondition: the previous token was OpenBrace.
func (s *parseState) parseBody() {
	s.depth++
	if s.depth > s.maxDepth {
		s.fail(ErrTooDeep, s.toks[s.pos-1].Pos, "nesting too deep (limit %d)", s.maxDepth)
	}
	for {
		if s.pos >= len(s.toks) {
			s.fail(ErrTruncated, s.endPos(), `expected "}" or a value, got end of input`)
		}
		if s.toks[s.pos].Kind == CloseBrace {
			s.pos++
			break
		}
		s.parseValue()
	}
	s.depth--
}

// require consumes the next token, which must have one of the given kinds.
func (s *parseState) require(kinds ...Kind) Token {
	if s.pos >= len(s.toks) {
		s.fail(ErrTruncated, s.endPos(), "expected %s, got end of input", kindLabel(kinds))
	}
	tok := s.toks[s.pos]
	if !slices.Contains(kinds, tok.Kind) {
		s.syntaxError(tok.Pos, "expected %s, got %s", kindLabel(kinds), describe(tok))
	}
	s.pos++
	return tok
}

// peekNext returns the next token without consuming it. If there are no
// more tokens, it reports a zero token positioned at the end of the input.
func (s *parseState) peekNext() Token {
	if s.pos >= len(s.toks) {
		return Token{Pos: s.endPos()}
	}
	return s.toks[s.pos]
}

// endPos reports the offset just past the last token, the position at which
// a missing token is reported.
func (s *parseState) endPos() int {
	if len(s.toks) == 0 {
		return s.base
	}
	return s.toks[len(s.toks)-1].Span().End
}

func (s *parseState) syntaxError(pos int, msg string, args ...any) { s.fail(nil, pos, msg, args...) }

// fail reports a syntax error at pos wrapping err, which may be nil.
func (s *parseState) fail(err error, pos int, msg string, args ...any) {
	panic(&SyntaxError{Offset: pos, Message: fmt.Sprintf(msg, args...), err: err})
}

// describe makes a human-readable label for an offending token.
func describe(tok Token) string {
	switch tok.Kind {
	case Invalid:
		return "end of input"
	case IntegerLiteral, DecimalLiteral:
		return fmt.Sprintf("%v %s", tok.Kind, tok.Text)
	case StringLiteral:
		return fmt.Sprintf("%v %q", tok.Kind, tok.Text)
	}
	return tok.Kind.String()
}

// kindLabel makes a human-readable summary string for the given token kinds.
func kindLabel(kinds []Kind) string {
	if len(kinds) == 1 {
		return kinds[0].String()
	}
	last := len(kinds) - 1
	ss := make([]string, last)
	for i, k := range kinds[:last] {
		ss[i] = k.String()
	}
	return strings.Join(ss, ", ") + " or " + kinds[last].String()
}

var (
	// ErrTruncated is wrapped by a SyntaxError reporting that the input ended
	// before a value was complete.
	ErrTruncated = errors.New("truncated input")

	// ErrTooDeep is wrapped by a SyntaxError reporting that arrays or objects
	// are nested more deeply than the parser permits.
	ErrTooDeep = errors.New("nesting too deep")

	// ErrNoListener is returned by Parse if the parser has no listener.
	ErrNoListener = errors.New("no listener")
)

// SyntaxError is the concrete type of errors reported by the parser.
type SyntaxError struct {
	Offset  int    // offset of the offending token, including the base offset
	Message string // description of the error

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at offset %d: %s", s.Offset, s.Message)
}

// Unwrap returns the underlying cause of s, if any. Use errors.Is with
// ErrTruncated or ErrTooDeep to classify an error.
func (s *SyntaxError) Unwrap() error { return s.err }
