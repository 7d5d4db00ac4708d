// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package srl

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"go4.org/mem"
)

// customHeader is the sequence of token kinds that follows a Custom marker up
// to (but not including) the open brace of its opaque body:
//
//	C : <int> : " <name> " : <int> : {
var customHeader = [...]Kind{
	Colon, IntegerLiteral, Colon, Quote, StringLiteral, Quote, Colon, IntegerLiteral, Colon,
}

// A Scanner reads lexical tokens from an input stream. Each call to Next
// advances the scanner to the next token.
//
// Scanning never fails on the content of the input: bytes that cannot be
// classified are discarded, and it is up to the parser to reject a token
// sequence that does not match the grammar.
type Scanner struct {
	r    *bufio.Reader
	buf  bytes.Buffer // pending text not yet classified
	out  []Token      // tokens ready for delivery
	head int          // next undelivered token in out
	tok  Token
	err  error
	done bool

	off  int  // offset of the next input byte, including the base
	want int  // bytes remaining in the current raw capture
	esc  bool // a backslash was captured and awaits its partner
	open bool // a quoted payload was captured and its close quote is pending

	// Context carried forward from previous tokens.
	last   Token
	length int  // the most recent length prefix
	armed  bool // length was immediately followed by a colon
	hdr    int  // progress through customHeader, -1 if not in a header
}

// NewScanner constructs a new lexical scanner that consumes input from r.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br, hdr: -1}
}

// SetBase sets the offset assigned to the first byte of the input.  It must
// be called before the first call to Next.
func (s *Scanner) SetBase(offset int) { s.off = offset }

// Next advances s to the next token of the input and reports whether one is
// available. At the end of the input, or if reading fails, Next returns
// false; use Err to distinguish the two cases.
func (s *Scanner) Next() bool {
	for s.head == len(s.out) {
		s.out, s.head = s.out[:0], 0
		if s.done {
			s.tok = Token{}
			return false
		}
		ch, err := s.r.ReadByte()
		if err == io.EOF {
			s.done = true
			if s.want > 0 {
				s.buf.Reset() // truncated raw payload
			} else {
				s.flush()
			}
			continue
		} else if err != nil {
			s.err = err
			s.done = true
			continue
		}
		s.scanByte(ch)
		s.off++
	}
	s.tok = s.out[s.head]
	s.head++
	return true
}

// Token returns the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the error that stopped the scanner, or nil if the input was
// consumed completely.
func (s *Scanner) Err() error { return s.err }

// Tokenize scans all of input and returns its tokens. The base offset is
// added to the position of each token.
func Tokenize(input []byte, base int) []Token {
	s := NewScanner(bytes.NewReader(input))
	s.SetBase(base)
	var toks []Token
	for s.Next() {
		toks = append(toks, s.Token())
	}
	return toks
}

func (s *Scanner) scanByte(ch byte) {
	if s.want > 0 {
		s.capture(ch)
		return
	}
	switch ch {
	case '"':
		s.flush()
		start, n := !s.open && s.armed, s.length
		s.emit(Quote, `"`, s.off)
		if s.open {
			s.open = false
		} else if start {
			s.open = true
			s.beginCapture(n)
		}
	case '{':
		s.flush()
		start, n := s.hdr == len(customHeader) && s.armed, s.length
		s.emit(OpenBrace, "{", s.off)
		if start {
			s.beginCapture(n)
		}
	case '}':
		s.flush()
		s.emit(CloseBrace, "}", s.off)
	case ':':
		s.flush()
		s.emit(Colon, ":", s.off)
	case ';':
		s.flush()
		s.emit(Semicolon, ";", s.off)
	case '\\':
		// Ignored outside a raw payload.
	default:
		s.buf.WriteByte(ch)
	}
}

// beginCapture starts capturing a raw payload of n bytes following the
// current byte. An empty payload is emitted immediately.
func (s *Scanner) beginCapture(n int) {
	if n == 0 {
		s.emit(StringLiteral, "", s.off+1)
	} else if n > 0 {
		s.want = n
	}
}

// capture adds ch to the raw payload being captured. A backslash occupies
// the countdown only together with the byte that follows it.
func (s *Scanner) capture(ch byte) {
	if ch == '\\' && !s.esc {
		s.esc = true
	} else {
		s.esc = false
		s.want--
	}
	s.buf.WriteByte(ch)
	if s.want == 0 {
		s.emit(StringLiteral, s.buf.String(), s.off-s.buf.Len()+1)
		s.buf.Reset()
	}
}

// flush classifies the pending text as a marker or numeral and emits it.
// Text that is neither is discarded.
func (s *Scanner) flush() {
	if s.buf.Len() == 0 {
		return
	}
	text := mem.B(s.buf.Bytes())
	pos := s.off - text.Len()
	if k, ok := classify(text); ok {
		s.emit(k, text.StringCopy(), pos)
	}
	s.buf.Reset()
}

func (s *Scanner) emit(kind Kind, text string, pos int) {
	tok := Token{Kind: kind, Text: text, Pos: pos}
	s.out = append(s.out, tok)

	if kind == Colon && s.last.Kind == IntegerLiteral {
		n, err := strconv.Atoi(s.last.Text)
		s.length, s.armed = n, err == nil
	} else {
		s.armed = false
	}

	switch {
	case kind == Custom:
		s.hdr = 0
	case s.hdr >= 0 && s.hdr < len(customHeader) && kind == customHeader[s.hdr]:
		s.hdr++
	default:
		s.hdr = -1
	}
	s.last = tok
}

func classify(text mem.RO) (Kind, bool) {
	if text.Len() == 1 {
		if k, ok := markerKind(text.At(0)); ok {
			return k, true
		}
	}
	if !isNumeral(text) {
		return Invalid, false
	} else if mem.IndexByte(text, '.') >= 0 {
		return DecimalLiteral, true
	}
	return IntegerLiteral, true
}

// isNumeral reports whether text is a decimal numeral: an optional sign,
// digits with an optional fractional part, and an optional exponent. At least
// one mantissa digit is required.
//
// OK: 0, -15, +3, 4.5, .5, 5., 1.0E+25
// Bad: ., -, 1e, 0x1F, 1.2.3
func isNumeral(text mem.RO) bool {
	i, n := 0, text.Len()
	if i < n && isSign(text.At(i)) {
		i++
	}
	nd := 0
	for i < n && isDigit(text.At(i)) {
		i++
		nd++
	}
	if i < n && text.At(i) == '.' {
		i++
		for i < n && isDigit(text.At(i)) {
			i++
			nd++
		}
	}
	if nd == 0 {
		return false
	}
	if i < n && (text.At(i) == 'e' || text.At(i) == 'E') {
		i++
		if i < n && isSign(text.At(i)) {
			i++
		}
		ne := 0
		for i < n && isDigit(text.At(i)) {
			i++
			ne++
		}
		if ne == 0 {
			return false
		}
	}
	return i == n
}

func isSign(ch byte) bool  { return ch == '-' || ch == '+' }
func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }
