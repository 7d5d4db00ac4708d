// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"

	"github.com/creachadair/mds/stack"
	"github.com/creachadair/srl"
)

// Parse parses and returns the SRL value in input. In case of a syntax error,
// the error has concrete type *srl.SyntaxError.
func Parse(input []byte) (Value, error) {
	return ParseWith(srl.New(nil, input))
}

// MustParse parses input as for Parse, but panics if parsing fails.
func MustParse(input string) Value {
	v, err := Parse([]byte(input))
	if err != nil {
		panic(fmt.Sprintf("ast.MustParse: %v", err))
	}
	return v
}

// ParseWith parses a value using the settings of p, replacing its listener.
func ParseWith(p *srl.Parser) (Value, error) {
	h := &parseHandler{stk: stack.New[*body]()}
	p.SetListener(h)
	if err := p.Parse(); err != nil {
		return nil, err
	} else if h.err != nil {
		return nil, h.err
	} else if h.root == nil {
		return nil, errors.New("no value")
	}
	return h.root, nil
}

// A body collects the values of an array or object under construction.
type body struct {
	obj  *Object // nil for an array
	vals []Value // alternating keys and values
}

func (b *body) entries() ([]*Entry, error) {
	if len(b.vals)%2 != 0 {
		return nil, fmt.Errorf("missing value for key %s", b.vals[len(b.vals)-1].SRL())
	}
	es := make([]*Entry, 0, len(b.vals)/2)
	for i := 0; i < len(b.vals); i += 2 {
		es = append(es, &Entry{Key: b.vals[i], Value: b.vals[i+1]})
	}
	return es, nil
}

// A parseHandler implements the srl.Listener interface to construct abstract
// syntax trees for SRL values.
type parseHandler struct {
	srl.NopListener

	stk   *stack.Stack[*body]
	root  Value
	class string // the most recent class name
	data  string // the most recent custom payload
	err   error
}

func (h *parseHandler) setErr(err error) {
	if h.err == nil {
		h.err = err
	}
}

// reduce adds a completed value to the body atop the stack, or makes it the
// root if the stack is empty.
func (h *parseHandler) reduce(v Value) {
	if top, ok := h.stk.Peek(0); ok {
		top.vals = append(top.vals, v)
	} else {
		h.root = v
	}
}

func (h *parseHandler) NullValue() { h.reduce(Null{}) }

func (h *parseHandler) BooleanValue(text string, pos int) {
	v, err := srl.ParseBool(text)
	if err != nil {
		h.setErr(fmt.Errorf("offset %d: %w", pos, err))
	}
	h.reduce(Bool(v))
}

func (h *parseHandler) IntegerValue(text string, pos int) { h.reduce(Int(h.parseInt(text, pos))) }

func (h *parseHandler) DecimalValue(text string, pos int) {
	v, err := srl.ParseDecimal(text)
	if err != nil {
		h.setErr(fmt.Errorf("offset %d: invalid decimal: %w", pos, err))
	}
	h.reduce(Float(v))
}

func (h *parseHandler) ArrayReference(text string, pos int) {
	h.reduce(Ref{Index: h.parseInt(text, pos)})
}

func (h *parseHandler) ObjectReference(text string, pos int) {
	h.reduce(Ref{Object: true, Index: h.parseInt(text, pos)})
}

func (h *parseHandler) StringValue(text string, pos int) { h.reduce(String(text)) }

func (h *parseHandler) ArrayItemsNum(text string, pos int) { h.stk.Add(new(body)) }

func (h *parseHandler) EndArray() {
	b, _ := h.stk.Pop()
	es, err := b.entries()
	if err != nil {
		h.setErr(err)
	}
	h.reduce(Array(es))
}

func (h *parseHandler) ObjectName(text string, pos int) { h.class = text }

func (h *parseHandler) ObjectPropsNum(text string, pos int) {
	h.stk.Add(&body{obj: &Object{Class: h.class}})
}

func (h *parseHandler) EndObject() {
	b, _ := h.stk.Pop()
	es, err := b.entries()
	if err != nil {
		h.setErr(err)
	}
	b.obj.Props = es
	h.reduce(b.obj)
}

func (h *parseHandler) CustomObjectName(text string, pos int) { h.class, h.data = text, "" }

func (h *parseHandler) CustomObjectPayload(text string, pos int) { h.data = text }

func (h *parseHandler) EndCustomObject() { h.reduce(&Custom{Class: h.class, Payload: h.data}) }

func (h *parseHandler) parseInt(text string, pos int) int64 {
	v, err := srl.ParseInt(text)
	if err != nil {
		h.setErr(fmt.Errorf("offset %d: invalid integer: %w", pos, err))
	}
	return v
}
