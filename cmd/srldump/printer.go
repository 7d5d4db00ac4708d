// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/srl"
)

// An eventPrinter is a srl.Listener that writes one line per event, indented
// by the nesting depth of the event.
type eventPrinter struct {
	w     io.Writer
	depth int
}

var (
	_ srl.Listener        = (*eventPrinter)(nil)
	_ srl.PayloadListener = (*eventPrinter)(nil)
)

func (e *eventPrinter) pr(name string, args ...any) {
	fmt.Fprint(e.w, strings.Repeat("  ", e.depth), name)
	for _, arg := range args {
		fmt.Fprint(e.w, " ", arg)
	}
	fmt.Fprintln(e.w)
}

func (e *eventPrinter) value(name, text string, pos int) { e.pr(name, fmt.Sprintf("%q", text), "@", pos) }

func (e *eventPrinter) open(name, text string, pos int) {
	e.value(name, text, pos)
	e.depth++
}

func (e *eventPrinter) close(name string) {
	if e.depth > 0 {
		e.depth--
	}
	e.pr(name)
}

func (e *eventPrinter) BeginParsing(input []byte, offset int) {
	e.depth = 0
	e.pr("BeginParsing", len(input), "bytes @", offset)
}

func (e *eventPrinter) EndParsing(ok bool)  { e.depth = 0; e.pr("EndParsing", ok) }
func (e *eventPrinter) SetError(msg string) { e.pr("SetError", msg) }
func (e *eventPrinter) NullValue()          { e.pr("NullValue") }

func (e *eventPrinter) BooleanValue(text string, pos int)    { e.value("BooleanValue", text, pos) }
func (e *eventPrinter) IntegerValue(text string, pos int)    { e.value("IntegerValue", text, pos) }
func (e *eventPrinter) DecimalValue(text string, pos int)    { e.value("DecimalValue", text, pos) }
func (e *eventPrinter) ArrayReference(text string, pos int)  { e.value("ArrayReference", text, pos) }
func (e *eventPrinter) ObjectReference(text string, pos int) { e.value("ObjectReference", text, pos) }
func (e *eventPrinter) StringLength(text string, pos int)    { e.value("StringLength", text, pos) }
func (e *eventPrinter) StringValue(text string, pos int)     { e.value("StringValue", text, pos) }

func (e *eventPrinter) ArrayItemsNum(text string, pos int) { e.open("ArrayItemsNum", text, pos) }
func (e *eventPrinter) EndArray()                          { e.close("EndArray") }

func (e *eventPrinter) ObjectNameLength(text string, pos int) { e.value("ObjectNameLength", text, pos) }
func (e *eventPrinter) ObjectName(text string, pos int)       { e.value("ObjectName", text, pos) }
func (e *eventPrinter) ObjectPropsNum(text string, pos int)   { e.open("ObjectPropsNum", text, pos) }
func (e *eventPrinter) EndObject()                            { e.close("EndObject") }

func (e *eventPrinter) CustomObjectNameLength(text string, pos int) {
	e.value("CustomObjectNameLength", text, pos)
}
func (e *eventPrinter) CustomObjectName(text string, pos int) { e.value("CustomObjectName", text, pos) }
func (e *eventPrinter) CustomObjectPropsNum(text string, pos int) {
	e.open("CustomObjectPropsNum", text, pos)
}
func (e *eventPrinter) CustomObjectPayload(text string, pos int) {
	e.value("CustomObjectPayload", text, pos)
}
func (e *eventPrinter) EndCustomObject() { e.close("EndCustomObject") }
