// Package testutil defines support code for unit tests.
package testutil

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/creachadair/srl"
)

// Recorder is a srl.Listener that records one line of text per event.
type Recorder struct {
	buf bytes.Buffer
}

var (
	_ srl.Listener        = (*Recorder)(nil)
	_ srl.PayloadListener = (*Recorder)(nil)
)

// Output returns the recorded events, one per line.
func (r *Recorder) Output() string { return r.buf.String() }

// Lines returns the recorded events as a slice.
func (r *Recorder) Lines() []string {
	return strings.Split(strings.TrimSpace(r.buf.String()), "\n")
}

// Reset discards the recorded events.
func (r *Recorder) Reset() { r.buf.Reset() }

func (r *Recorder) pr(msg string, args ...any) {
	fmt.Fprintf(&r.buf, msg, args...)
	r.buf.WriteByte('\n')
}

func (r *Recorder) value(name, text string, pos int) { r.pr("%s <%s> %d", name, text, pos) }

func (r *Recorder) BeginParsing(input []byte, offset int) { r.pr("BeginParsing %d", offset) }
func (r *Recorder) EndParsing(ok bool)                    { r.pr("EndParsing %v", ok) }
func (r *Recorder) NullValue()                            { r.pr("NullValue") }
func (r *Recorder) EndArray()                             { r.pr("EndArray") }
func (r *Recorder) EndObject()                            { r.pr("EndObject") }
func (r *Recorder) EndCustomObject()                      { r.pr("EndCustomObject") }
func (r *Recorder) SetError(msg string)                   { r.pr("SetError %s", msg) }

func (r *Recorder) BooleanValue(text string, pos int)    { r.value("BooleanValue", text, pos) }
func (r *Recorder) IntegerValue(text string, pos int)    { r.value("IntegerValue", text, pos) }
func (r *Recorder) DecimalValue(text string, pos int)    { r.value("DecimalValue", text, pos) }
func (r *Recorder) ArrayReference(text string, pos int)  { r.value("ArrayReference", text, pos) }
func (r *Recorder) ObjectReference(text string, pos int) { r.value("ObjectReference", text, pos) }
func (r *Recorder) StringLength(text string, pos int)    { r.value("StringLength", text, pos) }
func (r *Recorder) StringValue(text string, pos int)     { r.value("StringValue", text, pos) }
func (r *Recorder) ArrayItemsNum(text string, pos int)   { r.value("ArrayItemsNum", text, pos) }
func (r *Recorder) ObjectNameLength(text string, pos int) {
	r.value("ObjectNameLength", text, pos)
}
func (r *Recorder) ObjectName(text string, pos int)     { r.value("ObjectName", text, pos) }
func (r *Recorder) ObjectPropsNum(text string, pos int) { r.value("ObjectPropsNum", text, pos) }
func (r *Recorder) CustomObjectNameLength(text string, pos int) {
	r.value("CustomObjectNameLength", text, pos)
}
func (r *Recorder) CustomObjectName(text string, pos int) { r.value("CustomObjectName", text, pos) }
func (r *Recorder) CustomObjectPropsNum(text string, pos int) {
	r.value("CustomObjectPropsNum", text, pos)
}
func (r *Recorder) CustomObjectPayload(text string, pos int) {
	r.value("CustomObjectPayload", text, pos)
}
