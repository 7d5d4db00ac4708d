// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package srl

// A Listener receives events from a Parser. Each method corresponds to a
// construct of the SRL grammar; see the package documentation for the order
// in which they are called.
//
// Value methods receive the raw source text of a token and its offset, which
// includes the base offset of the parser. Numeric text is not decoded and
// string text is not unescaped; see ParseInt, ParseDecimal and ParseBool.
//
// The parser never reads state back from a listener.
type Listener interface {
	// BeginParsing is called once before any other event, with the complete
	// input and the base offset of the parse.
	BeginParsing(input []byte, offset int)

	// EndParsing is called once after all other events, reporting whether the
	// input was accepted.
	EndParsing(ok bool)

	NullValue()
	BooleanValue(text string, pos int) // text is "0" or "1"
	IntegerValue(text string, pos int)
	DecimalValue(text string, pos int)

	// ArrayReference and ObjectReference report a back-reference (R and r).
	// The reference is not resolved.
	ArrayReference(text string, pos int)
	ObjectReference(text string, pos int)

	StringLength(text string, pos int)
	StringValue(text string, pos int)

	// ArrayItemsNum reports the declared number of key/value pairs of an
	// array. The key and value of each pair are then reported as ordinary
	// values, followed by EndArray.
	ArrayItemsNum(text string, pos int)
	EndArray()

	ObjectNameLength(text string, pos int)
	ObjectName(text string, pos int)
	ObjectPropsNum(text string, pos int)
	EndObject()

	CustomObjectNameLength(text string, pos int)
	CustomObjectName(text string, pos int)
	CustomObjectPropsNum(text string, pos int)
	EndCustomObject()

	// SetError reports a syntax error. At most one error is reported per
	// parse, and it is always followed by EndParsing(false).
	SetError(msg string)
}

// PayloadListener is an optional interface that a Listener may implement to
// receive the opaque payload of a custom object. If a listener implements
// this method, CustomObjectPayload is called with the raw payload text after
// CustomObjectPropsNum and before EndCustomObject. Otherwise the payload is
// silently discarded.
type PayloadListener interface {
	CustomObjectPayload(text string, pos int)
}

// NopListener implements every method of Listener by doing nothing. Embed it
// in a type that handles only some of the events.
type NopListener struct{}

var _ Listener = NopListener{}

func (NopListener) BeginParsing([]byte, int)           {}
func (NopListener) EndParsing(bool)                    {}
func (NopListener) NullValue()                         {}
func (NopListener) BooleanValue(string, int)           {}
func (NopListener) IntegerValue(string, int)           {}
func (NopListener) DecimalValue(string, int)           {}
func (NopListener) ArrayReference(string, int)         {}
func (NopListener) ObjectReference(string, int)        {}
func (NopListener) StringLength(string, int)           {}
func (NopListener) StringValue(string, int)            {}
func (NopListener) ArrayItemsNum(string, int)          {}
func (NopListener) EndArray()                          {}
func (NopListener) ObjectNameLength(string, int)       {}
func (NopListener) ObjectName(string, int)             {}
func (NopListener) ObjectPropsNum(string, int)         {}
func (NopListener) EndObject()                         {}
func (NopListener) CustomObjectNameLength(string, int) {}
func (NopListener) CustomObjectName(string, int)       {}
func (NopListener) CustomObjectPropsNum(string, int)   {}
func (NopListener) EndCustomObject()                   {}
func (NopListener) SetError(string)                    {}
