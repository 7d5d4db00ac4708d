// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package srl implements a scanner and an event-driven parser for the SRL
// serialization notation, in which values are encoded as tagged,
// length-prefixed tokens:
//
//	N;                          null
//	b:1;                        Boolean (0 or 1)
//	i:42;                       integer
//	d:42.5;                     decimal
//	s:6:"foobar";               string of 6 bytes
//	a:2:{...}                   array of 2 key/value pairs
//	O:4:"Name":1:{...}          object of class Name with 1 property
//	C:4:"Name":6:{......}       custom object with a 6-byte opaque payload
//	R:2;  r:3;                  array and object back-references
//
// The parser never constructs or evaluates the values it reads. It reports
// the structure of the input to a Listener, and leaves the decision of what
// to do with it to the caller.
//
// # Scanning
//
// The Scanner type splits an input stream into tokens. String and custom
// object payloads are captured verbatim by their declared length, so their
// contents are never mistaken for grammar:
//
//	s := srl.NewScanner(input)
//	for s.Next() {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Scanning does not fail on malformed input; bytes that are neither markers,
// delimiters, nor numerals are discarded. Err reports only read errors.
//
// # Parsing
//
// Construct a Parser with a Listener and an input, and call its Parse method:
//
//	p := srl.New(listener, input)
//	if err := p.Parse(); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// The listener receives BeginParsing, then the events for a single value,
// then EndParsing. The methods of a listener correspond to the grammar:
//
//	Marker | Methods
//	------ | ----------------------------------------------------------------
//	N      | NullValue
//	b      | BooleanValue
//	i      | IntegerValue
//	d      | DecimalValue
//	R, r   | ArrayReference, ObjectReference
//	s      | StringLength, StringValue
//	a      | ArrayItemsNum, (values), EndArray
//	O      | ObjectNameLength, ObjectName, ObjectPropsNum, (values), EndObject
//	C      | CustomObjectNameLength, CustomObjectName, CustomObjectPropsNum,
//	       | EndCustomObject
//
// In case of error, the listener's SetError method is called once with a
// description of the error and its offset, parsing stops, and EndParsing
// reports false. The same error is returned by Parse, with concrete type
// *srl.SyntaxError. Use errors.Is with ErrTruncated to detect input that
// ended before its value was complete.
//
// The declared counts of arrays and objects are reported but not checked
// against the number of values that follow, and back-references are not
// resolved.
package srl
