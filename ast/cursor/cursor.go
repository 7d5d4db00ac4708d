// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor navigates the structure of an SRL value.
//
// A path is a sequence of elements, each of which takes one step from the
// current value to a value inside it:
//
//	string    the value of the first entry whose key text matches
//	int       the value of the entry at that position (negative from the end)
//	func      the result of calling the function on the current value
//	nil       no step
//
// Entries are the key/value pairs of an ast.Array or the properties of an
// *ast.Object. Other values have no entries.
package cursor

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/srl/ast"
)

// A Func computes a step from the current value.
type Func = func(ast.Value) (ast.Value, error)

// Path follows path from v and returns the value it reaches, which must have
// type T.
func Path[T ast.Value](v ast.Value, path ...any) (T, error) {
	var zero T
	c := New(v).Down(path...)
	if err := c.Err(); err != nil {
		return zero, err
	}
	out, ok := c.Value().(T)
	if !ok {
		return zero, fmt.Errorf("%s: got %T, want %T", c.where(), c.Value(), zero)
	}
	return out, nil
}

// ParsePath parses a comma-separated path. An element of the form #n, where
// n is a decimal integer, is a position; any other element is a key.
//
//	"list,#0,name"  =>  []any{"list", 0, "name"}
func ParsePath(s string) []any {
	if s == "" {
		return nil
	}
	var path []any
	for _, elt := range strings.Split(s, ",") {
		if rest, ok := strings.CutPrefix(elt, "#"); ok {
			if n, err := strconv.Atoi(rest); err == nil {
				path = append(path, n)
				continue
			}
		}
		path = append(path, elt)
	}
	return path
}

// A step records one move of a cursor.
type step struct {
	label string
	value ast.Value
}

// A Cursor tracks a position inside an SRL value, together with the steps
// that led there from the root.
type Cursor struct {
	root  ast.Value
	steps []step
	err   error
}

// New constructs a Cursor positioned at root.
func New(root ast.Value) *Cursor { return &Cursor{root: root} }

// Root returns the value at which c started.
func (c *Cursor) Root() ast.Value { return c.root }

// Depth reports the number of steps between the root and the current value.
func (c *Cursor) Depth() int { return len(c.steps) }

// Value returns the current value of c.
func (c *Cursor) Value() ast.Value {
	if n := len(c.steps); n > 0 {
		return c.steps[n-1].value
	}
	return c.root
}

// Labels returns a description of each step taken from the root: the key of
// a key step, "#n" for a position, and "()" for a function.
func (c *Cursor) Labels() []string {
	out := make([]string, len(c.steps))
	for i, s := range c.steps {
		out[i] = s.label
	}
	return out
}

// Err reports the error that stopped the most recent call to Down, or nil.
func (c *Cursor) Err() error { return c.err }

// Back retracts the most recent step, if any, and returns c.
func (c *Cursor) Back() *Cursor {
	if n := len(c.steps); n > 0 {
		c.steps = c.steps[:n-1]
	}
	return c
}

// Rewind returns c to its root and clears its error.
func (c *Cursor) Rewind() { c.steps, c.err = c.steps[:0], nil }

// Down follows path from the current value and returns c. If an element of
// the path cannot be followed, Down stops at the last value it reached and
// records an error, which Err reports.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	for _, elt := range path {
		cur := c.Value()
		switch t := elt.(type) {
		case nil:
			continue

		case string:
			es, ok := entriesOf(cur)
			if !ok {
				return c.fail("cannot look up key %q in %T", t, cur)
			}
			i := slices.IndexFunc(es, func(e *ast.Entry) bool { return e.KeyText() == t })
			if i < 0 {
				return c.fail("key %q not found", t)
			}
			c.steps = append(c.steps, step{label: t, value: es[i].Value})

		case int:
			es, ok := entriesOf(cur)
			if !ok {
				return c.fail("cannot index %T", cur)
			}
			i := t
			if i < 0 {
				i += len(es)
			}
			if i < 0 || i >= len(es) {
				return c.fail("position %d out of range for %d entries", t, len(es))
			}
			c.steps = append(c.steps, step{label: "#" + strconv.Itoa(t), value: es[i].Value})

		case Func:
			next, err := t(cur)
			if err != nil {
				c.err = fmt.Errorf("%s: %w", c.where(), err)
				return c
			}
			c.steps = append(c.steps, step{label: "()", value: next})

		default:
			return c.fail("unsupported path element %T", elt)
		}
	}
	return c
}

// where describes the current position for error messages.
func (c *Cursor) where() string {
	if len(c.steps) == 0 {
		return "at root"
	}
	return "at " + strings.Join(c.Labels(), ",")
}

func (c *Cursor) fail(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf("%s: %s", c.where(), fmt.Sprintf(msg, args...))
	return c
}

func entriesOf(v ast.Value) ([]*ast.Entry, bool) {
	switch t := v.(type) {
	case ast.Array:
		return t, true
	case *ast.Object:
		return t.Props, true
	}
	return nil, false
}
