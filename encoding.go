// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package srl

import (
	"fmt"
	"strconv"
)

// ParseInt decodes the text of an integer, reference, or length token as
// reported to a Listener.
func ParseInt(text string) (int64, error) { return strconv.ParseInt(text, 10, 64) }

// ParseDecimal decodes the text of a decimal token as reported to a Listener.
func ParseDecimal(text string) (float64, error) { return strconv.ParseFloat(text, 64) }

// ParseBool decodes the text of a Boolean token as reported to a Listener.
func ParseBool(text string) (bool, error) {
	switch text {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, fmt.Errorf("invalid Boolean %q", text)
}
