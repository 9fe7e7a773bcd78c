// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import (
	"strings"
)

// Names of the core fields.
const (
	BranchLength   = "branch_length"
	MutationLength = "mutation_length"
	ClockLength    = "clock_length"
	Clade          = "clade"
	NumDate        = "numdate"
)

// DivKey is the attribute key
// used to store the divergence of a node.
const DivKey = "div"

// AttrField is the field name
// used to access the generic attribute map.
const AttrField = "attr"

// Core stores the core fields of a node.
// A nil value indicates an undefined field.
type Core struct {
	BranchLength   any
	MutationLength any
	ClockLength    any
	Clade          any
	NumDate        any

	// Mutations stores the fields
	// whose name contains "mutations".
	Mutations map[string]string
}

// IsCore returns true if the field name
// is the name of a core field.
func IsCore(field string) bool {
	if IsMutation(field) {
		return true
	}
	switch field {
	case BranchLength, MutationLength, ClockLength, Clade, NumDate:
		return true
	}
	return false
}

// IsMutation returns true if the field name
// is the name of a mutation list field.
func IsMutation(field string) bool {
	return strings.Contains(field, "mutations")
}

// Set sets the value of a core field.
// A field with "mutations" in its name
// is stored as a string
// (an empty string if the value is not a string).
// It returns false if field is not a core field.
func (c *Core) Set(field string, v any) bool {
	if IsMutation(field) {
		s, _ := v.(string)
		if c.Mutations == nil {
			c.Mutations = make(map[string]string)
		}
		c.Mutations[field] = s
		return true
	}

	switch field {
	case BranchLength:
		c.BranchLength = v
	case MutationLength:
		c.MutationLength = v
	case ClockLength:
		c.ClockLength = v
	case Clade:
		c.Clade = v
	case NumDate:
		c.NumDate = v
	default:
		return false
	}
	return true
}

// Get returns the value of a core field.
func (c *Core) Get(field string) (any, bool) {
	if IsMutation(field) {
		s, ok := c.Mutations[field]
		return s, ok
	}

	var v any
	switch field {
	case BranchLength:
		v = c.BranchLength
	case MutationLength:
		v = c.MutationLength
	case ClockLength:
		v = c.ClockLength
	case Clade:
		v = c.Clade
	case NumDate:
		v = c.NumDate
	}
	return v, v != nil
}

// Get returns the value of a field of the node.
// Core fields are read from the core record,
// and the "attr" field returns the generic attribute map.
// Generic attributes are only accessible
// through the attribute map.
func (n *Node) Get(field string) (any, bool) {
	if field == AttrField {
		return n.Attr, n.Attr != nil
	}
	return n.Core.Get(field)
}

// Numeric returns the value as a float64
// if it is a number.
func Numeric(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	case uint32:
		return float64(x), true
	}
	return 0, false
}
