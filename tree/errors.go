// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import "fmt"

// MissingMetadataError is returned
// when a node has no metadata record.
type MissingMetadataError struct {
	Node string
}

func (e *MissingMetadataError) Error() string {
	return fmt.Sprintf("node %q: metadata not found", e.Node)
}

// MissingBranchLengthError is returned
// when a node has neither a mutation length
// nor a branch length.
type MissingBranchLengthError struct {
	Node string
}

func (e *MissingBranchLengthError) Error() string {
	return fmt.Sprintf("node %q: undefined branch length", e.Node)
}

// DivergenceComputationError is returned
// when a branch length value is not a number.
type DivergenceComputationError struct {
	Node  string
	Field string
	Value any
}

func (e *DivergenceComputationError) Error() string {
	return fmt.Sprintf("node %q: invalid %s value %v (%T)", e.Node, e.Field, e.Value, e.Value)
}
