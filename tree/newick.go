// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadNewick reads the first tree
// of a newick file.
//
// Children are kept in input order,
// and labels of internal nodes
// are used as node names.
// Branch lengths are stored,
// as given,
// as the default branch length of each node.
// Quoted labels and bracket comments are supported,
// and the final semicolon is optional.
func ReadNewick(r io.Reader) (*Tree, error) {
	nr := &newickReader{r: bufio.NewReader(r)}
	t, err := nr.read()
	if err != nil {
		return nil, fmt.Errorf("on line %d: %v", nr.line, err)
	}
	return t, nil
}

type newickReader struct {
	r    *bufio.Reader
	line int
}

func (nr *newickReader) read() (*Tree, error) {
	nr.line = 1
	c, err := nr.skip()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty tree")
	}
	if err != nil {
		return nil, err
	}
	nr.r.UnreadRune()

	t := New("")
	if err := nr.node(t, t.root); err != nil {
		return nil, err
	}

	c, err = nr.skip()
	if errors.Is(err, io.EOF) {
		return t, nil
	}
	if err != nil {
		return nil, err
	}
	if c != ';' {
		return nil, fmt.Errorf("unexpected character %q", c)
	}
	return t, nil
}

// node reads a node,
// and its descendants,
// into n.
func (nr *newickReader) node(t *Tree, n *Node) error {
	c, err := nr.skip()
	if err != nil {
		return unexpectedEOF(err)
	}

	if c == '(' {
		for {
			child := t.Add(n, "")
			if err := nr.node(t, child); err != nil {
				return err
			}
			c, err = nr.skip()
			if err != nil {
				return unexpectedEOF(err)
			}
			if c == ')' {
				break
			}
			if c != ',' {
				return fmt.Errorf("unexpected character %q", c)
			}
		}
	} else {
		nr.r.UnreadRune()
	}

	name, err := nr.label()
	if err != nil {
		return err
	}
	n.Name = name

	c, err = nr.skip()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}
	if c != ':' {
		nr.r.UnreadRune()
		return nil
	}
	v, err := nr.label()
	if err != nil {
		return err
	}
	bl, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("node %q: invalid branch length %q", n.Key(), v)
	}
	n.Core.BranchLength = bl
	return nil
}

// label reads a label,
// either quoted or unquoted.
func (nr *newickReader) label() (string, error) {
	c, err := nr.skip()
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if c == '\'' {
		for {
			c, _, err := nr.r.ReadRune()
			if err != nil {
				return "", unexpectedEOF(err)
			}
			if c == '\'' {
				next, _, err := nr.r.ReadRune()
				if err == nil && next == '\'' {
					b.WriteRune('\'')
					continue
				}
				if err == nil {
					nr.r.UnreadRune()
				}
				return b.String(), nil
			}
			if c == '\n' {
				nr.line++
			}
			b.WriteRune(c)
		}
	}

	for {
		if strings.ContainsRune("(),:;[", c) || isSpace(c) {
			nr.r.UnreadRune()
			return b.String(), nil
		}
		b.WriteRune(c)
		c, _, err = nr.r.ReadRune()
		if errors.Is(err, io.EOF) {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}
	}
}

// skip returns the next character
// that is not a space
// or part of a comment.
func (nr *newickReader) skip() (rune, error) {
	for {
		c, _, err := nr.r.ReadRune()
		if err != nil {
			return 0, err
		}
		if c == '\n' {
			nr.line++
		}
		if isSpace(c) {
			continue
		}
		if c != '[' {
			return c, nil
		}
		for c != ']' {
			c, _, err = nr.r.ReadRune()
			if err != nil {
				return 0, unexpectedEOF(err)
			}
			if c == '\n' {
				nr.line++
			}
		}
	}
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
