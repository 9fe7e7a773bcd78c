// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package jsonfile writes JSON artifacts into files.
package jsonfile

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Options for writing a JSON file.
type Options struct {
	// Number of spaces used for indentation.
	// If 0, the JSON is written
	// without white spaces.
	Indent int

	// If set, the file is compressed
	// with gzip.
	Gzip bool
}

// Name returns the name of the file
// that will be written with the given options.
func (o Options) Name(name string) string {
	if o.Gzip && !strings.HasSuffix(name, ".gz") {
		return name + ".gz"
	}
	return name
}

// Encode writes v as JSON into w.
func Encode(w io.Writer, v any, indent int) error {
	enc := json.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	return enc.Encode(v)
}

// Write writes v as JSON
// into a file,
// and returns the name of the written file.
func Write(name string, v any, opt Options) (_ string, err error) {
	name = opt.Name(name)
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	var w io.Writer = bw
	var gw *gzip.Writer
	if opt.Gzip {
		gw = gzip.NewWriter(bw)
		w = gw
	}

	if err := Encode(w, v, opt.Indent); err != nil {
		return "", fmt.Errorf("while writing %q: %v", name, err)
	}
	if gw != nil {
		if err := gw.Close(); err != nil {
			return "", fmt.Errorf("while writing %q: %v", name, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return "", fmt.Errorf("while writing %q: %v", name, err)
	}
	return name, nil
}
