// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package config_test

import (
	"os"
	"reflect"
	"testing"

	"github.com/js-arias/phyexport/config"
)

const configData = `# export configuration
indent = 2
gzip = true
fields = ["numdate", "attr"]

[[derived]]
field = "clock_length"
label = "r3"
transform = "round"
digits = 3

[[derived]]
field = "country"
transform = "upper"
`

func writeFile(t testing.TB, name, data string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(data), 0o644); err != nil {
		t.Fatalf("unable to write file %q: %v", name, err)
	}
}

func TestRead(t *testing.T) {
	name := "tmp-config-for-test.toml"
	defer os.Remove(name)
	writeFile(t, name, configData)

	c, err := config.Read(name)
	if err != nil {
		t.Fatalf("read: unexpected error: %v", err)
	}
	if c.Indent != 2 || !c.Gzip {
		t.Errorf("read: indent %d, gzip %v, want 2, true", c.Indent, c.Gzip)
	}

	fields, err := c.ExportFields([]string{"branch_length"})
	if err != nil {
		t.Fatalf("fields: unexpected error: %v", err)
	}
	var keys []string
	for _, f := range fields {
		keys = append(keys, f.Key())
	}
	want := []string{"numdate", "attr", "clock_length:r3", "country:upper"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("fields: got %v, want %v", keys, want)
	}
}

func TestDefault(t *testing.T) {
	c := config.Default()
	if c.Indent != config.DefaultIndent || c.Gzip {
		t.Errorf("default: indent %d, gzip %v", c.Indent, c.Gzip)
	}

	fields, err := c.ExportFields([]string{"branch_length", "numdate"})
	if err != nil {
		t.Fatalf("fields: unexpected error: %v", err)
	}
	var keys []string
	for _, f := range fields {
		keys = append(keys, f.Key())
	}
	want := []string{"branch_length", "numdate", "attr"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("fields: got %v, want %v", keys, want)
	}
}

func TestReadErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key": "indentation = 2\n",
		"negative":    "indent = -1\n",
	}
	name := "tmp-config-error-for-test.toml"
	defer os.Remove(name)
	for n, data := range tests {
		writeFile(t, name, data)
		if _, err := config.Read(name); err == nil {
			t.Errorf("%s: expecting error", n)
		}
	}

	c := config.Default()
	c.Derived = []config.Derived{{Field: "x", Transform: "unknown"}}
	if _, err := c.ExportFields(nil); err == nil {
		t.Errorf("unknown transform: expecting error")
	}
}
