// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package config implements the configuration
// of an export run.
//
// A configuration file is a TOML file.
// Here is an example file:
//
//	# export configuration
//	indent = 1
//	gzip = false
//	fields = ["numdate", "clade", "aa_mutations", "attr"]
//
//	[[derived]]
//	field = "clock_length"
//	label = "r3"
//	transform = "round"
//	digits = 3
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/js-arias/phyexport/tree"
	"github.com/js-arias/phyexport/treejson"
)

// DefaultIndent is the indentation
// used for the tree artifact.
const DefaultIndent = 1

// Config is the configuration of an export.
type Config struct {
	// Indentation of the tree artifact.
	Indent int `toml:"indent"`

	// If set, artifacts are compressed with gzip.
	Gzip bool `toml:"gzip"`

	// Fields to export.
	// If empty,
	// the fields of the first metadata record are used.
	Fields []string `toml:"fields"`

	// Derived fields.
	Derived []Derived `toml:"derived"`
}

// Derived is the definition of a derived field.
type Derived struct {
	Field     string `toml:"field"`
	Label     string `toml:"label"`
	Transform string `toml:"transform"`
	Digits    int    `toml:"digits"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Indent: DefaultIndent,
	}
}

// Read reads a configuration file.
// Undefined values are set with the defaults.
func Read(name string) (*Config, error) {
	c := Default()
	md, err := toml.DecodeFile(name, c)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	if un := md.Undecoded(); len(un) > 0 {
		keys := make([]string, 0, len(un))
		for _, k := range un {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("on file %q: unknown keys: %s", name, strings.Join(keys, ", "))
	}
	if c.Indent < 0 {
		return nil, fmt.Errorf("on file %q: invalid indent value %d", name, c.Indent)
	}
	return c, nil
}

// ExportFields returns the fields to be exported.
// If the configuration does not define the fields,
// the given fields,
// plus the attribute map,
// are used.
func (c *Config) ExportFields(fields []string) ([]treejson.Field, error) {
	if len(c.Fields) > 0 {
		fields = c.Fields
	} else {
		fields = slices.Clone(fields)
		if !slices.Contains(fields, tree.AttrField) {
			fields = append(fields, tree.AttrField)
		}
	}

	ls := treejson.Plain(fields...)
	for _, d := range c.Derived {
		if d.Field == "" {
			return nil, fmt.Errorf("derived field without name")
		}
		tr, err := treejson.NewTransform(d.Transform, d.Digits)
		if err != nil {
			return nil, fmt.Errorf("derived field %q: %v", d.Field, err)
		}
		label := d.Label
		if label == "" {
			label = d.Transform
		}
		ls = append(ls, treejson.DerivedField{
			Name:      d.Field,
			Label:     label,
			Transform: tr,
		})
	}
	return ls, nil
}
