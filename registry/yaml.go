/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/suparena/entitymeta/errors"
	"gopkg.in/yaml.v3"
)

// MappingFile is the YAML form of a type mapping:
//
//	replace: false
//	collections: true
//	types:
//	  int32: varint
//	  time.Time: timestamp
type MappingFile struct {
	Replace     bool              `yaml:"replace,omitempty"`
	Collections *bool             `yaml:"collections,omitempty"`
	Types       map[string]string `yaml:"types"`
}

var typeNameAliases = map[string]string{
	"[]byte": "[]uint8",
	"byte":   "uint8",
	"rune":   "int32",
}

// TypeByName finds a host type by its reflect name (e.g. "int32", "uuid.UUID",
// "*big.Int") among the types currently mapped and the built-in defaults.
// An exact match wins over a case-insensitive one.
func (r *TypeRegistry) TypeByName(name string) (reflect.Type, bool) {
	if alias, ok := typeNameAliases[strings.ToLower(name)]; ok {
		name = alias
	}

	known := DefaultMapping()
	for t, ct := range r.Mapping() {
		known[t] = ct
	}

	var folded reflect.Type
	for t := range known {
		switch {
		case t.String() == name:
			return t, true
		case folded == nil && strings.EqualFold(t.String(), name):
			folded = t
		}
	}
	return folded, folded != nil
}

// ApplyNames applies a mapping keyed by host type name. With replace set the
// resulting table contains exactly the named entries; otherwise each entry is an
// override. Nothing is applied if any entry is invalid.
func (r *TypeRegistry) ApplyNames(names map[string]string, replace bool) error {
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	resolved := make(map[reflect.Type]ColumnType, len(names))
	var errs []error
	for _, name := range keys {
		t, ok := r.TypeByName(name)
		if !ok {
			errs = append(errs, errors.NewConfigError(name, names[name], errors.ErrUnknownHostType))
			continue
		}
		ct, err := ParseColumnType(names[name])
		if err != nil {
			errs = append(errs, errors.NewConfigError(name, names[name], errors.ErrUnknownColumnType))
			continue
		}
		resolved[t] = ct
	}
	if len(errs) > 0 {
		return stderrors.Join(errs...)
	}

	if replace {
		r.ReplaceAll(resolved)
		return nil
	}
	for t, ct := range resolved {
		r.Override(t, ct)
	}
	return nil
}

// LoadYAML reads a MappingFile from rd and applies it.
func (r *TypeRegistry) LoadYAML(rd io.Reader) error {
	var mf MappingFile
	if err := yaml.NewDecoder(rd).Decode(&mf); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode type mapping: %w", err)
	}
	if err := r.ApplyNames(mf.Types, mf.Replace); err != nil {
		return err
	}
	if mf.Collections != nil {
		r.SetCollectionRules(*mf.Collections)
	}
	return nil
}

// LoadYAMLFile reads and applies the mapping file at path.
func (r *TypeRegistry) LoadYAMLFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open type mapping %s: %w", path, err)
	}
	defer f.Close()

	return r.LoadYAML(f)
}

// DumpYAML writes the current mapping as a MappingFile.
func (r *TypeRegistry) DumpYAML(w io.Writer) error {
	mapping := r.Mapping()
	mf := MappingFile{Types: make(map[string]string, len(mapping))}
	for t, ct := range mapping {
		mf.Types[t.String()] = ct.String()
	}
	if !r.CollectionRules() {
		off := false
		mf.Collections = &off
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(mf); err != nil {
		return fmt.Errorf("failed to encode type mapping: %w", err)
	}
	return enc.Close()
}
