// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cfg parses the configuration predicates a toolchain prints for a
// target, either a bare name (unix) or a name with a quoted value
// (target_os="linux").
package cfg

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmpty        = errors.New("empty predicate")
	ErrInvalidName  = errors.New("invalid predicate name")
	ErrInvalidValue = errors.New("invalid predicate value")
)

// Predicate is a single cfg entry reported by the toolchain.
type Predicate struct {
	Name     string `json:"name" yaml:"name"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty"`
	HasValue bool   `json:"-" yaml:"-"`
}

// String renders the predicate the way the toolchain prints it.
func (p Predicate) String() string {
	if !p.HasValue {
		return p.Name
	}
	return p.Name + `="` + p.Value + `"`
}

// Parse parses one line of toolchain output.
func Parse(line string) (Predicate, error) {
	s := strings.TrimSpace(line)
	if s == "" {
		return Predicate{}, ErrEmpty
	}

	name, value, found := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !isIdent(name) {
		return Predicate{}, fmt.Errorf("%w: %q", ErrInvalidName, line)
	}
	if !found {
		return Predicate{Name: name}, nil
	}

	value = strings.TrimSpace(value)
	if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return Predicate{}, fmt.Errorf("%w: %q", ErrInvalidValue, line)
	}
	value = value[1 : len(value)-1]
	if strings.ContainsRune(value, '"') {
		return Predicate{}, fmt.Errorf("%w: %q", ErrInvalidValue, line)
	}

	return Predicate{Name: name, Value: value, HasValue: true}, nil
}

// ParseOutput parses toolchain stdout, one predicate per line. Blank lines are
// ignored. Lines that fail to parse are left out of the result and their
// errors returned alongside it.
func ParseOutput(stdout string) ([]Predicate, []error) {
	preds := make([]Predicate, 0)
	var errs []error
	for _, line := range strings.Split(stdout, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, err := Parse(line)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		preds = append(preds, p)
	}
	return preds, errs
}

// Values returns every value reported for name, in order. Bare predicates
// contribute nothing.
func Values(preds []Predicate, name string) []string {
	var out []string
	for _, p := range preds {
		if p.Name == name && p.HasValue {
			out = append(out, p.Value)
		}
	}
	return out
}

// Has reports whether preds contains name, or name="value" when value is not
// empty.
func Has(preds []Predicate, name, value string) bool {
	for _, p := range preds {
		if p.Name != name {
			continue
		}
		if value == "" || (p.HasValue && p.Value == value) {
			return true
		}
	}
	return false
}

// isIdent reports whether s is [A-Za-z_][A-Za-z0-9_]*.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
