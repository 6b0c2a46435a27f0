// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package triple

import "fmt"

// Arch is the target CPU architecture.
type Arch int

const (
	X86_64 Arch = iota
	Aarch64
	I686
)

func (a Arch) String() string {
	switch a {
	case X86_64:
		return "x86_64"
	case Aarch64:
		return "aarch64"
	case I686:
		return "i686"
	default:
		return fmt.Sprintf("Arch(%d)", int(a))
	}
}

// Vendor is the target vendor.
type Vendor int

const (
	Unknown Vendor = iota
	Apple
	PC
)

func (v Vendor) String() string {
	switch v {
	case Unknown:
		return "unknown"
	case Apple:
		return "apple"
	case PC:
		return "pc"
	default:
		return fmt.Sprintf("Vendor(%d)", int(v))
	}
}

// OS is the target operating system. Its String form is stable and safe to
// use as a map key or as a command line argument.
type OS int

const (
	Linux OS = iota
	Windows
	Darwin
)

func (o OS) String() string {
	switch o {
	case Linux:
		return "linux"
	case Windows:
		return "windows"
	case Darwin:
		return "darwin"
	default:
		return fmt.Sprintf("OS(%d)", int(o))
	}
}

// ParseOS maps a lowercase OS token back to its OS value.
func ParseOS(s string) (OS, error) {
	for _, o := range []OS{Linux, Windows, Darwin} {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown os %q", s)
}

// Env is the target environment (ABI). EnvNone renders as the empty string
// and is left out of the canonical triple.
type Env int

const (
	GNU Env = iota
	MSVC
	EnvNone
)

func (e Env) String() string {
	switch e {
	case GNU:
		return "gnu"
	case MSVC:
		return "msvc"
	case EnvNone:
		return ""
	default:
		return fmt.Sprintf("Env(%d)", int(e))
	}
}

// Triple identifies a target platform. Triples are comparable and can be used
// directly as map keys.
type Triple struct {
	Arch   Arch
	Vendor Vendor
	OS     OS
	Env    Env
}

// String returns the canonical form, arch-vendor-os[-env].
func (t Triple) String() string {
	if t.Env == EnvNone {
		return t.Arch.String() + "-" + t.Vendor.String() + "-" + t.OS.String()
	}
	return t.Arch.String() + "-" + t.Vendor.String() + "-" + t.OS.String() + "-" + t.Env.String()
}

// MarshalText renders the triple in canonical form for JSON and YAML output.
func (t Triple) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// supported is the registry of first tier toolchain targets. Order is
// significant: population walks it front to back.
var supported = [...]Triple{
	{Aarch64, Apple, Darwin, EnvNone},
	{Aarch64, PC, Windows, MSVC},
	{Aarch64, Unknown, Linux, GNU},
	{I686, PC, Windows, MSVC},
	{I686, Unknown, Linux, GNU},
	{X86_64, PC, Windows, GNU},
	{X86_64, PC, Windows, MSVC},
	{X86_64, Unknown, Linux, GNU},
}

// canonical maps the canonical string of each supported triple to its value.
var canonical = func() map[string]Triple {
	m := make(map[string]Triple, len(supported))
	for _, t := range supported {
		m[t.String()] = t
	}
	return m
}()

// Supported returns the registry of supported triples in declaration order.
// The returned slice is a copy.
func Supported() []Triple {
	out := make([]Triple, len(supported))
	copy(out, supported[:])
	return out
}

// Lookup resolves a canonical triple string against the registry. It does not
// parse arbitrary triples; anything outside the registry is reported as not
// found.
func Lookup(s string) (Triple, bool) {
	t, ok := canonical[s]
	return t, ok
}

// IsSupported reports whether s is the canonical form of a supported triple.
func IsSupported(s string) bool {
	_, ok := canonical[s]
	return ok
}
