// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package triple

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriple_String(t *testing.T) {
	tests := []struct {
		name   string
		triple Triple
		want   string
	}{
		{
			name:   "windows msvc",
			triple: Triple{X86_64, PC, Windows, MSVC},
			want:   "x86_64-pc-windows-msvc",
		},
		{
			name:   "darwin without env",
			triple: Triple{Aarch64, Apple, Darwin, EnvNone},
			want:   "aarch64-apple-darwin",
		},
		{
			name:   "linux gnu",
			triple: Triple{I686, Unknown, Linux, GNU},
			want:   "i686-unknown-linux-gnu",
		},
		{
			name:   "triple outside the registry still formats",
			triple: Triple{X86_64, Apple, Linux, EnvNone},
			want:   "x86_64-apple-linux",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.triple.String())
		})
	}
}

func TestTriple_SegmentCount(t *testing.T) {
	for _, arch := range []Arch{X86_64, Aarch64, I686} {
		for _, vendor := range []Vendor{Unknown, Apple, PC} {
			for _, os := range []OS{Linux, Windows, Darwin} {
				for _, env := range []Env{GNU, MSVC, EnvNone} {
					tr := Triple{arch, vendor, os, env}
					s := tr.String()
					if env == EnvNone {
						assert.Equal(t, 2, strings.Count(s, "-"), s)
						continue
					}
					assert.Equal(t, 3, strings.Count(s, "-"), s)
					assert.True(t, strings.HasSuffix(s, "-"+env.String()), s)
				}
			}
		}
	}
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "x86_64", X86_64.String())
	assert.Equal(t, "aarch64", Aarch64.String())
	assert.Equal(t, "i686", I686.String())
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "apple", Apple.String())
	assert.Equal(t, "pc", PC.String())
	assert.Equal(t, "linux", Linux.String())
	assert.Equal(t, "windows", Windows.String())
	assert.Equal(t, "darwin", Darwin.String())
	assert.Equal(t, "gnu", GNU.String())
	assert.Equal(t, "msvc", MSVC.String())
	assert.Equal(t, "", EnvNone.String())
	assert.Equal(t, "OS(9)", OS(9).String())
}

func TestParseOS(t *testing.T) {
	o, err := ParseOS("windows")
	require.NoError(t, err)
	assert.Equal(t, Windows, o)

	_, err = ParseOS("freebsd")
	assert.Error(t, err)
}

func TestSupported(t *testing.T) {
	targets := Supported()
	require.Len(t, targets, 8)

	seen := make(map[Triple]bool, len(targets))
	for _, tr := range targets {
		assert.False(t, seen[tr], "duplicate registry entry %s", tr)
		seen[tr] = true
	}

	assert.Equal(t, "aarch64-apple-darwin", targets[0].String())
	assert.Equal(t, "x86_64-unknown-linux-gnu", targets[len(targets)-1].String())

	// Callers get a copy.
	targets[0] = Triple{X86_64, Apple, Linux, EnvNone}
	assert.Equal(t, "aarch64-apple-darwin", Supported()[0].String())
}

func TestLookup(t *testing.T) {
	for _, tr := range Supported() {
		got, ok := Lookup(tr.String())
		assert.True(t, ok, tr.String())
		assert.Equal(t, tr, got)
		assert.True(t, IsSupported(tr.String()))
	}

	for _, s := range []string{"", "x86_64-apple-linux", "riscv64gc-unknown-linux-gnu", "x86_64-pc-windows-msvc-"} {
		_, ok := Lookup(s)
		assert.False(t, ok, s)
	}
}

func TestTriple_MarshalText(t *testing.T) {
	b, err := json.Marshal(map[string]Triple{"target": {Aarch64, PC, Windows, MSVC}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"target":"aarch64-pc-windows-msvc"}`, string(b))
}

func TestForOS(t *testing.T) {
	names := func(ts []Triple) []string {
		out := make([]string, 0, len(ts))
		for _, t := range ts {
			out = append(out, t.String())
		}
		return out
	}

	assert.Equal(t, []string{
		"aarch64-unknown-linux-gnu",
		"i686-unknown-linux-gnu",
		"x86_64-unknown-linux-gnu",
	}, names(ForOS(Linux)))
	assert.Equal(t, []string{
		"aarch64-pc-windows-msvc",
		"i686-pc-windows-msvc",
		"x86_64-pc-windows-gnu",
		"x86_64-pc-windows-msvc",
	}, names(ForOS(Windows)))
	assert.Equal(t, []string{"aarch64-apple-darwin"}, names(ForOS(Darwin)))
}

func TestOSForGOOS(t *testing.T) {
	o, err := osForGOOS("darwin")
	require.NoError(t, err)
	assert.Equal(t, Darwin, o)

	_, err = osForGOOS("plan9")
	assert.ErrorContains(t, err, "GOOS=plan9")
}

func TestPlatformLabel(t *testing.T) {
	tr := Triple{X86_64, Unknown, Linux, GNU}
	assert.Equal(t, "//platforms:x86_64-unknown-linux-gnu", PlatformLabel(tr, false))
	assert.Equal(t, "//platforms:x86_64-unknown-linux-gnu-cross", PlatformLabel(tr, true))
}
