// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// no-cloc
package driller

import (
	"testing"
)

const linuxRow = `{
	"triple": "x86_64-unknown-linux-gnu",
	"arch": "x86_64",
	"os": "linux",
	"env": "gnu",
	"predicates": [
		{"name": "debug_assertions", "value": "", "has_value": false},
		{"name": "target_arch", "value": "x86_64", "has_value": true},
		{"name": "target_pointer_width", "value": "64", "has_value": true}
	]
}`

func TestDriller(t *testing.T) {
	tests := []struct {
		name        string
		json        string
		path        string
		expectedStr string
		isNil       bool
		isArray     bool
	}{
		{
			name:        "top level key",
			json:        linuxRow,
			path:        "triple",
			expectedStr: "x86_64-unknown-linux-gnu",
		},
		{
			name:        "number value",
			json:        `{"populated": 8}`,
			path:        "populated",
			expectedStr: "8",
		},
		{
			name:        "boolean value",
			json:        `{"has_value": true}`,
			path:        "has_value",
			expectedStr: "true",
		},
		{
			name:  "null value",
			json:  `{"env": null}`,
			path:  "env",
			isNil: true,
		},
		{
			name:        "nested object",
			json:        `{"toolchain": {"rustc": {"version": "1.82.0"}}}`,
			path:        "toolchain.rustc.version",
			expectedStr: "1.82.0",
		},
		{
			name:        "single element array unwraps",
			json:        `{"predicates": ["unix"]}`,
			path:        "predicates",
			expectedStr: "unix",
		},
		{
			name:        "single element array of objects drills through",
			json:        `{"predicates": [{"name": "unix"}]}`,
			path:        "predicates.name",
			expectedStr: "unix",
		},
		{
			name:    "multi element array is returned whole",
			json:    linuxRow,
			path:    "predicates",
			isArray: true,
		},
		{
			name:        "explicit index",
			json:        linuxRow,
			path:        "predicates[1].value",
			expectedStr: "x86_64",
		},
		{
			name:        "last index",
			json:        linuxRow,
			path:        "predicates[2].value",
			expectedStr: "64",
		},
		{
			name:        "explicit index on single element array",
			json:        `{"targets": ["aarch64-apple-darwin"]}`,
			path:        "targets[0]",
			expectedStr: "aarch64-apple-darwin",
		},
		{
			name:        "indexes at several levels",
			json:        `{"hosts": [{"os": "linux", "targets": [{"triple": "i686-unknown-linux-gnu"}, {"triple": "x86_64-unknown-linux-gnu"}]}]}`,
			path:        "hosts[0].targets[1].triple",
			expectedStr: "x86_64-unknown-linux-gnu",
		},
		{
			name:        "key with underscore",
			json:        linuxRow,
			path:        "predicates[0].has_value",
			expectedStr: "false",
		},
		{
			name:        "leading dot is ignored",
			json:        linuxRow,
			path:        ".os",
			expectedStr: "linux",
		},
		{
			name:  "missing key",
			json:  linuxRow,
			path:  "vendor",
			isNil: true,
		},
		{
			name:  "index out of range",
			json:  linuxRow,
			path:  "predicates[10]",
			isNil: true,
		},
		{
			name:  "missing nested key",
			json:  linuxRow,
			path:  "predicates[0].missing",
			isNil: true,
		},
		{
			name:  "missing parent",
			json:  linuxRow,
			path:  "toolchain.rustc.version",
			isNil: true,
		},
		{
			name:  "empty array",
			json:  `{"predicates": []}`,
			path:  "predicates[0]",
			isNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Driller(tt.json, tt.path)

			if tt.isNil {
				if result.Exists() && result.Type.String() != "Null" {
					t.Errorf("Expected nil/empty result but got: %v", result.Value())
				}
				return
			}

			if !result.Exists() {
				t.Errorf("Expected result but got nil/empty")
				return
			}

			if tt.isArray {
				if !result.IsArray() {
					t.Errorf("Expected array but got: %v (type: %T)", result.Value(), result.Value())
				}
				return
			}

			if val := result.String(); val != tt.expectedStr {
				t.Errorf("Expected %q but got %q", tt.expectedStr, val)
			}
		})
	}
}

func BenchmarkDriller(b *testing.B) {
	paths := []string{"triple", "predicates[1].value", "predicates"}
	for _, path := range paths {
		b.Run(path, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				Driller(linuxRow, path)
			}
		})
	}
}
