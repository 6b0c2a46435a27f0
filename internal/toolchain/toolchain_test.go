// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package toolchain

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRustc writes a shell script that behaves like rustc for --print=cfg and
// --version. It fails for the i686-pc-windows-msvc target.
func fakeRustc(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	script := `#!/bin/sh
if [ "$1" = "--version" ]; then
  echo "rustc 1.83.0 (90b35a623 2024-11-26)"
  exit 0
fi
if [ "$3" = "i686-pc-windows-msvc" ]; then
  echo "error: target not installed" >&2
  exit 1
fi
echo 'debug_assertions'
echo 'target_arch="x86_64"'
echo "target_triple=\"$3\""
echo
`
	path := filepath.Join(t.TempDir(), "rustc")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755)) //nolint:gosec
	return path
}

func TestRun(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	ctx := context.Background()

	res, err := Run(ctx, "sh", []string{"-c", "echo out; echo err >&2"}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
	assert.Equal(t, 0, res.Code)

	res, err = Run(ctx, "sh", []string{"-c", "exit 3"}, nil, "")
	assert.Error(t, err)
	assert.Equal(t, 3, res.Code)

	res, err = Run(ctx, "sh", []string{"-c", "echo $TCFG_TEST_VAR"}, []string{"TCFG_TEST_VAR=hello"}, "")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", res.Stdout)
}

func TestRun_NotFound(t *testing.T) {
	res, err := Run(context.Background(), filepath.Join(t.TempDir(), "no-such-binary"), nil, nil, "")
	assert.Error(t, err)
	assert.Equal(t, -1, res.Code)
}

func TestRustc_Query(t *testing.T) {
	r := &Rustc{Path: fakeRustc(t)}

	lines, err := r.Query(context.Background(), "x86_64-unknown-linux-gnu")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"debug_assertions",
		`target_arch="x86_64"`,
		`target_triple="x86_64-unknown-linux-gnu"`,
	}, lines)

	_, err = r.Query(context.Background(), "i686-pc-windows-msvc")
	require.Error(t, err)
	var qe *QueryError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, 1, qe.Code)
	assert.Equal(t, "i686-pc-windows-msvc", qe.Target)
	assert.Contains(t, err.Error(), "target not installed")
}

func TestRustc_QueryMissingBinary(t *testing.T) {
	r := &Rustc{Path: filepath.Join(t.TempDir(), "rustc")}
	_, err := r.Query(context.Background(), "x86_64-unknown-linux-gnu")
	var qe *QueryError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, -1, qe.Code)
}

func TestRustc_Version(t *testing.T) {
	r := &Rustc{Path: fakeRustc(t)}
	v, err := r.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.83.0", v.String())
}

func TestNewRustc_Env(t *testing.T) {
	t.Setenv("TCFG_CFG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("RUSTC", "/opt/rust/bin/rustc")
	assert.Equal(t, "/opt/rust/bin/rustc", NewRustc().Path)

	t.Setenv("RUSTC", "")
	assert.Equal(t, DefaultRustc, NewRustc().Path)
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    string
		wantErr bool
	}{
		{name: "stable", out: "rustc 1.83.0 (90b35a623 2024-11-26)\n", want: "1.83.0"},
		{name: "nightly", out: "rustc 1.86.0-nightly (abc 2025-01-01)", want: "1.86.0-nightly"},
		{name: "not rustc", out: "cargo 1.83.0", wantErr: true},
		{name: "empty", out: "", wantErr: true},
		{name: "garbage version", out: "rustc banana", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseVersion(tt.out)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrVersionFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestCheckMinimum(t *testing.T) {
	v, err := ParseVersion("rustc 1.83.0 (x)")
	require.NoError(t, err)

	ok, err := CheckMinimum(v, "")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckMinimum(v, "1.80")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckMinimum(v, "1.90.0")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CheckMinimum(v, "not-a-version")
	assert.Error(t, err)
}

func TestCheckMinimum_Prerelease(t *testing.T) {
	tests := []struct {
		out     string
		minimum string
		want    bool
	}{
		{"rustc 1.86.0-nightly (abc123 2025-01-01)", "1.80", true},
		{"rustc 1.86.0-nightly (abc123 2025-01-01)", "1.86.0", true},
		{"rustc 1.86.0-nightly (abc123 2025-01-01)", "1.87", false},
		{"rustc 1.90.0-beta.3 (def456 2025-08-01)", "1.80", true},
		{"rustc 1.90.0-beta.3 (def456 2025-08-01)", "1.91.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.out+" >= "+tt.minimum, func(t *testing.T) {
			v, err := ParseVersion(tt.out)
			require.NoError(t, err)

			ok, err := CheckMinimum(v, tt.minimum)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitLines("a\r\nb\r\n\n"))
	assert.Empty(t, splitLines(""))
	assert.Empty(t, splitLines("\n\n"))
}
