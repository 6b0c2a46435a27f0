// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/apex/log"

	"github.com/staranto/tcfg/internal/config"
)

// DefaultRustc is the binary used when neither the config file nor RUSTC
// names one.
const DefaultRustc = "rustc"

// ErrVersionFormat is returned when --version output cannot be understood.
var ErrVersionFormat = errors.New("unrecognized rustc version output")

// QueryError describes a toolchain invocation that started but did not exit
// successfully, or that could not be started at all (Code -1).
type QueryError struct {
	Target string
	Code   int
	Stderr string
	Err    error
}

func (e *QueryError) Error() string {
	msg := fmt.Sprintf("rustc --print=cfg --target %s: exit %d", e.Target, e.Code)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + firstLine(s)
	}
	return msg
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Rustc queries a rustc binary for target cfg predicates.
type Rustc struct {
	Path string
	Dir  string
	Env  []string
}

// NewRustc resolves the rustc binary. Precedence:
//  1. the rustc key of the config file
//  2. the RUSTC env variable
//  3. rustc on PATH
func NewRustc() *Rustc {
	path, _ := config.GetString("rustc", "")
	if path == "" {
		path = os.Getenv("RUSTC")
	}
	if path == "" {
		path = DefaultRustc
	}
	log.Debugf("using rustc: %s", path)
	return &Rustc{Path: path}
}

// Query runs `rustc --print=cfg --target <target>` and returns its stdout
// split into lines. Trailing empty lines are dropped.
func (r *Rustc) Query(ctx context.Context, target string) ([]string, error) {
	args := []string{"--print=cfg", "--target", target}
	res, err := Run(ctx, r.Path, args, r.Env, r.Dir)
	if err != nil {
		return nil, &QueryError{Target: target, Code: res.Code, Stderr: res.Stderr, Err: err}
	}
	return splitLines(res.Stdout), nil
}

// Version runs `rustc --version` and parses the release number.
func (r *Rustc) Version(ctx context.Context) (*semver.Version, error) {
	res, err := Run(ctx, r.Path, []string{"--version"}, r.Env, r.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to run %s --version: %w", r.Path, err)
	}
	return ParseVersion(res.Stdout)
}

// ParseVersion extracts the semantic version from `rustc --version` output,
// e.g. "rustc 1.83.0 (90b35a623 2024-11-26)".
func ParseVersion(out string) (*semver.Version, error) {
	fields := strings.Fields(firstLine(out))
	if len(fields) < 2 || fields[0] != "rustc" {
		return nil, fmt.Errorf("%w: %q", ErrVersionFormat, strings.TrimSpace(out))
	}
	v, err := semver.NewVersion(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVersionFormat, err)
	}
	return v, nil
}

// CheckMinimum reports whether v satisfies ">= minimum". Prerelease and build
// suffixes on v (nightly, beta.N) are ignored, so 1.86.0-nightly meets 1.86.
// An empty minimum always passes.
func CheckMinimum(v *semver.Version, minimum string) (bool, error) {
	if minimum == "" {
		return true, nil
	}
	c, err := semver.NewConstraint(">= " + minimum)
	if err != nil {
		return false, fmt.Errorf("invalid min_rustc %q: %w", minimum, err)
	}
	core := semver.New(v.Major(), v.Minor(), v.Patch(), "", "")
	return c.Check(core), nil
}

func splitLines(s string) []string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
