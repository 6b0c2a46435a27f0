// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package toolchain

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
)

// Result is the captured outcome of a finished process. Code is -1 when the
// process could not be started.
type Result struct {
	Stdout string
	Stderr string
	Code   int
}

// Run executes name with args and waits for it to exit. env entries are added
// to the inherited environment and dir, when set, is the working directory.
// A non-nil error means the process failed to start or exited non-zero.
func Run(ctx context.Context, name string, args []string, env []string, dir string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		} else {
			code = -1
		}
	}
	return Result{Stdout: stdout.String(), Stderr: stderr.String(), Code: code}, err
}
