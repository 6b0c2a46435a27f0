// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package triple

import (
	"fmt"
	"runtime"
)

// platformPrefix is the build system package that holds one platform target
// per supported triple.
const platformPrefix = "//platforms:"

// HostOS returns the OS group of the running host.
func HostOS() (OS, error) {
	return osForGOOS(runtime.GOOS)
}

func osForGOOS(goos string) (OS, error) {
	switch goos {
	case "linux":
		return Linux, nil
	case "darwin":
		return Darwin, nil
	case "windows":
		return Windows, nil
	default:
		return 0, fmt.Errorf("unable to detect host os group for GOOS=%s", goos)
	}
}

// ForOS returns the supported triples for the given OS, in registry order.
// This is the set of targets a host of that OS builds for in a multi-platform
// run.
func ForOS(o OS) []Triple {
	var out []Triple
	for _, t := range supported {
		if t.OS == o {
			out = append(out, t)
		}
	}
	return out
}

// PlatformLabel returns the build platform label for t. Cross labels select
// the containerised cross toolchain variant of the platform.
func PlatformLabel(t Triple, cross bool) string {
	label := platformPrefix + t.String()
	if cross {
		label += "-cross"
	}
	return label
}
