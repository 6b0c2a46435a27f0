// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package triple models the target platforms tcfg knows about. A Triple is a
// comparable value of architecture, vendor, operating system and environment
// that renders to the canonical dash-separated form used by the toolchain.
package triple
