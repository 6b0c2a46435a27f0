// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// tcfg is the main package for the tcfg command line tool. It lists the
// supported target triples and the cfg predicates rustc reports for each,
// wiring the CLI and delegating to internal packages.
package main
