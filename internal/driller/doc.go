// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package driller walks the JSON rows built for triples and cfg predicates
// and pulls out the value an --attrs or --filter path names.
package driller
