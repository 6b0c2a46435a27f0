// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"
	"io"
	"os"

	"github.com/staranto/tcfg/internal/cfgcache"
	"github.com/staranto/tcfg/internal/config"
	"github.com/staranto/tcfg/internal/toolchain"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context

	// Cache answers predicate lookups. Nil means the process-wide cache.
	Cache *cfgcache.Cache
	// Rustc is the toolchain the toolchain command inspects. Nil means the
	// configured default.
	Rustc *toolchain.Rustc
	// Writer receives command output. Nil means stdout.
	Writer io.Writer
}

// PredicateCache returns the cache commands should read from.
func (m Meta) PredicateCache() *cfgcache.Cache {
	if m.Cache != nil {
		return m.Cache
	}
	return cfgcache.Default()
}

// Toolchain returns the rustc commands should inspect.
func (m Meta) Toolchain() *toolchain.Rustc {
	if m.Rustc != nil {
		return m.Rustc
	}
	return toolchain.NewRustc()
}

// Out returns the writer commands should print to.
func (m Meta) Out() io.Writer {
	if m.Writer != nil {
		return m.Writer
	}
	return os.Stdout
}
