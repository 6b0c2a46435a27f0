// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cfgcache

import (
	"sync"

	"github.com/staranto/tcfg/internal/cfg"
	"github.com/staranto/tcfg/internal/toolchain"
)

var (
	defaultCache *Cache
	defaultOnce  sync.Once
)

// Default returns the process-wide cache, backed by the configured rustc.
func Default() *Cache {
	defaultOnce.Do(func() {
		defaultCache = New(toolchain.NewRustc())
	})
	return defaultCache
}

// Get looks up target in the process-wide cache.
func Get(target string) ([]cfg.Predicate, bool) {
	return Default().Get(target)
}
