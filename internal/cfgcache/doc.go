// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cfgcache holds the per-target cfg predicates reported by the
// toolchain. The cache is filled once per process by querying every supported
// triple; failed targets are simply absent. Lookups never return errors.
package cfgcache
