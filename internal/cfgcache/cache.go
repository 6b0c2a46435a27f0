// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cfgcache

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"

	"github.com/staranto/tcfg/internal/cfg"
	"github.com/staranto/tcfg/internal/triple"
)

// Querier asks a toolchain for the cfg predicates of one target. It returns
// the raw output lines, or an error when the toolchain could not be started or
// exited unsuccessfully.
type Querier interface {
	Query(ctx context.Context, target string) ([]string, error)
}

// QuerierFunc adapts a function to the Querier interface.
type QuerierFunc func(ctx context.Context, target string) ([]string, error)

func (f QuerierFunc) Query(ctx context.Context, target string) ([]string, error) {
	return f(ctx, target)
}

type state int

const (
	stateUninitialized state = iota
	statePopulated
)

// Stats describes the population pass.
type Stats struct {
	Attempted    int
	Populated    int
	Failed       int
	SkippedLines int
	Duration     time.Duration
}

// Cache maps canonical triple strings to the predicates the toolchain
// reported for them. It is populated once, on first use, by querying every
// supported triple in registry order, and never refreshed afterwards.
type Cache struct {
	querier Querier

	once    sync.Once
	mu      sync.RWMutex
	state   state
	entries map[string][]cfg.Predicate
	stats   Stats
}

// New creates an unpopulated cache backed by q.
func New(q Querier) *Cache {
	return &Cache{querier: q}
}

// Get returns the predicates for target. The first call on a cache runs the
// population pass; concurrent first callers wait for it to finish. The second
// return value is false when target is not supported or its query failed.
func (c *Cache) Get(target string) ([]cfg.Predicate, bool) {
	c.Populate()

	c.mu.RLock()
	defer c.mu.RUnlock()
	preds, ok := c.entries[target]
	if !ok {
		return nil, false
	}
	return slices.Clone(preds), true
}

// Populate runs the population pass if it has not run yet and waits for it
// to complete. It is safe to call any number of times.
func (c *Cache) Populate() {
	c.once.Do(c.populate)
}

// Populated reports whether the population pass has completed. It never
// triggers population.
func (c *Cache) Populated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state == statePopulated
}

// Targets returns the triples that have an entry, in registry order.
func (c *Cache) Targets() []string {
	c.Populate()

	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []string
	for _, t := range triple.Supported() {
		if _, ok := c.entries[t.String()]; ok {
			out = append(out, t.String())
		}
	}
	return out
}

// Stats returns population statistics, running population first if needed.
func (c *Cache) Stats() Stats {
	c.Populate()

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// populate builds the full map before publishing it, so no reader ever sees
// a partial result.
func (c *Cache) populate() {
	ctx := context.Background()
	start := time.Now()

	targets := triple.Supported()
	entries := make(map[string][]cfg.Predicate, len(targets))
	var stats Stats

	for _, t := range targets {
		target := t.String()
		logger := log.WithField("target", target)
		stats.Attempted++

		lines, err := c.querier.Query(ctx, target)
		if err != nil {
			logger.WithError(err).Debug("toolchain query failed, skipping target")
			stats.Failed++
			continue
		}

		preds, errs := cfg.ParseOutput(strings.Join(lines, "\n"))
		for _, perr := range errs {
			logger.WithError(perr).Warn("skipping malformed cfg line")
		}
		stats.SkippedLines += len(errs)

		entries[target] = preds
		stats.Populated++
		logger.Debugf("cached %s predicates", humanize.Comma(int64(len(preds))))
	}
	stats.Duration = time.Since(start)

	c.mu.Lock()
	c.entries = entries
	c.stats = stats
	c.state = statePopulated
	c.mu.Unlock()

	log.Debugf("populated %d of %d targets in %s", stats.Populated, stats.Attempted, stats.Duration)
}
