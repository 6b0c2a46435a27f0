// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/tcfg/internal/meta"
)

// StatusRow summarizes the predicate cache population pass.
type StatusRow struct {
	Attempted    int    `json:"attempted"`
	Populated    int    `json:"populated"`
	Failed       int    `json:"failed"`
	SkippedLines int    `json:"skipped_lines"`
	Duration     string `json:"duration"`
	Summary      string `json:"summary"`
}

func fetchStatus(_ context.Context, _ *cli.Command, m meta.Meta) ([]StatusRow, error) {
	stats := m.PredicateCache().Stats()
	return []StatusRow{{
		Attempted:    stats.Attempted,
		Populated:    stats.Populated,
		Failed:       stats.Failed,
		SkippedLines: stats.SkippedLines,
		Duration:     stats.Duration.Round(time.Millisecond).String(),
		Summary: fmt.Sprintf("%s of %s targets available",
			humanize.Comma(int64(stats.Populated)), humanize.Comma(int64(stats.Attempted))),
	}}, nil
}

// StatusCommandBuilder constructs the cli.Command for "status".
func StatusCommandBuilder(meta meta.Meta) *cli.Command {
	runner := &QueryActionRunner[StatusRow]{
		CommandName: "status",
		SchemaType:  reflect.TypeOf(StatusRow{}),
		DefaultAttrs: func(*cli.Command) []string {
			return []string{"attempted", "populated", "failed", "skipped_lines", "duration"}
		},
		FetchFn: fetchStatus,
	}

	qcb := &QueryCommandBuilder{
		Name:      "status",
		Usage:     "populate the predicate cache and report on it",
		UsageText: "tcfg status [options]",
		Meta:      meta,
		Action:    runner.Run,
	}
	return qcb.Build()
}
