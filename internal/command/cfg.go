// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/staranto/tcfg/internal/meta"
)

// PredicateRow is one cfg predicate of a target.
type PredicateRow struct {
	Target   string `json:"target"`
	Name     string `json:"name"`
	Value    string `json:"value"`
	HasValue bool   `json:"has_value"`
	Cfg      string `json:"cfg"`
}

// targetArg returns the single TRIPLE argument of cmd.
func targetArg(cmd *cli.Command) (string, error) {
	args := cmd.Args().Slice()
	if len(args) != 1 {
		return "", errors.New("exactly one TRIPLE argument is required")
	}
	if err := TripleValidator(args[0]); err != nil {
		return "", err
	}
	return args[0], nil
}

func fetchPredicates(_ context.Context, cmd *cli.Command, m meta.Meta) ([]PredicateRow, error) {
	target, err := targetArg(cmd)
	if err != nil {
		return nil, err
	}

	preds, ok := m.PredicateCache().Get(target)
	if !ok {
		return nil, fmt.Errorf("%w: %s (is the target installed? try rustup target add %s)",
			ErrUnavailableTarget, target, target)
	}

	keys := cmd.StringSlice("key")
	rows := make([]PredicateRow, 0, len(preds))
	for _, p := range preds {
		if len(keys) > 0 && !slices.Contains(keys, p.Name) {
			continue
		}
		rows = append(rows, PredicateRow{
			Target:   target,
			Name:     p.Name,
			Value:    p.Value,
			HasValue: p.HasValue,
			Cfg:      p.String(),
		})
	}
	return rows, nil
}

// CfgCommandBuilder constructs the cli.Command for "cfg".
func CfgCommandBuilder(meta meta.Meta) *cli.Command {
	runner := &QueryActionRunner[PredicateRow]{
		CommandName: "cfg",
		SchemaType:  reflect.TypeOf(PredicateRow{}),
		DefaultAttrs: func(*cli.Command) []string {
			return []string{"name", "value", "cfg", "!target"}
		},
		FetchFn: fetchPredicates,
	}

	qcb := &QueryCommandBuilder{
		Name:      "cfg",
		Usage:     "list the cfg predicates of a target",
		UsageText: "tcfg cfg [--key NAME]... [options] TRIPLE",
		ArgsUsage: "TRIPLE",
		Meta:      meta,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "key",
				Aliases: []string{"k"},
				Usage:   "only predicates named NAME (repeatable)",
			},
		},
		Action: runner.Run,
	}
	return qcb.Build()
}
