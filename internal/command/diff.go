// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/staranto/tcfg/internal/cfg"
	"github.com/staranto/tcfg/internal/meta"
	"github.com/staranto/tcfg/internal/output"
)

// predicateDocument folds a predicate set into a JSON-like object. Name-only
// predicates map to true, single values to the value and repeated names
// (target_feature, target_family) to a sorted list.
func predicateDocument(preds []cfg.Predicate) map[string]interface{} {
	values := make(map[string][]string)
	var order []string
	for _, p := range preds {
		if _, seen := values[p.Name]; !seen {
			order = append(order, p.Name)
			values[p.Name] = nil
		}
		if p.HasValue {
			values[p.Name] = append(values[p.Name], p.Value)
		}
	}

	doc := make(map[string]interface{}, len(order))
	for _, name := range order {
		vs := values[name]
		switch len(vs) {
		case 0:
			doc[name] = true
		case 1:
			doc[name] = vs[0]
		default:
			sort.Strings(vs)
			list := make([]interface{}, len(vs))
			for i, v := range vs {
				list[i] = v
			}
			doc[name] = list
		}
	}
	return doc
}

// DiffPredicates compares the predicate sets of two targets and writes the
// result to w, as an annotated document (text) or a jsondiffpatch delta
// (json). It reports whether the sets differ.
func DiffPredicates(w io.Writer, left, right []cfg.Predicate, format string, color bool) (bool, error) {
	l := predicateDocument(left)
	r := predicateDocument(right)

	d := gojsondiff.New().CompareObjects(l, r)

	var (
		out string
		err error
	)
	switch format {
	case "json":
		out, err = formatter.NewDeltaFormatter().Format(d)
	default:
		f := formatter.NewAsciiFormatter(l, formatter.AsciiFormatterConfig{
			ShowArrayIndex: false,
			Coloring:       color,
		})
		out, err = f.Format(d)
	}
	if err != nil {
		return false, fmt.Errorf("failed to format diff: %w", err)
	}

	if _, err := io.WriteString(w, out); err != nil {
		return false, err
	}
	return d.Modified(), nil
}

// DiffCommandAction is the action handler for the "diff" subcommand.
func DiffCommandAction(_ context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	w := m.Out()

	args := cmd.Args().Slice()
	if len(args) != 2 {
		return errors.New("exactly two TRIPLE arguments are required")
	}

	sets := make([][]cfg.Predicate, 2)
	for i, target := range args {
		if err := TripleValidator(target); err != nil {
			return err
		}
		preds, ok := m.PredicateCache().Get(target)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnavailableTarget, target)
		}
		sets[i] = preds
	}

	color := cmd.Bool("color") && output.IsTerminal(w)
	modified, err := DiffPredicates(w, sets[0], sets[1], cmd.String("output"), color)
	if err != nil {
		return err
	}
	log.WithField("left", args[0]).WithField("right", args[1]).Debugf("modified: %v", modified)
	return nil
}

// DiffCommandBuilder constructs the cli.Command for "diff".
func DiffCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "compare the cfg predicates of two targets",
		UsageText: "tcfg diff [options] TRIPLE TRIPLE",
		ArgsUsage: "TRIPLE TRIPLE",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.BoolWithInverseFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "enable colored diff output",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "diff format (text, json)",
				Value:   "text",
				Validator: func(value string) error {
					if value != "text" && value != "json" {
						return fmt.Errorf("must be one of [text json]")
					}
					return nil
				},
			},
		},
		Action: DiffCommandAction,
	}
}
