// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/tcfg/internal/meta"
	"github.com/staranto/tcfg/internal/triple"
)

// TargetRow is one supported triple as emitted by the targets command.
type TargetRow struct {
	Triple     string `json:"triple"`
	Arch       string `json:"arch"`
	Vendor     string `json:"vendor"`
	OS         string `json:"os"`
	Env        string `json:"env"`
	Label      string `json:"label"`
	Host       bool   `json:"host"`
	Available  bool   `json:"available"`
	Predicates int    `json:"predicates"`
}

func targetDefaultAttrs(cmd *cli.Command) []string {
	defaults := []string{"triple", "arch", "vendor", "os", "env", "label"}
	if cmd.Bool("probe") {
		defaults = append(defaults, "available", "predicates")
	}
	return defaults
}

// fetchTargets lists the registry, narrowed by --host or --os. The predicate
// cache is only consulted, and so only populated, with --probe.
func fetchTargets(_ context.Context, cmd *cli.Command, m meta.Meta) ([]TargetRow, error) {
	host, hostErr := triple.HostOS()

	var targets []triple.Triple
	switch {
	case cmd.Bool("host"):
		if hostErr != nil {
			return nil, hostErr
		}
		targets = triple.ForOS(host)
	case cmd.String("os") != "":
		o, err := triple.ParseOS(cmd.String("os"))
		if err != nil {
			return nil, err
		}
		targets = triple.ForOS(o)
	default:
		targets = triple.Supported()
	}

	probe := cmd.Bool("probe")
	cross := cmd.Bool("cross")

	rows := make([]TargetRow, 0, len(targets))
	for _, t := range targets {
		row := TargetRow{
			Triple: t.String(),
			Arch:   t.Arch.String(),
			Vendor: t.Vendor.String(),
			OS:     t.OS.String(),
			Env:    t.Env.String(),
			Label:  triple.PlatformLabel(t, cross),
			Host:   hostErr == nil && t.OS == host,
		}
		if probe {
			preds, ok := m.PredicateCache().Get(row.Triple)
			row.Available = ok
			row.Predicates = len(preds)
		}
		rows = append(rows, row)
	}

	log.Debugf("targets: %d", len(rows))
	return rows, nil
}

// TargetsCommandBuilder constructs the cli.Command for "targets".
func TargetsCommandBuilder(meta meta.Meta) *cli.Command {
	runner := &QueryActionRunner[TargetRow]{
		CommandName:  "targets",
		SchemaType:   reflect.TypeOf(TargetRow{}),
		DefaultAttrs: targetDefaultAttrs,
		FetchFn:      fetchTargets,
	}

	qcb := &QueryCommandBuilder{
		Name:      "targets",
		Usage:     "list supported target triples",
		UsageText: "tcfg targets [--host | --os OS] [--probe] [--cross] [options]",
		Meta:      meta,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "host",
				Usage: "only targets built by this host's OS group",
			},
			&cli.StringFlag{
				Name:  "os",
				Usage: "only targets for OS (linux, windows, darwin)",
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator, OSValidator)
				},
			},
			&cli.BoolFlag{
				Name:    "probe",
				Aliases: []string{"p"},
				Usage:   "query the toolchain and report which targets are available",
			},
			&cli.BoolFlag{
				Name:  "cross",
				Usage: "use the cross toolchain platform labels",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Bool("host") && c.String("os") != "" {
				return fmt.Errorf("--host and --os are mutually exclusive")
			}
			return runner.Run(ctx, c)
		},
	}
	return qcb.Build()
}
