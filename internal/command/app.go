// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/tcfg/internal/config"
	"github.com/staranto/tcfg/internal/meta"
)

// InitApp builds the root command for args. The arg immediately following
// the binary is the subcommand and also the namespace used when retrieving
// config values.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, err := config.Load(ns)
	if err != nil {
		log.WithError(err).Debug("no config file loaded")
	}

	return NewApp(meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
	}), nil
}

// NewApp assembles the command tree around m.
func NewApp(m meta.Meta) *cli.Command {
	app := &cli.Command{
		Name:  "tcfg",
		Usage: "target triples and their rustc cfg predicates",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "tcfg version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		TargetsCommandBuilder(m),
		CfgCommandBuilder(m),
		DiffCommandBuilder(m),
		StatusCommandBuilder(m),
		ToolchainCommandBuilder(m),
		ManCommandBuilder(m),
		CompletionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	if m.Writer != nil {
		app.Writer = m.Writer
		app.ErrWriter = m.Writer
	}

	return app
}
