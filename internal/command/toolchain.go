// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/staranto/tcfg/internal/meta"
	"github.com/staranto/tcfg/internal/toolchain"
)

// ToolchainRow describes the rustc used to query predicates.
type ToolchainRow struct {
	Path      string `json:"path"`
	Version   string `json:"version"`
	MinRustc  string `json:"min_rustc"`
	Satisfied bool   `json:"satisfied"`
}

func fetchToolchain(ctx context.Context, cmd *cli.Command, m meta.Meta) ([]ToolchainRow, error) {
	rustc := m.Toolchain()

	v, err := rustc.Version(ctx)
	if err != nil {
		return nil, err
	}

	minimum := cmd.String("min_rustc")
	ok, err := toolchain.CheckMinimum(v, minimum)
	if err != nil {
		return nil, err
	}

	row := ToolchainRow{
		Path:      rustc.Path,
		Version:   v.String(),
		MinRustc:  minimum,
		Satisfied: ok,
	}
	if !ok && cmd.Bool("strict") {
		return nil, fmt.Errorf("rustc %s does not satisfy min_rustc %s", row.Version, minimum)
	}
	return []ToolchainRow{row}, nil
}

// ToolchainCommandBuilder constructs the cli.Command for "toolchain".
func ToolchainCommandBuilder(meta meta.Meta) *cli.Command {
	runner := &QueryActionRunner[ToolchainRow]{
		CommandName: "toolchain",
		SchemaType:  reflect.TypeOf(ToolchainRow{}),
		DefaultAttrs: func(*cli.Command) []string {
			return []string{"path", "version", "min_rustc", "satisfied"}
		},
		FetchFn: fetchToolchain,
	}

	qcb := &QueryCommandBuilder{
		Name:      "toolchain",
		Usage:     "show the rustc in use and check it against min_rustc",
		UsageText: "tcfg toolchain [--min_rustc VERSION] [--strict] [options]",
		Meta:      meta,
		Flags: []cli.Flag{
			NameSpacedValueChainFlagFromConfigFile("toolchain", meta.Config.Source, &cli.StringFlag{
				Name:    "min_rustc",
				Aliases: []string{"min"},
				Usage:   "minimum acceptable rustc version",
				Sources: cli.NewValueSourceChain(cli.EnvVar("TCFG_MIN_RUSTC")),
			}),
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "fail when rustc is older than min_rustc",
			},
		},
		Action: runner.Run,
	}
	return qcb.Build()
}
