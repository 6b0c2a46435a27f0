// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/urfave/cli/v3"

	"github.com/staranto/tcfg/internal/meta"
)

//go:embed docs/*.md
var docsFS embed.FS

// ManPages returns the commands that have a man page, sorted.
func ManPages() []string {
	entries, _ := fs.ReadDir(docsFS, "docs")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// ManSource returns the markdown source of the named command's page.
func ManSource(name string) (string, error) {
	md, err := docsFS.ReadFile("docs/" + name + ".md")
	if err != nil {
		return "", fmt.Errorf("no man page for %q, have %v", name, ManPages())
	}
	return string(md), nil
}

// RenderManPage returns the roff page for the named command.
func RenderManPage(name string) ([]byte, error) {
	md, err := ManSource(name)
	if err != nil {
		return nil, err
	}
	return md2man.Render([]byte(md)), nil
}

// ManCommandAction is the action handler for the "man" subcommand.
func ManCommandAction(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) != 1 {
		return errors.New("exactly one COMMAND argument is required")
	}

	page, err := RenderManPage(args[0])
	if err != nil {
		return err
	}

	_, err = GetMeta(cmd).Out().Write(page)
	return err
}

// ManCommandBuilder constructs the cli.Command for "man".
func ManCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "man",
		Usage:     "print the man page of a command",
		UsageText: "tcfg man COMMAND | man -l -",
		ArgsUsage: "COMMAND",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: ManCommandAction,
	}
}
