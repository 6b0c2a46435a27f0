// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/tcfg/internal/attrs"
	"github.com/staranto/tcfg/internal/meta"
	"github.com/staranto/tcfg/internal/output"
)

// GetMeta returns the meta.Meta stored in the command's Metadata, looking
// through parent commands when the command itself carries none.
func GetMeta(cmd *cli.Command) meta.Meta {
	for c := cmd; c != nil; c = parentOf(c) {
		if c.Metadata == nil {
			continue
		}
		if m, ok := c.Metadata["meta"].(meta.Meta); ok {
			return m
		}
	}
	return meta.Meta{}
}

func parentOf(cmd *cli.Command) *cli.Command {
	lineage := cmd.Lineage()
	if len(lineage) < 2 {
		return nil
	}
	return lineage[1]
}

// DumpSchemaIfRequested prints the row schema for t when --schema is set,
// and reports whether it did.
func DumpSchemaIfRequested(cmd *cli.Command, w io.Writer, t reflect.Type) (bool, error) {
	if !cmd.Bool("schema") {
		return false, nil
	}
	return true, output.DumpSchema(w, t)
}

// BuildAttrs constructs an AttrList from defaults followed by --attrs, then
// applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (attrs.AttrList, error) {
	var al attrs.AttrList
	for _, d := range defaults {
		if err := al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, fmt.Errorf("invalid --attrs: %w", err)
		}
	}
	if err := al.SetGlobalTransformSpec(); err != nil {
		return nil, err
	}
	return al, nil
}

// EmitRows marshals rows to JSON and passes them to the common output
// routine.
func EmitRows(rows any, al attrs.AttrList, cmd *cli.Command, w io.Writer) error {
	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}
	return output.SliceDiceSpit(*bytes.NewBuffer(raw), al, cmd, "", w)
}

// QueryCommandBuilder constructs a cli.Command for the row producing
// subcommands using a consistent pattern. It wires metadata, the --schema
// flag and the global output flags.
type QueryCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	ArgsUsage string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (qcb *QueryCommandBuilder) Build() *cli.Command {
	flags := append([]cli.Flag{}, qcb.Flags...)
	flags = append(flags, newSchemaFlag())
	flags = append(flags, NewGlobalFlags(qcb.Name)...)

	return &cli.Command{
		Name:      qcb.Name,
		Usage:     qcb.Usage,
		UsageText: qcb.UsageText,
		ArgsUsage: qcb.ArgsUsage,
		Metadata: map[string]any{
			"meta": qcb.Meta,
		},
		Flags:  flags,
		Action: qcb.Action,
	}
}

// QueryActionRunner[T] is the common action of the row producing commands:
// schema short-circuit, attrs, fetch and emit. FetchFn supplies the rows.
type QueryActionRunner[T any] struct {
	CommandName  string
	SchemaType   reflect.Type
	DefaultAttrs func(*cli.Command) []string
	FetchFn      func(context.Context, *cli.Command, meta.Meta) ([]T, error)
}

// Run executes the query action with the provided context and command.
func (qar *QueryActionRunner[T]) Run(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	w := m.Out()
	log.WithField("command", qar.CommandName).Debugf("args: %v", cmd.Args().Slice())

	if done, err := DumpSchemaIfRequested(cmd, w, qar.SchemaType); done {
		return err
	}

	var defaults []string
	if qar.DefaultAttrs != nil {
		defaults = qar.DefaultAttrs(cmd)
	}
	al, err := BuildAttrs(cmd, defaults...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", al.String())

	rows, err := qar.FetchFn(ctx, cmd, m)
	if err != nil {
		return err
	}

	return EmitRows(rows, al, cmd, w)
}
