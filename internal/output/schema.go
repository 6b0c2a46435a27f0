// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
)

// Tag is one attribute discovered from a row type's json tags.
type Tag struct {
	Name string
	Kind string
}

const maxSchemaDepth = 1

// SchemaWalker collects the json tag names of typ, prefixing nested struct
// members with their holder.
func SchemaWalker(holder string, typ reflect.Type, depth int) []Tag {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	var tags []Tag
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		if holder != "" {
			name = holder + "." + name
		}

		ft := field.Type
		for ft.Kind() == reflect.Ptr || ft.Kind() == reflect.Slice {
			ft = ft.Elem()
		}
		tags = append(tags, Tag{Name: name, Kind: field.Type.Kind().String()})

		if ft.Kind() == reflect.Struct && depth < maxSchemaDepth {
			tags = append(tags, SchemaWalker(name, ft, depth+1)...)
		}
	}
	return tags
}

// DumpSchema writes the attributes available to --attrs, --filter and
// --sort for rows of typ.
func DumpSchema(w io.Writer, typ reflect.Type) error {
	tags := SchemaWalker("", typ, 0)
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })

	rows := make([][]string, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, []string{tag.Name, tag.Kind})
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		Headers("Attribute", "Kind").
		BorderHeader(false).
		Rows(rows...)

	_, err := fmt.Fprintln(w, t)
	return err
}
