// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/staranto/tcfg/internal/command"
)

// docgen writes the embedded command docs out as installable files:
//   - docs/man/man1/tcfg-<cmd>.1 rendered through md2man
//   - docs/tldr/tcfg-<cmd>.md built from the EXAMPLES section

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	manOutDir := filepath.Join(repoRoot, "docs", "man", "man1")
	tldrOutDir := filepath.Join(repoRoot, "docs", "tldr")
	for _, dir := range []string{manOutDir, tldrOutDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatalf("creating %s: %v", dir, err)
		}
	}

	pages := command.ManPages()
	if len(pages) == 0 {
		fatalf("no embedded command docs")
	}

	for _, cmd := range pages {
		roff, err := command.RenderManPage(cmd)
		if err != nil {
			fatalf("rendering %s: %v", cmd, err)
		}
		manPath := filepath.Join(manOutDir, fmt.Sprintf("tcfg-%s.1", cmd))
		if err := writeFileIfChanged(manPath, roff, writeOnlyIfChanged); err != nil {
			fatalf("writing man page for %s: %v", cmd, err)
		}

		md, err := command.ManSource(cmd)
		if err != nil {
			fatalf("reading %s: %v", cmd, err)
		}
		tldrPath := filepath.Join(tldrOutDir, fmt.Sprintf("tcfg-%s.md", cmd))
		if err := writeFileIfChanged(tldrPath, []byte(buildTLDR(cmd, md)), writeOnlyIfChanged); err != nil {
			fatalf("writing tldr for %s: %v", cmd, err)
		}
	}
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func writeFileIfChanged(path string, content []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, content, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, content, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(content)) {
		return nil
	}
	return os.WriteFile(path, content, 0o644)
}

// section returns the body of the "# NAME" style section called name.
func section(md, name string) []string {
	var (
		in    bool
		lines []string
	)
	for _, ln := range strings.Split(md, "\n") {
		if strings.HasPrefix(ln, "# ") {
			in = strings.TrimSpace(strings.TrimPrefix(ln, "# ")) == name
			continue
		}
		if in {
			lines = append(lines, ln)
		}
	}
	return lines
}

func buildTLDR(cmd, md string) string {
	short := "tcfg " + cmd
	for _, ln := range section(md, "NAME") {
		if _, desc, ok := strings.Cut(ln, " - "); ok {
			short = strings.TrimSpace(desc)
			break
		}
	}

	var b strings.Builder
	b.WriteString("# tcfg-" + cmd + "\n\n")
	b.WriteString("> " + short + ".\n\n")

	examples := 0
	for _, ln := range section(md, "EXAMPLES") {
		if !strings.HasPrefix(ln, "    ") {
			continue
		}
		if examples > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- Example:\n\n`" + strings.TrimSpace(ln) + "`\n")
		examples++
	}
	if examples == 0 {
		b.WriteString("- Show help for the command:\n\n`tcfg " + cmd + " --help`\n")
	}
	return b.String()
}
