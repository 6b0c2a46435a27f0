// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/tcfg/internal/meta"
	"github.com/staranto/tcfg/internal/triple"
)

const bashCompletionTemplate = `# bash completion for tcfg
_tcfg()
{
    local cur prev cmd
    COMPREPLY=()
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "targets cfg diff status toolchain man completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --schema"
    local triples="%[1]s"

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --os)
            COMPREPLY=( $(compgen -W "linux windows darwin" -- "$cur") )
            return 0
            ;;
    esac

    case "$cmd" in
        targets)
            COMPREPLY=( $(compgen -W "$common --host --os --probe -p --cross" -- "$cur") )
            ;;
        cfg)
            COMPREPLY=( $(compgen -W "$common --key -k $triples" -- "$cur") )
            ;;
        diff)
            COMPREPLY=( $(compgen -W "--color -c --output -o $triples" -- "$cur") )
            ;;
        status)
            COMPREPLY=( $(compgen -W "$common" -- "$cur") )
            ;;
        toolchain)
            COMPREPLY=( $(compgen -W "$common --min_rustc --min --strict" -- "$cur") )
            ;;
        man)
            COMPREPLY=( $(compgen -W "%[2]s" -- "$cur") )
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            ;;
    esac
    return 0
}

complete -F _tcfg tcfg
`

const zshCompletionTemplate = `#compdef tcfg

_tcfg() {
  local -a cmds triples common
  cmds=(
    'targets:list supported target triples'
    'cfg:list the cfg predicates of a target'
    'diff:compare the cfg predicates of two targets'
    'status:populate the predicate cache and report on it'
    'toolchain:show the rustc in use'
    'man:print the man page of a command'
    'completion:generate shell completion script'
  )
  triples=(%[1]s)
  common=(
    '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
    '(-c --color)'{-c,--color}'[enable colored text]'
    '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
    '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
    '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
    '(-t --titles)'{-t,--titles}'[show titles]'
    '--schema[list attributes]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'tcfg commands' cmds
    return
  fi

  case $words[2] in
    targets)
      _arguments $common \
        '--host[only targets of this host]' \
        '--os[only targets of OS]:os:(linux windows darwin)' \
        '(-p --probe)'{-p,--probe}'[query the toolchain]' \
        '--cross[cross platform labels]'
      ;;
    cfg)
      _arguments $common \
        '*'{-k,--key}'[predicate name]:name' \
        '1:triple:($triples)'
      ;;
    diff)
      _arguments \
        '(-c --color)'{-c,--color}'[enable colored diff]' \
        '(-o --output)'{-o,--output}'[diff format]:format:(text json)' \
        '1:triple:($triples)' \
        '2:triple:($triples)'
      ;;
    status)
      _arguments $common
      ;;
    toolchain)
      _arguments $common '--min_rustc[minimum rustc]:version' '--strict[fail when too old]'
      ;;
    man)
      _arguments '1:command:(%[2]s)'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _tcfg tcfg
`

// CompletionScript renders the completion script for shell ("bash" or
// "zsh") with the supported triples and man pages filled in.
func CompletionScript(shell string) (string, error) {
	var names []string
	for _, t := range triple.Supported() {
		names = append(names, t.String())
	}
	triples := strings.Join(names, " ")
	pages := strings.Join(ManPages(), " ")

	switch shell {
	case "bash":
		return fmt.Sprintf(bashCompletionTemplate, triples, pages), nil
	case "zsh":
		return fmt.Sprintf(zshCompletionTemplate, triples, pages), nil
	default:
		return "", fmt.Errorf("unsupported shell %q, want bash or zsh", shell)
	}
}

func CompletionCommandAction(_ context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		default:
			fmt.Fprintln(os.Stderr, "usage: tcfg completion [bash|zsh]")
			return nil
		}
	}

	script, err := CompletionScript(shell)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(GetMeta(cmd).Out(), script)
	return err
}

func CompletionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "tcfg completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
