// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/staranto/tcfg/internal/triple"
)

var (
	// ErrUnsupportedTarget is returned for a triple outside the registry.
	ErrUnsupportedTarget = errors.New("unsupported target triple")
	// ErrUnavailableTarget is returned for a supported triple the toolchain
	// could not report on.
	ErrUnavailableTarget = errors.New("no cfg available for target")
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.
func JammedFlagValidator(value any) error {
	if s, ok := value.(string); ok && strings.HasPrefix(s, "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}

func OutputValidator(value any) error {
	s, _ := value.(string)
	if !slices.Contains(validOutputFlagValues, s) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

// OSValidator accepts the OS groups of the supported triples.
func OSValidator(value any) error {
	s, _ := value.(string)
	if _, err := triple.ParseOS(s); err != nil {
		return err
	}
	return nil
}

// TripleValidator accepts only canonical supported triples.
func TripleValidator(value any) error {
	s, _ := value.(string)
	if !triple.IsSupported(s) {
		return fmt.Errorf("%w: %q", ErrUnsupportedTarget, s)
	}
	return nil
}
