// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package attrs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Attr is one column of command output. Key is a driller path into the row,
// OutputKey is the column title and the key used by --filter and --sort.
type Attr struct {
	Key string `yaml:"key"`
	// Include is false for attrs that only serve filtering and sorting.
	Include   bool   `yaml:"include"`
	OutputKey string `yaml:"outputKey"`
	// TransformSpec holds case (l, u) and width (n, -n) transforms.
	TransformSpec string `yaml:"transformSpec"`
}

var widthRegex = regexp.MustCompile(`-?\d+`)

// Transform applies TransformSpec to a string value. Other values pass
// through. When a spec carries more than one case or width transform, the
// last one wins, so a per-attr spec overrides a global one prepended to it.
func (a *Attr) Transform(value interface{}) interface{} {
	result, ok := value.(string)
	if !ok || a.TransformSpec == "" {
		return value
	}

	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")
	switch {
	case lastL > lastU:
		result = strings.ToLower(result)
	case lastU > lastL:
		result = strings.ToUpper(result)
	}

	widths := widthRegex.FindAllString(a.TransformSpec, -1)
	if len(widths) == 0 {
		return result
	}
	width, err := strconv.Atoi(widths[len(widths)-1])
	if err != nil {
		return result
	}
	return truncate(result, width)
}

// truncate cuts s to width runes. A negative width keeps both ends and
// joins them with "..".
func truncate(s string, width int) string {
	runes := []rune(s)
	abs := width
	if abs < 0 {
		abs = -abs
	}
	if abs == 0 || len(runes) <= abs {
		return s
	}
	if width > 0 || abs < 4 {
		return string(runes[:abs])
	}

	keep := abs - 2
	left := keep - keep/2
	right := keep / 2
	return string(runes[:left]) + ".." + string(runes[len(runes)-right:])
}

type AttrList []Attr

// String renders the list in --attrs syntax.
func (a *AttrList) String() string {
	specs := make([]string, 0, len(*a))
	for _, attr := range *a {
		key := attr.Key
		if !attr.Include && key != "*" {
			key = "!" + key
		}
		specs = append(specs, fmt.Sprintf("%s:%s:%s", key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(specs, ",")
}

// Set parses an --attrs value. Each comma separated spec is
// key[:outputKey[:transform]]. A leading ! hides the column while keeping it
// available to --filter and --sort. The key * carries a transform applied to
// every attr. Specs naming an attr already in the list update it in place.
func (a *AttrList) Set(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	for _, spec := range strings.Split(value, ",") {
		fields := strings.Split(spec, ":")
		if len(fields) > 3 {
			return fmt.Errorf("invalid attr spec: %q", spec)
		}

		attr := Attr{Include: true}
		attr.Key = strings.TrimSpace(fields[0])
		if k, hidden := strings.CutPrefix(attr.Key, "!"); hidden {
			attr.Key = k
			attr.Include = false
		}
		attr.Key = strings.TrimPrefix(attr.Key, ".")
		if attr.Key == "" {
			return fmt.Errorf("invalid attr spec: %q", spec)
		}
		if attr.Key == "*" {
			attr.Include = false
		}

		if len(fields) > 1 && strings.TrimSpace(fields[1]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[1])
		} else {
			segments := strings.Split(attr.Key, ".")
			attr.OutputKey = segments[len(segments)-1]
		}
		if len(fields) > 2 {
			attr.TransformSpec = strings.TrimSpace(fields[2])
		}

		if i := a.index(attr.Key); i >= 0 {
			existing := &(*a)[i]
			existing.Include = attr.Include
			if len(fields) > 1 && strings.TrimSpace(fields[1]) != "" {
				existing.OutputKey = attr.OutputKey
			}
			existing.TransformSpec = attr.TransformSpec
			continue
		}

		*a = append(*a, attr)
	}

	return nil
}

func (a *AttrList) index(name string) int {
	for i := range *a {
		if (*a)[i].Key == name || (*a)[i].OutputKey == name {
			return i
		}
	}
	return -1
}

// SetGlobalTransformSpec prepends the transform of the * attr, if any, to
// every attr in the list.
func (a *AttrList) SetGlobalTransformSpec() error {
	i := a.index("*")
	if i < 0 {
		return nil
	}
	spec := (*a)[i].TransformSpec
	if spec == "" {
		return nil
	}

	for j := range *a {
		(*a)[j].TransformSpec = spec + "," + (*a)[j].TransformSpec
	}
	return nil
}

// Included returns the attrs that render as columns.
func (a AttrList) Included() AttrList {
	out := make(AttrList, 0, len(a))
	for _, attr := range a {
		if attr.Include {
			out = append(out, attr)
		}
	}
	return out
}

func (a *AttrList) Type() string {
	return "list"
}
