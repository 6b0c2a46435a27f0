// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var indexRegex = regexp.MustCompile(`\[(\d+)\]`)

// Driller resolves path against doc. Paths are dotted and may carry explicit
// indexes, e.g. "predicates[2].value". A single element array met along the
// way is unwrapped so that "predicates.name" works when there is only one
// predicate; a multi element array is returned as is when it ends the path.
func Driller(doc string, path string) gjson.Result {
	path = indexRegex.ReplaceAllString(path, ".$1")
	path = strings.Trim(path, ".")

	current := gjson.Parse(doc)
	if path == "" {
		return unwrap(current)
	}

	for _, segment := range strings.Split(path, ".") {
		if !current.Exists() {
			return gjson.Result{}
		}
		if !isIndex(segment) {
			current = unwrap(current)
		}
		current = current.Get(segment)
	}

	return unwrap(current)
}

func unwrap(r gjson.Result) gjson.Result {
	if r.IsArray() {
		if elems := r.Array(); len(elems) == 1 {
			return elems[0]
		}
	}
	return r
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
