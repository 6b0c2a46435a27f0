// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/staranto/tcfg/internal/attrs"
	"github.com/staranto/tcfg/internal/driller"
)

// DelimEnv overrides the "," that separates filter expressions.
const DelimEnv = "TCFG_FILTER_DELIM"

// filterRegex splits "key<op>target". The operator is one of = ^ ~ < > @ /
// and may be negated with a leading !.
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])(.*)$`)

// Filter is one parsed --filter expression.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string
}

func (f Filter) String() string {
	neg := ""
	if f.Negate {
		neg = "!"
	}
	return f.Key + neg + f.Operand + f.Target
}

// BuildFilters parses spec into filters. Malformed expressions are logged and
// dropped.
func BuildFilters(spec string) []Filter {
	var filters []Filter
	if strings.TrimSpace(spec) == "" {
		return filters
	}

	delim := ","
	if d, ok := os.LookupEnv(DelimEnv); ok && d != "" {
		delim = d
	}

	for _, expr := range strings.Split(spec, delim) {
		parts := filterRegex.FindStringSubmatch(strings.TrimSpace(expr))
		if parts == nil || parts[1] == "" {
			log.WithField("filter", expr).Error("invalid filter")
			continue
		}

		op, negate := strings.CutPrefix(parts[2], "!")
		filters = append(filters, Filter{
			Key:     parts[1],
			Negate:  negate,
			Operand: op,
			Target:  parts[3],
		})
	}

	return filters
}

// FilterDataset keeps the rows of candidates that pass every filter in spec
// and projects each onto attrs, keyed by OutputKey. Transforms are left to the
// caller.
func FilterDataset(candidates gjson.Result, attrs attrs.AttrList, spec string) []map[string]interface{} {
	filters := BuildFilters(spec)

	rows := make([]map[string]interface{}, 0)
	for _, candidate := range candidates.Array() {
		if !Match(candidate, attrs, filters) {
			continue
		}

		row := make(map[string]interface{}, len(attrs))
		for _, attr := range attrs {
			row[attr.OutputKey] = driller.Driller(candidate.Raw, attr.Key).Value()
		}
		rows = append(rows, row)
	}

	return rows
}

// Match reports whether candidate passes all filters. A filter whose key is
// not an attribute is reported and ignored.
func Match(candidate gjson.Result, attrs attrs.AttrList, filters []Filter) bool {
	for _, filter := range filters {
		key, ok := resolveKey(attrs, filter.Key)
		if !ok {
			msg := fmt.Sprintf("filter key not found: %s", filter.Key)
			log.Error(msg)
			fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
			continue
		}

		value := driller.Driller(candidate.Raw, key).Value()
		if value == nil {
			return false
		}
		if !check(value, filter) {
			return false
		}
	}
	return true
}

func resolveKey(attrs attrs.AttrList, name string) (string, bool) {
	for _, attr := range attrs {
		if attr.OutputKey == name {
			return attr.Key, true
		}
	}
	return "", false
}

func check(value interface{}, filter Filter) bool {
	switch v := value.(type) {
	case string:
		return checkString(v, filter)
	case bool:
		return checkString(strconv.FormatBool(v), filter)
	case float64:
		return checkNumber(v, filter)
	case []interface{}, map[string]interface{}:
		if filter.Operand == "@" {
			return checkContains(v, filter)
		}
		return true
	default:
		log.Errorf("unsupported type for filtering: %T", value)
		return false
	}
}

// checkContains tests membership of Target in a list or a map's keys.
func checkContains(value interface{}, filter Filter) bool {
	found := false
	switch v := value.(type) {
	case []interface{}:
		for _, item := range v {
			if fmt.Sprint(item) == filter.Target {
				found = true
				break
			}
		}
	case map[string]interface{}:
		_, found = v[filter.Target]
	default:
		log.Errorf("unsupported type for contains filtering: %T", value)
		return false
	}
	return found != filter.Negate
}

func checkNumber(value float64, filter Filter) bool {
	target, err := strconv.ParseFloat(strings.TrimSpace(filter.Target), 64)
	if err != nil {
		log.Error("invalid numeric target: " + filter.Target)
		return false
	}

	var ok bool
	switch filter.Operand {
	case "=":
		ok = value == target
	case ">":
		ok = value > target
	case "<":
		ok = value < target
	default:
		log.Error("unsupported numeric operand: " + filter.Operand)
		return false
	}
	return ok != filter.Negate
}

// checkString compares value with Target. Ordering operators compare
// numerically when both sides are numbers, which suits cfg values such as
// target_pointer_width="64".
func checkString(value string, filter Filter) bool {
	var ok bool
	switch filter.Operand {
	case "=":
		ok = value == filter.Target
	case "~":
		ok = strings.EqualFold(value, filter.Target)
	case "^":
		ok = strings.HasPrefix(value, filter.Target)
	case "@":
		ok = strings.Contains(value, filter.Target)
	case "<", ">":
		a, aerr := strconv.ParseFloat(value, 64)
		b, berr := strconv.ParseFloat(filter.Target, 64)
		if aerr == nil && berr == nil {
			ok = a < b
			if filter.Operand == ">" {
				ok = a > b
			}
			break
		}
		ok = value < filter.Target
		if filter.Operand == ">" {
			ok = value > filter.Target
		}
	case "/":
		re, err := regexp.Compile(filter.Target)
		if err != nil {
			log.Error("invalid regex: " + filter.Target)
			return false
		}
		ok = re.MatchString(value)
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
	return ok != filter.Negate
}
