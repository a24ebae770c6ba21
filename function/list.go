// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package function

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/xyzsd/fluent-sub001/value"
)

type listOptions struct {
	unit  string
	width string
}

func parseListOptions(opts value.Options) (listOptions, error) {
	out := listOptions{unit: "and", width: "wide"}

	if u, ok, err := opts.AsEnum("unit", "and", "or", "units"); err != nil {
		return out, err
	} else if ok {
		out.unit = u
	}

	if w, ok, err := opts.AsEnum("width", "wide", "short", "narrow"); err != nil {
		return out, err
	} else if ok {
		out.width = w
	}

	return out, nil
}

func conjunction(unit, width string) string {
	switch unit {
	case "or":
		if width == "narrow" {
			return "/"
		}
		return "or"
	case "units":
		return ","
	default:
		if width == "narrow" {
			return "&"
		}
		return "and"
	}
}

// joinValues implements the "locale-aware list join, comma-space with
// locale-appropriate 'and'/serial comma" default reducer spec.md §4.4
// describes. x/text has no public CLDR list-formatting package, so this is
// a hand-rolled English-style serial-comma join — the one formatting
// concern in this repository without an ecosystem library to back it (see
// DESIGN.md).
func joinValues(values []value.Value, unit, width string) string {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = v.String()
	}

	switch len(strs) {
	case 0:
		return ""
	case 1:
		return strs[0]
	case 2:
		return strs[0] + " " + conjunction(unit, width) + " " + strs[1]
	default:
		head := strings.Join(strs[:len(strs)-1], ", ")
		return head + ", " + conjunction(unit, width) + " " + strs[len(strs)-1]
	}
}

// ListFactory builds the LIST standard function: both the explicit
// LIST(values, …) call and, via Reducer, the implicit terminal reducer
// spec.md §4.4 applies to every multi-valued placeable expansion.
func ListFactory() *Factory {
	return &Factory{
		Name:      "LIST",
		Cacheable: true,
		Transform: true,
		Reducer:   true,
		New: func(_ language.Tag, _ value.Options) (*Function, error) {
			fn := &Function{Name: "LIST"}

			fn.Reducer = func(values []value.Value, opts value.Options, ctx Context) (string, error) {
				lo, err := parseListOptions(opts)
				if err != nil {
					return "", err
				}
				return joinValues(values, lo.unit, lo.width), nil
			}

			fn.Transform = func(params value.Params, opts value.Options, ctx Context) ([]value.Value, error) {
				lo, err := parseListOptions(opts)
				if err != nil {
					return nil, err
				}
				s := joinValues(params.Flatten(), lo.unit, lo.width)
				return []value.Value{value.String(s)}, nil
			}

			return fn, nil
		},
	}
}
