// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package function

import (
	"fmt"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/xyzsd/fluent-sub001/value"
)

// CaseFactory builds CASE(s, style ∈ {upper, lower}): non-strings pass
// through; default upper. Grounded on aretext/aretext's use of
// golang.org/x/text/cases for locale-aware case folding (state/search.go).
func CaseFactory() *Factory {
	return &Factory{
		Name:      "CASE",
		Cacheable: true,
		Transform: true,
		New: func(locale language.Tag, _ value.Options) (*Function, error) {
			fn := &Function{Name: "CASE"}
			fn.Transform = func(params value.Params, opts value.Options, ctx Context) ([]value.Value, error) {
				if len(params) == 0 {
					return nil, fmt.Errorf("CASE(): missing argument")
				}
				v := params[0].First()
				if !v.IsString() {
					return []value.Value{v}, nil
				}

				style, _, err := opts.AsEnum("style", "upper", "lower")
				if err != nil {
					return nil, fmt.Errorf("CASE(): %w", err)
				}
				if style == "" {
					style = "upper"
				}

				var caser cases.Caser
				if style == "lower" {
					caser = cases.Lower(ctx.Locale())
				} else {
					caser = cases.Upper(ctx.Locale())
				}

				_ = locale
				return []value.Value{value.String(caser.String(v.String()))}, nil
			}
			return fn, nil
		},
	}
}

// CountFactory builds COUNT(…): the total number of values across all
// positional arguments, literals and variables alike.
func CountFactory() *Factory {
	return &Factory{
		Name:      "COUNT",
		Cacheable: true,
		Transform: true,
		New: func(_ language.Tag, _ value.Options) (*Function, error) {
			fn := &Function{Name: "COUNT"}
			fn.Transform = func(params value.Params, opts value.Options, ctx Context) ([]value.Value, error) {
				return []value.Value{value.Int(int64(params.Count()))}, nil
			}
			return fn, nil
		},
	}
}

// StringsortFactory builds STRINGSORT(values, order ∈ {natural,
// reversed}): locale-aware sort via golang.org/x/text/collate; non-strings
// are coerced via their formatted representation.
func StringsortFactory() *Factory {
	return &Factory{
		Name:      "STRINGSORT",
		Cacheable: false,
		Transform: true,
		New: func(_ language.Tag, _ value.Options) (*Function, error) {
			fn := &Function{Name: "STRINGSORT"}
			fn.Transform = func(params value.Params, opts value.Options, ctx Context) ([]value.Value, error) {
				order, _, err := opts.AsEnum("order", "natural", "reversed")
				if err != nil {
					return nil, fmt.Errorf("STRINGSORT(): %w", err)
				}
				if order == "" {
					order = "natural"
				}

				strs := make([]string, 0, len(params))
				for _, v := range params.Flatten() {
					strs = append(strs, v.String())
				}

				col := collate.New(ctx.Locale())
				col.Strings(strs)
				if order == "reversed" {
					for i, j := 0, len(strs)-1; i < j; i, j = i+1, j-1 {
						strs[i], strs[j] = strs[j], strs[i]
					}
				}

				out := make([]value.Value, len(strs))
				for i, s := range strs {
					out[i] = value.String(s)
				}
				return out, nil
			}
			return fn, nil
		},
	}
}

// NumsortFactory builds NUMSORT(values, order ∈ {ascending, descending}):
// numeric sort; non-numeric input is an error.
func NumsortFactory() *Factory {
	return &Factory{
		Name:      "NUMSORT",
		Cacheable: true,
		Transform: true,
		New: func(_ language.Tag, _ value.Options) (*Function, error) {
			fn := &Function{Name: "NUMSORT"}
			fn.Transform = func(params value.Params, opts value.Options, ctx Context) ([]value.Value, error) {
				order, _, err := opts.AsEnum("order", "ascending", "descending")
				if err != nil {
					return nil, fmt.Errorf("NUMSORT(): %w", err)
				}
				if order == "" {
					order = "ascending"
				}

				vals := params.Flatten()
				nums := make([]float64, len(vals))
				for i, v := range vals {
					f, ok := v.AsFloat64()
					if !ok {
						return nil, fmt.Errorf("NUMSORT(): non-numeric argument")
					}
					nums[i] = f
				}

				idx := make([]int, len(nums))
				for i := range idx {
					idx[i] = i
				}
				sort.Slice(idx, func(a, b int) bool {
					if order == "descending" {
						return nums[idx[a]] > nums[idx[b]]
					}
					return nums[idx[a]] < nums[idx[b]]
				})

				out := make([]value.Value, len(idx))
				for i, j := range idx {
					out[i] = vals[j]
				}
				return out, nil
			}
			return fn, nil
		},
	}
}

// XtemporalFactory builds XTEMPORAL(value, field): extracts a temporal
// field as a number; unsupported field is an error; non-temporal passes
// through.
func XtemporalFactory() *Factory {
	return &Factory{
		Name:      "XTEMPORAL",
		Cacheable: true,
		Transform: true,
		New: func(_ language.Tag, _ value.Options) (*Function, error) {
			fn := &Function{Name: "XTEMPORAL"}
			fn.Transform = func(params value.Params, opts value.Options, ctx Context) ([]value.Value, error) {
				if len(params) == 0 {
					return nil, fmt.Errorf("XTEMPORAL(): missing argument")
				}
				v := params[0].First()
				if !v.IsTemporal() {
					return []value.Value{v}, nil
				}

				field, ok := opts.AsString("field")
				if !ok {
					return nil, fmt.Errorf("XTEMPORAL(): missing 'field' option")
				}

				t := v.Temporal()
				var n int
				switch field {
				case "year":
					n = t.Year()
				case "month":
					n = int(t.Month())
				case "day":
					n = t.Day()
				case "hour":
					n = t.Hour()
				case "minute":
					n = t.Minute()
				case "second":
					n = t.Second()
				case "weekday":
					n = int(t.Weekday())
				default:
					return nil, fmt.Errorf("XTEMPORAL(): unsupported field %q", field)
				}

				return []value.Value{value.Int(int64(n))}, nil
			}
			return fn, nil
		},
	}
}

// BooleanFactory builds BOOLEAN(value, …): formats boolean Custom values;
// anything else passes through.
func BooleanFactory() *Factory {
	return &Factory{
		Name:      "BOOLEAN",
		Cacheable: true,
		Transform: true,
		New: func(_ language.Tag, _ value.Options) (*Function, error) {
			fn := &Function{Name: "BOOLEAN"}
			fn.Transform = func(params value.Params, opts value.Options, ctx Context) ([]value.Value, error) {
				if len(params) == 0 {
					return nil, fmt.Errorf("BOOLEAN(): missing argument")
				}
				v := params[0].First()
				if !v.IsCustom() {
					return []value.Value{v}, nil
				}

				b, ok := v.Custom().(bool)
				if !ok {
					return []value.Value{v}, nil
				}

				if b {
					return []value.Value{value.String("true")}, nil
				}
				return []value.Value{value.String("false")}, nil
			}
			return fn, nil
		},
	}
}
