// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package function

import (
	"fmt"
	"math"

	"golang.org/x/text/language"

	"github.com/xyzsd/fluent-sub001/value"
)

// AbsFactory builds ABS(n): non-numbers pass through.
func AbsFactory() *Factory {
	return &Factory{
		Name:      "ABS",
		Cacheable: true,
		Transform: true,
		New: func(_ language.Tag, _ value.Options) (*Function, error) {
			fn := &Function{Name: "ABS"}
			fn.Transform = func(params value.Params, opts value.Options, ctx Context) ([]value.Value, error) {
				if len(params) == 0 {
					return nil, fmt.Errorf("ABS(): missing argument")
				}
				v := params[0].First()
				if !v.IsNumber() {
					return []value.Value{v}, nil
				}
				f, _ := v.AsFloat64()
				return []value.Value{value.Float(math.Abs(f))}, nil
			}
			return fn, nil
		},
	}
}

// SignFactory builds SIGN(n): non-numbers pass through.
func SignFactory() *Factory {
	return &Factory{
		Name:      "SIGN",
		Cacheable: true,
		Transform: true,
		New: func(_ language.Tag, _ value.Options) (*Function, error) {
			fn := &Function{Name: "SIGN"}
			fn.Transform = func(params value.Params, opts value.Options, ctx Context) ([]value.Value, error) {
				if len(params) == 0 {
					return nil, fmt.Errorf("SIGN(): missing argument")
				}
				v := params[0].First()
				if !v.IsNumber() {
					return []value.Value{v}, nil
				}
				f, _ := v.AsFloat64()

				var s string
				switch {
				case math.IsNaN(f):
					s = "NaN"
				case math.IsInf(f, 1):
					s = "positiveInfinity"
				case math.IsInf(f, -1):
					s = "negativeInfinity"
				case f > 0:
					s = "positive"
				case f < 0:
					s = "negative"
				default:
					s = "zero"
				}

				return []value.Value{value.String(s)}, nil
			}
			return fn, nil
		},
	}
}

// OffsetFactory builds OFFSET(n, increment|decrement): exactly one of
// increment/decrement must be present; both the input and the offset must
// be integral — non-integer inputs are errors, not passthrough, per
// spec.md §4.6.
func OffsetFactory() *Factory {
	return &Factory{
		Name:      "OFFSET",
		Cacheable: true,
		Transform: true,
		New: func(_ language.Tag, _ value.Options) (*Function, error) {
			fn := &Function{Name: "OFFSET"}
			fn.Transform = func(params value.Params, opts value.Options, ctx Context) ([]value.Value, error) {
				if len(params) == 0 {
					return nil, fmt.Errorf("OFFSET(): missing argument")
				}
				v := params[0].First()
				n, ok := v.AsInt64()
				if !ok {
					return nil, fmt.Errorf("OFFSET(): argument must be an integer")
				}

				inc, hasInc, err := opts.AsInt("increment")
				if err != nil {
					return nil, fmt.Errorf("OFFSET(): %w", err)
				}
				dec, hasDec, err := opts.AsInt("decrement")
				if err != nil {
					return nil, fmt.Errorf("OFFSET(): %w", err)
				}

				switch {
				case hasInc && hasDec:
					return nil, fmt.Errorf("OFFSET(): exactly one of increment/decrement is allowed")
				case hasInc:
					return []value.Value{value.Int(n + inc)}, nil
				case hasDec:
					return []value.Value{value.Int(n - dec)}, nil
				default:
					return nil, fmt.Errorf("OFFSET(): increment or decrement is required")
				}
			}
			return fn, nil
		},
	}
}
