// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package fluent

import "github.com/xyzsd/fluent-sub001/value"

// Args builds a format_call argument map from alternating name/value pairs,
// trading a little type safety for the low-friction call sites the
// teacher's own MustString/MustGerman helpers favor over verbose struct
// literals. Each value is one of string, int, int64, float64, or an already
// constructed value.Value/value.Param; anything else panics, since a
// malformed call site is a programmer error, not a runtime condition.
func Args(pairs ...any) map[string]value.Param {
	if len(pairs)%2 != 0 {
		panic("fluent.Args: odd number of arguments")
	}

	out := make(map[string]value.Param, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic("fluent.Args: argument name must be a string")
		}
		out[name] = toParam(pairs[i+1])
	}
	return out
}

func toParam(v any) value.Param {
	switch x := v.(type) {
	case value.Param:
		return x
	case value.Value:
		return value.Single(x)
	case string:
		return value.Single(value.String(x))
	case int:
		return value.Single(value.Int(int64(x)))
	case int64:
		return value.Single(value.Int(x))
	case float64:
		return value.Single(value.Float(x))
	case []value.Value:
		return value.List(x)
	default:
		panic("fluent.Args: unsupported argument value type")
	}
}
