// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package function

import (
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/xyzsd/fluent-sub001/date"
	"github.com/xyzsd/fluent-sub001/value"
)

type datetimeOptions struct {
	dateStyle, timeStyle date.Style
	zone                 *time.Location
}

func parseDatetimeOptions(opts value.Options) (datetimeOptions, error) {
	var out datetimeOptions

	if s, ok := opts.AsString("dateStyle"); ok {
		st, valid := date.ParseStyle(s)
		if !valid {
			return out, &value.OptionError{Name: "dateStyle", Reason: "must be short, medium, long, or full"}
		}
		out.dateStyle = st
	}

	if s, ok := opts.AsString("timeStyle"); ok {
		st, valid := date.ParseStyle(s)
		if !valid {
			return out, &value.OptionError{Name: "timeStyle", Reason: "must be short, medium, long, or full"}
		}
		out.timeStyle = st
	}

	out.zone = time.UTC
	if s, ok := opts.AsString("zone"); ok {
		loc, err := time.LoadLocation(s)
		if err != nil {
			return out, &value.OptionError{Name: "zone", Reason: "unknown zone: " + s}
		}
		out.zone = loc
	}

	if out.dateStyle == date.None && out.timeStyle == date.None {
		out.dateStyle = date.Medium
	}

	return out, nil
}

// DatetimeFactory builds the DATETIME standard function (spec.md §4.6).
// Non-temporal inputs pass through unchanged; instants render in UTC by
// default.
func DatetimeFactory() *Factory {
	return &Factory{
		Name:      "DATETIME",
		Cacheable: false,
		Transform: true,
		Selector:  true,
		Formatter: true,
		New: func(locale language.Tag, _ value.Options) (*Function, error) {
			fn := &Function{Name: "DATETIME"}

			fn.Formatter = func(v value.Value, opts value.Options, ctx Context) (value.Value, error) {
				if !v.IsTemporal() {
					return v, nil
				}
				do, err := parseDatetimeOptions(opts)
				if err != nil {
					return value.Value{}, fmt.Errorf("DATETIME(): %w", err)
				}
				s := date.Format(ctx.Locale(), do.dateStyle, do.timeStyle, do.zone, v.Temporal())
				return value.String(s), nil
			}

			fn.Transform = func(params value.Params, opts value.Options, ctx Context) ([]value.Value, error) {
				if len(params) == 0 {
					return nil, fmt.Errorf("DATETIME(): missing argument")
				}
				v, err := fn.Formatter(params[0].First(), opts, ctx)
				if err != nil {
					return nil, err
				}
				return []value.Value{v}, nil
			}

			fn.Selector = func(selector value.Value, keys []string, defaultKey string, opts value.Options, ctx Context) string {
				// DATETIME as a selector has no standardized category set in
				// spec.md beyond "the function is asked to pick a variant";
				// without a CLDR calendar backend (out of scope, spec.md
				// §1) there is no field to key variants on, so it always
				// defers to the default, matching "Custom or Temporal
				// without function assistance: fall through to default."
				return defaultKey
			}

			_ = locale
			return fn, nil
		},
	}
}
