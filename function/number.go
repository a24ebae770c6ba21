// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package function

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/xyzsd/fluent-sub001/value"
)

// numberOptions is the parsed, validated form of NUMBER's option set
// (spec.md §4.6).
type numberOptions struct {
	style                                       style
	useGrouping                                 string
	minIntegerDigits                            int
	minFractionDigits, maxFractionDigits        int
	hasFractionDigits                           bool
	minSignificantDigits, maxSignificantDigits  int
	hasSignificantDigits                        bool
	kind                                        string
	skeleton                                    string
	currencyCode                                string
}

type style int

const (
	styleDecimal style = iota
	styleCurrency
	stylePercent
)

func parseNumberOptions(opts value.Options) (numberOptions, error) {
	out := numberOptions{useGrouping: "auto", kind: "cardinal", currencyCode: "USD"}

	hasStyle := false
	if s, ok, err := opts.AsEnum("style", "decimal", "currency", "percent"); err != nil {
		return out, err
	} else if ok {
		hasStyle = true
		switch s {
		case "currency":
			out.style = styleCurrency
		case "percent":
			out.style = stylePercent
		default:
			out.style = styleDecimal
		}
	}

	if s, ok := opts.AsString("skeleton"); ok {
		out.skeleton = s
	}

	if s, ok, err := opts.AsEnum("useGrouping", "always", "true", "auto", "min2", "false"); err != nil {
		return out, err
	} else if ok {
		out.useGrouping = s
	}

	if n, ok, err := opts.AsInt("minimumIntegerDigits"); err != nil {
		return out, err
	} else if ok {
		out.minIntegerDigits = int(n)
	}

	hasMinFrac, hasMaxFrac := false, false
	if n, ok, err := opts.AsInt("minimumFractionDigits"); err != nil {
		return out, err
	} else if ok {
		out.minFractionDigits = int(n)
		hasMinFrac = true
	}
	if n, ok, err := opts.AsInt("maximumFractionDigits"); err != nil {
		return out, err
	} else if ok {
		out.maxFractionDigits = int(n)
		hasMaxFrac = true
	}
	if hasMinFrac || hasMaxFrac {
		out.hasFractionDigits = true
		if !hasMaxFrac {
			out.maxFractionDigits = max(out.minFractionDigits, 3)
		}
		if out.maxFractionDigits < out.minFractionDigits {
			return out, &value.OptionError{Name: "maximumFractionDigits", Reason: "must be >= minimumFractionDigits"}
		}
	}

	hasMinSig, hasMaxSig := false, false
	if n, ok, err := opts.AsInt("minimumSignificantDigits"); err != nil {
		return out, err
	} else if ok {
		out.minSignificantDigits = int(n)
		hasMinSig = true
	}
	if n, ok, err := opts.AsInt("maximumSignificantDigits"); err != nil {
		return out, err
	} else if ok {
		out.maxSignificantDigits = int(n)
		hasMaxSig = true
	}
	if hasMinSig || hasMaxSig {
		out.hasSignificantDigits = true
		if !hasMinSig {
			out.minSignificantDigits = 1
		}
		if !hasMaxSig {
			out.maxSignificantDigits = max(out.minSignificantDigits, 21)
		}
	}

	if k, ok, err := opts.AsEnum("kind", "cardinal", "ordinal", "exact"); err != nil {
		return out, err
	} else if ok {
		out.kind = k
	}

	if c, ok := opts.AsString("currency"); ok {
		out.currencyCode = c
	}

	if out.skeleton != "" && (hasStyle || out.hasFractionDigits || out.hasSignificantDigits) {
		return out, &value.OptionError{Name: "skeleton", Reason: "mutually exclusive with style, fraction-digit, and significant-digit options"}
	}
	if out.skeleton != "" {
		applySkeleton(&out)
	}

	return out, nil
}

// applySkeleton maps the subset of ICU number skeleton tokens worth
// supporting without a full skeleton parser: "percent"/"%" selects the
// percent style, and a trailing ".0"/".00"-style fraction pattern sets the
// fraction digit bounds, matching how a skeleton like ".00" or "percent .00"
// reads in the Fluent number skeleton grammar.
func applySkeleton(out *numberOptions) {
	skel := out.skeleton
	if strings.Contains(skel, "percent") || strings.Contains(skel, "%") {
		out.style = stylePercent
	}

	if dot := strings.IndexByte(skel, '.'); dot >= 0 {
		frac := skel[dot+1:]
		end := 0
		for end < len(frac) && (frac[end] == '0' || frac[end] == '#') {
			end++
		}
		if end > 0 {
			minDigits := strings.Count(frac[:end], "0")
			out.hasFractionDigits = true
			out.minFractionDigits = minDigits
			out.maxFractionDigits = max(end, minDigits)
		}
	}
}

func roundSignificant(f float64, sig int) float64 {
	if f == 0 || sig <= 0 {
		return f
	}
	mag := math.Ceil(math.Log10(math.Abs(f)))
	power := float64(sig) - mag
	shift := math.Pow(10, power)
	return math.Round(f*shift) / shift
}

func formatNumber(tag language.Tag, opts numberOptions, f float64) (string, error) {
	p := message.NewPrinter(tag)

	if opts.hasSignificantDigits {
		f = roundSignificant(f, opts.maxSignificantDigits)
	}

	var numOpts []number.Option
	if opts.minIntegerDigits > 0 {
		numOpts = append(numOpts, number.MinIntegerDigits(opts.minIntegerDigits))
	}
	if opts.hasFractionDigits {
		numOpts = append(numOpts, number.MinFractionDigits(opts.minFractionDigits))
		numOpts = append(numOpts, number.MaxFractionDigits(opts.maxFractionDigits))
	}
	if opts.useGrouping == "false" {
		numOpts = append(numOpts, number.NoSeparator())
	}

	switch opts.style {
	case stylePercent:
		return p.Sprintf("%v", number.Percent(f, numOpts...)), nil
	case styleCurrency:
		unit, err := currency.ParseISO(opts.currencyCode)
		if err != nil {
			return "", fmt.Errorf("NUMBER: invalid currency %q: %w", opts.currencyCode, err)
		}
		amt := unit.Amount(f)
		return p.Sprintf("%v", currency.Symbol(amt)), nil
	default:
		return p.Sprintf("%v", number.Decimal(f, numOpts...)), nil
	}
}

func selectNumber(tag language.Tag, opts numberOptions, selector value.Value, keys []string, defaultKey string) string {
	if selector.IsError() {
		return defaultKey
	}
	n, ok := selector.AsFloat64()
	if !ok {
		return defaultKey
	}

	if opts.kind == "exact" {
		formatted, err := formatNumber(tag, opts, n)
		if err == nil {
			for _, k := range keys {
				if k == formatted {
					return k
				}
			}
		}
		return defaultKey
	}

	for _, k := range keys {
		if kf, err := strconv.ParseFloat(k, 64); err == nil && kf == n {
			return k
		}
	}

	i, v, f, t := selector.Decomposed()
	w := v

	var form plural.Form
	if opts.kind == "ordinal" {
		form = plural.Ordinal.MatchPlural(tag, i, v, w, f, t)
	} else {
		form = plural.Cardinal.MatchPlural(tag, i, v, w, f, t)
	}

	category := pluralFormName(form)
	for _, k := range keys {
		if k == category {
			return k
		}
	}

	return defaultKey
}

func pluralFormName(f plural.Form) string {
	switch f {
	case plural.Zero:
		return "zero"
	case plural.One:
		return "one"
	case plural.Two:
		return "two"
	case plural.Few:
		return "few"
	case plural.Many:
		return "many"
	default:
		return "other"
	}
}

// NumberFactory builds the NUMBER standard function (spec.md §4.6).
func NumberFactory() *Factory {
	return &Factory{
		Name:      "NUMBER",
		Cacheable: false, // options vary per call site in practice
		Transform: true,
		Selector:  true,
		Formatter: true,
		New: func(locale language.Tag, _ value.Options) (*Function, error) {
			fn := &Function{Name: "NUMBER"}

			fn.Formatter = func(v value.Value, opts value.Options, ctx Context) (value.Value, error) {
				if !v.IsNumber() {
					return v, nil
				}
				no, err := parseNumberOptions(opts)
				if err != nil {
					return value.Value{}, fmt.Errorf("NUMBER(): %w", err)
				}
				f, _ := v.AsFloat64()
				s, err := formatNumber(ctx.Locale(), no, f)
				if err != nil {
					return value.Value{}, err
				}
				return value.String(s), nil
			}

			fn.Transform = func(params value.Params, opts value.Options, ctx Context) ([]value.Value, error) {
				if len(params) == 0 {
					return nil, fmt.Errorf("NUMBER(): missing argument")
				}
				v, err := fn.Formatter(params[0].First(), opts, ctx)
				if err != nil {
					return nil, err
				}
				return []value.Value{v}, nil
			}

			fn.Selector = func(selector value.Value, keys []string, defaultKey string, opts value.Options, ctx Context) string {
				no, err := parseNumberOptions(opts)
				if err != nil {
					return defaultKey
				}
				return selectNumber(ctx.Locale(), no, selector, keys, defaultKey)
			}

			_ = locale
			return fn, nil
		},
	}
}
