// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package resolver

import (
	"strconv"

	"github.com/xyzsd/fluent-sub001/ast"
	"github.com/xyzsd/fluent-sub001/value"
)

// evalSelect implements spec.md §4.5's selection algorithm: a function
// selector dispatches through the matching function's Selector capability,
// fed the *resolved argument*, not the function's formatted Transform
// output; anything else dispatches by the selector value's own Kind against
// the variant keys, falling back to the default variant when nothing
// matches.
func evalSelect(s *Scope, sel *ast.SelectExpression) []value.Value {
	defaultKey, keys := variantKeys(sel)

	chosenKey := resolveSelectorKey(s, sel, keys, defaultKey)

	variant := findVariant(sel, chosenKey)
	if variant == nil {
		return []value.Value{value.Error("no matching variant")}
	}

	return []value.Value{value.String(resolvePatternByRef(s, &variant.Value))}
}

// resolveSelectorKey picks the variant key for sel.Selector. A function call
// whose function implements selection is asked to pick given the function's
// *argument* value (spec.md §4.5: "the function is asked to pick a variant
// given (resolved_selector_value, ...)") — the function's Transform/
// Formatter output is never computed for this path, so e.g. `NUMBER($n,
// kind: "ordinal") -> [one] ...` keys off $n's raw number, not NUMBER's
// formatted string. Every other selector shape is evaluated in full and
// matched as a plain value.
func resolveSelectorKey(s *Scope, sel *ast.SelectExpression, keys []string, defaultKey string) string {
	if fnRef, ok := sel.Selector.(*ast.FunctionReference); ok {
		opts := namedArgsToOptions(&fnRef.Arguments)
		if fn, err := s.bundle.Registry().Resolve(fnRef.ID.Name, s.Locale(), opts); err == nil && fn.CanSelect() {
			if len(fnRef.Arguments.Positional) != 1 {
				return defaultKey
			}
			argVals := evalExpression(s, fnRef.Arguments.Positional[0])
			if len(argVals) != 1 {
				// e.g. a number list under NUMBER(): non-selectable, per
				// spec.md §4.5's list-selector edge case.
				return defaultKey
			}
			return fn.Selector(argVals[0], keys, defaultKey, opts, s)
		}
	}

	selVals := evalExpression(s, sel.Selector)
	if len(selVals) != 1 {
		return defaultKey
	}
	return chooseVariant(s, selVals[0], keys, defaultKey)
}

func variantKeys(sel *ast.SelectExpression) (defaultKey string, keys []string) {
	keys = make([]string, 0, len(sel.Variants))
	for _, v := range sel.Variants {
		k := v.Key.Name()
		keys = append(keys, k)
		if v.Default {
			defaultKey = k
		}
	}
	return defaultKey, keys
}

func findVariant(sel *ast.SelectExpression, key string) *ast.Variant {
	var def *ast.Variant
	for i := range sel.Variants {
		v := &sel.Variants[i]
		if v.Default {
			def = v
		}
		if v.Key.Name() == key {
			return v
		}
	}
	return def
}

// chooseVariant picks the variant key for a plain resolved selector value
// (spec.md §4.5's "plain value" branch): match the value directly against
// the variant keys by exact text (and, for numeric selectors against
// numeric keys, exact numeric equality) before falling back to the default.
// A bare number not wrapped in an explicit NUMBER() call still defers to the
// installed NUMBER function's plural-category Selector.
func chooseVariant(s *Scope, v value.Value, keys []string, defaultKey string) string {
	switch {
	case v.IsString():
		for _, k := range keys {
			if k == v.String() {
				return k
			}
		}
	case v.IsNumber():
		if f, ok := v.AsFloat64(); ok {
			for _, k := range keys {
				if kf, ok2 := parseKeyNumber(k); ok2 && kf == f {
					return k
				}
			}
		}
		// Fall through to the installed NUMBER function's plural-category
		// Selector, if one is registered, for bare numeric selectors not
		// wrapped in an explicit NUMBER() call.
		if fn, err := s.bundle.Registry().Resolve("NUMBER", s.Locale(), nil); err == nil && fn.CanSelect() {
			return fn.Selector(v, keys, defaultKey, nil, s)
		}
	}

	return defaultKey
}

func parseKeyNumber(k string) (float64, bool) {
	f, err := strconv.ParseFloat(k, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func namedArgsToOptions(args *ast.CallArguments) value.Options {
	if args == nil || len(args.Named) == 0 {
		return nil
	}
	opts := make(value.Options, len(args.Named))
	for _, na := range args.Named {
		opts[na.Name.Name] = literalToScalar(na.Value)
	}
	return opts
}
