// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package fluent

import "github.com/xyzsd/fluent-sub001/function"

// defaultMaxPlaceables is spec.md §5's documented default for max_placeables.
const defaultMaxPlaceables = 100

// defaultMaxFunctionCache bounds the function registry's factory-output
// cache when a Builder doesn't configure one explicitly.
const defaultMaxFunctionCache = 1024

// Option configures a Builder, following the teacher's Option/optionFunc
// closure pattern (resources.go's LocalizationHint/LocalizationVarHint)
// rather than a struct-of-fields config object.
type Option interface {
	apply(*Builder)
}

type optionFunc func(*Builder)

func (f optionFunc) apply(b *Builder) { f(b) }

// WithIsolation turns bidi isolation of interpolated values on or off. It
// defaults to on, per spec.md §4.4.
func WithIsolation(enabled bool) Option {
	return optionFunc(func(b *Builder) { b.useIsolation = enabled })
}

// WithMaxPlaceables overrides the per-format_call placeable expansion
// budget of spec.md §5 (default 100).
func WithMaxPlaceables(n int) Option {
	return optionFunc(func(b *Builder) { b.maxPlaceables = n })
}

// WithFunction installs or replaces a function factory in the bundle's
// registry. Passing a Name already present (including a standard function)
// overrides it, per spec.md §6 ("a builder configures ... function
// registry").
func WithFunction(factory *function.Factory) Option {
	return optionFunc(func(b *Builder) { b.extraFunctions = append(b.extraFunctions, factory) })
}

// WithFunctionCache overrides the maximum number of cached (name, locale,
// options) function instances (spec.md §4.6's "size-bounded policy").
// A value <= 0 means unbounded.
func WithFunctionCache(maxEntries int) Option {
	return optionFunc(func(b *Builder) { b.maxFunctionCache = maxEntries })
}

// WithoutStandardFunctions omits the closed standard function set of
// spec.md §4.6, leaving the registry empty except for WithFunction entries.
// Intended for tests that want to exercise unknown-function error paths.
func WithoutStandardFunctions() Option {
	return optionFunc(func(b *Builder) { b.noStandardFunctions = true })
}
