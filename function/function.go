// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

// Package function implements the Fluent function subsystem of spec.md
// §4.6: a capability record (Transform/Selector/Formatter) rather than an
// interface hierarchy, a factory+cache keyed by (name, locale, options) per
// §4.6's "Factory & cache", and the closed standard function set of §4.6.
//
// The capability-record shape follows spec.md §9's design note directly:
// "Represent as a record carrying up to three function pointers/closures
// with Option semantics, and check capability presence at the dispatch
// site; avoid inheritance-style hierarchies." worldiety/i18n's own
// Option/optionFunc closure pattern (resources.go) is the teacher's nearest
// analog and shapes the Factory constructor below.
package function

import (
	"golang.org/x/text/language"

	"github.com/xyzsd/fluent-sub001/value"
)

// Context is the narrow slice of per-format-call state a function needs.
// It is implemented by the resolver's Scope; living here (rather than
// function depending on resolver, or resolver depending on function for a
// concrete Scope type) keeps the two packages from importing each other.
type Context interface {
	Locale() language.Tag
}

// TransformFunc is the general-purpose capability: spec.md §4.6
// "(ResolvedParameters, Scope) → [Value]".
type TransformFunc func(params value.Params, opts value.Options, ctx Context) ([]value.Value, error)

// SelectorFunc picks a variant key given the resolved selector value, the
// candidate variant keys in declaration order, and the default key.
type SelectorFunc func(selector value.Value, keys []string, defaultKey string, opts value.Options, ctx Context) string

// FormatterFunc extends Transform with the invariant that its output is a
// singleton string or an error value.
type FormatterFunc func(v value.Value, opts value.Options, ctx Context) (value.Value, error)

// ReducerFunc is the terminal list-reduction capability (LIST): it folds a
// whole resolved value list into one string. Exactly one terminal reducer
// is installed per bundle (spec.md §4.6).
type ReducerFunc func(values []value.Value, opts value.Options, ctx Context) (string, error)

// Function is the capability record of spec.md §9: up to four closures
// (Transform, Selector, Formatter, Reducer), each nil when unsupported,
// checked for presence at the dispatch site.
type Function struct {
	Name string

	Transform TransformFunc
	Selector  SelectorFunc
	Formatter FormatterFunc
	Reducer   ReducerFunc
}

func (f *Function) CanTransform() bool { return f.Transform != nil }
func (f *Function) CanSelect() bool    { return f.Selector != nil }
func (f *Function) CanFormat() bool    { return f.Formatter != nil }
func (f *Function) CanReduce() bool    { return f.Reducer != nil }

// Factory produces a concrete Function given a locale and call-site
// options, per spec.md §4.6 ("A function factory produces a concrete
// function given (locale, options)"). Cacheable declares whether New's
// output may be reused across calls sharing the same (name, locale,
// options) key; a factory whose closures capture call-specific state that
// isn't fully determined by locale+options must set this false.
type Factory struct {
	Name      string
	Cacheable bool

	// Declared capabilities, known without invoking New — used by
	// Registry.Snapshot for introspection (spec.md §4.3's registry()).
	Transform bool
	Selector  bool
	Formatter bool
	Reducer   bool

	New func(locale language.Tag, opts value.Options) (*Function, error)
}
