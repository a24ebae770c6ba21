// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

// Package fluent implements a Project Fluent localization bundle: parsing
// FTL resources (package parser), modeling them (package ast), resolving
// patterns against runtime arguments (package resolver), and dispatching
// the standard and caller-supplied functions that format and select values
// (package function). Bundle, built by Builder, is the public entry point.
package fluent

import (
	"golang.org/x/text/language"

	"github.com/xyzsd/fluent-sub001/ast"
	"github.com/xyzsd/fluent-sub001/function"
	"github.com/xyzsd/fluent-sub001/resolver"
	"github.com/xyzsd/fluent-sub001/value"
)

// Bundle is an immutable, concurrency-safe set of localized messages and
// terms for one locale, per spec.md §3's "Lifecycle and ownership": "Resources
// and bundles are produced by a builder and thereafter immutable."
type Bundle struct {
	locale language.Tag

	messages map[string]*ast.Message
	terms    map[string]*ast.Term

	registry *function.Registry

	useIsolation  bool
	maxPlaceables int
}

var _ resolver.Bundle = (*Bundle)(nil)

// Message looks up a top-level message by id.
func (b *Bundle) Message(id string) (*ast.Message, bool) {
	m, ok := b.messages[id]
	return m, ok
}

// Term looks up a private term by id (without its leading '-').
func (b *Bundle) Term(id string) (*ast.Term, bool) {
	t, ok := b.terms[id]
	return t, ok
}

// Registry returns the bundle's installed function set, per spec.md §4.3's
// registry() introspection.
func (b *Bundle) Registry() *function.Registry { return b.registry }

// Locale returns the bundle's configured locale.
func (b *Bundle) Locale() language.Tag { return b.locale }

// UseIsolation reports whether interpolated placeables are wrapped in bidi
// isolation marks.
func (b *Bundle) UseIsolation() bool { return b.useIsolation }

// MaxPlaceables returns the per-format_call placeable expansion budget.
func (b *Bundle) MaxPlaceables() int { return b.maxPlaceables }

// HasMessage reports whether id names a top-level message.
func (b *Bundle) HasMessage(id string) bool {
	_, ok := b.messages[id]
	return ok
}

// Format resolves message id's pattern against args, per spec.md §6's
// `format(id, args) → (string, errors)`.
func (b *Bundle) Format(id string, args map[string]value.Param) (string, []error) {
	return resolver.Format(b, id, args)
}

// FormatAttribute resolves message id's attr attribute against args, per
// spec.md §6's `format_attribute(id, attr, args) → (string, errors)`.
func (b *Bundle) FormatAttribute(id, attr string, args map[string]value.Param) (string, []error) {
	return resolver.FormatAttribute(b, id, attr, args)
}
