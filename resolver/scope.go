// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package resolver

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/xyzsd/fluent-sub001/value"
)

// Scope is the per-format-call mutable state of spec.md §4.4. It implements
// function.Context so standard functions can read the locale without the
// function package importing resolver.
type Scope struct {
	bundle Bundle

	externalArgs  map[string]value.Param
	localTermArgs value.Options
	insideTerm    bool

	traversal map[any]bool

	placeableCount int
	dirty          bool
	dirtyReason    string

	errs []error
}

// NewScope creates a scope for one format/format_attribute call.
func NewScope(bundle Bundle, args map[string]value.Param) *Scope {
	return &Scope{
		bundle:       bundle,
		externalArgs: args,
		traversal:    make(map[any]bool),
	}
}

func (s *Scope) Locale() language.Tag { return s.bundle.Locale() }

func (s *Scope) Dirty() bool { return s.dirty }

func (s *Scope) markDirty(reason string) {
	if !s.dirty {
		s.dirty = true
		s.dirtyReason = reason
	}
}

func (s *Scope) appendError(err error) { s.errs = append(s.errs, err) }

// Errors returns the accumulated resolution errors in evaluation order.
func (s *Scope) Errors() []error { return s.errs }

// lookupVariable resolves $id, per spec.md §4.4.1: while resolving a term's
// pattern, $var sees only that term's call arguments, never the caller's
// external args ("Term resolution does not see the caller's external
// args"). Outside of a term, $var resolves from the format call's args.
func (s *Scope) lookupVariable(id string) (value.Param, bool) {
	if s.insideTerm {
		sc, ok := s.localTermArgs[id]
		if !ok {
			return value.Param{}, false
		}
		return scalarToParam(sc), true
	}
	p, ok := s.externalArgs[id]
	return p, ok
}

func scalarToParam(sc value.Scalar) value.Param {
	switch sc.Kind {
	case value.ScalarInt:
		return value.Single(value.Int(sc.Int))
	case value.ScalarFloat:
		return value.Single(value.Float(sc.Flt))
	default:
		return value.Single(value.String(sc.Str))
	}
}

// pushTerm installs args as the local term arguments for the duration of
// resolving a term reference's pattern, returning a restore func. It also
// flips insideTerm so lookupVariable stops seeing the caller's external
// args, even when args itself is empty.
func (s *Scope) pushTerm(args value.Options) func() {
	prevArgs := s.localTermArgs
	prevInside := s.insideTerm
	s.localTermArgs = args
	s.insideTerm = true
	return func() {
		s.localTermArgs = prevArgs
		s.insideTerm = prevInside
	}
}

// enter registers key (a stable node identity, typically a *ast.Pattern
// pointer) in the traversal set. It reports false if key was already
// present (a cycle), in which case it also marks the scope dirty.
func (s *Scope) enter(key any) bool {
	if s.traversal[key] {
		s.markDirty("cycle")
		s.appendError(fmt.Errorf("cyclic reference detected"))
		return false
	}
	s.traversal[key] = true
	return true
}

func (s *Scope) exit(key any) { delete(s.traversal, key) }

// takePlaceable accounts for one placeable expansion against
// max_placeables, per spec.md §5 ("Placeable count over a single format
// call does not exceed max_placeables + 1"). It returns whether the caller
// should still resolve this placeable (true for every placeable up to and
// including the one that crosses the limit) or short-circuit to "[dirty]"
// (false for every placeable seen after the scope was already dirty).
// Crossing the limit records a placeable-limit error.
func (s *Scope) takePlaceable() bool {
	if s.dirty {
		return false
	}

	s.placeableCount++
	if s.placeableCount > s.bundle.MaxPlaceables() {
		s.markDirty("placeable limit exceeded")
		s.appendError(fmt.Errorf("placeable limit of %d exceeded", s.bundle.MaxPlaceables()))
	}

	return true
}
