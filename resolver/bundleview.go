// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

// Package resolver implements the tree-walking evaluator of spec.md §4.4:
// reference lookup, variant selection, function dispatch, bidi isolation,
// cycle detection, and placeable budgeting. It treats the AST as immutable
// input and never mutates the bundle it resolves against.
package resolver

import (
	"golang.org/x/text/language"

	"github.com/xyzsd/fluent-sub001/ast"
	"github.com/xyzsd/fluent-sub001/function"
)

// Bundle is the narrow view the resolver needs of a built bundle. The root
// fluent package's *Bundle satisfies it; defining it here rather than
// importing fluent keeps resolver below fluent in the dependency graph.
type Bundle interface {
	Message(id string) (*ast.Message, bool)
	Term(id string) (*ast.Term, bool)
	Registry() *function.Registry
	Locale() language.Tag
	UseIsolation() bool
	MaxPlaceables() int
}
