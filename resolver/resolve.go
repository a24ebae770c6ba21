// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package resolver

import (
	"fmt"
	"strings"

	"github.com/xyzsd/fluent-sub001/ast"
	"github.com/xyzsd/fluent-sub001/value"
)

// Bidi isolation markers, spec.md §6: FSI (FIRST STRONG ISOLATE) and PDI
// (POP DIRECTIONAL ISOLATE).
const (
	fsi = "⁨"
	pdi = "⁩"
)

// dirtyMarker is the sentinel error message resolvePattern's rendering
// recognizes and prints as "[dirty]" rather than the braced "{...}" form
// used for every other resolution error (spec.md §6/§7).
const dirtyMarker = "dirty"

// Format resolves message id's pattern against args, per spec.md §6's
// `format(id, args) → (string, errors)`. It never fails for resolution
// problems — those surface as embedded {Error} text and entries in the
// returned error slice.
func Format(b Bundle, id string, args map[string]value.Param) (string, []error) {
	msg, ok := b.Message(id)
	if !ok {
		return "{Unknown message: '" + id + "'}", nil
	}

	s := NewScope(b, args)

	if msg.Pattern == nil {
		return "{No pattern specified for message: '" + id + "'}", []error{fmt.Errorf("no pattern specified for message: %s", id)}
	}

	out := resolvePatternByRef(s, msg.Pattern)
	return out, s.Errors()
}

// FormatAttribute resolves message id's attr attribute, per spec.md §6's
// `format_attribute(id, attr, args) → (string, errors)`.
func FormatAttribute(b Bundle, id, attr string, args map[string]value.Param) (string, []error) {
	msg, ok := b.Message(id)
	if !ok {
		return "{Unknown message: '" + id + "'}", nil
	}

	var pat *ast.Pattern
	for i := range msg.Attributes {
		if msg.Attributes[i].ID.Name == attr {
			pat = &msg.Attributes[i].Pattern
			break
		}
	}
	if pat == nil {
		return "{Unknown attribute: " + id + "." + attr + "}", []error{fmt.Errorf("unknown attribute: %s.%s", id, attr)}
	}

	s := NewScope(b, args)
	out := resolvePatternByRef(s, pat)
	return out, s.Errors()
}

// resolvePatternByRef applies cycle detection (keyed on the *ast.Pattern
// node identity) around resolvePatternInner, per spec.md §4.4's "Before
// resolving a pattern, test whether its identity is already in the
// traversal set."
func resolvePatternByRef(s *Scope, pat *ast.Pattern) string {
	if !s.enter(pat) {
		return "[dirty]"
	}
	defer s.exit(pat)

	return resolvePatternInner(s, pat)
}

// resolvePatternInner implements spec.md §4.4's pattern resolution
// algorithm proper.
func resolvePatternInner(s *Scope, pat *ast.Pattern) string {
	if s.Dirty() {
		return "[dirty]"
	}

	if len(pat.Elements) == 1 {
		if te, ok := pat.Elements[0].(*ast.TextElement); ok {
			return te.Value
		}
	}

	var buf strings.Builder
	for _, el := range pat.Elements {
		switch e := el.(type) {
		case *ast.TextElement:
			buf.WriteString(e.Value)
		case *ast.Placeable:
			buf.WriteString(resolveTopLevelPlaceable(s, pat, e))
		}
	}

	return buf.String()
}

func resolveTopLevelPlaceable(s *Scope, enclosing *ast.Pattern, p *ast.Placeable) string {
	if !s.takePlaceable() {
		return "[dirty]"
	}

	isolate := s.bundle.UseIsolation() && len(enclosing.Elements) > 1 && needsIsolation(p.Expression)

	vals := evalExpression(s, p.Expression)
	vals = applyImplicitFormatting(s, vals)
	rendered := renderValues(s, vals)

	if isolate {
		return fsi + rendered + pdi
	}
	return rendered
}

// needsIsolation reports whether expr's expansion should be wrapped in bidi
// isolates, per spec.md §4.4: every expression needs isolation except
// StringLiteral, MessageReference (never carries args), and a TermReference
// with no call arguments.
func needsIsolation(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		return false
	case *ast.MessageReference:
		return false
	case *ast.TermReference:
		return e.Arguments != nil
	default:
		return true
	}
}

func renderValues(s *Scope, vals []value.Value) string {
	switch len(vals) {
	case 0:
		return ""
	case 1:
		return renderSingle(vals[0])
	default:
		out, err := reduce(s, vals)
		if err != nil {
			return "{" + err.Error() + "}"
		}
		return out
	}
}

func renderSingle(v value.Value) string {
	if v.IsError() {
		if v.ErrorMessage() == dirtyMarker {
			return "[dirty]"
		}
		return "{" + v.ErrorMessage() + "}"
	}
	return v.String()
}

// reduce folds a multi-valued expansion into one string using the bundle's
// terminal reducer — the function named "LIST", per spec.md §4.6 ("Exactly
// one terminal reducer per bundle").
func reduce(s *Scope, vals []value.Value) (string, error) {
	fn, err := s.bundle.Registry().Resolve("LIST", s.Locale(), nil)
	if err != nil || !fn.CanReduce() {
		strs := make([]string, len(vals))
		for i, v := range vals {
			strs[i] = renderSingle(v)
		}
		return strings.Join(strs, ", "), nil
	}

	return fn.Reducer(vals, nil, s)
}

// applyImplicitFormatting runs the registered default Formatter for any
// Number or Temporal value that reaches pattern assembly unformatted — the
// "Implicit function" of the GLOSSARY. A value already formatted by an
// explicit NUMBER()/DATETIME() call is already a String by this point, so
// this is a no-op for it.
func applyImplicitFormatting(s *Scope, vals []value.Value) []value.Value {
	out := make([]value.Value, len(vals))
	for i, v := range vals {
		out[i] = applyImplicitFormattingOne(s, v)
	}
	return out
}

func applyImplicitFormattingOne(s *Scope, v value.Value) value.Value {
	var fnName string
	switch {
	case v.IsNumber():
		fnName = "NUMBER"
	case v.IsTemporal():
		fnName = "DATETIME"
	default:
		return v
	}

	fn, err := s.bundle.Registry().Resolve(fnName, s.Locale(), nil)
	if err != nil || !fn.CanFormat() {
		return v
	}

	formatted, err := fn.Formatter(v, nil, s)
	if err != nil {
		return value.Error(fnName + "(): " + err.Error())
	}
	return formatted
}
