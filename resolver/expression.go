// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package resolver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xyzsd/fluent-sub001/ast"
	"github.com/xyzsd/fluent-sub001/value"
)

// evalExpression implements spec.md §4.4.1's expression evaluation table.
func evalExpression(s *Scope, expr ast.Expression) []value.Value {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		return []value.Value{value.String(e.Value)}

	case *ast.NumberLiteral:
		return []value.Value{parseNumberLiteral(e)}

	case *ast.VariableReference:
		return evalVariableReference(s, e)

	case *ast.MessageReference:
		return evalMessageReference(s, e)

	case *ast.TermReference:
		return evalTermReference(s, e)

	case *ast.FunctionReference:
		return evalFunctionReference(s, e)

	case *ast.SelectExpression:
		return evalSelect(s, e)

	case *ast.Placeable:
		if !s.takePlaceable() {
			return []value.Value{value.Error(dirtyMarker)}
		}
		return evalExpression(s, e.Expression)

	default:
		return []value.Value{value.Error(fmt.Sprintf("unsupported expression %T", expr))}
	}
}

func parseNumberLiteral(n *ast.NumberLiteral) value.Value {
	if n.Kind == ast.NumberInteger {
		if i, err := strconv.ParseInt(n.Text, 10, 64); err == nil {
			return value.Int(i)
		}
	}
	f, _ := strconv.ParseFloat(n.Text, 64)
	return value.Float(f)
}

func evalVariableReference(s *Scope, e *ast.VariableReference) []value.Value {
	p, ok := s.lookupVariable(e.ID.Name)
	if !ok {
		s.appendError(fmt.Errorf("unknown variable: $%s", e.ID.Name))
		return []value.Value{value.Error("Unknown variable: $" + e.ID.Name)}
	}
	return p.Values
}

func evalMessageReference(s *Scope, e *ast.MessageReference) []value.Value {
	msg, ok := s.bundle.Message(e.ID.Name)
	if !ok {
		s.appendError(fmt.Errorf("unknown message: %s", e.ID.Name))
		return []value.Value{value.Error("Unknown message: '" + e.ID.Name + "'")}
	}

	if e.Attribute == nil {
		if msg.Pattern == nil {
			s.appendError(fmt.Errorf("no pattern specified for message: %s", e.ID.Name))
			return []value.Value{value.Error("No pattern specified for message: '" + e.ID.Name + "'")}
		}
		return []value.Value{value.String(resolvePatternByRef(s, msg.Pattern))}
	}

	for i := range msg.Attributes {
		if msg.Attributes[i].ID.Name == e.Attribute.Name {
			return []value.Value{value.String(resolvePatternByRef(s, &msg.Attributes[i].Pattern))}
		}
	}

	s.appendError(fmt.Errorf("unknown attribute: %s.%s", e.ID.Name, e.Attribute.Name))
	return []value.Value{value.Error("Unknown attribute: " + e.ID.Name + "." + e.Attribute.Name)}
}

func evalTermReference(s *Scope, e *ast.TermReference) []value.Value {
	term, ok := s.bundle.Term(e.ID.Name)
	if !ok {
		s.appendError(fmt.Errorf("unknown term: -%s", e.ID.Name))
		return []value.Value{value.Error("Unknown term: -" + e.ID.Name)}
	}

	var opts value.Options
	if e.Arguments != nil && len(e.Arguments.Named) > 0 {
		opts = make(value.Options, len(e.Arguments.Named))
		for _, na := range e.Arguments.Named {
			opts[na.Name.Name] = literalToScalar(na.Value)
		}
	}

	restore := s.pushTerm(opts)
	defer restore()

	if e.Attribute == nil {
		return []value.Value{value.String(resolvePatternByRef(s, &term.Pattern))}
	}

	for i := range term.Attributes {
		if term.Attributes[i].ID.Name == e.Attribute.Name {
			return []value.Value{value.String(resolvePatternByRef(s, &term.Attributes[i].Pattern))}
		}
	}

	s.appendError(fmt.Errorf("unknown attribute: -%s.%s", e.ID.Name, e.Attribute.Name))
	return []value.Value{value.Error("Unknown attribute: -" + e.ID.Name + "." + e.Attribute.Name)}
}

func evalFunctionReference(s *Scope, e *ast.FunctionReference) []value.Value {
	params := make(value.Params, 0, len(e.Arguments.Positional))
	for _, pe := range e.Arguments.Positional {
		vals := evalExpression(s, pe)
		params = append(params, value.Param{Values: vals, IsList: len(vals) > 1})
	}

	var opts value.Options
	if len(e.Arguments.Named) > 0 {
		opts = make(value.Options, len(e.Arguments.Named))
		for _, na := range e.Arguments.Named {
			opts[na.Name.Name] = literalToScalar(na.Value)
		}
	}

	fn, err := s.bundle.Registry().Resolve(e.ID.Name, s.Locale(), opts)
	if err != nil {
		s.appendError(fmt.Errorf("unknown function: %s", e.ID.Name))
		return []value.Value{value.Error("Unknown function: " + e.ID.Name + "()")}
	}

	if !fn.CanTransform() {
		s.appendError(fmt.Errorf("function %s does not support direct invocation", e.ID.Name))
		return []value.Value{value.Error(e.ID.Name + "(): not callable")}
	}

	vals, err := fn.Transform(params, opts, s)
	if err != nil {
		s.appendError(fmt.Errorf("%s(): %w", e.ID.Name, err))
		return []value.Value{value.Error(e.ID.Name + "(): " + err.Error())}
	}

	return vals
}

func literalToScalar(expr ast.Expression) value.Scalar {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		return value.StringScalar(e.Value)
	case *ast.NumberLiteral:
		v := parseNumberLiteral(e)
		if i, ok := v.AsInt64(); ok {
			return value.IntScalar(i)
		}
		f, _ := v.AsFloat64()
		return value.FloatScalar(f)
	default:
		return value.StringScalar(strings.TrimSpace(fmt.Sprintf("%v", expr)))
	}
}
