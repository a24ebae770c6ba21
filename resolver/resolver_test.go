// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package resolver_test

import (
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/xyzsd/fluent-sub001/ast"
	"github.com/xyzsd/fluent-sub001/function"
	"github.com/xyzsd/fluent-sub001/parser"
	"github.com/xyzsd/fluent-sub001/resolver"
	"github.com/xyzsd/fluent-sub001/value"
)

// fakeBundle is a minimal resolver.Bundle built directly from parsed FTL
// source, independent of the root package, so resolver can be tested in
// isolation.
type fakeBundle struct {
	tag           language.Tag
	messages      map[string]*ast.Message
	terms         map[string]*ast.Term
	registry      *function.Registry
	isolation     bool
	maxPlaceables int
}

func newFakeBundle(t *testing.T, tag language.Tag, src string) *fakeBundle {
	t.Helper()
	res, errs := parser.Parse([]byte(src))
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}

	fb := &fakeBundle{
		tag:           tag,
		messages:      map[string]*ast.Message{},
		terms:         map[string]*ast.Term{},
		registry:      function.NewRegistry(0, function.Standard()...),
		isolation:     true,
		maxPlaceables: 100,
	}
	for _, e := range res.Entries {
		switch v := e.(type) {
		case *ast.Message:
			fb.messages[v.ID.Name] = v
		case *ast.Term:
			fb.terms[v.ID.Name] = v
		}
	}
	return fb
}

func (b *fakeBundle) Message(id string) (*ast.Message, bool) { m, ok := b.messages[id]; return m, ok }
func (b *fakeBundle) Term(id string) (*ast.Term, bool)        { t, ok := b.terms[id]; return t, ok }
func (b *fakeBundle) Registry() *function.Registry            { return b.registry }
func (b *fakeBundle) Locale() language.Tag                    { return b.tag }
func (b *fakeBundle) UseIsolation() bool                      { return b.isolation }
func (b *fakeBundle) MaxPlaceables() int                      { return b.maxPlaceables }

func TestFormat_PlainInterpolation(t *testing.T) {
	b := newFakeBundle(t, language.English, "greeting = Hello, { $name }!\n")
	b.isolation = false

	out, errs := resolver.Format(b, "greeting", map[string]value.Param{
		"name": value.Single(value.String("World")),
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if out != "Hello, World!" {
		t.Fatalf("got %q", out)
	}
}

func TestFormat_Isolation(t *testing.T) {
	b := newFakeBundle(t, language.English, "greeting = Hello, { $name }!\n")

	out, _ := resolver.Format(b, "greeting", map[string]value.Param{
		"name": value.Single(value.String("World")),
	})
	if !strings.Contains(out, "⁨World⁩") {
		t.Fatalf("expected isolated interpolation, got %q", out)
	}
}

func TestFormat_UnknownMessage(t *testing.T) {
	b := newFakeBundle(t, language.English, "foo = bar\n")
	out, _ := resolver.Format(b, "missing", nil)
	if out != "{Unknown message: 'missing'}" {
		t.Fatalf("got %q", out)
	}
}

func TestFormat_UnknownVariable(t *testing.T) {
	b := newFakeBundle(t, language.English, "greeting = Hello, { $name }!\n")
	b.isolation = false
	out, errs := resolver.Format(b, "greeting", nil)
	if len(errs) == 0 {
		t.Fatal("expected a resolution error")
	}
	if out != "Hello, {Unknown variable: $name}!" {
		t.Fatalf("got %q", out)
	}
}

func TestFormat_Plural(t *testing.T) {
	src := `items =
    { $count ->
        [one] one item
       *[other] { $count } items
    }
`
	b := newFakeBundle(t, language.English, src)
	b.isolation = false

	out, _ := resolver.Format(b, "items", map[string]value.Param{
		"count": value.Single(value.Int(1)),
	})
	if out != "one item" {
		t.Fatalf("got %q", out)
	}

	out, _ = resolver.Format(b, "items", map[string]value.Param{
		"count": value.Single(value.Int(5)),
	})
	if out != "5 items" {
		t.Fatalf("got %q", out)
	}
}

func TestFormat_TermWithLocalArg(t *testing.T) {
	src := "-brand = { $case ->\n    [nominative] Foo\n   *[accusative] Foo-inator\n}\nmsg = I like { -brand(case: \"nominative\") }\n"
	b := newFakeBundle(t, language.English, src)
	b.isolation = false

	out, errs := resolver.Format(b, "msg", nil)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if out != "I like Foo" {
		t.Fatalf("got %q", out)
	}
}

func TestFormat_TermDoesNotLeakExternalArgs(t *testing.T) {
	src := "-brand = { $x }\nmsg = { -brand }\n"
	b := newFakeBundle(t, language.English, src)
	b.isolation = false

	out, errs := resolver.Format(b, "msg", map[string]value.Param{
		"x": value.Single(value.String("leaked")),
	})
	if len(errs) == 0 {
		t.Fatal("expected an unknown-variable error, term args should not see the caller's external args")
	}
	if strings.Contains(out, "leaked") {
		t.Fatalf("got %q, external arg leaked into term resolution", out)
	}
}

func TestFormat_ExplicitFunctionSelector(t *testing.T) {
	src := "msg = { NUMBER($n, kind: \"ordinal\") ->\n    [one] { $n }st\n    [two] { $n }nd\n    [few] { $n }rd\n   *[other] { $n }th\n}\n"
	b := newFakeBundle(t, language.English, src)
	b.isolation = false

	out, errs := resolver.Format(b, "msg", map[string]value.Param{
		"n": value.Single(value.Int(2)),
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if out != "2nd" {
		t.Fatalf("got %q, want ordinal selection off the raw argument value", out)
	}
}

func TestFormat_CycleDetection(t *testing.T) {
	src := "a = { b }\nb = { a }\n"
	b := newFakeBundle(t, language.English, src)
	b.isolation = false

	out, errs := resolver.Format(b, "a", nil)
	if len(errs) == 0 {
		t.Fatal("expected a cycle error")
	}
	if !strings.Contains(out, "dirty") {
		t.Fatalf("got %q, want a dirty marker", out)
	}
}

func TestFormat_UnknownAttribute(t *testing.T) {
	src := "msg = Hello\n    .tooltip = A tooltip\n"
	b := newFakeBundle(t, language.English, src)
	b.isolation = false

	out, errs := resolver.Format(b, "msg", map[string]value.Param{})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors resolving the message itself: %v", errs)
	}
	if out != "Hello" {
		t.Fatalf("got %q", out)
	}

	out, errs = resolver.FormatAttribute(b, "msg", "missing", nil)
	if len(errs) == 0 {
		t.Fatal("expected FormatAttribute to record an unknown-attribute error")
	}
	if out != "{Unknown attribute: msg.missing}" {
		t.Fatalf("got %q", out)
	}
}

func TestFormat_PlaceableLimit(t *testing.T) {
	// Six placeables, max_placeables = 3: the counter must reach exactly
	// max+1 before short-circuiting to the dirty marker, never fewer and
	// never running unbounded.
	src := "many = { $a }{ $b }{ $c }{ $d }{ $e }{ $f }\n"
	b := newFakeBundle(t, language.English, src)
	b.isolation = false
	b.maxPlaceables = 3

	args := map[string]value.Param{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		args[name] = value.Single(value.String(name))
	}

	out, errs := resolver.Format(b, "many", args)
	if len(errs) == 0 {
		t.Fatal("expected a placeable-limit error")
	}
	if !strings.Contains(out, "dirty") {
		t.Fatalf("got %q, want a dirty marker once the limit is exceeded", out)
	}
	if strings.Contains(out, "f") {
		t.Fatalf("got %q, expected placeables after the limit to be short-circuited", out)
	}
}

func TestFormat_PlaceableLimit_ExactlyAtBoundaryIsFine(t *testing.T) {
	src := "three = { $a }{ $b }{ $c }\n"
	b := newFakeBundle(t, language.English, src)
	b.isolation = false
	b.maxPlaceables = 3

	out, errs := resolver.Format(b, "three", map[string]value.Param{
		"a": value.Single(value.String("a")),
		"b": value.Single(value.String("b")),
		"c": value.Single(value.String("c")),
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors at exactly the limit: %v", errs)
	}
	if out != "abc" {
		t.Fatalf("got %q, want all three placeables to resolve", out)
	}
}

func TestFormat_NumberPercent(t *testing.T) {
	src := `ratio = { NUMBER($n, style: "percent") }` + "\n"
	b := newFakeBundle(t, language.English, src)
	b.isolation = false

	out, errs := resolver.Format(b, "ratio", map[string]value.Param{
		"n": value.Single(value.Float(0.42)),
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !strings.Contains(out, "%") {
		t.Fatalf("expected a percent sign in %q", out)
	}
}
