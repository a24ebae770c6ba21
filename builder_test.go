// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package fluent_test

import (
	"testing"

	"golang.org/x/text/language"

	fluent "github.com/xyzsd/fluent-sub001"
)

func TestBuilder_DuplicateMessage(t *testing.T) {
	b := fluent.NewBuilder(language.English)

	if errs := b.AddResource([]byte("hello = Hi\n")); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	errs := b.AddResource([]byte("hello = Howdy\n"))
	if len(errs) == 0 {
		t.Fatal("expected a duplicate-identifier diagnostic")
	}

	bundle, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	out, _ := bundle.Format("hello", nil)
	if out != "Hi" {
		t.Fatalf("expected the first-registered value to win, got %q", out)
	}
}

func TestBuilder_Build_DefaultsMaxPlaceables(t *testing.T) {
	b := fluent.NewBuilder(language.English, fluent.WithMaxPlaceables(0))
	bundle, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if bundle.MaxPlaceables() <= 0 {
		t.Fatalf("expected a positive default, got %d", bundle.MaxPlaceables())
	}
}

func TestBuilder_WithoutStandardFunctions(t *testing.T) {
	b := fluent.NewBuilder(language.English, fluent.WithoutStandardFunctions())
	b.AddResource([]byte("msg = { NUMBER($n) }\n"))
	bundle, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	out, errs := bundle.Format("msg", fluent.Args("n", 1))
	if len(errs) == 0 {
		t.Fatal("expected an unknown-function error")
	}
	if out != "{Unknown function: NUMBER()}" {
		t.Fatalf("got %q", out)
	}
}
