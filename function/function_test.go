// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package function_test

import (
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/xyzsd/fluent-sub001/function"
	"github.com/xyzsd/fluent-sub001/value"
)

type testCtx struct{ tag language.Tag }

func (c testCtx) Locale() language.Tag { return c.tag }

func TestRegistry_Resolve_Unknown(t *testing.T) {
	r := function.NewRegistry(0)
	if _, err := r.Resolve("NOPE", language.English, nil); err == nil {
		t.Fatal("expected error for unregistered function")
	}
}

func TestRegistry_Standard_HasAllNames(t *testing.T) {
	r := function.NewRegistry(0, function.Standard()...)
	want := []string{
		"NUMBER", "DATETIME", "LIST", "ABS", "SIGN", "OFFSET",
		"CASE", "COUNT", "STRINGSORT", "NUMSORT", "XTEMPORAL", "BOOLEAN",
	}
	for _, name := range want {
		if !r.Has(name) {
			t.Errorf("registry missing standard function %q", name)
		}
	}
}

func TestNumber_FormatDecimal(t *testing.T) {
	r := function.NewRegistry(0, function.Standard()...)
	fn, err := r.Resolve("NUMBER", language.English, nil)
	if err != nil {
		t.Fatal(err)
	}

	out, err := fn.Formatter(value.Float(1234.5), nil, testCtx{language.English})
	if err != nil {
		t.Fatal(err)
	}
	if !out.IsString() {
		t.Fatalf("expected string, got %v", out.Kind())
	}
}

func TestNumber_SelectCardinal(t *testing.T) {
	r := function.NewRegistry(0, function.Standard()...)
	fn, err := r.Resolve("NUMBER", language.English, nil)
	if err != nil {
		t.Fatal(err)
	}

	keys := []string{"one", "other"}
	got := fn.Selector(value.Int(1), keys, "other", nil, testCtx{language.English})
	if got != "one" {
		t.Fatalf("Selector(1) = %q, want one", got)
	}

	got = fn.Selector(value.Int(5), keys, "other", nil, testCtx{language.English})
	if got != "other" {
		t.Fatalf("Selector(5) = %q, want other", got)
	}
}

func TestAbs_PassesThroughNonNumbers(t *testing.T) {
	r := function.NewRegistry(0, function.Standard()...)
	fn, err := r.Resolve("ABS", language.English, nil)
	if err != nil {
		t.Fatal(err)
	}

	out, err := fn.Transform(value.Params{value.Single(value.String("x"))}, nil, testCtx{language.English})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || !out[0].IsString() {
		t.Fatalf("expected passthrough string, got %+v", out)
	}
}

func TestAbs_Negative(t *testing.T) {
	r := function.NewRegistry(0, function.Standard()...)
	fn, _ := r.Resolve("ABS", language.English, nil)

	out, err := fn.Transform(value.Params{value.Single(value.Float(-3))}, nil, testCtx{language.English})
	if err != nil {
		t.Fatal(err)
	}
	if f, _ := out[0].AsFloat64(); f != 3 {
		t.Fatalf("ABS(-3) = %v, want 3", f)
	}
}

func TestOffset_RequiresExactlyOneDirection(t *testing.T) {
	r := function.NewRegistry(0, function.Standard()...)
	fn, _ := r.Resolve("OFFSET", language.English, nil)

	_, err := fn.Transform(value.Params{value.Single(value.Int(5))}, nil, testCtx{language.English})
	if err == nil {
		t.Fatal("expected error when neither increment nor decrement is given")
	}

	out, err := fn.Transform(value.Params{value.Single(value.Int(5))}, value.Options{"increment": value.IntScalar(2)}, testCtx{language.English})
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := out[0].AsInt64(); n != 7 {
		t.Fatalf("OFFSET(5, increment: 2) = %d, want 7", n)
	}
}

func TestCount_FlattensLists(t *testing.T) {
	r := function.NewRegistry(0, function.Standard()...)
	fn, _ := r.Resolve("COUNT", language.English, nil)

	params := value.Params{
		value.Single(value.Int(1)),
		value.List([]value.Value{value.Int(2), value.Int(3)}),
	}
	out, err := fn.Transform(params, nil, testCtx{language.English})
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := out[0].AsInt64(); n != 3 {
		t.Fatalf("COUNT = %d, want 3", n)
	}
}

func TestList_JoinsWithConjunction(t *testing.T) {
	r := function.NewRegistry(0, function.Standard()...)
	fn, _ := r.Resolve("LIST", language.English, nil)

	out, err := fn.Reducer([]value.Value{value.String("a"), value.String("b"), value.String("c")}, nil, testCtx{language.English})
	if err != nil {
		t.Fatal(err)
	}
	if out != "a, b, and c" {
		t.Fatalf("LIST reducer = %q", out)
	}
}

func TestBoolean_FormatsCustomBool(t *testing.T) {
	r := function.NewRegistry(0, function.Standard()...)
	fn, _ := r.Resolve("BOOLEAN", language.English, nil)

	out, err := fn.Transform(value.Params{value.Single(value.Custom(true))}, nil, testCtx{language.English})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].String() != "true" {
		t.Fatalf("BOOLEAN(true) = %q", out[0].String())
	}
}

func TestCase_UppersAndLowers(t *testing.T) {
	r := function.NewRegistry(0, function.Standard()...)
	fn, _ := r.Resolve("CASE", language.English, nil)

	out, err := fn.Transform(value.Params{value.Single(value.String("hello"))}, value.Options{"style": value.StringScalar("upper")}, testCtx{language.English})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].String() != "HELLO" {
		t.Fatalf("CASE(hello, upper) = %q", out[0].String())
	}

	out, err = fn.Transform(value.Params{value.Single(value.String("HELLO"))}, value.Options{"style": value.StringScalar("lower")}, testCtx{language.English})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].String() != "hello" {
		t.Fatalf("CASE(HELLO, lower) = %q", out[0].String())
	}
}

func TestCase_PassesThroughNonStrings(t *testing.T) {
	r := function.NewRegistry(0, function.Standard()...)
	fn, _ := r.Resolve("CASE", language.English, nil)

	out, err := fn.Transform(value.Params{value.Single(value.Int(5))}, nil, testCtx{language.English})
	if err != nil {
		t.Fatal(err)
	}
	if !out[0].IsNumber() {
		t.Fatalf("expected non-string to pass through unchanged, got %v", out[0].Kind())
	}
}

func TestStringsort_OrdersAndReverses(t *testing.T) {
	r := function.NewRegistry(0, function.Standard()...)
	fn, _ := r.Resolve("STRINGSORT", language.English, nil)

	params := value.Params{value.List([]value.Value{value.String("banana"), value.String("apple"), value.String("cherry")})}

	out, err := fn.Transform(params, nil, testCtx{language.English})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].String() != "apple" || out[1].String() != "banana" || out[2].String() != "cherry" {
		t.Fatalf("STRINGSORT natural order = %v", out)
	}

	out, err = fn.Transform(params, value.Options{"order": value.StringScalar("reversed")}, testCtx{language.English})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].String() != "cherry" || out[2].String() != "apple" {
		t.Fatalf("STRINGSORT reversed order = %v", out)
	}
}

func TestNumsort_AscendingAndDescending(t *testing.T) {
	r := function.NewRegistry(0, function.Standard()...)
	fn, _ := r.Resolve("NUMSORT", language.English, nil)

	params := value.Params{value.List([]value.Value{value.Int(3), value.Int(1), value.Int(2)})}

	out, err := fn.Transform(params, nil, testCtx{language.English})
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []int64{1, 2, 3} {
		if n, _ := out[i].AsInt64(); n != want {
			t.Fatalf("NUMSORT ascending[%d] = %d, want %d", i, n, want)
		}
	}

	out, err = fn.Transform(params, value.Options{"order": value.StringScalar("descending")}, testCtx{language.English})
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []int64{3, 2, 1} {
		if n, _ := out[i].AsInt64(); n != want {
			t.Fatalf("NUMSORT descending[%d] = %d, want %d", i, n, want)
		}
	}
}

func TestNumsort_RejectsNonNumeric(t *testing.T) {
	r := function.NewRegistry(0, function.Standard()...)
	fn, _ := r.Resolve("NUMSORT", language.English, nil)

	_, err := fn.Transform(value.Params{value.Single(value.String("x"))}, nil, testCtx{language.English})
	if err == nil {
		t.Fatal("expected error for non-numeric argument")
	}
}

func TestXtemporal_ExtractsFields(t *testing.T) {
	r := function.NewRegistry(0, function.Standard()...)
	fn, _ := r.Resolve("XTEMPORAL", language.English, nil)

	ts := time.Date(2024, time.March, 5, 13, 4, 0, 0, time.UTC)

	out, err := fn.Transform(value.Params{value.Single(value.Temporal(ts))}, value.Options{"field": value.StringScalar("year")}, testCtx{language.English})
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := out[0].AsInt64(); n != 2024 {
		t.Fatalf("XTEMPORAL(year) = %d, want 2024", n)
	}

	out, err = fn.Transform(value.Params{value.Single(value.Temporal(ts))}, value.Options{"field": value.StringScalar("month")}, testCtx{language.English})
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := out[0].AsInt64(); n != 3 {
		t.Fatalf("XTEMPORAL(month) = %d, want 3", n)
	}
}

func TestXtemporal_RejectsUnsupportedField(t *testing.T) {
	r := function.NewRegistry(0, function.Standard()...)
	fn, _ := r.Resolve("XTEMPORAL", language.English, nil)

	ts := time.Date(2024, time.March, 5, 13, 4, 0, 0, time.UTC)
	_, err := fn.Transform(value.Params{value.Single(value.Temporal(ts))}, value.Options{"field": value.StringScalar("fortnight")}, testCtx{language.English})
	if err == nil {
		t.Fatal("expected error for unsupported field")
	}
}

func TestDatetime_FormatsTemporal(t *testing.T) {
	r := function.NewRegistry(0, function.Standard()...)
	fn, _ := r.Resolve("DATETIME", language.English, nil)

	ts := time.Date(2024, time.March, 5, 13, 4, 0, 0, time.UTC)
	out, err := fn.Formatter(value.Temporal(ts), nil, testCtx{language.English})
	if err != nil {
		t.Fatal(err)
	}
	if !out.IsString() || out.String() == "" {
		t.Fatalf("expected non-empty formatted string, got %+v", out)
	}
}

func TestDatetime_PassesThroughNonTemporal(t *testing.T) {
	r := function.NewRegistry(0, function.Standard()...)
	fn, _ := r.Resolve("DATETIME", language.English, nil)

	out, err := fn.Formatter(value.String("x"), nil, testCtx{language.English})
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "x" {
		t.Fatalf("expected passthrough, got %q", out.String())
	}
}
