// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package value_test

import (
	"testing"

	"github.com/xyzsd/fluent-sub001/value"
)

func TestValue_AsFloat64(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value
		want float64
		ok   bool
	}{
		{"int", value.Int(42), 42, true},
		{"float", value.Float(3.5), 3.5, true},
		{"string", value.String("x"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.v.AsFloat64()
			if ok != tt.ok || got != tt.want {
				t.Fatalf("AsFloat64() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestValue_Decomposed(t *testing.T) {
	tests := []struct {
		name    string
		v       value.Value
		i, v2, f, tt int
	}{
		{"integer", value.Int(1), 1, 0, 0, 0},
		{"one-fraction-digit", value.Float(1.5), 1, 1, 5, 5},
		{"negative", value.Float(-2.25), 2, 2, 25, 25},
		{"whole-float", value.Float(3.0), 3, 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			i, v, f, tVal := tc.v.Decomposed()
			if i != tc.i || v != tc.v2 || f != tc.f || tVal != tc.tt {
				t.Fatalf("Decomposed() = (%d,%d,%d,%d), want (%d,%d,%d,%d)", i, v, f, tVal, tc.i, tc.v2, tc.f, tc.tt)
			}
		})
	}
}

func TestValue_String(t *testing.T) {
	if got := value.String("hi").String(); got != "hi" {
		t.Fatalf("got %q", got)
	}
	if got := value.Int(7).String(); got != "7" {
		t.Fatalf("got %q", got)
	}
	if got := value.Error("bad").String(); got != "bad" {
		t.Fatalf("got %q", got)
	}
}

func TestOptions_AsEnum(t *testing.T) {
	opts := value.Options{"style": value.StringScalar("Currency")}
	got, ok, err := opts.AsEnum("style", "decimal", "currency", "percent")
	if err != nil || !ok || got != "currency" {
		t.Fatalf("AsEnum() = (%q, %v, %v)", got, ok, err)
	}

	_, ok, err = opts.AsEnum("missing", "a", "b")
	if ok || err != nil {
		t.Fatalf("AsEnum(missing) = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestOptions_AsBool(t *testing.T) {
	opts := value.Options{"flag": value.StringScalar("true"), "bad": value.StringScalar("yes")}

	if v, ok, err := opts.AsBool("flag"); err != nil || !ok || !v {
		t.Fatalf("AsBool(flag) = (%v, %v, %v)", v, ok, err)
	}

	if _, _, err := opts.AsBool("bad"); err == nil {
		t.Fatal("expected error for non-strict boolean string")
	}
}

func TestParams_Count(t *testing.T) {
	ps := value.Params{
		value.Single(value.Int(1)),
		value.List([]value.Value{value.Int(2), value.Int(3)}),
	}
	if got := ps.Count(); got != 3 {
		t.Fatalf("Count() = %d, want 3", got)
	}
}
