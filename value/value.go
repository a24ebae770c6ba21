// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

// Package value defines the runtime value model shared by the resolver and
// the function subsystem: the tagged FluentValue union of spec.md §3 and the
// Options map of spec.md §4.6. It sits below both resolver and function so
// neither has to import the other just to pass values around.
package value

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"
)

// Kind tags which alternative of the value union is populated.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindTemporal
	KindCustom
	KindError
)

// NumberKind distinguishes the three numeric representations spec.md §3
// permits: "numeric is a 64-bit signed integer, IEEE-754 double, or
// arbitrary-precision decimal".
type NumberKind int

const (
	NumberInt64 NumberKind = iota
	NumberFloat64
	NumberDecimal
)

// Value is the FluentValue tagged union. The zero Value is the empty string.
type Value struct {
	kind Kind

	str string

	numKind NumberKind
	i64     int64
	f64     float64
	dec     *big.Float

	temporal time.Time
	isUTC    bool

	custom any
}

func String(s string) Value { return Value{kind: KindString, str: s} }

func Int(n int64) Value { return Value{kind: KindNumber, numKind: NumberInt64, i64: n} }

func Float(f float64) Value { return Value{kind: KindNumber, numKind: NumberFloat64, f64: f} }

// Decimal wraps an arbitrary-precision decimal, grounded on
// open-policy-agent/opa's ast/parser.go use of math/big.Float for
// arbitrary-precision number literals.
func Decimal(d *big.Float) Value { return Value{kind: KindNumber, numKind: NumberDecimal, dec: d} }

func Temporal(t time.Time) Value { return Value{kind: KindTemporal, temporal: t} }

func Custom(v any) Value { return Value{kind: KindCustom, custom: v} }

// Error constructs the propagating error sentinel of spec.md §3. Its
// rendering is the caller's responsibility (the resolver wraps it per
// spec.md §6/§7's textual forms); String here returns the raw message.
func Error(message string) Value { return Value{kind: KindError, str: message} }

func (v Value) Kind() Kind         { return v.kind }
func (v Value) IsString() bool     { return v.kind == KindString }
func (v Value) IsNumber() bool     { return v.kind == KindNumber }
func (v Value) IsTemporal() bool   { return v.kind == KindTemporal }
func (v Value) IsCustom() bool     { return v.kind == KindCustom }
func (v Value) IsError() bool      { return v.kind == KindError }
func (v Value) NumberKind() NumberKind { return v.numKind }
func (v Value) ErrorMessage() string   { return v.str }
func (v Value) Temporal() time.Time    { return v.temporal }
func (v Value) Custom() any            { return v.custom }

// AsFloat64 reports the value as a float64 regardless of its NumberKind.
// ok is false for non-numbers.
func (v Value) AsFloat64() (float64, bool) {
	switch v.kind {
	case KindNumber:
		switch v.numKind {
		case NumberInt64:
			return float64(v.i64), true
		case NumberFloat64:
			return v.f64, true
		case NumberDecimal:
			f, _ := v.dec.Float64()
			return f, true
		}
	}
	return 0, false
}

// AsInt64 reports the value as an int64 if it is integral. ok is false for
// non-numbers or numbers with a fractional part.
func (v Value) AsInt64() (int64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	switch v.numKind {
	case NumberInt64:
		return v.i64, true
	case NumberFloat64:
		if v.f64 != float64(int64(v.f64)) {
			return 0, false
		}
		return int64(v.f64), true
	case NumberDecimal:
		if !v.dec.IsInt() {
			return 0, false
		}
		i, _ := v.dec.Int64()
		return i, true
	}
	return 0, false
}

// Decomposed returns the CLDR plural operands (i, v, f, t) for this numeric
// value, ported near-verbatim from worldiety/i18n's quantity.go
// decomposeNumber: i is the truncated integer part, v is the number of
// visible fraction digits, f is those digits as an integer, t is f with
// trailing zeros removed. Like the teacher, this approximates: a float64
// cannot distinguish "1.20" from "1.2", so trailing zeros are lost.
func (val Value) Decomposed() (i, v, f, t int) {
	n, _ := val.AsFloat64()
	if n < 0 {
		n = -n
	}

	i = int(math.Floor(n))

	frac := n - float64(i)
	if frac == 0 {
		return i, 0, 0, 0
	}

	const maxDigits = 9
	scale := math.Pow10(maxDigits)
	scaled := int64(math.Round(frac * scale))

	v = maxDigits
	for v > 0 && scaled%10 == 0 {
		scaled /= 10
		v--
	}

	f = int(math.Round(frac * math.Pow10(v)))
	t = int(scaled)

	return i, v, f, t
}

// String renders a best-effort textual form, used for coercions (e.g.
// STRINGSORT's "non-strings are coerced via their formatted representation")
// and debugging; it does not apply any function-specific formatting.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		switch v.numKind {
		case NumberInt64:
			return strconv.FormatInt(v.i64, 10)
		case NumberFloat64:
			return strconv.FormatFloat(v.f64, 'g', -1, 64)
		case NumberDecimal:
			return v.dec.Text('g', -1)
		}
	case KindTemporal:
		return v.temporal.Format(time.RFC3339)
	case KindCustom:
		return fmt.Sprintf("%v", v.custom)
	case KindError:
		return v.str
	}
	return ""
}
