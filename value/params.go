// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package value

// Param is one positional argument as resolved per spec.md §4.6: "each of
// which is either a single value or a list of values (preserving the
// distinction is important — functions like COUNT treat them differently)".
type Param struct {
	Values []Value
	IsList bool
}

func Single(v Value) Param { return Param{Values: []Value{v}} }

func List(vs []Value) Param { return Param{Values: vs, IsList: true} }

// First returns the first value, or an error value if Param carries none.
func (p Param) First() Value {
	if len(p.Values) == 0 {
		return Error("empty argument")
	}
	return p.Values[0]
}

// Params is the ordered ResolvedParameters collection passed to functions.
type Params []Param

// Count sums the number of values across all params, flattening lists and
// singles alike — the definition COUNT uses (spec.md §4.6).
func (ps Params) Count() int {
	n := 0
	for _, p := range ps {
		n += len(p.Values)
	}
	return n
}

// Flatten returns every value across every param in order.
func (ps Params) Flatten() []Value {
	var out []Value
	for _, p := range ps {
		out = append(out, p.Values...)
	}
	return out
}
