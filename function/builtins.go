// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package function

// Standard returns the closed set of standard functions spec.md §4.6
// requires: NUMBER, DATETIME, LIST, ABS, SIGN, OFFSET, CASE, COUNT,
// STRINGSORT, NUMSORT, XTEMPORAL, BOOLEAN.
func Standard() []*Factory {
	return []*Factory{
		NumberFactory(),
		DatetimeFactory(),
		ListFactory(),
		AbsFactory(),
		SignFactory(),
		OffsetFactory(),
		CaseFactory(),
		CountFactory(),
		StringsortFactory(),
		NumsortFactory(),
		XtemporalFactory(),
		BooleanFactory(),
	}
}
