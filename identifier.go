// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package fluent

import "regexp"

// identifierRE matches spec.md §3's grammar for Message/Term/Variable/
// Attribute identifiers: [A-Za-z][A-Za-z0-9_-]*.
var identifierRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// functionIdentifierRE additionally requires an uppercase-initial,
// all-[A-Z0-9_-] spelling, matching the parser's isValidFunctionName check.
var functionIdentifierRE = regexp.MustCompile(`^[A-Z][A-Z0-9_-]*$`)

// ValidIdentifier reports whether name is a well-formed Fluent identifier.
func ValidIdentifier(name string) bool {
	return identifierRE.MatchString(name)
}

// ValidFunctionIdentifier reports whether name is a well-formed Fluent
// function identifier.
func ValidFunctionIdentifier(name string) bool {
	return functionIdentifierRE.MatchString(name)
}
