// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package fluent_test

import (
	"testing"

	fluent "github.com/xyzsd/fluent-sub001"
)

func TestValidIdentifier(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"hello", true},
		{"hello-world", true},
		{"hello_world2", true},
		{"", false},
		{"2hello", false},
		{"-hello", false},
		{"hello world", false},
	}
	for _, tt := range tests {
		if got := fluent.ValidIdentifier(tt.name); got != tt.want {
			t.Errorf("ValidIdentifier(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValidFunctionIdentifier(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"NUMBER", true},
		{"STRING_SORT", true},
		{"Number", false},
		{"number", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := fluent.ValidFunctionIdentifier(tt.name); got != tt.want {
			t.Errorf("ValidFunctionIdentifier(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
