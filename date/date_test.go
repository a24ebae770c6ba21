// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package date_test

import (
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/xyzsd/fluent-sub001/date"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in    string
		want  date.Style
		valid bool
	}{
		{"short", date.Short, true},
		{"medium", date.Medium, true},
		{"long", date.Long, true},
		{"full", date.Full, true},
		{"bogus", date.None, false},
	}
	for _, tt := range tests {
		got, ok := date.ParseStyle(tt.in)
		if ok != tt.valid || (ok && got != tt.want) {
			t.Errorf("ParseStyle(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.valid)
		}
	}
}

func TestFormat_DifferentLocalesDiffer(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 13, 4, 0, 0, time.UTC)

	en := date.Format(language.English, date.Medium, date.None, time.UTC, ts)
	de := date.Format(language.German, date.Medium, date.None, time.UTC, ts)

	if en == "" || de == "" {
		t.Fatal("expected non-empty formatted output for both locales")
	}
	if en == de {
		t.Fatalf("expected locale-specific formatting to differ, both produced %q", en)
	}
}
