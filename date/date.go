// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

// Package date adapts worldiety/i18n's date.go — a small, deliberately
// non-CLDR date formatter — into the temporal half of spec.md's DATETIME
// function. Full CLDR/ICU date formatting is out of scope per spec.md §1
// ("the concrete numeric/date formatting backend (CLDR/ICU integration)");
// this stays the same kind of pragmatic, hardcoded-pattern formatter the
// teacher shipped, extended to the dateStyle/timeStyle/zone vocabulary
// spec.md §4.6 requires of DATETIME.
package date

import (
	"time"

	"golang.org/x/text/language"
)

// Style is one of the four CSS/ECMA-style widths spec.md §4.6 names for
// dateStyle and timeStyle.
type Style int

const (
	// None means the corresponding style option was not requested.
	None Style = iota
	Short
	Medium
	Long
	Full
)

// ParseStyle maps the option string spellings to Style.
func ParseStyle(s string) (Style, bool) {
	switch s {
	case "short":
		return Short, true
	case "medium":
		return Medium, true
	case "long":
		return Long, true
	case "full":
		return Full, true
	default:
		return None, false
	}
}

func datePattern(tag language.Tag, s Style) string {
	b, _ := tag.Base()
	german := b.String() == "de"

	switch s {
	case Short:
		if german {
			return "02.01.06"
		}
		return "01/02/06"
	case Medium:
		if german {
			return "02.01.2006"
		}
		return "2006-01-02"
	case Long:
		if german {
			return "2. January 2006"
		}
		return "January 2, 2006"
	case Full:
		if german {
			return "Monday, 2. January 2006"
		}
		return "Monday, January 2, 2006"
	}
	return ""
}

func timePattern(tag language.Tag, s Style) string {
	b, _ := tag.Base()
	german := b.String() == "de"

	switch s {
	case Short:
		return "15:04"
	case Medium:
		return "15:04:05"
	case Long, Full:
		if german {
			return "15:04:05 MST"
		}
		return "3:04:05 PM MST"
	}
	return ""
}

// Format renders t under the given locale and styles. At least one of
// dateStyle/timeStyle must be non-None; if both are given they are joined
// with a space, matching the teacher's "Date Time" compound patterns. zone,
// if non-nil, converts t before formatting; spec.md §4.6 requires instants
// to render in UTC by default, so callers pass time.UTC when zone was not
// requested.
func Format(tag language.Tag, dateStyle, timeStyle Style, zone *time.Location, t time.Time) string {
	if zone != nil {
		t = t.In(zone)
	}

	var parts []string
	if dateStyle != None {
		parts = append(parts, datePattern(tag, dateStyle))
	}
	if timeStyle != None {
		parts = append(parts, timePattern(tag, timeStyle))
	}

	if len(parts) == 0 {
		return t.Format(time.RFC3339)
	}

	pattern := parts[0]
	for _, p := range parts[1:] {
		pattern += " " + p
	}

	return t.Format(pattern)
}
