// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package parser

import "unicode/utf8"

const eof = -1

// stream presents an FTL source as indexable bytes for the ASCII-dominated
// parts of the grammar, decoding UTF-8 codepoints only where the grammar
// admits non-ASCII content: identifiers, text elements, and string literal
// bodies. Line numbers are recovered lazily by counting LF bytes up to an
// offset, since the parser occasionally rewinds its cursor during recovery
// (see Parse's junk-synchronization step) and a running counter would need
// the same rewind logic twice.
type stream struct {
	src []byte
	pos int
}

func newStream(src []byte) *stream {
	return &stream{src: src}
}

func (s *stream) Len() int       { return len(s.src) }
func (s *stream) Pos() int       { return s.pos }
func (s *stream) SetPos(p int)   { s.pos = p }
func (s *stream) HasNext() bool  { return s.pos < len(s.src) }
func (s *stream) Src() []byte    { return s.src }

// Line returns the 1-based source line containing offset.
func (s *stream) Line(offset int) int {
	if offset > len(s.src) {
		offset = len(s.src)
	}

	line := 1
	for i := 0; i < offset; i++ {
		if s.src[i] == '\n' {
			line++
		}
	}

	return line
}

// ByteAt returns the byte at pos+n, or 0 if out of range.
func (s *stream) ByteAt(n int) byte {
	i := s.pos + n
	if i < 0 || i >= len(s.src) {
		return 0
	}

	return s.src[i]
}

// Byte returns the current byte, or 0 at EOF.
func (s *stream) Byte() byte { return s.ByteAt(0) }

// RuneAt decodes the codepoint at pos+n, returning its byte width.
// Returns (eof, 0) if pos+n is at or past the end.
func (s *stream) RuneAt(n int) (rune, int) {
	i := s.pos + n
	if i < 0 || i >= len(s.src) {
		return eof, 0
	}

	r, size := utf8.DecodeRune(s.src[i:])
	return r, size
}

// Advance consumes n bytes.
func (s *stream) Advance(n int) { s.pos += n }

// Slice returns src[start:end] as a string.
func (s *stream) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s.src) {
		end = len(s.src)
	}
	if start > end {
		return ""
	}

	return string(s.src[start:end])
}

// isInlineBlank reports whether b is SPACE or TAB.
func isInlineBlank(b byte) bool { return b == ' ' || b == '\t' }

// isIdentifierStart reports whether r may start an identifier: [A-Za-z].
func isIdentifierStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isIdentifierChar reports whether r may continue an identifier or a
// function identifier: [A-Za-z0-9_-].
func isIdentifierChar(r rune) bool {
	return isIdentifierStart(r) || (r >= '0' && r <= '9') || r == '_' || r == '-'
}

// isFunctionIdentifierChar reports whether r may appear anywhere in a
// function identifier: [A-Z0-9_-].
func isFunctionIdentifierChar(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-'
}

// skipBlankInline consumes SPACE and TAB only, returning the count consumed.
func (s *stream) skipBlankInline() int {
	n := 0
	for isInlineBlank(s.ByteAt(n)) {
		n++
	}
	s.Advance(n)
	return n
}

// peekBlankInlineLen reports how many SPACE/TAB bytes follow the cursor without
// consuming them.
func (s *stream) peekBlankInlineLen() int {
	n := 0
	for isInlineBlank(s.ByteAt(n)) {
		n++
	}
	return n
}

// lineTerminatorAt reports whether the byte at offset n starts a line
// terminator (LF, or CRLF) and returns its width in bytes. A bare CR (not
// followed by LF) is not a line terminator.
func (s *stream) lineTerminatorAt(n int) int {
	if s.ByteAt(n) == '\n' {
		return 1
	}
	if s.ByteAt(n) == '\r' && s.ByteAt(n+1) == '\n' {
		return 2
	}
	return 0
}

// skipToEOL advances to the next LF without consuming it (or to EOF).
func (s *stream) skipToEOL() {
	for s.HasNext() {
		if s.Byte() == '\n' {
			return
		}
		_, size := s.RuneAt(0)
		if size == 0 {
			size = 1
		}
		s.Advance(size)
	}
}

// skipBlankBlock consumes zero or more full blank lines: runs of inline
// blank terminated by a line terminator. It stops at the first line that has
// non-blank content before its terminator, or at EOF. Returns the number of
// line terminators consumed, matching spec.md §4.1's skip_blank_block
// contract.
func (s *stream) skipBlankBlock() int {
	lines := 0
	for {
		n := s.peekBlankInlineLen()
		term := s.lineTerminatorAt(n)
		if term == 0 {
			return lines
		}

		s.Advance(n + term)
		lines++
	}
}

// skipBlank consumes any mixture of blank lines and trailing inline blank,
// used inside placeables where newlines may appear freely.
func (s *stream) skipBlank() {
	for {
		before := s.pos
		s.skipBlankBlock()
		s.skipBlankInline()
		if s.pos == before {
			return
		}
	}
}

// identifierEnd advances while the current rune is a valid identifier
// continuation character. The caller is responsible for having already
// validated and consumed the initial [A-Za-z].
func (s *stream) identifierEnd() {
	for {
		r, size := s.RuneAt(0)
		if size == 0 || !isIdentifierChar(r) {
			return
		}
		s.Advance(size)
	}
}
