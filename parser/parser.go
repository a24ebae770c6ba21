// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

// Package parser implements a recursive-descent, byte-level parser for the
// Fluent Translation List (FTL) grammar described in spec.md §4.2. It
// produces an *ast.Resource plus a list of recoverable *Error diagnostics;
// parsing never fails outright — on error inside an entry, the parser
// records the error, resynchronizes to the next line that can start a new
// entry, and emits the skipped bytes as ast.Junk.
//
// The recursive-descent structure and indentation-stripping algorithm are
// grounded on the lus/fluent.go reference parser (see
// _examples/other_examples); the scanning-primitive naming
// (skipBlankInline/skipBlankBlock/skipBlank) follows spec.md §4.1 and the
// worldiety/i18n template tokenizer's habit of a hand-rolled byte loop with
// an explicit builder rather than a lexer-generator.
package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xyzsd/fluent-sub001/ast"
)

// Parser holds the mutable cursor over one FTL source.
type Parser struct {
	s      *stream
	errors []*Error
}

// New creates a parser over src.
func New(src []byte) *Parser {
	return &Parser{s: newStream(src)}
}

// Parse parses src into a Resource. It always returns a usable Resource;
// errors is the accumulated, non-fatal diagnostic list.
func Parse(src []byte) (*ast.Resource, []*Error) {
	p := New(src)
	return p.Parse()
}

func (p *Parser) fail(code Code, offset int, format string, args ...any) *Error {
	return newError(code, offset, p.s.Line(offset), format, args...)
}

// Parse runs the top-level entry loop.
func (p *Parser) Parse() (*ast.Resource, []*Error) {
	p.s.skipBlankBlock()

	res := &ast.Resource{}
	var pendingComment *ast.Comment

	for p.s.HasNext() {
		start := p.s.Pos()
		entry, err := p.parseEntryOrJunk(start)

		if junk, ok := entry.(*ast.Junk); ok {
			res.Junk = append(res.Junk, *junk)
			if err != nil {
				p.errors = append(p.errors, err)
			}
			pendingComment = nil
			continue
		}

		blankLines := p.s.skipBlankBlock()

		if comment, ok := entry.(*ast.Comment); ok && blankLines <= 1 && p.s.HasNext() {
			// A comment immediately followed by another entry (no blank
			// line between) is held back: it attaches to that next entry
			// instead of standing alone. parseComment leaves the cursor on
			// the comment's own trailing line terminator rather than past
			// it, so skipBlankBlock above always counts that terminator as
			// the first "blank" line; blankLines is 1, not 0, when there is
			// truly no blank line separating the comment from what follows.
			pendingComment = comment
			continue
		}

		if pendingComment != nil {
			switch e := entry.(type) {
			case *ast.Message:
				e.Comment = pendingComment
				e.Span.Start = pendingComment.Span.Start
			case *ast.Term:
				e.Comment = pendingComment
				e.Span.Start = pendingComment.Span.Start
			default:
				res.Entries = append(res.Entries, pendingComment)
			}
			pendingComment = nil
		}

		res.Entries = append(res.Entries, entry.(ast.Entry))
	}

	if pendingComment != nil {
		res.Entries = append(res.Entries, pendingComment)
	}

	return res, p.errors
}

// parseEntryOrJunk parses one entry; on failure it resynchronizes to the
// next line that can start an entry and returns an *ast.Junk covering the
// skipped bytes.
func (p *Parser) parseEntryOrJunk(start int) (any, *Error) {
	entry, perr := p.parseEntry()
	if perr == nil {
		return entry, nil
	}
	err, ok := perr.(*Error)
	if !ok {
		err = p.fail(E0002, start, "%v", perr)
	}

	// Resynchronize: find the next line break immediately followed by a
	// byte that can start a new entry (identifier start, '-', '#', or EOF).
	for p.s.HasNext() {
		if p.s.Byte() == '\n' {
			p.s.Advance(1)
			if !p.s.HasNext() || isEntryStart(p.s.Byte()) {
				break
			}
			continue
		}
		_, size := p.s.RuneAt(0)
		if size == 0 {
			size = 1
		}
		p.s.Advance(size)
	}

	end := p.s.Pos()
	content := p.s.Slice(start, end)
	return &ast.Junk{
		Span:        ast.Span{Start: start, End: end},
		Content:     content,
		Annotations: []string{err.Error()},
	}, err
}

func isEntryStart(b byte) bool {
	r := rune(b)
	return isIdentifierStart(r) || b == '-' || b == '#'
}

func (p *Parser) parseEntry() (any, error) {
	switch p.s.Byte() {
	case '#':
		return p.parseComment()
	case '-':
		return p.parseTerm()
	default:
		return p.parseMessage()
	}
}

// parseComment parses a run of same-level '#'/'##'/'###' lines into one
// Comment entry.
func (p *Parser) parseComment() (*ast.Comment, error) {
	start := p.s.Pos()
	level := -1
	var content strings.Builder

	for {
		if level == -1 {
			n := 0
			for p.s.ByteAt(n) == '#' && n < 3 {
				n++
			}
			if n == 0 || n > 3 {
				return nil, p.fail(E0003, p.s.Pos(), "expected '#'")
			}
			level = n - 1
		}
		p.s.Advance(level + 1)

		if b := p.s.Byte(); b != '\n' && p.s.HasNext() {
			if b != ' ' {
				return nil, p.fail(E0003, p.s.Pos(), "expected ' ' after comment sigil")
			}
			p.s.Advance(1)

			lineStart := p.s.Pos()
			p.s.skipToEOL()
			content.WriteString(p.s.Slice(lineStart, p.s.Pos()))
		}

		// Continue only if the next line is a comment of the same level.
		if p.s.Byte() != '\n' {
			break
		}

		matches := true
		for i := 0; i <= level; i++ {
			if p.s.ByteAt(1+i) != '#' {
				matches = false
				break
			}
		}
		if !matches {
			break
		}
		next := p.s.ByteAt(level + 2)
		if next != ' ' && next != '\n' {
			break
		}

		content.WriteByte('\n')
		p.s.Advance(1)
	}

	end := p.s.Pos()
	var cl ast.CommentLevel
	switch level {
	case 0:
		cl = ast.CommentLine
	case 1:
		cl = ast.CommentGroup
	case 2:
		cl = ast.CommentResource
	}

	return &ast.Comment{
		Level:   cl,
		Content: content.String(),
		Span:    ast.Span{Start: start, End: end},
	}, nil
}

func (p *Parser) parseTerm() (*ast.Term, error) {
	start := p.s.Pos()

	if p.s.Byte() != '-' {
		return nil, p.fail(E0003, p.s.Pos(), "expected '-'")
	}
	p.s.Advance(1)

	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	p.s.skipBlankInline()
	if p.s.Byte() != '=' {
		return nil, p.fail(E0003, p.s.Pos(), "expected '='")
	}
	p.s.Advance(1)

	pattern, err := p.parseOptionalPattern()
	if err != nil {
		return nil, err
	}
	if pattern == nil {
		return nil, p.fail(E0006, p.s.Pos(), "expected term value")
	}

	attrs, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}

	return &ast.Term{
		ID:         id,
		Pattern:    *pattern,
		Attributes: attrs,
		Span:       ast.Span{Start: start, End: p.s.Pos()},
	}, nil
}

func (p *Parser) parseMessage() (*ast.Message, error) {
	start := p.s.Pos()

	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	p.s.skipBlankInline()
	if p.s.Byte() != '=' {
		return nil, p.fail(E0003, p.s.Pos(), "expected '='")
	}
	p.s.Advance(1)

	pattern, err := p.parseOptionalPattern()
	if err != nil {
		return nil, err
	}

	attrs, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}

	if pattern == nil && len(attrs) == 0 {
		return nil, p.fail(E0005, p.s.Pos(), "expected message value or at least one attribute")
	}

	return &ast.Message{
		ID:         id,
		Pattern:    pattern,
		Attributes: attrs,
		Span:       ast.Span{Start: start, End: p.s.Pos()},
	}, nil
}

func (p *Parser) parseAttributes() ([]ast.Attribute, error) {
	var attrs []ast.Attribute

	for {
		save := p.s.Pos()
		// An attribute starts on a following line: consume the line
		// terminator(s) ending the value, then look for the '.'.
		lines := p.s.skipBlankBlock()
		n := p.s.peekBlankInlineLen()
		if lines == 0 || p.s.ByteAt(n) != '.' {
			p.s.SetPos(save)
			return attrs, nil
		}
		p.s.Advance(n)

		attr, err := p.parseAttribute()
		if err != nil {
			p.s.SetPos(save)
			return attrs, err
		}
		attrs = append(attrs, *attr)
	}
}

func (p *Parser) parseAttribute() (*ast.Attribute, error) {
	start := p.s.Pos()
	p.s.Advance(1) // '.'

	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	p.s.skipBlankInline()
	if p.s.Byte() != '=' {
		return nil, p.fail(E0003, p.s.Pos(), "expected '='")
	}
	p.s.Advance(1)

	pattern, err := p.parseOptionalPattern()
	if err != nil {
		return nil, err
	}
	if pattern == nil {
		return nil, p.fail(E0012, p.s.Pos(), "attribute needs a value")
	}

	return &ast.Attribute{
		ID:      id,
		Pattern: *pattern,
		Span:    ast.Span{Start: start, End: p.s.Pos()},
	}, nil
}

// parseOptionalPattern returns nil if the current position has no pattern
// value (EOF, or an immediately following EOL that begins a new
// construct), otherwise parses one.
func (p *Parser) parseOptionalPattern() (*ast.Pattern, error) {
	inlineBlank := p.s.peekBlankInlineLen()

	if !p.s.HasNext() || (p.s.Pos()+inlineBlank >= p.s.Len()) {
		return nil, nil
	}

	// A line terminator (LF, or CRLF) right after the inline blank means the
	// value starts on a continuation line; anything else is inline content
	// on this same line. Comparing only against '\n' would misread a CRLF's
	// leading '\r' as inline content.
	if p.s.lineTerminatorAt(inlineBlank) == 0 {
		p.s.Advance(inlineBlank)
		return p.parsePattern(false)
	}

	// Block form: the pattern starts on a continuation line. Peek ahead to
	// decide whether such a line exists and is eligible.
	save := p.s.Pos()
	blankLines := p.s.skipBlankBlock()
	indent := p.s.peekBlankInlineLen()
	firstOnLine := p.s.ByteAt(indent)

	if blankLines == 0 || (firstOnLine != '{' && (indent == 0 || isBlockTerminator(firstOnLine))) {
		p.s.SetPos(save)
		return nil, nil
	}

	p.s.Advance(indent)
	return p.parsePattern(true)
}

func isBlockTerminator(b byte) bool {
	return b == '}' || b == '.' || b == '[' || b == '*'
}

// patElem is an intermediate pattern element produced during the first
// parse pass, before common-indent stripping.
type patElem struct {
	placeable *ast.Placeable
	text      string // used for both text runs and indent markers
	span      ast.Span
	isIndent  bool
}

// parsePattern implements spec.md §4.2's two-pass indentation algorithm:
// first collect raw text/placeable/indent elements, then compute the common
// indent across non-blank continuation lines and strip it.
func (p *Parser) parsePattern(block bool) (*ast.Pattern, error) {
	start := p.s.Pos()

	commonIndent := -1 // -1 == unset (sentinel for "no continuation line seen yet")
	var elems []patElem

	if block {
		// The first line's own indent was already consumed by the caller
		// and does not participate in common-indent computation.
	}

	for p.s.HasNext() {
		switch p.s.Byte() {
		case '{':
			pstart := p.s.Pos()
			ph, err := p.parsePlaceable()
			if err != nil {
				return nil, err
			}
			ph.Span = ast.Span{Start: pstart, End: p.s.Pos()}
			elems = append(elems, patElem{placeable: ph, span: ph.Span})
		case '}':
			return nil, p.fail(E0027, p.s.Pos(), "unbalanced closing brace")
		case '\n':
			indentStart := p.s.Pos()
			save := p.s.Pos()
			blankLines := p.s.skipBlankBlock()
			indent := p.s.peekBlankInlineLen()
			first := p.s.ByteAt(indent)

			if first != '{' && (indent == 0 || isBlockTerminator(first)) {
				p.s.SetPos(save)
				goto doneElements
			}

			// blankLines-1 blank lines precede the indented continuation
			// line; each becomes a literal newline.
			newlines := strings.Repeat("\n", blankLines)
			p.s.Advance(indent)

			if first != '{' {
				if commonIndent == -1 || indent < commonIndent {
					commonIndent = indent
				}
			}

			elems = append(elems, patElem{
				text:     newlines + strings.Repeat(" ", indent),
				isIndent: true,
				span:     ast.Span{Start: indentStart, End: p.s.Pos()},
			})
		default:
			tstart := p.s.Pos()
			text, err := p.parseTextRun()
			if err != nil {
				return nil, err
			}
			elems = append(elems, patElem{text: text, span: ast.Span{Start: tstart, End: p.s.Pos()}})
		}
	}

doneElements:
	if commonIndent == -1 {
		commonIndent = 0
	}

	var out []ast.PatternElement
	var textBuf strings.Builder
	var textSpan ast.Span
	haveText := false

	flush := func() {
		if haveText {
			out = append(out, &ast.TextElement{Value: textBuf.String(), Span: textSpan})
			textBuf.Reset()
			haveText = false
		}
	}

	for _, e := range elems {
		if e.placeable != nil {
			flush()
			out = append(out, e.placeable)
			continue
		}

		v := e.text
		if e.isIndent {
			if len(v) > commonIndent {
				// strip commonIndent worth of leading spaces from the
				// inline-indent portion only (newlines stay intact).
				nl := strings.Count(v, "\n")
				v = v[nl:]
				if len(v) >= commonIndent {
					v = v[commonIndent:]
				}
				v = strings.Repeat("\n", nl) + v
			} else {
				nl := strings.Count(v, "\n")
				v = strings.Repeat("\n", nl)
			}

			if v == "" {
				continue
			}
		}

		if !haveText {
			textSpan = e.span
			haveText = true
		} else {
			textSpan.End = e.span.End
		}
		textBuf.WriteString(v)
	}
	flush()

	// Trim trailing spaces (not newlines) of the final text element; if it
	// becomes empty, drop it.
	if n := len(out); n > 0 {
		if te, ok := out[n-1].(*ast.TextElement); ok {
			te.Value = strings.TrimRight(te.Value, " ")
			if te.Value == "" {
				out = out[:n-1]
			}
		}
	}

	if len(out) == 0 {
		// An empty pattern is only legal as the value "" (a single empty
		// text element keeps the pattern's invariant of being non-empty
		// when reachable — see spec.md §3).
		out = []ast.PatternElement{&ast.TextElement{Value: "", Span: ast.Span{Start: start, End: p.s.Pos()}}}
	}

	return &ast.Pattern{Elements: out, Span: ast.Span{Start: start, End: p.s.Pos()}}, nil
}

func (p *Parser) parseTextRun() (string, error) {
	var buf strings.Builder
	for p.s.HasNext() {
		b := p.s.Byte()
		if b == '{' || b == '}' || b == '\n' {
			break
		}
		if b == '\r' && p.s.ByteAt(1) == '\n' {
			// CRLF terminator: consume the CR without emitting it and leave
			// the cursor on the LF for the caller's own '\n' handling, per
			// spec.md §4.1's accepted line terminators.
			p.s.Advance(1)
			break
		}
		r, size := p.s.RuneAt(0)
		if size == 0 {
			break
		}
		buf.WriteRune(r)
		p.s.Advance(size)
	}
	return buf.String(), nil
}

func (p *Parser) parsePlaceable() (*ast.Placeable, error) {
	start := p.s.Pos()
	if p.s.Byte() != '{' {
		return nil, p.fail(E0003, p.s.Pos(), "expected '{'")
	}
	p.s.Advance(1)
	p.s.skipBlank()

	if p.s.Byte() == '}' {
		return nil, p.fail(E0028, p.s.Pos(), "expected an inline expression")
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	p.s.skipBlank()
	if p.s.Byte() != '}' {
		return nil, p.fail(E0027, p.s.Pos(), "expected '}'")
	}
	p.s.Advance(1)

	return &ast.Placeable{Expression: expr, Span: ast.Span{Start: start, End: p.s.Pos()}}, nil
}

// parseExpression parses an inline expression and, if followed by '->',
// turns it into a SelectExpression after validating the selector is simple.
func (p *Parser) parseExpression() (ast.Expression, error) {
	start := p.s.Pos()

	selector, err := p.parseInlineExpression()
	if err != nil {
		return nil, err
	}

	p.s.skipBlank()

	if !(p.s.Byte() == '-' && p.s.ByteAt(1) == '>') {
		if term, ok := selector.(*ast.TermReference); ok && term.Attribute != nil && term.Arguments != nil {
			// term attribute references with call args stay legal as
			// plain expressions; nothing further to validate here.
			_ = term
		}
		return selector, nil
	}

	if err := p.validateSelector(selector, start); err != nil {
		return nil, err
	}

	p.s.Advance(2)
	p.s.skipBlankInline()
	if p.s.Byte() != '\n' && p.s.HasNext() {
		return nil, p.fail(E0003, p.s.Pos(), "expected end of line after '->'")
	}

	variants, defIdx, err := p.parseVariants()
	if err != nil {
		return nil, err
	}

	return &ast.SelectExpression{
		Selector:     selector,
		Variants:     variants,
		DefaultIndex: defIdx,
		Span:         ast.Span{Start: start, End: p.s.Pos()},
	}, nil
}

func (p *Parser) validateSelector(selector ast.Expression, start int) error {
	switch sel := selector.(type) {
	case *ast.MessageReference:
		return p.fail(E0016, start, "message references may not be used as selectors")
	case *ast.TermReference:
		if sel.Attribute == nil {
			return p.fail(E0017, start, "term references may not be used as selectors; use a term attribute instead")
		}
		return nil
	case *ast.Placeable:
		return p.fail(E0019, start, "expected a simple expression as the selector")
	case *ast.StringLiteral, *ast.NumberLiteral, *ast.VariableReference, *ast.FunctionReference:
		return nil
	default:
		return p.fail(E0019, start, "expected a simple expression as the selector")
	}
}

func (p *Parser) parseInlineExpression() (ast.Expression, error) {
	start := p.s.Pos()
	b := p.s.Byte()

	if b == '{' {
		return p.parsePlaceable()
	}

	r, _ := p.s.RuneAt(0)
	if isDigit(r) || (b == '-' && isDigit(rune(p.s.ByteAt(1)))) {
		return p.parseNumber()
	}

	if b == '"' {
		return p.parseString()
	}

	if b == '$' {
		p.s.Advance(1)
		id, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		return &ast.VariableReference{ID: id, Span: ast.Span{Start: start, End: p.s.Pos()}}, nil
	}

	if b == '-' {
		p.s.Advance(1)
		id, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}

		var attr *ast.Identifier
		if p.s.Byte() == '.' {
			p.s.Advance(1)
			a, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			attr = &a
		}

		var args *ast.CallArguments
		n := p.s.peekBlankInlineLen()
		if p.s.ByteAt(n) == '(' {
			p.s.Advance(n)
			a, err := p.parseCallArguments(true)
			if err != nil {
				return nil, err
			}
			args = a
		}

		return &ast.TermReference{
			ID:        id,
			Attribute: attr,
			Arguments: args,
			Span:      ast.Span{Start: start, End: p.s.Pos()},
		}, nil
	}

	if !isIdentifierStart(r) {
		return nil, p.fail(E0028, p.s.Pos(), "expected an inline expression")
	}

	idStart := p.s.Pos()
	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	n := p.s.peekBlankInlineLen()
	if p.s.ByteAt(n) == '(' {
		if !isValidFunctionName(id.Name) {
			return nil, p.fail(E0008, idStart, "function names must be all-uppercase [A-Z0-9_-]")
		}
		p.s.Advance(n)
		args, err := p.parseCallArguments(false)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionReference{ID: id, Arguments: *args, Span: ast.Span{Start: start, End: p.s.Pos()}}, nil
	}

	var attr *ast.Identifier
	if p.s.Byte() == '.' {
		p.s.Advance(1)
		a, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		attr = &a
	}

	return &ast.MessageReference{ID: id, Attribute: attr, Span: ast.Span{Start: start, End: p.s.Pos()}}, nil
}

func isValidFunctionName(name string) bool {
	if name == "" {
		return false
	}
	if name[0] < 'A' || name[0] > 'Z' {
		return false
	}
	for _, r := range name {
		if !isFunctionIdentifierChar(r) {
			return false
		}
	}
	return true
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func (p *Parser) parseCallArguments(isTerm bool) (*ast.CallArguments, error) {
	start := p.s.Pos()
	p.s.Advance(1) // '('
	p.s.skipBlank()

	var positional []ast.Expression
	var named []ast.NamedArgument
	seen := map[string]bool{}

	for p.s.Byte() != ')' {
		argStart := p.s.Pos()
		expr, err := p.parseInlineExpression()
		if err != nil {
			return nil, err
		}
		p.s.skipBlank()

		if p.s.Byte() == ':' {
			msgRef, ok := expr.(*ast.MessageReference)
			if !ok || msgRef.Attribute != nil {
				return nil, p.fail(E0003, argStart, "expected a simple name before ':'")
			}
			p.s.Advance(1)
			p.s.skipBlank()

			val, err := p.parseCallArgumentLiteral()
			if err != nil {
				return nil, err
			}

			if seen[msgRef.ID.Name] {
				return nil, p.fail(E0003, argStart, "duplicate named argument %q", msgRef.ID.Name)
			}
			seen[msgRef.ID.Name] = true

			named = append(named, ast.NamedArgument{
				Name:  msgRef.ID,
				Value: val,
				Span:  ast.Span{Start: argStart, End: p.s.Pos()},
			})
		} else {
			if len(named) > 0 {
				return nil, p.fail(E0021, argStart, "positional arguments may not follow named arguments")
			}
			if isTerm {
				return nil, p.fail(E0031, argStart, "positional arguments are not allowed on term references")
			}
			positional = append(positional, expr)
		}

		p.s.skipBlank()
		if p.s.Byte() == ',' {
			p.s.Advance(1)
			p.s.skipBlank()
			continue
		}
		break
	}

	if p.s.Byte() != ')' {
		return nil, p.fail(E0003, p.s.Pos(), "expected ')'")
	}
	p.s.Advance(1)

	return &ast.CallArguments{
		Positional: positional,
		Named:      named,
		Span:       ast.Span{Start: start, End: p.s.Pos()},
	}, nil
}

func (p *Parser) parseCallArgumentLiteral() (ast.Expression, error) {
	b := p.s.Byte()
	if b == '"' {
		return p.parseString()
	}
	if isDigit(rune(b)) || (b == '-' && isDigit(rune(p.s.ByteAt(1)))) {
		return p.parseNumber()
	}
	return nil, p.fail(E0022, p.s.Pos(), "named argument values must be string or number literals")
}

func (p *Parser) parseVariants() ([]ast.Variant, int, error) {
	var variants []ast.Variant
	defaultIndex := -1

	p.s.skipBlank()

	for p.s.Byte() == '[' || (p.s.Byte() == '*' && p.s.ByteAt(1) == '[') {
		vstart := p.s.Pos()
		isDefault := false
		if p.s.Byte() == '*' {
			if defaultIndex != -1 {
				return nil, 0, p.fail(E0003, vstart, "only one default variant is allowed")
			}
			isDefault = true
			p.s.Advance(1)
		}

		p.s.Advance(1) // '['
		p.s.skipBlank()

		key, err := p.parseVariantKey()
		if err != nil {
			return nil, 0, err
		}

		p.s.skipBlank()
		if p.s.Byte() != ']' {
			return nil, 0, p.fail(E0004, p.s.Pos(), "expected ']'")
		}
		p.s.Advance(1)

		pattern, err := p.parseOptionalPattern()
		if err != nil {
			return nil, 0, err
		}
		if pattern == nil {
			return nil, 0, p.fail(E0032, p.s.Pos(), "expected a value for the variant")
		}

		if isDefault {
			defaultIndex = len(variants)
		}

		variants = append(variants, ast.Variant{
			Key:     key,
			Value:   *pattern,
			Default: isDefault,
			Span:    ast.Span{Start: vstart, End: p.s.Pos()},
		})

		p.s.skipBlank()
	}

	if len(variants) == 0 {
		return nil, 0, p.fail(E0032, p.s.Pos(), "expected at least one variant")
	}
	if defaultIndex == -1 {
		return nil, 0, p.fail(E0032, p.s.Pos(), "expected a default variant")
	}

	return variants, defaultIndex, nil
}

func (p *Parser) parseVariantKey() (ast.VariantKey, error) {
	b := p.s.Byte()
	if isDigit(rune(b)) || b == '-' {
		n, err := p.parseNumber()
		if err != nil {
			return ast.VariantKey{}, err
		}
		return ast.VariantKey{Number: n}, nil
	}

	id, err := p.parseIdentifier()
	if err != nil {
		return ast.VariantKey{}, err
	}
	return ast.VariantKey{Identifier: &id}, nil
}

func (p *Parser) parseIdentifier() (ast.Identifier, error) {
	start := p.s.Pos()
	r, size := p.s.RuneAt(0)
	if size == 0 || !isIdentifierStart(r) {
		return ast.Identifier{}, p.fail(E0004, start, "expected an identifier start character [A-Za-z]")
	}
	p.s.Advance(size)
	p.s.identifierEnd()

	return ast.Identifier{
		Name: p.s.Slice(start, p.s.Pos()),
		Span: ast.Span{Start: start, End: p.s.Pos()},
	}, nil
}

func (p *Parser) parseNumber() (*ast.NumberLiteral, error) {
	start := p.s.Pos()
	if p.s.Byte() == '-' {
		p.s.Advance(1)
	}

	digitsStart := p.s.Pos()
	for isDigit(rune(p.s.Byte())) {
		p.s.Advance(1)
	}
	if p.s.Pos() == digitsStart {
		return nil, p.fail(E0004, p.s.Pos(), "expected a digit")
	}

	kind := ast.NumberInteger
	if p.s.Byte() == '.' {
		p.s.Advance(1)
		fracStart := p.s.Pos()
		for isDigit(rune(p.s.Byte())) {
			p.s.Advance(1)
		}
		if p.s.Pos() == fracStart {
			return nil, p.fail(E0004, p.s.Pos(), "expected a digit after '.'")
		}
		kind = ast.NumberDecimal
	}

	text := p.s.Slice(start, p.s.Pos())
	return &ast.NumberLiteral{Kind: kind, Text: text, Span: ast.Span{Start: start, End: p.s.Pos()}}, nil
}

func (p *Parser) parseString() (*ast.StringLiteral, error) {
	start := p.s.Pos()
	if p.s.Byte() != '"' {
		return nil, p.fail(E0004, p.s.Pos(), "expected '\"'")
	}
	p.s.Advance(1)

	var buf strings.Builder
	for {
		if !p.s.HasNext() || p.s.Byte() == '\n' {
			return nil, p.fail(E0020, p.s.Pos(), "unterminated string literal")
		}
		if p.s.Byte() == '"' {
			break
		}
		if p.s.Byte() == '\\' {
			if err := p.parseEscapeInto(&buf); err != nil {
				return nil, err
			}
			continue
		}

		r, size := p.s.RuneAt(0)
		buf.WriteRune(r)
		p.s.Advance(size)
	}
	p.s.Advance(1) // closing '"'

	return &ast.StringLiteral{Value: buf.String(), Span: ast.Span{Start: start, End: p.s.Pos()}}, nil
}

func (p *Parser) parseEscapeInto(buf *strings.Builder) error {
	p.s.Advance(1) // '\\'

	switch p.s.Byte() {
	case '\\':
		buf.WriteByte('\\')
		p.s.Advance(1)
		return nil
	case '"':
		buf.WriteByte('"')
		p.s.Advance(1)
		return nil
	case 'u':
		return p.parseUnicodeEscape(buf, 4)
	case 'U':
		return p.parseUnicodeEscape(buf, 6)
	default:
		return p.fail(E0025, p.s.Pos(), "unknown escape sequence")
	}
}

func (p *Parser) parseUnicodeEscape(buf *strings.Builder, digits int) error {
	p.s.Advance(1) // 'u' or 'U'
	start := p.s.Pos()

	for i := 0; i < digits; i++ {
		b := p.s.Byte()
		if !isHex(b) {
			return p.fail(E0026, p.s.Pos(), "invalid unicode escape: expected %d hex digits", digits)
		}
		p.s.Advance(1)
	}

	hexStr := p.s.Slice(start, p.s.Pos())
	v, err := strconv.ParseUint(hexStr, 16, 32)
	if err != nil {
		return p.fail(E0026, start, "invalid unicode escape")
	}

	r := rune(v)
	if utf16IsHighSurrogate(r) {
		// Attempt to combine with a following \uXXXX low surrogate.
		if p.s.Byte() == '\\' && p.s.ByteAt(1) == 'u' {
			save := p.s.Pos()
			p.s.Advance(2)
			lowStart := p.s.Pos()
			ok := true
			for i := 0; i < 4; i++ {
				if !isHex(p.s.Byte()) {
					ok = false
					break
				}
				p.s.Advance(1)
			}
			if ok {
				lowStr := p.s.Slice(lowStart, p.s.Pos())
				low, lerr := strconv.ParseUint(lowStr, 16, 32)
				if lerr == nil && utf16IsLowSurrogate(rune(low)) {
					combined := utf16Combine(r, rune(low))
					buf.WriteRune(combined)
					return nil
				}
			}
			p.s.SetPos(save)
		}
	}

	if !utf8.ValidRune(r) {
		buf.WriteRune(utf8.RuneError)
		return nil
	}

	buf.WriteRune(r)
	return nil
}

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func utf16IsHighSurrogate(r rune) bool { return r >= 0xD800 && r <= 0xDBFF }
func utf16IsLowSurrogate(r rune) bool  { return r >= 0xDC00 && r <= 0xDFFF }

func utf16Combine(high, low rune) rune {
	return ((high - 0xD800) << 10) + (low - 0xDC00) + 0x10000
}
