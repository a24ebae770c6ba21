// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package fluent

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/xyzsd/fluent-sub001/ast"
	"github.com/xyzsd/fluent-sub001/function"
	"github.com/xyzsd/fluent-sub001/internal/container"
	"github.com/xyzsd/fluent-sub001/parser"
)

// Builder assembles a Bundle from one or more FTL resources for a single
// locale, following spec.md §6's "A builder configures locale, resources,
// function registry, isolation, placeable limit, and cache policy." It
// mirrors the teacher's Resources: mutation happens under AddResource,
// Build freezes the result into an immutable Bundle.
type Builder struct {
	locale language.Tag

	messages map[string]*ast.Message
	terms    map[string]*ast.Term

	diagnostics container.BufferedSlice[error]

	useIsolation        bool
	maxPlaceables       int
	maxFunctionCache    int
	extraFunctions      []*function.Factory
	noStandardFunctions bool
}

// NewBuilder creates a Builder for locale with spec.md §5's documented
// defaults (isolation on, max_placeables 100), overridable via opts.
func NewBuilder(locale language.Tag, opts ...Option) *Builder {
	b := &Builder{
		locale:           locale,
		messages:         make(map[string]*ast.Message),
		terms:            make(map[string]*ast.Term),
		useIsolation:     true,
		maxPlaceables:    defaultMaxPlaceables,
		maxFunctionCache: defaultMaxFunctionCache,
	}
	for _, opt := range opts {
		opt.apply(b)
	}
	return b
}

// AddResource parses src as FTL and merges its entries into the builder.
// Parse errors and duplicate-identifier diagnostics are returned but do not
// stop the merge: entries that parsed cleanly and don't collide are still
// added, matching the parser's own junk-recovery philosophy of never
// failing a whole resource over one bad entry.
func (b *Builder) AddResource(src []byte) []error {
	res, perrs := parser.Parse(src)

	var diags []error
	for _, pe := range perrs {
		diags = append(diags, pe)
	}

	for _, entry := range res.Entries {
		switch e := entry.(type) {
		case *ast.Message:
			if _, exists := b.messages[e.ID.Name]; exists {
				err := fmt.Errorf("duplicate message identifier: %s", e.ID.Name)
				diags = append(diags, err)
				b.diagnostics.Append(err)
				continue
			}
			b.messages[e.ID.Name] = e
		case *ast.Term:
			if _, exists := b.terms[e.ID.Name]; exists {
				err := fmt.Errorf("duplicate term identifier: %s", e.ID.Name)
				diags = append(diags, err)
				b.diagnostics.Append(err)
				continue
			}
			b.terms[e.ID.Name] = e
		case *ast.Comment:
			// standalone comments carry no addressable identifier
		}
	}

	b.diagnostics.Flush()
	return diags
}

// Diagnostics returns every duplicate-identifier diagnostic accumulated
// across all AddResource calls so far.
func (b *Builder) Diagnostics() []error {
	var out []error
	for _, err := range b.diagnostics.All() {
		out = append(out, err)
	}
	return out
}

// Build freezes the builder into an immutable Bundle. It fails only for the
// pre-resolution builder-misuse condition of spec.md §6; resolution-time
// problems never surface here.
func (b *Builder) Build() (*Bundle, error) {
	factories := make([]*function.Factory, 0, len(function.Standard())+len(b.extraFunctions))
	if !b.noStandardFunctions {
		factories = append(factories, function.Standard()...)
	}
	factories = append(factories, b.extraFunctions...)

	registry := function.NewRegistry(b.maxFunctionCache, factories...)

	maxPlaceables := b.maxPlaceables
	if maxPlaceables <= 0 {
		maxPlaceables = defaultMaxPlaceables
	}

	return &Bundle{
		locale:        b.locale,
		messages:      b.messages,
		terms:         b.terms,
		registry:      registry,
		useIsolation:  b.useIsolation,
		maxPlaceables: maxPlaceables,
	}, nil
}
