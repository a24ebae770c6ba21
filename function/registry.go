// Copyright (c) 2026 fluent-sub001 contributors
//
// SPDX-License-Identifier: BSD-2-Clause

package function

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/xyzsd/fluent-sub001/internal/container"
	"github.com/xyzsd/fluent-sub001/value"
)

// Registry holds the closed set of installed function factories plus the
// instance cache spec.md §4.6 allows: "The bundle may cache factory outputs
// keyed by (name, locale, frozen-options) subject to a size-bounded
// policy." The cache uses internal/container.BufferedMap, the same
// copy-on-write container worldiety/i18n uses for its own lookup tables,
// here serving concurrent reads across simultaneous format calls while
// writes (cache fills) stay mutex-guarded.
type Registry struct {
	factories map[string]*Factory
	cache     *container.BufferedMap[string, *Function]
	maxCache  int

	cacheMu sync.Mutex
	cached  int
}

// NewRegistry builds a registry from the given factories. Later entries
// with the same Name override earlier ones, letting a caller replace a
// standard function (spec.md §6's builder configures "function registry").
func NewRegistry(maxCacheEntries int, factories ...*Factory) *Registry {
	r := &Registry{
		factories: make(map[string]*Factory, len(factories)),
		cache:     &container.BufferedMap[string, *Function]{},
		maxCache:  maxCacheEntries,
	}
	for _, f := range factories {
		r.factories[f.Name] = f
	}
	return r
}

// Has reports whether a function with this name is installed.
func (r *Registry) Has(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// Resolve instantiates (or reuses a cached instance of) the named function
// for locale+opts.
func (r *Registry) Resolve(name string, locale language.Tag, opts value.Options) (*Function, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown function: %s", name)
	}

	if !factory.Cacheable {
		return factory.New(locale, opts)
	}

	key := cacheKey(name, locale, opts)
	if fn, ok := r.cache.Get(key); ok {
		return fn, nil
	}

	fn, err := factory.New(locale, opts)
	if err != nil {
		return nil, err
	}

	r.cacheMu.Lock()
	admit := r.maxCache <= 0 || r.cached < r.maxCache
	if admit {
		r.cached++
	}
	r.cacheMu.Unlock()

	if admit {
		r.cache.Put(key, fn)
		r.cache.Flush()
	}

	return fn, nil
}

func cacheKey(name string, locale language.Tag, opts value.Options) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('|')
	b.WriteString(locale.String())
	b.WriteByte('|')

	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		s := opts[k]
		fmt.Fprintf(&b, "%s=%d:%s:%d:%g;", k, s.Kind, s.Str, s.Int, s.Flt)
	}

	return b.String()
}

// Info is a snapshot of one installed function's declared capabilities,
// used by Bundle.Registry() for introspection (spec.md §4.3).
type Info struct {
	Name      string
	Transform bool
	Selector  bool
	Formatter bool
	Reducer   bool
}

// Snapshot lists every installed function's name and declared capabilities.
func (r *Registry) Snapshot() []Info {
	out := make([]Info, 0, len(r.factories))
	for _, f := range r.factories {
		out = append(out, Info{
			Name:      f.Name,
			Transform: f.Transform,
			Selector:  f.Selector,
			Formatter: f.Formatter,
			Reducer:   f.Reducer,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
