package model

import (
	"sort"

	"github.com/cppbind/cppbind/internal/astprovider"
	"github.com/cppbind/cppbind/internal/naming"
)

// Registry is the single-owner container of WrappedClass values (§3.4, §5):
// every other hold on a WrappedClass is a non-owning pointer into this map,
// safe because the container is never shrunk during a run.
type Registry struct {
	byName map[string]*WrappedClass
	byDecl map[*astprovider.RecordDecl]*WrappedClass
	order  []*WrappedClass
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: map[string]*WrappedClass{},
		byDecl: map[*astprovider.RecordDecl]*WrappedClass{},
	}
}

// GetOrInsert returns the existing WrappedClass for decl's canonical class
// name, creating one on first sight (§3.3 I1, §3.4, §8 property 2).
// Repeated calls with the same declaration, or with a different declaration
// sharing the same canonical name, return the same object.
func (r *Registry) GetOrInsert(decl *astprovider.RecordDecl) *WrappedClass {
	if wc, ok := r.byDecl[decl]; ok {
		return wc
	}
	name := naming.StripClassKeyword(decl.QualifiedName)
	if wc, ok := r.byName[name]; ok {
		r.byDecl[decl] = wc
		return wc
	}
	wc := NewWrappedClass(decl)
	r.byName[name] = wc
	r.byDecl[decl] = wc
	r.order = append(r.order, wc)
	return wc
}

// Lookup returns the already-registered WrappedClass for a canonical class
// name, if one exists.
func (r *Registry) Lookup(className string) (*WrappedClass, bool) {
	wc, ok := r.byName[className]
	return wc, ok
}

// All returns every registered class, in discovery order.
func (r *Registry) All() []*WrappedClass {
	out := make([]*WrappedClass, len(r.order))
	copy(out, r.order)
	return out
}

// Wrapped returns every registered class for which ShouldBeWrapped is true,
// sorted by canonical class name for deterministic output ordering before
// the Partitioner imposes its own base-before-derived order.
func (r *Registry) Wrapped() []*WrappedClass {
	var out []*WrappedClass
	for _, wc := range r.order {
		if wc.ShouldBeWrapped() {
			out = append(out, wc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClassName < out[j].ClassName })
	return out
}
