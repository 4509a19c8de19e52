package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppbind/cppbind/internal/astprovider/fixture"
	"github.com/cppbind/cppbind/internal/cfg"
	"github.com/cppbind/cppbind/internal/telemetry"
)

func validateClass(wc *WrappedClass, store *AnnotationStore, ctors *GlobalConstructorNames) {
	log := telemetry.NewSinkingLogger(telemetry.NewNoopLogger())
	Validate(context.Background(), wc, cfg.Empty(), store, log, ctors)
}

func TestValidate_SingleBaseClassIsClean(t *testing.T) {
	tu := fixture.New()
	r := tu.Class("Foo").Annotate("BINDINGS_ALL")

	reg := NewRegistry()
	wc := reg.GetOrInsert(r.Decl())
	wc.Annotations = r.Decl().Annotations
	wc.FoundMethod = Generated

	validateClass(wc, NewAnnotationStore(), NewGlobalConstructorNames())

	assert.Empty(t, wc.Errors)
}

func TestValidate_MoreThanOneBaseIsError(t *testing.T) {
	tu := fixture.New()
	base1 := tu.Class("Base1")
	base2 := tu.Class("Base2")
	r := tu.Class("Derived").Annotate("BINDINGS_ALL").Base(base1).Base(base2)

	reg := NewRegistry()
	wc := reg.GetOrInsert(r.Decl())
	wc.Annotations = r.Decl().Annotations
	wc.FoundMethod = Generated
	wc.AddBase(reg.GetOrInsert(base1.Decl()))
	wc.AddBase(reg.GetOrInsert(base2.Decl()))

	validateClass(wc, NewAnnotationStore(), NewGlobalConstructorNames())

	require.NotEmpty(t, wc.Errors)
	assert.Contains(t, wc.Errors[0].Message, "more than one base class")
}

func TestValidate_DuplicateConstructorJSNameAcrossClassesIsError(t *testing.T) {
	tu := fixture.New()
	a := tu.Class("ns1::Foo").Annotate("BINDINGS_ALL")
	a.Constructor()
	b := tu.Class("ns2::Foo").Annotate("BINDINGS_ALL")
	b.Constructor()

	reg := NewRegistry()
	wcA := reg.GetOrInsert(a.Decl())
	wcA.Annotations = a.Decl().Annotations
	wcA.FoundMethod = Generated
	ParseAllMethods(wcA, reg, cfg.Empty(), NewAnnotationStore(), nil)

	wcB := reg.GetOrInsert(b.Decl())
	wcB.Annotations = b.Decl().Annotations
	wcB.FoundMethod = Generated
	ParseAllMethods(wcB, reg, cfg.Empty(), NewAnnotationStore(), nil)

	store := NewAnnotationStore()
	ctors := NewGlobalConstructorNames()
	validateClass(wcA, store, ctors)
	validateClass(wcB, store, ctors)

	assert.Empty(t, wcA.Errors)
	require.NotEmpty(t, wcB.Errors)
	assert.Contains(t, wcB.Errors[0].Message, "duplicate constructor js_name")
}

// TestJSNameUniquenessProperty verifies §8 Property 6: for any class, the
// set of exposed instance-member JS names has size equal to the count of
// exposed instance members whenever validation reports no duplicate-name
// error — and conversely, a genuine duplicate is always caught.
func TestJSNameUniquenessProperty(t *testing.T) {
	names := []string{"foo", "bar", "baz"}

	for _, trial := range [][]string{
		{"foo", "bar", "baz"},
		{"foo", "foo", "bar"},
		{"foo", "foo", "foo"},
		{"bar"},
	} {
		tu := fixture.New()
		r := tu.Class("Foo").Annotate("BINDINGS_ALL")
		for _, n := range trial {
			r.Method(n)
		}

		reg := NewRegistry()
		wc := reg.GetOrInsert(r.Decl())
		wc.Annotations = r.Decl().Annotations
		wc.FoundMethod = Generated
		ParseAllMethods(wc, reg, cfg.Empty(), NewAnnotationStore(), nil)

		validateClass(wc, NewAnnotationStore(), NewGlobalConstructorNames())

		seen := map[string]bool{}
		dup := false
		for _, m := range wc.Members {
			if seen[m.JSName()] {
				dup = true
			}
			seen[m.JSName()] = true
		}

		hasCollisionError := false
		for _, d := range wc.Errors {
			if d.Message == "duplicate instance member js_name" {
				hasCollisionError = true
			}
		}

		assert.Equal(t, dup, hasCollisionError, "trial %v: duplicate=%v, reported=%v", trial, dup, hasCollisionError)
		if !dup {
			assert.Equal(t, len(seen), len(wc.Members))
		}
	}
	_ = names
}
