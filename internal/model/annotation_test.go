package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cppbind/cppbind/internal/astprovider"
)

func TestAnnotationsOf_MergesOwnAndStoreAnnotations(t *testing.T) {
	r := &astprovider.RecordDecl{QualifiedName: "class Foo", Annotations: []string{"NO_CONSTRUCTORS"}}
	store := NewAnnotationStore()
	store.MergeInto(r, []string{"EXPOSE_FOR_TYPES_int"})

	got := store.AnnotationsOf(r)
	assert.ElementsMatch(t, []string{"NO_CONSTRUCTORS", "EXPOSE_FOR_TYPES_int"}, got)
}

func TestAnnotationsOf_IsIdempotent(t *testing.T) {
	r := &astprovider.RecordDecl{QualifiedName: "class Foo", Annotations: []string{"A"}}
	store := NewAnnotationStore()
	store.MergeInto(r, []string{"B"})

	first := store.AnnotationsOf(r)
	second := store.AnnotationsOf(r)
	assert.Equal(t, first, second)
}

func TestAnnotationsOf_SpecializationInheritsTemplateAnnotations(t *testing.T) {
	tmpl := &astprovider.RecordDecl{QualifiedName: "class Box", IsDependent: true}
	spec := &astprovider.RecordDecl{QualifiedName: "class Box<int>", TemplatePattern: tmpl}

	store := NewAnnotationStore()
	store.MergeTemplateInto(tmpl, []string{"NO_CONSTRUCTORS"})

	got := store.AnnotationsOf(spec)
	assert.Contains(t, got, "NO_CONSTRUCTORS")
}

func TestAnnotationsOf_NilRecordReturnsNil(t *testing.T) {
	store := NewAnnotationStore()
	assert.Nil(t, store.AnnotationsOf(nil))
}

func TestAlias_SetAndGet(t *testing.T) {
	r := &astprovider.RecordDecl{QualifiedName: "class Foo"}
	store := NewAnnotationStore()

	_, ok := store.AliasFor(r)
	assert.False(t, ok)

	store.SetAlias(r, "FooAlias")
	name, ok := store.AliasFor(r)
	assert.True(t, ok)
	assert.Equal(t, "FooAlias", name)
}

func TestHas(t *testing.T) {
	assert.True(t, Has([]string{"A", "B"}, "B"))
	assert.False(t, Has([]string{"A", "B"}, "C"))
}

func TestParam_ReturnsFirstMatchingTail(t *testing.T) {
	v, ok := Param([]string{"OTHER", "USE_NAME_foo", "USE_NAME_bar"}, "USE_NAME_")
	assert.True(t, ok)
	assert.Equal(t, "foo", v)
}

func TestParamAll_ReturnsEveryMatchingTail(t *testing.T) {
	got := ParamAll([]string{"USE_PIMPL_a", "OTHER", "USE_PIMPL_b"}, "USE_PIMPL_")
	assert.Equal(t, []string{"a", "b"}, got)
}
