package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppbind/cppbind/internal/astprovider"
	"github.com/cppbind/cppbind/internal/cfg"
)

func newTestClass(qualifiedName string) *WrappedClass {
	return NewWrappedClass(&astprovider.RecordDecl{QualifiedName: qualifiedName, IsPublic: true})
}

func TestNewWrappedClass_SplitsNameAndKeyword(t *testing.T) {
	wc := newTestClass("class ns::Foo")
	assert.Equal(t, "ns::Foo", wc.ClassName)
	assert.Equal(t, "Foo", wc.ShortName)
	assert.Equal(t, "ns", wc.NamespaceName)
	assert.Equal(t, "class", wc.KindKeyword)
}

func TestNewWrappedClass_StructKeyword(t *testing.T) {
	wc := NewWrappedClass(&astprovider.RecordDecl{QualifiedName: "struct Point", IsStruct: true})
	assert.Equal(t, "struct", wc.KindKeyword)
}

func TestAddBase_SymmetricAndDeduplicated(t *testing.T) {
	base := newTestClass("class Base")
	derived := newTestClass("class Derived")

	derived.AddBase(base)
	derived.AddBase(base)

	assert.Equal(t, []*WrappedClass{base}, derived.BaseTypes)
	assert.Equal(t, []*WrappedClass{derived}, base.DerivedTypes)
}

func TestPromote_UnspecifiedSetsFoundMethodOnce(t *testing.T) {
	wc := newTestClass("class Foo")
	wc.Promote(Annotation)
	assert.Equal(t, Annotation, wc.FoundMethod)

	// A stronger-looking later sighting never overrides an already-set
	// non-BaseClass classification.
	wc.Promote(Inheritance)
	assert.Equal(t, Annotation, wc.FoundMethod)
}

func TestPromote_BaseClassForcesNoConstructorsOnlyWhenNotOtherwiseWrapped(t *testing.T) {
	wrapped := newTestClass("class Wrapped")
	wrapped.Annotations = []string{"BINDINGS_ALL"}
	wrapped.Promote(BaseClass)
	assert.True(t, wrapped.ShouldBeWrapped())
	assert.False(t, wrapped.ForceNoConstructors, "a class that would be wrapped anyway keeps its own constructors")

	notWrapped := newTestClass("class Plain")
	notWrapped.Promote(BaseClass)
	assert.True(t, notWrapped.ForceNoConstructors)
	assert.True(t, notWrapped.ShouldBeWrapped(), "BaseClass always yields ShouldBeWrapped")
}

func TestPromote_BaseClassPropagatesToOwnBases(t *testing.T) {
	grandparent := newTestClass("class GrandParent")
	parent := newTestClass("class Parent")
	parent.AddBase(grandparent)

	parent.Promote(BaseClass)

	assert.Equal(t, BaseClass, parent.FoundMethod)
	assert.Equal(t, BaseClass, grandparent.FoundMethod)
	assert.True(t, grandparent.ForceNoConstructors)
}

func TestPromote_BaseClassNeverDowngradesFoundMethod(t *testing.T) {
	wc := newTestClass("class Foo")
	wc.Promote(Annotation)
	wc.Promote(BaseClass)
	assert.Equal(t, Annotation, wc.FoundMethod, "BaseClass only fills in Unspecified/Pimpl, never overrides a real reason")
}

func TestShouldBeWrapped(t *testing.T) {
	cases := []struct {
		name   string
		found  FoundMethod
		anns   []string
		expect bool
	}{
		{"never", NeverWrap, nil, false},
		{"pimpl", Pimpl, nil, false},
		{"base class", BaseClass, nil, true},
		{"generated", Generated, nil, true},
		{"annotation default", Annotation, nil, true},
		{"annotation opted out", Annotation, []string{"BINDINGS_NONE"}, false},
		{"inheritance default", Inheritance, nil, true},
		{"unspecified default", Unspecified, nil, false},
		{"unspecified opted in", Unspecified, []string{"BINDINGS_ALL"}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			wc := newTestClass("class Foo")
			wc.FoundMethod = c.found
			wc.Annotations = c.anns
			assert.Equal(t, c.expect, wc.ShouldBeWrapped())
		})
	}
}

func TestJSName_PriorityOrder(t *testing.T) {
	wc := newTestClass("class Foo")
	wc.Annotations = []string{"USE_NAME_Bar"}
	store := NewAnnotationStore()

	assert.Equal(t, "Bar", wc.JSName(cfg.Empty(), store))
}

func TestJSName_ConfigOverrideWinsOverEverything(t *testing.T) {
	wc := newTestClass("class Foo")
	wc.Annotations = []string{"USE_NAME_Bar"}
	store := NewAnnotationStore()
	store.SetAlias(wc.Decl, "AliasName")

	doc, err := cfg.Load(jsonReader(`{"classes":{"Foo":{"name":"Override"}}}`))
	require.NoError(t, err)

	assert.Equal(t, "Override", wc.JSName(doc, store))
}

func TestJSName_AliasBeatsUseNameAnnotation(t *testing.T) {
	wc := newTestClass("class Foo")
	wc.Annotations = []string{"USE_NAME_Bar"}
	store := NewAnnotationStore()
	store.SetAlias(wc.Decl, "AliasName")

	assert.Equal(t, "AliasName", wc.JSName(cfg.Empty(), store))
}

func TestJSName_FallsBackToShortName(t *testing.T) {
	wc := newTestClass("class ns::Foo")
	assert.Equal(t, "Foo", wc.JSName(cfg.Empty(), nil))
}

func TestJSName_CachedAfterFirstResolution(t *testing.T) {
	wc := newTestClass("class Foo")
	first := wc.JSName(cfg.Empty(), nil)
	wc.Annotations = []string{"USE_NAME_Changed"}
	second := wc.JSName(cfg.Empty(), nil)
	assert.Equal(t, first, second)
}

func TestComputeDeclarationCount_BaseCostPlusEntities(t *testing.T) {
	wc := newTestClass("class Foo")
	wc.Constructors = []*ClassFunction{{}}
	wc.Members = []*ClassFunction{{}, {}}
	wc.Statics = []*ClassFunction{{}}
	wc.DataMembers = []*DataMember{{}}
	wc.Enums = []*Enum{{}}
	wc.CallOperator = &ClassFunction{}

	wc.ComputeDeclarationCount(DefaultDeclarationBaseCost)
	assert.Equal(t, 3+1+2+1+1+1+1, wc.DeclarationCount)
}

func TestAddIncludes_SkipsEmptyStrings(t *testing.T) {
	wc := newTestClass("class Foo")
	wc.AddIncludes([]string{`"a.h"`, "", `"b.h"`})
	assert.Len(t, wc.IncludeFiles, 2)
	assert.True(t, wc.IncludeFiles[`"a.h"`])
	assert.True(t, wc.IncludeFiles[`"b.h"`])
}
