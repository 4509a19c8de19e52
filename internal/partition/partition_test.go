package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cppbind/cppbind/internal/astprovider"
	"github.com/cppbind/cppbind/internal/model"
)

func newClass(name string) *model.WrappedClass {
	return model.NewWrappedClass(&astprovider.RecordDecl{QualifiedName: "class " + name, IsPublic: true})
}

func TestOrder_BaseBeforeDerived(t *testing.T) {
	base := newClass("Base")
	derived := newClass("Derived")
	derived.AddBase(base)

	ordered := Order([]*model.WrappedClass{derived, base})

	assert.Equal(t, []*model.WrappedClass{base, derived}, ordered)
}

func TestOrder_AlreadySortedListUnchanged(t *testing.T) {
	a := newClass("A")
	b := newClass("B")

	ordered := Order([]*model.WrappedClass{a, b})

	assert.Equal(t, []*model.WrappedClass{a, b}, ordered)
}

func TestOrder_MultiLevelChain(t *testing.T) {
	grandparent := newClass("GrandParent")
	parent := newClass("Parent")
	parent.AddBase(grandparent)
	child := newClass("Child")
	child.AddBase(parent)

	ordered := Order([]*model.WrappedClass{child, parent, grandparent})

	assert.Equal(t, []*model.WrappedClass{grandparent, parent, child}, ordered)
}

func TestOrder_CycleFallsBackToOriginalOrderForUnresolvable(t *testing.T) {
	a := newClass("A")
	b := newClass("B")
	// A synthetic, invariant-violating cycle that real C++ inheritance cannot
	// produce; Order must still terminate and return every class.
	a.BaseTypes = []*model.WrappedClass{b}
	b.BaseTypes = []*model.WrappedClass{a}

	ordered := Order([]*model.WrappedClass{a, b})

	assert.ElementsMatch(t, []*model.WrappedClass{a, b}, ordered)
	assert.Len(t, ordered, 2)
}

func TestPack_SingleFileWhenUnderBudget(t *testing.T) {
	a := newClass("A")
	a.DeclarationCount = 3
	b := newClass("B")
	b.DeclarationCount = 3

	files := Pack([]*model.WrappedClass{a, b}, 0)

	if assert.Len(t, files, 1) {
		assert.Equal(t, []*model.WrappedClass{a, b}, files[0].Classes)
		assert.Equal(t, 6, files[0].DeclarationCount)
	}
}

func TestPack_RotatesToNewFileWhenBudgetExceeded(t *testing.T) {
	a := newClass("A")
	a.DeclarationCount = 5
	b := newClass("B")
	b.DeclarationCount = 5

	files := Pack([]*model.WrappedClass{a, b}, 6)

	if assert.Len(t, files, 2) {
		assert.Equal(t, []*model.WrappedClass{a}, files[0].Classes)
		assert.Equal(t, []*model.WrappedClass{b}, files[1].Classes)
		assert.Equal(t, 1, files[0].Index)
		assert.Equal(t, 2, files[1].Index)
	}
}

func TestPack_ZeroDeclarationCountUsesDefaultBaseCost(t *testing.T) {
	a := newClass("A")

	files := Pack([]*model.WrappedClass{a}, 0)

	assert.Equal(t, model.DefaultDeclarationBaseCost, files[0].DeclarationCount)
}

func TestPack_RecordsExternTemplateForClassesWithDerivedTypes(t *testing.T) {
	base := newClass("Base")
	derived := newClass("Derived")
	derived.AddBase(base)
	base.DeclarationCount = 3
	derived.DeclarationCount = 3

	files := Pack([]*model.WrappedClass{base, derived}, 0)

	assert.True(t, files[0].ExternTemplate[base])
	assert.False(t, files[0].ExternTemplate[derived])
}

func TestPack_RecordsWrapperBuilderForPimplClasses(t *testing.T) {
	wc := newClass("Foo")
	wc.DataMembers = []*model.DataMember{{AccessedThrough: &model.DataMember{}}}

	files := Pack([]*model.WrappedClass{wc}, 0)

	assert.True(t, files[0].WrapperBuilder[wc])
}

func TestPack_UnionsIncludeFiles(t *testing.T) {
	a := newClass("A")
	a.AddIncludes([]string{`"a.h"`})
	b := newClass("B")
	b.AddIncludes([]string{`"b.h"`})

	files := Pack([]*model.WrappedClass{a, b}, 0)

	assert.True(t, files[0].Includes[`"a.h"`])
	assert.True(t, files[0].Includes[`"b.h"`])
}

func TestFile_NameAndChainCallName(t *testing.T) {
	f := &File{Index: 2}
	assert.Equal(t, "v8toolkit_generated_class_wrapper_2.cpp", f.Name())
	assert.Equal(t, "initialize_class_wrappers_2", f.ChainCallName())
}

func TestNextChainCallName_LastFileReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", NextChainCallName(3, 3))
	assert.Equal(t, "initialize_class_wrappers_2", NextChainCallName(1, 3))
}

func TestPartition_OrdersThenPacks(t *testing.T) {
	base := newClass("Base")
	base.DeclarationCount = 3
	derived := newClass("Derived")
	derived.DeclarationCount = 3
	derived.AddBase(base)

	files := Partition([]*model.WrappedClass{derived, base}, 0)

	if assert.Len(t, files, 1) {
		assert.Equal(t, []*model.WrappedClass{base, derived}, files[0].Classes)
	}
}
