package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cppbind/cppbind/internal/astprovider"
)

func TestParseEnums_PopulatesElements(t *testing.T) {
	decl := &astprovider.RecordDecl{
		QualifiedName: "class Foo",
		Enums: []*astprovider.EnumDecl{
			{Name: "Color", Elements: []astprovider.EnumElement{
				{Name: "Red", Value: 0},
				{Name: "Green", Value: 1},
			}},
		},
	}
	wc := NewWrappedClass(decl)

	ParseEnums(wc)

	if assert.Len(t, wc.Enums, 1) {
		assert.Equal(t, "Color", wc.Enums[0].Name)
		assert.Equal(t, []EnumElement{{Name: "Red", Value: 0}, {Name: "Green", Value: 1}}, wc.Enums[0].Elements)
	}
}

func TestParseEnums_IdempotentSecondCallNoOp(t *testing.T) {
	decl := &astprovider.RecordDecl{
		QualifiedName: "class Foo",
		Enums:         []*astprovider.EnumDecl{{Name: "Color", Elements: []astprovider.EnumElement{{Name: "Red"}}}},
	}
	wc := NewWrappedClass(decl)

	ParseEnums(wc)
	ParseEnums(wc)

	assert.Len(t, wc.Enums, 1, "second call must not duplicate the enum list")
}
