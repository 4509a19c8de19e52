package textmodule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppbind/cppbind/internal/astprovider/fixture"
	"github.com/cppbind/cppbind/internal/model"
	"github.com/cppbind/cppbind/internal/output"
)

func TestEmitJSStub_RendersClassShellWithMethodsAndProperties(t *testing.T) {
	tu := fixture.New()
	r := tu.Class("Foo")
	r.Method("bar")
	r.Field("count", fixture.Fundamental("int"))

	reg := model.NewRegistry()
	wc := fixtureClass(reg, r.Decl())

	mod := New()
	gf, err := mod.EmitJSStub([]*model.WrappedClass{wc}, "// generated")
	require.NoError(t, err)
	content, err := output.Render(gf)
	require.NoError(t, err)

	assert.Contains(t, content, "// generated")
	assert.Contains(t, content, "class Foo {")
	assert.Contains(t, content, "bar() {}")
	assert.Contains(t, content, "@property {Number} count")
}

func TestEmitJSStub_SkipsBidirectionalAndDependentClasses(t *testing.T) {
	tu := fixture.New()
	r := tu.Class("Foo")

	reg := model.NewRegistry()
	wc := fixtureClass(reg, r.Decl())
	wc.Bidirectional = true
	dep := tu.Class("Bar").Dependent()
	depWC := fixtureClass(reg, dep.Decl())

	mod := New()
	gf, err := mod.EmitJSStub([]*model.WrappedClass{wc, depWC}, "")
	require.NoError(t, err)
	content, err := output.Render(gf)
	require.NoError(t, err)

	assert.NotContains(t, content, "class Foo")
	assert.NotContains(t, content, "class Bar")
}

func TestEmitJSStub_StaticMethodRenderedWithStaticKeyword(t *testing.T) {
	tu := fixture.New()
	r := tu.Class("Foo")
	r.StaticMethod("make")

	reg := model.NewRegistry()
	wc := fixtureClass(reg, r.Decl())

	mod := New()
	gf, err := mod.EmitJSStub([]*model.WrappedClass{wc}, "")
	require.NoError(t, err)
	content, err := output.Render(gf)
	require.NoError(t, err)

	assert.Contains(t, content, "static make() {}")
}
