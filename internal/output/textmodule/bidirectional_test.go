package textmodule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppbind/cppbind/internal/astprovider"
	"github.com/cppbind/cppbind/internal/astprovider/fixture"
	"github.com/cppbind/cppbind/internal/model"
	"github.com/cppbind/cppbind/internal/output"
)

func TestEmitBidirectionalHeader_RendersVirtualOverrides(t *testing.T) {
	tu := fixture.New()
	r := tu.Class("Foo")
	v := r.Method("onEvent")
	v.IsVirtual = true

	reg := model.NewRegistry()
	wc := fixtureClass(reg, r.Decl())
	wc.Bidirectional = true

	mod := New()
	gf, err := mod.EmitBidirectionalHeader(wc)
	require.NoError(t, err)
	content, err := output.Render(gf)
	require.NoError(t, err)

	assert.Contains(t, content, "class JSFoo : public Foo, public v8toolkit::JSWrapper<Foo> {")
	assert.Contains(t, content, "void onEvent() override {")
	assert.Contains(t, content, "V8TOOLKIT_JS_OVERRIDE_OR_BASE(onEvent);")
	assert.Contains(t, content, "#ifndef V8TOOLKIT_GENERATED_BIDIRECTIONAL_foo_H")
}

func TestEmitBidirectionalHeader_CollectsBaseVirtualsBaseFirst(t *testing.T) {
	tu := fixture.New()
	base := tu.Class("Base")
	baseVirtual := base.Method("baseOnly")
	baseVirtual.IsVirtual = true
	derived := tu.Class("Derived").Base(base)
	derivedVirtual := derived.Method("derivedOnly")
	derivedVirtual.IsVirtual = true

	reg := model.NewRegistry()
	baseWC := fixtureClass(reg, base.Decl())
	derivedWC := fixtureClass(reg, derived.Decl())
	derivedWC.AddBase(baseWC)

	// The Discovery Driver synthesizes a subclass entry deriving from the
	// annotated class (here Derived); EmitBidirectionalHeader is called on
	// that synthesized entry, not on Derived directly.
	synthetic := model.NewWrappedClass(&astprovider.RecordDecl{QualifiedName: "JSDerived", IsPublic: true})
	synthetic.Bidirectional = true
	synthetic.AddBase(derivedWC)

	mod := New()
	gf, err := mod.EmitBidirectionalHeader(synthetic)
	require.NoError(t, err)
	content, err := output.Render(gf)
	require.NoError(t, err)

	assert.Contains(t, content, "class JSDerived : public Derived, public v8toolkit::JSWrapper<Derived> {")

	baseIdx := indexOf(content, "baseOnly")
	derivedIdx := indexOf(content, "derivedOnly")
	assert.True(t, baseIdx >= 0 && derivedIdx >= 0 && baseIdx < derivedIdx, "base virtuals must render before derived virtuals")
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

func TestEmitBidirectionalHeader_NonVirtualMethodOmitted(t *testing.T) {
	tu := fixture.New()
	r := tu.Class("Foo")
	r.Method("plain")

	reg := model.NewRegistry()
	wc := fixtureClass(reg, r.Decl())

	mod := New()
	gf, err := mod.EmitBidirectionalHeader(wc)
	require.NoError(t, err)
	content, err := output.Render(gf)
	require.NoError(t, err)

	assert.NotContains(t, content, "plain(")
}
