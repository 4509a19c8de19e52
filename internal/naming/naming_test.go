package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeToken_LowercasesAndCollapsesSeparators(t *testing.T) {
	assert.Equal(t, "foo_bar", SanitizeToken("FooBar", "fallback"))
	assert.Equal(t, "foo_bar", SanitizeToken("foo::bar", "fallback"))
	assert.Equal(t, "foo_bar", SanitizeToken("foo  bar", "fallback"))
}

func TestSanitizeToken_EmptyResultUsesFallback(t *testing.T) {
	assert.Equal(t, "fallback", SanitizeToken("<>::", "fallback"))
	assert.Equal(t, "fallback", SanitizeToken("", "fallback"))
}

func TestSanitizeToken_NeverStartsOrEndsWithUnderscore(t *testing.T) {
	got := SanitizeToken("::foo::", "fallback")
	assert.NotEqual(t, byte('_'), got[0])
	assert.NotEqual(t, byte('_'), got[len(got)-1])
}

func TestStripClassKeyword(t *testing.T) {
	assert.Equal(t, "Foo", StripClassKeyword("class Foo"))
	assert.Equal(t, "Foo", StripClassKeyword("struct Foo"))
	assert.Equal(t, "ns::Foo", StripClassKeyword("ns::Foo"))
}

func TestSplitQualifiedName(t *testing.T) {
	ns, short := SplitQualifiedName("a::b::Foo")
	assert.Equal(t, "a::b", ns)
	assert.Equal(t, "Foo", short)

	ns, short = SplitQualifiedName("Foo")
	assert.Equal(t, "", ns)
	assert.Equal(t, "Foo", short)
}

func TestSplitQualifiedName_IgnoresScopeOperatorsInsideTemplateArgs(t *testing.T) {
	ns, short := SplitQualifiedName("ns::Foo<a::b::Bar>")
	assert.Equal(t, "ns", ns)
	assert.Equal(t, "Foo<a::b::Bar>", short)
}

func TestIsLegalJSName(t *testing.T) {
	assert.True(t, IsLegalJSName("Foo"))
	assert.False(t, IsLegalJSName(""))
	assert.False(t, IsLegalJSName("Foo<int>"))
	assert.False(t, IsLegalJSName("ns::Foo"))
}

func TestBindingFileName(t *testing.T) {
	assert.Equal(t, "v8toolkit_generated_class_wrapper_1.cpp", BindingFileName(1))
}

func TestBidirectionalHeaderName(t *testing.T) {
	assert.Equal(t, "v8toolkit_generated_bidirectional_Foo.h", BidirectionalHeaderName("Foo"))
}

func TestChainCallName(t *testing.T) {
	assert.Equal(t, "initialize_class_wrappers_2", ChainCallName(2))
}
