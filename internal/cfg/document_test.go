package cfg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RejectsUnknownTopLevelKey(t *testing.T) {
	_, err := Load(strings.NewReader(`{"unknown_section": {}}`))
	assert.Error(t, err)
}

func TestLoad_RejectsMalformedJSON(t *testing.T) {
	_, err := Load(strings.NewReader(`{`))
	assert.Error(t, err)
}

func TestEmpty_EveryQueryReportsNoOverride(t *testing.T) {
	d := Empty()

	_, ok := d.ClassNameOverride("Foo")
	assert.False(t, ok)

	_, explicit := d.MemberSkip("Foo", "bar()")
	assert.False(t, explicit)

	max, set := d.BindingsMaxDeclarationsPerFile()
	assert.Equal(t, 0, max)
	assert.False(t, set)

	assert.Empty(t, d.BulkRenames("static_functions"))
}

func TestClassNameOverride_ReturnsConfiguredName(t *testing.T) {
	d, err := Load(strings.NewReader(`{"classes": {"Foo": {"name": "Bar"}}}`))
	require.NoError(t, err)

	name, ok := d.ClassNameOverride("Foo")
	assert.True(t, ok)
	assert.Equal(t, "Bar", name)

	_, ok = d.ClassNameOverride("OtherClass")
	assert.False(t, ok)
}

func TestMemberSkip_DistinguishesExplicitFalseFromUnset(t *testing.T) {
	d, err := Load(strings.NewReader(`{"classes": {"Foo": {"members": {"bar()": {"skip": false}}}}}`))
	require.NoError(t, err)

	skip, explicit := d.MemberSkip("Foo", "bar()")
	assert.True(t, explicit)
	assert.False(t, skip)

	_, explicit = d.MemberSkip("Foo", "other()")
	assert.False(t, explicit)
}

func TestBindingsMaxDeclarationsPerFile_ReadsConfiguredValue(t *testing.T) {
	d, err := Load(strings.NewReader(`{"output_modules": {"BindingsOutputModule": {"max_declarations_per_file": 40}}}`))
	require.NoError(t, err)

	max, ok := d.BindingsMaxDeclarationsPerFile()
	assert.True(t, ok)
	assert.Equal(t, 40, max)
}

func TestBulkRenames_FirstMatchingRuleWinsAndMalformedRegexSkipped(t *testing.T) {
	d, err := Load(strings.NewReader(`{
		"bulk_renames": {
			"static_functions": [
				{"regex": "(", "replace": "broken"},
				{"regex": "^make_(.+)$", "replace": "$1"},
				{"regex": "^make_foo$", "replace": "should_not_win"}
			]
		}
	}`))
	require.NoError(t, err)

	renamed, ok := Apply(d.BulkRenames("static_functions"), "make_foo")
	require.True(t, ok)
	assert.Equal(t, "foo", renamed)

	_, ok = Apply(d.BulkRenames("static_functions"), "unrelated")
	assert.False(t, ok)
}
