// Package testutil provides the golden-file assertion helpers shared by
// this module's test suites, grounded on
// codegen/testhelpers/golden.go's FileContent/FileExists/FindFile/
// AssertGoldenGo idiom in the teacher repo.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	gcodegen "goa.design/goa/v3/codegen"

	"github.com/cppbind/cppbind/internal/output"
)

// FileContent locates a generated file by path (slash-normalized) and
// returns its rendered, concatenated section content.
func FileContent(t *testing.T, files []*gcodegen.File, wantPath string) string {
	t.Helper()
	f := FindFile(files, wantPath)
	require.NotNilf(t, f, "generated file not found: %s", wantPath)
	content, err := output.Render(f)
	require.NoErrorf(t, err, "render %s", wantPath)
	require.NotEmptyf(t, content, "empty content for %s", wantPath)
	return content
}

// FileExists reports whether files contains an entry at wantPath.
func FileExists(files []*gcodegen.File, wantPath string) bool {
	return FindFile(files, wantPath) != nil
}

// FindFile locates a generated file by path (slash-normalized), or nil.
func FindFile(files []*gcodegen.File, wantPath string) *gcodegen.File {
	normWant := filepath.ToSlash(wantPath)
	for _, f := range files {
		if filepath.ToSlash(f.Path) == normWant {
			return f
		}
	}
	return nil
}

// AssertGolden compares content against the golden file at
// testdata/golden/<scenario>/<name>, relative to the test's working
// directory. Set CPPBIND_UPDATE_GOLDEN=1 to (re)write the golden file
// instead of asserting against it.
func AssertGolden(t *testing.T, scenario, name, content string) {
	t.Helper()
	p := filepath.Join("testdata", "golden", scenario, name)
	if os.Getenv("CPPBIND_UPDATE_GOLDEN") == "1" {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return
	}
	want, err := os.ReadFile(p)
	require.NoErrorf(t, err, "read golden file %s (set CPPBIND_UPDATE_GOLDEN=1 to create it)", p)
	require.Equal(t, string(want), content)
}
