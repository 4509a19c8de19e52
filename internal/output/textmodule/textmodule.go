// Package textmodule is the default output.Module implementation: a
// text/template-driven renderer for the three artifact families, grounded
// on the gcodegen.File/SectionTemplate shape the teacher repo's codegen
// packages use to assemble generated Go source, generalized here to emit
// C++ and JavaScript text instead.
package textmodule

import (
	"github.com/cppbind/cppbind/internal/output"
	"github.com/cppbind/cppbind/internal/types"
)

// Module is the default output.Module.
type Module struct {
	JSDocTable *types.JSDocTable
}

// New constructs the default Module.
func New() *Module {
	return &Module{JSDocTable: types.DefaultJSDocTable()}
}

var _ output.Module = (*Module)(nil)
