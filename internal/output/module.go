// Package output defines the Output Module contract (§6, §10.5): one method
// per generated-artifact family, since each family's input shape differs
// structurally (a batch of classes for a binding file, one class for a
// bidirectional header, a batch of classes for the JS stub) — mirroring how
// the original's bindings/bidirectional/javascript_stub output modules are
// three distinct translation units rather than one generic "render" call.
package output

import (
	gcodegen "goa.design/goa/v3/codegen"

	"github.com/cppbind/cppbind/internal/model"
	"github.com/cppbind/cppbind/internal/partition"
)

// Module renders the three artifact families of §6.
type Module interface {
	// EmitBindingFile renders one binding-file chunk
	// (v8toolkit_generated_class_wrapper_{N}.cpp).
	EmitBindingFile(f *partition.File, total int) (*gcodegen.File, error)

	// EmitBidirectionalHeader renders one bidirectional class's synthesized
	// subclass header (v8toolkit_generated_bidirectional_{JSName}.h).
	EmitBidirectionalHeader(wc *model.WrappedClass) (*gcodegen.File, error)

	// EmitJSStub renders the single js-api.js stub file covering every
	// wrapped, non-bidirectional, non-template class.
	EmitJSStub(classes []*model.WrappedClass, header string) (*gcodegen.File, error)
}

// Render executes every section template of f in order and concatenates
// the results, mirroring codegen/testhelpers/golden.go's FileContent helper
// in the teacher repo — the same text/template-section shape, generalized
// into a reusable renderer instead of a test-only helper.
func Render(f *gcodegen.File) (string, error) {
	return renderSections(f)
}
