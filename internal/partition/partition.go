// Package partition implements the Partitioner (§4.6): ordering wrapped
// classes base-before-derived, packing them into binding-file chunks under a
// declaration-count budget, and computing each chunk's chaining metadata.
package partition

import (
	"github.com/cppbind/cppbind/internal/model"
	"github.com/cppbind/cppbind/internal/naming"
)

// File is one binding-file chunk's emitted metadata (§4.6 "File content").
type File struct {
	Index   int // 1-based
	Classes []*model.WrappedClass

	Includes map[string]bool

	// ExternTemplate holds classes (this file's own and any derived
	// elsewhere) needing `extern template` declarations here to avoid
	// re-instantiation.
	ExternTemplate map[*model.WrappedClass]bool

	// WrapperBuilder holds classes whose WrapperBuilder specialization is
	// needed in this file (those with PIMPL members).
	WrapperBuilder map[*model.WrappedClass]bool

	DeclarationCount int
}

// Name returns this file's generated binding file name.
func (f *File) Name() string {
	return naming.BindingFileName(f.Index)
}

// ChainCallName returns this file's chaining entry-point function name.
func (f *File) ChainCallName() string {
	return naming.ChainCallName(f.Index)
}

// NextChainCallName returns the next file's chain call name, or "" if f is
// the last file in the run, given f's 1-based index and the total file
// count.
func NextChainCallName(index, total int) string {
	if index >= total {
		return ""
	}
	return naming.ChainCallName(index + 1)
}

func hasPimplMembers(wc *model.WrappedClass) bool {
	for _, dm := range wc.DataMembers {
		if dm.AccessedThrough != nil {
			return true
		}
	}
	return false
}

// Order performs the §4.6 "Ordering" pass: repeatedly scan classes, emitting
// any class whose bases have all already been emitted, until a full pass
// emits nothing. Remaining (cyclic/unresolvable) classes are appended last,
// in their original order, so a caller still gets every class back. C++
// inheritance cannot form a cycle, and no validation check looks for one;
// this fallback only keeps Order terminating on hand-built cyclic input.
func Order(classes []*model.WrappedClass) []*model.WrappedClass {
	pending := append([]*model.WrappedClass{}, classes...)
	emitted := map[*model.WrappedClass]bool{}
	var ordered []*model.WrappedClass

	for len(pending) > 0 {
		var remaining []*model.WrappedClass
		progress := false
		for _, wc := range pending {
			if isEmittable(wc, emitted) {
				ordered = append(ordered, wc)
				emitted[wc] = true
				progress = true
				continue
			}
			remaining = append(remaining, wc)
		}
		pending = remaining
		if !progress {
			// No base-before-derived order exists for the remainder (only
			// possible for hand-built cyclic input); preserve original
			// order rather than looping forever.
			ordered = append(ordered, pending...)
			break
		}
	}
	return ordered
}

func isEmittable(wc *model.WrappedClass, emitted map[*model.WrappedClass]bool) bool {
	if emitted[wc] {
		return false
	}
	for _, b := range wc.BaseTypes {
		if !emitted[b] {
			return false
		}
	}
	return true
}

// Pack performs the §4.6 "Packing" pass over an already-ordered class list,
// rotating to a fresh file when adding a class would exceed
// maxDeclarationsPerFile. maxDeclarationsPerFile == 0 means unlimited (one
// file).
func Pack(ordered []*model.WrappedClass, maxDeclarationsPerFile int) []*File {
	if len(ordered) == 0 {
		return nil
	}
	var files []*File
	cur := newFile(1)

	flush := func() {
		if cur.DeclarationCount > 0 {
			files = append(files, cur)
		}
	}

	for _, wc := range ordered {
		count := wc.DeclarationCount
		if count == 0 {
			count = model.DefaultDeclarationBaseCost
		}
		exceedsBudget := maxDeclarationsPerFile > 0 &&
			cur.DeclarationCount > 0 &&
			cur.DeclarationCount+count > maxDeclarationsPerFile
		if exceedsBudget {
			flush()
			cur = newFile(len(files) + 1)
		}
		addToFile(cur, wc, count)
	}
	flush()

	for i, f := range files {
		f.Index = i + 1
	}
	return files
}

func newFile(index int) *File {
	return &File{
		Index:          index,
		Includes:       map[string]bool{},
		ExternTemplate: map[*model.WrappedClass]bool{},
		WrapperBuilder: map[*model.WrappedClass]bool{},
	}
}

func addToFile(f *File, wc *model.WrappedClass, count int) {
	f.Classes = append(f.Classes, wc)
	f.DeclarationCount += count
	for inc := range wc.IncludeFiles {
		f.Includes[inc] = true
	}
	if len(wc.DerivedTypes) > 0 {
		f.ExternTemplate[wc] = true
	}
	if hasPimplMembers(wc) {
		f.WrapperBuilder[wc] = true
	}
}

// Partition runs Order then Pack, the full §4.6 pipeline over the classes a
// registry reports as wrapped.
func Partition(wrapped []*model.WrappedClass, maxDeclarationsPerFile int) []*File {
	return Pack(Order(wrapped), maxDeclarationsPerFile)
}
