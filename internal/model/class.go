// Package model implements the Class Model (§3.1, §4.3-§4.5): the
// WrappedClass entity, its lazily-parsed method/member/enum content, the
// single-owner registry that keys classes canonically, and the validation
// pass that runs once per class at end of translation unit.
package model

import (
	"github.com/cppbind/cppbind/internal/astprovider"
	"github.com/cppbind/cppbind/internal/cfg"
	"github.com/cppbind/cppbind/internal/naming"
)

// FoundMethod records why a class entered the model, per §3.1.
type FoundMethod int

const (
	Unspecified FoundMethod = iota
	Annotation
	Inheritance
	Generated
	BaseClass
	Pimpl
	NeverWrap
)

func (f FoundMethod) String() string {
	switch f {
	case Unspecified:
		return "Unspecified"
	case Annotation:
		return "Annotation"
	case Inheritance:
		return "Inheritance"
	case Generated:
		return "Generated"
	case BaseClass:
		return "BaseClass"
	case Pimpl:
		return "Pimpl"
	case NeverWrap:
		return "NeverWrap"
	default:
		return "Unknown"
	}
}

// Diagnostic is one validation failure or warning recorded against a class
// (§4.5, §7).
type Diagnostic struct {
	Severity string // "error" or "warning"
	Message  string
}

// WrappedClass is one distinct C++ record entered into the model (§3.1).
type WrappedClass struct {
	Decl *astprovider.RecordDecl

	ClassName     string // keyword-stripped, canonical fully qualified name
	ShortName     string
	NamespaceName string
	KindKeyword   string // "class" or "struct"

	FoundMethod         FoundMethod
	Bidirectional       bool
	ForceNoConstructors bool

	BaseTypes    []*WrappedClass
	DerivedTypes []*WrappedClass
	UsedClasses  []*WrappedClass

	IncludeFiles map[string]bool

	Constructors  []*ClassFunction
	Members       []*ClassFunction
	Statics       []*ClassFunction
	CallOperator  *ClassFunction
	DataMembers   []*DataMember
	Enums         []*Enum

	Annotations []string

	// ExtensionMethods and CustomExtensionMethods record the qualified
	// names of static, public methods annotated EXTEND_WRAPPER and
	// CUSTOM_EXTENSION respectively (§4.3).
	ExtensionMethods       []string
	CustomExtensionMethods []string

	// StaticMethodsNamespace holds the EXPOSE_STATIC_METHODS_AS_<name>
	// annotation's captured name, if present: static methods are then
	// re-homed under this JS namespace object instead of the class itself
	// (§12 supplemented feature).
	StaticMethodsNamespace string

	DeclarationCount int

	Errors   []Diagnostic
	Warnings []Diagnostic

	methodsParsed bool
	membersParsed bool
	enumsParsed   bool

	jsNameResolved bool
	jsName         string
}

// reservedJSGlobalNames is the §4.5 reserved-name collision list.
var reservedJSGlobalNames = map[string]bool{
	"Boolean": true, "Number": true, "String": true, "Object": true,
	"Symbol": true, "Array": true, "Map": true, "Set": true,
	"WeakMap": true, "WeakSet": true, "Date": true, "JSON": true,
	"Null": true, "Undefined": true,
}

// NewWrappedClass constructs an entry from decl. It does not parse methods,
// members, or enums — callers must call ParseAllMethods/ParseMembers/
// ParseEnums explicitly, per §3.4's lazy-parsing lifecycle.
func NewWrappedClass(decl *astprovider.RecordDecl) *WrappedClass {
	className := naming.StripClassKeyword(decl.QualifiedName)
	namespaceName, shortName := naming.SplitQualifiedName(className)
	kw := "class"
	if decl.IsStruct {
		kw = "struct"
	}
	wc := &WrappedClass{
		Decl:          decl,
		ClassName:     className,
		ShortName:     shortName,
		NamespaceName: namespaceName,
		KindKeyword:   kw,
		IncludeFiles:  map[string]bool{},
	}
	if decl.DefiningHeader != "" {
		wc.IncludeFiles[decl.DefiningHeader] = true
	}
	return wc
}

// AddBase links wc as deriving from base, keeping §3.3 (I4)'s base/derived
// symmetry invariant.
func (wc *WrappedClass) AddBase(base *WrappedClass) {
	for _, b := range wc.BaseTypes {
		if b == base {
			return
		}
	}
	wc.BaseTypes = append(wc.BaseTypes, base)
	base.DerivedTypes = append(base.DerivedTypes, wc)
}

// addUsedClass records a referenced-type edge, deduplicated by identity.
func (wc *WrappedClass) addUsedClass(used *WrappedClass) {
	if used == nil || used == wc {
		return
	}
	for _, u := range wc.UsedClasses {
		if u == used {
			return
		}
	}
	wc.UsedClasses = append(wc.UsedClasses, used)
}

// Promote applies the §4.4 promotion rule: a sighting of found=BaseClass
// never downgrades an existing classification, forces
// ForceNoConstructors on a class that would not otherwise be wrapped, and
// propagates to wc's own bases.
func (wc *WrappedClass) Promote(found FoundMethod) {
	if found == BaseClass {
		if !wc.ShouldBeWrapped() {
			wc.ForceNoConstructors = true
		}
		if wc.FoundMethod == Unspecified || wc.FoundMethod == Pimpl {
			wc.FoundMethod = BaseClass
		}
		for _, b := range wc.BaseTypes {
			b.Promote(BaseClass)
		}
		return
	}
	if wc.FoundMethod == Unspecified {
		wc.FoundMethod = found
	}
}

// ShouldBeWrapped implements §7's decision rule.
func (wc *WrappedClass) ShouldBeWrapped() bool {
	if wc.FoundMethod == NeverWrap || wc.FoundMethod == Pimpl {
		return false
	}
	switch wc.FoundMethod {
	case BaseClass, Generated:
		return true
	case Annotation, Inheritance:
		return !Has(wc.Annotations, "BINDINGS_NONE")
	case Unspecified:
		return Has(wc.Annotations, "BINDINGS_ALL")
	default:
		return false
	}
}

// JSName resolves the class's JavaScript name, cached after first
// resolution, in the §3.1 priority order: config override → typedef-alias
// annotation → V8TOOLKIT_USE_NAME annotation → short name.
func (wc *WrappedClass) JSName(doc *cfg.Document, store *AnnotationStore) string {
	if wc.jsNameResolved {
		return wc.jsName
	}
	wc.jsNameResolved = true
	if name, ok := doc.ClassNameOverride(wc.ClassName); ok {
		wc.jsName = name
		return wc.jsName
	}
	if store != nil {
		if alias, ok := store.AliasFor(wc.Decl); ok {
			wc.jsName = alias
			return wc.jsName
		}
	}
	if name, ok := Param(wc.Annotations, "USE_NAME_"); ok {
		wc.jsName = name
		return wc.jsName
	}
	wc.jsName = wc.ShortName
	return wc.jsName
}

// DefaultDeclarationBaseCost is the §9 heuristic base cost of a wrapped
// class before counting its exposed entities.
const DefaultDeclarationBaseCost = 3

// ComputeDeclarationCount sets wc.DeclarationCount to baseCost plus one per
// exposed method, data member, and enum (§3.1, §9: "declaration_count
// weighting... base 3 + 1 per exposed entity is a heuristic... its exact
// value should be configurable" — baseCost is the caller's configured
// value, defaulting to DefaultDeclarationBaseCost).
func (wc *WrappedClass) ComputeDeclarationCount(baseCost int) {
	count := baseCost
	count += len(wc.Constructors)
	count += len(wc.Members)
	count += len(wc.Statics)
	count += len(wc.DataMembers)
	count += len(wc.Enums)
	if wc.CallOperator != nil {
		count++
	}
	wc.DeclarationCount = count
}

// AddIncludes unions extra into wc.IncludeFiles.
func (wc *WrappedClass) AddIncludes(extra []string) {
	for _, inc := range extra {
		if inc != "" {
			wc.IncludeFiles[inc] = true
		}
	}
}

// recordDiagnostic appends to Errors or Warnings depending on severity.
func (wc *WrappedClass) recordDiagnostic(severity, msg string) {
	d := Diagnostic{Severity: severity, Message: msg}
	if severity == "error" {
		wc.Errors = append(wc.Errors, d)
		return
	}
	wc.Warnings = append(wc.Warnings, d)
}
