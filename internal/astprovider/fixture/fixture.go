// Package fixture is a small in-memory astprovider.Provider test double,
// letting unit and property tests construct synthetic translation units
// (records, methods, fields, enums, annotations) without a real C++ parser
// (§10.4). It plays the role the teacher's codegen/testhelpers +
// registry/internal/testutil golden/design-execution helpers play for DSL
// evaluation: a hand-built fixture instead of the real frontend.
package fixture

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cppbind/cppbind/internal/astprovider"
	"github.com/cppbind/cppbind/internal/naming"
)

// Record is a builder for one synthetic astprovider.RecordDecl, accumulated
// via chained calls and replayed by the provider TranslationUnit.Provider
// returns.
type Record struct {
	decl *astprovider.RecordDecl
	id   string
}

// TranslationUnit accumulates records, typedefs and forward declarations in
// discovery order and constructs an astprovider.Provider replaying them.
type TranslationUnit struct {
	records  []*Record
	typedefs []*astprovider.TypedefDecl
	forwards []*astprovider.ForwardDecl
}

// New starts an empty synthetic translation unit.
func New() *TranslationUnit { return &TranslationUnit{} }

// Class declares a new public, non-dependent record with the given
// (already-qualified, keyword-free) name. Class prepends the "class "
// keyword that astprovider.RecordDecl.QualifiedName documents, so callers
// pass the name without it.
func (tu *TranslationUnit) Class(qualifiedName string) *Record {
	r := &Record{
		decl: &astprovider.RecordDecl{
			QualifiedName: "class " + qualifiedName,
			IsPublic:      true,
		},
		id: uuid.New().String(),
	}
	tu.records = append(tu.records, r)
	return r
}

// Decl exposes the record's underlying handle for callers that need to wire
// it as a base, a typedef's Underlying, or a forward declaration's Record
// before the translation unit is built.
func (r *Record) Decl() *astprovider.RecordDecl { return r.decl }

// Struct is Class, using the "struct " keyword instead.
func (tu *TranslationUnit) Struct(qualifiedName string) *Record {
	r := tu.Class(qualifiedName)
	r.decl.QualifiedName = "struct " + qualifiedName
	return r
}

// Annotate attaches raw annotation strings to the record (§3.2).
func (r *Record) Annotate(anns ...string) *Record {
	r.decl.Annotations = append(r.decl.Annotations, anns...)
	return r
}

// InheritsMarkerBase marks the record as publicly deriving, directly or
// transitively, from the host wrapper runtime's marker base class (§4.4
// rule 1).
func (r *Record) InheritsMarkerBase() *Record {
	r.decl.InheritsMarkerBase = true
	return r
}

// Dependent marks the record as an uninstantiated class-template pattern
// (§4.4 rule 1's guard clause).
func (r *Record) Dependent() *Record {
	r.decl.IsDependent = true
	return r
}

// Abstract marks the record abstract.
func (r *Record) Abstract() *Record {
	r.decl.IsAbstract = true
	return r
}

// TemplatePatternOf records that r is a specialization of pattern (§3.2,
// §8 property 7).
func (r *Record) TemplatePatternOf(pattern *Record) *Record {
	r.decl.TemplatePattern = pattern.decl
	return r
}

// Base adds base as a public base class specifier of r (§4.4's promotion
// rule, §3.3 I2).
func (r *Record) Base(base *Record) *Record {
	r.decl.Bases = append(r.decl.Bases, astprovider.BaseSpec{Base: base.decl})
	return r
}

// DefiningHeader sets the #include spelling this record's own declaration
// came from.
func (r *Record) DefiningHeader(header string) *Record {
	r.decl.DefiningHeader = header
	return r
}

// Method declares a public, non-virtual, non-const member method taking no
// parameters and returning void, returning a *astprovider.MethodDecl for
// further chaining via the Method* helpers below.
func (r *Record) Method(name string) *astprovider.MethodDecl {
	m := &astprovider.MethodDecl{
		Kind:          astprovider.MethodMember,
		Name:          name,
		QualifiedName: qualify(r.decl.QualifiedName, name),
		IsPublic:      true,
		ReturnType:    Void(),
	}
	r.decl.Methods = append(r.decl.Methods, m)
	return m
}

// StaticMethod declares a public static method.
func (r *Record) StaticMethod(name string) *astprovider.MethodDecl {
	m := r.Method(name)
	m.Kind = astprovider.MethodStatic
	m.IsStatic = true
	return m
}

// Constructor declares a public constructor.
func (r *Record) Constructor() *astprovider.MethodDecl {
	m := r.Method(r.bareName())
	m.Kind = astprovider.MethodConstructor
	m.ReturnType = Void()
	return m
}

// CallOperator declares a public operator().
func (r *Record) CallOperator() *astprovider.MethodDecl {
	m := r.Method("operator()")
	m.Kind = astprovider.MethodCallOperator
	return m
}

// Field adds a public data member of the given type.
func (r *Record) Field(name string, t astprovider.TypeRef) *Record {
	r.decl.Fields = append(r.decl.Fields, &astprovider.FieldDecl{
		Name:          name,
		QualifiedName: qualify(r.decl.QualifiedName, name),
		IsPublic:      true,
		Type:          t,
	})
	return r
}

// Enum adds a nested enum with the given (name, value) elements.
func (r *Record) Enum(name string, elems ...astprovider.EnumElement) *Record {
	r.decl.Enums = append(r.decl.Enums, &astprovider.EnumDecl{Name: name, Elements: elems})
	return r
}

func (r *Record) bareName() string {
	_, short := naming.SplitQualifiedName(naming.StripClassKeyword(r.decl.QualifiedName))
	return short
}

func qualify(recordQualifiedName, member string) string {
	return naming.StripClassKeyword(recordQualifiedName) + "::" + member
}

// Void returns a KindFundamental TypeRef named "void".
func Void() astprovider.TypeRef {
	return astprovider.TypeRef{Kind: astprovider.KindFundamental, Name: "void"}
}

// Fundamental returns a KindFundamental TypeRef for a built-in type name
// (e.g. "int", "bool", "double").
func Fundamental(name string) astprovider.TypeRef {
	return astprovider.TypeRef{Kind: astprovider.KindFundamental, Name: name}
}

// RecordType returns a KindRecord TypeRef referring to r, with pointerDepth
// levels of pointer indirection (0 for a by-value/reference use).
func RecordType(r *Record, pointerDepth int) astprovider.TypeRef {
	return astprovider.TypeRef{
		Kind:         astprovider.KindRecord,
		Name:         naming.StripClassKeyword(r.decl.QualifiedName),
		Record:       r.decl,
		PointerDepth: pointerDepth,
	}
}

// Param builds an astprovider.Param with no default argument.
func Param(name string, t astprovider.TypeRef) astprovider.Param {
	return astprovider.Param{Name: name, Type: t}
}

// Typedef declares a typedef whose Underlying points at target, optionally
// carrying annotations (§4.4 rule 4).
func (tu *TranslationUnit) Typedef(name string, target *Record, anns ...string) {
	tu.typedefs = append(tu.typedefs, &astprovider.TypedefDecl{
		Name:        name,
		Underlying:  target.decl,
		Annotations: anns,
	})
}

// Forward declares a forward declaration anchored at target, optionally
// naming it a class-template forward declaration (§4.4 rule 3).
func (tu *TranslationUnit) Forward(qualifiedName string, target *Record, isClassTemplate bool, anns ...string) {
	tu.forwards = append(tu.forwards, &astprovider.ForwardDecl{
		QualifiedName:   qualifiedName,
		IsClassTemplate: isClassTemplate,
		Annotations:     anns,
		Record:          target.decl,
	})
}

// Provider returns an astprovider.Provider that replays this translation
// unit's records (in declaration order), then typedefs, then forward
// declarations, terminating in exactly one OnEndOfTranslationUnit call, as
// astprovider.Visitor documents.
func (tu *TranslationUnit) Provider() astprovider.Provider {
	return &replayProvider{tu: tu}
}

type replayProvider struct {
	tu *TranslationUnit
}

func (p *replayProvider) Run(v astprovider.Visitor) error {
	for _, r := range p.tu.records {
		if r.decl.QualifiedName == "" {
			return fmt.Errorf("fixture record has no qualified name")
		}
		v.OnRecordDefinition(r.decl)
	}
	for _, t := range p.tu.typedefs {
		v.OnTypedefDecl(t)
	}
	for _, f := range p.tu.forwards {
		v.OnForwardDecl(f)
	}
	v.OnEndOfTranslationUnit()
	return nil
}
