package model

import (
	"strings"

	"github.com/cppbind/cppbind/internal/astprovider"
	"github.com/cppbind/cppbind/internal/cfg"
	"github.com/cppbind/cppbind/internal/types"
)

// ancestorChain returns wc and every transitive base, self first, per §4.3's
// "walk the inheritance chain" instruction.
func ancestorChain(wc *WrappedClass) []*WrappedClass {
	seen := map[*WrappedClass]bool{}
	var out []*WrappedClass
	var walk func(*WrappedClass)
	walk = func(c *WrappedClass) {
		if seen[c] {
			return
		}
		seen[c] = true
		out = append(out, c)
		for _, b := range c.BaseTypes {
			walk(b)
		}
	}
	walk(wc)
	return out
}

// pimplFieldNames returns the field names declared PIMPL via a
// USE_PIMPL_<field_name> annotation on the class.
func pimplFieldNames(wc *WrappedClass) map[string]bool {
	out := map[string]bool{}
	for _, name := range ParamAll(wc.Annotations, "USE_PIMPL_") {
		out[name] = true
	}
	return out
}

// dereferencePimplTarget unwraps a PIMPL field's declared type through a
// pointer-like wrapper (raw pointer, unique_ptr, shared_ptr) to the record it
// ultimately refers to, per §4.3.
func dereferencePimplTarget(ti types.TypeInfo) *astprovider.RecordDecl {
	plain := ti.PlainType()
	if plain.Kind == astprovider.KindRecord {
		return plain.Record
	}
	if plain.Kind == astprovider.KindTemplateSpecialization && len(plain.Args) == 1 {
		switch plain.Name {
		case "std::unique_ptr", "std::shared_ptr":
			arg := plain.Args[0]
			if arg.Kind == astprovider.KindRecord {
				return arg.Record
			}
		}
	}
	return nil
}

// ParseMembers populates wc's DataMembers vector, hoisting PIMPL targets'
// members into wc's own member namespace, per §4.3/§3.3 (I9). Idempotent.
func ParseMembers(wc *WrappedClass, reg *Registry, doc *cfg.Document, store *AnnotationStore) {
	if wc.membersParsed {
		return
	}
	wc.membersParsed = true

	declaredPimpl := pimplFieldNames(wc)
	seenPimplUnderlying := map[string]*DataMember{}
	seenJSNames := map[string]bool{}

	for _, ancestor := range ancestorChain(wc) {
		for _, f := range ancestor.Decl.Fields {
			if Has(f.Annotations, "BINDINGS_NONE") {
				continue
			}
			isPimpl := Has(f.Annotations, "PIMPL") || (ancestor == wc && declaredPimpl[f.Name])
			if !f.IsPublic {
				nonPimplAnnotated := false
				for _, a := range f.Annotations {
					if a != "PIMPL" {
						nonPimplAnnotated = true
					}
				}
				if nonPimplAnnotated {
					wc.recordDiagnostic("error", "annotation on non-public field "+f.QualifiedName)
				}
				if !isPimpl {
					continue
				}
			}

			ti := types.New(f.Type, nil)

			if isPimpl {
				target := dereferencePimplTarget(ti)
				if target == nil {
					wc.recordDiagnostic("error", "PIMPL field "+f.QualifiedName+" does not resolve to a wrapped record")
					continue
				}
				underlyingName := target.QualifiedName
				if prior, dup := seenPimplUnderlying[underlyingName]; dup {
					wc.recordDiagnostic("error", "duplicate PIMPL field for underlying type "+underlyingName+" ("+prior.LongName+" and "+f.QualifiedName+")")
					continue
				}
				pimplMember := &DataMember{
					Owner:          wc,
					DeclaringClass: ancestor,
					ShortName:      f.Name,
					LongName:       f.QualifiedName,
					Type:           ti,
					IsConst:        isConstDataMember(ti, f.Annotations, store, nil),
					DocComment:     strings.TrimSpace(f.DocComment),
					Annotations:    f.Annotations,
				}
				seenPimplUnderlying[underlyingName] = pimplMember
				targetWC := reg.GetOrInsert(target)
				for inc := range targetWC.IncludeFiles {
					wc.IncludeFiles[inc] = true
				}
				hoistPimplMembers(wc, targetWC, pimplMember, seenJSNames)
				continue
			}

			dm := &DataMember{
				Owner:          wc,
				DeclaringClass: ancestor,
				ShortName:      f.Name,
				LongName:       f.QualifiedName,
				Type:           ti,
				IsConst:        isConstDataMember(ti, f.Annotations, store, nil),
				DocComment:     strings.TrimSpace(f.DocComment),
				Annotations:    f.Annotations,
			}
			resolveMemberJSName(dm, doc)
			wc.DataMembers = append(wc.DataMembers, dm)
		}
	}
}

// hoistPimplMembers copies every public field of targetWC's declaration
// that is not annotated BINDINGS_NONE into wc's DataMembers with
// AccessedThrough pointing at pimplMember.
func hoistPimplMembers(wc *WrappedClass, targetWC *WrappedClass, pimplMember *DataMember, seenJSNames map[string]bool) {
	for _, f := range targetWC.Decl.Fields {
		if !f.IsPublic || Has(f.Annotations, "BINDINGS_NONE") {
			continue
		}
		ti := types.New(f.Type, nil)
		hoisted := &DataMember{
			Owner:           wc,
			DeclaringClass:  targetWC,
			ShortName:       f.Name,
			LongName:        f.QualifiedName,
			Type:            ti,
			IsConst:         isConstDataMember(ti, f.Annotations, nil, nil),
			DocComment:      strings.TrimSpace(f.DocComment),
			Annotations:     f.Annotations,
			AccessedThrough: pimplMember,
		}
		hoisted.jsNameResolved = true
		hoisted.jsName = f.Name
		if seenJSNames[hoisted.jsName] {
			wc.recordDiagnostic("error", "duplicate hoisted PIMPL member name "+hoisted.jsName)
			continue
		}
		seenJSNames[hoisted.jsName] = true
		wc.DataMembers = append(wc.DataMembers, hoisted)
	}
}

// isConstDataMember implements §3.1's is_const rule: the use-site type is
// const-qualified, or the field is annotated READONLY, or the underlying
// record type's own registered annotations contain READONLY (via a
// READONLY-annotated typedef naming that record).
func isConstDataMember(ti types.TypeInfo, annotations []string, store *AnnotationStore, _ *astprovider.RecordDecl) bool {
	if ti.IsConst() {
		return true
	}
	if Has(annotations, "READONLY") {
		return true
	}
	if store == nil {
		return false
	}
	if decl := ti.GetPlainTypeDecl(); decl != nil {
		return Has(store.AnnotationsOf(decl), "READONLY")
	}
	return false
}

// resolveMemberJSName resolves a data member's JS name: config override
// keyed by long name, else the short field name.
func resolveMemberJSName(dm *DataMember, doc *cfg.Document) {
	dm.jsNameResolved = true
	if name, ok := doc.MemberNameOverride(dm.Owner.ClassName, dm.LongName); ok {
		dm.jsName = name
		return
	}
	dm.jsName = dm.ShortName
}
