// Package types implements the Type Inspector (§4.2): computing, from an AST
// type handle plus a template-parameter substitution map, the canonical C++
// type string, the plain type, the JSDoc type string, and the set of headers
// transitively required to name the type.
package types

import (
	"sort"
	"strings"

	"github.com/cppbind/cppbind/internal/astprovider"
)

// SubstitutionMap maps a template parameter name (e.g. "T") to the TypeRef it
// is bound to in the current context. It is built once per method/field
// parse and threaded through every TypeInfo computed for that declaration.
type SubstitutionMap map[string]astprovider.TypeRef

// TypeInfo is the immutable, per-use-site value the Type Inspector computes.
// It never mutates the astprovider.TypeRef it was built from.
type TypeInfo struct {
	ref   astprovider.TypeRef
	subst SubstitutionMap
}

// New computes a TypeInfo for ref under the given substitution map. subst may
// be nil, meaning no template parameters are in scope.
func New(ref astprovider.TypeRef, subst SubstitutionMap) TypeInfo {
	return TypeInfo{ref: ref, subst: subst}
}

// substitute resolves a dependent TypeRef against the substitution map,
// recursively, per §4.2's peeling algorithm: references are stripped
// (remembering &/&&), then pointers (collecting a '*' suffix), then
// const/volatile (collecting a " const"/" volatile" suffix) are peeled off,
// the base looked up against the substitution map (or recursed into for
// template specializations/function protos), and the accumulated suffix
// re-applied.
func substitute(ref astprovider.TypeRef, subst SubstitutionMap) astprovider.TypeRef {
	switch ref.Kind {
	case astprovider.KindTemplateParam:
		if mapped, ok := subst[ref.Name]; ok {
			out := mapped
			// The use site's own qualifiers take precedence: a "T&" use of
			// a parameter bound to "int" yields "int&", not a double
			// reference, and the use site's cv-qualifiers combine with the
			// bound type's.
			out.IsReference = out.IsReference || ref.IsReference
			out.IsRValueReference = out.IsRValueReference || ref.IsRValueReference
			out.PointerDepth += ref.PointerDepth
			out.IsConst = out.IsConst || ref.IsConst
			out.IsVolatile = out.IsVolatile || ref.IsVolatile
			return out
		}
		return ref
	case astprovider.KindTemplateSpecialization:
		args := make([]astprovider.TypeRef, len(ref.Args))
		for i, a := range ref.Args {
			args[i] = substitute(a, subst)
		}
		out := ref
		out.Args = args
		return out
	case astprovider.KindFunctionProto:
		out := ref
		if ref.Return != nil {
			r := substitute(*ref.Return, subst)
			out.Return = &r
		}
		params := make([]astprovider.TypeRef, len(ref.Params))
		for i, p := range ref.Params {
			params[i] = substitute(p, subst)
		}
		out.Params = params
		return out
	default:
		return ref
	}
}

// resolved returns the fully substituted TypeRef for this TypeInfo.
func (t TypeInfo) resolved() astprovider.TypeRef {
	return substitute(t.ref, t.subst)
}

// baseName renders a TypeRef's name ignoring its own local
// reference/pointer/cv qualifiers (those are rendered separately as a
// suffix by Name/PlainName).
func baseName(ref astprovider.TypeRef) string {
	switch ref.Kind {
	case astprovider.KindTemplateSpecialization:
		parts := make([]string, len(ref.Args))
		for i, a := range ref.Args {
			parts[i] = renderQualified(a)
		}
		return ref.Name + "<" + strings.Join(parts, ", ") + ">"
	case astprovider.KindFunctionProto:
		var ret string
		if ref.Return != nil {
			ret = renderQualified(*ref.Return)
		}
		params := make([]string, len(ref.Params))
		for i, p := range ref.Params {
			params[i] = renderQualified(p)
		}
		return ret + "(" + strings.Join(params, ", ") + ")"
	default:
		return normalizeInlineNamespace(ref.Name)
	}
}

// normalizeInlineNamespace rewrites implementation-specific inline namespace
// prefixes (the libstdc++ std::__cxx11:: and libc++ std::__1:: spellings) to
// plain std::, per §4.2 step 5.
func normalizeInlineNamespace(name string) string {
	name = strings.ReplaceAll(name, "std::__cxx11::", "std::")
	name = strings.ReplaceAll(name, "std::__1::", "std::")
	return name
}

// renderQualified renders ref's base name plus its own local qualifier
// suffix (pointer stars, reference, cv-qualifiers), used for nested
// positions (template arguments, function parameters) where the suffix must
// travel with the name rather than be collected separately.
func renderQualified(ref astprovider.TypeRef) string {
	s := baseName(ref)
	if ref.IsConst {
		s += " const"
	}
	if ref.IsVolatile {
		s += " volatile"
	}
	for i := 0; i < ref.PointerDepth; i++ {
		s += "*"
	}
	if ref.IsRValueReference {
		s += "&&"
	} else if ref.IsReference {
		s += "&"
	}
	return s
}

// Name returns the canonical C++ spelling of the type with template
// substitution applied, per §4.2.
func (t TypeInfo) Name() string {
	return renderQualified(t.resolved())
}

// PlainType returns the "plain" type node: reference stripped, all pointer
// levels stripped, template substitution applied, and constness re-applied
// if the original (pre-substitution) use-site type was const, per §3.1's
// plain_type contract.
func (t TypeInfo) PlainType() astprovider.TypeRef {
	wasConst := t.ref.IsConst
	resolved := t.resolved()
	resolved.IsReference = false
	resolved.IsRValueReference = false
	resolved.PointerDepth = 0
	resolved.IsConst = wasConst || resolved.IsConst
	return resolved
}

// PlainName renders PlainType's spelling.
func (t TypeInfo) PlainName() string {
	return renderQualified(t.PlainType())
}

// IsConst reports whether the use-site type (before stripping) is
// const-qualified.
func (t TypeInfo) IsConst() bool {
	return t.ref.IsConst
}

// IsTemplated reports whether the resolved type is a template
// specialization.
func (t TypeInfo) IsTemplated() bool {
	return t.resolved().Kind == astprovider.KindTemplateSpecialization
}

// IsVoid reports whether the resolved type is exactly "void" with no
// pointer/reference qualification.
func (t TypeInfo) IsVoid() bool {
	r := t.resolved()
	return r.Kind == astprovider.KindFundamental && r.Name == "void" &&
		r.PointerDepth == 0 && !r.IsReference && !r.IsRValueReference
}

// GetPlainTypeDecl returns the RecordDecl backing PlainType, if the plain
// type is itself a record declared in this translation unit.
func (t TypeInfo) GetPlainTypeDecl() *astprovider.RecordDecl {
	plain := t.PlainType()
	if plain.Kind == astprovider.KindRecord {
		return plain.Record
	}
	return nil
}

// ForEachTemplatedType calls visit once for every template-argument type in
// the resolved type, depth-first, letting callers walk nested
// specializations without duplicating the recursion.
func (t TypeInfo) ForEachTemplatedType(visit func(astprovider.TypeRef)) {
	var walk func(astprovider.TypeRef)
	walk = func(ref astprovider.TypeRef) {
		if ref.Kind != astprovider.KindTemplateSpecialization {
			return
		}
		for _, a := range ref.Args {
			visit(a)
			walk(a)
		}
	}
	walk(t.resolved())
}

// GetRootIncludes computes the set of #include spellings transitively
// required to name this type, per §4.2's root-include computation: a plain
// record type contributes its own defining header; a function prototype
// contributes the union of its return and parameter types' root includes; a
// template specialization contributes its own root include unioned with
// each type argument's root includes, recursively.
func (t TypeInfo) GetRootIncludes() []string {
	seen := map[string]bool{}
	var out []string
	add := func(inc string) {
		if inc == "" || seen[inc] {
			return
		}
		seen[inc] = true
		out = append(out, inc)
	}
	var walk func(astprovider.TypeRef)
	walk = func(ref astprovider.TypeRef) {
		switch ref.Kind {
		case astprovider.KindRecord:
			add(ref.RootInclude)
		case astprovider.KindTemplateSpecialization:
			add(ref.RootInclude)
			for _, a := range ref.Args {
				walk(a)
			}
		case astprovider.KindFunctionProto:
			if ref.Return != nil {
				walk(*ref.Return)
			}
			for _, p := range ref.Params {
				walk(p)
			}
		}
	}
	walk(t.resolved())
	sort.Strings(out)
	return out
}
