package model

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cppbind/cppbind/internal/astprovider"
	"github.com/cppbind/cppbind/internal/cfg"
	"github.com/cppbind/cppbind/internal/types"
)

// exportType mirrors §7's decision rule: BINDINGS_NONE alone yields
// exportNone, both BINDINGS_ALL and BINDINGS_NONE present is a data error,
// and otherwise (BINDINGS_ALL alone or neither) the result is exportAll.
type exportType int

const (
	exportAll exportType = iota
	exportNone
	exportConflict
)

func computeExportType(annotations []string) exportType {
	all := Has(annotations, "BINDINGS_ALL")
	none := Has(annotations, "BINDINGS_NONE")
	switch {
	case all && none:
		return exportConflict
	case none:
		return exportNone
	default:
		return exportAll
	}
}

// ParseAllMethods populates wc's Constructors/Members/Statics/CallOperator
// vectors from its declaration's method list, per §4.3. Idempotent per §3.4:
// a second call is a no-op.
func ParseAllMethods(wc *WrappedClass, reg *Registry, doc *cfg.Document, store *AnnotationStore, tbl *types.JSDocTable) {
	if wc.methodsParsed {
		return
	}
	wc.methodsParsed = true

	for _, raw := range wc.Decl.Methods {
		d := raw
		if d.IsUsingShadow {
			if d.ShadowTarget == nil {
				continue
			}
			d = d.ShadowTarget
		}

		et := computeExportType(d.Annotations)
		if et == exportConflict {
			wc.recordDiagnostic("error", "multiple export specifiers on "+d.QualifiedName)
			continue
		}
		sigKey := signatureKeyForSkipCheck(d)
		if et == exportNone {
			if skip, explicit := doc.MemberSkip(wc.ClassName, sigKey); !(explicit && !skip) {
				continue
			}
		} else if skip, explicit := doc.MemberSkip(wc.ClassName, sigKey); explicit && skip {
			continue
		}

		if !d.IsPublic {
			if len(d.Annotations) > 0 {
				wc.recordDiagnostic("error", "annotations on non-public member "+d.QualifiedName)
			}
			continue
		}
		if d.IsOtherOperator {
			continue
		}
		if d.IsDestructor || d.IsConversionOperator {
			continue
		}

		subst, ok := resolveTemplateDefaults(d)
		if !ok {
			continue
		}

		if d.Kind == astprovider.MethodConstructor {
			if d.IsCopyOrMoveConstructor || d.IsDeleted {
				continue
			}
			if wc.Decl.IsAbstract || wc.ForceNoConstructors || Has(wc.Annotations, "DO_NOT_WRAP_CONSTRUCTORS") {
				continue
			}
		}

		if Has(d.Annotations, "EXTEND_WRAPPER") {
			if !d.IsStatic || !d.IsPublic {
				wc.recordDiagnostic("error", "EXTEND_WRAPPER method "+d.QualifiedName+" must be static and public")
			} else {
				wc.ExtensionMethods = append(wc.ExtensionMethods, d.QualifiedName)
			}
		}
		if Has(d.Annotations, "CUSTOM_EXTENSION") {
			if !d.IsStatic || !d.IsPublic {
				wc.recordDiagnostic("error", "CUSTOM_EXTENSION method "+d.QualifiedName+" must be static and public")
			} else {
				wc.CustomExtensionMethods = append(wc.CustomExtensionMethods, d.QualifiedName)
			}
		}

		fn := buildClassFunction(wc, d, subst)
		resolveFunctionJSName(fn, doc, store)
		collectUsedClasses(wc, reg, fn)

		switch d.Kind {
		case astprovider.MethodConstructor:
			wc.Constructors = append(wc.Constructors, fn)
		case astprovider.MethodStatic:
			wc.Statics = append(wc.Statics, fn)
		case astprovider.MethodCallOperator:
			wc.CallOperator = fn
		default:
			wc.Members = append(wc.Members, fn)
		}
	}

	if name, ok := Param(wc.Annotations, "EXPOSE_STATIC_METHODS_AS_"); ok {
		wc.StaticMethodsNamespace = name
	}
}

// signatureKeyForSkipCheck builds a best-effort signature string before full
// parsing (parameter TypeInfo is not yet substitution-resolved at this
// point, so plain declared names are used); this matches what a config file
// author would see in a pre-template-substitution dump.
func signatureKeyForSkipCheck(d *astprovider.MethodDecl) string {
	names := make([]string, len(d.Params))
	for i, p := range d.Params {
		names[i] = p.Type.Name
	}
	return d.QualifiedName + "(" + strings.Join(names, ", ") + ")"
}

// resolveTemplateDefaults builds a substitution map from a method
// declaration's defaulted template parameters. A method with any
// non-defaulted type parameter is skipped entirely (ok=false), per §4.3.
func resolveTemplateDefaults(d *astprovider.MethodDecl) (types.SubstitutionMap, bool) {
	if len(d.TemplateParamsWithoutDefaults) > 0 {
		return nil, false
	}
	if len(d.TemplateParamDefaults) == 0 {
		return nil, true
	}
	subst := make(types.SubstitutionMap, len(d.TemplateParamDefaults))
	for name, ref := range d.TemplateParamDefaults {
		subst[name] = ref
	}
	return subst, true
}

var strayLeadingEquals = regexp.MustCompile(`^\s*=\s*`)

// normalizeDefaultExpr strips a stray leading '=' some frontends include,
// and expands the literal token "{}" to "T{}" using plainType's spelling
// (§3.1, §9 open question — this core replicates the observed workaround).
func normalizeDefaultExpr(src string, plainType string) string {
	src = strayLeadingEquals.ReplaceAllString(src, "")
	src = strings.TrimSpace(src)
	if src == "{}" {
		return plainType + "{}"
	}
	return src
}

func buildClassFunction(wc *WrappedClass, d *astprovider.MethodDecl, subst types.SubstitutionMap) *ClassFunction {
	fn := &ClassFunction{
		Owner:              wc,
		Decl:               d,
		Subst:              subst,
		Kind:               d.Kind,
		QualifiedName:      d.QualifiedName,
		ReturnType:         types.New(d.ReturnType, subst),
		DocComment:         strings.TrimSpace(d.DocComment.Description),
		ReturnDocComment:   strings.TrimSpace(d.DocComment.Return),
		Annotations:        d.Annotations,
		IsVirtual:          d.IsVirtual,
		IsVirtualFinal:     d.IsVirtualFinal,
		IsVirtualOverride:  d.IsVirtualOverride,
		IsStatic:           d.IsStatic,
		IsConst:            d.IsConst,
		IsVolatile:         d.IsVolatile,
		IsLValueQualified:  d.IsLValueQualified,
		IsRValueQualified:  d.IsRValueQualified,
		IsCallableOverload: d.Kind == astprovider.MethodCallOperator,
	}
	for _, u := range d.DocComment.UnmatchedParamNames {
		wc.recordDiagnostic("warning", "doxygen @param "+u+" does not match any parameter of "+d.QualifiedName)
	}
	for i, p := range d.Params {
		ti := types.New(p.Type, subst)
		name := p.Name
		if name == "" {
			name = "unspecified_position_" + strconv.Itoa(i)
		}
		param := Parameter{
			Position: i,
			Name:     name,
			Type:     ti,
		}
		if p.HasDefault {
			param.HasDefault = true
			param.DefaultValue = normalizeDefaultExpr(p.DefaultExprSource, ti.PlainName())
		}
		if doc, ok := d.DocComment.Params[p.Name]; ok {
			param.DocComment = strings.TrimSpace(doc)
		}
		fn.Parameters = append(fn.Parameters, param)
	}
	return fn
}

// resolveFunctionJSName resolves fn's JS name: config member-name override
// (keyed by signature), then a USE_NAME_ annotation, then — for
// constructors only — a CONSTRUCTOR_<name> annotation (§3.2's disambiguation
// mechanism for overloaded constructors, required for I7's global
// constructor-name uniqueness) and otherwise the owning class's resolved JS
// name. Other functions fall back to the declared name; for static methods
// the "static_functions" bulk-rename table is applied to the declared name
// first and the declared name is used only when no rule matches, matching
// §3.1's "same priority order as js_name" plus the §12 supplemented
// bulk-rename behavior.
func resolveFunctionJSName(fn *ClassFunction, doc *cfg.Document, store *AnnotationStore) {
	fn.jsNameResolved = true
	sig := fn.Signature()
	if name, ok := doc.MemberNameOverride(fn.Owner.ClassName, sig); ok {
		fn.jsName = name
		return
	}
	if name, ok := Param(fn.Annotations, "USE_NAME_"); ok {
		fn.jsName = name
		return
	}
	if fn.Kind == astprovider.MethodConstructor {
		if name, ok := Param(fn.Annotations, "CONSTRUCTOR_"); ok {
			fn.jsName = name
			return
		}
		fn.jsName = fn.Owner.JSName(doc, store)
		return
	}
	base := fn.Decl.Name
	if fn.Kind == astprovider.MethodStatic {
		if renamed, ok := cfg.Apply(doc.BulkRenames("static_functions"), base); ok {
			fn.jsName = renamed
			return
		}
	}
	fn.jsName = base
}

// collectUsedClasses records used_classes edges (§3.1) for every record type
// reachable from fn's return type and parameter types.
func collectUsedClasses(wc *WrappedClass, reg *Registry, fn *ClassFunction) {
	addRecordEdges(wc, reg, fn.ReturnType)
	for _, p := range fn.Parameters {
		addRecordEdges(wc, reg, p.Type)
	}
}

func addRecordEdges(wc *WrappedClass, reg *Registry, ti types.TypeInfo) {
	if decl := ti.GetPlainTypeDecl(); decl != nil {
		wc.addUsedClass(reg.GetOrInsert(decl))
	}
	ti.ForEachTemplatedType(func(ref astprovider.TypeRef) {
		if ref.Kind == astprovider.KindRecord && ref.Record != nil {
			wc.addUsedClass(reg.GetOrInsert(ref.Record))
		}
	})
}
