package model

import (
	"strings"

	"github.com/cppbind/cppbind/internal/astprovider"
	"github.com/cppbind/cppbind/internal/types"
)

// Parameter is one parameter of a ClassFunction (§3.1).
type Parameter struct {
	Position int
	Name     string
	Type     types.TypeInfo

	HasDefault   bool
	DefaultValue string // normalized source text, per §9's capture rules

	DocComment string
}

// ClassFunction is the shared payload of the four method flavors
// (constructor, member, static, call-operator), tagged by Kind (§9's
// "polymorphism across method kinds" note).
type ClassFunction struct {
	Owner *WrappedClass
	Decl  *astprovider.MethodDecl
	Subst types.SubstitutionMap

	Kind astprovider.MethodKind

	QualifiedName string
	jsNameResolved bool
	jsName         string

	ReturnType types.TypeInfo
	Parameters []Parameter

	DocComment       string
	ReturnDocComment string

	Annotations []string

	IsVirtual         bool
	IsVirtualFinal    bool
	IsVirtualOverride bool
	IsStatic          bool
	IsConst           bool
	IsVolatile        bool
	IsLValueQualified bool
	IsRValueQualified bool
	IsCallableOverload bool
}

// JSName returns the function's resolved JavaScript name. Resolution itself
// happens once, during parsing (resolveFunctionJSName), in the same
// priority order as WrappedClass.JSName.
func (f *ClassFunction) JSName() string {
	return f.jsName
}

// signatureParamTypeNames renders each parameter's canonical type name, used
// by Signature.
func (f *ClassFunction) signatureParamTypeNames() []string {
	names := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		names[i] = p.Type.Name()
	}
	return names
}

// Signature computes the §4.3 signature string used as the config lookup
// key: return type, space, qualified name, parenthesized comma-separated
// parameter type names, followed by trailing const/volatile/&/&& tokens.
func (f *ClassFunction) Signature() string {
	var b strings.Builder
	if !f.ReturnType.IsVoid() || f.Kind != astprovider.MethodConstructor {
		b.WriteString(f.ReturnType.Name())
		b.WriteString(" ")
	}
	b.WriteString(f.QualifiedName)
	b.WriteString("(")
	b.WriteString(strings.Join(f.signatureParamTypeNames(), ", "))
	b.WriteString(")")
	if f.IsConst {
		b.WriteString(" const")
	}
	if f.IsVolatile {
		b.WriteString(" volatile")
	}
	if f.IsRValueQualified {
		b.WriteString(" &&")
	} else if f.IsLValueQualified {
		b.WriteString(" &")
	}
	return b.String()
}
