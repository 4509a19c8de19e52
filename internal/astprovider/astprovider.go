// Package astprovider defines the contract between the analysis pipeline and
// the external C++ AST frontend. Per §1's Non-goals, parsing C++ from source
// is delegated entirely to that frontend; this package only describes the
// shape of the match events and declaration/type handles the frontend is
// expected to deliver, modeled on a clang-plugin-style visitor. The core
// ships one concrete Provider, astprovider/fixture, a small in-memory test
// double used by unit and property tests in place of a real C++ parser.
package astprovider

type (
	// Kind enumerates the structural shapes a TypeRef can take. It stands in
	// for the handful of clang QualType::getTypeClass() cases §4.2's type
	// stringification algorithm actually branches on.
	Kind int

	// TypeRef is the AST provider's handle for a C++ type at one use site
	// (a parameter, a return type, a field, or a template argument). It is
	// already desugared through typedef chains (§4.2 steps 2-3, which are
	// AST-specific and so are the frontend's responsibility) but has not yet
	// had template-parameter substitution or reference/pointer/cv stripping
	// applied — that is internal/types's job.
	TypeRef struct {
		Kind Kind
		// Name is: the bare spelling for KindFundamental/KindNullptr (e.g.
		// "int", "void", "std::nullptr_t"); the qualified type name for
		// KindRecord; the template-parameter name for KindTemplateParam
		// (e.g. "T"); the qualified template name for
		// KindTemplateSpecialization (e.g. "std::vector").
		Name string

		IsConst           bool
		IsVolatile        bool
		IsReference       bool
		IsRValueReference bool
		PointerDepth      int

		// RootInclude is the verbatim #include spelling (with its original
		// quoting) that brought this type's own declaration into the
		// translation unit. Empty when unknown.
		RootInclude string

		// Record backs a KindRecord TypeRef when the referenced type is
		// itself a record declared in this translation unit (so the Class
		// Model can link it into used_classes/derived edges). nil for
		// opaque library types (e.g. a bare "std::string" field).
		Record *RecordDecl

		// Args holds the template arguments of a KindTemplateSpecialization
		// TypeRef, in order. Non-type template arguments are not
		// represented (§4.2: "non-type template arguments are skipped").
		Args []TypeRef

		// Return and Params back a KindFunctionProto TypeRef.
		Return *TypeRef
		Params []TypeRef
	}

	// Param is one parameter of a method/constructor declaration.
	Param struct {
		// Name is empty when the parameter is unnamed in source; the Class
		// Model synthesizes "unspecified_position_N" in that case (§3.1).
		Name string
		Type TypeRef
		// HasDefault reports whether the parameter carries a default
		// argument expression.
		HasDefault bool
		// DefaultExprSource is the verbatim source slice of the default
		// argument expression, exactly as the frontend's source manager
		// captured it — including a possible stray leading '=' that some
		// frontend versions include (§9 design notes, open question).
		DefaultExprSource string
		// DocComment is this parameter's @param paragraph, if the enclosing
		// declaration's doxygen comment had one matching this parameter by
		// name.
		DocComment string
	}

	// DocComment is a declaration's associated doxygen comment, already
	// split into its constituent parts by the frontend (§4.3). The core
	// does not parse comment syntax itself; it only associates the parts
	// the frontend already identified with parameters by name.
	DocComment struct {
		// Description is the first free paragraph.
		Description string
		// Return is the first @return block's paragraph.
		Return string
		// Params maps a written @param name to its paragraph.
		Params map[string]string
		// UnmatchedParamNames lists @param names present in the comment
		// that did not match any real parameter by name (§7 warnings).
		UnmatchedParamNames []string
	}

	// MethodKind distinguishes the four ClassFunction flavors of §3.1/§9.
	MethodKind int

	// MethodDecl is one method-shaped declaration found while iterating a
	// record's members (§4.3: "iterate over its declarations in order, not
	// only its methods").
	MethodDecl struct {
		Kind          MethodKind
		Name          string
		QualifiedName string

		IsPublic          bool
		IsStatic          bool
		IsVirtual         bool
		IsVirtualFinal    bool
		IsVirtualOverride bool
		IsConst           bool
		IsVolatile        bool
		IsLValueQualified bool
		IsRValueQualified bool

		// IsDestructor/IsConversionOperator/IsOtherOperator identify the
		// declaration shapes §4.3 always skips (anything but operator()).
		IsDestructor        bool
		IsConversionOperator bool
		IsOtherOperator     bool

		// IsCopyOrMoveConstructor/IsDeleted are consulted only when Kind is
		// MethodConstructor.
		IsCopyOrMoveConstructor bool
		IsDeleted               bool

		// IsUsingShadow marks a using-declaration bringing a base method
		// into scope; ShadowTarget is the method it resolves to.
		IsUsingShadow bool
		ShadowTarget  *MethodDecl

		// TemplateParamsWithoutDefaults lists the function-template type
		// parameters that have no default type. A non-empty list means the
		// declaration is skipped entirely (§4.3). TemplateParamDefaults maps
		// each parameter with a default to the TypeRef it defaults to, used
		// to build the substitution map when all parameters have defaults.
		TemplateParamsWithoutDefaults []string
		TemplateParamDefaults         map[string]TypeRef

		ReturnType TypeRef
		Params     []Param

		DocComment DocComment
		// Annotations are this declaration's own annotation strings, not yet
		// merged with any template/typedef annotation sets.
		Annotations []string
	}

	// FieldDecl is one data member declaration.
	FieldDecl struct {
		Name          string
		QualifiedName string
		IsPublic      bool
		Type          TypeRef
		DocComment    string
		Annotations   []string
	}

	// EnumElement is one (name, value) pair of an enumeration.
	EnumElement struct {
		Name  string
		Value int
	}

	// EnumDecl is one enum (or enum class) nested in a record.
	EnumDecl struct {
		Name     string
		Elements []EnumElement
	}

	// BaseSpec is one base-class specifier of a record.
	BaseSpec struct {
		Base *RecordDecl
	}

	// RecordDecl is a class/struct definition as delivered by the frontend.
	RecordDecl struct {
		// QualifiedName is the canonical fully-qualified name, WITH a
		// leading "class "/"struct " keyword exactly as a clang
		// PrintingPolicy would render it; naming.StripClassKeyword removes
		// it (§3.1).
		QualifiedName string
		IsStruct      bool
		IsAbstract    bool
		IsPublic      bool
		// IsDependent marks an uninstantiated template pattern; §4.4 rule 1
		// only fires for non-dependent definitions.
		IsDependent bool
		// InheritsMarkerBase reports whether this record publicly derives,
		// directly or transitively, from the host wrapper runtime's marker
		// base class — the signal Discovery Driver rule 1 (§4.4) keys on.
		InheritsMarkerBase bool

		// TemplatePattern is the class-template declaration this record was
		// instantiated from, or nil if this record is not a template
		// specialization. Mirrors the original's
		// "instantiation_pattern" field; used by the Annotation & Config
		// Store to let specializations inherit their template's annotations
		// (§3.2, §8 property 7).
		TemplatePattern *RecordDecl

		Bases   []BaseSpec
		Methods []*MethodDecl
		Fields  []*FieldDecl
		Enums   []*EnumDecl

		DefiningHeader string
		Annotations    []string
	}

	// TypedefDecl is a typedef/using declaration bearing annotations, or
	// naming a record via NAME_ALIAS (§4.4 rule 4).
	TypedefDecl struct {
		Name        string
		Underlying  *RecordDecl
		Annotations []string
	}

	// ForwardDecl is a forward declaration bearing annotations (§4.4 rule
	// 3). IsClassTemplate distinguishes a class-template forward
	// declaration (whose annotations merge into the template's registry so
	// all specializations inherit them) from a plain record forward
	// declaration (whose annotations merge directly into the record's
	// registry).
	ForwardDecl struct {
		QualifiedName   string
		IsClassTemplate bool
		Annotations     []string
		// Record is the anchor declaration this forward declaration
		// resolves to: the class template itself when IsClassTemplate, or
		// the eventual record declaration otherwise. The Annotation & Config
		// Store merges Annotations into this anchor's registry (§4.4 rule
		// 3).
		Record *RecordDecl
	}

	// Visitor receives match events from a Provider, in discovery order,
	// terminated by exactly one OnEndOfTranslationUnit call.
	Visitor interface {
		OnRecordDefinition(r *RecordDecl)
		OnTypedefDecl(t *TypedefDecl)
		OnForwardDecl(f *ForwardDecl)
		OnEndOfTranslationUnit()
	}

	// Provider is the external AST frontend's contract: walk one translation
	// unit, delivering match events to v.
	Provider interface {
		Run(v Visitor) error
	}
)

const (
	KindFundamental Kind = iota
	KindNullptr
	KindRecord
	KindTemplateParam
	KindTemplateSpecialization
	KindFunctionProto
)

const (
	MethodMember MethodKind = iota
	MethodStatic
	MethodConstructor
	MethodCallOperator
)
