package model

import (
	"context"

	"github.com/cppbind/cppbind/internal/cfg"
	"github.com/cppbind/cppbind/internal/telemetry"
)

// classSink adapts a WrappedClass into a telemetry.ErrorSink so validation
// can drive diagnostics through the logger's scoped-callback mechanism
// instead of mutating the class directly (§9's "logging callback scope"
// design note).
type classSink struct{ wc *WrappedClass }

func (s classSink) Record(severity, msg string, _ []any) {
	s.wc.recordDiagnostic(severity, msg)
}

// GlobalConstructorNames tracks JS constructor-name uniqueness across every
// wrapped class (§3.3 I7): constructors share one JS namespace.
type GlobalConstructorNames struct {
	seen map[string]string // jsName -> owning class name
}

func NewGlobalConstructorNames() *GlobalConstructorNames {
	return &GlobalConstructorNames{seen: map[string]string{}}
}

// Validate runs every §4.5 check against wc exactly once, recording
// diagnostics into wc.Errors/wc.Warnings via a scoped ErrorSink installed for
// the duration of the call. A class with any recorded error must not be
// emitted (§4.5, §7).
func Validate(ctx context.Context, wc *WrappedClass, doc *cfg.Document, store *AnnotationStore, log telemetry.Logger, ctors *GlobalConstructorNames) {
	ctx, pop := telemetry.WithErrorSink(ctx, classSink{wc: wc})
	defer pop()

	// JSName is resolved (and cached) here, ahead of every check that reads
	// it, so validation never races the class's own lazy resolution with a
	// nil config/store.
	wc.JSName(doc, store)

	validateSingleBase(ctx, wc, log)
	validateReservedNames(ctx, wc, log)
	validateNameCollisions(ctx, wc, log)
	validateJSNameLegality(ctx, wc, log)
	validateIncludeClosure(wc)
	validateBidirectional(ctx, wc, log)
	validatePimplClosure(ctx, wc, log)
	validateConstructorUniqueness(ctx, wc, log, ctors)
}

// validateSingleBase implements §3.3 (I3): JavaScript supports single
// inheritance only, so more than one non-ignored base is an error (S4).
func validateSingleBase(ctx context.Context, wc *WrappedClass, log telemetry.Logger) {
	if len(wc.BaseTypes) > 1 {
		log.Error(ctx, "type has more than one base class", "class", wc.ClassName)
	}
}

func validateReservedNames(ctx context.Context, wc *WrappedClass, log telemetry.Logger) {
	if reservedJSGlobalNames[wc.jsName] {
		log.Error(ctx, "class js_name collides with a reserved JavaScript global", "class", wc.ClassName, "js_name", wc.jsName)
	}
	for _, s := range wc.Statics {
		if reservedJSGlobalNames[s.JSName()] || reservedJSFunctionNames[s.JSName()] {
			log.Error(ctx, "static method js_name collides with a reserved JavaScript global or Function property name", "class", wc.ClassName, "js_name", s.JSName())
		}
	}
}

// reservedJSFunctionNames are property names every JavaScript Function
// object already carries; a static method exposed on the class constructor
// under one of them would collide (S3).
var reservedJSFunctionNames = map[string]bool{
	"arguments": true, "arity": true, "caller": true, "length": true, "name": true,
}

func validateNameCollisions(ctx context.Context, wc *WrappedClass, log telemetry.Logger) {
	statics := map[string]bool{}
	for _, s := range wc.Statics {
		if statics[s.JSName()] {
			log.Error(ctx, "duplicate static method js_name", "class", wc.ClassName, "js_name", s.JSName())
		}
		statics[s.JSName()] = true
	}

	instance := map[string]bool{}
	for _, m := range wc.Members {
		if instance[m.JSName()] {
			log.Error(ctx, "duplicate instance member js_name", "class", wc.ClassName, "js_name", m.JSName())
		}
		instance[m.JSName()] = true
	}
	if wc.CallOperator != nil {
		if instance[wc.CallOperator.JSName()] {
			log.Error(ctx, "duplicate instance member js_name", "class", wc.ClassName, "js_name", wc.CallOperator.JSName())
		}
		instance[wc.CallOperator.JSName()] = true
	}
	for _, dm := range wc.DataMembers {
		if instance[dm.JSName()] {
			log.Error(ctx, "duplicate instance member js_name", "class", wc.ClassName, "js_name", dm.JSName())
		}
		instance[dm.JSName()] = true
	}
}

func validateJSNameLegality(ctx context.Context, wc *WrappedClass, log telemetry.Logger) {
	check := func(name, what string) {
		if name == "" || !isLegalJSName(name) {
			log.Error(ctx, "illegal js_name", "class", wc.ClassName, "what", what, "js_name", name)
		}
	}
	check(wc.jsName, "class")
	for _, c := range wc.Constructors {
		check(c.JSName(), "constructor")
	}
	for _, s := range wc.Statics {
		check(s.JSName(), "static method")
	}
	for _, m := range wc.Members {
		check(m.JSName(), "member")
	}
	for _, dm := range wc.DataMembers {
		check(dm.JSName(), "data member")
	}
}

func isLegalJSName(name string) bool {
	for _, r := range name {
		if r == '<' || r == '>' || r == ':' {
			return false
		}
	}
	return name != ""
}

// validateIncludeClosure implements §4.5/§3.3 (I5): union in own include,
// includes of every exposed signature's types, includes of every exposed
// data member's type, and the include files of every base and derived type.
func validateIncludeClosure(wc *WrappedClass) {
	add := func(incs []string) { wc.AddIncludes(incs) }

	for _, fn := range allFunctions(wc) {
		add(fn.ReturnType.GetRootIncludes())
		for _, p := range fn.Parameters {
			add(p.Type.GetRootIncludes())
		}
	}
	for _, dm := range wc.DataMembers {
		add(dm.Type.GetRootIncludes())
	}
	for _, b := range wc.BaseTypes {
		for inc := range b.IncludeFiles {
			wc.IncludeFiles[inc] = true
		}
	}
	for _, d := range wc.DerivedTypes {
		for inc := range d.IncludeFiles {
			wc.IncludeFiles[inc] = true
		}
	}
}

func allFunctions(wc *WrappedClass) []*ClassFunction {
	out := append([]*ClassFunction{}, wc.Constructors...)
	out = append(out, wc.Members...)
	out = append(out, wc.Statics...)
	if wc.CallOperator != nil {
		out = append(out, wc.CallOperator)
	}
	return out
}

// validateBidirectional implements §3.3 (I8)/§4.5. Two distinct entities are
// checked here: the annotated class itself must carry exactly one
// bidirectional-constructor (checked via its own BIDIRECTIONAL_CLASS
// annotation, since the annotated class is never itself wc.Bidirectional —
// that flag marks the synthesized subclass the Discovery Driver derives from
// it); and the synthesized subclass's unique base (the annotated class) must
// itself carry that recorded bidirectional constructor.
func validateBidirectional(ctx context.Context, wc *WrappedClass, log telemetry.Logger) {
	if Has(wc.Annotations, "BIDIRECTIONAL_CLASS") {
		count := 0
		for _, c := range wc.Constructors {
			if Has(c.Annotations, "BIDIRECTIONAL_CONSTRUCTOR") {
				count++
			}
		}
		if count != 1 {
			log.Error(ctx, "bidirectional class must have exactly one bidirectional constructor", "class", wc.ClassName, "count", count)
		}
	}
	if !wc.Bidirectional {
		return
	}
	for _, b := range wc.BaseTypes {
		if !hasBidirectionalConstructor(b) {
			log.Error(ctx, "bidirectional class's base has no registered bidirectional constructor", "class", wc.ClassName, "base", b.ClassName)
		}
	}
}

func hasBidirectionalConstructor(wc *WrappedClass) bool {
	for _, c := range wc.Constructors {
		if Has(c.Annotations, "BIDIRECTIONAL_CONSTRUCTOR") {
			return true
		}
	}
	return false
}

// validatePimplClosure implements §4.5/§3.3 (I9): every hoisted member has a
// unique AccessedThrough, and no duplicate underlying PIMPL types (the
// latter is already enforced at parse time in ParseMembers; this re-checks
// invariants in case members were constructed outside that path, e.g. by
// tests).
func validatePimplClosure(ctx context.Context, wc *WrappedClass, log telemetry.Logger) {
	underlying := map[string]*DataMember{}
	for _, dm := range wc.DataMembers {
		if dm.AccessedThrough == nil {
			continue
		}
		key := dm.AccessedThrough.LongName
		if prior, ok := underlying[key]; ok && prior != dm.AccessedThrough {
			log.Error(ctx, "PIMPL member accessed through ambiguous field", "class", wc.ClassName, "member", dm.LongName)
		}
		underlying[key] = dm.AccessedThrough
	}
}

func validateConstructorUniqueness(ctx context.Context, wc *WrappedClass, log telemetry.Logger, ctors *GlobalConstructorNames) {
	if ctors == nil {
		return
	}
	for _, c := range wc.Constructors {
		name := c.JSName()
		if owner, dup := ctors.seen[name]; dup {
			log.Error(ctx, "duplicate constructor js_name across wrapped classes", "js_name", name, "class", wc.ClassName, "other_class", owner)
			continue
		}
		ctors.seen[name] = wc.ClassName
	}
}
