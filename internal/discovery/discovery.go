// Package discovery implements the Discovery Driver (§4.4): the
// astprovider.Visitor that receives match events from the AST frontend and
// feeds the Class Model's registry and the Annotation & Config Store.
package discovery

import (
	"context"
	"strings"

	"github.com/cppbind/cppbind/internal/astprovider"
	"github.com/cppbind/cppbind/internal/cfg"
	"github.com/cppbind/cppbind/internal/model"
	"github.com/cppbind/cppbind/internal/naming"
	"github.com/cppbind/cppbind/internal/telemetry"
	"github.com/cppbind/cppbind/internal/types"
)

// Driver implements astprovider.Visitor, wiring discovered declarations into
// a model.Registry and model.AnnotationStore (§4.4).
type Driver struct {
	Registry   *model.Registry
	Store      *model.AnnotationStore
	Config     *cfg.Document
	Logger     telemetry.Logger
	JSDocTable *types.JSDocTable

	ctx context.Context

	// RunErrors accumulates structural/data errors surfaced at end of
	// translation unit (§7).
	RunErrors []string
}

// NewDriver constructs a Driver. ctx carries the run's tracer/logger scope
// and is threaded through every match event and the final validation pass.
func NewDriver(ctx context.Context, reg *model.Registry, store *model.AnnotationStore, doc *cfg.Document, log telemetry.Logger) *Driver {
	return &Driver{
		Registry:   reg,
		Store:      store,
		Config:     doc,
		Logger:     log,
		JSDocTable: types.DefaultJSDocTable(),
		ctx:        ctx,
	}
}

func isStdOrReservedNamespace(qualifiedName string) bool {
	bare := naming.StripClassKeyword(qualifiedName)
	_, short := splitAtFirst(bare)
	return strings.HasPrefix(bare, "std::") || strings.HasPrefix(short, "__")
}

func splitAtFirst(qualified string) (namespace, short string) {
	idx := strings.LastIndex(qualified, "::")
	if idx < 0 {
		return "", qualified
	}
	return qualified[:idx], qualified[idx+2:]
}

// OnRecordDefinition handles match-event rules 1 and 2 of §4.4.
func (d *Driver) OnRecordDefinition(r *astprovider.RecordDecl) {
	if r.IsDependent {
		// An uninstantiated class-template pattern: its own annotations
		// belong to the template-level registry so specializations inherit
		// them (§3.2, §8 property 7), but it is never itself a wrapping
		// candidate.
		d.Store.MergeTemplateInto(r, r.Annotations)
		return
	}
	if !r.IsPublic || isStdOrReservedNamespace(r.QualifiedName) {
		return
	}

	wc := d.Registry.GetOrInsert(r)
	wc.Annotations = d.Store.AnnotationsOf(r)

	if r.InheritsMarkerBase {
		wc.Promote(model.Inheritance)
	} else {
		wc.Promote(model.Unspecified)
	}

	d.wireBases(wc, r)

	if model.Has(wc.Annotations, "BIDIRECTIONAL_CLASS") {
		d.wireBidirectional(wc)
	}
}

// wireBidirectional implements the BIDIRECTIONAL_CLASS match event: a
// synthesized subclass entry is inserted into the registry, deriving from
// the annotated class, found_method=Generated so it is always wrapped
// regardless of the annotated class's own BINDINGS_ALL/BINDINGS_NONE
// status (§3.1, §4.4), grounded on
// class_parser/wrapped_class.cpp:286-324
// (make_bidirectional_wrapped_class_if_needed).
func (d *Driver) wireBidirectional(wc *model.WrappedClass) {
	jsName := wc.JSName(d.Config, d.Store)
	decl := &astprovider.RecordDecl{
		QualifiedName: "JS" + jsName,
		IsPublic:      true,
	}
	sub := d.Registry.GetOrInsert(decl)
	sub.Promote(model.Generated)
	sub.Bidirectional = true
	sub.AddBase(wc)
	sub.AddIncludes([]string{
		naming.BidirectionalHeaderName(jsName),
		"<v8toolkit/bidirectional.h>",
	})
}

// wireBases links wc to its accepted base classes, honoring
// IGNORE_BASE_TYPE_<name> and USE_BASE_TYPE_<name> annotations (§3.2), and
// promotes each accepted base to BaseClass (§3.3 I2, §4.4 promotion rule).
func (d *Driver) wireBases(wc *model.WrappedClass, r *astprovider.RecordDecl) {
	ignored := map[string]bool{}
	for _, name := range model.ParamAll(wc.Annotations, "IGNORE_BASE_TYPE_") {
		ignored[name] = true
	}
	useOnly, hasUseOnly := model.Param(wc.Annotations, "USE_BASE_TYPE_")

	for _, base := range r.Bases {
		if base.Base == nil {
			continue
		}
		baseName := naming.StripClassKeyword(base.Base.QualifiedName)
		_, shortName := splitAtFirst(baseName)
		if ignored[shortName] || ignored[baseName] {
			continue
		}
		if hasUseOnly && shortName != useOnly && baseName != useOnly {
			continue
		}
		baseWC := d.Registry.GetOrInsert(base.Base)
		wc.AddBase(baseWC)
		baseWC.Promote(model.BaseClass)
	}
}

// OnTypedefDecl handles match-event rule 4 of §4.4.
func (d *Driver) OnTypedefDecl(t *astprovider.TypedefDecl) {
	if t.Underlying == nil {
		return
	}
	d.Store.MergeInto(t.Underlying, t.Annotations)
	if model.Has(t.Annotations, "NAME_ALIAS") {
		d.Store.SetAlias(t.Underlying, t.Name)
	}
}

// OnForwardDecl handles match-event rule 3 of §4.4.
func (d *Driver) OnForwardDecl(f *astprovider.ForwardDecl) {
	if f.Record == nil || len(f.Annotations) == 0 {
		return
	}
	if f.IsClassTemplate {
		d.Store.MergeTemplateInto(f.Record, f.Annotations)
		return
	}
	d.Store.MergeInto(f.Record, f.Annotations)
}

// OnEndOfTranslationUnit emits queued warnings, records every class's errors
// in RunErrors (the pipeline fails the run when it is non-empty), and
// otherwise leaves the registry ready for the
// Partitioner and output modules (§4.4, §5 — the pipeline package owns
// actually invoking them so discovery stays a pure AST-to-model translator).
func (d *Driver) OnEndOfTranslationUnit() {
	ctors := model.NewGlobalConstructorNames()
	for _, wc := range d.Registry.All() {
		if !wc.ShouldBeWrapped() {
			continue
		}
		model.ParseAllMethods(wc, d.Registry, d.Config, d.Store, d.JSDocTable)
		model.ParseMembers(wc, d.Registry, d.Config, d.Store)
		model.ParseEnums(wc)
		wc.ComputeDeclarationCount(model.DefaultDeclarationBaseCost)
	}
	for _, wc := range d.Registry.All() {
		if !wc.ShouldBeWrapped() {
			continue
		}
		model.Validate(d.ctx, wc, d.Config, d.Store, d.Logger, ctors)
		for _, e := range wc.Errors {
			d.RunErrors = append(d.RunErrors, wc.ClassName+": "+e.Message)
		}
		for _, w := range wc.Warnings {
			d.Logger.Warn(d.ctx, w.Message, "class", wc.ClassName)
		}
	}
}
