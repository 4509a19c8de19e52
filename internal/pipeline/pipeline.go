// Package pipeline wires the Discovery Driver, Class Model, Partitioner and
// Output Modules into the single end-to-end run described by §1's flow
// diagram, opening one tracer span and recording one set of metrics per
// phase as §10.1 describes, and stamping every run with a uuid-derived run
// ID so a caller diffing two runs' logs can tell them apart.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"

	gcodegen "goa.design/goa/v3/codegen"

	"github.com/cppbind/cppbind/internal/astprovider"
	"github.com/cppbind/cppbind/internal/cfg"
	"github.com/cppbind/cppbind/internal/discovery"
	"github.com/cppbind/cppbind/internal/model"
	"github.com/cppbind/cppbind/internal/output"
	"github.com/cppbind/cppbind/internal/partition"
	"github.com/cppbind/cppbind/internal/telemetry"
)

// Pipeline is the Analyzer + Model + Partitioner, wired together and ready
// to run against one or more translation units.
type Pipeline struct {
	// Provider is the external AST frontend this run draws match events
	// from (§1 Non-goals: parsing C++ is delegated entirely to it).
	Provider astprovider.Provider

	// Config is the parsed, schema-validated configuration document (§6).
	// A nil Config is equivalent to cfg.Empty().
	Config *cfg.Document

	// Module renders the three output artifact families (§6, §10.5). A
	// nil Module skips output rendering and Result.Rendered stays empty —
	// useful for callers that only want validation/partitioning.
	Module output.Module

	Logger  telemetry.Logger
	Tracer  telemetry.Tracer
	Metrics telemetry.Metrics
}

// Result is everything a successful run produced.
type Result struct {
	RunID string

	Registry *model.Registry
	Files    []*partition.File

	// Rendered holds the concatenated text of every output.Module artifact,
	// keyed by its generated file path.
	Rendered map[string]string
}

// New constructs a Pipeline, defaulting Logger to a no-op and Config to an
// empty document when not supplied. Tracer and Metrics are left nil, and a
// nil Tracer or Metrics records nothing.
func New(provider astprovider.Provider, doc *cfg.Document, mod output.Module) *Pipeline {
	if doc == nil {
		doc = cfg.Empty()
	}
	return &Pipeline{
		Provider: provider,
		Config:   doc,
		Module:   mod,
		Logger:   telemetry.NewNoopLogger(),
	}
}

// Run executes one full pipeline pass over a single translation unit: AST
// discovery and validation, partitioning, and (when a Module is configured)
// output rendering. A FatalError aborts the run immediately; a RunErrors
// reports that discovery completed but one or more classes failed
// validation — both are returned as the error result, never panicked.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	runID := uuid.New().String()
	ctx = context.WithValue(ctx, runIDKey{}, runID)

	logger := p.Logger
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	logger = telemetry.NewSinkingLogger(logger)

	result := &Result{RunID: runID, Rendered: map[string]string{}}

	reg := model.NewRegistry()
	store := model.NewAnnotationStore()
	driver := discovery.NewDriver(ctx, reg, store, p.Config, logger)

	if err := p.runPhase(ctx, "discovery", func(ctx context.Context) error {
		if err := p.Provider.Run(discoveryVisitor{driver}); err != nil {
			return fatal("discovery", "AST provider run failed", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := p.runPhase(ctx, "validation", func(ctx context.Context) error {
		driver.OnEndOfTranslationUnit()
		if len(driver.RunErrors) > 0 {
			return &RunErrors{Messages: driver.RunErrors}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	result.Registry = reg

	maxPerFile, _ := p.Config.BindingsMaxDeclarationsPerFile()
	var files []*partition.File
	if err := p.runPhase(ctx, "partition", func(ctx context.Context) error {
		files = partition.Partition(reg.Wrapped(), maxPerFile)
		p.recordCount(ctx, "cppbind.files_emitted", float64(len(files)))
		return nil
	}); err != nil {
		return nil, err
	}
	result.Files = files

	if p.Module == nil {
		return result, nil
	}

	if err := p.runPhase(ctx, "output", func(ctx context.Context) error {
		return p.emit(files, reg.Wrapped(), result)
	}); err != nil {
		return nil, err
	}

	return result, nil
}

func (p *Pipeline) emit(files []*partition.File, wrapped []*model.WrappedClass, result *Result) error {
	header, _ := p.Config.JSStubHeader()

	for _, f := range files {
		gf, err := p.Module.EmitBindingFile(f, len(files))
		if err != nil {
			return fatal("output", fmt.Sprintf("render binding file %s", f.Name()), err)
		}
		if err := p.render(gf, result); err != nil {
			return err
		}
	}

	for _, wc := range wrapped {
		if !wc.Bidirectional {
			continue
		}
		gf, err := p.Module.EmitBidirectionalHeader(wc)
		if err != nil {
			return fatal("output", fmt.Sprintf("render bidirectional header for %s", wc.ClassName), err)
		}
		if err := p.render(gf, result); err != nil {
			return err
		}
	}

	gf, err := p.Module.EmitJSStub(wrapped, header)
	if err != nil {
		return fatal("output", "render js stub", err)
	}
	return p.render(gf, result)
}

func (p *Pipeline) render(gf *gcodegen.File, result *Result) error {
	text, err := output.Render(gf)
	if err != nil {
		return fatal("output", fmt.Sprintf("render %s", gf.Path), err)
	}
	result.Rendered[gf.Path] = text
	return nil
}

type runIDKey struct{}

// RunID returns the run ID stamped on ctx by Run, or "" if ctx was not
// derived from a pipeline run.
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// runPhase opens one tracer span per phase (§10.1), recording its outcome
// and duration, and logs entry/exit at debug level.
func (p *Pipeline) runPhase(ctx context.Context, name string, fn func(context.Context) error) error {
	spanCtx := ctx
	var span telemetry.Span
	if p.Tracer != nil {
		spanCtx, span = p.Tracer.Start(ctx, "cppbind."+name)
	}
	p.Logger.Debug(spanCtx, "phase started", "phase", name, "run_id", RunID(ctx))

	start := time.Now()
	err := fn(spanCtx)
	if p.Metrics != nil {
		p.Metrics.RecordTimer("cppbind.phase_duration", time.Since(start), "phase", name)
	}

	if span != nil {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
	if err != nil {
		p.Logger.Error(spanCtx, "phase failed", "phase", name, "error", err.Error())
		return err
	}
	p.Logger.Debug(spanCtx, "phase completed", "phase", name)
	return nil
}

func (p *Pipeline) recordCount(ctx context.Context, name string, value float64) {
	if p.Metrics == nil {
		return
	}
	p.Metrics.IncCounter(name, value)
}

// discoveryVisitor adapts *discovery.Driver to astprovider.Visitor without
// exposing OnEndOfTranslationUnit to the provider: the pipeline calls it
// itself as a separate, independently traced "validation" phase.
type discoveryVisitor struct {
	d *discovery.Driver
}

func (v discoveryVisitor) OnRecordDefinition(r *astprovider.RecordDecl) { v.d.OnRecordDefinition(r) }
func (v discoveryVisitor) OnTypedefDecl(t *astprovider.TypedefDecl)     { v.d.OnTypedefDecl(t) }
func (v discoveryVisitor) OnForwardDecl(f *astprovider.ForwardDecl)     { v.d.OnForwardDecl(f) }
func (v discoveryVisitor) OnEndOfTranslationUnit()                      {}
