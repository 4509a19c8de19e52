// Command cppbind is the thin CLI wrapper around the analysis pipeline
// (§1, §10.4): it parses flags, builds an astprovider.Provider from the
// input translation-unit descriptors, wires a pipeline.Pipeline, and writes
// whatever output.Module rendered. It contains no analysis logic of its
// own — that lives in internal/discovery, internal/model and
// internal/partition.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"goa.design/clue/log"

	"github.com/cppbind/cppbind/internal/cfg"
	"github.com/cppbind/cppbind/internal/output"
	"github.com/cppbind/cppbind/internal/output/textmodule"
	"github.com/cppbind/cppbind/internal/pipeline"
	"github.com/cppbind/cppbind/internal/telemetry"
)

func main() {
	var (
		configFileF = flag.String("config-file", "", "path to a JSON configuration document (§6)")
		defaultModF = flag.Bool("use-default-output-modules", true, "render with the built-in text/template output module")
		outF        = flag.String("out", ".", "directory generated files are written to")
		dbgF        = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <translation-unit.json>...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	format := log.FormatJSON
	if log.IsTerminal() {
		format = log.FormatTerminal
	}
	ctx := log.Context(context.Background(), log.WithFormat(format))
	if *dbgF {
		ctx = log.Context(ctx, log.WithDebug())
	}

	if err := run(ctx, *configFileF, *defaultModF, *outF, flag.Args()); err != nil {
		log.Error(ctx, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configFile string, useDefaultOutputModule bool, outDir string, tuPaths []string) error {
	doc := cfg.Empty()
	if configFile != "" {
		f, err := os.Open(configFile)
		if err != nil {
			return fmt.Errorf("open config file: %w", err)
		}
		defer f.Close()
		doc, err = cfg.Load(f)
		if err != nil {
			return fmt.Errorf("load config file: %w", err)
		}
	}

	if len(tuPaths) == 0 {
		return fmt.Errorf("no translation unit descriptors given")
	}

	var mod output.Module
	if useDefaultOutputModule {
		mod = textmodule.New()
	}

	for _, tuPath := range tuPaths {
		provider, err := loadTranslationUnit(tuPath)
		if err != nil {
			return fmt.Errorf("%s: %w", tuPath, err)
		}

		p := pipeline.New(provider, doc, mod)
		p.Logger = telemetry.NewClueLogger()
		p.Tracer = telemetry.NewClueTracer()
		p.Metrics = telemetry.NewClueMetrics()

		result, err := p.Run(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", tuPath, err)
		}

		log.Info(ctx, log.KV{K: "translation_unit", V: tuPath}, log.KV{K: "run_id", V: result.RunID}, log.KV{K: "files", V: len(result.Files)})

		for path, content := range result.Rendered {
			if err := writeOutput(outDir, path, content); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeOutput(outDir, relPath, content string) error {
	dest := filepath.Join(outDir, relPath)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create output directory for %s: %w", relPath, err)
	}
	if err := os.WriteFile(dest, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", relPath, err)
	}
	return nil
}

