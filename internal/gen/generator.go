package gen

import (
	"context"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"debugctx-generator/internal/analyze"
	"debugctx-generator/internal/config"
	"debugctx-generator/internal/diagnostic"
	"debugctx-generator/internal/directive"
	"debugctx-generator/internal/logging"
	"debugctx-generator/internal/model"
	"debugctx-generator/internal/plan"
)

// ErrDiagnostics is returned when a run produced error diagnostics.
var ErrDiagnostics = errors.New("generation failed")

// Generator produces one file per analyzed package.
type Generator struct {
	cfg     config.Config
	emitter *Emitter
}

// New creates a Generator for a validated configuration.
func New(cfg config.Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	emitter, err := NewEmitter(cfg.MissingContext)
	if err != nil {
		return nil, err
	}

	return &Generator{cfg: cfg, emitter: emitter}, nil
}

type declResult struct {
	section Section
	diags   diagnostic.Diagnostics
}

// Run loads the packages matching patterns and generates their files.
// Packages without selected declarations produce no file. Diagnostics of every
// package are collected before ErrDiagnostics is returned.
func (g *Generator) Run(ctx context.Context, opts analyze.Options, patterns ...string) ([]*File, diagnostic.Diagnostics, error) {
	pkgs, diags, err := analyze.Load(ctx, opts, patterns...)
	if err != nil {
		return nil, diags, err
	}

	var (
		files  []*File
		failed bool
	)

	for _, pkg := range pkgs {
		file, d, err := g.Generate(ctx, pkg)
		diags.Merge(d)

		switch {
		case errors.Is(err, ErrDiagnostics):
			failed = true
		case err != nil:
			return nil, diags, err
		case file != nil:
			files = append(files, file)
		}
	}

	if failed || diags.HasErrors() {
		return nil, diags, ErrDiagnostics
	}

	return files, diags, nil
}

// Generate emits the file of one analyzed package. It returns a nil file when
// the package selects no declarations.
func (g *Generator) Generate(ctx context.Context, pkg *analyze.Package) (*File, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics
	diags.Merge(pkg.Diagnostics)

	if len(pkg.Decls) == 0 {
		logging.Logger.Debugw("no declarations selected", "package", pkg.Path)
		return nil, diags, nil
	}

	// Links need the contexts of every declaration before any unit is emitted.
	scans := make([]declScan, len(pkg.Decls))

	var links plan.Links

	for i, decl := range pkg.Decls {
		scan, d := directive.Scan(decl.Name, decl.Annotations)
		scans[i] = declScan{bindings: scan.Bindings, diags: d}

		if !d.HasErrors() {
			Link(&links, decl, g.emitter.Contexts(decl, scan.Bindings))
		}
	}

	emitter := g.emitter.WithLinks(links)

	// Results are index-addressed so that output order is source order.
	results := make([]declResult, len(pkg.Decls))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.jobs(len(pkg.Decls)))

	for i, decl := range pkg.Decls {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}

			results[i] = emit(emitter, decl, scans[i])

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, diags, errors.Wrapf(err, "emitting %s", pkg.Path)
	}

	var (
		sections []Section
		units    int
	)

	for _, r := range results {
		diags.Merge(r.diags)

		if len(r.section.Units) == 0 {
			continue
		}

		sections = append(sections, r.section)
		units += len(r.section.Units)
	}

	if diags.HasErrors() {
		return nil, diags, errors.Wrapf(ErrDiagnostics, "%s", pkg.Path)
	}

	target := filepath.Join(pkg.Dir, g.cfg.OutputName(pkg.Name))
	imports := append([]model.Import{{Path: g.cfg.Runtime, Name: plan.RuntimeName}}, pkg.Imports...)

	content, err := Assemble(pkg.Name, imports, sections)
	if err != nil {
		if content != nil {
			if p, werr := writeDebugUnformatted(target, content); werr != nil {
				logging.Logger.Warnw("failed to write unformatted source", "error", werr)
			} else if p != "" {
				logging.Logger.Warnw("wrote unformatted source", "path", p)
			}
		}

		return nil, diags, errors.Wrapf(err, "%s", pkg.Path)
	}

	logging.Logger.Debugw("generated file",
		"package", pkg.Path,
		"path", target,
		"declarations", len(sections),
		"units", units)

	return &File{Package: pkg.Path, Path: target, Content: content, Units: units}, diags, nil
}

type declScan struct {
	bindings []model.ContextBinding
	diags    diagnostic.Diagnostics
}

func emit(e *Emitter, decl model.TypeDeclaration, scan declScan) declResult {
	diags := scan.diags
	if diags.HasErrors() {
		return declResult{diags: diags}
	}

	units, emitDiags := e.Emit(decl, scan.bindings)
	diags.Merge(emitDiags)

	if emitDiags.HasErrors() {
		return declResult{diags: diags}
	}

	routes, routeDiags := Route(decl, units)
	diags.Merge(routeDiags)

	return declResult{section: Section{Units: units, Routes: routes}, diags: diags}
}

func (g *Generator) jobs(n int) int {
	jobs := g.cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	return max(1, min(jobs, n))
}
