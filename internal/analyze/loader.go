package analyze

import (
	"bytes"
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"

	"debugctx-generator/internal/diagnostic"
	"debugctx-generator/internal/logging"
	"debugctx-generator/internal/model"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Load loads the packages matching patterns and analyzes each of them.
//
// Parse and list errors fail the load. Type errors are logged and tolerated:
// code that calls previously generated functions does not type-check while
// the generated file is hidden from the loader.
func Load(ctx context.Context, opts Options, patterns ...string) ([]*Package, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	cfg := &packages.Config{
		Context:   ctx,
		Mode:      LoadMode,
		Dir:       opts.Dir,
		ParseFile: parseSource,
	}
	if len(opts.BuildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(opts.BuildTags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, diags, errors.Wrap(err, "failed to load packages")
	}

	if len(pkgs) == 0 {
		return nil, diags, errors.Newf("no packages match %s", strings.Join(patterns, " "))
	}

	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].PkgPath < pkgs[j].PkgPath })

	if err := checkErrors(pkgs); err != nil {
		return nil, diags, err
	}

	var (
		out   []*Package
		known []string
		found = make(map[string]bool)
	)

	for _, pkg := range pkgs {
		a := NewAnalyzer(pkg.Fset, pkg.Syntax, pkg.Types, pkg.TypesInfo, opts.Types)
		res := a.Analyze()

		logging.Logger.Debugw("analyzed package",
			"package", res.Path,
			"selected", len(res.Decls))

		for _, name := range opts.Types {
			if a.Found(name) {
				found[name] = true
			}
		}

		known = append(known, a.TypeNames()...)
		out = append(out, res)
	}

	diags.Merge(missingTypes(opts.Types, func(name string) bool { return found[name] }, known))

	return out, diags, nil
}

func checkErrors(pkgs []*packages.Package) error {
	var errs []string

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError && pkg.Types != nil {
				logging.Logger.Warnw("type error tolerated", "package", pkg.PkgPath, "error", e.Msg, "pos", e.Pos)
				continue
			}

			errs = append(errs, e.Error())
		}
	}

	if len(errs) > 0 {
		return errors.Newf("package errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// parseSource parses a file for the loader. Files produced by this generator
// are reduced to their package clause.
func parseSource(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
	mode := parser.AllErrors | parser.ParseComments
	if IsGenerated(src) {
		mode = parser.PackageClauseOnly
	}

	return parser.ParseFile(fset, filename, src, mode)
}

// IsGenerated reports whether src was written by this generator.
func IsGenerated(src []byte) bool {
	return bytes.HasPrefix(src, []byte(model.GeneratedHeader))
}
