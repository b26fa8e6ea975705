package analyze

import (
	"go/ast"
	"go/importer"
	"go/token"
	"go/types"
	"sort"

	"github.com/cockroachdb/errors"

	"debugctx-generator/internal/logging"
)

// LoadSource type-checks an in-memory package given as file name to content
// and analyzes it. Standard library imports are resolved from source.
func LoadSource(pkgPath string, files map[string]string, opts Options) (*Package, error) {
	fset := token.NewFileSet()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}

	sort.Strings(names)

	syntax := make([]*ast.File, 0, len(names))
	for _, name := range names {
		f, err := parseSource(fset, name, []byte(files[name]))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s", name)
		}

		syntax = append(syntax, f)
	}

	info := &types.Info{
		Defs:  make(map[*ast.Ident]types.Object),
		Types: make(map[ast.Expr]types.TypeAndValue),
		Uses:  make(map[*ast.Ident]types.Object),
	}

	conf := types.Config{
		Importer: importer.ForCompiler(fset, "source", nil),
		Error: func(err error) {
			logging.Logger.Warnw("type error tolerated", "package", pkgPath, "error", err)
		},
	}

	pkg, _ := conf.Check(pkgPath, fset, syntax, info)
	if pkg == nil {
		return nil, errors.Newf("failed to type-check %s", pkgPath)
	}

	a := NewAnalyzer(fset, syntax, pkg, info, opts.Types)
	res := a.Analyze()

	res.Diagnostics.Merge(missingTypes(opts.Types, a.Found, a.TypeNames()))

	return res, nil
}
