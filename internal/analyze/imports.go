package analyze

import (
	"go/types"
	"sort"
	"strconv"

	"debugctx-generator/internal/model"
	"debugctx-generator/internal/plan"
)

// importSet qualifies type expressions relative to one package and remembers
// every other package it had to name. Each path gets one identifier; clashes
// are resolved by numbering, and the runtime identifier is never handed out.
type importSet struct {
	pkg    *types.Package
	byPath map[string]string
	byName map[string]string
}

func newImportSet(pkg *types.Package) *importSet {
	return &importSet{
		pkg:    pkg,
		byPath: make(map[string]string),
		byName: map[string]string{plan.RuntimeName: "", pkg.Name(): pkg.Path()},
	}
}

// qualifier implements types.Qualifier.
func (s *importSet) qualifier(p *types.Package) string {
	if p == nil || p.Path() == s.pkg.Path() {
		return ""
	}

	if name, ok := s.byPath[p.Path()]; ok {
		return name
	}

	name := p.Name()
	for i := 2; ; i++ {
		if _, taken := s.byName[name]; !taken {
			break
		}

		name = p.Name() + strconv.Itoa(i)
	}

	s.byPath[p.Path()] = name
	s.byName[name] = p.Path()

	return name
}

// typeString renders t as it must be written inside the package and records
// the packages it names. Only expressions that end up in generated code go
// through here.
func (s *importSet) typeString(t types.Type) string {
	return types.TypeString(t, s.qualifier)
}

// describe renders t for display without recording imports.
func (s *importSet) describe(t types.Type) string {
	return types.TypeString(t, func(p *types.Package) string {
		if p == nil || p.Path() == s.pkg.Path() {
			return ""
		}

		if name, ok := s.byPath[p.Path()]; ok {
			return name
		}

		return p.Name()
	})
}

// imports lists the recorded packages sorted by path.
func (s *importSet) imports() []model.Import {
	out := make([]model.Import, 0, len(s.byPath))
	for path, name := range s.byPath {
		out = append(out, model.Import{Path: path, Name: name})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })

	return out
}
