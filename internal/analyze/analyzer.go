package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"

	"debugctx-generator/internal/diagnostic"
	"debugctx-generator/internal/directive"
	"debugctx-generator/internal/match"
	"debugctx-generator/internal/model"
	"debugctx-generator/internal/plan"
)

// formatMethod is the capability method name generated code declares.
const formatMethod = "FormatWithContext"

// typeEntry is one type spec of the package in source order.
type typeEntry struct {
	spec        *ast.TypeSpec
	obj         *types.TypeName
	annotations []model.Annotation
	pos         token.Position
}

// Analyzer describes the declarations of one type-checked package.
type Analyzer struct {
	fset    *token.FileSet
	files   []*ast.File
	pkg     *types.Package
	info    *types.Info
	imports *importSet
	wanted  map[string]bool
	found   map[string]bool
}

// NewAnalyzer creates an Analyzer for a type-checked package. typeNames lists the
// declarations to select in addition to those carrying directives.
func NewAnalyzer(
	fset *token.FileSet,
	files []*ast.File,
	pkg *types.Package,
	info *types.Info,
	typeNames []string,
) *Analyzer {
	wanted := make(map[string]bool, len(typeNames))
	for _, t := range typeNames {
		wanted[t] = true
	}

	return &Analyzer{
		fset:    fset,
		files:   sortedFiles(fset, files),
		pkg:     pkg,
		info:    info,
		imports: newImportSet(pkg),
		wanted:  wanted,
		found:   make(map[string]bool),
	}
}

// Analyze selects and describes the package's declarations.
func (a *Analyzer) Analyze() *Package {
	out := &Package{
		Name: a.pkg.Name(),
		Path: a.pkg.Path(),
		Dir:  a.dir(),
	}

	entries := a.entries()

	for _, e := range entries {
		selected := directive.Selects(e.annotations) || a.wanted[e.obj.Name()]
		if !selected {
			continue
		}

		a.found[e.obj.Name()] = true

		if e.obj.IsAlias() {
			out.Diagnostics.AddWarning(diagnostic.CodeAliasSkipped,
				"type aliases cannot be given formatting code; annotate the aliased type instead",
				e.obj.Name(), e.pos)

			continue
		}

		out.Decls = append(out.Decls, a.declaration(e, entries))
	}

	out.Imports = a.imports.imports()

	return out
}

// Found reports whether a type requested by name was seen.
func (a *Analyzer) Found(name string) bool {
	return a.found[name]
}

// TypeNames lists every type declared at package level, in source order.
func (a *Analyzer) TypeNames() []string {
	var names []string
	for _, e := range a.entries() {
		names = append(names, e.obj.Name())
	}

	return names
}

func (a *Analyzer) dir() string {
	if len(a.files) == 0 {
		return ""
	}

	return filepath.Dir(a.fset.Position(a.files[0].Package).Filename)
}

// entries collects every package-level type spec in file then offset order.
func (a *Analyzer) entries() []typeEntry {
	var out []typeEntry

	for _, file := range a.files {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				obj, ok := a.info.Defs[ts.Name].(*types.TypeName)
				if !ok {
					continue
				}

				groups := []*ast.CommentGroup{ts.Doc}
				if !gd.Lparen.IsValid() {
					groups = []*ast.CommentGroup{gd.Doc, ts.Doc}
				}

				out = append(out, typeEntry{
					spec:        ts,
					obj:         obj,
					annotations: directive.Collect(a.fset, groups...),
					pos:         a.fset.Position(ts.Name.Pos()),
				})
			}
		}
	}

	return out
}

func (a *Analyzer) declaration(e typeEntry, entries []typeEntry) model.TypeDeclaration {
	named, _ := e.obj.Type().(*types.Named)

	decl := model.TypeDeclaration{
		Name:        e.obj.Name(),
		Pos:         e.pos,
		Annotations: e.annotations,
	}

	if named == nil {
		decl.Shape = model.RecordShape(model.NewFieldSet(nil))
		return decl
	}

	tparams := named.TypeParams()
	for i := range tparams.Len() {
		tp := tparams.At(i)
		decl.Generics = append(decl.Generics, model.GenericParam{
			Name:       tp.Obj().Name(),
			Constraint: a.imports.typeString(tp.Constraint()),
		})
	}

	decl.HasFormatMethod = a.declaresFormatMethod(named)

	switch under := named.Underlying().(type) {
	case *types.Interface:
		if !under.IsMethodSet() {
			decl.Shape = model.Shape{Kind: model.ShapeUnion}
			return decl
		}

		decl.Shape = model.EnumShape(a.variants(named, under, entries))
	default:
		decl.Shape = model.RecordShape(a.fieldSet(under))
	}

	return decl
}

// declaresFormatMethod reports whether the type already has a method or field
// named FormatWithContext at depth zero.
func (a *Analyzer) declaresFormatMethod(named *types.Named) bool {
	obj, index, _ := types.LookupFieldOrMethod(named, true, a.pkg, formatMethod)
	return obj != nil && len(index) == 1
}

// fieldSet describes the components of an underlying type: struct fields,
// array elements, or the single converted value of any other type.
func (a *Analyzer) fieldSet(under types.Type) model.FieldSet {
	switch t := under.(type) {
	case *types.Struct:
		return model.NewFieldSet(a.structFields(t))
	case *types.Array:
		fields := make([]model.Field, 0, t.Len())
		for i := range int(t.Len()) {
			fields = append(fields, model.Field{
				Type:      a.imports.describe(t.Elem()),
				TypeParam: isTypeParam(t.Elem()),
				Access:    model.Access{Kind: model.AccessIndex, Index: i},
				Instance:  a.instance(t.Elem()),
			})
		}

		return model.NewFieldSet(fields)
	default:
		conv := a.imports.typeString(t)

		return model.NewFieldSet([]model.Field{{
			Type:   conv,
			Access: model.Access{Kind: model.AccessConversion, Conversion: conv},
		}})
	}
}

func (a *Analyzer) structFields(st *types.Struct) []model.Field {
	fields := make([]model.Field, 0, st.NumFields())

	for i := range st.NumFields() {
		v := st.Field(i)
		if v.Name() == "_" || !v.Exported() && v.Pkg() != a.pkg {
			continue
		}

		f := model.Field{
			Type:      a.imports.describe(v.Type()),
			TypeParam: isTypeParam(v.Type()),
			Access:    model.Access{Kind: model.AccessSelector, Selector: v.Name()},
			Instance:  a.instance(v.Type()),
		}

		if !v.Embedded() {
			f.Name = v.Name()
		}

		fields = append(fields, f)
	}

	return fields
}

// instance describes t when it instantiates a generic type of the package.
func (a *Analyzer) instance(t types.Type) *model.Instance {
	named, ok := t.(*types.Named)
	if !ok || named.TypeArgs().Len() == 0 || named.Obj().Pkg() != a.pkg {
		return nil
	}

	inst := &model.Instance{Origin: named.Obj().Name()}

	args := named.TypeArgs()
	for i := range args.Len() {
		arg := args.At(i)
		ta := model.TypeArg{Param: isTypeParam(arg), Context: a.methodContext(arg)}

		if n, ok := arg.(*types.Named); ok && n.Obj().Pkg() == a.pkg && n.TypeArgs().Len() == 0 {
			ta.Name = n.Obj().Name()
		}

		inst.Args = append(inst.Args, ta)
	}

	return inst
}

// methodContext returns the ctx parameter type of the FormatWithContext method
// in the value method set of t, or "" when there is none of the capability's
// shape.
func (a *Analyzer) methodContext(t types.Type) string {
	if isTypeParam(t) {
		return ""
	}

	obj, _, _ := types.LookupFieldOrMethod(t, false, a.pkg, formatMethod)

	fn, ok := obj.(*types.Func)
	if !ok {
		return ""
	}

	sig, _ := fn.Type().(*types.Signature)
	if sig == nil || sig.Params().Len() != 2 || sig.Results().Len() != 1 {
		return ""
	}

	if !isFormatterPtr(sig.Params().At(0).Type()) ||
		!types.Identical(sig.Results().At(0).Type(), types.Universe.Lookup("error").Type()) {
		return ""
	}

	return a.imports.describe(sig.Params().At(1).Type())
}

func isFormatterPtr(t types.Type) bool {
	ptr, ok := t.(*types.Pointer)
	if !ok {
		return false
	}

	named, ok := ptr.Elem().(*types.Named)

	return ok && named.Obj().Name() == "Formatter" && named.Obj().Pkg() != nil &&
		named.Obj().Pkg().Name() == plan.RuntimeName
}

func isTypeParam(t types.Type) bool {
	_, ok := t.(*types.TypeParam)
	return ok
}

// sortedFiles orders files by name so that source order is deterministic.
func sortedFiles(fset *token.FileSet, files []*ast.File) []*ast.File {
	out := append([]*ast.File(nil), files...)
	sort.SliceStable(out, func(i, j int) bool {
		return fset.Position(out[i].Package).Filename < fset.Position(out[j].Package).Filename
	})

	return out
}

// missingTypes reports requested names that no analyzed package declared.
func missingTypes(requested []string, found func(string) bool, known []string) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	for _, name := range requested {
		if found(name) {
			continue
		}

		var hints []string
		for _, s := range match.Suggest(name, known) {
			hints = append(hints, fmt.Sprintf("did you mean %s?", s))
		}

		diags.AddError(diagnostic.CodeTypeNotFound,
			fmt.Sprintf("type %s not found", name), name, token.Position{}, hints...)
	}

	return diags
}
