package gen

import (
	"bytes"
	"go/format"
	"sort"
	"text/template"

	"github.com/cockroachdb/errors"

	"debugctx-generator/internal/common"
	"debugctx-generator/internal/model"
)

// Section is everything generated for one declaration.
type Section struct {
	Units  []model.EmissionUnit
	Routes Routes
}

type importLine struct {
	Alias string
	Path  string
}

type fileData struct {
	Header        string
	Package       string
	Imports       []importLine
	Sections      []Section
	Registrations []string
}

var fileTemplate = template.Must(template.New("file").Parse(`{{.Header}}

package {{.Package}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)
{{range .Sections}}{{range .Units}}
// {{.FuncName}} writes the debug representation of v{{if not .Placeholder}} using a {{.ContextType}} context{{end}}.
func {{.FuncName}}{{.TypeParams}}(f *debugctx.Formatter, v {{.Receiver}}, ctx {{.ContextType}}) error {
{{.Body}}}
{{end}}{{with .Routes.Adapter}}
// FormatWithContext implements debugctx.Debugger[{{.ContextType}}].
func (v {{.Receiver}}) FormatWithContext(f *debugctx.Formatter, ctx {{.ContextType}}) error {
	return {{.FuncName}}(f, v, ctx)
}
{{end}}{{end}}{{if .Registrations}}
func init() {
{{- range .Registrations}}
	{{.}}
{{- end}}
}
{{end}}`))

// Assemble renders one generated file. Sections keep their order; imports are
// sorted by path. When gofmt rejects the result the unformatted source is
// returned along with the error.
func Assemble(pkgName string, imports []model.Import, sections []Section) ([]byte, error) {
	data := fileData{
		Header:   model.GeneratedHeader,
		Package:  pkgName,
		Sections: sections,
	}

	sorted := append([]model.Import(nil), imports...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	for _, imp := range sorted {
		data.Imports = append(data.Imports, importLine{
			Alias: common.ImportAlias(imp.Name, imp.Path),
			Path:  imp.Path,
		})
	}

	for _, s := range sections {
		data.Registrations = append(data.Registrations, s.Routes.Registrations...)
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "executing template")
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), errors.Wrap(err, "formatting code")
	}

	return formatted, nil
}
