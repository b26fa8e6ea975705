package analyze

import (
	"debugctx-generator/internal/diagnostic"
	"debugctx-generator/internal/model"
)

// Package is the analysis result for one Go package.
type Package struct {
	// Name is the package name.
	Name string
	// Path is the import path.
	Path string
	// Dir is the directory holding the package sources.
	Dir string
	// Decls are the selected declarations in source order.
	Decls []model.TypeDeclaration
	// Imports are the packages referenced by expressions in Decls, sorted by
	// path.
	Imports []model.Import
	// Diagnostics holds findings made while selecting declarations.
	Diagnostics diagnostic.Diagnostics
}

// Options controls which declarations are selected.
type Options struct {
	// Dir is the working directory for package patterns.
	Dir string
	// Types selects declarations by name in addition to directives.
	Types []string
	// BuildTags are passed to the build system.
	BuildTags []string
}
