package common

import "path"

// ImportAlias returns the identifier an import spec must spell out for a
// package imported as name, or "" when the default identifier already matches.
//
// The default is assumed to be the last path element, which holds for every
// package whose name follows its directory.
func ImportAlias(name, pkgPath string) string {
	if pkgPath == "" || name == path.Base(pkgPath) {
		return ""
	}

	return name
}
