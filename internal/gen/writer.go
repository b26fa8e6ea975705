package gen

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// File is one generated source file.
type File struct {
	// Package is the import path the file belongs to.
	Package string
	// Path is where the file is written.
	Path string
	// Content is the formatted Go source code.
	Content []byte
	// Units counts the emitted functions.
	Units int
}

// WriteFile writes the file, creating its directory if needed.
func WriteFile(file *File) error {
	if err := os.MkdirAll(filepath.Dir(file.Path), dirPerm); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	if err := os.WriteFile(file.Path, file.Content, filePerm); err != nil {
		return errors.Wrapf(err, "writing file %s", file.Path)
	}

	return nil
}

// UpToDate reports whether the file on disk has exactly the generated content.
// A missing file is out of date.
func UpToDate(file *File) (bool, error) {
	existing, err := os.ReadFile(file.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, errors.Wrapf(err, "reading file %s", file.Path)
	}

	return bytes.Equal(existing, file.Content), nil
}

// writeDebugUnformatted writes code gofmt rejected to a sidecar next to the
// intended output. It is best-effort.
func writeDebugUnformatted(target string, content []byte) (string, error) {
	if target == "" {
		return "", nil
	}

	if err := os.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return "", err
	}

	// Keep it a .go file so editors can syntax highlight it.
	p := strings.TrimSuffix(target, ".go") + ".unformatted.go"

	return p, os.WriteFile(p, content, filePerm)
}
