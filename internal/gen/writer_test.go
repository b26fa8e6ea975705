package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_UpToDate(t *testing.T) {
	file := &File{
		Path:    filepath.Join(t.TempDir(), "nested", "geo_debugctx.go"),
		Content: []byte("package geo\n"),
	}

	ok, err := UpToDate(file)
	require.NoError(t, err)
	assert.False(t, ok, "missing file is stale")

	require.NoError(t, WriteFile(file))

	ok, err = UpToDate(file)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, os.WriteFile(file.Path, []byte("package geo // edited\n"), filePerm))

	ok, err = UpToDate(file)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteDebugUnformatted(t *testing.T) {
	target := filepath.Join(t.TempDir(), "geo_debugctx.go")

	p, err := writeDebugUnformatted(target, []byte("package geo\nfunc {"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(target), "geo_debugctx.unformatted.go"), p)

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "package geo\nfunc {", string(b))

	p, err = writeDebugUnformatted("", nil)
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestAssemble_RejectsInvalidSource(t *testing.T) {
	sections := []Section{{Routes: Routes{Registrations: []string{"debugctx.Register("}}}}

	content, err := Assemble("geo", nil, sections)
	require.Error(t, err)
	assert.Contains(t, string(content), "debugctx.Register(")
}
