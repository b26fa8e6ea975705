package gen_test

import (
	"os/exec"
	"path/filepath"
	"testing"
)

// runExample checks that the committed generated file of an example is up to
// date and that the example's own tests pass against it.
func runExample(t *testing.T, exampleName string) {
	t.Helper()

	repoRoot, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		t.Fatalf("repo root: %v", err)
	}

	pkg := "./examples/" + exampleName

	check := exec.CommandContext(t.Context(), "go", "run", "./cmd/debugctx-generator", "check", pkg)
	check.Dir = repoRoot

	b, err := check.CombinedOutput()
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, string(b))
	}

	test := exec.CommandContext(t.Context(), "go", "test", pkg, "-count=1")
	test.Dir = repoRoot

	b, err = test.CombinedOutput()
	if err != nil {
		t.Fatalf("example tests failed: %v\n%s", err, string(b))
	}
}
