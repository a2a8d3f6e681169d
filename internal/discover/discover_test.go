package discover_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/anteater/internal/discover"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWalk_ParsesGoFilesAndSkipsOthers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main\n\nfunc main() {}\n")
	writeFile(t, dir, "main_test.go", "package main\n")
	writeFile(t, dir, "README.md", "hello\n")
	writeFile(t, dir, "vendor/dep/dep.go", "package dep\n")

	d := discover.New()
	units, err := d.Walk(context.Background(), dir)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(units, 1)
	assert.Equal("main.go", filepath.Base(units[0].Path))
	assert.NoError(units[0].ParseErr)
	assert.NotNil(units[0].Tree)
}

func TestWalk_ExcludeGlobSkipsMatchedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.go", "package main\n")
	writeFile(t, dir, "generated.go", "package main\n")

	d := discover.New(discover.WithExclude(func(path string) bool {
		return filepath.Base(path) == "generated.go"
	}))
	units, err := d.Walk(context.Background(), dir)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(units, 1)
	assert.Equal("keep.go", filepath.Base(units[0].Path))
}

func TestWalk_UnparseableFileYieldsParseErrNotAbort(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.go", "package main\n\nfunc main() {}\n")
	writeFile(t, dir, "bad.go", "this is ] not [ valid go (((")

	d := discover.New()
	units, err := d.Walk(context.Background(), dir)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(units, 2)
	for _, u := range units {
		if filepath.Base(u.Path) == "good.go" {
			assert.NoError(u.ParseErr)
		}
	}
}

func TestWalk_JavaMatcherSkipsBuildDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/Main.java", "class Main {}\n")
	writeFile(t, dir, "build/Generated.java", "class Generated {}\n")

	d := discover.New(discover.WithMatcher(discover.JavaFiles))
	units, err := d.Walk(context.Background(), dir)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(units, 1)
	assert.Equal("Main.java", filepath.Base(units[0].Path))
}
