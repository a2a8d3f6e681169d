package discover_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/anteater/internal/discover"
)

func TestGoPackageDirs_ResolvesModulePackages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/widget\n\ngo 1.23\n")
	writeFile(t, dir, "main.go", "package main\n\nfunc main() {}\n")
	writeFile(t, dir, "util/util.go", "package util\n")

	dirs, err := discover.GoPackageDirs(context.Background(), dir)
	if err != nil {
		t.Skipf("go toolchain unavailable in this environment: %v", err)
	}

	abs, _ := filepath.Abs(filepath.Join(dir, "util"))
	assert.Contains(t, dirs, abs)
}
