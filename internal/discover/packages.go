package discover

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// GoPackageDirs resolves the package directories under root using the same
// package-discovery idiom as golang.org/x/tools' own tooling (go/packages),
// rather than a bare directory walk: it understands build tags, module
// boundaries, and multi-package directories the way `go list` does. It is
// exported for callers; internal/run and cmd/anteater do not call it, and
// scans always use the plain Walk.
func GoPackageDirs(ctx context.Context, root string) ([]string, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedFiles,
		Dir:     root,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("discover: load packages under %s: %w", root, err)
	}
	seen := map[string]bool{}
	var dirs []string
	for _, pkg := range pkgs {
		for _, f := range pkg.GoFiles {
			dir := filepath.Dir(f)
			if !seen[dir] {
				seen[dir] = true
				dirs = append(dirs, dir)
			}
		}
	}
	return dirs, nil
}
