package config

import (
	"path/filepath"
	"regexp"

	"golang.org/x/mod/modfile"
)

// moduleNameRegex is the teacher's own extractGoModuleName fallback for
// when modfile.Parse can't make sense of the file.
var moduleNameRegex = regexp.MustCompile(`module\s+([^\s]+)`)

// ModuleName extracts the module path declared in a go.mod file's contents,
// the way inspector/repository.Detector's extractGoModuleName resolves a
// project's name: golang.org/x/mod/modfile first, falling back to a plain
// regex, and finally to the containing directory's name.
//
// goModPath is used only for modfile.Parse's diagnostics and the final
// directory-name fallback; it need not exist on disk.
func ModuleName(goModPath string, data []byte) string {
	if mod, err := modfile.Parse(goModPath, data, nil); err == nil && mod.Module != nil {
		return mod.Module.Mod.Path
	}
	if matches := moduleNameRegex.FindSubmatch(data); len(matches) == 2 {
		return string(matches[1])
	}
	return filepath.Base(filepath.Dir(goModPath))
}
