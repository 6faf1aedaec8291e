package deploy

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolver looks up imported library names in the toolchain's own library
// directories, in order. A name that matches nowhere is OS-provided and
// stays out of the dependency graph; there is no name-based allow or deny
// list anywhere else.
type Resolver struct {
	SearchDirs []string

	// Insensitive enables case-insensitive name matching for toolchains
	// whose library naming convention ignores case (PE).
	Insensitive bool
}

// Resolve returns the symlink-resolved absolute path of name inside the
// first matching search directory, or "" if the name is not
// toolchain-provided.
func (r *Resolver) Resolve(name string) (string, error) {
	for _, dir := range r.SearchDirs {
		candidate := filepath.Join(dir, name)
		_, err := os.Stat(candidate)
		if err != nil && os.IsNotExist(err) && r.Insensitive {
			candidate, err = r.matchFold(dir, name)
		}
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", err
		}
		resolved, err := filepath.EvalSymlinks(candidate)
		if err != nil {
			return "", err
		}
		return filepath.Abs(resolved)
	}
	return "", nil
}

func (r *Resolver) matchFold(dir string, name string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(entry.Name(), name) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", os.ErrNotExist
}
