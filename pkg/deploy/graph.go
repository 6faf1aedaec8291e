package deploy

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Library is one toolchain-provided dependency bound to its resolved source
// file. Identity is the symlink-resolved absolute path: two import names
// pointing at the same real file yield one Library.
type Library struct {
	Name    string
	Path    string
	Deps    []string
	Scanned bool
}

// closure computes the transitive set of toolchain-resident libraries
// reachable from root via breadth-first traversal. The visited set is owned
// by this call, so concurrent deployments of different binaries cannot
// interfere. The root itself is never part of the result.
func (e *Engine) closure(ctx context.Context, root string, report *Report) ([]*Library, error) {
	rootPath, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(rootPath); err == nil {
		rootPath = resolved
	}

	visited := map[string]struct{}{rootPath: {}}
	queue := []*Library{{Name: filepath.Base(rootPath), Path: rootPath}}
	var libs []*Library

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		names, err := e.Inspector.Inspect(ctx, current.Path)
		if err != nil {
			if current.Path != rootPath {
				// Conservative degradation: the library itself stays in the
				// deployment set, only its further expansion is skipped.
				report.warnf("Could not scan dependencies of %s, deploying it without expanding: %v", current.Name, err)
				current.Scanned = true
				continue
			}
			if errors.Is(err, ErrInspectionUnavailable) && e.Fallback != nil {
				names = e.Fallback.Names
				report.Degraded = true
				report.warnf("Inspection unavailable for %s, substituting baseline %s", current.Name, e.Fallback.Version)
			} else {
				return nil, fmt.Errorf("could not inspect root binary %s: %v: %w", rootPath, err, ErrResolutionFailed)
			}
		}
		current.Deps = names
		current.Scanned = true

		for _, name := range names {
			path, err := e.resolver().Resolve(name)
			if err != nil {
				return nil, fmt.Errorf("could not resolve %s: %v: %w", name, err, ErrResolutionFailed)
			}
			if path == "" {
				log.Debugf("%s is not toolchain-provided, skipping", name)
				continue
			}
			if _, seen := visited[path]; seen {
				continue
			}
			visited[path] = struct{}{}
			lib := &Library{Name: filepath.Base(path), Path: path}
			libs = append(libs, lib)
			queue = append(queue, lib)
		}
	}

	return libs, nil
}
