package deploy

import (
	"context"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Engine computes the dependency closure of a binary over the toolchain's
// library directories and co-locates the result next to the binary, so it
// runs standalone without the toolchain on any global search path.
type Engine struct {
	Inspector   Inspector
	SearchDirs  []string
	Insensitive bool
	Fallback    *Fallback
	Link        LinkFunc
}

func (e *Engine) resolver() *Resolver {
	return &Resolver{SearchDirs: e.SearchDirs, Insensitive: e.Insensitive}
}

// Closure returns the transitive toolchain-resident dependencies of binary
// without placing anything.
func (e *Engine) Closure(ctx context.Context, binary string) ([]*Library, *Report, error) {
	report := &Report{}
	libs, err := e.closure(ctx, binary, report)
	if err != nil {
		return nil, nil, err
	}
	return libs, report, nil
}

// Deploy runs one full build-plan-place operation for binary. An empty
// destDir deploys next to the binary. Fatal errors (root inspection failure
// without a fallback, duplicate destinations) leave the filesystem
// untouched; per-file placement failures are recorded in the report and do
// not abort sibling placements.
func (e *Engine) Deploy(ctx context.Context, binary string, destDir string) (*Report, error) {
	if destDir == "" {
		destDir = filepath.Dir(binary)
	}

	report := &Report{}
	libs, err := e.closure(ctx, binary, report)
	if err != nil {
		return nil, err
	}
	if len(libs) == 0 {
		log.Debugf("No toolchain dependencies found for %s", binary)
		return report, nil
	}

	plan, err := NewPlan(libs, destDir)
	if err != nil {
		return nil, err
	}
	e.place(plan, report)

	log.Infof("Deployed %d of %d libraries for %s", report.Placed(), len(plan), filepath.Base(binary))
	return report, nil
}
