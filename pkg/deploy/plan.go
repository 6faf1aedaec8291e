package deploy

import (
	"os"
	"path/filepath"
)

// PlanEntry pairs a resolved library with its destination. UpToDate entries
// are reported but never touched on disk.
type PlanEntry struct {
	Library     *Library
	Destination string
	UpToDate    bool
}

type Plan []PlanEntry

// NewPlan maps every library to destDir/basename and classifies entries
// already present with a modification time at or past the source's (and the
// same size, catching truncated writes) as up to date. Two sources mapping
// to the same destination abort planning before anything is placed.
func NewPlan(libs []*Library, destDir string) (Plan, error) {
	plan := make(Plan, 0, len(libs))
	destinations := map[string]string{}

	for _, lib := range libs {
		dest := filepath.Join(destDir, filepath.Base(lib.Path))
		if previous, exists := destinations[dest]; exists {
			return nil, &DuplicateDestinationError{
				Destination: dest,
				Sources:     []string{previous, lib.Path},
			}
		}
		destinations[dest] = lib.Path

		upToDate, err := isUpToDate(lib.Path, dest)
		if err != nil {
			return nil, err
		}
		plan = append(plan, PlanEntry{Library: lib, Destination: dest, UpToDate: upToDate})
	}
	return plan, nil
}

func isUpToDate(src string, dest string) (bool, error) {
	destInfo, err := os.Stat(dest)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, err
	}
	return !destInfo.ModTime().Before(srcInfo.ModTime()) && destInfo.Size() == srcInfo.Size(), nil
}
