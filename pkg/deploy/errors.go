package deploy

import (
	"errors"
	"fmt"
)

var (
	// ErrInspectionUnavailable signals that the inspection tool could not
	// be invoked at all. For the root binary this triggers the configured
	// fallback baseline.
	ErrInspectionUnavailable = errors.New("inspection tool unavailable")

	// ErrInspectionFailed signals that the inspection tool ran but failed
	// or produced output the parser rejects.
	ErrInspectionFailed = errors.New("inspection failed")

	// ErrResolutionFailed signals that the dependency closure for the root
	// binary could not be computed and nothing was deployed.
	ErrResolutionFailed = errors.New("dependency resolution failed")
)

// DuplicateDestinationError reports two distinct resolved libraries mapping
// to the same destination file, which indicates a packaging inconsistency
// in the toolchain tree. It is raised before any file is placed.
type DuplicateDestinationError struct {
	Destination string
	Sources     []string
}

func (e *DuplicateDestinationError) Error() string {
	return fmt.Sprintf("duplicate deployment destination %s for sources %v", e.Destination, e.Sources)
}

// ParseError reports a recognized import line whose payload could not be
// extracted, e.g. a "DLL Name:" line without a name token.
type ParseError struct {
	Line string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable import line: %q", e.Line)
}
