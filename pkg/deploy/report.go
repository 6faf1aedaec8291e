package deploy

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Action string

const (
	ActionHardLink Action = "hard-link"
	ActionCopy     Action = "copy"
	ActionSkip     Action = "skip-up-to-date"
	ActionFailed   Action = "failed"
)

// Record describes the outcome for a single deployed library.
type Record struct {
	Name            string
	SourcePath      string
	DestinationPath string
	Action          Action
	Err             error
}

// Report is the sole result channel of a deployment operation. Degraded is
// set when the fallback baseline had to stand in for real inspection.
type Report struct {
	Records  []Record
	Degraded bool
	Warnings []string
	Failures []error
}

func (r *Report) warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	log.Warn(msg)
}

func (r *Report) failf(record Record, err error) {
	record.Action = ActionFailed
	record.Err = err
	r.Records = append(r.Records, record)
	r.Failures = append(r.Failures, err)
	log.Warnf("Failed to place %s: %v", record.Name, err)
}

// Placed returns the number of libraries physically written, excluding
// up-to-date skips and failures.
func (r *Report) Placed() int {
	placed := 0
	for _, record := range r.Records {
		if record.Action == ActionHardLink || record.Action == ActionCopy {
			placed++
		}
	}
	return placed
}
