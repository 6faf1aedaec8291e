package deploy

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// LinkFunc creates a hard link. Injected so tests can force the copy path
// without needing a second filesystem.
type LinkFunc func(src string, dest string) error

// place executes the plan. Hard links are attempted first since they cost
// no disk space; any link failure (cross-device, permissions, unsupported
// filesystem) falls back to a full copy preserving mode and mtime. A file
// failing both ways is recorded and does not abort its siblings.
func (e *Engine) place(plan Plan, report *Report) {
	link := e.Link
	if link == nil {
		link = os.Link
	}

	for _, entry := range plan {
		record := Record{
			Name:            entry.Library.Name,
			SourcePath:      entry.Library.Path,
			DestinationPath: entry.Destination,
		}
		if entry.UpToDate {
			record.Action = ActionSkip
			report.Records = append(report.Records, record)
			log.Debugf("Skipped (up-to-date): %s", entry.Destination)
			continue
		}

		if err := os.Remove(entry.Destination); err != nil && !os.IsNotExist(err) {
			report.failf(record, fmt.Errorf("could not replace %s: %v", entry.Destination, err))
			continue
		}

		if err := link(entry.Library.Path, entry.Destination); err == nil {
			record.Action = ActionHardLink
			report.Records = append(report.Records, record)
			log.Debugf("Placed (hard link): %s", entry.Destination)
			continue
		}

		if err := copyFile(entry.Library.Path, entry.Destination); err != nil {
			report.failf(record, fmt.Errorf("could not place %s: %v", entry.Destination, err))
			continue
		}
		record.Action = ActionCopy
		report.Records = append(report.Records, record)
		log.Debugf("Placed (copy): %s", entry.Destination)
	}
}

func copyFile(src string, dest string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	reader, err := os.Open(src)
	if err != nil {
		return err
	}
	defer reader.Close()

	writer, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(writer, reader); err != nil {
		writer.Close()
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return os.Chtimes(dest, srcInfo.ModTime(), srcInfo.ModTime())
}
