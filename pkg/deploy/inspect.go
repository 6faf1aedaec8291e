package deploy

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Inspector extracts the imported dynamic library names of a single binary,
// in the order the underlying tool reports them.
type Inspector interface {
	Inspect(ctx context.Context, path string) ([]string, error)
}

// ToolInspector shells out to an objdump-style tool. The tool location is
// injected at construction so callers decide how it is found and tests can
// point it at a fake.
type ToolInspector struct {
	Tool    string
	Flag    string
	Timeout time.Duration
}

func NewToolInspector(tool string) *ToolInspector {
	return &ToolInspector{
		Tool:    tool,
		Flag:    "-p",
		Timeout: 30 * time.Second,
	}
}

func (t *ToolInspector) Inspect(ctx context.Context, path string) ([]string, error) {
	if t.Tool == "" {
		return nil, fmt.Errorf("no inspection tool configured: %w", ErrInspectionUnavailable)
	}
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	log.Debugf("Inspecting %s with %s %s", path, t.Tool, t.Flag)
	out, err := exec.CommandContext(ctx, t.Tool, t.Flag, path).Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", t.Tool, ErrInspectionUnavailable)
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s timed out on %s: %w", t.Tool, path, ErrInspectionFailed)
		}
		return nil, fmt.Errorf("%s failed on %s: %v: %w", t.Tool, path, err, ErrInspectionFailed)
	}

	names, err := ParseImports(out)
	if err != nil {
		return nil, fmt.Errorf("%s produced unparseable output for %s: %v: %w", t.Tool, path, err, ErrInspectionFailed)
	}
	return names, nil
}

// ParseImports extracts imported library names from objdump-style output.
// Recognized line shapes, everything else is metadata and skipped:
//
//	DLL Name: libwinpthread-1.dll          (PE import tables)
//	NEEDED               libc++.so.1       (ELF dynamic section)
//	0x... (NEEDED) Shared library: [libm.so.6]
//	/usr/lib/libc++.1.dylib (compatibility version ...)
//
// Empty output is a valid zero-dependency result.
func ParseImports(out []byte) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		name, err := parseImportLine(line)
		if err != nil {
			return nil, err
		}
		if name != "" {
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

func parseImportLine(line string) (string, error) {
	trimmed := strings.TrimSpace(line)

	if rest, found := strings.CutPrefix(trimmed, "DLL Name:"); found {
		name := strings.TrimSpace(rest)
		if name == "" {
			return "", &ParseError{Line: line}
		}
		return name, nil
	}

	if strings.Contains(trimmed, "(NEEDED)") {
		start := strings.Index(trimmed, "[")
		end := strings.Index(trimmed, "]")
		if start == -1 || end == -1 || end <= start+1 {
			return "", &ParseError{Line: line}
		}
		return trimmed[start+1 : end], nil
	}

	if fields := strings.Fields(trimmed); len(fields) > 0 && fields[0] == "NEEDED" {
		if len(fields) != 2 {
			return "", &ParseError{Line: line}
		}
		return fields[1], nil
	}

	// otool -L dependency lines are indented and carry a version suffix.
	if strings.HasPrefix(line, "\t") && strings.Contains(trimmed, "(compatibility version") {
		name := strings.TrimSpace(trimmed[:strings.Index(trimmed, "(compatibility version")])
		if name == "" {
			return "", &ParseError{Line: line}
		}
		return name, nil
	}

	return "", nil
}
