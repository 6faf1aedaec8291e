package repo

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
)

// Extract unpacks an archive file (tar.gz, tar.xz, zip, ...) into dir. The
// format is identified from the original archive name and the stream
// itself, since downloads land in extensionless temp files.
func Extract(ctx context.Context, file string, originalName string, dir string) error {
	reader, err := os.Open(file)
	if err != nil {
		return err
	}
	defer reader.Close()

	format, input, err := archives.Identify(ctx, originalName, reader)
	if err != nil {
		return fmt.Errorf("failed to identify archive format of %s: %v", originalName, err)
	}
	extractor, ok := format.(archives.Extractor)
	if !ok {
		return fmt.Errorf("%s is not an extractable archive", originalName)
	}

	return extractor.Extract(ctx, input, func(ctx context.Context, f archives.FileInfo) error {
		target, err := safeJoin(dir, f.NameInArchive)
		if err != nil {
			return err
		}
		switch {
		case f.IsDir():
			return os.MkdirAll(target, 0770)
		case f.LinkTarget != "":
			if err := os.MkdirAll(filepath.Dir(target), 0770); err != nil {
				return err
			}
			if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
				return err
			}
			return os.Symlink(f.LinkTarget, target)
		default:
			if err := os.MkdirAll(filepath.Dir(target), 0770); err != nil {
				return err
			}
			in, err := f.Open()
			if err != nil {
				return err
			}
			defer in.Close()
			out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode().Perm())
			if err != nil {
				return err
			}
			defer out.Close()
			_, err = io.Copy(out, in)
			return err
		}
	})
}

func safeJoin(dir string, name string) (string, error) {
	target := filepath.Join(dir, name)
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry %s escapes %s", name, dir)
	}
	return target, nil
}
