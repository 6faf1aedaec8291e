package manifest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/clangtc/clangtc/pkg/api/clangtc"
	"sigs.k8s.io/yaml"
)

// CacheHelper reads and writes per-source files below the manifest cache
// directory.
type CacheHelper struct {
	CacheDir string
}

func (c *CacheHelper) WriteToSourceDir(source *clangtc.Source, body io.Reader, name string) error {
	dir := filepath.Join(c.CacheDir, source.Name)
	file := filepath.Join(dir, name)

	err := os.MkdirAll(dir, 0770)
	if err != nil && !os.IsExist(err) {
		return fmt.Errorf("failed to create cache directory for %s: %v", source.Name, err)
	}
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %v", file, err)
	}
	defer f.Close()
	_, err = io.Copy(f, body)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %v", file, err)
	}
	return nil
}

func (c *CacheHelper) OpenFromSourceDir(source *clangtc.Source, name string) (io.ReadCloser, error) {
	file := filepath.Join(c.CacheDir, source.Name, name)
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %v", file, err)
	}
	return f, nil
}

func (c *CacheHelper) UnmarshalFromSourceDir(source *clangtc.Source, name string, obj interface{}) error {
	reader, err := c.OpenFromSourceDir(source, name)
	if err != nil {
		return err
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, obj)
}

// CurrentManifest returns the last fetched component manifest of a source.
func (c *CacheHelper) CurrentManifest(source *clangtc.Source) (*clangtc.Manifest, error) {
	manifest := &clangtc.Manifest{}
	if err := c.UnmarshalFromSourceDir(source, "manifest.yaml", manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

// CurrentManifests returns the manifests of all enabled sources.
func (c *CacheHelper) CurrentManifests(sources *clangtc.Sources) (manifests []*clangtc.Manifest, err error) {
	for i, source := range sources.Sources {
		if source.Disabled {
			continue
		}
		manifest, err := c.CurrentManifest(&sources.Sources[i])
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, manifest)
	}
	return manifests, nil
}
