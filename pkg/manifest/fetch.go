package manifest

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/clangtc/clangtc/pkg/api/clangtc"
	"github.com/hashicorp/go-retryablehttp"
	log "github.com/sirupsen/logrus"
)

// Fetcher refreshes the locally cached manifest documents for every
// enabled source.
type Fetcher interface {
	Fetch() error
}

type FetcherImpl struct {
	Getter      Getter
	Sources     []clangtc.Source
	Platform    string
	Arch        string
	CacheHelper *CacheHelper
}

func NewRemoteFetcher(sources []clangtc.Source, cacheDir string, platform string, arch string) Fetcher {
	return &FetcherImpl{
		Sources:     sources,
		Getter:      NewGetter(),
		Platform:    platform,
		Arch:        arch,
		CacheHelper: &CacheHelper{CacheDir: cacheDir},
	}
}

func (f *FetcherImpl) Fetch() error {
	for _, source := range f.Sources {
		if source.Disabled {
			continue
		}
		root, err := f.resolveRootManifest(&source)
		if err != nil {
			return fmt.Errorf("failed to resolve root manifest for %s: %v", source.Name, err)
		}
		manifestPath := root.ManifestPath(f.Platform, f.Arch)
		if manifestPath == "" {
			return fmt.Errorf("source %s has no manifest for %s/%s", source.Name, f.Platform, f.Arch)
		}
		if err := f.fetchManifest(&source, manifestPath); err != nil {
			return fmt.Errorf("failed to fetch manifest for %s: %v", source.Name, err)
		}
	}
	return nil
}

func (f *FetcherImpl) resolveRootManifest(source *clangtc.Source) (*clangtc.RootManifest, error) {
	rootURL := strings.TrimSuffix(source.Baseurl, "/") + "/root.yaml"
	log.Infof("Resolving root manifest from %s", rootURL)
	resp, err := f.Getter.Get(rootURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to download %s: %v", rootURL, fmt.Errorf("status : %v", resp.StatusCode))
	}
	if err := f.CacheHelper.WriteToSourceDir(source, resp.Body, "root.yaml"); err != nil {
		return nil, err
	}

	root := &clangtc.RootManifest{}
	if err := f.CacheHelper.UnmarshalFromSourceDir(source, "root.yaml", root); err != nil {
		return nil, err
	}
	return root, nil
}

func (f *FetcherImpl) fetchManifest(source *clangtc.Source, manifestPath string) error {
	manifestURL := manifestPath
	if !strings.Contains(manifestPath, "://") {
		manifestURL = strings.TrimSuffix(source.Baseurl, "/") + "/" + strings.TrimPrefix(manifestPath, "/")
	}
	log.Infof("Loading manifest from %s", manifestURL)
	resp, err := f.Getter.Get(manifestURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("failed to download %s: %v", manifestURL, fmt.Errorf("status : %v", resp.StatusCode))
	}
	if err := f.CacheHelper.WriteToSourceDir(source, resp.Body, "manifest.yaml"); err != nil {
		return err
	}

	// Fail fetch early on documents the installer cannot use later.
	manifest := &clangtc.Manifest{}
	if err := f.CacheHelper.UnmarshalFromSourceDir(source, "manifest.yaml", manifest); err != nil {
		return err
	}
	if manifest.Version == "" || len(manifest.Archives) == 0 {
		return fmt.Errorf("manifest from %s names no version or archives", manifestURL)
	}
	return nil
}

type Getter interface {
	Get(url string) (resp *http.Response, err error)
}

type getterImpl struct {
	client *retryablehttp.Client
}

func NewGetter() Getter {
	client := retryablehttp.NewClient()
	client.Logger = nil
	return &getterImpl{client: client}
}

func fileGet(filename string) (*http.Response, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err // skipped wrapping the error since the error already begins with "open: "
	}

	resp := &http.Response{
		Status:     "OK",
		StatusCode: http.StatusOK,
		Body:       fp,
	}
	return resp, nil
}

func (g *getterImpl) Get(rawURL string) (*http.Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if u.Scheme == "file" {
		return fileGet(u.Path)
	}
	return g.client.Get(rawURL)
}
