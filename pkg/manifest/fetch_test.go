package manifest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/clangtc/clangtc/pkg/api/clangtc"
	. "github.com/onsi/gomega"
)

const rootManifest = `
platforms:
  - name: linux
    architectures:
      - name: x86_64
        manifest: linux-x86_64.yaml
  - name: windows
    architectures:
      - name: x86_64
        manifest: windows-x86_64.yaml
`

const platformManifest = `
component: clang
version: 17.0.6
flavor: llvm
archives:
  - url: https://example.com/clang-17.0.6-linux-x86_64.tar.xz
    sha256: 6ea3db41c1e4c480f38c225d1b251975dfd3f7072def8fa9e6c7aef041732896
`

func TestFetch(t *testing.T) {
	g := NewGomegaWithT(t)
	s := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/root.yaml":
			fmt.Fprint(rw, rootManifest)
		case "/linux-x86_64.yaml":
			fmt.Fprint(rw, platformManifest)
		default:
			rw.WriteHeader(http.StatusNotFound)
		}
	}))
	defer s.Close()

	cacheDir := t.TempDir()
	source := clangtc.Source{Name: "test-source", Baseurl: s.URL}
	fetcher := NewRemoteFetcher([]clangtc.Source{source}, cacheDir, "linux", "x86_64")

	g.Expect(fetcher.Fetch()).To(Succeed())

	cache := &CacheHelper{CacheDir: cacheDir}
	manifest, err := cache.CurrentManifest(&source)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(manifest.Component).To(Equal("clang"))
	g.Expect(manifest.Version).To(Equal("17.0.6"))
	g.Expect(manifest.Archives).To(HaveLen(1))
	g.Expect(manifest.Archives[0].SHA256).To(HaveLen(64))
}

func TestFetchFailsWithoutPlatformManifest(t *testing.T) {
	g := NewGomegaWithT(t)
	s := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		fmt.Fprint(rw, rootManifest)
	}))
	defer s.Close()

	source := clangtc.Source{Name: "test-source", Baseurl: s.URL}
	fetcher := NewRemoteFetcher([]clangtc.Source{source}, t.TempDir(), "darwin", "arm64")
	g.Expect(fetcher.Fetch()).ToNot(Succeed())
}

func TestFetchSkipsDisabledSources(t *testing.T) {
	g := NewGomegaWithT(t)
	source := clangtc.Source{Name: "off", Baseurl: "http://127.0.0.1:1", Disabled: true}
	fetcher := NewRemoteFetcher([]clangtc.Source{source}, t.TempDir(), "linux", "x86_64")
	g.Expect(fetcher.Fetch()).To(Succeed())
}

func TestGetter(t *testing.T) {
	content := []byte("my file contents\n")
	s := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("wrong method, %v instead of %v", r.Method, http.MethodGet)
		}
		if _, err := rw.Write(content); err != nil {
			t.Fatal("write content: ", err)
		}
	}))
	defer s.Close()

	localFile := filepath.Join(t.TempDir(), "contentfile")
	if err := os.WriteFile(localFile, content, os.ModePerm); err != nil {
		t.Fatalf("WriteFile %v failed: %v", localFile, err)
	}

	for _, tc := range []struct {
		name string
		url  string
	}{
		{
			name: "HTTP",
			url:  s.URL,
		},
		{
			name: "local",
			url:  "file://" + localFile,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			resp, err := NewGetter().Get(tc.url)
			g.Expect(err).ToNot(HaveOccurred())
			defer resp.Body.Close()
			recv, err := io.ReadAll(resp.Body)
			g.Expect(err).ToNot(HaveOccurred())
			g.Expect(recv).To(Equal(content))
		})
	}
}
