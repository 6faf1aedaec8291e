package repo

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// DefaultInstallRoot is where toolchain components are extracted when the
// caller does not override it.
func DefaultInstallRoot() string {
	return filepath.Join(xdg.DataHome, "clangtc")
}

// DefaultCacheDir holds fetched manifest documents.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, "clangtc")
}

// LibraryDirs returns the ordered runtime library directories of an
// installed toolchain component. These are the only directories the deploy
// engine resolves import names against; anything living elsewhere is
// OS-provided by definition.
func LibraryDirs(installRoot string, component string, platform string, arch string) []string {
	base := filepath.Join(installRoot, component, platform, arch)
	if platform == "windows" {
		return []string{
			filepath.Join(base, "bin"),
			filepath.Join(base, "x86_64-w64-mingw32", "bin"),
		}
	}
	return []string{
		filepath.Join(base, "lib"),
		filepath.Join(base, "lib", arch+"-unknown-linux-gnu"),
	}
}
