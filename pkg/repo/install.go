package repo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/clangtc/clangtc/pkg/api/clangtc"
	"github.com/clangtc/clangtc/pkg/manifest"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/openpgp"
	"sigs.k8s.io/yaml"
)

const lockFileName = "install.lock.yaml"

// Installer downloads a component's archives, verifies them against the
// manifest checksums (and optionally a gpg keyring), and extracts them into
// the install root. Installs are idempotent: a matching lock file skips the
// whole download.
type Installer struct {
	Getter      manifest.Getter
	InstallRoot string
	Platform    string
	Arch        string
	Keyring     openpgp.EntityList
}

func NewInstaller(installRoot string, platform string, arch string) *Installer {
	return &Installer{
		Getter:      manifest.NewGetter(),
		InstallRoot: installRoot,
		Platform:    platform,
		Arch:        arch,
	}
}

func (i *Installer) componentDir(m *clangtc.Manifest) string {
	return filepath.Join(i.InstallRoot, m.Component, i.Platform, i.Arch)
}

// Installed reports whether the manifest's exact version is already
// extracted below the install root.
func (i *Installer) Installed(m *clangtc.Manifest) bool {
	lock, err := i.readLock(m)
	if err != nil {
		return false
	}
	return lock.Version == m.Version
}

func (i *Installer) Install(ctx context.Context, m *clangtc.Manifest) error {
	if i.Installed(m) {
		log.Infof("%s %s is already installed", m.Component, m.Version)
		return nil
	}

	dir := i.componentDir(m)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return fmt.Errorf("failed to create install directory %s: %v", dir, err)
	}

	for _, archive := range m.Archives {
		if err := i.installArchive(ctx, m, &archive, dir); err != nil {
			return err
		}
	}

	return i.writeLock(m)
}

func (i *Installer) installArchive(ctx context.Context, m *clangtc.Manifest, archive *clangtc.Archive, dir string) error {
	file, err := i.download(archive)
	if err != nil {
		return err
	}
	defer os.Remove(file)

	if archive.Signature != "" {
		if err := i.verifySignature(file, archive.Signature); err != nil {
			return fmt.Errorf("failed to verify signature of %s: %v", archive.URL, err)
		}
	}

	log.Infof("Extracting %s into %s", filepath.Base(archive.URL), dir)
	return Extract(ctx, file, filepath.Base(archive.URL), dir)
}

// download fetches one archive into a temporary file and checks its sha256
// sum while streaming.
func (i *Installer) download(archive *clangtc.Archive) (string, error) {
	log.Infof("Downloading %s", archive.URL)
	resp, err := i.Getter.Get(archive.URL)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %v", archive.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to download %s: %v", archive.URL, fmt.Errorf("status : %v", resp.StatusCode))
	}

	tmp, err := os.CreateTemp("", "clangtc-archive")
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	sha := sha256.New()
	if _, err := io.Copy(tmp, io.TeeReader(resp.Body, sha)); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write %s: %v", tmp.Name(), err)
	}
	if archive.SHA256 != toHex(sha) {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("expected sha256 sum %s for %s, but got %s", archive.SHA256, archive.URL, toHex(sha))
	}
	return tmp.Name(), nil
}

func (i *Installer) verifySignature(file string, signatureURL string) error {
	if len(i.Keyring) == 0 {
		return fmt.Errorf("manifest references signature %s but no gpg key is configured", signatureURL)
	}
	resp, err := i.Getter.Get(signatureURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("failed to download %s: %v", signatureURL, fmt.Errorf("status : %v", resp.StatusCode))
	}

	signed, err := os.Open(file)
	if err != nil {
		return err
	}
	defer signed.Close()
	_, err = openpgp.CheckArmoredDetachedSignature(i.Keyring, signed, resp.Body)
	return err
}

// Verify re-hashes the installed archives of a manifest against the
// recorded lock file.
func (i *Installer) Verify(m *clangtc.Manifest) error {
	lock, err := i.readLock(m)
	if err != nil {
		return fmt.Errorf("%s %s is not installed: %v", m.Component, m.Version, err)
	}
	if lock.Version != m.Version {
		return fmt.Errorf("installed version %s does not match manifest version %s", lock.Version, m.Version)
	}
	for _, archive := range m.Archives {
		if !slices.Contains(lock.SHA256Sums, archive.SHA256) {
			return fmt.Errorf("installed archives do not include checksum %s", archive.SHA256)
		}
	}
	return nil
}

func (i *Installer) readLock(m *clangtc.Manifest) (*clangtc.Lock, error) {
	data, err := os.ReadFile(filepath.Join(i.componentDir(m), lockFileName))
	if err != nil {
		return nil, err
	}
	lock := &clangtc.Lock{}
	if err := yaml.Unmarshal(data, lock); err != nil {
		return nil, err
	}
	return lock, nil
}

func (i *Installer) writeLock(m *clangtc.Manifest) error {
	sums := make([]string, 0, len(m.Archives))
	for _, archive := range m.Archives {
		sums = append(sums, archive.SHA256)
	}
	lock := &clangtc.Lock{
		Component:  m.Component,
		Version:    m.Version,
		Flavor:     m.Flavor,
		SHA256Sums: sums,
		URL:        firstURL(m),
	}
	data, err := yaml.Marshal(lock)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(i.componentDir(m), lockFileName), data, 0660)
}

func firstURL(m *clangtc.Manifest) string {
	if len(m.Archives) == 0 {
		return ""
	}
	return m.Archives[0].URL
}

func toHex(hasher hash.Hash) string {
	return hex.EncodeToString(hasher.Sum(nil))
}
