package main

import (
	"fmt"

	"github.com/clangtc/clangtc/pkg/api/clangtc"
	"github.com/clangtc/clangtc/pkg/manifest"
	"github.com/clangtc/clangtc/pkg/repo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/openpgp"
)

type VerifyOpts struct {
	sourcefiles []string
	cacheDir    string
	installRoot string
	platform    string
	arch        string
}

var verifyopts = VerifyOpts{}

func NewVerifyCmd() *cobra.Command {

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify installed toolchain components against their manifests",
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := manifest.LoadSourceFiles(verifyopts.sourcefiles)
			if err != nil {
				return err
			}
			cache := &manifest.CacheHelper{CacheDir: verifyopts.cacheDir}
			manifests, err := cache.CurrentManifests(sources)
			if err != nil {
				return err
			}
			installer := repo.NewInstaller(verifyopts.installRoot, verifyopts.platform, verifyopts.arch)
			for _, m := range manifests {
				if err := installer.Verify(m); err != nil {
					return fmt.Errorf("could not verify %s: %v", m.Component, err)
				}
				log.Infof("Verified %s %s", m.Component, m.Version)
			}
			return nil
		},
	}

	verifyCmd.Flags().StringArrayVarP(&verifyopts.sourcefiles, "sourcefile", "s", []string{"sources.yaml"}, "manifest source file (can be specified multiple times)")
	verifyCmd.Flags().StringVar(&verifyopts.cacheDir, "cache-dir", repo.DefaultCacheDir(), "manifest cache directory")
	verifyCmd.Flags().StringVar(&verifyopts.installRoot, "install-root", repo.DefaultInstallRoot(), "toolchain install root")
	verifyCmd.Flags().StringVar(&verifyopts.platform, "platform", hostPlatform(), "target platform")
	verifyCmd.Flags().StringVarP(&verifyopts.arch, "arch", "a", hostArch(), "target architecture")
	return verifyCmd
}

func loadKeyring(sources *clangtc.Sources) (openpgp.EntityList, error) {
	keyring := openpgp.EntityList{}
	getter := manifest.NewGetter()
	for _, source := range sources.Sources {
		if source.Disabled || source.GPGKey == "" {
			continue
		}
		resp, err := getter.Get(source.GPGKey)
		if err != nil {
			return nil, fmt.Errorf("could not fetch gpgkey %s: %v", source.GPGKey, err)
		}
		defer resp.Body.Close()
		keys, err := openpgp.ReadArmoredKeyRing(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("could not load gpgkey %s: %v", source.GPGKey, err)
		}
		keyring = append(keyring, keys...)
	}
	return keyring, nil
}
