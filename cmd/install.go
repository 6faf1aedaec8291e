package main

import (
	"fmt"

	"github.com/clangtc/clangtc/pkg/manifest"
	"github.com/clangtc/clangtc/pkg/repo"
	"github.com/spf13/cobra"
)

type InstallOpts struct {
	sourcefiles []string
	cacheDir    string
	installRoot string
	platform    string
	arch        string
}

var installopts = InstallOpts{}

func NewInstallCmd() *cobra.Command {

	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Download, verify and extract the toolchain components of all enabled sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := manifest.LoadSourceFiles(installopts.sourcefiles)
			if err != nil {
				return err
			}
			fetcher := manifest.NewRemoteFetcher(sources.Sources, installopts.cacheDir, installopts.platform, installopts.arch)
			if err := fetcher.Fetch(); err != nil {
				return err
			}

			keyring, err := loadKeyring(sources)
			if err != nil {
				return err
			}

			cache := &manifest.CacheHelper{CacheDir: installopts.cacheDir}
			manifests, err := cache.CurrentManifests(sources)
			if err != nil {
				return err
			}

			installer := repo.NewInstaller(installopts.installRoot, installopts.platform, installopts.arch)
			installer.Keyring = keyring
			for _, m := range manifests {
				if err := installer.Install(cmd.Context(), m); err != nil {
					return fmt.Errorf("failed to install %s %s: %v", m.Component, m.Version, err)
				}
			}
			return nil
		},
	}

	installCmd.Flags().StringArrayVarP(&installopts.sourcefiles, "sourcefile", "s", []string{"sources.yaml"}, "manifest source file. Can be specified multiple times")
	installCmd.Flags().StringVar(&installopts.cacheDir, "cache-dir", repo.DefaultCacheDir(), "manifest cache directory")
	installCmd.Flags().StringVar(&installopts.installRoot, "install-root", repo.DefaultInstallRoot(), "toolchain install root")
	installCmd.Flags().StringVar(&installopts.platform, "platform", hostPlatform(), "target platform")
	installCmd.Flags().StringVarP(&installopts.arch, "arch", "a", hostArch(), "target architecture")
	return installCmd
}
