package main

import (
	"github.com/clangtc/clangtc/pkg/manifest"
	"github.com/clangtc/clangtc/pkg/repo"
	"github.com/spf13/cobra"
)

type FetchOpts struct {
	sourcefiles []string
	cacheDir    string
	platform    string
	arch        string
}

var fetchopts = &FetchOpts{}

func NewFetchCmd() *cobra.Command {

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Update cached toolchain manifests",
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := manifest.LoadSourceFiles(fetchopts.sourcefiles)
			if err != nil {
				return err
			}
			return manifest.NewRemoteFetcher(sources.Sources, fetchopts.cacheDir, fetchopts.platform, fetchopts.arch).Fetch()
		},
	}

	fetchCmd.Flags().StringArrayVarP(&fetchopts.sourcefiles, "sourcefile", "s", []string{"sources.yaml"}, "manifest source file. Can be specified multiple times")
	fetchCmd.Flags().StringVar(&fetchopts.cacheDir, "cache-dir", repo.DefaultCacheDir(), "manifest cache directory")
	fetchCmd.Flags().StringVar(&fetchopts.platform, "platform", hostPlatform(), "target platform")
	fetchCmd.Flags().StringVarP(&fetchopts.arch, "arch", "a", hostArch(), "target architecture")
	return fetchCmd
}
