package main

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/clangtc/clangtc/pkg/deploy"
	"github.com/clangtc/clangtc/pkg/repo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
)

func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

type DeployOpts struct {
	installRoot  string
	component    string
	platform     string
	arch         string
	flavor       string
	dest         string
	tool         string
	searchDirs   []string
	baselineFile string
	timeout      time.Duration
	noFallback   bool
}

var deployopts = DeployOpts{}

func NewDeployCmd() *cobra.Command {

	deployCmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the toolchain runtime libraries a binary needs next to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(&deployopts)
			if err != nil {
				return err
			}
			report, err := engine.Deploy(cmd.Context(), args[0], deployopts.dest)
			if err != nil {
				return err
			}
			for _, record := range report.Records {
				if record.Err != nil {
					log.Errorf("%s: %s: %v", record.Action, record.Name, record.Err)
					continue
				}
				log.Infof("%s: %s -> %s", record.Action, record.SourcePath, record.DestinationPath)
			}
			counts := map[string]int{}
			for _, record := range report.Records {
				counts[string(record.Action)]++
			}
			for _, action := range sortedKeys(counts) {
				log.Infof("%s: %d", action, counts[action])
			}
			if report.Degraded {
				log.Warn("Deployment ran in degraded fallback mode, the library set is a baseline, not a full closure")
			}
			if len(report.Failures) > 0 {
				return fmt.Errorf("%d of %d libraries could not be placed", len(report.Failures), len(report.Records))
			}
			return nil
		},
	}

	addEngineFlags(deployCmd, &deployopts)
	deployCmd.Flags().StringVarP(&deployopts.dest, "dest", "d", "", "destination directory (defaults to the binary's directory)")
	return deployCmd
}

func addEngineFlags(cmd *cobra.Command, opts *DeployOpts) {
	cmd.Flags().StringVar(&opts.installRoot, "install-root", repo.DefaultInstallRoot(), "toolchain install root")
	cmd.Flags().StringVar(&opts.component, "component", "clang", "toolchain component holding the runtime libraries")
	cmd.Flags().StringVar(&opts.platform, "platform", hostPlatform(), "target platform")
	cmd.Flags().StringVarP(&opts.arch, "arch", "a", hostArch(), "target architecture")
	cmd.Flags().StringVar(&opts.flavor, "flavor", "", "toolchain flavor for the fallback baseline (defaults by platform)")
	cmd.Flags().StringVar(&opts.tool, "tool", "", "binary inspection tool (defaults to the installed llvm-objdump)")
	cmd.Flags().StringArrayVar(&opts.searchDirs, "search-dir", nil, "toolchain library directory, overrides the computed ones. Can be specified multiple times")
	cmd.Flags().StringVar(&opts.baselineFile, "baseline-file", "", "yaml file overriding the built-in fallback baselines")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "per-binary inspection timeout")
	cmd.Flags().BoolVar(&opts.noFallback, "no-fallback", false, "fail instead of degrading to the baseline when inspection is unavailable")
}

func newEngine(opts *DeployOpts) (*deploy.Engine, error) {
	searchDirs := opts.searchDirs
	if len(searchDirs) == 0 {
		searchDirs = repo.LibraryDirs(opts.installRoot, opts.component, opts.platform, opts.arch)
	}

	tool := opts.tool
	if tool == "" {
		tool = filepath.Join(opts.installRoot, opts.component, opts.platform, opts.arch, "bin", "llvm-objdump")
		if opts.platform == "windows" {
			tool += ".exe"
		}
	}
	inspector := deploy.NewToolInspector(tool)
	inspector.Timeout = opts.timeout

	var fallback *deploy.Fallback
	if !opts.noFallback {
		flavor := opts.flavor
		if flavor == "" {
			flavor = defaultFlavor(opts.platform)
		}
		var err error
		if opts.baselineFile != "" {
			fallback, err = deploy.LoadBaseline(opts.baselineFile, flavor)
		} else {
			fallback, err = deploy.BaselineFor(flavor)
		}
		if err != nil {
			return nil, err
		}
	}

	return &deploy.Engine{
		Inspector:   inspector,
		SearchDirs:  searchDirs,
		Insensitive: opts.platform == "windows",
		Fallback:    fallback,
	}, nil
}
