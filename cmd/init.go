package main

import (
	"github.com/clangtc/clangtc/pkg/manifest"
	"github.com/spf13/cobra"
)

type InitOpts struct {
	sourcefile string
	os         string
	arch       string
}

var initopts = InitOpts{}

func NewInitCmd() *cobra.Command {

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default manifest source file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return manifest.NewRemoteInit(initopts.os, initopts.arch, initopts.sourcefile).Init()
		},
	}

	initCmd.Flags().StringVarP(&initopts.sourcefile, "sourcefile", "s", "sources.yaml", "manifest source file to create")
	initCmd.Flags().StringVar(&initopts.os, "os", hostPlatform(), "target platform")
	initCmd.Flags().StringVarP(&initopts.arch, "arch", "a", hostArch(), "target architecture")
	return initCmd
}
