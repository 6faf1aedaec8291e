package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clangtc",
	Short: "clangtc downloads and manages a clang toolchain and makes its binaries run standalone",
	Long:  `The tool installs checksum-verified toolchain archives and deploys the toolchain's runtime libraries next to freshly built binaries, so they load their dependencies from their own directory instead of a global search path`,
	Run: func(cmd *cobra.Command, args []string) {
	},
}

func Execute() {
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewFetchCmd())
	rootCmd.AddCommand(NewInstallCmd())
	rootCmd.AddCommand(NewVerifyCmd())
	rootCmd.AddCommand(NewDeployCmd())
	rootCmd.AddCommand(NewDepsCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func hostPlatform() string {
	return runtime.GOOS
}

func hostArch() string {
	if runtime.GOARCH == "amd64" {
		return "x86_64"
	}
	return runtime.GOARCH
}

func defaultFlavor(platform string) string {
	if platform == "windows" {
		return "mingw"
	}
	return "llvm"
}
