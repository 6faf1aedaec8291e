package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var depsopts = DeployOpts{}

func NewDepsCmd() *cobra.Command {

	depsCmd := &cobra.Command{
		Use:   "deps",
		Short: "Print the toolchain library closure of a binary without deploying anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(&depsopts)
			if err != nil {
				return err
			}
			libs, report, err := engine.Closure(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, lib := range libs {
				fmt.Println(lib.Path)
			}
			if report.Degraded {
				log.Warn("Inspection unavailable, the printed set is the fallback baseline")
			}
			return nil
		},
	}

	addEngineFlags(depsCmd, &depsopts)
	return depsCmd
}
