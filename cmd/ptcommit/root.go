package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ptcommit",
		Short:         "Record and restore the commits of a directory of sibling checkouts",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Config file (default: ./"+configFileName+" if present)")
	cmd.PersistentFlags().String("backend", "", "Repository backend: go-git or git (default go-git)")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (default warn)")

	cmd.AddCommand(
		newRecordCmd(),
		newRestoreCmd(),
		newStatusCmd(),
		newDoctorCmd(),
		newInitCmd(),
	)

	return cmd
}
