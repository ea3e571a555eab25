package main

import (
	"fmt"

	"github.com/GaiaWorld/pt-commit-tool/internal/pinfile"
	"github.com/GaiaWorld/pt-commit-tool/internal/pinning"
	"github.com/GaiaWorld/pt-commit-tool/internal/ui"
	"github.com/spf13/cobra"
)

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record the HEAD commit of every checkout into " + pinfile.FileName,
		Args:  cobra.NoArgs,
		RunE:  runRecord,
	}
	cmd.Flags().StringP(flagPtRoot, "s", "", "Directory whose subdirectories are the checkouts to record")
	cmd.Flags().StringP(flagPiPtRoot, "t", "", "Directory to write "+pinfile.FileName+" into (default .)")
	return cmd
}

func runRecord(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	src := e.ptRoot()
	if src == "" {
		return fmt.Errorf("--%s is required", flagPtRoot)
	}
	dest := e.piPtRoot(".")

	var progress *ui.Progress
	rec := &pinning.Recorder{
		Opener: e.opener(),
		OnStart: func(total int) {
			progress = ui.NewProgress(cmd.OutOrStdout(), total)
		},
		OnRecord: func(r pinfile.Record) {
			progress.Done(fmt.Sprintf("%s @ %s", r.Name, shortSHA(r.Commit)))
		},
	}
	records, err := rec.Record(src, dest)
	if err != nil {
		return err
	}

	progress.Log("Pinned %d checkout(s) to %s", len(records), pinfile.Path(dest))
	return nil
}

func shortSHA(s string) string {
	if len(s) > 7 {
		return s[:7]
	}
	return s
}
