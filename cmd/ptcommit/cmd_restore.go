package main

import (
	"fmt"

	"github.com/GaiaWorld/pt-commit-tool/internal/pinfile"
	"github.com/GaiaWorld/pt-commit-tool/internal/pinning"
	"github.com/GaiaWorld/pt-commit-tool/internal/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Detach every checkout's HEAD at the commit recorded in " + pinfile.FileName,
		Long: `Restore reads the pin file line by line and moves HEAD of each named
checkout to its recorded commit in detached state. The working tree is not
touched. Restore stops at the first failing line; checkouts restored before
it are left as they are.`,
		Args: cobra.NoArgs,
		RunE: runRestore,
	}
	// Short flags are swapped relative to record, as the tool always had them.
	cmd.Flags().StringP(flagPiPtRoot, "s", "", "Directory containing "+pinfile.FileName+" (required)")
	cmd.Flags().StringP(flagPtRoot, "t", "", "Directory whose subdirectories are the checkouts to restore (required)")
	cmd.Flags().Bool("dry-run", false, "Validate the pin file and show what would change without moving HEAD")
	cmd.Flags().Bool("confirm", false, "Ask for confirmation before restoring (terminal only)")
	return cmd
}

func runRestore(cmd *cobra.Command, _ []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	confirm, _ := cmd.Flags().GetBool("confirm")

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	src, pins, err := e.requireRoots()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if confirm && !dryRun {
		if !ui.IsInteractive(cmd.InOrStdin(), out) {
			return fmt.Errorf("--confirm requires a terminal")
		}
		ok, err := ui.Confirm(cmd.InOrStdin(), out, fmt.Sprintf("Detach HEAD of checkouts in %s to the commits in %s?", src, pinfile.Path(pins)))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(out, "Restore cancelled.")
			return nil
		}
	}

	progress := ui.NewProgress(out, 0)
	r := &pinning.Restorer{
		Opener: e.opener(),
		DryRun: dryRun,
		OnApply: func(a pinning.Applied) {
			progress.Done(describeApplied(a, dryRun))
		},
	}
	applied, err := r.Restore(src, pins)
	if err != nil {
		progress.Fail(fmt.Sprintf("stopped after %d checkout(s)", progress.Count()), err)
		if len(applied) > 0 && !dryRun {
			log.Warn().Int("restored", len(applied)).Msg("checkouts restored before the failure were not rolled back")
		}
		return err
	}

	if dryRun {
		progress.Log("Dry run: %d checkout(s) checked, nothing changed", len(applied))
		return nil
	}
	progress.Log("Restored %d checkout(s) from %s", len(applied), pinfile.Path(pins))
	return nil
}

func describeApplied(a pinning.Applied, dryRun bool) string {
	prefix := ""
	if dryRun {
		prefix = "[dry-run] "
	}
	switch {
	case !a.Changed():
		return fmt.Sprintf("%s%s @ %s (unchanged)", prefix, a.Record.Name, a.Head.Short())
	case a.Previous.IsZero():
		return fmt.Sprintf("%s%s @ %s", prefix, a.Record.Name, a.Head.Short())
	default:
		return fmt.Sprintf("%s%s @ %s (was %s)", prefix, a.Record.Name, a.Head.Short(), a.Previous.Short())
	}
}
