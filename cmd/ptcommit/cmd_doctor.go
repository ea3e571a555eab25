package main

import (
	"fmt"
	"io"

	"github.com/GaiaWorld/pt-commit-tool/internal/config"
	"github.com/GaiaWorld/pt-commit-tool/internal/git"
	"github.com/GaiaWorld/pt-commit-tool/internal/pinfile"
	"github.com/GaiaWorld/pt-commit-tool/internal/pinning"
	"github.com/GaiaWorld/pt-commit-tool/internal/vcs"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the environment and pin file for common issues",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
	cmd.Flags().String(flagPiPtRoot, "", "Directory containing the pin file")
	cmd.Flags().String(flagPtRoot, "", "Directory whose subdirectories are the checkouts")
	return cmd
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	ok := true

	// Check git.
	_, _ = fmt.Fprint(out, "Checking git... ")
	if !git.IsGitInstalled() && e.backend != config.BackendGit {
		_, _ = fmt.Fprintln(out, "not found (not needed by the go-git backend)")
	} else if v, err := git.Version(); err == nil {
		_, _ = fmt.Fprintln(out, v)
	} else {
		_, _ = fmt.Fprintln(out, "NOT FOUND")
		_, _ = fmt.Fprintln(out, "  git is required by --backend git. Install it from https://git-scm.com/")
		ok = false
	}
	_, _ = fmt.Fprintf(out, "Backend: %s\n", e.backend)

	if src := e.ptRoot(); src != "" {
		ok = checkPtRoot(out, src) && ok
	} else {
		_, _ = fmt.Fprintln(out, "No --pt-root-path given (skipping checkout checks)")
	}

	if pins := e.piPtRoot(""); pins != "" {
		ok = checkPinFile(out, pins) && ok
	} else {
		_, _ = fmt.Fprintln(out, "No --pi-pt-root-path given (skipping pin file checks)")
	}

	if ok {
		_, _ = fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	_, _ = fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}

// checkPtRoot verifies the checkout root is readable and lists its checkouts.
func checkPtRoot(out io.Writer, src string) bool {
	_, _ = fmt.Fprintf(out, "Checking checkout root %s... ", src)
	dirs, err := pinning.CheckoutDirs(src)
	if err != nil {
		_, _ = fmt.Fprintln(out, "FAILED")
		_, _ = fmt.Fprintf(out, "  %v\n", err)
		return false
	}
	_, _ = fmt.Fprintf(out, "%d checkout(s)\n", len(dirs))
	return true
}

// checkPinFile verifies every line of the pin file is name:<40 hex>.
func checkPinFile(out io.Writer, pins string) bool {
	_, _ = fmt.Fprintf(out, "Checking %s... ", pinfile.Path(pins))
	pf, err := pinfile.Load(pins)
	if err != nil {
		_, _ = fmt.Fprintln(out, "FAILED")
		_, _ = fmt.Fprintf(out, "  %v\n", err)
		return false
	}
	_, _ = fmt.Fprintf(out, "%d record(s)\n", len(pf.Records))

	ok := true
	seen := make(map[string]bool, len(pf.Records))
	for i, r := range pf.Records {
		if _, err := vcs.ParseCommitID(r.Commit); err != nil {
			_, _ = fmt.Fprintf(out, "  line %d: %s: %v\n", i+1, r.Name, err)
			ok = false
		}
		if seen[r.Name] {
			_, _ = fmt.Fprintf(out, "  line %d: %s is pinned more than once (the last line wins)\n", i+1, r.Name)
		}
		seen[r.Name] = true
	}
	return ok
}
