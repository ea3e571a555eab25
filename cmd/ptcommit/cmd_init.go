package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/GaiaWorld/pt-commit-tool/internal/config"
	"github.com/GaiaWorld/pt-commit-tool/internal/ui"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a " + configFileName + " with default roots",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
	cmd.Flags().String("dir", ".", "Directory to write the config file into")
	cmd.Flags().String(flagPtRoot, "", "Default directory holding the checkouts")
	cmd.Flags().String(flagPiPtRoot, "", "Default directory holding the pin file")
	cmd.Flags().Bool("interactive", false, "Prompt for each value")
	cmd.Flags().Bool("force", false, "Overwrite an existing config file")
	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	ptRoot, _ := cmd.Flags().GetString(flagPtRoot)
	piPtRoot, _ := cmd.Flags().GetString(flagPiPtRoot)
	backend, _ := cmd.Flags().GetString("backend")
	logLevel, _ := cmd.Flags().GetString("log-level")
	interactive, _ := cmd.Flags().GetBool("interactive")
	force, _ := cmd.Flags().GetBool("force")

	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	if interactive {
		in, out := cmd.InOrStdin(), cmd.OutOrStdout()
		if !ui.IsInteractive(in, out) {
			return fmt.Errorf("--interactive requires a terminal")
		}
		var err error
		if ptRoot, err = ui.Input(in, out, "Checkout root (pt-root-path)", ptRoot, nil); err != nil {
			return err
		}
		if piPtRoot, err = ui.Input(in, out, "Pin file root (pi-pt-root-path)", defaultString(piPtRoot, "."), nil); err != nil {
			return err
		}
		if backend, err = ui.Input(in, out, "Backend (go-git or git)", defaultString(backend, string(config.BackendGoGit)), func(s string) error {
			_, err := config.ParseBackend(s)
			return err
		}); err != nil {
			return err
		}
	}

	cf := &config.File{
		Version:      1,
		PtRootPath:   ptRoot,
		PiPtRootPath: piPtRoot,
		Backend:      backend,
		LogLevel:     logLevel,
	}
	if err := config.Save(path, cf); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
	return nil
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
