package main

import (
	"encoding/json"
	"fmt"

	"github.com/GaiaWorld/pt-commit-tool/internal/pinning"
	"github.com/GaiaWorld/pt-commit-tool/internal/ui"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Compare checkouts with the pin file",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
	cmd.Flags().String(flagPiPtRoot, "", "Directory containing the pin file (required)")
	cmd.Flags().String(flagPtRoot, "", "Directory whose subdirectories are the checkouts (required)")
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func runStatus(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	src, pins, err := e.requireRoots()
	if err != nil {
		return err
	}

	entries, err := pinning.Inspect(e.opener(), src, pins)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return err
		}
	} else if err := renderStatus(ui.NewTable(out, "REPO", "STATE", "PINNED", "CURRENT", "DETAIL"), entries); err != nil {
		return err
	}

	bad := 0
	for _, en := range entries {
		if !en.State.OK() {
			bad++
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d checkout(s) not at their pinned commit", bad)
	}
	return nil
}

func renderStatus(tbl *ui.Table, entries []pinning.Entry) error {
	styles := tbl.Styles()
	tbl.Style = func(row, col int, _ string) lipgloss.Style {
		if col != 1 {
			return lipgloss.NewStyle()
		}
		switch entries[row].State {
		case pinning.StatePinned:
			return styles.OK
		case pinning.StateUnpinned:
			return styles.Dim
		case pinning.StateDrifted:
			return styles.Warn
		default:
			return styles.Error
		}
	}
	for _, en := range entries {
		tbl.Row(en.Name, en.State, shortSHA(en.Pinned), shortSHA(en.Current), en.Detail)
	}
	return tbl.Flush()
}
