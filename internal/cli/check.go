package cli

import (
	"github.com/rif-tools/rif/internal/project"
	"github.com/rif-tools/rif/internal/ui"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the propagator and refresh Fresh/Stale status",
		Long: `Recompute every tracked file's status from the reference graph,
then fire the configured hook if any status changed.

Refuses to run while tracked files have been deleted from disk but are
still tracked (commit a staged deletion, or "rif rm" them, first).`,
		RunE: runCheck,
	}

	cmd.Flags().BoolP("update", "u", false, "Auto-update modified files' timestamps before propagating")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	update, _ := cmd.Flags().GetBool("update")

	p, err := project.Open("")
	if err != nil {
		return err
	}

	if update {
		modified, err := p.Relations.GetModifiedFiles()
		if err != nil {
			return err
		}
		if len(modified) > 0 {
			progress := ui.NewProgress("Stamping", len(modified))
			for i, path := range modified {
				if err := p.Relations.UpdateFilestamp(path); err != nil {
					return err
				}
				progress.Update(i + 1)
			}
			progress.Done()
		}
	}

	spinner := ui.NewSpinner("Propagating status")
	spinner.Start()
	if err := p.Check(); err != nil {
		spinner.Error("check failed")
		return err
	}
	spinner.Success("checked")
	return nil
}
