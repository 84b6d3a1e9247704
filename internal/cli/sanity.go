package cli

import (
	"github.com/rif-tools/rif/internal/project"
	"github.com/rif-tools/rif/internal/ui"
	"github.com/spf13/cobra"
)

func newSanityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sanity",
		Short: "Validate the relations store's invariants",
		Long: `Check the relations store for self-references, cycles and dangling
references. With --fix, repair violations: drop dangling edges and
self-referencing entries in place.`,
		RunE: runSanity,
	}

	cmd.Flags().Bool("fix", false, "Repair invariant violations instead of only reporting them")

	return cmd
}

func runSanity(cmd *cobra.Command, args []string) error {
	fix, _ := cmd.Flags().GetBool("fix")

	var p *project.Project
	var err error
	if fix {
		p, err = project.OpenUnchecked("")
	} else {
		p, err = project.Open("")
	}
	if err != nil {
		return err
	}

	var spinner *ui.Spinner
	if fix {
		spinner = ui.NewSpinner("Repairing invariant violations")
	} else {
		spinner = ui.NewSpinner("Checking invariants")
	}
	spinner.Start()

	if err := p.Sanity(fix); err != nil {
		spinner.Error("sanity check failed")
		return err
	}

	if fix {
		spinner.Success("sanity violations repaired")
	} else {
		spinner.Success("relations store is sane")
	}
	return nil
}
