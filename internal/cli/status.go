package cli

import (
	"fmt"

	"github.com/rif-tools/rif/internal/project"
	"github.com/rif-tools/rif/internal/ui/styles"
	"github.com/rif-tools/rif/internal/ui/table"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show staging and change status",
		Long: `Show what is staged for the next commit, which tracked files have
changed on disk since they were last staged, and (unless -i) which
files under the project root are untracked.

With --interactive, render the whole relations store as a sortable,
searchable table instead of the text report.`,
		RunE: runStatus,
	}

	cmd.Flags().BoolP("ignore", "i", false, "Don't list untracked files")
	cmd.Flags().BoolP("verbose", "v", false, "Also dump the full relations store")
	cmd.Flags().Bool("interactive", false, "Show an interactive table of every tracked file")

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	ignoreUntracked, _ := cmd.Flags().GetBool("ignore")
	verbose, _ := cmd.Flags().GetBool("verbose")
	interactive, _ := cmd.Flags().GetBool("interactive")

	p, err := project.Open("")
	if err != nil {
		return err
	}

	if interactive {
		columns, rows := p.Relations.Rows(false)
		return table.DisplayResults("rif status", columns, rows, table.DisplayOptions{})
	}

	report, err := p.Status(ignoreUntracked, verbose)
	if err != nil {
		return err
	}

	printStatusReport(report)
	return nil
}

func printStatusReport(r *project.StatusReport) {
	staged := len(r.ToRegister) + len(r.ToAdd) + len(r.ToForce) + len(r.ToDelete)

	if staged > 0 {
		fmt.Println(styles.SectionHeader("Changes to be committed:"))
		for _, p := range r.ToRegister {
			fmt.Printf("  %s  %s\n", styles.StagePrefix("new"), p)
		}
		for _, p := range r.ToAdd {
			fmt.Printf("  %s  %s\n", styles.StagePrefix("modified"), p)
		}
		for _, p := range r.ToForce {
			fmt.Printf("  %s  %s\n", styles.StagePrefix("forced"), p)
		}
		for _, p := range r.ToDelete {
			fmt.Printf("  %s  %s\n", styles.StagePrefix("deleted"), p)
		}
		fmt.Println()
	}

	if len(r.Changed) > 0 {
		fmt.Println(styles.SectionHeader("Changes not staged:"))
		fmt.Println(styles.MutedMsg("  (use \"rif add <file>...\" to stage)"))
		for _, p := range r.Changed {
			fmt.Printf("  %s  %s\n", styles.StagePrefix("modified"), p)
		}
		fmt.Println()
	}

	if r.Untracked != nil && len(r.Untracked) > 0 {
		fmt.Println(styles.SectionHeader("Untracked files:"))
		for _, p := range r.Untracked {
			fmt.Printf("  %s  %s\n", styles.StagePrefix("untracked"), p)
		}
		fmt.Println()
	}

	if staged == 0 && len(r.Changed) == 0 && len(r.Untracked) == 0 {
		fmt.Println("nothing staged, nothing changed")
	}

	if r.Dump != "" {
		fmt.Println(styles.SectionHeader("Relations:"))
		fmt.Print(r.Dump)
	}
}
