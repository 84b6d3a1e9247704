package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rif-tools/rif/internal/project"
	"github.com/rif-tools/rif/internal/rerr"
	"github.com/rif-tools/rif/internal/ui/styles"
	"github.com/rif-tools/rif/internal/util"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty rif repository",
		Long: `Create an empty rif repository.

This command creates a .rif directory holding an empty relations
store, history, config and staging buffer.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}

	cmd.Flags().BoolP("default", "d", false, "Also write a default .rifignore")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	createIgnore, _ := cmd.Flags().GetBool("default")

	p, err := project.Init(path, createIgnore)
	if err != nil {
		if errors.Is(err, rerr.ErrAlreadyInitialized) {
			fmt.Println(styles.WarningMsg(fmt.Sprintf("rif repository already exists in %s", filepath.Join(path, ".rif"))))
			return nil
		}
		return err
	}

	fmt.Println(styles.SuccessMsg(fmt.Sprintf("Initialized empty rif repository in %s", util.RifPath(p.Root))))
	return nil
}
