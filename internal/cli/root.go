// Package cli implements rif's command-line surface: one cobra
// subcommand per verb, thin wrappers around internal/project that
// format structured results for the terminal.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rif-tools/rif/internal/rerr"
	"github.com/rif-tools/rif/internal/ui/styles"
	"github.com/spf13/cobra"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "rif",
	Short: "Track the impact of file changes across a reference graph",
	Long: `rif tracks the impact of file changes across a manually declared
reference graph in a working directory.

Register files, declare "file A references file B" edges, and rif
maintains a per-file Fresh/Stale status: when a referenced file is
edited without the referring file being re-acknowledged, the referring
file is flagged stale, and staleness propagates transitively.

rif is not a version control system - it stores no file content, only
metadata - and not a build system - it never transforms files itself.
It is a bookkeeping engine for human-curated change-impact
relationships, with a commit-like workflow (stage, revert, commit), a
history of per-file notes, and an optional external command hook.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		var rifErr *rerr.Error
		if errors.As(err, &rifErr) {
			fmt.Fprint(os.Stderr, rifErr.Format())
		} else {
			fmt.Fprintln(os.Stderr, styles.ErrorMsg(err.Error()))
		}
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			os.Setenv("RIF_NO_COLOR", "1")
		}
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newCompletionCmd(),
		newInitCmd(),
		newAddCmd(),
		newRevertCmd(),
		newCommitCmd(),
		newRmCmd(),
		newMvCmd(),
		newSetCmd(),
		newUnsetCmd(),
		newDiscardCmd(),
		newCheckCmd(),
		newSanityCmd(),
		newStatusCmd(),
		newLsCmd(),
		newDependCmd(),
		newDataCmd(),
		newConfigCmd(),
	)
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for rif.

Bash:
  $ source <(rif completion bash)

Zsh:
  $ rif completion zsh > "${fpath[1]}/_rif"

Fish:
  $ rif completion fish | source

PowerShell:
  PS> rif completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("rif version %s\n", Version)
			fmt.Printf("  commit: %s\n", CommitSHA)
			fmt.Printf("  built:  %s\n", BuildDate)
		},
	}
}
