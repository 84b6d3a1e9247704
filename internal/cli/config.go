package cli

import (
	"fmt"

	"github.com/rif-tools/rif/internal/config"
	"github.com/rif-tools/rif/internal/rerr"
	"github.com/rif-tools/rif/internal/util"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config [get|set|list] [key] [value]",
		Short: "Get and set repository configuration",
		Long: `Get and set the per-repository configuration at .rif/config.

Examples:
  rif config get hook.trigger
  rif config set hook.command "./notify.sh"
  rif config list`,
		Args: cobra.RangeArgs(1, 3),
		RunE: runConfig,
	}
	return cmd
}

func runConfig(cmd *cobra.Command, args []string) error {
	root, err := util.FindRepoRoot()
	if err != nil {
		return err
	}
	cfgPath := util.ConfigPath(root)

	cfg, err := config.ReadFromFile(cfgPath)
	if err != nil {
		return err
	}

	switch args[0] {
	case "list":
		for _, field := range config.Fields(cfg) {
			value, _ := cfg.GetValue(field.Key)
			fmt.Printf("%s=%s\n", field.Key, value)
		}
		return nil

	case "get":
		if len(args) != 2 {
			return rerr.New(rerr.TagCliError, "usage: rif config get <key>")
		}
		value, ok := cfg.GetValue(args[1])
		if !ok {
			return rerr.New(rerr.TagCliError, fmt.Sprintf("unknown config key: %s", args[1]))
		}
		fmt.Println(value)
		return nil

	case "set":
		if len(args) != 3 {
			return rerr.New(rerr.TagCliError, "usage: rif config set <key> <value>")
		}
		if err := cfg.SetValue(args[1], args[2]); err != nil {
			return err
		}
		return cfg.SaveToFile(cfgPath)

	default:
		return rerr.New(rerr.TagCliError, fmt.Sprintf("unknown config subcommand: %s", args[0]))
	}
}
