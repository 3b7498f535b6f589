package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Run: func(cmd *cobra.Command, args []string) {
			printJSON(cmd, cfg)
		},
	}

	RootCmd.AddCommand(cmd)
}
