package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <digest>",
		Short: "Print a snapshot kept by submit --archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.detectOptions(cmd)
			if err != nil {
				return err
			}
			return c.app.Show(cmd.OutOrStdout(), opts, args[0])
		},
	}
}
