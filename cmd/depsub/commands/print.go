package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/depsub/internal/app"
)

func (c *CLI) newPrintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Build the snapshot and print it without submitting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := c.detectOptions(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			return c.app.Print(cmd.Context(), cmd.OutOrStdout(), app.PrintOptions{
				DetectOptions: opts,
				Format:        format,
			})
		},
	}
	addCommitFlags(cmd)
	cmd.Flags().StringP("format", "o", app.FormatJSON, "Output format: json or summary")
	return cmd
}
