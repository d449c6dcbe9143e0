package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/depsub/internal/app"
)

func (c *CLI) newSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Build the snapshot and submit it to the dependency graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := c.detectOptions(cmd)
			if err != nil {
				return err
			}
			archive, _ := cmd.Flags().GetBool("archive")
			failOnReject, _ := cmd.Flags().GetBool("fail-on-reject")
			return c.app.Submit(cmd.Context(), app.SubmitOptions{
				DetectOptions: opts,
				Archive:       archive,
				FailOnReject:  failOnReject,
			})
		},
	}
	addCommitFlags(cmd)
	cmd.Flags().Bool("archive", false, "Keep a copy of the submitted snapshot in .depsub/snapshots")
	cmd.Flags().Bool("fail-on-reject", false, "Exit with an error when the snapshot is not accepted")
	return cmd
}
