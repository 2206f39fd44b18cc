package cli

import (
	"github.com/spf13/cobra"
)

// docsCommand creates the docs command for resolving documentation links.
func (c *CLI) docsCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "docs <schema> <node-id>",
		Short: "Resolve a tree node to its documentation link",
		Long: `Resolve a tree node to its documentation link.

The node id is the *-delimited path printed by 'tree', e.g. Bar*marker*color.
The resolved URL is fetched to verify the anchored section actually exists;
a section that cannot be verified is reported, not an error.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			spinner := newSpinnerWithContext(cmd.Context(), "Checking documentation...")
			spinner.Start()
			link, err := runner.Doc(cmd.Context(), args[0], args[1])
			spinner.Stop()
			if err != nil {
				return err
			}

			if link.Exists {
				printSuccess("Section is live")
			} else {
				printWarning("Section could not be verified")
			}
			printKeyValue("URL", StyleLink.Render(link.URL))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
