package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// catalogCommand creates the catalog command for listing explorable schemas.
func (c *CLI) catalogCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the explorable schema types",
		Long: `List the explorable schema types.

Each entry names a schema type, the documentation page it links to, and the
anchor-section prefix used for property links.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer runner.Close()

			names := runner.Names()
			if plain {
				for _, n := range names {
					fmt.Println(n)
				}
				return nil
			}

			rows := make([][]string, 0, len(names))
			for _, n := range names {
				entry, err := runner.Entry(n)
				if err != nil {
					return err
				}
				rows = append(rows, []string{entry.Name, entry.DocPath, entry.Section})
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Schema", "Doc Path", "Section").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					if col == 0 {
						return StyleHighlight
					}
					return StyleDim
				})

			fmt.Println(t.Render())
			printDetail("%d schemas", len(names))
			printNextStep("Build a tree", appName+" tree Bar")
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print names only, one per line")
	return cmd
}
