package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ionutms/schemascope/pkg/explorer"
	"github.com/ionutms/schemascope/pkg/treemap"
)

// treeCommand creates the tree command for building property trees.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		ranges  levelFlags
		asJSON  bool
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "tree <schema>",
		Short: "Build and print a schema's property tree",
		Long: `Build and print a schema's property tree.

The tree has three levels: the schema type itself, its settable properties,
and those properties' own nested properties. Each level can be narrowed to
a start:end slice of its alphabetically sorted candidates:

  schemascope tree Bar --level-1 0:5 --level-3 1:4

Ranges are clamped, never errors: an overshooting range simply truncates.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := ranges.filter()
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			res, err := runner.Explore(cmd.Context(), &explorer.Options{
				Schema:  args[0],
				Filter:  filter,
				Refresh: refresh,
				Logger:  c.Logger,
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Built %s tree", args[0]))

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			printTree(&res.Tree)
			printStats(res.Stats.Nodes, countsLine(res.Counts), res.Stats.TreeCacheHit)
			return nil
		},
	}

	ranges.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "rebuild even if cached")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// levelFlags carries the three --level-N flag values.
type levelFlags struct {
	level1, level2, level3 string
}

func (f *levelFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.level1, "level-1", "", "start:end slice of root-level nodes")
	cmd.Flags().StringVar(&f.level2, "level-2", "", "start:end slice of each mid-level branch")
	cmd.Flags().StringVar(&f.level3, "level-3", "", "start:end slice of each leaf-level branch")
}

// filter assembles a treemap filter from the set flags.
func (f *levelFlags) filter() (*treemap.Filter, error) {
	var out treemap.Filter
	set := false
	for _, spec := range []struct {
		level treemap.Level
		raw   string
	}{
		{treemap.Level1, f.level1},
		{treemap.Level2, f.level2},
		{treemap.Level3, f.level3},
	} {
		if spec.raw == "" {
			continue
		}
		r, err := treemap.ParseRange(spec.raw)
		if err != nil {
			return nil, err
		}
		out.SetLevel(spec.level, r)
		set = true
	}
	if !set {
		return nil, nil
	}
	return &out, nil
}

// printTree writes the tree as an indented listing, one node per line.
func printTree(tree *treemap.Tree) {
	for i := range tree.IDs {
		depth := strings.Count(tree.IDs[i], "*")
		indent := strings.Repeat("  ", depth)
		label := tree.Labels[i]
		if depth == 0 {
			fmt.Println(StyleTitle.Render(label))
			continue
		}
		fmt.Println(indent + StyleValue.Render(label) + " " + StyleDim.Render(tree.IDs[i]))
	}
}

// countsLine formats the unfiltered per-level counts for the stats line.
func countsLine(c treemap.Counts) string {
	return fmt.Sprintf("levels %d/%d/%d", c.Level1, c.Level2, c.Level3)
}
