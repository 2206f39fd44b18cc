package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ionutms/schemascope/pkg/errors"
	"github.com/ionutms/schemascope/pkg/explorer"
	"github.com/ionutms/schemascope/pkg/export"
)

// renderCommand creates the render command for exporting tree artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		ranges     levelFlags
		formatsStr string
		output     string
		colorscale string
		sorted     bool
		refresh    bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "render <schema>",
		Short: "Export a schema's property tree as an artifact",
		Long: `Export a schema's property tree as an artifact.

Supported formats are svg (default), png, dot, and json. Multiple formats
render in one invocation:

  schemascope render Bar --format svg,png -o bar

Artifacts are cached by tree content and render parameters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" {
				if err := errors.ValidatePath(output); err != nil {
					return err
				}
			}
			formats := parseFormats(formatsStr)
			for _, f := range formats {
				if err := export.ValidateFormat(f); err != nil {
					return err
				}
			}
			if err := export.ValidateColorscale(colorscale); err != nil {
				return err
			}
			filter, err := ranges.filter()
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Explore(cmd.Context(), &explorer.Options{
				Schema:  args[0],
				Filter:  filter,
				Refresh: refresh,
				Logger:  c.Logger,
			})
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(cmd.Context(), "Rendering...")
			spinner.Start()
			written := make([]string, 0, len(formats))
			for _, format := range formats {
				data, err := runner.Render(cmd.Context(), res, &explorer.Options{
					Schema:     args[0],
					Format:     format,
					Colorscale: colorscale,
					Sorted:     sorted,
					Refresh:    refresh,
					Logger:     c.Logger,
				})
				if err != nil {
					spinner.StopWithError("Render failed")
					return err
				}
				path := outputPath(output, args[0], format)
				if err := os.WriteFile(path, data, 0o644); err != nil {
					spinner.StopWithError("Render failed")
					return fmt.Errorf("write %s: %w", path, err)
				}
				written = append(written, path)
			}
			spinner.Stop()

			printSuccess("Rendered %s", args[0])
			for _, path := range written {
				printFile(path)
			}
			printStats(res.Stats.Nodes, "", res.Stats.TreeCacheHit)
			return nil
		},
	}

	ranges.register(cmd)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple); relative paths only")
	cmd.Flags().StringVar(&colorscale, "colorscale", "", "fill palette: blues (default), greens, greys, oranges")
	cmd.Flags().BoolVar(&sorted, "sorted", false, "emit nodes in id order")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "rebuild even if cached")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{export.FormatSVG}
	}
	return strings.Split(s, ",")
}

// outputPath derives the file path for one rendered format. An explicit
// output with a matching extension is used verbatim; otherwise the format
// extension is appended to the base (the schema name by default).
func outputPath(output, schema, format string) string {
	base := output
	if base == "" {
		base = strings.ToLower(schema)
	}
	if strings.HasSuffix(base, "."+format) {
		return base
	}
	return base + "." + format
}
