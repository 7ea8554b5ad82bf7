package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openopus/ng-pane-manager2-sub000/pkg/layout"
)

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var (
		format string
		input  string
	)

	cmd := &cobra.Command{
		Use:   "show [layout]",
		Short: "Print a layout",
		Long: `Print a layout as a tree (default), a one-line expression, or a template.

The layout is a file path, "-" for stdin, or @name for a stored layout.`,
		Example: `  panelayout show workspace.json
  panelayout show @editor --as expr
  cat workspace.json | panelayout show --as toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := formatFlag(input)
			if err != nil {
				return err
			}
			root, err := c.readLayout(cmd.Context(), inputArg(args), in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "", "tree":
				fmt.Fprintln(out, renderTree(root))
				printDetail(out, "%s", summary(root))
			case "expr":
				fmt.Fprintln(out, layout.Format(root))
			case "shape":
				fmt.Fprintln(out, layout.Shape(root))
			default:
				tf, err := formatFlag(format)
				if err != nil {
					return fmt.Errorf("unknown output %q (want tree, expr, shape, json or toml)", format)
				}
				return c.writeLayout(cmd.Context(), out, root, "-", tf)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "as", "tree", "output: tree, expr, shape, json, toml")
	cmd.Flags().StringVarP(&input, "format", "f", "json", "template format when reading stdin: json, toml")
	return cmd
}
