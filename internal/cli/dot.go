package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openopus/ng-pane-manager2-sub000/pkg/render"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/render/dot"
)

// dotCommand creates the dot command.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
		scale    float64
	)

	cmd := &cobra.Command{
		Use:   "dot [layout]",
		Short: "Export a layout as a Graphviz diagram",
		Long: `Export a layout tree as Graphviz DOT source. With -o the output format is
chosen by extension: .dot, .svg, .pdf or .png. PDF and PNG need librsvg.`,
		Example: `  panelayout dot ws.json | dot -Tpng > ws.png
  panelayout dot @editor -o editor.svg --detailed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tf, err := formatFlag(format)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			root, err := c.readLayout(ctx, inputArg(args), tf)
			if err != nil {
				return err
			}
			src := dot.ToDOT(root, dot.Options{Detailed: detailed})

			if output == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), src)
				return err
			}

			prog := newProgress(c.Logger)
			var data []byte
			switch ext := strings.ToLower(filepath.Ext(output)); ext {
			case ".dot", ".gv":
				data = []byte(src)
			case ".svg", ".pdf", ".png":
				spin := newSpinner(ctx, cmd.ErrOrStderr(), "Rendering "+ext[1:])
				spin.start()
				defer spin.stop()

				svg, err := dot.RenderSVG(ctx, src)
				if err != nil {
					return err
				}
				switch ext {
				case ".svg":
					data = svg
				case ".pdf":
					data, err = render.ToPDF(ctx, svg)
				case ".png":
					data, err = render.ToPNG(ctx, svg, scale)
				}
				spin.stop()
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported diagram extension %q (want .dot, .svg, .pdf or .png)", ext)
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			prog.done("Rendered diagram")
			printFile(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "template format when reading stdin: json, toml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.dot, .svg, .pdf, .png)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include templates, tags and ratios")
	cmd.Flags().Float64Var(&scale, "scale", 2, "PNG scale factor")
	return cmd
}
