package cli

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/openopus/ng-pane-manager2-sub000/pkg/builder"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/layout"
)

// editFlags are shared by commands that rewrite a layout.
type editFlags struct {
	format string
	output string
}

func (f *editFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "json", "template format for stdin/stdout: json, toml")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write to a file or @name (default stdout)")
}

// runEdit loads the input layout, applies fn as one builder transaction and
// writes the result.
func (c *CLI) runEdit(cmd *cobra.Command, args []string, f *editFlags, verb string, fn func(*builder.Builder) error) error {
	format, err := formatFlag(f.format)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	root, err := c.readLayout(ctx, inputArg(args), format)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	b := builder.From(root, builder.WithLogger(c.Logger))
	if res := b.Build(fn); !res.OK() {
		return res.Err
	}
	prog.done(fmt.Sprintf("%s: %d edits", verb, b.Edits()))

	// A bare "@" writes back to the stored input layout.
	dest := f.output
	if dest == "@" {
		name, ok := storedName(inputArg(args))
		if !ok {
			return fmt.Errorf("-o @ needs an @name input")
		}
		dest = "@" + name
	}
	return c.writeLayout(ctx, cmd.OutOrStdout(), b.Root(), dest, format)
}

// simplifyCommand creates the simplify command.
func (c *CLI) simplifyCommand() *cobra.Command {
	var f editFlags
	cmd := &cobra.Command{
		Use:   "simplify [layout]",
		Short: "Canonicalize a layout",
		Long: `Collapse single-child branches, drop empty ones and flatten splits nested
in same-axis splits. The result is written as a template.`,
		Example: `  panelayout simplify messy.json -o clean.json
  panelayout simplify @editor -o @`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd, args, &f, "simplify", func(b *builder.Builder) error {
				return b.Simplify()
			})
		},
	}
	f.register(cmd)
	return cmd
}

// placeCommand creates the place command.
func (c *CLI) placeCommand() *cobra.Command {
	var (
		f        editFlags
		id       string
		tmpl     string
		gravity  string
		group    string
		extraRaw string
	)

	cmd := &cobra.Command{
		Use:   "place [layout]",
		Short: "Add a pane by gravity or group",
		Long: `Add a leaf pane to a layout. A pane with a group joins the node carrying
that group as a tab. Otherwise it joins its gravity slot, which is created
if absent. An empty layout accepts any pane.

Without --id a random UUID is used.`,
		Example: `  panelayout place ws.json --template terminal --gravity bottom
  panelayout place @editor --id notes --template markdown --group docs -o @`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []layout.Option
			if gravity != "" {
				g, err := layout.ParseGravity(gravity)
				if err != nil {
					return err
				}
				opts = append(opts, layout.WithGravity(g))
			}
			if group != "" {
				opts = append(opts, layout.WithGroup(group))
			}
			var extra any
			if extraRaw != "" {
				if err := json.Unmarshal([]byte(extraRaw), &extra); err != nil {
					return fmt.Errorf("--extra: %w", err)
				}
			}
			if id == "" {
				id = uuid.NewString()
			}

			return c.runEdit(cmd, args, &f, "place", func(b *builder.Builder) error {
				return b.Add(b.Leaf(id, tmpl, extra, opts...))
			})
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "leaf id (default: random UUID)")
	cmd.Flags().StringVarP(&tmpl, "template", "t", "", "pane template name (required)")
	cmd.Flags().StringVarP(&gravity, "gravity", "g", "", "docking slot: header, left, main, bottom, right, footer")
	cmd.Flags().StringVar(&group, "group", "", "placement group to tab into")
	cmd.Flags().StringVar(&extraRaw, "extra", "", "JSON payload stored on the leaf")
	cmd.MarkFlagRequired("template")
	cmd.RegisterFlagCompletionFunc("gravity", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, g := range layout.Gravities() {
			names = append(names, g.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		format string
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "validate [layout]",
		Short: "Check a layout's invariants",
		Long: `Load a layout and check every structural invariant. With --strict the
layout must also already be in simplified form.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tf, err := formatFlag(format)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			root, err := c.readLayout(cmd.Context(), inputArg(args), tf)
			if err != nil {
				printError(out, "%v", err)
				return err
			}
			if err := layout.Validate(root); err != nil {
				printError(out, "%v", err)
				return err
			}
			if strict {
				if simplified, changed := root.SimplifyDeep(); changed {
					err := fmt.Errorf("layout is not simplified; canonical form is %s", layout.Format(simplified))
					printError(out, "%v", err)
					printNextStep(out, "Fix it with", "panelayout simplify "+inputArg(args))
					return err
				}
			}
			printSuccess(out, "Layout is valid")
			printDetail(out, "%s", summary(root))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "template format when reading stdin: json, toml")
	cmd.Flags().BoolVar(&strict, "strict", false, "also require simplified form")
	return cmd
}
