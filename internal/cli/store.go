package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/store"
)

// storeCommand creates the store command and its subcommands.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage saved layouts",
		Long: `Manage layouts saved in the configured store. The backend is set in the
config file ([store] backend = "file", "memory", "redis" or "mongo").`,
	}

	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeGetCommand())
	cmd.AddCommand(c.storePutCommand())
	cmd.AddCommand(c.storeDeleteCommand())
	cmd.AddCommand(c.storeInfoCommand())
	return cmd
}

func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved layouts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layouts, err := c.openLayouts(cmd.Context())
			if err != nil {
				return err
			}
			defer layouts.Close()

			names, err := layouts.Names(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				printInfo(out, "No saved layouts")
				printNextStep(out, "Save one with", "panelayout store put <name> <file>")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}

func (c *CLI) storeGetCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Print a saved layout as a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tf, err := formatFlag(format)
			if err != nil {
				return err
			}
			root, err := c.readLayout(cmd.Context(), "@"+args[0], tf)
			if err != nil {
				return err
			}
			return c.writeLayout(cmd.Context(), cmd.OutOrStdout(), root, "-", tf)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, toml")
	return cmd
}

func (c *CLI) storePutCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "put <name> [layout]",
		Short: "Save a layout under a name",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errs.ValidateLayoutName(args[0]); err != nil {
				return err
			}
			tf, err := formatFlag(format)
			if err != nil {
				return err
			}
			root, err := c.readLayout(cmd.Context(), inputArg(args[1:]), tf)
			if err != nil {
				return err
			}
			if err := c.writeLayout(cmd.Context(), cmd.OutOrStdout(), root, "@"+args[0], tf); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Saved %s", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "template format when reading stdin: json, toml")
	return cmd
}

func (c *CLI) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved layout",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layouts, err := c.openLayouts(cmd.Context())
			if err != nil {
				return err
			}
			defer layouts.Close()

			if err := layouts.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Deleted %s", args[0])
			return nil
		},
	}
}

func (c *CLI) storeInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the configured store backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg := c.config.Store
			backend := cfg.Backend
			if backend == "" {
				backend = store.BackendFile
			}
			printKeyValue(out, "backend", backend)
			switch backend {
			case store.BackendFile:
				printKeyValue(out, "dir", cfg.Dir)
			case store.BackendRedis:
				printKeyValue(out, "addr", cfg.Redis.Addr)
				printKeyValue(out, "namespace", cfg.Redis.Namespace)
			case store.BackendMongo:
				printKeyValue(out, "database", cfg.Mongo.Database)
				printKeyValue(out, "collection", cfg.Mongo.Collection)
			}
			if ns := c.config.Layouts.Namespace; ns != "" {
				printKeyValue(out, "scope", ns)
			}
			return nil
		},
	}
}
