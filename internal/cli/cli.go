// Package cli implements the panelayout command-line interface.
//
// The commands read and write layout templates (JSON or TOML), edit them
// with the builder and persist them in the configured store:
//   - show: print a layout as a tree, expression or template
//   - simplify: canonicalize a layout
//   - place: add a pane by gravity/group
//   - validate: check a layout's invariants
//   - dot: export a Graphviz diagram (DOT, SVG, PDF, PNG)
//   - store: list, get, put and delete saved layouts
//   - serve: run the HTTP API
//   - browse: explore and resize a layout interactively
//
// A layout argument is a file path, "-" for stdin, or "@name" for a layout
// saved in the store.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/openopus/ng-pane-manager2-sub000/pkg/buildinfo"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/layout"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/store"
	"github.com/openopus/ng-pane-manager2-sub000/pkg/template"
)

// appName is the application name used for directories and display.
const appName = "panelayout"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configFile string
	config     Config
	stdin      io.Reader
}

// New creates a CLI whose logger writes to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: DefaultConfig(),
		stdin:  os.Stdin,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Panelayout edits dockable pane layouts",
		Long:         `Panelayout builds, simplifies and stores dockable pane layouts: trees of splits, tab stacks and panes placed by gravity.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/panelayout/config.toml)")

	root.AddCommand(c.showCommand())
	root.AddCommand(c.simplifyCommand())
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	path := c.configFile
	if path == "" {
		p, err := configPath()
		if err != nil {
			return nil
		}
		path = p
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	if cfg.Store.Backend == store.BackendFile && cfg.Store.Dir == "" {
		if dir, err := dataDir(); err == nil {
			cfg.Store.Dir = dir
		}
	}
	c.config = cfg
	c.Logger.Debug("config loaded", "path", path, "store", cfg.Store.Backend)
	return nil
}

// =============================================================================
// Store access
// =============================================================================

// openLayouts opens the configured store.
func (c *CLI) openLayouts(ctx context.Context) (*store.Layouts, error) {
	s, err := store.Open(ctx, c.config.Store)
	if err != nil {
		return nil, err
	}
	opts := []store.LayoutsOption{store.WithLogger(c.Logger)}
	if ns := c.config.Layouts.Namespace; ns != "" {
		opts = append(opts, store.WithKeyer(store.NewScopedKeyer(nil, ns)))
	}
	ttl, err := c.config.Layouts.TTLDuration()
	if err != nil {
		s.Close()
		return nil, err
	}
	opts = append(opts, store.WithTTL(ttl))
	return store.NewLayouts(s, opts...), nil
}

// =============================================================================
// Layout input / output
// =============================================================================

// storedName returns the layout name of an "@name" argument.
func storedName(arg string) (string, bool) {
	if name, ok := strings.CutPrefix(arg, "@"); ok {
		return name, true
	}
	return "", false
}

// readLayout loads a layout from a file, stdin ("-") or the store ("@name").
// format applies to stdin only; files are detected by extension.
func (c *CLI) readLayout(ctx context.Context, arg string, format template.Format) (*layout.Root, error) {
	if name, ok := storedName(arg); ok {
		layouts, err := c.openLayouts(ctx)
		if err != nil {
			return nil, err
		}
		defer layouts.Close()
		root, _, err := layouts.Load(ctx, name)
		return root, err
	}
	if arg == "-" || arg == "" {
		return template.Read(c.stdin, format)
	}
	return template.ImportFile(arg)
}

// writeLayout writes root to a file, to w ("" or "-") or to the store ("@name").
func (c *CLI) writeLayout(ctx context.Context, w io.Writer, root *layout.Root, dest string, format template.Format) error {
	if name, ok := storedName(dest); ok {
		layouts, err := c.openLayouts(ctx)
		if err != nil {
			return err
		}
		defer layouts.Close()
		if _, err := layouts.Save(ctx, name, root); err != nil {
			return err
		}
		c.Logger.Info("saved layout", "name", name)
		return nil
	}
	if dest == "" || dest == "-" {
		return template.Write(root, w, format)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return template.ExportFile(root, dest)
}

// formatFlag parses the --format flag for stdin/stdout templates.
func formatFlag(s string) (template.Format, error) {
	if s == "" {
		return template.FormatJSON, nil
	}
	return template.ParseFormat(s)
}

// inputArg returns the single optional layout argument, defaulting to stdin.
func inputArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
