package cli

import "github.com/spf13/cobra"

// completionCommand creates the completion command. Gravity names for
// `place --gravity` are completed too.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for panelayout.

  bash:        source <(panelayout completion bash)
  zsh:         panelayout completion zsh > "${fpath[1]}/_panelayout"
  fish:        panelayout completion fish > ~/.config/fish/completions/panelayout.fish
  powershell:  panelayout completion powershell | Out-String | Invoke-Expression

Start a new shell for the change to take effect.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
