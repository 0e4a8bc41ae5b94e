package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jackparrish/deskfolio/pkg/config"
	"github.com/jackparrish/deskfolio/pkg/content"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for deskfolio.

Bash:
  $ source <(deskfolio completion bash)

Zsh:
  $ deskfolio completion zsh > "${fpath[1]}/_deskfolio"

Fish:
  $ deskfolio completion fish > ~/.config/fish/completions/deskfolio.fish

PowerShell:
  PS> deskfolio completion powershell | Out-String | Invoke-Expression

Case study slugs complete from the configured content directory.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// completeCaseSlugs completes the first argument with published slugs.
// Only the content directory is consulted; a Mongo source would need a
// network round trip per keystroke.
func (c *CLI) completeCaseSlugs(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := config.Load(c.configPath)
	if err != nil || cfg.UsesMongo() {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	repo := content.NewRepository(content.NewDirSource(cfg.Content.Dir), nil)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	slugs, err := repo.ListDocumentIDs(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return slugs, cobra.ShellCompDirectiveNoFileComp
}
