package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ribbonpack/pkg/catalog"
	"github.com/matzehuels/ribbonpack/pkg/render/diagram/sink"
)

// completionCommand generates shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for ribbonpack. Example names, formats and
layers complete as well as commands and flags.

  bash:        source <(ribbonpack completion bash)
  zsh:         ribbonpack completion zsh > "${fpath[1]}/_ribbonpack"
  fish:        ribbonpack completion fish | source
  powershell:  ribbonpack completion powershell | Out-String | Invoke-Expression`,
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
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeExamples offers catalog names with their expressions as
// descriptions.
func completeExamples(_ *cobra.Command, _ []string, prefix string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, e := range catalog.All() {
		if strings.HasPrefix(e.Name, prefix) {
			out = append(out, e.Name+"\t"+e.Expr)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeList completes the last entry of a comma-separated value.
func completeList(values []string) cobra.CompletionFunc {
	return func(_ *cobra.Command, _ []string, prefix string) ([]string, cobra.ShellCompDirective) {
		head, last := "", prefix
		if i := strings.LastIndex(prefix, ","); i >= 0 {
			head, last = prefix[:i+1], prefix[i+1:]
		}
		var out []string
		for _, v := range values {
			if strings.HasPrefix(v, last) {
				out = append(out, head+v)
			}
		}
		return out, cobra.ShellCompDirectiveNoSpace | cobra.ShellCompDirectiveNoFileComp
	}
}

func formatNames() []string {
	out := make([]string, 0, len(sink.Formats))
	for _, f := range sink.Formats {
		out = append(out, string(f))
	}
	return out
}
