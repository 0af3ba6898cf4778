package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/accountflow/accountflow/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "accountflow",
		Short:   "Turn business scenarios into validated accounting models",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newRefineCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newSampleCommand())
	rootCmd.AddCommand(newAccountsCommand())
	rootCmd.AddCommand(newAnalysesCommand())

	return rootCmd
}
