package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/accountflow/accountflow/internal/chart"
)

func newAccountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Chart of accounts operations",
	}
	cmd.AddCommand(newAccountsListCommand())
	return cmd
}

func newAccountsListCommand() *cobra.Command {
	var workspaceDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the workspace chart of accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := chart.Load(workspaceDir)
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Code", "Name", "Type", "Direction"})
			for _, a := range svc.All() {
				tw.AppendRow(table.Row{a.Code, a.Name, a.Type, a.Direction})
			}
			tw.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&workspaceDir, "workspace", ".", "workspace directory")
	return cmd
}
