package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newAnalysesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyses",
		Short: "Manage saved analyses",
	}
	cmd.AddCommand(newAnalysesListCommand())
	cmd.AddCommand(newAnalysesShowCommand())
	cmd.AddCommand(newAnalysesConfirmCommand())
	cmd.AddCommand(newAnalysesDeleteCommand())
	return cmd
}

func newAnalysesListCommand() *cobra.Command {
	var workspaceDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved analyses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(workspaceDir)
			if err != nil {
				return err
			}
			defer ws.close()

			records, err := ws.store.List(context.Background(), ws.storeContext())
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"ID", "Scenario", "Status", "Rules", "Analyzed"})
			for _, rec := range records {
				tw.AppendRow(table.Row{
					rec.ID,
					truncate(rec.Result.Scenario, 40),
					rec.Status,
					len(rec.Result.JournalRules),
					rec.Result.AnalyzedAt.Format("2006-01-02 15:04"),
				})
			}
			tw.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&workspaceDir, "workspace", ".", "workspace directory")
	return cmd
}

func newAnalysesShowCommand() *cobra.Command {
	var workspaceDir string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one saved analysis as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(workspaceDir)
			if err != nil {
				return err
			}
			defer ws.close()

			rec, err := ws.store.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			return printJSON(rec.Result)
		},
	}

	cmd.Flags().StringVar(&workspaceDir, "workspace", ".", "workspace directory")
	return cmd
}

func newAnalysesConfirmCommand() *cobra.Command {
	var workspaceDir string

	cmd := &cobra.Command{
		Use:   "confirm <id>",
		Short: "Promote an analysis to confirmed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(workspaceDir)
			if err != nil {
				return err
			}
			defer ws.close()

			rec, err := ws.store.Confirm(context.Background(), args[0])
			if err != nil {
				return err
			}
			ws.audit("confirm", rec.ID, "")
			fmt.Printf("analysis %s is %s\n", rec.ID, rec.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&workspaceDir, "workspace", ".", "workspace directory")
	return cmd
}

func newAnalysesDeleteCommand() *cobra.Command {
	var workspaceDir string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(workspaceDir)
			if err != nil {
				return err
			}
			defer ws.close()

			if err := ws.store.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			ws.audit("delete", args[0], "")
			fmt.Printf("deleted analysis %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&workspaceDir, "workspace", ".", "workspace directory")
	return cmd
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
