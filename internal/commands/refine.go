package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/accountflow/accountflow/internal/analyzer"
	"github.com/accountflow/accountflow/internal/provider"
)

func newRefineCommand() *cobra.Command {
	var workspaceDir string
	var responsePath string

	cmd := &cobra.Command{
		Use:   "refine <analysis-id> <feedback>",
		Short: "Re-run a saved analysis with feedback as added context",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefine(workspaceDir, args[0], args[1], responsePath)
		},
	}

	cmd.Flags().StringVar(&workspaceDir, "workspace", ".", "workspace directory")
	cmd.Flags().StringVar(&responsePath, "response", "", "path to a provider response JSON file (required)")
	_ = cmd.MarkFlagRequired("response")

	return cmd
}

func runRefine(dir, id, feedback, responsePath string) error {
	ws, err := openWorkspace(dir)
	if err != nil {
		return err
	}
	defer ws.close()

	ctx := context.Background()
	rec, err := ws.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("loading analysis %s: %w", id, err)
	}

	a := analyzer.New(provider.NewStatic(responsePath))
	result, err := a.Refine(ctx, &rec.Result, feedback)
	if err != nil {
		return err
	}

	updated, err := ws.store.Update(ctx, id, *result)
	if err != nil {
		return fmt.Errorf("updating analysis: %w", err)
	}

	ws.audit("refine", id, feedback)
	fmt.Fprintf(os.Stderr, "refined analysis %s\n", id)
	return printJSON(updated.Result)
}
