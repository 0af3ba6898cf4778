package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/accountflow/accountflow/internal/analyzer"
	"github.com/accountflow/accountflow/internal/chart"
	"github.com/accountflow/accountflow/internal/model"
	"github.com/accountflow/accountflow/internal/provider"
)

func newAnalyzeCommand() *cobra.Command {
	var workspaceDir string
	var responsePath string
	var save bool

	cmd := &cobra.Command{
		Use:   "analyze <scenario>",
		Short: "Analyze a business scenario into subjects and journal rules",
		Long: `Analyze runs one analysis pass over a scenario description. The AI
response is replayed from a prepared JSON file (--response); the result is
linked against the workspace chart of accounts, validated, and printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(workspaceDir, args[0], responsePath, save)
		},
	}

	cmd.Flags().StringVar(&workspaceDir, "workspace", ".", "workspace directory")
	cmd.Flags().StringVar(&responsePath, "response", "", "path to a provider response JSON file (required)")
	_ = cmd.MarkFlagRequired("response")
	cmd.Flags().BoolVar(&save, "save", false, "persist the result")

	return cmd
}

func runAnalyze(dir, scenario, responsePath string, save bool) error {
	ws, err := openWorkspace(dir)
	if err != nil {
		return err
	}
	defer ws.close()

	input := model.AnalysisInput{BusinessScenario: scenario}
	if accounts, err := chart.Load(ws.root); err == nil {
		input.ExistingAccounts = accounts.All()
	} else {
		fmt.Fprintf(os.Stderr, "warning: no chart of accounts loaded: %v\n", err)
	}

	a := analyzer.New(provider.NewStatic(responsePath))
	result, err := a.Analyze(context.Background(), input)
	if err != nil {
		return err
	}

	if result.Confidence > 0 && result.Confidence < ws.cfg.Thresholds.ReviewConfidence {
		fmt.Fprintf(os.Stderr, "warning: confidence %.2f below review threshold %.2f\n",
			result.Confidence, ws.cfg.Thresholds.ReviewConfidence)
	}

	if save {
		rec, err := ws.store.Save(context.Background(), *result, ws.storeContext())
		if err != nil {
			return fmt.Errorf("saving analysis: %w", err)
		}
		result = &rec.Result
		ws.audit("analyze", rec.ID, scenario)
		fmt.Fprintf(os.Stderr, "saved analysis %s\n", rec.ID)
	}

	return printJSON(result)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
