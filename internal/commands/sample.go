package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/accountflow/accountflow/internal/model"
	"github.com/accountflow/accountflow/internal/sample"
	"github.com/accountflow/accountflow/internal/store"
)

func newSampleCommand() *cobra.Command {
	var workspaceDir string
	var rulePath string
	var analysisID string
	var event string
	var vars []string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a sample transaction from a journal rule",
		Long: `Sample resolves a rule's amount formulas against concrete variable
values. The rule comes either from a JSON file (--rule) or from a confirmed
saved analysis (--analysis with --event).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			variables, err := parseVars(vars)
			if err != nil {
				return err
			}

			switch {
			case rulePath != "":
				var rule model.JournalRule
				if err := readJSON(rulePath, &rule); err != nil {
					return err
				}
				return printJSON(sample.Generate(rule, variables))
			case analysisID != "":
				return runStoredSample(workspaceDir, analysisID, event, variables)
			default:
				return fmt.Errorf("either --rule or --analysis is required")
			}
		},
	}

	cmd.Flags().StringVar(&workspaceDir, "workspace", ".", "workspace directory")
	cmd.Flags().StringVar(&rulePath, "rule", "", "path to a journal rule JSON file")
	cmd.Flags().StringVar(&analysisID, "analysis", "", "ID of a confirmed saved analysis")
	cmd.Flags().StringVar(&event, "event", "", "event name of the rule inside the analysis")
	cmd.Flags().StringArrayVar(&vars, "set", nil, "variable value, e.g. --set amount=1130")

	return cmd
}

func runStoredSample(dir, id, event string, variables map[string]decimal.Decimal) error {
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
	if rec.Status != store.StatusConfirmed {
		return fmt.Errorf("analysis %s is not confirmed; only confirmed rules generate samples", id)
	}

	for _, rule := range rec.Result.JournalRules {
		if rule.EventName == event {
			txn := sample.Generate(rule, variables)
			ws.audit("sample", id, event)
			return printJSON(txn)
		}
	}
	return fmt.Errorf("analysis %s has no rule for event %q", id, event)
}

func parseVars(pairs []string) (map[string]decimal.Decimal, error) {
	variables := make(map[string]decimal.Decimal, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid variable %q, expected name=value", pair)
		}
		d, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", name, err)
		}
		variables[name] = d
	}
	return variables, nil
}
