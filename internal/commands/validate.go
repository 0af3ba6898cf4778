package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/accountflow/accountflow/internal/model"
	"github.com/accountflow/accountflow/internal/validate"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate rules and entries without an analysis pass",
	}
	cmd.AddCommand(newValidateRuleCommand())
	cmd.AddCommand(newValidateEntryCommand())
	return cmd
}

func newValidateRuleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rule <file.json>",
		Short: "Validate a journal rule template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rule model.JournalRule
			if err := readJSON(args[0], &rule); err != nil {
				return err
			}
			return report(validate.JournalRule(rule))
		},
	}
}

func newValidateEntryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "entry <file.json>",
		Short: "Validate a concrete journal entry, including its balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var entry model.JournalEntry
			if err := readJSON(args[0], &entry); err != nil {
				return err
			}
			return report(validate.JournalEntry(entry))
		},
	}
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// report prints every problem and fails the command when the result has
// blocking errors.
func report(r validate.Result) error {
	for _, w := range r.Warnings {
		fmt.Fprintf(os.Stderr, "warning [%s]: %s\n", w.Type, w.Message)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(os.Stderr, "error [%s]: %s\n", e.Type, e.Message)
	}
	if !r.Valid {
		return fmt.Errorf("validation failed with %d error(s)", len(r.Errors))
	}
	fmt.Println("valid")
	return nil
}
