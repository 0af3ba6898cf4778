// Package sample turns confirmed journal rules into concrete sample
// transactions by resolving their amount formulas.
package sample

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/accountflow/accountflow/internal/formula"
	"github.com/accountflow/accountflow/internal/model"
)

// GeneratedByTemplate marks transactions produced by rule substitution.
const GeneratedByTemplate = "template"

// Generate resolves every line of a rule against the given variable
// values and returns the resulting transaction. The output is not
// re-validated — the rule was validated before confirmation, and callers
// that need a balance check can run one on the entry. A line whose
// formula fails to resolve gets a zero amount and a warning on the
// transaction.
func Generate(rule model.JournalRule, variables map[string]decimal.Decimal) model.SampleTransaction {
	txn := model.SampleTransaction{
		Entry: model.JournalEntry{
			Description: rule.EventName,
			Date:        time.Now().UTC(),
		},
		GeneratedBy: GeneratedByTemplate,
		GeneratedAt: time.Now().UTC(),
	}
	if rule.EventDescription != "" {
		txn.Entry.Description = rule.EventDescription
	}

	txn.Entry.DebitSide = resolveSide(rule.DebitSide, variables, &txn.Warnings)
	txn.Entry.CreditSide = resolveSide(rule.CreditSide, variables, &txn.Warnings)
	return txn
}

func resolveSide(side model.JournalEntrySide, variables map[string]decimal.Decimal, warnings *[]string) model.JournalEntrySide {
	resolved := model.JournalEntrySide{Entries: make([]model.JournalEntryLine, len(side.Entries))}
	for i, line := range side.Entries {
		amount, err := formula.Resolve(line.AmountFormula, line.Amount, variables)
		if err != nil {
			*warnings = append(*warnings, fmt.Sprintf("account %s: %v (amount defaulted to 0)", line.AccountCode, err))
		}
		resolved.Entries[i] = model.JournalEntryLine{
			AccountCode: line.AccountCode,
			AccountName: line.AccountName,
			Amount:      &amount,
			Description: line.Description,
		}
	}
	return resolved
}
