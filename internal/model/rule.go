package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryLine is one leg of a transaction. A line carries either a
// fixed Amount or an AmountFormula template, not both; Amount is a pointer
// so an absent amount is distinguishable from an explicit zero.
type JournalEntryLine struct {
	AccountCode   string           `json:"accountCode"`
	AccountName   string           `json:"accountName,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	AmountFormula string           `json:"amountFormula,omitempty"`
	Description   string           `json:"description,omitempty"`
}

// JournalEntrySide groups the lines of one side (all-debit or all-credit)
// of an entry or rule, in order.
type JournalEntrySide struct {
	Entries []JournalEntryLine `json:"entries"`
}

// JournalRule is a reusable journal template for one business event.
// Amounts are formula templates; Variables documents the placeholder
// names those formulas use.
type JournalRule struct {
	EventName        string            `json:"eventName"`
	EventDescription string            `json:"eventDescription,omitempty"`
	DebitSide        JournalEntrySide  `json:"debitSide"`
	CreditSide       JournalEntrySide  `json:"creditSide"`
	Variables        []string          `json:"variables,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// JournalEntry is a concrete (non-template) entry with resolved amounts.
type JournalEntry struct {
	Description string           `json:"description"`
	Date        time.Time        `json:"date,omitzero"`
	DebitSide   JournalEntrySide `json:"debitSide"`
	CreditSide  JournalEntrySide `json:"creditSide"`
}

// SampleTransaction wraps a journal entry produced by resolving a rule's
// formulas against concrete variable values.
type SampleTransaction struct {
	Entry       JournalEntry `json:"entry"`
	GeneratedBy string       `json:"generatedBy"`
	GeneratedAt time.Time    `json:"generatedAt"`

	// Warnings records lines whose formula failed to resolve and
	// defaulted to zero.
	Warnings []string `json:"warnings,omitempty"`
}
