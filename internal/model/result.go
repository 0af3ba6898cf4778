package model

import "time"

// AnalysisInput is everything the analyzer needs for one pass: the
// scenario text, the chart of accounts to link against, and optional
// refinement context.
type AnalysisInput struct {
	BusinessScenario string          `json:"businessScenario"`
	ExistingAccounts []Account       `json:"existingAccounts,omitempty"`
	PreviousAnalysis *AnalysisResult `json:"previousAnalysis,omitempty"`
	Constraints      []string        `json:"constraints,omitempty"`
	SourceMessageID  string          `json:"sourceMessageId,omitempty"`
}

// ProviderResponse is the raw shape an AI provider returns before
// post-processing.
type ProviderResponse struct {
	Subjects     []AccountingSubject `json:"subjects"`
	JournalRules []JournalRule       `json:"journalRules"`
	FlowDiagram  string              `json:"flowDiagram,omitempty"`
	Reasoning    string              `json:"reasoning,omitempty"`
	Confidence   float64             `json:"confidence,omitempty"`
}

// AnalysisResult is one validated analysis of a business scenario.
type AnalysisResult struct {
	ID              string              `json:"id,omitempty"`
	Scenario        string              `json:"scenario"`
	Subjects        []AccountingSubject `json:"subjects"`
	JournalRules    []JournalRule       `json:"journalRules"`
	FlowDiagram     string              `json:"flowDiagram,omitempty"`
	Confidence      float64             `json:"confidence,omitempty"`
	Reasoning       string              `json:"reasoning,omitempty"`
	Warnings        []string            `json:"warnings,omitempty"`
	AnalyzedAt      time.Time           `json:"analyzedAt"`
	SourceMessageID string              `json:"sourceMessageId,omitempty"`
}
