// Package analyzer coordinates one AI-assisted analysis pass: it calls a
// provider, links proposed subjects to an existing chart of accounts,
// derives rule variables, and validates the result before returning it.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/accountflow/accountflow/internal/model"
	"github.com/accountflow/accountflow/internal/validate"
)

// Provider produces raw subjects and rules for a scenario. Anything
// satisfying this shape works — an LLM client, a canned response, a test
// stub.
type Provider interface {
	AnalyzeScenario(ctx context.Context, input model.AnalysisInput) (model.ProviderResponse, error)
}

// Analyzer runs analysis passes against a single provider. Analyzers are
// stateless; concurrent calls are independent.
type Analyzer struct {
	provider Provider
}

// New creates an Analyzer backed by the given provider.
func New(provider Provider) *Analyzer {
	return &Analyzer{provider: provider}
}

// Analyze runs one pass: provider call, post-processing, validation.
// Any blocking validation error fails the whole call with an aggregated
// message; partial results are never returned.
func (a *Analyzer) Analyze(ctx context.Context, input model.AnalysisInput) (*model.AnalysisResult, error) {
	if strings.TrimSpace(input.BusinessScenario) == "" {
		return nil, errors.New("business scenario is required")
	}

	resp, err := a.provider.AnalyzeScenario(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("analyzing scenario: %w", err)
	}

	subjects := linkSubjects(resp.Subjects, input.ExistingAccounts)
	rules := deriveVariables(resp.JournalRules)

	var errMsgs, warnings []string

	sr := validate.Subjects(subjects)
	errMsgs = append(errMsgs, sr.Messages()...)
	for _, w := range sr.Warnings {
		warnings = append(warnings, w.Message)
	}

	for _, rule := range rules {
		rr := validate.JournalRule(rule)
		for _, msg := range rr.Messages() {
			errMsgs = append(errMsgs, fmt.Sprintf("rule %q: %s", rule.EventName, msg))
		}
		for _, w := range rr.Warnings {
			warnings = append(warnings, fmt.Sprintf("rule %q: %s", rule.EventName, w.Message))
		}
	}

	if len(errMsgs) > 0 {
		return nil, fmt.Errorf("analysis validation failed: %s", strings.Join(errMsgs, ", "))
	}

	return &model.AnalysisResult{
		Scenario:        input.BusinessScenario,
		Subjects:        subjects,
		JournalRules:    rules,
		FlowDiagram:     resp.FlowDiagram,
		Confidence:      resp.Confidence,
		Reasoning:       resp.Reasoning,
		Warnings:        warnings,
		AnalyzedAt:      time.Now().UTC(),
		SourceMessageID: input.SourceMessageID,
	}, nil
}

// Refine re-runs analysis with the previous result and the feedback text
// as added context. There is no diffing or merging here — incorporating
// the prior result is the provider's job.
func (a *Analyzer) Refine(ctx context.Context, previous *model.AnalysisResult, feedback string) (*model.AnalysisResult, error) {
	if previous == nil {
		return nil, errors.New("previous analysis is required")
	}

	input := model.AnalysisInput{
		BusinessScenario: previous.Scenario,
		PreviousAnalysis: previous,
		Constraints:      []string{feedback},
		SourceMessageID:  previous.SourceMessageID,
	}
	return a.Analyze(ctx, input)
}

// linkSubjects matches each proposed subject against the existing chart
// of accounts, by code first and name second. A match sets AccountID and
// backfills type and direction only where the provider left them empty —
// provider-supplied values are never overridden.
func linkSubjects(subjects []model.AccountingSubject, existing []model.Account) []model.AccountingSubject {
	if len(existing) == 0 {
		return subjects
	}

	byCode := make(map[string]model.Account, len(existing))
	byName := make(map[string]model.Account, len(existing))
	for _, acct := range existing {
		byCode[acct.Code] = acct
		byName[acct.Name] = acct
	}

	linked := make([]model.AccountingSubject, len(subjects))
	for i, s := range subjects {
		match, ok := byCode[s.Code]
		if !ok {
			match, ok = byName[s.Name]
		}
		if ok {
			s.AccountID = match.ID
			if s.Type == "" {
				s.Type = match.Type
			}
			if s.Direction == "" {
				s.Direction = match.Direction
			}
		}
		linked[i] = s
	}
	return linked
}

// deriveVariables fills in a rule's variable list from its formulas when
// the provider omitted it. Declared lists are kept as-is.
func deriveVariables(rules []model.JournalRule) []model.JournalRule {
	derived := make([]model.JournalRule, len(rules))
	for i, rule := range rules {
		if len(rule.Variables) == 0 {
			rule.Variables = validate.RuleVariables(rule)
		}
		derived[i] = rule
	}
	return derived
}
