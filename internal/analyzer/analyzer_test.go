package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountflow/accountflow/internal/model"
)

// mockProvider implements Provider with a canned response, recording the
// last input it was called with.
type mockProvider struct {
	resp      model.ProviderResponse
	err       error
	lastInput model.AnalysisInput
}

func (m *mockProvider) AnalyzeScenario(_ context.Context, input model.AnalysisInput) (model.ProviderResponse, error) {
	m.lastInput = input
	return m.resp, m.err
}

func saleResponse() model.ProviderResponse {
	return model.ProviderResponse{
		Subjects: []model.AccountingSubject{
			{Code: "1001", Name: "库存现金", Direction: model.DirectionDebit},
			{Code: "6001", Name: "主营业务收入", Type: model.TypeRevenue, Direction: model.DirectionCredit},
		},
		JournalRules: []model.JournalRule{
			{
				EventName: "销售收款",
				DebitSide: model.JournalEntrySide{Entries: []model.JournalEntryLine{
					{AccountCode: "1001", AmountFormula: "{{amount}}"},
				}},
				CreditSide: model.JournalEntrySide{Entries: []model.JournalEntryLine{
					{AccountCode: "6001", AmountFormula: "{{amount}}"},
				}},
			},
		},
		Confidence: 0.9,
		Reasoning:  "cash sale",
	}
}

func TestAnalyze_BlankScenarioRejected(t *testing.T) {
	a := New(&mockProvider{})

	_, err := a.Analyze(context.Background(), model.AnalysisInput{BusinessScenario: "   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario")
	assert.Contains(t, err.Error(), "required")
}

func TestAnalyze_ProviderErrorPropagates(t *testing.T) {
	a := New(&mockProvider{err: errors.New("model unavailable")})

	_, err := a.Analyze(context.Background(), model.AnalysisInput{BusinessScenario: "收到现金"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestAnalyze_LinksExistingAccounts(t *testing.T) {
	p := &mockProvider{resp: saleResponse()}
	a := New(p)

	existing := []model.Account{
		{ID: "acct-1", Code: "1001", Name: "库存现金", Type: model.TypeAsset, Direction: model.DirectionDebit},
		{ID: "acct-2", Code: "9999", Name: "主营业务收入", Type: model.TypeExpense, Direction: model.DirectionDebit},
	}

	result, err := a.Analyze(context.Background(), model.AnalysisInput{
		BusinessScenario: "客户付现金购买商品",
		ExistingAccounts: existing,
	})
	require.NoError(t, err)
	require.Len(t, result.Subjects, 2)

	// Code match: linked, missing type backfilled.
	assert.Equal(t, "acct-1", result.Subjects[0].AccountID)
	assert.Equal(t, model.TypeAsset, result.Subjects[0].Type)

	// Name match: linked, but provider-supplied type and direction win.
	assert.Equal(t, "acct-2", result.Subjects[1].AccountID)
	assert.Equal(t, model.TypeRevenue, result.Subjects[1].Type)
	assert.Equal(t, model.DirectionCredit, result.Subjects[1].Direction)
}

func TestAnalyze_DerivesRuleVariables(t *testing.T) {
	a := New(&mockProvider{resp: saleResponse()})

	result, err := a.Analyze(context.Background(), model.AnalysisInput{BusinessScenario: "现金销售"})
	require.NoError(t, err)
	require.Len(t, result.JournalRules, 1)
	assert.Equal(t, []string{"amount"}, result.JournalRules[0].Variables)
}

func TestAnalyze_KeepsDeclaredVariables(t *testing.T) {
	resp := saleResponse()
	resp.JournalRules[0].Variables = []string{"amount", "rate"}
	a := New(&mockProvider{resp: resp})

	result, err := a.Analyze(context.Background(), model.AnalysisInput{BusinessScenario: "现金销售"})
	require.NoError(t, err)
	assert.Equal(t, []string{"amount", "rate"}, result.JournalRules[0].Variables)
}

func TestAnalyze_ValidationFailureAggregates(t *testing.T) {
	resp := saleResponse()
	resp.Subjects[1].Code = "1001" // duplicate
	resp.JournalRules[0].EventName = ""
	a := New(&mockProvider{resp: resp})

	_, err := a.Analyze(context.Background(), model.AnalysisInput{BusinessScenario: "现金销售"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
	assert.Contains(t, err.Error(), "event name")
	assert.Contains(t, err.Error(), ", ")
}

func TestAnalyze_CollectsWarnings(t *testing.T) {
	resp := saleResponse()
	resp.JournalRules[0].DebitSide.Entries[0].AmountFormula = ""
	resp.JournalRules[0].DebitSide.Entries[0].Amount = nil
	a := New(&mockProvider{resp: resp})

	result, err := a.Analyze(context.Background(), model.AnalysisInput{BusinessScenario: "现金销售"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Warnings)
}

func TestAnalyze_StampsResult(t *testing.T) {
	a := New(&mockProvider{resp: saleResponse()})

	result, err := a.Analyze(context.Background(), model.AnalysisInput{
		BusinessScenario: "现金销售",
		SourceMessageID:  "msg-42",
	})
	require.NoError(t, err)
	assert.Equal(t, "现金销售", result.Scenario)
	assert.Equal(t, "msg-42", result.SourceMessageID)
	assert.False(t, result.AnalyzedAt.IsZero())
	assert.InDelta(t, 0.9, result.Confidence, 1e-9)
	assert.Equal(t, "cash sale", result.Reasoning)
}

func TestRefine_CarriesPreviousContext(t *testing.T) {
	p := &mockProvider{resp: saleResponse()}
	a := New(p)

	previous := &model.AnalysisResult{
		Scenario:        "现金销售",
		SourceMessageID: "msg-42",
	}

	_, err := a.Refine(context.Background(), previous, "增加增值税科目")
	require.NoError(t, err)
	assert.Equal(t, previous, p.lastInput.PreviousAnalysis)
	assert.Equal(t, []string{"增加增值税科目"}, p.lastInput.Constraints)
	assert.Equal(t, "msg-42", p.lastInput.SourceMessageID)
	assert.Equal(t, "现金销售", p.lastInput.BusinessScenario)
}

func TestRefine_NilPrevious(t *testing.T) {
	a := New(&mockProvider{})
	_, err := a.Refine(context.Background(), nil, "feedback")
	assert.Error(t, err)
}
