package validate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountflow/accountflow/internal/model"
)

func amt(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func side(lines ...model.JournalEntryLine) model.JournalEntrySide {
	return model.JournalEntrySide{Entries: lines}
}

func errTypes(r Result) []ErrorType {
	types := make([]ErrorType, len(r.Errors))
	for i, e := range r.Errors {
		types[i] = e.Type
	}
	return types
}

func TestJournalEntry_Balanced(t *testing.T) {
	entry := model.JournalEntry{
		Description: "销售商品",
		DebitSide:   side(model.JournalEntryLine{AccountCode: "1001", Amount: amt("1000")}),
		CreditSide:  side(model.JournalEntryLine{AccountCode: "6001", Amount: amt("1000")}),
	}

	r := JournalEntry(entry)
	assert.True(t, r.Valid)
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)
}

func TestJournalEntry_Unbalanced(t *testing.T) {
	entry := model.JournalEntry{
		Description: "销售商品",
		DebitSide:   side(model.JournalEntryLine{AccountCode: "1001", Amount: amt("1000")}),
		CreditSide:  side(model.JournalEntryLine{AccountCode: "6001", Amount: amt("900")}),
	}

	r := JournalEntry(entry)
	assert.False(t, r.Valid)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, ErrUnbalanced, r.Errors[0].Type)
	assert.True(t, r.Errors[0].Details["difference"].Equal(decimal.RequireFromString("100")))
	assert.True(t, r.Errors[0].Details["debitTotal"].Equal(decimal.RequireFromString("1000")))
	assert.True(t, r.Errors[0].Details["creditTotal"].Equal(decimal.RequireFromString("900")))
}

func TestJournalEntry_WithinTolerance(t *testing.T) {
	entry := model.JournalEntry{
		Description: "rounding",
		DebitSide:   side(model.JournalEntryLine{AccountCode: "1001", Amount: amt("100.00")}),
		CreditSide:  side(model.JournalEntryLine{AccountCode: "6001", Amount: amt("99.99")}),
	}

	r := JournalEntry(entry)
	assert.True(t, r.Valid, "a 0.01 difference is within tolerance")
}

func TestJournalEntry_FormulaSkipsBalanceCheck(t *testing.T) {
	entry := model.JournalEntry{
		Description: "template legs",
		DebitSide:   side(model.JournalEntryLine{AccountCode: "1001", AmountFormula: "{{amount}}"}),
		CreditSide:  side(model.JournalEntryLine{AccountCode: "6001", Amount: amt("500")}),
	}

	r := JournalEntry(entry)
	assert.True(t, r.Valid)
	assert.NotContains(t, errTypes(r), ErrUnbalanced)
}

func TestJournalEntry_MissingSides(t *testing.T) {
	r := JournalEntry(model.JournalEntry{Description: "empty"})
	assert.False(t, r.Valid)
	require.Len(t, r.Errors, 2)
	assert.Equal(t, ErrMissingField, r.Errors[0].Type)
	assert.Equal(t, "debitSide", r.Errors[0].Field)
	assert.Equal(t, ErrMissingField, r.Errors[1].Type)
	assert.Equal(t, "creditSide", r.Errors[1].Field)
}

func TestJournalEntry_MissingDescriptionWarns(t *testing.T) {
	entry := model.JournalEntry{
		DebitSide:  side(model.JournalEntryLine{AccountCode: "1001", Amount: amt("10")}),
		CreditSide: side(model.JournalEntryLine{AccountCode: "6001", Amount: amt("10")}),
	}

	r := JournalEntry(entry)
	assert.True(t, r.Valid, "warnings never affect validity")
	require.Len(t, r.Warnings, 1)
	assert.Equal(t, WarnMissingDescription, r.Warnings[0].Type)
}

func TestJournalEntry_LineChecks(t *testing.T) {
	entry := model.JournalEntry{
		Description: "bad lines",
		DebitSide: side(
			model.JournalEntryLine{AccountCode: "", Amount: amt("10")},
			model.JournalEntryLine{AccountCode: "1002", Amount: amt("-5")},
		),
		CreditSide: side(model.JournalEntryLine{AccountCode: "6001"}),
	}

	r := JournalEntry(entry)
	assert.False(t, r.Valid)
	assert.Contains(t, errTypes(r), ErrMissingField)
	assert.Contains(t, errTypes(r), ErrInvalidAmount)

	var warned bool
	for _, w := range r.Warnings {
		if w.Type == WarnMissingAmount {
			warned = true
		}
	}
	assert.True(t, warned, "line with neither amount nor formula should warn")
}

func TestJournalRule_Valid(t *testing.T) {
	rule := model.JournalRule{
		EventName: "销售收款",
		DebitSide: side(model.JournalEntryLine{AccountCode: "1001", AmountFormula: "{{amount}}"}),
		CreditSide: side(
			model.JournalEntryLine{AccountCode: "6001", AmountFormula: "{{amount}}/1.13"},
			model.JournalEntryLine{AccountCode: "2221", AmountFormula: "{{amount}}*0.13/1.13"},
		),
		Variables: []string{"amount"},
	}

	r := JournalRule(rule)
	assert.True(t, r.Valid)
	assert.Empty(t, r.Warnings)
}

func TestJournalRule_MissingEventName(t *testing.T) {
	rule := model.JournalRule{
		DebitSide:  side(model.JournalEntryLine{AccountCode: "1001", AmountFormula: "{{x}}"}),
		CreditSide: side(model.JournalEntryLine{AccountCode: "6001", AmountFormula: "{{x}}"}),
	}

	r := JournalRule(rule)
	assert.False(t, r.Valid)
	require.NotEmpty(t, r.Errors)
	assert.Equal(t, "eventName", r.Errors[0].Field)
}

func TestJournalRule_UndeclaredVariablesWarn(t *testing.T) {
	rule := model.JournalRule{
		EventName:  "采购入库",
		DebitSide:  side(model.JournalEntryLine{AccountCode: "1403", AmountFormula: "{{cost}}"}),
		CreditSide: side(model.JournalEntryLine{AccountCode: "2202", AmountFormula: "{{cost}}"}),
	}

	r := JournalRule(rule)
	assert.True(t, r.Valid)
	require.Len(t, r.Warnings, 1)
	assert.Equal(t, WarnUndeclaredVariables, r.Warnings[0].Type)
	assert.Contains(t, r.Warnings[0].Message, "cost")
}

func TestJournalRule_NoBalanceCheck(t *testing.T) {
	rule := model.JournalRule{
		EventName:  "lopsided",
		DebitSide:  side(model.JournalEntryLine{AccountCode: "1001", Amount: amt("100")}),
		CreditSide: side(model.JournalEntryLine{AccountCode: "6001", Amount: amt("1")}),
	}

	r := JournalRule(rule)
	assert.NotContains(t, errTypes(r), ErrUnbalanced)
}

func TestSubjects_Valid(t *testing.T) {
	r := Subjects([]model.AccountingSubject{
		{Code: "1001", Name: "库存现金", Direction: model.DirectionDebit},
		{Code: "6001", Name: "主营业务收入", Direction: model.DirectionCredit},
	})
	assert.True(t, r.Valid)
	assert.Empty(t, r.Warnings)
}

func TestSubjects_DuplicateCodes(t *testing.T) {
	r := Subjects([]model.AccountingSubject{
		{Code: "1001", Name: "库存现金", Direction: model.DirectionDebit},
		{Code: "1001", Name: "现金", Direction: model.DirectionDebit},
	})
	assert.False(t, r.Valid)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, ErrOther, r.Errors[0].Type)
	assert.Contains(t, r.Errors[0].Message, "duplicate")
}

func TestSubjects_MissingFields(t *testing.T) {
	r := Subjects([]model.AccountingSubject{{Code: "", Name: "", Direction: ""}})
	assert.False(t, r.Valid)
	assert.Len(t, r.Errors, 3)
	for _, e := range r.Errors {
		assert.Equal(t, ErrMissingField, e.Type)
	}
}

func TestFormula(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		valid   bool
	}{
		{"plain", "{{amount}} * 1.13", true},
		{"no placeholders", "100 + 200", true},
		{"unbalanced braces", "{{amount} * 2", false},
		{"eval", "eval(1)", false},
		{"arrow function", "() => 1", false},
		{"import", "import x", false},
		{"statement separator", "1; 2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Formula(tt.formula)
			assert.Equal(t, tt.valid, r.Valid)
		})
	}
}

func TestRuleVariables_Order(t *testing.T) {
	rule := model.JournalRule{
		EventName:  "x",
		DebitSide:  side(model.JournalEntryLine{AccountCode: "1", AmountFormula: "{{b}} + {{a}}"}),
		CreditSide: side(model.JournalEntryLine{AccountCode: "2", AmountFormula: "{{a}} + {{c}}"}),
	}
	assert.Equal(t, []string{"b", "a", "c"}, RuleVariables(rule))
}
