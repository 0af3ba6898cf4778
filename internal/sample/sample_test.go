package sample

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountflow/accountflow/internal/model"
	"github.com/accountflow/accountflow/internal/validate"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func vatRule() model.JournalRule {
	return model.JournalRule{
		EventName: "销售商品",
		DebitSide: model.JournalEntrySide{Entries: []model.JournalEntryLine{
			{AccountCode: "1001", AmountFormula: "{{amount}}"},
		}},
		CreditSide: model.JournalEntrySide{Entries: []model.JournalEntryLine{
			{AccountCode: "6001", AmountFormula: "{{amount}}/1.13"},
			{AccountCode: "2221", AmountFormula: "{{amount}}*0.13/1.13"},
		}},
		Variables: []string{"amount"},
	}
}

func TestGenerate_VATSplit(t *testing.T) {
	txn := Generate(vatRule(), map[string]decimal.Decimal{"amount": dec("1130")})

	assert.Equal(t, GeneratedByTemplate, txn.GeneratedBy)
	assert.False(t, txn.GeneratedAt.IsZero())
	assert.Empty(t, txn.Warnings)
	assert.Equal(t, "销售商品", txn.Entry.Description)

	require.Len(t, txn.Entry.DebitSide.Entries, 1)
	require.Len(t, txn.Entry.CreditSide.Entries, 2)

	tol := dec("0.0001")
	assert.True(t, txn.Entry.DebitSide.Entries[0].Amount.Equal(dec("1130")))
	assert.True(t, txn.Entry.CreditSide.Entries[0].Amount.Sub(dec("1000")).Abs().LessThan(tol))
	assert.True(t, txn.Entry.CreditSide.Entries[1].Amount.Sub(dec("130")).Abs().LessThan(tol))
}

func TestGenerate_ResolvedEntryBalances(t *testing.T) {
	txn := Generate(vatRule(), map[string]decimal.Decimal{"amount": dec("2260")})

	r := validate.JournalEntry(txn.Entry)
	assert.True(t, r.Valid, "resolved sample should balance: %+v", r.Errors)
}

func TestGenerate_FixedAmountPassesThrough(t *testing.T) {
	fixed := dec("88.50")
	rule := model.JournalRule{
		EventName: "固定费用",
		DebitSide: model.JournalEntrySide{Entries: []model.JournalEntryLine{
			{AccountCode: "6602", Amount: &fixed},
		}},
		CreditSide: model.JournalEntrySide{Entries: []model.JournalEntryLine{
			{AccountCode: "1002", Amount: &fixed},
		}},
	}

	txn := Generate(rule, nil)
	assert.True(t, txn.Entry.DebitSide.Entries[0].Amount.Equal(fixed))
}

func TestGenerate_MissingVariableWarnsAndZeroes(t *testing.T) {
	txn := Generate(vatRule(), map[string]decimal.Decimal{})

	require.Len(t, txn.Warnings, 3)
	assert.Contains(t, txn.Warnings[0], "1001")
	for _, s := range [][]model.JournalEntryLine{txn.Entry.DebitSide.Entries, txn.Entry.CreditSide.Entries} {
		for _, line := range s {
			assert.True(t, line.Amount.IsZero())
		}
	}
}

func TestGenerate_PrefersEventDescription(t *testing.T) {
	rule := vatRule()
	rule.EventDescription = "客户现款购买商品并开具增值税发票"

	txn := Generate(rule, map[string]decimal.Decimal{"amount": dec("113")})
	assert.Equal(t, rule.EventDescription, txn.Entry.Description)
}
