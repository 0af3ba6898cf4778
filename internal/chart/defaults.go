package chart

import "github.com/accountflow/accountflow/internal/model"

// DefaultChart returns a starter chart of accounts based on the Chinese
// small-enterprise account standard, which is what the analyzer's sample
// scenarios assume.
func DefaultChart() []model.Account {
	return []model.Account{
		{ID: "a-1001", Code: "1001", Name: "库存现金", Type: model.TypeAsset, Direction: model.DirectionDebit},
		{ID: "a-1002", Code: "1002", Name: "银行存款", Type: model.TypeAsset, Direction: model.DirectionDebit},
		{ID: "a-1122", Code: "1122", Name: "应收账款", Type: model.TypeAsset, Direction: model.DirectionDebit},
		{ID: "a-1403", Code: "1403", Name: "原材料", Type: model.TypeAsset, Direction: model.DirectionDebit},
		{ID: "a-1405", Code: "1405", Name: "库存商品", Type: model.TypeAsset, Direction: model.DirectionDebit},
		{ID: "a-2202", Code: "2202", Name: "应付账款", Type: model.TypeLiability, Direction: model.DirectionCredit},
		{ID: "a-2221", Code: "2221", Name: "应交税费", Type: model.TypeLiability, Direction: model.DirectionCredit},
		{ID: "a-4001", Code: "4001", Name: "实收资本", Type: model.TypeEquity, Direction: model.DirectionCredit},
		{ID: "a-6001", Code: "6001", Name: "主营业务收入", Type: model.TypeRevenue, Direction: model.DirectionCredit},
		{ID: "a-6401", Code: "6401", Name: "主营业务成本", Type: model.TypeExpense, Direction: model.DirectionDebit},
		{ID: "a-6602", Code: "6602", Name: "管理费用", Type: model.TypeExpense, Direction: model.DirectionDebit},
	}
}
