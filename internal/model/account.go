package model

// SubjectType classifies subjects and accounts by their role in the
// accounting equation.
type SubjectType string

const (
	TypeAsset     SubjectType = "asset"
	TypeLiability SubjectType = "liability"
	TypeEquity    SubjectType = "equity"
	TypeRevenue   SubjectType = "revenue"
	TypeExpense   SubjectType = "expense"
)

// Direction is the normal balance side of a subject or account.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
	DirectionBoth   Direction = "both"
)

// Account is one record in an existing chart of accounts. The analyzer
// only reads these; it never creates or mutates them.
type Account struct {
	ID        string      `json:"id"`
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Type      SubjectType `json:"type,omitempty"`
	Direction Direction   `json:"direction,omitempty"`
}
