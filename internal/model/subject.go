package model

// AccountingSubject is a chart-of-accounts subject proposed by one
// analysis. Code is unique within the subject set of a single analysis.
type AccountingSubject struct {
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	Type        SubjectType `json:"type,omitempty"`
	Direction   Direction   `json:"direction,omitempty"`
	Description string      `json:"description,omitempty"`
	ParentCode  string      `json:"parentCode,omitempty"`

	// AccountID links the subject to an existing chart-of-accounts record.
	// Set once during post-processing, never mutated afterwards.
	AccountID string `json:"accountId,omitempty"`
}
