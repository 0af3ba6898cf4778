// Package validate checks accounting subjects, journal rules, entries,
// and amount formulas. Every check accumulates problems into a Result
// instead of failing on the first one; only errors block, warnings never
// affect validity.
package validate

import "github.com/shopspring/decimal"

// ErrorType tags a blocking validation error.
type ErrorType string

const (
	ErrUnbalanced     ErrorType = "UNBALANCED"
	ErrInvalidAccount ErrorType = "INVALID_ACCOUNT"
	ErrInvalidAmount  ErrorType = "INVALID_AMOUNT"
	ErrMissingField   ErrorType = "MISSING_FIELD"
	ErrOther          ErrorType = "OTHER"
)

// WarningType tags a non-blocking validation warning.
type WarningType string

const (
	WarnMissingDescription  WarningType = "MISSING_DESCRIPTION"
	WarnMissingAmount       WarningType = "MISSING_AMOUNT"
	WarnUndeclaredVariables WarningType = "UNDECLARED_VARIABLES"
)

// Error is one blocking problem.
type Error struct {
	Type    ErrorType
	Message string
	Field   string
	Details map[string]decimal.Decimal
}

// Warning is one non-blocking problem.
type Warning struct {
	Type    WarningType
	Message string
	Field   string
}

// Result accumulates the outcome of one validation pass.
type Result struct {
	Valid    bool
	Errors   []Error
	Warnings []Warning
}

func (r *Result) addError(e Error) {
	r.Errors = append(r.Errors, e)
}

func (r *Result) addWarning(w Warning) {
	r.Warnings = append(r.Warnings, w)
}

// finish sets Valid from the accumulated errors and returns the result.
func (r *Result) finish() Result {
	r.Valid = len(r.Errors) == 0
	return *r
}

// Messages returns every error message, in order. Useful for building
// aggregate failure messages.
func (r Result) Messages() []string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return msgs
}
