package validate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/accountflow/accountflow/internal/formula"
	"github.com/accountflow/accountflow/internal/model"
)

// balanceTolerance is the largest debit/credit difference still treated
// as balanced, absorbing rounding from resolved formulas.
var balanceTolerance = decimal.RequireFromString("0.01")

// JournalEntry checks a concrete entry: both sides present, per-line
// fields sane, and debit total equal to credit total. A side containing
// any formula line has an indeterminate total, so the balance check is
// skipped — balance can only be verified once formulas are resolved.
func JournalEntry(entry model.JournalEntry) Result {
	var r Result

	hasDebit := checkSide(&r, "debitSide", entry.DebitSide)
	hasCredit := checkSide(&r, "creditSide", entry.CreditSide)

	if hasDebit && hasCredit {
		debitTotal := sideTotal(entry.DebitSide)
		creditTotal := sideTotal(entry.CreditSide)
		if debitTotal != nil && creditTotal != nil {
			diff := debitTotal.Sub(*creditTotal)
			if diff.Abs().GreaterThan(balanceTolerance) {
				r.addError(Error{
					Type:    ErrUnbalanced,
					Message: fmt.Sprintf("debit total %s does not equal credit total %s", debitTotal.StringFixed(2), creditTotal.StringFixed(2)),
					Details: map[string]decimal.Decimal{
						"debitTotal":  *debitTotal,
						"creditTotal": *creditTotal,
						"difference":  diff,
					},
				})
			}
		}
	}

	if strings.TrimSpace(entry.Description) == "" {
		r.addWarning(Warning{
			Type:    WarnMissingDescription,
			Message: "entry has no description",
			Field:   "description",
		})
	}

	checkLines(&r, "debitSide", entry.DebitSide)
	checkLines(&r, "creditSide", entry.CreditSide)

	return r.finish()
}

// JournalRule checks a rule template: event name and both sides present,
// per-line fields sane, and every formula variable declared. Rules carry
// formulas rather than resolved amounts, so there is no balance check.
func JournalRule(rule model.JournalRule) Result {
	var r Result

	if strings.TrimSpace(rule.EventName) == "" {
		r.addError(Error{
			Type:    ErrMissingField,
			Message: "rule has no event name",
			Field:   "eventName",
		})
	}

	hasDebit := checkSide(&r, "debitSide", rule.DebitSide)
	hasCredit := checkSide(&r, "creditSide", rule.CreditSide)
	if hasDebit {
		checkLines(&r, "debitSide", rule.DebitSide)
	}
	if hasCredit {
		checkLines(&r, "creditSide", rule.CreditSide)
	}

	used := RuleVariables(rule)
	if len(used) > 0 && len(rule.Variables) == 0 {
		r.addWarning(Warning{
			Type:    WarnUndeclaredVariables,
			Message: fmt.Sprintf("formulas use variables %s but the rule declares none", strings.Join(used, ", ")),
			Field:   "variables",
		})
	}

	return r.finish()
}

// Subjects checks a subject set produced by one analysis: every subject
// needs a code, a name, and a direction, and codes must be unique within
// the set.
func Subjects(subjects []model.AccountingSubject) Result {
	var r Result

	seen := make(map[string]bool)
	for i, s := range subjects {
		field := fmt.Sprintf("subjects[%d]", i)
		code := strings.TrimSpace(s.Code)

		if code == "" {
			r.addError(Error{
				Type:    ErrMissingField,
				Message: fmt.Sprintf("subject %q has no code", s.Name),
				Field:   field + ".code",
			})
		} else if seen[code] {
			r.addError(Error{
				Type:    ErrOther,
				Message: fmt.Sprintf("duplicate subject code %q", code),
				Field:   field + ".code",
			})
		} else {
			seen[code] = true
		}

		if strings.TrimSpace(s.Name) == "" {
			r.addError(Error{
				Type:    ErrMissingField,
				Message: fmt.Sprintf("subject %q has no name", code),
				Field:   field + ".name",
			})
		}

		if s.Direction == "" {
			r.addError(Error{
				Type:    ErrMissingField,
				Message: fmt.Sprintf("subject %q has no balance direction", code),
				Field:   field + ".direction",
			})
		}
	}

	return r.finish()
}

// dangerousFragments is a surface-level denylist for formula templates.
// The arithmetic evaluator rejects anything beyond numbers and operators
// anyway; this catches obviously hostile templates earlier, with a
// clearer message.
var dangerousFragments = []string{
	"eval(",
	"exec(",
	"function",
	"=>",
	"require(",
	"import ",
	"process.",
	"`",
	";",
}

// Formula checks an amount-formula template before any substitution:
// placeholder braces must pair up, and the template must not contain
// code-like fragments.
func Formula(f string) Result {
	var r Result

	if strings.Count(f, "{{") != strings.Count(f, "}}") {
		r.addError(Error{
			Type:    ErrOther,
			Message: fmt.Sprintf("unbalanced placeholder braces in %q", f),
		})
	}

	lower := strings.ToLower(f)
	for _, frag := range dangerousFragments {
		if strings.Contains(lower, frag) {
			r.addError(Error{
				Type:    ErrOther,
				Message: fmt.Sprintf("formula %q contains forbidden fragment %q", f, frag),
			})
		}
	}

	return r.finish()
}

// RuleVariables collects the formula variables referenced across both
// sides of a rule, de-duplicated, in first-occurrence order.
func RuleVariables(rule model.JournalRule) []string {
	var names []string
	seen := make(map[string]bool)
	for _, side := range []model.JournalEntrySide{rule.DebitSide, rule.CreditSide} {
		for _, line := range side.Entries {
			for _, v := range formula.ExtractVariables(line.AmountFormula) {
				if !seen[v] {
					seen[v] = true
					names = append(names, v)
				}
			}
		}
	}
	return names
}

// checkSide reports whether the side has any lines, adding a
// MISSING_FIELD error when it does not.
func checkSide(r *Result, field string, side model.JournalEntrySide) bool {
	if len(side.Entries) == 0 {
		r.addError(Error{
			Type:    ErrMissingField,
			Message: fmt.Sprintf("%s has no entries", field),
			Field:   field,
		})
		return false
	}
	return true
}

// sideTotal sums the fixed amounts of a side. It returns nil when any
// line carries a formula instead of a fixed amount, since the side's
// total cannot be known without resolving.
func sideTotal(side model.JournalEntrySide) *decimal.Decimal {
	total := decimal.Zero
	for _, line := range side.Entries {
		if line.Amount == nil {
			if line.AmountFormula != "" {
				return nil
			}
			continue
		}
		total = total.Add(*line.Amount)
	}
	return &total
}

func checkLines(r *Result, field string, side model.JournalEntrySide) {
	for i, line := range side.Entries {
		lineField := fmt.Sprintf("%s.entries[%d]", field, i)

		if strings.TrimSpace(line.AccountCode) == "" {
			r.addError(Error{
				Type:    ErrMissingField,
				Message: fmt.Sprintf("%s has no account code", lineField),
				Field:   lineField + ".accountCode",
			})
		}

		if line.Amount == nil && line.AmountFormula == "" {
			r.addWarning(Warning{
				Type:    WarnMissingAmount,
				Message: fmt.Sprintf("%s has neither an amount nor a formula", lineField),
				Field:   lineField,
			})
		}

		if line.Amount != nil && line.Amount.IsNegative() {
			r.addError(Error{
				Type:    ErrInvalidAmount,
				Message: fmt.Sprintf("%s has negative amount %s", lineField, line.Amount.StringFixed(2)),
				Field:   lineField + ".amount",
			})
		}
	}
}
