// Package formula extracts and resolves {{variable}} amount templates
// used by journal rules.
package formula

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var placeholderPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// ExtractVariables returns the placeholder names in a formula,
// de-duplicated, in first-occurrence order. An empty formula yields nil.
func ExtractVariables(formula string) []string {
	if formula == "" {
		return nil
	}

	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(formula, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Substitute replaces every {{name}} occurrence with the variable's value
// as a decimal literal. Placeholders without a value are left in place, so
// the evaluator rejects the expression instead of guessing.
func Substitute(formula string, variables map[string]decimal.Decimal) string {
	return placeholderPattern.ReplaceAllStringFunc(formula, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := variables[name]
		if !ok {
			return match
		}
		return "(" + value.String() + ")"
	})
}

// Resolve computes the concrete amount for one journal line. A fixed
// amount always wins over a formula; a line with neither resolves to zero.
// A formula that fails to substitute or evaluate returns zero along with
// the error, so callers can surface it as a warning.
func Resolve(amountFormula string, amount *decimal.Decimal, variables map[string]decimal.Decimal) (decimal.Decimal, error) {
	if amount != nil {
		return *amount, nil
	}
	if amountFormula == "" {
		return decimal.Zero, nil
	}

	expr := Substitute(amountFormula, variables)
	result, err := Evaluate(expr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("resolving %q: %w", amountFormula, err)
	}
	return result, nil
}
