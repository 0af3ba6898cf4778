package formula

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Evaluate computes an arithmetic expression over decimals. The grammar is
// deliberately tiny — decimal literals, + - * /, unary minus, and
// parentheses. Any other token is an error, so substituted formulas can
// never smuggle in identifiers or calls.
//
//	expression → term (('+' | '-') term)*
//	term       → factor (('*' | '/') factor)*
//	factor     → NUMBER | '-' factor | '(' expression ')'
func Evaluate(expr string) (decimal.Decimal, error) {
	p := &exprParser{input: expr}
	result, err := p.parseExpression()
	if err != nil {
		return decimal.Zero, err
	}
	if !p.atEnd() {
		return decimal.Zero, fmt.Errorf("unexpected character %q at position %d", p.peek(), p.pos)
	}
	return result, nil
}

type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *exprParser) atEnd() bool {
	p.skipSpaces()
	return p.pos >= len(p.input)
}

func (p *exprParser) peek() byte {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *exprParser) advance() byte {
	ch := p.peek()
	if ch != 0 {
		p.pos++
	}
	return ch
}

func (p *exprParser) parseExpression() (decimal.Decimal, error) {
	left, err := p.parseTerm()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return decimal.Zero, err
		}
		if op == '+' {
			left = left.Add(right)
		} else {
			left = left.Sub(right)
		}
	}
}

func (p *exprParser) parseTerm() (decimal.Decimal, error) {
	left, err := p.parseFactor()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		op := p.peek()
		if op != '*' && op != '/' {
			return left, nil
		}
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return decimal.Zero, err
		}
		if op == '*' {
			left = left.Mul(right)
		} else {
			if right.IsZero() {
				return decimal.Zero, fmt.Errorf("division by zero")
			}
			left = left.Div(right)
		}
	}
}

func (p *exprParser) parseFactor() (decimal.Decimal, error) {
	switch ch := p.peek(); {
	case ch == '(':
		p.advance()
		result, err := p.parseExpression()
		if err != nil {
			return decimal.Zero, err
		}
		if p.peek() != ')' {
			return decimal.Zero, fmt.Errorf("expected ')' at position %d", p.pos)
		}
		p.advance()
		return result, nil
	case ch == '-':
		p.advance()
		operand, err := p.parseFactor()
		if err != nil {
			return decimal.Zero, err
		}
		return operand.Neg(), nil
	case ch >= '0' && ch <= '9' || ch == '.':
		return p.parseNumber()
	case ch == 0:
		return decimal.Zero, fmt.Errorf("unexpected end of expression")
	default:
		return decimal.Zero, fmt.Errorf("unexpected character %q at position %d", ch, p.pos)
	}
}

func (p *exprParser) parseNumber() (decimal.Decimal, error) {
	p.skipSpaces()
	start := p.pos

	sawDigit := false
	sawDot := false
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if ch >= '0' && ch <= '9' {
			sawDigit = true
			p.pos++
		} else if ch == '.' && !sawDot {
			sawDot = true
			p.pos++
		} else {
			break
		}
	}
	if !sawDigit {
		return decimal.Zero, fmt.Errorf("expected number at position %d", start)
	}

	num, err := decimal.NewFromString(p.input[start:p.pos])
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q: %w", p.input[start:p.pos], err)
	}
	return num, nil
}
