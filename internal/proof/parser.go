package proof

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseStatement parses a textual statement such as "2 + 2 = 4",
// "x <= y + 1", or "is_prime(17)". The unicode relation symbols
// ≠, ≤ and ≥ are accepted alongside !=, <= and >=.
func ParseStatement(src string) (Statement, error) {
	p := newParser(src)
	st, err := p.statement()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, p.errorf("unexpected %q after statement", p.rest())
	}
	return st, nil
}

// ParseExpr parses a bare arithmetic expression.
func ParseExpr(src string) (Expr, error) {
	p := newParser(src)
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, p.errorf("unexpected %q after expression", p.rest())
	}
	return e, nil
}

// parser is a small recursive-descent parser over a rune slice.
type parser struct {
	src []rune
	pos int
}

func newParser(src string) *parser {
	return &parser{src: []rune(src)}
}

func (p *parser) statement() (Statement, error) {
	p.skipSpace()

	// Predicate form: ident(args). Only valid at statement level, since
	// expressions have no function calls.
	if save := p.pos; p.peekIdent() {
		name := p.ident()
		p.skipSpace()
		if p.accept('(') {
			args, err := p.exprList()
			if err != nil {
				return nil, err
			}
			if !p.accept(')') {
				return nil, p.errorf("expected ')' in predicate %q", name)
			}
			p.skipSpace()
			if p.atEnd() {
				return Predicate{Name: name, Args: args}, nil
			}
		}
		p.pos = save
	}

	lhs, err := p.expr()
	if err != nil {
		return nil, err
	}
	rel, err := p.relation()
	if err != nil {
		return nil, err
	}
	rhs, err := p.expr()
	if err != nil {
		return nil, err
	}
	if rel == "=" {
		return Equality{LHS: lhs, RHS: rhs}, nil
	}
	return Inequality{Kind: rel, LHS: lhs, RHS: rhs}, nil
}

// relation consumes a relation operator, normalizing unicode forms.
func (p *parser) relation() (Rel, error) {
	p.skipSpace()
	switch {
	case p.acceptSeq("!="), p.accept('≠'):
		return RelNe, nil
	case p.acceptSeq("<="), p.accept('≤'):
		return RelLe, nil
	case p.acceptSeq(">="), p.accept('≥'):
		return RelGe, nil
	case p.accept('<'):
		return RelLt, nil
	case p.accept('>'):
		return RelGt, nil
	case p.accept('='):
		return "=", nil
	}
	return "", p.errorf("expected a relation operator at %q", p.rest())
}

func (p *parser) exprList() ([]Expr, error) {
	var args []Expr
	for {
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		p.skipSpace()
		if !p.accept(',') {
			return args, nil
		}
	}
}

func (p *parser) expr() (Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		switch {
		case p.accept('+'):
			right, err := p.term()
			if err != nil {
				return nil, err
			}
			left = Bin(OpAdd, left, right)
		case p.accept('-'):
			right, err := p.term()
			if err != nil {
				return nil, err
			}
			left = Bin(OpSub, left, right)
		default:
			return left, nil
		}
	}
}

func (p *parser) term() (Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		switch {
		case p.accept('*'):
			right, err := p.unary()
			if err != nil {
				return nil, err
			}
			left = Bin(OpMul, left, right)
		case p.accept('/'):
			right, err := p.unary()
			if err != nil {
				return nil, err
			}
			left = Bin(OpDiv, left, right)
		default:
			return left, nil
		}
	}
}

func (p *parser) unary() (Expr, error) {
	p.skipSpace()
	if p.accept('-') {
		e, err := p.unary()
		if err != nil {
			return nil, err
		}
		// Fold negation into literals; otherwise express as 0 - e.
		if n, ok := e.(Num); ok {
			return Num{Value: -n.Value}, nil
		}
		return Bin(OpSub, N(0), e), nil
	}
	return p.power()
}

func (p *parser) power() (Expr, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.accept('^') {
		// Right-associative.
		exp, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Bin(OpPow, base, exp), nil
	}
	return base, nil
}

func (p *parser) primary() (Expr, error) {
	p.skipSpace()
	if p.accept('(') {
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.accept(')') {
			return nil, p.errorf("expected ')' at %q", p.rest())
		}
		return e, nil
	}
	if p.peekDigit() {
		return p.number()
	}
	if p.peekIdent() {
		return V(p.ident()), nil
	}
	return nil, p.errorf("expected a number, variable, or '(' at %q", p.rest())
}

func (p *parser) number() (Expr, error) {
	start := p.pos
	for !p.atEnd() && (unicode.IsDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	text := string(p.src[start:p.pos])
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, p.errorf("invalid number %q", text)
	}
	return N(v), nil
}

func (p *parser) ident() string {
	start := p.pos
	for !p.atEnd() && (unicode.IsLetter(p.src[p.pos]) || unicode.IsDigit(p.src[p.pos]) || p.src[p.pos] == '_') {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func (p *parser) peekIdent() bool {
	return !p.atEnd() && (unicode.IsLetter(p.src[p.pos]) || p.src[p.pos] == '_')
}

func (p *parser) peekDigit() bool {
	return !p.atEnd() && (unicode.IsDigit(p.src[p.pos]) || p.src[p.pos] == '.')
}

func (p *parser) accept(r rune) bool {
	p.skipSpace()
	if !p.atEnd() && p.src[p.pos] == r {
		p.pos++
		return true
	}
	return false
}

func (p *parser) acceptSeq(s string) bool {
	p.skipSpace()
	runes := []rune(s)
	if p.pos+len(runes) > len(p.src) {
		return false
	}
	for i, r := range runes {
		if p.src[p.pos+i] != r {
			return false
		}
	}
	p.pos += len(runes)
	return true
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.src)
}

func (p *parser) rest() string {
	r := strings.TrimSpace(string(p.src[p.pos:]))
	if len(r) > 20 {
		r = r[:20] + "..."
	}
	return r
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("parse error at offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}
