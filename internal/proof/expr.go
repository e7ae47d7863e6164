package proof

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Bindings maps free variable names to numeric values for evaluation.
type Bindings map[string]float64

// Expr is an arithmetic expression appearing on either side of a Statement.
// Expressions are immutable once constructed.
type Expr interface {
	// Eval computes the numeric value of the expression under the given
	// bindings. ok is false when a free variable is unbound.
	Eval(b Bindings) (val float64, ok bool)

	// FreeVars collects the names of unbound variables into set.
	FreeVars(set map[string]bool)

	// Equal reports structural equality. Operands of commutative
	// operators (+, *) compare unordered.
	Equal(other Expr) bool

	// Substitute returns the expression with every subexpression
	// structurally equal to from replaced by to.
	Substitute(from, to Expr) Expr

	String() string
}

// Num is a numeric literal.
type Num struct {
	Value float64
}

// Var is a free variable reference.
type Var struct {
	Name string
}

// BinOp is a binary arithmetic operation.
type BinOp struct {
	Op    Op
	Left  Expr
	Right Expr
}

// Op identifies a binary arithmetic operator.
type Op string

const (
	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "*"
	OpDiv Op = "/"
	OpPow Op = "^"
)

// commutative reports whether operand order is irrelevant for the operator.
func (o Op) commutative() bool {
	return o == OpAdd || o == OpMul
}

// N is a convenience constructor for numeric literals.
func N(v float64) Num { return Num{Value: v} }

// V is a convenience constructor for variables.
func V(name string) Var { return Var{Name: name} }

// Bin is a convenience constructor for binary operations.
func Bin(op Op, left, right Expr) BinOp {
	return BinOp{Op: op, Left: left, Right: right}
}

func (n Num) Eval(Bindings) (float64, bool) { return n.Value, true }

func (n Num) FreeVars(map[string]bool) {}

func (n Num) Equal(other Expr) bool {
	o, ok := other.(Num)
	return ok && n.Value == o.Value
}

func (n Num) Substitute(from, to Expr) Expr {
	if n.Equal(from) {
		return to
	}
	return n
}

func (n Num) String() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

func (v Var) Eval(b Bindings) (float64, bool) {
	val, ok := b[v.Name]
	return val, ok
}

func (v Var) FreeVars(set map[string]bool) { set[v.Name] = true }

func (v Var) Equal(other Expr) bool {
	o, ok := other.(Var)
	return ok && v.Name == o.Name
}

func (v Var) Substitute(from, to Expr) Expr {
	if v.Equal(from) {
		return to
	}
	return v
}

func (v Var) String() string { return v.Name }

func (e BinOp) Eval(b Bindings) (float64, bool) {
	l, ok := e.Left.Eval(b)
	if !ok {
		return 0, false
	}
	r, ok := e.Right.Eval(b)
	if !ok {
		return 0, false
	}
	switch e.Op {
	case OpAdd:
		return l + r, true
	case OpSub:
		return l - r, true
	case OpMul:
		return l * r, true
	case OpDiv:
		if r == 0 {
			return 0, false
		}
		return l / r, true
	case OpPow:
		return math.Pow(l, r), true
	}
	return 0, false
}

func (e BinOp) FreeVars(set map[string]bool) {
	e.Left.FreeVars(set)
	e.Right.FreeVars(set)
}

func (e BinOp) Equal(other Expr) bool {
	o, ok := other.(BinOp)
	if !ok || e.Op != o.Op {
		return false
	}
	if e.Left.Equal(o.Left) && e.Right.Equal(o.Right) {
		return true
	}
	if e.Op.commutative() {
		return e.Left.Equal(o.Right) && e.Right.Equal(o.Left)
	}
	return false
}

func (e BinOp) Substitute(from, to Expr) Expr {
	if e.Equal(from) {
		return to
	}
	return BinOp{
		Op:    e.Op,
		Left:  e.Left.Substitute(from, to),
		Right: e.Right.Substitute(from, to),
	}
}

func (e BinOp) String() string {
	return fmt.Sprintf("%s %s %s", parenthesize(e.Left), e.Op, parenthesize(e.Right))
}

// parenthesize wraps nested operations so printed expressions re-parse
// unambiguously.
func parenthesize(e Expr) string {
	if _, ok := e.(BinOp); ok {
		return "(" + e.String() + ")"
	}
	return e.String()
}

// exprFreeVars returns the sorted free variable names of the given expressions.
func exprFreeVars(exprs ...Expr) []string {
	set := make(map[string]bool)
	for _, e := range exprs {
		if e != nil {
			e.FreeVars(set)
		}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// matchExpr attempts to unify a pattern expression (which may contain
// variables) against a target expression, accumulating a consistent
// variable assignment. Used by the axiom rule to check that a claim is an
// instance of a cited schema such as "a = a".
func matchExpr(pattern, target Expr, assign map[string]Expr) bool {
	switch p := pattern.(type) {
	case Var:
		if bound, ok := assign[p.Name]; ok {
			return bound.Equal(target)
		}
		assign[p.Name] = target
		return true
	case Num:
		return p.Equal(target)
	case BinOp:
		t, ok := target.(BinOp)
		if !ok || t.Op != p.Op {
			return false
		}
		if matchExprPair(p.Left, p.Right, t.Left, t.Right, assign) {
			return true
		}
		if p.Op.commutative() {
			return matchExprPair(p.Left, p.Right, t.Right, t.Left, assign)
		}
		return false
	}
	return false
}

func matchExprPair(pl, pr, tl, tr Expr, assign map[string]Expr) bool {
	// Trial assignment on a copy so a failed first-operand match does not
	// poison the commutative retry.
	trial := make(map[string]Expr, len(assign))
	for k, v := range assign {
		trial[k] = v
	}
	if !matchExpr(pl, tl, trial) || !matchExpr(pr, tr, trial) {
		return false
	}
	for k, v := range trial {
		assign[k] = v
	}
	return true
}

// formatArgs renders a comma-separated argument list.
func formatArgs(args []Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}
