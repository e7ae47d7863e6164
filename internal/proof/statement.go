// Package proof implements the formal proof system: statements, axioms,
// proofs, theorems, and the step-by-step verifier.
//
// The statement hierarchy is a closed variant set (Equality, Inequality,
// Predicate) so the inference rules can pattern-match on the exact variant.
// All statement operations are pure functions of the statement's own data
// and the supplied evaluation context.
package proof

import (
	"fmt"
	"math"
)

// Truth is the three-valued outcome of evaluating a statement. Unknown means
// the statement could not be decided (unbound variables, unregistered
// predicate), which is distinct from False.
type Truth int

const (
	Unknown Truth = iota
	True
	False
)

func (t Truth) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	}
	return "unknown"
}

// PredicateFunc decides a named predicate over numeric arguments.
// Registered by external modules (number theory, symbolic) per the
// integration contract.
type PredicateFunc func(args []float64) bool

// EvalContext carries everything statement evaluation may consult:
// variable bindings, the registered predicate table, and the float
// comparison tolerance.
type EvalContext struct {
	Bindings   Bindings
	Predicates map[string]PredicateFunc

	// Epsilon is the absolute tolerance for float equality. Exact float
	// comparison is unreliable, so equality holds when |lhs-rhs| <= Epsilon.
	Epsilon float64
}

// NewEvalContext returns a context with the default tolerance and no
// bindings or predicates.
func NewEvalContext() *EvalContext {
	return &EvalContext{
		Bindings:   Bindings{},
		Predicates: map[string]PredicateFunc{},
		Epsilon:    DefaultEpsilon,
	}
}

// DefaultEpsilon is the documented tolerance for float equality.
const DefaultEpsilon = 1e-9

// Statement is an assertable proposition. Statements are immutable once
// constructed; their truth is determined purely by their own data plus the
// supplied evaluation context.
type Statement interface {
	// Evaluate attempts to decide the statement's truth under the context.
	// Returns Unknown rather than failing when required variables are
	// unbound or a predicate has no registered evaluator.
	Evaluate(ctx *EvalContext) Truth

	// StructuralEq is syntactic equality: same variant, same relation
	// kind, and same operand structure after canonical ordering of
	// commutative operands. Deliberately weaker than semantic equivalence.
	StructuralEq(other Statement) bool

	// FreeVars returns the sorted free variable names.
	FreeVars() []string

	String() string
}

// Rel identifies an inequality relation kind.
type Rel string

const (
	RelLt Rel = "<"
	RelLe Rel = "<="
	RelGt Rel = ">"
	RelGe Rel = ">="
	RelNe Rel = "!="
)

// Equality asserts that two expressions denote the same value.
type Equality struct {
	LHS  Expr
	RHS  Expr
	Desc string // optional human-readable description
}

// Inequality asserts an ordering or disequality between two expressions.
type Inequality struct {
	Kind Rel
	LHS  Expr
	RHS  Expr
	Desc string
}

// Predicate wraps a named predicate over one or more operands, for
// statements with no built-in evaluator (e.g. "is_prime(17)").
type Predicate struct {
	Name string
	Args []Expr
	Desc string
}

// Eq constructs an equality statement.
func Eq(lhs, rhs Expr) Equality { return Equality{LHS: lhs, RHS: rhs} }

// Ineq constructs an inequality statement.
func Ineq(kind Rel, lhs, rhs Expr) Inequality {
	return Inequality{Kind: kind, LHS: lhs, RHS: rhs}
}

// Pred constructs a predicate statement.
func Pred(name string, args ...Expr) Predicate {
	return Predicate{Name: name, Args: args}
}

func (s Equality) Evaluate(ctx *EvalContext) Truth {
	l, ok := s.LHS.Eval(ctx.Bindings)
	if !ok {
		return Unknown
	}
	r, ok := s.RHS.Eval(ctx.Bindings)
	if !ok {
		return Unknown
	}
	if math.Abs(l-r) <= ctx.Epsilon {
		return True
	}
	return False
}

func (s Equality) StructuralEq(other Statement) bool {
	o, ok := other.(Equality)
	if !ok {
		return false
	}
	// Equality is symmetric, so operands compare unordered.
	return (s.LHS.Equal(o.LHS) && s.RHS.Equal(o.RHS)) ||
		(s.LHS.Equal(o.RHS) && s.RHS.Equal(o.LHS))
}

func (s Equality) FreeVars() []string { return exprFreeVars(s.LHS, s.RHS) }

func (s Equality) String() string {
	return fmt.Sprintf("%s = %s", s.LHS, s.RHS)
}

func (s Inequality) Evaluate(ctx *EvalContext) Truth {
	l, ok := s.LHS.Eval(ctx.Bindings)
	if !ok {
		return Unknown
	}
	r, ok := s.RHS.Eval(ctx.Bindings)
	if !ok {
		return Unknown
	}
	var holds bool
	switch s.Kind {
	case RelLt:
		holds = l < r
	case RelLe:
		holds = l <= r
	case RelGt:
		holds = l > r
	case RelGe:
		holds = l >= r
	case RelNe:
		holds = math.Abs(l-r) > ctx.Epsilon
	default:
		return Unknown
	}
	if holds {
		return True
	}
	return False
}

func (s Inequality) StructuralEq(other Statement) bool {
	o, ok := other.(Inequality)
	if !ok || s.Kind != o.Kind {
		return false
	}
	if s.LHS.Equal(o.LHS) && s.RHS.Equal(o.RHS) {
		return true
	}
	// Disequality is symmetric; the ordering relations are not.
	if s.Kind == RelNe {
		return s.LHS.Equal(o.RHS) && s.RHS.Equal(o.LHS)
	}
	return false
}

func (s Inequality) FreeVars() []string { return exprFreeVars(s.LHS, s.RHS) }

func (s Inequality) String() string {
	return fmt.Sprintf("%s %s %s", s.LHS, s.Kind, s.RHS)
}

func (s Predicate) Evaluate(ctx *EvalContext) Truth {
	fn, ok := ctx.Predicates[s.Name]
	if !ok {
		return Unknown
	}
	vals := make([]float64, len(s.Args))
	for i, arg := range s.Args {
		v, ok := arg.Eval(ctx.Bindings)
		if !ok {
			return Unknown
		}
		vals[i] = v
	}
	if fn(vals) {
		return True
	}
	return False
}

func (s Predicate) StructuralEq(other Statement) bool {
	o, ok := other.(Predicate)
	if !ok || s.Name != o.Name || len(s.Args) != len(o.Args) {
		return false
	}
	for i := range s.Args {
		if !s.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

func (s Predicate) FreeVars() []string { return exprFreeVars(s.Args...) }

func (s Predicate) String() string {
	return fmt.Sprintf("%s(%s)", s.Name, formatArgs(s.Args))
}

// matchStatement unifies a pattern statement (whose variables act as schema
// placeholders) against a target statement, extending assign. It backs the
// axiom rule's equals-instantiation: "a = a" matches "5 = 5" under a := 5.
func matchStatement(pattern, target Statement, assign map[string]Expr) bool {
	switch p := pattern.(type) {
	case Equality:
		t, ok := target.(Equality)
		if !ok {
			return false
		}
		return matchExprPair(p.LHS, p.RHS, t.LHS, t.RHS, assign) ||
			matchExprPair(p.LHS, p.RHS, t.RHS, t.LHS, assign)
	case Inequality:
		t, ok := target.(Inequality)
		if !ok || p.Kind != t.Kind {
			return false
		}
		if matchExprPair(p.LHS, p.RHS, t.LHS, t.RHS, assign) {
			return true
		}
		if p.Kind == RelNe {
			return matchExprPair(p.LHS, p.RHS, t.RHS, t.LHS, assign)
		}
		return false
	case Predicate:
		t, ok := target.(Predicate)
		if !ok || p.Name != t.Name || len(p.Args) != len(t.Args) {
			return false
		}
		trial := copyAssign(assign)
		for i := range p.Args {
			if !matchExpr(p.Args[i], t.Args[i], trial) {
				return false
			}
		}
		for k, v := range trial {
			assign[k] = v
		}
		return true
	}
	return false
}

// substituteStatement replaces every occurrence of from with to on both
// sides of the statement.
func substituteStatement(s Statement, from, to Expr) Statement {
	switch st := s.(type) {
	case Equality:
		return Equality{LHS: st.LHS.Substitute(from, to), RHS: st.RHS.Substitute(from, to), Desc: st.Desc}
	case Inequality:
		return Inequality{Kind: st.Kind, LHS: st.LHS.Substitute(from, to), RHS: st.RHS.Substitute(from, to), Desc: st.Desc}
	case Predicate:
		args := make([]Expr, len(st.Args))
		for i, a := range st.Args {
			args[i] = a.Substitute(from, to)
		}
		return Predicate{Name: st.Name, Args: args, Desc: st.Desc}
	}
	return s
}

func copyAssign(assign map[string]Expr) map[string]Expr {
	out := make(map[string]Expr, len(assign))
	for k, v := range assign {
		out[k] = v
	}
	return out
}
