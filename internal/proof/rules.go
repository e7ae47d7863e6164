package proof

import "fmt"

// RuleContext gives rule functions access to the evaluation environment
// (predicate table, float tolerance) without exposing verifier state.
type RuleContext struct {
	Eval *EvalContext
}

// RuleFunc applies an inference rule to the resolved cited facts. It
// returns the derived statement (which the verifier then compares to the
// step's claim) or an error describing why the rule does not license the
// claim. Rule functions must be pure.
type RuleFunc func(rc *RuleContext, claim Statement, facts []Statement) (Statement, error)

// Built-in rule names.
const (
	RuleAxiom        = "axiom"
	RuleAssumption   = "assumption"
	RuleSubstitution = "substitution"
	RuleTransitivity = "transitivity"
	RuleArithmetic   = "arithmetic"
)

// defaultRules returns the built-in rule table. The table is an open
// strategy map: callers may extend it via WithRule without touching the
// verifier's control flow.
func defaultRules() map[string]RuleFunc {
	return map[string]RuleFunc{
		RuleAxiom:        ruleAxiom,
		RuleAssumption:   ruleAssumption,
		RuleSubstitution: ruleSubstitution,
		RuleTransitivity: ruleTransitivity,
		RuleArithmetic:   ruleArithmetic,
	}
}

// ruleAxiom licenses a claim that cites a single fact directly. The claim
// must equal the fact, or be an instance of it under a consistent variable
// assignment (so the schema "a = a" licenses "5 = 5" with a := 5).
func ruleAxiom(_ *RuleContext, claim Statement, facts []Statement) (Statement, error) {
	if len(facts) != 1 {
		return nil, fmt.Errorf("axiom rule cites exactly one fact, got %d", len(facts))
	}
	fact := facts[0]
	if fact.StructuralEq(claim) {
		return claim, nil
	}
	if matchStatement(fact, claim, map[string]Expr{}) {
		return claim, nil
	}
	return nil, fmt.Errorf("claim %q is not an instance of %q", claim, fact)
}

// ruleAssumption licenses a claim restating a cited hypothesis verbatim.
func ruleAssumption(_ *RuleContext, claim Statement, facts []Statement) (Statement, error) {
	if len(facts) == 0 {
		return nil, fmt.Errorf("assumption rule cites at least one fact")
	}
	for _, f := range facts {
		if f.StructuralEq(claim) {
			return claim, nil
		}
	}
	return nil, fmt.Errorf("claim %q restates none of the cited facts", claim)
}

// ruleSubstitution licenses a claim obtained from a cited fact by replacing
// equals for equals, using an equality among the cited facts. Citing a
// single equality also licenses its symmetric form.
func ruleSubstitution(_ *RuleContext, claim Statement, facts []Statement) (Statement, error) {
	if len(facts) == 0 {
		return nil, fmt.Errorf("substitution rule cites at least one fact")
	}
	// Unmodified facts count: equality compares unordered, so x = y
	// already licenses y = x.
	for _, f := range facts {
		if f.StructuralEq(claim) {
			return claim, nil
		}
	}
	var eqs []Equality
	for _, f := range facts {
		if e, ok := f.(Equality); ok {
			eqs = append(eqs, e)
		}
	}
	if len(eqs) == 0 {
		return nil, fmt.Errorf("substitution requires an equality among the cited facts")
	}
	for _, eq := range eqs {
		for _, f := range facts {
			candidates := []Statement{
				substituteStatement(f, eq.LHS, eq.RHS),
				substituteStatement(f, eq.RHS, eq.LHS),
			}
			for _, cand := range candidates {
				if cand.StructuralEq(claim) {
					return claim, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("claim %q is not a substitution instance of the cited facts", claim)
}

// link is an equality or a <=/<-normalized inequality, oriented left to
// right for chaining.
type link struct {
	lhs, rhs Expr
	kind     Rel // RelLt or RelLe when eq is false
	eq       bool
}

// asLink normalizes a statement for transitive chaining. Disequalities and
// predicates do not chain.
func asLink(s Statement) (link, bool) {
	switch t := s.(type) {
	case Equality:
		return link{lhs: t.LHS, rhs: t.RHS, eq: true}, true
	case Inequality:
		switch t.Kind {
		case RelLt, RelLe:
			return link{lhs: t.LHS, rhs: t.RHS, kind: t.Kind}, true
		case RelGt:
			return link{lhs: t.RHS, rhs: t.LHS, kind: RelLt}, true
		case RelGe:
			return link{lhs: t.RHS, rhs: t.LHS, kind: RelLe}, true
		}
	}
	return link{}, false
}

// orientations returns the usable directions of a link. Equalities chain in
// both directions; normalized inequalities only left to right.
func (l link) orientations() []link {
	if l.eq {
		return []link{l, {lhs: l.rhs, rhs: l.lhs, eq: true}}
	}
	return []link{l}
}

func (l link) sameAs(o link) bool {
	if l.eq != o.eq {
		return false
	}
	if l.eq {
		return (l.lhs.Equal(o.lhs) && l.rhs.Equal(o.rhs)) ||
			(l.lhs.Equal(o.rhs) && l.rhs.Equal(o.lhs))
	}
	return l.kind == o.kind && l.lhs.Equal(o.lhs) && l.rhs.Equal(o.rhs)
}

// ruleTransitivity licenses a claim chaining two equality or inequality
// facts that share an endpoint: a = b, b = c gives a = c; a < b, b <= c
// gives a < c; a = b, b < c gives a < c.
func ruleTransitivity(_ *RuleContext, claim Statement, facts []Statement) (Statement, error) {
	if len(facts) != 2 {
		return nil, fmt.Errorf("transitivity rule cites exactly two facts, got %d", len(facts))
	}
	first, ok := asLink(facts[0])
	if !ok {
		return nil, fmt.Errorf("fact %q does not chain transitively", facts[0])
	}
	second, ok := asLink(facts[1])
	if !ok {
		return nil, fmt.Errorf("fact %q does not chain transitively", facts[1])
	}
	want, ok := asLink(claim)
	if !ok {
		return nil, fmt.Errorf("claim %q is not an equality or ordering", claim)
	}
	// Try both fact orders and all legal orientations.
	pairs := [][2]link{{first, second}, {second, first}}
	for _, pair := range pairs {
		for _, a := range pair[0].orientations() {
			for _, b := range pair[1].orientations() {
				if !a.rhs.Equal(b.lhs) {
					continue
				}
				derived := link{lhs: a.lhs, rhs: b.rhs}
				switch {
				case a.eq && b.eq:
					derived.eq = true
				case a.eq:
					derived.kind = b.kind
				case b.eq:
					derived.kind = a.kind
				default:
					// Strictness wins when either link is strict.
					if a.kind == RelLt || b.kind == RelLt {
						derived.kind = RelLt
					} else {
						derived.kind = RelLe
					}
				}
				if derived.sameAs(want) {
					return claim, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("claim %q does not chain from the cited facts", claim)
}

// ruleArithmetic licenses a claim that is a direct numeric consequence of
// the cited facts. Cited equalities binding a variable to a value supply
// bindings; the claim must then evaluate to true. A claim that cannot be
// decided (unbound variables, unregistered predicate) is rejected.
func ruleArithmetic(rc *RuleContext, claim Statement, facts []Statement) (Statement, error) {
	bindings := Bindings{}
	for k, v := range rc.Eval.Bindings {
		bindings[k] = v
	}
	// Fixpoint over cited facts so x = y + 1 resolves once y is bound.
	for changed := true; changed; {
		changed = false
		for _, f := range facts {
			eq, ok := f.(Equality)
			if !ok {
				continue
			}
			if bindVar(eq.LHS, eq.RHS, bindings) || bindVar(eq.RHS, eq.LHS, bindings) {
				changed = true
			}
		}
	}
	ctx := &EvalContext{Bindings: bindings, Predicates: rc.Eval.Predicates, Epsilon: rc.Eval.Epsilon}
	switch claim.Evaluate(ctx) {
	case True:
		return claim, nil
	case False:
		return nil, fmt.Errorf("claim %q evaluates to false", claim)
	}
	return nil, fmt.Errorf("claim %q cannot be decided numerically", claim)
}

// bindVar binds v to the value of e when v is an unbound variable and e is
// evaluable. Reports whether a new binding was added.
func bindVar(v, e Expr, b Bindings) bool {
	name, ok := v.(Var)
	if !ok {
		return false
	}
	if _, bound := b[name.Name]; bound {
		return false
	}
	val, ok := e.Eval(b)
	if !ok {
		return false
	}
	b[name.Name] = val
	return true
}
