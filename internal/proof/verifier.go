package proof

import (
	"fmt"

	"go.uber.org/zap"
)

// DefaultMaxSteps bounds pathological proof lengths unless overridden.
const DefaultMaxSteps = 1000

// Verifier checks proofs against a session's axioms. A verifier is safe
// for concurrent use: every Check call builds its own private fact
// registry, and the session is read-only during verification.
type Verifier struct {
	session  *Session
	rules    map[string]RuleFunc
	maxSteps int
	log      *zap.Logger
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithMaxSteps sets the step count ceiling. Zero disables the ceiling.
func WithMaxSteps(n int) Option {
	return func(v *Verifier) { v.maxSteps = n }
}

// WithLogger attaches a logger for per-step debug output.
func WithLogger(log *zap.Logger) Option {
	return func(v *Verifier) { v.log = log }
}

// WithRule installs or overrides a named inference rule.
func WithRule(name string, fn RuleFunc) Option {
	return func(v *Verifier) { v.rules[name] = fn }
}

// NewVerifier creates a verifier over the given session with the built-in
// rule table.
func NewVerifier(session *Session, opts ...Option) *Verifier {
	v := &Verifier{
		session:  session,
		rules:    defaultRules(),
		maxSteps: DefaultMaxSteps,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Check walks the proof's steps in order, maintaining an accumulating fact
// registry, and renders a verdict. It short-circuits on the first failing
// step, so the reported failing position is always the earliest one.
// Logical failure is encoded in the Result, never returned as an error.
func (v *Verifier) Check(p *Proof) Result {
	log := v.log.With(zap.String("session", v.session.ID()))

	steps := p.Steps()
	if v.maxSteps > 0 && len(steps) > v.maxSteps {
		return failure(NoFailingStep, ReasonProofTooLong,
			fmt.Sprintf("%d steps exceeds ceiling of %d", len(steps), v.maxSteps), nil)
	}

	// Per-call fact registry, seeded with global axioms and this proof's
	// hypotheses. Discarded when Check returns.
	registry := make(map[FactRef]Statement)
	for _, ax := range v.session.Axioms() {
		registry[AxiomRef(ax.Name)] = ax.Statement
	}
	for i, h := range p.Hypotheses() {
		registry[HypRef(i)] = h
	}

	rc := &RuleContext{Eval: v.session.EvalContext(nil)}
	var trace []FactRef

	for _, step := range steps {
		facts, badRef, err := v.resolveRefs(registry, step)
		if err != nil {
			log.Debug("step citation failed",
				zap.Int("step", step.Position),
				zap.String("ref", string(badRef)),
				zap.Error(err))
			return failure(step.Position, ReasonForwardReference, err.Error(), trace)
		}
		trace = append(trace, step.Just.Refs...)

		rule, ok := v.rules[step.Just.Rule]
		if !ok {
			return failure(step.Position, ReasonUnknownRule,
				fmt.Sprintf("rule %q is not registered", step.Just.Rule), trace)
		}

		derived, err := rule(rc, step.Claim, facts)
		if err != nil {
			log.Debug("step rejected",
				zap.Int("step", step.Position),
				zap.String("rule", step.Just.Rule),
				zap.Error(err))
			return failure(step.Position, ReasonInvalidStep, err.Error(), trace)
		}
		if !derived.StructuralEq(step.Claim) {
			return failure(step.Position, ReasonInvalidStep,
				fmt.Sprintf("rule %q derives %q, step claims %q", step.Just.Rule, derived, step.Claim), trace)
		}

		step.valid = true
		registry[StepRef(step.Position)] = step.Claim
	}

	if len(steps) == 0 {
		return failure(NoFailingStep, ReasonGoalNotReached, "proof has no steps", trace)
	}
	final := steps[len(steps)-1]
	if !final.Claim.StructuralEq(p.Goal) {
		return failure(NoFailingStep, ReasonGoalNotReached,
			fmt.Sprintf("final claim %q does not match goal %q", final.Claim, p.Goal), trace)
	}

	log.Debug("proof verified", zap.Int("steps", len(steps)))
	return success(trace)
}

// resolveRefs resolves a step's citations against the current registry.
// Facts introduced by the step itself or later steps are out of scope, as
// are names the registry has never seen.
func (v *Verifier) resolveRefs(registry map[FactRef]Statement, step *Step) ([]Statement, FactRef, error) {
	facts := make([]Statement, 0, len(step.Just.Refs))
	for _, ref := range step.Just.Refs {
		if idx, isStep := ref.StepIndex(); isStep && idx >= step.Position {
			return nil, ref, fmt.Errorf("step %d cites step %d, which is not yet established", step.Position, idx)
		}
		st, ok := registry[ref]
		if !ok {
			return nil, ref, fmt.Errorf("step %d cites unknown fact %q", step.Position, ref)
		}
		facts = append(facts, st)
	}
	return facts, "", nil
}
