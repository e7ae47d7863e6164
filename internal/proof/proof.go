package proof

import (
	"fmt"
	"strconv"
	"strings"
)

// FactRef identifies an established fact a step may cite: an axiom by name,
// a hypothesis by index, or an earlier step by position.
type FactRef string

const (
	axiomPrefix = "axiom:"
	hypPrefix   = "hyp:"
	stepPrefix  = "step:"
)

// AxiomRef cites a session axiom by name.
func AxiomRef(name string) FactRef { return FactRef(axiomPrefix + name) }

// HypRef cites a proof-local hypothesis by index.
func HypRef(i int) FactRef { return FactRef(hypPrefix + strconv.Itoa(i)) }

// StepRef cites an earlier step by position.
func StepRef(pos int) FactRef { return FactRef(stepPrefix + strconv.Itoa(pos)) }

// StepIndex returns the cited step position, or ok=false if the ref does
// not cite a step.
func (r FactRef) StepIndex() (int, bool) {
	rest, found := strings.CutPrefix(string(r), stepPrefix)
	if !found {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return i, true
}

func (r FactRef) String() string { return string(r) }

// Justification records how a step's claim is licensed: a rule name and
// the prior facts the rule is applied to.
type Justification struct {
	Rule string
	Refs []FactRef
}

// Step is one inference in a proof. Its validity flag is set exactly once,
// by the verifier.
type Step struct {
	Position int
	Claim    Statement
	Just     Justification

	valid bool
}

// Valid reports whether the verifier accepted this step. Meaningful only
// after verification.
func (s *Step) Valid() bool { return s.valid }

func (s *Step) String() string {
	if len(s.Just.Refs) == 0 {
		return fmt.Sprintf("%d. %s  [%s]", s.Position, s.Claim, s.Just.Rule)
	}
	refs := make([]string, len(s.Just.Refs))
	for i, r := range s.Just.Refs {
		refs[i] = string(r)
	}
	return fmt.Sprintf("%d. %s  [%s: %s]", s.Position, s.Claim, s.Just.Rule, strings.Join(refs, ", "))
}

// Proof is an ordered sequence of steps attached to a goal statement,
// together with hypotheses assumed true for this proof only. A proof is
// owned by the theorem that declares it and is never shared.
type Proof struct {
	Goal Statement

	hyps  []Statement
	steps []*Step
}

// NewProof creates an empty proof for the given goal.
func NewProof(goal Statement) *Proof {
	return &Proof{Goal: goal}
}

// Assume adds a hypothesis, valid only within this proof's verification,
// and returns its citable reference.
func (p *Proof) Assume(st Statement) FactRef {
	p.hyps = append(p.hyps, st)
	return HypRef(len(p.hyps) - 1)
}

// Hypotheses returns the proof-local assumptions in declaration order.
func (p *Proof) Hypotheses() []Statement { return p.hyps }

// AddStep appends a step claiming st, justified by the named rule applied
// to the cited facts, and returns the step's citable reference.
func (p *Proof) AddStep(st Statement, rule string, refs ...FactRef) FactRef {
	step := &Step{
		Position: len(p.steps),
		Claim:    st,
		Just:     Justification{Rule: rule, Refs: refs},
	}
	p.steps = append(p.steps, step)
	return StepRef(step.Position)
}

// Steps returns the proof's steps in order.
func (p *Proof) Steps() []*Step { return p.steps }

func (p *Proof) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "goal: %s\n", p.Goal)
	for i, h := range p.hyps {
		fmt.Fprintf(&sb, "assume %d: %s\n", i, h)
	}
	for _, s := range p.steps {
		sb.WriteString(s.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
