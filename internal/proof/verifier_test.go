package proof

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// Reflexivity axiom instantiated at a concrete value: the schema "a = a"
// licenses the ground claim "5 = 5".
func TestVerifyAxiomInstantiation(t *testing.T) {
	s := NewSession()
	_, err := s.DeclareAxiom("reflexivity", Eq(V("a"), V("a")))
	require.NoError(t, err)

	p := NewProof(Eq(N(5), N(5)))
	p.AddStep(Eq(N(5), N(5)), RuleAxiom, AxiomRef("reflexivity"))

	res := NewVerifier(s).Check(p)
	assert.True(t, res.Success)
	assert.Equal(t, NoFailingStep, res.FailingStep)
	assert.Equal(t, ReasonNone, res.Reason)
	assert.Equal(t, []FactRef{AxiomRef("reflexivity")}, res.Trace)
}

// 2 + 2 = 5 via arithmetic citing nothing: evaluation decides against it.
func TestVerifyArithmeticRejectsFalseClaim(t *testing.T) {
	s := NewSession()
	claim := Eq(Bin(OpAdd, N(2), N(2)), N(5))
	p := NewProof(claim)
	p.AddStep(claim, RuleArithmetic)

	res := NewVerifier(s).Check(p)
	assert.False(t, res.Success)
	assert.Equal(t, 0, res.FailingStep)
	assert.Equal(t, ReasonInvalidStep, res.Reason)
}

func TestVerifyArithmeticAcceptsTrueClaim(t *testing.T) {
	s := NewSession()
	claim := Eq(Bin(OpAdd, N(2), N(2)), N(4))
	p := NewProof(claim)
	p.AddStep(claim, RuleArithmetic)

	res := NewVerifier(s).Check(p)
	assert.True(t, res.Success)
}

// Hypothesis x = y, then symmetry via substitution.
func TestVerifySymmetryFromHypothesis(t *testing.T) {
	s := NewSession()
	p := NewProof(Eq(V("y"), V("x")))
	h := p.Assume(Eq(V("x"), V("y")))
	s0 := p.AddStep(Eq(V("x"), V("y")), RuleAssumption, h)
	p.AddStep(Eq(V("y"), V("x")), RuleSubstitution, s0)

	res := NewVerifier(s).Check(p)
	assert.True(t, res.Success)
	for _, step := range p.Steps() {
		assert.True(t, step.Valid(), "step %d should be valid", step.Position)
	}
}

func TestDeclareAxiomDuplicateLeavesRegistryUnchanged(t *testing.T) {
	s := NewSession()
	_, err := s.DeclareAxiom("A", Eq(V("a"), V("a")))
	require.NoError(t, err)

	_, err = s.DeclareAxiom("A", Eq(N(1), N(1)))
	require.ErrorIs(t, err, ErrDuplicateName)

	axioms := s.Axioms()
	require.Len(t, axioms, 1)
	assert.True(t, axioms[0].Statement.StructuralEq(Eq(V("a"), V("a"))))
}

func TestVerifyForwardReference(t *testing.T) {
	s := NewSession()
	claim := Eq(N(1), N(1))
	p := NewProof(claim)
	// Step 0 cites step 1, which does not exist yet.
	p.AddStep(claim, RuleAxiom, StepRef(1))
	p.AddStep(claim, RuleArithmetic)

	res := NewVerifier(s).Check(p)
	assert.False(t, res.Success)
	assert.Equal(t, 0, res.FailingStep)
	assert.Equal(t, ReasonForwardReference, res.Reason)
}

func TestVerifySelfReferenceRejected(t *testing.T) {
	s := NewSession()
	claim := Eq(N(1), N(1))
	p := NewProof(claim)
	p.AddStep(claim, RuleAxiom, StepRef(0))

	res := NewVerifier(s).Check(p)
	assert.Equal(t, ReasonForwardReference, res.Reason)
	assert.Equal(t, 0, res.FailingStep)
}

func TestVerifyUnknownFactCitation(t *testing.T) {
	s := NewSession()
	claim := Eq(N(1), N(1))
	p := NewProof(claim)
	p.AddStep(claim, RuleAxiom, AxiomRef("no_such_axiom"))

	res := NewVerifier(s).Check(p)
	assert.False(t, res.Success)
	assert.Equal(t, ReasonForwardReference, res.Reason)
}

func TestVerifyUnknownRule(t *testing.T) {
	s := NewSession()
	claim := Eq(N(1), N(1))
	p := NewProof(claim)
	p.AddStep(claim, "modus_ponens")

	res := NewVerifier(s).Check(p)
	assert.Equal(t, ReasonUnknownRule, res.Reason)
	assert.Equal(t, 0, res.FailingStep)
}

func TestVerifyGoalNotReached(t *testing.T) {
	s := NewSession()
	p := NewProof(Eq(N(2), N(2)))
	p.AddStep(Eq(N(1), N(1)), RuleArithmetic)

	res := NewVerifier(s).Check(p)
	assert.False(t, res.Success)
	assert.Equal(t, NoFailingStep, res.FailingStep)
	assert.Equal(t, ReasonGoalNotReached, res.Reason)
}

func TestVerifyEmptyProof(t *testing.T) {
	s := NewSession()
	res := NewVerifier(s).Check(NewProof(Eq(N(1), N(1))))
	assert.Equal(t, ReasonGoalNotReached, res.Reason)
}

func TestVerifyProofTooLong(t *testing.T) {
	s := NewSession()
	claim := Eq(N(1), N(1))
	p := NewProof(claim)
	for i := 0; i < 5; i++ {
		p.AddStep(claim, RuleArithmetic)
	}

	res := NewVerifier(s, WithMaxSteps(3)).Check(p)
	assert.False(t, res.Success)
	assert.Equal(t, ReasonProofTooLong, res.Reason)
}

// The first failing step is reported even when later steps would also fail.
func TestVerifyShortCircuitsOnFirstFailure(t *testing.T) {
	s := NewSession()
	goal := Eq(N(1), N(2))
	p := NewProof(goal)
	p.AddStep(Eq(N(1), N(1)), RuleArithmetic)    // valid
	p.AddStep(Eq(N(1), N(2)), RuleArithmetic)    // invalid
	p.AddStep(Eq(N(3), N(4)), RuleArithmetic)    // also invalid, never reached
	p.AddStep(goal, RuleAxiom, AxiomRef("none")) // unresolvable, never reached

	res := NewVerifier(s).Check(p)
	assert.Equal(t, 1, res.FailingStep)
	assert.Equal(t, ReasonInvalidStep, res.Reason)
	steps := p.Steps()
	assert.True(t, steps[0].Valid())
	assert.False(t, steps[1].Valid())
	assert.False(t, steps[2].Valid())
}

func TestVerifyIsIdempotent(t *testing.T) {
	s := NewSession()
	_, err := s.DeclareAxiom("reflexivity", Eq(V("a"), V("a")))
	require.NoError(t, err)

	p := NewProof(Eq(N(5), N(5)))
	p.AddStep(Eq(N(5), N(5)), RuleAxiom, AxiomRef("reflexivity"))

	v := NewVerifier(s)
	first := v.Check(p)
	second := v.Check(p)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated verification differs (-first +second):\n%s", diff)
	}
}

func TestVerifyTransitivityChain(t *testing.T) {
	s := NewSession()
	_, err := s.DeclareAxiom("ab", Eq(V("a"), V("b")))
	require.NoError(t, err)
	_, err = s.DeclareAxiom("bc", Eq(V("b"), V("c")))
	require.NoError(t, err)

	p := NewProof(Eq(V("a"), V("c")))
	p.AddStep(Eq(V("a"), V("c")), RuleTransitivity, AxiomRef("ab"), AxiomRef("bc"))

	res := NewVerifier(s).Check(p)
	assert.True(t, res.Success, "detail: %s", res.Detail)
}

func TestVerifyTransitivityInequalities(t *testing.T) {
	s := NewSession()

	tests := []struct {
		name    string
		f1, f2  Statement
		claim   Statement
		success bool
	}{
		{"lt chains strict", Ineq(RelLt, V("a"), V("b")), Ineq(RelLt, V("b"), V("c")), Ineq(RelLt, V("a"), V("c")), true},
		{"le plus lt is strict", Ineq(RelLe, V("a"), V("b")), Ineq(RelLt, V("b"), V("c")), Ineq(RelLt, V("a"), V("c")), true},
		{"le plus le stays weak", Ineq(RelLe, V("a"), V("b")), Ineq(RelLe, V("b"), V("c")), Ineq(RelLt, V("a"), V("c")), false},
		{"gt normalizes", Ineq(RelGt, V("c"), V("b")), Ineq(RelGt, V("b"), V("a")), Ineq(RelGt, V("c"), V("a")), true},
		{"eq feeds ordering", Eq(V("a"), V("b")), Ineq(RelLt, V("b"), V("c")), Ineq(RelLt, V("a"), V("c")), true},
		{"no shared endpoint", Ineq(RelLt, V("a"), V("b")), Ineq(RelLt, V("c"), V("d")), Ineq(RelLt, V("a"), V("d")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProof(tt.claim)
			h1 := p.Assume(tt.f1)
			h2 := p.Assume(tt.f2)
			p.AddStep(tt.claim, RuleTransitivity, h1, h2)

			res := NewVerifier(s).Check(p)
			assert.Equal(t, tt.success, res.Success, "detail: %s", res.Detail)
		})
	}
}

func TestVerifySubstitutionIntoStatement(t *testing.T) {
	s := NewSession()
	p := NewProof(Ineq(RelLt, V("y"), N(10)))
	hx := p.Assume(Ineq(RelLt, V("x"), N(10)))
	hxy := p.Assume(Eq(V("x"), V("y")))
	p.AddStep(Ineq(RelLt, V("y"), N(10)), RuleSubstitution, hx, hxy)

	res := NewVerifier(s).Check(p)
	assert.True(t, res.Success, "detail: %s", res.Detail)
}

func TestVerifyArithmeticUsesCitedBindings(t *testing.T) {
	s := NewSession()
	_, err := s.DeclareAxiom("xval", Eq(V("x"), N(3)))
	require.NoError(t, err)

	claim := Eq(Bin(OpMul, V("x"), N(2)), N(6))
	p := NewProof(claim)
	p.AddStep(claim, RuleArithmetic, AxiomRef("xval"))

	res := NewVerifier(s).Check(p)
	assert.True(t, res.Success, "detail: %s", res.Detail)
}

func TestVerifyArithmeticUndecidableIsRejected(t *testing.T) {
	s := NewSession()
	claim := Eq(V("x"), N(3))
	p := NewProof(claim)
	p.AddStep(claim, RuleArithmetic)

	res := NewVerifier(s).Check(p)
	assert.False(t, res.Success)
	assert.Equal(t, ReasonInvalidStep, res.Reason)
}

func TestVerifyCustomRule(t *testing.T) {
	s := NewSession()
	always := func(_ *RuleContext, claim Statement, _ []Statement) (Statement, error) {
		return claim, nil
	}
	claim := Eq(N(0), N(1))
	p := NewProof(claim)
	p.AddStep(claim, "oracle")

	res := NewVerifier(s, WithRule("oracle", always)).Check(p)
	assert.True(t, res.Success)
}

// Independent proofs verify safely in parallel: each Check builds its own
// registry and the session is read-only after setup.
func TestVerifyConcurrent(t *testing.T) {
	s := NewSession()
	_, err := s.DeclareAxiom("reflexivity", Eq(V("a"), V("a")))
	require.NoError(t, err)
	v := NewVerifier(s)

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			claim := Eq(N(float64(i)), N(float64(i)))
			p := NewProof(claim)
			p.AddStep(claim, RuleAxiom, AxiomRef("reflexivity"))
			if res := v.Check(p); !res.Success {
				errs <- fmt.Errorf("proof %d failed: %s", i, res.Detail)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
