package proof

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func provableProof(goal Statement) *Proof {
	p := NewProof(goal)
	p.AddStep(goal, RuleArithmetic)
	return p
}

func TestTheoremStartsUnproven(t *testing.T) {
	th := NewTheorem("trivial", Eq(N(1), N(1)))
	assert.Equal(t, Unproven, th.State())
	assert.False(t, th.Proven())
}

func TestTheoremProvenAfterValidProof(t *testing.T) {
	s := NewSession()
	goal := Eq(Bin(OpAdd, N(2), N(2)), N(4))
	th := NewTheorem("two_plus_two", goal)
	require.NoError(t, th.Attach(provableProof(goal)))

	results := th.Verify(NewVerifier(s))
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.Equal(t, Proven, th.State())
}

// A failing proof leaves the theorem Unproven, never Disproven: absence of
// a valid proof is not evidence of falsity.
func TestTheoremFailedProofStaysUnproven(t *testing.T) {
	s := NewSession()
	goal := Eq(Bin(OpAdd, N(2), N(2)), N(5))
	th := NewTheorem("arithmetic_wishful", goal)
	p := NewProof(goal)
	p.AddStep(goal, RuleArithmetic)
	require.NoError(t, th.Attach(p))

	results := th.Verify(NewVerifier(s))
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, Unproven, th.State())
	assert.NotEqual(t, Disproven, th.State())
}

// Proven is sticky: a later failing attempt does not demote the theorem.
func TestTheoremProvenIsSticky(t *testing.T) {
	s := NewSession()
	goal := Eq(N(3), N(3))
	th := NewTheorem("three", goal)
	require.NoError(t, th.Attach(provableProof(goal)))

	v := NewVerifier(s)
	th.Verify(v)
	require.Equal(t, Proven, th.State())

	bad := NewProof(goal)
	bad.AddStep(goal, "no_such_rule")
	require.NoError(t, th.Attach(bad))

	results := th.Verify(v)
	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Equal(t, Proven, th.State())
}

func TestTheoremAttachRejectsMismatchedGoal(t *testing.T) {
	th := NewTheorem("mismatch", Eq(N(1), N(1)))
	err := th.Attach(NewProof(Eq(N(2), N(2))))
	assert.Error(t, err)
}

func TestTheoremMultipleAttemptsAnySuccessSuffices(t *testing.T) {
	s := NewSession()
	goal := Eq(N(4), N(4))
	th := NewTheorem("four", goal)

	bad := NewProof(goal)
	bad.AddStep(Eq(N(1), N(2)), RuleArithmetic)
	require.NoError(t, th.Attach(bad))
	require.NoError(t, th.Attach(provableProof(goal)))

	results := th.Verify(NewVerifier(s))
	require.Len(t, results, 2)
	assert.False(t, results[0].Success)
	assert.True(t, results[1].Success)
	assert.Equal(t, Proven, th.State())
}
