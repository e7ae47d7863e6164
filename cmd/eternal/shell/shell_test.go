package shell

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eternalmath/internal/proof"
)

func lastLine(m *Model) string {
	return m.lines[len(m.lines)-1]
}

func TestGoalStepVerify(t *testing.T) {
	m := New(proof.NewSession())

	require.False(t, m.execute("goal 2 + 2 = 4"))
	require.False(t, m.execute("step arithmetic - 2 + 2 = 4"))
	require.False(t, m.execute("verify"))
	assert.Contains(t, lastLine(&m), "valid")
}

func TestAxiomInstantiationFlow(t *testing.T) {
	m := New(proof.NewSession())

	m.execute("axiom reflexivity a = a")
	m.execute("goal 5 = 5")
	m.execute("step axiom reflexivity 5 = 5")
	m.execute("verify")
	assert.Contains(t, lastLine(&m), "valid")
}

func TestHypothesisAndRefs(t *testing.T) {
	m := New(proof.NewSession())

	m.execute("goal y = x")
	m.execute("hyp x = y")
	m.execute("step assumption hyp:0 x = y")
	m.execute("step substitution step:0 y = x")
	m.execute("verify")
	assert.Contains(t, lastLine(&m), "valid")
}

func TestVerifyReportsFailingStep(t *testing.T) {
	m := New(proof.NewSession())

	m.execute("goal 2 + 2 = 5")
	m.execute("step arithmetic - 2 + 2 = 5")
	m.execute("verify")
	assert.Contains(t, lastLine(&m), "step 0")
}

func TestStepWithoutGoalFails(t *testing.T) {
	m := New(proof.NewSession())
	m.execute("step arithmetic - 1 = 1")
	assert.Contains(t, lastLine(&m), "no active proof")
}

func TestEvalCommand(t *testing.T) {
	m := New(proof.NewSession())

	m.execute("eval 2 + 3 = 5")
	assert.Contains(t, lastLine(&m), "true")

	m.execute("eval 2 > 7")
	assert.Contains(t, lastLine(&m), "false")

	m.execute("eval x = 1")
	assert.Contains(t, strings.ToLower(lastLine(&m)), "unknown")
}

func TestQuitCommand(t *testing.T) {
	m := New(proof.NewSession())
	assert.True(t, m.execute("quit"))
	assert.False(t, m.execute("help"))
}

func TestUnknownCommand(t *testing.T) {
	m := New(proof.NewSession())
	m.execute("frobnicate")
	assert.Contains(t, lastLine(&m), "unknown command")
}
