package proof

import (
	"fmt"
	"sync"
)

// TheoremState is the lifecycle state of a theorem.
type TheoremState string

const (
	Unproven TheoremState = "unproven"
	Proving  TheoremState = "proving" // transient, only during Verify
	Proven   TheoremState = "proven"

	// Disproven exists in the state space but is never entered
	// automatically: failing to produce a valid proof is not evidence of
	// falsity. Only an explicit counterexample mechanism could set it,
	// and none is provided here.
	Disproven TheoremState = "disproven"
)

// Theorem is a named goal statement with zero or more proof attempts.
// Proven is sticky: once any attached proof verifies, later failing
// attempts do not demote the theorem.
type Theorem struct {
	Name string
	Goal Statement
	Desc string

	mu     sync.Mutex
	proofs []*Proof
	state  TheoremState
}

// NewTheorem declares a theorem for the given goal.
func NewTheorem(name string, goal Statement) *Theorem {
	return &Theorem{Name: name, Goal: goal, state: Unproven}
}

// Attach adds a proof attempt. The proof's goal must match the theorem's.
func (t *Theorem) Attach(p *Proof) error {
	if p.Goal == nil || !p.Goal.StructuralEq(t.Goal) {
		return fmt.Errorf("proof goal %q does not match theorem goal %q", p.Goal, t.Goal)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.proofs = append(t.proofs, p)
	return nil
}

// Proofs returns the attached proof attempts in attachment order.
func (t *Theorem) Proofs() []*Proof {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*Proof(nil), t.proofs...)
}

// State returns the theorem's current lifecycle state.
func (t *Theorem) State() TheoremState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Proven reports whether at least one attached proof has verified.
func (t *Theorem) Proven() bool { return t.State() == Proven }

// Verify runs the verifier over every attached proof and returns the
// results in attachment order. The theorem becomes Proven if any proof
// succeeds; otherwise it stays (or returns to) Unproven. It is never
// marked Disproven by failed attempts.
func (t *Theorem) Verify(v *Verifier) []Result {
	t.mu.Lock()
	proofs := append([]*Proof(nil), t.proofs...)
	alreadyProven := t.state == Proven
	t.state = Proving
	t.mu.Unlock()

	results := make([]Result, len(proofs))
	anyValid := false
	for i, p := range proofs {
		results[i] = v.Check(p)
		if results[i].Success {
			anyValid = true
		}
	}

	t.mu.Lock()
	if anyValid || alreadyProven {
		t.state = Proven
	} else {
		t.state = Unproven
	}
	t.mu.Unlock()
	return results
}

func (t *Theorem) String() string {
	return fmt.Sprintf("%s: %s [%s]", t.Name, t.Goal, t.State())
}
