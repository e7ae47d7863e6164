package proof

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrDuplicateName is returned when an axiom name is declared twice in the
// same session.
var ErrDuplicateName = errors.New("duplicate axiom name")

// Axiom is a named statement accepted as true without derivation.
type Axiom struct {
	Name      string
	Statement Statement
}

func (a *Axiom) String() string {
	return fmt.Sprintf("%s: %s", a.Name, a.Statement)
}

// Session is the axiom registry and predicate table shared by all
// verifications in a run. Axiom declaration and predicate registration are
// setup-phase operations: once verification starts, the session is treated
// as read-only, which is what makes concurrent verification of independent
// proofs safe.
type Session struct {
	id string

	mu         sync.RWMutex
	axioms     map[string]*Axiom
	order      []string
	predicates map[string]PredicateFunc
	epsilon    float64
}

// NewSession creates an empty session with a fresh ID and the default
// float tolerance.
func NewSession() *Session {
	return &Session{
		id:         uuid.NewString(),
		axioms:     make(map[string]*Axiom),
		predicates: make(map[string]PredicateFunc),
		epsilon:    DefaultEpsilon,
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// DeclareAxiom registers a named axiom. Fails with ErrDuplicateName if the
// name is already taken; the registry is unchanged in that case.
func (s *Session) DeclareAxiom(name string, st Statement) (*Axiom, error) {
	if name == "" {
		return nil, fmt.Errorf("axiom name must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.axioms[name]; exists {
		return nil, fmt.Errorf("axiom %q: %w", name, ErrDuplicateName)
	}
	ax := &Axiom{Name: name, Statement: st}
	s.axioms[name] = ax
	s.order = append(s.order, name)
	return ax, nil
}

// Axiom looks up an axiom by name.
func (s *Session) Axiom(name string) (*Axiom, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ax, ok := s.axioms[name]
	return ax, ok
}

// Axioms returns all axioms in declaration order.
func (s *Session) Axioms() []*Axiom {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Axiom, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.axioms[name])
	}
	return out
}

// RegisterPredicate installs an evaluator for a named predicate. Statements
// using an unregistered predicate evaluate to Unknown.
func (s *Session) RegisterPredicate(name string, fn PredicateFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.predicates[name] = fn
}

// SetEpsilon overrides the float equality tolerance for this session.
func (s *Session) SetEpsilon(eps float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epsilon = eps
}

// EvalContext builds an evaluation context over the session's predicate
// table and tolerance with the given bindings. The predicate map is copied
// so evaluation never reads session state concurrently with setup.
func (s *Session) EvalContext(b Bindings) *EvalContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	preds := make(map[string]PredicateFunc, len(s.predicates))
	for name, fn := range s.predicates {
		preds[name] = fn
	}
	if b == nil {
		b = Bindings{}
	}
	return &EvalContext{Bindings: b, Predicates: preds, Epsilon: s.epsilon}
}
