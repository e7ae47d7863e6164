// Package factbase mirrors a proof session into a Datalog fact store so
// axioms, theorems, and proof steps can be queried declaratively. Derived
// predicates (such as proven/1) come from Mangle rules evaluated over the
// exported facts.
package factbase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin"
	mengine "github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"
	"github.com/google/mangle/unionfind"
	"go.uber.org/zap"

	"eternalmath/internal/proof"
)

// schema declares the exported predicates and the derived rules over them.
// All modes are output so queries may leave any argument unbound.
const schema = `
Decl axiom(Name, Statement) descr [mode("-", "-")].
Decl theorem(Name, Goal, State) descr [mode("-", "-", "-")].
Decl proof_step(Theorem, Attempt, Position, Rule, Claim) descr [mode("-", "-", "-", "-", "-")].
Decl proven(Name) descr [mode("-")].
Decl uses_rule(Theorem, Rule) descr [mode("-", "-")].

proven(Name) :- theorem(Name, _, "proven").
uses_rule(Theorem, Rule) :- proof_step(Theorem, _, _, Rule, _).
`

// Base is an in-memory Datalog view of one or more proof sessions.
type Base struct {
	mu             sync.RWMutex
	store          factstore.ConcurrentFactStore
	programInfo    *analysis.ProgramInfo
	queryContext   *mengine.QueryContext
	predicateIndex map[string]ast.PredicateSym
	log            *zap.Logger
}

// New builds an empty fact base with the standard schema loaded.
func New(log *zap.Logger) (*Base, error) {
	if log == nil {
		log = zap.NewNop()
	}
	unit, err := parse.Unit(strings.NewReader(schema))
	if err != nil {
		return nil, fmt.Errorf("parsing fact base schema: %w", err)
	}
	programInfo, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return nil, fmt.Errorf("analyzing fact base schema: %w", err)
	}

	store := factstore.NewConcurrentFactStore(factstore.NewSimpleInMemoryStore())

	predicateIndex := make(map[string]ast.PredicateSym, len(programInfo.Decls))
	predToDecl := make(map[ast.PredicateSym]*ast.Decl, len(programInfo.Decls))
	for sym, decl := range programInfo.Decls {
		predicateIndex[sym.Symbol] = sym
		predToDecl[sym] = decl
	}
	predToRules := make(map[ast.PredicateSym][]ast.Clause)
	for _, clause := range programInfo.Rules {
		predToRules[clause.Head.Predicate] = append(predToRules[clause.Head.Predicate], clause)
	}

	return &Base{
		store:          store,
		programInfo:    programInfo,
		predicateIndex: predicateIndex,
		queryContext: &mengine.QueryContext{
			PredToRules: predToRules,
			PredToDecl:  predToDecl,
			Store:       store,
		},
		log: log,
	}, nil
}

// LoadSession exports every axiom of the session as axiom/2 facts.
func (b *Base) LoadSession(s *proof.Session) error {
	for _, ax := range s.Axioms() {
		if err := b.addFact("axiom", ast.String(ax.Name), ast.String(ax.Statement.String())); err != nil {
			return err
		}
	}
	return b.evaluate()
}

// LoadTheorem exports a theorem and the steps of all its proof attempts.
func (b *Base) LoadTheorem(th *proof.Theorem) error {
	if err := b.addFact("theorem",
		ast.String(th.Name), ast.String(th.Goal.String()), ast.String(string(th.State()))); err != nil {
		return err
	}
	for attempt, p := range th.Proofs() {
		for _, step := range p.Steps() {
			if err := b.addFact("proof_step",
				ast.String(th.Name), ast.Number(int64(attempt)), ast.Number(int64(step.Position)),
				ast.String(step.Just.Rule), ast.String(step.Claim.String())); err != nil {
				return err
			}
		}
	}
	return b.evaluate()
}

func (b *Base) addFact(predicate string, args ...ast.BaseTerm) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	sym, ok := b.predicateIndex[predicate]
	if !ok {
		return fmt.Errorf("predicate %s is not declared", predicate)
	}
	if len(args) != sym.Arity {
		return fmt.Errorf("predicate %s expects %d args, got %d", predicate, sym.Arity, len(args))
	}
	b.store.Add(ast.Atom{Predicate: sym, Args: args})
	return nil
}

// evaluate recomputes derived predicates over the current facts.
func (b *Base) evaluate() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := mengine.EvalProgramWithStats(b.programInfo, b.store); err != nil {
		return fmt.Errorf("evaluating fact base rules: %w", err)
	}
	return nil
}

// Binding is one row of query results, keyed by variable name.
type Binding map[string]interface{}

// Query runs a single-atom query such as "proven(X)" or
// "theorem(Name, Goal, State)" and returns one binding per matching fact.
func (b *Base) Query(ctx context.Context, query string) ([]Binding, error) {
	atom, vars, err := parseQuery(query)
	if err != nil {
		return nil, err
	}

	b.mu.RLock()
	decl, ok := b.queryContext.PredToDecl[atom.Predicate]
	if !ok {
		b.mu.RUnlock()
		return nil, fmt.Errorf("predicate %s is not declared", atom.Predicate.Symbol)
	}
	modes := decl.Modes()
	b.mu.RUnlock()
	if len(modes) == 0 {
		return nil, fmt.Errorf("predicate %s has no query modes", atom.Predicate.Symbol)
	}

	b.log.Debug("fact base query", zap.String("query", query))

	var results []Binding
	err = b.queryContext.EvalQuery(atom, modes[0], unionfind.New(), func(fact ast.Atom) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := make(Binding, len(vars))
		for name, idx := range vars {
			if idx < len(fact.Args) {
				row[name] = termValue(fact.Args[idx])
			}
		}
		results = append(results, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", query, err)
	}
	return results, nil
}

// ProvenTheorems returns the names derived by the proven/1 rule.
func (b *Base) ProvenTheorems(ctx context.Context) ([]string, error) {
	rows, err := b.Query(ctx, "proven(Name)")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if name, ok := row["Name"].(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// FactCount reports the approximate number of stored facts.
func (b *Base) FactCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.store.EstimateFactCount()
}

func parseQuery(query string) (ast.Atom, map[string]int, error) {
	clean := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(query), "."))
	if clean == "" {
		return ast.Atom{}, nil, fmt.Errorf("empty query")
	}
	atom, err := parse.Atom(clean)
	if err != nil {
		return ast.Atom{}, nil, fmt.Errorf("parsing query %q: %w", query, err)
	}
	vars := make(map[string]int)
	for idx, arg := range atom.Args {
		if v, ok := arg.(ast.Variable); ok && v.Symbol != "_" {
			vars[v.Symbol] = idx
		}
	}
	return atom, vars, nil
}

func termValue(term ast.BaseTerm) interface{} {
	c, ok := term.(ast.Constant)
	if !ok {
		return term.String()
	}
	switch c.Type {
	case ast.StringType, ast.NameType:
		return c.Symbol
	case ast.NumberType:
		return c.NumValue
	default:
		return c.String()
	}
}
