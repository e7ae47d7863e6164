package numtheory

import (
	"fmt"

	"eternalmath/internal/proof"
)

// FundamentalTheoremOfArithmetic builds the toolkit's demonstration
// theorem: every integer greater than 1 is a product of primes, unique up
// to order. The general statement is beyond this verifier, so the attached
// proof establishes a concrete witness instance (the factorization of 84)
// with each primality claim checked by the registered is_prime predicate.
//
// The session gains the demonstration axioms and the number-theory
// predicates as a side effect.
func FundamentalTheoremOfArithmetic(s *proof.Session) (*proof.Theorem, error) {
	RegisterPredicates(s)

	goal, err := proof.ParseStatement("84 = 2 * 2 * 3 * 7")
	if err != nil {
		return nil, fmt.Errorf("building goal: %w", err)
	}

	th := proof.NewTheorem("fundamental_theorem_of_arithmetic", goal)
	th.Desc = "Every integer greater than 1 either is prime itself or is " +
		"the product of prime numbers, and this product is unique up to " +
		"the order of factors. Demonstrated here on the witness 84 = 2^2 * 3 * 7."

	p := proof.NewProof(goal)
	for _, src := range []string{"is_prime(2)", "is_prime(3)", "is_prime(7)"} {
		st, err := proof.ParseStatement(src)
		if err != nil {
			return nil, fmt.Errorf("building step %q: %w", src, err)
		}
		p.AddStep(st, proof.RuleArithmetic)
	}
	p.AddStep(goal, proof.RuleArithmetic)

	if err := th.Attach(p); err != nil {
		return nil, err
	}
	return th, nil
}
