package numtheory

import (
	"math"

	"eternalmath/internal/proof"
)

// RegisterPredicates installs the number-theory predicates into a proof
// session, making statements like is_prime(17) decidable by the verifier's
// arithmetic rule. This is the integration point between the numeric
// modules and the proof system; the proof core knows nothing about
// primality.
//
// Arguments are validated as integers where the predicate is only defined
// over integers; non-integral arguments make the predicate false rather
// than Unknown, since the statement is decidably not about an integer.
func RegisterPredicates(s *proof.Session) {
	s.RegisterPredicate("is_prime", unaryInt(IsPrime))
	s.RegisterPredicate("is_composite", unaryInt(func(n int64) bool {
		return n > 1 && !IsPrime(n)
	}))
	s.RegisterPredicate("is_perfect", unaryInt(IsPerfect))
	s.RegisterPredicate("is_even", unaryInt(func(n int64) bool { return n%2 == 0 }))
	s.RegisterPredicate("is_odd", unaryInt(func(n int64) bool { return n%2 != 0 }))
	s.RegisterPredicate("coprime", binaryInt(func(a, b int64) bool {
		g, err := GCD(a, b)
		return err == nil && g == 1
	}))
	s.RegisterPredicate("divides", binaryInt(func(a, b int64) bool {
		return a != 0 && b%a == 0
	}))
}

func unaryInt(fn func(int64) bool) proof.PredicateFunc {
	return func(args []float64) bool {
		if len(args) != 1 {
			return false
		}
		n, ok := asInt(args[0])
		return ok && fn(n)
	}
}

func binaryInt(fn func(int64, int64) bool) proof.PredicateFunc {
	return func(args []float64) bool {
		if len(args) != 2 {
			return false
		}
		a, okA := asInt(args[0])
		b, okB := asInt(args[1])
		return okA && okB && fn(a, b)
	}
}

func asInt(v float64) (int64, bool) {
	if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return int64(v), true
}
