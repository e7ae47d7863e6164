// Package numtheory implements the number-theory routines of the toolkit:
// prime sieves, Fibonacci numbers, perfect numbers, Euler's totient,
// Collatz sequences, twin primes, a Goldbach checker, and a Chinese
// Remainder Theorem solver. It also backs the proof system's registered
// predicates (is_prime and friends).
package numtheory

import (
	"errors"
	"fmt"
)

// ErrUndefined is returned for inputs outside a function's domain.
var ErrUndefined = errors.New("undefined for the given input")

// GCD returns the greatest common divisor of a and b via the Euclidean
// algorithm. GCD(0, 0) is undefined.
func GCD(a, b int64) (int64, error) {
	if a == 0 && b == 0 {
		return 0, fmt.Errorf("gcd(0, 0): %w", ErrUndefined)
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		a = -a
	}
	return a, nil
}

// LCM returns the least common multiple of a and b, or 0 when either is 0.
func LCM(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	g, _ := GCD(a, b)
	m := a / g * b
	if m < 0 {
		m = -m
	}
	return m
}

// IsPrime checks primality by trial division.
func IsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	for d := int64(3); d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// Factorize returns the prime factorization of n in ascending order.
// Defined only for n >= 2.
func Factorize(n int64) ([]int64, error) {
	if n < 2 {
		return nil, fmt.Errorf("factorization of %d: %w", n, ErrUndefined)
	}
	var factors []int64
	for d := int64(2); d*d <= n; d++ {
		for n%d == 0 {
			factors = append(factors, d)
			n /= d
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors, nil
}

// Primes returns all primes up to limit using the sieve of Eratosthenes.
func Primes(limit int) []int64 {
	if limit < 2 {
		return nil
	}
	composite := make([]bool, limit+1)
	var primes []int64
	for i := 2; i <= limit; i++ {
		if composite[i] {
			continue
		}
		primes = append(primes, int64(i))
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}
	return primes
}

// Fibonacci returns the nth Fibonacci number, 0-indexed.
func Fibonacci(n int) int64 {
	if n <= 1 {
		return int64(n)
	}
	a, b := int64(0), int64(1)
	for i := 2; i <= n; i++ {
		a, b = b, a+b
	}
	return b
}

// FibonacciSequence returns the first count Fibonacci numbers.
func FibonacciSequence(count int) []int64 {
	if count <= 0 {
		return nil
	}
	seq := make([]int64, count)
	for i := range seq {
		if i <= 1 {
			seq[i] = int64(i)
		} else {
			seq[i] = seq[i-1] + seq[i-2]
		}
	}
	return seq
}

// IsPerfect reports whether n equals the sum of its proper divisors.
func IsPerfect(n int64) bool {
	if n <= 1 {
		return false
	}
	sum := int64(1)
	for d := int64(2); d*d <= n; d++ {
		if n%d == 0 {
			sum += d
			if other := n / d; other != d {
				sum += other
			}
		}
	}
	return sum == n
}

// Totient computes Euler's totient φ(n), the count of integers in [1, n]
// coprime to n. Defined for n >= 1.
func Totient(n int64) (int64, error) {
	if n < 1 {
		return 0, fmt.Errorf("totient of %d: %w", n, ErrUndefined)
	}
	if n == 1 {
		return 1, nil
	}
	result := n
	m := n
	for p := int64(2); p*p <= m; p++ {
		if m%p != 0 {
			continue
		}
		for m%p == 0 {
			m /= p
		}
		result = result / p * (p - 1)
	}
	if m > 1 {
		result = result / m * (m - 1)
	}
	return result, nil
}

// Collatz returns the Collatz sequence from n down to 1. Empty for n <= 0.
func Collatz(n int64) []int64 {
	if n <= 0 {
		return nil
	}
	seq := []int64{n}
	for n != 1 {
		if n%2 == 0 {
			n /= 2
		} else {
			n = 3*n + 1
		}
		seq = append(seq, n)
	}
	return seq
}

// TwinPrimes returns all pairs (p, p+2) with both prime and p+2 <= limit.
func TwinPrimes(limit int) [][2]int64 {
	primes := Primes(limit)
	inSet := make(map[int64]bool, len(primes))
	for _, p := range primes {
		inSet[p] = true
	}
	var pairs [][2]int64
	for _, p := range primes {
		if inSet[p+2] {
			pairs = append(pairs, [2]int64{p, p + 2})
		}
	}
	return pairs
}

// VerifyGoldbach checks Goldbach's conjecture for every even number in
// [4, limit]: each must be the sum of two primes. Returns the first even
// number with no decomposition, or 0 if the range verifies.
func VerifyGoldbach(limit int) int64 {
	primes := Primes(limit)
	inSet := make(map[int64]bool, len(primes))
	for _, p := range primes {
		inSet[p] = true
	}
	for n := int64(4); n <= int64(limit); n += 2 {
		found := false
		for _, p := range primes {
			if p > n/2 {
				break
			}
			if inSet[n-p] {
				found = true
				break
			}
		}
		if !found {
			return n
		}
	}
	return 0
}

// CRT solves the system x ≡ remainders[i] (mod moduli[i]) for pairwise
// coprime moduli, returning the least non-negative solution.
func CRT(remainders, moduli []int64) (int64, error) {
	if len(remainders) != len(moduli) {
		return 0, fmt.Errorf("crt: %d remainders but %d moduli", len(remainders), len(moduli))
	}
	if len(moduli) == 0 {
		return 0, fmt.Errorf("crt: empty system")
	}
	for i := range moduli {
		if moduli[i] < 1 {
			return 0, fmt.Errorf("crt: modulus %d must be positive", moduli[i])
		}
		for j := i + 1; j < len(moduli); j++ {
			if g, _ := GCD(moduli[i], moduli[j]); g != 1 {
				return 0, fmt.Errorf("crt: moduli %d and %d are not coprime", moduli[i], moduli[j])
			}
		}
	}

	prod := int64(1)
	for _, m := range moduli {
		prod *= m
	}
	var total int64
	for i := range moduli {
		p := prod / moduli[i]
		inv, err := modInverse(p%moduli[i], moduli[i])
		if err != nil {
			return 0, err
		}
		term := remainders[i] % prod * p % prod
		term = term * inv % prod
		total = (total + term) % prod
	}
	return (total%prod + prod) % prod, nil
}

// modInverse returns a^-1 mod m via the extended Euclidean algorithm.
func modInverse(a, m int64) (int64, error) {
	if m == 1 {
		return 0, nil
	}
	g, x, _ := extendedGCD(((a%m)+m)%m, m)
	if g != 1 {
		return 0, fmt.Errorf("no inverse of %d mod %d", a, m)
	}
	return ((x % m) + m) % m, nil
}

func extendedGCD(a, b int64) (g, x, y int64) {
	if a == 0 {
		return b, 0, 1
	}
	g, x1, y1 := extendedGCD(b%a, a)
	return g, y1 - (b/a)*x1, x1
}
