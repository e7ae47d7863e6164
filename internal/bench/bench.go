// Package bench is the performance benchmarking harness for the toolkit.
// It times the number-theory routines and the proof verifier over
// configurable input sizes and reports per-run statistics. Verification is
// a pure function of (proof, axiom set) with no first-call caching, so
// repeated-iteration timings are unbiased.
package bench

import (
	"fmt"
	"math"
	"time"

	"eternalmath/internal/numtheory"
	"eternalmath/internal/proof"
)

// Result holds the timing statistics of one benchmarked call.
type Result struct {
	Name       string
	InputSize  int
	Iterations int
	Total      time.Duration
	Mean       time.Duration
	StdDev     time.Duration
	Min        time.Duration
	Max        time.Duration
}

func (r Result) String() string {
	return fmt.Sprintf("%s (n=%d): mean %v ± %v over %d runs [min %v, max %v]",
		r.Name, r.InputSize, r.Mean, r.StdDev, r.Iterations, r.Min, r.Max)
}

// Runner accumulates benchmark results across suites.
type Runner struct {
	results []Result
}

// NewRunner creates an empty benchmark runner.
func NewRunner() *Runner { return &Runner{} }

// Results returns all recorded results in execution order.
func (r *Runner) Results() []Result {
	return append([]Result(nil), r.results...)
}

// Time runs fn the given number of iterations and records the statistics.
func (r *Runner) Time(name string, inputSize, iterations int, fn func()) Result {
	if iterations < 1 {
		iterations = 1
	}
	times := make([]time.Duration, iterations)
	for i := 0; i < iterations; i++ {
		start := time.Now()
		fn()
		times[i] = time.Since(start)
	}
	res := summarize(name, inputSize, times)
	r.results = append(r.results, res)
	return res
}

func summarize(name string, inputSize int, times []time.Duration) Result {
	var total time.Duration
	min, max := times[0], times[0]
	for _, t := range times {
		total += t
		if t < min {
			min = t
		}
		if t > max {
			max = t
		}
	}
	mean := total / time.Duration(len(times))

	var variance float64
	if len(times) > 1 {
		m := float64(mean)
		for _, t := range times {
			d := float64(t) - m
			variance += d * d
		}
		variance /= float64(len(times) - 1)
	}

	return Result{
		Name:       name,
		InputSize:  inputSize,
		Iterations: len(times),
		Total:      total,
		Mean:       mean,
		StdDev:     time.Duration(math.Sqrt(variance)),
		Min:        min,
		Max:        max,
	}
}

// PrimeSuite benchmarks the sieve and individual primality checks.
func (r *Runner) PrimeSuite(sizes []int) []Result {
	if len(sizes) == 0 {
		sizes = []int{100, 500, 1000, 5000, 10000}
	}
	var out []Result
	for _, size := range sizes {
		size := size
		out = append(out, r.Time("sieve_of_eratosthenes", size, 5, func() {
			numtheory.Primes(size)
		}))
	}
	for _, n := range []int64{97, 997, 9973, 99991, 999983} {
		n := n
		out = append(out, r.Time("is_prime", int(n), 100, func() {
			numtheory.IsPrime(n)
		}))
	}
	return out
}

// FibonacciSuite benchmarks Fibonacci sequence generation.
func (r *Runner) FibonacciSuite(sizes []int) []Result {
	if len(sizes) == 0 {
		sizes = []int{10, 50, 78}
	}
	var out []Result
	for _, size := range sizes {
		size := size
		out = append(out, r.Time("fibonacci_sequence", size, 100, func() {
			numtheory.FibonacciSequence(size)
		}))
	}
	return out
}

// PerfectNumberSuite benchmarks exhaustive perfect-number search.
func (r *Runner) PerfectNumberSuite(limits []int) []Result {
	if len(limits) == 0 {
		limits = []int{1000, 10000}
	}
	var out []Result
	for _, limit := range limits {
		limit := limit
		out = append(out, r.Time("find_perfect_numbers", limit, 3, func() {
			for i := int64(1); i <= int64(limit); i++ {
				numtheory.IsPerfect(i)
			}
		}))
	}
	return out
}

// VerifierSuite benchmarks proof verification over synthetic proofs of
// increasing length: chains of arithmetic steps ending at the goal.
func (r *Runner) VerifierSuite(stepCounts []int) []Result {
	if len(stepCounts) == 0 {
		stepCounts = []int{1, 10, 100}
	}
	session := proof.NewSession()
	v := proof.NewVerifier(session, proof.WithMaxSteps(0))

	var out []Result
	for _, steps := range stepCounts {
		p := syntheticProof(steps)
		steps := steps
		out = append(out, r.Time("verifier_check", steps, 50, func() {
			v.Check(p)
		}))
	}
	return out
}

// syntheticProof builds a valid n-step proof of n = n.
func syntheticProof(n int) *proof.Proof {
	goal := proof.Eq(proof.N(float64(n)), proof.N(float64(n)))
	p := proof.NewProof(goal)
	for i := 1; i < n; i++ {
		claim := proof.Eq(proof.N(float64(i)), proof.N(float64(i)))
		p.AddStep(claim, proof.RuleArithmetic)
	}
	p.AddStep(goal, proof.RuleArithmetic)
	return p
}
