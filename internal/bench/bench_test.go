package bench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeRecordsStatistics(t *testing.T) {
	r := NewRunner()
	calls := 0
	res := r.Time("noop", 42, 10, func() { calls++ })

	assert.Equal(t, 10, calls)
	assert.Equal(t, "noop", res.Name)
	assert.Equal(t, 42, res.InputSize)
	assert.Equal(t, 10, res.Iterations)
	assert.GreaterOrEqual(t, res.Max, res.Min)
	assert.GreaterOrEqual(t, res.Mean, time.Duration(0))
	assert.Len(t, r.Results(), 1)
}

func TestTimeClampsIterations(t *testing.T) {
	r := NewRunner()
	calls := 0
	res := r.Time("once", 0, 0, func() { calls++ })
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, time.Duration(0), res.StdDev, "single run has no spread")
}

func TestPrimeSuite(t *testing.T) {
	r := NewRunner()
	results := r.PrimeSuite([]int{100})
	require.NotEmpty(t, results)
	assert.Equal(t, "sieve_of_eratosthenes", results[0].Name)
	assert.Equal(t, 100, results[0].InputSize)
}

func TestVerifierSuite(t *testing.T) {
	r := NewRunner()
	results := r.VerifierSuite([]int{1, 5})
	require.Len(t, results, 2)
	assert.Equal(t, "verifier_check", results[0].Name)
	assert.Equal(t, 1, results[0].InputSize)
	assert.Equal(t, 5, results[1].InputSize)
}

func TestSyntheticProofVerifies(t *testing.T) {
	// The synthetic proofs the suite times must actually be valid, or the
	// benchmark would be measuring the short-circuit path.
	p := syntheticProof(5)
	assert.Len(t, p.Steps(), 5)
}
