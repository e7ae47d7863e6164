package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"eternalmath/internal/config"
)

func TestMain(m *testing.M) {
	cfg = config.DefaultConfig()
	logger = zap.NewNop()
	os.Exit(m.Run())
}

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "proof.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVerifyScriptProvesValidProof(t *testing.T) {
	path := writeScript(t, `
theorem: twice_two
goal: "2 + 2 = 4"
steps:
  - claim: "2 + 2 = 4"
    rule: arithmetic
`)
	v, err := verifyScript(path)
	require.NoError(t, err)
	assert.True(t, v.theorem.Proven())
}

func TestVerifyScriptUsesNumberTheoryPredicates(t *testing.T) {
	path := writeScript(t, `
theorem: seven_is_prime
goal: "is_prime(7)"
steps:
  - claim: "is_prime(7)"
    rule: arithmetic
`)
	v, err := verifyScript(path)
	require.NoError(t, err)
	assert.True(t, v.theorem.Proven(), "detail: %s", v.results[0].Detail)
}

func TestVerifyScriptReportsMissingFile(t *testing.T) {
	_, err := verifyScript(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{
		"verify", "watch", "query", "axioms", "theorem", "history", "bench", "shell",
		"primes", "factor", "gcd", "fib", "perfect", "collatz", "totient", "twins", "goldbach", "crt",
	} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}
