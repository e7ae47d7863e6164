package proof

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatement(t *testing.T) {
	tests := []struct {
		src  string
		want Statement
	}{
		{"2 + 2 = 4", Eq(Bin(OpAdd, N(2), N(2)), N(4))},
		{"x=y", Eq(V("x"), V("y"))},
		{"x <= y + 1", Ineq(RelLe, V("x"), Bin(OpAdd, V("y"), N(1)))},
		{"x ≤ y", Ineq(RelLe, V("x"), V("y"))},
		{"a >= b", Ineq(RelGe, V("a"), V("b"))},
		{"a ≥ b", Ineq(RelGe, V("a"), V("b"))},
		{"a != b", Ineq(RelNe, V("a"), V("b"))},
		{"a ≠ b", Ineq(RelNe, V("a"), V("b"))},
		{"n < 10", Ineq(RelLt, V("n"), N(10))},
		{"2 * x + 1 = 7", Eq(Bin(OpAdd, Bin(OpMul, N(2), V("x")), N(1)), N(7))},
		{"(x + y) * z = 0", Eq(Bin(OpMul, Bin(OpAdd, V("x"), V("y")), V("z")), N(0))},
		{"x ^ 2 = 9", Eq(Bin(OpPow, V("x"), N(2)), N(9))},
		{"-3 = 0 - 3", Eq(N(-3), Bin(OpSub, N(0), N(3)))},
		{"1.5 * 2 = 3", Eq(Bin(OpMul, N(1.5), N(2)), N(3))},
		{"is_prime(17)", Pred("is_prime", N(17))},
		{"coprime(9, 16)", Pred("coprime", N(9), N(16))},
		{"is_prime(n + 2)", Pred("is_prime", Bin(OpAdd, V("n"), N(2)))},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := ParseStatement(tt.src)
			require.NoError(t, err)
			assert.True(t, got.StructuralEq(tt.want), "parsed %q as %s, want %s", tt.src, got, tt.want)
		})
	}
}

func TestParseStatementErrors(t *testing.T) {
	tests := []string{
		"",
		"2 + 2",          // no relation
		"x = ",           // missing right side
		"= 4",            // missing left side
		"2 = 3 = 4",      // chained relation
		"is_prime(17",    // unclosed predicate
		"f(x) + 1 = 2",   // function calls only valid as predicates
		"x & y = 1",      // unknown operator
		"1..2 = 3",       // malformed number
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, err := ParseStatement(src)
			assert.Error(t, err, "expected %q to fail", src)
		})
	}
}

func TestParseExpr(t *testing.T) {
	e, err := ParseExpr("2 * (x + 1)")
	require.NoError(t, err)
	v, ok := e.Eval(Bindings{"x": 4})
	require.True(t, ok)
	assert.Equal(t, 10.0, v)

	_, err = ParseExpr("2 +")
	assert.Error(t, err)
}

// Precedence: multiplication binds tighter than addition, exponent tighter
// than multiplication, exponent is right-associative.
func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		src  string
		b    Bindings
		want float64
	}{
		{"1 + 2 * 3", nil, 7},
		{"2 * 3 ^ 2", nil, 18},
		{"2 ^ 3 ^ 2", nil, 512},
		{"10 - 4 - 3", nil, 3}, // left-associative
		{"-x + 1", Bindings{"x": 5}, -4},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := ParseExpr(tt.src)
			require.NoError(t, err)
			v, ok := e.Eval(tt.b)
			require.True(t, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}
