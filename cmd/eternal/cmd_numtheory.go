package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"eternalmath/cmd/eternal/ui"
	"eternalmath/internal/numtheory"
)

func parseInt64(raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	return n, nil
}

func parseInt64Args(args []string) ([]int64, error) {
	out := make([]int64, len(args))
	for i, raw := range args {
		n, err := parseInt64(raw)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func joinInts(ns []int64, sep string) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.FormatInt(n, 10)
	}
	return strings.Join(parts, sep)
}

var primesCmd = &cobra.Command{
	Use:   "primes [limit]",
	Short: "List the primes up to a limit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		primes := numtheory.Primes(int(limit))
		fmt.Printf("%s\n", joinInts(primes, " "))
		fmt.Println(ui.MutedStyle.Render(fmt.Sprintf("%d primes up to %d", len(primes), limit)))
		return nil
	},
}

var factorCmd = &cobra.Command{
	Use:   "factor [n]",
	Short: "Show the prime factorization of n",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		factors, err := numtheory.Factorize(n)
		if err != nil {
			return err
		}
		fmt.Printf("%d = %s\n", n, joinInts(factors, " * "))
		return nil
	},
}

var gcdCmd = &cobra.Command{
	Use:   "gcd [a] [b]",
	Short: "Greatest common divisor and least common multiple",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ns, err := parseInt64Args(args)
		if err != nil {
			return err
		}
		g, err := numtheory.GCD(ns[0], ns[1])
		if err != nil {
			return err
		}
		l := numtheory.LCM(ns[0], ns[1])
		fmt.Printf("gcd(%d, %d) = %d\nlcm(%d, %d) = %d\n", ns[0], ns[1], g, ns[0], ns[1], l)
		return nil
	},
}

var fibCmd = &cobra.Command{
	Use:   "fib [n]",
	Short: "Print the first n Fibonacci numbers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		if n < 1 {
			return fmt.Errorf("count must be positive")
		}
		fmt.Println(joinInts(numtheory.FibonacciSequence(int(n)), " "))
		return nil
	},
}

var perfectCmd = &cobra.Command{
	Use:   "perfect [limit]",
	Short: "List the perfect numbers up to a limit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		var found []int64
		for n := int64(2); n <= limit; n++ {
			if numtheory.IsPerfect(n) {
				found = append(found, n)
			}
		}
		if len(found) == 0 {
			fmt.Println(ui.MutedStyle.Render(fmt.Sprintf("no perfect numbers up to %d", limit)))
			return nil
		}
		fmt.Println(joinInts(found, " "))
		return nil
	},
}

var collatzCmd = &cobra.Command{
	Use:   "collatz [n]",
	Short: "Show the Collatz trajectory of n",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		seq := numtheory.Collatz(n)
		if seq == nil {
			return fmt.Errorf("n must be positive")
		}
		fmt.Println(joinInts(seq, " -> "))
		fmt.Println(ui.MutedStyle.Render(fmt.Sprintf("reached 1 in %d steps", len(seq)-1)))
		return nil
	},
}

var totientCmd = &cobra.Command{
	Use:   "totient [n]",
	Short: "Euler's totient of n",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		phi, err := numtheory.Totient(n)
		if err != nil {
			return err
		}
		fmt.Printf("phi(%d) = %d\n", n, phi)
		return nil
	},
}

var twinsCmd = &cobra.Command{
	Use:   "twins [limit]",
	Short: "List twin prime pairs up to a limit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		pairs := numtheory.TwinPrimes(int(limit))
		for _, pair := range pairs {
			fmt.Printf("(%d, %d)\n", pair[0], pair[1])
		}
		fmt.Println(ui.MutedStyle.Render(fmt.Sprintf("%d twin pairs up to %d", len(pairs), limit)))
		return nil
	},
}

var goldbachCmd = &cobra.Command{
	Use:   "goldbach [limit]",
	Short: "Check Goldbach's conjecture for even numbers up to a limit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		if counterexample := numtheory.VerifyGoldbach(int(limit)); counterexample != 0 {
			fmt.Println(ui.Verdict(false, fmt.Sprintf("%d is not a sum of two primes", counterexample)))
			return nil
		}
		fmt.Println(ui.Verdict(true, fmt.Sprintf("holds for all even numbers up to %d", limit)))
		return nil
	},
}

var crtCmd = &cobra.Command{
	Use:   "crt [r1,r2,...] [m1,m2,...]",
	Short: "Solve simultaneous congruences via the Chinese Remainder Theorem",
	Long: `Finds x with x = r_i (mod m_i) for each pair. The moduli must be
pairwise coprime.

Example:
  eternal crt 2,3,2 3,5,7`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		remainders, err := parseInt64Args(strings.Split(args[0], ","))
		if err != nil {
			return err
		}
		moduli, err := parseInt64Args(strings.Split(args[1], ","))
		if err != nil {
			return err
		}
		x, err := numtheory.CRT(remainders, moduli)
		if err != nil {
			return err
		}
		fmt.Printf("x = %d\n", x)
		return nil
	},
}
