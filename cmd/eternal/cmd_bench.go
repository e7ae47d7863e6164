package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"eternalmath/cmd/eternal/ui"
	"eternalmath/internal/bench"
)

var benchSuite string

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the built-in performance suites",
	Long: `Times the number theory routines and the proof verifier over growing
input sizes. Suites: primes, fib, perfect, verifier, all.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := bench.NewRunner()

		var results []bench.Result
		switch benchSuite {
		case "primes":
			results = r.PrimeSuite([]int{1000, 10000, 100000})
		case "fib":
			results = r.FibonacciSuite([]int{10, 30, 60})
		case "perfect":
			results = r.PerfectNumberSuite([]int{1000, 10000})
		case "verifier":
			results = r.VerifierSuite([]int{10, 100, 1000})
		case "all":
			results = append(results, r.PrimeSuite([]int{1000, 10000})...)
			results = append(results, r.FibonacciSuite([]int{10, 30, 60})...)
			results = append(results, r.PerfectNumberSuite([]int{1000, 10000})...)
			results = append(results, r.VerifierSuite([]int{10, 100})...)
		default:
			return fmt.Errorf("unknown suite %q", benchSuite)
		}

		fmt.Println(ui.TitleStyle.Render("benchmark results"))
		for _, res := range results {
			fmt.Println("  " + res.String())
		}
		return nil
	},
}

func init() {
	benchCmd.Flags().StringVar(&benchSuite, "suite", "all", "Which suite to run")
}
