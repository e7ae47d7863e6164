// Command eternal is a workbench for formal proofs over elementary
// arithmetic. It verifies YAML proof scripts, explores number theory,
// and offers an interactive proof shell.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"eternalmath/cmd/eternal/shell"
	"eternalmath/internal/config"
	"eternalmath/internal/logging"
	"eternalmath/internal/numtheory"
	"eternalmath/internal/proof"
)

var (
	verbose    bool
	configPath string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "eternal",
	Short: "eternal - a formal proof workbench for elementary mathematics",
	Long: `eternal verifies step-by-step formal proofs against a registry of
axioms, with built-in number theory predicates and an interactive shell.

Run without arguments to start the proof shell.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Logging.Level, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return shell.Run(newSession())
	},
}

// newSession builds a session with the configured tolerance and the
// number theory predicates registered.
func newSession() *proof.Session {
	s := proof.NewSession()
	s.SetEpsilon(cfg.Proof.Epsilon)
	numtheory.RegisterPredicates(s)
	return s
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".eternal/config.yaml", "Path to config file")

	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(axiomsCmd)
	rootCmd.AddCommand(theoremCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(shellCmd)

	rootCmd.AddCommand(primesCmd)
	rootCmd.AddCommand(factorCmd)
	rootCmd.AddCommand(gcdCmd)
	rootCmd.AddCommand(fibCmd)
	rootCmd.AddCommand(perfectCmd)
	rootCmd.AddCommand(collatzCmd)
	rootCmd.AddCommand(totientCmd)
	rootCmd.AddCommand(twinsCmd)
	rootCmd.AddCommand(goldbachCmd)
	rootCmd.AddCommand(crtCmd)
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive proof shell",
	RunE: func(cmd *cobra.Command, args []string) error {
		return shell.Run(newSession())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
