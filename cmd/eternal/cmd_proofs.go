package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"eternalmath/cmd/eternal/ui"
	"eternalmath/internal/factbase"
	"eternalmath/internal/numtheory"
	"eternalmath/internal/proof"
	"eternalmath/internal/script"
	"eternalmath/internal/store"
	"eternalmath/internal/watch"
)

var (
	verifySave     bool
	verifyMaxSteps int
)

// verified is the outcome of checking one proof script.
type verified struct {
	path    string
	session *proof.Session
	theorem *proof.Theorem
	results []proof.Result
}

// verifyScript checks a single script in its own fresh session.
func verifyScript(path string) (*verified, error) {
	f, err := script.LoadFile(path)
	if err != nil {
		return nil, err
	}
	s := newSession()
	th, err := f.Build(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var opts []proof.Option
	if verifyMaxSteps > 0 {
		opts = append(opts, proof.WithMaxSteps(verifyMaxSteps))
	}
	opts = append(opts, proof.WithLogger(logger))
	results := th.Verify(proof.NewVerifier(s, opts...))
	return &verified{path: path, session: s, theorem: th, results: results}, nil
}

func printVerified(v *verified) {
	th := v.theorem
	if th.Proven() {
		fmt.Println(ui.Verdict(true, fmt.Sprintf("%s  %s", th.Name, ui.StatementStyle.Render(th.Goal.String()))))
		return
	}
	res := v.results[0]
	detail := string(res.Reason)
	if res.Detail != "" {
		detail = res.Detail
	}
	if res.FailingStep == proof.NoFailingStep {
		fmt.Println(ui.Verdict(false, fmt.Sprintf("%s  %s", th.Name, detail)))
	} else {
		fmt.Println(ui.Verdict(false, fmt.Sprintf("%s  step %d: %s", th.Name, res.FailingStep, detail)))
	}
}

var verifyCmd = &cobra.Command{
	Use:   "verify [script.yaml ...]",
	Short: "Verify proof scripts",
	Long: `Checks every step of each proof script against the verifier. Scripts
are independent and verified concurrently, each in a fresh session.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var mu sync.Mutex
		outcomes := make(map[string]*verified, len(args))

		g, _ := errgroup.WithContext(cmd.Context())
		g.SetLimit(8)
		for _, path := range args {
			path := path
			g.Go(func() error {
				v, err := verifyScript(path)
				if err != nil {
					return err
				}
				mu.Lock()
				outcomes[path] = v
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		failed := 0
		for _, path := range args {
			v := outcomes[path]
			printVerified(v)
			if !v.theorem.Proven() {
				failed++
			}
		}

		if verifySave {
			if err := archiveOutcomes(args, outcomes); err != nil {
				return err
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d proofs failed", failed, len(args))
		}
		return nil
	},
}

func archiveOutcomes(order []string, outcomes map[string]*verified) error {
	archive, err := store.Open(cfg.Store.DatabasePath)
	if err != nil {
		return err
	}
	defer archive.Close()
	for _, path := range order {
		v := outcomes[path]
		if err := archive.SaveResult(v.session.ID(), v.theorem, v.results[0]); err != nil {
			return err
		}
	}
	return nil
}

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-verify proof scripts whenever they change",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "proofs"
		if len(args) == 1 {
			dir = args[0]
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		w, err := watch.New(dir, func(o watch.Outcome) {
			if o.Err != nil {
				fmt.Println(ui.Verdict(false, fmt.Sprintf("%s  %v", o.Path, o.Err)))
				return
			}
			printVerified(&verified{path: o.Path, theorem: o.Theorem, results: o.Results})
		}, watch.Options{
			MaxSteps: cfg.Proof.MaxSteps,
			Setup:    numtheory.RegisterPredicates,
		}, logger)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()

		fmt.Println(ui.MutedStyle.Render(fmt.Sprintf("watching %s, ctrl-c to stop", dir)))
		<-ctx.Done()
		return nil
	},
}

var queryCmd = &cobra.Command{
	Use:   "query [datalog-atom] [script.yaml ...]",
	Short: "Query verified proof scripts as Datalog facts",
	Long: `Loads the given scripts, verifies them, exports axioms, theorems, and
proof steps into a fact base, and runs a single-atom query against it.

Predicates: axiom(Name, Statement), theorem(Name, Goal, State),
proof_step(Theorem, Attempt, Position, Rule, Claim), proven(Name),
uses_rule(Theorem, Rule).

Example:
  eternal query 'proven(X)' proofs/*.yaml`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := factbase.New(logger)
		if err != nil {
			return err
		}
		for _, path := range args[1:] {
			v, err := verifyScript(path)
			if err != nil {
				return err
			}
			if err := base.LoadSession(v.session); err != nil {
				return err
			}
			if err := base.LoadTheorem(v.theorem); err != nil {
				return err
			}
		}

		rows, err := base.Query(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println(ui.MutedStyle.Render("no results"))
			return nil
		}
		for _, row := range rows {
			keys := make([]string, 0, len(row))
			for k := range row {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for i, k := range keys {
				if i > 0 {
					fmt.Print("  ")
				}
				fmt.Printf("%s=%v", k, row[k])
			}
			fmt.Println()
		}
		return nil
	},
}

var axiomsCmd = &cobra.Command{
	Use:   "axioms [script.yaml ...]",
	Short: "List the axioms declared by proof scripts",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		for _, path := range args {
			f, err := script.LoadFile(path)
			if err != nil {
				return err
			}
			for _, ax := range f.Axioms {
				st, err := proof.ParseStatement(ax.Statement)
				if err != nil {
					return fmt.Errorf("%s: axiom %q: %w", path, ax.Name, err)
				}
				if _, err := s.DeclareAxiom(ax.Name, st); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
		}
		for _, ax := range s.Axioms() {
			fmt.Printf("%s: %s\n", ax.Name, ui.StatementStyle.Render(ax.Statement.String()))
		}
		return nil
	},
}

var theoremCmd = &cobra.Command{
	Use:   "theorem",
	Short: "Verify and explain the fundamental theorem of arithmetic demo",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		th, err := numtheory.FundamentalTheoremOfArithmetic(s)
		if err != nil {
			return err
		}
		results := th.Verify(proof.NewVerifier(s, proof.WithLogger(logger)))

		md := fmt.Sprintf(`# %s

%s

**Goal.** `+"`%s`"+`

## Proof

`, th.Name, th.Desc, th.Goal)
		for _, p := range th.Proofs() {
			for _, step := range p.Steps() {
				md += fmt.Sprintf("%d. `%s` by %s\n", step.Position+1, step.Claim, step.Just.Rule)
			}
		}
		if th.Proven() {
			md += "\n**Verified.** Every step checks out.\n"
		} else {
			md += fmt.Sprintf("\n**Failed.** %s\n", results[0].Detail)
		}

		out, err := glamour.Render(md, "dark")
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

var historyName string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show archived verification results",
	RunE: func(cmd *cobra.Command, args []string) error {
		archive, err := store.Open(cfg.Store.DatabasePath)
		if err != nil {
			return err
		}
		defer archive.Close()

		var records []store.Record
		if historyName != "" {
			records, err = archive.Find(historyName)
		} else {
			records, err = archive.List()
		}
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println(ui.MutedStyle.Render("no archived results"))
			return nil
		}
		for _, r := range records {
			line := fmt.Sprintf("%s  %s  %s",
				r.VerifiedAt.Format("2006-01-02 15:04:05"), r.Name, ui.StatementStyle.Render(r.Goal))
			fmt.Println(ui.Verdict(r.Success, line))
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().BoolVar(&verifySave, "save", false, "Archive results to the theorem database")
	verifyCmd.Flags().IntVar(&verifyMaxSteps, "max-steps", 0, "Override the proof length ceiling")
	historyCmd.Flags().StringVar(&historyName, "name", "", "Only show results for this theorem")
}
