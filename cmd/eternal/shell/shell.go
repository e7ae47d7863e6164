// Package shell implements the interactive proof shell. Users declare
// axioms and hypotheses, add justified steps, and verify the proof
// without leaving the terminal.
package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"eternalmath/cmd/eternal/ui"
	"eternalmath/internal/proof"
)

const helpText = `Commands:
  goal <statement>                 start a proof for the goal
  axiom <name> <statement>         declare a named axiom
  hyp <statement>                  assume a hypothesis
  step <rule> <refs|-> <claim>     add a step (refs comma-separated, - for none)
  verify                           check the current proof
  eval <statement>                 evaluate a closed statement
  axioms                           list declared axioms
  show                             print the current proof
  help                             show this help
  quit                             exit`

// Model is the bubbletea model for the proof shell.
type Model struct {
	session *proof.Session
	prf     *proof.Proof
	goal    proof.Statement

	input textinput.Model
	lines []string
	quit  bool
}

// New builds a shell over an existing session, which may already carry
// axioms and predicates.
func New(s *proof.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "goal 2 + 2 = 4"
	ti.Prompt = ui.PromptStyle.Render("proof> ")
	ti.Focus()
	ti.CharLimit = 512

	return Model{
		session: s,
		input:   ti,
		lines: []string{
			ui.TitleStyle.Render("eternal proof shell"),
			ui.MutedStyle.Render("type 'help' for commands"),
		},
	}
}

// Run starts the shell and blocks until the user exits.
func Run(s *proof.Session) error {
	_, err := tea.NewProgram(New(s)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quit = true
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			m.lines = append(m.lines, ui.PromptStyle.Render("proof> ")+line)
			if m.execute(line) {
				m.quit = true
				return m, tea.Quit
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quit {
		return strings.Join(m.lines, "\n") + "\n"
	}
	return strings.Join(m.lines, "\n") + "\n\n" + m.input.View() + "\n"
}

// execute runs one command line and reports whether the shell should exit.
func (m *Model) execute(line string) bool {
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch verb {
	case "quit", "exit":
		return true
	case "help":
		m.say(ui.MutedStyle.Render(helpText))
	case "goal":
		m.cmdGoal(rest)
	case "axiom":
		m.cmdAxiom(rest)
	case "hyp":
		m.cmdHyp(rest)
	case "step":
		m.cmdStep(rest)
	case "verify":
		m.cmdVerify()
	case "eval":
		m.cmdEval(rest)
	case "axioms":
		m.cmdAxioms()
	case "show":
		m.cmdShow()
	default:
		m.sayErr(fmt.Errorf("unknown command %q, try 'help'", verb))
	}
	return false
}

func (m *Model) say(s string)     { m.lines = append(m.lines, s) }
func (m *Model) sayErr(err error) { m.say(ui.FailureStyle.Render("error: ") + err.Error()) }
func (m *Model) sayOK(format string, args ...interface{}) {
	m.say(ui.SuccessStyle.Render("ok: ") + fmt.Sprintf(format, args...))
}

func (m *Model) cmdGoal(rest string) {
	st, err := proof.ParseStatement(rest)
	if err != nil {
		m.sayErr(err)
		return
	}
	m.goal = st
	m.prf = proof.NewProof(st)
	m.sayOK("proving %s", ui.StatementStyle.Render(st.String()))
}

func (m *Model) cmdAxiom(rest string) {
	name, stmt, found := strings.Cut(rest, " ")
	if !found {
		m.sayErr(fmt.Errorf("usage: axiom <name> <statement>"))
		return
	}
	st, err := proof.ParseStatement(strings.TrimSpace(stmt))
	if err != nil {
		m.sayErr(err)
		return
	}
	if _, err := m.session.DeclareAxiom(name, st); err != nil {
		m.sayErr(err)
		return
	}
	m.sayOK("axiom %s: %s", name, ui.StatementStyle.Render(st.String()))
}

func (m *Model) cmdHyp(rest string) {
	if m.prf == nil {
		m.sayErr(fmt.Errorf("no active proof, set a goal first"))
		return
	}
	st, err := proof.ParseStatement(rest)
	if err != nil {
		m.sayErr(err)
		return
	}
	ref := m.prf.Assume(st)
	m.sayOK("%s assumes %s", ref, ui.StatementStyle.Render(st.String()))
}

func (m *Model) cmdStep(rest string) {
	if m.prf == nil {
		m.sayErr(fmt.Errorf("no active proof, set a goal first"))
		return
	}
	fields := strings.SplitN(rest, " ", 3)
	if len(fields) < 3 {
		m.sayErr(fmt.Errorf("usage: step <rule> <refs|-> <claim>"))
		return
	}
	rule, rawRefs, stmt := fields[0], fields[1], fields[2]

	var refs []proof.FactRef
	if rawRefs != "-" {
		for _, raw := range strings.Split(rawRefs, ",") {
			raw = strings.TrimSpace(raw)
			if strings.HasPrefix(raw, "hyp:") || strings.HasPrefix(raw, "step:") || strings.HasPrefix(raw, "axiom:") {
				refs = append(refs, proof.FactRef(raw))
			} else {
				refs = append(refs, proof.AxiomRef(raw))
			}
		}
	}

	st, err := proof.ParseStatement(strings.TrimSpace(stmt))
	if err != nil {
		m.sayErr(err)
		return
	}
	ref := m.prf.AddStep(st, rule, refs...)
	m.sayOK("%s claims %s by %s", ref, ui.StatementStyle.Render(st.String()), rule)
}

func (m *Model) cmdVerify() {
	if m.prf == nil {
		m.sayErr(fmt.Errorf("no active proof, set a goal first"))
		return
	}
	res := proof.NewVerifier(m.session).Check(m.prf)
	if res.Success {
		m.say(ui.Verdict(true, fmt.Sprintf("proof of %s is valid", ui.StatementStyle.Render(m.goal.String()))))
		return
	}
	detail := string(res.Reason)
	if res.Detail != "" {
		detail = res.Detail
	}
	if res.FailingStep == proof.NoFailingStep {
		m.say(ui.Verdict(false, detail))
	} else {
		m.say(ui.Verdict(false, fmt.Sprintf("step %d: %s", res.FailingStep, detail)))
	}
}

func (m *Model) cmdEval(rest string) {
	st, err := proof.ParseStatement(rest)
	if err != nil {
		m.sayErr(err)
		return
	}
	truth := st.Evaluate(m.session.EvalContext(nil))
	switch truth {
	case proof.True:
		m.say(ui.Verdict(true, "true"))
	case proof.False:
		m.say(ui.Verdict(false, "false"))
	default:
		m.say(ui.WarningStyle.Render("? unknown (unbound variables or unregistered predicate)"))
	}
}

func (m *Model) cmdAxioms() {
	axioms := m.session.Axioms()
	if len(axioms) == 0 {
		m.say(ui.MutedStyle.Render("no axioms declared"))
		return
	}
	for _, ax := range axioms {
		m.say(fmt.Sprintf("  %s: %s", ax.Name, ui.StatementStyle.Render(ax.Statement.String())))
	}
}

func (m *Model) cmdShow() {
	if m.prf == nil {
		m.sayErr(fmt.Errorf("no active proof"))
		return
	}
	m.say(ui.BoxStyle.Render(m.prf.String()))
}
