// Package script loads theorem definitions from YAML proof scripts: a
// goal, axioms, hypotheses, and justified steps, all written as plain
// statement text. The CLI's verify, watch, and shell commands consume
// these files.
package script

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"eternalmath/internal/proof"
)

// File is the YAML shape of a proof script.
type File struct {
	Theorem     string      `yaml:"theorem"`
	Description string      `yaml:"description,omitempty"`
	Goal        string      `yaml:"goal"`
	Axioms      []AxiomDecl `yaml:"axioms,omitempty"`
	Hypotheses  []string    `yaml:"hypotheses,omitempty"`
	Steps       []StepDecl  `yaml:"steps"`
}

// AxiomDecl declares a named axiom.
type AxiomDecl struct {
	Name      string `yaml:"name"`
	Statement string `yaml:"statement"`
}

// StepDecl is one proof step: a claim, the rule licensing it, and the
// facts it cites. Refs may be axiom names, "hyp:N", or "step:N".
type StepDecl struct {
	Claim string   `yaml:"claim"`
	Rule  string   `yaml:"rule"`
	Refs  []string `yaml:"refs,omitempty"`
}

// Parse decodes and validates a proof script.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing proof script: %w", err)
	}
	if f.Theorem == "" {
		return nil, fmt.Errorf("proof script: theorem name is required")
	}
	if f.Goal == "" {
		return nil, fmt.Errorf("proof script %q: goal is required", f.Theorem)
	}
	return &f, nil
}

// LoadFile reads and parses a proof script from disk.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading proof script: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Build declares the script's axioms in the session and constructs the
// theorem with its proof attached, ready for verification.
func (f *File) Build(s *proof.Session) (*proof.Theorem, error) {
	goal, err := proof.ParseStatement(f.Goal)
	if err != nil {
		return nil, fmt.Errorf("goal %q: %w", f.Goal, err)
	}

	for _, ax := range f.Axioms {
		st, err := proof.ParseStatement(ax.Statement)
		if err != nil {
			return nil, fmt.Errorf("axiom %q: %w", ax.Name, err)
		}
		if _, err := s.DeclareAxiom(ax.Name, st); err != nil {
			return nil, err
		}
	}

	p := proof.NewProof(goal)
	for i, h := range f.Hypotheses {
		st, err := proof.ParseStatement(h)
		if err != nil {
			return nil, fmt.Errorf("hypothesis %d %q: %w", i, h, err)
		}
		p.Assume(st)
	}
	for i, step := range f.Steps {
		claim, err := proof.ParseStatement(step.Claim)
		if err != nil {
			return nil, fmt.Errorf("step %d claim %q: %w", i, step.Claim, err)
		}
		refs := make([]proof.FactRef, len(step.Refs))
		for j, raw := range step.Refs {
			refs[j] = parseRef(raw)
		}
		p.AddStep(claim, step.Rule, refs...)
	}

	th := proof.NewTheorem(f.Theorem, goal)
	th.Desc = f.Description
	if err := th.Attach(p); err != nil {
		return nil, err
	}
	return th, nil
}

// parseRef maps a script reference to a fact reference. "hyp:N" and
// "step:N" pass through; anything else names an axiom.
func parseRef(raw string) proof.FactRef {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "hyp:") || strings.HasPrefix(raw, "step:") || strings.HasPrefix(raw, "axiom:") {
		return proof.FactRef(raw)
	}
	return proof.AxiomRef(raw)
}
