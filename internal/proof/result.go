package proof

import "fmt"

// Reason classifies why a verification failed. All reasons are local,
// recoverable-by-caller conditions; verification never aborts a batch.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonInvalidStep      Reason = "invalid_step"       // claim does not follow from cited facts
	ReasonGoalNotReached   Reason = "goal_not_reached"   // all steps valid, final claim != goal
	ReasonForwardReference Reason = "forward_reference"  // cites a fact not yet established
	ReasonUnknownRule      Reason = "unknown_rule"       // justification names no known rule
	ReasonProofTooLong     Reason = "proof_too_long"     // step count exceeds the ceiling
)

// NoFailingStep is the FailingStep value of a successful result (or a
// failure not attributable to a single step).
const NoFailingStep = -1

// Result is the verdict of checking one proof. Freshly produced per
// verification call and never mutated after return.
type Result struct {
	Success     bool
	FailingStep int    // first failing step position, or NoFailingStep
	Reason      Reason
	Detail      string // human-readable diagnostic for the failure

	// Trace lists the facts consulted, in resolution order.
	Trace []FactRef
}

func success(trace []FactRef) Result {
	return Result{Success: true, FailingStep: NoFailingStep, Trace: trace}
}

func failure(step int, reason Reason, detail string, trace []FactRef) Result {
	return Result{
		Success:     false,
		FailingStep: step,
		Reason:      reason,
		Detail:      detail,
		Trace:       trace,
	}
}

func (r Result) String() string {
	if r.Success {
		return fmt.Sprintf("valid (%d facts consulted)", len(r.Trace))
	}
	if r.FailingStep == NoFailingStep {
		return fmt.Sprintf("invalid: %s (%s)", r.Reason, r.Detail)
	}
	return fmt.Sprintf("invalid at step %d: %s (%s)", r.FailingStep, r.Reason, r.Detail)
}
