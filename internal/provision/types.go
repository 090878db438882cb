package provision

// ProbeState classifies what a probe found on the live machine.
type ProbeState string

const (
	// StateSatisfied means the probed condition already holds.
	StateSatisfied ProbeState = "satisfied"
	// StateUnsatisfied means the condition does not hold and the paired
	// action should run.
	StateUnsatisfied ProbeState = "unsatisfied"
	// StateUnknown means the probe itself failed and the run cannot
	// safely decide either way.
	StateUnknown ProbeState = "unknown"
)

// ProbeResult carries the probe's verdict plus a human-readable reason
// for unsatisfied verdicts and the underlying error for unknown ones.
type ProbeResult struct {
	State  ProbeState
	Reason string
	Err    error
}

// Satisfied constructs a satisfied probe result.
func Satisfied() ProbeResult {
	return ProbeResult{State: StateSatisfied}
}

// Unsatisfied constructs an unsatisfied probe result with a reason.
func Unsatisfied(reason string) ProbeResult {
	return ProbeResult{State: StateUnsatisfied, Reason: reason}
}

// Unknown constructs an unknown probe result carrying the probe error.
func Unknown(err error) ProbeResult {
	return ProbeResult{State: StateUnknown, Err: err}
}

// Probe is a read-only check of current machine state used to decide
// whether an action is needed.
type Probe interface {
	Check() ProbeResult
}

// Action is a mutating, idempotent provisioning step. Apply must be
// safe to invoke even when the paired probe would report satisfied.
type Action interface {
	Apply() error
}

// Outcome classifies how a step ended.
type Outcome string

const (
	// OutcomeSatisfied means the probe short-circuited the action.
	OutcomeSatisfied Outcome = "satisfied"
	// OutcomePerformed means the action ran and succeeded.
	OutcomePerformed Outcome = "performed"
	// OutcomeFailed means the probe or action failed and the run stops.
	OutcomeFailed Outcome = "failed"
)

// RunResult records the outcome of a single step.
type RunResult struct {
	StepName string  `json:"step"`
	Outcome  Outcome `json:"outcome"`
	Message  string  `json:"message,omitempty"`
}

// RunReport aggregates the results of one provisioning run.
type RunReport struct {
	StartedAt  string      `json:"started_at"`
	FinishedAt string      `json:"finished_at"`
	Platform   string      `json:"platform"`
	Success    bool        `json:"success"`
	Results    []RunResult `json:"results"`
}

// Step pairs a name with an optional probe and an optional action.
// Probe without action: a gate that must hold for the run to continue.
// Action without probe: unconditional, runs every invocation.
// Both: skip-if-satisfied.
type Step struct {
	Name   string
	Probe  Probe
	Action Action
	// GateMessage replaces the generic failure text when a probe-only
	// step does not hold. It carries operator guidance.
	GateMessage string
}
