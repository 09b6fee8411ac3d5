package dialog

// Status classifies how a dialog ended.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// Result is what an ended dialog hands back to the step that began it.
type Result struct {
	Status Status `json:"status"`
	Value  any    `json:"value,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// OutcomeKind tags a StepOutcome.
type OutcomeKind int

const (
	OutcomeContinue OutcomeKind = iota
	OutcomeBegin
	OutcomePrompt
	OutcomeEnd
)

// OutcomePayload carries the data of an unpacked StepOutcome. Which fields are
// meaningful depends on the kind.
type OutcomePayload struct {
	Value   any            // Continue: next step's incoming result
	State   map[string]any // Continue: merged into the frame's local state
	Dialog  string         // Begin: child dialog name
	Options map[string]any // Begin: child's initial state
	Prompt  PromptRequest  // Prompt
	Result  Result         // End
}

// StepOutcome is the tagged result of running one waterfall step. It is the
// only way control moves through the stack; construct it with Next, Begin,
// Prompt, End, Cancel or Fail.
type StepOutcome struct {
	kind    OutcomeKind
	payload OutcomePayload
}

// Unpack returns the outcome's tag and payload for interpretation by the
// waterfall runner.
func (o StepOutcome) Unpack() (OutcomeKind, OutcomePayload) {
	return o.kind, o.payload
}

// Next continues to the next step within the same turn, delivering value as
// that step's incoming result.
func Next(value any) StepOutcome {
	return StepOutcome{kind: OutcomeContinue, payload: OutcomePayload{Value: value}}
}

// NextWith behaves like Next and additionally merges state into the frame's
// local state before advancing.
func NextWith(value any, state map[string]any) StepOutcome {
	return StepOutcome{kind: OutcomeContinue, payload: OutcomePayload{Value: value, State: state}}
}

// Begin pushes a child dialog. The current step is the continuation point: it
// is advanced only when the child ends, and the child's Result arrives as the
// following step's incoming result.
func Begin(name string, options map[string]any) StepOutcome {
	return StepOutcome{kind: OutcomeBegin, payload: OutcomePayload{Dialog: name, Options: options}}
}

// Prompt suspends the frame until the user replies with input that passes the
// prompt's validator.
func Prompt(req PromptRequest) StepOutcome {
	return StepOutcome{kind: OutcomePrompt, payload: OutcomePayload{Prompt: req}}
}

// End completes the dialog successfully with the given result value.
func End(value any) StepOutcome {
	return StepOutcome{kind: OutcomeEnd, payload: OutcomePayload{Result: Result{Status: StatusCompleted, Value: value}}}
}

// Cancel ends the dialog as cancelled.
func Cancel() StepOutcome {
	return StepOutcome{kind: OutcomeEnd, payload: OutcomePayload{Result: Result{Status: StatusCancelled}}}
}

// Fail ends the dialog as failed. The reason travels to the parent dialog,
// never to the user.
func Fail(reason string) StepOutcome {
	return StepOutcome{kind: OutcomeEnd, payload: OutcomePayload{Result: Result{Status: StatusFailed, Reason: reason}}}
}
