package dialog

import (
	"strconv"
	"strings"
)

// PromptKind selects the validator for a pending prompt. The set is closed:
// each kind has a dedicated validation function dispatched by this tag.
type PromptKind string

const (
	PromptText    PromptKind = "text"
	PromptNumber  PromptKind = "number"
	PromptChoice  PromptKind = "choice"
	PromptConfirm PromptKind = "confirm"
)

// DefaultMaxRetries is the number of re-prompts issued before a prompt
// resolves as a cancelled dialog.
const DefaultMaxRetries = 2

// Choice maps free-form reply text back to a canonical value.
type Choice struct {
	Value    string   `json:"value"`
	Label    string   `json:"label"`
	Synonyms []string `json:"synonyms,omitempty"`
}

// NewChoice builds a choice whose canonical value is its label.
func NewChoice(label string, synonyms ...string) Choice {
	return Choice{Value: label, Label: label, Synonyms: synonyms}
}

// PromptRequest is what a step returns to suspend and ask the user a question.
type PromptRequest struct {
	Kind       PromptKind
	Text       string
	RetryText  string   // re-prompt qualifier; defaults to Text
	Choices    []Choice // choice prompts only
	Min, Max   *float64 // number prompts only, inclusive
	MaxRetries int      // 0 means DefaultMaxRetries
}

// PromptState is the persisted form of a pending prompt, attached to the frame
// that issued it and cleared on successful validation or retry exhaustion.
type PromptState struct {
	Kind       PromptKind `json:"kind"`
	Text       string     `json:"text"`
	RetryText  string     `json:"retryText,omitempty"`
	Choices    []Choice   `json:"choices,omitempty"`
	Min        *float64   `json:"min,omitempty"`
	Max        *float64   `json:"max,omitempty"`
	RetryCount int        `json:"retryCount"`
	MaxRetries int        `json:"maxRetries"`
}

// BeginPrompt suspends the frame on a new pending prompt and emits the
// question. The step index is deliberately not advanced: the suspended step
// re-resolves on the next turn through the persisted PromptState.
func BeginPrompt(tc *TurnContext, frame *Frame, req PromptRequest) {
	retries := req.MaxRetries
	if retries <= 0 {
		retries = DefaultMaxRetries
	}
	frame.Prompt = &PromptState{
		Kind:       req.Kind,
		Text:       req.Text,
		RetryText:  req.RetryText,
		Choices:    req.Choices,
		Min:        req.Min,
		Max:        req.Max,
		MaxRetries: retries,
	}
	tc.SendActivity(frame.Prompt.activity(frame.Prompt.Text))
}

// activity renders the prompt question with its choice buttons, if any.
func (p *PromptState) activity(text string) Activity {
	a := Activity{Text: text}
	for _, c := range p.Choices {
		a.Choices = append(a.Choices, ChoiceButton{Label: c.Label})
	}
	return a
}

// RetryActivity renders the re-prompt, preferring the configured retry text.
func (p *PromptState) RetryActivity() Activity {
	text := p.RetryText
	if text == "" {
		text = p.Text
	}
	return p.activity(text)
}

// Validate runs the prompt's validator against the turn input. It returns the
// validated value and whether the reply was accepted.
func (p *PromptState) Validate(input Input) (any, bool) {
	if p.Kind == PromptChoice && input.ChoiceIndex != nil {
		idx := *input.ChoiceIndex
		if idx >= 1 && idx <= len(p.Choices) {
			return p.Choices[idx-1].Value, true
		}
		return nil, false
	}

	reply := strings.TrimSpace(input.Text)
	switch p.Kind {
	case PromptText:
		if reply == "" {
			return nil, false
		}
		return reply, true
	case PromptNumber:
		return p.validateNumber(reply)
	case PromptChoice:
		return p.validateChoice(reply)
	case PromptConfirm:
		return validateConfirm(reply)
	}
	return nil, false
}

func (p *PromptState) validateNumber(reply string) (any, bool) {
	// Accept Brazilian decimal commas.
	n, err := strconv.ParseFloat(strings.ReplaceAll(reply, ",", "."), 64)
	if err != nil {
		return nil, false
	}
	if p.Min != nil && n < *p.Min {
		return nil, false
	}
	if p.Max != nil && n > *p.Max {
		return nil, false
	}
	return n, true
}

// validateChoice matches the reply case-insensitively against each choice's
// label and synonyms, and also accepts a 1-based ordinal index into the list.
// Ambiguous or unmatched replies are rejected.
func (p *PromptState) validateChoice(reply string) (any, bool) {
	if reply == "" {
		return nil, false
	}

	if idx, err := strconv.Atoi(reply); err == nil {
		if idx >= 1 && idx <= len(p.Choices) {
			return p.Choices[idx-1].Value, true
		}
		return nil, false
	}

	var matches []string
	for _, c := range p.Choices {
		if matchesChoice(reply, c) {
			matches = append(matches, c.Value)
		}
	}
	if len(matches) != 1 {
		return nil, false
	}
	return matches[0], true
}

func matchesChoice(reply string, c Choice) bool {
	if strings.EqualFold(reply, c.Label) {
		return true
	}
	for _, syn := range c.Synonyms {
		if strings.EqualFold(reply, syn) {
			return true
		}
	}
	return false
}

// Fixed confirm vocabulary, English and Portuguese.
var (
	affirmatives = []string{"yes", "y", "sim", "s", "claro", "ok", "true", "1"}
	negatives    = []string{"no", "n", "não", "nao", "false", "0"}
)

func validateConfirm(reply string) (any, bool) {
	lower := strings.ToLower(reply)
	for _, word := range affirmatives {
		if lower == word {
			return true, true
		}
	}
	for _, word := range negatives {
		if lower == word {
			return false, true
		}
	}
	return nil, false
}
