package dialog

// Input carries the ingress of one turn: what the user sent through the channel.
type Input struct {
	UserID      string `json:"userId,omitempty"`
	Text        string `json:"text,omitempty"`
	ChoiceIndex *int   `json:"choiceIndex,omitempty"` // 1-based, set by channels with native buttons
}

// Activity is one outgoing message to render to the user.
type Activity struct {
	Text    string         `json:"text,omitempty"`
	Choices []ChoiceButton `json:"choices,omitempty"`
	Card    *HeroCard      `json:"card,omitempty"`
}

// ChoiceButton is a suggested action rendered alongside an activity.
type ChoiceButton struct {
	Label string `json:"label"`
}

// HeroCard is a rich card with an optional image and buttons.
type HeroCard struct {
	Title    string       `json:"title,omitempty"`
	Subtitle string       `json:"subtitle,omitempty"`
	Text     string       `json:"text,omitempty"`
	Images   []string     `json:"images,omitempty"`
	Buttons  []CardAction `json:"buttons,omitempty"`
}

// CardAction is a button on a HeroCard.
type CardAction struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// TurnContext exposes the current turn's input and output channel to step
// handlers. Activities are collected in order and returned to the caller once
// the turn drains; nothing is flushed on persistence failure.
type TurnContext struct {
	ConversationID string
	Input          Input

	activities []Activity
}

// NewTurnContext creates the context for one turn.
func NewTurnContext(conversationID string, input Input) *TurnContext {
	return &TurnContext{ConversationID: conversationID, Input: input}
}

// SendText queues a plain text activity.
func (tc *TurnContext) SendText(text string) {
	tc.SendActivity(Activity{Text: text})
}

// SendActivity queues an activity for the user.
func (tc *TurnContext) SendActivity(a Activity) {
	tc.activities = append(tc.activities, a)
}

// Activities returns the ordered activities collected during the turn.
func (tc *TurnContext) Activities() []Activity {
	return tc.activities
}
