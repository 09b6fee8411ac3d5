package dialog

import "fmt"

// Frame is one activation of a dialog on the stack: which dialog, which step
// runs next, the state accumulated by that dialog's own steps, and the pending
// prompt if the frame is suspended waiting for a reply. State is never visible
// to other frames.
type Frame struct {
	Dialog string         `json:"dialog"`
	Step   int            `json:"step"`
	State  map[string]any `json:"state,omitempty"`
	Prompt *PromptState   `json:"prompt,omitempty"`
}

// Stack is the persisted unit of a conversation: an ordered sequence of
// frames, top (last element) being the active one. Every frame below the top
// is waiting for the frame above it to end and return a result. Version is the
// optimistic concurrency token checked by stores on save.
type Stack struct {
	Version int64    `json:"version"`
	Frames  []*Frame `json:"frames"`
}

// NewStack returns an empty stack at version zero.
func NewStack() *Stack {
	return &Stack{}
}

// Push creates a frame for the named dialog at step zero, seeding its local
// state from options, and makes it the new top. Fails with ErrUnknownDialog if
// the name is not registered.
func (s *Stack) Push(reg *Registry, name string, options map[string]any) (*Frame, error) {
	if _, ok := reg.Lookup(name); !ok {
		return nil, fmt.Errorf("push %q: %w", name, ErrUnknownDialog)
	}

	state := make(map[string]any, len(options))
	for k, v := range options {
		state[k] = v
	}

	frame := &Frame{Dialog: name, State: state}
	s.Frames = append(s.Frames, frame)
	return frame, nil
}

// Pop removes and returns the top frame.
func (s *Stack) Pop() (*Frame, error) {
	if len(s.Frames) == 0 {
		return nil, ErrEmptyStack
	}
	top := s.Frames[len(s.Frames)-1]
	s.Frames = s.Frames[:len(s.Frames)-1]
	return top, nil
}

// Peek returns the top frame without mutation, or nil when empty.
func (s *Stack) Peek() *Frame {
	if len(s.Frames) == 0 {
		return nil
	}
	return s.Frames[len(s.Frames)-1]
}

// Depth returns the number of frames.
func (s *Stack) Depth() int {
	return len(s.Frames)
}

// Validate rejects a deserialized stack whose frames reference dialogs absent
// from the registry.
func (s *Stack) Validate(reg *Registry) error {
	for _, frame := range s.Frames {
		if _, ok := reg.Lookup(frame.Dialog); !ok {
			return fmt.Errorf("frame %q: %w", frame.Dialog, ErrRegistryMismatch)
		}
	}
	return nil
}
