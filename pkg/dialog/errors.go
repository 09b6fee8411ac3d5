package dialog

import "errors"

// ErrUnknownDialog is returned when a dialog name is not present in the registry.
var ErrUnknownDialog = errors.New("unknown dialog")

// ErrEmptyStack is returned when popping a stack that has no frames.
var ErrEmptyStack = errors.New("empty dialog stack")

// ErrRegistryMismatch is returned when a persisted stack references a dialog
// that is not registered. This is a configuration error, not a recoverable
// runtime condition: the frames are never silently dropped.
var ErrRegistryMismatch = errors.New("persisted stack references unregistered dialog")

// ErrStackNotFound is returned when a conversation has no persisted stack.
var ErrStackNotFound = errors.New("conversation stack not found")

// ErrVersionConflict is returned when a save loses the optimistic concurrency
// check, e.g. on duplicate delivery of the same turn.
var ErrVersionConflict = errors.New("stack version conflict")

// ErrCascadeOverflow is returned when dialog completions cascade deeper than
// the configured limit within a single turn. It indicates misconfigured
// dialogs that begin and end each other indefinitely.
var ErrCascadeOverflow = errors.New("dialog cascade depth exceeded")
