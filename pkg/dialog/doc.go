// Package dialog implements a stack-based conversational orchestrator.
//
// A conversation is driven by named dialogs. Each dialog is a waterfall: an
// ordered sequence of steps executed one after another, threading each step's
// result into the next. A step may emit activities to the user, begin a child
// dialog, prompt the user for a validated reply, or end the dialog and hand a
// result back to its parent.
//
// Nothing stays live between turns. The whole in-flight computation is a
// serializable Stack of Frames; suspension is represented by a pending prompt
// plus an unadvanced step index, and resumption is a pure function of the
// persisted stack and the new input.
package dialog
