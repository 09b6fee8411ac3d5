// Package atende is the high-level entry point for the conversational
// order-assistant engine.
//
// A Bot runs named waterfall dialogs over a persisted per-conversation stack:
// each turn loads the stack, routes the user's input to the pending prompt or
// the next step, drains the resulting cascade of step executions and dialog
// completions, and saves the stack back under an optimistic version check.
// Turns for the same conversation are serialized; distinct conversations
// proceed in parallel.
//
// The engine pieces live in pkg/dialog (domain types), pkg/ports (storage and
// locking boundaries), pkg/adapters (memory and Redis implementations) and
// pkg/session (per-conversation locking). This package wires them together.
package atende
