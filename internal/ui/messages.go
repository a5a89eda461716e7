// Package ui provides the interactive terminal loop for checklistpp: the
// active view rendered above a command prompt, driven by the same dispatcher
// the batch CLI uses. This file defines message types for the Bubble Tea
// command pattern.
package ui

import "checklistpp/internal/command"

// commandResultMsg is sent when a dispatched command completes.
type commandResultMsg struct {
	input  string
	result command.Result
}

// clearStatusMsg hides a transient status message after its display period.
type clearStatusMsg struct {
	seq int
}
