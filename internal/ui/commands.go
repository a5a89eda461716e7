// This file contains tea.Cmd factories wrapping the command dispatcher so
// checklist I/O stays off the Bubble Tea event loop.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"checklistpp/internal/command"
)

// statusDisplayTime is how long a transient status message stays visible.
const statusDisplayTime = 5 * time.Second

// executeCmd runs one command line through the dispatcher.
func executeCmd(disp *command.Dispatcher, input string) tea.Cmd {
	return func() tea.Msg {
		return commandResultMsg{input: input, result: disp.Execute(input)}
	}
}

// clearStatusCmd schedules the status line to clear. The sequence number
// keeps an old timer from wiping a newer message.
func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusDisplayTime, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
