// This file contains the main App model: the active checklist view above a
// command prompt, with a transient status line between them.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"checklistpp/internal/command"
	"checklistpp/internal/view"
)

// App is the interactive loop model. All checklist state lives in the
// dispatcher's session; the model only holds presentation state.
type App struct {
	disp   *command.Dispatcher
	styles *view.Styles

	input     textinput.Model
	content   string
	status    string
	statusErr bool
	statusSeq int
	width     int
	height    int
	busy      bool
	quitting  bool
}

// NewApp creates the interactive model around a dispatcher.
func NewApp(disp *command.Dispatcher, styles *view.Styles) *App {
	input := textinput.New()
	input.Prompt = "> "
	input.PromptStyle = styles.PromptStyle
	input.Placeholder = "command (help for a list)"
	input.CharLimit = 256
	input.Focus()

	return &App{
		disp:    disp,
		styles:  styles,
		input:   input,
		content: disp.Render(),
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.disp.Width = msg.Width
		a.input.Width = msg.Width - 4
		a.content = a.disp.Render()
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			a.quitting = true
			return a, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(a.input.Value())
			a.input.SetValue("")
			if line == "" || a.busy {
				return a, nil
			}
			a.busy = true
			return a, executeCmd(a.disp, line)
		}

	case commandResultMsg:
		a.busy = false
		return a.applyResult(msg.result)

	case clearStatusMsg:
		if msg.seq == a.statusSeq {
			a.status = ""
			a.statusErr = false
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// applyResult folds a dispatcher result into the model: quit, repaint on
// mutation, and the transient status line.
func (a *App) applyResult(res command.Result) (tea.Model, tea.Cmd) {
	if res.Quit {
		a.quitting = true
		return a, tea.Quit
	}

	if res.Err != nil {
		a.status = res.Err.Error()
		a.statusErr = true
	} else {
		a.status = res.Output
		a.statusErr = false
	}
	a.statusSeq++

	if res.Err == nil && res.Mutated && a.disp.Sess.Cfg.Repaint {
		a.content = a.disp.Render()
	} else if res.Err == nil && !res.Mutated && strings.Contains(res.Output, "\n") {
		// Multi-line read-only output (show, help, group) replaces the
		// content area instead of the one-line status.
		a.content = res.Output
		a.status = ""
	}

	var cmd tea.Cmd
	if a.status != "" {
		cmd = clearStatusCmd(a.statusSeq)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(a.content)
	if !strings.HasSuffix(a.content, "\n") {
		b.WriteString("\n")
	}

	if a.status != "" {
		style := a.styles.StatusStyle
		if a.statusErr {
			style = a.styles.ErrorStyle
		}
		b.WriteString(style.Render(a.status))
		b.WriteString("\n")
	}

	b.WriteString(a.input.View())
	return b.String()
}

// Run starts the interactive loop and blocks until quit.
func Run(disp *command.Dispatcher, styles *view.Styles) error {
	p := tea.NewProgram(NewApp(disp, styles))
	_, err := p.Run()
	return err
}
