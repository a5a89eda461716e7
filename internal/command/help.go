package command

import (
	"fmt"
	"strconv"
	"strings"

	"checklistpp/internal/config"
)

// HelpText returns the command reference shown by the help verb and the
// batch CLI usage.
func HelpText() string {
	return strings.TrimLeft(`
Commands (verb, one-letter alias, legacy menu number):

   1  show       s   render the active view
   2  add        a   add <text> [high|medium|low]
   3  promote    p   promote <id>  move one column forward
   4  regress    r   regress <id>  move one column back
   5  delete     d   delete <id>
   6  mark       m   mark <id>     complete a task
   7  configure  c   configure [<key>=<value>]
   8  view       v   view [checklist|kanban]
   9  export     e   export [md|cursor] [path]
  10  import     i   import <file> (.md or .json)
  11  group      g   group [save]  cluster tasks by keyword
  12  help       h
  13  quit       q

      edit           edit <id> text=<t> priority=<p> progress=<n>
      start/stop     start <id> / stop <id>  time tracking
      due            due <id> <YYYY-MM-DD>
      tag            tag <id> <tag>
      switch         switch <name>  change checklist
      lists          list stored checklists
      clear          remove all tasks
      undo       u   revert the last change (one step)

Task ids are the numbers shown by show; they are 1-based and stable
across the list and board views.
`, "\n")
}

// configSummary renders the current configuration.
func configSummary(cfg *config.Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "data_dir        %s\n", cfg.GetDataDir())
	fmt.Fprintf(&b, "limits.todo     %d\n", cfg.Limits.Todo)
	fmt.Fprintf(&b, "limits.progress %d\n", cfg.Limits.Progress)
	fmt.Fprintf(&b, "limits.done     %d\n", cfg.Limits.Done)
	fmt.Fprintf(&b, "limits.taskname %d\n", cfg.Limits.TaskName)
	fmt.Fprintf(&b, "repaint         %t\n", cfg.Repaint)
	fmt.Fprintf(&b, "default_view    %s", cfg.DefaultView)
	return b.String()
}

// applyConfigValue sets one configuration key from its text value.
func applyConfigValue(cfg *config.Config, key, value string) error {
	positive := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return 0, fmt.Errorf("invalid value %q for %s: expected a positive integer", value, key)
		}
		return n, nil
	}

	switch key {
	case "data_dir":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("data_dir cannot be empty")
		}
		cfg.DataDir = value
	case "limits.todo":
		n, err := positive()
		if err != nil {
			return err
		}
		cfg.Limits.Todo = n
	case "limits.progress":
		n, err := positive()
		if err != nil {
			return err
		}
		cfg.Limits.Progress = n
	case "limits.done":
		n, err := positive()
		if err != nil {
			return err
		}
		cfg.Limits.Done = n
	case "limits.taskname":
		n, err := positive()
		if err != nil {
			return err
		}
		cfg.Limits.TaskName = n
	case "repaint":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for repaint: expected true or false", value)
		}
		cfg.Repaint = b
	case "default_view":
		if value != config.ViewChecklist && value != config.ViewKanban {
			return fmt.Errorf("invalid view %q: expected checklist or kanban", value)
		}
		cfg.DefaultView = value
	default:
		return fmt.Errorf("unknown configuration key %q", key)
	}
	return nil
}
