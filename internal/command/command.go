// Package command routes text commands to session operations. Both the
// batch CLI and the interactive prompt feed their input through the same
// dispatcher, so a verb behaves identically on either surface.
package command

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"checklistpp/internal/config"
	"checklistpp/internal/grouping"
	"checklistpp/internal/importer"
	"checklistpp/internal/markdown"
	"checklistpp/internal/session"
	"checklistpp/internal/storage"
	"checklistpp/internal/view"
)

// Result is the outcome of one dispatched command.
type Result struct {
	// Output is the text to present to the user.
	Output string
	// Err is set for operation failures; the session state is unchanged.
	Err error
	// Quit requests the interactive loop to exit.
	Quit bool
	// Mutated reports whether the command changed the checklist; the
	// interactive loop repaints after mutations when configured to.
	Mutated bool
}

// Dispatcher executes commands against one session.
type Dispatcher struct {
	Sess   *session.Session
	Styles *view.Styles
	// Width is the terminal width used by the board layout.
	Width int
	// Grouper is nil when the grouping capability is unavailable.
	Grouper *grouping.Grouper
	// Now supplies export timestamps; nil means time.Now.
	Now func() time.Time
}

func (d *Dispatcher) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Dispatcher) nowStamp() string {
	return d.now().Format("20060102_150405")
}

// New builds a dispatcher with the grouping capability resolved once.
func New(sess *session.Session, styles *view.Styles, width int) *Dispatcher {
	d := &Dispatcher{Sess: sess, Styles: styles, Width: width}
	if g, ok := grouping.Resolve(); ok {
		d.Grouper = g
	}
	return d
}

// menuVerbs maps the legacy numbered menu choices to verbs.
var menuVerbs = map[string]string{
	"1":  "show",
	"2":  "add",
	"3":  "promote",
	"4":  "regress",
	"5":  "delete",
	"6":  "mark",
	"7":  "configure",
	"8":  "view",
	"9":  "export",
	"10": "import",
	"11": "group",
	"12": "help",
	"13": "quit",
}

// aliases maps the one-letter shortcuts to verbs.
var aliases = map[string]string{
	"s": "show",
	"a": "add",
	"p": "promote",
	"r": "regress",
	"d": "delete",
	"m": "mark",
	"c": "configure",
	"v": "view",
	"e": "export",
	"i": "import",
	"g": "group",
	"h": "help",
	"q": "quit",
	"u": "undo",
}

// Execute parses and runs one command line.
func (d *Dispatcher) Execute(input string) Result {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Result{}
	}

	verb := strings.ToLower(fields[0])
	args := fields[1:]
	if mapped, ok := menuVerbs[verb]; ok {
		verb = mapped
	}
	if mapped, ok := aliases[verb]; ok {
		verb = mapped
	}

	switch verb {
	case "show":
		return d.show()
	case "add":
		return d.add(args)
	case "promote":
		return d.move(args, true)
	case "regress":
		return d.move(args, false)
	case "delete":
		return d.delete(args)
	case "mark":
		return d.mark(args)
	case "edit":
		return d.edit(args)
	case "start":
		return d.startTimer(args)
	case "stop":
		return d.stopTimer(args)
	case "due", "schedule":
		return d.schedule(args)
	case "tag":
		return d.tag(args)
	case "view":
		return d.switchView(args)
	case "export":
		return d.export(args)
	case "import":
		return d.importFile(args)
	case "group":
		return d.group(args)
	case "configure":
		return d.configure(args)
	case "switch":
		return d.switchChecklist(args)
	case "lists":
		return d.listChecklists()
	case "clear":
		return d.clear()
	case "undo":
		return d.undo()
	case "help":
		return Result{Output: HelpText()}
	case "quit", "exit":
		return Result{Quit: true, Output: "bye"}
	default:
		return Result{Err: fmt.Errorf("unrecognized command %q (try help)", fields[0])}
	}
}

// taskIndex converts a 1-based user id to a zero-based index.
func (d *Dispatcher) taskIndex(args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("task number is required")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid task number %q", args[0])
	}
	if n < 1 || n > len(d.Sess.Tasks) {
		return 0, fmt.Errorf("invalid task number %d", n)
	}
	return n - 1, nil
}

// Render returns the active view of the current checklist.
func (d *Dispatcher) Render() string {
	warnings := d.Sess.ColumnWarnings()
	if d.Sess.ViewMode == config.ViewKanban {
		return d.Styles.RenderBoard(d.Sess.Name, d.Sess.Tasks, d.Width, d.Sess.Cfg.Limits.Done, warnings)
	}
	return d.Styles.RenderList(d.Sess.Name, d.Sess.Tasks, warnings)
}

func (d *Dispatcher) show() Result {
	return Result{Output: d.Render()}
}

func (d *Dispatcher) add(args []string) Result {
	if len(args) == 0 {
		return Result{Err: fmt.Errorf("usage: add <text> [high|medium|low]")}
	}

	priority := storage.PriorityNone
	if len(args) > 1 {
		if p, ok := parsePriority(args[len(args)-1]); ok {
			priority = p
			args = args[:len(args)-1]
		}
	}

	task, truncated, err := d.Sess.Add(strings.Join(args, " "), priority)
	if err != nil {
		return Result{Err: err}
	}
	out := fmt.Sprintf("added %q (%s)", task.Text, task.Priority)
	if truncated {
		out += " [title truncated]"
	}
	return Result{Output: out, Mutated: true}
}

func (d *Dispatcher) mark(args []string) Result {
	idx, err := d.taskIndex(args)
	if err != nil {
		return Result{Err: err}
	}
	task, err := d.Sess.Mark(idx)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Output: fmt.Sprintf("marked %q done", task.Text), Mutated: true}
}

func (d *Dispatcher) delete(args []string) Result {
	idx, err := d.taskIndex(args)
	if err != nil {
		return Result{Err: err}
	}
	task, err := d.Sess.Delete(idx)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Output: fmt.Sprintf("deleted %q", task.Text), Mutated: true}
}

func (d *Dispatcher) move(args []string, forward bool) Result {
	idx, err := d.taskIndex(args)
	if err != nil {
		return Result{Err: err}
	}

	var status storage.Status
	var moved bool
	if forward {
		status, moved, err = d.Sess.Promote(idx)
	} else {
		status, moved, err = d.Sess.Regress(idx)
	}
	if err != nil {
		return Result{Err: err}
	}
	text := d.Sess.Tasks[idx].Text
	if !moved {
		return Result{Output: fmt.Sprintf("%q is already in %s", text, status)}
	}
	return Result{Output: fmt.Sprintf("moved %q to %s", text, status), Mutated: true}
}

func (d *Dispatcher) edit(args []string) Result {
	if len(args) < 2 {
		return Result{Err: fmt.Errorf("usage: edit <id> [text=<title>] [priority=<p>] [progress=<n>]")}
	}
	idx, err := d.taskIndex(args[:1])
	if err != nil {
		return Result{Err: err}
	}

	text := ""
	priority := storage.PriorityNone
	progress := -1
	for _, arg := range args[1:] {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			return Result{Err: fmt.Errorf("invalid edit field %q", arg)}
		}
		switch key {
		case "text":
			text = value
		case "priority":
			p, ok := parsePriority(value)
			if !ok {
				return Result{Err: fmt.Errorf("invalid priority %q", value)}
			}
			priority = p
		case "progress":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 || n > 100 {
				return Result{Err: fmt.Errorf("invalid progress %q: expected 0-100", value)}
			}
			progress = n
		default:
			return Result{Err: fmt.Errorf("invalid edit field %q", arg)}
		}
	}

	task, err := d.Sess.Edit(idx, text, priority, progress)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Output: fmt.Sprintf("edited %q", task.Text), Mutated: true}
}

func (d *Dispatcher) startTimer(args []string) Result {
	idx, err := d.taskIndex(args)
	if err != nil {
		return Result{Err: err}
	}
	task, err := d.Sess.StartTimer(idx)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Output: fmt.Sprintf("timer started for %q", task.Text), Mutated: true}
}

func (d *Dispatcher) stopTimer(args []string) Result {
	idx, err := d.taskIndex(args)
	if err != nil {
		return Result{Err: err}
	}
	elapsed, err := d.Sess.StopTimer(idx)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Output: fmt.Sprintf("timer stopped after %.2fs", elapsed), Mutated: true}
}

func (d *Dispatcher) schedule(args []string) Result {
	if len(args) < 2 {
		return Result{Err: fmt.Errorf("usage: due <id> <YYYY-MM-DD>")}
	}
	idx, err := d.taskIndex(args[:1])
	if err != nil {
		return Result{Err: err}
	}
	task, err := d.Sess.Schedule(idx, args[1])
	if err != nil {
		return Result{Err: err}
	}
	return Result{Output: fmt.Sprintf("%q due %s", task.Text, task.DueDate), Mutated: true}
}

func (d *Dispatcher) tag(args []string) Result {
	if len(args) < 2 {
		return Result{Err: fmt.Errorf("usage: tag <id> <tag>")}
	}
	idx, err := d.taskIndex(args[:1])
	if err != nil {
		return Result{Err: err}
	}
	if err := d.Sess.Tag(idx, args[1]); err != nil {
		return Result{Err: err}
	}
	return Result{Output: fmt.Sprintf("tagged %q #%s", d.Sess.Tasks[idx].Text, args[1]), Mutated: true}
}

func (d *Dispatcher) switchView(args []string) Result {
	if len(args) == 0 {
		mode := d.Sess.ToggleView()
		return Result{Output: "view: " + mode, Mutated: true}
	}
	switch args[0] {
	case config.ViewChecklist, config.ViewKanban:
		d.Sess.ViewMode = args[0]
		return Result{Output: "view: " + args[0], Mutated: true}
	default:
		return Result{Err: fmt.Errorf("invalid view %q: expected checklist or kanban", args[0])}
	}
}

// export writes the active checklist as markdown. The optional second
// argument overrides the output path.
func (d *Dispatcher) export(args []string) Result {
	format := "md"
	if len(args) > 0 {
		format = args[0]
	}

	var content string
	switch format {
	case "md", "markdown":
		content = markdown.Export(d.Sess.Name, d.Sess.Tasks, d.now())
	case "cursor":
		content = markdown.ExportCursor(d.Sess.Tasks)
	default:
		return Result{Err: fmt.Errorf("invalid export format %q: expected md or cursor", format)}
	}

	path := d.exportPath(format)
	if len(args) > 1 {
		path = args[1]
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return Result{Err: fmt.Errorf("create export directory: %w", err)}
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return Result{Err: fmt.Errorf("write export: %w", err)}
	}
	return Result{Output: "exported to " + path}
}

func (d *Dispatcher) exportPath(format string) string {
	return filepath.Join(d.Sess.Store.DataDir(), "exports",
		fmt.Sprintf("%s_%s.%s.md", d.Sess.Name, d.nowStamp(), format))
}

func (d *Dispatcher) importFile(args []string) Result {
	if len(args) == 0 {
		return Result{Err: fmt.Errorf("usage: import <file>")}
	}
	path := args[0]

	imp := importer.ForPath(path)
	if imp == nil {
		return Result{Err: fmt.Errorf("unsupported import file %q: expected one of %s",
			path, strings.Join(importer.SupportedExtensions(), ", "))}
	}
	f, err := os.Open(path)
	if err != nil {
		return Result{Err: fmt.Errorf("open import file: %w", err)}
	}
	defer f.Close()

	result, err := imp.Import(f, d.Sess.Store, d.Sess.Name)
	if err != nil {
		return Result{Err: err}
	}
	if err := d.Sess.Reload(); err != nil {
		return Result{Err: err}
	}

	out := fmt.Sprintf("imported %d tasks from %s", result.Imported, path)
	for _, e := range result.Errors {
		out += "\nskipped: " + e
	}
	return Result{Output: out, Mutated: true}
}

// group clusters pending tasks by shared keywords. "group save" writes the
// clusters back as tags.
func (d *Dispatcher) group(args []string) Result {
	if d.Grouper == nil {
		return Result{Output: "smart grouping is not available"}
	}

	pending := storage.Checklist{}
	numbers := []int{}
	for i := range d.Sess.Tasks {
		if d.Sess.Tasks[i].Completed {
			continue
		}
		pending = append(pending, d.Sess.Tasks[i])
		numbers = append(numbers, i)
	}
	if len(pending) < d.Grouper.MinGroupSize {
		return Result{Output: fmt.Sprintf("need at least %d pending tasks to group", d.Grouper.MinGroupSize)}
	}

	groups := d.Grouper.GroupTasks(pending)
	if len(groups) == 0 {
		return Result{Output: "no keyword groups found"}
	}

	save := len(args) > 0 && args[0] == "save"
	var b strings.Builder
	for _, g := range groups {
		fmt.Fprintf(&b, "%s:", g.Keyword)
		for _, n := range g.Numbers {
			orig := numbers[n-1]
			fmt.Fprintf(&b, " %d", orig+1)
			if save {
				if err := d.Sess.Tag(orig, grouping.TagName(g.Keyword)); err != nil {
					return Result{Err: err}
				}
			}
		}
		b.WriteString("\n")
	}
	if save {
		b.WriteString("group tags saved")
	}
	return Result{Output: strings.TrimRight(b.String(), "\n"), Mutated: save}
}

// configure shows or updates configuration keys.
func (d *Dispatcher) configure(args []string) Result {
	cfg := d.Sess.Cfg
	if len(args) == 0 {
		return Result{Output: configSummary(cfg)}
	}

	key, value, found := strings.Cut(args[0], "=")
	if !found {
		return Result{Err: fmt.Errorf("usage: configure <key>=<value>")}
	}
	if err := applyConfigValue(cfg, key, value); err != nil {
		return Result{Err: err}
	}
	if err := cfg.Save(); err != nil {
		return Result{Err: fmt.Errorf("save config: %w", err)}
	}
	return Result{Output: fmt.Sprintf("%s = %s", key, value)}
}

func (d *Dispatcher) switchChecklist(args []string) Result {
	if len(args) == 0 {
		return Result{Err: fmt.Errorf("usage: switch <name>")}
	}
	if err := d.Sess.SwitchChecklist(args[0]); err != nil {
		return Result{Err: err}
	}
	return Result{Output: "checklist: " + args[0], Mutated: true}
}

func (d *Dispatcher) listChecklists() Result {
	names, err := d.Sess.Store.ListChecklists()
	if err != nil {
		return Result{Err: err}
	}
	if len(names) == 0 {
		return Result{Output: "no checklists"}
	}
	return Result{Output: strings.Join(names, "\n")}
}

func (d *Dispatcher) clear() Result {
	if err := d.Sess.Clear(); err != nil {
		return Result{Err: err}
	}
	return Result{Output: "checklist cleared", Mutated: true}
}

func (d *Dispatcher) undo() Result {
	desc, err := d.Sess.Undo()
	if err != nil {
		return Result{Err: err}
	}
	if desc == "" {
		return Result{Output: "nothing to undo"}
	}
	return Result{Output: "undid: " + desc, Mutated: true}
}

func parsePriority(s string) (storage.Priority, bool) {
	switch strings.ToLower(s) {
	case "high":
		return storage.PriorityHigh, true
	case "medium":
		return storage.PriorityMedium, true
	case "low":
		return storage.PriorityLow, true
	}
	return storage.PriorityNone, false
}
