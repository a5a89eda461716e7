package command

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"checklistpp/internal/config"
	"checklistpp/internal/session"
	"checklistpp/internal/storage"
	"checklistpp/internal/view"
)

func createTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)

	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}
	sess, err := session.New(store, config.Default(), "work")
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	// Grouping is resolved separately; keep the dispatcher deterministic.
	return &Dispatcher{
		Sess:   sess,
		Styles: view.NewStylesFromTheme(&config.ThemeConfig{}),
		Width:  80,
		Now:    func() time.Time { return time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC) },
	}
}

func mustExecute(t *testing.T, d *Dispatcher, input string) Result {
	t.Helper()
	res := d.Execute(input)
	if res.Err != nil {
		t.Fatalf("Execute(%q) error = %v", input, res.Err)
	}
	return res
}

func TestExecute_AddMarkShowScenario(t *testing.T) {
	d := createTestDispatcher(t)

	res := mustExecute(t, d, "add Write report")
	if !res.Mutated || !strings.Contains(res.Output, "Write report") {
		t.Errorf("add result = %+v", res)
	}

	out := mustExecute(t, d, "show").Output
	if !strings.Contains(out, "1. [ ] Write report") || !strings.Contains(out, "Medium") {
		t.Errorf("show after add:\n%s", out)
	}

	mustExecute(t, d, "mark 1")
	out = mustExecute(t, d, "show").Output
	if !strings.Contains(out, "1. [x] Write report") {
		t.Errorf("show after mark:\n%s", out)
	}
	if d.Sess.Tasks[0].Status != storage.StatusDone || !d.Sess.Tasks[0].Completed {
		t.Errorf("task after mark = %+v", d.Sess.Tasks[0])
	}
}

func TestExecute_AddWithPriority(t *testing.T) {
	d := createTestDispatcher(t)

	mustExecute(t, d, "add Fix the build high")
	if d.Sess.Tasks[0].Text != "Fix the build" || d.Sess.Tasks[0].Priority != storage.PriorityHigh {
		t.Errorf("task = %+v, want 'Fix the build' High", d.Sess.Tasks[0])
	}

	// A trailing word that is not a priority stays in the title
	mustExecute(t, d, "add Walk the dog")
	if d.Sess.Tasks[1].Text != "Walk the dog" {
		t.Errorf("Text = %q, want 'Walk the dog'", d.Sess.Tasks[1].Text)
	}
}

func TestExecute_AliasesAndMenuNumbers(t *testing.T) {
	d := createTestDispatcher(t)

	mustExecute(t, d, "a Task one")
	if len(d.Sess.Tasks) != 1 {
		t.Fatal("alias 'a' did not add")
	}

	mustExecute(t, d, "2 Task two")
	if len(d.Sess.Tasks) != 2 {
		t.Fatal("menu number '2' did not add")
	}

	mustExecute(t, d, "m 1")
	if !d.Sess.Tasks[0].Completed {
		t.Error("alias 'm' did not mark")
	}

	res := d.Execute("13")
	if !res.Quit {
		t.Error("menu number '13' did not quit")
	}
	res = d.Execute("q")
	if !res.Quit {
		t.Error("alias 'q' did not quit")
	}
}

func TestExecute_PromoteRegress(t *testing.T) {
	d := createTestDispatcher(t)
	mustExecute(t, d, "add climb")

	res := mustExecute(t, d, "promote 1")
	if !strings.Contains(res.Output, "Progress") {
		t.Errorf("promote output = %q", res.Output)
	}
	mustExecute(t, d, "p 1")
	if d.Sess.Tasks[0].Status != storage.StatusDone || !d.Sess.Tasks[0].Completed {
		t.Errorf("task after two promotes = %+v", d.Sess.Tasks[0])
	}

	// Boundary no-op reports without mutating
	res = mustExecute(t, d, "promote 1")
	if res.Mutated || !strings.Contains(res.Output, "already in Done") {
		t.Errorf("boundary promote = %+v", res)
	}

	mustExecute(t, d, "regress 1")
	if d.Sess.Tasks[0].Completed {
		t.Error("regress from Done did not clear completed")
	}
}

func TestExecute_InvalidIDs(t *testing.T) {
	d := createTestDispatcher(t)
	mustExecute(t, d, "add only one")

	for _, input := range []string{"mark", "mark zero", "mark 0", "mark 2", "delete -1", "promote x"} {
		res := d.Execute(input)
		if res.Err == nil {
			t.Errorf("Execute(%q) succeeded, want error", input)
		}
		if res.Mutated {
			t.Errorf("Execute(%q) reported a mutation", input)
		}
	}

	// State unchanged after the failures
	if len(d.Sess.Tasks) != 1 || d.Sess.Tasks[0].Completed {
		t.Errorf("tasks after failed commands = %+v", d.Sess.Tasks)
	}
}

func TestExecute_Unrecognized(t *testing.T) {
	d := createTestDispatcher(t)
	res := d.Execute("frobnicate 1")
	if res.Err == nil || !strings.Contains(res.Err.Error(), "unrecognized command") {
		t.Errorf("result = %+v, want unrecognized command error", res)
	}
}

func TestExecute_Edit(t *testing.T) {
	d := createTestDispatcher(t)
	mustExecute(t, d, "add draft")

	mustExecute(t, d, "edit 1 text=final priority=high progress=80")
	task := d.Sess.Tasks[0]
	if task.Text != "final" || task.Priority != storage.PriorityHigh || task.Progress != 80 {
		t.Errorf("task = %+v", task)
	}

	if res := d.Execute("edit 1 progress=1000"); res.Err == nil {
		t.Error("edit with progress=1000 succeeded")
	}
	if res := d.Execute("edit 1 color=red"); res.Err == nil {
		t.Error("edit with unknown field succeeded")
	}
}

func TestExecute_DueAndTag(t *testing.T) {
	d := createTestDispatcher(t)
	mustExecute(t, d, "add errand")

	mustExecute(t, d, "due 1 2026-05-01")
	if d.Sess.Tasks[0].DueDate != "2026-05-01" {
		t.Errorf("DueDate = %q", d.Sess.Tasks[0].DueDate)
	}
	if res := d.Execute("due 1 soon"); res.Err == nil {
		t.Error("due with invalid date succeeded")
	}

	mustExecute(t, d, "tag 1 errands")
	if len(d.Sess.Tasks[0].Tags) != 1 || d.Sess.Tasks[0].Tags[0] != "errands" {
		t.Errorf("Tags = %v", d.Sess.Tasks[0].Tags)
	}
}

func TestExecute_View(t *testing.T) {
	d := createTestDispatcher(t)
	mustExecute(t, d, "add sample")

	mustExecute(t, d, "view kanban")
	out := mustExecute(t, d, "show").Output
	if !strings.Contains(out, "Board: work") || !strings.Contains(out, "Todo (1)") {
		t.Errorf("kanban show:\n%s", out)
	}

	// Bare view toggles back
	mustExecute(t, d, "view")
	out = mustExecute(t, d, "show").Output
	if !strings.Contains(out, "Checklist: work") {
		t.Errorf("checklist show:\n%s", out)
	}

	if res := d.Execute("view spreadsheet"); res.Err == nil {
		t.Error("invalid view name succeeded")
	}
}

func TestExecute_ExportImport(t *testing.T) {
	d := createTestDispatcher(t)
	mustExecute(t, d, "add ship it high")
	mustExecute(t, d, "mark 1")

	path := filepath.Join(t.TempDir(), "out.md")
	res := mustExecute(t, d, "export md "+path)
	if !strings.Contains(res.Output, path) {
		t.Errorf("export output = %q", res.Output)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export file: %v", err)
	}
	if !strings.Contains(string(data), "- [x] ship it") {
		t.Errorf("export content:\n%s", data)
	}

	res = mustExecute(t, d, "import "+path)
	if !strings.Contains(res.Output, "imported 1 tasks") {
		t.Errorf("import output = %q", res.Output)
	}
	// Import appends; no merge by title
	if len(d.Sess.Tasks) != 2 {
		t.Errorf("len(Tasks) = %d after import, want 2", len(d.Sess.Tasks))
	}

	if res := d.Execute("export pdf"); res.Err == nil {
		t.Error("invalid export format succeeded")
	}
	if res := d.Execute("import notes.txt"); res.Err == nil {
		t.Error("unsupported import extension succeeded")
	}
}

func TestExecute_ExportDefaultPath(t *testing.T) {
	d := createTestDispatcher(t)
	mustExecute(t, d, "add anything")

	res := mustExecute(t, d, "export cursor")
	want := filepath.Join(d.Sess.Store.DataDir(), "exports")
	if !strings.Contains(res.Output, want) {
		t.Errorf("export path %q, want under %s", res.Output, want)
	}
}

func TestExecute_SwitchListsClear(t *testing.T) {
	d := createTestDispatcher(t)
	mustExecute(t, d, "add here")

	mustExecute(t, d, "switch home")
	if d.Sess.Name != "home" || len(d.Sess.Tasks) != 0 {
		t.Errorf("session = %q/%d tasks", d.Sess.Name, len(d.Sess.Tasks))
	}

	out := mustExecute(t, d, "lists").Output
	if !strings.Contains(out, "home") || !strings.Contains(out, "work") {
		t.Errorf("lists output = %q", out)
	}

	mustExecute(t, d, "switch work")
	mustExecute(t, d, "clear")
	if len(d.Sess.Tasks) != 0 {
		t.Errorf("len(Tasks) = %d after clear", len(d.Sess.Tasks))
	}
}

func TestExecute_Undo(t *testing.T) {
	d := createTestDispatcher(t)

	res := mustExecute(t, d, "undo")
	if res.Output != "nothing to undo" {
		t.Errorf("undo on empty = %q", res.Output)
	}

	mustExecute(t, d, "add fleeting")
	res = mustExecute(t, d, "u")
	if !strings.Contains(res.Output, "undid") {
		t.Errorf("undo output = %q", res.Output)
	}
	if len(d.Sess.Tasks) != 0 {
		t.Errorf("len(Tasks) = %d after undo", len(d.Sess.Tasks))
	}
}

func TestExecute_Group_Unavailable(t *testing.T) {
	d := createTestDispatcher(t)
	res := mustExecute(t, d, "group")
	if !strings.Contains(res.Output, "not available") {
		t.Errorf("group output = %q, want unavailable message", res.Output)
	}
}

func TestExecute_Configure(t *testing.T) {
	d := createTestDispatcher(t)

	out := mustExecute(t, d, "configure").Output
	if !strings.Contains(out, "limits.todo") || !strings.Contains(out, "repaint") {
		t.Errorf("configure summary:\n%s", out)
	}

	if res := d.Execute("configure limits.todo=zero"); res.Err == nil {
		t.Error("configure with non-numeric limit succeeded")
	}
	if res := d.Execute("configure nonsense=1"); res.Err == nil {
		t.Error("configure with unknown key succeeded")
	}
}

func TestExecute_EmptyAndWhitespace(t *testing.T) {
	d := createTestDispatcher(t)
	for _, input := range []string{"", "   ", "\t"} {
		res := d.Execute(input)
		if res.Err != nil || res.Quit || res.Output != "" {
			t.Errorf("Execute(%q) = %+v, want empty result", input, res)
		}
	}
}

func TestHelpText(t *testing.T) {
	help := HelpText()
	for _, verb := range []string{"show", "add", "promote", "regress", "delete", "mark",
		"configure", "view", "export", "import", "group", "help", "quit", "undo"} {
		if !strings.Contains(help, verb) {
			t.Errorf("help missing verb %q", verb)
		}
	}
}
