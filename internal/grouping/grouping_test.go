package grouping

import (
	"testing"

	"checklistpp/internal/storage"
)

func resolveOrSkip(t *testing.T) *Grouper {
	t.Helper()
	g, ok := Resolve()
	if !ok {
		t.Skip("grouping capability unavailable")
	}
	return g
}

func TestGroupTasks_SharedKeyword(t *testing.T) {
	g := resolveOrSkip(t)

	tasks := storage.Checklist{
		{Text: "Write the report introduction"},
		{Text: "Review the report figures"},
		{Text: "Send the report to the team"},
		{Text: "Water the plants"},
	}

	groups := g.GroupTasks(tasks)
	if len(groups) == 0 {
		t.Fatal("GroupTasks() found no groups")
	}

	found := false
	for _, group := range groups {
		if group.Keyword == "report" {
			found = true
			if len(group.Numbers) != 3 {
				t.Errorf("report group = %v, want 3 members", group.Numbers)
			}
			for _, n := range group.Numbers {
				if n < 1 || n > 3 {
					t.Errorf("report group contains task %d", n)
				}
			}
		}
	}
	if !found {
		t.Errorf("no report group in %+v", groups)
	}
}

func TestGroupTasks_TooFewShared(t *testing.T) {
	g := resolveOrSkip(t)

	tasks := storage.Checklist{
		{Text: "Buy groceries"},
		{Text: "Call the plumber"},
		{Text: "Read a novel"},
	}
	if groups := g.GroupTasks(tasks); len(groups) != 0 {
		t.Errorf("GroupTasks() on unrelated tasks = %+v, want none", groups)
	}
}

func TestGroupTasks_BelowMinGroupSize(t *testing.T) {
	g := resolveOrSkip(t)

	tasks := storage.Checklist{
		{Text: "Fix the login bug"},
		{Text: "Close the login ticket"},
	}
	if groups := g.GroupTasks(tasks); len(groups) != 0 {
		t.Errorf("two-task cluster reported with MinGroupSize=%d: %+v", g.MinGroupSize, groups)
	}
}

func TestTagName(t *testing.T) {
	if got := TagName("report"); got != "group:report" {
		t.Errorf("TagName() = %q, want group:report", got)
	}
}
