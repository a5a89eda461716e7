package storage

import (
	"reflect"
	"strings"
	"testing"
)

func TestStatusForTask_Derivation(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want Status
	}{
		{"explicit status wins over completed", Task{Completed: true, Status: StatusTodo}, StatusTodo},
		{"explicit status wins over progress", Task{Progress: 80, Status: StatusDone}, StatusDone},
		{"completed derives Done", Task{Completed: true}, StatusDone},
		{"progress derives Progress", Task{Progress: 1}, StatusProgress},
		{"completed beats progress", Task{Completed: true, Progress: 50}, StatusDone},
		{"zero everything derives Todo", Task{}, StatusTodo},
		{"explicit Progress with zero progress", Task{Status: StatusProgress}, StatusProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusForTask(&tt.task); got != tt.want {
				t.Errorf("StatusForTask() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPromote(t *testing.T) {
	task := Task{Text: "x"}

	status, moved := Promote(&task)
	if !moved || status != StatusProgress {
		t.Fatalf("Promote() = (%v, %v), want (Progress, true)", status, moved)
	}
	if task.Completed {
		t.Error("promotion to Progress set completed")
	}

	status, moved = Promote(&task)
	if !moved || status != StatusDone {
		t.Fatalf("Promote() = (%v, %v), want (Done, true)", status, moved)
	}
	if !task.Completed {
		t.Error("promotion to Done did not set completed")
	}

	// Already Done: no-op
	before := task
	status, moved = Promote(&task)
	if moved || status != StatusDone {
		t.Errorf("Promote() at Done = (%v, %v), want (Done, false)", status, moved)
	}
	if !reflect.DeepEqual(task, before) {
		t.Errorf("no-op promote changed the task: %+v", task)
	}
}

func TestRegress(t *testing.T) {
	task := Task{Text: "x", Completed: true, Status: StatusDone}

	status, moved := Regress(&task)
	if !moved || status != StatusProgress {
		t.Fatalf("Regress() = (%v, %v), want (Progress, true)", status, moved)
	}
	if task.Completed {
		t.Error("regression from Done did not clear completed")
	}

	status, moved = Regress(&task)
	if !moved || status != StatusTodo {
		t.Fatalf("Regress() = (%v, %v), want (Todo, true)", status, moved)
	}

	status, moved = Regress(&task)
	if moved || status != StatusTodo {
		t.Errorf("Regress() at Todo = (%v, %v), want (Todo, false)", status, moved)
	}
}

// Promote then regress restores status; completed ends false even when the
// promotion crossed into Done.
func TestPromoteRegress_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		start Task
	}{
		{"from Todo", Task{Status: StatusTodo}},
		{"from Progress", Task{Status: StatusProgress}},
		{"derived Todo", Task{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := tt.start
			origStatus := StatusForTask(&task)

			if _, moved := Promote(&task); !moved {
				t.Fatal("Promote() did not move")
			}
			if _, moved := Regress(&task); !moved {
				t.Fatal("Regress() did not move")
			}

			if got := StatusForTask(&task); got != origStatus {
				t.Errorf("status after round-trip = %v, want %v", got, origStatus)
			}
			if task.Completed {
				t.Error("completed = true after round-trip, want false")
			}
		})
	}
}

func TestEnforceColumnLimits(t *testing.T) {
	limits := ColumnLimits{Todo: 2, Progress: 1, Done: 2}

	tasks := Checklist{
		{Text: "a", Status: StatusTodo},
		{Text: "b", Status: StatusTodo},
		{Text: "c", Status: StatusProgress},
	}
	if warnings := EnforceColumnLimits(tasks, limits); len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none within limits", warnings)
	}

	tasks = append(tasks,
		Task{Text: "d", Status: StatusTodo},
		Task{Text: "e", Progress: 10}, // derived Progress
	)
	warnings := EnforceColumnLimits(tasks, limits)
	if len(warnings) != 2 {
		t.Fatalf("len(warnings) = %d, want 2: %v", len(warnings), warnings)
	}
	if want := "Todo column has 3 tasks, exceeding limit of 2"; warnings[0] != want {
		t.Errorf("warnings[0] = %q, want %q", warnings[0], want)
	}
	if !strings.Contains(warnings[1], "Progress column has 2 tasks") {
		t.Errorf("warnings[1] = %q, want Progress overflow", warnings[1])
	}
}
