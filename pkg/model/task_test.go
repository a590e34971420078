package model

import (
	"encoding/json"
	"testing"
)

func TestEffectiveStatus(t *testing.T) {
	done := true
	notDone := false

	tests := []struct {
		name string
		task Task
		want TaskStatus
	}{
		{"status wins", Task{Status: StatusExpired, Completed: &notDone}, StatusExpired},
		{"legacy completed true", Task{Completed: &done}, StatusDone},
		{"legacy completed false", Task{Completed: &notDone}, StatusInProgress},
		{"neither field", Task{}, StatusInProgress},
		{"status done over completed false", Task{Status: StatusDone, Completed: &notDone}, StatusDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.EffectiveStatus(); got != tt.want {
				t.Errorf("EffectiveStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsDone(t *testing.T) {
	done := true
	if !(&Task{Status: StatusDone}).IsDone() {
		t.Error("status done should be done")
	}
	if !(&Task{Completed: &done}).IsDone() {
		t.Error("legacy completed should be done")
	}
	if (&Task{Status: StatusInProgress, Completed: &done}).IsDone() {
		t.Error("explicit in-progress status outranks the legacy flag")
	}
}

func TestTaskJSONShape(t *testing.T) {
	raw := `{"_id":"t1","title":"Buy milk","status":"in-progress","dueDate":"2026-09-01T00:00:00Z","subtasks":[{"_id":"s1","title":"check fridge","done":false}],"createdAt":"2026-08-28T10:00:00Z","archived":true}`

	var task Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if task.ID != "t1" || task.Status != StatusInProgress || !task.Archived {
		t.Errorf("task = %+v", task)
	}
	if task.DueDate == nil || task.DueDate.Year() != 2026 {
		t.Errorf("dueDate = %v", task.DueDate)
	}
	if len(task.Subtasks) != 1 || task.Subtasks[0].Title != "check fridge" {
		t.Errorf("subtasks = %+v", task.Subtasks)
	}

	// Round trip keeps the legacy field absent when unset.
	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var shape map[string]any
	json.Unmarshal(data, &shape)
	if _, present := shape["completed"]; present {
		t.Error("completed emitted for a record that never carried it")
	}
}

func TestProfileDisplayName(t *testing.T) {
	p := Profile{Name: ""}
	if p.DisplayName() != "Unnamed User" {
		t.Errorf("DisplayName() = %q", p.DisplayName())
	}
	p.Name = "Ann"
	if p.DisplayName() != "Ann" {
		t.Errorf("DisplayName() = %q", p.DisplayName())
	}
}
