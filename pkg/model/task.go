package model

import "time"

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	// StatusInProgress is the default state for an open task.
	StatusInProgress TaskStatus = "in-progress"
	// StatusDone marks a completed task.
	StatusDone TaskStatus = "done"
	// StatusExpired marks a task whose due date passed before completion.
	StatusExpired TaskStatus = "expired"
)

// Subtask is a checklist item attached to a task.
type Subtask struct {
	ID    string `json:"_id,omitempty"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Task is a task record as returned by the API.
//
// Status is the canonical completion representation. Completed is a
// legacy alias still present on older records; it is only consulted
// when Status is absent. See EffectiveStatus.
type Task struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	Archived    bool       `json:"archived,omitempty"`
	Subtasks    []Subtask  `json:"subtasks"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// EffectiveStatus returns the canonical status, falling back to the
// legacy completed flag for records that predate the status field.
func (t *Task) EffectiveStatus() TaskStatus {
	if t.Status != "" {
		return t.Status
	}
	if t.Completed != nil && *t.Completed {
		return StatusDone
	}
	return StatusInProgress
}

// HasStatus reports whether the record carries the canonical status
// field. Records without it are updated via the legacy completed flag.
func (t *Task) HasStatus() bool {
	return t.Status != ""
}

// IsDone reports whether the task is complete under either representation.
func (t *Task) IsDone() bool {
	return t.EffectiveStatus() == StatusDone
}
