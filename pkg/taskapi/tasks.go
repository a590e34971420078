package taskapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/me/taskdeck/pkg/model"
)

// ListTasksOptions narrows and orders a task listing. Both filters are
// applied server-side.
type ListTasksOptions struct {
	// Sort is a "field:direction" key, e.g. "createdAt:desc" or
	// "dueDate:asc".
	Sort string

	// Query is a free-text search over title and description.
	Query string
}

// CreateTaskRequest is the payload for creating a task.
type CreateTaskRequest struct {
	Title       string           `json:"title" validate:"required"`
	Description string           `json:"description,omitempty"`
	DueDate     *time.Time       `json:"dueDate,omitempty"`
	Status      model.TaskStatus `json:"status" validate:"required,oneof=in-progress done expired"`
	Subtasks    []model.Subtask  `json:"subtasks"`
}

// ListTasks returns the caller's tasks. The server has returned both a
// bare array and a {"tasks": [...]} envelope across versions; both
// shapes are accepted.
func (c *Client) ListTasks(ctx context.Context, opts ListTasksOptions) ([]model.Task, error) {
	path := "/tasks"
	qs := url.Values{}
	if opts.Sort != "" {
		qs.Set("sort", opts.Sort)
	}
	if opts.Query != "" {
		qs.Set("q", opts.Query)
	}
	if len(qs) > 0 {
		path += "?" + qs.Encode()
	}

	raw, err := c.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err == nil {
		return tasks, nil
	}

	var envelope struct {
		Tasks []model.Task `json:"tasks"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("list tasks: parse response: %w", err)
	}
	return envelope.Tasks, nil
}

// CreateTask creates a task and returns the created record.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*model.Task, error) {
	if req.Subtasks == nil {
		req.Subtasks = []model.Subtask{}
	}
	raw, err := c.Post(ctx, "/tasks", req)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	var task model.Task
	if err := unmarshalInto(raw, &task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &task, nil
}

// SetTaskStatus updates a task's canonical status field.
func (c *Client) SetTaskStatus(ctx context.Context, id string, status model.TaskStatus) (*model.Task, error) {
	return c.updateTask(ctx, id, map[string]any{"status": status})
}

// SetTaskCompleted updates a legacy record via its completed flag.
func (c *Client) SetTaskCompleted(ctx context.Context, id string, completed bool) (*model.Task, error) {
	return c.updateTask(ctx, id, map[string]any{"completed": completed})
}

// ToggleTask flips a task between done and in-progress. Records with a
// status field are updated through it; legacy records fall back to the
// completed flag.
func (c *Client) ToggleTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	if task.HasStatus() {
		next := model.StatusDone
		if task.Status == model.StatusDone {
			next = model.StatusInProgress
		}
		return c.SetTaskStatus(ctx, task.ID, next)
	}
	completed := task.Completed != nil && *task.Completed
	return c.SetTaskCompleted(ctx, task.ID, !completed)
}

// DeleteTask removes the task with the given id.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if err := c.Delete(ctx, "/tasks/"+id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (c *Client) updateTask(ctx context.Context, id string, body map[string]any) (*model.Task, error) {
	raw, err := c.Put(ctx, "/tasks/"+id, body)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	var task model.Task
	if err := unmarshalInto(raw, &task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &task, nil
}
