package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/me/taskdeck/internal/validate"
	"github.com/me/taskdeck/pkg/model"
	"github.com/me/taskdeck/pkg/taskapi"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage your tasks",
	}
	cmd.AddCommand(newTaskAddCmd(), newTaskListCmd(), newTaskDoneCmd(), newTaskRmCmd())
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var description, due, status, subtasksRaw string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := taskapi.CreateTaskRequest{
				Title:       strings.TrimSpace(args[0]),
				Description: strings.TrimSpace(description),
				Status:      model.TaskStatus(status),
				Subtasks:    parseSubtasks(subtasksRaw),
			}
			if due != "" {
				d, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", due)
				}
				req.DueDate = &d
			}
			if err := validate.Struct(req); err != nil {
				return err
			}

			task, err := client.CreateTask(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Task created: %s (%s)\n", task.Title, task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", string(model.StatusInProgress), "Initial status (in-progress, done, expired)")
	cmd.Flags().StringVar(&subtasksRaw, "subtasks", "", "Subtask titles, comma separated")
	return cmd
}

// parseSubtasks splits a comma-separated title list into open subtasks.
func parseSubtasks(raw string) []model.Subtask {
	subtasks := []model.Subtask{}
	for _, part := range strings.Split(raw, ",") {
		title := strings.TrimSpace(part)
		if title == "" {
			continue
		}
		subtasks = append(subtasks, model.Subtask{Title: title})
	}
	return subtasks
}

func newTaskListCmd() *cobra.Command {
	var sort, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := client.ListTasks(cmd.Context(), taskapi.ListTasksOptions{
				Sort:  sort,
				Query: search,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks found.")
				return nil
			}

			fmt.Fprintf(out, "%-26s  %-12s  %-30s  %-12s  %s\n", "ID", "STATUS", "TITLE", "DUE", "CREATED")
			fmt.Fprintf(out, "%-26s  %-12s  %-30s  %-12s  %s\n", "--", "------", "-----", "---", "-------")
			for _, t := range tasks {
				due := "-"
				if t.DueDate != nil {
					due = t.DueDate.Format("2006-01-02")
				}
				fmt.Fprintf(out, "%-26s  %-12s  %-30s  %-12s  %s\n",
					t.ID, t.EffectiveStatus(), truncate(t.Title, 30), due, humanize.Time(t.CreatedAt))
				for _, st := range t.Subtasks {
					mark := " "
					if st.Done {
						mark = "x"
					}
					fmt.Fprintf(out, "    [%s] %s\n", mark, st.Title)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sort, "sort", "createdAt:desc", "Sort key (createdAt:desc, createdAt:asc, dueDate:asc, dueDate:desc, priority:desc)")
	cmd.Flags().StringVar(&search, "search", "", "Free-text filter applied server-side")
	return cmd
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func newTaskDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <task_id>",
		Short: "Toggle a task between done and in-progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			task, err := findTask(cmd, id)
			if err != nil {
				return err
			}

			updated, err := client.ToggleTask(cmd.Context(), task)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Task %s: %s\n", updated.ID, updated.EffectiveStatus())
			return nil
		},
	}
}

func newTaskRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <task_id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if !yes {
				ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete this task?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			if err := client.DeleteTask(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Task %s deleted.\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// findTask fetches the task with the given id from the listing. The
// API has no single-task read, so the toggle reads through the list.
func findTask(cmd *cobra.Command, id string) (*model.Task, error) {
	tasks, err := client.ListTasks(cmd.Context(), taskapi.ListTasksOptions{})
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], nil
		}
	}
	return nil, fmt.Errorf("task %s not found", id)
}
