package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/agalitsyn/tasks-cli/internal/model"
)

// App executes user commands against the task storage and renders the
// results. It is the only place that writes user-facing output; exit codes
// and argument validation stay in the CLI shell.
type App struct {
	out     io.Writer
	storage model.TaskRepository
}

func New(out io.Writer, storage model.TaskRepository) *App {
	return &App{out: out, storage: storage}
}

func (a *App) AddTask(ctx context.Context, description, dueDate string, priority model.Priority, category string) error {
	id, err := a.storage.AddTask(ctx, description, dueDate, priority, category)
	if err != nil {
		return fmt.Errorf("could not add task: %w", err)
	}
	fmt.Fprintf(a.out, "Task added with ID %d\n", id)
	return nil
}

func (a *App) ListTasks(ctx context.Context, sortBy model.SortBy) error {
	tasks, err := a.storage.ListTasks(ctx, sortBy)
	if err != nil {
		return fmt.Errorf("could not list tasks: %w", err)
	}
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks found.")
		return nil
	}
	a.renderTable(tasks)
	return nil
}

func (a *App) CompleteTask(ctx context.Context, id int) error {
	err := a.storage.CompleteTask(ctx, id)
	if errors.Is(err, model.ErrTaskNotFound) {
		fmt.Fprintf(a.out, "Task with ID %d not found.\n", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not complete task: %w", err)
	}
	fmt.Fprintf(a.out, "Task %d marked as complete.\n", id)
	return nil
}

func (a *App) DeleteTask(ctx context.Context, id int) error {
	err := a.storage.DeleteTask(ctx, id)
	if errors.Is(err, model.ErrTaskNotFound) {
		fmt.Fprintf(a.out, "Task with ID %d not found.\n", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not delete task: %w", err)
	}
	fmt.Fprintf(a.out, "Task %d deleted.\n", id)
	return nil
}

func (a *App) ClearTasks(ctx context.Context) error {
	if err := a.storage.ClearTasks(ctx); err != nil {
		return fmt.Errorf("could not clear tasks: %w", err)
	}
	fmt.Fprintln(a.out, "All tasks cleared.")
	return nil
}

var (
	headerColor = color.New(color.Bold)
	doneColor   = color.New(color.FgGreen)

	priorityColors = map[model.Priority]*color.Color{
		model.PriorityHigh:   color.New(color.FgRed),
		model.PriorityMedium: color.New(color.FgYellow),
		model.PriorityLow:    color.New(color.FgGreen),
	}
)

const tableWidth = 110

func (a *App) renderTable(tasks []model.Task) {
	fmt.Fprintln(a.out, "\nTasks:")
	header := fmt.Sprintf("%-5s%-30s%-10s%-10s%-15s%-20s%-20s",
		"ID", "Description", "Status", "Priority", "Category", "Created At", "Due Date")
	fmt.Fprintln(a.out, headerColor.Sprint(header))
	fmt.Fprintln(a.out, strings.Repeat("-", tableWidth))

	for _, t := range tasks {
		fmt.Fprintf(a.out, "%-5d%-30s%s%s%-15s%-20s%-20s\n",
			t.ID,
			t.Description,
			statusCell(t.Completed),
			priorityCell(t.Priority),
			t.Category,
			t.CreatedAt.Format("2006-01-02 15:04"),
			dueDateCell(t.DueDate),
		)
	}
	fmt.Fprintln(a.out)
}

// Cells are padded before coloring so the escape codes do not skew column
// widths.

func statusCell(completed bool) string {
	if completed {
		return doneColor.Sprint(fmt.Sprintf("%-10s", "Done"))
	}
	return fmt.Sprintf("%-10s", "Pending")
}

func priorityCell(p model.Priority) string {
	cell := fmt.Sprintf("%-10s", p.String())
	if c, ok := priorityColors[p]; ok {
		return c.Sprint(cell)
	}
	return cell
}

func dueDateCell(due *time.Time) string {
	if due == nil {
		return fmt.Sprintf("%-20s", "None")
	}
	return fmt.Sprintf("%-20s", due.Format(model.DateLayout))
}
