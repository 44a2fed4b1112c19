package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Serialized time layouts. CreatedAt carries second precision, DueDate is a
// bare calendar date; the two formats are never interchangeable.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

type Task struct {
	ID          int
	Description string
	Completed   bool
	Priority    Priority
	Category    string
	CreatedAt   time.Time
	DueDate     *time.Time
}

func NewTask(id int, description string, priority Priority, category string) *Task {
	return &Task{
		ID:          id,
		Description: description,
		Priority:    priority,
		Category:    category,
		CreatedAt:   time.Now(),
	}
}

type taskRecord struct {
	ID          int     `json:"id"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
	Priority    string  `json:"priority"`
	Category    string  `json:"category"`
	CreatedAt   string  `json:"created_at"`
	DueDate     *string `json:"due_date"`
}

func (t Task) MarshalJSON() ([]byte, error) {
	rec := taskRecord{
		ID:          t.ID,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    t.Priority.String(),
		Category:    t.Category,
		CreatedAt:   t.CreatedAt.Format(TimestampLayout),
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(DateLayout)
		rec.DueDate = &due
	}
	return json.Marshal(rec)
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var rec taskRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	createdAt, err := time.Parse(TimestampLayout, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("could not parse created_at %q: %w", rec.CreatedAt, err)
	}

	var dueDate *time.Time
	if rec.DueDate != nil {
		due, err := time.Parse(DateLayout, *rec.DueDate)
		if err != nil {
			return fmt.Errorf("could not parse due_date %q: %w", *rec.DueDate, err)
		}
		dueDate = &due
	}

	t.ID = rec.ID
	t.Description = rec.Description
	t.Completed = rec.Completed
	t.Priority = ParsePriority(rec.Priority)
	t.Category = rec.Category
	t.CreatedAt = createdAt
	t.DueDate = dueDate
	return nil
}

type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityHigh:
		return "High"
	default:
		return "Medium"
	}
}

// ParsePriority tolerates unknown names and falls back to Medium, both for
// CLI input ("low") and stored records ("Low").
func ParsePriority(s string) Priority {
	switch strings.ToLower(s) {
	case "low":
		return PriorityLow
	case "high":
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

var ErrTaskNotFound = errors.New("task not found")

type TaskRepository interface {
	AddTask(ctx context.Context, description string, dueDate string, priority Priority, category string) (int, error)
	ListTasks(ctx context.Context, sortBy SortBy) ([]Task, error)
	CompleteTask(ctx context.Context, id int) error
	DeleteTask(ctx context.Context, id int) error
	ClearTasks(ctx context.Context) error
}
