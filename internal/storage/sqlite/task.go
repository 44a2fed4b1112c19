package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/agalitsyn/tasks-cli/internal/model"
)

// TaskStorage is the SQLite-backed alternative to the JSON file store. Ids
// come from AUTOINCREMENT, so they stay monotonic and are never reused after
// a delete; ClearTasks resets the sequence the way the JSON store resets its
// counter.
type TaskStorage struct {
	db *sql.DB
}

func NewTaskStorage(db *sql.DB) *TaskStorage {
	return &TaskStorage{db: db}
}

func (s *TaskStorage) AddTask(
	ctx context.Context,
	description string,
	dueDate string,
	priority model.Priority,
	category string,
) (int, error) {
	task := model.NewTask(0, description, priority, category)
	if dueDate != "" {
		due, err := time.Parse(model.DateLayout, dueDate)
		if err != nil {
			lgr.Printf("[WARN] invalid due date %q, expected YYYY-MM-DD, adding task without due date", dueDate)
		} else {
			task.DueDate = &due
		}
	}

	var due sql.NullString
	if task.DueDate != nil {
		due.String = task.DueDate.Format(model.DateLayout)
		due.Valid = true
	}

	query := `
		INSERT INTO tasks (description, completed, priority, category, created_at, due_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		task.Description,
		task.Completed,
		task.Priority.String(),
		task.Category,
		task.CreatedAt.Format(model.TimestampLayout),
		due,
	)
	if err != nil {
		return 0, fmt.Errorf("could not create task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("could not get last insert id: %w", err)
	}
	return int(id), nil
}

func (s *TaskStorage) ListTasks(ctx context.Context, sortBy model.SortBy) ([]model.Task, error) {
	query := `
		SELECT id, description, completed, priority, category, created_at, due_date
		FROM tasks
		ORDER BY id ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var task model.Task
		var priority string
		var createdAt string
		var due sql.NullString

		err := rows.Scan(
			&task.ID,
			&task.Description,
			&task.Completed,
			&priority,
			&task.Category,
			&createdAt,
			&due,
		)
		if err != nil {
			return nil, fmt.Errorf("could not scan task: %w", err)
		}

		task.Priority = model.ParsePriority(priority)
		task.CreatedAt, err = time.Parse(model.TimestampLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("could not parse created_at %q: %w", createdAt, err)
		}
		if due.Valid {
			d, err := time.Parse(model.DateLayout, due.String)
			if err != nil {
				return nil, fmt.Errorf("could not parse due_date %q: %w", due.String, err)
			}
			task.DueDate = &d
		}

		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate tasks: %w", err)
	}

	model.SortTasks(tasks, sortBy)
	return tasks, nil
}

func (s *TaskStorage) CompleteTask(ctx context.Context, id int) error {
	result, err := s.db.ExecContext(ctx, `UPDATE tasks SET completed = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("could not complete task: %w", err)
	}
	return checkFound(result)
}

func (s *TaskStorage) DeleteTask(ctx context.Context, id int) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("could not remove task: %w", err)
	}
	return checkFound(result)
}

func (s *TaskStorage) ClearTasks(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("could not clear tasks: %w", err)
	}
	// Reset AUTOINCREMENT so the next task gets id 1 again.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'tasks'`); err != nil {
		return fmt.Errorf("could not reset task ids: %w", err)
	}
	return nil
}

func checkFound(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get affected rows: %w", err)
	}
	if n == 0 {
		return model.ErrTaskNotFound
	}
	return nil
}
