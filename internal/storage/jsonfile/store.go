// Package jsonfile persists tasks as a pretty-printed JSON array in a single
// local file, keeping the previous file contents in a ".bak" sibling on every
// save.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/agalitsyn/tasks-cli/internal/model"
)

const backupSuffix = ".bak"

type TaskStore struct {
	path   string
	tasks  []model.Task
	nextID int
}

// New loads the store from path. A missing file means an empty store; an
// unparsable file is reported at WARN level and the store starts empty,
// leaving the corrupt file on disk until the next successful save overwrites
// it. This availability-over-durability behavior is intentional.
func New(path string) *TaskStore {
	s := &TaskStore{path: path}
	s.load()
	return s
}

func (s *TaskStore) load() {
	s.tasks = []model.Task{}
	s.nextID = 1

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			lgr.Printf("[WARN] could not read tasks file %s, starting empty: %v", s.path, err)
		}
		return
	}
	if len(data) == 0 {
		return
	}

	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		lgr.Printf("[WARN] could not parse tasks file %s, starting empty: %v", s.path, err)
		return
	}
	if tasks != nil {
		s.tasks = tasks
	}

	// The counter is never trusted from disk, always recomputed.
	for _, t := range s.tasks {
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
}

func (s *TaskStore) AddTask(
	ctx context.Context,
	description string,
	dueDate string,
	priority model.Priority,
	category string,
) (int, error) {
	task := model.NewTask(s.nextID, description, priority, category)
	if dueDate != "" {
		due, err := time.Parse(model.DateLayout, dueDate)
		if err != nil {
			lgr.Printf("[WARN] invalid due date %q, expected YYYY-MM-DD, adding task without due date", dueDate)
		} else {
			task.DueDate = &due
		}
	}

	s.tasks = append(s.tasks, *task)
	s.nextID++
	s.save()
	return task.ID, nil
}

func (s *TaskStore) ListTasks(ctx context.Context, sortBy model.SortBy) ([]model.Task, error) {
	snapshot := make([]model.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	model.SortTasks(snapshot, sortBy)
	return snapshot, nil
}

func (s *TaskStore) CompleteTask(ctx context.Context, id int) error {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = true
			s.save()
			return nil
		}
	}
	return model.ErrTaskNotFound
}

func (s *TaskStore) DeleteTask(ctx context.Context, id int) error {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.save()
			return nil
		}
	}
	return model.ErrTaskNotFound
}

func (s *TaskStore) ClearTasks(ctx context.Context) error {
	s.tasks = []model.Task{}
	s.nextID = 1
	s.save()
	return nil
}

// save persists the full collection after a mutation. A failed save is logged
// and the in-memory state kept; the mutation already happened, only the
// durable copy is stale. Acceptable for a single-user local tool.
func (s *TaskStore) save() {
	if err := s.writeFile(); err != nil {
		lgr.Printf("[ERROR] could not save tasks: %v", err)
	}
}

func (s *TaskStore) writeFile() error {
	if _, err := os.Stat(s.path); err == nil {
		if err := copyFile(s.path, s.path+backupSuffix); err != nil {
			return fmt.Errorf("could not create backup: %w", err)
		}
	}

	data, err := json.MarshalIndent(s.tasks, "", "    ")
	if err != nil {
		return fmt.Errorf("could not encode tasks: %w", err)
	}
	data = append(data, '\n')

	// Write-then-rename keeps the target intact if the write itself fails. A
	// fresh temp name each time means a temp file left behind by a crash is
	// never picked up again.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp")
	if err != nil {
		return fmt.Errorf("could not create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("could not write tasks file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not write tasks file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not set tasks file permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not replace tasks file %s: %w", s.path, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
