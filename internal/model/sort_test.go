package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func makeTask(id int, description string, priority Priority) Task {
	return Task{
		ID:          id,
		Description: description,
		Priority:    priority,
		Category:    "General",
		CreatedAt:   time.Now(),
	}
}

func withDueDate(task Task, due string) Task {
	d, err := time.Parse(DateLayout, due)
	if err != nil {
		panic(err)
	}
	task.DueDate = &d
	return task
}

func ids(tasks []Task) []int {
	out := make([]int, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestSortTasksID(t *testing.T) {
	tasks := []Task{
		makeTask(1, "a", PriorityLow),
		makeTask(2, "b", PriorityHigh),
		makeTask(3, "c", PriorityMedium),
	}

	SortTasks(tasks, SortByID)
	assert.Equal(t, []int{1, 2, 3}, ids(tasks))
}

func TestSortTasksPriorityStable(t *testing.T) {
	// two High tasks keep their insertion order
	tasks := []Task{
		makeTask(1, "a", PriorityHigh),
		makeTask(2, "b", PriorityLow),
		makeTask(3, "c", PriorityHigh),
	}

	SortTasks(tasks, SortByPriority)
	assert.Equal(t, []int{1, 3, 2}, ids(tasks))
}

func TestSortTasksDueDate(t *testing.T) {
	tasks := []Task{
		makeTask(1, "a", PriorityMedium),
		withDueDate(makeTask(2, "b", PriorityMedium), "2025-01-01"),
		withDueDate(makeTask(3, "c", PriorityMedium), "2024-06-01"),
	}

	SortTasks(tasks, SortByDueDate)
	assert.Equal(t, []int{3, 2, 1}, ids(tasks))
}

func TestSortTasksDueDateUndatedOrderedByID(t *testing.T) {
	tasks := []Task{
		makeTask(3, "c", PriorityMedium),
		makeTask(1, "a", PriorityMedium),
		withDueDate(makeTask(2, "b", PriorityMedium), "2025-01-01"),
	}

	SortTasks(tasks, SortByDueDate)
	assert.Equal(t, []int{2, 1, 3}, ids(tasks))
}

func TestSortTasksCategory(t *testing.T) {
	a := makeTask(1, "a", PriorityMedium)
	a.Category = "Work"
	b := makeTask(2, "b", PriorityMedium)
	b.Category = "errands"
	c := makeTask(3, "c", PriorityMedium)
	c.Category = "Work"

	tasks := []Task{a, b, c}
	SortTasks(tasks, SortByCategory)
	// collation is case-insensitive alphabetical; Work ties break by id
	assert.Equal(t, []int{2, 1, 3}, ids(tasks))
}

func TestSortTasksUnknownKeyKeepsOrder(t *testing.T) {
	tasks := []Task{
		makeTask(2, "b", PriorityHigh),
		makeTask(1, "a", PriorityLow),
	}

	SortTasks(tasks, SortBy("bogus"))
	assert.Equal(t, []int{2, 1}, ids(tasks))
}
