package model

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortBy string

const (
	SortByID       SortBy = "id"
	SortByPriority SortBy = "priority"
	SortByDueDate  SortBy = "due_date"
	SortByCategory SortBy = "category"
)

// SortTasks orders tasks in place. Sorts are stable, so ties keep insertion
// order. Unknown keys (and "id") leave the natural order untouched, which is
// ascending id since ids are assigned monotonically.
func SortTasks(tasks []Task, by SortBy) {
	switch by {
	case SortByPriority:
		// High first
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Priority > tasks[j].Priority
		})
	case SortByDueDate:
		// Dated tasks first in ascending date order, undated tasks after,
		// ordered among themselves by id.
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i], tasks[j]
			switch {
			case a.DueDate == nil && b.DueDate == nil:
				return a.ID < b.ID
			case a.DueDate == nil:
				return false
			case b.DueDate == nil:
				return true
			default:
				return a.DueDate.Before(*b.DueDate)
			}
		})
	case SortByCategory:
		c := collate.New(language.English)
		sort.SliceStable(tasks, func(i, j int) bool {
			if cmp := c.CompareString(tasks[i].Category, tasks[j].Category); cmp != 0 {
				return cmp < 0
			}
			return tasks[i].ID < tasks[j].ID
		})
	}
}
