// Package query holds the pure filter pipeline applied to the task list
// before presentation: a single-key status/priority filter composed with
// a free-text matcher. Both preserve input order and never mutate their
// input.
package query

import (
	"strings"

	"taskboard/internal/models"
)

const (
	FilterAll       = "all"
	FilterPending   = "pending"
	FilterCompleted = "completed"
	FilterHigh      = "high"
	FilterMedium    = "medium"
	FilterLow       = "low"
)

// Match returns the subsequence of tasks whose title, description or
// priority label contains term, case-insensitively. An empty or
// all-whitespace term returns the input unchanged.
func Match(tasks []models.Task, term string) []models.Task {
	if strings.TrimSpace(term) == "" {
		return tasks
	}

	lowered := strings.ToLower(term)
	matched := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), lowered) ||
			strings.Contains(strings.ToLower(t.Description), lowered) ||
			strings.Contains(strings.ToLower(string(t.Priority)), lowered) {
			matched = append(matched, t)
		}
	}
	return matched
}

// Filter retains tasks by a single active filter key. "all" and any
// unknown key retain everything.
func Filter(tasks []models.Task, key string) []models.Task {
	switch key {
	case FilterPending, FilterCompleted:
		return retain(tasks, func(t models.Task) bool {
			return string(t.Status) == key
		})
	case FilterHigh, FilterMedium, FilterLow:
		return retain(tasks, func(t models.Task) bool {
			return string(t.Priority) == key
		})
	default:
		return tasks
	}
}

// Apply runs the filter, then the matcher. The two are independent
// predicates, so the composition order does not change the result.
func Apply(tasks []models.Task, key, term string) []models.Task {
	return Match(Filter(tasks, key), term)
}

func retain(tasks []models.Task, keep func(models.Task) bool) []models.Task {
	kept := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			kept = append(kept, t)
		}
	}
	return kept
}
