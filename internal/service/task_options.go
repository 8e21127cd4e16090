package service

import "taskboard/internal/models"

// TaskOption mutates a task during Update. Options are built by the
// handler from whichever fields the edit request carries.
type TaskOption func(*models.Task)

func WithTitle(title string) TaskOption {
	return func(task *models.Task) {
		task.Title = title
	}
}

func WithDescription(description string) TaskOption {
	return func(task *models.Task) {
		task.Description = description
	}
}

func WithPriority(priority models.Priority) TaskOption {
	return func(task *models.Task) {
		task.Priority = priority
	}
}

func WithDueDate(dueDate models.Date) TaskOption {
	return func(task *models.Task) {
		task.DueDate = dueDate
	}
}
