package handlers

import (
	"context"

	"taskboard/internal/models"
	"taskboard/internal/service"
)

type TaskService interface {
	Create(ctx context.Context, draft service.Draft) (*models.Task, error)
	Update(ctx context.Context, id string, options ...service.TaskOption) (*models.Task, error)
	Delete(ctx context.Context, id string, confirmed bool) error
	ToggleStatus(ctx context.Context, id string) (*models.Task, error)
	Tasks(filter, term string) []models.Task
}

type SessionStore interface {
	Login(email, password string) bool
	Logout()
	IsAuthenticated() bool
	CurrentUser() *models.Session
}

// StorageChecker reports whether the durable store backing the task
// collection is reachable.
type StorageChecker interface {
	HealthCheck(ctx context.Context) error
}
