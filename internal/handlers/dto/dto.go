package dto

import (
	"time"

	"taskboard/internal/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Email     string    `json:"email"`
	LoginTime time.Time `json:"loginTime"`
}

func FromSession(s *models.Session) SessionResponse {
	return SessionResponse{
		Email:     s.Email,
		LoginTime: s.LoginTime,
	}
}

type CreateTaskRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Priority    string      `json:"priority"`
	DueDate     models.Date `json:"dueDate"`
}

type UpdateTaskRequest struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	Priority    *string      `json:"priority,omitempty"`
	DueDate     *models.Date `json:"dueDate,omitempty"`
}

type TaskResponse struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Priority    string      `json:"priority"`
	DueDate     models.Date `json:"dueDate"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	Overdue     bool        `json:"overdue"`
}

func FromTask(t *models.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		Overdue:     t.IsOverdue(time.Now()),
	}
}

func FromTaskList(tasks []models.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i := range tasks {
		result[i] = FromTask(&tasks[i])
	}
	return result
}
