package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard/internal/logger"
	"taskboard/internal/models"
	"taskboard/internal/query"
)

// TaskRepository is the persistence contract the service needs:
// whole-collection load and replace.
type TaskRepository interface {
	LoadAll(ctx context.Context) []models.Task
	SaveAll(ctx context.Context, tasks []models.Task) error
}

// Draft is the create-form input before validation.
type Draft struct {
	Title       string
	Description string
	Priority    models.Priority
	DueDate     models.Date
}

// TaskService owns the canonical in-memory task list. Every mutation
// either fully applies (and is persisted) or leaves the list unchanged.
// Newly created tasks go to the front.
type TaskService struct {
	mtx     sync.Mutex
	repo    TaskRepository
	tasks   []models.Task
	changes chan struct{}
}

func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{
		repo:    repo,
		tasks:   []models.Task{},
		changes: make(chan struct{}, 1),
	}
}

// Load replaces the in-memory list with the saved collection. Called
// once at startup.
func (s *TaskService) Load(ctx context.Context) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.tasks = s.repo.LoadAll(ctx)
}

// Create validates the draft, assigns id and creation time, prepends
// the task and persists. On validation failure nothing changes and the
// returned error carries field-keyed messages.
func (s *TaskService) Create(ctx context.Context, draft Draft) (*models.Task, error) {
	if err := validateDraft(draft); err != nil {
		logger.Warn("Service: create rejected", zap.String("reason", err.Error()))
		return nil, err
	}

	priority := draft.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	task := models.Task{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    priority,
		DueDate:     draft.DueDate,
		Status:      models.StatusPending,
		CreatedAt:   time.Now(),
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	previous := s.tasks
	s.tasks = append([]models.Task{task}, s.tasks...)
	if err := s.repo.SaveAll(ctx, s.tasks); err != nil {
		s.tasks = previous
		return nil, err
	}

	logger.Info("Service: task created", zap.String("task_id", task.ID))
	s.notifyChange()
	return &task, nil
}

// Update merges the given options into the task with matching id and
// persists. Fields are not re-validated beyond what the edit form
// already enforced.
func (s *TaskService) Update(ctx context.Context, id string, options ...TaskOption) (*models.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	index := s.indexOf(id)
	if index < 0 {
		logger.Warn("Service: update target not found", zap.String("task_id", id))
		return nil, ErrNotFound
	}

	updated := s.tasks[index]
	for _, opt := range options {
		if opt != nil {
			opt(&updated)
		}
	}

	previous := s.tasks[index]
	s.tasks[index] = updated
	if err := s.repo.SaveAll(ctx, s.tasks); err != nil {
		s.tasks[index] = previous
		return nil, err
	}

	logger.Info("Service: task updated", zap.String("task_id", id))
	s.notifyChange()
	return &updated, nil
}

// Delete removes the task with matching id. The explicit confirmation
// step is part of the contract: without it nothing changes.
func (s *TaskService) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	index := s.indexOf(id)
	if index < 0 {
		logger.Warn("Service: delete target not found", zap.String("task_id", id))
		return ErrNotFound
	}

	previous := s.tasks
	remaining := make([]models.Task, 0, len(s.tasks)-1)
	remaining = append(remaining, s.tasks[:index]...)
	remaining = append(remaining, s.tasks[index+1:]...)

	s.tasks = remaining
	if err := s.repo.SaveAll(ctx, s.tasks); err != nil {
		s.tasks = previous
		return err
	}

	logger.Info("Service: task deleted", zap.String("task_id", id))
	s.notifyChange()
	return nil
}

// ToggleStatus flips the task between pending and completed.
func (s *TaskService) ToggleStatus(ctx context.Context, id string) (*models.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	index := s.indexOf(id)
	if index < 0 {
		logger.Warn("Service: toggle target not found", zap.String("task_id", id))
		return nil, ErrNotFound
	}

	toggled := s.tasks[index]
	if toggled.Status == models.StatusCompleted {
		toggled.Status = models.StatusPending
	} else {
		toggled.Status = models.StatusCompleted
	}

	previous := s.tasks[index]
	s.tasks[index] = toggled
	if err := s.repo.SaveAll(ctx, s.tasks); err != nil {
		s.tasks[index] = previous
		return nil, err
	}

	logger.Info("Service: task status toggled",
		zap.String("task_id", id),
		zap.String("status", string(toggled.Status)))
	s.notifyChange()
	return &toggled, nil
}

// Tasks returns a snapshot of the list run through the filter pipeline.
func (s *TaskService) Tasks(filter, term string) []models.Task {
	s.mtx.Lock()
	snapshot := make([]models.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	s.mtx.Unlock()

	return query.Apply(snapshot, filter, term)
}

// Overdue returns pending tasks whose due date is strictly before now.
func (s *TaskService) Overdue(now time.Time) []models.Task {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	overdue := []models.Task{}
	for _, t := range s.tasks {
		if t.IsOverdue(now) {
			overdue = append(overdue, t)
		}
	}
	return overdue
}

// Changes signals after every successful mutation. The channel is
// buffered and never blocks a mutation; consumers that fall behind see
// one coalesced signal.
func (s *TaskService) Changes() <-chan struct{} {
	return s.changes
}

func (s *TaskService) notifyChange() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// indexOf must be called with the mutex held.
func (s *TaskService) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func validateDraft(draft Draft) error {
	fields := make(map[string]string)

	if strings.TrimSpace(draft.Title) == "" {
		fields["title"] = "Title is required"
	}
	if strings.TrimSpace(draft.Description) == "" {
		fields["description"] = "Description is required"
	}
	if draft.DueDate.IsZero() {
		fields["dueDate"] = "Due date is required"
	}
	if draft.Priority != "" && !draft.Priority.Valid() {
		fields["priority"] = "Priority must be low, medium or high"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
