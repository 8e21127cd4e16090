package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"taskboard/internal/kvstore"
	"taskboard/internal/logger"
	"taskboard/internal/models"
)

const tasksKey = "tasks"

// TaskRepository persists the whole task collection as one JSON document
// under a single key. Every save replaces the previous document;
// last-writer-wins, no merge, no versioning.
type TaskRepository struct {
	kv kvstore.Store
}

func NewTaskRepository(kv kvstore.Store) *TaskRepository {
	return &TaskRepository{kv: kv}
}

// LoadAll reads the saved collection. Absent or unparseable data yields
// an empty collection, never an error: the caller always starts with a
// usable list.
func (r *TaskRepository) LoadAll(ctx context.Context) []models.Task {
	data, ok, err := r.kv.Get(ctx, tasksKey)
	if err != nil {
		logger.Warn("Repository: read failed, starting empty", zap.Error(err))
		return []models.Task{}
	}
	if !ok {
		return []models.Task{}
	}

	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		logger.Warn("Repository: malformed saved data, starting empty", zap.Error(err))
		return []models.Task{}
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	logger.Info("Repository: loaded tasks", zap.Int("count", len(tasks)))
	return tasks
}

// SaveAll serializes the full collection and overwrites durable storage.
func (r *TaskRepository) SaveAll(ctx context.Context, tasks []models.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("serializing tasks: %w", err)
	}
	if err := r.kv.Set(ctx, tasksKey, data); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}
