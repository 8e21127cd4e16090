package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"taskboard/internal/handlers/dto"
	"taskboard/internal/logger"
	"taskboard/internal/models"
	"taskboard/internal/query"
	"taskboard/internal/service"
)

type TaskHandler struct {
	tasks TaskService
}

func NewTaskHandler(tasks TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// GetTasks returns the list run through the status/priority filter and
// the free-text matcher. Both are optional query parameters.
func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: list tasks")

	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = query.FilterAll
	}
	term := r.URL.Query().Get("search")

	tasks := h.tasks.Tasks(filter, term)

	logger.Info("HTTP_OUT: tasks listed",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)))
	responseWithJSON(w, http.StatusOK, dto.FromTaskList(tasks))
}

func (h *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: create task")

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: malformed create body", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	draft := service.Draft{
		Title:       request.Title,
		Description: request.Description,
		Priority:    models.Priority(request.Priority),
		DueDate:     request.DueDate,
	}

	task, err := h.tasks.Create(r.Context(), draft)
	if err != nil {
		if validationErr, ok := service.AsValidationError(err); ok {
			logger.Warn("HTTP: create validation failed",
				zap.Int("fields", len(validationErr.Fields)))
			responseWithFieldErrors(w, validationErr.Fields)
			return
		}
		logger.Error("HTTP: create failed", err)
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: task created",
		zap.String("task_id", task.ID),
		zap.Duration("ms", time.Since(start)))
	responseWithJSON(w, http.StatusCreated, dto.FromTask(task))
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: update task")

	id := chi.URLParam(r, "id")
	if id == "" {
		responseWithError(w, http.StatusBadRequest, "task id is required")
		return
	}

	var request dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: malformed update body", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	var options []service.TaskOption
	if request.Title != nil {
		options = append(options, service.WithTitle(*request.Title))
	}
	if request.Description != nil {
		options = append(options, service.WithDescription(*request.Description))
	}
	if request.Priority != nil {
		options = append(options, service.WithPriority(models.Priority(*request.Priority)))
	}
	if request.DueDate != nil {
		options = append(options, service.WithDueDate(*request.DueDate))
	}

	task, err := h.tasks.Update(r.Context(), id, options...)
	if err != nil {
		h.writeTaskError(w, "update", err)
		return
	}

	logger.Info("HTTP_OUT: task updated",
		zap.String("task_id", id),
		zap.Duration("ms", time.Since(start)))
	responseWithJSON(w, http.StatusOK, dto.FromTask(task))
}

// DeleteTask requires confirm=true; without it the delete is declined
// and nothing changes.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: delete task")

	id := chi.URLParam(r, "id")
	if id == "" {
		responseWithError(w, http.StatusBadRequest, "task id is required")
		return
	}

	confirmed := r.URL.Query().Get("confirm") == "true"

	if err := h.tasks.Delete(r.Context(), id, confirmed); err != nil {
		h.writeTaskError(w, "delete", err)
		return
	}

	logger.Info("HTTP_OUT: task deleted",
		zap.String("task_id", id),
		zap.Duration("ms", time.Since(start)))
	responseWithJSON(w, http.StatusNoContent, nil)
}

func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN: toggle task status")

	id := chi.URLParam(r, "id")
	if id == "" {
		responseWithError(w, http.StatusBadRequest, "task id is required")
		return
	}

	task, err := h.tasks.ToggleStatus(r.Context(), id)
	if err != nil {
		h.writeTaskError(w, "toggle", err)
		return
	}

	logger.Info("HTTP_OUT: task status toggled",
		zap.String("task_id", id),
		zap.String("status", string(task.Status)),
		zap.Duration("ms", time.Since(start)))
	responseWithJSON(w, http.StatusOK, dto.FromTask(task))
}

func (h *TaskHandler) writeTaskError(w http.ResponseWriter, operation string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		logger.Warn("HTTP: task not found", zap.String("operation", operation))
		responseWithError(w, http.StatusNotFound, "task not found")
	case errors.Is(err, service.ErrConfirmationRequired):
		logger.Warn("HTTP: delete without confirmation")
		responseWithError(w, http.StatusConflict, "deletion requires confirm=true")
	default:
		logger.Error("HTTP: "+operation+" failed", err)
		responseWithError(w, http.StatusInternalServerError, err.Error())
	}
}
