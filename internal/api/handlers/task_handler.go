package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/TWRT/time-quadrant/internal/models"
	"github.com/TWRT/time-quadrant/internal/service"
)

type TaskHandler struct {
	taskService *service.TaskService
	logger      *log.Logger
}

func NewTaskHandler(taskService *service.TaskService, logger *log.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

func (h *TaskHandler) GetQuadrants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"summary": h.taskService.Summary(),
	})
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("quadrant")
	if key == "" {
		writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
			"tasks": h.taskService.Board().Active,
		})
		return
	}

	quadrant, err := models.ParseQuadrant(key)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	tasks := h.taskService.TasksByQuadrant(quadrant)
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"quadrant": quadrant,
		"count":    len(tasks),
		"tasks":    tasks,
	})
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid task id: "+r.PathValue("id"))
		return
	}

	task, ok := h.taskService.Find(id)
	if !ok {
		writeServiceError(w, h.logger, &service.NotFoundError{ID: id})
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"task": task,
	})
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}

	// Refuse a full quadrant before validating, the same way the form is
	// never offered for one.
	if q := models.Quadrant(draft.Quadrant); q.Valid() && h.taskService.CountByQuadrant(q) >= models.MaxTasksPerQuadrant {
		writeServiceError(w, h.logger, &service.QuotaError{Quadrant: q, Limit: models.MaxTasksPerQuadrant})
		return
	}

	task, err := h.taskService.AddTask(draft)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"task": task,
	})
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid task id: "+r.PathValue("id"))
		return
	}

	draft, ok := h.decodeDraft(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateTask(id, draft)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"task": task,
	})
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid task id: "+r.PathValue("id"))
		return
	}

	h.taskService.DeleteTask(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid task id: "+r.PathValue("id"))
		return
	}

	done, err := h.taskService.CompleteTask(id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"task":    done,
		"message": "Task completed and moved to the archive",
	})
}

func (h *TaskHandler) decodeDraft(w http.ResponseWriter, r *http.Request) (models.TaskDraft, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Error trying to read the body: "+err.Error())
		return models.TaskDraft{}, false
	}

	var draft models.TaskDraft
	if err := json.Unmarshal(body, &draft); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "JSON error: "+err.Error())
		return models.TaskDraft{}, false
	}
	return draft, true
}
