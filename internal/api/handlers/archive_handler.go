package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/TWRT/time-quadrant/internal/service"
)

type ArchiveHandler struct {
	taskService *service.TaskService
	logger      *log.Logger
}

func NewArchiveHandler(taskService *service.TaskService, logger *log.Logger) *ArchiveHandler {
	return &ArchiveHandler{
		taskService: taskService,
		logger:      logger,
	}
}

func (h *ArchiveHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	completed := h.taskService.Board().Completed
	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"count":     len(completed),
		"completed": completed,
	})
}

func (h *ArchiveHandler) ClearCompleted(w http.ResponseWriter, r *http.Request) {
	h.taskService.ClearCompletedHistory()
	w.WriteHeader(http.StatusNoContent)
}
