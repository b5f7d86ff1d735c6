package api

import (
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/TWRT/time-quadrant/internal/api/handlers"
	"github.com/TWRT/time-quadrant/internal/service"
)

func SetupRouter(taskService *service.TaskService, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	taskHandler := handlers.NewTaskHandler(taskService, logger)
	archiveHandler := handlers.NewArchiveHandler(taskService, logger)

	mux.HandleFunc("GET /quadrants", taskHandler.GetQuadrants)

	mux.HandleFunc("GET /tasks", taskHandler.ListTasks)
	mux.HandleFunc("POST /tasks", taskHandler.CreateTask)
	mux.HandleFunc("GET /tasks/{id}", taskHandler.GetTask)
	mux.HandleFunc("PUT /tasks/{id}", taskHandler.UpdateTask)
	mux.HandleFunc("DELETE /tasks/{id}", taskHandler.DeleteTask)
	mux.HandleFunc("POST /tasks/{id}/complete", taskHandler.CompleteTask)

	mux.HandleFunc("GET /completed", archiveHandler.ListCompleted)
	mux.HandleFunc("DELETE /completed", archiveHandler.ClearCompleted)

	return withRequestLogging(mux, logger)
}
