package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/TWRT/time-quadrant/internal/service"
)

// writeJSON encodes body before writing the header. A body that cannot be
// encoded is logged and answered with a 500.
func writeJSON(w http.ResponseWriter, logger *log.Logger, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		logger.Error("encoding response failed", "status", status, "err", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal error"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(data, '\n')); err != nil {
		logger.Debug("writing response failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, logger *log.Logger, status int, message string) {
	writeJSON(w, logger, status, map[string]string{
		"error": message,
	})
}

// writeServiceError maps domain errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, logger *log.Logger, err error) {
	var validationErr *service.ValidationError
	var quotaErr *service.QuotaError
	var notFoundErr *service.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, logger, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "validation failed",
			"fields": validationErr.Fields,
		})
	case errors.As(err, &quotaErr):
		writeError(w, logger, http.StatusConflict, quotaErr.Error())
	case errors.As(err, &notFoundErr):
		writeError(w, logger, http.StatusNotFound, notFoundErr.Error())
	default:
		logger.Error("request failed", "err", err)
		writeError(w, logger, http.StatusInternalServerError, err.Error())
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
