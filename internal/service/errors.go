package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/TWRT/time-quadrant/internal/models"
)

// FieldErrors maps a draft field name to a user-facing message.
type FieldErrors map[string]string

type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid task: " + strings.Join(parts, "; ")
}

type QuotaError struct {
	Quadrant models.Quadrant
	Limit    int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("quadrant %s already holds %d tasks", e.Quadrant, e.Limit)
}

type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.ID)
}
