package repository

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/TWRT/time-quadrant/internal/models"
)

const (
	ActiveTasksKey    = "quadrant-tasks"
	CompletedTasksKey = "completed-tasks"

	schemaBaseURL = "https://twrt.dev/quadrant/"
)

//go:embed schema/*.json
var schemaFS embed.FS

// TaskStore persists the active and completed collections as two
// independent JSON entries. Each save overwrites its entry in full.
type TaskStore struct {
	kv        KeyValueStore
	logger    *log.Logger
	active    *jsonschema.Schema
	completed *jsonschema.Schema
}

func NewTaskStore(kv KeyValueStore, logger *log.Logger) (*TaskStore, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	for _, name := range []string{"active.schema.json", "completed.schema.json"} {
		data, err := schemaFS.ReadFile("schema/" + name)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}
		if err := compiler.AddResource(schemaBaseURL+name, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
	}

	active, err := compiler.Compile(schemaBaseURL + "active.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile active schema: %w", err)
	}
	completed, err := compiler.Compile(schemaBaseURL + "completed.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile completed schema: %w", err)
	}

	return &TaskStore{
		kv:        kv,
		logger:    logger,
		active:    active,
		completed: completed,
	}, nil
}

// LoadActive returns the persisted active tasks. Missing or malformed data
// yields an empty list.
func (s *TaskStore) LoadActive() []models.Task {
	return load[models.Task](s, ActiveTasksKey, s.active)
}

// LoadCompleted returns the persisted archive. Missing or malformed data
// yields an empty list.
func (s *TaskStore) LoadCompleted() []models.CompletedTask {
	return load[models.CompletedTask](s, CompletedTasksKey, s.completed)
}

func (s *TaskStore) SaveActive(tasks []models.Task) error {
	return save(s, ActiveTasksKey, tasks)
}

func (s *TaskStore) SaveCompleted(tasks []models.CompletedTask) error {
	return save(s, CompletedTasksKey, tasks)
}

func load[T any](s *TaskStore, key string, schema *jsonschema.Schema) []T {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		s.logger.Warn("reading stored tasks failed, starting empty", "key", key, "err", err)
		return []T{}
	}
	if !ok {
		return []T{}
	}

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		s.logger.Warn("discarding malformed entry", "key", key, "err", err)
		return []T{}
	}
	if err := schema.Validate(doc); err != nil {
		s.logger.Warn("discarding entry that fails schema", "key", key, "err", err)
		return []T{}
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.Warn("discarding malformed entry", "key", key, "err", err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

func save[T any](s *TaskStore, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.kv.Set(key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	s.logger.Debug("saved tasks", "key", key, "count", len(items))
	return nil
}
