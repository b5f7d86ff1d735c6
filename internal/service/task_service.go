package service

import (
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/TWRT/time-quadrant/internal/models"
)

// TaskPersister writes whole collections back to storage.
type TaskPersister interface {
	SaveActive(tasks []models.Task) error
	SaveCompleted(tasks []models.CompletedTask) error
}

// TaskLoader reads persisted collections at startup.
type TaskLoader interface {
	LoadActive() []models.Task
	LoadCompleted() []models.CompletedTask
}

func LoadBoard(l TaskLoader) Board {
	return Board{Active: l.LoadActive(), Completed: l.LoadCompleted()}
}

// TaskService owns the current Board. Every successful mutation swaps in the
// new Board and writes the changed collections through the persister.
type TaskService struct {
	mu     sync.Mutex
	board  Board
	store  TaskPersister
	ids    *IDGenerator
	now    func() time.Time
	logger *log.Logger
}

func NewTaskService(
	initial Board,
	store TaskPersister,
	logger *log.Logger,
) *TaskService {
	if initial.Active == nil {
		initial.Active = []models.Task{}
	}
	if initial.Completed == nil {
		initial.Completed = []models.CompletedTask{}
	}
	return &TaskService{
		board:  initial,
		store:  store,
		ids:    NewIDGenerator(initial.MaxID()),
		now:    time.Now,
		logger: logger,
	}
}

// SetClock replaces the time source.
func (s *TaskService) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Board returns a snapshot of the current state.
func (s *TaskService) Board() Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Board{
		Active:    slices.Clone(s.board.Active),
		Completed: slices.Clone(s.board.Completed),
	}
}

func (s *TaskService) AddTask(draft models.TaskDraft) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	next, task, err := AddTask(s.board, draft, s.ids.Next(now), now)
	if err != nil {
		return models.Task{}, err
	}

	s.commit(next, true, false)
	s.logger.Info("task added", "id", task.ID, "quadrant", task.Quadrant, "title", task.Title)
	return task, nil
}

func (s *TaskService) UpdateTask(id int64, draft models.TaskDraft) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, task, err := UpdateTask(s.board, id, draft)
	if err != nil {
		return models.Task{}, err
	}

	s.commit(next, true, false)
	s.logger.Info("task updated", "id", task.ID)
	return task, nil
}

func (s *TaskService) DeleteTask(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := DeleteTask(s.board, id)
	if len(next.Active) == len(s.board.Active) {
		s.logger.Debug("delete of unknown task ignored", "id", id)
		return
	}

	s.commit(next, true, false)
	s.logger.Info("task deleted", "id", id)
}

func (s *TaskService) CompleteTask(id int64) (models.CompletedTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, done, err := CompleteTask(s.board, id, s.now())
	if err != nil {
		return models.CompletedTask{}, err
	}

	s.commit(next, true, true)
	s.logger.Info("task completed", "id", id, "quadrant", done.Quadrant)
	return done, nil
}

func (s *TaskService) ClearCompletedHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cleared := len(s.board.Completed)
	s.commit(ClearCompletedHistory(s.board), false, true)
	s.logger.Info("completed history cleared", "removed", cleared)
}

func (s *TaskService) Find(id int64) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Find(id)
}

// TasksByQuadrant returns the active tasks in q, in insertion order.
func (s *TaskService) TasksByQuadrant(q models.Quadrant) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Collect(s.board.TasksByQuadrant(q))
}

func (s *TaskService) CountByQuadrant(q models.Quadrant) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.CountByQuadrant(q)
}

func (s *TaskService) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Summary()
}

// commit installs next and persists the requested collections. Storage
// failures are logged and otherwise ignored; the in-memory state stays
// authoritative.
func (s *TaskService) commit(next Board, active, completed bool) {
	s.board = next

	if active {
		if err := s.store.SaveActive(next.Active); err != nil {
			s.logger.Error("persisting active tasks failed", "err", err)
		}
	}
	if completed {
		if err := s.store.SaveCompleted(next.Completed); err != nil {
			s.logger.Error("persisting completed tasks failed", "err", err)
		}
	}
}
