package service

import (
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/TWRT/time-quadrant/internal/models"
)

// Board is the complete task state: the active list and the archive.
// Operations below never modify the Board they receive; they return a new
// one, so a failed operation leaves the caller's state untouched.
type Board struct {
	Active    []models.Task          `json:"active"`
	Completed []models.CompletedTask `json:"completed"`
}

type QuadrantSummary struct {
	models.QuadrantInfo
	Count     int `json:"count"`
	Remaining int `json:"remaining"`
}

type Summary struct {
	Quadrants []QuadrantSummary `json:"quadrants"`
	Active    int               `json:"active"`
	Completed int               `json:"completed"`
}

func (b Board) TasksByQuadrant(q models.Quadrant) iter.Seq[models.Task] {
	return func(yield func(models.Task) bool) {
		for _, t := range b.Active {
			if t.Quadrant != q {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

func (b Board) CountByQuadrant(q models.Quadrant) int {
	n := 0
	for range b.TasksByQuadrant(q) {
		n++
	}
	return n
}

func (b Board) Find(id int64) (models.Task, bool) {
	i := b.indexOf(id)
	if i < 0 {
		return models.Task{}, false
	}
	return b.Active[i], true
}

func (b Board) Summary() Summary {
	s := Summary{
		Quadrants: make([]QuadrantSummary, 0, len(models.Quadrants)),
		Active:    len(b.Active),
		Completed: len(b.Completed),
	}
	for _, info := range models.Quadrants {
		count := b.CountByQuadrant(info.Key)
		s.Quadrants = append(s.Quadrants, QuadrantSummary{
			QuadrantInfo: info,
			Count:        count,
			Remaining:    max(models.MaxTasksPerQuadrant-count, 0),
		})
	}
	return s
}

// MaxID returns the largest id in either collection, or 0.
func (b Board) MaxID() int64 {
	var m int64
	for _, t := range b.Active {
		m = max(m, t.ID)
	}
	for _, t := range b.Completed {
		m = max(m, t.ID)
	}
	return m
}

func (b Board) indexOf(id int64) int {
	return slices.IndexFunc(b.Active, func(t models.Task) bool { return t.ID == id })
}

// excludeNone never matches a task: generated ids start at 1 and the stored
// format rejects anything lower.
const excludeNone int64 = 0

// siblings returns the active tasks in q, skipping the task with id exclude.
func (b Board) siblings(q models.Quadrant, exclude int64) []models.Task {
	var out []models.Task
	for t := range b.TasksByQuadrant(q) {
		if t.ID != exclude {
			out = append(out, t)
		}
	}
	return out
}

// AddTask validates draft and appends it to the active list under id.
func AddTask(b Board, draft models.TaskDraft, id int64, now time.Time) (Board, models.Task, error) {
	q := models.Quadrant(draft.Quadrant)
	if !q.Valid() {
		return b, models.Task{}, &ValidationError{Fields: FieldErrors{"quadrant": "unknown quadrant"}}
	}

	if errs := ValidateDraft(draft, b.siblings(q, excludeNone)); len(errs) > 0 {
		return b, models.Task{}, &ValidationError{Fields: errs}
	}

	if b.CountByQuadrant(q) >= models.MaxTasksPerQuadrant {
		return b, models.Task{}, &QuotaError{Quadrant: q, Limit: models.MaxTasksPerQuadrant}
	}

	task := models.Task{
		ID:        id,
		Quadrant:  q,
		Completed: false,
		CreatedAt: now,
	}
	applyDraft(&task, draft)

	next := Board{
		Active:    append(slices.Clone(b.Active), task),
		Completed: b.Completed,
	}
	return next, task, nil
}

// UpdateTask replaces the editable fields of the task with id. The quadrant
// cannot change.
func UpdateTask(b Board, id int64, draft models.TaskDraft) (Board, models.Task, error) {
	i := b.indexOf(id)
	if i < 0 {
		return b, models.Task{}, &NotFoundError{ID: id}
	}
	current := b.Active[i]

	if draft.Quadrant != "" && models.Quadrant(draft.Quadrant) != current.Quadrant {
		return b, models.Task{}, &ValidationError{Fields: FieldErrors{"quadrant": "quadrant cannot be changed"}}
	}

	if errs := ValidateDraft(draft, b.siblings(current.Quadrant, id)); len(errs) > 0 {
		return b, models.Task{}, &ValidationError{Fields: errs}
	}

	updated := current
	applyDraft(&updated, draft)

	active := slices.Clone(b.Active)
	active[i] = updated
	return Board{Active: active, Completed: b.Completed}, updated, nil
}

// DeleteTask drops the task with id. Unknown ids are ignored.
func DeleteTask(b Board, id int64) Board {
	i := b.indexOf(id)
	if i < 0 {
		return b
	}
	return Board{
		Active:    slices.Delete(slices.Clone(b.Active), i, i+1),
		Completed: b.Completed,
	}
}

// CompleteTask moves the task with id into the archive, stamped with now.
func CompleteTask(b Board, id int64, now time.Time) (Board, models.CompletedTask, error) {
	i := b.indexOf(id)
	if i < 0 {
		return b, models.CompletedTask{}, &NotFoundError{ID: id}
	}

	task := b.Active[i]
	task.Completed = true
	done := models.CompletedTask{Task: task, CompletedDate: now}

	next := Board{
		Active:    slices.Delete(slices.Clone(b.Active), i, i+1),
		Completed: append(slices.Clone(b.Completed), done),
	}
	return next, done, nil
}

func ClearCompletedHistory(b Board) Board {
	return Board{Active: b.Active, Completed: []models.CompletedTask{}}
}

// applyDraft copies validated draft fields onto t, filling defaults.
func applyDraft(t *models.Task, draft models.TaskDraft) {
	start, _ := models.ParseDate(draft.StartDate)
	end, _ := models.ParseDate(draft.EndDate)

	t.Title = strings.TrimSpace(draft.Title)
	t.StartDate = start
	t.EndDate = end
	t.EstimatedHours = draft.EstimatedHours
	t.Difficulty = models.NormalizeDifficulty(draft.Difficulty)
	t.Drip = models.NormalizeDrip(draft.Drip)
	t.Description = truncateRunes(strings.TrimSpace(draft.Description), models.MaxDescriptionLength)
}
