package service

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/TWRT/time-quadrant/internal/models"
)

const (
	msgTitleRequired    = "title is required"
	msgTitleTooLong     = "title must be at most 30 characters"
	msgTitleDuplicate   = "a task with this title already exists in this quadrant"
	msgStartRequired    = "start date is required"
	msgStartInvalid     = "start date must be formatted YYYY-MM-DD"
	msgEndRequired      = "end date is required"
	msgEndInvalid       = "end date must be formatted YYYY-MM-DD"
	msgEndBeforeStart   = "end date cannot be earlier than start date"
	msgHoursNotPositive = "estimated hours must be greater than 0"
)

// ValidateDraft checks a draft against the tasks already in its target
// quadrant. siblings must not include the task being edited. An empty result
// means the draft is acceptable.
func ValidateDraft(draft models.TaskDraft, siblings []models.Task) FieldErrors {
	errs := FieldErrors{}

	title := strings.TrimSpace(draft.Title)
	switch {
	case title == "":
		errs["title"] = msgTitleRequired
	case utf8.RuneCountInString(title) > models.MaxTitleLength:
		errs["title"] = msgTitleTooLong
	case hasTitle(siblings, title):
		errs["title"] = msgTitleDuplicate
	}

	var start, end models.Date
	startOK, endOK := false, false

	if strings.TrimSpace(draft.StartDate) == "" {
		errs["startDate"] = msgStartRequired
	} else if d, err := models.ParseDate(draft.StartDate); err != nil {
		errs["startDate"] = msgStartInvalid
	} else {
		start, startOK = d, true
	}

	if strings.TrimSpace(draft.EndDate) == "" {
		errs["endDate"] = msgEndRequired
	} else if d, err := models.ParseDate(draft.EndDate); err != nil {
		errs["endDate"] = msgEndInvalid
	} else {
		end, endOK = d, true
	}

	if startOK && endOK && end.Before(start.Time) {
		errs["endDate"] = msgEndBeforeStart
	}

	// NaN fails the comparison; +Inf cannot be stored as JSON.
	if h := draft.EstimatedHours; !(h > 0) || math.IsInf(h, 0) {
		errs["estimatedHours"] = msgHoursNotPositive
	}

	return errs
}

func hasTitle(tasks []models.Task, title string) bool {
	for _, t := range tasks {
		if strings.EqualFold(strings.TrimSpace(t.Title), title) {
			return true
		}
	}
	return false
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
