package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	MaxTasksPerQuadrant  = 5
	MaxTitleLength       = 30
	MaxDescriptionLength = 200
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// NormalizeDifficulty maps empty or unknown input to DifficultyMedium.
func NormalizeDifficulty(s string) Difficulty {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d
	}
	return DifficultyMedium
}

type Drip string

const (
	DripDelegation  Drip = "delegation"
	DripReplacement Drip = "replacement"
	DripInvestment  Drip = "investment"
	DripProduction  Drip = "production"
)

// NormalizeDrip maps empty or unknown input to DripProduction.
func NormalizeDrip(s string) Drip {
	switch d := Drip(strings.ToLower(strings.TrimSpace(s))); d {
	case DripDelegation, DripReplacement, DripInvestment, DripProduction:
		return d
	}
	return DripProduction
}

const dateLayout = "2006-01-02"

// Date is a calendar day serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type Task struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	StartDate      Date       `json:"startDate"`
	EndDate        Date       `json:"endDate"`
	EstimatedHours float64    `json:"estimatedHours"`
	Difficulty     Difficulty `json:"difficulty"`
	Drip           Drip       `json:"drip"`
	Description    string     `json:"description"`
	Quadrant       Quadrant   `json:"quadrant"`
	Completed      bool       `json:"completed"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type CompletedTask struct {
	Task
	CompletedDate time.Time `json:"completedDate"`
}

// TaskDraft is unvalidated form input for creating or editing a task.
type TaskDraft struct {
	Title          string  `json:"title"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	EstimatedHours float64 `json:"estimatedHours"`
	Difficulty     string  `json:"difficulty"`
	Drip           string  `json:"drip"`
	Description    string  `json:"description"`
	Quadrant       string  `json:"quadrant"`
}

// DraftFromTask returns a draft that reproduces t when submitted as an edit.
func DraftFromTask(t Task) TaskDraft {
	return TaskDraft{
		Title:          t.Title,
		StartDate:      t.StartDate.String(),
		EndDate:        t.EndDate.String(),
		EstimatedHours: t.EstimatedHours,
		Difficulty:     string(t.Difficulty),
		Drip:           string(t.Drip),
		Description:    t.Description,
		Quadrant:       string(t.Quadrant),
	}
}
