package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
	}{
		{"easy", DifficultyEasy},
		{" HARD ", DifficultyHard},
		{"medium", DifficultyMedium},
		{"", DifficultyMedium},
		{"impossible", DifficultyMedium},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDifficulty(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeDrip(t *testing.T) {
	assert.Equal(t, DripDelegation, NormalizeDrip("delegation"))
	assert.Equal(t, DripInvestment, NormalizeDrip("Investment"))
	assert.Equal(t, DripProduction, NormalizeDrip(""))
	// older vocabulary falls back to the default
	assert.Equal(t, DripProduction, NormalizeDrip("reduce"))
}

func TestDateJSON(t *testing.T) {
	d, err := ParseDate("2024-01-05")
	require.NoError(t, err)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-05"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Equal(d.Time))

	var empty Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &empty))
	assert.True(t, empty.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"05/01/2024"`), &back))
}

func TestTaskJSONFieldNames(t *testing.T) {
	start, _ := ParseDate("2024-01-01")
	end, _ := ParseDate("2024-01-05")
	task := CompletedTask{
		Task: Task{
			ID:             1704067200000,
			Title:          "Study",
			StartDate:      start,
			EndDate:        end,
			EstimatedHours: 2,
			Difficulty:     DifficultyMedium,
			Drip:           DripInvestment,
			Quadrant:       QuadrantUrgentImportant,
			CreatedAt:      time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		},
		CompletedDate: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
	}

	b, err := json.Marshal(task)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(b, &fields))
	for _, key := range []string{"id", "title", "startDate", "endDate", "estimatedHours", "difficulty",
		"drip", "description", "quadrant", "completed", "createdAt", "completedDate"} {
		assert.Contains(t, fields, key)
	}
	assert.Equal(t, "2024-01-01", fields["startDate"])
	assert.Equal(t, "urgent-important", fields["quadrant"])
}

func TestParseQuadrant(t *testing.T) {
	for _, info := range Quadrants {
		q, err := ParseQuadrant(string(info.Key))
		require.NoError(t, err)
		assert.Equal(t, info.Key, q)
	}

	_, err := ParseQuadrant("urgent")
	assert.Error(t, err)
	assert.Len(t, Quadrants, 4)
}

func TestDraftFromTask(t *testing.T) {
	start, _ := ParseDate("2024-03-01")
	end, _ := ParseDate("2024-03-02")
	task := Task{Title: "Plan", StartDate: start, EndDate: end, EstimatedHours: 1.5,
		Difficulty: DifficultyHard, Drip: DripReplacement, Quadrant: QuadrantNotUrgentImportant}

	d := DraftFromTask(task)
	assert.Equal(t, "Plan", d.Title)
	assert.Equal(t, "2024-03-01", d.StartDate)
	assert.Equal(t, "2024-03-02", d.EndDate)
	assert.Equal(t, 1.5, d.EstimatedHours)
	assert.Equal(t, "hard", d.Difficulty)
	assert.Equal(t, "notUrgent-important", d.Quadrant)
}
