package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TWRT/time-quadrant/internal/models"
	"github.com/TWRT/time-quadrant/internal/service"
)

func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{"QUADRANT_CONFIG", "QUADRANT_DB_PATH", "QUADRANT_ADDR", "QUADRANT_LOG_LEVEL", "QUADRANT_LOG_FORMAT"} {
		t.Setenv(key, "")
	}
	return filepath.Join(dir, "cli.db")
}

func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--db", db, "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func addStudy(t *testing.T, db, title string) models.Task {
	t.Helper()
	out, err := run(t, db, "add", "-q", "urgent-important", "-t", title,
		"--start", "2024-01-01", "--end", "2024-01-05", "--hours", "2")
	require.NoError(t, err)

	var task models.Task
	require.NoError(t, json.Unmarshal([]byte(out), &task))
	return task
}

func TestCLI_AddListComplete(t *testing.T) {
	db := setupCLI(t)

	task := addStudy(t, db, "Study")
	assert.Equal(t, "Study", task.Title)
	assert.Equal(t, models.DifficultyMedium, task.Difficulty)

	out, err := run(t, db, "list", "-q", "urgent-important")
	require.NoError(t, err)
	var tasks []models.Task
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)

	out, err = run(t, db, "complete", strconv.FormatInt(task.ID, 10))
	require.NoError(t, err)
	var done models.CompletedTask
	require.NoError(t, json.Unmarshal([]byte(out), &done))
	assert.True(t, done.Completed)

	out, err = run(t, db, "archive")
	require.NoError(t, err)
	var archived []models.CompletedTask
	require.NoError(t, json.Unmarshal([]byte(out), &archived))
	require.Len(t, archived, 1)
	assert.Equal(t, task.ID, archived[0].ID)

	out, err = run(t, db, "list")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestCLI_EditKeepsUnsetFields(t *testing.T) {
	db := setupCLI(t)
	task := addStudy(t, db, "Study")

	out, err := run(t, db, "edit", strconv.FormatInt(task.ID, 10), "--hours", "4.5")
	require.NoError(t, err)

	var updated models.Task
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, 4.5, updated.EstimatedHours)
	assert.Equal(t, "Study", updated.Title)
	assert.Equal(t, task.StartDate, updated.StartDate)
}

func TestCLI_ValidationError(t *testing.T) {
	db := setupCLI(t)

	_, err := run(t, db, "add", "-q", "urgent-important", "-t", "Study",
		"--start", "2024-01-05", "--end", "2024-01-01", "--hours", "0")

	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "endDate")
	assert.Contains(t, ve.Fields, "estimatedHours")
}

func TestCLI_InfiniteHoursIsAFieldError(t *testing.T) {
	db := setupCLI(t)

	_, err := run(t, db, "add", "-q", "urgent-important", "-t", "Study",
		"--start", "2024-01-01", "--end", "2024-01-05", "--hours", "Inf")

	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "estimatedHours")

	out, err := run(t, db, "list")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestCLI_QuotaExceeded(t *testing.T) {
	db := setupCLI(t)
	for i := 0; i < models.MaxTasksPerQuadrant; i++ {
		addStudy(t, db, "Task "+strconv.Itoa(i))
	}

	_, err := run(t, db, "add", "-q", "urgent-important", "-t", "Extra",
		"--start", "2024-01-01", "--end", "2024-01-05", "--hours", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestCLI_ClearArchiveNeedsConfirmation(t *testing.T) {
	db := setupCLI(t)
	task := addStudy(t, db, "Study")
	_, err := run(t, db, "complete", strconv.FormatInt(task.ID, 10))
	require.NoError(t, err)

	_, err = run(t, db, "clear-archive")
	require.Error(t, err)

	_, err = run(t, db, "clear-archive", "--yes")
	require.NoError(t, err)

	out, err := run(t, db, "archive")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestCLI_CompleteUnknown(t *testing.T) {
	db := setupCLI(t)

	_, err := run(t, db, "complete", "42")
	var nf *service.NotFoundError
	assert.ErrorAs(t, err, &nf)

	_, err = run(t, db, "complete", "not-a-number")
	assert.Error(t, err)
}

func TestCLI_Quadrants(t *testing.T) {
	db := setupCLI(t)
	addStudy(t, db, "Study")

	out, err := run(t, db, "quadrants")
	require.NoError(t, err)

	var summary service.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 1, summary.Active)
	assert.Len(t, summary.Quadrants, len(models.Quadrants))
}
