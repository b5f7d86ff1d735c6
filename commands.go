package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/TWRT/time-quadrant/internal/models"
	"github.com/TWRT/time-quadrant/internal/service"
)

type draftFlags struct {
	title       string
	start       string
	end         string
	hours       float64
	difficulty  string
	drip        string
	description string
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "task title (max 30 characters)")
	cmd.Flags().StringVar(&f.start, "start", "", "start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.end, "end", "", "end date, YYYY-MM-DD")
	cmd.Flags().Float64Var(&f.hours, "hours", 0, "estimated hours, in steps of 0.5")
	cmd.Flags().StringVar(&f.difficulty, "difficulty", string(models.DifficultyMedium), "easy, medium or hard")
	cmd.Flags().StringVar(&f.drip, "drip", string(models.DripProduction), "delegation, replacement, investment or production")
	cmd.Flags().StringVar(&f.description, "description", "", "optional notes (max 200 characters)")
}

// apply overwrites the fields of draft whose flags were set explicitly.
func (f *draftFlags) apply(cmd *cobra.Command, draft *models.TaskDraft) {
	changed := cmd.Flags().Changed
	if changed("title") {
		draft.Title = f.title
	}
	if changed("start") {
		draft.StartDate = f.start
	}
	if changed("end") {
		draft.EndDate = f.end
	}
	if changed("hours") {
		draft.EstimatedHours = f.hours
	}
	if changed("difficulty") {
		draft.Difficulty = f.difficulty
	}
	if changed("drip") {
		draft.Drip = f.drip
	}
	if changed("description") {
		draft.Description = f.description
	}
}

func newAddCmd(flags *globalFlags) *cobra.Command {
	df := &draftFlags{}
	var quadrant string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to a quadrant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			q, err := models.ParseQuadrant(quadrant)
			if err != nil {
				return err
			}
			if a.tasks.CountByQuadrant(q) >= models.MaxTasksPerQuadrant {
				return fmt.Errorf("quota exceeded: %s already has %d tasks, complete or delete one first", q, models.MaxTasksPerQuadrant)
			}

			draft := models.TaskDraft{
				Quadrant:   quadrant,
				Difficulty: df.difficulty,
				Drip:       df.drip,
			}
			df.apply(cmd, &draft)

			task, err := a.tasks.AddTask(draft)
			if err != nil {
				return err
			}
			return printTask(cmd.OutOrStdout(), flags, "Task added", task)
		},
	}

	cmd.Flags().StringVarP(&quadrant, "quadrant", "q", "", "target quadrant key")
	cmd.MarkFlagRequired("quadrant")
	df.register(cmd)
	return cmd
}

func newEditCmd(flags *globalFlags) *cobra.Command {
	df := &draftFlags{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an active task; the quadrant cannot change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			current, ok := a.tasks.Find(id)
			if !ok {
				return &service.NotFoundError{ID: id}
			}
			draft := models.DraftFromTask(current)
			df.apply(cmd, &draft)

			task, err := a.tasks.UpdateTask(id, draft)
			if err != nil {
				return err
			}
			return printTask(cmd.OutOrStdout(), flags, "Task updated", task)
		},
	}

	df.register(cmd)
	return cmd
}

func newListCmd(flags *globalFlags) *cobra.Command {
	var quadrant string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active tasks, grouped by quadrant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			keys := make([]models.Quadrant, 0, len(models.Quadrants))
			if quadrant != "" {
				q, err := models.ParseQuadrant(quadrant)
				if err != nil {
					return err
				}
				keys = append(keys, q)
			} else {
				for _, info := range models.Quadrants {
					keys = append(keys, info.Key)
				}
			}

			out := cmd.OutOrStdout()
			if wantJSON(out, flags) {
				tasks := []models.Task{}
				for _, q := range keys {
					tasks = append(tasks, a.tasks.TasksByQuadrant(q)...)
				}
				return writeJSON(out, tasks)
			}

			for _, q := range keys {
				info, _ := models.LookupQuadrant(q)
				tasks := a.tasks.TasksByQuadrant(q)
				fmt.Fprintf(out, "%s [%s] (%d/%d)\n", info.Name, q, len(tasks), models.MaxTasksPerQuadrant)
				if len(tasks) == 0 {
					fmt.Fprintln(out, "  no tasks")
					continue
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				for _, t := range tasks {
					fmt.Fprintf(tw, "  %d\t%s\t%s → %s\t%.1fh\t%s\t%s\n",
						t.ID, t.Title, t.StartDate, t.EndDate, t.EstimatedHours, t.Difficulty, t.Drip)
				}
				tw.Flush()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&quadrant, "quadrant", "q", "", "only list this quadrant")
	return cmd
}

func newQuadrantsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "quadrants",
		Short: "Show each quadrant with its task count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			summary := a.tasks.Summary()
			out := cmd.OutOrStdout()
			if wantJSON(out, flags) {
				return writeJSON(out, summary)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tNAME\tTASKS\tFREE\tHINT")
			for _, q := range summary.Quadrants {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", q.Key, q.Name, q.Count, q.Remaining, q.Hint)
			}
			tw.Flush()
			fmt.Fprintf(out, "\n%d active, %d completed\n", summary.Active, summary.Completed)
			return nil
		},
	}
}

func newCompleteCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task done and move it to the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			done, err := a.tasks.CompleteTask(id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if wantJSON(out, flags) {
				return writeJSON(out, done)
			}
			fmt.Fprintf(out, "Task completed: %q moved to the archive\n", done.Title)
			return nil
		},
	}
}

func newDeleteCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an active task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			a.tasks.DeleteTask(id)
			if !wantJSON(cmd.OutOrStdout(), flags) {
				fmt.Fprintf(cmd.OutOrStdout(), "Task %d deleted\n", id)
			}
			return nil
		},
	}
}

func newArchiveCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "List completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			completed := a.tasks.Board().Completed
			out := cmd.OutOrStdout()
			if wantJSON(out, flags) {
				return writeJSON(out, completed)
			}

			if len(completed) == 0 {
				fmt.Fprintln(out, "No completed tasks yet")
				return nil
			}
			now := time.Now()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, t := range completed {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", t.ID, t.Title, t.Quadrant, humanize.RelTime(t.CompletedDate, now, "ago", "from now"))
			}
			tw.Flush()
			return nil
		},
	}
}

func newClearArchiveCmd(flags *globalFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear-archive",
		Short: "Permanently delete every completed task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("clearing the archive cannot be undone; rerun with --yes")
			}

			a, err := openApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			a.tasks.ClearCompletedHistory()
			if !wantJSON(cmd.OutOrStdout(), flags) {
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the irreversible clear")
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

func printTask(w io.Writer, flags *globalFlags, headline string, t models.Task) error {
	if wantJSON(w, flags) {
		return writeJSON(w, t)
	}
	fmt.Fprintf(w, "%s: %d %q in %s (%s → %s, %.1fh, %s, %s)\n",
		headline, t.ID, t.Title, t.Quadrant, t.StartDate, t.EndDate, t.EstimatedHours, t.Difficulty, t.Drip)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
