package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/oan-pulse/pulse/internal/model"
	"github.com/oan-pulse/pulse/internal/timesheet"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a time entry",
	Long: `Log hours against a project, interactively or via flags.

Examples:
  pulse add
  pulse add --project 3 --hours 2.5 --notes "sprint review"
  pulse add --project 3 --task 12 --hours 1 --date 2024-01-03`,
	RunE: runAdd,
}

var (
	addProject int64
	addTask    int64
	addHours   string
	addNotes   string
	addRate    string
	addDate    string
)

func init() {
	addCmd.Flags().Int64VarP(&addProject, "project", "P", 0, "Project id")
	addCmd.Flags().Int64VarP(&addTask, "task", "T", 0, "Task id (must belong to the project)")
	addCmd.Flags().StringVar(&addHours, "hours", "", "Hours worked, e.g. 2.5")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Notes")
	addCmd.Flags().StringVar(&addRate, "rate", "", "Hourly rate override")
	addCmd.Flags().StringVar(&addDate, "date", "", "Entry date (YYYY-MM-DD, default today)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	client, sess, _, err := bootstrap()
	if err != nil {
		return err
	}
	if err := requireLogin(sess); err != nil {
		return err
	}

	ctx := context.Background()
	projects, err := client.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}
	tasks, err := client.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	form := timesheet.NewFormController(projects, tasks)
	form.SetProject(addProject)
	form.TaskID = addTask
	form.Hours = addHours
	form.Notes = addNotes
	form.HourlyRate = addRate

	// No flags means interactive.
	if addProject == 0 {
		if err := promptEntry(form, projects); err != nil {
			return err
		}
	}

	day := addDate
	if day == "" {
		day = timesheet.DayKey(time.Now())
	} else if _, err := timesheet.ParseDay(day); err != nil {
		return fmt.Errorf("invalid --date: %w", err)
	}

	user := sess.User()
	result := form.BuildPayload(timesheet.BuildContext{
		UserID:    user.ID,
		CreatedBy: user.ID,
		Day:       day,
	})
	if !result.OK() {
		for field, msg := range result.FieldErrors {
			fmt.Printf("❌ %s: %s\n", field, msg)
		}
		return fmt.Errorf("entry not valid")
	}

	entry, err := client.CreateTimeEntry(ctx, result.Payload)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}

	fmt.Printf("✅ Logged %.2fh on %s (entry #%d)\n", entry.Hours, entry.Day(), entry.ID)
	return nil
}

// promptEntry fills the draft through an interactive form. Project
// first, then a second form whose task options reflect the choice.
func promptEntry(form *timesheet.FormController, projects []model.Project) error {
	if len(projects) == 0 {
		return fmt.Errorf("no projects available")
	}

	projectOpts := make([]huh.Option[int64], 0, len(projects))
	for _, p := range projects {
		projectOpts = append(projectOpts, huh.NewOption(p.Name, p.ID))
	}

	var projectID int64
	pick := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int64]().
			Title("Project").
			Options(projectOpts...).
			Value(&projectID),
	))
	if err := pick.Run(); err != nil {
		return err
	}
	form.SetProject(projectID)

	taskOpts := []huh.Option[int64]{huh.NewOption("(none)", int64(0))}
	for _, t := range form.Tasks() {
		taskOpts = append(taskOpts, huh.NewOption(t.Name, t.ID))
	}

	details := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int64]().
			Title("Task").
			Options(taskOpts...).
			Value(&form.TaskID),
		huh.NewInput().
			Title("Hours").
			Placeholder("2.5").
			Value(&form.Hours),
		huh.NewInput().
			Title("Notes").
			Value(&form.Notes),
	))
	return details.Run()
}
