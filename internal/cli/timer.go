package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oan-pulse/pulse/internal/timesheet"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Run a timer and log the elapsed time",
	Long: `Run a live timer. Press Enter to stop; the elapsed time is
converted to hours and logged as a time entry for today.`,
	RunE: runTimer,
}

var timerProject int64

func init() {
	timerCmd.Flags().Int64VarP(&timerProject, "project", "P", 0, "Project id (prompted when omitted)")
}

func runTimer(cmd *cobra.Command, args []string) error {
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
	if timerProject != 0 {
		form.SetProject(timerProject)
	} else {
		if err := promptEntry(form, projects); err != nil {
			return err
		}
		// The timer supplies the hours.
		form.Hours = ""
	}

	timer := timesheet.NewTimer()
	timer.Start()

	stop := make(chan struct{})
	go func() {
		reader := bufio.NewReader(os.Stdin)
		_, _ = reader.ReadString('\n')
		close(stop)
	}()

	fmt.Println("⏱  Timer running. Press Enter to stop.")
	ticks := timer.Ticks(stop)
	for elapsed := range ticks {
		fmt.Printf("\r   %s ", timesheet.FormatClock(elapsed))
	}
	fmt.Println()

	seconds := timer.Stop()
	if seconds == 0 {
		fmt.Println("Nothing to log.")
		return nil
	}

	user := sess.User()
	result := form.BuildPayload(timesheet.BuildContext{
		UserID:       user.ID,
		CreatedBy:    user.ID,
		Day:          timesheet.DayKey(time.Now()),
		TimerSeconds: seconds,
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

	fmt.Printf("✅ Logged %s (%.2fh) on %s (entry #%d)\n",
		timesheet.FormatClock(seconds), entry.Hours, entry.Day(), entry.ID)
	fmt.Println(strings.Repeat("─", 40))
	return nil
}
