package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oan-pulse/pulse/internal/model"
	"github.com/oan-pulse/pulse/internal/timesheet"
)

var entriesCmd = &cobra.Command{
	Use:     "entries",
	Aliases: []string{"ls"},
	Short:   "List time entries for a day",
	RunE:    runEntries,
}

var entriesDate string

var deleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Delete a time entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var duplicateCmd = &cobra.Command{
	Use:   "duplicate <entry-id>",
	Short: "Copy an entry onto another day",
	Long: `Copy an existing entry onto a day, marked with "(copy)".

Examples:
  pulse duplicate 42
  pulse duplicate 42 --date 2024-01-05`,
	Args: cobra.ExactArgs(1),
	RunE: runDuplicate,
}

var duplicateDate string

func init() {
	entriesCmd.Flags().StringVar(&entriesDate, "date", "", "Day to list (YYYY-MM-DD, default today)")
	duplicateCmd.Flags().StringVar(&duplicateDate, "date", "", "Target day (YYYY-MM-DD, default today)")
}

func runEntries(cmd *cobra.Command, args []string) error {
	client, sess, _, err := bootstrap()
	if err != nil {
		return err
	}
	if err := requireLogin(sess); err != nil {
		return err
	}

	day := entriesDate
	if day == "" {
		day = timesheet.DayKey(time.Now())
	} else if _, err := timesheet.ParseDay(day); err != nil {
		return fmt.Errorf("invalid --date: %w", err)
	}

	ctx := context.Background()
	entries, err := client.EntriesForDay(sess.User().ID)(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Printf("No entries on %s. Add one with: pulse add\n", day)
		return nil
	}

	projects, err := client.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}
	names := make(map[int64]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}

	fmt.Printf("\n🕒 %s\n", day)
	fmt.Println(strings.Repeat("─", 60))
	var total float64
	for _, e := range entries {
		printEntry(e, names[e.ProjectID])
		total += e.Hours
	}
	fmt.Println(strings.Repeat("─", 60))
	fmt.Printf("  Total: %.2fh\n\n", total)
	return nil
}

func printEntry(e model.TimeEntry, projectName string) {
	if projectName == "" {
		projectName = fmt.Sprintf("project %d", e.ProjectID)
	}

	status := "  "
	switch e.Status {
	case model.StatusApproved:
		status = "✓ "
	case model.StatusRejected:
		status = "✗ "
	}

	notes := e.Notes
	if len(notes) > 30 {
		notes = notes[:27] + "..."
	}

	fmt.Printf("  #%-5d %s %-24s %5.2fh  %s\n", e.ID, status, projectName, e.Hours, notes)
	if e.Status == model.StatusRejected && e.RejectionReason != "" {
		fmt.Printf("         rejected: %s\n", e.RejectionReason)
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	client, sess, cfg, err := bootstrap()
	if err != nil {
		return err
	}
	if err := requireLogin(sess); err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid entry id: %s", args[0])
	}

	if cfg.ConfirmDelete {
		reader := bufio.NewReader(os.Stdin)
		fmt.Printf("Delete entry #%d? [y/N] ", id)
		answer, _ := reader.ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := client.DeleteTimeEntry(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	fmt.Printf("✅ Deleted entry #%d\n", id)
	return nil
}

func runDuplicate(cmd *cobra.Command, args []string) error {
	client, sess, _, err := bootstrap()
	if err != nil {
		return err
	}
	if err := requireLogin(sess); err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid entry id: %s", args[0])
	}

	day := duplicateDate
	if day == "" {
		day = timesheet.DayKey(time.Now())
	} else if _, err := timesheet.ParseDay(day); err != nil {
		return fmt.Errorf("invalid --date: %w", err)
	}

	ctx := context.Background()
	src, err := client.GetTimeEntry(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch entry #%d: %w", id, err)
	}

	projects, err := client.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	user := sess.User()
	payload := timesheet.DuplicatePayload(src, projects, timesheet.BuildContext{
		UserID:    user.ID,
		CreatedBy: user.ID,
		Day:       day,
	})

	entry, err := client.CreateTimeEntry(ctx, payload)
	if err != nil {
		return fmt.Errorf("failed to duplicate entry: %w", err)
	}
	fmt.Printf("✅ Duplicated #%d onto %s as #%d\n", id, entry.Day(), entry.ID)
	return nil
}
