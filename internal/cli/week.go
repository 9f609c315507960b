package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oan-pulse/pulse/internal/timesheet"
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the weekly hours board",
	Long: `Show logged hours for the Monday-to-Sunday week around a date.

Examples:
  pulse week
  pulse week --date 2024-01-03`,
	RunE: runWeek,
}

var weekDate string

func init() {
	weekCmd.Flags().StringVar(&weekDate, "date", "", "Any date inside the week (YYYY-MM-DD, default today)")
}

func runWeek(cmd *cobra.Command, args []string) error {
	client, sess, _, err := bootstrap()
	if err != nil {
		return err
	}
	if err := requireLogin(sess); err != nil {
		return err
	}

	pivot := time.Now()
	if weekDate != "" {
		pivot, err = timesheet.ParseDay(weekDate)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
	}

	week := timesheet.WeekDates(pivot)
	store := timesheet.NewWeekStore()
	buckets, ok := store.Refresh(context.Background(), week, client.EntriesForDay(sess.User().ID))
	if !ok {
		return fmt.Errorf("week refresh was superseded")
	}

	today := timesheet.DayKey(time.Now())
	fmt.Printf("\n📅 Week of %s\n", week[0].Format("Jan 2, 2006"))
	fmt.Println(strings.Repeat("─", 56))

	for _, day := range week {
		key := timesheet.DayKey(day)
		total := timesheet.DayTotal(buckets, key)
		split := timesheet.SplitHours(total, timesheet.DailyTarget)

		marker := "  "
		if key == today {
			marker = "▸ "
		}
		line := fmt.Sprintf("%s%-9s %s  %5.2fh", marker, day.Format("Monday"), day.Format("Jan 02"), total)
		if split.IsOvertime() {
			line += fmt.Sprintf("  (%.2fh overtime)", split.Overtime)
		}
		fmt.Println(line)
	}

	fmt.Println(strings.Repeat("─", 56))
	fmt.Printf("  Total: %.2fh\n\n", timesheet.WeekTotal(buckets, week))
	return nil
}
