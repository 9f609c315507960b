package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oan-pulse/pulse/internal/session"
	"github.com/oan-pulse/pulse/internal/timesheet"
)

var managerCmd = &cobra.Command{
	Use:   "manager",
	Short: "Team review commands (managers and admins)",
}

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "List team members",
	RunE:  runTeam,
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List entries waiting for review",
	RunE:  runPending,
}

var approveCmd = &cobra.Command{
	Use:   "approve <entry-id>",
	Short: "Approve a team entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runApprove,
}

var rejectCmd = &cobra.Command{
	Use:   "reject <entry-id> <reason>",
	Short: "Reject a team entry with a reason",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runReject,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show team hour totals for the current week",
	RunE:  runStats,
}

func init() {
	managerCmd.AddCommand(teamCmd)
	managerCmd.AddCommand(pendingCmd)
	managerCmd.AddCommand(approveCmd)
	managerCmd.AddCommand(rejectCmd)
	managerCmd.AddCommand(statsCmd)
}

func requireManager(sess *session.Session) error {
	if err := requireLogin(sess); err != nil {
		return err
	}
	if !sess.User().CanApprove() {
		return fmt.Errorf("manager role required")
	}
	return nil
}

func runTeam(cmd *cobra.Command, args []string) error {
	client, sess, _, err := bootstrap()
	if err != nil {
		return err
	}
	if err := requireManager(sess); err != nil {
		return err
	}

	team, err := client.Team(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load team: %w", err)
	}
	if len(team) == 0 {
		fmt.Println("No team members.")
		return nil
	}

	fmt.Printf("\n👥 Team (%d)\n", len(team))
	fmt.Println(strings.Repeat("─", 50))
	for _, u := range team {
		fmt.Printf("  #%-4d %-24s %s\n", u.ID, u.FullName(), u.Email)
	}
	fmt.Println()
	return nil
}

func runPending(cmd *cobra.Command, args []string) error {
	client, sess, _, err := bootstrap()
	if err != nil {
		return err
	}
	if err := requireManager(sess); err != nil {
		return err
	}

	pending, err := client.PendingApprovals(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load pending entries: %w", err)
	}
	if len(pending) == 0 {
		fmt.Println("Nothing waiting for review. 🎉")
		return nil
	}

	fmt.Printf("\n📋 Pending approvals (%d)\n", len(pending))
	fmt.Println(strings.Repeat("─", 60))
	for _, e := range pending {
		fmt.Printf("  #%-5d user %-4d %s  %5.2fh  %s\n", e.ID, e.UserID, e.Day(), e.Hours, e.Notes)
	}
	fmt.Println()
	return nil
}

func runApprove(cmd *cobra.Command, args []string) error {
	client, sess, _, err := bootstrap()
	if err != nil {
		return err
	}
	if err := requireManager(sess); err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid entry id: %s", args[0])
	}
	if err := client.Approve(context.Background(), id); err != nil {
		return fmt.Errorf("failed to approve: %w", err)
	}
	fmt.Printf("✅ Approved entry #%d\n", id)
	return nil
}

func runReject(cmd *cobra.Command, args []string) error {
	client, sess, _, err := bootstrap()
	if err != nil {
		return err
	}
	if err := requireManager(sess); err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid entry id: %s", args[0])
	}
	reason := strings.Join(args[1:], " ")
	if err := client.Reject(context.Background(), id, reason); err != nil {
		return fmt.Errorf("failed to reject: %w", err)
	}
	fmt.Printf("✗ Rejected entry #%d: %s\n", id, reason)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	client, sess, _, err := bootstrap()
	if err != nil {
		return err
	}
	if err := requireManager(sess); err != nil {
		return err
	}

	week := timesheet.WeekDates(time.Now())
	stats, err := client.Stats(context.Background(),
		timesheet.DayKey(week[0]), timesheet.DayKey(week[6]))
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}

	fmt.Printf("\n📊 Week of %s\n", week[0].Format("Jan 2, 2006"))
	fmt.Println(strings.Repeat("─", 40))
	fmt.Printf("  Members:   %d\n", stats.MemberCount)
	fmt.Printf("  Total:     %.2fh\n", stats.TotalHours)
	fmt.Printf("  Billable:  %.2fh\n", stats.BillableHours)
	fmt.Printf("  Pending:   %d\n", stats.PendingCount)
	fmt.Printf("  Approved:  %d\n", stats.ApprovedCount)
	fmt.Printf("  Rejected:  %d\n", stats.RejectedCount)
	fmt.Println()
	return nil
}
