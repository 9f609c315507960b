package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/oan-pulse/pulse/internal/model"
)

// Manager workflow endpoints. These routes carry the token both as a
// bearer header and as token_in; newRequest handles that.

type teamResponse struct {
	TeamMembers []model.User `json:"team_members"`
}

// Team fetches the members reporting to the current manager.
func (c *Client) Team(ctx context.Context) ([]model.User, error) {
	var resp teamResponse
	if err := c.get(ctx, "/manager/team", nil, &resp); err != nil {
		return nil, err
	}
	return resp.TeamMembers, nil
}

type pendingResponse struct {
	PendingApprovals []model.TimeEntry `json:"pending_approvals"`
}

// PendingApprovals fetches the team's PENDING entries.
func (c *Client) PendingApprovals(ctx context.Context) ([]model.TimeEntry, error) {
	var resp pendingResponse
	if err := c.get(ctx, "/manager/pending", nil, &resp); err != nil {
		return nil, err
	}
	return resp.PendingApprovals, nil
}

// TeamEntryFilter scopes a team time-entry listing.
type TeamEntryFilter struct {
	StartDate string
	EndDate   string
	Status    string
}

type teamEntriesResponse struct {
	TimeEntries []model.TimeEntry `json:"time_entries"`
}

// TeamTimeEntries fetches the team's entries in a date range,
// optionally narrowed to one approval status.
func (c *Client) TeamTimeEntries(ctx context.Context, f TeamEntryFilter) ([]model.TimeEntry, error) {
	q := url.Values{}
	if f.StartDate != "" {
		q.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("end_date", f.EndDate)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	var resp teamEntriesResponse
	if err := c.get(ctx, "/manager/time-entries", q, &resp); err != nil {
		return nil, err
	}
	return resp.TimeEntries, nil
}

// Approve marks a submitted entry APPROVED.
func (c *Client) Approve(ctx context.Context, entryID int64) error {
	return c.post(ctx, fmt.Sprintf("/manager/approve/%d", entryID), nil, nil)
}

// Reject marks a submitted entry REJECTED with a reason.
func (c *Client) Reject(ctx context.Context, entryID int64, reason string) error {
	return c.post(ctx, fmt.Sprintf("/manager/reject/%d", entryID), map[string]string{"reason": reason}, nil)
}

// TeamStats is the manager dashboard aggregate.
type TeamStats struct {
	TotalHours    float64 `json:"total_hours"`
	BillableHours float64 `json:"billable_hours"`
	PendingCount  int     `json:"pending_count"`
	ApprovedCount int     `json:"approved_count"`
	RejectedCount int     `json:"rejected_count"`
	MemberCount   int     `json:"member_count"`
}

// Stats fetches team aggregates for a date range.
func (c *Client) Stats(ctx context.Context, startDate, endDate string) (TeamStats, error) {
	q := url.Values{}
	if startDate != "" {
		q.Set("start_date", startDate)
	}
	if endDate != "" {
		q.Set("end_date", endDate)
	}
	var stats TeamStats
	err := c.get(ctx, "/manager/stats", q, &stats)
	return stats, err
}
