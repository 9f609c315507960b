package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/oan-pulse/pulse/internal/model"
	"github.com/oan-pulse/pulse/internal/timesheet"
)

// EntryFilter scopes a time-entry listing. Day wins over the other
// fields when set.
type EntryFilter struct {
	Day       string // YYYY-MM-DD
	UserID    int64
	ProjectID int64
	StartDate string
	EndDate   string
}

type itemsEnvelope[T any] struct {
	Items []T `json:"items"`
}

// buildEntryQuery encodes the ORDS q parameter: a JSON document with
// $gte/$lte bounds on entry_date, or an equality match.
func buildEntryQuery(f EntryFilter) url.Values {
	q := url.Values{}
	switch {
	case f.Day != "":
		filter := map[string]any{
			"entry_date": map[string]string{
				"$gte": f.Day + "T00:00:00",
				"$lte": f.Day + "T23:59:59",
			},
		}
		data, _ := json.Marshal(filter)
		q.Set("q", string(data))
	case f.UserID != 0:
		data, _ := json.Marshal(map[string]int64{"user_id": f.UserID})
		q.Set("q", string(data))
	case f.ProjectID != 0:
		data, _ := json.Marshal(map[string]int64{"project_id": f.ProjectID})
		q.Set("q", string(data))
	case f.StartDate != "":
		data, _ := json.Marshal(map[string]any{"entry_date": map[string]string{"$gte": f.StartDate}})
		q.Set("q", string(data))
	case f.EndDate != "":
		data, _ := json.Marshal(map[string]any{"entry_date": map[string]string{"$lte": f.EndDate}})
		q.Set("q", string(data))
	}
	return q
}

// ListTimeEntries fetches entries matching the filter. A day-scoped
// listing is re-filtered client-side as well; the hosted ORDS date
// comparison has been seen to match neighboring days.
func (c *Client) ListTimeEntries(ctx context.Context, f EntryFilter) ([]model.TimeEntry, error) {
	var envelope itemsEnvelope[model.TimeEntry]
	if err := c.get(ctx, "/time-entries/", buildEntryQuery(f), &envelope); err != nil {
		return nil, err
	}
	entries := envelope.Items
	if f.Day != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if e.Day() == f.Day {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	return entries, nil
}

// EntriesForDay is the timesheet.FetchFunc used by the week refresh.
func (c *Client) EntriesForDay(userID int64) timesheet.FetchFunc {
	return func(ctx context.Context, day string) ([]model.TimeEntry, error) {
		entries, err := c.ListTimeEntries(ctx, EntryFilter{Day: day})
		if err != nil {
			return nil, err
		}
		if userID == 0 {
			return entries, nil
		}
		scoped := entries[:0]
		for _, e := range entries {
			if e.UserID == userID {
				scoped = append(scoped, e)
			}
		}
		return scoped, nil
	}
}

// GetTimeEntry fetches one entry by id.
func (c *Client) GetTimeEntry(ctx context.Context, id int64) (model.TimeEntry, error) {
	var entry model.TimeEntry
	err := c.get(ctx, fmt.Sprintf("/time-entries/%d", id), nil, &entry)
	return entry, err
}

// CreateTimeEntry submits a new entry payload.
func (c *Client) CreateTimeEntry(ctx context.Context, p timesheet.Payload) (model.TimeEntry, error) {
	var entry model.TimeEntry
	err := c.post(ctx, "/time-entries/", p, &entry)
	return entry, err
}

// UpdateTimeEntry replaces an entry.
func (c *Client) UpdateTimeEntry(ctx context.Context, id int64, p timesheet.Payload) (model.TimeEntry, error) {
	var entry model.TimeEntry
	err := c.put(ctx, fmt.Sprintf("/time-entries/%d", id), p, &entry)
	return entry, err
}

// DeleteTimeEntry removes an entry.
func (c *Client) DeleteTimeEntry(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/time-entries/%d", id))
}
