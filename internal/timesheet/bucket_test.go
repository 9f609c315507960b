package timesheet

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/oan-pulse/pulse/internal/model"
)

func testWeek() [7]time.Time {
	return WeekDates(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
}

func TestRefreshFillsAllSevenDays(t *testing.T) {
	store := NewWeekStore()
	fetch := func(ctx context.Context, day string) ([]model.TimeEntry, error) {
		return []model.TimeEntry{{EntryDate: day + "T00:00:00Z", Hours: 1}}, nil
	}

	buckets, ok := store.Refresh(context.Background(), testWeek(), fetch)
	if !ok {
		t.Fatal("refresh reported stale")
	}
	if len(buckets) != 7 {
		t.Fatalf("got %d buckets, want 7", len(buckets))
	}
	for _, d := range testWeek() {
		if entries := buckets[DayKey(d)]; len(entries) != 1 {
			t.Errorf("day %s has %d entries, want 1", DayKey(d), len(entries))
		}
	}
}

func TestRefreshPartialFailureTolerance(t *testing.T) {
	store := NewWeekStore()
	failDay := "2024-01-04"
	fetch := func(ctx context.Context, day string) ([]model.TimeEntry, error) {
		if day == failDay {
			return nil, errors.New("boom")
		}
		return []model.TimeEntry{{Hours: 2}}, nil
	}

	buckets, ok := store.Refresh(context.Background(), testWeek(), fetch)
	if !ok {
		t.Fatal("refresh reported stale")
	}

	// The failed day is an empty bucket, not an absent key and not an
	// error for the whole week.
	entries, present := buckets[failDay]
	if !present {
		t.Fatal("failed day missing from bucket map")
	}
	if len(entries) != 0 {
		t.Errorf("failed day has %d entries, want 0", len(entries))
	}

	if got := WeekTotal(buckets, testWeek()); got != 12 {
		t.Errorf("WeekTotal = %v, want 12 (6 days x 2h, failed day counts 0)", got)
	}
}

func TestRefreshRunsFetchesConcurrently(t *testing.T) {
	store := NewWeekStore()

	var (
		mu       sync.Mutex
		inFlight int
		peak     int
	)
	fetch := func(ctx context.Context, day string) ([]model.TimeEntry, error) {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		return nil, nil
	}

	store.Refresh(context.Background(), testWeek(), fetch)

	mu.Lock()
	defer mu.Unlock()
	if peak < 2 {
		t.Errorf("peak in-flight fetches = %d, want concurrent issue", peak)
	}
}

func TestRefreshStaleGenerationDiscarded(t *testing.T) {
	store := NewWeekStore()

	release := make(chan struct{})
	slowFetch := func(ctx context.Context, day string) ([]model.TimeEntry, error) {
		<-release
		return []model.TimeEntry{{Hours: 99}}, nil
	}
	fastFetch := func(ctx context.Context, day string) ([]model.TimeEntry, error) {
		return []model.TimeEntry{{Hours: 1}}, nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	staleOK := true
	go func() {
		defer wg.Done()
		_, staleOK = store.Refresh(context.Background(), testWeek(), slowFetch)
	}()

	// A newer refresh supersedes the in-flight one.
	// Give the slow refresh a moment to claim its generation first.
	time.Sleep(10 * time.Millisecond)
	_, ok := store.Refresh(context.Background(), testWeek(), fastFetch)
	if !ok {
		t.Fatal("newest refresh reported stale")
	}

	close(release)
	wg.Wait()

	if staleOK {
		t.Error("superseded refresh was not discarded")
	}
	// The installed state is the newer one.
	if got := DayTotal(store.Buckets(), "2024-01-01"); got != 1 {
		t.Errorf("installed day total = %v, want 1 (stale 99 must not win)", got)
	}
}

func TestEntriesAccessor(t *testing.T) {
	store := NewWeekStore()
	fetch := func(ctx context.Context, day string) ([]model.TimeEntry, error) {
		if day == "2024-01-05" {
			return []model.TimeEntry{{ID: 7, Hours: 3}}, nil
		}
		return nil, nil
	}
	store.Refresh(context.Background(), testWeek(), fetch)

	if entries := store.Entries("2024-01-05"); len(entries) != 1 || entries[0].ID != 7 {
		t.Errorf("Entries(2024-01-05) = %+v", entries)
	}
	if entries := store.Entries("2099-01-01"); len(entries) != 0 {
		t.Errorf("Entries for unknown day = %+v, want empty", entries)
	}
}
