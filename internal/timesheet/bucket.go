package timesheet

import (
	"context"
	"sync"
	"time"

	"github.com/oan-pulse/pulse/internal/logger"
	"github.com/oan-pulse/pulse/internal/model"
)

// FetchFunc loads the entries for one calendar day key.
type FetchFunc func(ctx context.Context, day string) ([]model.TimeEntry, error)

// WeekStore holds the day -> entries buckets for the currently viewed
// week. The buckets are scratch state: discarded and refetched wholesale
// after every mutation and on every pivot change, never patched.
type WeekStore struct {
	mu      sync.Mutex
	gen     uint64
	buckets map[string][]model.TimeEntry
}

// NewWeekStore returns an empty store.
func NewWeekStore() *WeekStore {
	return &WeekStore{buckets: make(map[string][]model.TimeEntry)}
}

// Refresh fetches all 7 days of the window concurrently and joins the
// results. A failed day yields an empty bucket, not a failed week. Each
// refresh carries a generation token; a refresh that was superseded
// while in flight is discarded and reported with ok=false, so a stale
// resolver can never overwrite fresher state.
func (s *WeekStore) Refresh(ctx context.Context, week [7]time.Time, fetch FetchFunc) (map[string][]model.TimeEntry, bool) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	result := make(map[string][]model.TimeEntry, len(week))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, d := range week {
		day := DayKey(d)
		wg.Add(1)
		go func() {
			defer wg.Done()
			entries, err := fetch(ctx, day)
			if err != nil {
				logger.Warn("Day fetch failed", logger.F("day", day), logger.F("error", err))
				entries = []model.TimeEntry{}
			}
			if entries == nil {
				entries = []model.TimeEntry{}
			}
			mu.Lock()
			result[day] = entries
			mu.Unlock()
		}()
	}
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return result, false
	}
	s.buckets = result
	return result, true
}

// Buckets returns the current day -> entries map.
func (s *WeekStore) Buckets() map[string][]model.TimeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buckets
}

// Entries returns the bucket for one day key, empty when absent.
func (s *WeekStore) Entries(day string) []model.TimeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buckets[day]
}
