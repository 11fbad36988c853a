package event

import (
	"sort"
	"time"
)

// Raw is a single event row as scraped from a club page. No format is
// guaranteed; Parse validates everything.
type Raw struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Month string `json:"month"`
	URL   string `json:"url"`
}

// Event represents a parsed Strava club event
type Event struct {
	Name        string    `json:"name"`
	StartTime   time.Time `json:"start_time"`   // when the calendar entry begins, Lead before the ride
	DisplayTime time.Time `json:"display_time"` // the advertised ride time
	URL         string    `json:"url"`
}

// SortByStart sorts events in place by ascending start time. The sort is
// stable so events sharing a start time keep their scrape order, which keeps
// the published document deterministic.
func SortByStart(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})
}
