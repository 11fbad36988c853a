// Package calendar assembles parsed club events into an iCalendar document.
package calendar

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/pfrederiksen/strava-club-events/internal/event"
)

// ProductID identifies this generator in the published document.
const ProductID = "-//Strava Club Events//strava-club-events//EN"

// Options control filtering and serialization of the assembled calendar.
type Options struct {
	Window      time.Duration // forward-looking filter window
	EntryLength time.Duration // length of each calendar entry
	Name        string        // calendar display name (X-WR-CALNAME)
	Timezone    string        // timezone hint for clients (X-WR-TIMEZONE)
	UIDDomain   string        // suffix after the @ in entry UIDs
}

// Assemble filters events to [now, now+Window], sorts them by start time,
// drops duplicate UIDs and builds the calendar document. Zero surviving
// events still yield a well-formed calendar. now is passed explicitly so
// assembly stays clock-independent apart from the DTSTAMP of each entry.
func Assemble(events []event.Event, now time.Time, opts Options) *ics.Calendar {
	kept := Filter(events, now, opts.Window)
	event.SortByStart(kept)

	cal := ics.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName(opts.Name)
	cal.SetXWRTimezone(opts.Timezone)

	seen := make(map[string]bool)
	for _, evt := range kept {
		uid := UID(evt.URL, opts.UIDDomain)
		if seen[uid] {
			continue
		}
		seen[uid] = true

		e := cal.AddEvent(uid)
		e.SetDtStampTime(now.UTC())
		e.SetStartAt(evt.StartTime)
		e.SetEndAt(evt.StartTime.Add(opts.EntryLength))
		e.SetSummary(evt.Name)
		e.SetDescription(fmt.Sprintf("Strava Event: %s\nRide starts at: %s",
			evt.URL, evt.DisplayTime.Format("03:04 PM")))
		e.SetURL(evt.URL)
	}

	return cal
}

// Filter returns the events whose start time falls within [now, now+window],
// both ends inclusive.
func Filter(events []event.Event, now time.Time, window time.Duration) []event.Event {
	cutoff := now.Add(window)
	kept := make([]event.Event, 0, len(events))
	for _, evt := range events {
		if evt.StartTime.Before(now) || evt.StartTime.After(cutoff) {
			continue
		}
		kept = append(kept, evt)
	}
	return kept
}

// UID derives the deterministic entry identifier from the event URL: the last
// path segment plus the configured domain. Re-running the pipeline on the
// same source event yields the same UID, which is what calendar clients use
// to dedupe entries across publishes. URLs with no usable last segment fall
// back to a UUIDv5 of the whole URL, which is equally stable.
func UID(rawURL, domain string) string {
	seg := rawURL
	if i := strings.LastIndex(rawURL, "/"); i >= 0 {
		seg = rawURL[i+1:]
	}
	seg = strings.TrimSpace(seg)
	if seg == "" {
		seg = uuid.NewSHA1(uuid.NameSpaceURL, []byte(rawURL)).String()
	}
	return seg + "@" + domain
}
