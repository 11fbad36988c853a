package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/strava-club-events/internal/calendar"
	"github.com/pfrederiksen/strava-club-events/internal/event"
)

func main() {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading timezone: %v\n", err)
		os.Exit(1)
	}

	now := time.Now().In(loc)
	parser := event.NewParser(loc, 30*time.Minute)

	// Sample rows the way the scraper would hand them over
	rows := []event.Raw{
		{
			Title: now.AddDate(0, 0, 7).Format("Mon") + " 6:30 AM / Morning Group Ride",
			Date:  now.AddDate(0, 0, 7).Format("2"),
			Month: now.AddDate(0, 0, 7).Format("Jan"),
			URL:   "https://www.strava.com/clubs/12345/group_events/67890",
		},
		{
			Title: now.AddDate(0, 0, 10).Format("Mon") + " 5:45 PM / Hill Repeats",
			Date:  now.AddDate(0, 0, 10).Format("2"),
			Month: now.AddDate(0, 0, 10).Format("Jan"),
			URL:   "https://www.strava.com/clubs/12345/group_events/67891",
		},
	}

	events := make([]event.Event, 0, len(rows))
	for _, raw := range rows {
		evt, err := parser.Parse(raw, now)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing sample row: %v\n", err)
			os.Exit(1)
		}
		events = append(events, evt)
	}

	doc := calendar.Assemble(events, now, calendar.Options{
		Window:      4 * 7 * 24 * time.Hour,
		EntryLength: 30 * time.Minute,
		Name:        "Strava Club Events",
		Timezone:    "America/Los_Angeles",
		UIDDomain:   "strava-scraper",
	})
	ics := doc.Serialize()

	filename := "preview-calendar.ics"
	if err := os.WriteFile(filename, []byte(ics), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(ics)
}
