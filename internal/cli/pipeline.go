package cli

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pfrederiksen/strava-club-events/internal/event"
)

// ClubFetcher is the slice of the scraper the pipeline needs.
type ClubFetcher interface {
	FetchClub(ctx context.Context, clubURL string) ([]event.Raw, error)
}

// Collect fetches every club and parses its event rows. Each club contributes
// its own slice and the results are concatenated; per-club fetch errors and
// per-row parse errors are logged and skipped so one bad source or row never
// aborts the rest of the batch.
func Collect(ctx context.Context, fetcher ClubFetcher, parser *event.Parser, clubs []string, now time.Time) []event.Event {
	events := make([]event.Event, 0)

	for _, club := range clubs {
		rows, err := fetcher.FetchClub(ctx, club)
		if err != nil {
			log.WithField("club", club).Errorf("skipping club: %v", err)
			continue
		}

		parsed := 0
		for _, raw := range rows {
			evt, err := parser.Parse(raw, now)
			if err != nil {
				log.WithField("club", club).Warnf("skipping row: %v", err)
				continue
			}
			events = append(events, evt)
			parsed++
		}

		log.WithFields(log.Fields{
			"club":   club,
			"rows":   len(rows),
			"parsed": parsed,
		}).Debug("club scraped")
	}

	return events
}
