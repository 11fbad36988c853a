package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"

	"github.com/pfrederiksen/strava-club-events/internal/event"
)

const (
	UserAgent      = "strava-club-events/1.0 (github.com/pfrederiksen/strava-club-events)"
	DefaultTimeout = 30 * time.Second
)

// Scraper handles fetching club pages and extracting event rows
type Scraper struct {
	client      *http.Client
	maxAttempts int
}

// New creates a new Scraper. maxAttempts is the total number of fetch
// attempts per club, including the first.
func New(timeout time.Duration, maxAttempts int) *Scraper {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Scraper{
		client:      &http.Client{Timeout: timeout},
		maxAttempts: maxAttempts,
	}
}

// FetchClub downloads a club page and returns its raw event rows. Transient
// fetch errors are retried with exponential backoff up to the attempt cap;
// exhausting it returns a terminal error for the caller to skip the club.
func (s *Scraper) FetchClub(ctx context.Context, clubURL string) ([]event.Raw, error) {
	var rows []event.Raw

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(s.maxAttempts-1)), ctx)

	op := func() error {
		var err error
		rows, err = s.fetchOnce(ctx, clubURL)
		return err
	}
	notify := func(err error, wait time.Duration) {
		log.WithFields(log.Fields{"club": clubURL, "wait": wait}).Warnf("fetch failed, retrying: %v", err)
	}

	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return nil, fmt.Errorf("fetching club %s: %w", clubURL, err)
	}
	return rows, nil
}

func (s *Scraper) fetchOnce(ctx context.Context, clubURL string) ([]event.Raw, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, clubURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return extractRows(resp.Body, clubURL)
}

// extractRows pulls event rows out of a club page. Each li.row carrying a
// group-event-title link is one event; rows without the link are member or
// navigation chrome and are skipped.
func extractRows(r io.Reader, clubURL string) ([]event.Raw, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	base, err := url.Parse(clubURL)
	if err != nil {
		return nil, fmt.Errorf("parsing club URL: %w", err)
	}

	rows := make([]event.Raw, 0)
	doc.Find("li.row").Each(func(i int, sel *goquery.Selection) {
		link := sel.Find("a.group-event-title").First()
		if link.Length() == 0 {
			return
		}
		href, _ := link.Attr("href")
		rows = append(rows, event.Raw{
			Title: strings.TrimSpace(link.Text()),
			Date:  strings.TrimSpace(sel.Find(".date").First().Text()),
			Month: strings.TrimSpace(sel.Find(".month").First().Text()),
			URL:   resolveURL(base, href),
		})
	})

	return rows, nil
}

// resolveURL makes relative event hrefs absolute against the club page URL.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
