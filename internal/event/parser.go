package event

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// rolloverGrace is how far in the past a resolved date may land before it is
// assumed to belong to next year. Club pages list day and month only, so a
// "Jan 5" row scraped in December means next January.
const rolloverGrace = 60 * 24 * time.Hour

// titlePattern matches event titles like "Tue 6:30 AM / Morning Group Ride".
var titlePattern = regexp.MustCompile(`^(\w+)\s+(\d{1,2}:\d{2})\s+(AM|PM)\s*/\s*(.+)`)

// ParseError reports a single event row that could not be parsed. It carries
// the offending text so callers can log it and move on to the next row.
type ParseError struct {
	Field string // "title", "date" or "time"
	Text  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing event %s: %q", e.Field, e.Text)
}

// Parser converts raw scraped rows into Events. Location is the single IANA
// zone all club events are advertised in; Lead is how long before the ride
// the calendar entry starts.
type Parser struct {
	Location *time.Location
	Lead     time.Duration
}

// NewParser creates a Parser for the given zone and calendar lead time.
func NewParser(loc *time.Location, lead time.Duration) *Parser {
	return &Parser{Location: loc, Lead: lead}
}

// Parse converts one raw row into an Event. ref is the reference "now" used
// for year inference; passing it explicitly keeps parsing clock-independent.
// Failures return a *ParseError and never affect other rows.
func (p *Parser) Parse(raw Raw, ref time.Time) (Event, error) {
	m := titlePattern.FindStringSubmatch(raw.Title)
	if m == nil {
		return Event{}, &ParseError{Field: "title", Text: raw.Title}
	}
	dayName, clock, meridiem, name := m[1], m[2], m[3], m[4]

	date, err := resolveDate(raw.Date, raw.Month, ref)
	if err != nil {
		return Event{}, &ParseError{Field: "date", Text: raw.Date + " " + raw.Month}
	}

	tod, err := time.Parse("3:04 PM", clock+" "+meridiem)
	if err != nil {
		return Event{}, &ParseError{Field: "time", Text: clock + " " + meridiem}
	}

	display := time.Date(date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), 0, 0, p.Location)

	// The weekday token in the title is informational only. A mismatch is
	// worth a warning but never fails the row.
	if len(dayName) >= 3 && !strings.EqualFold(dayName[:3], display.Weekday().String()[:3]) {
		log.WithFields(log.Fields{
			"title":    raw.Title,
			"resolved": display.Weekday().String(),
		}).Warn("title weekday does not match resolved date")
	}

	return Event{
		Name:        strings.TrimSpace(name),
		StartTime:   display.Add(-p.Lead),
		DisplayTime: display,
		URL:         raw.URL,
	}, nil
}

// resolveDate combines a day-of-month and an abbreviated month with the year
// of ref. If the resulting date lands more than rolloverGrace in the past it
// is re-resolved with next year instead. Exactly one forward correction is
// applied.
func resolveDate(day, month string, ref time.Time) (time.Time, error) {
	d, err := time.Parse("2 Jan 2006", fmt.Sprintf("%s %s %d", day, month, ref.Year()))
	if err != nil {
		return time.Time{}, err
	}
	if d.Before(ref.Add(-rolloverGrace)) {
		d, err = time.Parse("2 Jan 2006", fmt.Sprintf("%s %s %d", day, month, ref.Year()+1))
		if err != nil {
			return time.Time{}, err
		}
	}
	return d, nil
}
