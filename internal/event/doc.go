// Package event provides the types and parsing logic for Strava club events.
//
// The event package turns raw scraped rows (title, day-of-month, month
// abbreviation, URL) into structured events with timezone-correct start
// times. Parsing is strict: any row that deviates from the expected title or
// date format yields a ParseError that callers log and skip, so a single bad
// row never aborts a batch.
package event
