// Package scrape fetches Strava club pages and extracts their upcoming
// event rows. It deals only in raw text tuples; interpreting them is the
// event package's job.
package scrape
