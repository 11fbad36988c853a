// Package cli implements the strava-club-events command: it wires the
// scraper, parser, assembler and publisher into one batch pipeline.
package cli
