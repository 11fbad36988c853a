// Package publish delivers the serialized calendar document to its
// destination. The Publisher interface keeps the pipeline independent of
// whether output goes to a file or, in dry-run mode, to the terminal.
package publish
