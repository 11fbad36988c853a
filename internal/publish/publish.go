package publish

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Publisher defines the interface for delivering a serialized calendar
type Publisher interface {
	// Publish delivers the document
	Publish(doc string) error
}

// FilePublisher writes the document to a fixed path, creating parent
// directories as needed.
type FilePublisher struct {
	Path string
}

// NewFilePublisher creates a publisher writing to path
func NewFilePublisher(path string) *FilePublisher {
	return &FilePublisher{Path: path}
}

// Publish writes the document to the configured path.
func (p *FilePublisher) Publish(doc string) error {
	if dir := filepath.Dir(p.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(p.Path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// DryRunPublisher prints the document instead of writing it
type DryRunPublisher struct {
	Out io.Writer
}

// NewDryRunPublisher creates a publisher that prints to out, or stdout when
// out is nil.
func NewDryRunPublisher(out io.Writer) *DryRunPublisher {
	if out == nil {
		out = os.Stdout
	}
	return &DryRunPublisher{Out: out}
}

// Publish prints the document that would have been written.
func (p *DryRunPublisher) Publish(doc string) error {
	if _, err := fmt.Fprint(p.Out, doc); err != nil {
		return fmt.Errorf("printing calendar: %w", err)
	}
	return nil
}
