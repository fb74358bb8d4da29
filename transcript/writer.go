// Package transcript writes the run-scoped, append-only conversation log.
//
// Each run gets one plain-text UTF-8 file named after the run's start time in
// Unix seconds. Every seed message and every generated draft is appended as a
// block:
//
//	<Label>
//	<normalized text>
//	(blank line)
//
// Seed blocks are labelled with the capitalized role ("User", "Assistant");
// generated blocks are labelled with the literal model identifier. Runs started
// in the same second resolve to the same file name and will interleave; this is
// a known limitation and is not resolved here.
package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"duet/model"
)

// Writer appends blocks to an open transcript file.
// It is not safe for concurrent use; the orchestrator is its only writer.
type Writer struct {
	f      *os.File
	path   string
	blocks int
}

// FileName returns the transcript file name for a run started at startedAt.
func FileName(startedAt time.Time) string {
	return fmt.Sprintf("conversation_%d.txt", startedAt.Unix())
}

// Open creates (or reopens for append) the transcript for a run in dir.
// The directory is created with 0700 and the file with 0600, since
// transcripts contain full model conversations.
func Open(dir string, startedAt time.Time) (*Writer, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create transcript directory: %w", err)
	}

	path := filepath.Join(dir, FileName(startedAt))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}

	return &Writer{f: f, path: path}, nil
}

// WriteSeed appends one block per seed message, labelled by role.
func (w *Writer) WriteSeed(history []model.Message) error {
	for _, msg := range history {
		if err := w.Append(msg.Role.Label(), msg.Content); err != nil {
			return err
		}
	}
	return nil
}

// Append writes a single block. The text is normalized before it is written.
func (w *Writer) Append(label, text string) error {
	if w.f == nil {
		return fmt.Errorf("transcript %s is closed", w.path)
	}

	block := fmt.Sprintf("<%s>\n%s\n\n", label, Normalize(text))
	if _, err := w.f.WriteString(block); err != nil {
		return fmt.Errorf("failed to append to transcript: %w", err)
	}
	w.blocks++
	return nil
}

// Path returns the transcript file path.
func (w *Writer) Path() string {
	return w.path
}

// Blocks returns how many blocks this writer has appended.
func (w *Writer) Blocks() int {
	return w.blocks
}

// Close releases the file handle. Calling Close twice is a no-op.
func (w *Writer) Close() error {
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}
