// Package presentation formats command output as JSON or aligned text.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	json   bool
}

// NewFormatter creates a formatter writing text, or JSON when asJSON is set.
func NewFormatter(writer io.Writer, asJSON bool) *Formatter {
	return &Formatter{
		writer: writer,
		json:   asJSON,
	}
}

// FormatSnapshots writes one line per snapshot, newest first.
func (f *Formatter) FormatSnapshots(snaps []SnapshotDTO) error {
	if f.json {
		return f.encode(snaps)
	}
	if len(snaps) == 0 {
		_, err := fmt.Fprintln(f.writer, "No snapshots.")
		return err
	}
	for _, s := range snaps {
		line := fmt.Sprintf("%-8.8s  %s  %5d  %s", s.ID, s.CreatedAt.Format("2006-01-02 15:04:05"), s.Nodes, s.Root)
		if s.Label != "" {
			line += "  (" + s.Label + ")"
		}
		if _, err := fmt.Fprintln(f.writer, line); err != nil {
			return err
		}
	}
	return nil
}

// FormatSnapshot writes a single snapshot. The text form is the report
// itself, so it can be redirected into a file and loaded again.
func (f *Formatter) FormatSnapshot(s SnapshotDTO) error {
	if f.json {
		return f.encode(s)
	}
	_, err := io.WriteString(f.writer, s.Body)
	return err
}

// FormatStats writes tree statistics.
func (f *Formatter) FormatStats(s StatsDTO) error {
	if f.json {
		return f.encode(s)
	}
	_, err := fmt.Fprintf(f.writer, "%s: %d directories, %d without subdirectories, depth %d\n",
		s.Root, s.Nodes, s.Leaves, s.MaxDepth)
	return err
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
