package core

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"time"
)

// Scratchpad is the append-only JSON-lines audit log for one run. Each line is
// an independently parseable ScratchpadEntry; a crash mid-run leaves a partial
// but uncorrupted file.
type Scratchpad struct {
	file    *os.File
	path    string
	entries []ScratchpadEntry
}

// NewScratchpad creates the per-run log file under dir, named by the run start
// time plus a short hash of the workflow spec.
func NewScratchpad(dir string, spec WorkflowSpec, start time.Time) (*Scratchpad, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("scratchpad dir: %w", err)
	}
	name := fmt.Sprintf("%s_%s.jsonl", start.Format("2006-01-02-150405"), specHash(spec))
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("scratchpad open: %w", err)
	}
	return &Scratchpad{file: f, path: path}, nil
}

// Path returns the on-disk location of the log file.
func (s *Scratchpad) Path() string { return s.path }

// Entries returns the in-memory copy of everything logged so far.
func (s *Scratchpad) Entries() []ScratchpadEntry { return s.entries }

// Append stamps and writes one entry. Write failures are returned but callers
// treat them as best-effort; the run does not stop for a logging error.
func (s *Scratchpad) Append(entry ScratchpadEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	s.entries = append(s.entries, entry)
	if s.file == nil {
		return nil
	}
	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = s.file.Write(append(b, '\n'))
	return err
}

// Close releases the underlying file handle.
func (s *Scratchpad) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

// specHash derives the 8-hex-char run id suffix from the serialized spec.
func specHash(spec WorkflowSpec) string {
	b, _ := json.Marshal(spec)
	h := fnv.New32a()
	_, _ = h.Write(b)
	return fmt.Sprintf("%08x", h.Sum32())
}
