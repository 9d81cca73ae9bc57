// Package audit appends analytics records to a JSON Lines file.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Writer appends one JSON object per line. A Writer with an empty path
// discards every record.
type Writer struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func NewWriter(path string) *Writer {
	return &Writer{path: path, now: time.Now}
}

// Enabled reports whether records are written anywhere.
func (w *Writer) Enabled() bool {
	return w.path != ""
}

func (w *Writer) Path() string {
	return w.path
}

// Write stamps record with "ts" and appends it as one line. A "ts" key in
// record replaces the stamp.
func (w *Writer) Write(record map[string]interface{}) error {
	if !w.Enabled() {
		return nil
	}

	line := make(map[string]interface{}, len(record)+1)
	line["ts"] = w.now().UTC().Format(time.RFC3339Nano)
	for k, v := range record {
		line[k] = v
	}

	data, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("failed to encode audit record: %w", err)
	}
	data = append(data, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open audit file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}
	return nil
}
