package store

import (
	"fmt"
	"os"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// Save is the persisted process watermark: epoch seconds of the last
// completed full export.
type Save struct {
	LastFullExport int64 `json:"last_full_export"`
}

// SaveFile manages the watermark on disk.
type SaveFile struct {
	path string

	mu   sync.Mutex
	save Save
}

// LoadSave reads the watermark file, creating it with a zero watermark
// when absent so the first full export triggers immediately.
func LoadSave(path string) (*SaveFile, error) {
	sf := &SaveFile{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := sf.write(); err != nil {
				return nil, err
			}
			return sf, nil
		}
		return nil, fmt.Errorf("read save file: %w", err)
	}
	if err := json.Unmarshal(data, &sf.save); err != nil {
		return nil, fmt.Errorf("parse save file: %w", err)
	}
	return sf, nil
}

// LastFullExport returns the watermark as a wall-clock time.
func (s *SaveFile) LastFullExport() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Unix(s.save.LastFullExport, 0)
}

// Advance moves the watermark to now and persists it.
func (s *SaveFile) Advance(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save.LastFullExport = now.Unix()
	return s.write()
}

func (s *SaveFile) write() error {
	data, err := json.MarshalIndent(s.save, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal save file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write save file: %w", err)
	}
	return nil
}
