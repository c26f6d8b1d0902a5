// Package store persists export documents and the full-export watermark.
// Every write is a full-document rewrite; a channel's file is either its
// last good state or the complete new one.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/MikeSquared-Agency/mirror/internal/model"
)

// Store writes one JSON document per channel under dir, 2-space indented
// to match the external renderer's expectations.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// WriteExport persists a channel's document, recomputing messageCount from
// the message sequence at write time.
func (s *Store) WriteExport(channelID string, ex *model.Export) error {
	ex.MessageCount = len(ex.Messages)
	data, err := json.MarshalIndent(ex, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export %s: %w", channelID, err)
	}
	if err := os.WriteFile(s.path(channelID), data, 0o644); err != nil {
		return fmt.Errorf("write export %s: %w", channelID, err)
	}
	return nil
}

// ReadExport loads a channel's persisted document. A channel that was
// never exported yields (nil, nil).
func (s *Store) ReadExport(channelID string) (*model.Export, error) {
	data, err := os.ReadFile(s.path(channelID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read export %s: %w", channelID, err)
	}
	var ex model.Export
	if err := json.Unmarshal(data, &ex); err != nil {
		return nil, fmt.Errorf("parse export %s: %w", channelID, err)
	}
	return &ex, nil
}

func (s *Store) path(channelID string) string {
	return filepath.Join(s.dir, channelID+".json")
}
