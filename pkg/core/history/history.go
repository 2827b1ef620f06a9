// Package history keeps a persisted record of completed downloads.
package history

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultHistoryFile = "history.json"

// Kind tells which variant of a sound was downloaded.
type Kind string

const (
	KindPreview  Kind = "preview"
	KindOriginal Kind = "original"
)

// Entry is one completed download.
type Entry struct {
	SoundID      int       `json:"soundId"`
	Kind         Kind      `json:"kind"`
	Quality      string    `json:"quality,omitempty"`
	Format       string    `json:"format,omitempty"` // Tag format read from the file, e.g. "MP3"
	FilePath     string    `json:"filePath"`
	DownloadedAt time.Time `json:"downloadedAt"`
}

// Manager loads, appends to and saves the download history file.
type Manager struct {
	entries  []Entry
	lock     sync.RWMutex
	filePath string
	logger   *logrus.Logger
}

// NewManager creates a Manager storing history.json in dir and loads any
// existing history. A corrupt file is logged and replaced on the next save.
func NewManager(dir string, logger *logrus.Logger) (*Manager, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory %s: %w", dir, err)
	}

	m := &Manager{
		entries:  []Entry{},
		filePath: filepath.Join(dir, defaultHistoryFile),
		logger:   logger,
	}
	if err := m.Load(); err != nil {
		m.logger.WithError(err).WithField("path", m.filePath).Warn("Failed to load download history, starting empty")
	}
	return m, nil
}

// Path returns the history file location.
func (m *Manager) Path() string {
	return m.filePath
}

// Load replaces the in-memory history with the file contents.
func (m *Manager) Load() error {
	m.lock.Lock()
	defer m.lock.Unlock()

	data, err := os.ReadFile(m.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.entries = []Entry{}
			return nil
		}
		return fmt.Errorf("failed to read history file %s: %w", m.filePath, err)
	}
	if len(data) == 0 {
		m.entries = []Entry{}
		return nil
	}

	var loaded []Entry
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal history from %s: %w", m.filePath, err)
	}
	m.entries = loaded
	m.logger.WithFields(logrus.Fields{"path": m.filePath, "entries": len(loaded)}).Debug("Download history loaded")
	return nil
}

// save writes the history; callers hold the lock.
func (m *Manager) save() error {
	data, err := json.MarshalIndent(m.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := os.WriteFile(m.filePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write history file %s: %w", m.filePath, err)
	}
	return nil
}

// Add prepends entry, newest first, and saves. A zero DownloadedAt is set to now.
func (m *Manager) Add(entry Entry) error {
	if entry.SoundID <= 0 || entry.FilePath == "" {
		return fmt.Errorf("invalid history entry: sound %d, path %q", entry.SoundID, entry.FilePath)
	}
	if entry.DownloadedAt.IsZero() {
		entry.DownloadedAt = time.Now()
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	m.entries = append([]Entry{entry}, m.entries...)
	m.logger.WithFields(logrus.Fields{"sound_id": entry.SoundID, "kind": entry.Kind}).Debug("Recorded download")
	return m.save()
}

// List returns a copy of the history, newest first. limit <= 0 returns everything.
func (m *Manager) List(limit int) []Entry {
	m.lock.RLock()
	defer m.lock.RUnlock()

	n := len(m.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	entries := make([]Entry, n)
	copy(entries, m.entries[:n])
	return entries
}

// Clear removes all entries and saves the empty history.
func (m *Manager) Clear() error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if len(m.entries) == 0 {
		return nil
	}
	m.entries = []Entry{}
	m.logger.Info("Cleared download history")
	return m.save()
}
