// Package journal records the physical steps of layout migrations as JSON lines, so an operator
// can reconstruct how far a failed migration got.
package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultJournalDirectory = "journal"
	defaultJournalFile      = "migrations.log"
)

// Phase of a journaled step.
type Phase string

const (
	PhaseStarted   Phase = "started"
	PhaseCompleted Phase = "completed"
	PhaseFailed    Phase = "failed"
)

// Entry is one journaled step of a migration. Run groups the entries of one migration.
type Entry struct {
	Run       string    `json:"run"`
	Table     string    `json:"table"`
	LayoutID  uint64    `json:"layout_id"`
	Step      string    `json:"step"`
	Phase     Phase     `json:"phase"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Manager struct {
	mu   sync.Mutex
	file *os.File
	path string
}

type Config struct {
	// Path of the directory holding the journal directory.
	Path string
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Path == "" {
		errGrp = append(errGrp, errors.New("journal path cannot be empty"))
	}
	return errors.Join(errGrp...)
}

// New opens the journal for appending, creating it when missing.
func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	journalPath := filepath.Join(cfg.Path, defaultJournalDirectory, defaultJournalFile)
	if err := os.MkdirAll(filepath.Dir(journalPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	file, err := os.OpenFile(journalPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0640)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal file: %w", err)
	}

	return &Manager{
		file: file,
		path: journalPath,
	}, nil
}

func (m *Manager) Start() error {
	return nil
}

// Stop closes the journal file.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.file == nil {
		return nil
	}
	err := m.file.Close()
	m.file = nil
	return err
}

func (m *Manager) Name() string {
	return "Migration Journal"
}

// Path of the journal file.
func (m *Manager) Path() string {
	return m.path
}

// Append writes one entry and syncs it to disk.
func (m *Manager) Append(e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.file == nil {
		return errors.New("journal is closed")
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}
	if _, err = m.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write to journal: %w", err)
	}
	return m.file.Sync()
}

// Entries reads the journaled entries of a table in order. An empty table reads every entry.
// Malformed lines are skipped.
func (m *Manager) Entries(table string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	file, err := os.Open(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			log.Warn().Err(err).Msg("skipping malformed journal entry")
			continue
		}
		if table != "" && entry.Table != table {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}
