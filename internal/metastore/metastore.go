// Package metastore persists the layout history of every table, the cell schema registry and
// the instance's system properties, on either bbolt or sqlite.
package metastore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/litetable/litetable-schema/internal/layout"
	"github.com/litetable/litetable-schema/internal/litetable"
	"github.com/rs/zerolog/log"
)

// Backend names a storage engine.
type Backend string

const (
	BackendBolt   Backend = "bbolt"
	BackendSQLite Backend = "sqlite"
)

// backend is the storage engine under a MetaStore. Layouts are stored as opaque JSON keyed by
// table and layout id.
type backend interface {
	// appendLayout stores a layout, failing unless id is greater than every stored id of table.
	appendLayout(ctx context.Context, table string, id uint64, data []byte) error
	// layouts returns up to limit layouts of table, newest first. A zero limit returns all.
	layouts(ctx context.Context, table string, limit int) ([][]byte, error)
	tables(ctx context.Context) ([]string, error)
	// deleteTable removes the history of table, reporting whether there was any.
	deleteTable(ctx context.Context, table string) (bool, error)
	// registerSchema returns the id of schema, assigning the next id when it is new.
	registerSchema(ctx context.Context, schema string) (uint64, error)
	schema(ctx context.Context, id uint64) (string, bool, error)
	property(ctx context.Context, key string) (string, bool, error)
	setProperty(ctx context.Context, key, value string) error
	close() error
}

// MetaStore holds the meta, schema and system tables of one instance.
type MetaStore struct {
	backend backend
	name    Backend
	path    string
}

type Config struct {
	Backend Backend
	// Path is the directory holding the database file.
	Path string
}

func (c *Config) validate() error {
	var errGrp []error
	switch c.Backend {
	case BackendBolt, BackendSQLite:
	default:
		errGrp = append(errGrp, fmt.Errorf("unknown meta store backend %q", c.Backend))
	}
	if c.Path == "" {
		errGrp = append(errGrp, errors.New("meta store path cannot be empty"))
	}
	return errors.Join(errGrp...)
}

// Open opens or creates the meta store.
func Open(cfg *Config) (*MetaStore, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Path, 0750); err != nil {
		return nil, fmt.Errorf("failed to create meta store directory: %w", err)
	}

	var (
		b    backend
		path string
		err  error
	)
	switch cfg.Backend {
	case BackendBolt:
		path = filepath.Join(cfg.Path, "meta.bbolt")
		b, err = openBolt(path)
	case BackendSQLite:
		path = filepath.Join(cfg.Path, "meta.sqlite")
		b, err = openSQLite(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s meta store: %w", cfg.Backend, err)
	}

	log.Debug().Str("backend", string(cfg.Backend)).Str("path", path).Msg("meta store opened")
	return &MetaStore{backend: b, name: cfg.Backend, path: path}, nil
}

func (m *MetaStore) Start() error {
	return nil
}

func (m *MetaStore) Stop() error {
	return m.Close()
}

func (m *MetaStore) Name() string {
	return "Meta Store (" + string(m.name) + ")"
}

func (m *MetaStore) Close() error {
	return m.backend.close()
}

// LayoutHistory returns up to limit layouts of a table, newest first.
func (m *MetaStore) LayoutHistory(ctx context.Context, table string,
	limit int) ([]*layout.Layout, error) {
	if limit < 0 {
		return nil, litetable.NewError(litetable.ErrInvalidRequest, "negative history limit")
	}
	raw, err := m.backend.layouts(ctx, table, limit)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, litetable.NewError(litetable.ErrTableNotFound, "%s", table)
	}

	history := make([]*layout.Layout, 0, len(raw))
	for _, data := range raw {
		l := new(layout.Layout)
		if err := json.Unmarshal(data, l); err != nil {
			return nil, fmt.Errorf("decoding layout of %s: %w", table, err)
		}
		history = append(history, l)
	}
	return history, nil
}

// AppendLayout makes l the newest layout of its table.
func (m *MetaStore) AppendLayout(ctx context.Context, l *layout.Layout) error {
	data, err := json.Marshal(l)
	if err != nil {
		return err
	}
	return m.backend.appendLayout(ctx, l.Name(), l.ID(), data)
}

// ListTables lists the tables with a layout history.
func (m *MetaStore) ListTables(ctx context.Context) ([]string, error) {
	return m.backend.tables(ctx)
}

// DeleteTable removes the layout history of a table.
func (m *MetaStore) DeleteTable(ctx context.Context, table string) error {
	found, err := m.backend.deleteTable(ctx, table)
	if err != nil {
		return err
	}
	if !found {
		return litetable.NewError(litetable.ErrTableNotFound, "%s", table)
	}
	return nil
}

// RegisterSchema returns the id of a cell schema, registering it on first use.
func (m *MetaStore) RegisterSchema(ctx context.Context, schema string) (uint64, error) {
	if schema == "" {
		return 0, litetable.NewError(litetable.ErrInvalidRequest, "empty cell schema")
	}
	return m.backend.registerSchema(ctx, schema)
}

// Schema returns the cell schema registered under id.
func (m *MetaStore) Schema(ctx context.Context, id uint64) (string, error) {
	s, ok, err := m.backend.schema(ctx, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", litetable.NewError(litetable.ErrInvalidRequest, "no cell schema with id %d", id)
	}
	return s, nil
}

// Property reads a system property.
func (m *MetaStore) Property(ctx context.Context, key string) (string, bool, error) {
	return m.backend.property(ctx, key)
}

// SetProperty writes a system property.
func (m *MetaStore) SetProperty(ctx context.Context, key, value string) error {
	return m.backend.setProperty(ctx, key, value)
}

func staleLayout(table string, id, latest uint64) error {
	return litetable.NewError(litetable.ErrIllegalState,
		"layout %d of %s is not newer than stored layout %d", id, table, latest)
}
