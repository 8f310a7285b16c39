// Package reader binds data requests and pagers to the rows of one logical table.
package reader

import (
	"context"
	"errors"

	"github.com/litetable/litetable-schema/internal/layout"
	"github.com/litetable/litetable-schema/internal/litetable"
	"github.com/litetable/litetable-schema/internal/pager"
	"github.com/litetable/litetable-schema/internal/physical"
	"github.com/litetable/litetable-schema/internal/request"
	"github.com/rs/zerolog/log"
)

//go:generate mockgen -destination=table_mock.go -package=reader -source=table.go

type store interface {
	Query(ctx context.Context, q *litetable.Query) ([]litetable.Cell, error)
	Put(ctx context.Context, table, rowKey, family, qualifier string, ts int64,
		value []byte) error
	RowKeys(ctx context.Context, table, from string, limit int) ([]string, error)
}

// Table reads and writes the rows of one logical table through its current layout.
type Table struct {
	store    store
	physical string
	layout   *layout.Layout
}

type Config struct {
	Store    store
	Instance string
	Layout   *layout.Layout
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Store == nil {
		errGrp = append(errGrp, errors.New("store cannot be nil"))
	}
	if c.Instance == "" {
		errGrp = append(errGrp, errors.New("instance cannot be empty"))
	}
	if c.Layout == nil {
		errGrp = append(errGrp, errors.New("layout cannot be nil"))
	}
	return errors.Join(errGrp...)
}

// New binds a table to its layout.
func New(cfg *Config) (*Table, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Table{
		store:    cfg.Store,
		physical: physical.TableName(cfg.Instance, cfg.Layout.Name()),
		layout:   cfg.Layout,
	}, nil
}

// Name is the logical table name.
func (t *Table) Name() string {
	return t.layout.Name()
}

func (t *Table) Layout() *layout.Layout {
	return t.layout
}

// family resolves a logical family and, for group-type families, checks the column exists.
func (t *Table) family(name, qualifier string) (layout.Family, error) {
	f, ok := t.layout.Family(name)
	if !ok {
		return layout.Family{}, litetable.NewError(litetable.ErrInvalidRequest,
			"table %s has no family %s", t.Name(), name)
	}
	if qualifier != "" && !f.IsMap() {
		if _, ok := f.Column(qualifier); !ok {
			return layout.Family{}, litetable.NewError(litetable.ErrInvalidRequest,
				"family %s of table %s has no column %s", name, t.Name(), qualifier)
		}
	}
	return f, nil
}

// Put writes one cell of a logical column.
func (t *Table) Put(ctx context.Context, rowKey, family, qualifier string, ts int64,
	value []byte) error {
	if rowKey == "" || qualifier == "" {
		return litetable.NewError(litetable.ErrInvalidRequest, "row key and qualifier are required")
	}
	f, err := t.family(family, qualifier)
	if err != nil {
		return err
	}
	return t.store.Put(ctx, t.physical, rowKey, f.PhysicalName(), qualifier, ts, value)
}

// Get fetches one row. Paged columns are not fetched: their cells are read through pagers.
func (t *Table) Get(ctx context.Context, rowKey string, req *request.DataRequest) (*RowData,
	error) {
	return t.get(ctx, rowKey, req, nil)
}

func (t *Table) get(ctx context.Context, rowKey string, req *request.DataRequest,
	guard func() error) (*RowData, error) {
	if rowKey == "" {
		return nil, litetable.NewError(litetable.ErrInvalidRequest, "row key is required")
	}

	row := &RowData{
		table:  t,
		rowKey: rowKey,
		req:    req,
		cells:  make(map[string][]litetable.Cell),
		guard:  guard,
	}

	for _, c := range req.Columns() {
		f, err := t.family(c.Family, c.Qualifier)
		if err != nil {
			return nil, err
		}
		if c.PagingEnabled() {
			continue
		}

		q := litetable.NewQuery(t.physical, rowKey, f.PhysicalName())
		q.Qualifier = c.Qualifier
		q.MaxVersions = c.MaxVersions
		q.Filter = c.Filter

		cells, err := t.store.Query(ctx, q)
		if err != nil {
			return nil, err
		}
		row.cells[c.Family] = mergeCells(row.cells[c.Family], cells)
	}

	log.Debug().Str("table", t.Name()).Str("row", rowKey).Msg("row fetched")
	return row, nil
}

// mergeCells merges cells of the same family keeping qualifier order.
func mergeCells(a, b []litetable.Cell) []litetable.Cell {
	out := make([]litetable.Cell, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].Qualifier <= b[j].Qualifier {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// newPager builds the pager of a paged column of a row.
func (t *Table) newPager(rowKey string, c request.Column, f layout.Family, qualifier string,
	guard func() error) (pager.Pager, error) {
	cfg := &pager.Config{
		Store:         t.store,
		Table:         t.physical,
		RowKey:        rowKey,
		Family:        f.PhysicalName(),
		LogicalFamily: f.Name,
		Qualifier:     qualifier,
		MaxVersions:   c.MaxVersions,
		PageSize:      c.PageSize,
		Filter:        c.Filter,
		Guard:         guard,
	}

	if qualifier == "" {
		return pager.NewQualifierPager(cfg)
	}
	return pager.NewVersionPager(cfg)
}
