// Package pager implements bounded-memory cursors over the versioned cells of one row.
//
// A version pager walks the versions of a single qualifier, newest first, one page of
// timestamps at a time. A qualifier pager walks the qualifiers of a map-type family in
// ascending order, one page of qualifiers at a time, each qualifier carrying all of its
// requested versions. Both re-issue a bounded range query to the store for every page and never
// hold more than one page.
package pager

import (
	"context"
	"errors"

	"github.com/litetable/litetable-schema/internal/litetable"
	"github.com/rs/zerolog/log"
)

//go:generate mockgen -destination=pager_mock.go -package=pager -source=pager.go

type querier interface {
	Query(ctx context.Context, q *litetable.Query) ([]litetable.Cell, error)
}

// State of a pager.
type State int

const (
	// Unstarted means no page is buffered and more pages may be available.
	Unstarted State = iota
	Fetching
	HasPage
	Exhausted
	Closed
)

func (s State) String() string {
	switch s {
	case Unstarted:
		return "UNSTARTED"
	case Fetching:
		return "FETCHING"
	case HasPage:
		return "HAS_PAGE"
	case Exhausted:
		return "EXHAUSTED"
	case Closed:
		return "CLOSED"
	}
	return "UNKNOWN"
}

// Pager is a resumable cursor over pages of cells. A Pager is not safe for concurrent use.
type Pager interface {
	// HasNext reports whether Next will return a page. It may fetch the page from the store.
	HasNext(ctx context.Context) (bool, error)
	// Next returns the next page or ErrNoSuchPage.
	Next(ctx context.Context) (*Page, error)
	Close() error
	State() State
}

// Config of a pager. Family is the physical family name and LogicalFamily the name pages are
// reported under.
type Config struct {
	Store         querier
	Table         string
	RowKey        string
	Family        string
	LogicalFamily string
	Qualifier     string
	MaxVersions   int
	PageSize      int
	Filter        litetable.ColumnFilter
	// Guard is consulted before every operation. A non-nil error invalidates the pager.
	Guard func() error
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Store == nil {
		errGrp = append(errGrp, errors.New("store cannot be nil"))
	}
	if c.Table == "" {
		errGrp = append(errGrp, errors.New("table cannot be empty"))
	}
	if c.Family == "" {
		errGrp = append(errGrp, errors.New("family cannot be empty"))
	}
	if c.PageSize < 1 {
		errGrp = append(errGrp, errors.New("page size must be at least 1"))
	}
	if c.MaxVersions < 1 {
		errGrp = append(errGrp, errors.New("max versions must be at least 1"))
	}
	return errors.Join(errGrp...)
}

// fetcher issues the query for the next page. done reports that no page follows this one.
type fetcher interface {
	fetch(ctx context.Context) (cells []litetable.Cell, done bool, err error)
}

type pager struct {
	fetcher
	state     State
	buffered  *Page
	lastPage  bool
	guard     func() error
	family    string
	qualifier string
	row       string
}

func newPager(cfg *Config, f fetcher) *pager {
	logical := cfg.LogicalFamily
	if logical == "" {
		logical = cfg.Family
	}
	return &pager{
		fetcher:   f,
		state:     Unstarted,
		guard:     cfg.Guard,
		family:    logical,
		qualifier: cfg.Qualifier,
		row:       cfg.RowKey,
	}
}

func (p *pager) State() State {
	return p.state
}

func (p *pager) HasNext(ctx context.Context) (bool, error) {
	if p.state == Closed {
		return false, nil
	}
	if p.guard != nil {
		if err := p.guard(); err != nil {
			return false, err
		}
	}

	switch p.state {
	case HasPage:
		return true, nil
	case Exhausted:
		return false, nil
	}

	p.state = Fetching
	cells, done, err := p.fetch(ctx)
	if err != nil {
		p.state = Unstarted
		return false, err
	}
	if len(cells) == 0 {
		p.state = Exhausted
		return false, nil
	}

	p.buffered = &Page{Family: p.family, Qualifier: p.qualifier, Cells: cells}
	p.lastPage = done
	p.state = HasPage
	return true, nil
}

func (p *pager) Next(ctx context.Context) (*Page, error) {
	ok, err := p.HasNext(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, litetable.NewError(litetable.ErrNoSuchPage, "%s of row %s", p.column(),
			p.row)
	}

	page := p.buffered
	p.buffered = nil
	if p.lastPage {
		p.state = Exhausted
	} else {
		p.state = Unstarted
	}
	return page, nil
}

func (p *pager) Close() error {
	if p.state == Closed {
		return nil
	}
	p.state = Closed
	p.buffered = nil
	log.Debug().Str("row", p.row).Str("column", p.column()).Msg("pager closed")
	return nil
}

func (p *pager) column() string {
	if p.qualifier == "" {
		return p.family
	}
	return p.family + ":" + p.qualifier
}

type versionFetcher struct {
	store       querier
	cfg         Config
	returned    int
	lastVersion int64
}

// NewVersionPager pages through the versions of one qualifier, newest first. Each page holds at
// most PageSize versions and MaxVersions bounds the total.
func NewVersionPager(cfg *Config) (Pager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Qualifier == "" {
		return nil, litetable.NewError(litetable.ErrInvalidRequest,
			"version pager of %s needs a qualifier", cfg.Family)
	}

	f := &versionFetcher{
		store:       cfg.Store,
		cfg:         *cfg,
		lastVersion: litetable.LatestTimestamp,
	}
	return newPager(cfg, f), nil
}

func (f *versionFetcher) fetch(ctx context.Context) ([]litetable.Cell, bool, error) {
	remaining := f.cfg.MaxVersions - f.returned
	if remaining <= 0 {
		return nil, true, nil
	}
	limit := min(f.cfg.PageSize, remaining)

	q := litetable.NewQuery(f.cfg.Table, f.cfg.RowKey, f.cfg.Family)
	q.Qualifier = f.cfg.Qualifier
	q.Before = f.lastVersion
	q.MaxVersions = limit
	q.MaxResults = limit
	q.Filter = f.cfg.Filter

	cells, err := f.store.Query(ctx, q)
	if err != nil {
		return nil, false, err
	}
	if len(cells) > 0 {
		f.returned += len(cells)
		f.lastVersion = cells[len(cells)-1].Timestamp
	}
	return cells, len(cells) < limit || f.returned >= f.cfg.MaxVersions, nil
}

type qualifierFetcher struct {
	store         querier
	cfg           Config
	lastQualifier string
}

// NewQualifierPager pages through the qualifiers of a map-type family in ascending order. Each
// page holds at most PageSize qualifiers with up to MaxVersions versions each.
func NewQualifierPager(cfg *Config) (Pager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Qualifier != "" {
		return nil, litetable.NewError(litetable.ErrInvalidRequest,
			"qualifier pager of %s cannot be bound to qualifier %s", cfg.Family, cfg.Qualifier)
	}

	f := &qualifierFetcher{
		store: cfg.Store,
		cfg:   *cfg,
	}
	return newPager(cfg, f), nil
}

func (f *qualifierFetcher) fetch(ctx context.Context) ([]litetable.Cell, bool, error) {
	q := litetable.NewQuery(f.cfg.Table, f.cfg.RowKey, f.cfg.Family)
	q.StartAfterQualifier = f.lastQualifier
	q.MaxQualifiers = f.cfg.PageSize
	q.MaxVersions = f.cfg.MaxVersions
	q.Filter = f.cfg.Filter

	cells, err := f.store.Query(ctx, q)
	if err != nil {
		return nil, false, err
	}

	qualifiers := 0
	for i, c := range cells {
		if i == 0 || c.Qualifier != cells[i-1].Qualifier {
			qualifiers++
		}
	}
	if len(cells) > 0 {
		f.lastQualifier = cells[len(cells)-1].Qualifier
	}
	return cells, qualifiers < f.cfg.PageSize, nil
}
