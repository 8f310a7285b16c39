package reader

import (
	"github.com/litetable/litetable-schema/internal/litetable"
	"github.com/litetable/litetable-schema/internal/pager"
	"github.com/litetable/litetable-schema/internal/request"
)

// RowData is the result of fetching one row.
type RowData struct {
	table  *Table
	rowKey string
	req    *request.DataRequest
	cells  map[string][]litetable.Cell
	guard  func() error
}

func (r *RowData) RowKey() string {
	return r.rowKey
}

// Values returns the fetched versions of one column, newest first.
func (r *RowData) Values(family, qualifier string) ([]litetable.Cell, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	if _, ok := r.req.Column(family, qualifier); !ok {
		return nil, litetable.NewError(litetable.ErrInvalidRequest, "column %s:%s was not requested",
			family, qualifier)
	}

	var out []litetable.Cell
	for _, c := range r.cells[family] {
		if c.Qualifier == qualifier {
			out = append(out, c)
		}
	}
	return out, nil
}

// FamilyValues returns every fetched cell of a family ordered by qualifier, then newest first.
func (r *RowData) FamilyValues(family string) ([]litetable.Cell, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	if !r.requested(family) {
		return nil, litetable.NewError(litetable.ErrInvalidRequest, "family %s was not requested",
			family)
	}
	return append([]litetable.Cell(nil), r.cells[family]...), nil
}

// requested reports whether the request asked for the family or any of its columns.
func (r *RowData) requested(family string) bool {
	for _, c := range r.req.Columns() {
		if c.Family == family {
			return true
		}
	}
	return false
}

// Qualifiers lists the fetched qualifiers of a family.
func (r *RowData) Qualifiers(family string) []string {
	var out []string
	cells := r.cells[family]
	for i, c := range cells {
		if i == 0 || c.Qualifier != cells[i-1].Qualifier {
			out = append(out, c.Qualifier)
		}
	}
	return out
}

// Pager pages through the versions of one column. The column must have been requested with
// paging enabled, on its own or as part of its family.
func (r *RowData) Pager(family, qualifier string) (pager.Pager, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	if qualifier == "" {
		return nil, litetable.NewError(litetable.ErrInvalidRequest,
			"pager of family %s needs a qualifier", family)
	}

	c, ok := r.req.Column(family, qualifier)
	if !ok || !c.PagingEnabled() {
		return nil, litetable.NewError(litetable.ErrPagingNotEnabled, "%s:%s", family, qualifier)
	}
	f, err := r.table.family(family, qualifier)
	if err != nil {
		return nil, err
	}
	return r.table.newPager(r.rowKey, c, f, qualifier, r.guard)
}

// FamilyPager pages through the qualifiers of a map-type family requested with paging enabled.
func (r *RowData) FamilyPager(family string) (pager.Pager, error) {
	if err := r.check(); err != nil {
		return nil, err
	}

	c, ok := r.req.Column(family, "")
	if !ok || !c.IsFamily() || !c.PagingEnabled() {
		return nil, litetable.NewError(litetable.ErrPagingNotEnabled, "%s", family)
	}
	f, err := r.table.family(family, "")
	if err != nil {
		return nil, err
	}
	if !f.IsMap() {
		return nil, litetable.NewError(litetable.ErrInvalidRequest,
			"family %s is a group-type family, page its columns instead", family)
	}
	return r.table.newPager(r.rowKey, c, f, "", r.guard)
}

func (r *RowData) check() error {
	if r.guard == nil {
		return nil
	}
	return r.guard()
}
