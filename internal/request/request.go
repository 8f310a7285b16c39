// Package request describes which columns of a row a reader fetches, how many versions of each
// and whether they are paged.
package request

import (
	"errors"
	"fmt"
	"sort"

	"github.com/litetable/litetable-schema/internal/filter"
	"github.com/litetable/litetable-schema/internal/litetable"
)

// Column is the request for one logical column, or for a whole family when Qualifier is empty.
type Column struct {
	Family      string
	Qualifier   string
	MaxVersions int
	// PageSize is the page size of the column. Zero disables paging.
	PageSize int
	Filter   filter.Filter
}

// IsFamily reports whether the request covers the whole family.
func (c Column) IsFamily() bool {
	return c.Qualifier == ""
}

func (c Column) PagingEnabled() bool {
	return c.PageSize > 0
}

func (c Column) String() string {
	if c.IsFamily() {
		return c.Family
	}
	return c.Family + ":" + c.Qualifier
}

// DataRequest is an immutable, validated set of column requests.
type DataRequest struct {
	columns []Column
}

// Columns returns the column requests ordered by family then qualifier.
func (r *DataRequest) Columns() []Column {
	return append([]Column(nil), r.columns...)
}

// Column returns the request that covers family:qualifier. A qualifier that has no request of
// its own is covered by a request for its family.
func (r *DataRequest) Column(family, qualifier string) (Column, bool) {
	var familyReq *Column
	for i := range r.columns {
		c := r.columns[i]
		if c.Family != family {
			continue
		}
		if c.Qualifier == qualifier {
			return c, true
		}
		if c.IsFamily() {
			familyReq = &r.columns[i]
		}
	}
	if familyReq != nil {
		return *familyReq, true
	}
	return Column{}, false
}

// PagingEnabled reports whether any column of the request is paged.
func (r *DataRequest) PagingEnabled() bool {
	for _, c := range r.columns {
		if c.PagingEnabled() {
			return true
		}
	}
	return false
}

func (r *DataRequest) IsEmpty() bool {
	return len(r.columns) == 0
}

// Builder assembles a DataRequest from groups of columns sharing the same options.
type Builder struct {
	groups []*ColumnsDef
	built  bool
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Columns starts a new group of columns. Options set on the group apply to every column it
// adds.
func (b *Builder) Columns() *ColumnsDef {
	def := &ColumnsDef{maxVersions: 1}
	b.groups = append(b.groups, def)
	return def
}

type columnName struct {
	family    string
	qualifier string
}

// ColumnsDef is one group of columns of a Builder.
type ColumnsDef struct {
	maxVersions int
	pageSize    int
	filter      filter.Filter
	names       []columnName
}

// WithMaxVersions sets the number of most recent versions requested. The default is one.
func (d *ColumnsDef) WithMaxVersions(n int) *ColumnsDef {
	d.maxVersions = n
	return d
}

// WithPageSize enables paging with the given page size.
func (d *ColumnsDef) WithPageSize(n int) *ColumnsDef {
	d.pageSize = n
	return d
}

func (d *ColumnsDef) WithFilter(f filter.Filter) *ColumnsDef {
	d.filter = f
	return d
}

// Add requests a single column.
func (d *ColumnsDef) Add(family, qualifier string) *ColumnsDef {
	d.names = append(d.names, columnName{family: family, qualifier: qualifier})
	return d
}

// AddFamily requests every column of a family.
func (d *ColumnsDef) AddFamily(family string) *ColumnsDef {
	d.names = append(d.names, columnName{family: family})
	return d
}

// Build validates the collected columns. A builder can only be built once.
func (b *Builder) Build() (*DataRequest, error) {
	if b.built {
		return nil, litetable.NewError(litetable.ErrInvalidRequest, "builder was already built")
	}
	b.built = true

	var (
		errGrp   []error
		columns  []Column
		seen     = make(map[columnName]struct{})
		families = make(map[string]struct{})
		partial  = make(map[string]struct{})
	)

	for _, def := range b.groups {
		if def.maxVersions < 1 {
			errGrp = append(errGrp, fmt.Errorf("max versions must be at least 1, got %d",
				def.maxVersions))
		}
		if def.pageSize < 0 {
			errGrp = append(errGrp, fmt.Errorf("page size must not be negative, got %d",
				def.pageSize))
		}

		for _, name := range def.names {
			if name.family == "" {
				errGrp = append(errGrp, fmt.Errorf("column request without a family"))
				continue
			}
			if _, ok := seen[name]; ok {
				errGrp = append(errGrp, fmt.Errorf("duplicate request for column %s",
					Column{Family: name.family, Qualifier: name.qualifier}))
				continue
			}
			seen[name] = struct{}{}

			if name.qualifier == "" {
				families[name.family] = struct{}{}
			} else {
				partial[name.family] = struct{}{}
			}

			columns = append(columns, Column{
				Family:      name.family,
				Qualifier:   name.qualifier,
				MaxVersions: def.maxVersions,
				PageSize:    def.pageSize,
				Filter:      def.filter,
			})
		}
	}

	for family := range families {
		if _, ok := partial[family]; ok {
			errGrp = append(errGrp, fmt.Errorf(
				"family %s is requested both as a whole and by column", family))
		}
	}

	if err := errors.Join(errGrp...); err != nil {
		return nil, litetable.NewError(litetable.ErrInvalidRequest, "%s", err)
	}

	sort.SliceStable(columns, func(i, j int) bool {
		if columns[i].Family != columns[j].Family {
			return columns[i].Family < columns[j].Family
		}
		return columns[i].Qualifier < columns[j].Qualifier
	})

	return &DataRequest{columns: columns}, nil
}
