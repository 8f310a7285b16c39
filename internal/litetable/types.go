package litetable

import (
	"math"
)

// LatestTimestamp is the exclusive upper bound used when a query has no timestamp bound. Cells
// are never written at this timestamp.
const LatestTimestamp int64 = math.MaxInt64

// Cell is a single versioned value of a qualifier.
type Cell struct {
	Qualifier string `json:"qualifier"`
	Timestamp int64  `json:"timestamp"`
	Value     []byte `json:"value"`
}

// ColumnFilter is a user supplied predicate evaluated by the store before any limit is applied.
type ColumnFilter interface {
	Accept(qualifier string, timestamp int64, value []byte) bool
}

// Query is a bounded range query against the cells of one family of a single row.
//
// Results are ordered by qualifier ascending, then by timestamp descending. Limits are applied
// in this order, after Filter:
//
//   - MaxVersions per qualifier
//   - MaxQualifiers distinct qualifiers
//   - MaxResults cells
//
// A zero limit means unlimited.
type Query struct {
	Table  string
	RowKey string
	// Family is the physical family name.
	Family string
	// Qualifier restricts the query to a single qualifier when set.
	Qualifier string
	// StartAfterQualifier only returns qualifiers strictly greater than it.
	StartAfterQualifier string
	// Before is an exclusive upper bound on timestamps.
	Before        int64
	MaxVersions   int
	MaxQualifiers int
	MaxResults    int
	Filter        ColumnFilter
}

// NewQuery returns a query with no timestamp bound.
func NewQuery(table, rowKey, family string) *Query {
	return &Query{
		Table:  table,
		RowKey: rowKey,
		Family: family,
		Before: LatestTimestamp,
	}
}

// Accepts reports whether a cell passes the query's qualifier, timestamp and filter bounds.
// Limits are not considered.
func (q *Query) Accepts(c Cell) bool {
	if q.Qualifier != "" && c.Qualifier != q.Qualifier {
		return false
	}
	if q.StartAfterQualifier != "" && c.Qualifier <= q.StartAfterQualifier {
		return false
	}
	if c.Timestamp >= q.Before {
		return false
	}
	if q.Filter != nil && !q.Filter.Accept(c.Qualifier, c.Timestamp, c.Value) {
		return false
	}
	return true
}

// Limit applies the query limits to cells that are already ordered and accepted.
func (q *Query) Limit(cells []Cell) []Cell {
	out := make([]Cell, 0, len(cells))
	var (
		current   string
		versions  int
		qualifier int
	)
	for i, c := range cells {
		if i == 0 || c.Qualifier != current {
			if q.MaxQualifiers > 0 && qualifier == q.MaxQualifiers {
				break
			}
			current = c.Qualifier
			versions = 0
			qualifier++
		}
		if q.MaxVersions > 0 && versions == q.MaxVersions {
			continue
		}
		versions++
		out = append(out, c)
		if q.MaxResults > 0 && len(out) == q.MaxResults {
			break
		}
	}
	return out
}
