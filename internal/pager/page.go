package pager

import (
	"github.com/litetable/litetable-schema/internal/litetable"
)

// Page is one page of cells ordered by qualifier ascending, then timestamp descending.
// Qualifier is set on pages of a version pager.
type Page struct {
	Family    string
	Qualifier string
	Cells     []litetable.Cell
}

// Len is the number of cells in the page.
func (p *Page) Len() int {
	return len(p.Cells)
}

// Qualifiers lists the distinct qualifiers of the page in order.
func (p *Page) Qualifiers() []string {
	var out []string
	for i, c := range p.Cells {
		if i == 0 || c.Qualifier != p.Cells[i-1].Qualifier {
			out = append(out, c.Qualifier)
		}
	}
	return out
}

// Versions returns the cells of one qualifier, newest first.
func (p *Page) Versions(qualifier string) []litetable.Cell {
	var out []litetable.Cell
	for _, c := range p.Cells {
		if c.Qualifier == qualifier {
			out = append(out, c)
		}
	}
	return out
}

// Timestamps lists the timestamps of the page in order.
func (p *Page) Timestamps() []int64 {
	out := make([]int64, 0, len(p.Cells))
	for _, c := range p.Cells {
		out = append(out, c.Timestamp)
	}
	return out
}
