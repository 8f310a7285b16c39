package request

import (
	"testing"

	"github.com/litetable/litetable-schema/internal/filter"
	"github.com/litetable/litetable-schema/internal/litetable"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build(t *testing.T) {
	req := require.New(t)

	b := NewBuilder()
	b.Columns().WithMaxVersions(5).WithPageSize(2).Add("info", "name")
	b.Columns().Add("info", "email")
	b.Columns().WithPageSize(3).AddFamily("jobs")

	dr, err := b.Build()
	req.NoError(err)

	req.Equal([]Column{
		{Family: "info", Qualifier: "email", MaxVersions: 1},
		{Family: "info", Qualifier: "name", MaxVersions: 5, PageSize: 2},
		{Family: "jobs", MaxVersions: 1, PageSize: 3},
	}, dr.Columns())
	req.True(dr.PagingEnabled())
	req.False(dr.IsEmpty())

	c, ok := dr.Column("info", "name")
	req.True(ok)
	req.True(c.PagingEnabled())

	c, ok = dr.Column("jobs", "engineer")
	req.True(ok, "family requests cover their qualifiers")
	req.True(c.IsFamily())

	_, ok = dr.Column("info", "phone")
	req.False(ok)

	_, err = b.Build()
	req.ErrorIs(err, litetable.ErrInvalidRequest, "builders are single use")
}

func TestBuilder_Build_invalid(t *testing.T) {
	tests := map[string]func(b *Builder){
		"duplicate column": func(b *Builder) {
			b.Columns().Add("info", "name")
			b.Columns().WithMaxVersions(3).Add("info", "name")
		},
		"column and family request": func(b *Builder) {
			b.Columns().AddFamily("info")
			b.Columns().Add("info", "name")
		},
		"zero max versions": func(b *Builder) {
			b.Columns().WithMaxVersions(0).Add("info", "name")
		},
		"negative page size": func(b *Builder) {
			b.Columns().WithPageSize(-1).Add("info", "name")
		},
		"missing family": func(b *Builder) {
			b.Columns().Add("", "name")
		},
	}

	for name, build := range tests {
		t.Run(name, func(t *testing.T) {
			b := NewBuilder()
			build(b)
			_, err := b.Build()
			require.ErrorIs(t, err, litetable.ErrInvalidRequest)
		})
	}
}

func TestDataRequest_filter(t *testing.T) {
	f := filter.QualifierRange("b", "d")

	b := NewBuilder()
	b.Columns().WithFilter(f).AddFamily("jobs")
	dr, err := b.Build()
	require.NoError(t, err)

	c, ok := dr.Column("jobs", "")
	require.True(t, ok)
	require.Equal(t, f, c.Filter)
	require.False(t, dr.PagingEnabled())
}
