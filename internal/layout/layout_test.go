package layout

import (
	"encoding/json"
	"testing"

	"github.com/litetable/litetable-schema/internal/litetable"
	"github.com/stretchr/testify/require"
)

func userDescriptor() *Descriptor {
	return &Descriptor{
		Name:        "user",
		KeyEncoding: EncodingHashed,
		Families: []FamilyDescriptor{
			{
				Name:        "info",
				Kind:        KindGroup,
				MaxVersions: 5,
				Columns: []ColumnDescriptor{
					{Name: "name", ValueType: "string"},
					{Name: "email", ValueType: "string"},
				},
			},
			{
				Name:        "jobs",
				Kind:        KindMap,
				MaxVersions: 5,
				ValueType:   "string",
			},
		},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	l, err := New(userDescriptor())
	req.NoError(err)
	req.Equal("user", l.Name())
	req.Equal(uint64(1), l.ID())
	req.Equal(uint64(0), l.ReferenceID())
	req.Equal(ColumnID(3), l.NextColumnID())

	families := l.Families()
	req.Len(families, 2)
	req.Equal(ColumnID(1), families[0].ID)
	req.Equal("B", families[0].PhysicalName())
	req.Equal(ColumnID(2), families[1].ID)
	req.True(families[1].IsMap())
	req.Equal([]string{"string"}, l.ValueTypes())
}

func TestNew_defaults(t *testing.T) {
	t.Parallel()

	l, err := New(&Descriptor{
		Name:     "t",
		Families: []FamilyDescriptor{{Name: "f"}},
	})
	require.NoError(t, err)
	require.Equal(t, EncodingHashed, l.KeyEncoding())

	f, ok := l.Family("f")
	require.True(t, ok)
	require.Equal(t, KindGroup, f.Kind)
	require.Equal(t, 1, f.MaxVersions)
	require.Equal(t, CompressionNone, f.Compression)
	require.Equal(t, BloomNone, f.BloomType)
}

func TestLayout_immutable(t *testing.T) {
	t.Parallel()

	l, err := New(userDescriptor())
	require.NoError(t, err)

	families := l.Families()
	families[0].Name = "changed"
	families[0].Columns[0].Name = "changed"

	f, ok := l.Family("info")
	require.True(t, ok)
	require.Equal(t, "name", f.Columns[0].Name)
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	current, err := New(userDescriptor())
	require.NoError(t, err)

	t.Run("reuses ids and appends new families", func(t *testing.T) {
		desc := userDescriptor()
		desc.Families = append(desc.Families, FamilyDescriptor{Name: "prefs", Kind: KindMap,
			ValueType: "int"})

		next, err := Update(desc, current)
		require.NoError(t, err)
		require.Equal(t, uint64(2), next.ID())
		require.Equal(t, uint64(1), next.ReferenceID())

		prefs, ok := next.Family("prefs")
		require.True(t, ok)
		require.Equal(t, ColumnID(3), prefs.ID)
		info, _ := next.Family("info")
		require.Equal(t, ColumnID(1), info.ID)
	})

	t.Run("rename keeps the column id", func(t *testing.T) {
		desc := userDescriptor()
		desc.Families[1].Name = "work"
		desc.Families[1].RenamedFrom = "jobs"

		next, err := Update(desc, current)
		require.NoError(t, err)
		work, ok := next.Family("work")
		require.True(t, ok)
		require.Equal(t, ColumnID(2), work.ID)
		require.Equal(t, ColumnID(3), next.NextColumnID())
	})

	t.Run("ids of removed families are never reused", func(t *testing.T) {
		desc := userDescriptor()
		desc.Families = desc.Families[:1]
		dropped, err := Update(desc, current)
		require.NoError(t, err)

		desc = userDescriptor()
		readded, err := Update(desc, dropped)
		require.NoError(t, err)
		jobs, _ := readded.Family("jobs")
		require.Equal(t, ColumnID(3), jobs.ID)
	})

	t.Run("omitted key encoding keeps the current format", func(t *testing.T) {
		tests := map[string]struct {
			encoding   RowKeyEncoding
			components []string
		}{
			"raw":       {encoding: EncodingRaw},
			"hashed":    {encoding: EncodingHashed},
			"formatted": {encoding: EncodingFormatted, components: []string{"org", "id"}},
		}

		for name, tc := range tests {
			t.Run(name, func(t *testing.T) {
				desc := userDescriptor()
				desc.KeyEncoding = tc.encoding
				desc.KeyComponents = tc.components
				first, err := New(desc)
				require.NoError(t, err)

				desc = userDescriptor()
				desc.KeyEncoding = ""
				next, err := Update(desc, first)
				require.NoError(t, err)
				require.Equal(t, tc.encoding, next.KeyEncoding())
				require.Equal(t, first.KeyComponents(), next.KeyComponents())
			})
		}
	})

	t.Run("matching reference layout", func(t *testing.T) {
		desc := userDescriptor()
		desc.ReferenceLayout = 1
		_, err := Update(desc, current)
		require.NoError(t, err)
	})
}

func TestUpdate_invalid(t *testing.T) {
	t.Parallel()

	current, err := New(userDescriptor())
	require.NoError(t, err)

	formattedDesc := userDescriptor()
	formattedDesc.KeyEncoding = EncodingFormatted
	formattedDesc.KeyComponents = []string{"org", "id"}
	formatted, err := New(formattedDesc)
	require.NoError(t, err)

	tests := map[string]struct {
		mutate  func(d *Descriptor)
		current *Layout
	}{
		"empty table name": {
			mutate: func(d *Descriptor) { d.Name = "" },
		},
		"unknown key encoding": {
			mutate: func(d *Descriptor) { d.KeyEncoding = "base32" },
		},
		"formatted without components": {
			mutate: func(d *Descriptor) { d.KeyEncoding = EncodingFormatted },
		},
		"components without formatted": {
			mutate: func(d *Descriptor) { d.KeyComponents = []string{"a"} },
		},
		"duplicate family": {
			mutate: func(d *Descriptor) { d.Families = append(d.Families, d.Families[0]) },
		},
		"duplicate column": {
			mutate: func(d *Descriptor) {
				d.Families[0].Columns = append(d.Families[0].Columns, d.Families[0].Columns[0])
			},
		},
		"negative max versions": {
			mutate: func(d *Descriptor) { d.Families[0].MaxVersions = -1 },
		},
		"unknown compression": {
			mutate: func(d *Descriptor) { d.Families[0].Compression = "zstd" },
		},
		"map family with columns": {
			mutate: func(d *Descriptor) {
				d.Families[1].Columns = []ColumnDescriptor{{Name: "x", ValueType: "string"}}
			},
		},
		"group family with value type": {
			mutate: func(d *Descriptor) { d.Families[0].ValueType = "string" },
		},
		"unknown kind": {
			mutate: func(d *Descriptor) { d.Families[0].Kind = "list" },
		},
		"rename on create": {
			mutate: func(d *Descriptor) { d.Families[1].RenamedFrom = "old" },
		},
		"rename source missing": {
			mutate:  func(d *Descriptor) { d.Families[1].Name, d.Families[1].RenamedFrom = "work", "old" },
			current: current,
		},
		"rename source still defined": {
			mutate: func(d *Descriptor) {
				d.Families = append(d.Families, FamilyDescriptor{Name: "work", Kind: KindMap,
					RenamedFrom: "jobs"})
			},
			current: current,
		},
		"two renames from one source": {
			mutate: func(d *Descriptor) {
				d.Families[1] = FamilyDescriptor{Name: "work", Kind: KindMap, RenamedFrom: "jobs"}
				d.Families = append(d.Families, FamilyDescriptor{Name: "career", Kind: KindMap,
					RenamedFrom: "jobs"})
			},
			current: current,
		},
		"kind change": {
			mutate:  func(d *Descriptor) { d.Families[1].Kind = KindGroup; d.Families[1].ValueType = "" },
			current: current,
		},
		"name mismatch": {
			mutate:  func(d *Descriptor) { d.Name = "other" },
			current: current,
		},
		"key encoding change": {
			mutate:  func(d *Descriptor) { d.KeyEncoding = EncodingRaw },
			current: current,
		},
		"key components change": {
			mutate: func(d *Descriptor) {
				d.KeyEncoding = EncodingFormatted
				d.KeyComponents = []string{"org", "user", "id"}
			},
			current: formatted,
		},
		"components on an update of a hashed table": {
			mutate:  func(d *Descriptor) { d.KeyEncoding = ""; d.KeyComponents = []string{"id"} },
			current: current,
		},
		"stale reference layout": {
			mutate:  func(d *Descriptor) { d.ReferenceLayout = 7 },
			current: current,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			desc := userDescriptor()
			tc.mutate(desc)

			got, err := Update(desc, tc.current)
			require.Nil(t, got)
			require.ErrorIs(t, err, litetable.ErrInvalidLayout)
		})
	}

	t.Run("nil descriptor", func(t *testing.T) {
		_, err := New(nil)
		require.ErrorIs(t, err, litetable.ErrInvalidLayout)
	})
}

func TestLayout_JSON(t *testing.T) {
	t.Parallel()

	l, err := New(userDescriptor())
	require.NoError(t, err)

	b, err := json.Marshal(l)
	require.NoError(t, err)

	var decoded Layout
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, l.Families(), decoded.Families())
	require.Equal(t, l.ID(), decoded.ID())
	require.Equal(t, l.NextColumnID(), decoded.NextColumnID())

	require.ErrorIs(t, json.Unmarshal([]byte(`{"families":[]}`), &decoded),
		litetable.ErrInvalidLayout)
}

func TestColumnID(t *testing.T) {
	tests := map[string]struct {
		id   ColumnID
		want string
	}{
		"zero":      {id: 0, want: "A"},
		"one":       {id: 1, want: "B"},
		"last":      {id: 63, want: "/"},
		"two digit": {id: 64, want: "AB"},
		"mixed":     {id: 65, want: "BB"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.id.String())
			parsed, err := ParseColumnID(tc.want)
			require.NoError(t, err)
			require.Equal(t, tc.id, parsed)
		})
	}

	_, err := ParseColumnID("!")
	require.Error(t, err)
	_, err = ParseColumnID("")
	require.Error(t, err)
}
