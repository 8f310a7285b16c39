package migrate

import (
	"context"
	"errors"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/litetable/litetable-schema/internal/cdc"
	"github.com/litetable/litetable-schema/internal/journal"
	"github.com/litetable/litetable-schema/internal/layout"
	"github.com/litetable/litetable-schema/internal/litetable"
	"github.com/litetable/litetable-schema/internal/physical"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const userTable = "lt.default.table.user"

type mocks struct {
	admin    *Mockadmin
	meta     *MockmetaStore
	locker   *Mocklocker
	registry *MockschemaRegistry
	journal  *Mockjournaler
	emitter  *Mockemitter
}

func newEngine(t *testing.T) (*Engine, *mocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &mocks{
		admin:    NewMockadmin(ctrl),
		meta:     NewMockmetaStore(ctrl),
		locker:   NewMocklocker(ctrl),
		registry: NewMockschemaRegistry(ctrl),
		journal:  NewMockjournaler(ctrl),
		emitter:  NewMockemitter(ctrl),
	}
	e, err := New(&Config{
		Instance:       "default",
		Admin:          m.admin,
		MetaStore:      m.meta,
		Locker:         m.locker,
		SchemaRegistry: m.registry,
		Journal:        m.journal,
		Emitter:        m.emitter,
	})
	require.NoError(t, err)
	return e, m
}

func userDescriptor() *layout.Descriptor {
	return &layout.Descriptor{
		Name: "user",
		Families: []layout.FamilyDescriptor{
			{
				Name:        "info",
				MaxVersions: 5,
				Columns: []layout.ColumnDescriptor{
					{Name: "name", ValueType: "string"},
					{Name: "email", ValueType: "string"},
				},
			},
		},
	}
}

func withPrefs(desc *layout.Descriptor) *layout.Descriptor {
	desc.Families = append(desc.Families, layout.FamilyDescriptor{
		Name:      "prefs",
		Kind:      layout.KindMap,
		ValueType: "int",
	})
	return desc
}

func mustLayout(t *testing.T, desc *layout.Descriptor, current *layout.Layout) *layout.Layout {
	t.Helper()
	l, err := layout.Update(desc, current)
	require.NoError(t, err)
	return l
}

func TestNew(t *testing.T) {
	_, err := New(&Config{})
	require.Error(t, err)

	ctrl := gomock.NewController(t)
	_, err = New(&Config{
		Instance:  "default",
		Admin:     NewMockadmin(ctrl),
		MetaStore: NewMockmetaStore(ctrl),
	})
	require.Error(t, err, "a locker is required")
}

func TestSplitKeys(t *testing.T) {
	tests := map[string]struct {
		regions int
		want    [][]byte
	}{
		"single region": {regions: 1},
		"two regions":   {regions: 2, want: [][]byte{{0x80, 0x00}}},
		"four regions": {regions: 4, want: [][]byte{
			{0x40, 0x00}, {0x80, 0x00}, {0xc0, 0x00},
		}},
		"three regions": {regions: 3, want: [][]byte{{0x55, 0x55}, {0xaa, 0xaa}}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, splitKeys(tc.regions))
		})
	}
}

func TestEngine_CreateTable(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	e, m := newEngine(t)

	unlocked := false
	gomock.InOrder(
		m.locker.EXPECT().Lock(gomock.Any(), "table/user").Return(func() { unlocked = true }, nil),
		m.meta.EXPECT().LayoutHistory(gomock.Any(), "user", 1).
			Return(nil, litetable.NewError(litetable.ErrTableNotFound, "user")),
		m.admin.EXPECT().TableExists(gomock.Any(), userTable).Return(false, nil),
		m.meta.EXPECT().AppendLayout(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, l *layout.Layout) error {
				req.Equal(uint64(1), l.ID())
				return nil
			}),
		m.registry.EXPECT().RegisterSchema(gomock.Any(), "string").Return(uint64(1), nil),
		m.admin.EXPECT().CreateTable(gomock.Any(), gomock.Any(), [][]byte{{0x80, 0x00}}).
			DoAndReturn(func(_ context.Context, s *physical.Schema, _ [][]byte) error {
				req.Equal(userTable, s.Table)
				req.Len(s.Families, 1)
				return nil
			}),
		m.emitter.EXPECT().Emit(gomock.Any()).Do(func(evt *cdc.Event) {
			req.Equal(cdc.TableCreated, evt.Kind)
			req.NotEmpty(evt.Layout)
		}),
	)

	l, err := e.CreateTable(ctx, userDescriptor(), 2)
	req.NoError(err)
	req.Equal("user", l.Name())
	req.True(unlocked)
}

func TestEngine_CreateTable_errors(t *testing.T) {
	ctx := context.Background()
	existing := mustLayout(t, userDescriptor(), nil)

	tests := map[string]struct {
		desc    func() *layout.Descriptor
		regions int
		setup   func(m *mocks)
		wantErr error
	}{
		"invalid layout": {
			desc: func() *layout.Descriptor {
				d := userDescriptor()
				d.Families = append(d.Families, d.Families[0])
				return d
			},
			regions: 1,
			setup:   func(m *mocks) {},
			wantErr: litetable.ErrInvalidLayout,
		},
		"raw keys cannot be pre-split": {
			desc: func() *layout.Descriptor {
				d := userDescriptor()
				d.KeyEncoding = layout.EncodingRaw
				return d
			},
			regions: 4,
			setup:   func(m *mocks) {},
			wantErr: litetable.ErrInvalidRequest,
		},
		"zero regions": {
			desc:    userDescriptor,
			setup:   func(m *mocks) {},
			wantErr: litetable.ErrInvalidRequest,
		},
		"layout history exists": {
			desc:    userDescriptor,
			regions: 1,
			setup: func(m *mocks) {
				m.locker.EXPECT().Lock(gomock.Any(), "table/user").Return(func() {}, nil)
				m.meta.EXPECT().LayoutHistory(gomock.Any(), "user", 1).
					Return([]*layout.Layout{existing}, nil)
			},
			wantErr: litetable.ErrTableAlreadyExists,
		},
		"physical table exists": {
			desc:    userDescriptor,
			regions: 1,
			setup: func(m *mocks) {
				m.locker.EXPECT().Lock(gomock.Any(), "table/user").Return(func() {}, nil)
				m.meta.EXPECT().LayoutHistory(gomock.Any(), "user", 1).
					Return(nil, litetable.ErrTableNotFound)
				m.admin.EXPECT().TableExists(gomock.Any(), userTable).Return(true, nil)
			},
			wantErr: litetable.ErrTableAlreadyExists,
		},
		"lock unavailable": {
			desc:    userDescriptor,
			regions: 1,
			setup: func(m *mocks) {
				m.locker.EXPECT().Lock(gomock.Any(), "table/user").
					Return(nil, context.DeadlineExceeded)
			},
			wantErr: context.DeadlineExceeded,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			e, m := newEngine(t)
			tc.setup(m)
			_, err := e.CreateTable(ctx, tc.desc(), tc.regions)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestEngine_ApplyLayout(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	e, m := newEngine(t)

	current := mustLayout(t, userDescriptor(), nil)
	next := mustLayout(t, withPrefs(userDescriptor()), current)

	m.journal.EXPECT().Append(gomock.Any()).Return(nil).Times(6)
	gomock.InOrder(
		m.locker.EXPECT().Lock(gomock.Any(), "table/user").Return(func() {}, nil),
		m.meta.EXPECT().LayoutHistory(gomock.Any(), "user", 1).
			Return([]*layout.Layout{current}, nil),
		m.admin.EXPECT().GetSchema(gomock.Any(), userTable).
			Return(physical.Translate("default", current), nil),
		m.meta.EXPECT().AppendLayout(gomock.Any(), gomock.Any()).Return(nil),
		m.registry.EXPECT().RegisterSchema(gomock.Any(), "string").Return(uint64(1), nil),
		m.registry.EXPECT().RegisterSchema(gomock.Any(), "int").Return(uint64(2), nil),
		m.admin.EXPECT().DisableTable(gomock.Any(), userTable).Return(nil),
		m.admin.EXPECT().AddFamily(gomock.Any(), userTable, physical.Translate("default",
			next).Families[1]).Return(nil),
		m.emitter.EXPECT().Emit(gomock.Any()).Do(func(evt *cdc.Event) {
			req.Equal(cdc.FamilyCreated, evt.Kind)
			req.Equal("prefs", evt.LogicalFamily)
			req.Equal("C", evt.Family)
		}),
		m.admin.EXPECT().EnableTable(gomock.Any(), userTable).Return(nil),
		m.emitter.EXPECT().Emit(gomock.Any()).Do(func(evt *cdc.Event) {
			req.Equal(cdc.LayoutApplied, evt.Kind)
		}),
	)

	l, plan, err := e.ApplyLayout(ctx, withPrefs(userDescriptor()), false)
	req.NoError(err)
	req.Equal(uint64(2), l.ID())
	req.Equal(uint64(1), l.ReferenceID())

	created, modified := plan.Counts()
	req.Equal(1, created)
	req.Equal(0, modified)
	req.False(plan.WouldCreate)
}

func TestEngine_ApplyLayout_idempotent(t *testing.T) {
	ctx := context.Background()
	e, m := newEngine(t)

	first := mustLayout(t, userDescriptor(), nil)
	current := mustLayout(t, withPrefs(userDescriptor()), first)

	// no admin mutation is expected
	m.locker.EXPECT().Lock(gomock.Any(), "table/user").Return(func() {}, nil)
	m.meta.EXPECT().LayoutHistory(gomock.Any(), "user", 1).Return([]*layout.Layout{current}, nil)
	m.admin.EXPECT().GetSchema(gomock.Any(), userTable).
		Return(physical.Translate("default", current), nil)
	m.meta.EXPECT().AppendLayout(gomock.Any(), gomock.Any()).Return(nil)
	m.registry.EXPECT().RegisterSchema(gomock.Any(), gomock.Any()).Return(uint64(1), nil).Times(2)
	m.emitter.EXPECT().Emit(gomock.Any())

	l, plan, err := e.ApplyLayout(ctx, withPrefs(userDescriptor()), false)
	require.NoError(t, err)
	require.Equal(t, uint64(3), l.ID())
	require.Empty(t, plan.Changes)
	require.Equal(t, "This table layout is valid.\n"+
		"This layout does not require any physical table schema changes.\n", plan.Render())
}

func TestEngine_ApplyLayout_dryRun(t *testing.T) {
	current := mustLayout(t, userDescriptor(), nil)

	tests := map[string]struct {
		existing *physical.Schema
		want     string
	}{
		"existing table": {
			existing: physical.Translate("default", current),
			want: "This table layout is valid.\n" +
				"Changes caused by this table layout:\n" +
				"  Creating new family: prefs (C)\n",
		},
		"missing physical table": {
			want: "This table layout is valid.\n" +
				"Would create new table: user\n" +
				"Changes caused by this table layout:\n" +
				"  Creating new family: info (B)\n" +
				"  Creating new family: prefs (C)\n",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			e, m := newEngine(t)

			// only reads are expected: no lock, no history append, no admin mutation
			m.meta.EXPECT().LayoutHistory(gomock.Any(), "user", 1).
				Return([]*layout.Layout{current}, nil)
			if tc.existing != nil {
				m.admin.EXPECT().GetSchema(gomock.Any(), userTable).Return(tc.existing, nil)
			} else {
				m.admin.EXPECT().GetSchema(gomock.Any(), userTable).
					Return(nil, litetable.NewError(litetable.ErrTableNotFound, userTable))
			}

			l, plan, err := e.ApplyLayout(context.Background(), withPrefs(userDescriptor()), true)
			require.NoError(t, err)
			require.Equal(t, uint64(2), l.ID(), "dry runs resolve the same layout")

			prefs, ok := l.Family("prefs")
			require.True(t, ok)
			require.Equal(t, "C", prefs.PhysicalName())

			got := plan.Render()
			require.Equal(t, tc.want, got, diff.LineDiff(tc.want, got))
			require.True(t, plan.DryRun)
		})
	}
}

func TestEngine_ApplyLayout_modify(t *testing.T) {
	ctx := context.Background()
	e, m := newEngine(t)
	e.journal = nil
	e.registry = nil
	e.emitter = nil

	current := mustLayout(t, withPrefs(userDescriptor()), nil)
	desc := withPrefs(userDescriptor())
	desc.Families[0].MaxVersions = 10
	desc.Families[1].Compression = layout.CompressionSnappy

	gomock.InOrder(
		m.locker.EXPECT().Lock(gomock.Any(), "table/user").Return(func() {}, nil),
		m.meta.EXPECT().LayoutHistory(gomock.Any(), "user", 1).
			Return([]*layout.Layout{current}, nil),
		m.admin.EXPECT().GetSchema(gomock.Any(), userTable).
			Return(physical.Translate("default", current), nil),
		m.meta.EXPECT().AppendLayout(gomock.Any(), gomock.Any()).Return(nil),
		m.admin.EXPECT().DisableTable(gomock.Any(), userTable).Return(nil),
		m.admin.EXPECT().ModifyFamily(gomock.Any(), userTable, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, f physical.Family) error {
				require.Equal(t, "B", f.Name)
				require.Equal(t, 10, f.MaxVersions)
				return nil
			}),
		m.admin.EXPECT().ModifyFamily(gomock.Any(), userTable, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, f physical.Family) error {
				require.Equal(t, "C", f.Name)
				require.Equal(t, "snappy", f.Compression)
				return nil
			}),
		m.admin.EXPECT().EnableTable(gomock.Any(), userTable).Return(nil),
	)

	_, plan, err := e.ApplyLayout(ctx, desc, false)
	require.NoError(t, err)

	want := "This table layout is valid.\n" +
		"Changes caused by this table layout:\n" +
		"  Modifying family: info (B)\n" +
		"  Modifying family: prefs (C)\n"
	require.Equal(t, want, plan.Render(), diff.LineDiff(want, plan.Render()))
}

func TestEngine_ApplyLayout_neverDrops(t *testing.T) {
	ctx := context.Background()
	e, m := newEngine(t)
	e.journal = nil
	e.registry = nil
	e.emitter = nil

	current := mustLayout(t, withPrefs(userDescriptor()), nil)

	m.locker.EXPECT().Lock(gomock.Any(), "table/user").Return(func() {}, nil)
	m.meta.EXPECT().LayoutHistory(gomock.Any(), "user", 1).Return([]*layout.Layout{current}, nil)
	m.admin.EXPECT().GetSchema(gomock.Any(), userTable).
		Return(physical.Translate("default", current), nil)
	m.meta.EXPECT().AppendLayout(gomock.Any(), gomock.Any()).Return(nil)

	l, plan, err := e.ApplyLayout(ctx, userDescriptor(), false)
	require.NoError(t, err)
	require.Empty(t, plan.Changes, "removed families are left in place")
	_, ok := l.Family("prefs")
	require.False(t, ok)
}

func TestEngine_ApplyLayout_errors(t *testing.T) {
	ctx := context.Background()
	current := mustLayout(t, userDescriptor(), nil)

	tests := map[string]struct {
		desc    *layout.Descriptor
		dryRun  bool
		setup   func(m *mocks)
		wantErr error
	}{
		"unnamed layout": {
			desc:    &layout.Descriptor{},
			setup:   func(m *mocks) {},
			wantErr: litetable.ErrInvalidLayout,
		},
		"table not in history": {
			desc:   userDescriptor(),
			dryRun: true,
			setup: func(m *mocks) {
				m.meta.EXPECT().LayoutHistory(gomock.Any(), "user", 1).
					Return(nil, litetable.ErrTableNotFound)
			},
			wantErr: litetable.ErrTableNotFound,
		},
		"invalid update": {
			desc: &layout.Descriptor{
				Name:            "user",
				ReferenceLayout: 7,
				Families:        userDescriptor().Families,
			},
			dryRun: true,
			setup: func(m *mocks) {
				m.meta.EXPECT().LayoutHistory(gomock.Any(), "user", 1).
					Return([]*layout.Layout{current}, nil)
			},
			wantErr: litetable.ErrInvalidLayout,
		},
		"key encoding change": {
			desc: func() *layout.Descriptor {
				d := withPrefs(userDescriptor())
				d.KeyEncoding = layout.EncodingRaw
				return d
			}(),
			setup: func(m *mocks) {
				m.locker.EXPECT().Lock(gomock.Any(), "table/user").Return(func() {}, nil)
				m.meta.EXPECT().LayoutHistory(gomock.Any(), "user", 1).
					Return([]*layout.Layout{current}, nil)
			},
			wantErr: litetable.ErrInvalidLayout,
		},
		"missing physical table": {
			desc: withPrefs(userDescriptor()),
			setup: func(m *mocks) {
				m.locker.EXPECT().Lock(gomock.Any(), "table/user").Return(func() {}, nil)
				m.meta.EXPECT().LayoutHistory(gomock.Any(), "user", 1).
					Return([]*layout.Layout{current}, nil)
				m.admin.EXPECT().GetSchema(gomock.Any(), userTable).
					Return(nil, litetable.ErrTableNotFound)
			},
			wantErr: litetable.ErrTableNotFound,
		},
		"store failure": {
			desc:   withPrefs(userDescriptor()),
			dryRun: true,
			setup: func(m *mocks) {
				m.meta.EXPECT().LayoutHistory(gomock.Any(), "user", 1).
					Return([]*layout.Layout{current}, nil)
				m.admin.EXPECT().GetSchema(gomock.Any(), userTable).
					Return(nil, litetable.ErrRemoteStore)
			},
			wantErr: litetable.ErrRemoteStore,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			e, m := newEngine(t)
			tc.setup(m)
			_, _, err := e.ApplyLayout(ctx, tc.desc, tc.dryRun)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestEngine_ApplyLayout_partialFailure(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	e, m := newEngine(t)
	e.registry = nil

	current := mustLayout(t, userDescriptor(), nil)
	desc := withPrefs(userDescriptor())
	desc.Families[0].MaxVersions = 2
	errRegion := errors.New("region server unreachable")

	var entries []*journal.Entry
	m.journal.EXPECT().Append(gomock.Any()).DoAndReturn(func(e *journal.Entry) error {
		entries = append(entries, e)
		return nil
	}).AnyTimes()
	gomock.InOrder(
		m.locker.EXPECT().Lock(gomock.Any(), "table/user").Return(func() {}, nil),
		m.meta.EXPECT().LayoutHistory(gomock.Any(), "user", 1).
			Return([]*layout.Layout{current}, nil),
		m.admin.EXPECT().GetSchema(gomock.Any(), userTable).
			Return(physical.Translate("default", current), nil),
		m.meta.EXPECT().AppendLayout(gomock.Any(), gomock.Any()).Return(nil),
		m.admin.EXPECT().DisableTable(gomock.Any(), userTable).Return(nil),
		m.admin.EXPECT().ModifyFamily(gomock.Any(), userTable, gomock.Any()).Return(nil),
		m.emitter.EXPECT().Emit(gomock.Any()),
		m.admin.EXPECT().AddFamily(gomock.Any(), userTable, gomock.Any()).Return(errRegion),
	)

	_, _, err := e.ApplyLayout(ctx, desc, false)
	req.ErrorIs(err, errRegion)

	var partial *PartialFailureError
	req.ErrorAs(err, &partial)
	req.True(partial.Offline)
	req.Equal([]string{"disable table", "modify family info (B)"}, partial.Applied)
	req.Equal("create family prefs (C)", partial.Failed)
	req.Contains(err.Error(), "left offline")
	req.Contains(err.Error(), "operator intervention")

	req.Len(entries, 6)
	last := entries[len(entries)-1]
	req.Equal(journal.PhaseFailed, last.Phase)
	req.Equal(errRegion.Error(), last.Error)
	req.Equal(partial.Run, last.Run)
}

func TestEngine_ApplyLayout_disableFails(t *testing.T) {
	ctx := context.Background()
	e, m := newEngine(t)
	e.registry = nil
	e.journal = nil

	current := mustLayout(t, userDescriptor(), nil)

	m.locker.EXPECT().Lock(gomock.Any(), "table/user").Return(func() {}, nil)
	m.meta.EXPECT().LayoutHistory(gomock.Any(), "user", 1).Return([]*layout.Layout{current}, nil)
	m.admin.EXPECT().GetSchema(gomock.Any(), userTable).
		Return(physical.Translate("default", current), nil)
	m.meta.EXPECT().AppendLayout(gomock.Any(), gomock.Any()).Return(nil)
	m.admin.EXPECT().DisableTable(gomock.Any(), userTable).Return(litetable.ErrRemoteStore)

	_, _, err := e.ApplyLayout(ctx, withPrefs(userDescriptor()), false)

	var partial *PartialFailureError
	require.ErrorAs(t, err, &partial)
	require.False(t, partial.Offline)
	require.Empty(t, partial.Applied)
	require.ErrorIs(t, err, litetable.ErrRemoteStore)
	require.Contains(t, err.Error(), "may be left offline")
}

func TestEngine_DeleteTable(t *testing.T) {
	ctx := context.Background()
	current := mustLayout(t, userDescriptor(), nil)

	tests := map[string]struct {
		setup   func(m *mocks)
		wantErr error
	}{
		"drops physical table and history": {
			setup: func(m *mocks) {
				gomock.InOrder(
					m.locker.EXPECT().Lock(gomock.Any(), "table/user").Return(func() {}, nil),
					m.meta.EXPECT().LayoutHistory(gomock.Any(), "user", 1).
						Return([]*layout.Layout{current}, nil),
					m.admin.EXPECT().TableExists(gomock.Any(), userTable).Return(true, nil),
					m.admin.EXPECT().DisableTable(gomock.Any(), userTable).Return(nil),
					m.admin.EXPECT().DropTable(gomock.Any(), userTable).Return(nil),
					m.meta.EXPECT().DeleteTable(gomock.Any(), "user").Return(nil),
					m.admin.EXPECT().TableExists(gomock.Any(), userTable).Return(false, nil),
					m.emitter.EXPECT().Emit(gomock.Any()).Do(func(evt *cdc.Event) {
						require.Equal(t, cdc.TableDeleted, evt.Kind)
					}),
				)
			},
		},
		"history without physical table": {
			setup: func(m *mocks) {
				m.locker.EXPECT().Lock(gomock.Any(), "table/user").Return(func() {}, nil)
				m.meta.EXPECT().LayoutHistory(gomock.Any(), "user", 1).
					Return([]*layout.Layout{current}, nil)
				m.admin.EXPECT().TableExists(gomock.Any(), userTable).Return(false, nil).Times(2)
				m.meta.EXPECT().DeleteTable(gomock.Any(), "user").Return(nil)
				m.emitter.EXPECT().Emit(gomock.Any())
			},
		},
		"unknown table": {
			setup: func(m *mocks) {
				m.locker.EXPECT().Lock(gomock.Any(), "table/user").Return(func() {}, nil)
				m.meta.EXPECT().LayoutHistory(gomock.Any(), "user", 1).
					Return(nil, litetable.ErrTableNotFound)
			},
			wantErr: litetable.ErrTableNotFound,
		},
		"drop fails": {
			setup: func(m *mocks) {
				m.locker.EXPECT().Lock(gomock.Any(), "table/user").Return(func() {}, nil)
				m.meta.EXPECT().LayoutHistory(gomock.Any(), "user", 1).
					Return([]*layout.Layout{current}, nil)
				m.admin.EXPECT().TableExists(gomock.Any(), userTable).Return(true, nil)
				m.admin.EXPECT().DisableTable(gomock.Any(), userTable).Return(nil)
				m.admin.EXPECT().DropTable(gomock.Any(), userTable).Return(litetable.ErrRemoteStore)
			},
			wantErr: litetable.ErrRemoteStore,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			e, m := newEngine(t)
			tc.setup(m)
			err := e.DeleteTable(ctx, "user")
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEngine_ListTables(t *testing.T) {
	e, m := newEngine(t)
	m.meta.EXPECT().ListTables(gomock.Any()).Return([]string{"user", "orders", "accounts"}, nil)

	tables, err := e.ListTables(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"accounts", "orders", "user"}, tables)
}
