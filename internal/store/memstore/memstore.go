// Package memstore is an in-memory physical store: tables of versioned cells grouped in
// physical families, with the admin surface of a column-family database.
//
// Cell data of each table is split over a fixed number of shards. A row always lives in one
// shard, picked by hashing the row key, so point queries only lock a single shard. Listing row
// keys has to visit every shard and is the expensive path, as in any hash-sharded layout.
//
// Family alterations and table drops require the table to be disabled first, which is how
// the migration engine is expected to drive them.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"sync"

	"github.com/google/btree"
	"github.com/litetable/litetable-schema/internal/litetable"
	"github.com/litetable/litetable-schema/internal/physical"
	"github.com/rs/zerolog/log"
)

const (
	defaultShardCount = 4
	btreeDegree       = 16
)

// cellItem orders cells by row, family and qualifier ascending, then timestamp descending.
type cellItem struct {
	row       string
	family    string
	qualifier string
	ts        int64
	value     []byte
}

func lessCell(a, b cellItem) bool {
	if a.row != b.row {
		return a.row < b.row
	}
	if a.family != b.family {
		return a.family < b.family
	}
	if a.qualifier != b.qualifier {
		return a.qualifier < b.qualifier
	}
	return a.ts > b.ts
}

// shard holds the cells of the rows hashed to it.
type shard struct {
	mutex sync.RWMutex
	tree  *btree.BTreeG[cellItem]
}

type table struct {
	mutex   sync.RWMutex
	schema  *physical.Schema
	enabled bool
	regions int
	shards  []*shard
}

// Manager is the in-memory store.
type Manager struct {
	mutex      sync.RWMutex
	tables     map[string]*table
	shardCount int
}

type Config struct {
	ShardCount int
}

func (c *Config) validate() error {
	var errGrp []error
	if c.ShardCount < 0 || c.ShardCount > 64 {
		errGrp = append(errGrp, fmt.Errorf("shard count must be between 1 and 64"))
	}
	return errors.Join(errGrp...)
}

// New creates an empty store.
func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	count := cfg.ShardCount
	if count == 0 {
		count = defaultShardCount
	}

	return &Manager{
		tables:     make(map[string]*table),
		shardCount: count,
	}, nil
}

func (m *Manager) Start() error {
	return nil
}

func (m *Manager) Stop() error {
	return nil
}

func (m *Manager) Name() string {
	return "Memory Store"
}

// getShardIndex determines which shard a row key belongs to.
func (m *Manager) getShardIndex(rowKey string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(rowKey))
	return int(h.Sum32() % uint32(m.shardCount))
}

func (m *Manager) table(name string) (*table, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	t, ok := m.tables[name]
	if !ok {
		return nil, litetable.NewError(litetable.ErrTableNotFound, "%s", name)
	}
	return t, nil
}

// Tables lists physical table names in ascending order.
func (m *Manager) Tables(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.tables))
	for name := range m.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *Manager) TableExists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	_, ok := m.tables[name]
	return ok, nil
}

// CreateTable creates an enabled table. Split keys only determine the reported region count.
func (m *Manager) CreateTable(ctx context.Context, schema *physical.Schema,
	splitKeys [][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.tables[schema.Table]; ok {
		return litetable.NewError(litetable.ErrTableAlreadyExists, "%s", schema.Table)
	}

	t := &table{
		schema:  schema.Clone(),
		enabled: true,
		regions: len(splitKeys) + 1,
		shards:  make([]*shard, m.shardCount),
	}
	for i := range t.shards {
		t.shards[i] = &shard{tree: btree.NewG[cellItem](btreeDegree, lessCell)}
	}
	m.tables[schema.Table] = t

	log.Debug().Str("table", schema.Table).Int("regions", t.regions).Msg("physical table created")
	return nil
}

// Regions reports how many regions a table was created with.
func (m *Manager) Regions(ctx context.Context, name string) (int, error) {
	t, err := m.table(name)
	if err != nil {
		return 0, err
	}
	return t.regions, nil
}

// GetSchema returns a copy of the physical schema of a table.
func (m *Manager) GetSchema(ctx context.Context, name string) (*physical.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := m.table(name)
	if err != nil {
		return nil, err
	}
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.schema.Clone(), nil
}

func (m *Manager) IsEnabled(ctx context.Context, name string) (bool, error) {
	t, err := m.table(name)
	if err != nil {
		return false, err
	}
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.enabled, nil
}

func (m *Manager) DisableTable(ctx context.Context, name string) error {
	return m.setEnabled(ctx, name, false)
}

func (m *Manager) EnableTable(ctx context.Context, name string) error {
	return m.setEnabled(ctx, name, true)
}

func (m *Manager) setEnabled(ctx context.Context, name string, enabled bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t, err := m.table(name)
	if err != nil {
		return err
	}
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.enabled = enabled
	return nil
}

// AddFamily adds a physical family to a disabled table.
func (m *Manager) AddFamily(ctx context.Context, name string, f physical.Family) error {
	return m.alterFamily(ctx, name, f, true)
}

// ModifyFamily replaces the attributes of an existing family of a disabled table.
func (m *Manager) ModifyFamily(ctx context.Context, name string, f physical.Family) error {
	return m.alterFamily(ctx, name, f, false)
}

func (m *Manager) alterFamily(ctx context.Context, name string, f physical.Family, add bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t, err := m.table(name)
	if err != nil {
		return err
	}
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.enabled {
		return litetable.NewError(litetable.ErrIllegalState,
			"table %s must be disabled to alter family %s", name, f.Name)
	}

	for i, existing := range t.schema.Families {
		if existing.Name != f.Name {
			continue
		}
		if add {
			return litetable.NewError(litetable.ErrIllegalState, "family %s already exists in %s",
				f.Name, name)
		}
		t.schema.Families[i] = f
		return nil
	}

	if !add {
		return litetable.NewError(litetable.ErrIllegalState, "family %s does not exist in %s",
			f.Name, name)
	}
	t.schema.Families = append(t.schema.Families, f)
	return nil
}

// DropTable removes a disabled table and all of its data.
func (m *Manager) DropTable(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	t, ok := m.tables[name]
	if !ok {
		return litetable.NewError(litetable.ErrTableNotFound, "%s", name)
	}
	t.mutex.RLock()
	enabled := t.enabled
	t.mutex.RUnlock()
	if enabled {
		return litetable.NewError(litetable.ErrIllegalState, "table %s must be disabled to drop",
			name)
	}

	delete(m.tables, name)
	return nil
}

// readable returns the table and the physical family, failing for disabled tables.
func (m *Manager) readable(name, family string) (*table, physical.Family, error) {
	t, err := m.table(name)
	if err != nil {
		return nil, physical.Family{}, err
	}
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	if !t.enabled {
		return nil, physical.Family{}, litetable.NewError(litetable.ErrTableDisabled, "%s", name)
	}
	f, ok := t.schema.Family(family)
	if !ok {
		return nil, physical.Family{}, litetable.NewError(litetable.ErrInvalidRequest,
			"family %s does not exist in %s", family, name)
	}
	return t, f, nil
}

// Put writes one cell. Versions beyond the family's max versions are discarded, oldest first.
func (m *Manager) Put(ctx context.Context, name, rowKey, family, qualifier string, ts int64,
	value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ts < 0 || ts == math.MaxInt64 {
		return litetable.NewError(litetable.ErrInvalidRequest, "invalid timestamp %d", ts)
	}
	t, f, err := m.readable(name, family)
	if err != nil {
		return err
	}

	s := t.shards[m.getShardIndex(rowKey)]
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.tree.ReplaceOrInsert(cellItem{
		row:       rowKey,
		family:    family,
		qualifier: qualifier,
		ts:        ts,
		value:     append([]byte(nil), value...),
	})

	var expired []cellItem
	versions := 0
	s.tree.AscendGreaterOrEqual(cellItem{row: rowKey, family: family, qualifier: qualifier,
		ts: math.MaxInt64}, func(item cellItem) bool {
		if item.row != rowKey || item.family != family || item.qualifier != qualifier {
			return false
		}
		versions++
		if versions > f.MaxVersions {
			expired = append(expired, item)
		}
		return true
	})
	for _, item := range expired {
		s.tree.Delete(item)
	}
	return nil
}

// Query runs a bounded range query against one row.
func (m *Manager) Query(ctx context.Context, q *litetable.Query) ([]litetable.Cell, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, f, err := m.readable(q.Table, q.Family)
	if err != nil {
		return nil, err
	}

	start := q.StartAfterQualifier
	if q.Qualifier != "" {
		start = q.Qualifier
	}

	s := t.shards[m.getShardIndex(q.RowKey)]
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var (
		accepted []litetable.Cell
		current  string
		stored   int
	)
	s.tree.AscendGreaterOrEqual(cellItem{row: q.RowKey, family: q.Family, qualifier: start,
		ts: math.MaxInt64}, func(item cellItem) bool {
		if item.row != q.RowKey || item.family != q.Family {
			return false
		}
		if q.Qualifier != "" && item.qualifier != q.Qualifier {
			return false
		}
		// versions beyond the family's max are hidden until the next write trims them
		if stored == 0 || item.qualifier != current {
			current, stored = item.qualifier, 0
		}
		stored++
		if stored > f.MaxVersions {
			return true
		}
		c := litetable.Cell{Qualifier: item.qualifier, Timestamp: item.ts, Value: item.value}
		if q.Accepts(c) {
			c.Value = append([]byte(nil), item.value...)
			accepted = append(accepted, c)
		}
		return true
	})

	return q.Limit(accepted), nil
}

// RowKeys lists up to limit row keys of a table starting at from, ascending. A zero limit lists
// every remaining row.
func (m *Manager) RowKeys(ctx context.Context, name, from string, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := m.table(name)
	if err != nil {
		return nil, err
	}
	t.mutex.RLock()
	enabled := t.enabled
	t.mutex.RUnlock()
	if !enabled {
		return nil, litetable.NewError(litetable.ErrTableDisabled, "%s", name)
	}

	seen := make(map[string]struct{})
	for _, s := range t.shards {
		s.mutex.RLock()
		s.tree.AscendGreaterOrEqual(cellItem{row: from, ts: math.MaxInt64},
			func(item cellItem) bool {
				seen[item.row] = struct{}{}
				return true
			})
		s.mutex.RUnlock()
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys, nil
}
