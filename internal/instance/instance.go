// Package instance provides the reference counted handle through which callers reach one
// logical instance: its store, meta store, migration engine and tables.
package instance

import (
	"context"
	"errors"
	"fmt"
	"net"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/litetable/litetable-schema/internal/cdc"
	"github.com/litetable/litetable-schema/internal/journal"
	"github.com/litetable/litetable-schema/internal/litetable"
	"github.com/litetable/litetable-schema/internal/lock"
	"github.com/litetable/litetable-schema/internal/metastore"
	"github.com/litetable/litetable-schema/internal/migrate"
	"github.com/litetable/litetable-schema/internal/physical"
	"github.com/litetable/litetable-schema/internal/reader"
	"github.com/litetable/litetable-schema/internal/store/memstore"
	"github.com/litetable/litetable-schema/internal/store/remote"
	"github.com/rs/zerolog/log"
)

// DataVersion is the system table data version this build reads and writes.
const DataVersion = "system-1.0"

// DataVersionKey is the system property holding the data version of an instance.
const DataVersionKey = "data-version"

// MemoryStore is the store address of an in-process store.
const MemoryStore = "memory"

// Store is the physical store an instance lives in.
type Store interface {
	TableExists(ctx context.Context, name string) (bool, error)
	CreateTable(ctx context.Context, schema *physical.Schema, splitKeys [][]byte) error
	GetSchema(ctx context.Context, name string) (*physical.Schema, error)
	DisableTable(ctx context.Context, name string) error
	EnableTable(ctx context.Context, name string) error
	AddFamily(ctx context.Context, table string, f physical.Family) error
	ModifyFamily(ctx context.Context, table string, f physical.Family) error
	DropTable(ctx context.Context, name string) error
	Query(ctx context.Context, q *litetable.Query) ([]litetable.Cell, error)
	Put(ctx context.Context, table, rowKey, family, qualifier string, ts int64,
		value []byte) error
	RowKeys(ctx context.Context, table, from string, limit int) ([]string, error)
}

type Config struct {
	Instance string
	// StoreAddress is host:port of a store server, or MemoryStore.
	StoreAddress string
	StoreTimeout time.Duration
	// Store overrides StoreAddress with an already opened store the handle does not own.
	Store Store

	MetaBackend metastore.Backend
	MetaPath    string
	JournalPath string
	LockTimeout time.Duration
	ShardCount  int

	// Emitter receives layout change events. Optional.
	Emitter *cdc.Server
	// LeakDetection logs handles that are garbage collected before being fully released.
	LeakDetection bool
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Instance == "" {
		errGrp = append(errGrp, errors.New("instance cannot be empty"))
	}
	if c.Store == nil && c.StoreAddress == "" {
		errGrp = append(errGrp, errors.New("store address cannot be empty"))
	}
	if c.MetaPath == "" {
		errGrp = append(errGrp, errors.New("meta path cannot be empty"))
	}
	if c.JournalPath == "" {
		errGrp = append(errGrp, errors.New("journal path cannot be empty"))
	}
	return errors.Join(errGrp...)
}

// URI is the canonical identifier of the instance addressed by cfg.
func URI(cfg *Config) string {
	addr := strings.ToLower(strings.TrimSpace(cfg.StoreAddress))
	if cfg.Store != nil && addr == "" {
		addr = MemoryStore
	}
	if host, port, err := net.SplitHostPort(addr); err == nil && host == "" {
		addr = net.JoinHostPort("localhost", port)
	}
	return fmt.Sprintf("litetable://%s/%s", addr, cfg.Instance)
}

// privateStore reports whether cfg gives each handle its own in-memory store.
func privateStore(cfg *Config) bool {
	return cfg.Store == nil && strings.EqualFold(strings.TrimSpace(cfg.StoreAddress), MemoryStore)
}

type closer struct {
	name  string
	close func() error
}

// Handle is a reference counted view of one instance. Every holder must Release it; the last
// Release closes everything the handle opened.
type Handle struct {
	cfg     Config
	uri     string
	session string

	refs     *atomic.Int32
	released sync.Once
	leak     *leakTracker

	mu      sync.Mutex
	store   Store
	meta    *metastore.MetaStore
	journal *journal.Manager
	locks   *lock.Manager
	engine  *migrate.Engine
	closers []closer
}

// Open returns a handle with a retain count of one. Resources are opened on first use.
func Open(cfg *Config) (*Handle, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	h := &Handle{
		cfg:     *cfg,
		uri:     URI(cfg),
		session: uuid.NewString(),
		refs:    new(atomic.Int32),
	}
	if privateStore(cfg) {
		h.uri += "?session=" + h.session
	}
	h.refs.Store(1)

	if cfg.LeakDetection {
		h.leak = &leakTracker{
			uri:     h.uri,
			session: h.session,
			stack:   string(debug.Stack()),
			refs:    h.refs,
		}
		runtime.SetFinalizer(h, func(h *Handle) { h.leak.check() })
	}

	log.Info().Str("uri", h.uri).Str("session", h.session).Msg("instance handle opened")
	return h, nil
}

// URI is the canonical identifier of the instance. A handle on a private memory store carries
// its session in the URI since no other handle can reach that store.
func (h *Handle) URI() string {
	return h.uri
}

// Equal reports whether both handles address the same instance.
func (h *Handle) Equal(other *Handle) bool {
	if h == nil || other == nil {
		return h == other
	}
	return h.uri == other.uri
}

// Retain adds a holder.
func (h *Handle) Retain() (*Handle, error) {
	for {
		n := h.refs.Load()
		if n <= 0 {
			return nil, litetable.NewError(litetable.ErrIllegalState,
				"retain on released handle %s", h.uri)
		}
		if h.refs.CompareAndSwap(n, n+1) {
			return h, nil
		}
	}
}

// Release drops a holder. The last release closes the handle's resources.
func (h *Handle) Release() error {
	n := h.refs.Add(-1)
	switch {
	case n < 0:
		h.refs.Add(1)
		return litetable.NewError(litetable.ErrIllegalState,
			"release on released handle %s", h.uri)
	case n > 0:
		return nil
	}

	h.released.Do(func() {
		if h.leak != nil {
			runtime.SetFinalizer(h, nil)
		}
		h.close()
	})
	return nil
}

func (h *Handle) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := len(h.closers) - 1; i >= 0; i-- {
		c := h.closers[i]
		if err := c.close(); err != nil {
			log.Warn().Err(err).Str("resource", c.name).Str("uri", h.uri).
				Msg("failed to close instance resource")
		}
	}
	h.closers = nil
	log.Info().Str("uri", h.uri).Str("session", h.session).Msg("instance handle closed")
}

func (h *Handle) live() error {
	if h.refs.Load() <= 0 {
		return litetable.NewError(litetable.ErrIllegalState, "handle %s is released", h.uri)
	}
	return nil
}

// Store returns the physical store of the instance.
func (h *Handle) Store() (Store, error) {
	if err := h.live(); err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.openStore()
}

func (h *Handle) openStore() (Store, error) {
	if h.store != nil {
		return h.store, nil
	}

	switch {
	case h.cfg.Store != nil:
		h.store = h.cfg.Store
	case privateStore(&h.cfg):
		s, err := memstore.New(&memstore.Config{ShardCount: h.cfg.ShardCount})
		if err != nil {
			return nil, err
		}
		h.store = s
	default:
		c, err := remote.New(&remote.Config{Address: h.cfg.StoreAddress,
			Timeout: h.cfg.StoreTimeout})
		if err != nil {
			return nil, err
		}
		h.store = c
		h.closers = append(h.closers, closer{name: c.Name(), close: c.Close})
	}
	log.Debug().Str("uri", h.uri).Msg("store opened")
	return h.store, nil
}

// MetaStore returns the meta, schema and system tables of the instance, checking the data
// version on first access.
func (h *Handle) MetaStore(ctx context.Context) (*metastore.MetaStore, error) {
	if err := h.live(); err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.openMeta(ctx)
}

func (h *Handle) openMeta(ctx context.Context) (*metastore.MetaStore, error) {
	if h.meta != nil {
		return h.meta, nil
	}

	backend := h.cfg.MetaBackend
	if backend == "" {
		backend = metastore.BackendBolt
	}
	m, err := metastore.Open(&metastore.Config{Backend: backend, Path: h.cfg.MetaPath})
	if err != nil {
		return nil, err
	}
	if err := ValidateVersion(ctx, m); err != nil {
		_ = m.Close()
		return nil, err
	}

	h.meta = m
	h.closers = append(h.closers, closer{name: m.Name(), close: m.Close})
	return m, nil
}

type properties interface {
	Property(ctx context.Context, key string) (string, bool, error)
	SetProperty(ctx context.Context, key, value string) error
}

// ValidateVersion checks that the system table holds a data version this build understands,
// installing it on a fresh instance.
func ValidateVersion(ctx context.Context, p properties) error {
	v, ok, err := p.Property(ctx, DataVersionKey)
	if err != nil {
		return err
	}
	if !ok {
		log.Debug().Str("version", DataVersion).Msg("installing system data version")
		return p.SetProperty(ctx, DataVersionKey, DataVersion)
	}
	if v != DataVersion {
		return litetable.NewError(litetable.ErrIllegalState,
			"instance data version %s is not supported, expected %s", v, DataVersion)
	}
	return nil
}

// Engine returns the migration engine of the instance.
func (h *Handle) Engine(ctx context.Context) (*migrate.Engine, error) {
	if err := h.live(); err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.engine != nil {
		return h.engine, nil
	}

	store, err := h.openStore()
	if err != nil {
		return nil, err
	}
	meta, err := h.openMeta(ctx)
	if err != nil {
		return nil, err
	}

	if h.journal == nil {
		j, err := journal.New(&journal.Config{Path: h.cfg.JournalPath})
		if err != nil {
			return nil, err
		}
		h.journal = j
		h.closers = append(h.closers, closer{name: j.Name(), close: j.Stop})
	}
	if h.locks == nil {
		l, err := lock.New(&lock.Config{Timeout: h.cfg.LockTimeout})
		if err != nil {
			return nil, err
		}
		h.locks = l
	}

	cfg := &migrate.Config{
		Instance:       h.cfg.Instance,
		Admin:          store,
		MetaStore:      meta,
		Locker:         h.locks,
		SchemaRegistry: meta,
		Journal:        h.journal,
	}
	if h.cfg.Emitter != nil {
		cfg.Emitter = h.cfg.Emitter
	}
	e, err := migrate.New(cfg)
	if err != nil {
		return nil, err
	}
	h.engine = e
	return e, nil
}

// Journal returns the migration journal of the instance.
func (h *Handle) Journal(ctx context.Context) (*journal.Manager, error) {
	if _, err := h.Engine(ctx); err != nil {
		return nil, err
	}
	return h.journal, nil
}

// OpenTable binds a logical table to its current layout.
func (h *Handle) OpenTable(ctx context.Context, name string) (*reader.Table, error) {
	e, err := h.Engine(ctx)
	if err != nil {
		return nil, err
	}
	l, err := e.Layout(ctx, name)
	if err != nil {
		return nil, err
	}
	store, err := h.Store()
	if err != nil {
		return nil, err
	}
	return reader.New(&reader.Config{Store: store, Instance: h.cfg.Instance, Layout: l})
}

// leakTracker reports handles collected while still retained.
type leakTracker struct {
	uri     string
	session string
	stack   string
	refs    *atomic.Int32
}

func (l *leakTracker) check() {
	if n := l.refs.Load(); n > 0 {
		log.Warn().Str("uri", l.uri).Str("session", l.session).Int32("retain_count", n).
			Str("acquired_at", l.stack).Msg("instance handle leaked without release")
	}
}
