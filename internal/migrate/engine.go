// Package migrate creates, evolves and deletes tables. It keeps the layout history in the meta
// store and drives the store admin interface so the physical schema follows the logical layout.
package migrate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/litetable/litetable-schema/internal/cdc"
	"github.com/litetable/litetable-schema/internal/journal"
	"github.com/litetable/litetable-schema/internal/layout"
	"github.com/litetable/litetable-schema/internal/litetable"
	"github.com/litetable/litetable-schema/internal/physical"
	"github.com/rs/zerolog/log"
)

//go:generate mockgen -destination=engine_mock.go -package=migrate -source=engine.go

type admin interface {
	TableExists(ctx context.Context, name string) (bool, error)
	CreateTable(ctx context.Context, schema *physical.Schema, splitKeys [][]byte) error
	GetSchema(ctx context.Context, name string) (*physical.Schema, error)
	DisableTable(ctx context.Context, name string) error
	EnableTable(ctx context.Context, name string) error
	AddFamily(ctx context.Context, table string, f physical.Family) error
	ModifyFamily(ctx context.Context, table string, f physical.Family) error
	DropTable(ctx context.Context, name string) error
}

type metaStore interface {
	// LayoutHistory returns up to limit layouts of a table, newest first.
	LayoutHistory(ctx context.Context, table string, limit int) ([]*layout.Layout, error)
	AppendLayout(ctx context.Context, l *layout.Layout) error
	ListTables(ctx context.Context) ([]string, error)
	DeleteTable(ctx context.Context, table string) error
}

type locker interface {
	Lock(ctx context.Context, name string) (func(), error)
}

type schemaRegistry interface {
	RegisterSchema(ctx context.Context, schema string) (uint64, error)
}

type journaler interface {
	Append(e *journal.Entry) error
}

type emitter interface {
	Emit(e *cdc.Event)
}

const maxRegions = 1 << 16

// Engine applies logical layouts to the physical store.
type Engine struct {
	instance string
	admin    admin
	meta     metaStore
	locker   locker
	registry schemaRegistry
	journal  journaler
	emitter  emitter
}

type Config struct {
	Instance  string
	Admin     admin
	MetaStore metaStore
	Locker    locker
	// SchemaRegistry, Journal and Emitter are optional.
	SchemaRegistry schemaRegistry
	Journal        journaler
	Emitter        emitter
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Instance == "" {
		errGrp = append(errGrp, errors.New("instance cannot be empty"))
	}
	if c.Admin == nil {
		errGrp = append(errGrp, errors.New("admin cannot be nil"))
	}
	if c.MetaStore == nil {
		errGrp = append(errGrp, errors.New("meta store cannot be nil"))
	}
	if c.Locker == nil {
		errGrp = append(errGrp, errors.New("locker cannot be nil"))
	}
	return errors.Join(errGrp...)
}

func New(cfg *Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Engine{
		instance: cfg.Instance,
		admin:    cfg.Admin,
		meta:     cfg.MetaStore,
		locker:   cfg.Locker,
		registry: cfg.SchemaRegistry,
		journal:  cfg.Journal,
		emitter:  cfg.Emitter,
	}, nil
}

func lockName(table string) string {
	return "table/" + table
}

// Layout returns the current layout of a table.
func (e *Engine) Layout(ctx context.Context, table string) (*layout.Layout, error) {
	history, err := e.meta.LayoutHistory(ctx, table, 1)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, litetable.NewError(litetable.ErrTableNotFound, "%s", table)
	}
	return history[0], nil
}

// History returns up to limit layouts of a table, newest first.
func (e *Engine) History(ctx context.Context, table string, limit int) ([]*layout.Layout, error) {
	return e.meta.LayoutHistory(ctx, table, limit)
}

// CreateTable records the first layout of a table and creates its physical table, pre-split
// into numRegions regions.
func (e *Engine) CreateTable(ctx context.Context, desc *layout.Descriptor,
	numRegions int) (*layout.Layout, error) {
	if numRegions < 1 || numRegions > maxRegions {
		return nil, litetable.NewError(litetable.ErrInvalidRequest,
			"number of regions must be between 1 and %d, got %d", maxRegions, numRegions)
	}
	l, err := layout.New(desc)
	if err != nil {
		return nil, err
	}
	if numRegions > 1 && l.KeyEncoding() == layout.EncodingRaw {
		return nil, litetable.NewError(litetable.ErrInvalidRequest,
			"table %s uses raw row keys and cannot be pre-split into %d regions", l.Name(),
			numRegions)
	}

	unlock, err := e.locker.Lock(ctx, lockName(l.Name()))
	if err != nil {
		return nil, err
	}
	defer unlock()

	if _, err := e.Layout(ctx, l.Name()); err == nil {
		return nil, litetable.NewError(litetable.ErrTableAlreadyExists, "%s", l.Name())
	} else if !errors.Is(err, litetable.ErrTableNotFound) {
		return nil, err
	}

	schema := physical.Translate(e.instance, l)
	exists, err := e.admin.TableExists(ctx, schema.Table)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, litetable.NewError(litetable.ErrTableAlreadyExists,
			"physical table %s already exists", schema.Table)
	}

	log.Debug().Str("table", l.Name()).Uint64("layout", l.ID()).Msg("recording initial layout")
	if err := e.meta.AppendLayout(ctx, l); err != nil {
		return nil, err
	}
	if err := e.registerValueTypes(ctx, l); err != nil {
		return nil, err
	}

	log.Debug().Str("table", schema.Table).Int("regions", numRegions).
		Msg("creating physical table")
	if err := e.admin.CreateTable(ctx, schema, splitKeys(numRegions)); err != nil {
		return nil, err
	}

	e.emit(&cdc.Event{Kind: cdc.TableCreated, Table: l.Name(), LayoutID: l.ID()}, l)
	log.Info().Str("table", l.Name()).Msg("table created")
	return l, nil
}

// splitKeys divides the two byte hash prefix space of row keys evenly into n regions.
func splitKeys(n int) [][]byte {
	if n <= 1 {
		return nil
	}
	keys := make([][]byte, 0, n-1)
	for i := 1; i < n; i++ {
		v := uint16((uint32(i) << 16) / uint32(n))
		keys = append(keys, []byte{byte(v >> 8), byte(v)})
	}
	return keys
}

func (e *Engine) registerValueTypes(ctx context.Context, l *layout.Layout) error {
	if e.registry == nil {
		return nil
	}
	for _, vt := range l.ValueTypes() {
		id, err := e.registry.RegisterSchema(ctx, vt)
		if err != nil {
			return fmt.Errorf("registering cell schema %q: %w", vt, err)
		}
		log.Debug().Str("schema", vt).Uint64("id", id).Msg("cell schema registered")
	}
	return nil
}

// ApplyLayout moves a table to the layout described by desc.
//
// The new layout is translated to a physical schema and diffed against the table's current
// physical schema before it is recorded in the layout history. A failure to read the physical
// schema, including a missing physical table, leaves the history unchanged. Families are then
// created or modified with the table offline; families missing from the new layout are never
// dropped. In dry-run mode nothing is recorded or altered and a missing physical table is
// reported as one that would be created.
//
// The returned plan lists the physical changes in the order they are, or would be, applied.
func (e *Engine) ApplyLayout(ctx context.Context, desc *layout.Descriptor,
	dryRun bool) (*layout.Layout, *Plan, error) {
	if desc == nil || desc.Name == "" {
		return nil, nil, litetable.NewError(litetable.ErrInvalidLayout, "layout must name a table")
	}
	name := desc.Name

	if !dryRun {
		unlock, err := e.locker.Lock(ctx, lockName(name))
		if err != nil {
			return nil, nil, err
		}
		defer unlock()
	}

	log.Debug().Str("table", name).Bool("dry_run", dryRun).Msg("reading layout history")
	current, err := e.Layout(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	next, err := layout.Update(desc, current)
	if err != nil {
		return nil, nil, err
	}

	plan := &Plan{Table: name, LayoutID: next.ID(), DryRun: dryRun}
	desired := physical.Translate(e.instance, next)

	log.Debug().Str("table", desired.Table).Msg("reading physical schema")
	existing, err := e.admin.GetSchema(ctx, desired.Table)
	switch {
	case errors.Is(err, litetable.ErrTableNotFound) && dryRun:
		plan.WouldCreate = true
		existing = physical.Empty(desired.Table)
	case err != nil:
		return nil, nil, err
	}

	plan.Changes = physical.Diff(existing, desired, next)
	log.Debug().Str("table", name).Int("changes", len(plan.Changes)).Msg("physical diff computed")

	if dryRun {
		return next, plan, nil
	}

	if err := e.meta.AppendLayout(ctx, next); err != nil {
		return nil, nil, err
	}
	if err := e.registerValueTypes(ctx, next); err != nil {
		return nil, nil, err
	}

	if len(plan.Changes) > 0 {
		if err := e.apply(ctx, desired.Table, next, plan.Changes); err != nil {
			return nil, nil, err
		}
	}

	e.emit(&cdc.Event{Kind: cdc.LayoutApplied, Table: name, LayoutID: next.ID()}, next)
	log.Info().Str("table", name).Uint64("layout", next.ID()).Int("changes", len(plan.Changes)).
		Msg("layout applied")
	return next, plan, nil
}

// apply runs the changes with the table offline. Steps run in order and stop at the first
// failure, which is returned as a *PartialFailureError.
func (e *Engine) apply(ctx context.Context, table string, l *layout.Layout,
	changes []physical.Change) error {
	run := &run{
		engine: e,
		id:     uuid.NewString(),
		table:  table,
		layout: l.ID(),
	}

	if err := run.step("disable table", func() error {
		return e.admin.DisableTable(ctx, table)
	}); err != nil {
		return run.failure(err)
	}
	run.offline = true

	for _, c := range changes {
		if err := run.step(describe(c), func() error {
			if c.Op == physical.OpCreate {
				return e.admin.AddFamily(ctx, table, c.Family)
			}
			return e.admin.ModifyFamily(ctx, table, c.Family)
		}); err != nil {
			return run.failure(err)
		}

		kind := cdc.FamilyModified
		if c.Op == physical.OpCreate {
			kind = cdc.FamilyCreated
		}
		e.emit(&cdc.Event{Kind: kind, Table: l.Name(), LayoutID: l.ID(), Family: c.Family.Name,
			LogicalFamily: c.Logical}, nil)
	}

	if err := run.step("enable table", func() error {
		return e.admin.EnableTable(ctx, table)
	}); err != nil {
		return run.failure(err)
	}
	return nil
}

func describe(c physical.Change) string {
	if c.Op == physical.OpCreate {
		return fmt.Sprintf("create family %s (%s)", c.Logical, c.Family.Name)
	}
	return fmt.Sprintf("modify family %s (%s)", c.Logical, c.Family.Name)
}

// run tracks the steps of one migration.
type run struct {
	engine  *Engine
	id      string
	table   string
	layout  uint64
	applied []string
	failed  string
	offline bool
}

func (r *run) step(name string, fn func() error) error {
	log.Debug().Str("table", r.table).Str("step", name).Msg("migration step")
	r.record(name, journal.PhaseStarted, nil)

	if err := fn(); err != nil {
		r.failed = name
		r.record(name, journal.PhaseFailed, err)
		return err
	}

	r.applied = append(r.applied, name)
	r.record(name, journal.PhaseCompleted, nil)
	return nil
}

func (r *run) record(step string, phase journal.Phase, stepErr error) {
	if r.engine.journal == nil {
		return
	}
	entry := &journal.Entry{
		Run:      r.id,
		Table:    r.table,
		LayoutID: r.layout,
		Step:     step,
		Phase:    phase,
	}
	if stepErr != nil {
		entry.Error = stepErr.Error()
	}
	if err := r.engine.journal.Append(entry); err != nil {
		log.Warn().Err(err).Str("table", r.table).Str("step", step).
			Msg("failed to journal migration step")
	}
}

func (r *run) failure(err error) error {
	log.Error().Err(err).Str("table", r.table).Str("step", r.failed).
		Msg("migration failed, operator intervention required")
	return &PartialFailureError{
		Table:   r.table,
		Run:     r.id,
		Applied: append([]string(nil), r.applied...),
		Failed:  r.failed,
		Offline: r.offline,
		Err:     err,
	}
}

// DeleteTable drops the physical table of a logical table and removes its layout history.
func (e *Engine) DeleteTable(ctx context.Context, table string) error {
	unlock, err := e.locker.Lock(ctx, lockName(table))
	if err != nil {
		return err
	}
	defer unlock()

	if _, err := e.Layout(ctx, table); err != nil {
		return err
	}

	name := physical.TableName(e.instance, table)
	exists, err := e.admin.TableExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		log.Debug().Str("table", name).Msg("dropping physical table")
		if err := e.admin.DisableTable(ctx, name); err != nil {
			return err
		}
		if err := e.admin.DropTable(ctx, name); err != nil {
			return err
		}
	}

	if err := e.meta.DeleteTable(ctx, table); err != nil {
		return err
	}

	if still, err := e.admin.TableExists(ctx, name); err == nil && still {
		log.Warn().Str("table", name).Msg("physical table still exists after deletion")
	}

	e.emit(&cdc.Event{Kind: cdc.TableDeleted, Table: table}, nil)
	log.Info().Str("table", table).Msg("table deleted")
	return nil
}

// ListTables lists the logical tables of the instance in ascending order.
func (e *Engine) ListTables(ctx context.Context) ([]string, error) {
	tables, err := e.meta.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(tables)
	return tables, nil
}

func (e *Engine) emit(evt *cdc.Event, l *layout.Layout) {
	if e.emitter == nil {
		return
	}
	if l != nil {
		if b, err := json.Marshal(l); err == nil {
			evt.Layout = b
		}
	}
	evt.Timestamp = time.Now().Unix()
	e.emitter.Emit(evt)
}
