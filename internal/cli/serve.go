package cli

import (
	"context"
	"time"

	"github.com/litetable/litetable-schema/internal/app"
	"github.com/litetable/litetable-schema/internal/cdc"
	"github.com/litetable/litetable-schema/internal/physical"
	servergrpc "github.com/litetable/litetable-schema/internal/server/grpc"
	"github.com/litetable/litetable-schema/internal/store/memstore"
	"github.com/spf13/cobra"
)

const serveStopTimeout = 10 * time.Second

// emittingStore publishes physical schema changes of a store to CDC subscribers. Events name
// the logical table, as the migration engine does.
type emittingStore struct {
	*memstore.Manager
	emitter interface{ Emit(e *cdc.Event) }
}

func (s *emittingStore) emit(kind cdc.Kind, table, family string) {
	if _, logical, ok := physical.ParseTableName(table); ok {
		table = logical
	}
	s.emitter.Emit(&cdc.Event{
		Kind:      kind,
		Table:     table,
		Family:    family,
		Timestamp: time.Now().Unix(),
	})
}

func (s *emittingStore) CreateTable(ctx context.Context, schema *physical.Schema,
	splitKeys [][]byte) error {
	if err := s.Manager.CreateTable(ctx, schema, splitKeys); err != nil {
		return err
	}
	s.emit(cdc.TableCreated, schema.Table, "")
	return nil
}

func (s *emittingStore) AddFamily(ctx context.Context, table string, f physical.Family) error {
	if err := s.Manager.AddFamily(ctx, table, f); err != nil {
		return err
	}
	s.emit(cdc.FamilyCreated, table, f.Name)
	return nil
}

func (s *emittingStore) ModifyFamily(ctx context.Context, table string, f physical.Family) error {
	if err := s.Manager.ModifyFamily(ctx, table, f); err != nil {
		return err
	}
	s.emit(cdc.FamilyModified, table, f.Name)
	return nil
}

func (s *emittingStore) DropTable(ctx context.Context, name string) error {
	if err := s.Manager.DropTable(ctx, name); err != nil {
		return err
	}
	s.emit(cdc.TableDeleted, name, "")
	return nil
}

// serveDependencies builds the in-memory store, its gRPC server and the CDC stream, in start
// order.
func (c *cli) serveDependencies() ([]app.Dependency, error) {
	store, err := memstore.New(&memstore.Config{ShardCount: c.cfg.ShardCount})
	if err != nil {
		return nil, err
	}

	stream, err := cdc.New(&cdc.Config{Address: c.cfg.CDCAddress, Port: c.cfg.CDCPort})
	if err != nil {
		return nil, err
	}

	srv, err := servergrpc.NewServer(&servergrpc.Config{
		Address: c.cfg.ServerAddress,
		Port:    c.cfg.ServerPort,
		Store:   &emittingStore{Manager: store, emitter: stream},
	})
	if err != nil {
		return nil, err
	}

	return []app.Dependency{store, stream, srv}, nil
}

func (c *cli) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an in-memory store over gRPC with a CDC stream of schema changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := c.serveDependencies()
			if err != nil {
				return err
			}
			application, err := app.CreateApp(&app.Config{
				ServiceName: "LiteTable Schema Store",
				StopTimeout: serveStopTimeout,
			}, deps...)
			if err != nil {
				return err
			}
			return application.Run(cmd.Context())
		},
	}

	fs := cmd.Flags()
	c.configString(fs, "server-address", "store server listen address")
	fs.Int("server-port", 0, "store server port")
	c.configFlags["server-port"] = struct{}{}
	c.configString(fs, "cdc-address", "CDC stream listen address")
	fs.Int("cdc-port", 0, "CDC stream port")
	c.configFlags["cdc-port"] = struct{}{}
	fs.Int("shard-count", 0, "store shards")
	c.configFlags["shard-count"] = struct{}{}
	return cmd
}
