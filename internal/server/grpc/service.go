package grpc

import (
	"context"
	"time"

	"github.com/litetable/litetable-schema/internal/litetable"
	"github.com/litetable/litetable-schema/internal/physical"
	"github.com/litetable/litetable-schema/internal/store/wire"
	"github.com/rs/zerolog/log"
	grpc2 "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

//go:generate mockgen -destination=service_mock.go -package=grpc -source=service.go

type store interface {
	TableExists(ctx context.Context, name string) (bool, error)
	CreateTable(ctx context.Context, schema *physical.Schema, splitKeys [][]byte) error
	GetSchema(ctx context.Context, name string) (*physical.Schema, error)
	DisableTable(ctx context.Context, name string) error
	EnableTable(ctx context.Context, name string) error
	AddFamily(ctx context.Context, table string, f physical.Family) error
	ModifyFamily(ctx context.Context, table string, f physical.Family) error
	DropTable(ctx context.Context, name string) error
	Regions(ctx context.Context, name string) (int, error)
	Query(ctx context.Context, q *litetable.Query) ([]litetable.Cell, error)
	Put(ctx context.Context, table, rowKey, family, qualifier string, ts int64,
		value []byte) error
	RowKeys(ctx context.Context, table, from string, limit int) ([]string, error)
}

type service struct {
	store store
}

// storeServer is the handler type of the store service.
type storeServer interface {
	tableExists(ctx context.Context, msg *wire.TableRequest) (*wire.TableExistsResponse, error)
}

func unary[Req, Resp any](method string,
	fn func(*service, context.Context, *Req) (*Resp, error)) grpc2.MethodDesc {
	return grpc2.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error,
			interceptor grpc2.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(*service)
			handle := func(ctx context.Context, req any) (any, error) {
				start := time.Now()
				resp, err := fn(s, ctx, req.(*Req))
				log.Debug().Str("method", method).Dur("latency", time.Since(start)).Err(err).
					Msg("store request")
				if err != nil {
					return nil, wire.ToStatus(err)
				}
				return resp, nil
			}
			if interceptor == nil {
				return handle(ctx, in)
			}
			info := &grpc2.UnaryServerInfo{Server: srv, FullMethod: wire.FullMethod(method)}
			return interceptor(ctx, in, info, handle)
		},
	}
}

var serviceDesc = grpc2.ServiceDesc{
	ServiceName: wire.ServiceName,
	HandlerType: (*storeServer)(nil),
	Methods: []grpc2.MethodDesc{
		unary(wire.MethodTableExists, (*service).tableExists),
		unary(wire.MethodCreateTable, (*service).createTable),
		unary(wire.MethodGetSchema, (*service).getSchema),
		unary(wire.MethodDisableTable, (*service).disableTable),
		unary(wire.MethodEnableTable, (*service).enableTable),
		unary(wire.MethodAddFamily, (*service).addFamily),
		unary(wire.MethodModifyFamily, (*service).modifyFamily),
		unary(wire.MethodDropTable, (*service).dropTable),
		unary(wire.MethodRegions, (*service).regions),
		unary(wire.MethodQuery, (*service).query),
		unary(wire.MethodPut, (*service).put),
		unary(wire.MethodRowKeys, (*service).rowKeys),
	},
	Streams:  []grpc2.StreamDesc{},
	Metadata: "litetable/schema/v1/store.proto",
}

func tableRequired(table string) error {
	if table == "" {
		return status.Errorf(codes.InvalidArgument, "table required")
	}
	return nil
}

func (s *service) tableExists(ctx context.Context,
	msg *wire.TableRequest) (*wire.TableExistsResponse, error) {
	if err := tableRequired(msg.Table); err != nil {
		return nil, err
	}
	exists, err := s.store.TableExists(ctx, msg.Table)
	if err != nil {
		return nil, err
	}
	return &wire.TableExistsResponse{Exists: exists}, nil
}

func (s *service) createTable(ctx context.Context,
	msg *wire.CreateTableRequest) (*wire.Empty, error) {
	if msg.Schema == nil {
		return nil, status.Errorf(codes.InvalidArgument, "schema required")
	}
	if err := tableRequired(msg.Schema.Table); err != nil {
		return nil, err
	}
	return &wire.Empty{}, s.store.CreateTable(ctx, msg.Schema, msg.SplitKeys)
}

func (s *service) getSchema(ctx context.Context,
	msg *wire.TableRequest) (*wire.SchemaResponse, error) {
	if err := tableRequired(msg.Table); err != nil {
		return nil, err
	}
	schema, err := s.store.GetSchema(ctx, msg.Table)
	if err != nil {
		return nil, err
	}
	return &wire.SchemaResponse{Schema: schema}, nil
}

func (s *service) disableTable(ctx context.Context, msg *wire.TableRequest) (*wire.Empty, error) {
	if err := tableRequired(msg.Table); err != nil {
		return nil, err
	}
	return &wire.Empty{}, s.store.DisableTable(ctx, msg.Table)
}

func (s *service) enableTable(ctx context.Context, msg *wire.TableRequest) (*wire.Empty, error) {
	if err := tableRequired(msg.Table); err != nil {
		return nil, err
	}
	return &wire.Empty{}, s.store.EnableTable(ctx, msg.Table)
}

func (s *service) addFamily(ctx context.Context, msg *wire.FamilyRequest) (*wire.Empty, error) {
	if err := tableRequired(msg.Table); err != nil {
		return nil, err
	}
	return &wire.Empty{}, s.store.AddFamily(ctx, msg.Table, msg.Family)
}

func (s *service) modifyFamily(ctx context.Context,
	msg *wire.FamilyRequest) (*wire.Empty, error) {
	if err := tableRequired(msg.Table); err != nil {
		return nil, err
	}
	return &wire.Empty{}, s.store.ModifyFamily(ctx, msg.Table, msg.Family)
}

func (s *service) dropTable(ctx context.Context, msg *wire.TableRequest) (*wire.Empty, error) {
	if err := tableRequired(msg.Table); err != nil {
		return nil, err
	}
	return &wire.Empty{}, s.store.DropTable(ctx, msg.Table)
}

func (s *service) regions(ctx context.Context,
	msg *wire.TableRequest) (*wire.RegionsResponse, error) {
	if err := tableRequired(msg.Table); err != nil {
		return nil, err
	}
	n, err := s.store.Regions(ctx, msg.Table)
	if err != nil {
		return nil, err
	}
	return &wire.RegionsResponse{Regions: n}, nil
}

func (s *service) query(ctx context.Context,
	msg *wire.QueryRequest) (*wire.QueryResponse, error) {
	if err := tableRequired(msg.Table); err != nil {
		return nil, err
	}
	if msg.RowKey == "" || msg.Family == "" {
		return nil, status.Errorf(codes.InvalidArgument, "row key and family required")
	}
	q, err := wire.DecodeQuery(msg)
	if err != nil {
		return nil, err
	}
	cells, err := s.store.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return &wire.QueryResponse{Cells: cells}, nil
}

func (s *service) put(ctx context.Context, msg *wire.PutRequest) (*wire.Empty, error) {
	if err := tableRequired(msg.Table); err != nil {
		return nil, err
	}
	return &wire.Empty{}, s.store.Put(ctx, msg.Table, msg.RowKey, msg.Family, msg.Qualifier,
		msg.Timestamp, msg.Value)
}

func (s *service) rowKeys(ctx context.Context,
	msg *wire.RowKeysRequest) (*wire.RowKeysResponse, error) {
	if err := tableRequired(msg.Table); err != nil {
		return nil, err
	}
	keys, err := s.store.RowKeys(ctx, msg.Table, msg.From, msg.Limit)
	if err != nil {
		return nil, err
	}
	return &wire.RowKeysResponse{Keys: keys}, nil
}
