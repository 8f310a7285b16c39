// Package remote is a store client speaking to a store served over gRPC.
package remote

import (
	"context"
	"errors"
	"time"

	"github.com/litetable/litetable-schema/internal/litetable"
	"github.com/litetable/litetable-schema/internal/physical"
	"github.com/litetable/litetable-schema/internal/store/wire"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

//go:generate mockgen -destination=client_mock.go -package=remote -source=client.go

type conn interface {
	Invoke(ctx context.Context, method string, args any, reply any, opts ...grpc.CallOption) error
	Close() error
}

// Client implements the admin, query and write interfaces of a store against a remote server.
type Client struct {
	conn    conn
	address string
	timeout time.Duration
}

type Config struct {
	Address string
	// Timeout bounds each call. Zero leaves calls bounded only by their context.
	Timeout time.Duration
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Address == "" {
		errGrp = append(errGrp, errors.New("store address cannot be empty"))
	}
	if c.Timeout < 0 {
		errGrp = append(errGrp, errors.New("store timeout cannot be negative"))
	}
	return errors.Join(errGrp...)
}

// New creates a client. The connection is established on first use.
func New(cfg *Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cc, err := grpc.NewClient(cfg.Address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(wire.CodecName)),
	)
	if err != nil {
		return nil, litetable.NewError(litetable.ErrRemoteStore, "connecting to %s: %v",
			cfg.Address, err)
	}

	return &Client{
		conn:    cc,
		address: cfg.Address,
		timeout: cfg.Timeout,
	}, nil
}

func (c *Client) Start() error {
	return nil
}

func (c *Client) Stop() error {
	return c.Close()
}

func (c *Client) Name() string {
	return "Remote Store (" + c.address + ")"
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) invoke(ctx context.Context, method string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	err := c.conn.Invoke(ctx, wire.FullMethod(method), in, out)
	log.Debug().Str("method", method).Str("address", c.address).
		Dur("latency", time.Since(start)).Err(err).Msg("remote store call")
	return wire.FromStatus(err)
}

func (c *Client) TableExists(ctx context.Context, name string) (bool, error) {
	resp := &wire.TableExistsResponse{}
	if err := c.invoke(ctx, wire.MethodTableExists, &wire.TableRequest{Table: name},
		resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

func (c *Client) CreateTable(ctx context.Context, schema *physical.Schema,
	splitKeys [][]byte) error {
	return c.invoke(ctx, wire.MethodCreateTable,
		&wire.CreateTableRequest{Schema: schema, SplitKeys: splitKeys}, &wire.Empty{})
}

func (c *Client) GetSchema(ctx context.Context, name string) (*physical.Schema, error) {
	resp := &wire.SchemaResponse{}
	if err := c.invoke(ctx, wire.MethodGetSchema, &wire.TableRequest{Table: name},
		resp); err != nil {
		return nil, err
	}
	if resp.Schema == nil {
		return nil, litetable.NewError(litetable.ErrRemoteStore, "empty schema of %s", name)
	}
	return resp.Schema, nil
}

func (c *Client) DisableTable(ctx context.Context, name string) error {
	return c.invoke(ctx, wire.MethodDisableTable, &wire.TableRequest{Table: name}, &wire.Empty{})
}

func (c *Client) EnableTable(ctx context.Context, name string) error {
	return c.invoke(ctx, wire.MethodEnableTable, &wire.TableRequest{Table: name}, &wire.Empty{})
}

func (c *Client) AddFamily(ctx context.Context, table string, f physical.Family) error {
	return c.invoke(ctx, wire.MethodAddFamily, &wire.FamilyRequest{Table: table, Family: f},
		&wire.Empty{})
}

func (c *Client) ModifyFamily(ctx context.Context, table string, f physical.Family) error {
	return c.invoke(ctx, wire.MethodModifyFamily, &wire.FamilyRequest{Table: table, Family: f},
		&wire.Empty{})
}

func (c *Client) DropTable(ctx context.Context, name string) error {
	return c.invoke(ctx, wire.MethodDropTable, &wire.TableRequest{Table: name}, &wire.Empty{})
}

func (c *Client) Regions(ctx context.Context, name string) (int, error) {
	resp := &wire.RegionsResponse{}
	if err := c.invoke(ctx, wire.MethodRegions, &wire.TableRequest{Table: name},
		resp); err != nil {
		return 0, err
	}
	return resp.Regions, nil
}

// Query runs a bounded range query on the server. The filter, if any, must come from package
// filter.
func (c *Client) Query(ctx context.Context, q *litetable.Query) ([]litetable.Cell, error) {
	req, err := wire.EncodeQuery(q)
	if err != nil {
		return nil, err
	}
	resp := &wire.QueryResponse{}
	if err := c.invoke(ctx, wire.MethodQuery, req, resp); err != nil {
		return nil, err
	}
	return resp.Cells, nil
}

func (c *Client) Put(ctx context.Context, table, rowKey, family, qualifier string, ts int64,
	value []byte) error {
	return c.invoke(ctx, wire.MethodPut, &wire.PutRequest{
		Table:     table,
		RowKey:    rowKey,
		Family:    family,
		Qualifier: qualifier,
		Timestamp: ts,
		Value:     value,
	}, &wire.Empty{})
}

func (c *Client) RowKeys(ctx context.Context, table, from string, limit int) ([]string, error) {
	resp := &wire.RowKeysResponse{}
	if err := c.invoke(ctx, wire.MethodRowKeys,
		&wire.RowKeysRequest{Table: table, From: from, Limit: limit}, resp); err != nil {
		return nil, err
	}
	return resp.Keys, nil
}
