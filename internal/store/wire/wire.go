// Package wire defines the messages, codec and error mapping of the store service shared by
// the gRPC server and the remote store client.
package wire

import (
	"encoding/json"

	"github.com/litetable/litetable-schema/internal/filter"
	"github.com/litetable/litetable-schema/internal/litetable"
	"github.com/litetable/litetable-schema/internal/physical"
	"google.golang.org/grpc/encoding"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "litetable.schema.v1.StoreService"

const (
	MethodTableExists  = "TableExists"
	MethodCreateTable  = "CreateTable"
	MethodGetSchema    = "GetSchema"
	MethodDisableTable = "DisableTable"
	MethodEnableTable  = "EnableTable"
	MethodAddFamily    = "AddFamily"
	MethodModifyFamily = "ModifyFamily"
	MethodDropTable    = "DropTable"
	MethodRegions      = "Regions"
	MethodQuery        = "Query"
	MethodPut          = "Put"
	MethodRowKeys      = "RowKeys"
)

// FullMethod is the path of a store service method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// CodecName is the content subtype the store service speaks.
const CodecName = "json"

type codec struct{}

func (codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (codec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (codec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(codec{})
}

type Empty struct{}

type TableRequest struct {
	Table string `json:"table"`
}

type TableExistsResponse struct {
	Exists bool `json:"exists"`
}

type CreateTableRequest struct {
	Schema    *physical.Schema `json:"schema"`
	SplitKeys [][]byte         `json:"split_keys,omitempty"`
}

type SchemaResponse struct {
	Schema *physical.Schema `json:"schema"`
}

type FamilyRequest struct {
	Table  string          `json:"table"`
	Family physical.Family `json:"family"`
}

type RegionsResponse struct {
	Regions int `json:"regions"`
}

type QueryRequest struct {
	Table               string             `json:"table"`
	RowKey              string             `json:"row_key"`
	Family              string             `json:"family"`
	Qualifier           string             `json:"qualifier,omitempty"`
	StartAfterQualifier string             `json:"start_after_qualifier,omitempty"`
	Before              int64              `json:"before"`
	MaxVersions         int                `json:"max_versions,omitempty"`
	MaxQualifiers       int                `json:"max_qualifiers,omitempty"`
	MaxResults          int                `json:"max_results,omitempty"`
	Filter              *filter.Descriptor `json:"filter,omitempty"`
}

type QueryResponse struct {
	Cells []litetable.Cell `json:"cells"`
}

type PutRequest struct {
	Table     string `json:"table"`
	RowKey    string `json:"row_key"`
	Family    string `json:"family"`
	Qualifier string `json:"qualifier"`
	Timestamp int64  `json:"timestamp"`
	Value     []byte `json:"value"`
}

type RowKeysRequest struct {
	Table string `json:"table"`
	From  string `json:"from,omitempty"`
	Limit int    `json:"limit"`
}

type RowKeysResponse struct {
	Keys []string `json:"keys"`
}

// EncodeQuery converts a query to its wire form. Only filters built by package filter can
// travel to the store.
func EncodeQuery(q *litetable.Query) (*QueryRequest, error) {
	req := &QueryRequest{
		Table:               q.Table,
		RowKey:              q.RowKey,
		Family:              q.Family,
		Qualifier:           q.Qualifier,
		StartAfterQualifier: q.StartAfterQualifier,
		Before:              q.Before,
		MaxVersions:         q.MaxVersions,
		MaxQualifiers:       q.MaxQualifiers,
		MaxResults:          q.MaxResults,
	}
	if q.Filter != nil {
		f, ok := q.Filter.(filter.Filter)
		if !ok {
			return nil, litetable.NewError(litetable.ErrInvalidRequest,
				"filter %T cannot be sent to a remote store", q.Filter)
		}
		d := f.Descriptor()
		req.Filter = &d
	}
	return req, nil
}

// DecodeQuery is the inverse of EncodeQuery.
func DecodeQuery(req *QueryRequest) (*litetable.Query, error) {
	q := &litetable.Query{
		Table:               req.Table,
		RowKey:              req.RowKey,
		Family:              req.Family,
		Qualifier:           req.Qualifier,
		StartAfterQualifier: req.StartAfterQualifier,
		Before:              req.Before,
		MaxVersions:         req.MaxVersions,
		MaxQualifiers:       req.MaxQualifiers,
		MaxResults:          req.MaxResults,
	}
	if q.Before == 0 {
		q.Before = litetable.LatestTimestamp
	}
	f, err := filter.FromDescriptor(req.Filter)
	if err != nil {
		return nil, err
	}
	if f != nil {
		q.Filter = f
	}
	return q, nil
}
