package layout

// RowKeyEncoding is how entity ids are turned into physical row keys.
type RowKeyEncoding string

const (
	EncodingRaw       RowKeyEncoding = "raw"
	EncodingHashed    RowKeyEncoding = "hashed"
	EncodingFormatted RowKeyEncoding = "formatted"
)

// FamilyKind distinguishes families with a fixed qualifier set from open ended ones.
type FamilyKind string

const (
	KindGroup FamilyKind = "group"
	KindMap   FamilyKind = "map"
)

const (
	CompressionNone   = "none"
	CompressionGZ     = "gz"
	CompressionLZ4    = "lz4"
	CompressionSnappy = "snappy"

	BloomNone   = "none"
	BloomRow    = "row"
	BloomRowCol = "rowcol"
)

// Descriptor is the user supplied description of a table layout. It is only an input: a
// Layout is produced from it by New or Update.
//
// Example:
//
//	{
//	  "name": "user",
//	  "key_encoding": "hashed",
//	  "families": [
//	    {"name": "info", "kind": "group", "max_versions": 5,
//	     "columns": [{"name": "name", "value_type": "string"}]},
//	    {"name": "jobs", "kind": "map", "value_type": "string"}
//	  ]
//	}
type Descriptor struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// ReferenceLayout, when set, must be the id of the layout this update is based on.
	ReferenceLayout uint64             `json:"reference_layout,omitempty"`
	KeyEncoding     RowKeyEncoding     `json:"key_encoding,omitempty"`
	KeyComponents   []string           `json:"key_components,omitempty"`
	Families        []FamilyDescriptor `json:"families"`
}

type FamilyDescriptor struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Kind        FamilyKind `json:"kind,omitempty"`
	// RenamedFrom names the family of the current layout this one replaces. The physical
	// family is kept.
	RenamedFrom string `json:"renamed_from,omitempty"`
	MaxVersions int    `json:"max_versions,omitempty"`
	TTLSeconds  int    `json:"ttl_seconds,omitempty"`
	InMemory    bool   `json:"in_memory,omitempty"`
	Compression string `json:"compression,omitempty"`
	BloomType   string `json:"bloom_type,omitempty"`
	BlockSize   int    `json:"block_size,omitempty"`
	// Columns is only valid for group families.
	Columns []ColumnDescriptor `json:"columns,omitempty"`
	// ValueType is only valid for map families.
	ValueType string `json:"value_type,omitempty"`
}

type ColumnDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ValueType   string `json:"value_type"`
}
