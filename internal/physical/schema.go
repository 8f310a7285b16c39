// Package physical translates logical layouts into the schema vocabulary of the store and
// compares physical schemas family by family.
package physical

import (
	"fmt"
	"sort"
	"strings"

	"github.com/litetable/litetable-schema/internal/layout"
)

// DefaultBlockSize is used for families that do not set a block size.
const DefaultBlockSize = 64 * 1024

// Family is the store's description of one physical column family.
type Family struct {
	Name        string `json:"name"`
	MaxVersions int    `json:"max_versions"`
	TTLSeconds  int    `json:"ttl_seconds"`
	InMemory    bool   `json:"in_memory"`
	Compression string `json:"compression"`
	BloomType   string `json:"bloom_type"`
	BlockSize   int    `json:"block_size"`
}

// Schema is the physical schema of one table.
type Schema struct {
	Table    string   `json:"table"`
	Families []Family `json:"families"`
}

// TableName is the physical name of a logical table within an instance.
func TableName(instance, table string) string {
	return fmt.Sprintf("lt.%s.table.%s", instance, table)
}

// ParseTableName splits a physical table name into its instance and logical table. ok is false
// for names that do not belong to any instance.
func ParseTableName(name string) (instance, table string, ok bool) {
	rest, found := strings.CutPrefix(name, "lt.")
	if !found {
		return "", "", false
	}
	i := strings.LastIndex(rest, ".table.")
	if i <= 0 || i+len(".table.") == len(rest) {
		return "", "", false
	}
	return rest[:i], rest[i+len(".table."):], true
}

// Empty is the baseline schema of a table that has no physical footprint yet.
func Empty(table string) *Schema {
	return &Schema{Table: table}
}

// Family looks up a physical family by name.
func (s *Schema) Family(name string) (Family, bool) {
	for _, f := range s.Families {
		if f.Name == name {
			return f, true
		}
	}
	return Family{}, false
}

// Clone returns a deep copy of s.
func (s *Schema) Clone() *Schema {
	return &Schema{
		Table:    s.Table,
		Families: append([]Family(nil), s.Families...),
	}
}

// Translate derives the physical schema of l. Equal layouts always translate to equal schemas.
func Translate(instance string, l *layout.Layout) *Schema {
	families := l.Families()
	s := &Schema{
		Table:    TableName(instance, l.Name()),
		Families: make([]Family, 0, len(families)),
	}
	for _, f := range families {
		s.Families = append(s.Families, translateFamily(f))
	}
	return s
}

func translateFamily(f layout.Family) Family {
	blockSize := f.BlockSize
	if blockSize == 0 {
		blockSize = DefaultBlockSize
	}
	return Family{
		Name:        f.PhysicalName(),
		MaxVersions: f.MaxVersions,
		TTLSeconds:  f.TTLSeconds,
		InMemory:    f.InMemory,
		Compression: f.Compression,
		BloomType:   f.BloomType,
		BlockSize:   blockSize,
	}
}

// Comparison is the result of comparing two schemas.
type Comparison int

const (
	Equal Comparison = iota
	Different
)

func (c Comparison) String() string {
	if c == Equal {
		return "EQUAL"
	}
	return "DIFFERENT"
}

// Compare compares the family sets of a and b regardless of order. Table names are not
// compared.
func Compare(a, b *Schema) Comparison {
	if len(a.Families) != len(b.Families) {
		return Different
	}
	left, right := sorted(a.Families), sorted(b.Families)
	for i := range left {
		if left[i] != right[i] {
			return Different
		}
	}
	return Equal
}

func sorted(families []Family) []Family {
	out := append([]Family(nil), families...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
