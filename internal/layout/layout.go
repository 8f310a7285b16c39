// Package layout is the logical schema of a table: its families, their versioning and storage
// policy, and how row keys are encoded.
//
// A Layout is immutable. Evolving a table produces a new Layout from a Descriptor and the
// current Layout (see Update); the new layout has the next layout id, points back at its
// predecessor, and reuses the column ids of families that survive the update.
package layout

import (
	"encoding/json"
	"fmt"

	"github.com/litetable/litetable-schema/internal/litetable"
)

type Column struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ValueType   string `json:"value_type"`
}

// Family is a resolved logical family. Values returned by a Layout are copies.
type Family struct {
	ID          ColumnID   `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Kind        FamilyKind `json:"kind"`
	MaxVersions int        `json:"max_versions"`
	TTLSeconds  int        `json:"ttl_seconds"`
	InMemory    bool       `json:"in_memory"`
	Compression string     `json:"compression"`
	BloomType   string     `json:"bloom_type"`
	BlockSize   int        `json:"block_size"`
	Columns     []Column   `json:"columns,omitempty"`
	ValueType   string     `json:"value_type,omitempty"`
}

// IsMap reports whether the family has an open qualifier set.
func (f Family) IsMap() bool {
	return f.Kind == KindMap
}

// PhysicalName is the name of the physical family backing f.
func (f Family) PhysicalName() string {
	return f.ID.String()
}

// Column looks up a column of a group family.
func (f Family) Column(name string) (Column, bool) {
	for _, c := range f.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

func (f Family) clone() Family {
	if f.Columns != nil {
		f.Columns = append([]Column(nil), f.Columns...)
	}
	return f
}

type record struct {
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	ID            uint64         `json:"layout_id"`
	ReferenceID   uint64         `json:"reference_layout,omitempty"`
	KeyEncoding   RowKeyEncoding `json:"key_encoding"`
	KeyComponents []string       `json:"key_components,omitempty"`
	Families      []Family       `json:"families"`
	NextColumnID  ColumnID       `json:"next_column_id"`
}

// Layout is a validated, immutable table layout.
type Layout struct {
	rec record
}

// New builds the first layout of a table.
func New(desc *Descriptor) (*Layout, error) {
	return Update(desc, nil)
}

// Update builds the layout that succeeds current. A nil current builds the first layout of a
// table. Column ids are resolved against current so the result is the same whether or not it
// is persisted afterwards.
func Update(desc *Descriptor, current *Layout) (*Layout, error) {
	if desc == nil {
		return nil, litetable.NewError(litetable.ErrInvalidLayout, "missing layout descriptor")
	}
	if err := validate(desc, current); err != nil {
		return nil, err
	}

	encoding, components := keyFormat(desc, current)
	rec := record{
		Name:          desc.Name,
		Description:   desc.Description,
		ID:            1,
		KeyEncoding:   encoding,
		KeyComponents: append([]string(nil), components...),
		Families:      make([]Family, 0, len(desc.Families)),
		NextColumnID:  1,
	}
	if current != nil {
		rec.ID = current.rec.ID + 1
		rec.ReferenceID = current.rec.ID
		rec.NextColumnID = current.rec.NextColumnID
	}

	for _, fd := range desc.Families {
		fam := familyFromDescriptor(fd)

		source := fd.Name
		if fd.RenamedFrom != "" {
			source = fd.RenamedFrom
		}
		if prev, ok := current.Family(source); ok {
			fam.ID = prev.ID
		} else {
			fam.ID = rec.NextColumnID
			rec.NextColumnID++
		}
		rec.Families = append(rec.Families, fam)
	}

	return &Layout{rec: rec}, nil
}

func familyFromDescriptor(fd FamilyDescriptor) Family {
	fam := Family{
		Name:        fd.Name,
		Description: fd.Description,
		Kind:        fd.Kind,
		MaxVersions: fd.MaxVersions,
		TTLSeconds:  fd.TTLSeconds,
		InMemory:    fd.InMemory,
		Compression: fd.Compression,
		BloomType:   fd.BloomType,
		BlockSize:   fd.BlockSize,
		ValueType:   fd.ValueType,
	}
	if fam.Kind == "" {
		fam.Kind = KindGroup
	}
	if fam.MaxVersions == 0 {
		fam.MaxVersions = 1
	}
	if fam.Compression == "" {
		fam.Compression = CompressionNone
	}
	if fam.BloomType == "" {
		fam.BloomType = BloomNone
	}
	for _, cd := range fd.Columns {
		fam.Columns = append(fam.Columns, Column{
			Name:        cd.Name,
			Description: cd.Description,
			ValueType:   cd.ValueType,
		})
	}
	return fam
}

func (l *Layout) Name() string {
	return l.rec.Name
}

func (l *Layout) Description() string {
	return l.rec.Description
}

// ID is the layout id, increasing by one with every update of the table.
func (l *Layout) ID() uint64 {
	return l.rec.ID
}

// ReferenceID is the id of the predecessor layout, 0 for the first layout of a table.
func (l *Layout) ReferenceID() uint64 {
	return l.rec.ReferenceID
}

func (l *Layout) KeyEncoding() RowKeyEncoding {
	return l.rec.KeyEncoding
}

func (l *Layout) KeyComponents() []string {
	return append([]string(nil), l.rec.KeyComponents...)
}

// NextColumnID is the id the next new family will receive.
func (l *Layout) NextColumnID() ColumnID {
	return l.rec.NextColumnID
}

// Families returns the families in definition order.
func (l *Layout) Families() []Family {
	out := make([]Family, len(l.rec.Families))
	for i, f := range l.rec.Families {
		out[i] = f.clone()
	}
	return out
}

// Family looks up a family by logical name. It is safe to call on a nil Layout.
func (l *Layout) Family(name string) (Family, bool) {
	if l == nil {
		return Family{}, false
	}
	for _, f := range l.rec.Families {
		if f.Name == name {
			return f.clone(), true
		}
	}
	return Family{}, false
}

// FamilyByID looks up a family by column id. It is safe to call on a nil Layout.
func (l *Layout) FamilyByID(id ColumnID) (Family, bool) {
	if l == nil {
		return Family{}, false
	}
	for _, f := range l.rec.Families {
		if f.ID == id {
			return f.clone(), true
		}
	}
	return Family{}, false
}

// ValueTypes lists the distinct cell value types referenced by the layout, in family order.
func (l *Layout) ValueTypes() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(t string) {
		if t == "" {
			return
		}
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	for _, f := range l.rec.Families {
		add(f.ValueType)
		for _, c := range f.Columns {
			add(c.ValueType)
		}
	}
	return out
}

func (l *Layout) String() string {
	return fmt.Sprintf("%s@%d", l.rec.Name, l.rec.ID)
}

func (l *Layout) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.rec)
}

func (l *Layout) UnmarshalJSON(b []byte) error {
	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return err
	}
	if rec.Name == "" || rec.ID == 0 {
		return litetable.NewError(litetable.ErrInvalidLayout, "stored layout is missing name or id")
	}
	l.rec = rec
	return nil
}
