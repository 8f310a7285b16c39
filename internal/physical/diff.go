package physical

import (
	"github.com/litetable/litetable-schema/internal/layout"
)

// Op is a physical schema alteration.
type Op string

const (
	OpCreate Op = "create"
	OpModify Op = "modify"
)

// Change is one step needed to move a table from its current physical schema to the desired
// one.
type Change struct {
	Op     Op     `json:"op"`
	Family Family `json:"family"`
	// Logical is the logical family name behind the physical family.
	Logical string `json:"logical"`
}

// Diff lists the changes that turn current into desired, in the family order of desired.
// Families only present in current are left alone: a diff never drops a family.
func Diff(current, desired *Schema, l *layout.Layout) []Change {
	var changes []Change
	for _, want := range desired.Families {
		logical := want.Name
		if id, err := layout.ParseColumnID(want.Name); err == nil {
			if f, ok := l.FamilyByID(id); ok {
				logical = f.Name
			}
		}

		have, ok := current.Family(want.Name)
		switch {
		case !ok:
			changes = append(changes, Change{Op: OpCreate, Family: want, Logical: logical})
		case have != want:
			changes = append(changes, Change{Op: OpModify, Family: want, Logical: logical})
		}
	}
	return changes
}
