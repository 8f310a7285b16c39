package layout

import (
	"fmt"
	"strings"
)

const columnIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// ColumnID is the stable short id of a logical family. It names the physical family and is
// never reassigned to another family of the same table.
type ColumnID uint32

// String encodes the id in base 64, least significant digit first, so 1 is "B".
func (id ColumnID) String() string {
	if id == 0 {
		return "A"
	}
	var b strings.Builder
	for v := uint32(id); v > 0; v >>= 6 {
		b.WriteByte(columnIDAlphabet[v&63])
	}
	return b.String()
}

// ParseColumnID is the inverse of ColumnID.String.
func ParseColumnID(s string) (ColumnID, error) {
	if s == "" {
		return 0, fmt.Errorf("empty column id")
	}
	var id uint32
	for i := len(s) - 1; i >= 0; i-- {
		digit := strings.IndexByte(columnIDAlphabet, s[i])
		if digit < 0 {
			return 0, fmt.Errorf("invalid column id %q", s)
		}
		id = id<<6 | uint32(digit)
	}
	return ColumnID(id), nil
}
