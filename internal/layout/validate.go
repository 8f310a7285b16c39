package layout

import (
	"errors"
	"regexp"
	"slices"

	"github.com/litetable/litetable-schema/internal/litetable"
)

var identifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func invalid(format string, args ...interface{}) error {
	return litetable.NewError(litetable.ErrInvalidLayout, format, args...)
}

// validate checks desc on its own and, when current is set, as an update of current. All
// problems found are joined.
func validate(desc *Descriptor, current *Layout) error {
	var errGrp []error

	if !identifier.MatchString(desc.Name) {
		errGrp = append(errGrp, invalid("invalid table name %q", desc.Name))
	}

	encoding, components := keyFormat(desc, current)
	switch encoding {
	case EncodingRaw, EncodingHashed:
		if len(components) > 0 {
			errGrp = append(errGrp, invalid("key components require formatted key encoding"))
		}
	case EncodingFormatted:
		if len(components) == 0 {
			errGrp = append(errGrp, invalid("formatted key encoding requires key components"))
		}
	default:
		errGrp = append(errGrp, invalid("unknown key encoding %q", encoding))
	}

	names := make(map[string]struct{}, len(desc.Families))
	for _, fd := range desc.Families {
		if _, dup := names[fd.Name]; dup {
			errGrp = append(errGrp, invalid("duplicate family %q", fd.Name))
		}
		names[fd.Name] = struct{}{}
		errGrp = append(errGrp, validateFamily(fd)...)
	}

	errGrp = append(errGrp, validateRenames(desc, current, names)...)

	if current != nil {
		if desc.Name != current.Name() {
			errGrp = append(errGrp, invalid("layout name %q does not match table %q", desc.Name,
				current.Name()))
		}
		if encoding != current.KeyEncoding() {
			errGrp = append(errGrp, invalid("table %s cannot change key encoding from %s to %s",
				current.Name(), current.KeyEncoding(), encoding))
		} else if !slices.Equal(components, current.rec.KeyComponents) {
			errGrp = append(errGrp, invalid("table %s cannot change key components from %v to %v",
				current.Name(), current.rec.KeyComponents, components))
		}
		if desc.ReferenceLayout != 0 && desc.ReferenceLayout != current.ID() {
			errGrp = append(errGrp, invalid("reference layout %d does not match current layout %d",
				desc.ReferenceLayout, current.ID()))
		}
	}

	return errors.Join(errGrp...)
}

// keyFormat resolves the row key encoding and components of desc. An update that leaves the
// encoding out keeps the encoding and components of current; a new table defaults to hashed.
func keyFormat(desc *Descriptor, current *Layout) (RowKeyEncoding, []string) {
	encoding, components := desc.KeyEncoding, desc.KeyComponents
	if encoding != "" {
		return encoding, components
	}
	if current == nil {
		return EncodingHashed, components
	}
	if len(components) == 0 {
		components = current.rec.KeyComponents
	}
	return current.rec.KeyEncoding, components
}

func validateFamily(fd FamilyDescriptor) []error {
	var errGrp []error
	if !identifier.MatchString(fd.Name) {
		errGrp = append(errGrp, invalid("invalid family name %q", fd.Name))
	}
	if fd.MaxVersions < 0 {
		errGrp = append(errGrp, invalid("family %s: max versions must be at least 1", fd.Name))
	}
	if fd.TTLSeconds < 0 {
		errGrp = append(errGrp, invalid("family %s: ttl cannot be negative", fd.Name))
	}
	if fd.BlockSize < 0 {
		errGrp = append(errGrp, invalid("family %s: block size cannot be negative", fd.Name))
	}

	switch fd.Compression {
	case "", CompressionNone, CompressionGZ, CompressionLZ4, CompressionSnappy:
	default:
		errGrp = append(errGrp, invalid("family %s: unknown compression %q", fd.Name, fd.Compression))
	}

	switch fd.BloomType {
	case "", BloomNone, BloomRow, BloomRowCol:
	default:
		errGrp = append(errGrp, invalid("family %s: unknown bloom type %q", fd.Name, fd.BloomType))
	}

	switch fd.Kind {
	case "", KindGroup:
		if fd.ValueType != "" {
			errGrp = append(errGrp, invalid("group family %s cannot declare a value type", fd.Name))
		}
		columns := make(map[string]struct{}, len(fd.Columns))
		for _, cd := range fd.Columns {
			if !identifier.MatchString(cd.Name) {
				errGrp = append(errGrp, invalid("family %s: invalid column name %q", fd.Name, cd.Name))
			}
			if _, dup := columns[cd.Name]; dup {
				errGrp = append(errGrp, invalid("family %s: duplicate column %q", fd.Name, cd.Name))
			}
			columns[cd.Name] = struct{}{}
		}
	case KindMap:
		if len(fd.Columns) > 0 {
			errGrp = append(errGrp, invalid("map family %s cannot declare columns", fd.Name))
		}
	default:
		errGrp = append(errGrp, invalid("family %s: unknown kind %q", fd.Name, fd.Kind))
	}

	return errGrp
}

func validateRenames(desc *Descriptor, current *Layout, names map[string]struct{}) []error {
	var errGrp []error
	sources := make(map[string]string)

	for _, fd := range desc.Families {
		if fd.RenamedFrom == "" {
			if prev, ok := current.Family(fd.Name); ok && prev.Kind != kindOrDefault(fd.Kind) {
				errGrp = append(errGrp, invalid("family %s cannot change kind from %s to %s",
					fd.Name, prev.Kind, kindOrDefault(fd.Kind)))
			}
			continue
		}

		if current == nil {
			errGrp = append(errGrp, invalid("family %s: cannot rename while creating a table",
				fd.Name))
			continue
		}
		prev, ok := current.Family(fd.RenamedFrom)
		if !ok {
			errGrp = append(errGrp, invalid("family %s: rename source %q is not in the current layout",
				fd.Name, fd.RenamedFrom))
			continue
		}
		if _, still := names[fd.RenamedFrom]; still {
			errGrp = append(errGrp, invalid("family %s: rename source %q is still defined",
				fd.Name, fd.RenamedFrom))
		}
		if other, dup := sources[fd.RenamedFrom]; dup {
			errGrp = append(errGrp, invalid("families %s and %s are both renamed from %q",
				other, fd.Name, fd.RenamedFrom))
		}
		sources[fd.RenamedFrom] = fd.Name
		if prev.Kind != kindOrDefault(fd.Kind) {
			errGrp = append(errGrp, invalid("family %s cannot change kind from %s to %s",
				fd.Name, prev.Kind, kindOrDefault(fd.Kind)))
		}
	}

	return errGrp
}

func kindOrDefault(k FamilyKind) FamilyKind {
	if k == "" {
		return KindGroup
	}
	return k
}
