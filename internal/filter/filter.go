// Package filter holds the user supplied column filters that can be attached to a data request.
// Filters travel to the store as Descriptors, so every filter must be expressible as one.
package filter

import (
	"fmt"
	"regexp"

	"github.com/litetable/litetable-schema/internal/litetable"
)

const (
	TypeRegexQualifier = "regex_qualifier"
	TypeQualifierRange = "qualifier_range"
	TypeTimestampRange = "timestamp_range"
	TypeAnd            = "and"
)

// Filter decides whether a cell is visible to the caller.
type Filter interface {
	litetable.ColumnFilter
	Descriptor() Descriptor
}

// Descriptor is the serializable form of a Filter.
type Descriptor struct {
	Type    string       `json:"type"`
	Pattern string       `json:"pattern,omitempty"`
	Min     string       `json:"min,omitempty"`
	Max     string       `json:"max,omitempty"`
	MinTS   int64        `json:"min_ts,omitempty"`
	MaxTS   int64        `json:"max_ts,omitempty"`
	Filters []Descriptor `json:"filters,omitempty"`
}

type regexQualifier struct {
	pattern string
	re      *regexp.Regexp
}

// RegexQualifier accepts cells whose qualifier fully matches pattern.
func RegexQualifier(pattern string) (Filter, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, litetable.NewError(litetable.ErrInvalidRequest, "invalid qualifier regex %q: %v",
			pattern, err)
	}
	return &regexQualifier{pattern: pattern, re: re}, nil
}

func (f *regexQualifier) Accept(qualifier string, _ int64, _ []byte) bool {
	return f.re.MatchString(qualifier)
}

func (f *regexQualifier) Descriptor() Descriptor {
	return Descriptor{Type: TypeRegexQualifier, Pattern: f.pattern}
}

type qualifierRange struct {
	min, max string
}

// QualifierRange accepts qualifiers in [min, max). An empty max is unbounded.
func QualifierRange(min, max string) Filter {
	return &qualifierRange{min: min, max: max}
}

func (f *qualifierRange) Accept(qualifier string, _ int64, _ []byte) bool {
	if qualifier < f.min {
		return false
	}
	return f.max == "" || qualifier < f.max
}

func (f *qualifierRange) Descriptor() Descriptor {
	return Descriptor{Type: TypeQualifierRange, Min: f.min, Max: f.max}
}

type timestampRange struct {
	min, max int64
}

// TimestampRange accepts timestamps in [min, max). A zero max is unbounded.
func TimestampRange(min, max int64) Filter {
	return &timestampRange{min: min, max: max}
}

func (f *timestampRange) Accept(_ string, timestamp int64, _ []byte) bool {
	if timestamp < f.min {
		return false
	}
	return f.max == 0 || timestamp < f.max
}

func (f *timestampRange) Descriptor() Descriptor {
	return Descriptor{Type: TypeTimestampRange, MinTS: f.min, MaxTS: f.max}
}

type and []Filter

// And accepts cells accepted by every filter.
func And(filters ...Filter) Filter {
	return and(filters)
}

func (f and) Accept(qualifier string, timestamp int64, value []byte) bool {
	for _, sub := range f {
		if !sub.Accept(qualifier, timestamp, value) {
			return false
		}
	}
	return true
}

func (f and) Descriptor() Descriptor {
	d := Descriptor{Type: TypeAnd, Filters: make([]Descriptor, 0, len(f))}
	for _, sub := range f {
		d.Filters = append(d.Filters, sub.Descriptor())
	}
	return d
}

// FromDescriptor rebuilds a filter from its serialized form. A nil descriptor yields a nil
// filter.
func FromDescriptor(d *Descriptor) (Filter, error) {
	if d == nil {
		return nil, nil
	}

	switch d.Type {
	case TypeRegexQualifier:
		return RegexQualifier(d.Pattern)
	case TypeQualifierRange:
		return QualifierRange(d.Min, d.Max), nil
	case TypeTimestampRange:
		return TimestampRange(d.MinTS, d.MaxTS), nil
	case TypeAnd:
		subs := make([]Filter, 0, len(d.Filters))
		for i := range d.Filters {
			sub, err := FromDescriptor(&d.Filters[i])
			if err != nil {
				return nil, err
			}
			subs = append(subs, sub)
		}
		return And(subs...), nil
	}
	return nil, fmt.Errorf("%w: unknown filter type %q", litetable.ErrInvalidRequest, d.Type)
}
