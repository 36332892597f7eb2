// Package schema describes the shape of a row stream: an ordered list of
// column descriptors that steps extend as rows flow through a pipeline.
package schema

import (
	"errors"
	"fmt"
)

// ValueType is the semantic type of a column.
type ValueType int

const (
	TypeNone ValueType = iota
	TypeNumber
	TypeString
	TypeDate
	TypeBoolean
	TypeInteger
	TypeBigNumber
	TypeBinary
	TypeTimestamp
)

var typeNames = map[ValueType]string{
	TypeNone:      "None",
	TypeNumber:    "Number",
	TypeString:    "String",
	TypeDate:      "Date",
	TypeBoolean:   "Boolean",
	TypeInteger:   "Integer",
	TypeBigNumber: "BigNumber",
	TypeBinary:    "Binary",
	TypeTimestamp: "Timestamp",
}

func (t ValueType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("ValueType(%d)", int(t))
}

// TrimType says which ends of a string value are trimmed.
type TrimType int

const (
	TrimNone TrimType = iota
	TrimLeft
	TrimRight
	TrimBoth
)

func (t TrimType) String() string {
	switch t {
	case TrimNone:
		return "none"
	case TrimLeft:
		return "left"
	case TrimRight:
		return "right"
	case TrimBoth:
		return "both"
	default:
		return fmt.Sprintf("TrimType(%d)", int(t))
	}
}

// ValueMeta describes one column.
type ValueMeta struct {
	Name   string
	Type   ValueType
	Trim   TrimType
	Origin string // name of the step that added the column
}

func (v ValueMeta) String() string {
	return fmt.Sprintf("%s %s(trim=%s) from %s", v.Name, v.Type, v.Trim, v.Origin)
}

// Container is anything a step can append a column to.
type Container interface {
	AppendColumn(v ValueMeta) error
}

// ErrFrozen is returned when appending to a read-only RowMeta.
var ErrFrozen = errors.New("schema: row meta is read-only")

// ErrNilContainer is returned when appending to a nil RowMeta.
var ErrNilContainer = errors.New("schema: nil row meta")

// RowMeta is an ordered list of column descriptors.
type RowMeta struct {
	columns []ValueMeta
	frozen  bool
}

var _ Container = (*RowMeta)(nil)

// NewRowMeta returns a RowMeta holding a copy of cols.
func NewRowMeta(cols ...ValueMeta) *RowMeta {
	r := &RowMeta{columns: make([]ValueMeta, len(cols))}
	copy(r.columns, cols)
	return r
}

// AppendColumn adds v at the end. Duplicate names are not detected.
func (r *RowMeta) AppendColumn(v ValueMeta) error {
	if r == nil {
		return ErrNilContainer
	}
	if r.frozen {
		return ErrFrozen
	}
	r.columns = append(r.columns, v)
	return nil
}

// Len returns the number of columns.
func (r *RowMeta) Len() int {
	if r == nil {
		return 0
	}
	return len(r.columns)
}

// Column returns the i-th column.
func (r *RowMeta) Column(i int) (ValueMeta, bool) {
	if r == nil || i < 0 || i >= len(r.columns) {
		return ValueMeta{}, false
	}
	return r.columns[i], true
}

// Columns returns a copy of all columns in order.
func (r *RowMeta) Columns() []ValueMeta {
	if r == nil {
		return nil
	}
	out := make([]ValueMeta, len(r.columns))
	copy(out, r.columns)
	return out
}

// Names returns the column names in order.
func (r *RowMeta) Names() []string {
	out := make([]string, 0, r.Len())
	for _, c := range r.Columns() {
		out = append(out, c.Name)
	}
	return out
}

// IndexOf returns the position of the first column called name, or -1.
func (r *RowMeta) IndexOf(name string) int {
	if r == nil {
		return -1
	}
	for i, c := range r.columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Clone returns a writable copy.
func (r *RowMeta) Clone() *RowMeta {
	return NewRowMeta(r.Columns()...)
}

// Freeze makes r reject further appends.
func (r *RowMeta) Freeze() *RowMeta {
	r.frozen = true
	return r
}

// Frozen reports whether r rejects appends.
func (r *RowMeta) Frozen() bool {
	return r != nil && r.frozen
}
