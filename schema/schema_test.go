package schema

import (
	"errors"
	"testing"
)

func threeColumns() *RowMeta {
	return NewRowMeta(
		ValueMeta{Name: "case", Type: TypeString, Origin: "input"},
		ValueMeta{Name: "when", Type: TypeDate, Origin: "input"},
		ValueMeta{Name: "amount", Type: TypeNumber, Trim: TrimNone, Origin: "calc"},
	)
}

func TestRowMeta_AppendColumn(t *testing.T) {
	r := threeColumns()
	before := r.Columns()

	col := ValueMeta{Name: "greeting", Type: TypeString, Trim: TrimBoth, Origin: "xes"}
	if err := r.AppendColumn(col); err != nil {
		t.Fatalf("AppendColumn failed: %v", err)
	}
	if r.Len() != 4 {
		t.Fatalf("expected 4 columns, got %d", r.Len())
	}
	last, _ := r.Column(3)
	if last != col {
		t.Errorf("expected %v, got %v", col, last)
	}
	for i, c := range before {
		got, _ := r.Column(i)
		if got != c {
			t.Errorf("column %d changed: %v -> %v", i, c, got)
		}
	}
}

func TestRowMeta_DuplicateNamesAllowed(t *testing.T) {
	r := NewRowMeta()
	col := ValueMeta{Name: "dup", Type: TypeString}
	_ = r.AppendColumn(col)
	_ = r.AppendColumn(col)
	if r.Len() != 2 {
		t.Errorf("expected 2 columns, got %d", r.Len())
	}
	if r.IndexOf("dup") != 0 {
		t.Errorf("expected first index 0, got %d", r.IndexOf("dup"))
	}
}

func TestRowMeta_FrozenAndNil(t *testing.T) {
	r := threeColumns().Freeze()
	if err := r.AppendColumn(ValueMeta{Name: "x"}); !errors.Is(err, ErrFrozen) {
		t.Errorf("expected ErrFrozen, got %v", err)
	}
	if r.Len() != 3 {
		t.Errorf("frozen row meta changed length: %d", r.Len())
	}

	c := r.Clone()
	if c.Frozen() {
		t.Error("clone should be writable")
	}
	if err := c.AppendColumn(ValueMeta{Name: "x"}); err != nil {
		t.Errorf("clone append failed: %v", err)
	}

	var nilMeta *RowMeta
	if err := nilMeta.AppendColumn(ValueMeta{Name: "x"}); !errors.Is(err, ErrNilContainer) {
		t.Errorf("expected ErrNilContainer, got %v", err)
	}
	if nilMeta.Len() != 0 || nilMeta.IndexOf("x") != -1 {
		t.Error("nil row meta accessors should return zero values")
	}
}

func TestRowMeta_NamesAndColumn(t *testing.T) {
	r := threeColumns()
	names := r.Names()
	if len(names) != 3 || names[0] != "case" || names[2] != "amount" {
		t.Errorf("unexpected names %v", names)
	}
	if _, ok := r.Column(3); ok {
		t.Error("expected out of range column to report false")
	}
	if _, ok := r.Column(-1); ok {
		t.Error("expected negative index to report false")
	}
}

func TestTypeStrings(t *testing.T) {
	if TypeString.String() != "String" {
		t.Errorf("unexpected %q", TypeString.String())
	}
	if ValueType(99).String() != "ValueType(99)" {
		t.Errorf("unexpected %q", ValueType(99).String())
	}
	if TrimBoth.String() != "both" {
		t.Errorf("unexpected %q", TrimBoth.String())
	}
}
