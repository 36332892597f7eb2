package xesstep

import (
	"errors"
	"testing"

	apperrors "github.com/kbukum/xesmeta/errors"
	"github.com/kbukum/xesmeta/schema"
)

func TestMeta_GetFields_AppendsColumn(t *testing.T) {
	existing := []schema.ValueMeta{
		{Name: "case", Type: schema.TypeString, Origin: "input"},
		{Name: "when", Type: schema.TypeDate, Origin: "input"},
		{Name: "amount", Type: schema.TypeNumber, Trim: schema.TrimLeft, Origin: "calc"},
	}
	row := schema.NewRowMeta(existing...)
	m := New()
	m.SetOutputField("greeting")

	if err := m.GetFields(row, "XES output"); err != nil {
		t.Fatalf("GetFields failed: %v", err)
	}

	if row.Len() != 4 {
		t.Fatalf("expected 4 columns, got %d", row.Len())
	}
	for i, want := range existing {
		if got, _ := row.Column(i); got != want {
			t.Errorf("column %d changed: got %v, want %v", i, got, want)
		}
	}
	got, _ := row.Column(3)
	want := schema.ValueMeta{Name: "greeting", Type: schema.TypeString, Trim: schema.TrimBoth, Origin: "XES output"}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestMeta_GetFields_DefaultName(t *testing.T) {
	row := schema.NewRowMeta()
	if err := New().GetFields(row, "s"); err != nil {
		t.Fatalf("GetFields failed: %v", err)
	}
	if row.Names()[0] != DefaultOutputField {
		t.Errorf("expected %q, got %v", DefaultOutputField, row.Names())
	}
}

func TestMeta_GetFields_Twice(t *testing.T) {
	row := schema.NewRowMeta()
	m := New()
	_ = m.GetFields(row, "s")
	_ = m.GetFields(row, "s")

	if row.Len() != 2 {
		t.Fatalf("expected duplicate column to be appended, got %d columns", row.Len())
	}
}

func TestMeta_GetFields_Errors(t *testing.T) {
	var nilRow *schema.RowMeta
	tests := []struct {
		name  string
		row   schema.Container
		cause error
	}{
		{"nil interface", nil, schema.ErrNilContainer},
		{"nil row meta", nilRow, schema.ErrNilContainer},
		{"frozen", schema.NewRowMeta().Freeze(), schema.ErrFrozen},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := New().GetFields(tc.row, "s")
			if !apperrors.Is(err, apperrors.ErrCodeSchemaMutation) {
				t.Fatalf("expected SCHEMA_MUTATION_ERROR, got %v", err)
			}
			if !errors.Is(err, tc.cause) {
				t.Errorf("expected cause %v, got %v", tc.cause, err)
			}
		})
	}
}
