package xesstep

import (
	apperrors "github.com/kbukum/xesmeta/errors"
	"github.com/kbukum/xesmeta/schema"
)

// GetFields appends the output column to row: a string column named
// OutputField, trimmed on both sides, originating from stepName.
//
// Calling it twice appends two columns with the same name. Callers that
// may run it more than once must check for the column first.
func (m *Meta) GetFields(row schema.Container, stepName string) error {
	col := schema.ValueMeta{
		Name:   m.outputField,
		Type:   schema.TypeString,
		Trim:   schema.TrimBoth,
		Origin: stepName,
	}
	if row == nil {
		return apperrors.SchemaMutation(col.Name, schema.ErrNilContainer)
	}
	if err := row.AppendColumn(col); err != nil {
		return apperrors.SchemaMutation(col.Name, err)
	}
	return nil
}
