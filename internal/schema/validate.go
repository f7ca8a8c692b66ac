// Package schema provides pure validation and lookup over the document
// model: column blueprint checks, row-shape validation, column-order
// arithmetic, and privilege resolution. It performs no I/O and never
// mutates its inputs.
package schema

import (
	"fmt"

	"github.com/minibase-io/minibase/pkg/types"
)

// checkBlueprint validates a single column blueprint in isolation.
func checkBlueprint(col types.ColumnDefinition) error {
	if col.Name == "" {
		return fmt.Errorf("%w: column name must not be empty", types.ErrSchema)
	}
	if !types.IsValidDataType(col.DataType) {
		return fmt.Errorf("%w: column %q has unrecognized data type %q",
			types.ErrSchema, col.Name, col.DataType)
	}
	return nil
}

// ValidateBlueprints validates the full column set of a create_table
// operation: no empty or duplicate names, recognized data types, and at
// most one primary key column.
func ValidateBlueprints(cols []types.ColumnDefinition) error {
	if len(cols) == 0 {
		return fmt.Errorf("%w: table needs at least one column", types.ErrSchema)
	}
	seen := make(map[string]bool, len(cols))
	primaryKeys := 0
	for _, col := range cols {
		if err := checkBlueprint(col); err != nil {
			return err
		}
		if seen[col.Name] {
			return fmt.Errorf("%w: duplicate column %q", types.ErrSchema, col.Name)
		}
		seen[col.Name] = true
		if col.PrimaryKey {
			primaryKeys++
		}
	}
	if primaryKeys > 1 {
		return fmt.Errorf("%w: at most one column may be the primary key", types.ErrSchema)
	}
	return nil
}

// ValidateAddColumn validates an alter_table_add_column blueprint against
// the target table. Adding a primary key column is rejected, as is adding a
// non-nullable column without a default to a table that already has rows
// (the new column would be absent from every existing row).
func ValidateAddColumn(t *types.Table, col types.ColumnDefinition) error {
	if err := checkBlueprint(col); err != nil {
		return err
	}
	if _, exists := t.Columns[col.Name]; exists {
		return fmt.Errorf("%w: column %q in table %q", types.ErrConflict, col.Name, t.Name)
	}
	if col.PrimaryKey {
		return fmt.Errorf("%w: cannot add a primary key column to existing table %q",
			types.ErrSchema, t.Name)
	}
	if !col.Nullable && col.Default == nil && len(t.Rows) > 0 {
		return fmt.Errorf("%w: non-nullable column %q needs a default to be added to non-empty table %q",
			types.ErrSchema, col.Name, t.Name)
	}
	return nil
}

// NextColumnOrder returns the column order with name inserted at the given
// position, appending when position is nil. Positions are clamped to the
// valid range; entries after the insertion point shift right.
func NextColumnOrder(order []string, name string, position *int) []string {
	idx := len(order)
	if position != nil {
		idx = *position
		if idx < 0 {
			idx = 0
		}
		if idx > len(order) {
			idx = len(order)
		}
	}
	next := make([]string, 0, len(order)+1)
	next = append(next, order[:idx]...)
	next = append(next, name)
	next = append(next, order[idx:]...)
	return next
}

// ValidateRow checks one row against the table schema: every key must name
// a defined column, non-nullable columns reject explicit nulls, and every
// non-nullable column without a default must be present. Defaults are
// applied separately by ApplyDefaults.
func ValidateRow(t *types.Table, row types.Row) error {
	for key, val := range row {
		col, ok := t.Columns[key]
		if !ok {
			return fmt.Errorf("%w: unknown column %q in table %q", types.ErrValidation, key, t.Name)
		}
		if val == nil && !col.Nullable {
			return fmt.Errorf("%w: null value in non-nullable column %q of table %q",
				types.ErrValidation, key, t.Name)
		}
	}
	for _, name := range t.ColumnOrder {
		col := t.Columns[name]
		if _, present := row[name]; present {
			continue
		}
		if col.Default == nil && !col.Nullable {
			return fmt.Errorf("%w: missing non-nullable column %q in table %q",
				types.ErrValidation, name, t.Name)
		}
	}
	return nil
}

// ApplyDefaults returns a copy of row with column defaults filled in for
// omitted columns. Nullable columns without a default remain absent.
func ApplyDefaults(t *types.Table, row types.Row) types.Row {
	out := make(types.Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	for _, name := range t.ColumnOrder {
		col := t.Columns[name]
		if _, present := out[name]; !present && col.Default != nil {
			out[name] = col.Default
		}
	}
	return out
}
