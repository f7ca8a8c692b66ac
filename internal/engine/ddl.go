package engine

import (
	"fmt"

	"github.com/minibase-io/minibase/internal/schema"
	"github.com/minibase-io/minibase/pkg/types"
)

func (e *Executor) applyCreateTable(doc *types.Document, op types.Operation) (outcome, error) {
	if op.Table == "" {
		return outcome{}, fmt.Errorf("%w: table name required", types.ErrValidation)
	}
	if err := schema.ValidateBlueprints(op.Columns); err != nil {
		return outcome{}, err
	}

	if _, exists := doc.Tables[op.Table]; exists {
		switch op.IfExists {
		case types.IfExistsSkip:
			return outcome{
				detail:  fmt.Sprintf("table %q already exists", op.Table),
				skipped: true,
			}, nil
		case types.IfExistsReplace:
			delete(doc.Tables, op.Table)
		default:
			return outcome{}, fmt.Errorf("%w: table %q already exists", types.ErrConflict, op.Table)
		}
	}

	now := e.now().UTC()
	table := &types.Table{
		Name:        op.Table,
		Description: op.Description,
		Columns:     make(map[string]*types.ColumnDefinition, len(op.Columns)),
		ColumnOrder: make([]string, 0, len(op.Columns)),
		Permissions: make(map[string]*types.TablePermission),
		Rows:        []types.Row{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i := range op.Columns {
		col := op.Columns[i]
		table.Columns[col.Name] = &col
		table.ColumnOrder = append(table.ColumnOrder, col.Name)
		if col.PrimaryKey {
			table.PrimaryKey = col.Name
		}
	}
	doc.Tables[op.Table] = table

	return outcome{
		detail:  fmt.Sprintf("created table %q with %d columns", op.Table, len(op.Columns)),
		mutated: true,
	}, nil
}

func (e *Executor) applyDropTable(doc *types.Document, op types.Operation) (outcome, error) {
	if _, exists := doc.Tables[op.Table]; !exists {
		if op.IfExists == types.IfExistsSkip {
			return outcome{
				detail:  fmt.Sprintf("table %q does not exist", op.Table),
				skipped: true,
			}, nil
		}
		return outcome{}, fmt.Errorf("%w: table %q", types.ErrNotFound, op.Table)
	}
	delete(doc.Tables, op.Table)

	return outcome{
		detail:  fmt.Sprintf("dropped table %q", op.Table),
		mutated: true,
	}, nil
}

func (e *Executor) applyAddColumn(doc *types.Document, op types.Operation) (outcome, error) {
	table, err := lookupTable(doc, op.Table)
	if err != nil {
		return outcome{}, err
	}
	if op.Column == nil {
		return outcome{}, fmt.Errorf("%w: column definition required", types.ErrValidation)
	}
	col := *op.Column
	if err := schema.ValidateAddColumn(table, col); err != nil {
		return outcome{}, err
	}

	table.Columns[col.Name] = &col
	table.ColumnOrder = schema.NextColumnOrder(table.ColumnOrder, col.Name, op.Position)

	// Backfill existing rows with the default. A nullable column without a
	// default stays absent from existing rows.
	if col.Default != nil {
		for _, row := range table.Rows {
			if _, ok := row[col.Name]; !ok {
				row[col.Name] = col.Default
			}
		}
	}
	table.UpdatedAt = e.now().UTC()

	return outcome{
		detail:  fmt.Sprintf("added column %q to table %q", col.Name, op.Table),
		mutated: true,
	}, nil
}

func (e *Executor) applyDropColumn(doc *types.Document, op types.Operation) (outcome, error) {
	table, err := lookupTable(doc, op.Table)
	if err != nil {
		return outcome{}, err
	}
	if _, ok := table.Columns[op.ColumnName]; !ok {
		return outcome{}, fmt.Errorf("%w: column %q in table %q",
			types.ErrNotFound, op.ColumnName, op.Table)
	}
	if table.PrimaryKey == op.ColumnName {
		return outcome{}, fmt.Errorf("%w: cannot drop primary key column %q",
			types.ErrSchema, op.ColumnName)
	}

	delete(table.Columns, op.ColumnName)
	order := table.ColumnOrder[:0]
	for _, name := range table.ColumnOrder {
		if name != op.ColumnName {
			order = append(order, name)
		}
	}
	table.ColumnOrder = order
	for _, row := range table.Rows {
		delete(row, op.ColumnName)
	}
	table.UpdatedAt = e.now().UTC()

	return outcome{
		detail:  fmt.Sprintf("dropped column %q from table %q", op.ColumnName, op.Table),
		mutated: true,
	}, nil
}
