package engine

import (
	"fmt"

	"github.com/minibase-io/minibase/internal/criteria"
	"github.com/minibase-io/minibase/internal/schema"
	"github.com/minibase-io/minibase/pkg/types"
)

func (e *Executor) applyInsert(doc *types.Document, op types.Operation) (outcome, error) {
	table, err := lookupTable(doc, op.Table)
	if err != nil {
		return outcome{}, err
	}
	if len(op.Rows) == 0 {
		return outcome{}, fmt.Errorf("%w: insert requires at least one row", types.ErrValidation)
	}

	// Validate the whole batch before touching the table: a bad row
	// anywhere rejects the entire insert.
	prepared := make([]types.Row, 0, len(op.Rows))
	for i, row := range op.Rows {
		filled := schema.ApplyDefaults(table, row)
		if err := schema.ValidateRow(table, filled); err != nil {
			return outcome{}, fmt.Errorf("row %d: %w", i, err)
		}
		if table.PrimaryKey != "" {
			key := filled[table.PrimaryKey]
			if key == nil {
				return outcome{}, fmt.Errorf("row %d: %w: primary key %q is null",
					i, types.ErrValidation, table.PrimaryKey)
			}
			if hasKey(table.Rows, table.PrimaryKey, key) || hasKey(prepared, table.PrimaryKey, key) {
				return outcome{}, fmt.Errorf("row %d: %w: duplicate primary key %v",
					i, types.ErrConflict, key)
			}
		}
		prepared = append(prepared, filled)
	}

	table.Rows = append(table.Rows, prepared...)
	table.UpdatedAt = e.now().UTC()

	return outcome{
		detail:       fmt.Sprintf("inserted %d rows into %q", len(prepared), op.Table),
		rowsAffected: len(prepared),
		mutated:      true,
	}, nil
}

// hasKey reports whether any row carries the given primary key value.
// Comparison uses the same loose equality as criteria matching.
func hasKey(rows []types.Row, column string, key any) bool {
	for _, row := range rows {
		if criteria.Equal(row[column], key) {
			return true
		}
	}
	return false
}

func (e *Executor) applyUpdate(doc *types.Document, op types.Operation) (outcome, error) {
	table, err := lookupTable(doc, op.Table)
	if err != nil {
		return outcome{}, err
	}
	if len(op.Set) == 0 {
		return outcome{}, fmt.Errorf("%w: update requires at least one assignment", types.ErrValidation)
	}
	if len(op.Criteria) == 0 && !op.MatchAll {
		return outcome{}, fmt.Errorf("%w: update without criteria requires match_all", types.ErrValidation)
	}
	for column := range op.Set {
		if _, ok := table.Columns[column]; !ok {
			return outcome{}, fmt.Errorf("%w: unknown column %q", types.ErrValidation, column)
		}
		if column == table.PrimaryKey {
			return outcome{}, fmt.Errorf("%w: cannot update primary key column %q",
				types.ErrValidation, column)
		}
	}

	// First pass matches and re-validates every candidate row with the
	// assignments applied; the table only changes once all pass.
	var matched []types.Row
	for _, row := range table.Rows {
		if !criteria.Matches(row, op.Criteria) {
			continue
		}
		candidate := make(types.Row, len(row))
		for k, v := range row {
			candidate[k] = v
		}
		for k, v := range op.Set {
			candidate[k] = v
		}
		if err := schema.ValidateRow(table, candidate); err != nil {
			return outcome{}, err
		}
		matched = append(matched, row)
	}

	for _, row := range matched {
		for k, v := range op.Set {
			row[k] = v
		}
	}
	if len(matched) > 0 {
		table.UpdatedAt = e.now().UTC()
	}

	return outcome{
		detail:       fmt.Sprintf("updated %d rows in %q", len(matched), op.Table),
		rowsAffected: len(matched),
		mutated:      len(matched) > 0,
	}, nil
}

func (e *Executor) applyDelete(doc *types.Document, op types.Operation) (outcome, error) {
	table, err := lookupTable(doc, op.Table)
	if err != nil {
		return outcome{}, err
	}
	if len(op.Criteria) == 0 && !op.MatchAll {
		return outcome{}, fmt.Errorf("%w: delete without criteria requires match_all", types.ErrValidation)
	}

	kept := table.Rows[:0]
	removed := 0
	for _, row := range table.Rows {
		if criteria.Matches(row, op.Criteria) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	table.Rows = kept
	if removed > 0 {
		table.UpdatedAt = e.now().UTC()
	}

	return outcome{
		detail:       fmt.Sprintf("deleted %d rows from %q", removed, op.Table),
		rowsAffected: removed,
		mutated:      removed > 0,
	}, nil
}
